package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"uiforge/internal/assistant"
	"uiforge/internal/localization"
	"uiforge/internal/server"
	"uiforge/internal/storage"
)

func newLocalizeCommand(root *rootOptions) *cobra.Command {
	var (
		name    string
		outPath string
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "localize <file|->",
		Short: "Extract texts from a component, record keys and print the rewritten source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := readSource(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			if name == "" {
				name = assistant.ComponentName(code)
			}

			cfg, logger, err := root.load()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			slot, closeSlot, err := server.NewSlot(cfg.Storage)
			if err != nil {
				return err
			}
			defer func() { _ = closeSlot() }()
			extractor, err := localization.NewExtractor(cfg.Localization.Extractor)
			if err != nil {
				return err
			}

			store := storage.New(slot, storage.WithKey(cfg.Storage.Key), storage.WithLogger(logger.Named("storage")))
			defer func() { _ = store.Close() }()

			res, err := localization.NewEngine(store, extractor, logger.Named("localization")).Localize(cmd.Context(), code, name)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				enc.SetEscapeHTML(false)
				return enc.Encode(res)
			}
			if outPath != "" {
				if err := os.WriteFile(outPath, []byte(res.Code), 0o644); err != nil {
					return fmt.Errorf("write %s: %w", outPath, err)
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "localized %d texts into %s\n", len(res.TextToKey), outPath)
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), res.Code)
			return err
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Component name used for the key prefix (default: first declared name)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write rewritten source to this file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full result as JSON")
	return cmd
}

func readSource(stdin io.Reader, arg string) (string, error) {
	if arg == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(arg)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", arg, err)
	}
	return string(b), nil
}
