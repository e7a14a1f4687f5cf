package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"uiforge/internal/export"
	"uiforge/internal/server"
	"uiforge/internal/storage"
)

func newExportCommand(root *rootOptions) *cobra.Command {
	var (
		format  string
		locale  string
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the localization table to a file",
		RunE: func(cmd *cobra.Command, args []string) error {
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

			store := storage.New(slot, storage.WithKey(cfg.Storage.Key), storage.WithLogger(logger.Named("storage")))
			defer func() { _ = store.Close() }()

			if outPath == "" {
				outPath = fmt.Sprintf("data/translations_%s.%s", locale, format)
				if format == "csv" {
					outPath = "data/translations.csv"
				}
			}

			n, err := export.WriteFile(cmd.Context(), store, format, locale, outPath)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "exported %d entries to %s\n", n, outPath)
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "Output format: "+strings.Join(export.Formats(), ", "))
	cmd.Flags().StringVar(&locale, "locale", "en", "Locale for per-locale formats")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output path")
	return cmd
}
