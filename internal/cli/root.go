package cli

import (
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"uiforge/internal/config"
	"uiforge/internal/logging"
)

const defaultConfigPath = "uiforge.toml"

type rootOptions struct {
	configPath string
}

func NewRootCommand(out io.Writer) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "uiforge",
		Short:         "Generate, store and localize UI components",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", defaultConfigPath, "Path to the TOML config file")

	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newLocalizeCommand(opts))
	cmd.AddCommand(newExportCommand(opts))
	cmd.AddCommand(newTokenCommand(opts))
	return cmd
}

func (o *rootOptions) load() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return config.Config{}, nil, err
	}
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger, nil
}
