package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"uiforge/internal/server"
)

func newTokenCommand(root *rootOptions) *cobra.Command {
	var subject string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the write routes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := root.load()
			if err != nil {
				return err
			}
			if cfg.Auth.Secret == "" {
				return fmt.Errorf("auth.secret is not set; write routes are open")
			}

			token, exp, err := server.NewTokenService(cfg.Auth).Sign(subject)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\nexpires %s\n", token, exp.UTC().Format(time.RFC3339))
			return err
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "editor", "Token subject")
	return cmd
}
