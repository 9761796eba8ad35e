package main

import (
	"encoding/json"
	"errors"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"chatd/internal/manager"
)

func newCheckCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the model artifact and runtime without starting the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, o)
			if err != nil {
				return err
			}
			mgr, err := newManager(cfg, zerolog.Nop())
			if err != nil {
				return err
			}
			checks := mgr.Preflight()
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(map[string]any{"model_path": cfg.ModelPath, "checks": checks}); err != nil {
				return err
			}
			if !manager.PreflightOK(checks) {
				return errors.New("preflight failed")
			}
			return nil
		},
	}
}
