package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	_ "chatd/docs"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command { return buildRootCmd(&options{}) }

func buildRootCmd(opts *options) *cobra.Command {
	root := &cobra.Command{
		Use:           "chatd",
		Short:         "Streaming chat API over a local llama.cpp model",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg)
		},
	}
	opts.register(root)
	root.AddCommand(newCheckCmd(opts), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the chatd version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "chatd version %s\n", version)
		},
	}
}
