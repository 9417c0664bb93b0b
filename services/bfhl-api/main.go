package main

import (
	"os"

	"github.com/spf13/cobra"
)

// @title          BFHL API
// @version        1.0
// @description    Classifies mixed token arrays into numbers, alphabets and special characters

// @license.name MIT
// @license.url  https://opensource.org/licenses/MIT

// @BasePath  /

type rootOptions struct {
	envFile string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the bfhl-api command tree. Without a subcommand it serves.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	serve := newServeCmd(opts)
	root := &cobra.Command{
		Use:          "bfhl-api",
		Short:        "BFHL token classification service",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE:         serve.RunE,
	}
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	root.Flags().AddFlagSet(serve.Flags())

	root.AddCommand(serve, newClassifyCmd())
	return root
}
