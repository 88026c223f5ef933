package main

import (
	"os"

	"github.com/mattsolo1/grove-progress/cli"
	"github.com/mattsolo1/grove-progress/cmd"
)

func main() {
	rootCmd := cli.NewStandardCommand(
		"grove-progress",
		"Session continuity tracking for coding agents",
	)

	// Add subcommands
	rootCmd.AddCommand(cmd.NewInitCmd())
	rootCmd.AddCommand(cmd.NewStatusCmd())
	rootCmd.AddCommand(cmd.NewWorkCmd())
	rootCmd.AddCommand(cmd.NewSessionCmd())
	rootCmd.AddCommand(cmd.NewEventCmd())
	rootCmd.AddCommand(cmd.NewHookCmd())
	rootCmd.AddCommand(cli.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
