package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-progress/cli"
)

// NewInitCmd creates the init command
func NewInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a progress file for this project",
		Long: `Create a minimal progress file in the current directory.

If the directory (or an ancestor up to the repository root) already has one,
init reports its location and changes nothing.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := cli.GetLogger(cmd)

			path, err := resolveDoc(cmd, true)
			if err != nil {
				verbose, _ := cmd.Flags().GetBool("verbose")
				return cli.NewErrorHandler(verbose).Handle(err)
			}

			log.WithField("path", path).Debug("progress file resolved")
			cmd.Println(path)
			return nil
		},
	}
}
