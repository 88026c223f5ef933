package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-progress/cli"
	"github.com/mattsolo1/grove-progress/progress"
)

// NewStatusCmd creates the status command
func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current work state and last session",
		RunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")
			handler := cli.NewErrorHandler(verbose)

			path, err := resolveDoc(cmd, false)
			if err != nil {
				return handler.Handle(err)
			}

			doc, err := progress.Load(path)
			if err != nil {
				return handler.Handle(err)
			}

			if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
				data, err := json.MarshalIndent(doc, "", "  ")
				if err != nil {
					return err
				}
				cmd.Println(string(data))
				return nil
			}

			cmd.Print(cli.RenderStatus(doc))
			return nil
		},
	}
}
