// Package cmd contains the grove-progress subcommands.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-progress/errors"
	"github.com/mattsolo1/grove-progress/progress"
)

// workingDir returns the directory progress resolution starts from: the
// --dir flag when given, the process working directory otherwise.
func workingDir(cmd *cobra.Command) (string, error) {
	if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
		return dir, nil
	}
	return os.Getwd()
}

// resolveDoc locates the progress document for the command's directory. With
// create false a miss is reported as a not-found error so the CLI can suggest
// 'init'; the library itself treats that miss as a normal absence.
func resolveDoc(cmd *cobra.Command, create bool) (string, error) {
	dir, err := workingDir(cmd)
	if err != nil {
		return "", err
	}

	path, found, err := progress.Resolve(dir, create)
	if err != nil {
		return "", err
	}
	if !found {
		return "", errors.ProgressNotFound(dir)
	}
	return path, nil
}
