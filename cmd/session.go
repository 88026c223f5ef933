package cmd

import (
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-progress/cli"
	"github.com/mattsolo1/grove-progress/eventlog"
	"github.com/mattsolo1/grove-progress/git"
	"github.com/mattsolo1/grove-progress/progress"
	"github.com/mattsolo1/grove-progress/session"
)

// NewSessionCmd creates the session command group
func NewSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Start and end tracked sessions",
	}

	cmd.AddCommand(newSessionStartCmd())
	cmd.AddCommand(newSessionEndCmd())
	return cmd
}

func newSessionStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <session-id>",
		Short: "Begin a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")
			handler := cli.NewErrorHandler(verbose)

			path, err := resolveDoc(cmd, true)
			if err != nil {
				return handler.Handle(err)
			}

			if err := session.NewManager(path).Start(path, args[0]); err != nil {
				return handler.Handle(err)
			}
			return nil
		},
	}
}

func newSessionEndCmd() *cobra.Command {
	var (
		duration  int
		summary   string
		nextSteps []string
		noCommits bool
	)

	cmd := &cobra.Command{
		Use:   "end <session-id>",
		Short: "End a session and consolidate its events",
		Long: `End a session: drain the buffered events into the progress file's
lastSession record and reset the current work state.

Duration defaults to the wall-clock time since 'session start'; commits made
since then are collected from git history unless --no-commits is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")
			handler := cli.NewErrorHandler(verbose)
			log := cli.GetLogger(cmd)
			sessionID := args[0]

			path, err := resolveDoc(cmd, true)
			if err != nil {
				return handler.Handle(err)
			}

			buf := eventlog.ForDocument(path)
			startedAt, marked, err := buf.StartedAt(sessionID)
			if err != nil {
				return handler.Handle(err)
			}

			if !cmd.Flags().Changed("duration") && marked {
				duration = int(time.Since(startedAt).Round(time.Minute) / time.Minute)
				if duration < 0 {
					duration = 0
				}
			}

			var commits []progress.Commit
			if !noCommits && marked {
				dir := filepath.Dir(path)
				commits, err = git.CommitsSince(cmd.Context(), dir, startedAt)
				if err != nil {
					// Not being in a git repository is an ordinary setup;
					// the session record just carries no commits.
					log.WithError(err).Debug("commit collection skipped")
					commits = nil
				}
			}

			mgr := session.NewManager(path)
			if err := mgr.End(path, sessionID, duration, summary, commits, nextSteps); err != nil {
				return handler.Handle(err)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&duration, "duration", 0, "Session duration in minutes (default: since session start)")
	cmd.Flags().StringVar(&summary, "summary", "", "One-line summary of what the session accomplished")
	cmd.Flags().StringArrayVar(&nextSteps, "next", nil, "Next step to record (repeatable)")
	cmd.Flags().BoolVar(&noCommits, "no-commits", false, "Skip collecting commits from git history")

	return cmd
}
