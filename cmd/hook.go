package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-progress/cli"
	"github.com/mattsolo1/grove-progress/config"
	"github.com/mattsolo1/grove-progress/hooks"
	"github.com/mattsolo1/grove-progress/progress"
	"github.com/mattsolo1/grove-progress/session"
)

// NewHookCmd creates the hook command group
func NewHookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:    "hook",
		Short:  "Entry points invoked by the agent harness",
		Hidden: true,
	}

	cmd.AddCommand(newHookUserPromptCmd())
	return cmd
}

func newHookUserPromptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "user-prompt",
		Short: "Classify a user prompt from stdin and record detected events",
		Long: `Read the harness hook payload ({"prompt": ..., "session_id": ...}) from
stdin and append any detected event to the session buffer. Most prompts carry
no trackable signal; those exit 0 without touching anything.

Each invocation is an independent short-lived process. All state goes through
the durable session buffer, never process memory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := cli.GetLogger(cmd)

			input, err := hooks.ReadInput(cmd.InOrStdin())
			if err != nil {
				// A malformed payload must not fail the user's prompt.
				log.WithError(err).Warn("ignoring malformed hook input")
				return nil
			}

			dir := input.Cwd
			if dir == "" {
				if dir, err = workingDir(cmd); err != nil {
					return err
				}
			}

			classifier := hooks.NewClassifier()
			if cfg, err := config.LoadFrom(dir); err == nil {
				for kind, patterns := range cfg.Hooks.Patterns {
					for _, pattern := range patterns {
						if err := classifier.AddPattern(progress.Kind(kind), pattern); err != nil {
							log.WithError(err).Warn("skipping configured hook pattern")
						}
					}
				}
			}

			detection, ok := classifier.Classify(input.Prompt)
			if !ok {
				return nil
			}

			path, found, err := progress.Resolve(dir, false)
			if err != nil {
				return err
			}
			if !found {
				// Untracked project; nothing to record.
				log.Debug("no progress file, prompt not recorded")
				return nil
			}

			mgr := session.NewManager(path)
			if err := mgr.AddEvent(path, input.SessionID, detection.Kind, detection.Payload); err != nil {
				return err
			}

			if detection.Work != nil {
				doc, err := progress.Load(path)
				if err != nil {
					return err
				}
				doc.CurrentWork = *detection.Work
				if err := doc.Save(path); err != nil {
					return err
				}
			}

			log.WithFields(map[string]interface{}{
				"kind":    string(detection.Kind),
				"session": input.SessionID,
				"doc":     filepath.Base(path),
			}).Debug("prompt event recorded")
			return nil
		},
	}
}
