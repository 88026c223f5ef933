package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-progress/cli"
	"github.com/mattsolo1/grove-progress/errors"
	"github.com/mattsolo1/grove-progress/progress"
	"github.com/mattsolo1/grove-progress/session"
)

var eventKinds = map[string]progress.Kind{
	"checkpoint":          progress.KindCheckpoint,
	"plan_started":        progress.KindPlanStarted,
	"plan_task_completed": progress.KindPlanTaskCompleted,
	"debug_started":       progress.KindDebugStarted,
	"debug_root_cause":    progress.KindDebugRootCause,
	"debug_resolved":      progress.KindDebugResolved,
	"feature_started":     progress.KindFeatureStarted,
	"feature_completed":   progress.KindFeatureCompleted,
}

// NewEventCmd creates the event command
func NewEventCmd() *cobra.Command {
	var (
		sessionID string
		plan      string
		task      int
		issue     string
		feature   string
	)

	cmd := &cobra.Command{
		Use:   "event <kind>",
		Short: "Append an event to the current session",
		Long: `Append one event to a session's durable buffer.

The event is consolidated into the progress file when the session ends.
Appending before 'session start' is fine; the buffer is created on demand.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")
			handler := cli.NewErrorHandler(verbose)

			kind, ok := eventKinds[args[0]]
			if !ok {
				return handler.Handle(errors.New(errors.ErrCodeInvalidInput, "unknown event kind: "+args[0]))
			}

			payload := map[string]interface{}{}
			if plan != "" {
				payload["plan"] = plan
			}
			if cmd.Flags().Changed("task") {
				payload["task"] = task
			}
			if issue != "" {
				payload["issue"] = issue
			}
			if feature != "" {
				payload["feature"] = feature
			}
			if len(payload) == 0 {
				payload = nil
			}

			path, err := resolveDoc(cmd, true)
			if err != nil {
				return handler.Handle(err)
			}

			if err := session.NewManager(path).AddEvent(path, sessionID, kind, payload); err != nil {
				return handler.Handle(err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Session id the event belongs to")
	cmd.Flags().StringVar(&plan, "plan", "", "Plan document path")
	cmd.Flags().IntVar(&task, "task", 0, "Task index")
	cmd.Flags().StringVar(&issue, "issue", "", "Issue description")
	cmd.Flags().StringVar(&feature, "feature", "", "Feature identifier")
	_ = cmd.MarkFlagRequired("session")

	return cmd
}
