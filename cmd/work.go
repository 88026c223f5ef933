package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-progress/cli"
	"github.com/mattsolo1/grove-progress/errors"
	"github.com/mattsolo1/grove-progress/progress"
)

// NewWorkCmd creates the work command group
func NewWorkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "work",
		Short: "Inspect or set the current work mode",
	}

	cmd.AddCommand(newWorkGetCmd())
	cmd.AddCommand(newWorkSetCmd())
	return cmd
}

func newWorkGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Print the current work state",
		RunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")
			handler := cli.NewErrorHandler(verbose)

			path, err := resolveDoc(cmd, false)
			if err != nil {
				return handler.Handle(err)
			}

			work, err := progress.GetCurrentWork(path)
			if err != nil {
				return handler.Handle(err)
			}

			data, err := json.MarshalIndent(work, "", "  ")
			if err != nil {
				return err
			}
			cmd.Println(string(data))
			return nil
		},
	}
}

func newWorkSetCmd() *cobra.Command {
	var (
		plan     string
		planTask int
		issue    string
		phase    string
		feature  string
	)

	cmd := &cobra.Command{
		Use:   "set <general|plan|debug|feature>",
		Short: "Replace the current work state",
		Long: `Replace the current work state wholesale.

The work state is a single pointer, not a stack: switching modes discards the
previous mode's pointers. Use 'grove-progress event' first if that episode
should be remembered in the session log.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")
			handler := cli.NewErrorHandler(verbose)

			workType := progress.WorkType(args[0])
			switch workType {
			case progress.WorkGeneral, progress.WorkPlan, progress.WorkDebug, progress.WorkFeature:
			default:
				return handler.Handle(errors.WorkStateInvalid("unknown work type: " + args[0]))
			}

			update := progress.WorkUpdate{
				Plan:       plan,
				DebugIssue: issue,
				DebugPhase: phase,
				FeatureID:  feature,
			}
			if cmd.Flags().Changed("task") {
				update.PlanTask = progress.IntPtr(planTask)
			}

			path, err := resolveDoc(cmd, true)
			if err != nil {
				return handler.Handle(err)
			}

			if err := progress.SetCurrentWork(path, workType, update); err != nil {
				return handler.Handle(err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan document path (plan mode)")
	cmd.Flags().IntVar(&planTask, "task", 0, "Current task index within the plan")
	cmd.Flags().StringVar(&issue, "issue", "", "Issue under investigation (debug mode)")
	cmd.Flags().StringVar(&phase, "phase", "", "Debug phase, e.g. investigating (debug mode)")
	cmd.Flags().StringVar(&feature, "feature", "", "Feature identifier (feature mode)")

	return cmd
}
