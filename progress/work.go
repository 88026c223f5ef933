package progress

import (
	"github.com/mattsolo1/grove-progress/errors"
)

// WorkUpdate carries the mode-specific pointers for SetCurrentWork. Only the
// fields belonging to the requested work type are honored; the rest are
// discarded so the persisted state never carries another mode's pointers.
type WorkUpdate struct {
	Plan       string
	PlanTask   *int
	DebugIssue string
	DebugPhase string
	FeatureID  string
}

// GetCurrentWork returns a read-only snapshot of the document's current work
// state.
func GetCurrentWork(path string) (WorkState, error) {
	doc, err := Load(path)
	if err != nil {
		return WorkState{}, err
	}
	return doc.CurrentWork, nil
}

// SetCurrentWork replaces currentWork wholesale and persists immediately.
// This is an out-of-band pointer, independent of the session event log:
// switching away from plan or debug mode discards that mode's pointer without
// recording any history.
func SetCurrentWork(path string, workType WorkType, update WorkUpdate) error {
	work, err := buildWorkState(workType, update)
	if err != nil {
		return err
	}

	doc, err := LoadOrCreate(path)
	if err != nil {
		return err
	}

	doc.CurrentWork = work
	return doc.Save(path)
}

func buildWorkState(workType WorkType, update WorkUpdate) (WorkState, error) {
	work := WorkState{Type: workType}

	switch workType {
	case WorkGeneral:
		// Idle baseline, no pointers.
	case WorkPlan:
		if update.Plan == "" {
			return WorkState{}, errors.WorkStateInvalid("plan mode requires a plan path")
		}
		work.Plan = strPtr(update.Plan)
		work.PlanTask = update.PlanTask
	case WorkDebug:
		if update.DebugIssue == "" {
			return WorkState{}, errors.WorkStateInvalid("debug mode requires an issue")
		}
		work.DebugIssue = strPtr(update.DebugIssue)
		if update.DebugPhase != "" {
			work.DebugPhase = strPtr(update.DebugPhase)
		}
	case WorkFeature:
		if update.FeatureID != "" {
			work.FeatureID = strPtr(update.FeatureID)
		}
	default:
		return WorkState{}, errors.WorkStateInvalid("unknown work type: " + string(workType))
	}

	return work, nil
}

func strPtr(s string) *string { return &s }

// IntPtr is a convenience for callers building a WorkUpdate with a plan task.
func IntPtr(n int) *int { return &n }
