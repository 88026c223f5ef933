// Package hooks turns free-text agent prompts into progress events. The
// classification is keyword heuristics, intentionally loose: a missed prompt
// costs one unlogged event, a spurious one costs a harmless extra line in the
// session record.
package hooks

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mattsolo1/grove-progress/errors"
	"github.com/mattsolo1/grove-progress/progress"
)

// Detection is the outcome of classifying one prompt: the event to append,
// and optionally a work state the detection implies (e.g. a plan start moves
// currentWork into plan mode).
type Detection struct {
	Kind    progress.Kind
	Payload map[string]interface{}
	Work    *progress.WorkState
}

type rule struct {
	kind  progress.Kind
	re    *regexp.Regexp
	apply func(matches []string, prompt string) Detection
}

// maxIssueLen caps how much of a prompt becomes the debug issue pointer.
const maxIssueLen = 120

var defaultRules = []rule{
	{
		kind: progress.KindCheckpoint,
		re:   regexp.MustCompile(`(?i)\bcheckpoint\b`),
		apply: func(matches []string, prompt string) Detection {
			return Detection{Kind: progress.KindCheckpoint}
		},
	},
	{
		kind: progress.KindPlanStarted,
		re:   regexp.MustCompile(`(?i)start(?:ing|ed)?\s+(?:on\s+)?(?:the\s+|a\s+)?plan\s+(?:at\s+)?(\S+\.md)`),
		apply: func(matches []string, prompt string) Detection {
			plan := matches[1]
			return Detection{
				Kind:    progress.KindPlanStarted,
				Payload: map[string]interface{}{"plan": plan},
				Work: &progress.WorkState{
					Type: progress.WorkPlan,
					Plan: &plan,
				},
			}
		},
	},
	{
		kind: progress.KindPlanTaskCompleted,
		re:   regexp.MustCompile(`(?i)\btask\s+(\d+)\s+(?:is\s+)?(?:done|complete|completed|finished)\b`),
		apply: func(matches []string, prompt string) Detection {
			task, _ := strconv.Atoi(matches[1])
			return Detection{
				Kind:    progress.KindPlanTaskCompleted,
				Payload: map[string]interface{}{"task": task},
			}
		},
	},
	{
		kind: progress.KindFeatureStarted,
		re:   regexp.MustCompile(`(?i)start(?:ing|ed)?\s+(?:on\s+)?(?:the\s+)?feature\s+([\w./-]+)`),
		apply: func(matches []string, prompt string) Detection {
			return Detection{
				Kind:    progress.KindFeatureStarted,
				Payload: map[string]interface{}{"feature": matches[1]},
			}
		},
	},
	{
		kind: progress.KindFeatureCompleted,
		re:   regexp.MustCompile(`(?i)\bfeature\s+([\w./-]+)\s+(?:is\s+)?(?:done|complete|completed|finished|shipped)\b`),
		apply: func(matches []string, prompt string) Detection {
			return Detection{
				Kind:    progress.KindFeatureCompleted,
				Payload: map[string]interface{}{"feature": matches[1]},
			}
		},
	},
	{
		kind: progress.KindDebugRootCause,
		re:   regexp.MustCompile(`(?i)\broot\s+cause\b`),
		apply: func(matches []string, prompt string) Detection {
			return Detection{
				Kind:    progress.KindDebugRootCause,
				Payload: map[string]interface{}{"issue": excerpt(prompt)},
			}
		},
	},
	{
		kind: progress.KindDebugResolved,
		re:   regexp.MustCompile(`(?i)\b(?:fixed|resolved)\b`),
		apply: func(matches []string, prompt string) Detection {
			general := progress.GeneralWork()
			return Detection{
				Kind: progress.KindDebugResolved,
				Work: &general,
			}
		},
	},
	{
		kind: progress.KindDebugStarted,
		re:   regexp.MustCompile(`(?i)\b(?:bug|debug|debugging|broken|failing|crash|crashes|crashing)\b`),
		apply: func(matches []string, prompt string) Detection {
			issue := excerpt(prompt)
			phase := "investigating"
			return Detection{
				Kind:    progress.KindDebugStarted,
				Payload: map[string]interface{}{"issue": issue},
				Work: &progress.WorkState{
					Type:       progress.WorkDebug,
					DebugIssue: &issue,
					DebugPhase: &phase,
				},
			}
		},
	},
}

// excerpt trims a prompt down to a pointer-sized issue description.
func excerpt(prompt string) string {
	s := strings.Join(strings.Fields(prompt), " ")
	if len(s) > maxIssueLen {
		s = s[:maxIssueLen]
	}
	return s
}

// Classifier matches prompts against an ordered rule list, built-in rules
// first.
type Classifier struct {
	rules []rule
}

// NewClassifier returns a classifier with the built-in rules.
func NewClassifier() *Classifier {
	return &Classifier{rules: defaultRules}
}

// AddPattern appends a user-supplied pattern for an event kind. Matches
// produce an event with no payload beyond the kind.
func (c *Classifier) AddPattern(kind progress.Kind, expr string) error {
	re, err := regexp.Compile(expr)
	if err != nil {
		return errors.HookPattern(expr, err)
	}
	c.rules = append(c.rules, rule{
		kind: kind,
		re:   re,
		apply: func(matches []string, prompt string) Detection {
			return Detection{Kind: kind}
		},
	})
	return nil
}

// Classify returns the first rule detection for the prompt. Most prompts are
// ordinary requests and match nothing; that is the expected case.
func (c *Classifier) Classify(prompt string) (Detection, bool) {
	for _, r := range c.rules {
		if matches := r.re.FindStringSubmatch(prompt); matches != nil {
			return r.apply(matches, prompt), true
		}
	}
	return Detection{}, false
}
