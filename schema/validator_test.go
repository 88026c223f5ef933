package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-progress/errors"
)

func validDocument() map[string]interface{} {
	return map[string]interface{}{
		"version":     2,
		"project":     "demo",
		"lastUpdated": "2026-01-05T10:00:00Z",
		"currentWork": map[string]interface{}{
			"type":       "general",
			"plan":       nil,
			"planTask":   nil,
			"debugIssue": nil,
			"debugPhase": nil,
		},
		"lastSession": map[string]interface{}{
			"date":             "2026-01-05",
			"duration_minutes": 42,
			"summary":          "Wired the resolver",
			"events":           []interface{}{},
			"commits":          []interface{}{},
			"nextSteps":        []interface{}{},
		},
		"recentSessions": []interface{}{},
		"knownIssues":    []interface{}{},
	}
}

func TestValidateDocument(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(doc map[string]interface{})
		wantError bool
		errorMsg  string
	}{
		{
			name:   "valid document",
			mutate: func(doc map[string]interface{}) {},
		},
		{
			name: "plan mode document",
			mutate: func(doc map[string]interface{}) {
				doc["currentWork"] = map[string]interface{}{
					"type":       "plan",
					"plan":       "docs/plans/x.md",
					"planTask":   2,
					"debugIssue": nil,
					"debugPhase": nil,
				}
			},
		},
		{
			name: "missing version",
			mutate: func(doc map[string]interface{}) {
				delete(doc, "version")
			},
			wantError: true,
			errorMsg:  "missing required field: version",
		},
		{
			name: "wrong version",
			mutate: func(doc map[string]interface{}) {
				doc["version"] = 1
			},
			wantError: true,
			errorMsg:  "expected version 2, got 1",
		},
		{
			name: "missing project",
			mutate: func(doc map[string]interface{}) {
				delete(doc, "project")
			},
			wantError: true,
			errorMsg:  "project",
		},
		{
			name: "missing currentWork",
			mutate: func(doc map[string]interface{}) {
				delete(doc, "currentWork")
			},
			wantError: true,
			errorMsg:  "currentWork",
		},
		{
			name: "missing lastSession",
			mutate: func(doc map[string]interface{}) {
				delete(doc, "lastSession")
			},
			wantError: true,
			errorMsg:  "lastSession",
		},
		{
			name: "currentWork missing debugPhase",
			mutate: func(doc map[string]interface{}) {
				work := doc["currentWork"].(map[string]interface{})
				delete(work, "debugPhase")
			},
			wantError: true,
			errorMsg:  "debugPhase",
		},
		{
			name: "lastSession missing nextSteps",
			mutate: func(doc map[string]interface{}) {
				session := doc["lastSession"].(map[string]interface{})
				delete(session, "nextSteps")
			},
			wantError: true,
			errorMsg:  "nextSteps",
		},
		{
			name: "negative duration",
			mutate: func(doc map[string]interface{}) {
				session := doc["lastSession"].(map[string]interface{})
				session["duration_minutes"] = -5
			},
			wantError: true,
			errorMsg:  "duration_minutes",
		},
		{
			name: "unknown work type",
			mutate: func(doc map[string]interface{}) {
				work := doc["currentWork"].(map[string]interface{})
				work["type"] = "refactor"
			},
			wantError: true,
			errorMsg:  "type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validDocument()
			tt.mutate(doc)

			err := Validate(doc)
			if !tt.wantError {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			require.True(t, errors.Is(err, errors.ErrCodeSchemaValidation),
				"expected a schema validation error, got %v", err)
			if tt.errorMsg != "" && !strings.Contains(err.Error(), tt.errorMsg) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.errorMsg)
			}
		})
	}
}

func TestVersionCheckedFirst(t *testing.T) {
	// A document that is wrong in every way still reports only the version
	// mismatch: nothing else is trusted until the version matches.
	doc := map[string]interface{}{"version": 3}

	err := Validate(doc)
	require.Error(t, err)
	require.Contains(t, err.Error(), "expected version 2, got 3")
}
