// Package progress implements the progress document: the persisted record of
// session history and current work state for one project location.
package progress

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/mattsolo1/grove-progress/errors"
	"github.com/mattsolo1/grove-progress/schema"
)

// SchemaVersion is the supported progress document schema version.
// Documents with any other version are rejected, never migrated.
const SchemaVersion = 2

// WorkType classifies the current work mode.
type WorkType string

const (
	WorkGeneral WorkType = "general"
	WorkPlan    WorkType = "plan"
	WorkDebug   WorkType = "debug"
	WorkFeature WorkType = "feature"
)

// WorkState is the single current-mode pointer. Fields belonging to a mode
// other than Type are always null; switching modes discards the old pointer.
type WorkState struct {
	Type       WorkType `json:"type"`
	Plan       *string  `json:"plan"`
	PlanTask   *int     `json:"planTask"`
	DebugIssue *string  `json:"debugIssue"`
	DebugPhase *string  `json:"debugPhase"`
	// FeatureID is optional in the schema for backwards compatibility with
	// documents written before feature tracking existed.
	FeatureID *string `json:"featureId,omitempty"`
}

// GeneralWork returns the idle baseline work state.
func GeneralWork() WorkState {
	return WorkState{Type: WorkGeneral}
}

// Commit is a version-control commit reference recorded against a session.
type Commit struct {
	Hash    string `json:"hash"`
	Message string `json:"message"`
}

// SessionRecord summarizes one bounded period of agent activity.
type SessionRecord struct {
	Date            string   `json:"date"`
	DurationMinutes int      `json:"duration_minutes"`
	Summary         string   `json:"summary"`
	Events          []Event  `json:"events"`
	Commits         []Commit `json:"commits"`
	NextSteps       []string `json:"nextSteps"`
}

// Document is the v2 progress document, one per project location.
type Document struct {
	Version        int             `json:"version"`
	Project        string          `json:"project"`
	LastUpdated    time.Time       `json:"lastUpdated"`
	CurrentWork    WorkState       `json:"currentWork"`
	LastSession    SessionRecord   `json:"lastSession"`
	RecentSessions []SessionRecord `json:"recentSessions"`
	KnownIssues    []string        `json:"knownIssues"`
}

// Now returns the current UTC time at second resolution, the granularity all
// progress timestamps use.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// NewDocument creates a minimal, schema-valid v2 document for a project.
func NewDocument(project string) *Document {
	return &Document{
		Version:     SchemaVersion,
		Project:     project,
		LastUpdated: Now(),
		CurrentWork: GeneralWork(),
		LastSession: SessionRecord{
			Date:      Now().Format("2006-01-02"),
			Events:    []Event{},
			Commits:   []Commit{},
			NextSteps: []string{},
		},
		RecentSessions: []SessionRecord{},
		KnownIssues:    []string{},
	}
}

// Load reads and validates the document at path. The raw JSON is validated
// against the v2 schema before any field is decoded into the typed document;
// an incompatible or malformed file surfaces as an error, never auto-repaired.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ProgressNotFound(path)
		}
		return nil, err
	}

	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.ProgressInvalid(path, err)
	}

	if err := schema.Validate(raw); err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.ProgressInvalid(path, err)
	}

	return &doc, nil
}

// LoadOrCreate loads the document at path, creating a minimal one named after
// the containing directory if no file exists yet.
func LoadOrCreate(path string) (*Document, error) {
	doc, err := Load(path)
	if err == nil {
		return doc, nil
	}
	if !errors.Is(err, errors.ErrCodeProgressNotFound) {
		return nil, err
	}

	doc = NewDocument(filepath.Base(filepath.Dir(path)))
	if err := doc.Save(path); err != nil {
		return nil, err
	}
	return doc, nil
}

// Save writes the document to path, refreshing lastUpdated.
func (d *Document) Save(path string) error {
	d.LastUpdated = Now()
	d.normalize()

	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "marshal progress document")
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// normalize replaces nil collections so they serialize as empty arrays,
// keeping the on-disk shape schema-valid.
func (d *Document) normalize() {
	if d.LastSession.Events == nil {
		d.LastSession.Events = []Event{}
	}
	if d.LastSession.Commits == nil {
		d.LastSession.Commits = []Commit{}
	}
	if d.LastSession.NextSteps == nil {
		d.LastSession.NextSteps = []string{}
	}
	if d.RecentSessions == nil {
		d.RecentSessions = []SessionRecord{}
	}
	if d.KnownIssues == nil {
		d.KnownIssues = []string{}
	}
}
