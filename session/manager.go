// Package session orchestrates the session lifecycle: start and end of a
// bounded period of agent activity, with event accumulation in between.
package session

import (
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-progress/config"
	"github.com/mattsolo1/grove-progress/eventlog"
	"github.com/mattsolo1/grove-progress/logging"
	"github.com/mattsolo1/grove-progress/progress"
)

// Manager implements the session state machine over a progress document.
// There is no in-memory session state: every method re-reads the durable
// buffer and document, so start, events and end may each come from a
// different process invocation.
type Manager struct {
	maxRecentSessions int
	log               *logrus.Entry
}

// NewManager creates a manager with history retention from the config found
// at or above the document's directory.
func NewManager(docPath string) *Manager {
	retention := config.Default().History.MaxRecentSessions
	if cfg, err := config.LoadFrom(filepath.Dir(docPath)); err == nil {
		retention = cfg.History.MaxRecentSessions
	}
	return &Manager{
		maxRecentSessions: retention,
		log:               logging.NewLogger("session"),
	}
}

// Start begins a session: the document is loaded (created if absent), the
// current work pointer is reset to the general baseline and persisted
// immediately so a concurrent status check observes the running session, and
// the event buffer is seeded with a session_start event.
func (m *Manager) Start(docPath, sessionID string) error {
	doc, err := progress.LoadOrCreate(docPath)
	if err != nil {
		return err
	}

	doc.CurrentWork = progress.GeneralWork()
	if err := doc.Save(docPath); err != nil {
		return err
	}

	buf := eventlog.ForDocument(docPath)
	if err := buf.MarkStart(sessionID, progress.Now()); err != nil {
		return err
	}
	if err := buf.Append(sessionID, progress.NewEvent(progress.KindSessionStart, nil)); err != nil {
		return err
	}

	m.log.WithFields(logrus.Fields{"session": sessionID, "doc": docPath}).Debug("session started")
	return nil
}

// AddEvent appends one event to the session buffer. The buffer is created
// lazily, so an event arriving before any explicit Start is kept rather than
// dropped. Callers are responsible for not double-logging: equivalent
// payloads are appended as-is, without deduplication.
func (m *Manager) AddEvent(docPath, sessionID string, kind progress.Kind, payload map[string]interface{}) error {
	return eventlog.ForDocument(docPath).Append(sessionID, progress.NewEvent(kind, payload))
}

// End finalizes a session: a session_end event carrying the duration is
// appended to the drained buffer, the full ordered event list becomes the new
// lastSession, the previous record is archived, and currentWork is reset.
//
// End without a prior Start degenerates to a session holding only the
// session_end marker; it does not fail. End is not idempotent: a second call
// for the same id finds an already-drained buffer and overwrites lastSession
// with just the marker.
func (m *Manager) End(docPath, sessionID string, durationMinutes int, summary string, commits []progress.Commit, nextSteps []string) error {
	doc, err := progress.LoadOrCreate(docPath)
	if err != nil {
		return err
	}

	events, err := eventlog.ForDocument(docPath).Drain(sessionID)
	if err != nil {
		return err
	}
	events = append(events, progress.NewEvent(progress.KindSessionEnd, map[string]interface{}{
		"duration": durationMinutes,
	}))

	m.archive(doc)

	if commits == nil {
		commits = []progress.Commit{}
	}
	if nextSteps == nil {
		nextSteps = []string{}
	}
	doc.LastSession = progress.SessionRecord{
		Date:            progress.Now().Format("2006-01-02"),
		DurationMinutes: durationMinutes,
		Summary:         summary,
		Events:          events,
		Commits:         commits,
		NextSteps:       nextSteps,
	}
	doc.CurrentWork = progress.GeneralWork()

	if err := doc.Save(docPath); err != nil {
		return err
	}

	m.log.WithFields(logrus.Fields{
		"session":  sessionID,
		"events":   len(events),
		"duration": durationMinutes,
	}).Debug("session ended")
	return nil
}

// archive moves a non-empty previous lastSession into recentSessions,
// trimmed to the configured retention. The freshly created record a new
// document carries (no summary, no events) is not worth keeping.
func (m *Manager) archive(doc *progress.Document) {
	if m.maxRecentSessions <= 0 {
		return
	}
	prev := doc.LastSession
	if prev.Summary == "" && len(prev.Events) == 0 {
		return
	}

	doc.RecentSessions = append(doc.RecentSessions, prev)
	if excess := len(doc.RecentSessions) - m.maxRecentSessions; excess > 0 {
		doc.RecentSessions = doc.RecentSessions[excess:]
	}
}
