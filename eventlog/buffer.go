// Package eventlog is the durable session event buffer. Events raised between
// session start and session end are appended to a per-session JSONL file, so
// they survive across the independent short-lived processes (one per hook
// invocation) that produce them. Session end drains the file into the
// document's lastSession record.
package eventlog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattsolo1/grove-progress/progress"
)

// sessionsDirName is where per-session logs live, relative to the directory
// holding the progress document.
const sessionsDirName = ".grove/progress/sessions"

// Buffer stores session-scoped event logs under a base directory, keyed by
// session id.
type Buffer struct {
	baseDir string
}

// New creates a buffer rooted at baseDir. The directory is created lazily on
// first append.
func New(baseDir string) *Buffer {
	return &Buffer{baseDir: baseDir}
}

// ForDocument returns the buffer associated with a progress document: session
// logs live beside the document so every process invocation working against
// the same document agrees on the buffer location.
func ForDocument(docPath string) *Buffer {
	return New(filepath.Join(filepath.Dir(docPath), sessionsDirName))
}

func (b *Buffer) logPath(sessionID string) string {
	return filepath.Join(b.baseDir, sanitizeID(sessionID)+".jsonl")
}

func (b *Buffer) markerPath(sessionID string) string {
	return filepath.Join(b.baseDir, sanitizeID(sessionID)+".start")
}

// sanitizeID keeps session ids usable as filenames.
func sanitizeID(id string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', 0:
			return '_'
		}
		return r
	}, id)
}

// Append adds one event to the session's log, creating the log lazily. An
// event arriving before any explicit session start is never dropped.
func (b *Buffer) Append(sessionID string, event progress.Event) error {
	if err := os.MkdirAll(b.baseDir, 0755); err != nil {
		return fmt.Errorf("create session log directory: %w", err)
	}

	line, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	line = append(line, '\n')

	f, err := os.OpenFile(b.logPath(sessionID), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open session log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(line); err != nil {
		return fmt.Errorf("append event: %w", err)
	}
	return nil
}

// Drain returns all buffered events for the session in append order and
// clears the log. A session with no buffered events drains to nil.
func (b *Buffer) Drain(sessionID string) ([]progress.Event, error) {
	path := b.logPath(sessionID)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			b.clear(sessionID)
			return nil, nil
		}
		return nil, fmt.Errorf("open session log: %w", err)
	}

	var events []progress.Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var event progress.Event
		if err := json.Unmarshal([]byte(line), &event); err != nil {
			f.Close()
			return nil, fmt.Errorf("parse buffered event: %w", err)
		}
		events = append(events, event)
	}
	if err := scanner.Err(); err != nil {
		f.Close()
		return nil, fmt.Errorf("read session log: %w", err)
	}
	f.Close()

	b.clear(sessionID)
	return events, nil
}

func (b *Buffer) clear(sessionID string) {
	os.Remove(b.logPath(sessionID))
	os.Remove(b.markerPath(sessionID))
}

// MarkStart records the session's wall-clock start time so a later process
// invocation can compute the session duration.
func (b *Buffer) MarkStart(sessionID string, at time.Time) error {
	if err := os.MkdirAll(b.baseDir, 0755); err != nil {
		return fmt.Errorf("create session log directory: %w", err)
	}
	data := at.UTC().Format(time.RFC3339)
	if err := os.WriteFile(b.markerPath(sessionID), []byte(data), 0644); err != nil {
		return fmt.Errorf("write start marker: %w", err)
	}
	return nil
}

// StartedAt returns the recorded wall-clock start time for a session, if one
// was marked.
func (b *Buffer) StartedAt(sessionID string) (time.Time, bool, error) {
	data, err := os.ReadFile(b.markerPath(sessionID))
	if err != nil {
		if os.IsNotExist(err) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("read start marker: %w", err)
	}
	at, err := time.Parse(time.RFC3339, strings.TrimSpace(string(data)))
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse start marker: %w", err)
	}
	return at, true, nil
}
