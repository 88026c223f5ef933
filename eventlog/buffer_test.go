package eventlog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-progress/progress"
)

func TestAppendAndDrain(t *testing.T) {
	buf := New(filepath.Join(t.TempDir(), "sessions"))

	require.NoError(t, buf.Append("s1", progress.NewEvent(progress.KindSessionStart, nil)))
	require.NoError(t, buf.Append("s1", progress.NewEvent(progress.KindPlanStarted, map[string]interface{}{"plan": "p.md"})))
	require.NoError(t, buf.Append("s1", progress.NewEvent(progress.KindPlanTaskCompleted, map[string]interface{}{"task": 1})))

	events, err := buf.Drain("s1")
	require.NoError(t, err)
	require.Len(t, events, 3)

	// Append order is preserved.
	assert.Equal(t, progress.KindSessionStart, events[0].Kind)
	assert.Equal(t, progress.KindPlanStarted, events[1].Kind)
	assert.Equal(t, progress.KindPlanTaskCompleted, events[2].Kind)
	assert.Equal(t, "p.md", events[1].Payload["plan"])

	// Drain clears: a second drain is empty.
	events, err = buf.Drain("s1")
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestAppendSurvivesSeparateInvocations(t *testing.T) {
	// Each hook invocation is its own process with its own Buffer value.
	// Only the directory on disk is shared.
	dir := filepath.Join(t.TempDir(), "sessions")

	require.NoError(t, New(dir).Append("s1", progress.NewEvent(progress.KindSessionStart, nil)))
	require.NoError(t, New(dir).Append("s1", progress.NewEvent(progress.KindCheckpoint, nil)))

	events, err := New(dir).Drain("s1")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, progress.KindSessionStart, events[0].Kind)
	assert.Equal(t, progress.KindCheckpoint, events[1].Kind)
}

func TestAppendBeforeSessionStart(t *testing.T) {
	// An event arriving before any explicit session start creates the
	// buffer lazily instead of being dropped.
	buf := New(filepath.Join(t.TempDir(), "sessions"))

	require.NoError(t, buf.Append("orphan", progress.NewEvent(progress.KindCheckpoint, nil)))

	events, err := buf.Drain("orphan")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, progress.KindCheckpoint, events[0].Kind)
}

func TestDrainUnknownSession(t *testing.T) {
	buf := New(filepath.Join(t.TempDir(), "sessions"))

	events, err := buf.Drain("never-started")
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestSessionsAreIsolated(t *testing.T) {
	buf := New(filepath.Join(t.TempDir(), "sessions"))

	require.NoError(t, buf.Append("s1", progress.NewEvent(progress.KindCheckpoint, nil)))
	require.NoError(t, buf.Append("s2", progress.NewEvent(progress.KindDebugStarted, nil)))

	events, err := buf.Drain("s1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, progress.KindCheckpoint, events[0].Kind)

	events, err = buf.Drain("s2")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, progress.KindDebugStarted, events[0].Kind)
}

func TestSessionIDSanitized(t *testing.T) {
	base := filepath.Join(t.TempDir(), "sessions")
	buf := New(base)

	require.NoError(t, buf.Append("../escape:id", progress.NewEvent(progress.KindCheckpoint, nil)))

	// The log stays inside the buffer directory.
	entries, err := os.ReadDir(base)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	events, err := buf.Drain("../escape:id")
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestStartMarker(t *testing.T) {
	buf := New(filepath.Join(t.TempDir(), "sessions"))

	_, marked, err := buf.StartedAt("s1")
	require.NoError(t, err)
	assert.False(t, marked)

	at := time.Date(2026, 1, 5, 9, 30, 0, 0, time.UTC)
	require.NoError(t, buf.MarkStart("s1", at))

	got, marked, err := buf.StartedAt("s1")
	require.NoError(t, err)
	require.True(t, marked)
	assert.True(t, at.Equal(got))

	// Drain clears the marker along with the log.
	_, err = buf.Drain("s1")
	require.NoError(t, err)
	_, marked, err = buf.StartedAt("s1")
	require.NoError(t, err)
	assert.False(t, marked)
}

func TestForDocument(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, progress.Filename)

	buf := ForDocument(docPath)
	require.NoError(t, buf.Append("s1", progress.NewEvent(progress.KindCheckpoint, nil)))

	// Session logs live beside the document.
	assert.DirExists(t, filepath.Join(dir, ".grove", "progress", "sessions"))
}
