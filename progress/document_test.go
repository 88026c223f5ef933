package progress

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-progress/errors"
	"github.com/mattsolo1/grove-progress/schema"
)

func TestNewDocumentIsSchemaValid(t *testing.T) {
	doc := NewDocument("demo")
	require.NoError(t, schema.Validate(doc))
	assert.Equal(t, SchemaVersion, doc.Version)
	assert.Equal(t, "demo", doc.Project)
	assert.Equal(t, WorkGeneral, doc.CurrentWork.Type)
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, Filename)

	doc := NewDocument("demo")
	doc.KnownIssues = []string{"flaky importer test"}
	require.NoError(t, doc.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", loaded.Project)
	assert.Equal(t, []string{"flaky importer test"}, loaded.KnownIssues)
	assert.Equal(t, time.UTC, loaded.LastUpdated.Location())
}

func TestSaveRefreshesLastUpdated(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, Filename)

	doc := NewDocument("demo")
	doc.LastUpdated = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, doc.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.True(t, loaded.LastUpdated.After(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestSaveWritesEmptyArraysNotNull(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, Filename)

	doc := NewDocument("demo")
	doc.LastSession.Events = nil
	doc.RecentSessions = nil
	doc.KnownIssues = nil
	require.NoError(t, doc.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	session := raw["lastSession"].(map[string]interface{})
	assert.IsType(t, []interface{}{}, session["events"])
	assert.IsType(t, []interface{}{}, raw["recentSessions"])
	assert.IsType(t, []interface{}{}, raw["knownIssues"])
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), Filename))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeProgressNotFound))
}

func TestLoadRejectsWrongVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, Filename)

	doc := NewDocument("demo")
	require.NoError(t, doc.Save(path))

	// Corrupt the version on disk. Loading must fail, never migrate.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	raw["version"] = 1
	data, err = json.Marshal(raw)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))

	_, err = Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeSchemaValidation))
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, Filename)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeProgressInvalid))
}

func TestLoadOrCreate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, Filename)

	doc, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(dir), doc.Project)

	// The file now exists and reloads as-is.
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, doc.Project, loaded.Project)
}
