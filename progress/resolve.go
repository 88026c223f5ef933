package progress

import (
	"os"
	"path/filepath"
)

// Filename is the canonical progress document filename.
const Filename = "project-progress.json"

// CandidateDirs returns the directories to search for a progress document,
// closest first: startDir itself, then each ancestor up to and including the
// first one isRepoRoot reports true for. The repo-root level is still a
// candidate, but nothing above it is, so one project never inherits an
// unrelated ancestor's document.
func CandidateDirs(startDir string, isRepoRoot func(dir string) bool) []string {
	var dirs []string
	dir := startDir
	for {
		dirs = append(dirs, dir)
		if isRepoRoot(dir) {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return dirs
}

// FindIn returns the first candidate directory holding a document, using the
// injected existence check. Pure over its inputs, so resolution order is
// testable without filesystem fixtures.
func FindIn(dirs []string, exists func(path string) bool) (string, bool) {
	for _, dir := range dirs {
		path := filepath.Join(dir, Filename)
		if exists(path) {
			return path, true
		}
	}
	return "", false
}

// hasVCSMarker reports whether dir is a repository root. A .git entry counts
// whether it is a directory or a worktree pointer file.
func hasVCSMarker(dir string) bool {
	_, err := os.Lstat(filepath.Join(dir, ".git"))
	return err == nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Resolve locates the progress document relevant to startDir. A document in
// startDir itself always wins over one further up the tree; otherwise
// ancestors are searched up to the repository root.
//
// A miss with createIfMissing false is a normal outcome, reported as
// found=false with no error. With createIfMissing true a minimal document is
// created at startDir, never at an ancestor.
func Resolve(startDir string, createIfMissing bool) (path string, found bool, err error) {
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, err
	}

	if path, ok := FindIn(CandidateDirs(absDir, hasVCSMarker), fileExists); ok {
		return path, true, nil
	}

	if !createIfMissing {
		return "", false, nil
	}

	path = filepath.Join(absDir, Filename)
	doc := NewDocument(filepath.Base(absDir))
	if err := doc.Save(path); err != nil {
		return "", false, err
	}
	return path, true, nil
}
