// Package testutil provides shared fixtures for grove-progress tests.
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// RequireGit skips the test if git is not available
func RequireGit(t *testing.T) {
	t.Helper()

	if err := exec.Command("git", "version").Run(); err != nil {
		t.Skip("git not available")
	}
}

// InitGitRepo initializes a git repository with one commit in the given directory
func InitGitRepo(t *testing.T, dir string) {
	t.Helper()

	run := func(args ...string) {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v failed: %v\n%s", args, err, out)
		}
	}

	run("init")
	run("config", "user.name", "Test User")
	run("config", "user.email", "test@example.com")

	readme := filepath.Join(dir, "README.md")
	require.NoError(t, os.WriteFile(readme, []byte("# Test Project\n"), 0600))

	run("add", ".")
	run("commit", "-m", "Initial commit")
}

// Commit stages everything and creates a commit with the given message
func Commit(t *testing.T, dir, message string) {
	t.Helper()

	for _, args := range [][]string{
		{"add", "."},
		{"commit", "--allow-empty", "-m", message},
	} {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v failed: %v\n%s", args, err, out)
		}
	}
}
