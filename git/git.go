// Package git extracts the version-control facts the progress tracker
// records: the repository root and the commits made during a session.
package git

import (
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/mattsolo1/grove-progress/errors"
	"github.com/mattsolo1/grove-progress/progress"
)

// Root returns the root directory of the repository containing dir.
func Root(ctx context.Context, dir string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--show-toplevel")
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return "", errors.GitCommandFailed("rev-parse --show-toplevel", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// CommitsSince lists the commits made in dir's repository after the given
// time, oldest first, as {hash, message} pairs for a session record.
func CommitsSince(ctx context.Context, dir string, since time.Time) ([]progress.Commit, error) {
	args := []string{
		"log",
		"--since=" + since.UTC().Format(time.RFC3339),
		"--reverse",
		"--pretty=format:%h%x09%s",
	}
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return nil, errors.GitCommandFailed(strings.Join(args, " "), err)
	}

	var commits []progress.Commit
	for _, line := range strings.Split(string(output), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		hash, message, _ := strings.Cut(line, "\t")
		commits = append(commits, progress.Commit{Hash: hash, Message: message})
	}
	return commits, nil
}
