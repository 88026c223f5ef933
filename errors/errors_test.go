package errors

import (
	"fmt"
	"testing"
)

func TestProgressError(t *testing.T) {
	// Test basic error creation
	err := New(ErrCodeProgressNotFound, "progress file not found")
	if err.Code != ErrCodeProgressNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeProgressNotFound, err.Code)
	}

	// Test error wrapping
	cause := fmt.Errorf("underlying error")
	wrapped := Wrap(cause, ErrCodeGitCommandFailed, "git failed")

	if wrapped.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}

	// Test Is function
	if !Is(wrapped, ErrCodeGitCommandFailed) {
		t.Error("Is should return true for matching code")
	}

	if Is(wrapped, ErrCodeProgressNotFound) {
		t.Error("Is should return false for non-matching code")
	}

	// Test WithDetail
	detailed := err.WithDetail("path", "/tmp/project-progress.json").WithDetail("attempts", 2)
	if detailed.Details["path"] != "/tmp/project-progress.json" {
		t.Error("WithDetail should add details")
	}
}

func TestErrorConstructors(t *testing.T) {
	// Test SchemaValidation
	err := SchemaValidation("missing required field: version")
	if err.Code != ErrCodeSchemaValidation {
		t.Errorf("expected code %s, got %s", ErrCodeSchemaValidation, err.Code)
	}
	if err.Details["reason"] != "missing required field: version" {
		t.Error("SchemaValidation should include reason detail")
	}

	// Test ProgressNotFound
	err = ProgressNotFound("/work/project-progress.json")
	if err.Code != ErrCodeProgressNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeProgressNotFound, err.Code)
	}
	if err.Details["path"] != "/work/project-progress.json" {
		t.Error("ProgressNotFound should include path detail")
	}

	// Test GitCommandFailed preserves the cause
	cause := fmt.Errorf("exit status 128")
	err = GitCommandFailed("log --oneline", cause)
	if err.Unwrap() != cause {
		t.Error("GitCommandFailed should wrap the cause")
	}
}
