package errors

import (
	"fmt"
)

// SchemaValidation creates a schema validation error with a human-readable reason
func SchemaValidation(reason string) *ProgressError {
	return New(ErrCodeSchemaValidation, fmt.Sprintf("progress schema validation failed: %s", reason)).
		WithDetail("reason", reason)
}

// ProgressNotFound creates a progress file not found error
func ProgressNotFound(path string) *ProgressError {
	return New(ErrCodeProgressNotFound, fmt.Sprintf("progress file not found: %s", path)).
		WithDetail("path", path)
}

// ProgressInvalid creates an unparseable progress file error
func ProgressInvalid(path string, err error) *ProgressError {
	return Wrap(err, ErrCodeProgressInvalid, fmt.Sprintf("progress file is not valid JSON: %s", path)).
		WithDetail("path", path)
}

// WorkStateInvalid creates an invalid work state transition error
func WorkStateInvalid(reason string) *ProgressError {
	return New(ErrCodeWorkStateInvalid, fmt.Sprintf("invalid work state: %s", reason))
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *ProgressError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// GitCommandFailed creates a git execution failure error
func GitCommandFailed(args string, err error) *ProgressError {
	return Wrap(err, ErrCodeGitCommandFailed, fmt.Sprintf("git command failed: git %s", args)).
		WithDetail("args", args)
}

// HookInput creates an unparseable hook input error
func HookInput(err error) *ProgressError {
	return Wrap(err, ErrCodeHookInput, "hook input is not valid JSON")
}

// HookPattern creates an invalid hook pattern error
func HookPattern(pattern string, err error) *ProgressError {
	return Wrap(err, ErrCodeHookPattern, fmt.Sprintf("invalid hook pattern: %s", pattern)).
		WithDetail("pattern", pattern)
}
