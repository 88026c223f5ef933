package cli

import (
	"fmt"
	"os"

	"github.com/mattsolo1/grove-progress/errors"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
	}
}

// Handle provides user-friendly error messages based on error type
func (h *ErrorHandler) Handle(err error) error {
	switch errors.GetCode(err) {
	case errors.ErrCodeProgressNotFound:
		fmt.Fprintf(os.Stderr, "❌ No progress file found. Run 'grove-progress init' to start tracking this project.\n")
		return err

	case errors.ErrCodeSchemaValidation:
		if progErr, ok := err.(*errors.ProgressError); ok {
			fmt.Fprintf(os.Stderr, "❌ Progress file failed validation: %v\n", progErr.Details["reason"])
			fmt.Fprintf(os.Stderr, "The file was not modified. Fix it by hand or move it aside and run 'grove-progress init'.\n")
		} else {
			fmt.Fprintf(os.Stderr, "❌ Progress file failed validation: %v\n", err)
		}
		return err

	case errors.ErrCodeWorkStateInvalid:
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		fmt.Fprintf(os.Stderr, "Plan mode needs --plan, debug mode needs --issue.\n")
		return err

	case errors.ErrCodeGitCommandFailed:
		fmt.Fprintf(os.Stderr, "❌ Git command failed. Commits for this session were not collected.\n")
		if h.Verbose {
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}
		return err

	default:
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)

		if h.Verbose {
			if progErr, ok := err.(*errors.ProgressError); ok {
				fmt.Fprintf(os.Stderr, "\nDetails:\n%s\n", progErr.ToJSON())
			}
		}
		return err
	}
}
