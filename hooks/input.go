package hooks

import (
	"encoding/json"
	"io"

	"github.com/mattsolo1/grove-progress/errors"
)

// Input is the JSON payload the agent harness pipes to a prompt hook on
// stdin.
type Input struct {
	Prompt    string `json:"prompt"`
	SessionID string `json:"session_id"`
	Cwd       string `json:"cwd,omitempty"`
}

// ReadInput decodes a hook invocation payload.
func ReadInput(r io.Reader) (*Input, error) {
	var input Input
	if err := json.NewDecoder(r).Decode(&input); err != nil {
		return nil, errors.HookInput(err)
	}
	return &input, nil
}
