package progress

import (
	"encoding/json"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/mattsolo1/grove-progress/errors"
)

// Kind is the type of a progress event.
type Kind string

const (
	KindSessionStart      Kind = "session_start"
	KindSessionEnd        Kind = "session_end"
	KindCheckpoint        Kind = "checkpoint"
	KindPlanStarted       Kind = "plan_started"
	KindPlanTaskCompleted Kind = "plan_task_completed"
	KindDebugStarted      Kind = "debug_started"
	KindDebugRootCause    Kind = "debug_root_cause"
	KindDebugResolved     Kind = "debug_resolved"
	KindFeatureStarted    Kind = "feature_started"
	KindFeatureCompleted  Kind = "feature_completed"
)

// Event is a timestamped, typed record of a notable occurrence during a
// session. It serializes flat: type and timestamp are merged with the payload
// fields into a single JSON object, no nested payload wrapper.
type Event struct {
	Kind      Kind
	Timestamp time.Time
	Payload   map[string]interface{}
}

// NewEvent stamps the current UTC time (second resolution) on a new event.
func NewEvent(kind Kind, payload map[string]interface{}) Event {
	return Event{
		Kind:      kind,
		Timestamp: Now(),
		Payload:   payload,
	}
}

// MarshalJSON implements the flat wire form.
func (e Event) MarshalJSON() ([]byte, error) {
	flat := make(map[string]interface{}, len(e.Payload)+2)
	for k, v := range e.Payload {
		flat[k] = v
	}
	flat["type"] = string(e.Kind)
	flat["timestamp"] = e.Timestamp.UTC().Format(time.RFC3339)
	return json.Marshal(flat)
}

// UnmarshalJSON is the inverse of MarshalJSON: type and timestamp are popped
// off the flat object and everything else becomes the payload.
func (e *Event) UnmarshalJSON(data []byte) error {
	var flat map[string]interface{}
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}

	kind, _ := flat["type"].(string)
	delete(flat, "type")

	var ts time.Time
	if raw, ok := flat["timestamp"].(string); ok {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return errors.SchemaValidation("event has unparseable timestamp: " + raw)
		}
		ts = parsed.UTC()
	}
	delete(flat, "timestamp")

	e.Kind = Kind(kind)
	e.Timestamp = ts
	if len(flat) == 0 {
		e.Payload = nil
	} else {
		e.Payload = flat
	}
	return nil
}

// DecodePayload decodes the event payload into a typed struct. Numeric
// payload fields survive a JSON round trip as float64, so decoding is weakly
// typed.
func (e Event) DecodePayload(out interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "build payload decoder")
	}
	if err := dec.Decode(e.Payload); err != nil {
		return errors.Wrap(err, errors.ErrCodeInvalidInput, "decode event payload")
	}
	return nil
}

// PlanStartedPayload is the payload of a plan_started event.
type PlanStartedPayload struct {
	Plan string `mapstructure:"plan"`
}

// PlanTaskCompletedPayload is the payload of a plan_task_completed event.
type PlanTaskCompletedPayload struct {
	Task int `mapstructure:"task"`
}

// DebugPayload covers debug_started, debug_root_cause and debug_resolved.
type DebugPayload struct {
	Issue string `mapstructure:"issue"`
	Phase string `mapstructure:"phase"`
}

// SessionEndPayload is the payload of a session_end event.
type SessionEndPayload struct {
	Duration int `mapstructure:"duration"`
}

// FeaturePayload covers feature_started and feature_completed.
type FeaturePayload struct {
	Feature string `mapstructure:"feature"`
}
