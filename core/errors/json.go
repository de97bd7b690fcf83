package errors

import (
	"encoding/json"
	"slices"

	"podclean-api/core/severity"
)

// TypeInvalidShape tags a decoded value that does not have the RuntimeError shape.
const TypeInvalidShape = "runtime_error.invalid_shape"

// itemsKey holds a list payload when it has to share an object with other
// entries.
const itemsKey = "items"

type wireError struct {
	Type     string            `json:"type"`
	Message  string            `json:"message"`
	Severity severity.Severity `json:"severity,omitempty"`
	Payload  any               `json:"payload,omitempty"`
}

// MarshalJSON renders the error in its record shape, with the cause nested
// under payload.error.
func (e *RuntimeError) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.toWire())
}

func (e *RuntimeError) toWire() wireError {
	w := wireError{
		Type:     e.Type,
		Message:  e.Message,
		Severity: e.Severity,
	}
	if e.PayloadList != nil && e.Payload == nil && e.Cause == nil {
		w.Payload = slices.Clone(e.PayloadList)
		return w
	}

	payload := clonePayload(e.Payload)
	if e.PayloadList != nil || e.Cause != nil {
		if payload == nil {
			payload = make(map[string]any, 2)
		}
		if e.PayloadList != nil {
			payload[itemsKey] = slices.Clone(e.PayloadList)
		}
		if e.Cause != nil {
			payload[causeKey] = e.Cause.Value()
		}
	}
	if payload != nil {
		w.Payload = payload
	}
	return w
}

// ToMap returns the record shape as a plain map, e.g. for log fields.
func (e *RuntimeError) ToMap() map[string]any {
	w := e.toWire()
	m := map[string]any{
		"type":    w.Type,
		"message": w.Message,
	}
	if w.Severity.IsSet() {
		m["severity"] = string(w.Severity)
	}
	switch p := w.Payload.(type) {
	case []any:
		m["payload"] = p
	case map[string]any:
		payload := make(map[string]any, len(p))
		for k, v := range p {
			if nested, ok := v.(*RuntimeError); ok {
				v = nested.ToMap()
			}
			payload[k] = v
		}
		m["payload"] = payload
	}
	return m
}

// UnmarshalJSON decodes a record and rebuilds the typed cause chain.
func (e *RuntimeError) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	decoded, ok := FromUnknown(raw)
	if !ok {
		return &RuntimeError{
			Type:    TypeInvalidShape,
			Message: "value does not have the shape of a runtime error",
			Payload: map[string]any{"data": string(data)},
		}
	}
	*e = *decoded
	return nil
}
