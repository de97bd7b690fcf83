package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"maps"
	"runtime"
	"slices"

	"podclean-api/core/severity"
)

// causeKey is where the cause appears when an error is rendered as a map.
const causeKey = "error"

const nullMessage = "Unknown error (null value)"

// FromUnknown converts a value of unknown origin into a RuntimeError. It is
// the single entry point for panics, decoded JSON and error chains:
//
//   - *RuntimeError and RuntimeError values are accepted when well formed;
//   - an error is accepted when its chain contains a *RuntimeError;
//   - a map is accepted when "type" and "message" are strings, "severity"
//     (if present) names a severity and "payload" (if present) is an object
//     or an array. A nested payload "error" becomes the typed Cause.
func FromUnknown(value any) (*RuntimeError, bool) {
	switch v := value.(type) {
	case nil:
		return nil, false
	case *RuntimeError:
		return v, v.valid()
	case RuntimeError:
		return v.clone(), v.valid()
	case map[string]any:
		return fromMap(v)
	case error:
		var e *RuntimeError
		if stderrors.As(v, &e) && e.valid() {
			return e, true
		}
	}
	return nil, false
}

// IsRuntimeError reports whether value can be treated as a RuntimeError.
func IsRuntimeError(value any) bool {
	_, ok := FromUnknown(value)
	return ok
}

func fromMap(m map[string]any) (*RuntimeError, bool) {
	errType, ok := m["type"].(string)
	if !ok {
		return nil, false
	}
	message, ok := m["message"].(string)
	if !ok {
		return nil, false
	}

	e := &RuntimeError{Type: errType, Message: message}

	if raw, present := m["severity"]; present {
		name, _ := raw.(string)
		sev, ok := severity.Parse(name)
		if !ok {
			return nil, false
		}
		e.Severity = sev
	}

	if raw, present := m["payload"]; present {
		switch p := raw.(type) {
		case map[string]any:
			payload := maps.Clone(p)
			if cause, has := payload[causeKey]; has {
				e.Cause = CauseOf(cause)
				delete(payload, causeKey)
			}
			e.Payload = payload
		case []any:
			e.PayloadList = slices.Clone(p)
		default:
			return nil, false
		}
	}

	return e, true
}

// loggable returns the form of a failure suitable for storing as a cause:
// the message of an error, the value itself otherwise.
func loggable(value any) any {
	if isNilPanic(value) {
		return nil
	}
	if err, ok := value.(error); ok {
		return err.Error()
	}
	return value
}

// messageOf derives a human-readable message from an arbitrary raised value.
func messageOf(value any) string {
	if isNilPanic(value) {
		return nullMessage
	}
	switch v := value.(type) {
	case nil:
		return nullMessage
	case string:
		return v
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	case map[string]any:
		if msg, ok := v["message"].(string); ok {
			return msg
		}
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(data)
}

// isNilPanic detects panic(nil), which the runtime reports as a PanicNilError.
func isNilPanic(value any) bool {
	err, ok := value.(error)
	if !ok {
		return false
	}
	var nilPanic *runtime.PanicNilError
	return stderrors.As(err, &nilPanic)
}
