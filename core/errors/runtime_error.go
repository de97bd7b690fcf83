// ABOUTME: RuntimeError, the structured error record carried by every fallible operation
// ABOUTME: Errors form causal chains through an explicit typed Cause link

package errors

import (
	"fmt"
	"maps"
	"strings"

	"podclean-api/core/severity"
)

// RuntimeError is a classified failure. Type is a dotted machine-readable tag
// such as "parse_json" or "catching.unknown_error"; Message is for humans.
//
// An empty Severity means the error is unclassified. Payload holds
// contextual data; PayloadList holds it instead when the payload arrived as a
// JSON array. Cause, when set, links to the failure this error wraps.
//
// RuntimeError values are treated as immutable once built: the operations in
// this package always return fresh values instead of editing their inputs.
type RuntimeError struct {
	Type        string
	Message     string
	Severity    severity.Severity
	Payload     map[string]any
	PayloadList []any
	Cause       *Cause
}

// Cause is the predecessor of a RuntimeError in its causal chain. When Err is
// set the predecessor is itself a RuntimeError; otherwise Detail holds the
// loggable form of a foreign failure (an error message or the raw value).
type Cause struct {
	Err    *RuntimeError
	Detail any
}

// New builds an unclassified RuntimeError.
func New(errType, message string) *RuntimeError {
	return &RuntimeError{Type: errType, Message: message}
}

// CauseOf converts any failure into a Cause, keeping RuntimeErrors intact.
func CauseOf(source any) *Cause {
	if e, ok := FromUnknown(source); ok {
		return &Cause{Err: e}
	}
	return &Cause{Detail: loggable(source)}
}

// Value returns the loggable form of the cause: the RuntimeError when there
// is one, the foreign detail otherwise.
func (c *Cause) Value() any {
	if c == nil {
		return nil
	}
	if c.Err != nil {
		return c.Err
	}
	return c.Detail
}

func (c *Cause) String() string {
	if c == nil {
		return ""
	}
	if c.Err != nil {
		return c.Err.Error()
	}
	return fmt.Sprint(c.Detail)
}

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := e.Type + ": " + e.Message
	if e.Cause != nil {
		return fmt.Sprintf("%s (caused by: %s)", msg, e.Cause)
	}
	return msg
}

// Unwrap exposes the RuntimeError cause to errors.Is and errors.As.
func (e *RuntimeError) Unwrap() error {
	if parent := e.Parent(); parent != nil {
		return parent
	}
	return nil
}

// Is matches any RuntimeError target with the same type tag.
func (e *RuntimeError) Is(target error) bool {
	t, ok := target.(*RuntimeError)
	if !ok || t == nil || e == nil {
		return false
	}
	return e.Type == t.Type
}

// Parent returns the RuntimeError this error wraps, if any.
func (e *RuntimeError) Parent() *RuntimeError {
	if e == nil || e.Cause == nil {
		return nil
	}
	return e.Cause.Err
}

// CauseValue returns the loggable form of the wrapped failure, or nil.
func (e *RuntimeError) CauseValue() any {
	if e == nil {
		return nil
	}
	return e.Cause.Value()
}

// Chain lists e followed by every well-formed RuntimeError it wraps.
func (e *RuntimeError) Chain() []*RuntimeError {
	var chain []*RuntimeError
	for cur := e; cur != nil && cur.valid(); cur = cur.Parent() {
		chain = append(chain, cur)
	}
	return chain
}

// Types returns the type tags of the chain, outermost first.
func (e *RuntimeError) Types() []string {
	chain := e.Chain()
	types := make([]string, len(chain))
	for i, link := range chain {
		types[i] = link.Type
	}
	return types
}

func (e *RuntimeError) String() string {
	return strings.Join(e.Types(), " <- ") + ": " + e.Message
}

// valid applies the shape rule that Go's static types leave open: a set
// severity must be one of the recognized names.
func (e *RuntimeError) valid() bool {
	return e != nil && (!e.Severity.IsSet() || e.Severity.IsValid())
}

// clone copies the top-level record. Payload and cause are shared, which is
// safe because neither is edited after construction.
func (e *RuntimeError) clone() *RuntimeError {
	c := *e
	return &c
}

func clonePayload(payload map[string]any) map[string]any {
	if payload == nil {
		return nil
	}
	out := maps.Clone(payload)
	delete(out, causeKey)
	return out
}
