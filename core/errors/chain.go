// ABOUTME: Causal chain operations: decoration, type inspection and severity updates
// ABOUTME: Every operation returns a fresh value and leaves its inputs untouched

package errors

import "podclean-api/core/severity"

// Decorate wraps source in a copy of decorating, preserving source as the
// cause. The result inherits the severity of a RuntimeError source unless
// decorating sets its own. Neither argument is modified.
func Decorate(source any, decorating *RuntimeError) *RuntimeError {
	if decorating == nil {
		decorating = &RuntimeError{}
	}

	out := decorating.clone()
	if src, ok := FromUnknown(source); ok && src.Severity.IsSet() && !out.Severity.IsSet() {
		out.Severity = src.Severity
	}
	out.Payload = clonePayload(decorating.Payload)
	out.Cause = CauseOf(source)
	return out
}

// failure is satisfied by Result values of any success type.
type failure interface {
	IsError() bool
	GetError() *RuntimeError
}

// inspect extracts the RuntimeError held by x, which may be an error, a
// Result, or anything FromUnknown accepts. Ok results hold no error.
func inspect(x any) (*RuntimeError, bool) {
	if r, ok := x.(failure); ok {
		if !r.IsError() {
			return nil, false
		}
		x = r.GetError()
	}
	return FromUnknown(x)
}

// Find returns the first error in the causal chain of x tagged errType.
func Find(x any, errType string) (*RuntimeError, bool) {
	e, ok := inspect(x)
	if !ok {
		return nil, false
	}
	for _, link := range e.Chain() {
		if link.Type == errType {
			return link, true
		}
	}
	return nil, false
}

// HasType reports whether x, or any error in its causal chain, is tagged
// errType. An Ok result never has a type.
func HasType(x any, errType string) bool {
	_, found := Find(x, errType)
	return found
}

// HasTypes reports whether any of types matches per HasType.
func HasTypes(x any, types ...string) bool {
	for _, t := range types {
		if HasType(x, t) {
			return true
		}
	}
	return false
}

// TypeChecker returns a reusable classifier matching any of types anywhere in
// an error's causal chain.
func TypeChecker(types ...string) func(*RuntimeError) bool {
	types = append([]string(nil), types...)
	return func(e *RuntimeError) bool {
		return HasTypes(e, types...)
	}
}

// UpdateSeverity returns a copy of e with its severity replaced when filter
// accepts e; otherwise e itself. A nil filter accepts everything. Causes keep
// their own severities. An unrecognized severity leaves e unchanged.
func UpdateSeverity(e *RuntimeError, s severity.Severity, filter func(*RuntimeError) bool) *RuntimeError {
	if e == nil {
		return nil
	}
	if s.IsSet() && !s.IsValid() {
		return e
	}
	if filter != nil && !filter(e) {
		return e
	}
	out := e.clone()
	out.Severity = s
	return out
}
