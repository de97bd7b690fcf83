// ABOUTME: Bridge between panic-based control flow and Result values
// ABOUTME: Throwing raises the error of a failed Result; Catching recovers raised values into Results

package errors

import (
	"context"

	"podclean-api/core/result"
	"podclean-api/core/severity"
)

const (
	// TypeUnexpectedResult signals misuse of the bridge: something other than
	// a constructed Result was handed to Throwing. It is never recovered.
	TypeUnexpectedResult = "throwing.unexpected_result"

	// TypeUnknownError tags a raised value that was not a RuntimeError.
	TypeUnknownError = "catching.unknown_error"
)

// ErrorHandler reclassifies an error before Catching returns it.
type ErrorHandler func(ctx context.Context, err *RuntimeError) *RuntimeError

func unexpectedResult(value any) *RuntimeError {
	return &RuntimeError{
		Type:     TypeUnexpectedResult,
		Message:  "throwing can only be used with results built by Ok or Err",
		Severity: severity.Fatal,
		Payload:  map[string]any{"result": value},
	}
}

// SyncedThrowing returns the value of an Ok result and panics with the
// *RuntimeError of a failed one. A result that was never constructed panics
// with a fatal TypeUnexpectedResult error.
func SyncedThrowing[A any](r Result[A]) A {
	if !r.IsValid() {
		panic(unexpectedResult(r))
	}
	if r.IsOk() {
		return r.Get()
	}
	panic(r.GetError())
}

// Throwing waits for a settled or pending result, then behaves like
// SyncedThrowing. If ctx ends first, the context error is raised.
func Throwing[A any](ctx context.Context, pending result.Awaitable[A, *RuntimeError]) A {
	if pending == nil {
		panic(unexpectedResult(nil))
	}
	if n, ok := pending.(interface{ IsNil() bool }); ok && n.IsNil() {
		panic(unexpectedResult(nil))
	}
	settled, err := pending.Await(ctx)
	if err != nil {
		panic(err)
	}
	return SyncedThrowing(settled)
}

// Catching runs callback and converts whatever it produces into a Result.
//
// A failed result, or a raised RuntimeError, is passed through handleError.
// Any other raised value becomes a TypeUnknownError whose cause is the
// loggable form of that value, then goes through handleError too. Successful
// results are returned as they are. handleError runs at most once, after the
// callback has returned or panicked; nil means the identity.
//
// Panics carrying TypeUnexpectedResult are re-raised. Only panics on the
// calling goroutine are seen; work started on other goroutines must report
// back through a result.Promise.
func Catching[A any](ctx context.Context, callback func(ctx context.Context) Result[A], handleError ErrorHandler) Result[A] {
	if handleError == nil {
		handleError = func(_ context.Context, err *RuntimeError) *RuntimeError { return err }
	}

	settled, raised, didPanic := invoke(ctx, callback)
	if !didPanic {
		switch {
		case settled.IsOk():
			return settled
		case settled.IsError():
			return Err[A](handleError(ctx, settled.GetError()))
		default:
			return Err[A](handleError(ctx, &RuntimeError{
				Type:    TypeUnknownError,
				Message: "callback returned a result that was not built by Ok or Err",
			}))
		}
	}

	if e, ok := FromUnknown(raised); ok {
		if e.Type == TypeUnexpectedResult {
			panic(raised)
		}
		return Err[A](handleError(ctx, e))
	}

	return Err[A](handleError(ctx, &RuntimeError{
		Type:    TypeUnknownError,
		Message: messageOf(raised),
		Cause:   &Cause{Detail: loggable(raised)},
	}))
}

func invoke[A any](ctx context.Context, callback func(ctx context.Context) Result[A]) (settled Result[A], raised any, didPanic bool) {
	defer func() {
		if r := recover(); r != nil {
			raised, didPanic = r, true
		}
	}()
	return callback(ctx), nil, false
}
