package errors

import "podclean-api/core/result"

// Result is the return type of every fallible operation in the service.
type Result[A any] = result.Either[A, *RuntimeError]

// Ok builds a successful Result.
func Ok[A any](value A) Result[A] {
	return result.Ok[A, *RuntimeError](value)
}

// Err builds a failed Result.
func Err[A any](err *RuntimeError) Result[A] {
	return result.Err[A](err)
}

// FromNativeError turns an unexpected failure into a failed Result: fallback
// decorated with the failure as its cause.
func FromNativeError[A any](native any, fallback *RuntimeError) Result[A] {
	return Err[A](Decorate(native, fallback))
}

// FromPair adapts a (value, error) return. A nil err yields Ok(value).
func FromPair[A any](value A, err error, fallback *RuntimeError) Result[A] {
	if err != nil {
		return FromNativeError[A](err, fallback)
	}
	return Ok(value)
}

// ToPair is the inverse of FromPair, for callers that speak plain Go errors.
func ToPair[A any](r Result[A]) (A, error) {
	value, err, ok := r.Unpack()
	if ok {
		return value, nil
	}
	if err == nil {
		return value, unexpectedResult(r)
	}
	return value, err
}
