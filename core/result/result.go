// Package result provides Either, a container holding exactly one of a
// success value or an error value, and Promise, its pending counterpart.
//
// Either values are immutable. Calling Get on an error result or GetError on
// a successful one is a programming error and panics.
package result

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNotOk is the panic value of Get on a result that is not Ok.
	ErrNotOk = errors.New("result: Get called on a result that is not Ok")

	// ErrNotError is the panic value of GetError on a result that is not an error.
	ErrNotError = errors.New("result: GetError called on a result that is not an error")
)

type variant uint8

const (
	unset variant = iota
	okVariant
	errVariant
)

// Either holds exactly one of a value of type A or an error of type E.
// The zero value was not built by a constructor and is neither Ok nor Err.
type Either[A, E any] struct {
	value A
	err   E
	state variant
}

// Ok builds a successful result.
func Ok[A, E any](value A) Either[A, E] {
	return Either[A, E]{value: value, state: okVariant}
}

// Err builds a failed result.
func Err[A, E any](err E) Either[A, E] {
	return Either[A, E]{err: err, state: errVariant}
}

// IsOk reports whether the result holds a value.
func (r Either[A, E]) IsOk() bool { return r.state == okVariant }

// IsError reports whether the result holds an error.
func (r Either[A, E]) IsError() bool { return r.state == errVariant }

// IsValid reports whether the result was built with Ok or Err.
func (r Either[A, E]) IsValid() bool { return r.state != unset }

// Get returns the value of an Ok result.
func (r Either[A, E]) Get() A {
	if r.state != okVariant {
		panic(ErrNotOk)
	}
	return r.value
}

// GetError returns the error of an Err result.
func (r Either[A, E]) GetError() E {
	if r.state != errVariant {
		panic(ErrNotError)
	}
	return r.err
}

// Unpack returns both slots and whether the result is Ok, for callers that
// prefer the comma-ok style over accessor calls.
func (r Either[A, E]) Unpack() (A, E, bool) {
	return r.value, r.err, r.state == okVariant
}

// Await returns r itself. A settled result is trivially awaitable, so
// functions accepting an Awaitable take settled and pending results alike.
func (r Either[A, E]) Await(context.Context) (Either[A, E], error) {
	return r, nil
}

func (r Either[A, E]) String() string {
	switch r.state {
	case okVariant:
		return fmt.Sprintf("Ok(%v)", r.value)
	case errVariant:
		return fmt.Sprintf("Err(%v)", r.err)
	default:
		return "Either(unset)"
	}
}

// Map applies fn to the value of an Ok result. Errors pass through unchanged.
func Map[A, B, E any](r Either[A, E], fn func(A) B) Either[B, E] {
	switch r.state {
	case okVariant:
		return Ok[B, E](fn(r.value))
	case errVariant:
		return Err[B](r.err)
	default:
		return Either[B, E]{}
	}
}

// Awaitable is a result that may still be pending. Await blocks until the
// result settles or ctx ends; the error is non-nil only in the latter case.
type Awaitable[A, E any] interface {
	Await(ctx context.Context) (Either[A, E], error)
}

// Promise is a result computed on its own goroutine. It settles exactly once.
type Promise[A, E any] struct {
	done      chan struct{}
	settled   Either[A, E]
	recovered *panicked
}

// Go starts fn on a new goroutine and returns a Promise of its result.
// A panic inside fn is re-raised by Await on the awaiting goroutine, so it
// reaches the caller's recovery boundary instead of crashing the process.
func Go[A, E any](fn func() Either[A, E]) *Promise[A, E] {
	p := &Promise[A, E]{done: make(chan struct{})}
	go p.run(fn)
	return p
}

type panicked struct {
	value any
}

func (p *Promise[A, E]) run(fn func() Either[A, E]) {
	defer close(p.done)
	defer func() {
		if r := recover(); r != nil {
			p.recovered = &panicked{value: r}
		}
	}()
	p.settled = fn()
}

// Await blocks until the promise settles or ctx ends.
func (p *Promise[A, E]) Await(ctx context.Context) (Either[A, E], error) {
	select {
	case <-p.done:
		if p.recovered != nil {
			panic(p.recovered.value)
		}
		return p.settled, nil
	case <-ctx.Done():
		return Either[A, E]{}, ctx.Err()
	}
}

// IsNil reports whether p is a nil promise, which can sit inside a non-nil
// Awaitable.
func (p *Promise[A, E]) IsNil() bool {
	return p == nil
}

// Done is closed once the promise has settled.
func (p *Promise[A, E]) Done() <-chan struct{} {
	return p.done
}
