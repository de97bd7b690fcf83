package errors

import (
	"context"
	stderrors "errors"
	"testing"

	"podclean-api/core/severity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildChain() (*RuntimeError, *RuntimeError) {
	base := &RuntimeError{Type: "base", Message: "root cause", Severity: severity.Warning}
	e1 := Decorate(base, &RuntimeError{Type: "a", Message: "A"})
	e2 := Decorate(e1, &RuntimeError{Type: "b", Message: "B"})
	e3 := Decorate(e2, &RuntimeError{Type: "c", Message: "C"})
	return base, e3
}

func TestDecorate_NestsRuntimeErrorSource(t *testing.T) {
	source := &RuntimeError{Type: "fetch.timeout", Message: "timed out"}
	decorated := Decorate(source, &RuntimeError{Type: "feed.unavailable", Message: "feed unavailable"})

	assert.Equal(t, "feed.unavailable", decorated.Type)
	assert.Equal(t, "feed unavailable", decorated.Message)
	assert.Same(t, source, decorated.Parent())
	assert.Same(t, source, decorated.CauseValue())
}

func TestDecorate_NativeErrorBecomesMessage(t *testing.T) {
	decorated := Decorate(stderrors.New("boom"), &RuntimeError{Type: "x", Message: "m"})

	assert.Nil(t, decorated.Parent())
	assert.Equal(t, "boom", decorated.CauseValue())
}

func TestDecorate_ForeignValueKeptAsIs(t *testing.T) {
	decorated := Decorate(42, &RuntimeError{Type: "x", Message: "m"})
	assert.Equal(t, 42, decorated.CauseValue())
}

func TestDecorate_SeverityInheritance(t *testing.T) {
	source := &RuntimeError{Type: "s", Message: "s", Severity: severity.Error}

	t.Run("inherits when decorator has none", func(t *testing.T) {
		d := Decorate(source, &RuntimeError{Type: "d", Message: "d"})
		assert.Equal(t, severity.Error, d.Severity)
	})

	t.Run("decorator severity wins", func(t *testing.T) {
		d := Decorate(source, &RuntimeError{Type: "d", Message: "d", Severity: severity.Info})
		assert.Equal(t, severity.Info, d.Severity)
	})

	t.Run("native source has nothing to inherit", func(t *testing.T) {
		d := Decorate(stderrors.New("x"), &RuntimeError{Type: "d", Message: "d"})
		assert.False(t, d.Severity.IsSet())
	})

	t.Run("invalid severity is not a runtime error", func(t *testing.T) {
		bad := &RuntimeError{Type: "s", Message: "s", Severity: "loud"}
		d := Decorate(bad, &RuntimeError{Type: "d", Message: "d"})
		assert.False(t, d.Severity.IsSet())
		assert.Nil(t, d.Parent())
	})
}

func TestDecorate_DoesNotMutateArguments(t *testing.T) {
	source := &RuntimeError{Type: "s", Message: "s", Severity: severity.Fatal, Payload: map[string]any{"k": 1}}
	decorating := &RuntimeError{Type: "d", Message: "d", Payload: map[string]any{"url": "u", "error": "stale"}}

	sourceBefore := *source
	decoratingBefore := *decorating

	d := Decorate(source, decorating)
	d.Payload["added"] = true

	assert.Equal(t, sourceBefore.Severity, source.Severity)
	assert.Equal(t, map[string]any{"k": 1}, source.Payload)
	assert.Nil(t, source.Cause)
	assert.Equal(t, decoratingBefore.Severity, decorating.Severity)
	assert.Equal(t, map[string]any{"url": "u", "error": "stale"}, decorating.Payload)
	assert.Nil(t, decorating.Cause)

	assert.Equal(t, "u", d.Payload["url"])
	assert.NotContains(t, d.Payload, "error", "the cause replaces any payload error entry")
}

func TestDecorate_DeterministicChains(t *testing.T) {
	_, first := buildChain()
	_, second := buildChain()
	assert.Equal(t, first, second)
}

func TestHasType_WalksChain(t *testing.T) {
	_, e3 := buildChain()

	assert.True(t, HasType(e3, "c"))
	assert.True(t, HasType(e3, "b"))
	assert.True(t, HasType(e3, "a"))
	assert.True(t, HasType(e3, "base"))
	assert.False(t, HasType(e3, "z"))

	// asking twice gives the same answer
	assert.Equal(t, HasType(e3, "a"), HasType(e3, "a"))
}

func TestHasType_Results(t *testing.T) {
	_, e3 := buildChain()

	assert.True(t, HasType(Err[int](e3), "a"))
	assert.False(t, HasType(Ok(1), "a"))
	assert.False(t, HasType(Result[int]{}, "a"))
}

func TestHasType_StopsAtMalformedLink(t *testing.T) {
	hidden := &RuntimeError{Type: "hidden", Message: "h"}
	malformed := &RuntimeError{Type: "malformed", Message: "m", Severity: "loud", Cause: &Cause{Err: hidden}}
	top := &RuntimeError{Type: "top", Message: "t", Cause: &Cause{Err: malformed}}

	assert.True(t, HasType(top, "top"))
	assert.False(t, HasType(top, "malformed"))
	assert.False(t, HasType(top, "hidden"))
}

func TestHasType_ForeignValues(t *testing.T) {
	assert.False(t, HasType(nil, "x"))
	assert.False(t, HasType("x", "x"))
	assert.False(t, HasType((*RuntimeError)(nil), "x"))
	assert.True(t, HasType(map[string]any{"type": "x", "message": "m"}, "x"))
}

func TestHasTypes(t *testing.T) {
	_, e3 := buildChain()

	assert.True(t, HasTypes(e3, "z", "b"))
	assert.False(t, HasTypes(e3, "y", "z"))
	assert.False(t, HasTypes(e3))
}

func TestTypeChecker(t *testing.T) {
	types := []string{"a", "q"}
	isA := TypeChecker(types...)
	types[0] = "mutated"

	_, e3 := buildChain()
	assert.True(t, isA(e3), "checker keeps its own copy of the types")
	assert.False(t, isA(&RuntimeError{Type: "other", Message: "o"}))
	assert.False(t, isA(nil))
}

func TestFind(t *testing.T) {
	base, e3 := buildChain()

	found, ok := Find(e3, "base")
	require.True(t, ok)
	assert.Same(t, base, found)

	_, ok = Find(e3, "missing")
	assert.False(t, ok)
}

func TestUpdateSeverity(t *testing.T) {
	base, e3 := buildChain()

	t.Run("replaces top-level severity only", func(t *testing.T) {
		updated := UpdateSeverity(e3, severity.Fatal, nil)

		require.NotSame(t, e3, updated)
		assert.Equal(t, severity.Fatal, updated.Severity)
		assert.Equal(t, severity.Warning, e3.Severity, "original untouched")
		assert.Equal(t, severity.Warning, base.Severity, "causes untouched")

		expected := *e3
		expected.Severity = severity.Fatal
		assert.Equal(t, &expected, updated)
	})

	t.Run("filter rejecting returns same value", func(t *testing.T) {
		updated := UpdateSeverity(e3, severity.Fatal, func(*RuntimeError) bool { return false })
		assert.Same(t, e3, updated)
	})

	t.Run("type checker as filter", func(t *testing.T) {
		isBase := TypeChecker("base")
		assert.Equal(t, severity.Debug, UpdateSeverity(e3, severity.Debug, isBase).Severity)

		other := &RuntimeError{Type: "other", Message: "o"}
		assert.Same(t, other, UpdateSeverity(other, severity.Debug, isBase))
	})

	t.Run("nil error", func(t *testing.T) {
		assert.Nil(t, UpdateSeverity(nil, severity.Fatal, nil))
	})

	t.Run("unrecognized severity is ignored", func(t *testing.T) {
		e := New("x", "m")
		updated := UpdateSeverity(e, "bogus", nil)

		assert.Same(t, e, updated)
		assert.True(t, IsRuntimeError(updated))
		assert.True(t, HasType(updated, "x"))

		r := Catching(context.Background(), func(context.Context) Result[int] {
			panic(updated)
		}, nil)
		assert.Equal(t, "x", r.GetError().Type)
	})

	t.Run("clearing severity is allowed", func(t *testing.T) {
		assert.False(t, UpdateSeverity(e3, "", nil).Severity.IsSet())
	})
}
