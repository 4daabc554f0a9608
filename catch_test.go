// catch_test.go — the scoped guard's three exit branches.
package errtree

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatch_NormalExit(t *testing.T) {
	t.Parallel()

	called := false
	err := Catch(func(error) error {
		called = true
		return nil
	}, func() error { return nil })

	assert.NoError(t, err)
	assert.False(t, called, "handler must not run on normal exit")
}

func TestCatch_Transparent(t *testing.T) {
	t.Parallel()

	original := Make(New("a"), New("b"))
	before := original.(*Group).Trace()

	err := Catch(keepAll, func() error { return original })

	require.Error(t, err)
	assert.True(t, identical(err, original), "identity handler must re-raise the same object")
	// Transparent branch: no suppress mark, no guard frame.
	assert.False(t, original.(*Group).Suppressed())
	assert.Equal(t, len(before), len(original.(*Group).Trace()))
}

func TestCatch_Swallow(t *testing.T) {
	t.Parallel()

	err := Catch(dropAll, func() error {
		return Make(New("a"), New("b"))
	})
	assert.NoError(t, err, "dropping every leaf must swallow the error")
}

func TestCatch_SimplifiedSuppressesAndMarks(t *testing.T) {
	t.Parallel()

	a := bareLeaf("a", "segA")
	b := bareLeaf("b drop", "segB")

	err := Catch(dropPrefix("b"), func() error {
		return group(segOf("segRoot"), a, b)
	})

	require.Error(t, err)
	l, ok := err.(*Leaf)
	require.True(t, ok, "sole survivor must propagate directly")
	assert.True(t, identical(l, a))

	// No cause and no context: the guard hides the implicit link.
	assert.True(t, l.Suppressed())

	// The guard's own frame joins the trace, after the repaired root-to-self
	// frames, marking where the simplification occurred.
	trace := l.Trace()
	require.GreaterOrEqual(t, len(trace), 3)
	assert.Equal(t, "segRoot", trace[0].Function)
	assert.Equal(t, "segA", trace[1].Function)
	guard := trace[len(trace)-1]
	assert.True(t, strings.Contains(guard.Function, "TestCatch_SimplifiedSuppressesAndMarks"),
		"guard frame should point at the Catch call site, got %q", guard.Function)
}

func TestCatch_SimplifiedKeepsExplicitCause(t *testing.T) {
	t.Parallel()

	why := errors.New("why")
	a := bareLeaf("a", "segA").WithCause(why)
	b := bareLeaf("b drop", "segB")

	err := Catch(dropPrefix("b"), func() error {
		return group(nil, a, b)
	})

	require.Error(t, err)
	l := err.(*Leaf)
	assert.False(t, l.Suppressed(), "an explicit cause is a real relationship; never suppressed")
	assert.True(t, identical(l.Cause(), why))
}

func TestCatch_SimplifiedGroupResult(t *testing.T) {
	t.Parallel()

	a := bareLeaf("a", "segA")
	b := bareLeaf("b", "segB")
	c := bareLeaf("c drop", "segC")

	err := Catch(dropPrefix("c"), func() error {
		return group(segOf("segRoot"), a, b, c)
	})

	require.Error(t, err)
	g, ok := err.(*Group)
	require.True(t, ok, "two survivors re-raise as a rebuilt Group")
	assert.True(t, g.Suppressed())

	kids := g.Children()
	require.Len(t, kids, 2)
	assert.True(t, identical(kids[0], a))
	assert.True(t, identical(kids[1], b))

	// The rebuilt Group has no distributed frames of its own; the guard frame
	// is its entire segment.
	require.Len(t, g.Trace(), 1)
	assert.Contains(t, g.Trace()[0].Function, "TestCatch_SimplifiedGroupResult")

	// Survivors carry their repaired full traces.
	assert.True(t, segEqual(a.Trace(), segOf("segRoot", "segA")))
	assert.True(t, segEqual(b.Trace(), segOf("segRoot", "segB")))
}

func TestCatch_HandlerReplacementChainsExplicitly(t *testing.T) {
	t.Parallel()

	timeout := New("timeout")
	replacement := New("gave up").WithContext(timeout)

	err := Catch(func(e error) error {
		if identical(e, timeout) {
			return replacement
		}
		return nil
	}, func() error {
		return Make(timeout, New("other"))
	})

	require.Error(t, err)
	l := err.(*Leaf)
	assert.True(t, identical(l, replacement))
	// The replacement carries a real context link, so nothing is suppressed.
	assert.False(t, l.Suppressed())
	assert.True(t, identical(l.Context(), timeout))
}
