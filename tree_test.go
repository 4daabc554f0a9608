// tree_test.go — Make semantics, Group labeling, invariants, traversal.
package errtree

import (
	"errors"
	"fmt"
	"testing"
)

func TestMake_SingletonCollapse(t *testing.T) {
	t.Parallel()

	a := New("lonely")
	got := Make(a)
	if !identical(got, a) {
		t.Fatalf("Make(a) must return a itself; got %v", got)
	}
	if _, isGroup := got.(*Group); isGroup {
		t.Fatalf("Make with one child must not wrap")
	}
}

func TestMake_ZeroChildrenPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Fatalf("Make() with no children must panic")
		}
	}()
	_ = Make()
}

func TestMake_PreservesOrderAndDuplicates(t *testing.T) {
	t.Parallel()

	a := New("a")
	b := New("b")
	g, ok := Make(a, b, a).(*Group)
	if !ok {
		t.Fatalf("Make with 3 children must build a Group")
	}
	kids := g.Children()
	if len(kids) != 3 {
		t.Fatalf("children deduplicated: %d", len(kids))
	}
	if !identical(kids[0], a) || !identical(kids[1], b) || !identical(kids[2], a) {
		t.Fatalf("child order not preserved")
	}
}

func TestMake_NoFlattening(t *testing.T) {
	t.Parallel()

	inner := Make(New("x"), New("y"))
	outer, ok := Make(New("a"), inner).(*Group)
	if !ok {
		t.Fatalf("expected outer Group")
	}
	if !identical(outer.Children()[1], inner) {
		t.Fatalf("nested Group was flattened or rebuilt")
	}
}

func TestGroup_CompactLabel(t *testing.T) {
	t.Parallel()

	inner := Make(New("x"), New("y"))
	outer := Make(New("a"), inner)
	// The label joins immediate children; the nested Group contributes its
	// own compact label, never a full expansion.
	if got, want := outer.Error(), "a, x, y"; got != want {
		t.Fatalf("label = %q, want %q", got, want)
	}
}

func TestGroup_StdlibTraversal(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("boom")
	tree := Make(Wrap(sentinel), New("other"))

	if !errors.Is(tree, sentinel) {
		t.Fatalf("errors.Is must reach a wrapped foreign error through the tree")
	}
	var l *Leaf
	if !errors.As(tree, &l) {
		t.Fatalf("errors.As should locate a *Leaf in the tree")
	}
}

func TestWrap_Identity(t *testing.T) {
	t.Parallel()

	if Wrap(nil) != nil {
		t.Fatalf("Wrap(nil) must be nil")
	}
	a := New("a")
	if !identical(Wrap(a), a) {
		t.Fatalf("Wrap of a *Leaf must return it unchanged")
	}
}

func TestLeaf_CopyOnWrite(t *testing.T) {
	t.Parallel()

	base := New("base", "k", 1)
	withCause := base.WithCause(errors.New("why"))
	if base.Cause() != nil {
		t.Fatalf("WithCause mutated the receiver")
	}
	if withCause.Cause() == nil {
		t.Fatalf("WithCause lost the link")
	}

	annotated := base.With("k2", 2)
	if _, ok := base.Fields()["k2"]; ok {
		t.Fatalf("With mutated the receiver")
	}
	m := annotated.Fields()
	if m["k"] != 1 || m["k2"] != 2 {
		t.Fatalf("annotations wrong: %v", m)
	}
}

func TestExtend_AppendsOwnSegment(t *testing.T) {
	t.Parallel()

	a := New("a")
	a.seg = segOf("origin")
	if !Extend(a, segOf("hop")) {
		t.Fatalf("Extend must apply to a Leaf")
	}
	if !segEqual(a.Trace(), segOf("origin", "hop")) {
		t.Fatalf("Extend order wrong: %v", a.Trace())
	}
	if Extend(errors.New("foreign"), segOf("hop")) {
		t.Fatalf("Extend must report false for carriers-less errors")
	}
}

func TestCheck_Violations(t *testing.T) {
	t.Parallel()

	if Check(nil) != nil || Check(New("leaf")) != nil {
		t.Fatalf("nil and plain leaves are valid")
	}
	if err := Check(Make(New("a"), New("b"))); err != nil {
		t.Fatalf("valid tree flagged: %v", err)
	}

	// Hand-assembled singleton Group (Make would have collapsed it).
	if err := Check(&Group{children: []error{New("only")}}); err == nil {
		t.Fatalf("singleton Group must be a violation")
	}

	// Nil child.
	if err := Check(&Group{children: []error{New("a"), nil}}); err == nil {
		t.Fatalf("nil child must be a violation")
	}

	// Self-containing Group.
	g := &Group{children: []error{New("a"), New("b")}}
	g.children[1] = g
	if err := Check(g); err == nil {
		t.Fatalf("cyclic Group must be a violation")
	}

	// Cause links may alias tree nodes; that is not a cycle in the owned tree.
	shared := New("shared")
	aliased := Make(shared, New("b").WithCause(shared))
	if err := Check(aliased); err != nil {
		t.Fatalf("cause aliasing flagged: %v", err)
	}
}

func TestLeaves_DepthFirstOrder(t *testing.T) {
	t.Parallel()

	a, b, c := New("a"), New("b"), New("c")
	tree := Make(a, Make(b, c))

	got := Leaves(tree)
	if len(got) != 3 {
		t.Fatalf("len=%d, want 3", len(got))
	}
	for i, want := range []error{a, b, c} {
		if !identical(got[i], want) {
			t.Fatalf("leaf %d out of order", i)
		}
	}

	single := New("solo")
	if ls := Leaves(single); len(ls) != 1 || !identical(ls[0], single) {
		t.Fatalf("a non-Group is its own sole leaf")
	}
}

func TestGroup_ConciseFormatVerbs(t *testing.T) {
	t.Parallel()

	g := Make(New("a"), New("b"))
	if got := fmt.Sprintf("%v", g); got != "a, b" {
		t.Fatalf("%%v = %q", got)
	}
	if got := fmt.Sprintf("%s", g); got != "a, b" {
		t.Fatalf("%%s = %q", got)
	}
	if got := fmt.Sprintf("%q", g); got != `"a, b"` {
		t.Fatalf("%%q = %q", got)
	}
}
