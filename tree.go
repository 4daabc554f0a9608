// tree.go — the Group node, the Make constructor, and tree utilities.
//
// Goals:
//   - Preserve stdlib semantics for traversal: Unwrap() []error lets
//     errors.Is/As walk every child.
//   - Keep the compact label cheap: Group.Error() comma-joins the IMMEDIATE
//     children only; full detail is Render's job.
//   - Order is load-bearing. Children keep the order they were joined in,
//     duplicates included. No flattening of nested Groups.
package errtree

import (
	"fmt"
	"strings"
)

// Group aggregates two or more errors (Leaves or nested Groups) in join
// order. A Group owns its child sequence exclusively; its cause/context
// links, like a Leaf's, are non-owning by-identity references.
type Group struct {
	children []error
	seg      Segment // frames accumulated while the Group as a whole propagated
	cause    error
	context  error
	suppress bool
}

// Make joins errors into a single composite value.
//
//   - One child: returned unchanged. No wrapping, so identity is preserved
//     for anything the caller already holds a reference to.
//   - Two or more: a new Group owning the sequence as given. No reordering,
//     no deduplication, no flattening of nested Groups.
//   - Zero children: a contract violation at the join point; Make panics
//     rather than fabricating an empty sentinel.
//
// Make takes ownership of the children sequence; callers must not retain or
// mutate it. Nil children are a caller bug, surfaced by Check.
func Make(children ...error) error {
	switch len(children) {
	case 0:
		panic("errtree: Make called with no children")
	case 1:
		return children[0]
	default:
		return &Group{children: children}
	}
}

// Error returns the compact label: the comma-joined Error() strings of the
// immediate children. Nested Groups contribute their own compact labels;
// descendants are never expanded.
func (g *Group) Error() string {
	parts := make([]string, len(g.children))
	for i, child := range g.children {
		parts[i] = child.Error()
	}
	return strings.Join(parts, ", ")
}

// Unwrap exposes the children to stdlib traversal (errors.Is/As walk
// pre-order).
func (g *Group) Unwrap() []error { return g.children }

// Children returns a copy of the child sequence in join order.
func (g *Group) Children() []error {
	out := make([]error, len(g.children))
	copy(out, g.children)
	return out
}

// Trace returns the Group's own Segment: the frames it accumulated while
// propagating as a whole, before being absorbed into a parent or filtered.
func (g *Group) Trace() Segment { return g.seg }

func (g *Group) Cause() error     { return g.cause }
func (g *Group) Context() error   { return g.context }
func (g *Group) Suppressed() bool { return g.suppress }

func (g *Group) segment() Segment     { return g.seg }
func (g *Group) setSegment(s Segment) { g.seg = s }
func (g *Group) setSuppress()         { g.suppress = true }

var (
	_ Linked         = (*Group)(nil)
	_ segmentCarrier = (*Group)(nil)
	_ suppressor     = (*Group)(nil)
)

// Extend appends frames to err's own trace Segment and reports whether err
// carries one. This is the hook a scheduler uses to accumulate propagation
// frames on a node between join points.
func Extend(err error, frames Segment) bool {
	c, ok := err.(segmentCarrier)
	if !ok {
		return false
	}
	c.setSegment(Concat(c.segment(), frames))
	return true
}

// Check validates tree invariants and returns the first violation found:
//
//   - no Group has fewer than two children (Make never builds one, so a
//     singleton Group means the tree was assembled by hand, incorrectly)
//   - no child is nil
//   - the owned tree is acyclic: no Group contains itself, directly or
//     transitively
//
// Cause/context links may freely alias nodes elsewhere in the tree; they are
// not part of the owned structure and are not walked.
func Check(err error) error {
	if err == nil {
		return nil
	}
	return check(err, make(map[*Group]struct{}))
}

func check(err error, onPath map[*Group]struct{}) error {
	g, ok := err.(*Group)
	if !ok {
		return nil
	}
	if _, cyclic := onPath[g]; cyclic {
		return fmt.Errorf("errtree: group %q contains itself", g.Error())
	}
	if len(g.children) < 2 {
		return fmt.Errorf("errtree: group has %d children, need at least 2", len(g.children))
	}
	onPath[g] = struct{}{}
	for i, child := range g.children {
		if child == nil {
			return fmt.Errorf("errtree: group child %d is nil", i)
		}
		if v := check(child, onPath); v != nil {
			return v
		}
	}
	delete(onPath, g)
	return nil
}

// Leaves returns every leaf of the owned tree in depth-first join order.
// Duplicate leaf values are reported once per occurrence; a malformed cyclic
// Group is visited once. A non-Group err is its own sole leaf.
func Leaves(err error) []error {
	if err == nil {
		return nil
	}
	var out []error
	var seen identitySet
	var walk func(error)
	walk = func(e error) {
		g, ok := e.(*Group)
		if !ok {
			out = append(out, e)
			return
		}
		if !seen.add(g) {
			return
		}
		for _, child := range g.children {
			if child != nil {
				walk(child)
			}
		}
	}
	walk(err)
	return out
}
