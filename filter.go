// filter.go — the two-pass filter engine.
//
// Filtering transforms a tree of errors in two passes:
//
//  1. filterTree classifies structure, bottom-up. Each leaf goes through the
//     handler; each Group collects its surviving children. A Group whose
//     children all survive AS THE SAME OBJECTS is returned unchanged and
//     recorded in the preserved set, so later work can skip its whole
//     subtree. A changed Group is rebuilt through Make, collapsing
//     singletons along the way.
//
//  2. pushDown repairs traces, walking the ORIGINAL tree. Dropped nodes may
//     still be reachable as someone's cause or context, so they too must end
//     up with a complete trace. Preserved subtrees are skipped: their
//     compact shared Segments are reused as-is in the result, which keeps
//     the common case (a large tree mostly untouched by a handler) cheap and
//     free of duplicated frames.
//
// Both passes are synchronous, single-owner tree operations; the caller must
// hold the tree exclusively for the duration of Filter.
package errtree

// Handler inspects one leaf error. It may return the leaf unchanged (keep),
// a different error (replace), or nil (drop). A replacement that should
// record its predecessor must carry the link itself, e.g. via
// Leaf.WithCause or Leaf.WithContext; the engine never fabricates links.
type Handler func(error) error

// Filter applies handler to every leaf of err's tree and returns the
// simplified result: err itself (by identity) when nothing changed, nil when
// every leaf was dropped, or a rebuilt tree otherwise. Traces are repaired on
// the original nodes so every leaf, surviving or dropped, carries its full
// root-to-self Segment afterward.
func Filter(handler Handler, err error) error {
	if err == nil {
		return nil
	}
	preserved := make(map[*Group]struct{})
	out := filterTree(handler, err, preserved)
	pushDown(nil, err, preserved)
	return out
}

// filterTree is the structural pass. It never touches Segments.
func filterTree(handler Handler, node error, preserved map[*Group]struct{}) error {
	g, ok := node.(*Group)
	if !ok {
		return handler(node)
	}

	next := make([]error, 0, len(g.children))
	changed := false
	for _, child := range g.children {
		res := filterTree(handler, child, preserved)
		if !identical(res, child) {
			changed = true
		}
		if res != nil {
			next = append(next, res)
		}
	}

	switch {
	case len(next) == 0:
		// Whole subtree eliminated.
		return nil
	case !changed:
		// Element-for-element the same objects: reuse the node, and let
		// push-down skip the entire subtree.
		preserved[g] = struct{}{}
		return g
	default:
		return Make(next...)
	}
}

// pushDown distributes incoming frames onto node's subtree. It walks the
// original tree, not the filtered result.
func pushDown(incoming Segment, node error, preserved map[*Group]struct{}) {
	if g, ok := node.(*Group); ok {
		if _, keep := preserved[g]; keep {
			// Subtree reused unflattened; its compact Segments stay shared.
			return
		}
		merged := Concat(incoming, g.seg)
		for _, child := range g.children {
			pushDown(merged, child, preserved)
		}
		// Frames are now fully distributed to descendants. This node will
		// not reappear in the new tree; if the same children do, the new
		// tree wrapped a fresh Group around already-updated nodes.
		g.seg = nil
		return
	}
	if c, ok := node.(segmentCarrier); ok {
		c.setSegment(Concat(incoming, c.segment()))
	}
	// A foreign leaf without a Segment has no trace to repair.
}
