// doc.go — package documentation for errtree
//
// Package errtree aggregates multiple independently-raised errors — typical of
// structured concurrency, where several concurrent operations can fail at
// once — into a single composite error, lets callers selectively handle a
// subset of those errors, and keeps an accurate, non-duplicated trace for
// every individual error as if it had propagated alone. It is designed to be:
//   - Ergonomic at call sites (small surface, clear semantics)
//   - Interoperable with the stdlib (errors.Is/As traverse Groups and Leaves)
//   - Policy-free (no retry/severity/rate-limit rules in core)
//
// # Model
//
// A composite failure is a tree. Group nodes own an ordered sequence of two
// or more children (Leaves or nested Groups); Leaf nodes wrap a message or a
// foreign error. Every node carries its own trace Segment: the frames it
// accumulated since it was last absorbed into a parent Group. The full trace
// of a leaf is the concatenation of its ancestors' Segments, root to leaf.
//
// Build trees with Make (the join point of a scheduler joining concurrent
// failures) and wrap individual errors with New/Wrap:
//
//	err := errtree.Make(
//	    errtree.Wrap(dbErr),
//	    errtree.New("worker 2 gave up", "attempts", 3),
//	)
//
// Order is significant: children propagate, filter, and render in exactly
// the order they were joined, and are never deduplicated.
//
// # Filtering
//
// Filter applies a handler to every leaf of a tree. The handler may keep a
// leaf, replace it, or drop it (return nil); Groups collapse as their
// children disappear, and a Group reduced to one survivor becomes that
// survivor directly. Filter then repairs traces over the ORIGINAL tree so
// every leaf — dropped ones included, since they may survive as another
// error's cause — ends up with its complete root-to-self trace. Subtrees the
// handler left untouched keep their compact shared Segments; nothing is
// recomputed or duplicated for them.
//
// Catch scopes a handler around a region of code:
//
//	err := errtree.Catch(ignoreTimeouts, func() error {
//	    return runPool(ctx)
//	})
//
// If the handler changes nothing the original error passes through by
// identity; if it drops everything the error is swallowed; otherwise the
// simplified error propagates, marked so the formatter does not show a
// meaningless implicit-context link.
//
// # Rendering
//
// A Group's Error() is a compact, one-line comma-joined label of its
// immediate children. Full detail — every embedded error, every cause and
// context chain, cycle-safe on shared references — comes from Render/Fprint,
// or from %+v via fmt.Formatter. Install claims the process-wide top-level
// handler slot so uncaught trees get the full rendering; it declines, with a
// one-time warning, if a host environment already claimed the slot.
package errtree
