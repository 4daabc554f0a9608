// catch.go — the scoped catch combinator.
//
// Catch ties the filter engine into ordinary control flow. The guard's three
// abnormal-exit branches:
//
//   - unchanged by identity → the original error passes through untouched;
//     the guard is transparent
//   - everything dropped    → the error is swallowed; the scope exits clean
//   - simplified            → the new error propagates, and only in this
//     branch does the guard leave a mark: its own frame joins the error's
//     trace, showing where the simplification happened
package errtree

// Catch runs body under a scoped guard. When body returns nil, Catch returns
// nil and the handler is never consulted. When body returns an error, the
// error's tree is filtered through handler and the result follows the three
// branches above.
//
// In the simplified branch, if the result carries neither an explicit cause
// nor an implicit context, its context display is suppressed: any such link
// would be an artifact of the guard's own control flow rather than a real
// causal relationship.
func Catch(handler Handler, body func() error) error {
	err := body()
	if err == nil {
		return nil
	}

	filtered := Filter(handler, err)
	if identical(filtered, err) {
		return err
	}
	if filtered == nil {
		return nil
	}

	if l, ok := filtered.(Linked); ok && l.Cause() == nil && l.Context() == nil {
		if s, ok := filtered.(suppressor); ok {
			s.setSuppress()
		}
	}
	if c, ok := filtered.(segmentCarrier); ok {
		// One frame at the Catch call site marks the simplification point.
		c.setSegment(Concat(c.segment(), captureSegment(1, 1)))
	}
	return filtered
}
