// leaf.go — the Leaf node type and its constructors.
//
// A Leaf is any aggregated error that is not a Group: either a fresh message
// or a foreign error adopted into the tree. Besides its own trace Segment it
// carries two non-owning predecessor links:
//   - cause: an explicit predecessor ("this error happened because of that")
//   - context: an implicit predecessor ("that error was being handled when
//     this one occurred"), hidden when the suppress flag is set
//
// Links are by-identity references; they may alias nodes that also appear
// elsewhere in a tree. The renderer is cycle-safe regardless.
//
// Fluent methods are non-mutating (copy-on-write): each returns a new *Leaf.
// The one exception is the filter engine's push-down, which rewrites a node's
// own Segment exactly once per filter pass via the unexported carrier hooks.
package errtree

// Linked is implemented by errors that expose predecessor links to the
// renderer. Leaf and Group implement it; foreign errors may too.
type Linked interface {
	// Cause returns the explicit predecessor, or nil.
	Cause() error
	// Context returns the implicit predecessor, or nil.
	Context() error
	// Suppressed reports whether the implicit predecessor should be hidden.
	Suppressed() bool
}

// suppressor is implemented by nodes whose context link Catch may hide.
type suppressor interface {
	setSuppress()
}

// Leaf wraps a message or a foreign error together with its trace Segment and
// predecessor links.
type Leaf struct {
	msg      string
	err      error // wrapped foreign error; nil when built from a message
	cause    error // explicit predecessor, non-owning
	context  error // implicit predecessor, non-owning
	suppress bool
	seg      Segment
	notes    fields
}

// New returns a Leaf with the given message and optional key-value
// annotations, capturing a trace segment at the call site.
func New(msg string, kv ...any) *Leaf {
	return &Leaf{
		msg:   msg,
		notes: fieldsFromKV(kv...),
		seg:   Capture(1),
	}
}

// Wrap adopts a foreign error into the tree model, capturing a trace segment
// at the call site. Returns nil when err is nil. If err is already a *Leaf it
// is returned unchanged, preserving identity for anything the caller already
// holds a reference to.
func Wrap(err error, kv ...any) *Leaf {
	if err == nil {
		return nil
	}
	if l, ok := err.(*Leaf); ok {
		return l
	}
	return &Leaf{
		err:   err,
		notes: fieldsFromKV(kv...),
		seg:   Capture(1),
	}
}

func (e *Leaf) Error() string {
	if e.msg != "" {
		return e.msg
	}
	if e.err != nil {
		return e.err.Error()
	}
	return "error"
}

// Unwrap exposes the wrapped foreign error to stdlib traversal
// (errors.Is/As). Predecessor links are diagnostic only and are deliberately
// NOT part of the unwrap chain.
func (e *Leaf) Unwrap() error { return e.err }

func (e *Leaf) Cause() error     { return e.cause }
func (e *Leaf) Context() error   { return e.context }
func (e *Leaf) Suppressed() bool { return e.suppress }

// Trace returns the Leaf's own Segment. After a filter pass this is the full
// root-to-self trace; before one it holds only the frames accumulated since
// the Leaf was last attached to a Group.
func (e *Leaf) Trace() Segment { return e.seg }

// Fields returns a copy-on-read map of the Leaf's annotations.
func (e *Leaf) Fields() map[string]any { return fieldsToMap(e.notes) }

// WithCause returns a copy of the Leaf with the explicit predecessor set.
// The link is non-owning; cause may alias a node reachable elsewhere.
func (e *Leaf) WithCause(cause error) *Leaf {
	n := e.clone()
	n.cause = cause
	return n
}

// WithContext returns a copy of the Leaf with the implicit predecessor set.
func (e *Leaf) WithContext(context error) *Leaf {
	n := e.clone()
	n.context = context
	return n
}

// With returns a copy of the Leaf with one annotation appended.
func (e *Leaf) With(key string, val any) *Leaf {
	n := e.clone()
	n.notes = fieldsCloneAppend(n.notes, Field{Key: key, Val: val})
	return n
}

func (e *Leaf) clone() *Leaf {
	n := *e
	if len(e.notes) > 0 {
		copied := make(fields, len(e.notes))
		copy(copied, e.notes)
		n.notes = copied
	} else {
		n.notes = emptyFields
	}
	// Segment contents are value frames; sharing the slice is safe because
	// push-down replaces segments wholesale rather than appending in place.
	return &n
}

func (e *Leaf) segment() Segment     { return e.seg }
func (e *Leaf) setSegment(s Segment) { e.seg = s }
func (e *Leaf) setSuppress()         { e.suppress = true }

var (
	_ Linked         = (*Leaf)(nil)
	_ segmentCarrier = (*Leaf)(nil)
	_ suppressor     = (*Leaf)(nil)
)
