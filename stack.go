// stack.go — trace segments for errtree.
//
// Design goals:
//   - Interop & correctness: use runtime.Callers + runtime.CallersFrames for
//     accurate frame resolution (handles inlining correctly).
//   - Segments are value sequences: concatenation copies frames so two
//     independent extensions of a shared prefix never observe each other.
//   - Concat is an explicit loop, never recursion over the input: a
//     pathological failure can carry thousands of frames.
package errtree

import (
	"runtime"
)

// Frame represents a single call site in a trace segment.
type Frame struct {
	PC       uintptr // program counter of the call return
	File     string  // absolute file path (as provided by runtime)
	Line     int     // line number
	Function string  // fully-qualified function name (pkg.Func or method)
}

// Segment is an ordered run of Frames accumulated at one tree level: the
// frames an error gathered since it was last attached to a Group, or since it
// was first raised. A leaf's full trace is the concatenation of its
// ancestors' Segments (root first) followed by its own.
type Segment []Frame

const (
	// defaultMaxDepth bounds capture depth; deep exceptional paths rarely
	// need more and the cost is paid on every wrapped error.
	defaultMaxDepth = 64
)

// Capture records up to defaultMaxDepth frames of the calling goroutine,
// skipping skip frames above the caller of Capture. skip=0 starts at the
// caller itself.
func Capture(skip int) Segment {
	return captureSegment(skip+1, defaultMaxDepth)
}

// captureSegment captures up to maxDepth frames, skipping skip frames above
// its own caller. Internal skip accounting:
//   - +1 for runtime.Callers itself
//   - +1 for captureSegment
//
// so skip=0 places the first recorded frame at captureSegment's caller.
func captureSegment(skip, maxDepth int) Segment {
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}

	pc := make([]uintptr, maxDepth)
	n := runtime.Callers(skip+2, pc)
	if n == 0 {
		return nil
	}
	pc = pc[:n]

	frames := runtime.CallersFrames(pc)
	out := make(Segment, 0, n)

	for {
		fr, more := frames.Next()
		out = append(out, Frame{
			PC:       fr.PC,
			File:     fr.File,
			Line:     fr.Line,
			Function: fr.Function,
		})
		if !more {
			break
		}
	}
	return out
}

// Concat returns head followed by tail without mutating either input.
//
// The result always has a fresh backing array with exact capacity: appending
// to it can never scribble over head, tail, or a sibling result built from
// the same prefix. Frames are copied by value, never aliased. The loop is
// deliberately iterative; recursion-limit failures produce segments too deep
// to splice recursively.
func Concat(head, tail Segment) Segment {
	if len(head) == 0 && len(tail) == 0 {
		return nil
	}
	out := make(Segment, 0, len(head)+len(tail))
	for _, fr := range head {
		out = append(out, fr)
	}
	for _, fr := range tail {
		out = append(out, fr)
	}
	return out
}

// segmentCarrier is implemented by nodes whose own Segment the filter engine
// may read and rewrite during push-down. Both Leaf and Group implement it.
type segmentCarrier interface {
	segment() Segment
	setSegment(Segment)
}
