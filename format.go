// format.go — the multi-error renderer and fmt.Formatter glue.
//
// Behavior:
//
//	%s, %v   → concise one-line form (Error()); a Group gives its compact
//	           comma-joined label.
//	%+v      → full report via Render: cause/context chains, per-node trace
//	           frames, embedded errors in join order, cycle-safe.
//	%q       → quoted Error().
//
// Render walks by node identity with a seen set, so shared cause/context
// references terminate: a node renders fully exactly once and as a one-line
// placeholder on every later encounter.
package errtree

import (
	"fmt"
	"io"
	"strings"
)

const (
	causeBanner = "The above error was the direct cause of the following error:"
	ctxBanner   = "During handling of the above error, another error occurred:"
)

type renderConfig struct {
	limit int  // per-Segment frame cap; 0 means unlimited
	chain bool // follow cause/context links
}

// RenderOption adjusts how Render lays out a report.
type RenderOption func(*renderConfig)

// WithLimit caps the number of frames printed per trace Segment. The cap
// applies to each node's own Segment, not to a concatenated whole.
func WithLimit(n int) RenderOption {
	return func(c *renderConfig) { c.limit = n }
}

// WithoutCauseChain renders only the error itself, skipping its cause and
// context predecessors.
func WithoutCauseChain() RenderOption {
	return func(c *renderConfig) { c.chain = false }
}

// Render produces the full human-readable report for err as an ordered
// sequence of text chunks. Concatenating the chunks yields the report.
func Render(err error, opts ...RenderOption) []string {
	if err == nil {
		return nil
	}
	cfg := renderConfig{chain: true}
	for _, o := range opts {
		o(&cfg)
	}
	var seen identitySet
	return renderNode(&seen, err, cfg)
}

// Fprint writes the full report for err to w.
func Fprint(w io.Writer, err error, opts ...RenderOption) {
	for _, chunk := range Render(err, opts...) {
		_, _ = io.WriteString(w, chunk)
	}
}

func renderNode(seen *identitySet, err error, cfg renderConfig) []string {
	if seen.has(err) {
		return []string{fmt.Sprintf("<previously shown error: %s>\n", err.Error())}
	}
	seen.add(err)

	var chunks []string
	if cfg.chain {
		if l, ok := err.(Linked); ok {
			if cause := l.Cause(); cause != nil {
				chunks = append(chunks, renderNode(seen, cause, cfg)...)
				chunks = append(chunks, "\n"+causeBanner+"\n\n")
			} else if ctx := l.Context(); ctx != nil && !l.Suppressed() {
				chunks = append(chunks, renderNode(seen, ctx, cfg)...)
				chunks = append(chunks, "\n"+ctxBanner+"\n\n")
			}
		}
	}

	chunks = append(chunks, renderSelf(err, cfg.limit))

	if g, ok := err.(*Group); ok {
		for i, child := range g.children {
			chunks = append(chunks, fmt.Sprintf("\nDetails of embedded error %d:\n\n", i+1))
			for _, sub := range renderNode(seen, child, cfg) {
				chunks = append(chunks, indent(sub, "  "))
			}
		}
	}
	return chunks
}

// renderSelf writes one node's own block: its single-line form, its
// annotations, and its trace Segment (capped per Segment when limited).
func renderSelf(err error, limit int) string {
	var b strings.Builder
	b.WriteString(err.Error())
	b.WriteByte('\n')

	if l, ok := err.(*Leaf); ok && len(l.notes) > 0 {
		b.WriteString("  ctx:")
		for _, f := range l.notes {
			if f.Key != "" {
				fmt.Fprintf(&b, " %s=%v", f.Key, f.Val)
			}
		}
		b.WriteByte('\n')
	}

	if c, ok := err.(segmentCarrier); ok {
		seg := c.segment()
		if limit > 0 && len(seg) > limit {
			seg = seg[:limit]
		}
		for _, fr := range seg {
			fmt.Fprintf(&b, "  %s %s:%d\n", fr.Function, fr.File, fr.Line)
		}
	}
	return b.String()
}

// indent prefixes every non-empty line of chunk with prefix, preserving the
// chunk's trailing-newline shape.
func indent(chunk, prefix string) string {
	if chunk == "" {
		return chunk
	}
	lines := strings.Split(chunk, "\n")
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		if line != "" {
			b.WriteString(prefix)
			b.WriteString(line)
		}
	}
	return b.String()
}

// -----------------------------------------------------------------------------
// fmt.Formatter
// -----------------------------------------------------------------------------

func (g *Group) Format(s fmt.State, verb rune) {
	formatError(s, verb, g)
}

func (e *Leaf) Format(s fmt.State, verb rune) {
	formatError(s, verb, e)
}

func formatError(s fmt.State, verb rune, err error) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			Fprint(s, err)
			return
		}
		_, _ = io.WriteString(s, err.Error())
	case 's':
		_, _ = io.WriteString(s, err.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", err.Error())
	default:
		_, _ = io.WriteString(s, err.Error())
	}
}
