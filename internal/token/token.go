// Package token carries the source-location information that the parser
// (an external collaborator, see spec.md §6.2) attaches to every AST node.
package token

import "fmt"

// Position is a single point in a source file.
type Position struct {
	Line   int // 1-based
	Column int // 1-based
	Offset int // 0-based byte offset, for slicing buffers
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsZero reports whether the position was never set by the parser.
func (p Position) IsZero() bool {
	return p == Position{}
}

// Span is the half-open source range `[Start, End)` covered by a node.
// Diagnostics (spec.md §6.6) and reference tracking (spec.md §3.3,
// §Design Notes "Reference tracking") both key off a Span.
type Span struct {
	Start Position
	End   Position
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}

// Location pairs a Span with the module it was observed in. Variable
// references (spec.md §3.3) are held as Location tuples rather than by
// ownership, so that reference lists never form a cycle back to the
// module that produced them (spec.md Design Notes, "Reference tracking").
type Location struct {
	ModuleID string
	Span     Span
}
