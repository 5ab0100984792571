package syntax

import (
	"fmt"
	"sort"

	"github.com/mamaar/condflat/pkg/types"
)

// Source is an immutable view of one buffer's text together with a line
// offset table for converting between byte offsets and line/column positions.
// Lines and columns are 1-based; offsets are byte offsets.
type Source struct {
	Text       string
	lineStarts []int
}

// NewSource builds a Source and its line table from raw text.
func NewSource(text string) *Source {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Source{Text: text, lineStarts: starts}
}

// PositionAt converts a byte offset to a 1-based line/column position.
// Offsets past the end of the text clamp to the final position.
func (s *Source) PositionAt(offset int) types.Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(s.Text) {
		offset = len(s.Text)
	}
	// First line start strictly greater than offset, minus one.
	line := sort.Search(len(s.lineStarts), func(i int) bool {
		return s.lineStarts[i] > offset
	})
	return types.Position{
		Line:   line,
		Column: offset - s.lineStarts[line-1] + 1,
	}
}

// OffsetAt converts a 1-based line/column position to a byte offset.
func (s *Source) OffsetAt(pos types.Position) (int, error) {
	if pos.Line < 1 || pos.Line > len(s.lineStarts) {
		return 0, fmt.Errorf("line %d out of range (1..%d)", pos.Line, len(s.lineStarts))
	}
	start := s.lineStarts[pos.Line-1]
	end := len(s.Text)
	if pos.Line < len(s.lineStarts) {
		end = s.lineStarts[pos.Line] - 1 // exclude the newline itself
	}
	if pos.Column < 1 || start+pos.Column-1 > end {
		return 0, fmt.Errorf("column %d out of range on line %d", pos.Column, pos.Line)
	}
	return start + pos.Column - 1, nil
}

// SpanPositions returns the line/column positions for both ends of a span.
func (s *Source) SpanPositions(span types.Span) (start, end types.Position) {
	return s.PositionAt(span.Start), s.PositionAt(span.End)
}

// Slice returns the text covered by a span.
func (s *Source) Slice(span types.Span) string {
	if span.Start < 0 || span.End > len(s.Text) || span.Start > span.End {
		return ""
	}
	return s.Text[span.Start:span.End]
}
