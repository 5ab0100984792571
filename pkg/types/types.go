// Package types holds the shared data model for condflat: text positions,
// spans, proposed edits, and the error taxonomy used across the CLI, LSP,
// and MCP surfaces.
package types

// Position is a 1-based line/column location in a source file.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Span is a half-open byte-offset range [Start, End) into a file's text.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Contains reports whether the offset falls inside the span.
func (s Span) Contains(offset int) bool {
	return s.Start <= offset && offset < s.End
}

// Edit is a single proposed text replacement: delete the span, insert NewText.
type Edit struct {
	File        string   `json:"file"`
	Span        Span     `json:"span"`
	StartPos    Position `json:"start_pos"`
	EndPos      Position `json:"end_pos"`
	OldText     string   `json:"old_text"`
	NewText     string   `json:"new_text"`
	Description string   `json:"description"`
}

// Plan groups the edits produced by one or more transform proposals.
type Plan struct {
	Edits         []Edit
	AffectedFiles []string
}

// Empty reports whether the plan carries no edits.
func (p *Plan) Empty() bool {
	return p == nil || len(p.Edits) == 0
}
