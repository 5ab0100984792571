package rewrite

import (
	"fmt"
	"os"
	"sort"

	"github.com/mamaar/condflat/pkg/types"
)

// Applier writes accepted edits back to files. Edits are grouped per file,
// validated against overlap, and applied back-to-front so earlier offsets
// stay valid while later spans are replaced.
type Applier struct{}

func NewApplier() *Applier {
	return &Applier{}
}

// ApplyPlan applies every edit in the plan to its file on disk.
func (a *Applier) ApplyPlan(plan *types.Plan) error {
	if plan.Empty() {
		return nil
	}
	return a.Apply(plan.Edits)
}

// Apply applies all edits to their files on disk.
func (a *Applier) Apply(edits []types.Edit) error {
	if len(edits) == 0 {
		return nil
	}

	byFile := make(map[string][]types.Edit)
	for _, e := range edits {
		byFile[e.File] = append(byFile[e.File], e)
	}

	for path, fileEdits := range byFile {
		content, err := os.ReadFile(path)
		if err != nil {
			return &types.RefactorError{
				Kind:    types.FileSystemError,
				Message: fmt.Sprintf("failed to read %s: %v", path, err),
				File:    path,
				Cause:   err,
			}
		}
		modified, err := ApplyToText(string(content), fileEdits)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(modified), 0644); err != nil {
			return &types.RefactorError{
				Kind:    types.FileSystemError,
				Message: fmt.Sprintf("failed to write %s: %v", path, err),
				File:    path,
				Cause:   err,
			}
		}
	}

	return nil
}

// ApplyToText applies the edits to a single buffer's text and returns the
// modified text. The input edits may be in any order.
func ApplyToText(text string, edits []types.Edit) (string, error) {
	sorted := make([]types.Edit, len(edits))
	copy(sorted, edits)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Span.Start > sorted[j].Span.Start
	})

	if err := validateEdits(text, sorted); err != nil {
		return "", err
	}

	for _, e := range sorted {
		text = text[:e.Span.Start] + e.NewText + text[e.Span.End:]
	}
	return text, nil
}

// validateEdits checks bounds and rejects overlapping spans. The slice must
// already be sorted by descending start offset.
func validateEdits(text string, sorted []types.Edit) error {
	for i, e := range sorted {
		if e.Span.Start < 0 || e.Span.End > len(text) || e.Span.Start > e.Span.End {
			return &types.RefactorError{
				Kind:    types.InvalidOperation,
				Message: fmt.Sprintf("edit span %d-%d out of bounds (text length %d)", e.Span.Start, e.Span.End, len(text)),
				File:    e.File,
			}
		}
		if i > 0 && sorted[i-1].Span.Start < e.Span.End {
			return &types.RefactorError{
				Kind:    types.InvalidOperation,
				Message: fmt.Sprintf("overlapping edits at %d-%d and %d-%d", e.Span.Start, e.Span.End, sorted[i-1].Span.Start, sorted[i-1].Span.End),
				File:    e.File,
			}
		}
	}
	return nil
}
