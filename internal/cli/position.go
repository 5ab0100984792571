package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mamaar/condflat/pkg/types"
)

// parsePositionArg parses a FILE:LINE:COL argument. Lines and columns are
// 1-based. The file part may itself contain colons only on the left of the
// final two numeric segments.
func parsePositionArg(arg string) (string, types.Position, error) {
	parts := strings.Split(arg, ":")
	if len(parts) < 3 {
		return "", types.Position{}, fmt.Errorf("expected FILE:LINE:COL, got %q", arg)
	}
	colStr := parts[len(parts)-1]
	lineStr := parts[len(parts)-2]
	file := strings.Join(parts[:len(parts)-2], ":")

	line, err := strconv.Atoi(lineStr)
	if err != nil || line < 1 {
		return "", types.Position{}, fmt.Errorf("invalid line %q in %q", lineStr, arg)
	}
	col, err := strconv.Atoi(colStr)
	if err != nil || col < 1 {
		return "", types.Position{}, fmt.Errorf("invalid column %q in %q", colStr, arg)
	}
	if file == "" {
		return "", types.Position{}, fmt.Errorf("missing file in %q", arg)
	}
	return file, types.Position{Line: line, Column: col}, nil
}
