package types

import (
	"errors"
	"testing"
)

func TestRefactorError_Error(t *testing.T) {
	testCases := []struct {
		name     string
		err      *RefactorError
		expected string
	}{
		{
			name: "with file location",
			err: &RefactorError{
				Kind:    ParseError,
				Message: "unexpected token",
				File:    "/test/file.js",
				Line:    15,
				Column:  10,
			},
			expected: "/test/file.js:15:10: unexpected token",
		},
		{
			name: "without file location",
			err: &RefactorError{
				Kind:    NoApplicableContext,
				Message: "cursor is not inside an if statement",
			},
			expected: "cursor is not inside an if statement",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.err.Error(); got != tc.expected {
				t.Errorf("expected error message %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestRefactorError_Unwrap(t *testing.T) {
	cause := errors.New("original error")
	err := &RefactorError{
		Kind:    FileSystemError,
		Message: "file operation failed",
		Cause:   cause,
	}

	if !errors.Is(err, cause) {
		t.Errorf("expected errors.Is to match the cause")
	}

	errNoCause := &RefactorError{Kind: ParseError, Message: "parse failed"}
	if unwrapped := errNoCause.Unwrap(); unwrapped != nil {
		t.Errorf("expected unwrapped error to be nil, got %v", unwrapped)
	}
}

func TestSpan(t *testing.T) {
	s := Span{Start: 3, End: 8}
	if s.Len() != 5 {
		t.Errorf("expected length 5, got %d", s.Len())
	}
	if !s.Contains(3) || !s.Contains(7) {
		t.Errorf("expected span to contain its start and last offset")
	}
	if s.Contains(8) {
		t.Errorf("span must be half-open; end offset is outside")
	}
}
