package types

import "fmt"

// RefactorError represents errors in transform operations.
type RefactorError struct {
	Kind    ErrorKind
	Message string
	File    string
	Line    int
	Column  int
	Cause   error
}

func (e *RefactorError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Message)
	}
	return e.Message
}

func (e *RefactorError) Unwrap() error {
	return e.Cause
}

type ErrorKind int

const (
	ParseError ErrorKind = iota
	NoApplicableContext
	InvalidOperation
	InternalError
	FileSystemError
)

func (k ErrorKind) String() string {
	switch k {
	case ParseError:
		return "parse error"
	case NoApplicableContext:
		return "no applicable context"
	case InvalidOperation:
		return "invalid operation"
	case InternalError:
		return "internal error"
	case FileSystemError:
		return "file system error"
	}
	return "unknown"
}
