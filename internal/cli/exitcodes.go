package cli

// Exit codes for condflat.
const (
	// ExitSuccess indicates an edit was proposed or applied.
	ExitSuccess = 0

	// ExitNothingApplicable indicates the position had no applicable transform.
	ExitNothingApplicable = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)
