package script

import "errors"

// Compile-time and run-time failure modes. These map directly onto the
// error taxonomy every editor-core package uses (InvalidInput, NotFound,
// CapacityExceeded, Unauthorized, Transient, Fatal).
var (
	// ErrSetupMissing is returned when a script has no setup() declaration.
	ErrSetupMissing = errors.New("script: missing setup() entry point")

	// ErrInvalidSyntax is returned for any lexical or grammatical error.
	ErrInvalidSyntax = errors.New("script: invalid syntax")

	// ErrUnsupportedStatement is returned when a callee is not in the
	// registry the script was compiled against.
	ErrUnsupportedStatement = errors.New("script: unsupported statement")

	// ErrExecutionTimeout is returned when a run exceeds MaxWallTime.
	ErrExecutionTimeout = errors.New("script: execution timeout")

	// ErrMemoryLimitExceeded is returned when a run exceeds MaxMemoryBytes.
	ErrMemoryLimitExceeded = errors.New("script: memory limit exceeded")

	// ErrSandboxViolation is a catch-all for resource-limit breaches
	// (file op count, network request count).
	ErrSandboxViolation = errors.New("script: sandbox violation")

	// ErrUnauthorizedFileAccess is returned when a call attempts a file
	// operation outside the sandbox's filesystem policy.
	ErrUnauthorizedFileAccess = errors.New("script: unauthorized file access")

	// ErrUnauthorizedNetworkAccess is returned when a call attempts a
	// network operation while EnableNetwork is false.
	ErrUnauthorizedNetworkAccess = errors.New("script: unauthorized network access")
)

// SyntaxError carries a source position alongside ErrInvalidSyntax.
type SyntaxError struct {
	Line    int
	Column  int
	Message string
}

func (e *SyntaxError) Error() string {
	return e.Message
}

func (e *SyntaxError) Unwrap() error {
	return ErrInvalidSyntax
}
