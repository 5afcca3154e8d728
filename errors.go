package protogen

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for collaborator operations.
var (
	// ErrExternalTool is returned when an out-of-core collaborator
	// (schema download, archive extraction, external IDL compiler)
	// fails. The compiler surfaces these unchanged.
	ErrExternalTool = errors.New("protogen: external tool failed")
)

// ExternalToolError wraps a failure of an external collaborator.
// The compiler performs no recovery: the error aborts the whole
// generation run before any output is published.
type ExternalToolError struct {
	Tool string // collaborator name, e.g. "download" or "avro-tools"
	Err  error  // underlying failure
}

// Error returns the error string.
func (e *ExternalToolError) Error() string {
	if e.Tool != "" {
		return fmt.Sprintf("protogen: external tool %s: %v", e.Tool, e.Err)
	}
	return fmt.Sprintf("protogen: external tool: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *ExternalToolError) Unwrap() error {
	return e.Err
}

// Is reports whether the target error matches ExternalToolError.
// This allows errors.Is(toolErr, ErrExternalTool) to return true.
func (e *ExternalToolError) Is(err error) bool {
	return err == ErrExternalTool
}

// NewExternalToolError returns a new ExternalToolError for the given
// collaborator.
func NewExternalToolError(tool string, err error) *ExternalToolError {
	return &ExternalToolError{Tool: tool, Err: err}
}

// IsExternalTool returns true if the error is an ExternalToolError.
func IsExternalTool(err error) bool {
	if err == nil {
		return false
	}
	var e *ExternalToolError
	return errors.As(err, &e) || errors.Is(err, ErrExternalTool)
}
