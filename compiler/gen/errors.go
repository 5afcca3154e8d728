// Package gen analyzes parsed schema definitions and emits the
// generated protocol classes.
package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases. Every failure below is
// fatal to the current generation run; nothing is retried and no
// partial output is published.
var (
	// ErrUnsupportedUnion indicates a field union that is not the
	// two-branch nullable-record shape.
	ErrUnsupportedUnion = errors.New("protogen: unsupported union shape")
	// ErrResponseShape indicates a search response whose field set
	// is not exactly {next_page_token, value list}.
	ErrResponseShape = errors.New("protogen: invalid search response shape")
	// ErrGenerationFailed indicates a code generation failure.
	ErrGenerationFailed = errors.New("protogen: code generation failed")
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("protogen: missing configuration")
)

// UnionShapeError reports a field whose union type descriptor is not
// exactly [null, Record]. Non-null-first unions, unions of more than
// two branches, and nullable non-record unions are all rejected
// rather than silently skipped.
type UnionShapeError struct {
	Type    string // type name
	Field   string // field name
	Message string
}

// Error implements the error interface.
func (e *UnionShapeError) Error() string {
	var b strings.Builder
	b.WriteString("protogen: unsupported union shape")
	if e.Type != "" && e.Field != "" {
		fmt.Fprintf(&b, " on %s.%s", e.Type, e.Field)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error for
// UnionShapeError.
func (e *UnionShapeError) Is(target error) bool {
	return target == ErrUnsupportedUnion
}

// NewUnionShapeError creates a new UnionShapeError.
func NewUnionShapeError(typeName, fieldName, message string) *UnionShapeError {
	return &UnionShapeError{Type: typeName, Field: fieldName, Message: message}
}

// IsUnionShapeError reports whether the error is a UnionShapeError.
func IsUnionShapeError(err error) bool {
	var e *UnionShapeError
	return errors.As(err, &e)
}

// ResponseShapeError reports a search response type whose field set
// is not exactly {next_page_token, X}.
type ResponseShapeError struct {
	Type   string   // type name
	Fields []string // field names found, sorted
}

// Error implements the error interface.
func (e *ResponseShapeError) Error() string {
	return fmt.Sprintf(
		"protogen: search response %s must have exactly next_page_token and one value list field, got [%s]",
		e.Type, strings.Join(e.Fields, ", "))
}

// Is reports whether the target matches the sentinel error for
// ResponseShapeError.
func (e *ResponseShapeError) Is(target error) bool {
	return target == ErrResponseShape
}

// NewResponseShapeError creates a new ResponseShapeError.
func NewResponseShapeError(typeName string, fields []string) *ResponseShapeError {
	return &ResponseShapeError{Type: typeName, Fields: fields}
}

// IsResponseShapeError reports whether the error is a
// ResponseShapeError.
func IsResponseShapeError(err error) bool {
	var e *ResponseShapeError
	return errors.As(err, &e)
}

// GenerationError represents a code generation failure.
type GenerationError struct {
	Phase   string // "load", "analyze", "emit", "write"
	Type    string // type name, if applicable
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("protogen: generation error")
	if e.Phase != "" {
		b.WriteString(" in phase ")
		b.WriteString(e.Phase)
	}
	if e.Type != "" {
		b.WriteString(" on type ")
		b.WriteString(e.Type)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for
// GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(phase, typeName, message string, cause error) *GenerationError {
	return &GenerationError{Phase: phase, Type: typeName, Message: message, Cause: cause}
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var e *GenerationError
	return errors.As(err, &e)
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("protogen: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("protogen: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for
// ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{Option: option, Value: value, Message: message}
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var e *ConfigError
	return errors.As(err, &e)
}
