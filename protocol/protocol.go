// Package protocol defines the runtime surface shared by all
// generated protocol classes. Generated code asserts its types
// against the interfaces below; the compiler itself only references
// this package by import path.
package protocol

import (
	"errors"
	"fmt"
)

// ErrNotEmbedded is returned by EmbeddedType for fields that do not
// reference another record type.
var ErrNotEmbedded = errors.New("protocol: field has no embedded type")

// ProtocolElement is implemented by every generated record type.
type ProtocolElement interface {
	// SchemaSource returns the compacted, documentation-stripped
	// Avro source the type was generated from.
	SchemaSource() string

	// RequiredFields returns the set of field names that carry no
	// default value. The caller owns the returned map.
	RequiredFields() map[string]struct{}

	// IsEmbeddedType reports whether the named field references
	// another record type, directly or through an array or
	// nullable wrapper.
	IsEmbeddedType(field string) bool

	// EmbeddedType returns the name of the record type the named
	// field references. It fails with ErrNotEmbedded for fields
	// without an embedded type.
	EmbeddedType(field string) (string, error)
}

// SearchRequest is the tag interface for paginated search request
// types.
type SearchRequest interface {
	ProtocolElement
}

// SearchResponse is the tag interface for paginated search response
// types. Every response carries a next_page_token field and exactly
// one value-list field.
type SearchResponse interface {
	ProtocolElement

	// ValueListName returns the name of the field holding the page
	// of result values.
	ValueListName() string
}

// Endpoint pairs a search request/response type pair with its
// REST-style POST path.
type Endpoint struct {
	URL      string
	Request  string
	Response string
}

// NotEmbeddedError wraps ErrNotEmbedded with the offending field
// name. Generated EmbeddedType methods return it.
type NotEmbeddedError struct {
	Field string
}

// Error returns the error string.
func (e *NotEmbeddedError) Error() string {
	return fmt.Sprintf("protocol: field %q has no embedded type", e.Field)
}

// Is reports whether the target error matches NotEmbeddedError.
func (e *NotEmbeddedError) Is(err error) bool {
	return err == ErrNotEmbedded
}

// NewNotEmbeddedError returns a new NotEmbeddedError for the given
// field.
func NewNotEmbeddedError(field string) *NotEmbeddedError {
	return &NotEmbeddedError{Field: field}
}
