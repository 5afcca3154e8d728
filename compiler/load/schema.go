// Package load parses raw Avro schema sources (.avsc) into the
// in-memory definitions consumed by the compiler.
package load

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Kind is the kind of a top-level type definition.
type Kind int

const (
	// KindRecord is a structured type with named, typed fields.
	KindRecord Kind = iota
	// KindEnum is a type restricted to a fixed ordered set of
	// named symbolic values.
	KindEnum
)

// String returns the Avro name of the kind.
func (k Kind) String() string {
	if k == KindEnum {
		return "enum"
	}
	return "record"
}

// DescriptorKind tags the variant of a field type descriptor.
type DescriptorKind int

const (
	// DescPrimitive is a primitive type (null, boolean, int, long,
	// float, double, bytes, string, fixed).
	DescPrimitive DescriptorKind = iota
	// DescArray is an array of a single element type.
	DescArray
	// DescRecord is a reference to another record type.
	DescRecord
	// DescEnum is a reference to an enum type.
	DescEnum
	// DescMap is a map from string to a single value type.
	DescMap
	// DescUnion is a union over an ordered list of branches.
	DescUnion
)

// Descriptor is the tagged variant describing a field's declared
// type. Exactly the fields matching Kind are populated; the rest are
// zero.
type Descriptor struct {
	// Kind selects the variant.
	Kind DescriptorKind
	// Name holds the primitive name for DescPrimitive, or the
	// referenced type name for DescRecord and DescEnum.
	Name string
	// LogicalType holds the Avro logical type annotation of a
	// primitive, if any (e.g. "uuid", "timestamp-millis").
	LogicalType string
	// Items holds the element descriptor for DescArray.
	Items *Descriptor
	// Values holds the value descriptor for DescMap.
	Values *Descriptor
	// Branches holds the union branches for DescUnion, in
	// declaration order.
	Branches []*Descriptor
}

// IsNull reports whether the descriptor is the null primitive marker.
func (d *Descriptor) IsNull() bool {
	return d != nil && d.Kind == DescPrimitive && d.Name == "null"
}

// Field is one named field of a record definition.
type Field struct {
	// Name is the field name, unique within its record.
	Name string
	// Doc holds the field documentation, if any.
	Doc string
	// Type is the declared type descriptor.
	Type *Descriptor
	// HasDefault indicates the field declared a default value.
	// Fields without a default are required.
	HasDefault bool
	// Default is the declared default value, JSON-decoded. Only
	// meaningful when HasDefault is true; a JSON null decodes to
	// nil.
	Default any
}

// Schema is one parsed type definition. Field order follows the
// source declaration; callers must not rely on it and sort by name
// before any emission.
type Schema struct {
	// Name is the unique type name.
	Name string
	// Kind is the definition kind.
	Kind Kind
	// Doc holds the type documentation, if any.
	Doc string
	// Fields holds the record fields in declaration order. Nil for
	// enums.
	Fields []*Field
	// Symbols holds the enum symbols in declaration order. Symbol
	// order is semantically meaningful and preserved. Nil for
	// records.
	Symbols []string
	// Source is the raw schema source the definition was parsed
	// from.
	Source []byte
}

// ParseError reports a raw schema source that could not be parsed
// into a definition. Any ParseError aborts the whole generation run.
type ParseError struct {
	File    string // source file, if known
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	msg := "load: parse error"
	if e.File != "" {
		msg += " in " + e.File
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// NewParseError creates a new ParseError.
func NewParseError(file, message string, cause error) *ParseError {
	return &ParseError{File: file, Message: message, Cause: cause}
}

// IsParseError reports whether the error is a ParseError.
func IsParseError(err error) bool {
	var e *ParseError
	return errors.As(err, &e)
}

// primitives is the closed set of Avro primitive type names.
var primitives = map[string]bool{
	"null":    true,
	"boolean": true,
	"int":     true,
	"long":    true,
	"float":   true,
	"double":  true,
	"bytes":   true,
	"string":  true,
}

// rawSchema mirrors the top level of an .avsc document.
type rawSchema struct {
	Type    string      `json:"type"`
	Name    string      `json:"name"`
	Doc     string      `json:"doc"`
	Fields  *[]rawField `json:"fields"`
	Symbols *[]string   `json:"symbols"`
}

// rawField mirrors one entry of a record's fields list. Default is a
// pointer so a declared "default": null is distinguishable from an
// absent default.
type rawField struct {
	Name    string           `json:"name"`
	Doc     string           `json:"doc"`
	Type    json.RawMessage  `json:"type"`
	Default *json.RawMessage `json:"default"`
}

// UnmarshalSchema parses one raw .avsc source into a Schema. All
// failures are reported as *ParseError.
func UnmarshalSchema(src []byte) (*Schema, error) {
	var raw rawSchema
	if err := json.Unmarshal(src, &raw); err != nil {
		return nil, NewParseError("", "invalid schema document", err)
	}
	if raw.Name == "" {
		return nil, NewParseError("", "schema has no name", nil)
	}
	s := &Schema{
		Name:   raw.Name,
		Doc:    raw.Doc,
		Source: src,
	}
	switch raw.Type {
	case "enum":
		s.Kind = KindEnum
		if raw.Symbols == nil || len(*raw.Symbols) == 0 {
			return nil, NewParseError("", fmt.Sprintf("enum %s has no symbols", raw.Name), nil)
		}
		s.Symbols = *raw.Symbols
	case "record":
		s.Kind = KindRecord
		if raw.Fields == nil {
			return nil, NewParseError("", fmt.Sprintf("record %s has no fields list", raw.Name), nil)
		}
		seen := make(map[string]bool, len(*raw.Fields))
		for _, rf := range *raw.Fields {
			if rf.Name == "" {
				return nil, NewParseError("", fmt.Sprintf("record %s has an unnamed field", raw.Name), nil)
			}
			if seen[rf.Name] {
				return nil, NewParseError("", fmt.Sprintf("record %s declares field %s twice", raw.Name, rf.Name), nil)
			}
			seen[rf.Name] = true
			f, err := parseField(raw.Name, rf)
			if err != nil {
				return nil, err
			}
			s.Fields = append(s.Fields, f)
		}
	default:
		return nil, NewParseError("", fmt.Sprintf("unsupported top-level type %q for %s", raw.Type, raw.Name), nil)
	}
	return s, nil
}

// parseField converts one raw field into a Field.
func parseField(typeName string, rf rawField) (*Field, error) {
	desc, err := parseDescriptor(rf.Type)
	if err != nil {
		return nil, NewParseError("", fmt.Sprintf("field %s.%s", typeName, rf.Name), err)
	}
	f := &Field{
		Name: rf.Name,
		Doc:  rf.Doc,
		Type: desc,
	}
	if rf.Default != nil {
		f.HasDefault = true
		if err := json.Unmarshal(*rf.Default, &f.Default); err != nil {
			return nil, NewParseError("", fmt.Sprintf("field %s.%s default", typeName, rf.Name), err)
		}
	}
	return f, nil
}

// parseDescriptor decodes one Avro type declaration. A declaration is
// either a JSON string (primitive or named-type reference), a JSON
// array (union), or a JSON object (inline complex type).
func parseDescriptor(raw json.RawMessage) (*Descriptor, error) {
	if len(raw) == 0 {
		return nil, errors.New("missing type declaration")
	}
	switch raw[0] {
	case '"':
		var name string
		if err := json.Unmarshal(raw, &name); err != nil {
			return nil, err
		}
		if primitives[name] {
			return &Descriptor{Kind: DescPrimitive, Name: name}, nil
		}
		// A bare non-primitive name references a record defined
		// earlier in the same source.
		return &Descriptor{Kind: DescRecord, Name: name}, nil
	case '[':
		var branches []json.RawMessage
		if err := json.Unmarshal(raw, &branches); err != nil {
			return nil, err
		}
		d := &Descriptor{Kind: DescUnion}
		for _, b := range branches {
			bd, err := parseDescriptor(b)
			if err != nil {
				return nil, err
			}
			d.Branches = append(d.Branches, bd)
		}
		return d, nil
	case '{':
		return parseComplex(raw)
	default:
		return nil, fmt.Errorf("invalid type declaration %s", raw)
	}
}

// rawComplex mirrors an inline complex type declaration.
type rawComplex struct {
	Type        json.RawMessage `json:"type"`
	Name        string          `json:"name"`
	LogicalType string          `json:"logicalType"`
	Items       json.RawMessage `json:"items"`
	Values      json.RawMessage `json:"values"`
}

// parseComplex decodes an inline object type declaration.
func parseComplex(raw json.RawMessage) (*Descriptor, error) {
	var c rawComplex
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	var tn string
	if len(c.Type) > 0 && c.Type[0] == '"' {
		if err := json.Unmarshal(c.Type, &tn); err != nil {
			return nil, err
		}
	} else if len(c.Type) > 0 {
		// The type attribute may itself be a full declaration.
		return parseDescriptor(c.Type)
	}
	switch tn {
	case "record", "error":
		if c.Name == "" {
			return nil, errors.New("inline record has no name")
		}
		return &Descriptor{Kind: DescRecord, Name: c.Name}, nil
	case "enum":
		if c.Name == "" {
			return nil, errors.New("inline enum has no name")
		}
		return &Descriptor{Kind: DescEnum, Name: c.Name}, nil
	case "array":
		if len(c.Items) == 0 {
			return nil, errors.New("array has no items")
		}
		items, err := parseDescriptor(c.Items)
		if err != nil {
			return nil, err
		}
		return &Descriptor{Kind: DescArray, Items: items}, nil
	case "map":
		if len(c.Values) == 0 {
			return nil, errors.New("map has no values")
		}
		values, err := parseDescriptor(c.Values)
		if err != nil {
			return nil, err
		}
		return &Descriptor{Kind: DescMap, Values: values}, nil
	case "fixed":
		return &Descriptor{Kind: DescPrimitive, Name: "bytes"}, nil
	default:
		if primitives[tn] {
			return &Descriptor{Kind: DescPrimitive, Name: tn, LogicalType: c.LogicalType}, nil
		}
		return nil, fmt.Errorf("unsupported complex type %q", tn)
	}
}
