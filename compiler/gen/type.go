package gen

import (
	"encoding/json"
	"sort"

	"github.com/syssam/protogen/compiler/load"
	"github.com/syssam/protogen/protocol"
)

// Type is one analyzed type definition. All derived views (field
// order, required set, embedded-type table, value-list name, compacted
// schema source) are computed once in NewType and never recomputed;
// the emitted code embeds them as static structures.
type Type struct {
	schema *load.Schema
	// Name holds the type name.
	Name string
	// Tag holds the classification of the definition.
	Tag Tag

	fields    []*load.Field
	required  []string
	embedded  map[string]string
	edges     []EmbeddedType
	valueList string
	source    string
}

// EmbeddedType is one edge from a field to the record type it
// references, directly or through an array or nullable wrapper.
type EmbeddedType struct {
	Field string
	Type  string
}

// pageTokenField is the field every search response carries alongside
// its value list.
const pageTokenField = "next_page_token"

// NewType analyzes one parsed definition. It fails with a
// UnionShapeError for any field union that is not exactly
// [null, Record], and with a ResponseShapeError for a search response
// whose fields are not exactly {next_page_token, value list}.
func NewType(s *load.Schema) (*Type, error) {
	t := &Type{
		schema: s,
		Name:   s.Name,
		Tag:    Classify(s),
	}
	if s.Kind == load.KindEnum {
		return t, nil
	}

	// Field order is a pure function of name, independent of the
	// declaration order in the source.
	t.fields = make([]*load.Field, len(s.Fields))
	copy(t.fields, s.Fields)
	sort.Slice(t.fields, func(i, j int) bool { return t.fields[i].Name < t.fields[j].Name })

	t.embedded = make(map[string]string)
	for _, f := range t.fields {
		if !f.HasDefault {
			t.required = append(t.required, f.Name)
		}
		name, ok, err := embeddedName(t.Name, f)
		if err != nil {
			return nil, err
		}
		if ok {
			t.embedded[f.Name] = name
			t.edges = append(t.edges, EmbeddedType{Field: f.Name, Type: name})
		}
	}

	if t.Tag == TagSearchResponse {
		rest := make([]string, 0, len(t.fields))
		for _, f := range t.fields {
			if f.Name != pageTokenField {
				rest = append(rest, f.Name)
			}
		}
		if len(rest) != 1 || len(t.fields) != 2 {
			names := make([]string, len(t.fields))
			for i, f := range t.fields {
				names[i] = f.Name
			}
			return nil, NewResponseShapeError(t.Name, names)
		}
		t.valueList = rest[0]
	}

	source, err := compactSource(s.Source)
	if err != nil {
		return nil, NewGenerationError("analyze", t.Name, "compacting schema source", err)
	}
	t.source = source
	return t, nil
}

// embeddedName resolves the embedded-type edge of a single field, if
// any. Primitive, enum and map descriptors carry no edge. Unions are
// accepted only in the two-branch nullable-record shape; any other
// arrangement is rejected explicitly rather than silently skipped.
func embeddedName(typeName string, f *load.Field) (string, bool, error) {
	d := f.Type
	switch d.Kind {
	case load.DescRecord:
		return d.Name, true, nil
	case load.DescArray:
		if d.Items.Kind == load.DescRecord {
			return d.Items.Name, true, nil
		}
		return "", false, nil
	case load.DescUnion:
		if len(d.Branches) != 2 {
			return "", false, NewUnionShapeError(typeName, f.Name, "expected exactly two branches")
		}
		if !d.Branches[0].IsNull() {
			return "", false, NewUnionShapeError(typeName, f.Name, "first branch must be null")
		}
		if d.Branches[1].Kind != load.DescRecord {
			return "", false, NewUnionShapeError(typeName, f.Name, "second branch must be a record")
		}
		return d.Branches[1].Name, true, nil
	default:
		return "", false, nil
	}
}

// Schema returns the underlying parsed definition.
func (t *Type) Schema() *load.Schema {
	return t.schema
}

// Fields returns the record fields sorted by name. The returned
// slice must not be modified.
func (t *Type) Fields() []*load.Field {
	return t.fields
}

// Symbols returns the enum symbols in declaration order.
func (t *Type) Symbols() []string {
	return t.schema.Symbols
}

// Doc returns the attached documentation, or the literal
// "No documentation" when the definition carries none.
func (t *Type) Doc() string {
	if t.schema.Doc == "" {
		return "No documentation"
	}
	return t.schema.Doc
}

// RequiredFields returns the names of fields without a default
// value, sorted by name.
func (t *Type) RequiredFields() []string {
	return t.required
}

// ValueListName returns the name of the value-list field of a search
// response. It is only meaningful for TagSearchResponse types.
func (t *Type) ValueListName() string {
	return t.valueList
}

// IsEmbeddedType reports whether the named field references another
// record type.
func (t *Type) IsEmbeddedType(field string) bool {
	_, ok := t.embedded[field]
	return ok
}

// EmbeddedType returns the name of the record type the named field
// references. It fails for fields without an embedded-type edge.
func (t *Type) EmbeddedType(field string) (string, error) {
	name, ok := t.embedded[field]
	if !ok {
		return "", protocol.NewNotEmbeddedError(field)
	}
	return name, nil
}

// EmbeddedTypes returns all embedded-type edges, ordered by field
// name.
func (t *Type) EmbeddedTypes() []EmbeddedType {
	return t.edges
}

// SchemaSource returns the compacted schema source with every doc
// value recursively blanked.
func (t *Type) SchemaSource() string {
	return t.source
}

// compactSource decodes the raw schema source, blanks every "doc"
// value recursively, and re-encodes it compactly. Key order of the
// re-encoded document is deterministic.
func compactSource(src []byte) (string, error) {
	var doc any
	if err := json.Unmarshal(src, &doc); err != nil {
		return "", err
	}
	stripDocs(doc)
	out, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// stripDocs blanks "doc" entries in place, walking nested objects and
// lists.
func stripDocs(v any) {
	switch v := v.(type) {
	case map[string]any:
		if _, ok := v["doc"]; ok {
			v["doc"] = ""
		}
		for _, elem := range v {
			stripDocs(elem)
		}
	case []any:
		for _, elem := range v {
			stripDocs(elem)
		}
	}
}
