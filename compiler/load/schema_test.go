package load

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalSchemaRecord(t *testing.T) {
	src := []byte(`{
		"type": "record",
		"name": "Variant",
		"doc": "A variant call.",
		"fields": [
			{"name": "id", "type": "string"},
			{"name": "names", "type": {"type": "array", "items": "string"}, "default": []},
			{"name": "calls", "type": {"type": "array", "items": {"type": "record", "name": "Call", "fields": []}}, "default": []},
			{"name": "info", "type": {"type": "map", "values": "string"}, "default": {}},
			{"name": "created", "type": "long", "default": null}
		]
	}`)

	s, err := UnmarshalSchema(src)
	require.NoError(t, err)
	assert.Equal(t, "Variant", s.Name)
	assert.Equal(t, KindRecord, s.Kind)
	assert.Equal(t, "A variant call.", s.Doc)
	assert.Equal(t, src, s.Source)
	require.Len(t, s.Fields, 5)

	t.Run("declaration order is preserved at load time", func(t *testing.T) {
		names := make([]string, len(s.Fields))
		for i, f := range s.Fields {
			names[i] = f.Name
		}
		assert.Equal(t, []string{"id", "names", "calls", "info", "created"}, names)
	})

	t.Run("default presence", func(t *testing.T) {
		assert.False(t, s.Fields[0].HasDefault)
		assert.True(t, s.Fields[1].HasDefault)
		// A literal null default still counts as a default.
		assert.True(t, s.Fields[4].HasDefault)
		assert.Nil(t, s.Fields[4].Default)
	})

	t.Run("descriptors", func(t *testing.T) {
		assert.Equal(t, DescPrimitive, s.Fields[0].Type.Kind)
		assert.Equal(t, "string", s.Fields[0].Type.Name)

		names := s.Fields[1].Type
		require.Equal(t, DescArray, names.Kind)
		assert.Equal(t, DescPrimitive, names.Items.Kind)

		calls := s.Fields[2].Type
		require.Equal(t, DescArray, calls.Kind)
		require.Equal(t, DescRecord, calls.Items.Kind)
		assert.Equal(t, "Call", calls.Items.Name)

		info := s.Fields[3].Type
		require.Equal(t, DescMap, info.Kind)
		assert.Equal(t, DescPrimitive, info.Values.Kind)
	})
}

func TestUnmarshalSchemaEnum(t *testing.T) {
	src := []byte(`{
		"type": "enum",
		"name": "CigarOperation",
		"symbols": ["ALIGNMENT_MATCH", "INSERT", "DELETE"]
	}`)

	s, err := UnmarshalSchema(src)
	require.NoError(t, err)
	assert.Equal(t, KindEnum, s.Kind)
	assert.Equal(t, []string{"ALIGNMENT_MATCH", "INSERT", "DELETE"}, s.Symbols)
	assert.Empty(t, s.Fields)
}

func TestUnmarshalSchemaUnion(t *testing.T) {
	src := []byte(`{
		"type": "record",
		"name": "Call",
		"fields": [
			{"name": "call_set", "type": ["null", {"type": "record", "name": "CallSet", "fields": []}], "default": null},
			{"name": "genotype", "type": ["null", "string", "long"]}
		]
	}`)

	s, err := UnmarshalSchema(src)
	require.NoError(t, err)

	cs := s.Fields[0].Type
	require.Equal(t, DescUnion, cs.Kind)
	require.Len(t, cs.Branches, 2)
	assert.True(t, cs.Branches[0].IsNull())
	assert.Equal(t, DescRecord, cs.Branches[1].Kind)
	assert.Equal(t, "CallSet", cs.Branches[1].Name)

	// Parsing accepts arbitrary unions; shape validation happens in
	// the resolver.
	gt := s.Fields[1].Type
	require.Equal(t, DescUnion, gt.Kind)
	assert.Len(t, gt.Branches, 3)
}

func TestUnmarshalSchemaReferences(t *testing.T) {
	src := []byte(`{
		"type": "record",
		"name": "Wrapper",
		"fields": [
			{"name": "position", "type": "Position"},
			{"name": "strand", "type": {"type": "enum", "name": "Strand", "symbols": ["POS_STRAND", "NEG_STRAND"]}},
			{"name": "key", "type": {"type": "string", "logicalType": "uuid"}}
		]
	}`)

	s, err := UnmarshalSchema(src)
	require.NoError(t, err)

	// A bare non-primitive name is a record reference.
	assert.Equal(t, DescRecord, s.Fields[0].Type.Kind)
	assert.Equal(t, "Position", s.Fields[0].Type.Name)

	assert.Equal(t, DescEnum, s.Fields[1].Type.Kind)
	assert.Equal(t, "Strand", s.Fields[1].Type.Name)

	key := s.Fields[2].Type
	assert.Equal(t, DescPrimitive, key.Kind)
	assert.Equal(t, "uuid", key.LogicalType)
}

func TestUnmarshalSchemaErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		src  string
	}{
		{"invalid json", `{"type": "record"`},
		{"missing name", `{"type": "record", "fields": []}`},
		{"unsupported top-level type", `{"type": "map", "name": "M", "values": "string"}`},
		{"record without fields list", `{"type": "record", "name": "R"}`},
		{"enum without symbols", `{"type": "enum", "name": "E", "symbols": []}`},
		{"unnamed field", `{"type": "record", "name": "R", "fields": [{"type": "string"}]}`},
		{"duplicate field", `{"type": "record", "name": "R", "fields": [
			{"name": "a", "type": "string"}, {"name": "a", "type": "long"}]}`},
		{"field without type", `{"type": "record", "name": "R", "fields": [{"name": "a"}]}`},
		{"array without items", `{"type": "record", "name": "R", "fields": [
			{"name": "a", "type": {"type": "array"}}]}`},
		{"inline record without name", `{"type": "record", "name": "R", "fields": [
			{"name": "a", "type": {"type": "record", "fields": []}}]}`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := UnmarshalSchema([]byte(tc.src))
			require.Error(t, err)
			assert.True(t, IsParseError(err))
		})
	}
}

func TestParseError(t *testing.T) {
	t.Run("message includes file and cause", func(t *testing.T) {
		cause := assert.AnError
		err := NewParseError("variants.avsc", "invalid schema document", cause)
		assert.Contains(t, err.Error(), "load: parse error")
		assert.Contains(t, err.Error(), "variants.avsc")
		assert.Contains(t, err.Error(), "invalid schema document")
		assert.ErrorIs(t, err, cause)
	})

	t.Run("IsParseError helper", func(t *testing.T) {
		assert.True(t, IsParseError(NewParseError("", "x", nil)))
		assert.False(t, IsParseError(assert.AnError))
	})
}
