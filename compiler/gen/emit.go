package gen

import (
	"strings"

	"github.com/dave/jennifer/jen"
	"github.com/go-openapi/inflect"

	"github.com/syssam/protogen/compiler/load"
)

// Import paths referenced by the generated file. Jennifer tracks the
// imports automatically.
const (
	protocolPkg = "github.com/syssam/protogen/protocol"
	uuidPkg     = "github.com/google/uuid"
)

// emitType renders one generated type into the output file. Records
// get a struct, the static schema/required/embedded tables, their
// lookup methods and a zero-argument constructor; enums get a named
// string type and one constant per symbol in declaration order.
func emitType(f *jen.File, t *Type) {
	if t.Tag == TagEnum {
		emitEnum(f, t)
		return
	}
	emitRecord(f, t)
}

// emitEnum renders an enum definition. Unlike record fields, symbol
// order is semantically meaningful and preserved as declared.
func emitEnum(f *jen.File, t *Type) {
	f.Comment(wrapComment(t.Name + ": " + t.Doc()))
	f.Type().Id(t.Name).String()

	defs := make([]jen.Code, 0, len(t.Symbols()))
	for _, sym := range t.Symbols() {
		defs = append(defs, jen.Id(symbolName(t.Name, sym)).Id(t.Name).Op("=").Lit(sym))
	}
	f.Commentf("%s symbols, in declaration order.", t.Name)
	f.Const().Defs(defs...)
}

// emitRecord renders a record definition.
func emitRecord(f *jen.File, t *Type) {
	name := t.Name
	priv := unexported(name)

	// Struct declaration, fields sorted by name.
	f.Comment(wrapComment(name + ": " + t.Doc()))
	f.Type().Id(name).StructFunc(func(s *jen.Group) {
		for _, fld := range t.Fields() {
			s.Id(goName(fld.Name)).Add(goType(fld.Type)).Tag(map[string]string{"json": fld.Name})
		}
	})

	// Static tables, built once at generation time.
	f.Commentf("%sSchema is the compacted, documentation-stripped source of %s.", priv, name)
	f.Const().Id(priv + "Schema").Op("=").Lit(t.SchemaSource())

	required := jen.Dict{}
	for _, r := range t.RequiredFields() {
		required[jen.Lit(r)] = jen.Values()
	}
	f.Var().Id(priv + "Required").Op("=").Map(jen.String()).Struct().Values(required)

	embedded := jen.Dict{}
	for _, e := range t.EmbeddedTypes() {
		embedded[jen.Lit(e.Field)] = jen.Lit(e.Type)
	}
	f.Var().Id(priv + "Embedded").Op("=").Map(jen.String()).String().Values(embedded)

	// ProtocolElement methods.
	f.Comment("SchemaSource returns the schema source the type was generated from.")
	f.Func().Params(jen.Op("*").Id(name)).Id("SchemaSource").Params().String().Block(
		jen.Return(jen.Id(priv + "Schema")),
	)
	f.Comment("RequiredFields returns the set of fields without a default value.")
	f.Comment("The caller owns the returned map.")
	f.Func().Params(jen.Op("*").Id(name)).Id("RequiredFields").Params().Map(jen.String()).Struct().Block(
		jen.Id("out").Op(":=").Make(jen.Map(jen.String()).Struct(), jen.Len(jen.Id(priv+"Required"))),
		jen.For(jen.Id("name").Op(":=").Range().Id(priv+"Required")).Block(
			jen.Id("out").Index(jen.Id("name")).Op("=").Struct().Values(),
		),
		jen.Return(jen.Id("out")),
	)
	f.Comment("IsEmbeddedType reports whether the named field references another record type.")
	f.Func().Params(jen.Op("*").Id(name)).Id("IsEmbeddedType").Params(jen.Id("field").String()).Bool().Block(
		jen.List(jen.Id("_"), jen.Id("ok")).Op(":=").Id(priv+"Embedded").Index(jen.Id("field")),
		jen.Return(jen.Id("ok")),
	)
	f.Comment("EmbeddedType returns the record type the named field references.")
	f.Func().Params(jen.Op("*").Id(name)).Id("EmbeddedType").Params(jen.Id("field").String()).Params(jen.String(), jen.Error()).Block(
		jen.List(jen.Id("name"), jen.Id("ok")).Op(":=").Id(priv+"Embedded").Index(jen.Id("field")),
		jen.If(jen.Op("!").Id("ok")).Block(
			jen.Return(jen.Lit(""), jen.Qual(protocolPkg, "NewNotEmbeddedError").Call(jen.Id("field"))),
		),
		jen.Return(jen.Id("name"), jen.Nil()),
	)

	if t.Tag == TagSearchResponse {
		f.Const().Id(priv + "ValueList").Op("=").Lit(t.ValueListName())
		f.Comment("ValueListName returns the field holding the page of result values.")
		f.Func().Params(jen.Op("*").Id(name)).Id("ValueListName").Params().String().Block(
			jen.Return(jen.Id(priv + "ValueList")),
		)
	}

	// Zero-argument constructor. Every field is assigned in sorted
	// order: its declared default when present, the zero value of
	// its Go type otherwise. The field set is closed by construction.
	init := jen.Dict{}
	for _, fld := range t.Fields() {
		init[jen.Id(goName(fld.Name))] = fieldValue(fld)
	}
	f.Commentf("New%s returns a %s with every field set to its declared default.", name, name)
	f.Func().Id("New"+name).Params().Op("*").Id(name).Block(
		jen.Return(jen.Op("&").Id(name).Values(init)),
	)

	// Classification tag, checked at compile time.
	f.Var().Id("_").Qual(protocolPkg, superInterface(t.Tag)).Op("=").Parens(jen.Op("*").Id(name)).Call(jen.Nil())
}

// superInterface maps a classification tag to the protocol interface
// the generated type is asserted against.
func superInterface(tag Tag) string {
	switch tag {
	case TagSearchRequest:
		return "SearchRequest"
	case TagSearchResponse:
		return "SearchResponse"
	default:
		return "ProtocolElement"
	}
}

// goType returns the Go type of a field descriptor. Unions reaching
// this point are already validated as [null, Record] by the resolver.
func goType(d *load.Descriptor) jen.Code {
	switch d.Kind {
	case load.DescPrimitive:
		return primitiveType(d)
	case load.DescArray:
		return jen.Index().Add(goType(d.Items))
	case load.DescMap:
		return jen.Map(jen.String()).Add(goType(d.Values))
	case load.DescRecord:
		return jen.Op("*").Id(d.Name)
	case load.DescEnum:
		return jen.Id(d.Name)
	case load.DescUnion:
		return jen.Op("*").Id(d.Branches[1].Name)
	default:
		return jen.Any()
	}
}

// primitiveType maps an Avro primitive to its Go type.
func primitiveType(d *load.Descriptor) jen.Code {
	switch d.Name {
	case "boolean":
		return jen.Bool()
	case "int":
		return jen.Int32()
	case "long":
		return jen.Int64()
	case "float":
		return jen.Float32()
	case "double":
		return jen.Float64()
	case "bytes":
		return jen.Index().Byte()
	case "string":
		if d.LogicalType == "uuid" {
			return jen.Qual(uuidPkg, "UUID")
		}
		return jen.String()
	default:
		return jen.Any()
	}
}

// fieldValue returns the constructor value of a field: the declared
// default when present, the zero value of its Go type otherwise.
func fieldValue(f *load.Field) jen.Code {
	if !f.HasDefault || f.Default == nil {
		return zeroValue(f.Type)
	}
	return defaultValue(f.Type, f.Default)
}

// zeroValue returns the zero value of a descriptor's Go type.
func zeroValue(d *load.Descriptor) jen.Code {
	switch d.Kind {
	case load.DescPrimitive:
		switch d.Name {
		case "boolean":
			return jen.False()
		case "int", "long", "float", "double":
			return jen.Lit(0)
		case "string":
			if d.LogicalType == "uuid" {
				return jen.Qual(uuidPkg, "Nil")
			}
			return jen.Lit("")
		default:
			return jen.Nil()
		}
	case load.DescEnum:
		return jen.Id(d.Name).Call(jen.Lit(""))
	default:
		// Arrays, maps, records and nullable unions are nil by
		// default.
		return jen.Nil()
	}
}

// defaultValue renders a declared default. Defaults are JSON-decoded,
// so numbers arrive as float64 and composite defaults as []any or
// map[string]any; only the empty composite forms are representable.
func defaultValue(d *load.Descriptor, v any) jen.Code {
	switch d.Kind {
	case load.DescArray:
		return jen.Index().Add(goType(d.Items)).Values()
	case load.DescMap:
		return jen.Map(jen.String()).Add(goType(d.Values)).Values()
	case load.DescEnum:
		if s, ok := v.(string); ok {
			return jen.Id(symbolName(d.Name, s))
		}
		return zeroValue(d)
	case load.DescPrimitive:
		switch d.Name {
		case "int", "long":
			if n, ok := v.(float64); ok {
				return jen.Lit(int(n))
			}
		case "float", "double":
			if n, ok := v.(float64); ok {
				return jen.Lit(n)
			}
		case "boolean":
			if b, ok := v.(bool); ok {
				return jen.Lit(b)
			}
		case "string":
			if s, ok := v.(string); ok {
				return jen.Lit(s)
			}
		}
		return zeroValue(d)
	default:
		return zeroValue(d)
	}
}

// goName converts a snake_case schema name to an exported Go
// identifier.
func goName(name string) string {
	return inflect.Camelize(name)
}

// symbolName builds the constant name of an enum symbol.
func symbolName(enum, symbol string) string {
	return enum + inflect.Camelize(strings.ToLower(symbol))
}

// unexported lowers the first rune of an identifier.
func unexported(name string) string {
	if name == "" {
		return name
	}
	return strings.ToLower(name[:1]) + name[1:]
}

// wrapComment greedily wraps documentation text for comment emission.
func wrapComment(text string) string {
	words := strings.Fields(text)
	var b strings.Builder
	line := 0
	for i, w := range words {
		if line > 0 && line+1+len(w) > 72 {
			b.WriteByte('\n')
			line = 0
		} else if i > 0 {
			b.WriteByte(' ')
			line++
		}
		b.WriteString(w)
		line += len(w)
	}
	return b.String()
}
