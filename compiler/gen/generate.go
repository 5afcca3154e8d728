package gen

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/dave/jennifer/jen"
	"golang.org/x/tools/imports"
)

// Generator renders a graph into the single generated definitions
// file. The run is a batch transformation: types are emitted in
// sorted name order, the endpoint table is appended last, and the
// output is published atomically so a failed run never leaves a
// partially written file behind.
type Generator struct {
	graph *Graph
}

// NewGenerator creates a generator for the given graph.
func NewGenerator(g *Graph) *Generator {
	return &Generator{graph: g}
}

// Generate renders and publishes the definitions file.
func (g *Generator) Generate(ctx context.Context) error {
	cfg := g.graph.Config
	if cfg.Target == "" {
		return NewConfigError("Target", nil, "missing target path in config")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	src, err := g.render()
	if err != nil {
		return err
	}
	return publish(cfg.Target, src)
}

// render produces the formatted source of the definitions file.
func (g *Generator) render() ([]byte, error) {
	cfg := g.graph.Config
	f := jen.NewFile(cfg.Package)
	f.HeaderComment(cfg.Header)

	// Version holds the schema version, leading prefix stripped.
	f.Comment("Version is the schema version the definitions were generated from.")
	f.Const().Id("Version").Op("=").Lit(cfg.VersionString())

	for _, t := range g.graph.Nodes {
		emitType(f, t)
	}

	endpoints := make([]jen.Code, 0)
	for _, ep := range g.graph.Endpoints() {
		endpoints = append(endpoints, jen.Values(jen.Dict{
			jen.Id("URL"):      jen.Lit(ep.URL),
			jen.Id("Request"):  jen.Lit(ep.Request),
			jen.Id("Response"): jen.Lit(ep.Response),
		}))
	}
	f.Comment("Endpoints lists the search POST endpoints, sorted by URL.")
	f.Var().Id("Endpoints").Op("=").Index().Qual(protocolPkg, "Endpoint").Values(endpoints...)

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, NewGenerationError("emit", "", "rendering definitions", err)
	}

	// Reformat with goimports as a structural check on the emitted
	// source.
	formatted, err := imports.Process(cfg.Target, buf.Bytes(), nil)
	if err != nil {
		return nil, NewGenerationError("format", "", "formatting definitions", err)
	}
	return formatted, nil
}

// publish writes src to a staging file next to target and renames it
// into place. Downstream consumers never observe a partial file.
func publish(target string, src []byte) error {
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return NewGenerationError("write", "", "creating output directory", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(target)+".*.tmp")
	if err != nil {
		return NewGenerationError("write", "", "creating staging file", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(src); err != nil {
		tmp.Close()
		return NewGenerationError("write", "", "writing staging file", err)
	}
	if err := tmp.Close(); err != nil {
		return NewGenerationError("write", "", "closing staging file", err)
	}
	// CreateTemp opens 0600; the published file must be readable.
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return NewGenerationError("write", "", "setting staging file mode", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return NewGenerationError("write", "", "publishing output file", err)
	}
	return nil
}

// Generate is a convenience function that renders the graph with a
// default generator.
func Generate(g *Graph) error {
	return NewGenerator(g).Generate(context.Background())
}
