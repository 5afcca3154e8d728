package gen

import (
	"sort"

	"github.com/syssam/protogen/compiler/load"
)

// Graph holds the analyzed types of one generation run.
type Graph struct {
	// Config of the run.
	Config *Config
	// Nodes holds the analyzed types sorted by name.
	Nodes []*Type
}

// NewGraph analyzes the given definitions and builds the graph. The
// node order is lexicographic by type name regardless of the input
// order, making generation deterministic for a given definition set.
// Any analysis failure aborts the whole build.
func NewGraph(c *Config, schemas ...*load.Schema) (*Graph, error) {
	if c == nil {
		return nil, NewConfigError("Config", nil, "config cannot be nil")
	}
	g := &Graph{Config: c, Nodes: make([]*Type, 0, len(schemas))}
	seen := make(map[string]bool, len(schemas))
	for _, s := range schemas {
		if seen[s.Name] {
			return nil, NewGenerationError("analyze", s.Name, "duplicate type name", nil)
		}
		seen[s.Name] = true
		t, err := NewType(s)
		if err != nil {
			return nil, err
		}
		g.Nodes = append(g.Nodes, t)
	}
	sort.Slice(g.Nodes, func(i, j int) bool { return g.Nodes[i].Name < g.Nodes[j].Name })
	return g, nil
}
