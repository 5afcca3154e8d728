// protogen generates the Go protocol definitions from a directory of
// Avro schema sources. All settings come from a YAML config file
// (protogen.yaml by default, or the sole command argument).
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/syssam/protogen"
	"github.com/syssam/protogen/compiler/gen"
	"github.com/syssam/protogen/compiler/load"
)

// fileConfig mirrors the YAML config document.
type fileConfig struct {
	// Version is the schema version identifier, e.g. "v0.5.1".
	Version string `yaml:"version"`
	// Schemas is the directory holding the .avsc sources.
	Schemas string `yaml:"schemas"`
	// Output is the generated file path.
	Output string `yaml:"output"`
	// Package is the package name of the generated file.
	Package string `yaml:"package"`
	// Watch keeps the process running and regenerates on changes.
	Watch bool `yaml:"watch"`
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("protogen: ")

	path := "protogen.yaml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	if err := run(context.Background(), path); err != nil {
		log.Fatal(err)
	}
}

// run executes one generation pass, then watch mode when configured.
// Failures are returned rather than logged fatally so the provider
// release runs on every exit path.
func run(ctx context.Context, path string) error {
	buf, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Schemas == "" || cfg.Output == "" || cfg.Version == "" {
		return fmt.Errorf("config %s must set version, schemas and output", path)
	}

	provider := protogen.LocalDirectory(cfg.Schemas)
	dir, release, err := provider.Provide(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := release(); err != nil {
			log.Print("releasing schema sources: ", err)
		}
	}()

	opts := []gen.Option{
		gen.WithVersion(cfg.Version),
		gen.WithTarget(cfg.Output),
	}
	if cfg.Package != "" {
		opts = append(opts, gen.WithPackage(cfg.Package))
	}

	regen := func(ctx context.Context) error {
		schemas, err := load.LoadDir(ctx, dir)
		if err != nil {
			return err
		}
		config, err := gen.NewConfig(opts...)
		if err != nil {
			return err
		}
		graph, err := gen.NewGraph(config, schemas...)
		if err != nil {
			return err
		}
		return gen.NewGenerator(graph).Generate(ctx)
	}

	if err := regen(ctx); err != nil {
		return err
	}
	log.Printf("wrote %s", cfg.Output)

	if cfg.Watch {
		log.Printf("watching %s", dir)
		return gen.Watch(ctx, dir, regen)
	}
	return nil
}
