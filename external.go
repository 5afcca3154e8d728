package protogen

import "context"

// SchemaProvider yields a directory of .avsc schema sources for one
// generation run. Providers that acquire temporary resources (a
// downloaded tarball, an extraction directory) must return a release
// function that cleans them up; callers invoke it on every exit path,
// success or failure.
type SchemaProvider interface {
	// Provide returns the directory containing the schema sources
	// and a release function for any temporary resources acquired.
	// The release function is never nil.
	Provide(ctx context.Context) (dir string, release func() error, err error)
}

// ToolRunner invokes an external IDL compiler (e.g. avro-tools
// idl2schemata) in the given working directory. The working directory
// is an explicit argument; implementations must not change the
// process-wide working directory.
type ToolRunner interface {
	Run(ctx context.Context, workdir string, args ...string) error
}

// LocalDirectory is a SchemaProvider for schema sources already on
// disk. It bypasses download and extraction entirely and owns no
// temporary resources.
type LocalDirectory string

// Provide returns the directory itself with a no-op release.
func (d LocalDirectory) Provide(_ context.Context) (string, func() error, error) {
	return string(d), func() error { return nil }, nil
}
