package gen

import "strings"

// DefaultHeader is the banner placed at the top of the generated
// file.
const DefaultHeader = "Code generated by protogen. DO NOT EDIT.\n\n" +
	"This file is automatically generated from the Avro definitions of\n" +
	"the protocol. It is not intended to be edited directly. To update\n" +
	"the protocol classes, rerun the generator on the appropriate\n" +
	"schema version."

// Config holds the settings of one generation run.
type Config struct {
	// Header is the banner comment of the generated file.
	Header string
	// Version is the schema version identifier the definitions
	// were generated from, e.g. "v0.5.1".
	Version string
	// Package is the package name of the generated file.
	Package string
	// Target is the output file path. The file is written to a
	// staging location first and published atomically on success.
	Target string
}

// NewConfig creates a configuration with the given options applied.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{
		Header:  DefaultHeader,
		Package: "definitions",
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// VersionString returns the version with a leading version-prefix
// character stripped, e.g. "v0.5.1" becomes "0.5.1". Version strings
// without a dotted component are taken literally.
func (c *Config) VersionString() string {
	v := c.Version
	if len(v) > 1 && (v[0] == 'v' || v[0] == 'V') && strings.Contains(v, ".") {
		return v[1:]
	}
	return v
}
