package gen

// Option configures code generation.
type Option func(*Config) error

// WithHeader sets the file header comment.
// The header is added at the top of the generated file.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithVersion sets the schema version identifier.
func WithVersion(version string) Option {
	return func(c *Config) error {
		if version == "" {
			return NewConfigError("Version", nil, "version cannot be empty")
		}
		c.Version = version
		return nil
	}
}

// WithPackage sets the package name of the generated file.
func WithPackage(pkg string) Option {
	return func(c *Config) error {
		if pkg == "" {
			return NewConfigError("Package", nil, "package cannot be empty")
		}
		c.Package = pkg
		return nil
	}
}

// WithTarget sets the output file path.
func WithTarget(path string) Option {
	return func(c *Config) error {
		if path == "" {
			return NewConfigError("Target", nil, "target path cannot be empty")
		}
		c.Target = path
		return nil
	}
}
