package load

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

// LoadDir parses every .avsc file in dir. Files are parsed in
// parallel; the result order is not significant and callers sort by
// name before emission. The first failure aborts the whole load.
func LoadDir(ctx context.Context, dir string) ([]*Schema, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.avsc"))
	if err != nil {
		return nil, NewParseError(dir, "scanning schema directory", err)
	}
	sort.Strings(paths)

	schemas := make([]*Schema, len(paths))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			src, err := os.ReadFile(path)
			if err != nil {
				return NewParseError(path, "reading schema source", err)
			}
			s, err := UnmarshalSchema(src)
			if err != nil {
				var perr *ParseError
				if errors.As(err, &perr) && perr.File == "" {
					perr.File = path
					return perr
				}
				return err
			}
			schemas[i] = s
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return schemas, nil
}
