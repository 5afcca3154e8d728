package load

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "variant.avsc", `{"type": "record", "name": "Variant", "fields": [{"name": "id", "type": "string"}]}`)
	writeFile(t, dir, "strand.avsc", `{"type": "enum", "name": "Strand", "symbols": ["POS", "NEG"]}`)
	writeFile(t, dir, "notes.txt", `not a schema`)

	schemas, err := LoadDir(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, schemas, 2)

	names := map[string]bool{}
	for _, s := range schemas {
		names[s.Name] = true
	}
	assert.True(t, names["Variant"])
	assert.True(t, names["Strand"])
}

func TestLoadDirEmpty(t *testing.T) {
	schemas, err := LoadDir(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, schemas)
}

func TestLoadDirParseFailureAborts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.avsc", `{"type": "record", "name": "Good", "fields": []}`)
	writeFile(t, dir, "bad.avsc", `{"type": "record"`)

	_, err := LoadDir(context.Background(), dir)
	require.Error(t, err)
	assert.True(t, IsParseError(err))

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.File, "bad.avsc")
}

func TestLoadDirCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "variant.avsc", `{"type": "record", "name": "Variant", "fields": []}`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := LoadDir(ctx, dir)
	assert.ErrorIs(t, err, context.Canceled)
}
