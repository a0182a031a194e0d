package content

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDefaultsThenLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	written, err := WriteDefaults(dir, false)
	require.NoError(t, err)
	assert.Len(t, written, 3)

	docs, err := Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, docs.Diseases, 5)
	assert.Equal(t, "d1", docs.Diseases[0].ID)
	assert.Equal(t, "Rice Blast", docs.Diseases[0].Name)
	assert.NotEmpty(t, docs.Vendors)
	assert.NotEmpty(t, docs.Translations)
}

func TestWriteDefaultsKeepsExistingFiles(t *testing.T) {
	dir := t.TempDir()
	custom := []byte(`[]`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, VendorsFile), custom, 0o644))

	written, err := WriteDefaults(dir, false)
	require.NoError(t, err)
	assert.Len(t, written, 2)

	raw, err := os.ReadFile(filepath.Join(dir, VendorsFile))
	require.NoError(t, err)
	assert.Equal(t, custom, raw)

	written, err = WriteDefaults(dir, true)
	require.NoError(t, err)
	assert.Len(t, written, 3)
}

func TestLoadMissingDocument(t *testing.T) {
	dir := t.TempDir()
	_, err := WriteDefaults(dir, false)
	require.NoError(t, err)
	require.NoError(t, os.Remove(filepath.Join(dir, TranslationsFile)))

	_, err = Load(context.Background(), dir)
	require.ErrorIs(t, err, ErrLoadFailed)
	assert.Contains(t, err.Error(), TranslationsFile)
}

func TestLoadRejectsUnknownSeverity(t *testing.T) {
	dir := t.TempDir()
	_, err := WriteDefaults(dir, false)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, DiseasesFile),
		[]byte(`[{"id":"d1","name":"x","severity":"Severe"}]`), 0o644))

	_, err = Load(context.Background(), dir)
	require.ErrorIs(t, err, ErrLoadFailed)
}

func TestLoadMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	_, err := WriteDefaults(dir, false)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, VendorsFile), []byte(`{`), 0o644))

	_, err = Load(context.Background(), dir)
	assert.ErrorIs(t, err, ErrLoadFailed)
}

func TestLoadCancelledContext(t *testing.T) {
	dir := t.TempDir()
	_, err := WriteDefaults(dir, false)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = Load(ctx, dir)
	require.ErrorIs(t, err, ErrLoadFailed)
	assert.ErrorIs(t, err, context.Canceled)
}
