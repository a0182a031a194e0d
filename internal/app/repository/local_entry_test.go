package repository

import (
	"context"
	"path/filepath"
	"testing"

	"riceguard/internal/app/localfirst"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ localfirst.LocalStorage = (*Repository)(nil)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	r, err := New("sqlite", filepath.Join(t.TempDir(), "local.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestGetMissingKey(t *testing.T) {
	r := newTestRepository(t)
	v, ok, err := r.Get(context.Background(), localfirst.KeyLocalDiseases)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestSetIsLastWriteWins(t *testing.T) {
	r := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, localfirst.KeyLocalDiseases, `[{"id":"d1"}]`))
	require.NoError(t, r.Set(ctx, localfirst.KeyLocalDiseases, `[]`))

	v, ok, err := r.Get(ctx, localfirst.KeyLocalDiseases)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, v)

	keys, err := r.Keys(ctx)
	require.NoError(t, err)
	require.Len(t, keys, 1)
	assert.Equal(t, localfirst.KeyLocalDiseases, keys[0].Key)
}

func TestDelete(t *testing.T) {
	r := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, localfirst.KeyRecentTranslations, `[]`))
	require.NoError(t, r.Delete(ctx, localfirst.KeyRecentTranslations))
	require.NoError(t, r.Delete(ctx, "never-set"))

	_, ok, err := r.Get(ctx, localfirst.KeyRecentTranslations)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := New("oracle", "x")
	assert.Error(t, err)
}
