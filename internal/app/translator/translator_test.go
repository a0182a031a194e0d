package translator

import (
	"context"
	"fmt"
	"testing"
	"time"

	"riceguard/internal/app/ds"
	"riceguard/internal/app/localfirst"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStorage map[string]string

func (m memStorage) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m[key]
	return v, ok, nil
}

func (m memStorage) Set(_ context.Context, key, value string) error {
	m[key] = value
	return nil
}

func (m memStorage) Delete(_ context.Context, key string) error {
	delete(m, key)
	return nil
}

var phrases = []ds.Translation{
	{ID: "t1", English: "rice", Filipino: "palay"},
	{ID: "t2", English: "cooked rice", Filipino: "kanin"},
	{ID: "t3", English: "thank you", Filipino: "salamat"},
}

func TestTranslateExactBothDirections(t *testing.T) {
	tr := New(phrases, memStorage{})
	ctx := context.Background()

	res, err := tr.Translate(ctx, "  Thank   YOU ", ds.DirectionEnglishToFilipino)
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Equal(t, "salamat", res.Translation)

	res, err = tr.Translate(ctx, "Palay", ds.DirectionFilipinoToEnglish)
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Equal(t, "rice", res.Translation)
}

func TestTranslatePartialSuggestions(t *testing.T) {
	tr := New(phrases, memStorage{})

	res, err := tr.Translate(context.Background(), "rice", ds.DirectionEnglishToFilipino)
	require.NoError(t, err)
	assert.Equal(t, "palay", res.Translation)
	require.Len(t, res.Suggestions, 1)
	assert.Equal(t, "t2", res.Suggestions[0].ID)

	res, err = tr.Translate(context.Background(), "brown", ds.DirectionEnglishToFilipino)
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.Empty(t, res.Suggestions)
}

func TestTranslateErrors(t *testing.T) {
	tr := New(phrases, memStorage{})
	_, err := tr.Translate(context.Background(), "   ", ds.DirectionEnglishToFilipino)
	assert.ErrorIs(t, err, ErrEmptyText)

	_, err = tr.Translate(context.Background(), "rice", "en-es")
	assert.ErrorIs(t, err, ErrUnknownDirection)
}

func TestRecentIsBoundedDedupedNewestFirst(t *testing.T) {
	store := memStorage{}
	many := make([]ds.Translation, 0, 15)
	for i := 0; i < 15; i++ {
		many = append(many, ds.Translation{English: fmt.Sprintf("word%02d", i), Filipino: fmt.Sprintf("salita%02d", i)})
	}
	tr := New(many, store)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	calls := 0
	tr.now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Minute)
	}
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		_, err := tr.Translate(ctx, fmt.Sprintf("word%02d", i), ds.DirectionEnglishToFilipino)
		require.NoError(t, err)
	}
	_, err := tr.Translate(ctx, "WORD10", ds.DirectionEnglishToFilipino)
	require.NoError(t, err)

	recent, err := tr.Recent(ctx)
	require.NoError(t, err)
	require.Len(t, recent, MaxRecent)
	assert.Equal(t, "WORD10", recent[0].Source)
	assert.Equal(t, "word14", recent[1].Source)
	for _, r := range recent[1:] {
		assert.NotEqual(t, "word10", r.Source)
	}

	_, ok := store[localfirst.KeyRecentTranslations]
	assert.True(t, ok)

	require.NoError(t, tr.ClearRecent(ctx))
	recent, err = tr.Recent(ctx)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestMissDoesNotRecord(t *testing.T) {
	store := memStorage{}
	tr := New(phrases, store)
	_, err := tr.Translate(context.Background(), "carabao", ds.DirectionEnglishToFilipino)
	require.NoError(t, err)
	assert.Empty(t, store)
}
