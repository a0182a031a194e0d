package classifier

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"riceguard/internal/app/ds"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClassifier(seed int64) *Simulated {
	s := NewSimulated(Options{})
	s.rand = rand.New(rand.NewSource(seed))
	s.sleep = func(context.Context, time.Duration) error { return nil }
	return s
}

func jpeg(name string) ds.ImageUpload {
	return ds.ImageUpload{Filename: name, ContentType: "image/jpeg", Size: 2048}
}

func TestValidateRejectsNonImage(t *testing.T) {
	err := Validate(ds.ImageUpload{Filename: "notes.pdf", ContentType: "application/pdf", Size: 10})
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Contains(t, vErr.Message, "application/pdf")
	assert.Contains(t, vErr.Message, "upload an image")
}

func TestValidateRejectsMissingContentType(t *testing.T) {
	err := Validate(ds.ImageUpload{Filename: "leaf.jpg", Size: 10})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown")
}

func TestValidateSizeLimit(t *testing.T) {
	assert.NoError(t, Validate(ds.ImageUpload{ContentType: "image/png", Size: MaxImageSize}))

	err := Validate(ds.ImageUpload{ContentType: "image/png", Size: MaxImageSize + 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "10 MB")
}

func TestClassifyRejectsInvalidUploadWithoutDelay(t *testing.T) {
	s := newTestClassifier(1)
	slept := false
	s.sleep = func(context.Context, time.Duration) error {
		slept = true
		return nil
	}

	_, err := s.Classify(context.Background(), ds.ImageUpload{ContentType: "text/plain", Size: 1})
	require.Error(t, err)
	assert.False(t, slept)
}

func TestClassifyBlastFilename(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		s := newTestClassifier(seed)
		res, err := s.Classify(context.Background(), jpeg("Field_BLAST_03.jpg"))
		require.NoError(t, err)
		require.NotEmpty(t, res)
		assert.Equal(t, "d1", res[0].DiseaseID)
		assert.Equal(t, "Rice Blast", res[0].DiseaseName)
	}
}

func TestClassifyFilenameHeuristics(t *testing.T) {
	cases := map[string]string{
		"bacterial-blight.png": "d2",
		"brown_leaf.png":       "d3",
		"sheath.webp":          "d4",
		"tungro-row2.jpg":      "d5",
	}
	for name, want := range cases {
		res, err := newTestClassifier(7).Classify(context.Background(), jpeg(name))
		require.NoError(t, err)
		assert.Equal(t, want, res[0].DiseaseID, name)
	}
}

func TestClassifyConfidenceBoundsAndOrdering(t *testing.T) {
	sawSecondary := false
	for seed := int64(0); seed < 500; seed++ {
		res, err := newTestClassifier(seed).Classify(context.Background(), jpeg("IMG_0001.jpg"))
		require.NoError(t, err)
		require.True(t, len(res) == 1 || len(res) == 2)

		primary := res[0]
		assert.GreaterOrEqual(t, primary.Confidence, 0.5)
		assert.LessOrEqual(t, primary.Confidence, 0.95)
		assert.True(t, primary.Severity.Valid())

		if len(res) == 2 {
			sawSecondary = true
			assert.Less(t, res[1].Confidence, primary.Confidence)
			assert.NotEqual(t, primary.DiseaseID, res[1].DiseaseID)
		}
		for i := 1; i < len(res); i++ {
			assert.GreaterOrEqual(t, res[i-1].Confidence, res[i].Confidence)
		}
	}
	assert.True(t, sawSecondary, "expected at least one secondary detection over 500 runs")
}

func TestClassifyHonoursCancellation(t *testing.T) {
	s := NewSimulated(Options{MinDelay: time.Hour, MaxDelay: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Classify(ctx, jpeg("leaf.jpg"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDelayWithinBounds(t *testing.T) {
	s := NewSimulated(Options{MinDelay: 2 * time.Second, MaxDelay: 4 * time.Second})
	for i := 0; i < 100; i++ {
		d := s.delay()
		assert.GreaterOrEqual(t, d, 2*time.Second)
		assert.LessOrEqual(t, d, 4*time.Second)
	}
}
