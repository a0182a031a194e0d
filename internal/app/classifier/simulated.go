// Package classifier fabricates disease detections for uploaded leaf photos.
// It stands in for a real inference backend and should be replaced by one.
package classifier

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"riceguard/internal/app/ds"

	log "github.com/sirupsen/logrus"
)

// MaxImageSize is the largest accepted upload, 10 MB.
const MaxImageSize int64 = 10 * 1024 * 1024

// ValidationError is returned for uploads rejected before analysis.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

type entry struct {
	id          string
	name        string
	description string
	severity    ds.Severity
	keywords    []string
}

var entries = []entry{
	{
		id:          "d1",
		name:        "Rice Blast",
		description: "Diamond-shaped lesions with grey centres on leaves, collars and panicle necks.",
		severity:    ds.SeverityHigh,
		keywords:    []string{"blast"},
	},
	{
		id:          "d2",
		name:        "Bacterial Leaf Blight",
		description: "Water-soaked streaks along leaf margins that turn yellow to straw-coloured.",
		severity:    ds.SeverityHigh,
		keywords:    []string{"blight"},
	},
	{
		id:          "d3",
		name:        "Brown Spot",
		description: "Oval brown spots with grey centres scattered over the leaf blade.",
		severity:    ds.SeverityMedium,
		keywords:    []string{"brown", "spot"},
	},
	{
		id:          "d4",
		name:        "Sheath Blight",
		description: "Greenish-grey oval lesions on the leaf sheath near the water line.",
		severity:    ds.SeverityMedium,
		keywords:    []string{"sheath"},
	},
	{
		id:          "d5",
		name:        "Tungro",
		description: "Yellow to orange leaves and stunted growth spread by green leafhoppers.",
		severity:    ds.SeverityHigh,
		keywords:    []string{"tungro", "yellow"},
	},
}

// Options tunes the artificial analysis delay.
type Options struct {
	MinDelay time.Duration
	MaxDelay time.Duration
}

// Simulated is a fake classifier. It is safe for concurrent use.
type Simulated struct {
	minDelay time.Duration
	maxDelay time.Duration

	mu   sync.Mutex
	rand *rand.Rand

	sleep func(context.Context, time.Duration) error
}

func NewSimulated(opts Options) *Simulated {
	if opts.MinDelay <= 0 && opts.MaxDelay <= 0 {
		opts.MinDelay, opts.MaxDelay = 2*time.Second, 4*time.Second
	}
	if opts.MaxDelay < opts.MinDelay {
		opts.MaxDelay = opts.MinDelay
	}
	return &Simulated{
		minDelay: opts.MinDelay,
		maxDelay: opts.MaxDelay,
		rand:     rand.New(rand.NewSource(time.Now().UnixNano())),
		sleep:    sleepContext,
	}
}

// Validate checks MIME type and size. Content is never inspected.
func Validate(upload ds.ImageUpload) error {
	if !strings.HasPrefix(upload.ContentType, "image/") {
		ct := upload.ContentType
		if ct == "" {
			ct = "unknown"
		}
		return &ValidationError{Message: fmt.Sprintf("invalid file type %q: please upload an image (JPEG, PNG or WebP)", ct)}
	}
	if upload.Size > MaxImageSize {
		return &ValidationError{Message: fmt.Sprintf("file is too large (%.1f MB): images must be 10 MB or smaller", float64(upload.Size)/(1024*1024))}
	}
	return nil
}

// Classify validates the upload, waits the artificial delay and returns detections
// sorted by descending confidence.
func (s *Simulated) Classify(ctx context.Context, upload ds.ImageUpload) ([]ds.DiseaseDetectionResult, error) {
	if err := Validate(upload); err != nil {
		return nil, err
	}

	if err := s.sleep(ctx, s.delay()); err != nil {
		return nil, err
	}

	s.mu.Lock()
	primaryIdx := matchFilename(upload.Filename)
	if primaryIdx < 0 {
		primaryIdx = s.rand.Intn(len(entries))
	}
	primaryConf := 0.5 + s.rand.Float64()*0.45

	results := []ds.DiseaseDetectionResult{toResult(entries[primaryIdx], primaryConf)}

	if s.rand.Float64() < 0.3 {
		other := s.rand.Intn(len(entries) - 1)
		if other >= primaryIdx {
			other++
		}
		results = append(results, toResult(entries[other], primaryConf*(0.4+s.rand.Float64()*0.3)))
	}
	s.mu.Unlock()

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Confidence > results[j].Confidence
	})

	log.WithFields(log.Fields{
		"file":       upload.Filename,
		"primary":    results[0].DiseaseID,
		"confidence": results[0].Confidence,
		"detections": len(results),
	}).Info("scan analysed")

	return results, nil
}

func (s *Simulated) delay() time.Duration {
	span := s.maxDelay - s.minDelay
	if span <= 0 {
		return s.minDelay
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.minDelay + time.Duration(s.rand.Int63n(int64(span)+1))
}

// matchFilename returns the index of the first entry whose keyword occurs in name, or -1.
func matchFilename(name string) int {
	lower := strings.ToLower(name)
	for i, e := range entries {
		for _, kw := range e.keywords {
			if strings.Contains(lower, kw) {
				return i
			}
		}
	}
	return -1
}

func toResult(e entry, confidence float64) ds.DiseaseDetectionResult {
	return ds.DiseaseDetectionResult{
		DiseaseID:   e.id,
		DiseaseName: e.name,
		Confidence:  confidence,
		Description: e.description,
		Severity:    e.severity,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
