// Package content loads the static documents the app reads at runtime.
package content

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"riceguard/internal/app/ds"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	DiseasesFile     = "diseases.json"
	VendorsFile      = "vendors.json"
	TranslationsFile = "translations.json"
)

// ErrLoadFailed wraps every document read or decode failure.
var ErrLoadFailed = errors.New("failed to load")

//go:embed defaults/*.json
var defaults embed.FS

// Documents is the full static content set.
type Documents struct {
	Diseases     []ds.Disease
	Vendors      []ds.Vendor
	Translations []ds.Translation
}

// Load reads the three documents from dir concurrently.
func Load(ctx context.Context, dir string) (*Documents, error) {
	docs := &Documents{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return readJSON(gctx, dir, DiseasesFile, &docs.Diseases) })
	g.Go(func() error { return readJSON(gctx, dir, VendorsFile, &docs.Vendors) })
	g.Go(func() error { return readJSON(gctx, dir, TranslationsFile, &docs.Translations) })

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, d := range docs.Diseases {
		if !d.Severity.Valid() {
			return nil, fmt.Errorf("%w %s: disease %s has severity %q", ErrLoadFailed, DiseasesFile, d.ID, d.Severity)
		}
	}

	log.WithFields(log.Fields{
		"diseases":     len(docs.Diseases),
		"vendors":      len(docs.Vendors),
		"translations": len(docs.Translations),
	}).Info("static content loaded")
	return docs, nil
}

// WriteDefaults copies the bundled documents into dir. Existing files are kept unless overwrite is set.
func WriteDefaults(dir string, overwrite bool) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	var written []string
	for _, name := range []string{DiseasesFile, VendorsFile, TranslationsFile} {
		target := filepath.Join(dir, name)
		if _, err := os.Stat(target); err == nil && !overwrite {
			continue
		}
		raw, err := defaults.ReadFile("defaults/" + name)
		if err != nil {
			return written, err
		}
		if err := os.WriteFile(target, raw, 0o644); err != nil {
			return written, err
		}
		written = append(written, target)
	}
	return written, nil
}

// readJSON gives up once ctx is done, either before reading or before decoding.
func readJSON(ctx context.Context, dir, name string, v any) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w %s: %w", ErrLoadFailed, name, err)
	}
	raw, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return fmt.Errorf("%w %s: %v", ErrLoadFailed, name, err)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w %s: %w", ErrLoadFailed, name, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w %s: %v", ErrLoadFailed, name, err)
	}
	return nil
}
