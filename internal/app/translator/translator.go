// Package translator is the offline English–Filipino phrase book.
package translator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"riceguard/internal/app/ds"
	"riceguard/internal/app/localfirst"

	log "github.com/sirupsen/logrus"
)

// MaxRecent bounds the recentTranslations list.
const MaxRecent = 10

var (
	ErrEmptyText        = errors.New("text to translate is empty")
	ErrUnknownDirection = errors.New("direction must be en-fil or fil-en")
)

// Result is an exact hit (when Found) plus partial phrase suggestions.
type Result struct {
	Source      string           `json:"source"`
	Direction   ds.Direction     `json:"direction"`
	Found       bool             `json:"found"`
	Translation string           `json:"translation,omitempty"`
	Suggestions []ds.Translation `json:"suggestions"`
}

type Translator struct {
	phrases []ds.Translation
	storage localfirst.LocalStorage

	mu  sync.Mutex
	now func() time.Time
}

func New(phrases []ds.Translation, storage localfirst.LocalStorage) *Translator {
	return &Translator{phrases: phrases, storage: storage, now: time.Now}
}

// Translate looks text up in the given direction. Exact hits are recorded as recent.
func (t *Translator) Translate(ctx context.Context, text string, dir ds.Direction) (Result, error) {
	needle := normalize(text)
	if needle == "" {
		return Result{}, ErrEmptyText
	}
	if dir != ds.DirectionEnglishToFilipino && dir != ds.DirectionFilipinoToEnglish {
		return Result{}, ErrUnknownDirection
	}

	res := Result{Source: strings.TrimSpace(text), Direction: dir, Suggestions: []ds.Translation{}}
	for _, p := range t.phrases {
		from, to := p.English, p.Filipino
		if dir == ds.DirectionFilipinoToEnglish {
			from, to = p.Filipino, p.English
		}
		candidate := normalize(from)
		switch {
		case candidate == needle && !res.Found:
			res.Found = true
			res.Translation = to
		case strings.Contains(candidate, needle) || strings.Contains(needle, candidate):
			res.Suggestions = append(res.Suggestions, p)
		}
	}

	if res.Found {
		if err := t.remember(ctx, ds.RecentTranslation{
			Source:     res.Source,
			Result:     res.Translation,
			Direction:  dir,
			Translated: t.now().UTC(),
		}); err != nil {
			// the translation itself still succeeded
			log.WithError(err).Warn("could not save recent translation")
		}
	}
	return res, nil
}

// Recent returns the saved recent translations, most recent first.
func (t *Translator) Recent(ctx context.Context) ([]ds.RecentTranslation, error) {
	raw, ok, err := t.storage.Get(ctx, localfirst.KeyRecentTranslations)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", localfirst.KeyRecentTranslations, err)
	}
	if !ok {
		return []ds.RecentTranslation{}, nil
	}
	var list []ds.RecentTranslation
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		log.WithError(err).Warnf("ignoring corrupt %s entry", localfirst.KeyRecentTranslations)
		return []ds.RecentTranslation{}, nil
	}
	return list, nil
}

// ClearRecent forgets all recent translations.
func (t *Translator) ClearRecent(ctx context.Context) error {
	return t.storage.Delete(ctx, localfirst.KeyRecentTranslations)
}

func (t *Translator) remember(ctx context.Context, entry ds.RecentTranslation) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	list, err := t.Recent(ctx)
	if err != nil {
		return err
	}

	out := make([]ds.RecentTranslation, 0, MaxRecent)
	out = append(out, entry)
	for _, r := range list {
		if len(out) == MaxRecent {
			break
		}
		if r.Direction == entry.Direction && normalize(r.Source) == normalize(entry.Source) {
			continue
		}
		out = append(out, r)
	}

	raw, err := json.Marshal(out)
	if err != nil {
		return err
	}
	return t.storage.Set(ctx, localfirst.KeyRecentTranslations, string(raw))
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
