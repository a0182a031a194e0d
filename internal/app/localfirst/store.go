// Package localfirst keeps the disease editor's collection in memory and mirrors
// every change either to the upstream sender (online) or to device storage (offline).
package localfirst

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"riceguard/internal/app/ds"

	log "github.com/sirupsen/logrus"
)

// Storage keys shared with the app.
const (
	KeyLocalDiseases      = "localDiseases"
	KeyRecentTranslations = "recentTranslations"
)

var (
	ErrNotFound        = errors.New("disease not found")
	ErrDuplicateID     = errors.New("disease id already exists")
	ErrInvalidSeverity = errors.New("severity must be one of Low, Medium, High")
)

// LocalStorage is the device key/value store. Writes are last-write-wins.
type LocalStorage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Connectivity reports whether the upstream is reachable right now.
type Connectivity interface {
	IsOnline() bool
}

type Action string

const (
	ActionAdd    Action = "add"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Sender hands an online change to the upstream.
type Sender interface {
	Send(ctx context.Context, action Action, disease ds.Disease) error
}

// LogSender only logs; there is no upstream transport.
type LogSender struct{}

func (LogSender) Send(_ context.Context, action Action, disease ds.Disease) error {
	log.WithFields(log.Fields{
		"action":  action,
		"id":      disease.ID,
		"disease": disease.Name,
	}).Info("disease change sent to server")
	return nil
}

// Outcome tells the caller where a change ended up.
type Outcome string

const (
	OutcomeSent        Outcome = "sent"
	OutcomeStoredLocal Outcome = "stored_locally"
)

type Store struct {
	// writeMu holds a mutation through its propagation.
	writeMu sync.Mutex

	mu       sync.RWMutex
	diseases []ds.Disease

	storage LocalStorage
	net     Connectivity
	sender  Sender
}

func NewStore(storage LocalStorage, net Connectivity, sender Sender) *Store {
	if sender == nil {
		sender = LogSender{}
	}
	return &Store{storage: storage, net: net, sender: sender}
}

// Load seeds the collection from localDiseases when present, else from seed.
func (s *Store) Load(ctx context.Context, seed []ds.Disease) error {
	raw, ok, err := s.storage.Get(ctx, KeyLocalDiseases)
	if err != nil {
		return fmt.Errorf("read %s: %w", KeyLocalDiseases, err)
	}

	list := seed
	if ok {
		var local []ds.Disease
		if err := json.Unmarshal([]byte(raw), &local); err != nil {
			log.WithError(err).Warnf("ignoring corrupt %s entry", KeyLocalDiseases)
		} else {
			list = local
			log.Infof("loaded %d diseases from local storage", len(local))
		}
	}

	s.mu.Lock()
	s.diseases = append([]ds.Disease(nil), list...)
	s.mu.Unlock()
	return nil
}

// List returns the diseases matching query, in collection order.
func (s *Store) List(query string) []ds.Disease {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ds.Disease, 0, len(s.diseases))
	for _, d := range s.diseases {
		if d.Matches(query) {
			out = append(out, d)
		}
	}
	return out
}

func (s *Store) Get(id string) (ds.Disease, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.diseases[i], nil
	}
	return ds.Disease{}, ErrNotFound
}

// Add appends d, assigning the next d<N> id when d.ID is empty.
func (s *Store) Add(ctx context.Context, d ds.Disease) (ds.Disease, Outcome, error) {
	if !d.Severity.Valid() {
		return ds.Disease{}, "", ErrInvalidSeverity
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	if d.ID == "" {
		d.ID = s.nextID()
	} else if s.indexOf(d.ID) >= 0 {
		s.mu.Unlock()
		return ds.Disease{}, "", ErrDuplicateID
	}
	s.diseases = append(s.diseases, d)
	snapshot := s.snapshot()
	s.mu.Unlock()

	outcome, err := s.propagate(ctx, ActionAdd, d, snapshot)
	return d, outcome, err
}

// Update replaces the disease with the given id. The stored id always wins over d.ID.
func (s *Store) Update(ctx context.Context, id string, d ds.Disease) (ds.Disease, Outcome, error) {
	if !d.Severity.Valid() {
		return ds.Disease{}, "", ErrInvalidSeverity
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return ds.Disease{}, "", ErrNotFound
	}
	d.ID = id
	s.diseases[i] = d
	snapshot := s.snapshot()
	s.mu.Unlock()

	outcome, err := s.propagate(ctx, ActionUpdate, d, snapshot)
	return d, outcome, err
}

func (s *Store) Delete(ctx context.Context, id string) (Outcome, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return "", ErrNotFound
	}
	removed := s.diseases[i]
	s.diseases = append(s.diseases[:i], s.diseases[i+1:]...)
	snapshot := s.snapshot()
	s.mu.Unlock()

	return s.propagate(ctx, ActionDelete, removed, snapshot)
}

// propagate sends the change when online, else writes the whole collection locally.
// A failed send falls back to the local write. The in-memory change is kept either way.
func (s *Store) propagate(ctx context.Context, action Action, d ds.Disease, snapshot []ds.Disease) (Outcome, error) {
	if s.net.IsOnline() {
		err := s.sender.Send(ctx, action, d)
		if err == nil {
			return OutcomeSent, nil
		}
		log.WithError(err).WithFields(log.Fields{"action": action, "id": d.ID}).
			Warn("send failed, keeping change in local storage")
	}

	raw, err := json.Marshal(snapshot)
	if err != nil {
		return "", err
	}
	if err := s.storage.Set(ctx, KeyLocalDiseases, string(raw)); err != nil {
		return "", fmt.Errorf("write %s: %w", KeyLocalDiseases, err)
	}
	log.WithFields(log.Fields{"action": action, "id": d.ID, "count": len(snapshot)}).
		Info("disease collection saved to local storage")
	return OutcomeStoredLocal, nil
}

func (s *Store) indexOf(id string) int {
	for i, d := range s.diseases {
		if d.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) snapshot() []ds.Disease {
	return append([]ds.Disease(nil), s.diseases...)
}

func (s *Store) nextID() string {
	max := 0
	for _, d := range s.diseases {
		if n, err := strconv.Atoi(strings.TrimPrefix(d.ID, "d")); err == nil && n > max {
			max = n
		}
	}
	return "d" + strconv.Itoa(max+1)
}
