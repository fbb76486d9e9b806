// Package store holds the in-memory record store and writes it back, whole,
// to a Persister after every mutation.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/phillip/hostel-fest-payments/models"
)

// Store is the in-memory copy of AppData. It is read from the Persister once
// at startup and written back by Save.
type Store struct {
	mu     sync.RWMutex
	saveMu sync.Mutex

	data   models.AppData
	extras map[string]json.RawMessage // persisted keys AppData does not model

	seq sequences

	persister Persister
	key       string
	log       *slog.Logger
}

type sequences struct {
	user, payment, notification int64
}

// New returns a store holding the seed data. Call Load to lay the persisted
// copy over it.
func New(p Persister, key string, log *slog.Logger) *Store {
	if key == "" {
		key = DefaultKey
	}
	if log == nil {
		log = slog.Default()
	}
	s := &Store{
		data:      Seed(),
		persister: p,
		key:       key,
		log:       log,
	}
	s.resetSequences()
	return s
}

func (s *Store) Key() string { return s.key }

// Load reads the persisted document and shallow-merges it over the seed:
// each top-level key present in the document replaces the seed value whole.
// A missing document leaves the seed in place. On a read or parse failure the
// error is logged and returned and the seed is kept for the session.
func (s *Store) Load(ctx context.Context) error {
	raw, err := s.persister.Load(ctx, s.key)
	if errors.Is(err, ErrNotFound) {
		s.log.Info("no saved data, using defaults", "key", s.key)
		return nil
	}
	if err != nil {
		s.log.Error("error loading saved data, using defaults", "key", s.key, "err", err)
		return fmt.Errorf("load %s: %w", s.key, err)
	}

	data, extras, err := Merge(Seed(), raw)
	if err != nil {
		s.log.Error("error loading saved data, using defaults", "key", s.key, "err", err)
		return fmt.Errorf("load %s: %w", s.key, err)
	}

	s.mu.Lock()
	s.data = data
	s.extras = extras
	s.resetSequences()
	s.mu.Unlock()

	s.log.Info("loaded saved data", "key", s.key, "users", len(data.Users), "payments", len(data.Payments))
	return nil
}

// Merge lays the serialized document saved over seed. Nested objects are not
// merged: a partially present eventDetails loses the seed's other fields.
// Keys the document carries that AppData does not know are returned in extras
// so they survive the next save.
func Merge(seed models.AppData, saved []byte) (models.AppData, map[string]json.RawMessage, error) {
	var overlay map[string]json.RawMessage
	if err := json.Unmarshal(saved, &overlay); err != nil {
		return seed, nil, fmt.Errorf("parse saved data: %w", err)
	}
	if overlay == nil {
		return seed, nil, errors.New("parse saved data: document is null")
	}

	base, err := toFields(seed)
	if err != nil {
		return seed, nil, err
	}
	known := make(map[string]bool, len(base))
	for k := range base {
		known[k] = true
	}

	for _, k := range timestampedKeys {
		if v, ok := overlay[k]; ok {
			overlay[k] = normalizeTimestamps(v)
		}
	}

	extras := map[string]json.RawMessage{}
	for k, v := range overlay {
		base[k] = v
		if !known[k] {
			extras[k] = v
		}
	}

	merged, err := json.Marshal(base)
	if err != nil {
		return seed, nil, fmt.Errorf("encode merged data: %w", err)
	}
	var out models.AppData
	if err := json.Unmarshal(merged, &out); err != nil {
		return seed, nil, fmt.Errorf("decode merged data: %w", err)
	}
	if len(extras) == 0 {
		extras = nil
	}
	return out, extras, nil
}

func toFields(d models.AppData) (map[string]json.RawMessage, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encode data: %w", err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("encode data: %w", err)
	}
	return fields, nil
}

// Export serializes the whole store as it would be persisted.
func (s *Store) Export() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.encodeLocked()
}

func (s *Store) encodeLocked() ([]byte, error) {
	if len(s.extras) == 0 {
		return json.Marshal(s.data)
	}
	fields, err := toFields(s.data)
	if err != nil {
		return nil, err
	}
	for k, v := range s.extras {
		if _, ok := fields[k]; !ok {
			fields[k] = v
		}
	}
	return json.Marshal(fields)
}

// Save overwrites the persisted document with the current state. Saves are
// serialized so the last mutation always wins.
func (s *Store) Save(ctx context.Context) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	raw, err := s.Export()
	if err != nil {
		return fmt.Errorf("save %s: %w", s.key, err)
	}
	if err := s.persister.Save(ctx, s.key, raw); err != nil {
		return fmt.Errorf("save %s: %w", s.key, err)
	}
	return nil
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() models.AppData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Clone()
}

// Tx is the mutable view handed to Update.
type Tx struct {
	Data *models.AppData
	seq  *sequences
}

func (t *Tx) NextUserID() int64 {
	t.seq.user++
	return t.seq.user
}

func (t *Tx) NextPaymentID() int64 {
	t.seq.payment++
	return t.seq.payment
}

func (t *Tx) NextNotificationID() int64 {
	t.seq.notification++
	return t.seq.notification
}

// Update runs fn with exclusive access to the data. If fn returns an error
// every change it made is discarded. Update does not persist; call Save.
func (s *Store) Update(fn func(tx *Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.data.Clone()
	seq := s.seq
	if err := fn(&Tx{Data: &work, seq: &seq}); err != nil {
		return err
	}
	s.data = work
	s.seq = seq
	return nil
}

// resetSequences restarts each id counter after the largest id present.
func (s *Store) resetSequences() {
	s.seq = sequences{}
	for _, u := range s.data.Users {
		s.seq.user = max(s.seq.user, u.ID)
	}
	for _, p := range s.data.Payments {
		s.seq.payment = max(s.seq.payment, p.ID)
	}
	for _, n := range s.data.Notifications {
		s.seq.notification = max(s.seq.notification, n.ID)
	}
}
