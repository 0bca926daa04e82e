// SPDX-License-Identifier: MIT

package runstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/katalvlaran/roadrl/network"
)

const prefixRun = "run:"

var (
	// ErrNotFound indicates an unknown record ID.
	ErrNotFound = errors.New("runstore: record not found")

	// ErrClosed indicates use of a closed store.
	ErrClosed = errors.New("runstore: store closed")
)

// Kind tells a search record from a training record.
type Kind string

const (
	Search Kind = "search"
	Train  Kind = "train"
)

// Record is one stored run.
type Record struct {
	ID        string        `json:"id"`
	Kind      Kind          `json:"kind"`
	Scenario  string        `json:"scenario,omitempty"`
	Algorithm string        `json:"algorithm,omitempty"`
	Metric    string        `json:"metric"`
	Start     string        `json:"start"`
	End       string        `json:"end"`
	Route     network.Route `json:"route"`
	Cost      float64       `json:"cost"`
	Distance  float64       `json:"distance"` // meters
	Time      float64       `json:"time"`     // minutes
	Episode   int           `json:"episode,omitempty"`
	Elapsed   time.Duration `json:"elapsed"`
	CreatedAt time.Time     `json:"created_at"`
}

// Store is a BadgerDB-backed record store, safe for concurrent use.
type Store struct {
	mu sync.RWMutex
	db *badger.DB
}

// Open opens or creates the store in dir. An empty dir keeps it in memory.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir).
		WithLoggingLevel(badger.ERROR)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("runstore: opening badger DB: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database. Closing twice is a no-op.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Put stores rec, assigning an ID and CreatedAt when they are empty, and returns
// the stored record.
func (s *Store) Put(rec Record) (Record, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	val, err := json.Marshal(rec)
	if err != nil {
		return Record{}, fmt.Errorf("runstore: encode: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return Record{}, ErrClosed
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(rec.ID), val)
	})
	if err != nil {
		return Record{}, fmt.Errorf("runstore: put %s: %w", rec.ID, err)
	}
	return rec, nil
}

// Get returns the record with the given ID.
func (s *Store) Get(id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return Record{}, ErrClosed
	}

	var rec Record
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %q", ErrNotFound, id)
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	return rec, err
}

// List returns up to limit records, newest first. limit ≤ 0 returns all.
func (s *Store) List(limit int) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, ErrClosed
	}

	var out []Record
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefixRun)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var rec Record
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return err
			}
			out = append(out, rec)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("runstore: list: %w", err)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func key(id string) []byte { return []byte(prefixRun + id) }
