package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// ErrNotFound is returned when no game is archived under an id.
var ErrNotFound = errors.New("storage: game not found")

// Record is one archived game. History is the CSV move log and Spiral the
// encoded position; together they let a game be replayed and cross-checked.
type Record struct {
	ID      string    `json:"id"`
	Spiral  string    `json:"spiral"`
	History string    `json:"history"`
	Turn    int       `json:"turn"`
	Outcome string    `json:"outcome"`
	Created time.Time `json:"created"`
	Updated time.Time `json:"updated"`
}

// Archive persists game records.
type Archive interface {
	// Save inserts or replaces the record with rec.ID. Created is kept from
	// an earlier save; Updated is set to now.
	Save(rec *Record) error
	Load(id string) (*Record, error)
	// List returns every record ordered by id.
	List() ([]*Record, error)
	Delete(id string) error
	Close() error
}

// stamp fills the timestamps of rec before it is written.
func stamp(rec *Record, prev *Record, now time.Time) {
	rec.Created = now
	if prev != nil && !prev.Created.IsZero() {
		rec.Created = prev.Created
	}
	rec.Updated = now
}

func validID(id string) error {
	if id == "" || strings.ContainsAny(id, " \t\n") {
		return fmt.Errorf("storage: invalid game id %q", id)
	}
	return nil
}

// Storage keys
const keyGames = "games/"

func gameKey(id string) []byte {
	return []byte(keyGames + id)
}

// BadgerArchive stores records as JSON values in BadgerDB.
type BadgerArchive struct {
	db *badger.DB
}

// OpenBadger opens (or creates) a badger archive in dir.
func OpenBadger(dir string) (*BadgerArchive, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger archive at %s: %w", dir, err)
	}

	return &BadgerArchive{db: db}, nil
}

// Close closes the database
func (s *BadgerArchive) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save stores a record under its id.
func (s *BadgerArchive) Save(rec *Record) error {
	if err := validID(rec.ID); err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		prev, err := getRecord(txn, rec.ID)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
		stamp(rec, prev, time.Now())

		data, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		return txn.Set(gameKey(rec.ID), data)
	})
}

// Load returns the record stored under id.
func (s *BadgerArchive) Load(id string) (*Record, error) {
	var rec *Record
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		rec, err = getRecord(txn, id)
		return err
	})
	return rec, err
}

func getRecord(txn *badger.Txn, id string) (*Record, error) {
	item, err := txn.Get(gameKey(id))
	if err == badger.ErrKeyNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	rec := &Record{}
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, rec)
	})
	return rec, err
}

// List returns every stored record. Keys iterate in byte order, which is
// id order.
func (s *BadgerArchive) List() ([]*Record, error) {
	var out []*Record

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(keyGames)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			rec := &Record{}
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, rec)
			})
			if err != nil {
				return err
			}
			out = append(out, rec)
		}
		return nil
	})

	return out, err
}

// Delete removes the record stored under id.
func (s *BadgerArchive) Delete(id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(gameKey(id))
		if err == badger.ErrKeyNotFound {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		if err != nil {
			return err
		}
		return txn.Delete(gameKey(id))
	})
}
