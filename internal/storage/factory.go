package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// Archive kinds accepted by Open.
const (
	KindBadger = "badger"
	KindSQLite = "sqlite"
	KindNone   = "none"
)

// Open creates an archive of the given kind. dir is the badger directory and
// sqlitePath the SQLite file; only the one matching kind is used. KindNone
// returns a nil Archive and no error.
func Open(kind, dir, sqlitePath string) (Archive, error) {
	switch kind {
	case KindBadger:
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create archive dir: %w", err)
		}
		a, err := OpenBadger(dir)
		if err != nil {
			return nil, err
		}
		return a, nil
	case KindSQLite:
		if err := os.MkdirAll(filepath.Dir(sqlitePath), 0755); err != nil {
			return nil, fmt.Errorf("create archive dir: %w", err)
		}
		a, err := OpenSQLite(sqlitePath)
		if err != nil {
			return nil, err
		}
		return a, nil
	case KindNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", kind)
	}
}
