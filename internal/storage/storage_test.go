package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Compile-time interface checks
var (
	_ Archive = (*BadgerArchive)(nil)
	_ Archive = (*SQLArchive)(nil)
)

func openArchives(t *testing.T) map[string]Archive {
	t.Helper()

	b, err := Open(KindBadger, filepath.Join(t.TempDir(), "db"), "")
	require.NoError(t, err)
	s, err := Open(KindSQLite, "", filepath.Join(t.TempDir(), "games.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, b.Close())
		assert.NoError(t, s.Close())
	})
	return map[string]Archive{KindBadger: b, KindSQLite: s}
}

func TestArchiveRoundTrip(t *testing.T) {
	for kind, a := range openArchives(t) {
		t.Run(kind, func(t *testing.T) {
			rec := &Record{
				ID:      "g1",
				Spiral:  "000202Q102q1",
				History: "turn,team,name,row,col\n0,w,Q1,0,0\n1,b,Q1,2,0\n",
				Turn:    2,
				Outcome: "Success",
			}
			require.NoError(t, a.Save(rec))
			assert.False(t, rec.Created.IsZero())

			got, err := a.Load("g1")
			require.NoError(t, err)
			assert.Equal(t, rec.Spiral, got.Spiral)
			assert.Equal(t, rec.History, got.History)
			assert.Equal(t, 2, got.Turn)
			assert.Equal(t, "Success", got.Outcome)
			assert.WithinDuration(t, rec.Created, got.Created, time.Millisecond)
		})
	}
}

func TestArchiveKeepsCreated(t *testing.T) {
	for kind, a := range openArchives(t) {
		t.Run(kind, func(t *testing.T) {
			first := &Record{ID: "g1", Spiral: "000000"}
			require.NoError(t, a.Save(first))
			created := first.Created

			time.Sleep(5 * time.Millisecond)
			second := &Record{ID: "g1", Spiral: "000101Q1", Turn: 1}
			require.NoError(t, a.Save(second))
			assert.WithinDuration(t, created, second.Created, time.Millisecond)

			got, err := a.Load("g1")
			require.NoError(t, err)
			assert.Equal(t, "000101Q1", got.Spiral)
			assert.WithinDuration(t, created, got.Created, time.Millisecond)
			assert.True(t, got.Updated.After(got.Created))
		})
	}
}

func TestArchiveListAndDelete(t *testing.T) {
	for kind, a := range openArchives(t) {
		t.Run(kind, func(t *testing.T) {
			for _, id := range []string{"b", "c", "a"} {
				require.NoError(t, a.Save(&Record{ID: id, Spiral: "000000"}))
			}

			list, err := a.List()
			require.NoError(t, err)
			require.Len(t, list, 3)
			assert.Equal(t, []string{"a", "b", "c"}, ids(list))

			require.NoError(t, a.Delete("b"))
			assert.ErrorIs(t, a.Delete("b"), ErrNotFound)

			_, err = a.Load("b")
			assert.ErrorIs(t, err, ErrNotFound)

			list, err = a.List()
			require.NoError(t, err)
			assert.Equal(t, []string{"a", "c"}, ids(list))
		})
	}
}

func TestArchiveRejectsBadID(t *testing.T) {
	for kind, a := range openArchives(t) {
		t.Run(kind, func(t *testing.T) {
			assert.Error(t, a.Save(&Record{ID: ""}))
			assert.Error(t, a.Save(&Record{ID: "two words"}))
		})
	}
}

func TestOpenKinds(t *testing.T) {
	a, err := Open(KindNone, "", "")
	require.NoError(t, err)
	assert.Nil(t, a)

	_, err = Open("postgres", "", "")
	assert.ErrorContains(t, err, "unknown storage type")
}

func TestOpenCreatesDirs(t *testing.T) {
	root := t.TempDir()
	tests := []struct {
		kind string
		dir  string
		path string
		made string
	}{
		{KindBadger, filepath.Join(root, "a", "db"), "", filepath.Join(root, "a", "db")},
		{KindSQLite, "", filepath.Join(root, "b", "games.db"), filepath.Join(root, "b")},
	}
	for _, tc := range tests {
		t.Run(tc.kind, func(t *testing.T) {
			a, err := Open(tc.kind, tc.dir, tc.path)
			require.NoError(t, err)
			t.Cleanup(func() { a.Close() })
			assert.DirExists(t, tc.made)
		})
	}
}

func TestDataPaths(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	dataDir, err := GetDataDir()
	require.NoError(t, err)
	assert.Equal(t, appName, filepath.Base(dataDir))
	assert.NoDirExists(t, dataDir)

	dbDir, err := GetDatabaseDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dataDir, "db"), dbDir)

	sqlitePath, err := GetSQLitePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dataDir, "hiveplay.db"), sqlitePath)
}

func ids(list []*Record) []string {
	out := make([]string, len(list))
	for i, r := range list {
		out[i] = r.ID
	}
	return out
}
