package game

import (
	"bytes"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/hiveplay/internal/board"
	"github.com/hailam/hiveplay/internal/hex"
	"github.com/hailam/hiveplay/internal/storage"
)

func chip(t *testing.T, s string) board.Chip {
	t.Helper()
	c, err := board.ParseChip(s)
	require.NoError(t, err)
	return c
}

func dh(col, row int) hex.DoubleHeight {
	return hex.DoubleHeight{Col: col, Row: row}
}

// opening plays queens, beetles, a climb onto the white queen and a skip.
func opening(t *testing.T, g *Game) {
	t.Helper()
	moves := []struct {
		chip string
		dest hex.DoubleHeight
	}{
		{"wQ", dh(0, 0)},
		{"bQ", dh(0, 2)},
		{"wB1", dh(0, -2)},
		{"bB1", dh(0, 4)},
		{"wB1", dh(0, 0)},
	}
	for _, m := range moves {
		c := chip(t, m.chip)
		require.Equal(t, board.OK, g.Submit(NewRequest(c, c.Team(), m.dest)), m.chip)
	}
	require.Equal(t, board.OK, g.Skip(board.Black))
}

func TestSubmit(t *testing.T) {
	g := New("g1", zerolog.Nop())
	opening(t, g)

	assert.Equal(t, 6, g.Turn())
	assert.Equal(t, board.White, g.ToMove())
	assert.False(t, g.Over())

	s, err := g.Encoded()
	require.NoError(t, err)
	assert.Equal(t, "000603Q1R102q107b1", s)

	csv, err := g.History()
	require.NoError(t, err)
	assert.Contains(t, csv, "4,w,B1,0,0\n")
}

func TestSubmitSpecialRequests(t *testing.T) {
	g := New("g1", zerolog.Nop())
	wQ, bQ := chip(t, "wQ"), chip(t, "bQ")
	require.Equal(t, board.OK, g.Submit(NewRequest(wQ, board.White, dh(0, 0))))

	r := NewRequest(bQ, board.Black, dh(0, 2))
	r.Mimic = wQ
	assert.Equal(t, board.NoSuck, g.Submit(r).Kind)
	assert.Equal(t, 1, g.Turn())

	require.Equal(t, board.OK, g.Submit(NewRequest(bQ, board.Black, dh(0, 2))))

	r = NewRequest(wQ, board.White, dh(1, 1))
	r.Victim = bQ
	assert.Equal(t, board.Nothing, g.Submit(r).Kind)
	assert.Equal(t, 2, g.Turn())

	assert.Equal(t, board.NotYourTurn, g.Skip(board.Black).Kind)
	assert.Equal(t, board.NoSuck, g.Mimic(wQ, board.White, bQ).Kind)
}

func TestRejectionsAreLogged(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.InfoLevel)
	g := New("g7", log)

	c := chip(t, "bA1")
	g.Submit(NewRequest(c, board.Black, dh(0, 0)))

	out := buf.String()
	assert.Contains(t, out, `"game":"g7"`)
	assert.Contains(t, out, `"outcome":"NotYourTurn"`)
	assert.Contains(t, out, `"chip":"bA1"`)
	assert.Contains(t, out, `"level":"info"`)
}

func TestHints(t *testing.T) {
	g := New("g1", zerolog.Nop())
	hints := g.Hints(chip(t, "wQ"))
	assert.Equal(t, []hex.DoubleHeight{dh(0, 0)}, hints)
	assert.Empty(t, g.Hints(chip(t, "bQ")))
}

func TestArchiveRoundTrip(t *testing.T) {
	a, err := storage.OpenBadger(filepath.Join(t.TempDir(), "db"))
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })

	g := New("g1", zerolog.Nop())
	opening(t, g)
	require.NoError(t, g.Save(a))

	back, err := Load(a, "g1", zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, g.Turn(), back.Turn())
	assert.Equal(t, g.String(), back.String())

	want, _ := g.Encoded()
	got, _ := back.Encoded()
	assert.Equal(t, want, got)

	_, err = Load(a, "missing", zerolog.Nop())
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRestoreRejectsMismatch(t *testing.T) {
	g := New("g1", zerolog.Nop())
	opening(t, g)
	rec, err := g.Record()
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(*storage.Record)
		parse  bool
	}{
		{"spiral differs", func(r *storage.Record) { r.Spiral = "000602Q102q1" }, false},
		{"bad spiral", func(r *storage.Record) { r.Spiral = "xx" }, true},
		{"bad history", func(r *storage.Record) { r.History = "turn,team\n" }, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bad := *rec
			tc.mutate(&bad)
			_, err := Restore(&bad, zerolog.Nop())
			require.Error(t, err)
			var pe *board.ParseError
			assert.Equal(t, tc.parse, errors.As(err, &pe))
		})
	}
}

func TestConcurrentReaders(t *testing.T) {
	g := New("g1", zerolog.Nop())
	wA := chip(t, "wA1")
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = g.Encoded()
			_ = g.Hints(wA)
		}()
	}
	opening(t, g)
	wg.Wait()
	assert.Equal(t, 6, g.Turn())
}
