// Package game wraps a board in a session that callers submit requests to.
// A Game is safe for concurrent use.
package game

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/hailam/hiveplay/internal/board"
	"github.com/hailam/hiveplay/internal/hex"
	"github.com/hailam/hiveplay/internal/storage"
)

// Request is one move submitted by a caller. Mimic and Victim are NoChip
// unless set: Mimic makes Chip (a Mosquito) adopt that chip's species before
// moving, Victim turns the request into a forced move with Chip as actor.
type Request struct {
	Chip   board.Chip
	Team   board.Team
	Dest   hex.DoubleHeight
	Mimic  board.Chip
	Victim board.Chip
}

// NewRequest returns a plain move request.
func NewRequest(c board.Chip, t board.Team, dest hex.DoubleHeight) Request {
	return Request{Chip: c, Team: t, Dest: dest, Mimic: board.NoChip, Victim: board.NoChip}
}

// Game is one board plus its identity and logger.
type Game struct {
	mu    sync.Mutex
	id    string
	board *board.Board
	last  board.Outcome
	log   zerolog.Logger
}

// New starts an empty game.
func New(id string, log zerolog.Logger) *Game {
	return &Game{
		id:    id,
		board: board.New(),
		last:  board.OK,
		log:   log.With().Str("game", id).Logger(),
	}
}

// ID returns the game id.
func (g *Game) ID() string {
	return g.id
}

// Submit validates and applies a request. A mimicry that succeeds stays in
// force for the turn even when the move that follows is rejected.
func (g *Game) Submit(r Request) board.Outcome {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.log.Debug().
		Int("turn", g.board.Turn()).
		Stringer("chip", r.Chip).
		Stringer("team", r.Team).
		Stringer("dest", r.Dest).
		Msg("request")

	if r.Mimic != board.NoChip {
		if o := g.board.Mimic(r.Chip, r.Team, r.Mimic); o.Kind != board.Success {
			return g.settled(r.Chip, r.Team, o)
		}
	}

	var o board.Outcome
	if r.Victim != board.NoChip {
		o = g.board.ForcedMove(r.Chip, r.Team, r.Victim, r.Dest)
	} else {
		o = g.board.MoveChip(r.Chip, r.Team, r.Dest)
	}
	return g.settled(r.Chip, r.Team, o)
}

// Mimic applies mimicry on its own. No turn passes.
func (g *Game) Mimic(m board.Chip, t board.Team, victim board.Chip) board.Outcome {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.settled(m, t, g.board.Mimic(m, t, victim))
}

// Skip passes the turn for team t.
func (g *Game) Skip(t board.Team) board.Outcome {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.settled(board.NoChip, t, g.board.SkipTurn(t))
}

// settled logs the outcome of a request and remembers applied ones.
func (g *Game) settled(c board.Chip, t board.Team, o board.Outcome) board.Outcome {
	ev := g.log.Debug()
	if !o.Applied() {
		ev = g.log.Info()
	}
	ev.Int("turn", g.board.Turn()).
		Stringer("chip", c).
		Stringer("team", t).
		Stringer("outcome", o).
		Msg("outcome")

	if o.Applied() {
		g.last = o
	}
	if o.Kind == board.Win {
		g.log.Info().Stringer("outcome", o).Int("turn", g.board.Turn()).Msg("game over")
	}
	return o
}

// ToMove returns the team whose turn it is.
func (g *Game) ToMove() board.Team {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.ToMove()
}

// Turn returns the number of completed turns.
func (g *Game) Turn() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.Turn()
}

// Over reports whether the game has ended.
func (g *Game) Over() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.Over()
}

// Encoded returns the spiral string of the current position.
func (g *Game) Encoded() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return board.Encode(g.board)
}

// History returns the move log as CSV.
func (g *Game) History() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	var buf bytes.Buffer
	if err := g.board.History().WriteCSV(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Hints returns the legal destinations of a chip this turn.
func (g *Game) Hints(c board.Chip) []hex.DoubleHeight {
	g.mu.Lock()
	defer g.mu.Unlock()
	dests := g.board.LegalDestinations(c)
	out := make([]hex.DoubleHeight, len(dests))
	for i, p := range dests {
		out[i] = p.DoubleHeight()
	}
	return out
}

// String returns the board listing.
func (g *Game) String() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.String()
}

// Record snapshots the game for an archive.
func (g *Game) Record() (*storage.Record, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	spiral, err := board.Encode(g.board)
	if err != nil {
		return nil, fmt.Errorf("encode game %s: %w", g.id, err)
	}
	var buf bytes.Buffer
	if err := g.board.History().WriteCSV(&buf); err != nil {
		return nil, fmt.Errorf("write history of game %s: %w", g.id, err)
	}
	return &storage.Record{
		ID:      g.id,
		Spiral:  spiral,
		History: buf.String(),
		Turn:    g.board.Turn(),
		Outcome: g.last.String(),
	}, nil
}

// Save writes the game to an archive.
func (g *Game) Save(a storage.Archive) error {
	rec, err := g.Record()
	if err != nil {
		return err
	}
	if err := a.Save(rec); err != nil {
		return fmt.Errorf("save game %s: %w", g.id, err)
	}
	g.log.Info().Int("turn", rec.Turn).Msg("saved")
	return nil
}

// Restore rebuilds a game from an archived record by replaying its history,
// then checks the result against the stored spiral string.
func Restore(rec *storage.Record, log zerolog.Logger) (*Game, error) {
	h, err := board.ReadCSV(strings.NewReader(rec.History))
	if err != nil {
		return nil, fmt.Errorf("restore game %s: %w", rec.ID, err)
	}
	b, err := board.Replay(h, rec.Turn)
	if err != nil {
		return nil, fmt.Errorf("restore game %s: %w", rec.ID, err)
	}

	want, err := board.Decode(rec.Spiral)
	if err != nil {
		return nil, fmt.Errorf("restore game %s: %w", rec.ID, err)
	}
	if !b.SamePosition(want) {
		return nil, fmt.Errorf("restore game %s: history does not reach %s", rec.ID, rec.Spiral)
	}

	g := New(rec.ID, log)
	g.board = b
	if b.Over() {
		g.last = board.WinFor(b.Winner())
	}
	g.log.Info().Int("turn", b.Turn()).Msg("restored")
	return g, nil
}

// Load restores the game archived under id.
func Load(a storage.Archive, id string, log zerolog.Logger) (*Game, error) {
	rec, err := a.Load(id)
	if err != nil {
		return nil, err
	}
	return Restore(rec, log)
}
