// Package board implements the hive board: chip registry, move validation,
// species movement, special moves, history and the spiral codec.
//
// A Board is a single mutable aggregate and is not safe for concurrent use.
package board

import (
	"fmt"
	"strings"

	"github.com/hailam/hiveplay/internal/hex"
)

// slot holds the state of one roster chip.
type slot struct {
	pos    hex.Pos
	placed bool
	mimic  Species // Mosquito overlay, NoSpecies when inactive
}

// Board is the complete state of one game.
type Board struct {
	slots   [RosterSize]slot
	turn    int
	history History
	over    bool
	winner  Team
}

// New returns an empty board with every chip held off-board.
func New() *Board {
	b := &Board{winner: NoTeam}
	for i := range b.slots {
		b.slots[i].mimic = NoSpecies
	}
	return b
}

// Turn returns the number of completed turns (moves and skips).
func (b *Board) Turn() int {
	return b.turn
}

// ToMove returns the team whose turn it is. White moves on even turns.
func (b *Board) ToMove() Team {
	return Team(b.turn % 2)
}

// Over reports whether the game has ended.
func (b *Board) Over() bool {
	return b.over
}

// Winner returns the winning team, or NoTeam while the game is running or
// after a draw.
func (b *Board) Winner() Team {
	return b.winner
}

// History returns the move log.
func (b *Board) History() *History {
	return &b.history
}

// Position returns where a chip is; ok is false while it is held off-board.
func (b *Board) Position(c Chip) (hex.Pos, bool) {
	c.mustValid()
	s := b.slots[c]
	return s.pos, s.placed
}

// Placed reports whether a chip is on the board.
func (b *Board) Placed(c Chip) bool {
	c.mustValid()
	return b.slots[c].placed
}

// QueenPlaced reports whether a team's queen is on the board.
func (b *Board) QueenPlaced(t Team) bool {
	return b.Placed(QueenOf(t))
}

// ChipAt returns the chip at an exact position, or NoChip.
func (b *Board) ChipAt(p hex.Pos) Chip {
	for i := range b.slots {
		if b.slots[i].placed && b.slots[i].pos == p {
			return Chip(i)
		}
	}
	return NoChip
}

// Occupied reports whether a cell holds at least one chip.
func (b *Board) Occupied(c hex.Cube) bool {
	return b.ChipAt(hex.At(c, 0)) != NoChip
}

// Height returns the number of chips stacked on a cell.
func (b *Board) Height(c hex.Cube) int {
	return b.heightExcluding(c, NoChip)
}

func (b *Board) heightExcluding(c hex.Cube, skip Chip) int {
	h := 0
	for i := range b.slots {
		s := b.slots[i]
		if Chip(i) != skip && s.placed && s.pos.Cube == c && s.pos.Layer+1 > h {
			h = s.pos.Layer + 1
		}
	}
	return h
}

// Top returns the uppermost chip on a cell, or NoChip.
func (b *Board) Top(c hex.Cube) Chip {
	h := b.Height(c)
	if h == 0 {
		return NoChip
	}
	return b.ChipAt(hex.At(c, h-1))
}

// Stack returns the chips on a cell from the ground up.
func (b *Board) Stack(c hex.Cube) []Chip {
	h := b.Height(c)
	out := make([]Chip, 0, h)
	for l := 0; l < h; l++ {
		out = append(out, b.ChipAt(hex.At(c, l)))
	}
	return out
}

// OccupiedPositions returns every occupied position.
func (b *Board) OccupiedPositions() []hex.Pos {
	out := make([]hex.Pos, 0, RosterSize)
	for i := range b.slots {
		if b.slots[i].placed {
			out = append(out, b.slots[i].pos)
		}
	}
	return out
}

// Size returns the display size: one more than the outermost ring holding a
// chip, or 0 for an empty board.
func (b *Board) Size() int {
	size := 0
	for i := range b.slots {
		if b.slots[i].placed {
			size = max(size, b.slots[i].pos.Ring()+1)
		}
	}
	return size
}

// Display is the transient identity a chip reports.
type Display struct {
	Species Species
	Raised  bool
}

// Display returns the chip's display identity: a mimicking Mosquito reports
// the mimicked species and an elevated chip reports Raised.
func (b *Board) Display(c Chip) Display {
	c.mustValid()
	s := b.slots[c]
	d := Display{Species: c.Species(), Raised: s.placed && s.pos.Layer > 0}
	if s.mimic != NoSpecies {
		d.Species = s.mimic
	}
	return d
}

// MoveChip places an off-board chip or relocates a placed one. On success the
// board is mutated, the move is recorded and the turn advances.
func (b *Board) MoveChip(c Chip, t Team, dest hex.Coord) Outcome {
	o, to := b.check(c, t, dest.Pos())
	if o.Kind != Success {
		return o
	}
	b.apply(c, to)
	return b.settle(t)
}

// CheckMove validates a move without applying it. A legal move answers
// Success even when applying it would end the game.
func (b *Board) CheckMove(c Chip, t Team, dest hex.Coord) Outcome {
	o, _ := b.check(c, t, dest.Pos())
	return o
}

func (b *Board) check(c Chip, t Team, p hex.Pos) (Outcome, hex.Pos) {
	c.mustValid()
	if b.over {
		return outcome(Nothing), p
	}
	if t != b.ToMove() {
		return outcome(NotYourTurn), p
	}
	if c.Team() != t {
		return outcome(NotYourChip), p
	}
	if !b.slots[c].placed {
		return b.checkPlacement(c, t, p)
	}
	return b.checkRelocation(c, t, p)
}

// SkipTurn passes the turn. It is only permitted once both queens are down.
func (b *Board) SkipTurn(t Team) Outcome {
	if b.over {
		return outcome(Nothing)
	}
	if t != b.ToMove() {
		return outcome(NotYourTurn)
	}
	if !b.QueenPlaced(White) || !b.QueenPlaced(Black) {
		return outcome(NoSkip)
	}
	b.endTurn()
	return OK
}

// apply moves a chip, records the event and completes the turn.
func (b *Board) apply(c Chip, to hex.Pos) {
	b.slots[c].pos = to
	b.slots[c].placed = true
	b.history.Add(Event{Turn: b.turn, Chip: c, Dest: to.DoubleHeight()})
	b.endTurn()
}

// endTurn advances the turn counter and drops every mimicry overlay.
func (b *Board) endTurn() {
	b.turn++
	for i := range b.slots {
		b.slots[i].mimic = NoSpecies
	}
}

// settle evaluates the win state after a move by team t and latches it.
func (b *Board) settle(t Team) Outcome {
	o := b.evaluate(t)
	if o.Kind == Win {
		b.over = true
		b.winner = o.Team
	}
	return o
}

// String returns a listing of the board for debugging.
func (b *Board) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Turn: %d (%s to move)\n", b.turn, b.ToMove())
	fmt.Fprintf(&sb, "Size: %d\n", b.Size())
	for t := White; t <= Black; t++ {
		fmt.Fprintf(&sb, "%s:", t)
		for _, c := range Chips(t) {
			s := b.slots[c]
			if !s.placed {
				continue
			}
			fmt.Fprintf(&sb, " %s@%s", c.Name(), s.pos.DoubleHeight())
		}
		sb.WriteByte('\n')
	}
	if b.over {
		if b.winner == NoTeam {
			sb.WriteString("Result: draw\n")
		} else {
			fmt.Fprintf(&sb, "Result: %s wins\n", b.winner)
		}
	}
	return sb.String()
}

// SamePosition reports whether two boards hold the same chips in the same
// places on the same turn.
func (b *Board) SamePosition(o *Board) bool {
	if b.turn != o.turn {
		return false
	}
	for i := range b.slots {
		if b.slots[i].placed != o.slots[i].placed {
			return false
		}
		if b.slots[i].placed && b.slots[i].pos != o.slots[i].pos {
			return false
		}
	}
	return true
}
