package board

import (
	"sort"

	"github.com/hailam/hiveplay/internal/hex"
)

// candidateCells returns every cell a chip could conceivably land on: the
// origin on an empty board, otherwise each occupied cell and its neighbours.
func (b *Board) candidateCells() []hex.Cube {
	seen := make(map[hex.Cube]bool)
	for _, p := range b.OccupiedPositions() {
		seen[p.Cube] = true
		for _, n := range p.Neighbors() {
			seen[n] = true
		}
	}
	if len(seen) == 0 {
		return []hex.Cube{hex.Origin}
	}

	type keyed struct {
		cell hex.Cube
		key  uint
	}
	ordered := make([]keyed, 0, len(seen))
	for c := range seen {
		s, _ := hex.SpiralOf(hex.At(c, 0))
		ordered = append(ordered, keyed{cell: c, key: s.Index})
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].key < ordered[j].key })

	out := make([]hex.Cube, len(ordered))
	for i, k := range ordered {
		out[i] = k.cell
	}
	return out
}

// LegalDestinations returns every position the chip may move or be placed to
// this turn, in spiral order. It is empty when the chip's team is not to move.
func (b *Board) LegalDestinations(c Chip) []hex.Pos {
	c.mustValid()
	t := c.Team()
	var out []hex.Pos
	for _, cell := range b.candidateCells() {
		o, to := b.check(c, t, hex.At(cell, 0))
		if o.Kind == Success {
			out = append(out, to)
		}
	}
	return out
}

// LegalMoves returns, for every chip of the team to move, its legal
// destinations. Chips with none are omitted.
func (b *Board) LegalMoves() map[Chip][]hex.Pos {
	moves := make(map[Chip][]hex.Pos)
	if b.over {
		return moves
	}
	for _, c := range Chips(b.ToMove()) {
		if d := b.LegalDestinations(c); len(d) > 0 {
			moves[c] = d
		}
	}
	return moves
}
