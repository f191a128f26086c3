package board

import "github.com/hailam/hiveplay/internal/hex"

// queenDeadline is the team turn index (0-based) by which the queen must be
// on the board: the fourth placement.
const queenDeadline = 3

// checkPlacement validates putting an off-board chip down at p.
func (b *Board) checkPlacement(c Chip, t Team, p hex.Pos) (Outcome, hex.Pos) {
	p = p.Ground()

	if b.turn/2 >= queenDeadline && !b.QueenPlaced(t) && c != QueenOf(t) {
		return outcome(BeeNeed), p
	}
	if b.Occupied(p.Cube) {
		return outcome(Occupied), p
	}
	if b.turn > 0 && b.occupiedNeighbors(p.Cube, hex.Pos{}, false) == 0 {
		return outcome(Unconnected), p
	}
	if b.turn > 1 {
		for _, n := range p.Neighbors() {
			top := b.Top(n)
			if top != NoChip && top.Team() != t {
				return outcome(BadNeighbour), p
			}
		}
	}
	return OK, p
}

// checkRelocation validates moving a placed chip to p. The returned position
// carries the resolved stacking layer.
func (b *Board) checkRelocation(c Chip, t Team, p hex.Pos) (Outcome, hex.Pos) {
	if !b.QueenPlaced(t) {
		return outcome(NoBee), p
	}

	sp := b.movingSpecies(c)
	if sp == NoSpecies {
		return outcome(NoSuck), p
	}

	from := b.slots[c].pos
	if sp == Beetle {
		p = hex.At(p.Cube, b.heightExcluding(p.Cube, c))
	} else {
		p = p.Ground()
	}

	if o := b.checkShared(from, p); o.Kind != Success {
		return o, p
	}
	return b.checkSpecies(sp, from, p), p
}

// movingSpecies resolves the species whose rules govern a chip this turn.
// An elevated Mosquito moves as a Beetle; a grounded one needs an active
// mimicry overlay and reports NoSpecies without one.
func (b *Board) movingSpecies(c Chip) Species {
	sp := c.Species()
	if sp != Mosquito {
		return sp
	}
	s := b.slots[c]
	if s.placed && s.pos.Layer > 0 {
		return Beetle
	}
	return s.mimic
}

// checkShared applies the constraints common to every relocation, in order:
// occupancy, attachment, pinning by a chip above, and hive connectivity.
func (b *Board) checkShared(from, to hex.Pos) Outcome {
	if b.ChipAt(to) != NoChip {
		return outcome(Occupied)
	}
	if b.occupiedNeighbors(to.Cube, from, true) == 0 && b.ChipAt(to.Down()) == NoChip {
		return outcome(Unconnected)
	}
	if b.ChipAt(from.Up()) != NoChip {
		return outcome(BeetleBlock)
	}
	if b.splitsHive(from, to) {
		return outcome(HiveSplit)
	}
	return OK
}

// occupiedNeighbors counts the occupied cells around c. When vacate is set,
// a cell whose only chip sits at from is treated as empty.
func (b *Board) occupiedNeighbors(c hex.Cube, from hex.Pos, vacate bool) int {
	n := 0
	for _, nb := range c.Neighbors() {
		if !b.Occupied(nb) {
			continue
		}
		if vacate && nb == from.Cube && from.Layer == 0 && b.Height(nb) == 1 {
			continue
		}
		n++
	}
	return n
}

// splitsHive simulates moving the chip at from to to and reports whether the
// occupied positions stop forming one component.
func (b *Board) splitsHive(from, to hex.Pos) bool {
	occupied := make(map[hex.Pos]bool, RosterSize)
	for _, p := range b.OccupiedPositions() {
		occupied[p] = true
	}
	delete(occupied, from)
	occupied[to] = true

	return reachable(occupied, to) < len(occupied)
}

// reachable counts the positions connected to start under all-neighbour
// adjacency.
func reachable(occupied map[hex.Pos]bool, start hex.Pos) int {
	seen := map[hex.Pos]bool{start: true}
	stack := []hex.Pos{start}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, n := range p.AllNeighbors() {
			if occupied[n] && !seen[n] {
				seen[n] = true
				stack = append(stack, n)
			}
		}
	}
	return len(seen)
}

// Connected reports whether every occupied position belongs to one
// component.
func (b *Board) Connected() bool {
	positions := b.OccupiedPositions()
	if len(positions) == 0 {
		return true
	}
	occupied := make(map[hex.Pos]bool, len(positions))
	for _, p := range positions {
		occupied[p] = true
	}
	return reachable(occupied, positions[0]) == len(positions)
}

// Surrounded reports whether a team's queen has all six neighbours occupied.
func (b *Board) Surrounded(t Team) bool {
	q := b.slots[QueenOf(t)]
	if !q.placed {
		return false
	}
	return b.occupiedNeighbors(q.pos.Cube, hex.Pos{}, false) == 6
}

// evaluate reports the game state from the point of view of team t, who has
// just moved.
func (b *Board) evaluate(t Team) Outcome {
	mine := b.Surrounded(t)
	theirs := b.Surrounded(t.Other())
	switch {
	case mine && theirs:
		return WinFor(NoTeam)
	case theirs:
		return WinFor(t)
	case mine:
		return WinFor(t.Other())
	default:
		return OK
	}
}
