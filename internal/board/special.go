package board

import "github.com/hailam/hiveplay/internal/hex"

// Mimic makes a grounded Mosquito adopt the species of an adjacent chip for
// the rest of the current turn. No turn passes. The overlay is dropped when
// the turn completes, whatever completes it.
func (b *Board) Mimic(m Chip, t Team, victim Chip) Outcome {
	m.mustValid()
	victim.mustValid()
	if b.over {
		return outcome(Nothing)
	}
	if t != b.ToMove() {
		return outcome(NotYourTurn)
	}
	if m.Team() != t {
		return outcome(NotYourChip)
	}

	ms, vs := b.slots[m], b.slots[victim]
	switch {
	case m.Species() != Mosquito,
		!ms.placed || ms.pos.Layer != 0,
		!vs.placed || vs.pos.Layer != 0,
		victim.Species() == Mosquito,
		!ms.pos.IsNeighbor(vs.pos.Cube):
		return outcome(NoSuck)
	}

	b.slots[m].mimic = victim.Species()
	return OK
}

// canForce reports whether a chip may act as the forced-move actor this turn.
func (b *Board) canForce(c Chip) bool {
	s := b.slots[c]
	if !s.placed {
		return false
	}
	return b.movingSpecies(c) == Pillbug
}

// ForcedMove has actor (a Pillbug, or a Mosquito mimicking one) lift an
// adjacent victim of either team over itself onto another empty cell
// adjacent to it. The victim moves; the actor stays put.
func (b *Board) ForcedMove(actor Chip, t Team, victim Chip, dest hex.Coord) Outcome {
	o, to := b.checkForced(actor, t, victim, dest.Pos())
	if o.Kind != Success {
		return o
	}
	b.apply(victim, to)
	return b.settle(t)
}

// CheckForcedMove validates a forced move without applying it.
func (b *Board) CheckForcedMove(actor Chip, t Team, victim Chip, dest hex.Coord) Outcome {
	o, _ := b.checkForced(actor, t, victim, dest.Pos())
	return o
}

func (b *Board) checkForced(actor Chip, t Team, victim Chip, to hex.Pos) (Outcome, hex.Pos) {
	actor.mustValid()
	victim.mustValid()
	to = to.Ground()

	if b.over {
		return outcome(Nothing), to
	}
	if t != b.ToMove() {
		return outcome(NotYourTurn), to
	}
	if actor.Team() != t {
		return outcome(NotYourChip), to
	}
	if !b.canForce(actor) {
		return outcome(Nothing), to
	}
	if !b.QueenPlaced(t) {
		return outcome(NoBee), to
	}

	a := b.slots[actor].pos
	if b.ChipAt(a.Up()) != NoChip {
		return outcome(BeetleBlock), to
	}

	recent := b.history.LastTwoTurns(b.turn)
	for _, c := range []Chip{actor, victim} {
		for _, e := range recent {
			if e.Chip == c {
				return MovedRecently(c), to
			}
		}
	}

	vs := b.slots[victim]
	if !vs.placed || vs.pos.Layer != 0 || !a.IsNeighbor(vs.pos.Cube) || !a.IsNeighbor(to.Cube) {
		return outcome(NotNeighbour), to
	}
	from := vs.pos

	above := b.upperNeighbors(a.Cube)
	if sharesGate(above, b.upperNeighbors(from.Cube)) || sharesGate(above, b.upperNeighbors(to.Cube)) {
		return outcome(BeetleGate), to
	}

	return b.checkShared(from, to), to
}

// upperNeighbors returns the neighbours of c that hold a chip on layer 1.
func (b *Board) upperNeighbors(c hex.Cube) map[hex.Cube]bool {
	out := make(map[hex.Cube]bool, 6)
	for _, n := range c.Neighbors() {
		if b.ChipAt(hex.At(n, 1)) != NoChip {
			out[n] = true
		}
	}
	return out
}

// sharesGate reports whether two layer-1 neighbour sets have two cells in
// common: the pair of stacks flanking a crossing at height one.
func sharesGate(a, c map[hex.Cube]bool) bool {
	shared := 0
	for cell := range a {
		if c[cell] {
			shared++
		}
	}
	return shared >= 2
}
