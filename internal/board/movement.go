package board

import "github.com/hailam/hiveplay/internal/hex"

// checkSpecies applies the movement rule of species sp to a move that has
// already passed the shared constraints.
func (b *Board) checkSpecies(sp Species, from, to hex.Pos) Outcome {
	switch sp {
	case Queen, Pillbug:
		return b.checkStep(from, to)
	case Beetle:
		if from.Layer == 0 && to.Layer == 0 {
			return b.checkStep(from, to)
		}
		if !from.IsNeighbor(to.Cube) {
			return TooFar(1)
		}
		return OK
	case Ant:
		if b.inSmallGap(from, to.Cube) {
			return outcome(SmallGap)
		}
		return OK
	case Spider:
		if b.inSmallGap(from, to.Cube) {
			return outcome(SmallGap)
		}
		return b.checkWalk(from, to, spiderWalk)
	case Ladybug:
		return b.checkWalk(from, to, ladybugWalk)
	case Grasshopper:
		return b.checkJump(from, to)
	default:
		return outcome(Nothing)
	}
}

// checkStep is the one-step slide: gap test, then adjacency.
func (b *Board) checkStep(from, to hex.Pos) Outcome {
	if b.inSmallGap(from, to.Cube) {
		return outcome(SmallGap)
	}
	if !from.IsNeighbor(to.Cube) {
		return TooFar(1)
	}
	return OK
}

// groundCells returns the occupied cells with the mover at from lifted off.
func (b *Board) groundCells(from hex.Pos) map[hex.Cube]bool {
	cells := make(map[hex.Cube]bool, RosterSize)
	for _, p := range b.OccupiedPositions() {
		if p.Layer == 0 && p != from {
			cells[p.Cube] = true
		}
	}
	return cells
}

// closing returns the morphological closing of a cell set: the dilation by
// one ring, eroded by one ring. The input set is always contained in it.
func closing(cells map[hex.Cube]bool) map[hex.Cube]bool {
	dilated := make(map[hex.Cube]bool, len(cells)*7)
	for c := range cells {
		dilated[c] = true
		for _, n := range c.Neighbors() {
			dilated[n] = true
		}
	}

	closed := make(map[hex.Cube]bool, len(dilated))
	for c := range dilated {
		inside := true
		for _, n := range c.Neighbors() {
			if !dilated[n] {
				inside = false
				break
			}
		}
		if inside {
			closed[c] = true
		}
	}
	return closed
}

// phantomNeighbors is how many closed neighbours make a closed empty cell too
// narrow to slide into.
const phantomNeighbors = 5

// phantoms returns the empty cells filled in by the closing that are too
// narrow for a sliding chip to enter.
func phantoms(cells map[hex.Cube]bool) map[hex.Cube]bool {
	closed := closing(cells)
	out := make(map[hex.Cube]bool)
	for c := range closed {
		if cells[c] {
			continue
		}
		n := 0
		for _, nb := range c.Neighbors() {
			if closed[nb] {
				n++
			}
		}
		if n >= phantomNeighbors {
			out[c] = true
		}
	}
	return out
}

// inSmallGap reports whether dest is a phantom cell once the mover has left
// from.
func (b *Board) inSmallGap(from hex.Pos, dest hex.Cube) bool {
	return phantoms(b.groundCells(from))[dest]
}

// stepRule decides whether a walk may enter cell c.
type stepRule func(b *Board, from hex.Pos, c hex.Cube) bool

func occupiedStep(b *Board, from hex.Pos, c hex.Cube) bool {
	return b.occupiedCell(from, c)
}

func emptyStep(b *Board, from hex.Pos, c hex.Cube) bool {
	return !b.occupiedCell(from, c)
}

var (
	spiderWalk  = []stepRule{emptyStep, emptyStep, emptyStep}
	ladybugWalk = []stepRule{occupiedStep, occupiedStep, emptyStep}
)

// occupiedCell reports whether c holds a chip other than the mover at from.
func (b *Board) occupiedCell(from hex.Pos, c hex.Cube) bool {
	if c == from.Cube {
		return b.Height(c) > 1
	}
	return b.Occupied(c)
}

// walk is a distance-limited flood fill. Round k admits neighbours of the
// previous frontier that satisfy rules[k-1]; a cell admitted in an earlier
// round is never admitted again. It returns the cells first reached in the
// final round.
func (b *Board) walk(from hex.Pos, rules []stepRule) map[hex.Cube]bool {
	admitted := map[hex.Cube]bool{from.Cube: true}
	frontier := map[hex.Cube]bool{from.Cube: true}
	for _, rule := range rules {
		next := make(map[hex.Cube]bool)
		for c := range frontier {
			for _, n := range c.Neighbors() {
				if admitted[n] || next[n] {
					continue
				}
				if rule(b, from, n) {
					next[n] = true
				}
			}
		}
		for c := range next {
			admitted[c] = true
		}
		frontier = next
	}
	return frontier
}

func (b *Board) checkWalk(from, to hex.Pos, rules []stepRule) Outcome {
	if !b.walk(from, rules)[to.Cube] {
		return TooFar(len(rules))
	}
	return OK
}

// checkJump requires a straight line over one or more contiguous chips,
// landing on the first empty cell.
func (b *Board) checkJump(from, to hex.Pos) Outcome {
	dir, steps, ok := from.Direction(to.Cube)
	if !ok || steps < 2 {
		return outcome(NoJump)
	}
	c := from.Cube
	for i := 1; i < steps; i++ {
		c = c.Add(hex.Directions[dir])
		if !b.Occupied(c) {
			return outcome(NoJump)
		}
	}
	return OK
}
