package hex

import "fmt"

// Spiral is the serialization form of a position: cells are numbered ring by
// ring outward from the origin (index 0).
type Spiral struct {
	Index uint
	Layer int
}

// RingOffset returns the spiral index of the first cell in ring n.
func RingOffset(n int) int {
	if n == 0 {
		return 0
	}
	return 1 + 3*n*(n-1)
}

// RingOf returns the ring holding spiral index i.
func RingOf(i uint) int {
	n := 0
	for uint(RingOffset(n+1)) <= i {
		n++
	}
	return n
}

// ringWave is a truncated triangle wave of period 6n and amplitude n. It
// holds at +n for n steps, falls over 2n steps, holds at -n, and rises again.
// phase2 is twice the position of the top plateau's centre, so odd rings can
// centre the plateau on a half step.
func ringWave(k, n, phase2 int) int {
	period := 12 * n
	d := floorMod(2*k-phase2, period)
	if d > period/2 {
		d = period - d
	}
	return min(max((3*n-d)/2, -n), n)
}

// Cube returns the cell at spiral index s.Index.
func (s Spiral) Cube() Cube {
	if s.Index == 0 {
		return Origin
	}
	n := RingOf(s.Index)
	k := int(s.Index) - RingOffset(n)
	return NewCube(ringWave(k, n, n), ringWave(k, n, 5*n))
}

// Pos implements Coord.
func (s Spiral) Pos() Pos {
	return Pos{Cube: s.Cube(), Layer: s.Layer}
}

// SpiralOf returns the spiral form of a position. There is no closed form:
// the ring is found directly and its 6n cells are scanned.
func SpiralOf(p Pos) (Spiral, error) {
	if !p.Valid() {
		return Spiral{}, fmt.Errorf("invalid cube %s: q+r+s must be 0", p.Cube)
	}
	n := p.Ring()
	if n == 0 {
		return Spiral{Layer: p.Layer}, nil
	}
	first := RingOffset(n)
	for k := 0; k < 6*n; k++ {
		s := Spiral{Index: uint(first + k), Layer: p.Layer}
		if s.Cube() == p.Cube {
			return s, nil
		}
	}
	return Spiral{}, fmt.Errorf("cube %s not found in ring %d", p.Cube, n)
}
