// Package hex implements the hexagonal lattice geometry used by the board:
// cube coordinates for rules, double-height offsets for callers, and a spiral
// index for serialization.
package hex

import "fmt"

// Cube is a cell on the hex lattice in cube coordinates.
// Every Cube produced by this package satisfies Q+R+S == 0.
type Cube struct {
	Q, R, S int
}

// Origin is the cell at spiral index 0.
var Origin = Cube{}

// Directions are the six unit vectors of layer-0 adjacency, in ring order:
// consecutive entries are themselves neighbours.
var Directions = [6]Cube{
	{Q: 1, R: -1, S: 0},
	{Q: 1, R: 0, S: -1},
	{Q: 0, R: 1, S: -1},
	{Q: -1, R: 1, S: 0},
	{Q: -1, R: 0, S: 1},
	{Q: 0, R: -1, S: 1},
}

// NewCube builds a cube from its two free axes.
func NewCube(q, r int) Cube {
	return Cube{Q: q, R: r, S: -q - r}
}

// Valid reports whether the cube satisfies q+r+s == 0.
func (c Cube) Valid() bool {
	return c.Q+c.R+c.S == 0
}

// Add returns the component-wise sum.
func (c Cube) Add(o Cube) Cube {
	return Cube{Q: c.Q + o.Q, R: c.R + o.R, S: c.S + o.S}
}

// Sub returns the component-wise difference.
func (c Cube) Sub(o Cube) Cube {
	return Cube{Q: c.Q - o.Q, R: c.R - o.R, S: c.S - o.S}
}

// Scale multiplies every component by k.
func (c Cube) Scale(k int) Cube {
	return Cube{Q: c.Q * k, R: c.R * k, S: c.S * k}
}

// Manhattan returns |q|+|r|+|s|.
func (c Cube) Manhattan() int {
	return abs(c.Q) + abs(c.R) + abs(c.S)
}

// Ring returns the ring number of the cell, i.e. its distance from the origin.
func (c Cube) Ring() int {
	return max(abs(c.Q), abs(c.R), abs(c.S))
}

// Neighbors returns the six adjacent cells.
func (c Cube) Neighbors() [6]Cube {
	var out [6]Cube
	for i, d := range Directions {
		out[i] = c.Add(d)
	}
	return out
}

// IsNeighbor reports whether o is one of the six cells adjacent to c.
func (c Cube) IsNeighbor(o Cube) bool {
	return Distance(c, o) == 1
}

// Direction returns the index into Directions of the unit vector pointing
// from c to o, and the number of steps, when o lies on one of the six straight
// lines through c. ok is false otherwise or when o == c.
func (c Cube) Direction(o Cube) (dir, steps int, ok bool) {
	d := o.Sub(c)
	steps = d.Ring()
	if steps == 0 {
		return 0, 0, false
	}
	for i, u := range Directions {
		if u.Scale(steps) == d {
			return i, steps, true
		}
	}
	return 0, 0, false
}

// String returns "(q,r,s)".
func (c Cube) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.Q, c.R, c.S)
}

// Distance returns the number of steps between two cells.
func Distance(a, b Cube) int {
	return a.Sub(b).Manhattan() / 2
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// floorMod returns x mod m in [0, m).
func floorMod(x, m int) int {
	r := x % m
	if r < 0 {
		r += m
	}
	return r
}
