package hex

import "fmt"

// Coord is anything that resolves to a rules position. It is implemented by
// Pos itself and by the two conversion-only forms, DoubleHeight and Spiral.
type Coord interface {
	Pos() Pos
}

// Pos is a cell plus a stacking layer (0 = ground).
type Pos struct {
	Cube
	Layer int
}

// At returns the position of cell c on the given layer.
func At(c Cube, layer int) Pos {
	return Pos{Cube: c, Layer: layer}
}

// Pos implements Coord.
func (p Pos) Pos() Pos {
	return p
}

// Ground returns the same cell on layer 0.
func (p Pos) Ground() Pos {
	return Pos{Cube: p.Cube}
}

// Up returns the position directly above.
func (p Pos) Up() Pos {
	return Pos{Cube: p.Cube, Layer: p.Layer + 1}
}

// Down returns the position directly below.
func (p Pos) Down() Pos {
	return Pos{Cube: p.Cube, Layer: p.Layer - 1}
}

// SameLayerNeighbors returns the six adjacent cells on this position's layer.
func (p Pos) SameLayerNeighbors() [6]Pos {
	var out [6]Pos
	for i, c := range p.Cube.Neighbors() {
		out[i] = Pos{Cube: c, Layer: p.Layer}
	}
	return out
}

// AllNeighbors returns the six same-layer neighbours followed by the
// positions directly above and below. A stack is therefore one blob.
func (p Pos) AllNeighbors() [8]Pos {
	var out [8]Pos
	n := p.SameLayerNeighbors()
	copy(out[:6], n[:])
	out[6] = p.Up()
	out[7] = p.Down()
	return out
}

// DoubleHeight returns the caller-facing form of the position.
func (p Pos) DoubleHeight() DoubleHeight {
	return DoubleHeight{Col: p.Q, Row: 2*p.R + p.Q, Layer: p.Layer}
}

// String returns "(q,r,s)@layer".
func (p Pos) String() string {
	return fmt.Sprintf("%s@%d", p.Cube, p.Layer)
}
