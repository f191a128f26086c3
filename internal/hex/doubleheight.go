package hex

import (
	"fmt"
	"strconv"
)

// DoubleHeight is the display offset form of a position: col = q and
// row = 2r + q. Only pairs with an even col+row name a real cell; the type
// does not enforce this, ParseDoubleHeight does.
type DoubleHeight struct {
	Col, Row, Layer int
}

// Pos converts to cube form.
func (d DoubleHeight) Pos() Pos {
	q := d.Col
	r := (d.Row - d.Col) / 2
	return Pos{Cube: Cube{Q: q, R: r, S: -q - r}, Layer: d.Layer}
}

// Valid reports whether col+row is even.
func (d DoubleHeight) Valid() bool {
	return floorMod(d.Col+d.Row, 2) == 0
}

// String returns "col,row" with a "^layer" suffix for elevated positions.
func (d DoubleHeight) String() string {
	if d.Layer == 0 {
		return fmt.Sprintf("%d,%d", d.Col, d.Row)
	}
	return fmt.Sprintf("%d,%d^%d", d.Col, d.Row, d.Layer)
}

// ParseDoubleHeight parses a column and row given as decimal strings.
func ParseDoubleHeight(col, row string) (DoubleHeight, error) {
	c, err := strconv.Atoi(col)
	if err != nil {
		return DoubleHeight{}, fmt.Errorf("invalid column %q: %w", col, err)
	}
	r, err := strconv.Atoi(row)
	if err != nil {
		return DoubleHeight{}, fmt.Errorf("invalid row %q: %w", row, err)
	}
	d := DoubleHeight{Col: c, Row: r}
	if !d.Valid() {
		return DoubleHeight{}, fmt.Errorf("invalid cell %d,%d: column and row must have the same parity", c, r)
	}
	return d, nil
}
