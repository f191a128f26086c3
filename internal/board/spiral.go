package board

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/hailam/hiveplay/internal/hex"
)

// Spiral string layout:
//
//	TTTTSS then couplets in ascending spiral order
//
// TTTT is the zero-padded turn and SS the zero-padded size. A couplet led by
// a species letter is a ground chip (uppercase White, lowercase Black)
// followed by its index digit; it fills the current spiral slot. A couplet
// led by a raise marker is an elevated chip stacked on the previous cell.
// A couplet of two dozenal digits skips that many empty slots.
const (
	headerLen = 6
	maxTurn   = 9999
	maxSize   = 99
	maxSkip   = 143 // "EE"

	dozenal = "0123456789XE"
)

// raise markers, indexed [team]
var (
	raisedBeetle   = [2]byte{'R', 'r'}
	raisedMosquito = [2]byte{'W', 'w'}
)

// Encode returns the spiral string of the board.
func Encode(b *Board) (string, error) {
	if b.turn > maxTurn {
		return "", fmt.Errorf("turn %d does not fit the spiral header", b.turn)
	}
	size := b.Size()
	if size > maxSize {
		return "", fmt.Errorf("size %d does not fit the spiral header", size)
	}

	cells := make(map[uint]hex.Cube)
	for _, p := range b.OccupiedPositions() {
		if p.Layer != 0 {
			continue
		}
		s, err := hex.SpiralOf(p)
		if err != nil {
			return "", err
		}
		cells[s.Index] = p.Cube
	}
	indices := make([]uint, 0, len(cells))
	for i := range cells {
		indices = append(indices, i)
	}
	sort.Slice(indices, func(i, j int) bool { return indices[i] < indices[j] })

	var sb strings.Builder
	fmt.Fprintf(&sb, "%04d%02d", b.turn, size)

	var cursor uint
	for _, idx := range indices {
		for gap := idx - cursor; gap > 0; {
			k := min(gap, maxSkip)
			sb.WriteByte(dozenal[k/12])
			sb.WriteByte(dozenal[k%12])
			gap -= k
		}
		for layer, c := range b.Stack(cells[idx]) {
			lead := c.Letter()
			if layer > 0 {
				switch c.Species() {
				case Beetle:
					lead = raisedBeetle[c.Team()]
				case Mosquito:
					lead = raisedMosquito[c.Team()]
				default:
					return "", fmt.Errorf("%s cannot be elevated", c)
				}
			}
			sb.WriteByte(lead)
			sb.WriteByte(byte('0' + c.Index()))
		}
		cursor = idx + 1
	}
	return sb.String(), nil
}

// Decode parses a spiral string into a board. The board has no history.
func Decode(s string) (*Board, error) {
	fail := func(off int, format string, args ...any) error {
		return &ParseError{Input: s, Offset: off, Msg: fmt.Sprintf(format, args...)}
	}

	if len(s) < headerLen || (len(s)-headerLen)%2 != 0 {
		return nil, fail(0, "length %d is not a header plus whole couplets", len(s))
	}
	turn, ok := digits(s[0:4])
	if !ok {
		return nil, fail(0, "bad turn %q", s[0:4])
	}
	size, ok := digits(s[4:6])
	if !ok {
		return nil, fail(4, "bad size %q", s[4:6])
	}

	b := New()
	var cursor uint
	last := hex.Origin
	haveLast := false

	for i := headerLen; i < len(s); i += 2 {
		lead, digit := s[i], s[i+1]

		if t, sp, ok := raised(lead); ok {
			if !haveLast {
				return nil, fail(i, "elevated chip %c with nothing below", lead)
			}
			c, err := chipFromCouplet(t, sp, digit)
			if err != nil {
				return nil, fail(i, "%v", err)
			}
			if b.slots[c].placed {
				return nil, fail(i, "%s appears twice", c)
			}
			b.place(c, hex.At(last, b.Height(last)))
			continue
		}

		if sp := SpeciesFromChar(lead); sp != NoSpecies {
			t := White
			if lead >= 'a' && lead <= 'z' {
				t = Black
			}
			c, err := chipFromCouplet(t, sp, digit)
			if err != nil {
				return nil, fail(i, "%v", err)
			}
			if b.slots[c].placed {
				return nil, fail(i, "%s appears twice", c)
			}
			last = hex.Spiral{Index: cursor}.Cube()
			haveLast = true
			b.place(c, hex.At(last, 0))
			cursor++
			continue
		}

		hi, lo := strings.IndexByte(dozenal, lead), strings.IndexByte(dozenal, digit)
		if hi < 0 || lo < 0 {
			return nil, fail(i, "unknown couplet %q", s[i:i+2])
		}
		skip := uint(hi*12 + lo)
		if skip == 0 {
			return nil, fail(i, "empty skip")
		}
		cursor += skip
		haveLast = false
	}

	if got := b.Size(); got != size {
		return nil, fail(4, "size %d does not match chips (%d)", size, got)
	}
	b.turn = turn
	b.settle(Team(turn % 2).Other())
	return b, nil
}

// digits parses a fixed-width field of ASCII decimal digits.
func digits(field string) (int, bool) {
	for i := 0; i < len(field); i++ {
		if field[i] < '0' || field[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(field)
	return n, err == nil
}

// raised decodes a raise marker.
func raised(lead byte) (Team, Species, bool) {
	for t := White; t <= Black; t++ {
		switch lead {
		case raisedBeetle[t]:
			return t, Beetle, true
		case raisedMosquito[t]:
			return t, Mosquito, true
		}
	}
	return NoTeam, NoSpecies, false
}

func chipFromCouplet(t Team, sp Species, digit byte) (Chip, error) {
	if digit < '1' || digit > '9' {
		return NoChip, fmt.Errorf("bad index digit %q", digit)
	}
	c := NewChip(t, sp, int(digit-'0'))
	if c == NoChip {
		return NoChip, fmt.Errorf("no %s %s %c", t, sp, digit)
	}
	return c, nil
}

// place puts a chip at p without validation or history.
func (b *Board) place(c Chip, p hex.Pos) {
	b.slots[c].pos = p
	b.slots[c].placed = true
}
