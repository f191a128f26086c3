package board

import "fmt"

// Team is one of the two sides.
type Team uint8

const (
	White Team = iota
	Black
	NoTeam Team = 2
)

// Other returns the opposing team.
func (t Team) Other() Team {
	return t ^ 1
}

// String returns the team name.
func (t Team) String() string {
	switch t {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoTeam"
	}
}

// Char returns the one-character wire form.
func (t Team) Char() byte {
	switch t {
	case White:
		return 'w'
	case Black:
		return 'b'
	default:
		return '-'
	}
}

// TeamFromChar parses the wire form of a team.
func TeamFromChar(c byte) (Team, error) {
	switch c {
	case 'w', 'W':
		return White, nil
	case 'b', 'B':
		return Black, nil
	default:
		return NoTeam, fmt.Errorf("invalid team: %c", c)
	}
}

// Species is the kind of a chip, which determines how it moves.
type Species uint8

const (
	Queen Species = iota
	Beetle
	Ant
	Spider
	Grasshopper
	Mosquito
	Ladybug
	Pillbug
	NoSpecies Species = 8
)

// speciesCount is how many chips of each species a team owns.
var speciesCount = [NoSpecies]uint8{1, 2, 3, 2, 3, 1, 1, 1}

// speciesSlot is the first roster slot of each species within a team.
var speciesSlot = [NoSpecies]uint8{0, 1, 3, 6, 8, 11, 12, 13}

// String returns the species name.
func (s Species) String() string {
	switch s {
	case Queen:
		return "Queen"
	case Beetle:
		return "Beetle"
	case Ant:
		return "Ant"
	case Spider:
		return "Spider"
	case Grasshopper:
		return "Grasshopper"
	case Mosquito:
		return "Mosquito"
	case Ladybug:
		return "Ladybug"
	case Pillbug:
		return "Pillbug"
	default:
		return "None"
	}
}

// Char returns the uppercase species letter.
func (s Species) Char() byte {
	chars := []byte{'Q', 'B', 'A', 'S', 'G', 'M', 'L', 'P', ' '}
	if s > NoSpecies {
		return ' '
	}
	return chars[s]
}

// SpeciesFromChar parses a species letter in either case.
func SpeciesFromChar(c byte) Species {
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	switch c {
	case 'Q':
		return Queen
	case 'B':
		return Beetle
	case 'A':
		return Ant
	case 'S':
		return Spider
	case 'G':
		return Grasshopper
	case 'M':
		return Mosquito
	case 'L':
		return Ladybug
	case 'P':
		return Pillbug
	default:
		return NoSpecies
	}
}

// Count returns how many chips of this species each team owns.
func (s Species) Count() int {
	if s >= NoSpecies {
		return 0
	}
	return int(speciesCount[s])
}

// Chip is one of the 28 permanent chips.
// Encoded as: team*14 + roster slot.
type Chip uint8

const (
	teamSize        = 14
	RosterSize      = 2 * teamSize
	NoChip     Chip = RosterSize
)

// NewChip returns the chip for (team, species, 1-based index), or NoChip if
// no such chip exists.
func NewChip(t Team, s Species, index int) Chip {
	if t >= NoTeam || s >= NoSpecies || index < 1 || index > s.Count() {
		return NoChip
	}
	return Chip(uint8(t)*teamSize + speciesSlot[s] + uint8(index-1))
}

// QueenOf returns the queen chip of a team.
func QueenOf(t Team) Chip {
	return NewChip(t, Queen, 1)
}

// Valid reports whether the chip belongs to the roster.
func (c Chip) Valid() bool {
	return c < NoChip
}

// mustValid panics on chips outside the roster. Callers that reach this with
// a bad chip have broken the setup contract.
func (c Chip) mustValid() {
	if !c.Valid() {
		panic(fmt.Sprintf("board: chip %d outside the roster", c))
	}
}

// Team returns the owning team.
func (c Chip) Team() Team {
	if c >= NoChip {
		return NoTeam
	}
	return Team(c / teamSize)
}

func (c Chip) slot() uint8 {
	return uint8(c) % teamSize
}

// Species returns the permanent species of the chip.
func (c Chip) Species() Species {
	if c >= NoChip {
		return NoSpecies
	}
	slot := c.slot()
	s := NoSpecies - 1
	for s > Queen && speciesSlot[s] > slot {
		s--
	}
	return s
}

// Index returns the 1-based per-species index.
func (c Chip) Index() int {
	if c >= NoChip {
		return 0
	}
	return int(c.slot()-speciesSlot[c.Species()]) + 1
}

// Letter returns the species letter in the team's case: uppercase for White,
// lowercase for Black.
func (c Chip) Letter() byte {
	l := c.Species().Char()
	if c.Team() == Black {
		l += 'a' - 'A'
	}
	return l
}

// Name returns the species letter and index, e.g. "A2".
func (c Chip) Name() string {
	if c >= NoChip {
		return "--"
	}
	return fmt.Sprintf("%c%d", c.Species().Char(), c.Index())
}

// String returns the team-prefixed name, e.g. "wA2".
func (c Chip) String() string {
	if c >= NoChip {
		return "none"
	}
	return fmt.Sprintf("%c%s", c.Team().Char(), c.Name())
}

// ParseChip parses the String form ("wA2", "bQ1"). The index may be omitted
// for single-chip species ("wQ").
func ParseChip(s string) (Chip, error) {
	if len(s) < 2 || len(s) > 3 {
		return NoChip, fmt.Errorf("invalid chip: %q", s)
	}
	t, err := TeamFromChar(s[0])
	if err != nil {
		return NoChip, fmt.Errorf("invalid chip %q: %w", s, err)
	}
	return ParseName(t, s[1:])
}

// ParseName parses a team-less chip name ("A2", "Q") for the given team.
func ParseName(t Team, name string) (Chip, error) {
	if len(name) < 1 || len(name) > 2 {
		return NoChip, fmt.Errorf("invalid chip name: %q", name)
	}
	sp := SpeciesFromChar(name[0])
	if sp == NoSpecies {
		return NoChip, fmt.Errorf("invalid species in %q", name)
	}
	index := 1
	if len(name) == 2 {
		if name[1] < '1' || name[1] > '9' {
			return NoChip, fmt.Errorf("invalid index in %q", name)
		}
		index = int(name[1] - '0')
	}
	c := NewChip(t, sp, index)
	if c == NoChip {
		return NoChip, fmt.Errorf("no chip %q for %s", name, t)
	}
	return c, nil
}

// Chips returns the roster of a team in slot order.
func Chips(t Team) []Chip {
	out := make([]Chip, 0, teamSize)
	for i := 0; i < teamSize; i++ {
		out = append(out, Chip(uint8(t)*teamSize+uint8(i)))
	}
	return out
}
