package board

import "fmt"

// Kind is the tag of an Outcome.
type Kind uint8

const (
	// Nothing means no change was made: the request was a no-op or was aborted.
	Nothing Kind = iota
	Success
	// Win ends the game. Outcome.Team is the winner, NoTeam for a draw.
	Win
	Occupied
	Unconnected
	BadNeighbour
	HiveSplit
	SmallGap
	// BadDistance carries the required step count in Outcome.Distance.
	BadDistance
	// RecentMove carries the offending chip in Outcome.Chip.
	RecentMove
	NotNeighbour
	BeetleBlock
	BeetleGate
	NoJump
	NoSuck
	NoBee
	BeeNeed
	NoSkip
	NotYourTurn
	NotYourChip
)

var kindNames = [...]string{
	Nothing:      "Nothing",
	Success:      "Success",
	Win:          "Win",
	Occupied:     "Occupied",
	Unconnected:  "Unconnected",
	BadNeighbour: "BadNeighbour",
	HiveSplit:    "HiveSplit",
	SmallGap:     "SmallGap",
	BadDistance:  "BadDistance",
	RecentMove:   "RecentMove",
	NotNeighbour: "NotNeighbour",
	BeetleBlock:  "BeetleBlock",
	BeetleGate:   "BeetleGate",
	NoJump:       "NoJump",
	NoSuck:       "NoSuck",
	NoBee:        "NoBee",
	BeeNeed:      "BeeNeed",
	NoSkip:       "NoSkip",
	NotYourTurn:  "NotYourTurn",
	NotYourChip:  "NotYourChip",
}

// String returns the wire name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Outcome is the result of every validating or mutating board operation.
// Rule violations are ordinary outcomes, not errors.
type Outcome struct {
	Kind     Kind
	Team     Team // Win only
	Distance int  // BadDistance only
	Chip     Chip // RecentMove only
}

func outcome(k Kind) Outcome {
	return Outcome{Kind: k, Team: NoTeam, Chip: NoChip}
}

// Predefined payload-free outcomes.
var (
	OK = outcome(Success)
)

// WinFor returns a Win outcome; pass NoTeam for a draw.
func WinFor(t Team) Outcome {
	return Outcome{Kind: Win, Team: t, Chip: NoChip}
}

// TooFar returns a BadDistance outcome for the required step count.
func TooFar(n int) Outcome {
	return Outcome{Kind: BadDistance, Team: NoTeam, Distance: n, Chip: NoChip}
}

// MovedRecently returns a RecentMove outcome naming the chip.
func MovedRecently(c Chip) Outcome {
	return Outcome{Kind: RecentMove, Team: NoTeam, Chip: c}
}

// Applied reports whether the outcome changed the board (Success or Win).
func (o Outcome) Applied() bool {
	return o.Kind == Success || o.Kind == Win
}

// Draw reports whether the outcome is a drawn game.
func (o Outcome) Draw() bool {
	return o.Kind == Win && o.Team == NoTeam
}

// String returns the wire form: the kind name plus its payload, e.g.
// "Win(w)", "Win(-)", "BadDistance(3)", "RecentMove(bP1)".
func (o Outcome) String() string {
	switch o.Kind {
	case Win:
		return fmt.Sprintf("Win(%c)", o.Team.Char())
	case BadDistance:
		return fmt.Sprintf("BadDistance(%d)", o.Distance)
	case RecentMove:
		return fmt.Sprintf("RecentMove(%s)", o.Chip)
	default:
		return o.Kind.String()
	}
}
