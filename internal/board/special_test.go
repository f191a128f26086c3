package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/hiveplay/internal/hex"
)

// pillbugBoard has wP1 beside bA1, with an empty cell at (2,-2) touching the
// pillbug.
func pillbugBoard() *Board {
	return setup(6, map[string]hex.Pos{
		"wQ":  cube(0, 0),
		"wP1": cube(1, -1),
		"bQ":  cube(0, 1),
		"bA1": cube(1, 0),
	})
}

func TestForcedMove(t *testing.T) {
	b := pillbugBoard()
	wP, bA := mustChip("wP1"), mustChip("bA1")

	assert.Equal(t, OK, b.ForcedMove(wP, White, bA, cube(2, -2)))
	assert.Equal(t, 7, b.Turn())

	p, _ := b.Position(bA)
	assert.Equal(t, cube(2, -2), p)
	p, _ = b.Position(wP)
	assert.Equal(t, cube(1, -1), p, "the actor stays put")

	events := b.History().Events()
	require.Len(t, events, 1)
	assert.Equal(t, bA, events[0].Chip)
}

func TestForcedMoveRejections(t *testing.T) {
	wP, bA := mustChip("wP1"), mustChip("bA1")

	tests := []struct {
		name   string
		board  func() *Board
		actor  string
		victim string
		dest   hex.Pos
		want   Outcome
	}{
		{
			name:   "actor is not a pillbug",
			board:  pillbugBoard,
			actor:  "wQ",
			victim: "bA1",
			dest:   cube(2, -2),
			want:   outcome(Nothing),
		},
		{
			name:   "destination not beside actor",
			board:  pillbugBoard,
			actor:  "wP1",
			victim: "bA1",
			dest:   cube(2, 0),
			want:   outcome(NotNeighbour),
		},
		{
			name:   "victim not beside actor",
			board:  pillbugBoard,
			actor:  "wP1",
			victim: "bQ",
			dest:   cube(2, -2),
			want:   outcome(NotNeighbour),
		},
		{
			name:   "destination occupied",
			board:  pillbugBoard,
			actor:  "wP1",
			victim: "bA1",
			dest:   cube(0, 0),
			want:   outcome(Occupied),
		},
		{
			name: "queen not placed",
			board: func() *Board {
				return setup(6, map[string]hex.Pos{
					"wP1": cube(0, 0),
					"bA1": cube(1, 0),
				})
			},
			actor:  "wP1",
			victim: "bA1",
			dest:   cube(1, -1),
			want:   outcome(NoBee),
		},
		{
			name: "victim moved last turn",
			board: func() *Board {
				b := pillbugBoard()
				b.history.Add(Event{Turn: 5, Chip: bA})
				return b
			},
			actor:  "wP1",
			victim: "bA1",
			dest:   cube(2, -2),
			want:   MovedRecently(bA),
		},
		{
			name: "actor moved two turns ago",
			board: func() *Board {
				b := pillbugBoard()
				b.history.Add(Event{Turn: 4, Chip: wP})
				b.history.Add(Event{Turn: 5, Chip: bA})
				return b
			},
			actor:  "wP1",
			victim: "bA1",
			dest:   cube(2, -2),
			want:   MovedRecently(wP),
		},
		{
			name: "old moves do not count",
			board: func() *Board {
				b := pillbugBoard()
				b.history.Add(Event{Turn: 3, Chip: bA})
				return b
			},
			actor:  "wP1",
			victim: "bA1",
			dest:   cube(2, -2),
			want:   OK,
		},
		{
			name: "actor pinned",
			board: func() *Board {
				b := pillbugBoard()
				b.place(mustChip("bB1"), hex.At(hex.NewCube(1, -1), 1))
				return b
			},
			actor:  "wP1",
			victim: "bA1",
			dest:   cube(2, -2),
			want:   outcome(BeetleBlock),
		},
		{
			name: "victim pinned",
			board: func() *Board {
				b := pillbugBoard()
				b.place(mustChip("bB1"), hex.At(hex.NewCube(1, 0), 1))
				return b
			},
			actor:  "wP1",
			victim: "bA1",
			dest:   cube(2, -2),
			want:   outcome(BeetleBlock),
		},
		{
			name: "gate of raised stacks",
			board: func() *Board {
				b := pillbugBoard()
				b.place(mustChip("bA2"), cube(2, -1))
				b.place(mustChip("bB1"), hex.At(hex.NewCube(2, -1), 1))
				b.place(mustChip("wA1"), cube(1, -2))
				b.place(mustChip("wB1"), hex.At(hex.NewCube(1, -2), 1))
				return b
			},
			actor:  "wP1",
			victim: "bA1",
			dest:   cube(2, -2),
			want:   outcome(BeetleGate),
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := tc.board()
			turn := b.Turn()
			got := b.CheckForcedMove(mustChip(tc.actor), White, mustChip(tc.victim), tc.dest)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, turn, b.Turn())
		})
	}

	b := pillbugBoard()
	assert.Equal(t, NotYourTurn, b.ForcedMove(wP, Black, bA, cube(2, -2)).Kind)
	assert.Equal(t, NotYourChip, b.ForcedMove(bA, White, wP, cube(2, -2)).Kind)
}

func mosquitoBoard() *Board {
	return setup(6, map[string]hex.Pos{
		"wM1": cube(0, 2),
		"wQ":  cube(0, 1),
		"bQ":  cube(0, 0),
		"wG1": cube(1, 1),
		"bM1": cube(-1, 2),
	})
}

func TestMimicry(t *testing.T) {
	wM, wG := mustChip("wM1"), mustChip("wG1")
	b := mosquitoBoard()

	assert.Equal(t, NoSuck, b.CheckMove(wM, White, cube(0, -1)).Kind, "a bare mosquito cannot move")

	assert.Equal(t, OK, b.Mimic(wM, White, wG))
	assert.Equal(t, 6, b.Turn(), "mimicry does not use the turn")
	assert.Equal(t, Display{Species: Grasshopper}, b.Display(wM))

	assert.Equal(t, OK, b.MoveChip(wM, White, cube(0, -1)))
	assert.Equal(t, Display{Species: Mosquito}, b.Display(wM))
	p, _ := b.Position(wM)
	assert.Equal(t, cube(0, -1), p)
}

func TestMimicryRejections(t *testing.T) {
	tests := []struct {
		name   string
		m      string
		team   Team
		victim string
		want   Kind
	}{
		{"other mosquito", "wM1", White, "bM1", NoSuck},
		{"not adjacent", "wM1", White, "bQ", NoSuck},
		{"not a mosquito", "wG1", White, "wQ", NoSuck},
		{"off turn", "bM1", Black, "wM1", NotYourTurn},
		{"opponent chip", "bM1", White, "wQ", NotYourChip},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := mosquitoBoard()
			assert.Equal(t, tc.want, b.Mimic(mustChip(tc.m), tc.team, mustChip(tc.victim)).Kind)
		})
	}
}

func TestMimicryEndsWithSkip(t *testing.T) {
	wM := mustChip("wM1")
	b := mosquitoBoard()
	require.Equal(t, OK, b.Mimic(wM, White, mustChip("wG1")))
	require.Equal(t, OK, b.SkipTurn(White))
	assert.Equal(t, Mosquito, b.Display(wM).Species)
}

func TestRaisedMosquitoMovesAsBeetle(t *testing.T) {
	wM := mustChip("wM1")
	b := setup(6, map[string]hex.Pos{
		"wQ":  cube(0, 1),
		"wM1": hex.At(hex.NewCube(0, 1), 1),
		"bQ":  cube(0, 0),
		"wG1": cube(1, 1),
	})
	assert.Equal(t, Display{Species: Mosquito, Raised: true}, b.Display(wM))

	assert.Equal(t, OK, b.MoveChip(wM, White, dh(0, 0)))
	p, _ := b.Position(wM)
	assert.Equal(t, hex.At(hex.Origin, 1), p)
}

func TestMosquitoAsPillbug(t *testing.T) {
	wM, bA := mustChip("wM1"), mustChip("bA1")
	b := setup(6, map[string]hex.Pos{
		"wQ":  cube(0, 0),
		"wP1": cube(1, -1),
		"bQ":  cube(0, 1),
		"wM1": cube(0, -1),
		"bA1": cube(-1, 0),
	})

	assert.Equal(t, Nothing, b.CheckForcedMove(wM, White, bA, cube(-1, -1)).Kind)

	require.Equal(t, OK, b.Mimic(wM, White, mustChip("wP1")))
	assert.Equal(t, OK, b.ForcedMove(wM, White, bA, cube(-1, -1)))

	p, _ := b.Position(bA)
	assert.Equal(t, cube(-1, -1), p)
	assert.Equal(t, Mosquito, b.Display(wM).Species)
}
