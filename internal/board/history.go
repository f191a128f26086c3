package board

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/hailam/hiveplay/internal/hex"
)

// Event records one applied move. Turns without an event were skipped.
type Event struct {
	Turn int
	Chip Chip
	Dest hex.DoubleHeight
}

// History is the append-only move log of a game.
type History struct {
	events []Event
}

// Add appends an event.
func (h *History) Add(e Event) {
	h.events = append(h.events, e)
}

// Len returns the number of recorded events.
func (h *History) Len() int {
	return len(h.events)
}

// Events returns a copy of the log.
func (h *History) Events() []Event {
	out := make([]Event, len(h.events))
	copy(out, h.events)
	return out
}

// LastTwoTurns returns the events recorded on the two turns before turn.
func (h *History) LastTwoTurns(turn int) []Event {
	var out []Event
	for i := len(h.events) - 1; i >= 0; i-- {
		e := h.events[i]
		if e.Turn < turn-2 {
			break
		}
		if e.Turn < turn {
			out = append(out, e)
		}
	}
	return out
}

// csvHeader is the first line of a saved history.
var csvHeader = []string{"turn", "team", "name", "row", "col"}

// WriteCSV writes the log as "turn,team,name,row,col" rows.
func (h *History) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, e := range h.events {
		rec := []string{
			strconv.Itoa(e.Turn),
			string(e.Chip.Team().Char()),
			e.Chip.Name(),
			strconv.Itoa(e.Dest.Row),
			strconv.Itoa(e.Dest.Col),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a log written by WriteCSV. Layers are not stored; Replay
// resolves them.
func ReadCSV(r io.Reader) (*History, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &ParseError{Input: "csv", Msg: "missing header"}
	}
	if err != nil {
		return nil, &ParseError{Input: "csv", Msg: "bad header", Err: err}
	}
	for i, col := range csvHeader {
		if header[i] != col {
			return nil, &ParseError{Input: "csv", Msg: fmt.Sprintf("unexpected column %q, want %q", header[i], col)}
		}
	}

	h := &History{}
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, &ParseError{Input: "csv", Offset: line, Msg: "bad record", Err: err}
		}
		e, err := parseEvent(rec)
		if err != nil {
			return nil, &ParseError{Input: "csv", Offset: line, Msg: "bad event", Err: err}
		}
		if n := h.Len(); n > 0 && e.Turn <= h.events[n-1].Turn {
			return nil, &ParseError{Input: "csv", Offset: line, Msg: fmt.Sprintf("turn %d out of order", e.Turn)}
		}
		h.Add(e)
	}
	return h, nil
}

func parseEvent(rec []string) (Event, error) {
	turn, err := strconv.Atoi(rec[0])
	if err != nil || turn < 0 {
		return Event{}, fmt.Errorf("invalid turn %q", rec[0])
	}
	if len(rec[1]) != 1 {
		return Event{}, fmt.Errorf("invalid team %q", rec[1])
	}
	t, err := TeamFromChar(rec[1][0])
	if err != nil {
		return Event{}, err
	}
	c, err := ParseName(t, rec[2])
	if err != nil {
		return Event{}, err
	}
	dest, err := hex.ParseDoubleHeight(rec[4], rec[3])
	if err != nil {
		return Event{}, err
	}
	return Event{Turn: turn, Chip: c, Dest: dest}, nil
}

// Replay rebuilds a board from a log. Turn numbers missing from the log are
// skips. Every event is applied as recorded: the chip lands on top of
// whatever already occupies the target cell, which re-resolves stacking for
// climbers and mimicking chips alike. When turn is greater than the turn
// after the last event, trailing skips are added up to it.
func Replay(h *History, turn int) (*Board, error) {
	b := New()
	for i, e := range h.events {
		if b.over {
			return nil, fmt.Errorf("event %d at turn %d: game already over", i, e.Turn)
		}
		if e.Turn < b.turn {
			return nil, fmt.Errorf("event %d: turn %d precedes board turn %d", i, e.Turn, b.turn)
		}
		e.Chip.mustValid()
		for b.turn < e.Turn {
			b.endTurn()
		}
		cell := e.Dest.Pos().Cube
		to := hex.At(cell, b.heightExcluding(cell, e.Chip))
		if b.ChipAt(to) != NoChip {
			return nil, fmt.Errorf("event %d: %s cannot land on %s", i, e.Chip, e.Dest)
		}
		b.apply(e.Chip, to)
		b.settle(Team(e.Turn % 2))
	}
	for !b.over && b.turn < turn {
		b.endTurn()
	}
	return b, nil
}
