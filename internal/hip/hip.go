// Package hip implements a line protocol for driving games from a terminal or
// another program. Every command is one line; every reply is one line except
// the "d" debug listing.
package hip

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hailam/hiveplay/internal/board"
	"github.com/hailam/hiveplay/internal/game"
	"github.com/hailam/hiveplay/internal/hex"
	"github.com/hailam/hiveplay/internal/storage"
)

// HIP is one protocol session. It drives a single current game.
type HIP struct {
	in      io.Reader
	out     io.Writer
	log     zerolog.Logger
	archive storage.Archive // nil disables save, load, list and delete

	game *game.Game

	// NewID names games started without an explicit id.
	NewID func() string
}

// New creates a protocol handler reading commands from in and writing
// replies to out.
func New(in io.Reader, out io.Writer, archive storage.Archive, log zerolog.Logger) *HIP {
	h := &HIP{
		in:      in,
		out:     out,
		log:     log,
		archive: archive,
		NewID: func() string {
			return fmt.Sprintf("game-%d", time.Now().UnixNano())
		},
	}
	return h
}

// errUsage marks a malformed command line.
var errUsage = errors.New("usage")

// Run reads commands until "quit" or end of input.
func (h *HIP) Run() error {
	scanner := bufio.NewScanner(h.in)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]

		var err error
		switch cmd {
		case "hip":
			h.reply("id name hiveplay")
			h.reply("hipok")
		case "isready":
			h.reply("readyok")
		case "newgame":
			err = h.handleNewGame(args)
		case "move":
			err = h.handleMove(args)
		case "mimic":
			err = h.handleMimic(args)
		case "skip":
			err = h.handleSkip()
		case "board":
			err = h.handleBoard()
		case "history":
			err = h.handleHistory()
		case "hints":
			err = h.handleHints(args)
		case "save":
			err = h.handleSave()
		case "load":
			err = h.handleLoad(args)
		case "list":
			err = h.handleList()
		case "delete":
			err = h.handleDelete(args)
		// Debug commands
		case "d":
			if err = h.needGame(); err == nil {
				fmt.Fprint(h.out, h.game.String())
			}
		case "quit":
			return nil
		default:
			err = fmt.Errorf("unknown command %q", cmd)
		}

		if err != nil {
			h.log.Info().Err(err).Str("line", line).Msg("command failed")
			h.reply("error " + err.Error())
		}
	}

	return scanner.Err()
}

func (h *HIP) reply(s string) {
	fmt.Fprintln(h.out, s)
}

func (h *HIP) needGame() error {
	if h.game == nil {
		return errors.New("no game, send newgame first")
	}
	return nil
}

func (h *HIP) needArchive() error {
	if h.archive == nil {
		return errors.New("no archive configured")
	}
	return nil
}

// handleNewGame starts a fresh game.
// Format: newgame [id]
func (h *HIP) handleNewGame(args []string) error {
	id := h.NewID()
	switch len(args) {
	case 0:
	case 1:
		id = args[0]
	default:
		return fmt.Errorf("%w: newgame [id]", errUsage)
	}

	h.game = game.New(id, h.log)
	h.reply("ok " + id)
	return nil
}

// handleMove submits a placement, relocation or forced move.
// Format: move <chip> <col> <row> [mimic <chip>] [victim <chip>]
func (h *HIP) handleMove(args []string) error {
	if err := h.needGame(); err != nil {
		return err
	}
	if len(args) < 3 || len(args)%2 == 0 {
		return fmt.Errorf("%w: move <chip> <col> <row> [mimic <chip>] [victim <chip>]", errUsage)
	}

	c, err := board.ParseChip(args[0])
	if err != nil {
		return err
	}
	dest, err := hex.ParseDoubleHeight(args[1], args[2])
	if err != nil {
		return err
	}
	req := game.NewRequest(c, c.Team(), dest)

	for i := 3; i < len(args); i += 2 {
		other, err := board.ParseChip(args[i+1])
		if err != nil {
			return err
		}
		switch args[i] {
		case "mimic":
			req.Mimic = other
		case "victim":
			req.Victim = other
		default:
			return fmt.Errorf("%w: unknown move option %q", errUsage, args[i])
		}
	}

	h.replyOutcome(h.game.Submit(req))
	return nil
}

// handleMimic applies mimicry without moving.
// Format: mimic <mosquito> <victim>
func (h *HIP) handleMimic(args []string) error {
	if err := h.needGame(); err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: mimic <mosquito> <victim>", errUsage)
	}
	m, err := board.ParseChip(args[0])
	if err != nil {
		return err
	}
	victim, err := board.ParseChip(args[1])
	if err != nil {
		return err
	}
	h.replyOutcome(h.game.Mimic(m, m.Team(), victim))
	return nil
}

// handleSkip passes the turn of the team to move.
func (h *HIP) handleSkip() error {
	if err := h.needGame(); err != nil {
		return err
	}
	h.replyOutcome(h.game.Skip(h.game.ToMove()))
	return nil
}

func (h *HIP) replyOutcome(o board.Outcome) {
	h.reply("outcome " + o.String())
}

// handleBoard prints the spiral string of the current position.
func (h *HIP) handleBoard() error {
	if err := h.needGame(); err != nil {
		return err
	}
	s, err := h.game.Encoded()
	if err != nil {
		return err
	}
	h.reply("board " + s)
	return nil
}

// handleHistory prints the CSV log with its lines joined by spaces.
func (h *HIP) handleHistory() error {
	if err := h.needGame(); err != nil {
		return err
	}
	csv, err := h.game.History()
	if err != nil {
		return err
	}
	h.reply("history " + strings.Join(strings.Fields(csv), " "))
	return nil
}

// handleHints lists the legal destinations of a chip.
// Format: hints <chip>
func (h *HIP) handleHints(args []string) error {
	if err := h.needGame(); err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: hints <chip>", errUsage)
	}
	c, err := board.ParseChip(args[0])
	if err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString("hints")
	for _, d := range h.game.Hints(c) {
		fmt.Fprintf(&sb, " %d,%d", d.Col, d.Row)
	}
	h.reply(sb.String())
	return nil
}

// handleSave archives the current game.
func (h *HIP) handleSave() error {
	if err := h.needGame(); err != nil {
		return err
	}
	if err := h.needArchive(); err != nil {
		return err
	}
	if err := h.game.Save(h.archive); err != nil {
		return err
	}
	h.reply("saved " + h.game.ID())
	return nil
}

// handleLoad makes an archived game current.
// Format: load <id>
func (h *HIP) handleLoad(args []string) error {
	if err := h.needArchive(); err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: load <id>", errUsage)
	}
	g, err := game.Load(h.archive, args[0], h.log)
	if err != nil {
		return err
	}
	h.game = g
	return h.handleBoard()
}

// handleList prints the ids of archived games.
func (h *HIP) handleList() error {
	if err := h.needArchive(); err != nil {
		return err
	}
	recs, err := h.archive.List()
	if err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString("games")
	for _, r := range recs {
		sb.WriteString(" " + r.ID)
	}
	h.reply(sb.String())
	return nil
}

// handleDelete removes an archived game.
// Format: delete <id>
func (h *HIP) handleDelete(args []string) error {
	if err := h.needArchive(); err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: delete <id>", errUsage)
	}
	if err := h.archive.Delete(args[0]); err != nil {
		return err
	}
	h.reply("deleted " + args[0])
	return nil
}
