// Package gomocup implements a thin adapter from the Gomocup line-based
// text protocol to the engine's core operations (spec §6, §1 "out of
// scope" — the protocol itself is an external collaborator; this package
// only translates its commands into calls on pkg/engine). Grounded on
// morlock's pkg/engine/uci adapter: no engine-internal state or tuning
// lives here, only command parsing and coordinate translation.
package gomocup

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/herohde/gomoku/pkg/board"
	"github.com/herohde/gomoku/pkg/engine"
	"github.com/seekerror/logw"
)

const ProtocolName = "gomocup"

// Driver is a synchronous Gomocup protocol adapter: one command is fully
// handled, including any search it triggers, before the next is read.
type Driver struct {
	e *engine.Engine

	out chan<- string
}

// NewDriver starts processing in lines and returns the driver and its
// output stream, closing out once in is drained or closed.
func NewDriver(ctx context.Context, e *engine.Engine, in <-chan string) (*Driver, <-chan string) {
	out := make(chan string, 100)
	d := &Driver{e: e, out: out}
	go d.process(ctx, in)

	return d, out
}

func (d *Driver) process(ctx context.Context, in <-chan string) {
	defer close(d.out)

	logw.Infof(ctx, "Gomocup protocol initialized")

	for line := range in {
		cmd, arg := splitCommand(line)

		switch strings.ToUpper(cmd) {
		case "START":
			size, err := strconv.Atoi(arg)
			if err != nil {
				d.out <- "ERROR invalid size"
				break
			}
			if err := d.e.SetSize(ctx, size); err != nil {
				d.out <- fmt.Sprintf("ERROR %v", err)
				break
			}
			d.out <- "OK"

		case "BEGIN":
			d.reply(ctx)

		case "TURN":
			p, err := parseUICoord(arg)
			if err != nil {
				d.out <- fmt.Sprintf("ERROR %v", err)
				break
			}
			if err := d.e.MakeMove(ctx, p); err != nil {
				d.out <- fmt.Sprintf("ERROR %v", err)
				break
			}
			d.reply(ctx)

		case "BOARD":
			if err := d.readBoard(ctx, in); err != nil {
				d.out <- fmt.Sprintf("ERROR %v", err)
				break
			}
			d.reply(ctx)

		case "TAKEBACK":
			if err := d.e.UnmakeMove(ctx); err != nil {
				d.out <- fmt.Sprintf("ERROR %v", err)
				break
			}
			d.out <- "OK"

		case "RESTART":
			d.e.Restart(ctx)
			d.out <- "OK"

		case "INFO":
			d.handleInfo(ctx, arg)

		case "ABOUT":
			d.out <- fmt.Sprintf("name=\"%v\", author=\"%v\"", d.e.Name(), d.e.Author())

		case "END":
			logw.Infof(ctx, "END received. Exiting")
			return

		default:
			d.out <- fmt.Sprintf("ERROR unknown command %q", cmd)
		}
	}
	logw.Infof(ctx, "Input stream broken. Exiting")
}

// boardEntry is one "x,y,who" line of a BOARD block: who is 1 for the
// engine's own stones, 2 for the opponent's (Gomocup convention).
type boardEntry struct {
	p   board.Pos
	who int
}

// readBoard consumes lines up to and including "DONE", replaying the
// listed stones onto a freshly restarted board in the order given: self
// stones and opponent stones interleaved by move order isn't specified by
// the protocol, so entries are replayed in the order they appear under the
// assumption the sender already lists them in play order (the common
// Gomocup convention). Every entry's who must alternate between the
// preceding one (a legal game always alternates sides); a repeat is
// rejected rather than silently applied to the wrong side to move.
func (d *Driver) readBoard(ctx context.Context, in <-chan string) error {
	d.e.Restart(ctx)

	prevWho := 0
	for line := range in {
		line = strings.TrimSpace(line)
		if strings.EqualFold(line, "DONE") {
			return nil
		}

		entry, err := parseBoardEntry(line)
		if err != nil {
			return err
		}
		if prevWho != 0 && entry.who == prevWho {
			return fmt.Errorf("gomocup: BOARD entries do not alternate sides: %q", line)
		}
		prevWho = entry.who

		if err := d.e.MakeMove(ctx, entry.p); err != nil {
			return err
		}
	}
	return fmt.Errorf("gomocup: BOARD block missing DONE")
}

func parseBoardEntry(line string) (boardEntry, error) {
	parts := strings.Split(line, ",")
	if len(parts) != 3 {
		return boardEntry{}, fmt.Errorf("gomocup: malformed BOARD entry %q", line)
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return boardEntry{}, err
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return boardEntry{}, err
	}
	who, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return boardEntry{}, err
	}
	return boardEntry{p: board.Pos{X: x + board.Border, Y: y + board.Border}, who: who}, nil
}

// handleInfo maps the three timing keys spec §6 enumerates onto
// engine.Options; unknown keys are logged and ignored, mirroring morlock's
// UCI driver's handling of unrecognized setoption names.
func (d *Driver) handleInfo(ctx context.Context, arg string) {
	fields := strings.Fields(arg)
	if len(fields) != 2 {
		logw.Errorf(ctx, "Malformed INFO: %q", arg)
		return
	}
	key, val := strings.ToLower(fields[0]), fields[1]

	ms, err := strconv.Atoi(val)
	if err != nil {
		logw.Errorf(ctx, "Invalid INFO value: %q", arg)
		return
	}

	opt := d.e.Options()
	switch key {
	case "timeout_turn":
		opt.TimeoutTurn = time.Duration(ms) * time.Millisecond
	case "timeout_match":
		opt.TimeoutMatch = time.Duration(ms) * time.Millisecond
	case "time_left":
		opt.TimeLeft = time.Duration(ms) * time.Millisecond
	default:
		logw.Infof(ctx, "Ignoring unknown INFO key %q", key)
		return
	}
	d.e.SetTimeoutTurn(opt)
}

// reply runs get_best_move, applies the chosen move to the board (the
// Gomocup protocol expects the engine to track both sides' stones itself),
// and formats the response (spec §6: "formats the engine's reply as x,y").
func (d *Driver) reply(ctx context.Context) {
	p, _ := d.e.GetBestMove(ctx)
	if p == board.NoPos {
		d.out <- "-1,-1"
		return
	}
	if err := d.e.MakeMove(ctx, p); err != nil {
		d.out <- fmt.Sprintf("ERROR %v", err)
		return
	}
	d.out <- formatUICoord(p)
}

// splitCommand separates a protocol line's command keyword from its
// argument text, e.g. "TURN 7,7" -> ("TURN", "7,7").
func splitCommand(line string) (string, string) {
	line = strings.TrimSpace(line)
	if i := strings.IndexByte(line, ' '); i >= 0 {
		return line[:i], strings.TrimSpace(line[i+1:])
	}
	return line, ""
}

// parseUICoord parses a 0-indexed "x,y" coordinate and offsets it into
// engine-internal (border-padded) coordinates (spec §6).
func parseUICoord(s string) (board.Pos, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return board.NoPos, fmt.Errorf("gomocup: malformed coordinate %q", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return board.NoPos, err
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return board.NoPos, err
	}
	return board.Pos{X: x + board.Border, Y: y + board.Border}, nil
}

// formatUICoord is the inverse of parseUICoord.
func formatUICoord(p board.Pos) string {
	return fmt.Sprintf("%d,%d", p.X-board.Border, p.Y-board.Border)
}
