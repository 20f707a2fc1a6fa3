// Package console implements a line-based debug driver for manual testing
// of the engine from a terminal, independent of any UI protocol (spec §6
// names the Gomocup text protocol as the real driver; this one exists for
// local debugging the way morlock's console driver does for chess).
package console

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

const ProtocolName = "console"

// Driver is a synchronous console driver: each input line is fully handled,
// including any search, before the next is read. Unlike morlock's
// goroutine/channel-streamed analysis, engine.Engine.GetBestMove blocks
// until done (spec §5 "single-threaded cooperative"), so there is no
// in-flight search to cancel or race against.
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

	logw.Infof(ctx, "Console protocol initialized")

	d.out <- fmt.Sprintf("engine %v (%v)", d.e.Name(), d.e.Author())
	d.printBoard()

	for line := range in {
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch strings.ToLower(cmd) {
		case "reset", "r":
			// reset [<size>]
			size := d.e.Size()
			if len(args) > 0 {
				if v, err := strconv.Atoi(args[0]); err == nil {
					size = v
				}
			}
			if err := d.e.SetSize(ctx, size); err != nil {
				d.out <- fmt.Sprintf("invalid size: %v", err)
				break
			}
			d.printBoard()

		case "undo", "u":
			if err := d.e.UnmakeMove(ctx); err != nil {
				d.out <- fmt.Sprintf("cannot undo: %v", err)
				break
			}
			d.printBoard()

		case "print", "p":
			d.printBoard()

		case "go", "analyze", "a":
			p, value := d.e.GetBestMove(ctx)
			if p == board.NoPos {
				d.out <- "no move available"
				break
			}
			if err := d.e.MakeMove(ctx, p); err != nil {
				d.out <- fmt.Sprintf("bestmove %v (value %v): %v", p, value, err)
				break
			}
			d.out <- fmt.Sprintf("bestmove %v (value %v)", p, value)
			d.printBoard()
			if d.e.CheckWin() {
				d.out <- fmt.Sprintf("%v wins", d.e.Board().Opp())
			}

		case "timeout":
			if len(args) > 0 {
				if ms, err := strconv.Atoi(args[0]); err == nil {
					opt := d.e.Options()
					opt.TimeoutTurn = time.Duration(ms) * time.Millisecond
					d.e.SetTimeoutTurn(opt)
				}
			}

		case "halt", "stop":
			// No-op: GetBestMove runs to completion or its own deadline
			// before this driver ever reads the next line.

		case "quit", "exit", "q":
			return

		default:
			// Assume a move of the form "x,y" if not a recognized command.

			p, err := parseMove(cmd)
			if err != nil {
				d.out <- fmt.Sprintf("invalid command: '%v'", cmd)
				break
			}
			if err := d.e.MakeMove(ctx, p); err != nil {
				d.out <- fmt.Sprintf("invalid move: '%v'", cmd)
				break
			}
			d.printBoard()
			if d.e.CheckWin() {
				d.out <- fmt.Sprintf("%v wins", d.e.Board().Opp())
			}
		}
	}
	logw.Infof(ctx, "Input stream broken. Exiting")
}

// parseMove parses the console-only "x,y" shorthand into internal
// (border-offset) coordinates. The real UI-facing coordinate translation
// lives in pkg/protocol/gomocup, not here.
func parseMove(s string) (board.Pos, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return board.NoPos, fmt.Errorf("console: malformed move %q", s)
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

func (d *Driver) printBoard() {
	b := d.e.Board()

	d.out <- ""
	d.out <- b.String()
	d.out <- fmt.Sprintf("step: %v, who: %v", b.Step(), b.Who())
	d.out <- ""
}
