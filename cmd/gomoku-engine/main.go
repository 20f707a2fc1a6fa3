// Command gomoku-engine runs the Gomoku search core behind either the
// Gomocup text protocol or a local console debug driver, selected by the
// first line read from stdin, grounded on morlock's cmd/morlock driver
// selection.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/herohde/gomoku/pkg/engine"
	"github.com/herohde/gomoku/pkg/engine/console"
	"github.com/herohde/gomoku/pkg/protocol/gomocup"
	"github.com/seekerror/logw"
)

var (
	size         = flag.Int("size", engine.DefaultSize, "Board size")
	timeoutTurn  = flag.Duration("timeout-turn", 5*time.Second, "Per-move hard time cap")
	timeoutMatch = flag.Duration("timeout-match", 0, "Advisory full-match time cap")
	version      = flag.Bool("version", false, "Print engine version and exit")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: gomoku-engine [options]

gomoku-engine is a Gomoku (five-in-a-row) search engine speaking either the
Gomocup text protocol or a local console debug protocol.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	opts := engine.Options{TimeoutTurn: *timeoutTurn, TimeoutMatch: *timeoutMatch}
	e := engine.New(ctx, "gomoku-engine", "herohde", engine.WithOptions(opts))

	if *version {
		fmt.Println(e.Name())
		return
	}

	if err := e.SetSize(ctx, *size); err != nil {
		logw.Exitf(ctx, "Invalid -size: %v", err)
	}

	in := engine.ReadStdinLines(ctx)
	switch <-in {
	case gomocup.ProtocolName:
		_, out := gomocup.NewDriver(ctx, e, in)
		engine.WriteStdoutLines(ctx, out)

	case console.ProtocolName:
		_, out := console.NewDriver(ctx, e, in)
		engine.WriteStdoutLines(ctx, out)

	default:
		flag.Usage()
		logw.Exitf(ctx, "Protocol not supported")
	}
}
