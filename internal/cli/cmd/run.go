package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/K-dizzled/isa-interprerter/internal/cli"
	"github.com/K-dizzled/isa-interprerter/internal/engine"
	"github.com/K-dizzled/isa-interprerter/internal/loader"
	"github.com/K-dizzled/isa-interprerter/internal/log"
	"github.com/K-dizzled/isa-interprerter/internal/repl"
)

// run is the "run" sub-command: it loads one program per thread and drives an interactive session
// under the chosen memory model.
type run struct {
	flags *flag.FlagSet

	model string
	paths string
}

var _ cli.Command = (*run)(nil)

// Run creates the "run" sub-command.
func Run() *run {
	r := &run{flags: flag.NewFlagSet("run", flag.ExitOnError)}

	r.flags.StringVar(&r.model, "m", "SC", "memory model: SC, TSO, or PSO")
	r.flags.StringVar(&r.paths, "p", "", `comma-separated program paths, one per thread, e.g. "a.txt, b.txt"`)

	return r
}

func (r *run) Description() string {
	return "run an interactive session under a chosen memory model"
}

func (r *run) FlagSet() *cli.FlagSet { return r.flags }

func (r *run) Usage(out io.Writer) error {
	_, err := fmt.Fprintln(out, `run -m <SC|TSO|PSO> -p "<path1>, <path2>, ..."

Loads one program per comma-separated path, the path's position becoming its thread_id, and
starts an interactive session under the selected memory model.`)

	return err
}

func (r *run) Run(_ context.Context, _ []string, out io.Writer, logger *log.Logger) int {
	paths := loader.SplitPaths(r.paths)
	if len(paths) == 0 {
		logger.Error("run: no program paths given, use -p")
		return 1
	}

	var driver engine.Driver

	switch strings.ToUpper(r.model) {
	case "SC":
		programs, err := loader.Load(paths, false)
		if err != nil {
			logger.Error("load", "err", err)
			return 1
		}

		driver = engine.NewSC(programs, logger)

	case "TSO":
		programs, err := loader.Load(paths, true)
		if err != nil {
			logger.Error("load", "err", err)
			return 1
		}

		driver = engine.NewWeak(programs, false, logger)

	case "PSO":
		programs, err := loader.Load(paths, true)
		if err != nil {
			logger.Error("load", "err", err)
			return 1
		}

		driver = engine.NewWeak(programs, true, logger)

	default:
		logger.Error("run: unknown memory model", "model", r.model)
		return 1
	}

	session := repl.New(driver, os.Stdin, out, logger)

	return session.Run()
}
