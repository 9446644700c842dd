// Package repl implements the interactive prompt loop: each tick it lists a Driver's admissible
// options, reads a line of input, and either executes an option or runs a REPL-level command
// (exit, registers, memory, graph).
package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/K-dizzled/isa-interprerter/internal/engine"
	"github.com/K-dizzled/isa-interprerter/internal/log"
	"golang.org/x/term"
)

// ErrUserInput is the sentinel wrapped by errors reporting an unparseable line or an out-of-range
// option index. It is recoverable: the REPL logs it and re-prompts.
var ErrUserInput = errors.New("repl: invalid input")

// REPL drives a Driver from a reader/writer pair. Streams are injectable so a session can be
// driven from a test without a real terminal.
type REPL struct {
	driver engine.Driver
	in     *bufio.Scanner
	out    io.Writer
	log    *log.Logger

	prompt bool
	width  int
}

// New creates a REPL over driver, reading lines from in and writing output to out. If in is
// os.Stdin and it is attached to a terminal, the REPL prints a "> " prompt before each read and
// sizes its separator rule to the terminal width.
func New(driver engine.Driver, in io.Reader, out io.Writer, logger *log.Logger) *REPL {
	r := &REPL{
		driver: driver,
		in:     bufio.NewScanner(in),
		out:    out,
		log:    logger,
		width:  80,
	}

	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		r.prompt = true

		if w, ok := terminalWidth(int(f.Fd())); ok {
			r.width = w
		}
	}

	return r
}

// Run executes ticks until the user exits or a fatal error occurs. It returns the process exit
// code: 0 on clean termination, non-zero on a fatal error from the driver.
func (r *REPL) Run() int {
	for {
		opts := r.driver.Options()
		if len(opts) == 0 {
			fmt.Fprintln(r.out, "no executable instructions remain")
			return 0
		}

		r.printOptions(opts)
		r.printPrompt()

		if !r.in.Scan() {
			return 0
		}

		line := strings.TrimSpace(r.in.Text())

		exit, code, err := r.dispatch(line, opts)
		if err != nil {
			r.log.Error("fatal", "err", err)
			return 1
		}

		if exit {
			return code
		}
	}
}

func (r *REPL) printOptions(opts []engine.Option) {
	fmt.Fprintln(r.out, strings.Repeat("-", r.width))

	for i, opt := range opts {
		fmt.Fprintf(r.out, "%d: %s\n", i, opt)
	}
}

func (r *REPL) printPrompt() {
	if r.prompt {
		fmt.Fprint(r.out, "> ")
	}
}

// dispatch handles one input line: either a REPL command or a numeric option index. exit reports
// whether the session should end, code is the exit code to use in that case, and err is non-nil
// only for a fatal error from the driver (not a recoverable user-input mistake).
func (r *REPL) dispatch(line string, opts []engine.Option) (exit bool, code int, err error) {
	switch {
	case line == "exit":
		return true, 0, nil

	case line == "registers" || line == "memory":
		r.printState(line)
		return false, 0, nil

	case strings.HasPrefix(line, "graph "):
		r.exportGraph(strings.TrimSpace(strings.TrimPrefix(line, "graph ")))
		return false, 0, nil

	default:
		return r.applyIndex(line, opts)
	}
}

func (r *REPL) printState(which string) {
	if which == "registers" {
		fmt.Fprint(r.out, r.driver.Registers())
		return
	}

	fmt.Fprint(r.out, r.driver.Memory())
}

func (r *REPL) exportGraph(path string) {
	exporter, ok := r.driver.(engine.GraphExporter)
	if !ok {
		fmt.Fprintln(r.out, "graph: not available under SC")
		return
	}

	if err := os.WriteFile(path, []byte(exporter.ExportDOT()), 0o644); err != nil {
		fmt.Fprintf(r.out, "graph: %s\n", err)
	}
}

func (r *REPL) applyIndex(line string, opts []engine.Option) (exit bool, code int, err error) {
	index, convErr := strconv.Atoi(line)
	if convErr != nil || index < 0 || index >= len(opts) {
		r.log.Error("invalid input", "err", fmt.Errorf("%w: %q", ErrUserInput, line))
		fmt.Fprintf(r.out, "invalid option: %q\n", line)

		return false, 0, nil
	}

	if applyErr := r.driver.Apply(opts[index]); applyErr != nil {
		return true, 1, applyErr
	}

	return false, 0, nil
}
