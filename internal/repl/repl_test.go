package repl_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/K-dizzled/isa-interprerter/internal/engine"
	"github.com/K-dizzled/isa-interprerter/internal/lang"
	"github.com/K-dizzled/isa-interprerter/internal/log"
	. "github.com/K-dizzled/isa-interprerter/internal/repl"
)

func testLogger() *log.Logger { return log.NewFormattedLogger(io.Discard) }

// fakeDriver is a minimal engine.Driver double: it offers exactly one option until applied once,
// after which it offers none (ending the REPL loop cleanly).
type fakeDriver struct {
	applied  bool
	applyErr error
	regs     string
	mem      string
}

func (d *fakeDriver) Options() []engine.Option {
	if d.applied {
		return nil
	}

	return []engine.Option{{}}
}

func (d *fakeDriver) Apply(engine.Option) error {
	d.applied = true
	return d.applyErr
}

func (d *fakeDriver) Registers() string { return d.regs }
func (d *fakeDriver) Memory() string    { return d.mem }

func TestExitCommand(tt *testing.T) {
	d := &fakeDriver{}
	var out strings.Builder

	code := New(d, strings.NewReader("exit\n"), &out, testLogger()).Run()

	if code != 0 {
		tt.Fatalf("Run() = %d, want 0", code)
	}

	if d.applied {
		tt.Fatalf("driver.Apply called, want exit to skip option application")
	}
}

func TestNumericSelectionAppliesOption(tt *testing.T) {
	d := &fakeDriver{}
	var out strings.Builder

	code := New(d, strings.NewReader("0\n"), &out, testLogger()).Run()

	if code != 0 {
		tt.Fatalf("Run() = %d, want 0", code)
	}

	if !d.applied {
		tt.Fatalf("driver.Apply not called for numeric input \"0\"")
	}

	if !strings.Contains(out.String(), "no executable instructions remain") {
		tt.Fatalf("Run() output = %q, want a message once options are exhausted", out.String())
	}
}

func TestInvalidIndexRePrompts(tt *testing.T) {
	d := &fakeDriver{}
	var out strings.Builder

	code := New(d, strings.NewReader("nope\nexit\n"), &out, testLogger()).Run()

	if code != 0 {
		tt.Fatalf("Run() = %d, want 0", code)
	}

	if d.applied {
		tt.Fatalf("driver.Apply called on invalid input, want it skipped")
	}

	if !strings.Contains(out.String(), "invalid option") {
		tt.Fatalf("Run() output = %q, want an invalid-option message", out.String())
	}
}

func TestOutOfRangeIndexRePrompts(tt *testing.T) {
	d := &fakeDriver{}
	var out strings.Builder

	code := New(d, strings.NewReader("7\nexit\n"), &out, testLogger()).Run()

	if code != 0 {
		tt.Fatalf("Run() = %d, want 0", code)
	}

	if d.applied {
		tt.Fatalf("driver.Apply called on out-of-range index, want it skipped")
	}
}

func TestRegistersCommand(tt *testing.T) {
	d := &fakeDriver{regs: "x: 5\n"}
	var out strings.Builder

	New(d, strings.NewReader("registers\nexit\n"), &out, testLogger()).Run()

	if !strings.Contains(out.String(), "x: 5\n") {
		tt.Fatalf("Run() output = %q, want registers dump", out.String())
	}
}

func TestMemoryCommand(tt *testing.T) {
	d := &fakeDriver{mem: "a: 1\n"}
	var out strings.Builder

	New(d, strings.NewReader("memory\nexit\n"), &out, testLogger()).Run()

	if !strings.Contains(out.String(), "a: 1\n") {
		tt.Fatalf("Run() output = %q, want memory dump", out.String())
	}
}

func TestGraphNotAvailableUnderSC(tt *testing.T) {
	d := &fakeDriver{}
	var out strings.Builder

	New(d, strings.NewReader("graph out.dot\nexit\n"), &out, testLogger()).Run()

	if !strings.Contains(out.String(), "not available under SC") {
		tt.Fatalf("Run() output = %q, want a not-available message", out.String())
	}
}

func TestGraphExportWritesDotFile(tt *testing.T) {
	li := func(thread, line int, instr lang.Instruction) lang.LabeledInstruction {
		return lang.LabeledInstruction{Instruction: instr, LineIndex: line, ThreadID: thread}
	}
	reg := func(name string) lang.Reference { return lang.RegisterRef{Name: name} }

	program := []lang.LabeledInstruction{li(0, 0, lang.AssignConst{Dst: reg("x"), Value: 1})}
	e := engine.NewWeak([][]lang.LabeledInstruction{program}, false, testLogger())

	path := filepath.Join(tt.TempDir(), "out.dot")
	var out strings.Builder

	code := New(e, strings.NewReader("graph "+path+"\nexit\n"), &out, testLogger()).Run()
	if code != 0 {
		tt.Fatalf("Run() = %d, want 0", code)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		tt.Fatalf("ReadFile(%s): %s", path, err)
	}

	if !strings.Contains(string(contents), "digraph") {
		tt.Fatalf("exported graph = %q, want a DOT digraph", contents)
	}
}

func TestFatalApplyErrorEndsRunWithNonZeroExit(tt *testing.T) {
	d := &fakeDriver{applyErr: errors.New("boom")}
	var out strings.Builder

	code := New(d, strings.NewReader("0\n"), &out, testLogger()).Run()

	if code != 1 {
		tt.Fatalf("Run() = %d, want 1 on fatal driver error", code)
	}
}

func TestNoOptionsEndsRunImmediately(tt *testing.T) {
	d := &fakeDriver{applied: true} // Options() returns nil from the first tick
	var out strings.Builder

	code := New(d, strings.NewReader(""), &out, testLogger()).Run()

	if code != 0 {
		tt.Fatalf("Run() = %d, want 0", code)
	}

	if !strings.Contains(out.String(), "no executable instructions remain") {
		tt.Fatalf("Run() output = %q, want the exhausted-options message", out.String())
	}
}
