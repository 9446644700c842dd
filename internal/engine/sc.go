package engine

import (
	"fmt"

	"github.com/K-dizzled/isa-interprerter/internal/lang"
	"github.com/K-dizzled/isa-interprerter/internal/log"
	"github.com/K-dizzled/isa-interprerter/internal/memory"
	"github.com/K-dizzled/isa-interprerter/internal/register"
)

// SCEngine drives execution under sequential consistency: every thread's next instruction is
// always an admissible option, and the user chooses the interleaving.
type SCEngine struct {
	programs [][]lang.LabeledInstruction
	pc       []int

	mem *memory.SC
	reg *register.File
	log *log.Logger
}

// NewSC creates a sequentially-consistent driver over one program per thread.
func NewSC(programs [][]lang.LabeledInstruction, logger *log.Logger) *SCEngine {
	return &SCEngine{
		programs: programs,
		pc:       make([]int, len(programs)),
		mem:      memory.NewSC(),
		reg:      register.New(len(programs)),
		log:      logger,
	}
}

var _ Driver = (*SCEngine)(nil)

// Options returns the next pending instruction for every thread that has not yet run off the end
// of its program.
func (e *SCEngine) Options() []Option {
	var opts []Option

	for thread, program := range e.programs {
		if e.pc[thread] >= len(program) {
			continue
		}

		instr := program[e.pc[thread]]
		opts = append(opts, Option{desc: instr.String(), instr: &instr})
	}

	return opts
}

// Apply executes the instruction an Option from Options names, advancing that thread's program
// counter (or jumping, for a taken ConditionalJump).
func (e *SCEngine) Apply(opt Option) error {
	if opt.instr == nil {
		return fmt.Errorf("engine: option %q is not an SC option", opt.desc)
	}

	li := *opt.instr
	thread := li.ThreadID

	e.log.Debug("apply", "thread", thread, "instr", li.String())

	switch instr := li.Instruction.(type) {
	case lang.AssignConst:
		e.reg.Store(regName(instr.Dst), instr.Value, thread)
	case lang.AssignOperation:
		lhs := e.reg.Load(regName(instr.Lhs), thread)
		rhs := e.reg.Load(regName(instr.Rhs), thread)
		e.reg.Store(regName(instr.Dst), instr.Op.Apply(lhs, rhs), thread)
	case lang.Load:
		e.reg.Store(regName(instr.Dst), e.mem.Load(memName(instr.Mem), thread), thread)
	case lang.Store:
		e.mem.Store(memName(instr.Mem), e.reg.Load(regName(instr.Src), thread), thread)
	case lang.Cas:
		e.applyCas(instr, thread)
	case lang.Fai:
		e.applyFai(instr, thread)
	case lang.Fence:
		// No buffering under SC: nothing to order.
	case lang.ConditionalJump:
		if e.reg.Load(regName(instr.Cond), thread) != 0 {
			index, ok := findLabel(e.programs[thread], instr.Label)
			if !ok {
				return &SemanticError{ThreadID: thread, Reason: fmt.Sprintf("label %q not found", instr.Label)}
			}

			e.pc[thread] = index

			return nil
		}
	default:
		return fmt.Errorf("engine: unsupported instruction %T", instr)
	}

	e.pc[thread]++

	return nil
}

func (e *SCEngine) applyCas(instr lang.Cas, thread int) {
	addr := memName(instr.Mem)
	expected := e.reg.Load(regName(instr.Expected), thread)
	desired := e.reg.Load(regName(instr.Desired), thread)
	current := e.mem.Load(addr, thread)

	if current == expected {
		e.mem.Store(addr, desired, thread)
	}

	e.reg.Store(regName(instr.Dst), current, thread)
}

func (e *SCEngine) applyFai(instr lang.Fai, thread int) {
	addr := memName(instr.Mem)
	prior := e.mem.Load(addr, thread)
	incr := e.reg.Load(regName(instr.Incr), thread)

	e.mem.Store(addr, prior+incr, thread)
	e.reg.Store(regName(instr.Dst), prior, thread)
}

// Registers renders every thread's register bank.
func (e *SCEngine) Registers() string { return e.reg.String() }

// Memory renders main memory's contents.
func (e *SCEngine) Memory() string { return e.mem.Main().String() }

func regName(r lang.Reference) string { return r.(lang.RegisterRef).Name }

func memName(r lang.Reference) string { return r.(lang.MemoryRef).Name }

// findLabel returns the index of the instruction in program labeled label.
func findLabel(program []lang.LabeledInstruction, label string) (int, bool) {
	for i, instr := range program {
		if instr.HasLabel && instr.Label == label {
			return i, true
		}
	}

	return 0, false
}
