package engine

import (
	"fmt"

	"github.com/K-dizzled/isa-interprerter/internal/depgraph"
	"github.com/K-dizzled/isa-interprerter/internal/dotgraph"
	"github.com/K-dizzled/isa-interprerter/internal/lang"
	"github.com/K-dizzled/isa-interprerter/internal/log"
	"github.com/K-dizzled/isa-interprerter/internal/memory"
	"github.com/K-dizzled/isa-interprerter/internal/register"
)

// GraphExporter is implemented by drivers that can render their dependency graph as DOT text, for
// the REPL's "graph <path>" command.
type GraphExporter interface {
	ExportDOT() string
}

// WeakEngine drives execution under TSO or PSO: admissible next steps are exactly the dependency
// graph's leaves, which may be either pending instructions or pending store-buffer propagations.
type WeakEngine struct {
	graph *depgraph.Graph

	mem *memory.Weak
	reg *register.File
	log *log.Logger
}

// NewWeak builds a dependency graph over programs and returns a driver for it. pso selects PSO's
// per-location propagation ordering over TSO's per-thread FIFO ordering.
func NewWeak(programs [][]lang.LabeledInstruction, pso bool, logger *log.Logger) *WeakEngine {
	graph := depgraph.New(pso)

	for _, program := range programs {
		for _, instr := range program {
			graph.AddInstruction(instr)
		}
	}

	graph.Build()

	return &WeakEngine{
		graph: graph,
		mem:   memory.NewWeak(),
		reg:   register.New(len(programs)),
		log:   logger,
	}
}

var (
	_ Driver        = (*WeakEngine)(nil)
	_ GraphExporter = (*WeakEngine)(nil)
)

// ExportDOT renders the current dependency graph as DOT text.
func (e *WeakEngine) ExportDOT() string { return dotgraph.Render(e.graph) }

// Options returns the graph's current leaves.
func (e *WeakEngine) Options() []Option {
	leaves := e.graph.Leaves()
	opts := make([]Option, len(leaves))

	for i, id := range leaves {
		opts[i] = Option{desc: e.graph.Describe(id), node: id, hasNode: true}
	}

	return opts
}

// Apply fires the node an Option from Options names: a propagate node drains its thread's store
// buffer, and an instruction node executes its instruction's semantics, buffering any write it
// produces rather than applying it to main memory directly.
func (e *WeakEngine) Apply(opt Option) error {
	if !opt.hasNode {
		return fmt.Errorf("engine: option %q is not a weak-memory option", opt.desc)
	}

	kind, ok := e.graph.Kind(opt.node)
	if !ok {
		return fmt.Errorf("engine: node %v is no longer present", opt.node)
	}

	if kind == depgraph.PropagateKind {
		_, _, _ = e.graph.PropagateWrite(opt.node)
		thread, _ := e.graph.ThreadID(opt.node)

		e.log.Debug("propagate", "thread", thread)
		e.mem.Propagate(thread)

		_, err := e.graph.Remove(opt.node, nil, nil)

		return err
	}

	li, _ := e.graph.Instruction(opt.node)
	thread := li.ThreadID

	e.log.Debug("apply", "thread", thread, "instr", li.String())

	var (
		write    *lang.LabeledInstruction
		location lang.Reference
	)

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
		write, location = &li, instr.Mem
	case lang.Cas:
		if produced := e.applyCas(instr, thread); produced {
			write, location = &li, instr.Mem
		}
	case lang.Fai:
		e.applyFai(instr, thread)
		write, location = &li, instr.Mem
	case lang.Fence:
		// No data effect: Build already wired its ordering edges.
	case lang.ConditionalJump:
		return &SemanticError{ThreadID: thread, Reason: "ConditionalJump is not supported under TSO/PSO"}
	default:
		return fmt.Errorf("engine: unsupported instruction %T", instr)
	}

	_, err := e.graph.Remove(opt.node, write, location)

	return err
}

// applyCas performs the compare-and-swap and reports whether it produced a buffered write.
func (e *WeakEngine) applyCas(instr lang.Cas, thread int) bool {
	addr := memName(instr.Mem)
	expected := e.reg.Load(regName(instr.Expected), thread)
	desired := e.reg.Load(regName(instr.Desired), thread)
	current := e.mem.Load(addr, thread)

	e.reg.Store(regName(instr.Dst), current, thread)

	if current != expected {
		return false
	}

	e.mem.Store(addr, desired, thread)

	return true
}

func (e *WeakEngine) applyFai(instr lang.Fai, thread int) {
	addr := memName(instr.Mem)
	prior := e.mem.Load(addr, thread)
	incr := e.reg.Load(regName(instr.Incr), thread)

	e.mem.Store(addr, prior+incr, thread)
	e.reg.Store(regName(instr.Dst), prior, thread)
}

// Registers renders every thread's register bank.
func (e *WeakEngine) Registers() string { return e.reg.String() }

// Memory renders main memory's contents. Buffered, unpropagated writes are not reflected until
// they drain.
func (e *WeakEngine) Memory() string { return e.mem.Main().String() }
