package lang

import (
	"fmt"
	"strconv"
)

// Instruction is a closed sum of the instruction shapes recognized by the parser. Callers
// exhaustively type-switch rather than add new cases by embedding.
type Instruction interface {
	isInstruction()
	String() string
}

// AssignConst loads an immediate value into a register: "<reg> = <number>".
type AssignConst struct {
	Dst   Reference
	Value uint64
}

func (AssignConst) isInstruction() {}

func (i AssignConst) String() string {
	return fmt.Sprintf("%s := %d", i.Dst, i.Value)
}

// AssignOperation computes a binary arithmetic operation over two registers: "<reg> = <reg> <op>
// <reg>".
type AssignOperation struct {
	Dst Reference
	Lhs Reference
	Op  ArithOp
	Rhs Reference
}

func (AssignOperation) isInstruction() {}

func (i AssignOperation) String() string {
	return fmt.Sprintf("%s := %s %s %s", i.Dst, i.Lhs, i.Op.Token(), i.Rhs)
}

// ConditionalJump transfers control to a label when a register is non-zero: "if <reg> goto
// <label>".
type ConditionalJump struct {
	Cond  Reference
	Label string
}

func (ConditionalJump) isInstruction() {}

func (i ConditionalJump) String() string {
	return fmt.Sprintf("if %s goto %s", i.Cond, i.Label)
}

// Load reads a memory location into a register: "load <mode> #<mem> <reg>".
type Load struct {
	Mode AccessMode
	Mem  Reference
	Dst  Reference
}

func (Load) isInstruction() {}

func (i Load) String() string {
	return fmt.Sprintf("%s := load %s %s", i.Dst, i.Mode, i.Mem)
}

// Store writes a register's value to a memory location: "store <mode> <reg> #<mem>".
type Store struct {
	Mode AccessMode
	Src  Reference
	Mem  Reference
}

func (Store) isInstruction() {}

func (i Store) String() string {
	return fmt.Sprintf("store %s %s %s", i.Mode, i.Mem, i.Src)
}

// Cas is a compare-and-swap: "<reg> := cas <mode> #<mem> <reg_expected> <reg_desired>". The
// observed prior value is always written to Dst, whether or not the swap took effect.
type Cas struct {
	Dst      Reference
	Mode     AccessMode
	Mem      Reference
	Expected Reference
	Desired  Reference
}

func (Cas) isInstruction() {}

func (i Cas) String() string {
	return fmt.Sprintf("%s := cas %s %s %s %s", i.Dst, i.Mode, i.Mem, i.Expected, i.Desired)
}

// Fai is a fetch-and-add: "<reg> := fai <mode> #<mem> <reg_incr>". The prior value is written to
// Dst; the memory location is updated to prior+incr.
type Fai struct {
	Dst  Reference
	Mode AccessMode
	Mem  Reference
	Incr Reference
}

func (Fai) isInstruction() {}

func (i Fai) String() string {
	return fmt.Sprintf("%s := fai %s %s %s", i.Dst, i.Mode, i.Mem, i.Incr)
}

// Fence is a memory fence of the given mode: "fence <mode>". It has no data effect; it only
// constrains the dependency graph.
type Fence struct {
	Mode AccessMode
}

func (Fence) isInstruction() {}

func (i Fence) String() string {
	return fmt.Sprintf("fence %s", i.Mode)
}

// EffectiveMode computes the effective access mode used to build dependency-graph edges: SEQ_CST
// accesses are downgraded to the strongest mode implied by their operation, and non-memory
// instructions are always RLX (no ordering).
func EffectiveMode(instr Instruction) AccessMode {
	var shown AccessMode

	switch instr := instr.(type) {
	case Load:
		shown = instr.Mode
		if shown == SEQ_CST {
			return ACQ
		}
	case Store:
		shown = instr.Mode
		if shown == SEQ_CST {
			return REL
		}
	case Cas:
		shown = instr.Mode
		if shown == SEQ_CST {
			return REL_ACQ
		}
	case Fai:
		shown = instr.Mode
		if shown == SEQ_CST {
			return REL_ACQ
		}
	case Fence:
		shown = instr.Mode
		if shown == SEQ_CST {
			return REL_ACQ
		}
	default:
		return RLX
	}

	return shown
}

// IsMemoryAccess reports whether instr is a Load or Store.
func IsMemoryAccess(instr Instruction) bool {
	switch instr.(type) {
	case Load, Store:
		return true
	default:
		return false
	}
}

// InstrID uniquely identifies a LabeledInstruction by its thread and position within that
// thread's program.
type InstrID struct {
	ThreadID  int
	LineIndex int
}

func (id InstrID) String() string {
	return "T" + strconv.Itoa(id.ThreadID) + "L" + strconv.Itoa(id.LineIndex)
}

// LabeledInstruction is an instruction together with its optional label and its position in the
// program.
type LabeledInstruction struct {
	Label       string // Empty if unlabeled.
	HasLabel    bool
	Instruction Instruction
	LineIndex   int
	ThreadID    int
}

// ID returns the (thread_id, line_index) pair that uniquely identifies this instruction.
func (li LabeledInstruction) ID() InstrID {
	return InstrID{ThreadID: li.ThreadID, LineIndex: li.LineIndex}
}

func (li LabeledInstruction) String() string {
	label := ""
	if li.HasLabel {
		label = li.Label + ": "
	}

	return fmt.Sprintf("Thread %d, line %d: %s%s", li.ThreadID, li.LineIndex, label, li.Instruction)
}

// WriteOperation is a buffered write awaiting propagation to main memory.
type WriteOperation struct {
	Addr  string
	Value uint64
}
