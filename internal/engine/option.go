// Package engine implements the two execution strategies the REPL drives: SCEngine, which steps
// threads directly off their program counters under sequential consistency, and WeakEngine, which
// steps the leaves of a dependency graph under TSO or PSO.
package engine

import (
	"github.com/K-dizzled/isa-interprerter/internal/depgraph"
	"github.com/K-dizzled/isa-interprerter/internal/lang"
)

// Driver is the narrow interface the REPL depends on. It knows nothing about memory models,
// dependency graphs, or program counters — only that a driver can list its admissible next steps,
// apply one, and report its current state as text.
type Driver interface {
	// Options returns the admissible next steps, in a stable order, for the REPL to number and
	// present to the user.
	Options() []Option

	// Apply executes one option returned by a prior call to Options. Passing an Option this
	// Driver did not produce is a programmer error.
	Apply(Option) error

	// Registers renders every thread's register bank for display.
	Registers() string

	// Memory renders main memory's contents for display.
	Memory() string
}

// Option is an opaque admissible next step. The REPL never inspects an Option beyond String() and
// passing it back to Apply; its shape is private to whichever Driver produced it.
type Option struct {
	desc string

	instr   *lang.LabeledInstruction // set by SCEngine
	node    depgraph.NodeID          // set by WeakEngine
	hasNode bool
}

func (o Option) String() string { return o.desc }
