// Package depgraph implements the dependency graph that realizes TSO/PSO ordering: a DAG of
// pending instruction and propagation nodes whose leaves are exactly the admissible next steps.
// It is the one package in this module built entirely on the standard library — no graph or DAG
// library appears anywhere in the corpus this module was grounded on (see DESIGN.md).
package depgraph

import (
	"fmt"

	"github.com/K-dizzled/isa-interprerter/internal/lang"
)

// NodeID is a stable index into a Graph's node arena. IDs are never reused: once assigned, an ID
// identifies the same logical node (even after it is removed) for the lifetime of the Graph.
type NodeID int

// Kind distinguishes the two node shapes a Graph holds.
type Kind int

const (
	// InstructionKind nodes wrap a LabeledInstruction awaiting execution.
	InstructionKind Kind = iota
	// PropagateKind nodes wrap a pending store-buffer drain.
	PropagateKind
)

// propagate carries the write a Propagate node will drain, and the location it targets.
type propagate struct {
	write    lang.LabeledInstruction
	location lang.Reference
}

// node is an arena entry. It is never moved; callers address it by NodeID. A nil *node at a given
// index means that node has been removed: nodes are destroyed exactly when executed.
type node struct {
	id   NodeID
	kind Kind

	instr lang.LabeledInstruction // valid when kind == InstructionKind
	prop  propagate               // valid when kind == PropagateKind

	dependsOn    []NodeID // must fire before this node may fire
	dependedOnBy []NodeID // inverse of dependsOn
}

func (n *node) threadID() int {
	if n.kind == InstructionKind {
		return n.instr.ThreadID
	}

	return n.prop.write.ThreadID
}

// dotID renders the node identifier used in DOT output: "T<id>Xinstr<line>" or "T<id>Xprop<line>".
func (n *node) dotID() string {
	if n.kind == InstructionKind {
		return fmt.Sprintf("T%dXinstr%d", n.instr.ThreadID, n.instr.LineIndex)
	}

	return fmt.Sprintf("T%dXprop%d", n.prop.write.ThreadID, n.prop.write.LineIndex)
}

func (n *node) String() string {
	if n.kind == InstructionKind {
		return n.instr.String()
	}

	return fmt.Sprintf("Propagate for write (%s)", n.prop.write)
}

// hasDependency reports whether to is already present in from's depends-on list: edges are never
// duplicated.
func hasDependency(from *node, to NodeID) bool {
	for _, id := range from.dependsOn {
		if id == to {
			return true
		}
	}

	return false
}

func removeID(ids []NodeID, target NodeID) []NodeID {
	out := ids[:0]

	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}

	return out
}
