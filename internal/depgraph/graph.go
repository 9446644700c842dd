package depgraph

import (
	"fmt"

	"github.com/K-dizzled/isa-interprerter/internal/lang"
)

// Graph is the arena of instruction and propagate nodes for one execution. It is built once from
// every thread's loaded program (AddInstruction followed by Build), after which nodes are
// removed one at a time as the driver executes them, spawning propagate nodes for buffered writes
// as it goes.
type Graph struct {
	nodes []*node // indexed by NodeID; nil once removed
	pso   bool    // true for PSO, false for TSO/SC ordering rules
}

// New creates an empty Graph. pso selects the stricter same-thread propagation ordering used by
// TSO (false) versus the per-location ordering used by PSO (true); it has no effect once the
// graph is built under SC, which never buffers writes and so never gains propagate nodes.
func New(pso bool) *Graph {
	return &Graph{pso: pso}
}

// AddInstruction appends an instruction node and returns its stable ID. Call Build once every
// instruction for every thread has been added.
func (g *Graph) AddInstruction(instr lang.LabeledInstruction) NodeID {
	id := NodeID(len(g.nodes))
	g.nodes = append(g.nodes, &node{id: id, kind: InstructionKind, instr: instr})

	return id
}

func (g *Graph) get(id NodeID) *node {
	if int(id) < 0 || int(id) >= len(g.nodes) {
		return nil
	}

	return g.nodes[id]
}

// addDependency records that from must fire before to, unless that edge already exists.
func (g *Graph) addDependency(from, to NodeID) {
	f, t := g.get(from), g.get(to)
	if f == nil || t == nil || from == to || hasDependency(f, to) {
		return
	}

	f.dependsOn = append(f.dependsOn, to)
	t.dependedOnBy = append(t.dependedOnBy, from)
}

// Build computes the program-order dependency edges for every instruction node currently in the
// graph, per the effective-access-mode table: a release access orders every later same-thread
// instruction after it, an acquire access orders it after every earlier same-thread instruction,
// and release-acquire does both. Relaxed accesses and non-memory instructions impose no edges of
// their own. Build must run exactly once, after all instructions have been added and before any
// node is removed.
func (g *Graph) Build() {
	for _, n := range g.nodes {
		if n.kind != InstructionKind {
			continue
		}

		switch lang.EffectiveMode(n.instr.Instruction) {
		case lang.REL:
			g.addReleaseDeps(n)
		case lang.ACQ:
			g.addAcquireDeps(n)
		case lang.REL_ACQ:
			g.addReleaseDeps(n)
			g.addAcquireDeps(n)
		}
	}
}

// addReleaseDeps orders every later same-thread instruction after n: for each such M, M depends
// on n.
func (g *Graph) addReleaseDeps(n *node) {
	for _, m := range g.nodes {
		if m == nil || m.kind != InstructionKind || m.id == n.id {
			continue
		}

		if m.instr.ThreadID == n.instr.ThreadID && m.instr.LineIndex > n.instr.LineIndex {
			g.addDependency(m.id, n.id)
		}
	}
}

// addAcquireDeps orders n after every earlier same-thread instruction: n depends on each such M.
func (g *Graph) addAcquireDeps(n *node) {
	for _, m := range g.nodes {
		if m == nil || m.kind != InstructionKind || m.id == n.id {
			continue
		}

		if m.instr.ThreadID == n.instr.ThreadID && m.instr.LineIndex < n.instr.LineIndex {
			g.addDependency(n.id, m.id)
		}
	}
}

// Leaves returns the IDs of every present node with no outstanding dependencies, i.e. every node
// that may legally fire next, in ascending ID order.
func (g *Graph) Leaves() []NodeID {
	var leaves []NodeID

	for _, n := range g.nodes {
		if n != nil && len(n.dependsOn) == 0 {
			leaves = append(leaves, n.id)
		}
	}

	return leaves
}

// Kind reports whether id names an instruction or a propagate node.
func (g *Graph) Kind(id NodeID) (Kind, bool) {
	n := g.get(id)
	if n == nil {
		return 0, false
	}

	return n.kind, true
}

// Instruction returns the labeled instruction wrapped by an instruction node.
func (g *Graph) Instruction(id NodeID) (lang.LabeledInstruction, bool) {
	n := g.get(id)
	if n == nil || n.kind != InstructionKind {
		return lang.LabeledInstruction{}, false
	}

	return n.instr, true
}

// PropagateWrite returns the write a propagate node will drain, and the memory location it
// targets.
func (g *Graph) PropagateWrite(id NodeID) (lang.LabeledInstruction, lang.Reference, bool) {
	n := g.get(id)
	if n == nil || n.kind != PropagateKind {
		return lang.LabeledInstruction{}, nil, false
	}

	return n.prop.write, n.prop.location, true
}

// ThreadID reports the owning thread of any present node.
func (g *Graph) ThreadID(id NodeID) (int, bool) {
	n := g.get(id)
	if n == nil {
		return 0, false
	}

	return n.threadID(), true
}

// Describe renders a present node for the REPL's numbered option list.
func (g *Graph) Describe(id NodeID) string {
	n := g.get(id)
	if n == nil {
		return ""
	}

	return n.String()
}

// DotID renders the DOT-graph node identifier for a present node.
func (g *Graph) DotID(id NodeID) string {
	n := g.get(id)
	if n == nil {
		return ""
	}

	return n.dotID()
}

// DependsOn returns a copy of a present node's outstanding dependencies.
func (g *Graph) DependsOn(id NodeID) []NodeID {
	n := g.get(id)
	if n == nil {
		return nil
	}

	out := make([]NodeID, len(n.dependsOn))
	copy(out, n.dependsOn)

	return out
}

// Nodes returns the IDs of every node still present in the graph, in insertion order.
func (g *Graph) Nodes() []NodeID {
	var ids []NodeID

	for _, n := range g.nodes {
		if n != nil {
			ids = append(ids, n.id)
		}
	}

	return ids
}

// ErrHasDependencies is returned by Remove when asked to remove a node that is not a leaf.
type ErrHasDependencies struct{ ID NodeID }

func (e *ErrHasDependencies) Error() string {
	return fmt.Sprintf("depgraph: node %d still has outstanding dependencies", e.ID)
}

// Remove fires a leaf node, deleting it from the graph and clearing it from every node that
// depended on it. If write and location are non-nil, a propagate node is spawned for the buffered
// write the fired node produced; its ID is returned. Remove fails if id is not a leaf.
func (g *Graph) Remove(id NodeID, write *lang.LabeledInstruction, location lang.Reference) (NodeID, error) {
	n := g.get(id)
	if n == nil {
		return 0, fmt.Errorf("depgraph: no such node %d", id)
	}

	if len(n.dependsOn) != 0 {
		return 0, &ErrHasDependencies{ID: id}
	}

	for _, dep := range n.dependedOnBy {
		if d := g.get(dep); d != nil {
			d.dependsOn = removeID(d.dependsOn, id)
		}
	}

	g.nodes[id] = nil

	if write == nil {
		return -1, nil
	}

	return g.addPropagate(*write, location), nil
}

// addPropagate creates a propagate node for a buffered write: every still-present fence on the
// write's thread must wait for it to fire, and it must wait for every other still-pending
// propagate on the write's thread (TSO), or for every other still-pending propagate on the
// write's thread targeting the same location (PSO).
func (g *Graph) addPropagate(write lang.LabeledInstruction, location lang.Reference) NodeID {
	id := NodeID(len(g.nodes))
	p := &node{id: id, kind: PropagateKind, prop: propagate{write: write, location: location}}
	g.nodes = append(g.nodes, p)

	for _, m := range g.nodes[:id] {
		if m == nil {
			continue
		}

		if m.kind == InstructionKind {
			if _, ok := m.instr.Instruction.(lang.Fence); ok && m.instr.ThreadID == write.ThreadID {
				g.addDependency(m.id, id)
			}

			continue
		}

		if m.kind == PropagateKind && m.prop.write.ThreadID == write.ThreadID && m.prop.write.LineIndex != write.LineIndex {
			if !g.pso || lang.RefEqual(m.prop.location, location) {
				g.addDependency(id, m.id)
			}
		}
	}

	return id
}
