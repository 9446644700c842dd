package depgraph

import (
	"testing"

	"github.com/K-dizzled/isa-interprerter/internal/lang"
)

func li(thread, line int, instr lang.Instruction) lang.LabeledInstruction {
	return lang.LabeledInstruction{Instruction: instr, LineIndex: line, ThreadID: thread}
}

func mem(name string) lang.Reference { return lang.MemoryRef{Name: name} }
func reg(name string) lang.Reference { return lang.RegisterRef{Name: name} }

func TestLeaves(tt *testing.T) {
	tt.Run("no edges means every node is a leaf", func(tt *testing.T) {
		g := New(false)

		a := g.AddInstruction(li(0, 0, lang.AssignConst{Dst: reg("x"), Value: 1}))
		b := g.AddInstruction(li(0, 1, lang.AssignConst{Dst: reg("y"), Value: 2}))
		g.Build()

		leaves := g.Leaves()
		if len(leaves) != 2 || leaves[0] != a || leaves[1] != b {
			tt.Fatalf("leaves = %v, want [%d %d]", leaves, a, b)
		}
	})

	tt.Run("release blocks later same-thread instructions", func(tt *testing.T) {
		g := New(false)

		store := g.AddInstruction(li(0, 0, lang.Store{Mode: lang.REL, Src: reg("x"), Mem: mem("a")}))
		later := g.AddInstruction(li(0, 1, lang.AssignConst{Dst: reg("y"), Value: 2}))
		g.Build()

		leaves := g.Leaves()
		if len(leaves) != 1 || leaves[0] != store {
			tt.Fatalf("leaves = %v, want [%d]", leaves, store)
		}

		if deps := g.DependsOn(later); len(deps) != 1 || deps[0] != store {
			tt.Fatalf("later.dependsOn = %v, want [%d]", deps, store)
		}
	})

	tt.Run("acquire blocks on earlier same-thread instructions", func(tt *testing.T) {
		g := New(false)

		earlier := g.AddInstruction(li(0, 0, lang.AssignConst{Dst: reg("y"), Value: 2}))
		load := g.AddInstruction(li(0, 1, lang.Load{Mode: lang.ACQ, Mem: mem("a"), Dst: reg("x")}))
		g.Build()

		leaves := g.Leaves()
		if len(leaves) != 1 || leaves[0] != earlier {
			tt.Fatalf("leaves = %v, want [%d]", leaves, earlier)
		}

		if deps := g.DependsOn(load); len(deps) != 1 || deps[0] != earlier {
			tt.Fatalf("load.dependsOn = %v, want [%d]", deps, earlier)
		}
	})

	tt.Run("different threads never gain edges", func(tt *testing.T) {
		g := New(false)

		a := g.AddInstruction(li(0, 0, lang.Store{Mode: lang.SEQ_CST, Src: reg("x"), Mem: mem("a")}))
		b := g.AddInstruction(li(1, 0, lang.Load{Mode: lang.SEQ_CST, Mem: mem("a"), Dst: reg("y")}))
		g.Build()

		leaves := g.Leaves()
		if len(leaves) != 2 {
			tt.Fatalf("leaves = %v, want both %d and %d", leaves, a, b)
		}
	})
}

func TestRemoveRequiresLeaf(tt *testing.T) {
	g := New(false)

	store := g.AddInstruction(li(0, 0, lang.Store{Mode: lang.REL, Src: reg("x"), Mem: mem("a")}))
	later := g.AddInstruction(li(0, 1, lang.AssignConst{Dst: reg("y"), Value: 2}))
	g.Build()

	if _, err := g.Remove(later, nil, nil); err == nil {
		tt.Fatalf("Remove(later): want error, got nil")
	}

	if _, err := g.Remove(store, nil, nil); err != nil {
		tt.Fatalf("Remove(store): %v", err)
	}

	leaves := g.Leaves()
	if len(leaves) != 1 || leaves[0] != later {
		tt.Fatalf("leaves after removing store = %v, want [%d]", leaves, later)
	}
}

func TestPropagateOrderingTSO(tt *testing.T) {
	g := New(false)

	w1 := li(0, 0, lang.Store{Mode: lang.RLX, Src: reg("x"), Mem: mem("a")})
	w2 := li(0, 1, lang.Store{Mode: lang.RLX, Src: reg("y"), Mem: mem("b")})

	n1 := g.AddInstruction(w1)
	n2 := g.AddInstruction(w2)
	g.Build()

	p1, err := g.Remove(n1, &w1, mem("a"))
	if err != nil {
		tt.Fatalf("Remove(n1): %v", err)
	}

	if _, err := g.Remove(n2, &w2, mem("b")); err != nil {
		tt.Fatalf("Remove(n2): %v", err)
	}

	// Under TSO, propagates from the same thread drain FIFO regardless of address: the second
	// propagate must depend on the first even though they target different locations.
	leaves := g.Leaves()
	if len(leaves) != 1 || leaves[0] != p1 {
		tt.Fatalf("leaves = %v, want only the first propagate [%d]", leaves, p1)
	}
}

func TestPropagateOrderingPSO(tt *testing.T) {
	g := New(true)

	w1 := li(0, 0, lang.Store{Mode: lang.RLX, Src: reg("x"), Mem: mem("a")})
	w2 := li(0, 1, lang.Store{Mode: lang.RLX, Src: reg("y"), Mem: mem("b")})

	n1 := g.AddInstruction(w1)
	n2 := g.AddInstruction(w2)
	g.Build()

	p1, err := g.Remove(n1, &w1, mem("a"))
	if err != nil {
		tt.Fatalf("Remove(n1): %v", err)
	}

	p2, err := g.Remove(n2, &w2, mem("b"))
	if err != nil {
		tt.Fatalf("Remove(n2): %v", err)
	}

	// Under PSO, propagates to different locations are independent: both should be leaves.
	leaves := g.Leaves()
	if len(leaves) != 2 {
		tt.Fatalf("leaves = %v, want both %d and %d", leaves, p1, p2)
	}
}

func TestFenceOrdersPropagate(tt *testing.T) {
	g := New(false)

	w := li(0, 0, lang.Store{Mode: lang.RLX, Src: reg("x"), Mem: mem("a")})
	nWrite := g.AddInstruction(w)
	nFence := g.AddInstruction(li(0, 1, lang.Fence{Mode: lang.SEQ_CST}))
	g.Build()

	// A SEQ_CST fence acquires on every earlier same-thread instruction, so it depends on the
	// write until the write fires; once the write is buffered, the fence depends on its propagate.
	if _, err := g.Remove(nWrite, &w, mem("a")); err != nil {
		tt.Fatalf("Remove(nWrite): %v", err)
	}

	leaves := g.Leaves()
	foundFence, foundProp := false, false

	for _, id := range leaves {
		if id == nFence {
			foundFence = true
		}

		if k, _ := g.Kind(id); k == PropagateKind {
			foundProp = true
		}
	}

	if foundFence {
		tt.Fatalf("leaves = %v, want fence node %d blocked until the propagate drains", leaves, nFence)
	}

	if !foundProp {
		tt.Fatalf("leaves = %v, want the propagate node present", leaves)
	}
}

func TestNoDuplicateEdges(tt *testing.T) {
	g := New(false)

	a := g.AddInstruction(li(0, 0, lang.Store{Mode: lang.SEQ_CST, Src: reg("x"), Mem: mem("a")}))
	b := g.AddInstruction(li(0, 1, lang.Load{Mode: lang.SEQ_CST, Mem: mem("b"), Dst: reg("y")}))
	g.Build()

	// a's release pass and b's acquire pass both add the edge b -> a; it must be stored once.
	if deps := g.DependsOn(b); len(deps) != 1 || deps[0] != a {
		tt.Fatalf("b.dependsOn = %v, want exactly one edge to %d", deps, a)
	}
}
