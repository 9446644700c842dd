package memory_test

import (
	"testing"

	. "github.com/K-dizzled/isa-interprerter/internal/memory"
)

func TestSCStoreLoad(tt *testing.T) {
	m := NewSC()

	m.Store("a", 42, 0)

	if got := m.Load("a", 0); got != 42 {
		tt.Errorf("Load(a) = %d, want 42", got)
	}

	if got := m.Load("a", 1); got != 42 {
		tt.Errorf("Load(a) from another thread = %d, want 42 (SC has no buffering)", got)
	}
}

func TestWeakStoreForwarding(tt *testing.T) {
	m := NewWeak()

	m.Store("a", 1, 0)
	m.Store("a", 2, 0)

	if got := m.Load("a", 0); got != 2 {
		tt.Errorf("Load(a) from issuing thread = %d, want 2 (most recent buffered write)", got)
	}

	if got := m.Load("a", 1); got != 0 {
		tt.Errorf("Load(a) from another thread = %d, want 0 (buffered writes not yet visible)", got)
	}
}

func TestWeakPropagateDrainsFIFO(tt *testing.T) {
	m := NewWeak()

	m.Store("a", 1, 0)
	m.Store("b", 2, 0)
	m.Store("c", 3, 0)

	m.Propagate(0)

	if got := m.Main().Load("a"); got != 1 {
		tt.Fatalf("after first propagate, main[a] = %d, want 1", got)
	}

	if got := m.Main().Load("b"); got != 0 {
		tt.Fatalf("after first propagate, main[b] = %d, want 0 (not yet drained)", got)
	}

	m.Propagate(0)

	if got := m.Main().Load("b"); got != 2 {
		tt.Fatalf("after second propagate, main[b] = %d, want 2", got)
	}

	m.Propagate(0)

	if got := m.Main().Load("c"); got != 3 {
		tt.Fatalf("after third propagate, main[c] = %d, want 3", got)
	}
}

func TestWeakPropagateEmptyBufferIsNoop(tt *testing.T) {
	m := NewWeak()
	m.Propagate(0) // must not panic
}
