package memory

import "github.com/K-dizzled/isa-interprerter/internal/lang"

// buffer is a single thread's FIFO store buffer.
type buffer struct {
	ops []lang.WriteOperation
}

// load returns the most recently buffered value for addr, if any, implementing store forwarding.
func (b *buffer) load(addr string) (uint64, bool) {
	for i := len(b.ops) - 1; i >= 0; i-- {
		if b.ops[i].Addr == addr {
			return b.ops[i].Value, true
		}
	}

	return 0, false
}

func (b *buffer) push(op lang.WriteOperation) {
	b.ops = append(b.ops, op)
}

// propagate dequeues the buffer's head, if any.
func (b *buffer) propagate() (lang.WriteOperation, bool) {
	if len(b.ops) == 0 {
		return lang.WriteOperation{}, false
	}

	op := b.ops[0]
	b.ops = b.ops[1:]

	return op, true
}

// Weak is the TSO/PSO memory subsystem: stores are buffered per thread and drained independently;
// loads observe the issuing thread's own buffer before main memory. The PSO/TSO distinction
// itself lives entirely in the dependency graph's propagation ordering, not here — this type
// behaves identically for both models.
type Weak struct {
	main    *Store
	buffers map[int]*buffer
}

// NewWeak creates a TSO/PSO memory subsystem.
func NewWeak() *Weak {
	return &Weak{main: New(), buffers: make(map[int]*buffer)}
}

func (m *Weak) bufferFor(thread int) *buffer {
	b, ok := m.buffers[thread]
	if !ok {
		b = &buffer{}
		m.buffers[thread] = b
	}

	return b
}

func (m *Weak) Store(addr string, value uint64, thread int) {
	m.bufferFor(thread).push(lang.WriteOperation{Addr: addr, Value: value})
}

func (m *Weak) Load(addr string, thread int) uint64 {
	if v, ok := m.bufferFor(thread).load(addr); ok {
		return v
	}

	return m.main.Load(addr)
}

func (m *Weak) Propagate(thread int) {
	if op, ok := m.bufferFor(thread).propagate(); ok {
		m.main.Store(op.Addr, op.Value)
	}
}

func (m *Weak) Main() *Store { return m.main }

var _ Subsystem = (*Weak)(nil)
