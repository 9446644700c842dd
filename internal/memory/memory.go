// Package memory implements the global memory store and, for TSO/PSO, the per-thread FIFO write
// buffers layered in front of it.
package memory

import (
	"fmt"
	"sort"
	"strings"
)

// Store is the flat address space shared by all threads: a mapping from address to word,
// defaulting to 0 for missing keys.
type Store struct {
	data map[string]uint64
}

// New creates an empty memory store.
func New() *Store {
	return &Store{data: make(map[string]uint64)}
}

// Load reads an address, returning 0 if it has never been written.
func (s *Store) Load(addr string) uint64 {
	return s.data[addr]
}

// Store writes a value to an address.
func (s *Store) Store(addr string, value uint64) {
	s.data[addr] = value
}

// String renders the store with keys sorted, for the REPL's "memory" command.
func (s *Store) String() string {
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	var b strings.Builder

	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %d\n", k, s.data[k])
	}

	return b.String()
}
