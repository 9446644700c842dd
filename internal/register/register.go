// Package register implements the per-thread register banks.
package register

import (
	"fmt"
	"sort"
	"strings"
)

// File is a mapping (thread_id, register_name) -> word, defaulting to 0.
type File struct {
	banks map[int]map[string]uint64
}

// New creates a File with one empty bank per thread in [0, threads).
func New(threads int) *File {
	f := &File{banks: make(map[int]map[string]uint64, threads)}

	for t := 0; t < threads; t++ {
		f.banks[t] = make(map[string]uint64)
	}

	return f
}

// Load reads a register's value for a thread, returning 0 if it has never been set.
func (f *File) Load(name string, thread int) uint64 {
	return f.banks[thread][name]
}

// Store sets a register's value for a thread.
func (f *File) Store(name string, value uint64, thread int) {
	bank, ok := f.banks[thread]
	if !ok {
		bank = make(map[string]uint64)
		f.banks[thread] = bank
	}

	bank[name] = value
}

// String renders every thread's bank with registers sorted by name, for the REPL's "registers"
// command.
func (f *File) String() string {
	threads := make([]int, 0, len(f.banks))
	for t := range f.banks {
		threads = append(threads, t)
	}

	sort.Ints(threads)

	var b strings.Builder

	for _, t := range threads {
		fmt.Fprintf(&b, "Thread %d\n", t)

		names := make([]string, 0, len(f.banks[t]))
		for n := range f.banks[t] {
			names = append(names, n)
		}

		sort.Strings(names)

		for _, n := range names {
			fmt.Fprintf(&b, "%s: %d\n", n, f.banks[t][n])
		}
	}

	return b.String()
}
