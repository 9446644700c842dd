// Package lang implements the instruction language: references, access modes, the instruction
// variants, and the line-oriented parser that turns source text into them.
package lang

import "strconv"

// Reference names either a register or a memory location. It is a closed sum with exactly two
// cases; callers type-switch rather than extend it.
type Reference interface {
	isReference()
	String() string
}

// RegisterRef names a per-thread register by its source identifier.
type RegisterRef struct {
	Name string
}

func (RegisterRef) isReference() {}

func (r RegisterRef) String() string { return "r" + r.Name }

// MemoryRef names a location in the shared address space by its source identifier, i.e. the token
// following a leading '#'.
type MemoryRef struct {
	Name string
}

func (MemoryRef) isReference() {}

func (m MemoryRef) String() string { return "m" + m.Name }

// ParseReference classifies a source token as a memory reference if it starts with '#' (the '#'
// is not part of the name), and as a register reference otherwise.
func ParseReference(tok string) Reference {
	if len(tok) > 0 && tok[0] == '#' {
		return MemoryRef{Name: tok[1:]}
	}

	return RegisterRef{Name: tok}
}

// RefEqual reports whether two references name the same case and the same name.
func RefEqual(a, b Reference) bool {
	switch a := a.(type) {
	case RegisterRef:
		b, ok := b.(RegisterRef)
		return ok && a.Name == b.Name
	case MemoryRef:
		b, ok := b.(MemoryRef)
		return ok && a.Name == b.Name
	default:
		return false
	}
}

// isUnsignedInteger reports whether tok parses as a non-negative base-10 integer.
func isUnsignedInteger(tok string) bool {
	_, err := strconv.ParseUint(tok, 10, 64)
	return err == nil
}
