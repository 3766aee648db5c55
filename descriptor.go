package cds

import "fmt"

// Descriptor is a dotted grammar slot tagged with input extents: production
// LHS ::= RHS with a dot position in [0, len(RHS)], the input position Left
// where parsing of the slot began, and the position Right reached so far.
//
// Descriptors are value types. Equality and hashing are structural over
// (LHS, RHS, Dot, Left, Right); the Force flag is excluded, it is merely a
// processing hint for the tree engine.
type Descriptor struct {
	LHS   Symbol
	RHS   []Symbol
	Dot   int
	Left  int
	Right int
	Force bool `hash:"-"`
}

// MakeDescriptor creates a descriptor with Force unset.
func MakeDescriptor(lhs Symbol, rhs []Symbol, dot, left, right int) Descriptor {
	return Descriptor{LHS: lhs, RHS: rhs, Dot: dot, Left: left, Right: right}
}

// Completed is true iff the dot is behind the complete RHS.
func (d Descriptor) Completed() bool {
	return d.Dot == len(d.RHS)
}

// Empty is true iff the RHS is the empty sequence (an ε-production).
func (d Descriptor) Empty() bool {
	return len(d.RHS) == 0
}

// NextSymbol returns the symbol after the dot. It must not be called on a
// completed descriptor.
func (d Descriptor) NextSymbol() Symbol {
	return d.RHS[d.Dot]
}

// Advance returns a copy of d with the dot moved over one symbol.
// Extents are unchanged; callers adjust Right as the action demands.
func (d Descriptor) Advance() Descriptor {
	d.Dot++
	d.Force = false
	return d
}

// Forced returns a copy of d with the Force flag set. A forced descriptor
// bypasses the already-processed check of the tree engine exactly once.
func (d Descriptor) Forced() Descriptor {
	d.Force = true
	return d
}

func (d Descriptor) String() string {
	return fmt.Sprintf("[%s, %d, %d]", slotString(d.LHS, d.RHS, d.Dot), d.Left, d.Right)
}
