package cds

import "fmt"

// EPN is an extended packed node, an edge of the shared packed parse forest.
// It records the completion of a grammar-slot step over the span
// (Left…Right), where Pivot is the input position at which the last consumed
// symbol began. Equality is structural over all six fields.
type EPN struct {
	LHS   Symbol
	RHS   []Symbol
	Dot   int
	Left  int
	Pivot int
	Right int
}

// MakeEPN creates an EPN from an already advanced descriptor and the pivot
// position separating the previously matched prefix from the symbol whose
// consumption this node records.
func MakeEPN(d Descriptor, pivot int) EPN {
	return EPN{
		LHS:   d.LHS,
		RHS:   d.RHS,
		Dot:   d.Dot,
		Left:  d.Left,
		Pivot: pivot,
		Right: d.Right,
	}
}

// MakeEmptyEPN creates the zero-width EPN for a completed ε-production
// descriptor; the pivot coincides with the right extent.
func MakeEmptyEPN(d Descriptor) EPN {
	return MakeEPN(d, d.Right)
}

func (pn EPN) String() string {
	return fmt.Sprintf("[%s, %d, %d, %d]", slotString(pn.LHS, pn.RHS, pn.Dot),
		pn.Left, pn.Pivot, pn.Right)
}
