/*
Package check validates CDS engine output.

An engine's output sets (S, E) must be closed under the four CDS actions.
Following Van Binsbergen (2018), closure is expressed through requirements
R(1)–R(4) on the descriptor set and P(1)–P(3) on the EPN set. The checker is
advisory: it never mutates state and reports every missing element it finds.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package check

import (
	"fmt"
	"io"

	"github.com/npillmayer/cds"
	"github.com/npillmayer/cds/cfg"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cds.check'.
func tracer() tracing.Trace {
	return tracing.Select("cds.check")
}

// Report collects the closure violations of one validation run.
type Report struct {
	MissingDescriptors []cds.Descriptor
	MissingEPNs        []cds.EPN
}

// OK is true iff no violations were found.
func (r *Report) OK() bool {
	return len(r.MissingDescriptors) == 0 && len(r.MissingEPNs) == 0
}

// Print writes the violations to w, one per line.
func (r *Report) Print(w io.Writer) {
	for _, d := range r.MissingDescriptors {
		fmt.Fprintf(w, "Missing descriptor %v\n", d)
	}
	for _, pn := range r.MissingEPNs {
		fmt.Fprintf(w, "Missing EPN %v\n", pn)
	}
}

func (r *Report) descriptor(S *cds.DescriptorSet, d cds.Descriptor) bool {
	if S.Contains(d) {
		return true
	}
	tracer().Debugf("missing descriptor %v", d)
	r.MissingDescriptors = append(r.MissingDescriptors, d)
	return false
}

func (r *Report) epn(E *cds.EPNSet, pn cds.EPN) bool {
	if E.Contains(pn) {
		return true
	}
	tracer().Debugf("missing EPN %v", pn)
	r.MissingEPNs = append(r.MissingEPNs, pn)
	return false
}

// Validate checks (S, E) against the CDS requirements for a grammar and an
// input sentence:
//
// R(1): every start alternative has its initial descriptor in S.
// R(2)/P(1): a matchable terminal after the dot implies the advanced
// descriptor in S and the matching EPN in E.
// R(3): a nonterminal after the dot implies the initial descriptors of all
// its alternatives in S.
// R(4)/P(2): for every completed counterpart of such a nonterminal, the
// skip-advanced descriptor is in S and the corresponding EPN in E.
// P(3): every completed ε-descriptor has its zero-width EPN in E.
func Validate(S *cds.DescriptorSet, E *cds.EPNSet, g *cfg.Grammar, input []cds.Symbol) *Report {
	report := &Report{}
	for _, rule := range g.RulesFor(g.StartSymbol()) {
		report.descriptor(S, cds.MakeDescriptor(rule.LHS, rule.RHS, 0, 0, 0)) // R(1)
	}
	S.Each(func(d cds.Descriptor) {
		if !d.Completed() {
			sym := d.NextSymbol()
			if g.IsTerminal(sym) {
				if d.Right < len(input) && sym == input[d.Right] {
					nd := d.Advance()
					nd.Right++
					if report.descriptor(S, nd) { // R(2)
						report.epn(E, cds.MakeEPN(nd, d.Right)) // P(1)
					}
				}
				return
			}
			for _, rule := range g.RulesFor(sym) {
				report.descriptor(S, cds.MakeDescriptor(sym, rule.RHS, 0, d.Right, d.Right)) // R(3)
			}
			S.Each(func(comp cds.Descriptor) {
				if comp.LHS == sym && comp.Completed() && comp.Left == d.Right {
					nd := d.Advance()
					nd.Right = comp.Right
					report.descriptor(S, nd)                // R(4)
					report.epn(E, cds.MakeEPN(nd, d.Right)) // P(2)
				}
			})
			return
		}
		if d.Empty() {
			report.epn(E, cds.MakeEmptyEPN(d)) // P(3)
		}
	})
	return report
}
