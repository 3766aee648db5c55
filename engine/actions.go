package engine

import (
	"github.com/npillmayer/cds"
	"github.com/npillmayer/cds/cfg"
	"go.uber.org/atomic"
)

// derivState is an engine's view of the derivation state while one
// descriptor is being processed. Engines differ in where new work goes and
// which sets neighbor lookups scan; the transition logic itself is shared.
type derivState interface {
	// enqueue hands a freshly produced descriptor to the engine's worklist.
	enqueue(d cds.Descriptor)
	// record inserts an EPN into the (monotonic) EPN set.
	record(pn cds.EPN)
	// completedAt returns the completed descriptors for nonterminal sym whose
	// left extent is left.
	completedAt(sym cds.Symbol, left int) []cds.Descriptor
	// awaitingAt returns, already advanced over the dot, the descriptors
	// which await nonterminal sym at right extent right.
	awaitingAt(sym cds.Symbol, right int) []cds.Descriptor
}

// skipAuditor is implemented by states that must requeue grammar
// alternatives missing from their snapshot whenever a skip fires (the tree
// engine's force-reprocessing policy).
type skipAuditor interface {
	auditSkip(sym cds.Symbol, at int, completed []cds.Descriptor)
}

// core holds the read-only parse context plus the action counters shared by
// all workers of a run.
type core struct {
	g       *cfg.Grammar
	input   []cds.Symbol
	match   atomic.Int64
	descend atomic.Int64
	skip    atomic.Int64
	ascend  atomic.Int64
}

func newCore(g *cfg.Grammar, input []cds.Symbol) *core {
	return &core{g: g, input: input}
}

func (c *core) counts() ActionCounts {
	return ActionCounts{
		Match:   c.match.Load(),
		Descend: c.descend.Load(),
		Skip:    c.skip.Load(),
		Ascend:  c.ascend.Load(),
	}
}

// process runs the CDS transition for one admitted descriptor: exactly one
// of match/descend/skip for an uncompleted descriptor, ascend (plus the
// zero-width EPN for ε-productions) for a completed one.
func (c *core) process(d cds.Descriptor, st derivState) {
	if !d.Completed() {
		sym := d.NextSymbol()
		if c.g.IsTerminal(sym) {
			c.doMatch(d, st)
			return
		}
		completed := st.completedAt(sym, d.Right)
		if len(completed) == 0 {
			c.doDescend(sym, d.Right, st)
			return
		}
		if a, ok := st.(skipAuditor); ok {
			a.auditSkip(sym, d.Right, completed)
		}
		c.doSkip(d.Advance(), completed, d.Right, st)
		return
	}
	c.doAscend(st.awaitingAt(d.LHS, d.Left), d.Right, st)
	if d.Empty() {
		st.record(cds.MakeEmptyEPN(d))
	}
}

// doMatch consumes one terminal: if the input symbol at the right extent
// equals the symbol after the dot, the advanced descriptor is enqueued and
// the matching EPN recorded (pivot = position before the terminal).
func (c *core) doMatch(d cds.Descriptor, st derivState) {
	c.match.Add(1)
	if d.Right < len(c.input) && c.input[d.Right] == d.NextSymbol() {
		nd := d.Advance()
		nd.Right++
		st.enqueue(nd)
		st.record(cds.MakeEPN(nd, d.Right))
	}
}

// doDescend enqueues a fresh start descriptor for every alternative of sym,
// anchored at the pivot. Descending emits no EPN.
func (c *core) doDescend(sym cds.Symbol, pivot int, st derivState) {
	c.descend.Add(1)
	for _, r := range c.g.RulesFor(sym) {
		st.enqueue(cds.MakeDescriptor(r.LHS, r.RHS, 0, pivot, pivot))
	}
}

// doSkip advances over a nonterminal whose sub-derivations are already
// known: d arrives advanced, pivot is the right extent before the skip, and
// every distinct right extent of a completed sub-derivation yields one
// descriptor and one EPN.
func (c *core) doSkip(d cds.Descriptor, completed []cds.Descriptor, pivot int, st derivState) {
	c.skip.Add(1)
	extents := make(map[int]struct{}, len(completed))
	for _, comp := range completed {
		if _, dup := extents[comp.Right]; dup {
			continue
		}
		extents[comp.Right] = struct{}{}
		nd := d
		nd.Right = comp.Right
		st.enqueue(nd)
		st.record(cds.MakeEPN(nd, pivot))
	}
}

// doAscend resumes every descriptor awaiting the completed nonterminal. The
// awaiting descriptors arrive advanced with their right extent still at the
// pivot position; right is the right extent of the completed sub-derivation.
func (c *core) doAscend(awaiting []cds.Descriptor, right int, st derivState) {
	c.ascend.Add(1)
	for _, a := range awaiting {
		nd := a
		nd.Right = right
		st.enqueue(nd)
		st.record(cds.MakeEPN(nd, a.Right))
	}
}

// seed enqueues one start descriptor per alternative of the start symbol.
func (c *core) seed(st derivState) {
	for _, r := range c.g.RulesFor(c.g.StartSymbol()) {
		st.enqueue(cds.MakeDescriptor(r.LHS, r.RHS, 0, 0, 0))
	}
}
