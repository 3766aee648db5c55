package engine

import (
	"time"

	"github.com/npillmayer/cds"
	"github.com/npillmayer/cds/cfg"
)

// Sequential is the single-worker reference engine. Its output defines the
// semantics the parallel engines must reproduce.
type Sequential struct {
	g *cfg.Grammar
}

var _ Engine = (*Sequential)(nil)

// NewSequential creates a sequential engine for a grammar.
func NewSequential(g *cfg.Grammar, opts ...Option) *Sequential {
	makeOptions(opts) // sequential runs take no options, but accept them
	return &Sequential{g: g}
}

// Parse processes descriptors one by one until the worklist drains.
func (p *Sequential) Parse(input []cds.Symbol) *Result {
	start := time.Now()
	run := &seqRun{
		core:     newCore(p.g, input),
		worklist: cds.NewDescriptorSet(),
		set:      cds.NewDescriptorSet(),
		epns:     cds.NewEPNSet(),
	}
	run.seed(run)
	var processed int64
	for {
		d, ok := run.worklist.Pop()
		if !ok {
			break
		}
		run.set.Add(d)
		run.process(d, run)
		processed++
	}
	tracer().Debugf("sequential engine done: processed %d descriptors", processed)
	return &Result{
		Descriptors: run.set,
		EPNs:        run.epns,
		Stats: Stats{
			InputLength: len(input),
			Elapsed:     time.Since(start),
			Processed:   processed,
			Workers:     1,
			Actions:     run.counts(),
		},
	}
}

// seqRun is the per-call state of a sequential parse.
type seqRun struct {
	*core
	worklist *cds.DescriptorSet
	set      *cds.DescriptorSet
	epns     *cds.EPNSet
}

var _ derivState = (*seqRun)(nil)

func (r *seqRun) enqueue(d cds.Descriptor) {
	if !r.set.Contains(d) {
		r.worklist.Add(d)
	}
}

func (r *seqRun) record(pn cds.EPN) {
	r.epns.Add(pn)
}

func (r *seqRun) completedAt(sym cds.Symbol, left int) []cds.Descriptor {
	var found []cds.Descriptor
	r.set.Each(func(d cds.Descriptor) {
		if d.LHS == sym && d.Left == left && d.Completed() {
			found = append(found, d)
		}
	})
	return found
}

func (r *seqRun) awaitingAt(sym cds.Symbol, right int) []cds.Descriptor {
	var found []cds.Descriptor
	r.set.Each(func(d cds.Descriptor) {
		if !d.Completed() && d.NextSymbol() == sym && d.Right == right {
			found = append(found, d.Advance())
		}
	})
	return found
}
