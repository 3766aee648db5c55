package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/npillmayer/cds"
	"github.com/npillmayer/cds/cfg"
)

// Engine is the common capability of all CDS engines: run the descriptor
// processing loop over an input sentence and return the complete derivation
// state. Engines are stateless between calls; every Parse starts fresh.
type Engine interface {
	Parse(input []cds.Symbol) *Result
}

// Result is the output of a parse run: the descriptor set S, the EPN set E,
// and run statistics. S and E together are a compact representation of every
// derivation tree of the input.
type Result struct {
	Descriptors *cds.DescriptorSet
	EPNs        *cds.EPNSet
	Stats       Stats
}

// Stats holds per-run measurements.
type Stats struct {
	InputLength int
	Elapsed     time.Duration
	Processed   int64 // descriptors actually processed (admitted, plus forced passes of the tree engine)
	Workers     int
	Actions     ActionCounts
	Histogram   []uint64 // busy-worker histogram, pool engine only
}

// ActionCounts records how often each of the four CDS actions fired.
type ActionCounts struct {
	Match   int64
	Descend int64
	Skip    int64
	Ascend  int64
}

// Accepted implements the recognition law: the input is in the grammar's
// language iff some start production, completed, spans the full input.
func (r *Result) Accepted(g *cfg.Grammar) bool {
	for _, rule := range g.RulesFor(g.StartSymbol()) {
		spanning := cds.MakeDescriptor(rule.LHS, rule.RHS, len(rule.RHS), 0, r.Stats.InputLength)
		if r.Descriptors.Contains(spanning) {
			return true
		}
	}
	return false
}

// CSV renders the default data line:
// input_length,elapsed_ms,processed,workers,|S|,|E|.
func (r *Result) CSV() string {
	return fmt.Sprintf("%d,%d,%d,%d,%d,%d",
		r.Stats.InputLength, r.Stats.Elapsed.Milliseconds(), r.Stats.Processed,
		r.Stats.Workers, r.Descriptors.Size(), r.EPNs.Size())
}

// ActionsCSV renders the action-count data line:
// input_length,match,descend,skip,ascend.
func (r *Result) ActionsCSV() string {
	a := r.Stats.Actions
	return fmt.Sprintf("%d,%d,%d,%d,%d",
		r.Stats.InputLength, a.Match, a.Descend, a.Skip, a.Ascend)
}

// HistogramCSV renders the busy-worker histogram data line:
// input_length,hist_0,…,hist_N. The k-th bucket counts coordinator
// iterations that observed k busy workers. Engines without a coordinator
// render an empty histogram.
func (r *Result) HistogramCSV() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d", r.Stats.InputLength)
	for _, h := range r.Stats.Histogram {
		fmt.Fprintf(&b, ",%d", h)
	}
	return b.String()
}

// --- Options ----------------------------------------------------------------

const (
	defaultWorkers   = 16 // pool engine parallelism
	defaultThreshold = 32 // tree engine spawn threshold
)

type options struct {
	workers   int
	threshold int
	forceFix  bool
}

func makeOptions(opts []Option) options {
	o := options{
		workers:   defaultWorkers,
		threshold: defaultThreshold,
		forceFix:  true,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Option configures an engine.
type Option func(*options)

// Workers sets the pool engine's parallelism. Values below 1 are ignored.
func Workers(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.workers = n
		}
	}
}

// SpawnThreshold sets the tree engine's worklist size threshold: once a
// worklist holds at least n items, all but n-1 of them are handed to freshly
// spawned child workers. Values below 2 are ignored.
func SpawnThreshold(n int) Option {
	return func(o *options) {
		if n >= 2 {
			o.threshold = n
		}
	}
}

// ForceReprocess toggles the tree engine's reprocessing of grammar
// alternatives that were missing from a worker's snapshot when a skip fired.
// It is on by default; turning it off reproduces the plain snapshot
// behavior, which may lose derivations.
func ForceReprocess(on bool) Option {
	return func(o *options) {
		o.forceFix = on
	}
}
