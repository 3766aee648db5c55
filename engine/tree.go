package engine

import (
	"sync"
	"time"

	"github.com/npillmayer/cds"
	"github.com/npillmayer/cds/cfg"
	"go.uber.org/atomic"
)

// Tree is the spawn-on-saturation engine: every worker owns a private
// worklist and a private descriptor snapshot inherited from its parent, and
// spawns a child per excess worklist item once the worklist reaches a
// threshold. Admission of a descriptor is finalized by inserting it into a
// single global descriptor set; the snapshot is an under-approximation of
// that set and only serves to cut down on lock traffic.
type Tree struct {
	g    *cfg.Grammar
	opts options
}

var _ Engine = (*Tree)(nil)

// NewTree creates a tree engine. The spawn threshold defaults to 32 and is
// set with SpawnThreshold(n); ForceReprocess(false) disables the snapshot
// staleness fix.
func NewTree(g *cfg.Grammar, opts ...Option) *Tree {
	return &Tree{g: g, opts: makeOptions(opts)}
}

// Parse spawns one root worker per start-symbol alternative, each seeded
// with the full set of start descriptors as its snapshot, and waits for the
// worker tree to drain. The global set is the output descriptor set.
func (p *Tree) Parse(input []cds.Symbol) *Result {
	start := time.Now()
	run := &treeRun{
		core:      newCore(p.g, input),
		global:    cds.NewDescriptorSet(),
		epns:      cds.NewEPNSet(),
		forced:    cds.NewDescriptorSet(),
		threshold: p.opts.threshold,
		forceFix:  p.opts.forceFix,
	}
	snapshot := cds.NewDescriptorSet()
	for _, r := range p.g.RulesFor(p.g.StartSymbol()) {
		snapshot.Add(cds.MakeDescriptor(r.LHS, r.RHS, 0, 0, 0))
	}
	var wg sync.WaitGroup
	for _, d := range snapshot.Values() {
		run.spawn(d, snapshot.Copy(), &wg)
	}
	wg.Wait()
	tracer().Debugf("tree engine done: %d workers processed %d descriptors",
		run.workers.Load(), run.processed.Load())

	return &Result{
		Descriptors: run.global,
		EPNs:        run.epns,
		Stats: Stats{
			InputLength: len(input),
			Elapsed:     time.Since(start),
			Processed:   run.processed.Load(),
			Workers:     int(run.workers.Load()),
			Actions:     run.counts(),
		},
	}
}

// treeRun is the state shared by all workers of one tree parse.
type treeRun struct {
	*core
	global    *cds.DescriptorSet
	globalMu  sync.RWMutex
	epns      *cds.EPNSet
	epnMu     sync.Mutex
	forced    *cds.DescriptorSet // values already granted their one force pass
	forcedMu  sync.Mutex
	threshold int
	forceFix  bool
	processed atomic.Int64
	workers   atomic.Int64
}

// spawn starts a worker for one descriptor, handing it a snapshot the caller
// must not touch afterwards.
func (r *treeRun) spawn(d cds.Descriptor, snapshot *cds.DescriptorSet, wg *sync.WaitGroup) {
	r.workers.Add(1)
	wg.Add(1)
	go func() {
		defer wg.Done()
		w := &treeWorker{
			run: r,
			W:   cds.NewDescriptorSet(d),
			S:   snapshot,
		}
		w.loop()
	}()
}

// treeWorker is one node of the worker tree. W is its private worklist, S
// its private descriptor snapshot.
type treeWorker struct {
	run *treeRun
	W   *cds.DescriptorSet
	S   *cds.DescriptorSet
}

var _ derivState = (*treeWorker)(nil)
var _ skipAuditor = (*treeWorker)(nil)

func (w *treeWorker) loop() {
	var children sync.WaitGroup
	for {
		// Hand off excess work before picking the next item.
		if w.W.Size() >= w.run.threshold {
			excess := w.W.Size() - w.run.threshold + 1
			for i := 0; i < excess; i++ {
				d, _ := w.W.Pop()
				w.run.spawn(d, w.S.Copy(), &children)
			}
		}
		d, ok := w.W.Pop()
		if !ok {
			break
		}
		w.S.Add(d)
		w.run.globalMu.Lock()
		admitted := w.run.global.Add(d)
		w.run.globalMu.Unlock()
		if admitted || (w.run.forceFix && d.Force) {
			w.run.process(d, w)
			w.run.processed.Add(1)
		}
	}
	children.Wait()
}

// enqueue adds new work to the private worklist, unless the descriptor is
// already admitted globally; in that case only the snapshot is enriched.
func (w *treeWorker) enqueue(d cds.Descriptor) {
	w.run.globalMu.RLock()
	known := w.run.global.Contains(d)
	w.run.globalMu.RUnlock()
	if known {
		w.S.Add(d)
		return
	}
	if !w.S.Contains(d) {
		w.W.Add(d)
	}
}

func (w *treeWorker) record(pn cds.EPN) {
	w.run.epnMu.Lock()
	w.run.epns.Add(pn)
	w.run.epnMu.Unlock()
}

// Neighbor lookups scan the snapshot united with the global set, so that
// every descriptor whose admission happened before this step is visible.

func (w *treeWorker) completedAt(sym cds.Symbol, left int) []cds.Descriptor {
	found := cds.NewDescriptorSet()
	collect := func(d cds.Descriptor) {
		if d.LHS == sym && d.Left == left && d.Completed() {
			found.Add(d)
		}
	}
	w.S.Each(collect)
	w.run.globalMu.RLock()
	w.run.global.Each(collect)
	w.run.globalMu.RUnlock()
	return found.Values()
}

func (w *treeWorker) awaitingAt(sym cds.Symbol, right int) []cds.Descriptor {
	found := cds.NewDescriptorSet()
	collect := func(d cds.Descriptor) {
		if !d.Completed() && d.NextSymbol() == sym && d.Right == right {
			found.Add(d.Advance())
		}
	}
	w.S.Each(collect)
	w.run.globalMu.RLock()
	w.run.global.Each(collect)
	w.run.globalMu.RUnlock()
	return found.Values()
}

// auditSkip requeues, with the force flag set, every alternative of sym that
// has no completed descriptor in the extents found by the skip lookup. A
// snapshot may lag behind concurrently admitted alternatives; forcing such an
// alternative through admission reprocesses it under the richer current
// state. Each descriptor value is granted exactly one force pass, which
// bounds the extra work and keeps the engine terminating on alternatives
// that can never complete.
func (w *treeWorker) auditSkip(sym cds.Symbol, at int, completed []cds.Descriptor) {
	if !w.run.forceFix {
		return
	}
	covered := cds.NewDescriptorSet()
	for _, comp := range completed {
		covered.Add(cds.MakeDescriptor(sym, comp.RHS, 0, at, at))
	}
	for _, rule := range w.run.g.RulesFor(sym) {
		fresh := cds.MakeDescriptor(rule.LHS, rule.RHS, 0, at, at)
		if covered.Contains(fresh) {
			continue
		}
		w.run.forcedMu.Lock()
		granted := w.run.forced.Add(fresh)
		w.run.forcedMu.Unlock()
		if !granted {
			continue
		}
		w.W.Add(fresh.Forced())
		w.S.Remove(fresh)
	}
}
