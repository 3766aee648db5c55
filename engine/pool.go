package engine

import (
	"runtime"
	"sync"
	"time"

	"github.com/npillmayer/cds"
	"github.com/npillmayer/cds/cfg"
	"go.uber.org/atomic"
)

// localQueueCap bounds the per-worker queues. The staging set is unbounded,
// so a full local queue only ever delays the coordinator, never a worker.
const localQueueCap = 1024

// Pool is the coordinator/worker-pool engine: a fixed number of workers with
// per-worker local queues, fed round-robin by a coordinator which drains a
// global staging queue.
type Pool struct {
	g    *cfg.Grammar
	opts options
}

var _ Engine = (*Pool)(nil)

// NewPool creates a pool engine. The parallelism defaults to 16 and is set
// with Workers(n).
func NewPool(g *cfg.Grammar, opts ...Option) *Pool {
	return &Pool{g: g, opts: makeOptions(opts)}
}

// Parse spawns the workers, seeds the staging queue with the start-symbol
// descriptors and coordinates until no work is staged, queued or being
// processed, then stops the workers and collects the shared sets.
func (p *Pool) Parse(input []cds.Symbol) *Result {
	start := time.Now()
	n := p.opts.workers
	run := &poolRun{
		core:   newCore(p.g, input),
		set:    cds.NewDescriptorSet(),
		epns:   cds.NewEPNSet(),
		stage:  cds.NewDescriptorSet(),
		queues: make([]chan cds.Descriptor, n),
		hist:   make([]uint64, n+1),
	}
	for i := range run.queues {
		run.queues[i] = make(chan cds.Descriptor, localQueueCap)
	}
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go run.worker(i, &wg)
	}
	run.seed(run)

	// Coordinator. pending counts staged-but-unfinished descriptors, so
	// pending == 0 is equivalent to the three-part predicate "staging queue
	// empty and all local queues empty and no worker processing".
	cursor := 0
	for run.pending.Load() > 0 {
		run.hist[run.working.Load()]++
		run.stageMu.Lock()
		batch := run.stage.Values()
		if len(batch) > 0 {
			run.stage = cds.NewDescriptorSet()
		}
		run.stageMu.Unlock()
		if len(batch) == 0 {
			runtime.Gosched()
			continue
		}
		for _, d := range batch {
			run.queues[cursor] <- d
			cursor = (cursor + 1) % n
		}
	}
	for _, q := range run.queues {
		close(q)
	}
	wg.Wait()
	tracer().Debugf("pool engine done: %d workers processed %d descriptors",
		n, run.processed.Load())

	return &Result{
		Descriptors: run.set,
		EPNs:        run.epns,
		Stats: Stats{
			InputLength: len(input),
			Elapsed:     time.Since(start),
			Processed:   run.processed.Load(),
			Workers:     n,
			Actions:     run.counts(),
			Histogram:   run.hist,
		},
	}
}

// poolRun is the shared state of one pool parse.
type poolRun struct {
	*core
	set   *cds.DescriptorSet // admitted descriptors, authoritative dedup
	setMu sync.RWMutex
	epns  *cds.EPNSet
	epnMu sync.Mutex

	stage   *cds.DescriptorSet // global staging queue
	stageMu sync.Mutex
	queues  []chan cds.Descriptor

	pending   atomic.Int64 // staged descriptors not yet finished by a worker
	working   atomic.Int32 // workers currently processing
	processed atomic.Int64
	hist      []uint64 // written by the coordinator only
}

var _ derivState = (*poolRun)(nil)

func (r *poolRun) worker(id int, wg *sync.WaitGroup) {
	defer wg.Done()
	for d := range r.queues[id] {
		r.working.Add(1)
		r.setMu.Lock()
		admitted := r.set.Add(d)
		r.setMu.Unlock()
		if admitted {
			r.process(d, r)
			r.processed.Add(1)
		}
		r.working.Add(-1)
		r.pending.Add(-1)
	}
}

// enqueue stages a descriptor for distribution. The membership pre-check is
// only a hint to reduce staging traffic; the admission check in the worker
// holds the exclusive lock and is authoritative.
func (r *poolRun) enqueue(d cds.Descriptor) {
	r.setMu.RLock()
	seen := r.set.Contains(d)
	r.setMu.RUnlock()
	if seen {
		return
	}
	r.stageMu.Lock()
	if r.stage.Add(d) {
		r.pending.Add(1)
	}
	r.stageMu.Unlock()
}

func (r *poolRun) record(pn cds.EPN) {
	r.epnMu.Lock()
	r.epns.Add(pn)
	r.epnMu.Unlock()
}

func (r *poolRun) completedAt(sym cds.Symbol, left int) []cds.Descriptor {
	var found []cds.Descriptor
	r.setMu.RLock()
	r.set.Each(func(d cds.Descriptor) {
		if d.LHS == sym && d.Left == left && d.Completed() {
			found = append(found, d)
		}
	})
	r.setMu.RUnlock()
	return found
}

func (r *poolRun) awaitingAt(sym cds.Symbol, right int) []cds.Descriptor {
	var found []cds.Descriptor
	r.setMu.RLock()
	r.set.Each(func(d cds.Descriptor) {
		if !d.Completed() && d.NextSymbol() == sym && d.Right == right {
			found = append(found, d.Advance())
		}
	})
	r.setMu.RUnlock()
	return found
}
