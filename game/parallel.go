package game

import (
	"runtime"
	"sync"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/chase/systems"
	"github.com/pthm-cable/chase/telemetry"
)

// workChunk represents a range of agents for a worker to process.
// Indices below len(pursuers) are pursuers, the rest are evaders.
type workChunk struct {
	start, end int
}

// parallelState holds resources for stepping AI agents concurrently.
type parallelState struct {
	pursuers  []systems.PursuerSnapshot
	evaders   []systems.EvaderSnapshot
	target    r2.Vec // the cat, read-only while workers run
	threshold int

	numWorkers int

	// Worker pool channels
	workChan chan workChunk // sends work to workers
	doneChan chan struct{}  // workers signal completion
	stopChan chan struct{}  // signals workers to exit
	wg       sync.WaitGroup // tracks active workers
	running  bool           // true if workers are running
}

// newParallelState creates the pool. Populations below threshold are
// stepped on the calling goroutine.
func newParallelState(threshold int) *parallelState {
	if threshold < 1 {
		threshold = 1
	}
	return &parallelState{
		numWorkers: runtime.GOMAXPROCS(0),
		threshold:  threshold,
		pursuers:   make([]systems.PursuerSnapshot, 0, 64),
		evaders:    make([]systems.EvaderSnapshot, 0, 64),
	}
}

// startWorkers launches persistent worker goroutines.
func (p *parallelState) startWorkers() {
	if p.running {
		return
	}

	p.workChan = make(chan workChunk, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// stopWorkers signals all workers to exit and waits for them.
func (p *parallelState) stopWorkers() {
	if !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}

// worker runs in a goroutine, processing chunks until stopped.
func (p *parallelState) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			p.computeChunk(chunk.start, chunk.end)
			p.doneChan <- struct{}{}
		}
	}
}

// computeChunk steps agents [i0, i1). Each snapshot is only written by the
// worker that owns its index.
func (p *parallelState) computeChunk(i0, i1 int) {
	np := len(p.pursuers)
	for i := i0; i < i1; i++ {
		if i < np {
			p.pursuers[i].Step(p.target)
		} else {
			p.evaders[i-np].Step(p.target)
		}
	}
}

// computeParallel dispatches n agents to the worker pool and waits for all
// of them: the barrier before results are applied.
func (p *parallelState) computeParallel(n int) {
	if n == 0 {
		return
	}
	if !p.running {
		p.startWorkers()
	}

	chunkSize := (n + p.numWorkers - 1) / p.numWorkers

	chunksDispatched := 0
	for w := 0; w < p.numWorkers; w++ {
		start := w * chunkSize
		end := min(start+chunkSize, n)
		if start >= end {
			continue
		}

		p.workChan <- workChunk{start: start, end: end}
		chunksDispatched++
	}

	for i := 0; i < chunksDispatched; i++ {
		<-p.doneChan
	}
}

// stepAgents advances every pursuer and evader against target.
// Small populations run each system in turn. Larger ones snapshot the
// world (phase A), step every snapshot on the worker pool (phase B), and
// write results back in collection order (phase C), so the outcome does
// not depend on the worker count. While parallel, the pursuers phase
// covers stepping both kinds.
func (g *Game) stepAgents(target r2.Vec) {
	p := g.parallel

	if g.numTanks+g.numMice < p.threshold {
		g.perfCollector.StartPhase(telemetry.PhasePursuers)
		g.transitions = g.pursuerSystem.Update(target, g.transitions)
		g.perfCollector.StartPhase(telemetry.PhaseEvaders)
		g.transitions = g.evaderSystem.Update(target, g.transitions)
		return
	}

	g.perfCollector.StartPhase(telemetry.PhasePursuers)

	// Phase A
	p.pursuers = g.pursuerSystem.Collect(p.pursuers[:0])
	p.evaders = g.evaderSystem.Collect(p.evaders[:0])
	p.target = target

	// Phase B
	p.computeParallel(len(p.pursuers) + len(p.evaders))

	// Phase C
	g.transitions = g.pursuerSystem.Apply(p.pursuers, g.transitions)
	g.perfCollector.StartPhase(telemetry.PhaseEvaders)
	g.transitions = g.evaderSystem.Apply(p.evaders, g.transitions)
}

// stopParallelWorkers should be called when shutting down the game.
func (g *Game) stopParallelWorkers() {
	if g.parallel != nil {
		g.parallel.stopWorkers()
	}
}
