// Package batch runs many instruction/data image pairs concurrently,
// each against its own independent pipeline engine, and checks the final
// state against an expected fixture.
package batch

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sts08015/rv32i-pipeline/pkg/cpu"
)

// progressWriter receives the pool's periodic progress lines. A package
// variable rather than a Pool field since tests never need to silence it
// individually; swap it out directly if a caller needs to.
var progressWriter io.Writer = os.Stderr

// Scenario is one fixture: an instruction/data image pair, a cycle count to
// run it for, and the expected final register values keyed by register
// index (only registers present in the map are checked).
type Scenario struct {
	Name     string
	IMem     []uint32
	DMem     []uint32
	Cycles   int
	MemDepth int
	Expect   map[uint8]uint32
}

// Outcome is one scenario's pass/fail result.
type Outcome struct {
	Name     string
	Passed   bool
	Mismatch []string
	Duration time.Duration
}

// Table aggregates outcomes from concurrent workers behind a mutex, mirroring
// the teacher's result.Table accumulator.
type Table struct {
	mu       sync.Mutex
	outcomes []Outcome
}

// NewTable creates an empty outcome table.
func NewTable() *Table { return &Table{} }

// Add records one outcome.
func (t *Table) Add(o Outcome) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.outcomes = append(t.outcomes, o)
}

// Outcomes returns a copy of all recorded outcomes sorted by scenario name.
func (t *Table) Outcomes() []Outcome {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Outcome, len(t.outcomes))
	copy(out, t.outcomes)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Pool runs scenarios across a fixed number of worker goroutines, each
// owning one *cpu.Engine end to end — engines are never shared across
// goroutines.
type Pool struct {
	NumWorkers int
	Results    *Table
	completed  atomic.Int64
	passed     atomic.Int64
}

// NewPool creates a pool with the given worker count (0 = runtime.NumCPU()).
func NewPool(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &Pool{NumWorkers: numWorkers, Results: NewTable()}
}

// Stats returns the number of completed and passed scenarios so far.
func (p *Pool) Stats() (completed, passed int64) {
	return p.completed.Load(), p.passed.Load()
}

// Run distributes scenarios across the pool's workers and blocks until
// every scenario has been run.
func (p *Pool) Run(scenarios []Scenario) {
	total := int64(len(scenarios))
	ch := make(chan Scenario, len(scenarios))
	for _, s := range scenarios {
		ch <- s
	}
	close(ch)

	done := make(chan struct{})
	start := time.Now()
	go func() {
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				comp := p.completed.Load()
				fmt.Fprintf(progressWriter, "  [%s] %d/%d scenarios complete\n",
					time.Since(start).Round(time.Millisecond), comp, total)
			}
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < p.NumWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for s := range ch {
				p.runOne(s)
				p.completed.Add(1)
			}
		}()
	}
	wg.Wait()
	close(done)
}

func (p *Pool) runOne(s Scenario) {
	started := time.Now()
	depth := s.MemDepth
	if depth == 0 {
		depth = 1024
	}
	e := cpu.NewEngine(s.IMem, depth)
	if len(s.DMem) > 0 {
		e.DMem.LoadWords(s.DMem)
	}
	e.Run(s.Cycles)

	var mismatches []string
	for idx, want := range s.Expect {
		got := e.RF.Read(idx)
		if got != want {
			mismatches = append(mismatches, fmt.Sprintf("x%d: got 0x%08x, want 0x%08x", idx, got, want))
		}
	}

	outcome := Outcome{
		Name:     s.Name,
		Passed:   len(mismatches) == 0,
		Mismatch: mismatches,
		Duration: time.Since(started),
	}
	p.Results.Add(outcome)
	if outcome.Passed {
		p.passed.Add(1)
	}
}
