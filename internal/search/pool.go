/*
 * FrankyGo - UCI chess engine in GO for learning purposes
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package search

import (
	"sync"

	"github.com/op/go-logging"

	"github.com/corechess/engine/internal/config"
	myLogging "github.com/corechess/engine/internal/logging"
	"github.com/corechess/engine/internal/position"
	"github.com/corechess/engine/internal/uciInterface"
)

// Pool coordinates a lazy-SMP style group of Search workers that all race
// the same position on a shared, lock-free transposition table. Worker 0
// owns all UCI-facing output (info lines, bestmove) and the wall-clock
// timer; the remaining workers are helpers whose only externally visible
// effect is to feed the shared TT and contribute to the pool's node count.
// Create with NewPool(); resize with Resize() in response to the UCI
// "Threads" option.
type Pool struct {
	log *logging.Logger

	mu            sync.Mutex
	workers       []*Search
	uciHandlerPtr uciInterface.UciDriver
}

// NewPool creates a pool sized from config.Settings.Search.NumberOfThreads
// (defaulting to at least one worker).
func NewPool() *Pool {
	p := &Pool{log: myLogging.GetLog()}
	p.resizeLocked(config.Settings.Search.NumberOfThreads)
	return p
}

// Resize changes the number of worker threads. Ignored while a search is
// running - call StopSearch() first. Existing worker 0 (and its state) is
// kept when shrinking or growing so the Hash setting is not lost.
func (p *Pool) Resize(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.workers[0].IsSearching() {
		return
	}
	p.resizeLocked(n)
}

func (p *Pool) resizeLocked(n int) {
	if n < 1 {
		n = 1
	}
	if len(p.workers) == n {
		return
	}
	workers := make([]*Search, n)
	for i := range workers {
		if i < len(p.workers) {
			workers[i] = p.workers[i]
			continue
		}
		workers[i] = NewSearch()
	}
	p.workers = workers
	if p.uciHandlerPtr != nil {
		p.workers[0].SetUciHandler(p.uciHandlerPtr)
	}
	p.shareStateLocked()
}

// shareStateLocked propagates worker 0's TT to every helper so all
// workers probe and store into the same bucket array - this is the
// entire mechanism by which helpers speed up worker 0.
func (p *Pool) shareStateLocked() {
	main := p.workers[0]
	for i := 1; i < len(p.workers); i++ {
		p.workers[i].tt = main.tt
	}
}

// NumberOfThreads returns the current pool size.
func (p *Pool) NumberOfThreads() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.workers)
}

// SetUciHandler wires the UCI driver to worker 0; helper workers never
// speak UCI directly.
func (p *Pool) SetUciHandler(uciHandler uciInterface.UciDriver) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.uciHandlerPtr = uciHandler
	p.workers[0].SetUciHandler(uciHandler)
}

// GetUciHandlerPtr returns the UCI driver set on worker 0.
func (p *Pool) GetUciHandlerPtr() uciInterface.UciDriver {
	return p.workers[0].GetUciHandlerPtr()
}

// IsReady initializes worker 0 (transposition table) and then hands the
// resulting TT pointer to every helper before initializing them -
// helpers must never allocate their own TT.
func (p *Pool) IsReady() {
	p.mu.Lock()
	main := p.workers[0]
	main.initialize()
	p.shareStateLocked()
	for i := 1; i < len(p.workers); i++ {
		p.workers[i].initialize()
	}
	p.mu.Unlock()
	if main.uciHandlerPtr != nil {
		main.uciHandlerPtr.SendReadyOk()
	} else {
		main.log.Debug("uci >> readyok")
	}
}

// NewGame stops any running search and resets every worker's state
// (history heuristics are per-worker; every worker clears the shared TT).
func (p *Pool) NewGame() {
	p.StopSearch()
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, w := range p.workers {
		w.NewGame()
	}
}

// ClearHash clears the shared transposition table via worker 0.
func (p *Pool) ClearHash() {
	p.workers[0].ClearHash()
}

// ResizeCache resizes the shared transposition table via worker 0 and
// re-propagates the new TT pointer to every helper.
func (p *Pool) ResizeCache() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.workers[0].ResizeCache()
	p.shareStateLocked()
}

// StartSearch launches the whole pool on the given position and budget.
// Worker 0 is the only worker whose result is reported; helpers are
// started as soon as worker 0's init phase completes and are told to
// stop as soon as worker 0 returns (whether by budget exhaustion or by
// an explicit StopSearch), mirroring the "main worker owns the timer"
// rule from the pool design.
func (p *Pool) StartSearch(pos position.Position, sl Limits) {
	p.mu.Lock()
	helpers := make([]*Search, len(p.workers)-1)
	copy(helpers, p.workers[1:])
	main := p.workers[0]
	// a node budget is checked by worker 0 against the sum over all
	// workers' counters. Plain unsynchronized reads are intended here -
	// a torn read only skews the moment the budget trips, never search
	// state. Helper counters are cleared up front so a previous search's
	// numbers can't trip the budget before the helpers reset themselves.
	main.nodesSum = nil
	if len(helpers) > 0 && sl.Nodes > 0 {
		workers := make([]*Search, len(p.workers))
		copy(workers, p.workers)
		for _, w := range helpers {
			w.nodesVisited = 0
		}
		main.nodesSum = func() uint64 {
			var total uint64
			for _, w := range workers {
				total += w.nodesVisited
			}
			return total
		}
	}
	p.mu.Unlock()

	main.StartSearch(pos, sl)
	for _, w := range helpers {
		w.StartSearch(pos, sl)
	}
	if len(helpers) > 0 {
		go func() {
			main.WaitWhileSearching()
			for _, w := range helpers {
				w.StopSearch()
			}
		}()
	}
}

// StopSearch stops every worker and blocks until all have returned.
func (p *Pool) StopSearch() {
	p.mu.Lock()
	workers := make([]*Search, len(p.workers))
	copy(workers, p.workers)
	p.mu.Unlock()
	for _, w := range workers {
		w.StopSearch()
	}
}

// IsSearching reports whether worker 0 (and thus the pool) is searching.
func (p *Pool) IsSearching() bool {
	return p.workers[0].IsSearching()
}

// WaitWhileSearching blocks until the whole pool has stopped.
func (p *Pool) WaitWhileSearching() {
	p.mu.Lock()
	workers := make([]*Search, len(p.workers))
	copy(workers, p.workers)
	p.mu.Unlock()
	for _, w := range workers {
		w.WaitWhileSearching()
	}
}

// LastSearchResult returns worker 0's result - the pool speaks with one
// voice, the other workers' partial results are discarded.
func (p *Pool) LastSearchResult() Result {
	return p.workers[0].LastSearchResult()
}

// NodesVisited sums each worker's node counter. This is an intentionally
// atomic-free sum: a torn read of a worker's in-progress counter only
// skews the reported total, it never corrupts search state.
func (p *Pool) NodesVisited() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	var total uint64
	for _, w := range p.workers {
		total += w.NodesVisited()
	}
	return total
}

// Statistics returns worker 0's statistics block.
func (p *Pool) Statistics() *Statistics {
	return p.workers[0].Statistics()
}
