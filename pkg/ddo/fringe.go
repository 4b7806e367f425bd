package ddo

import (
	"container/heap"
	"sync"
)

// TieBreak selects the deterministic tie-break rule the Fringe applies
// when two subproblems share the same upper bound, so that a given
// problem/relaxation/ranking/width combination always explores nodes
// in the same relative order.
type TieBreak int

const (
	// TieBreakDepthAscending prefers the shallower subproblem.
	TieBreakDepthAscending TieBreak = iota
	// TieBreakRankDescending prefers the subproblem whose state the
	// user's Ranking considers more promising.
	TieBreakRankDescending
)

// fringeHeap is the container/heap.Interface implementation backing
// Fringe. It is not safe for concurrent use on its own; Fringe adds the
// locking the parallel controller relies on, rather than baking
// synchronization into the heap itself.
type fringeHeap[S comparable] struct {
	items    []*Subproblem[S]
	tieBreak TieBreak
	rank     Ranking[S]
}

func (h *fringeHeap[S]) Len() int { return len(h.items) }

func (h *fringeHeap[S]) Less(i, j int) bool {
	a, b := h.items[i], h.items[j]
	if a.UB != b.UB {
		return a.UB > b.UB // best-first: larger upper bound first
	}
	switch h.tieBreak {
	case TieBreakRankDescending:
		if h.rank != nil {
			if c := h.rank.Compare(a.State, b.State); c != 0 {
				return c > 0
			}
		}
		return a.Depth < b.Depth
	default: // TieBreakDepthAscending
		return a.Depth < b.Depth
	}
}

func (h *fringeHeap[S]) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }

func (h *fringeHeap[S]) Push(x any) {
	h.items = append(h.items, x.(*Subproblem[S]))
}

func (h *fringeHeap[S]) Pop() any {
	old := h.items
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	h.items = old[:n-1]
	return item
}

// Fringe is a mutex-guarded priority queue of open subproblems, ordered
// best-first on UB with a deterministic tie-break. A single Fringe is
// shared by every worker in the parallel controller; all operations
// below acquire its lock, the engine's one coordination point.
type Fringe[S comparable] struct {
	mu sync.Mutex
	h  fringeHeap[S]
}

// NewFringe creates an empty Fringe using the given tie-break rule. rank
// may be nil unless tieBreak is TieBreakRankDescending.
func NewFringe[S comparable](tieBreak TieBreak, rank Ranking[S]) *Fringe[S] {
	return &Fringe[S]{h: fringeHeap[S]{tieBreak: tieBreak, rank: rank}}
}

// Push inserts a subproblem.
func (f *Fringe[S]) Push(sp *Subproblem[S]) {
	f.mu.Lock()
	heap.Push(&f.h, sp)
	f.mu.Unlock()
}

// PopBest removes and returns the subproblem with the greatest UB
// (ties broken deterministically), or nil if the fringe is empty.
func (f *Fringe[S]) PopBest() *Subproblem[S] {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.h.Len() == 0 {
		return nil
	}
	return heap.Pop(&f.h).(*Subproblem[S])
}

// Len returns the number of open subproblems.
func (f *Fringe[S]) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.h.Len()
}

// Clear discards all open subproblems.
func (f *Fringe[S]) Clear() {
	f.mu.Lock()
	f.h.items = nil
	f.mu.Unlock()
}

// PeekBestUB returns the UB of the best open subproblem without
// popping it, and whether the fringe was non-empty.
func (f *Fringe[S]) PeekBestUB() (int, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.h.Len() == 0 {
		return 0, false
	}
	return f.h.items[0].UB, true
}
