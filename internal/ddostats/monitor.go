// Package ddostats provides lock-free monitoring and statistics for the
// ddo solver: every Record method is a no-op on a nil receiver so
// instrumentation can be threaded through hot paths unconditionally,
// and every counter is updated with a single atomic instruction rather
// than a lock.
package ddostats

import (
	"fmt"
	"sync/atomic"
	"time"
)

// SolverStats holds a point-in-time snapshot of search statistics.
type SolverStats struct {
	RestrictedCompiles int64
	RelaxedCompiles    int64
	NodesDeleted       int64
	NodesMerged        int64
	CutsetSize         int64 // cumulative, across all relaxed compiles
	IncumbentUpdates   int64
	FringePushed       int64
	FringePopped       int64
	PeakFringeLen      int64
	SearchTime         time.Duration
}

// SolverMonitor provides lock-free monitoring capabilities for the DD
// solver. All operations use atomic instructions for safe concurrent
// access from every worker in the parallel controller without locks.
type SolverMonitor struct {
	stats     SolverStats
	startTime time.Time
}

// NewSolverMonitor creates a new solver monitor.
func NewSolverMonitor() *SolverMonitor {
	return &SolverMonitor{startTime: time.Now()}
}

// GetStats returns a consistent snapshot of the current statistics.
// Safe to call concurrently. Returns nil if m is nil.
func (m *SolverMonitor) GetStats() *SolverStats {
	if m == nil {
		return nil
	}
	return &SolverStats{
		RestrictedCompiles: atomic.LoadInt64(&m.stats.RestrictedCompiles),
		RelaxedCompiles:    atomic.LoadInt64(&m.stats.RelaxedCompiles),
		NodesDeleted:       atomic.LoadInt64(&m.stats.NodesDeleted),
		NodesMerged:        atomic.LoadInt64(&m.stats.NodesMerged),
		CutsetSize:         atomic.LoadInt64(&m.stats.CutsetSize),
		IncumbentUpdates:   atomic.LoadInt64(&m.stats.IncumbentUpdates),
		FringePushed:       atomic.LoadInt64(&m.stats.FringePushed),
		FringePopped:       atomic.LoadInt64(&m.stats.FringePopped),
		PeakFringeLen:      atomic.LoadInt64(&m.stats.PeakFringeLen),
		SearchTime:         m.stats.SearchTime, // only written once, at FinishSearch
	}
}

// RecordRestrictedCompile records compiling a restricted DD.
func (m *SolverMonitor) RecordRestrictedCompile() {
	if m == nil {
		return
	}
	atomic.AddInt64(&m.stats.RestrictedCompiles, 1)
}

// RecordRelaxedCompile records compiling a relaxed DD.
func (m *SolverMonitor) RecordRelaxedCompile() {
	if m == nil {
		return
	}
	atomic.AddInt64(&m.stats.RelaxedCompiles, 1)
}

// RecordNodesDeleted records restricted-mode deletion squashing.
func (m *SolverMonitor) RecordNodesDeleted(n int) {
	if m == nil {
		return
	}
	atomic.AddInt64(&m.stats.NodesDeleted, int64(n))
}

// RecordNodesMerged records relaxed-mode merge squashing.
func (m *SolverMonitor) RecordNodesMerged(n int) {
	if m == nil {
		return
	}
	atomic.AddInt64(&m.stats.NodesMerged, int64(n))
}

// RecordCutset records the size of an extracted exact cutset.
func (m *SolverMonitor) RecordCutset(n int) {
	if m == nil {
		return
	}
	atomic.AddInt64(&m.stats.CutsetSize, int64(n))
}

// RecordIncumbentUpdate records a strict incumbent improvement.
func (m *SolverMonitor) RecordIncumbentUpdate() {
	if m == nil {
		return
	}
	atomic.AddInt64(&m.stats.IncumbentUpdates, 1)
}

// RecordFringePush records pushing a subproblem and the fringe length
// observed immediately after the push, for peak tracking.
func (m *SolverMonitor) RecordFringePush(lenAfter int) {
	if m == nil {
		return
	}
	atomic.AddInt64(&m.stats.FringePushed, 1)
	m.recordPeakFringeLen(lenAfter)
}

// RecordFringePop records popping a subproblem.
func (m *SolverMonitor) RecordFringePop() {
	if m == nil {
		return
	}
	atomic.AddInt64(&m.stats.FringePopped, 1)
}

func (m *SolverMonitor) recordPeakFringeLen(n int) {
	n64 := int64(n)
	for {
		old := atomic.LoadInt64(&m.stats.PeakFringeLen)
		if n64 <= old {
			return
		}
		if atomic.CompareAndSwapInt64(&m.stats.PeakFringeLen, old, n64) {
			return
		}
	}
}

// FinishSearch marks the end of the search process. Called once, after
// every worker has stopped, so it needs no synchronization.
func (m *SolverMonitor) FinishSearch() {
	if m == nil {
		return
	}
	m.stats.SearchTime = time.Since(m.startTime)
}

// String returns a formatted report of the statistics snapshot.
func (s *SolverStats) String() string {
	return fmt.Sprintf(
		"Solver Statistics:\n"+
			"  Restricted Compiles: %d\n"+
			"  Relaxed Compiles:    %d\n"+
			"  Nodes Deleted:       %d\n"+
			"  Nodes Merged:        %d\n"+
			"  Cutset Size (total): %d\n"+
			"  Incumbent Updates:   %d\n"+
			"  Fringe Pushed:       %d\n"+
			"  Fringe Popped:       %d\n"+
			"  Peak Fringe Length:  %d\n"+
			"  Search Time:         %v\n",
		s.RestrictedCompiles,
		s.RelaxedCompiles,
		s.NodesDeleted,
		s.NodesMerged,
		s.CutsetSize,
		s.IncumbentUpdates,
		s.FringePushed,
		s.FringePopped,
		s.PeakFringeLen,
		s.SearchTime,
	)
}
