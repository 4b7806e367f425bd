package ddo

import (
	"context"
	"math"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// controller runs the fixed k-worker parallel branch-and-bound loop:
// every worker shares the one Fringe and one Incumbent already on
// Solver, but each owns an independent ddBuilder since DD compilation
// mutates builder-local scratch state. Termination is detected with a
// busy counter guarded by a condition variable: the shared priority
// fringe is the single coordination point, not a separate work queue.
type controller[S comparable] struct {
	mu   sync.Mutex
	cond *sync.Cond
	busy int
	stop bool
}

func newController[S comparable]() *controller[S] {
	c := &controller[S]{}
	c.cond = sync.NewCond(&c.mu)
	return c
}

// maximizeParallel is Solver.Maximize's entry point when
// SolverConfig.Workers > 1.
func (s *Solver[S]) maximizeParallel(ctx context.Context) (Outcome, error) {
	start := time.Now()
	root := &Subproblem[S]{
		State: s.problem.InitialState(),
		Value: s.problem.InitialValue(),
		UB:    math.MaxInt,
		Depth: 0,
	}
	s.fringe.Push(root)

	ctrl := newController[S]()
	workerCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// watcher wakes every waiting worker once ctx is done or the
	// cutoff policy fires, since sync.Cond itself has no timeout.
	go func() {
		ticker := time.NewTicker(5 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				ctrl.signalStop()
				return
			case <-ticker.C:
				if s.config.Cutoff.Fired(start) {
					cancel()
					ctrl.signalStop()
					return
				}
			}
		}
	}()

	builders := make([]*ddBuilder[S], s.config.Workers)
	for i := range builders {
		builders[i] = newDDBuilder[S](s.problem, s.relax, s.rank, s.config.Width, s.config.Monitor)
	}

	var g errgroup.Group
	for i := 0; i < s.config.Workers; i++ {
		builder := builders[i]
		g.Go(func() error {
			err := s.runWorker(workerCtx, ctrl, builder)
			if err != nil {
				cancel()
				ctrl.signalStop()
			}
			return err
		})
	}
	err := g.Wait()

	if s.config.Monitor != nil {
		s.config.Monitor.FinishSearch()
	}

	if err != nil {
		return s.finalOutcome(false), err
	}
	if workerCtx.Err() != nil {
		if s.config.Cutoff.Fired(start) {
			return s.finalOutcome(false), ErrCutoffReached
		}
		return s.finalOutcome(false), ctx.Err()
	}
	return s.finalOutcome(true), nil
}

// runWorker is one of the k equal peers: pop best, process, repeat,
// until the fringe is drained with no worker still busy, or the
// controller is told to stop.
func (s *Solver[S]) runWorker(ctx context.Context, ctrl *controller[S], builder *ddBuilder[S]) error {
	for {
		sp, shouldReturn := ctrl.acquireWork(s.fringe)
		if shouldReturn {
			return nil
		}
		if ctx.Err() != nil {
			ctrl.release()
			return nil
		}
		if s.config.Monitor != nil {
			s.config.Monitor.RecordFringePop()
		}

		if best, have := s.bestValue(); !have || sp.UB > best {
			if err := s.processSubproblemConcurrent(sp, builder); err != nil {
				ctrl.release()
				return err
			}
		}
		ctrl.release()
	}
}

// processSubproblemConcurrent is processSubproblem's parallel-safe
// twin: it takes an explicit builder (one per worker) instead of
// Solver's single shared one.
func (s *Solver[S]) processSubproblemConcurrent(sp *Subproblem[S], builder *ddBuilder[S]) error {
	restricted, err := builder.Compile(ModeRestricted, sp)
	if err != nil {
		return err
	}
	s.tryUpdateIncumbent(restricted)
	if restricted.IsExact {
		return nil
	}

	relaxed, err := builder.Compile(ModeRelaxed, sp)
	if err != nil {
		return err
	}
	if best, have := s.bestValue(); have && relaxed.HasTerminal && relaxed.TerminalValue <= best {
		return nil // the relaxed upper bound cannot beat the incumbent; discard
	}
	if relaxed.IsExact {
		// Only an exact relaxed DD's terminal is a real, feasible
		// completion; a merged one is an over-approximating upper
		// bound whose path walks RelaxEdge-adjusted back-edges, not
		// true transitions, so it must never reach the incumbent.
		s.tryUpdateIncumbent(relaxed)
		return nil
	}

	for _, child := range relaxed.Cutset {
		if best, have := s.bestValue(); have && child.UB <= best {
			continue
		}
		s.fringe.Push(child)
		if s.config.Monitor != nil {
			s.config.Monitor.RecordFringePush(s.fringe.Len())
		}
	}
	return nil
}

// acquireWork blocks until either a subproblem is available (marking
// the caller busy so concurrent terminate checks see it as in-flight)
// or termination is reached (the fringe is empty and no worker is
// busy) or a stop was signaled externally.
func (c *controller[S]) acquireWork(fringe *Fringe[S]) (*Subproblem[S], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for {
		if c.stop {
			return nil, true
		}
		if sp := fringe.PopBest(); sp != nil {
			c.busy++
			return sp, false
		}
		if c.busy == 0 {
			c.stop = true
			c.cond.Broadcast()
			return nil, true
		}
		c.cond.Wait()
	}
}

func (c *controller[S]) release() {
	c.mu.Lock()
	c.busy--
	c.cond.Broadcast()
	c.mu.Unlock()
}

func (c *controller[S]) signalStop() {
	c.mu.Lock()
	c.stop = true
	c.cond.Broadcast()
	c.mu.Unlock()
}
