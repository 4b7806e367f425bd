package ddo

import (
	"context"
	"math"
	"sync"
	"time"
)

// Outcome is the result of Maximize: the best value found (nil if the
// problem is infeasible) and whether it is proven optimal.
type Outcome struct {
	BestValue *int
	IsExact   bool
}

// Solver is the sequential branch-and-bound engine: one shared Fringe,
// one Incumbent, one reused ddBuilder.
type Solver[S comparable] struct {
	problem Problem[S]
	relax   Relaxation[S]
	rank    Ranking[S]
	config  *SolverConfig

	fringe  *Fringe[S]
	builder *ddBuilder[S]

	incumbentMu sync.Mutex
	incumbent   Incumbent[S]
}

// New constructs a Solver for problem/relax using the given state
// ranking (used both for squash ordering and, optionally, fringe
// tie-breaks) and configuration options.
func New[S comparable](problem Problem[S], relax Relaxation[S], rank Ranking[S], opts ...Option) *Solver[S] {
	cfg := DefaultSolverConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Solver[S]{
		problem: problem,
		relax:   relax,
		rank:    rank,
		config:  cfg,
		fringe:  NewFringe[S](cfg.TieBreak, rank),
		builder: newDDBuilder[S](problem, relax, rank, cfg.Width, cfg.Monitor),
	}
}

// Maximize runs branch-and-bound to completion, to ctx cancellation, or
// to the configured CutoffPolicy firing, whichever comes first.
// Sequential when SolverConfig.Workers <= 1; otherwise delegates to the
// parallel controller (controller.go).
func (s *Solver[S]) Maximize(ctx context.Context) (Outcome, error) {
	if s.config.Workers > 1 {
		return s.maximizeParallel(ctx)
	}
	return s.maximizeSequential(ctx)
}

func (s *Solver[S]) maximizeSequential(ctx context.Context) (Outcome, error) {
	start := time.Now()
	root := &Subproblem[S]{
		State: s.problem.InitialState(),
		Value: s.problem.InitialValue(),
		UB:    math.MaxInt,
		Depth: 0,
	}
	s.fringe.Push(root)
	if s.config.Monitor != nil {
		s.config.Monitor.RecordFringePush(s.fringe.Len())
	}

	for {
		select {
		case <-ctx.Done():
			return s.cutoffOutcome(), ctx.Err()
		default:
		}
		if s.config.Cutoff.Fired(start) {
			return s.cutoffOutcome(), ErrCutoffReached
		}

		sp := s.fringe.PopBest()
		if sp == nil {
			break
		}
		if s.config.Monitor != nil {
			s.config.Monitor.RecordFringePop()
		}

		if best, have := s.bestValue(); have && sp.UB <= best {
			continue // cannot improve on the incumbent; prune
		}

		if err := s.processSubproblem(sp); err != nil {
			return s.cutoffOutcome(), err
		}
	}

	if s.config.Monitor != nil {
		s.config.Monitor.FinishSearch()
	}
	return s.finalOutcome(true), nil
}

// processSubproblem compiles a restricted DD for sp (a feasible
// lower-bounding solution) and, if that restricted DD needed squashing
// (meaning sp is not yet fully solved), a relaxed DD whose exact cutset
// is re-enqueued.
func (s *Solver[S]) processSubproblem(sp *Subproblem[S]) error {
	restricted, err := s.builder.Compile(ModeRestricted, sp)
	if err != nil {
		return err
	}
	s.tryUpdateIncumbent(restricted)
	if restricted.IsExact {
		return nil // sp fully solved by the restricted compile alone
	}

	relaxed, err := s.builder.Compile(ModeRelaxed, sp)
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

// tryUpdateIncumbent is safe for concurrent use by the parallel
// controller's worker goroutines; it is the engine's one piece of
// shared mutable state besides the Fringe.
func (s *Solver[S]) tryUpdateIncumbent(result CompileResult[S]) {
	if !result.HasTerminal {
		return
	}
	s.incumbentMu.Lock()
	defer s.incumbentMu.Unlock()
	if !s.incumbent.HaveValue || result.TerminalValue > s.incumbent.BestValue {
		s.incumbent = Incumbent[S]{
			HaveValue: true,
			BestValue: result.TerminalValue,
			BestPath:  result.BestPath,
		}
		if s.config.Monitor != nil {
			s.config.Monitor.RecordIncumbentUpdate()
		}
	}
}

func (s *Solver[S]) bestValue() (int, bool) {
	s.incumbentMu.Lock()
	defer s.incumbentMu.Unlock()
	return s.incumbent.BestValue, s.incumbent.HaveValue
}

func (s *Solver[S]) cutoffOutcome() Outcome {
	if s.config.Monitor != nil {
		s.config.Monitor.FinishSearch()
	}
	return s.finalOutcome(false)
}

func (s *Solver[S]) finalOutcome(proved bool) Outcome {
	best, have := s.bestValue()
	if !have {
		return Outcome{IsExact: proved}
	}
	return Outcome{BestValue: &best, IsExact: proved}
}

// BestSolution returns the decisions of the best feasible solution
// found so far, and whether one has been found.
func (s *Solver[S]) BestSolution() ([]Decision, bool) {
	s.incumbentMu.Lock()
	defer s.incumbentMu.Unlock()
	return s.incumbent.BestPath, s.incumbent.HaveValue
}

// BestLowerBound returns the incumbent's value and whether one exists.
func (s *Solver[S]) BestLowerBound() (int, bool) {
	return s.bestValue()
}

// BestUpperBound returns the largest UB among the subproblems still
// waiting in the fringe, or false if the fringe is empty. Subproblems a
// worker has already popped and is still compiling are not included,
// and neither is the incumbent's value.
func (s *Solver[S]) BestUpperBound() (int, bool) {
	return s.fringe.PeekBestUB()
}
