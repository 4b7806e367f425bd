package ddo

import (
	"runtime"

	"github.com/gitrdm/ddoengine/internal/ddostats"
)

// SolverConfig holds the configuration a Solver is constructed with.
// Everything is set once at construction time via Option: Maximize
// takes no arguments beyond ctx, so a single config layer suffices.
type SolverConfig struct {
	Width    WidthPolicy
	Cutoff   CutoffPolicy
	TieBreak TieBreak
	Workers  int
	Monitor  *ddostats.SolverMonitor
}

// DefaultSolverConfig returns the configuration used when no Options
// are supplied: width 1 (caller must set a real width), no cutoff,
// depth-ascending tie-break, sequential (single-worker) search.
func DefaultSolverConfig() *SolverConfig {
	return &SolverConfig{
		Width:    FixedWidth(1),
		Cutoff:   NoCutoff{},
		TieBreak: TieBreakDepthAscending,
		Workers:  1,
	}
}

// Option configures a SolverConfig at construction time.
type Option func(*SolverConfig)

// WithWidth sets the DD width policy.
func WithWidth(w WidthPolicy) Option {
	return func(c *SolverConfig) { c.Width = w }
}

// WithCutoff sets the cutoff policy.
func WithCutoff(cutoff CutoffPolicy) Option {
	return func(c *SolverConfig) { c.Cutoff = cutoff }
}

// WithFringeTieBreak sets the fringe's deterministic tie-break rule.
func WithFringeTieBreak(t TieBreak) Option {
	return func(c *SolverConfig) { c.TieBreak = t }
}

// WithWorkers sets the number of parallel workers. A value of 0 resolves
// to runtime.NumCPU(); any other value <= 1 selects sequential search
// (no controller goroutines, no locking overhead).
func WithWorkers(n int) Option {
	return func(c *SolverConfig) {
		if n == 0 {
			n = runtime.NumCPU()
		}
		c.Workers = n
	}
}

// WithMonitor attaches a statistics monitor. Pass nil (the default) to
// disable monitoring entirely at zero cost (every ddostats method is a
// nil-safe no-op).
func WithMonitor(m *ddostats.SolverMonitor) Option {
	return func(c *SolverConfig) { c.Monitor = m }
}
