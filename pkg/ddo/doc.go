// Package ddo provides branch-and-bound search over compiled decision
// diagrams for discrete maximization problems expressed as layered
// dynamic programs.
//
// # Architecture Overview
//
// The engine separates the immutable problem definition from the mutable
// search state, the same way the solvers this package is descended from
// separate model from state:
//
//	Problem/Relaxation/Ranking (immutable, user-supplied):
//	  - Transition system, relaxation, and state-ranking heuristic
//	  - Shared by all parallel workers (zero copy cost)
//
//	Subproblem (fringe element):
//	  - State, path value so far, upper bound, path prefix, depth
//	  - Popped from a shared priority fringe, expanded into a DD
//
// # How A Subproblem Is Solved
//
//  1. Pop the subproblem with the best upper bound from the fringe.
//  2. Compile a restricted DD (bounded width, squash by deletion).
//     Its terminal is a feasible lower bound; update the incumbent.
//  3. If the restricted DD was exact, the subproblem is fully solved.
//  4. Otherwise compile a relaxed DD (bounded width, squash by merge).
//     Its terminal is an upper bound; if it does not beat the
//     incumbent, discard. If exact, it is itself the optimum.
//  5. Otherwise extract the exact cutset and push one subproblem per
//     cutset node, each carrying a tightened local upper bound.
//
// Repeat until the fringe is empty or a CutoffPolicy fires.
//
// Package layout:
//
//	pkg/ddo/            — the search engine (this package)
//	internal/ddostats/  — lock-free solver statistics
package ddo
