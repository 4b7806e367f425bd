package ddo

// Problem is the dynamic-programming transition system supplied by the
// user. The engine treats it as an opaque collaborator: it calls these
// methods but never introspects S's concrete shape.
//
// S must be comparable so a DD layer can key nodes by state in a plain
// Go map, enforcing at most one node per state per layer.
type Problem[S comparable] interface {
	// NbVariables returns the number of DP variables, constant for the
	// lifetime of the problem.
	NbVariables() int

	// InitialState returns the DP's starting state. Deterministic.
	InitialState() S

	// InitialValue returns the starting cost accumulated before any
	// decision is taken.
	InitialValue() int

	// ForEachInDomain enumerates every decision legal at (v, s) by
	// invoking yield once per decision. Implementations must invoke
	// yield with exactly the decisions Transition/TransitionCost accept
	// for this (v, s) pair.
	ForEachInDomain(v Variable, s S, yield func(Decision))

	// Transition returns the state reached by applying decision d to s.
	// Pure function: must be defined exactly when d is one ForEachInDomain
	// yields for (d.Variable, s).
	Transition(s S, d Decision) S

	// TransitionCost returns the arc weight of applying d to s. The
	// engine maximizes cumulative cost.
	TransitionCost(s S, d Decision) int

	// NextVariable picks which variable the next DD layer branches on,
	// given the current layer's states (so the choice may depend on
	// which variables remain free across all of them), or reports false
	// to terminate the DD at this layer.
	NextVariable(depth int, states func(yield func(S))) (Variable, bool)
}

// Relaxation maps a set of states to a single over-approximating state,
// and adjusts arc costs accordingly so no feasible completion's value
// is ever underestimated after a merge (relaxation-safety invariant).
type Relaxation[S comparable] interface {
	// Merge returns an over-approximating state for the states iterated
	// by states. states yields at least two elements; ErrEmptyMergeSet
	// is the user-contract violation for fewer than two.
	Merge(states func(yield func(S))) S

	// RelaxEdge returns the arc cost to use for an arc from src to dst
	// once dst has been folded into merged by a merge squash. cost is
	// the original arc's transition cost. The returned cost' must satisfy
	// cost' >= cost (ErrRelaxationWeakened otherwise) so merging never
	// makes the relaxed DD an under-approximation.
	RelaxEdge(src, dst, merged S, d Decision, cost int) int
}

// FastUpperBounder is an optional capability: any valid upper bound on
// completions from state s given the still-free variables. When a
// Relaxation implements it, local bounds are tightened by taking the
// min of the DD-derived bound and this one.
type FastUpperBounder[S comparable] interface {
	FastUpperBound(s S, free VarSet) int
}

// Ranking is the user-supplied state-ranking heuristic used to decide
// which nodes survive squashing. Compare must be a strict weak ordering;
// Compare(a, b) > 0 means a is more promising than b.
type Ranking[S comparable] interface {
	Compare(a, b S) int
}
