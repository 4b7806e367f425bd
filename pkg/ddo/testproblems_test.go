package ddo

// Test fixtures: small DP problems with known-by-construction optima,
// used across dd_test.go, solver_test.go and controller_test.go. Kept
// in one file since several tests exercise the same instance from
// different angles (direct ddBuilder.Compile vs. full Solver.Maximize).

// --- 0/1 knapsack -----------------------------------------------------

type knapItem struct {
	weight int
	value  int
}

type knapState int

type knapsackFixture struct {
	items    []knapItem
	capacity int
}

func (p *knapsackFixture) NbVariables() int  { return len(p.items) }
func (p *knapsackFixture) InitialState() knapState { return knapState(p.capacity) }
func (p *knapsackFixture) InitialValue() int { return 0 }

func (p *knapsackFixture) ForEachInDomain(v Variable, s knapState, yield func(Decision)) {
	yield(Decision{Variable: v, Value: 0})
	if int(s) >= p.items[v].weight {
		yield(Decision{Variable: v, Value: 1})
	}
}

func (p *knapsackFixture) Transition(s knapState, d Decision) knapState {
	if d.Value == 0 {
		return s
	}
	return s - knapState(p.items[d.Variable].weight)
}

func (p *knapsackFixture) TransitionCost(s knapState, d Decision) int {
	if d.Value == 0 {
		return 0
	}
	return p.items[d.Variable].value
}

func (p *knapsackFixture) NextVariable(depth int, _ func(yield func(knapState))) (Variable, bool) {
	if depth >= len(p.items) {
		return 0, false
	}
	return Variable(depth), true
}

type knapsackRelax struct{}

func (knapsackRelax) Merge(states func(yield func(knapState))) knapState {
	best := knapState(-1)
	states(func(s knapState) {
		if s > best {
			best = s
		}
	})
	return best
}

func (knapsackRelax) RelaxEdge(src, dst, merged knapState, d Decision, cost int) int { return cost }

type knapsackRank struct{}

func (knapsackRank) Compare(a, b knapState) int { return int(a) - int(b) }

// knapsackA: optimal value is 220, taking items 1 and 2 (weights
// 20+30=50, values 100+120=220); every other feasible subset scores
// lower.
func knapsackA() *knapsackFixture {
	return &knapsackFixture{
		items: []knapItem{
			{weight: 10, value: 60},
			{weight: 20, value: 100},
			{weight: 30, value: 120},
		},
		capacity: 50,
	}
}

// knapsackB (tight): optimal value is 11, taking items {0, 1} (weights
// 3+2, the full capacity of 5); {0, 2} also fills it but scores 10.
func knapsackB() *knapsackFixture {
	return &knapsackFixture{
		items: []knapItem{
			{weight: 3, value: 6},
			{weight: 2, value: 5},
			{weight: 2, value: 4},
		},
		capacity: 5,
	}
}

// knapsackC (infeasible selection): the one item is too heavy for the
// capacity, so the optimal value is 0 (leave it out).
func knapsackC() *knapsackFixture {
	return &knapsackFixture{
		items:    []knapItem{{weight: 2, value: 10}},
		capacity: 1,
	}
}

// --- maximum independent set on a 5-cycle ------------------------------

// mispState tracks whether the immediately preceding vertex was
// included (for the path constraint) and whether vertex 0 was included
// (for the cycle's wrap-around edge between vertex 4 and vertex 0).
type mispState struct {
	lastIncluded  bool
	firstIncluded bool
}

type mispC5Fixture struct{}

func (mispC5Fixture) NbVariables() int          { return 5 }
func (mispC5Fixture) InitialState() mispState   { return mispState{} }
func (mispC5Fixture) InitialValue() int         { return 0 }

func (mispC5Fixture) ForEachInDomain(v Variable, s mispState, yield func(Decision)) {
	yield(Decision{Variable: v, Value: 0})
	switch {
	case v == 4:
		if !s.lastIncluded && !s.firstIncluded {
			yield(Decision{Variable: v, Value: 1})
		}
	default:
		if !s.lastIncluded {
			yield(Decision{Variable: v, Value: 1})
		}
	}
}

func (mispC5Fixture) Transition(s mispState, d Decision) mispState {
	included := d.Value == 1
	first := s.firstIncluded || (d.Variable == 0 && included)
	return mispState{lastIncluded: included, firstIncluded: first}
}

func (mispC5Fixture) TransitionCost(s mispState, d Decision) int { return d.Value }

func (mispC5Fixture) NextVariable(depth int, _ func(yield func(mispState))) (Variable, bool) {
	if depth >= 5 {
		return 0, false
	}
	return Variable(depth), true
}

type mispRelax struct{}

func (mispRelax) Merge(states func(yield func(mispState))) mispState {
	// The least constraining over-approximation: neither flag set, so
	// every future decision the merged states could have made stays
	// legal (an upper bound on completions, never an underestimate).
	return mispState{}
}

func (mispRelax) RelaxEdge(src, dst, merged mispState, d Decision, cost int) int { return cost }

type mispRank struct{}

func (mispRank) Compare(a, b mispState) int {
	score := func(s mispState) int {
		n := 0
		if !s.lastIncluded {
			n++
		}
		if !s.firstIncluded {
			n++
		}
		return n
	}
	return score(a) - score(b)
}

// --- trivial MAX2SAT ----------------------------------------------------
//
// Four clauses over two boolean variables, all weight 1:
// (x0 ∨ x1), (¬x0 ∨ x1), (x0 ∨ ¬x1), (¬x0 ∨ ¬x1). No assignment
// satisfies all four (they're pairwise exhaustive over (x0, x1)), so
// the optimum is 3, attained by every assignment.

// max2satState remembers x0's assignment so the cost of all four
// clauses can be attributed once x1 is decided; unassigned is never
// observed past depth 0.
type max2satState int

const max2satUnassigned max2satState = -1

type max2satFixture struct{}

func (max2satFixture) NbVariables() int               { return 2 }
func (max2satFixture) InitialState() max2satState     { return max2satUnassigned }
func (max2satFixture) InitialValue() int              { return 0 }

func (max2satFixture) ForEachInDomain(v Variable, _ max2satState, yield func(Decision)) {
	yield(Decision{Variable: v, Value: 0})
	yield(Decision{Variable: v, Value: 1})
}

func (max2satFixture) Transition(s max2satState, d Decision) max2satState {
	if d.Variable == 0 {
		return max2satState(d.Value)
	}
	return s
}

// TransitionCost counts satisfied clauses among (x0 ∨ x1),
// (¬x0 ∨ x1), (x0 ∨ ¬x1) and (¬x0 ∨ ¬x1), attributed entirely to the
// x1 decision once both values are known.
func (max2satFixture) TransitionCost(s max2satState, d Decision) int {
	if d.Variable == 0 {
		return 0
	}
	x0, x1 := int(s), d.Value
	cost := 0
	if x0 == 1 || x1 == 1 {
		cost++
	}
	if x0 == 0 || x1 == 1 {
		cost++
	}
	if x0 == 1 || x1 == 0 {
		cost++
	}
	if x0 == 0 || x1 == 0 {
		cost++
	}
	return cost
}

func (max2satFixture) NextVariable(depth int, _ func(yield func(max2satState))) (Variable, bool) {
	if depth >= 2 {
		return 0, false
	}
	return Variable(depth), true
}

type max2satRelax struct{}

func (max2satRelax) Merge(states func(yield func(max2satState))) max2satState {
	return max2satUnassigned
}

func (max2satRelax) RelaxEdge(src, dst, merged max2satState, d Decision, cost int) int {
	return cost
}

type max2satRank struct{}

func (max2satRank) Compare(a, b max2satState) int { return int(a) - int(b) }
