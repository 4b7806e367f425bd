package ddo

// exactCutsetLayer returns the deepest layer index (0..lastLayerIdx) in
// which every node's exact flag is true. Layer 0 (the DD root) always
// qualifies, so a result is always found. Every layer is checked rather
// than stopping at the first one touched by a squash, so a lineage that
// re-converges onto an already-exact node after an upstream merge still
// counts as exact at that depth, giving a strictly tighter cutset.
func (b *ddBuilder[S]) exactCutsetLayer(lastLayerIdx int) int {
	for k := lastLayerIdx; k >= 0; k-- {
		allExact := true
		for i := range b.layers[k].nodes {
			if !b.layers[k].nodes[i].exact {
				allExact = false
				break
			}
		}
		if allExact {
			return k
		}
	}
	return 0
}

// suffixBounds computes, for every node up to and including
// lastLayerIdx, an upper bound on the longest path from that node to
// the DD's terminal layer. suffix[lastLayerIdx] is all zero (those
// nodes are themselves terminal).
//
// This replays ForEachInDomain/Transition per node against each
// finalized (post-squash) next layer, rather than inferring a node's
// children from the next layer's recorded back-edges: insertOrUpdate
// and squashRelaxed retain only the single highest-vp contributor's
// back-edge per surviving state, so a parent that loses every one of
// those collisions would otherwise look childless even though its
// transitions still land on states the DD kept — understating its
// true forward reachability and handing out an unsound (too low)
// upper bound. Replaying the domain directly finds every transition a
// node actually has, whether or not it won that race.
func (b *ddBuilder[S]) suffixBounds(lastLayerIdx int) [][]int {
	suffix := make([][]int, lastLayerIdx+1)
	suffix[lastLayerIdx] = make([]int, len(b.layers[lastLayerIdx].nodes))
	for k := lastLayerIdx - 1; k >= 0; k-- {
		cur := &b.layers[k]
		next := &b.layers[k+1]
		v := b.varByLayer[k]

		mergedSlot := -1
		for i := range next.nodes {
			if next.nodes[i].relaxed {
				mergedSlot = i
				break
			}
		}

		s := make([]int, len(cur.nodes))
		for slot := range cur.nodes {
			n := &cur.nodes[slot]
			best := 0 // a node with no surviving transition contributes nothing further
			b.problem.ForEachInDomain(v, n.state, func(d Decision) {
				destState := b.problem.Transition(n.state, d)
				cost := b.problem.TransitionCost(n.state, d)

				childSlot, found := next.index[destState]
				if !found {
					if mergedSlot < 0 {
						return // the destination was dropped by deletion squashing
					}
					childSlot = mergedSlot
				}

				child := &next.nodes[childSlot]
				edgeCost := cost
				if child.relaxed {
					edgeCost = b.relax.RelaxEdge(n.state, destState, child.state, d, cost)
				}
				if val := edgeCost + suffix[k+1][childSlot]; val > best {
					best = val
				}
			})
			s[slot] = best
		}
		suffix[k] = s
	}
	return suffix
}

// extractCutset builds the fringe subproblems for every node in the
// deepest fully-exact layer of a just-compiled relaxed DD. Each
// subproblem's UB is the node's own vp plus the longest structural path
// to the terminal, tightened by an optional FastUpperBounder invoked
// here, at cutset promotion, rather than per node during expansion,
// since promotion happens once per relaxed compile while expansion
// happens many times more often.
func (b *ddBuilder[S]) extractCutset(sp *Subproblem[S], lastLayerIdx int) []*Subproblem[S] {
	cutsetLayer := b.exactCutsetLayer(lastLayerIdx)
	suffix := b.suffixBounds(lastLayerIdx)
	bounder, hasFastBound := b.relax.(FastUpperBounder[S])

	l := &b.layers[cutsetLayer]
	free := b.freeByLayer[cutsetLayer]
	out := make([]*Subproblem[S], 0, len(l.nodes))
	for slot := range l.nodes {
		n := &l.nodes[slot]
		structural := suffix[cutsetLayer][slot]
		bound := structural
		if hasFastBound {
			if fb := bounder.FastUpperBound(n.state, free); fb < bound {
				bound = fb
			}
		}
		id := NodeID{Layer: cutsetLayer, Slot: slot}
		out = append(out, &Subproblem[S]{
			State:  n.state,
			Value:  sp.Value + n.vp,
			UB:     sp.Value + n.vp + bound,
			Prefix: b.reconstructPath(sp, id),
			Depth:  sp.Depth + cutsetLayer,
		})
	}
	return out
}
