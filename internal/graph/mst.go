// Package graph reduces a point-connectivity graph to a minimum spanning
// tree and supplements it with a random fraction of the dropped edges.
package graph

import "math/rand"

// Edge connects two vertices identified by index, with a precomputed
// weight. Endpoint order carries no meaning.
type Edge struct {
	A      int
	B      int
	Weight float64
}

func (e Edge) key() [2]int {
	if e.A > e.B {
		return [2]int{e.B, e.A}
	}
	return [2]int{e.A, e.B}
}

// MinimumSpanningTree returns a minimum-weight tree over the vertices
// reachable from start, built by Prim's frontier expansion. Ties between
// equal-weight edges resolve to the earliest edge in the input order, so
// the result is deterministic for a fixed input. The returned slice has
// one edge per reachable vertex beyond the start.
func MinimumSpanningTree(vertexCount int, edges []Edge, start int) []Edge {
	if vertexCount == 0 || start < 0 || start >= vertexCount {
		return nil
	}

	inTree := make([]bool, vertexCount)
	inTree[start] = true
	tree := make([]Edge, 0, vertexCount-1)

	for len(tree) < vertexCount-1 {
		bestIdx := -1
		for i, e := range edges {
			// Frontier edge: exactly one endpoint already in the tree.
			if inTree[e.A] == inTree[e.B] {
				continue
			}
			if bestIdx == -1 || e.Weight < edges[bestIdx].Weight {
				bestIdx = i
			}
		}
		if bestIdx == -1 {
			break
		}
		e := edges[bestIdx]
		tree = append(tree, e)
		inTree[e.A] = true
		inTree[e.B] = true
	}

	return tree
}

// WithExtraEdges appends each non-tree edge back to the tree independently
// with probability keepChance, drawing one Float64 per candidate from rng in
// input order. keepChance 0 returns the tree unchanged; 1 restores every
// edge.
func WithExtraEdges(tree, all []Edge, keepChance float64, rng *rand.Rand) []Edge {
	selected := make([]Edge, len(tree), len(all))
	copy(selected, tree)

	inTree := make(map[[2]int]struct{}, len(tree))
	for _, e := range tree {
		inTree[e.key()] = struct{}{}
	}

	for _, e := range all {
		if _, ok := inTree[e.key()]; ok {
			continue
		}
		if rng.Float64() < keepChance {
			selected = append(selected, e)
		}
	}
	return selected
}
