package knuthbendix

import (
	"bytes"
	"context"
	"iter"
	"slices"
)

// Infinite is the marker Size returns for infinite structures.
const Infinite = Unbounded

// GilmanDigraph returns the Gilman automaton of the completed system, built
// once and cached. Its states are the root plus the distinct proper
// prefixes of active-rule left sides; for each state w and letter x there
// is an edge to wx when wx is again a state, and otherwise, provided wx
// contains no left side as a factor, to the longest suffix of wx that is a
// state. Paths from the root spell exactly the normal forms.
//
// Building the digraph requires a confluent system, so this runs completion
// with the rule cap lifted; it returns ErrNotConfluent when completion
// still stops short (for example under a bounded MaxOverlap).
func (kb *KnuthBendix) GilmanDigraph(ctx context.Context) (*WordGraph, error) {
	if kb.gilman != nil {
		return kb.gilman, nil
	}
	if len(kb.p.alphabet) == 0 {
		kb.gilman = NewWordGraph(0, 0)
		return kb.gilman, nil
	}
	// Lift the cap so the run really completes.
	kb.settings.maxRules = Unbounded
	if err := kb.Run(ctx); err != nil {
		return nil, err
	}
	if !kb.Confluent() {
		return nil, ErrNotConfluent
	}

	prefixes := map[string]uint32{"": 0}
	next := uint32(1)
	for _, r := range kb.activeRules {
		for k := 1; k < len(r.lhs); k++ {
			w := string(r.lhs[:k])
			if _, ok := prefixes[w]; !ok {
				prefixes[w] = next
				next++
			}
		}
	}

	g := NewWordGraph(int(next), len(kb.p.alphabet))
	for w, src := range prefixes {
		for x := 0; x < len(kb.p.alphabet); x++ {
			s := w + string([]byte{byte(x)})
			if tgt, ok := prefixes[s]; ok {
				g.AddEdge(src, tgt, x)
				continue
			}
			if kb.containsActiveLHS([]byte(s)) {
				continue // s is reducible: no transition
			}
			for len(s) > 0 {
				s = s[1:]
				if tgt, ok := prefixes[s]; ok {
					g.AddEdge(src, tgt, x)
					break
				}
			}
		}
	}
	kb.gilman = g
	return g, nil
}

func (kb *KnuthBendix) containsActiveLHS(s []byte) bool {
	for _, r := range kb.activeRules {
		if bytes.Contains(s, r.lhs) {
			return true
		}
	}
	return false
}

// Size runs completion and counts the elements of the presented structure,
// returning Infinite for infinite ones. An obvious-infiniteness pre-check
// (a letter in no relation, or fewer relations than letters) answers
// without running; otherwise the normal forms are counted on the Gilman
// digraph, where a reachable cycle means infinitely many.
func (kb *KnuthBendix) Size(ctx context.Context) (uint64, error) {
	if kb.obviouslyInfinite() {
		return Infinite, nil
	}
	if len(kb.p.alphabet) == 0 {
		if kb.p.ContainsEmptyWord {
			return 1, nil
		}
		return 0, nil
	}
	g, err := kb.GilmanDigraph(ctx)
	if err != nil {
		return 0, err
	}
	count, infinite := countPaths(g)
	if infinite {
		return Infinite, nil
	}
	if !kb.p.ContainsEmptyWord {
		count-- // the empty path does not name an element of a semigroup
	}
	return count, nil
}

// obviouslyInfinite is a sound, cheap pre-check: a letter that occurs in no
// relation generates a free factor, and fewer relations than letters cannot
// collapse the free structure to a finite one.
func (kb *KnuthBendix) obviouslyInfinite() bool {
	n := len(kb.p.alphabet)
	if n == 0 {
		return false
	}
	if len(kb.relations) < n {
		return true
	}
	seen := make([]bool, n)
	for _, rel := range kb.relations {
		for _, w := range rel {
			for i := 0; i < len(w); i++ {
				seen[kb.p.index[w[i]]] = true
			}
		}
	}
	for _, s := range seen {
		if !s {
			return true
		}
	}
	return false
}

// countPaths counts the paths (including the empty one) starting at node 0,
// reporting infinite when a cycle is reachable from it.
func countPaths(g *WordGraph) (uint64, bool) {
	if g.NumberOfNodes() == 0 {
		return 1, false
	}
	const (
		white = iota
		grey
		black
	)
	state := make([]uint8, g.NumberOfNodes())
	memo := make([]uint64, g.NumberOfNodes())
	infinite := false
	var visit func(n uint32) uint64
	visit = func(n uint32) uint64 {
		switch state[n] {
		case grey:
			infinite = true
			return 0
		case black:
			return memo[n]
		}
		state[n] = grey
		total := uint64(1)
		for x := 0; x < g.OutDegree(); x++ {
			if t, ok := g.Neighbor(n, x); ok {
				total += visit(t)
				if infinite {
					break
				}
			}
		}
		state[n] = black
		memo[n] = total
		return total
	}
	total := visit(0)
	return total, infinite
}

// NormalForms returns the normal forms in shortlex order as a lazy
// sequence: breadth-first paths of the Gilman digraph. For infinite
// structures the sequence is infinite; the consumer decides when to stop.
// A nil sequence is returned if the digraph cannot be built.
func (kb *KnuthBendix) NormalForms(ctx context.Context) iter.Seq[string] {
	return func(yield func(string) bool) {
		g, err := kb.GilmanDigraph(ctx)
		if err != nil {
			return
		}
		if kb.p.ContainsEmptyWord && !yield("") {
			return
		}
		if g.NumberOfNodes() == 0 {
			return
		}
		type item struct {
			node uint32
			word []byte
		}
		queue := []item{{node: 0}}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for x := 0; x < g.OutDegree(); x++ {
				t, ok := g.Neighbor(cur.node, x)
				if !ok {
					continue
				}
				w := append(slices.Clip(cur.word), byte(x))
				if !yield(kb.p.toExternal(w)) {
					return
				}
				queue = append(queue, item{node: t, word: w})
			}
		}
	}
}
