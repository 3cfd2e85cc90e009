package rdf

import (
	"sort"
	"sync"
)

type tripleSet map[Triple]struct{}

// Graph is an indexed, in-memory set of triples. It is safe for concurrent use.
type Graph struct {
	mu          sync.RWMutex
	triples     tripleSet
	bySubject   map[Term]tripleSet
	byPredicate map[Term]tripleSet
	byObject    map[Term]tripleSet
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		triples:     make(tripleSet),
		bySubject:   make(map[Term]tripleSet),
		byPredicate: make(map[Term]tripleSet),
		byObject:    make(map[Term]tripleSet),
	}
}

// Add inserts a triple and reports whether it was not already present.
func (g *Graph) Add(t Triple) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.triples[t]; ok {
		return false
	}
	g.triples[t] = struct{}{}
	index(g.bySubject, t.S, t)
	index(g.byPredicate, t.P, t)
	index(g.byObject, t.O, t)
	return true
}

// AddTerms is a shorthand for Add(Triple{s, p, o}).
func (g *Graph) AddTerms(s, p, o Term) bool {
	return g.Add(Triple{S: s, P: p, O: o})
}

// Remove deletes a triple and reports whether it was present.
func (g *Graph) Remove(t Triple) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.triples[t]; !ok {
		return false
	}
	delete(g.triples, t)
	unindex(g.bySubject, t.S, t)
	unindex(g.byPredicate, t.P, t)
	unindex(g.byObject, t.O, t)
	return true
}

// Contains reports whether the triple is in the graph.
func (g *Graph) Contains(t Triple) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.triples[t]
	return ok
}

// Len returns the number of triples.
func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.triples)
}

// Match returns the triples matching the given pattern; nil positions are
// wildcards. The result is sorted.
func (g *Graph) Match(s, p, o *Term) []Triple {
	g.mu.RLock()
	defer g.mu.RUnlock()

	// Start from the smallest candidate index.
	candidates := g.triples
	if s != nil {
		candidates = smaller(candidates, g.bySubject[*s])
	}
	if p != nil {
		candidates = smaller(candidates, g.byPredicate[*p])
	}
	if o != nil {
		candidates = smaller(candidates, g.byObject[*o])
	}

	out := make([]Triple, 0, len(candidates))
	for t := range candidates {
		if s != nil && t.S != *s {
			continue
		}
		if p != nil && t.P != *p {
			continue
		}
		if o != nil && t.O != *o {
			continue
		}
		out = append(out, t)
	}
	SortTriples(out)
	return out
}

// Triples returns every triple, sorted.
func (g *Graph) Triples() []Triple {
	return g.Match(nil, nil, nil)
}

// Merge adds every triple of other into g.
func (g *Graph) Merge(other *Graph) {
	for _, t := range other.Triples() {
		g.Add(t)
	}
}

// SortTriples orders triples by subject, predicate and object rendering.
func SortTriples(ts []Triple) {
	sort.Slice(ts, func(i, j int) bool {
		if a, b := ts[i].S.String(), ts[j].S.String(); a != b {
			return a < b
		}
		if a, b := ts[i].P.String(), ts[j].P.String(); a != b {
			return a < b
		}
		return ts[i].O.String() < ts[j].O.String()
	})
}

func index(idx map[Term]tripleSet, key Term, t Triple) {
	set, ok := idx[key]
	if !ok {
		set = make(tripleSet)
		idx[key] = set
	}
	set[t] = struct{}{}
}

func unindex(idx map[Term]tripleSet, key Term, t Triple) {
	set, ok := idx[key]
	if !ok {
		return
	}
	delete(set, t)
	if len(set) == 0 {
		delete(idx, key)
	}
}

func smaller(a, b tripleSet) tripleSet {
	if len(b) < len(a) {
		return b
	}
	return a
}
