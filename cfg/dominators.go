package cfg

import (
	"fmt"

	"github.com/gogpu/spv/ssa"
)

// NoEntryError is spec.md §4.7/§7's `NoEntry`: every vertex has at least
// one predecessor, so there is no unique root to anchor dominance at.
type NoEntryError struct{}

func (e *NoEntryError) Error() string {
	return "cfg: graph has no entry (every vertex has a predecessor)"
}

// MultipleEntriesError is spec.md §4.7/§7's `MultipleEntries`: more than
// one vertex has no predecessor, so the entry is ambiguous.
type MultipleEntriesError struct {
	Candidates []ssa.ID
}

func (e *MultipleEntriesError) Error() string {
	return fmt.Sprintf("cfg: graph has multiple candidate entries (no predecessors): %v", e.Candidates)
}

// Dominators holds, for each vertex, its dominator set and (for every
// non-entry vertex) its immediate dominator.
type Dominators struct {
	Entry ssa.ID
	Set   map[ssa.ID]*ssa.Set
	IDom  map[ssa.ID]ssa.ID
}

// Dominates reports whether u dominates v (u ∈ dom(v)).
func (d *Dominators) Dominates(u, v ssa.ID) bool {
	set, ok := d.Set[v]
	return ok && set.Contains(u)
}

// findEntry locates the graph's unique no-predecessor vertex, per
// spec.md §4.7's precondition.
func findEntry(g *Graph) (ssa.ID, error) {
	var candidates []ssa.ID
	for _, v := range g.Order {
		if len(g.Pred[v]) == 0 {
			candidates = append(candidates, v)
		}
	}
	switch len(candidates) {
	case 0:
		return 0, &NoEntryError{}
	case 1:
		return candidates[0], nil
	default:
		return 0, &MultipleEntriesError{Candidates: candidates}
	}
}

// ComputeDominators computes the dominator set for every vertex by the
// classical iterative fixed point (spec.md §4.7):
//
//	dom(entry) = {entry}
//	dom(v) = {v} ∪ ⋂_{u ∈ preds(v)} dom(u)   for all other v
//
// iterated until no set changes, then the immediate dominator tree is
// derived by selecting, for each non-entry v, the unique member of
// dom(v) \ {v} dominated by every other member of dom(v) \ {v}.
func ComputeDominators(g *Graph) (*Dominators, error) {
	entry, err := findEntry(g)
	if err != nil {
		return nil, err
	}

	dom := make(map[ssa.ID]*ssa.Set, len(g.Order))
	all := ssa.NewSet()
	for _, v := range g.Order {
		all.Add(v)
	}
	for _, v := range g.Order {
		if v == entry {
			s := ssa.NewSet()
			s.Add(entry)
			dom[v] = s
		} else {
			dom[v] = cloneIDSet(all)
		}
	}

	changed := true
	for changed {
		changed = false
		for _, v := range g.Order {
			if v == entry {
				continue
			}
			var next *ssa.Set
			for _, u := range g.Pred[v] {
				if next == nil {
					next = cloneIDSet(dom[u])
				} else {
					next = intersect(next, dom[u])
				}
			}
			if next == nil {
				// unreachable vertex: no predecessors and not the entry;
				// its dominator set degenerates to itself only.
				next = ssa.NewSet()
			}
			next.Add(v)
			if !setsEqual(next, dom[v]) {
				dom[v] = next
				changed = true
			}
		}
	}

	idom := make(map[ssa.ID]ssa.ID, len(g.Order))
	for _, v := range g.Order {
		if v == entry {
			continue
		}
		others := make([]ssa.ID, 0, dom[v].Len())
		for _, u := range dom[v].Items() {
			if u != v {
				others = append(others, u)
			}
		}
		for _, cand := range others {
			isImmediate := true
			for _, other := range others {
				if other == cand {
					continue
				}
				if !dom[cand].Contains(other) {
					isImmediate = false
					break
				}
			}
			if isImmediate {
				idom[v] = cand
				break
			}
		}
	}

	return &Dominators{Entry: entry, Set: dom, IDom: idom}, nil
}

func cloneIDSet(s *ssa.Set) *ssa.Set {
	clone := ssa.NewSet()
	for _, id := range s.Items() {
		clone.Add(id)
	}
	return clone
}

func intersect(a, b *ssa.Set) *ssa.Set {
	out := ssa.NewSet()
	for _, id := range a.Items() {
		if b.Contains(id) {
			out.Add(id)
		}
	}
	return out
}

func setsEqual(a, b *ssa.Set) bool {
	if a.Len() != b.Len() {
		return false
	}
	for _, id := range a.Items() {
		if !b.Contains(id) {
			return false
		}
	}
	return true
}
