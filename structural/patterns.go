package structural

import (
	"github.com/gogpu/spv/cfg"
	"github.com/gogpu/spv/ssa"
)

// isSESE reports whether x is single-entry single-exit in the current
// (possibly already-contracted) graph: exactly one predecessor and one
// successor (spec.md §4.9's glossary term).
func isSESE(w *workGraph, x ssa.ID) bool {
	return len(w.pred[x]) == 1 && len(w.succ[x]) == 1
}

func containsID(ids []ssa.ID, target ssa.ID) bool {
	for _, id := range ids {
		if id == target {
			return true
		}
	}
	return false
}

// matchBlock finds the longest maximal chain through v such that every
// interior vertex has exactly one predecessor and one successor. The chain
// is returned left-to-right (spec.md §4.9's Block row); a single-vertex
// "chain" is not a match since there is nothing to contract.
func matchBlock(w *workGraph, v ssa.ID) ([]ssa.ID, bool) {
	chain := []ssa.ID{v}

	cur := v
	for {
		preds := w.pred[cur]
		if len(preds) != 1 {
			break
		}
		p := preds[0]
		if p == cur || len(w.succ[p]) != 1 || containsID(chain, p) {
			break
		}
		chain = append([]ssa.ID{p}, chain...)
		cur = p
	}

	cur = v
	for {
		succs := w.succ[cur]
		if len(succs) != 1 {
			break
		}
		s := succs[0]
		if s == cur || len(w.pred[s]) != 1 || containsID(chain, s) {
			break
		}
		chain = append(chain, s)
		cur = s
	}

	if len(chain) < 2 {
		return nil, false
	}
	return chain, true
}

// matchIfThen matches out(v) = {t, m} where t is single-entry single-exit
// with unique successor m. The merge block m is folded into the region as
// its trailing child, matching spec.md §8.2's worked IfThenElse scenario
// (the analogous family member also swallows its merge point).
func matchIfThen(w *workGraph, v ssa.ID) ([]ssa.ID, bool) {
	succs := w.succ[v]
	if len(succs) != 2 {
		return nil, false
	}
	for i := 0; i < 2; i++ {
		t, m := succs[i], succs[1-i]
		if t == v || m == v {
			continue
		}
		if !isSESE(w, t) || w.pred[t][0] != v {
			continue
		}
		if w.succ[t][0] != m {
			continue
		}
		return []ssa.ID{v, t, m}, true
	}
	return nil, false
}

// matchIfThenElse matches out(v) = {t, e}, both single-entry single-exit,
// sharing a common unique successor m != v. Matched set is {v, t, e, m} in
// that order (spec.md §8.2).
func matchIfThenElse(w *workGraph, v ssa.ID) ([]ssa.ID, bool) {
	succs := w.succ[v]
	if len(succs) != 2 {
		return nil, false
	}
	t, e := succs[0], succs[1]
	if t == v || e == v || t == e {
		return nil, false
	}
	if !isSESE(w, t) || !isSESE(w, e) {
		return nil, false
	}
	if w.pred[t][0] != v || w.pred[e][0] != v {
		return nil, false
	}
	mt, me := w.succ[t][0], w.succ[e][0]
	if mt != me || mt == v {
		return nil, false
	}
	return []ssa.ID{v, t, e, mt}, true
}

// matchCase generalizes IfThenElse to |out(v)| > 1 arms, all single-entry
// single-exit, sharing a common unique successor m != v.
func matchCase(w *workGraph, v ssa.ID) ([]ssa.ID, bool) {
	succs := w.succ[v]
	if len(succs) < 2 {
		return nil, false
	}
	members := []ssa.ID{v}
	var m ssa.ID
	for i, s := range succs {
		if s == v || !isSESE(w, s) || w.pred[s][0] != v {
			return nil, false
		}
		target := w.succ[s][0]
		if i == 0 {
			m = target
		} else if target != m {
			return nil, false
		}
		members = append(members, s)
	}
	if m == v {
		return nil, false
	}
	members = append(members, m)
	return members, true
}

// matchTermination matches |out(v)| >= 2 where some successors are
// single-predecessor sinks (no successors of their own). Gated behind
// Options.EnableTermination — spec.md §9 flags it as attested in only one
// source variant.
func matchTermination(w *workGraph, v ssa.ID) ([]ssa.ID, bool) {
	succs := w.succ[v]
	if len(succs) < 2 {
		return nil, false
	}
	members := []ssa.ID{v}
	found := false
	for _, s := range succs {
		if s == v {
			continue
		}
		if len(w.succ[s]) == 0 && len(w.pred[s]) == 1 && w.pred[s][0] == v {
			members = append(members, s)
			found = true
		}
	}
	if !found {
		return nil, false
	}
	return members, true
}

// matchSelfLoop matches v ∈ out(v).
func matchSelfLoop(w *workGraph, v ssa.ID) ([]ssa.ID, bool) {
	if containsID(w.succ[v], v) {
		return []ssa.ID{v}, true
	}
	return nil, false
}

// matchWhileLoop matches in(v) = {·, body}, out(v) = {body, exit}, with
// body single-entry single-exit and pred(body) = succ(body) = {v}. The
// exit block is left outside the region (spec.md §8.3's worked example
// wraps only the header and body).
func matchWhileLoop(w *workGraph, v ssa.ID) ([]ssa.ID, bool) {
	if len(w.pred[v]) != 2 || len(w.succ[v]) != 2 {
		return nil, false
	}
	for _, body := range w.succ[v] {
		if body == v || !isSESE(w, body) {
			continue
		}
		if w.pred[body][0] != v || w.succ[body][0] != v {
			continue
		}
		if !containsID(w.pred[v], body) {
			continue
		}
		return []ssa.ID{v, body}, true
	}
	return nil, false
}

// matchNaturalLoop matches a back-edge targeting v whose cycle's SCC is
// entered only through v. Header first, remaining members in the order
// cfg.StronglyConnectedComponents lists them.
func matchNaturalLoop(w *workGraph, v, entry ssa.ID) ([]ssa.ID, bool) {
	g := w.asGraph(entry)
	dom, err := cfg.ComputeDominators(g)
	if err != nil {
		return nil, false
	}
	dfs := cfg.SpanningDFS(g, dom.Entry)
	back := cfg.BackEdges(dfs, dom)
	targeted := false
	for _, e := range back {
		if e.To == v {
			targeted = true
			break
		}
	}
	if !targeted {
		return nil, false
	}

	scc := cfg.ComponentOf(cfg.StronglyConnectedComponents(g), v)
	if len(scc) < 2 {
		return nil, false
	}
	memberSet := make(map[ssa.ID]bool, len(scc))
	for _, m := range scc {
		memberSet[m] = true
	}
	for _, m := range scc {
		if m == v {
			continue
		}
		for _, p := range w.pred[m] {
			if !memberSet[p] {
				return nil, false
			}
		}
	}

	ordered := make([]ssa.ID, 0, len(scc))
	ordered = append(ordered, v)
	for _, m := range scc {
		if m != v {
			ordered = append(ordered, m)
		}
	}
	return ordered, true
}

// matchImproper matches the remaining cyclic case: v participates in a
// nontrivial SCC that matchNaturalLoop already rejected (multiple entries).
// Members are ordered by a fresh reverse-post-order DFS from the SCC's
// least common dominator, per SPEC_FULL.md's Open Question resolution.
func matchImproper(w *workGraph, v, entry ssa.ID) ([]ssa.ID, bool) {
	g := w.asGraph(entry)
	scc := cfg.ComponentOf(cfg.StronglyConnectedComponents(g), v)
	if len(scc) < 2 {
		return nil, false
	}
	dom, err := cfg.ComputeDominators(g)
	if err != nil {
		return nil, false
	}
	lcd := leastCommonDominator(dom, scc)
	return reversePostOrderWithin(w, lcd, scc), true
}

// matchProper is the acyclic fallback: the vertices strictly between v and
// its immediate post-dominator, found by a forward search from v that does
// not cross the post-dominator.
func matchProper(w *workGraph, v ssa.ID) ([]ssa.ID, bool) {
	dom, _, ok := postDominators(w)
	if !ok {
		return nil, false
	}
	ipd, ok := dom.IDom[v]
	if !ok || ipd == v {
		return nil, false
	}

	visited := map[ssa.ID]bool{v: true}
	queue := []ssa.ID{v}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, s := range w.succ[u] {
			if s == ipd || visited[s] {
				continue
			}
			visited[s] = true
			queue = append(queue, s)
		}
	}
	if len(visited) < 2 {
		return nil, false
	}
	members := make([]ssa.ID, 0, len(visited))
	for _, u := range w.order {
		if visited[u] {
			members = append(members, u)
		}
	}
	return members, true
}

// leastCommonDominator returns the deepest vertex dominating every member
// (the intersection of their dominator sets, narrowed to the element
// dominated by every other element of that intersection).
func leastCommonDominator(dom *cfg.Dominators, members []ssa.ID) ssa.ID {
	common := append([]ssa.ID(nil), dom.Set[members[0]].Items()...)
	for _, m := range members[1:] {
		var next []ssa.ID
		for _, id := range common {
			if dom.Set[m].Contains(id) {
				next = append(next, id)
			}
		}
		common = next
	}
	if len(common) == 0 {
		return members[0]
	}
	if len(common) == 1 {
		return common[0]
	}
	for _, cand := range common {
		deepest := true
		for _, other := range common {
			if other == cand {
				continue
			}
			if !dom.Dominates(other, cand) {
				deepest = false
				break
			}
		}
		if deepest {
			return cand
		}
	}
	return common[0]
}

// reversePostOrderWithin runs a fresh DFS from start, following edges that
// stay within members (or leave start itself), and returns members ordered
// by descending finish time — the reverse post-order spec.md's Improper
// resolution requires.
func reversePostOrderWithin(w *workGraph, start ssa.ID, members []ssa.ID) []ssa.ID {
	memberSet := make(map[ssa.ID]bool, len(members))
	for _, m := range members {
		memberSet[m] = true
	}
	visited := make(map[ssa.ID]bool)
	var postorder []ssa.ID
	var visit func(u ssa.ID)
	visit = func(u ssa.ID) {
		visited[u] = true
		for _, s := range w.succ[u] {
			if visited[s] || (s != start && !memberSet[s]) {
				continue
			}
			visit(s)
		}
		if memberSet[u] {
			postorder = append(postorder, u)
		}
	}
	visit(start)
	for _, m := range members {
		if !visited[m] {
			postorder = append(postorder, m)
		}
	}
	out := make([]ssa.ID, len(postorder))
	for i, m := range postorder {
		out[len(postorder)-1-i] = m
	}
	return out
}

// postDominators computes the dominator tree of the reverse graph rooted at
// the (possibly synthetic, id 0) exit vertex, giving post-dominance for the
// Proper pattern. Returns ok = false if w has no sink at all (e.g. every
// vertex is mid-cycle).
func postDominators(w *workGraph) (*cfg.Dominators, ssa.ID, bool) {
	var sinks []ssa.ID
	for _, u := range w.order {
		if len(w.succ[u]) == 0 {
			sinks = append(sinks, u)
		}
	}
	if len(sinks) == 0 {
		return nil, 0, false
	}

	order := append([]ssa.ID(nil), w.order...)
	var exit ssa.ID
	synthetic := len(sinks) > 1
	if synthetic {
		exit = ssa.ID(0)
		order = append(order, exit)
	} else {
		exit = sinks[0]
	}

	rg := cfg.NewGraph(order)
	for _, u := range w.order {
		for _, s := range w.succ[u] {
			rg.AddEdge(s, u)
		}
	}
	if synthetic {
		for _, s := range sinks {
			rg.AddEdge(exit, s)
		}
	}

	dom, err := cfg.ComputeDominators(rg)
	if err != nil {
		return nil, 0, false
	}
	return dom, exit, true
}
