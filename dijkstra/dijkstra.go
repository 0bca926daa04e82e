// SPDX-License-Identifier: MIT

package dijkstra

import (
	"container/heap"
	"fmt"
	"math"
	"time"

	"github.com/katalvlaran/roadrl/cost"
	"github.com/katalvlaran/roadrl/network"
)

// Search returns the cheapest route from → to under model.
//
// Preconditions and validation (in order):
//  1. net and model are non-nil (ErrNilNetwork, ErrNilModel).
//  2. model was built for net (ErrModelMismatch).
//  3. from and to are junctions of net (network.ErrInvalidIdentifier).
//
// When from == to the single-junction route with cost 0 is returned.
//
// Complexity: O((V + E) log V) time, O(V + E) space.
func Search(net *network.Network, model *cost.Model, from, to string, opts ...Option) (*Result, error) {
	started := time.Now()

	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	if net == nil {
		return nil, ErrNilNetwork
	}
	if model == nil {
		return nil, ErrNilModel
	}
	if model.Network() != net {
		return nil, ErrModelMismatch
	}
	if !net.HasJunction(from) {
		return nil, fmt.Errorf("%w: start %q", network.ErrInvalidIdentifier, from)
	}
	if !net.HasJunction(to) {
		return nil, fmt.Errorf("%w: destination %q", network.ErrInvalidIdentifier, to)
	}

	r := newRunner(net, model, cfg, from, to)
	if err := r.process(); err != nil {
		return nil, err
	}

	route, err := r.reconstruct()
	if err != nil {
		return nil, err
	}

	total, err := model.RouteCost(route.Roads...)
	if err != nil {
		return nil, err
	}

	return &Result{
		Route:   route,
		Cost:    total,
		Settled: r.settled,
		Elapsed: time.Since(started),
	}, nil
}

// runner holds the mutable state for a single Search.
type runner struct {
	net     *network.Network
	model   *cost.Model
	options Options
	from    string
	to      string

	dist    map[string]float64 // junction → best known cost from the start
	prev    map[string]string  // junction → predecessor junction, "" for none
	visited map[string]bool    // junction → finalized
	pq      nodePQ
	settled int
}

// newRunner initializes every junction at +Inf with no predecessor and seeds the start.
func newRunner(net *network.Network, model *cost.Model, cfg Options, from, to string) *runner {
	ids := net.Junctions()
	r := &runner{
		net:     net,
		model:   model,
		options: cfg,
		from:    from,
		to:      to,
		dist:    make(map[string]float64, len(ids)),
		prev:    make(map[string]string, len(ids)),
		visited: make(map[string]bool, len(ids)),
		pq:      make(nodePQ, 0, len(ids)),
	}
	for _, id := range ids {
		r.dist[id] = math.Inf(1)
		r.prev[id] = ""
	}
	r.dist[from] = 0
	heap.Init(&r.pq)
	heap.Push(&r.pq, &nodeItem{id: from, dist: 0})

	return r
}

// process pops the cheapest frontier entry until the destination is settled,
// the frontier is empty, or the cheapest entry exceeds MaxCost.
func (r *runner) process() error {
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*nodeItem)
		u := item.id

		// Stale duplicate from lazy decrease-key.
		if r.visited[u] {
			continue
		}
		if item.dist > r.options.MaxCost {
			break
		}
		r.visited[u] = true
		r.settled++

		if u == r.to {
			return nil
		}
		if err := r.relax(u); err != nil {
			return err
		}
	}

	return nil
}

// relax tries to improve every junction reachable over one road leaving u.
func (r *runner) relax(u string) error {
	out, err := r.net.RoadsAt(u, network.Outgoing)
	if err != nil {
		return fmt.Errorf("dijkstra: failed to list roads of %q: %w", u, err)
	}

	for _, rid := range out {
		road, err := r.net.Road(rid)
		if err != nil {
			return err
		}
		w, err := r.weight(u, rid)
		if err != nil {
			return err
		}
		if w < 0 {
			return fmt.Errorf("%w: road %q cost=%v", ErrNegativeCost, rid, w)
		}

		v := road.To
		next := r.dist[u] + w
		if next > r.options.MaxCost {
			continue
		}
		// Strict comparison keeps the first predecessor found on ties.
		if next >= r.dist[v] {
			continue
		}
		r.dist[v] = next
		r.prev[v] = u
		heap.Push(&r.pq, &nodeItem{id: v, dist: next})
	}

	return nil
}

// weight is EdgeCost, except for roads leaving the start junction, which have
// no preceding road and are priced as a whole one-road route.
func (r *runner) weight(u, rid string) (float64, error) {
	if u == r.from {
		return r.model.RouteCost(rid)
	}
	return r.model.EdgeCost(rid)
}

// reconstruct walks predecessors from the destination back to the start and
// re-derives the road between each consecutive pair.
func (r *runner) reconstruct() (network.Route, error) {
	if r.from == r.to {
		return network.Route{Junctions: []string{r.from}, Roads: []string{}}, nil
	}
	if !r.visited[r.to] {
		return network.Route{}, fmt.Errorf("%w: %s → %s", ErrNoRoute, r.from, r.to)
	}

	junctions := []string{r.to}
	for cur := r.to; cur != r.from; {
		p := r.prev[cur]
		if p == "" {
			return network.Route{}, fmt.Errorf("%w: broken predecessor chain at %q", ErrNoRoute, cur)
		}
		junctions = append(junctions, p)
		cur = p
	}
	for i, j := 0, len(junctions)-1; i < j; i, j = i+1, j-1 {
		junctions[i], junctions[j] = junctions[j], junctions[i]
	}

	roads := make([]string, 0, len(junctions)-1)
	for i := 0; i+1 < len(junctions); i++ {
		common, err := r.net.Connecting(junctions[i], junctions[i+1])
		if err != nil {
			return network.Route{}, err
		}
		if len(common) != 1 {
			return network.Route{}, fmt.Errorf("%w: %d roads join %s → %s",
				ErrAmbiguousEdge, len(common), junctions[i], junctions[i+1])
		}
		roads = append(roads, common[0])
	}

	return network.Route{Junctions: junctions, Roads: roads}, nil
}

// nodeItem is a junction with its tentative cost at push time.
type nodeItem struct {
	id   string
	dist float64
}

// nodePQ is a min-heap of *nodeItem ordered by dist, then by id for determinism.
type nodePQ []*nodeItem

// Len returns the number of items in the heap.
func (pq nodePQ) Len() int { return len(pq) }

// Less orders by cost, ties by junction ID.
func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].id < pq[j].id
}

// Swap swaps two elements in the heap.
func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push adds x, which must be a *nodeItem.
func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }

// Pop removes and returns the last element.
func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
