// SPDX-License-Identifier: MIT

package bfs

import (
	"context"
	"fmt"

	"github.com/katalvlaran/roadrl/network"
)

// queueItem pairs a junction with its depth.
type queueItem struct {
	id    string
	depth int
}

// walker encapsulates mutable BFS state.
type walker struct {
	net     *network.Network
	opts    Options
	ctx     context.Context
	queue   []queueItem
	visited map[string]bool
	res     *Result
}

// BFS runs breadth-first search on net from start.
// Returns ErrNetworkNil, ErrStartNotFound, ErrOptionViolation, ctx.Err()
// on cancellation, or any OnVisit error.
func BFS(net *network.Network, start string, opts ...Option) (*Result, error) {
	if net == nil {
		return nil, ErrNetworkNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if !net.HasJunction(start) {
		return nil, fmt.Errorf("%w: %q", ErrStartNotFound, start)
	}

	n := len(net.Junctions())
	w := &walker{
		net:     net,
		opts:    o,
		ctx:     o.Ctx,
		queue:   make([]queueItem, 0, n),
		visited: make(map[string]bool, n),
		res: &Result{
			Start:  start,
			Order:  make([]string, 0, n),
			Depth:  make(map[string]int, n),
			Parent: make(map[string]string, n),
			Via:    make(map[string]string, n),
		},
	}

	w.enqueue(start, 0, "", "")
	return w.res, w.loop()
}

// Reachable reports whether to can be reached from from over outgoing roads.
func Reachable(net *network.Network, from, to string) (bool, error) {
	if net != nil && !net.HasJunction(to) {
		return false, fmt.Errorf("%w: junction %q", network.ErrInvalidIdentifier, to)
	}
	res, err := BFS(net, from)
	if err != nil {
		return false, err
	}
	return res.Reached(to), nil
}

// enqueue marks id visited at depth d, records how it was reached and queues it.
func (w *walker) enqueue(id string, d int, parent, road string) {
	w.visited[id] = true
	w.res.Depth[id] = d
	if parent != "" {
		w.res.Parent[id] = parent
		w.res.Via[id] = road
	}
	w.queue = append(w.queue, queueItem{id: id, depth: d})
}

// loop processes the queue until empty, error, or cancellation.
func (w *walker) loop() error {
	for len(w.queue) > 0 {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		item := w.dequeue()
		if err := w.visit(item); err != nil {
			return err
		}
		if err := w.enqueueNext(item); err != nil {
			return err
		}
	}
	return nil
}

// dequeue pops the first item.
func (w *walker) dequeue() queueItem {
	item := w.queue[0]
	w.queue = w.queue[1:]
	return item
}

// visit records the junction in Order and calls OnVisit.
func (w *walker) visit(item queueItem) error {
	w.res.Order = append(w.res.Order, item.id)
	if err := w.opts.OnVisit(item.id, item.depth); err != nil {
		return fmt.Errorf("bfs: OnVisit error at %q: %w", item.id, err)
	}
	return nil
}

// enqueueNext follows every unfiltered road leaving item to an unseen junction.
func (w *walker) enqueueNext(item queueItem) error {
	out, err := w.net.RoadsAt(item.id, network.Outgoing)
	if err != nil {
		return err
	}
	next := item.depth + 1
	if w.opts.MaxDepth > 0 && next > w.opts.MaxDepth {
		return nil
	}
	for _, rid := range out {
		if !w.opts.FilterRoad(item.id, rid) {
			continue
		}
		_, to, err := w.net.Endpoints(rid)
		if err != nil {
			return err
		}
		if !w.visited[to] {
			w.enqueue(to, next, item.id, rid)
		}
	}
	return nil
}
