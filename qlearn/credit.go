// SPDX-License-Identifier: MIT

package qlearn

// creditor runs the episode-wide credit passes. It remembers the cheapest
// completed route of the current training run.
type creditor struct {
	env      *Environment
	table    *Table
	best     float64
	haveBest bool
}

func newCreditor(env *Environment, table *Table) *creditor {
	return &creditor{env: env, table: table}
}

// reset forgets the running best.
func (c *creditor) reset() {
	c.best = 0
	c.haveBest = false
}

// completed evaluates a completed route. The first completion sets the running
// best; a strictly cheaper one adds the bonus along the whole route and becomes
// the new best. It reports whether the bonus was applied.
func (c *creditor) completed(junctions, roads []string) (bool, error) {
	total, err := c.env.model.RouteCost(roads...)
	if err != nil {
		return false, err
	}
	if !c.haveBest {
		c.best, c.haveBest = total, true
		return false, nil
	}
	if total >= c.best {
		return false, nil
	}
	c.along(junctions, roads, 0, len(roads), c.env.rewards.Bonus)
	c.best = total
	return true, nil
}

// deadEnd penalizes the unbranching tail that led into a dead end. The last road
// was already penalized by the step itself; the walk starts one road earlier and
// stops at the first road ending at a junction with more than one exit.
// It returns the number of penalized entries.
func (c *creditor) deadEnd(junctions, roads []string) int {
	n := 0
	for i := len(roads) - 2; i >= 0; i-- {
		_, to, err := c.env.net.Endpoints(roads[i])
		if err != nil || c.env.net.OutDegree(to) > 1 {
			break
		}
		c.along(junctions, roads, i, i+1, c.env.rewards.Tail)
		n++
	}
	return n
}

// along adds delta to the (junction, label) entries of roads[from:to].
func (c *creditor) along(junctions, roads []string, from, to int, delta float64) {
	for i := from; i < to; i++ {
		label, err := c.env.labeler.Label(roads[i])
		if err != nil {
			continue
		}
		c.table.add(junctions[i], label, delta)
	}
}
