// SPDX-License-Identifier: MIT

package osmimport

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"golang.org/x/exp/slog"

	"github.com/katalvlaran/roadrl/network"
)

// scanner is the common surface of the osmxml and osmpbf scanners.
type scanner interface {
	Scan() bool
	Object() osm.Object
	Err() error
	Close() error
}

// way is a kept highway.
type way struct {
	id     int64
	nodes  []int64
	oneway int // 0 both ways, 1 forward only, -1 reverse only
}

// FormatOf guesses the format from a file name.
func FormatOf(path string) (Format, error) {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".pbf"):
		return PBF, nil
	case strings.HasSuffix(lower, ".osm"), strings.HasSuffix(lower, ".xml"):
		return XML, nil
	default:
		return XML, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
}

// Load imports the file at path.
func Load(ctx context.Context, path string, opts ...Option) (*Result, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("osmimport: %w", err)
	}
	defer f.Close()

	return Decode(ctx, f, format, opts...)
}

// Decode imports an extract read from r.
func Decode(ctx context.Context, r io.Reader, format Format, opts ...Option) (*Result, error) {
	cfg := Options{Highways: drivable, Logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}

	var sc scanner
	switch format {
	case XML:
		sc = osmxml.New(ctx, r)
	case PBF:
		sc = osmpbf.New(ctx, r, runtime.GOMAXPROCS(-1))
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownFormat, format)
	}
	defer sc.Close()

	points := make(map[int64]orb.Point)
	var ways []way
	for sc.Scan() {
		switch o := sc.Object().(type) {
		case *osm.Node:
			points[int64(o.ID)] = orb.Point{o.Lon, o.Lat}
		case *osm.Way:
			tags := o.TagMap()
			if !cfg.Highways[tags["highway"]] || len(o.Nodes) < 2 {
				continue
			}
			w := way{id: int64(o.ID), oneway: onewayOf(tags)}
			for _, n := range o.Nodes {
				w.nodes = append(w.nodes, int64(n.ID))
			}
			ways = append(ways, w)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("osmimport: scan: %w", err)
	}
	if len(ways) == 0 {
		return nil, ErrEmpty
	}

	res := build(points, ways)
	cfg.Logger.Info("osm import finished",
		"ways", res.Ways, "junctions", len(res.Junctions), "roads", len(res.Roads), "dropped", res.Dropped)
	return res, nil
}

// onewayOf follows the usual OSM conventions.
func onewayOf(tags map[string]string) int {
	switch tags["oneway"] {
	case "yes", "true", "1":
		return 1
	case "-1", "reverse":
		return -1
	case "no", "false", "0":
		return 0
	}
	switch tags["highway"] {
	case "motorway", "motorway_link", "trunk", "trunk_link":
		return 1
	}
	if tags["junction"] == "roundabout" {
		return 1
	}
	return 0
}

// build splits ways at junctions and derives planar coordinates.
func build(points map[int64]orb.Point, ways []way) *Result {
	// Count appearances: endpoints count twice so they always become junctions.
	count := make(map[int64]int)
	for _, w := range ways {
		for _, n := range w.nodes {
			count[n]++
		}
		count[w.nodes[0]]++
		count[w.nodes[len(w.nodes)-1]]++
	}

	res := &Result{Ways: len(ways)}
	junctionIDs := make([]int64, 0)
	for id, c := range count {
		if _, ok := points[id]; ok && c > 1 {
			junctionIDs = append(junctionIDs, id)
		}
	}
	sort.Slice(junctionIDs, func(i, j int) bool { return junctionIDs[i] < junctionIDs[j] })

	res.Origin = southWest(points, junctionIDs)
	isJunction := make(map[int64]bool, len(junctionIDs))
	for _, id := range junctionIDs {
		x, y := planar(res.Origin, points[id])
		res.Junctions = append(res.Junctions, network.Junction{ID: strconv.FormatInt(id, 10), X: x, Y: y})
		isJunction[id] = true
	}

	// Keep the shortest segment per ordered junction pair.
	type pair struct{ from, to string }
	best := make(map[pair]network.Road)
	keep := func(r network.Road) {
		if r.From == r.To {
			res.Dropped++
			return
		}
		k := pair{r.From, r.To}
		if old, ok := best[k]; ok {
			res.Dropped++
			if old.Length < r.Length || (old.Length == r.Length && old.ID < r.ID) {
				return
			}
		}
		best[k] = r
	}

	for _, w := range ways {
		seq := 0
		start := -1
		var length float64
		for i, n := range w.nodes {
			p, ok := points[n]
			if !ok {
				start, length = -1, 0
				continue
			}
			if start >= 0 && i > 0 {
				if prev, ok := points[w.nodes[i-1]]; ok {
					length += geo.Distance(prev, p)
				}
			}
			if !isJunction[n] {
				continue
			}
			if start >= 0 {
				from := strconv.FormatInt(w.nodes[start], 10)
				to := strconv.FormatInt(n, 10)
				id := fmt.Sprintf("w%d-%d", w.id, seq)
				if w.oneway >= 0 {
					keep(network.Road{ID: id, From: from, To: to, Length: length})
				}
				if w.oneway <= 0 {
					keep(network.Road{ID: "-" + id, From: to, To: from, Length: length})
				}
				seq++
			}
			start, length = i, 0
		}
	}

	for _, r := range best {
		res.Roads = append(res.Roads, r)
	}
	sort.Slice(res.Roads, func(i, j int) bool { return res.Roads[i].ID < res.Roads[j].ID })
	return res
}

// southWest returns the minimum lon and lat over ids.
func southWest(points map[int64]orb.Point, ids []int64) orb.Point {
	if len(ids) == 0 {
		return orb.Point{}
	}
	sw := orb.Point{math.Inf(1), math.Inf(1)}
	for _, id := range ids {
		p := points[id]
		sw[0] = math.Min(sw[0], p[0])
		sw[1] = math.Min(sw[1], p[1])
	}
	return sw
}

// planar returns meters east and north of origin.
func planar(origin, p orb.Point) (x, y float64) {
	x = geo.Distance(origin, orb.Point{p[0], origin[1]})
	if p[0] < origin[0] {
		x = -x
	}
	y = geo.Distance(origin, orb.Point{origin[0], p[1]})
	if p[1] < origin[1] {
		y = -y
	}
	return x, y
}
