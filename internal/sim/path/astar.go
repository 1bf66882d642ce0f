// Package path finds walking routes over the voxel grid: a Bresenham fast
// path for short near-flat trips, and a node-capped A* for everything else.
// A nil result always means "no route", never an error.
package path

import (
	"container/heap"
	"math"

	"brickton.sim/internal/sim/voxel"
)

type Options struct {
	// NodeCap bounds A* expansions so occluded goals terminate.
	NodeCap int
	// FastPathMaxXZ / FastPathMaxDY gate the straight-line shortcut.
	FastPathMaxXZ int
	FastPathMaxDY int
}

func DefaultOptions() Options {
	return Options{NodeCap: 1200, FastPathMaxXZ: 20, FastPathMaxDY: 1}
}

var dirs8 = [8]struct {
	dx, dz int
	cost   float64
}{
	{1, 0, 1}, {-1, 0, 1}, {0, 1, 1}, {0, -1, 1},
	{1, 1, math.Sqrt2}, {1, -1, math.Sqrt2}, {-1, 1, math.Sqrt2}, {-1, -1, math.Sqrt2},
}

// Find returns cell-center waypoints from start to goal, or nil when no
// route exists within the node budget.
func Find(g voxel.Grid, opts Options, start, goal voxel.Vec3) []voxel.Vec3 {
	if opts.NodeCap <= 0 {
		opts = DefaultOptions()
	}
	from, ok := settle(g, start.Cell())
	if !ok {
		return nil
	}
	to, ok := settle(g, goal.Cell())
	if !ok {
		return nil
	}
	if from == to {
		return []voxel.Vec3{to.Center()}
	}
	dy := from.Y - to.Y
	if dy < 0 {
		dy = -dy
	}
	if dy <= opts.FastPathMaxDY && from.ManhattanXZ(to) <= opts.FastPathMaxXZ {
		if wps := tryLine(g, from, to); wps != nil {
			return wps
		}
	}
	return search(g, opts, from, to)
}

// settle nudges a cell one step up or down onto standable footing, covering
// callers whose continuous position floats slightly off the grid.
func settle(g voxel.Grid, c voxel.Vec3i) (voxel.Vec3i, bool) {
	if voxel.Standable(g, c) {
		return c, true
	}
	if voxel.Standable(g, c.Above()) {
		return c.Above(), true
	}
	if voxel.Standable(g, c.Below()) {
		return c.Below(), true
	}
	return c, false
}

// tryLine hugs the Bresenham line between the cells, stepping one cell up or
// down where the flat cell is blocked. Returns nil when the line cannot be
// followed, letting the caller fall through to full search.
func tryLine(g voxel.Grid, from, to voxel.Vec3i) []voxel.Vec3 {
	wps := make([]voxel.Vec3, 0, from.ManhattanXZ(to)+1)
	y := from.Y
	complete := voxel.LineXZ(from, to, func(c voxel.Vec3i) bool {
		c.Y = y
		step, ok := settle(g, c)
		if !ok {
			return false
		}
		y = step.Y
		if step != from {
			wps = append(wps, step.Center())
		}
		return true
	})
	if !complete || len(wps) == 0 {
		return nil
	}
	return wps
}

type node struct {
	cell    voxel.Vec3i
	g, f    float64
	parent  *node
	heapIdx int
}

type openHeap []*node

func (h openHeap) Len() int           { return len(h) }
func (h openHeap) Less(i, j int) bool { return h[i].f < h[j].f }
func (h openHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].heapIdx, h[j].heapIdx = i, j
}
func (h *openHeap) Push(x any) {
	n := x.(*node)
	n.heapIdx = len(*h)
	*h = append(*h, n)
}
func (h *openHeap) Pop() any {
	old := *h
	n := old[len(old)-1]
	n.heapIdx = -1
	*h = old[:len(old)-1]
	return n
}

func search(g voxel.Grid, opts Options, from, to voxel.Vec3i) []voxel.Vec3 {
	start := &node{cell: from, f: from.DistTo(to)}
	open := &openHeap{}
	heap.Init(open)
	heap.Push(open, start)
	seen := map[voxel.Vec3i]*node{from: start}

	expanded := 0
	for open.Len() > 0 {
		cur := heap.Pop(open).(*node)
		if cur.cell == to {
			return reconstruct(cur, from)
		}
		expanded++
		if expanded > opts.NodeCap {
			return nil
		}
		for _, d := range dirs8 {
			next, ok := stepTo(g, cur.cell, d.dx, d.dz)
			if !ok {
				continue
			}
			ng := cur.g + d.cost
			if prev, dup := seen[next]; dup {
				if ng >= prev.g {
					continue
				}
				prev.g = ng
				prev.f = ng + next.DistTo(to)
				prev.parent = cur
				if prev.heapIdx >= 0 {
					heap.Fix(open, prev.heapIdx)
				} else {
					heap.Push(open, prev)
				}
				continue
			}
			nn := &node{cell: next, g: ng, f: ng + next.DistTo(to), parent: cur}
			seen[next] = nn
			heap.Push(open, nn)
		}
	}
	return nil
}

// stepTo tries the neighbor at the same level, then one up, then one down;
// the first standable cell wins.
func stepTo(g voxel.Grid, from voxel.Vec3i, dx, dz int) (voxel.Vec3i, bool) {
	flat := voxel.Vec3i{X: from.X + dx, Y: from.Y, Z: from.Z + dz}
	if voxel.Standable(g, flat) {
		return flat, true
	}
	if up := flat.Above(); voxel.Standable(g, up) {
		return up, true
	}
	if down := flat.Below(); voxel.Standable(g, down) {
		return down, true
	}
	return voxel.Vec3i{}, false
}

func reconstruct(end *node, from voxel.Vec3i) []voxel.Vec3 {
	var cells []voxel.Vec3i
	for n := end; n != nil; n = n.parent {
		cells = append(cells, n.cell)
	}
	wps := make([]voxel.Vec3, 0, len(cells))
	for i := len(cells) - 1; i >= 0; i-- {
		if cells[i] == from {
			continue
		}
		wps = append(wps, cells[i].Center())
	}
	return wps
}

// FindApproach retries Find against successively closer points along the
// straight line toward goal. Callers clear their movement target when even
// the approach fails.
func FindApproach(g voxel.Grid, opts Options, start, goal voxel.Vec3, steps int) []voxel.Vec3 {
	if steps < 1 {
		steps = 1
	}
	d := goal.Sub(start)
	for i := 1; i <= steps; i++ {
		frac := 1 - float64(i)/float64(steps+1)
		target := start.Add(d.Scale(frac))
		if wps := Find(g, opts, start, target); wps != nil {
			return wps
		}
	}
	return nil
}
