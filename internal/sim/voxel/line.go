package voxel

// LineXZ walks the Bresenham line between two cells on the horizontal plane
// and calls fn for each cell (including both endpoints) at the start cell's
// height. fn returning false aborts the walk; LineXZ reports whether the
// walk reached the end cell.
func LineXZ(from, to Vec3i, fn func(c Vec3i) bool) bool {
	x, z := from.X, from.Z
	dx := absInt(to.X - from.X)
	dz := absInt(to.Z - from.Z)
	sx, sz := 1, 1
	if to.X < from.X {
		sx = -1
	}
	if to.Z < from.Z {
		sz = -1
	}
	err := dx - dz
	for {
		if !fn(Vec3i{X: x, Y: from.Y, Z: z}) {
			return false
		}
		if x == to.X && z == to.Z {
			return true
		}
		e2 := 2 * err
		if e2 > -dz {
			err -= dz
			x += sx
		}
		if e2 < dx {
			err += dx
			z += sz
		}
	}
}

// RayBlocked marches a fixed-step ray from a to b and reports whether any
// sight-blocking cell lies strictly between them. The cells containing the
// endpoints are skipped so eyes poking into a wall do not self-occlude.
func RayBlocked(g Grid, a, b Vec3, step float64) bool {
	if step <= 0 {
		step = 0.25
	}
	d := b.Sub(a)
	dist := d.Len()
	if dist < 1e-9 {
		return false
	}
	dir := d.Scale(1 / dist)
	startCell := a.Cell()
	endCell := b.Cell()
	for t := step; t < dist; t += step {
		c := a.Add(dir.Scale(t)).Cell()
		if c == startCell || c == endCell {
			continue
		}
		if BlocksSight(g, c) {
			return true
		}
	}
	return false
}
