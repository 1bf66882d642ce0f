// Package voxel holds the block-grid primitives shared by pathfinding and
// perception: integer cell coordinates, the read-only grid surface, and the
// standability predicate.
package voxel

import "math"

type Vec3i struct {
	X, Y, Z int
}

// Vec3 is a continuous world position. Cell (x,y,z) spans
// [x,x+1) x [y,y+1) x [z,z+1); agents stand on integer heights.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

func (v Vec3) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// LenXZ is the horizontal-plane distance; demolition targeting and most
// trigger radii ignore height differences.
func (v Vec3) LenXZ() float64 {
	return math.Sqrt(v.X*v.X + v.Z*v.Z)
}

// Cell returns the grid cell containing v.
func (v Vec3) Cell() Vec3i {
	return Vec3i{
		X: int(math.Floor(v.X)),
		Y: int(math.Floor(v.Y)),
		Z: int(math.Floor(v.Z)),
	}
}

// Center returns the walk target for a cell: its XZ center at integer height.
func (c Vec3i) Center() Vec3 {
	return Vec3{X: float64(c.X) + 0.5, Y: float64(c.Y), Z: float64(c.Z) + 0.5}
}

func (c Vec3i) Above() Vec3i { return Vec3i{c.X, c.Y + 1, c.Z} }
func (c Vec3i) Below() Vec3i { return Vec3i{c.X, c.Y - 1, c.Z} }

func (c Vec3i) ManhattanXZ(o Vec3i) int {
	return absInt(c.X-o.X) + absInt(c.Z-o.Z)
}

func (c Vec3i) DistTo(o Vec3i) float64 {
	dx := float64(c.X - o.X)
	dy := float64(c.Y - o.Y)
	dz := float64(c.Z - o.Z)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Grid is the read surface this core needs from world block storage.
// Implementations must tolerate out-of-range cells (treat them as air).
type Grid interface {
	// Solid reports whether the cell blocks movement.
	Solid(c Vec3i) bool
	// Transparent reports whether vision passes through a solid cell
	// (glass, tape). Non-solid cells are implicitly transparent.
	Transparent(c Vec3i) bool
}

// Standable reports whether an agent can occupy cell c: solid footing one
// below, and both the cell and the one above clear.
func Standable(g Grid, c Vec3i) bool {
	return g.Solid(c.Below()) && !g.Solid(c) && !g.Solid(c.Above())
}

// BlocksSight reports whether cell c occludes a vision ray.
func BlocksSight(g Grid, c Vec3i) bool {
	return g.Solid(c) && !g.Transparent(c)
}
