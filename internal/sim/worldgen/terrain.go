// Package worldgen provides the demo and test world: an opensimplex
// heightfield with a sparse override layer for placed and removed blocks,
// implementing both the grid read surface and the full world surface the
// simulation core consumes.
package worldgen

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"brickton.sim/internal/sim/npc"
	"brickton.sim/internal/sim/voxel"
)

type column struct{ x, z int }

type Terrain struct {
	noise opensimplex.Noise
	baseY int
	amp   float64

	heights map[column]int

	// Sparse edits over the generated ground.
	placed  map[voxel.Vec3i]npc.BlockKind
	removed map[voxel.Vec3i]bool

	tape    map[voxel.Vec3i]bool
	notices map[voxel.Vec3i]bool
	hits    map[voxel.Vec3i]int
}

func New(seed int64) *Terrain {
	return &Terrain{
		noise:   opensimplex.NewNormalized(seed),
		baseY:   60,
		amp:     6,
		heights: map[column]int{},
		placed:  map[voxel.Vec3i]npc.BlockKind{},
		removed: map[voxel.Vec3i]bool{},
		tape:    map[voxel.Vec3i]bool{},
		notices: map[voxel.Vec3i]bool{},
		hits:    map[voxel.Vec3i]int{},
	}
}

// Flat returns a terrain with a constant surface, handy in tests where the
// heightfield would only add noise.
func Flat(surfaceY int) *Terrain {
	t := New(1)
	t.amp = 0
	t.baseY = surfaceY
	return t
}

// SurfaceY is the first air cell of the column; ground fills everything
// below it.
func (t *Terrain) SurfaceY(x, z int) int {
	if t.amp == 0 {
		return t.baseY
	}
	k := column{x, z}
	if h, ok := t.heights[k]; ok {
		return h
	}
	n := t.noise.Eval2(float64(x)/48, float64(z)/48)
	h := t.baseY + int(math.Round(n*t.amp))
	t.heights[k] = h
	return h
}

// SurfacePos is the standable position on top of the column.
func (t *Terrain) SurfacePos(x, z int) voxel.Vec3 {
	return voxel.Vec3i{X: x, Y: t.SurfaceY(x, z), Z: z}.Center()
}

func (t *Terrain) Solid(c voxel.Vec3i) bool {
	if t.removed[c] {
		return false
	}
	if k, ok := t.placed[c]; ok {
		return k != npc.KindAir
	}
	return c.Y < t.SurfaceY(c.X, c.Z)
}

func (t *Terrain) Transparent(c voxel.Vec3i) bool {
	return t.placed[c] == npc.KindGlass
}

func (t *Terrain) KindAt(c voxel.Vec3i) npc.BlockKind {
	if t.removed[c] {
		return npc.KindAir
	}
	if k, ok := t.placed[c]; ok {
		return k
	}
	if c.Y < t.SurfaceY(c.X, c.Z) {
		return npc.KindOther
	}
	return npc.KindAir
}

func (t *Terrain) CollidesAABB(min, max voxel.Vec3) bool {
	lo := min.Cell()
	hi := max.Cell()
	for x := lo.X; x <= hi.X; x++ {
		for y := lo.Y; y <= hi.Y; y++ {
			for z := lo.Z; z <= hi.Z; z++ {
				if t.Solid(voxel.Vec3i{X: x, Y: y, Z: z}) {
					return true
				}
			}
		}
	}
	return false
}

// SetBlock places a block, the way a player build lands in the world.
func (t *Terrain) SetBlock(c voxel.Vec3i, k npc.BlockKind) {
	delete(t.removed, c)
	if k == npc.KindAir {
		t.RemoveBlock(c)
		return
	}
	t.placed[c] = k
}

func (t *Terrain) RemoveBlock(c voxel.Vec3i) {
	if _, ok := t.placed[c]; ok {
		delete(t.placed, c)
		return
	}
	if c.Y < t.SurfaceY(c.X, c.Z) {
		t.removed[c] = true
	}
}

func (t *Terrain) ClearHitCount(c voxel.Vec3i) { delete(t.hits, c) }

// HitCount supports tests poking at the counter surface.
func (t *Terrain) HitCount(c voxel.Vec3i) int       { return t.hits[c] }
func (t *Terrain) SetHitCount(c voxel.Vec3i, n int) { t.hits[c] = n }

func (t *Terrain) AddPoliceTape(c voxel.Vec3i)          { t.tape[c] = true }
func (t *Terrain) RemovePoliceTape(c voxel.Vec3i)       { delete(t.tape, c) }
func (t *Terrain) HasPoliceTape(c voxel.Vec3i) bool     { return t.tape[c] }
func (t *Terrain) AddPlanningNotice(c voxel.Vec3i)      { t.notices[c] = true }
func (t *Terrain) RemovePlanningNotice(c voxel.Vec3i)   { delete(t.notices, c) }
func (t *Terrain) HasPlanningNotice(c voxel.Vec3i) bool { return t.notices[c] }

var _ npc.World = (*Terrain)(nil)
