package npc

import (
	"testing"

	"brickton.sim/internal/sim/tuning"
	"brickton.sim/internal/sim/voxel"
)

// testWorld is flat open ground at y<0 plus explicitly placed blocks.
type testWorld struct {
	placed  map[voxel.Vec3i]BlockKind
	tape    map[voxel.Vec3i]bool
	notices map[voxel.Vec3i]bool
	hits    map[voxel.Vec3i]int
}

func newTestWorld() *testWorld {
	return &testWorld{
		placed:  map[voxel.Vec3i]BlockKind{},
		tape:    map[voxel.Vec3i]bool{},
		notices: map[voxel.Vec3i]bool{},
		hits:    map[voxel.Vec3i]int{},
	}
}

func (w *testWorld) Solid(c voxel.Vec3i) bool {
	if k, ok := w.placed[c]; ok {
		return k != KindAir
	}
	return c.Y < 0
}

func (w *testWorld) Transparent(c voxel.Vec3i) bool { return w.placed[c] == KindGlass }

func (w *testWorld) KindAt(c voxel.Vec3i) BlockKind {
	if k, ok := w.placed[c]; ok {
		return k
	}
	if c.Y < 0 {
		return KindOther
	}
	return KindAir
}

func (w *testWorld) CollidesAABB(min, max voxel.Vec3) bool {
	lo, hi := min.Cell(), max.Cell()
	for x := lo.X; x <= hi.X; x++ {
		for y := lo.Y; y <= hi.Y; y++ {
			for z := lo.Z; z <= hi.Z; z++ {
				if w.Solid(voxel.Vec3i{X: x, Y: y, Z: z}) {
					return true
				}
			}
		}
	}
	return false
}

func (w *testWorld) RemoveBlock(c voxel.Vec3i)          { delete(w.placed, c) }
func (w *testWorld) ClearHitCount(c voxel.Vec3i)        { delete(w.hits, c) }
func (w *testWorld) AddPoliceTape(c voxel.Vec3i)        { w.tape[c] = true }
func (w *testWorld) RemovePoliceTape(c voxel.Vec3i)     { delete(w.tape, c) }
func (w *testWorld) AddPlanningNotice(c voxel.Vec3i)    { w.notices[c] = true }
func (w *testWorld) RemovePlanningNotice(c voxel.Vec3i) { delete(w.notices, c) }

// cube places a solid box of blocks with its lower corner at (x,y,z).
func (w *testWorld) cube(x, y, z, dx, dy, dz int, k BlockKind) {
	for i := 0; i < dx; i++ {
		for j := 0; j < dy; j++ {
			for l := 0; l < dz; l++ {
				w.placed[voxel.Vec3i{X: x + i, Y: y + j, Z: z + l}] = k
			}
		}
	}
}

type testPlayer struct {
	pos       voxel.Vec3
	rep       Reputation
	noise     float64
	disguised bool
	hiVis     bool
	crouching bool
	sheltered bool

	damageTaken int
	lastPush    voxel.Vec3
}

func (p *testPlayer) Pos() voxel.Vec3        { return p.pos }
func (p *testPlayer) Reputation() Reputation { return p.rep }
func (p *testPlayer) Noise() float64         { return p.noise }
func (p *testPlayer) Disguised() bool        { return p.disguised }
func (p *testPlayer) HiVis() bool            { return p.hiVis }
func (p *testPlayer) Crouching() bool        { return p.crouching }
func (p *testPlayer) Sheltered() bool        { return p.sheltered }
func (p *testPlayer) Damage(hp int)          { p.damageTaken += hp }
func (p *testPlayer) Push(v voxel.Vec3)      { p.lastPush = v }

type testInv struct {
	counts map[Item]int
}

func newTestInv() *testInv { return &testInv{counts: map[Item]int{}} }

func (v *testInv) Count(it Item) int { return v.counts[it] }

func (v *testInv) Remove(it Item, n int) bool {
	if v.counts[it] < n {
		return false
	}
	v.counts[it] -= n
	return true
}

func (v *testInv) Add(it Item, n int) { v.counts[it] += n }

func (v *testInv) NonEmpty() []Item {
	var out []Item
	for _, it := range stealPriority {
		if v.counts[it] > 0 {
			out = append(out, it)
		}
	}
	return out
}

type env struct {
	m      *Manager
	world  *testWorld
	player *testPlayer
	inv    *testInv
}

func newEnv(t *testing.T, territories []Territory) *env {
	t.Helper()
	w := newTestWorld()
	p := &testPlayer{pos: voxel.Vec3{X: 0.5, Y: 0, Z: 0.5}}
	inv := newTestInv()
	m, err := New(Config{
		Tuning:      tuning.Default(),
		World:       w,
		Player:      p,
		Inventory:   inv,
		Territories: territories,
		Seed:        42,
	})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	return &env{m: m, world: w, player: p, inv: inv}
}

// run advances the simulation in small fixed steps for a total of seconds.
func (e *env) run(seconds float64) {
	const dt = 0.1
	steps := int(seconds/dt + 0.5)
	for i := 0; i < steps; i++ {
		e.m.Update(dt)
	}
}

// incidentKinds drains and tallies incident kinds.
func (e *env) incidentKinds() map[string]int {
	out := map[string]int{}
	for _, inc := range e.m.DrainIncidents() {
		out[inc.Kind]++
	}
	return out
}

func standingAt(x, z float64) voxel.Vec3 { return voxel.Vec3{X: x, Y: 0, Z: z} }
