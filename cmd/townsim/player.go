package main

import (
	"math"
	"math/rand"

	"brickton.sim/internal/sim/npc"
	"brickton.sim/internal/sim/voxel"
	"brickton.sim/internal/sim/worldgen"
)

// scriptedPlayer is a deterministic stand-in for a real player: it wanders
// around its home, builds a brick hut early in the run to wake the structure
// scanner, and sprints now and then so officers have something to hear.
type scriptedPlayer struct {
	terrain *worldgen.Terrain
	rng     *rand.Rand

	pos  voxel.Vec3
	home voxel.Vec3
	dest voxel.Vec3
	rep  npc.Reputation

	noise    float64
	sprint   float64
	placed   int
	buildAt  voxel.Vec3i
	pushVel  voxel.Vec3
	pushLeft float64
	hp       int
}

const hutBlocks = 12

func newScriptedPlayer(t *worldgen.Terrain, rng *rand.Rand) *scriptedPlayer {
	home := t.SurfacePos(0, 0)
	return &scriptedPlayer{
		terrain: t,
		rng:     rng,
		pos:     home,
		home:    home,
		dest:    home,
		buildAt: voxel.Vec3i{X: 6, Y: home.Cell().Y, Z: 6},
		hp:      20,
	}
}

func (p *scriptedPlayer) Pos() voxel.Vec3            { return p.pos }
func (p *scriptedPlayer) Reputation() npc.Reputation { return p.rep }
func (p *scriptedPlayer) Noise() float64             { return p.noise }
func (p *scriptedPlayer) Disguised() bool            { return false }
func (p *scriptedPlayer) HiVis() bool                { return false }
func (p *scriptedPlayer) Crouching() bool            { return false }
func (p *scriptedPlayer) Sheltered() bool            { return false }

func (p *scriptedPlayer) Damage(hp int) {
	p.hp -= hp
	if p.hp < 0 {
		p.hp = 0
	}
}

func (p *scriptedPlayer) Push(v voxel.Vec3) {
	p.pushVel = v
	p.pushLeft = 0.4
}

func (p *scriptedPlayer) flag() {
	if p.rep == npc.RepClean {
		p.rep = npc.RepFlagged
	}
}

// arrest resets the player to home with a clean slate, the game-level
// consequence of an officer closing to arrest range.
func (p *scriptedPlayer) arrest() {
	p.pos = p.home
	p.dest = p.home
	p.rep = npc.RepClean
	p.noise = 0
}

func (p *scriptedPlayer) step(dt float64, mgr *npc.Manager) {
	if p.pushLeft > 0 {
		p.pos = p.pos.Add(p.pushVel.Scale(dt))
		p.pushLeft -= dt
		return
	}

	// Lay one hut block per half second until the hut is done.
	if p.placed < hutBlocks && mgr.Tick()%10 == 0 {
		c := p.buildAt
		c.X += p.placed % 3
		c.Z += (p.placed / 3) % 3
		c.Y = p.terrain.SurfaceY(c.X, c.Z) + p.placed/9
		p.terrain.SetBlock(c, npc.KindBrick)
		p.placed++
	}

	// Sprint bursts make noise; otherwise the player is quiet.
	p.sprint -= dt
	if p.sprint <= 0 && p.rng.Float64() < 0.002 {
		p.sprint = 2.0
	}
	speed := 2.0
	p.noise = 0.1
	if p.sprint > 0 {
		speed = 4.5
		p.noise = 1.0
	}

	d := p.dest.Sub(p.pos)
	if d.LenXZ() < 0.5 {
		ang := p.rng.Float64() * 2 * math.Pi
		r := 4 + p.rng.Float64()*10
		x := int(p.home.X + r*math.Cos(ang))
		z := int(p.home.Z + r*math.Sin(ang))
		p.dest = p.terrain.SurfacePos(x, z)
		return
	}
	step := d.Scale(speed * dt / math.Max(d.LenXZ(), 1e-6))
	p.pos = p.pos.Add(voxel.Vec3{X: step.X, Z: step.Z})
	p.pos.Y = p.terrain.SurfacePos(p.pos.Cell().X, p.pos.Cell().Z).Y
}

type mapInventory struct{ items map[npc.Item]int }

func newInventory() *mapInventory {
	return &mapInventory{items: map[npc.Item]int{
		npc.ItemCash:   5,
		npc.ItemBricks: 24,
		npc.ItemTools:  2,
	}}
}

func (v *mapInventory) Count(it npc.Item) int { return v.items[it] }

func (v *mapInventory) Remove(it npc.Item, n int) bool {
	if v.items[it] < n {
		return false
	}
	v.items[it] -= n
	if v.items[it] == 0 {
		delete(v.items, it)
	}
	return true
}

func (v *mapInventory) Add(it npc.Item, n int) { v.items[it] += n }

func (v *mapInventory) NonEmpty() []npc.Item {
	out := make([]npc.Item, 0, len(v.items))
	for it, n := range v.items {
		if n > 0 {
			out = append(out, it)
		}
	}
	return out
}
