package npc

import (
	"math"

	"brickton.sim/internal/sim/path"
	"brickton.sim/internal/sim/voxel"
)

// setDestination points the agent at goal and requests a path, subject to
// the per-agent recalculation cooldown. When even the approach fallback
// fails, the movement target is cleared so the agent falls back to exploring
// alternatives next decision.
func (m *Manager) setDestination(a *Agent, goal voxel.Vec3) {
	g := goal
	a.Target = &g
	if a.timers.repath > 0 {
		return
	}
	a.timers.repath = m.tun.Path.RepathCooldown
	wps := path.Find(m.world, m.pathOpts, a.Pos, goal)
	if wps == nil {
		wps = path.FindApproach(m.world, m.pathOpts, a.Pos, goal, m.tun.Path.ApproachSteps)
	}
	if wps == nil {
		a.ClearRoute()
		return
	}
	a.Path = wps
	a.PathIdx = 0
}

func (m *Manager) speedFor(a *Agent) float64 {
	s := m.tun.Move.WalkSpeed
	switch a.State {
	case StateFlee:
		s *= m.tun.Move.FleeSpeedMult
	case StateAggressive, StateGangAggro:
		s *= m.tun.Move.ChaseSpeedMult
	}
	return s
}

// advance moves the agent along its path, or straight at its target when no
// path is set, with collision checks and the stuck-escape heuristic.
func (m *Manager) advance(a *Agent, dt float64) {
	if a.timers.repath > 0 {
		a.timers.repath -= dt
	}

	var goal voxel.Vec3
	switch {
	case len(a.Path) > 0:
		if a.PathIdx >= len(a.Path) {
			a.ClearRoute()
			return
		}
		goal = a.Path[a.PathIdx]
	case a.Target != nil:
		goal = *a.Target
	default:
		return
	}

	d := goal.Sub(a.Pos)
	if d.LenXZ() <= m.tun.Move.WaypointReach && math.Abs(d.Y) <= 1.01 {
		if len(a.Path) > 0 {
			a.PathIdx++
			if a.PathIdx >= len(a.Path) {
				a.ClearRoute()
			}
		} else {
			a.Target = nil
		}
		return
	}

	speed := m.speedFor(a)
	step := d.Scale(1 / d.Len()).Scale(speed * dt)
	a.Yaw = math.Atan2(step.Z, step.X)

	next := a.Pos.Add(step)
	if !m.collides(a, next) {
		a.Pos = next
		a.Vel = step.Scale(1 / dt)
		return
	}
	m.escapeStuck(a, speed, dt)
}

// escapeStuck tries a handful of randomized lateral directions; if every one
// collides, applies a raw velocity shove so the agent is never faulted for
// being wedged.
func (m *Manager) escapeStuck(a *Agent, speed, dt float64) {
	for i := 0; i < m.tun.Move.StuckEscapeTries; i++ {
		ang := m.rng.Float64() * 2 * math.Pi
		alt := voxel.Vec3{X: math.Cos(ang), Z: math.Sin(ang)}.Scale(speed * dt)
		next := a.Pos.Add(alt)
		if !m.collides(a, next) {
			a.Pos = next
			a.Yaw = ang
			return
		}
	}
	ang := m.rng.Float64() * 2 * math.Pi
	a.Knockback = voxel.Vec3{X: math.Cos(ang), Z: math.Sin(ang)}.Scale(m.tun.Move.StuckShove)
	a.KnockbackLeft = 0.3
}

func (m *Manager) advanceKnockback(a *Agent, dt float64) {
	a.KnockbackLeft -= dt
	next := a.Pos.Add(a.Knockback.Scale(dt))
	if !m.collides(a, next) {
		a.Pos = next
	}
	decay := 1 - m.tun.Move.KnockbackDecay*dt
	if decay < 0 {
		decay = 0
	}
	a.Knockback = a.Knockback.Scale(decay)
	if a.KnockbackLeft <= 0 {
		a.Knockback = voxel.Vec3{}
	}
}

func (m *Manager) collides(a *Agent, at voxel.Vec3) bool {
	min := at.Sub(voxel.Vec3{X: a.Half.X, Z: a.Half.Z})
	max := at.Add(voxel.Vec3{X: a.Half.X, Y: a.Half.Y * 2, Z: a.Half.Z})
	return m.world.CollidesAABB(min, max)
}

// moveAwayFrom steers directly away from a point (fleeing); no pathfinding.
func (m *Manager) moveAwayFrom(a *Agent, from voxel.Vec3) {
	d := a.Pos.Sub(from)
	l := d.LenXZ()
	if l < 1e-6 {
		ang := m.rng.Float64() * 2 * math.Pi
		d = voxel.Vec3{X: math.Cos(ang), Z: math.Sin(ang)}
		l = 1
	}
	away := a.Pos.Add(voxel.Vec3{X: d.X / l, Z: d.Z / l}.Scale(4))
	a.Path = nil
	a.PathIdx = 0
	a.Target = &away
}

// faceToward snaps the agent's yaw at a point without moving.
func (a *Agent) faceToward(p voxel.Vec3) {
	d := p.Sub(a.Pos)
	if d.LenXZ() > 1e-6 {
		a.Yaw = math.Atan2(d.Z, d.X)
	}
}
