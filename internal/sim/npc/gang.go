package npc

import "brickton.sim/internal/sim/voxel"

var (
	stealLines = []string{
		"I'll be having that.",
		"Finders keepers.",
	}
	gangAggroLines = []string{
		"Wrong turf, mate.",
		"You were warned.",
	}
)

func (m *Manager) tickGang(a *Agent, dt float64) {
	if a.timers.steal > 0 {
		a.timers.steal -= dt
	}

	switch a.State {
	case StateGangAggro:
		a.timers.aggro -= dt
		if m.player.Sheltered() || a.timers.aggro <= 0 {
			a.State = StateWander
			a.ClearRoute()
			return
		}
		pp := m.player.Pos()
		if distXZ(a.Pos, pp) <= m.tun.Gang.StealRadius {
			if a.timers.steal <= 0 {
				a.timers.steal = 1.0
				m.player.Damage(1)
				m.player.Push(pushDir(a.Pos, pp, 4))
			}
			a.faceToward(pp)
			a.ClearRoute()
			return
		}
		m.setDestination(a, pp)

	case StateSteal:
		// Brief gloat, then back to blending in.
		a.timers.reactDwell -= dt
		if a.timers.reactDwell <= 0 {
			a.State = StateWander
		}

	default:
		m.tickWander(a, dt, m.tun.Gang.WanderRadius)
		if a.timers.steal <= 0 && distXZ(a.Pos, m.player.Pos()) <= m.tun.Gang.StealRadius {
			m.steal(a)
		}
	}
}

// steal lifts one item off the player: the highest-priority type they hold,
// otherwise a random non-empty slot. The haul rides in the thief's satchel
// until they are knocked out.
func (m *Manager) steal(a *Agent) {
	a.timers.steal = m.tun.Gang.StealCooldown
	took, ok := m.takeOne()
	if !ok {
		return
	}
	a.Satchel = append(a.Satchel, took)
	a.State = StateSteal
	a.timers.reactDwell = 1.0
	a.ClearRoute()
	a.faceToward(m.player.Pos())
	a.Say(stealLines[m.rng.Intn(len(stealLines))], m.tun.Speech.LineSeconds)
	m.record(IncTheft, a, a.Pos, string(took))
	m.notifyKey("gang.theft")
}

func (m *Manager) takeOne() (Item, bool) {
	for _, it := range stealPriority {
		if m.inv.Count(it) > 0 && m.inv.Remove(it, 1) {
			return it, true
		}
	}
	slots := m.inv.NonEmpty()
	if len(slots) == 0 {
		return "", false
	}
	it := slots[m.rng.Intn(len(slots))]
	if !m.inv.Remove(it, 1) {
		return "", false
	}
	return it, true
}

func pushDir(from, to voxel.Vec3, strength float64) voxel.Vec3 {
	d := to.Sub(from)
	l := d.LenXZ()
	if l < 1e-6 {
		return voxel.Vec3{X: strength}
	}
	return voxel.Vec3{X: d.X / l, Z: d.Z / l}.Scale(strength)
}
