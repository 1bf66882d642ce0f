package npc

import (
	"math"

	"brickton.sim/internal/sim/voxel"
)

// Punch applies a player melee hit: knockback plus damage, with
// archetype-specific fallout. Unknown or already-downed agents are ignored.
func (m *Manager) Punch(id string, dir voxel.Vec3, damage int) {
	a := m.agents[id]
	if a == nil || !a.Alive {
		return
	}

	n := dir
	if l := n.LenXZ(); l > 1e-6 {
		n = voxel.Vec3{X: n.X / l, Z: n.Z / l}
	} else {
		ang := m.rng.Float64() * 2 * math.Pi
		n = voxel.Vec3{X: math.Cos(ang), Z: math.Sin(ang)}
	}
	a.Knockback = n.Scale(m.tun.Move.KnockbackSpeed)
	a.KnockbackLeft = m.tun.Move.KnockbackTime

	a.HP -= damage
	if a.HP <= 0 {
		m.knockOut(a)
		return
	}

	switch a.Archetype {
	case Officer:
		// Striking an officer is instant escalation plus a radio call.
		if a.State != StateAggressive {
			m.officerPursue(a, m.player.Pos())
			m.alertNearbyOfficers(a.Pos, m.tun.Police.AlertRadius)
		}
	case Gang:
		if _, inside := m.territoryAt(m.player.Pos()); inside {
			m.ForceTerritoryHostile()
		}
		if a.State != StateGangAggro {
			a.State = StateGangAggro
			a.ClearRoute()
			a.Say(gangAggroLines[m.rng.Intn(len(gangAggroLines))], m.tun.Speech.LineSeconds)
		}
		a.timers.aggro = m.tun.Gang.AggressiveFor
	case Demolition:
		a.State = StateKnockedBack
		a.timers.knockback = m.tun.Demolition.KnockbackDelay
	case Civilian:
		if a.State != StateFlee {
			a.State = StateFlee
			a.ClearRoute()
			a.Say(fleeLines[m.rng.Intn(len(fleeLines))], m.tun.Speech.LineSeconds)
		}
	}
}

// knockOut puts the agent in the terminal downed sub-state: timers still
// tick, behavior never runs again, and the body is swept once both speech
// and recovery expire. A gang member's satchel returns to the player.
func (m *Manager) knockOut(a *Agent) {
	a.Alive = false
	a.HP = 0
	a.ClearRoute()
	a.Say("Ugh...", m.tun.Speech.LineSeconds)
	a.timers.recover = m.tun.Speech.KnockedOutRecov
	for _, it := range a.Satchel {
		m.inv.Add(it, 1)
	}
	a.Satchel = nil
	m.record(IncKnockedOut, a, a.Pos, a.Archetype.String())
	m.notifyKey("npc.knocked_out")
}
