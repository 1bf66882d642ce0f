package npc

import "brickton.sim/internal/sim/voxel"

var (
	warnLines = []string{
		"Oi! Move along.",
		"I've got my eye on you.",
		"Nothing to see here. Keep walking.",
	}
	suspiciousLines = []string{
		"Hello? Who's there?",
		"I heard that.",
	}
	pursuitLines = []string{
		"Stop right there!",
		"You're coming with me!",
	}
)

func (m *Manager) tickOfficer(a *Agent, dt float64) {
	// Sheltered is the stealth safe zone: any escalated state cancels on the
	// spot, and no contact, sight, or hearing check runs this frame, so an
	// officer standing next to the shelter cannot re-open a warning.
	if m.player.Sheltered() {
		if a.State != StatePatrol {
			m.officerToPatrol(a)
		}
		if !m.officerStructureDuty(a) {
			m.tickWander(a, dt, m.tun.Police.WanderRadius)
		}
		return
	}
	switch a.State {
	case StatePatrol:
		m.officerPatrol(a, dt)
	case StateSuspicious:
		m.officerSuspicious(a, dt)
	case StateWarning:
		m.officerWarning(a, dt)
	case StateAggressive:
		m.officerAggressive(a, dt)
	}
}

func (m *Manager) officerToPatrol(a *Agent) {
	a.State = StatePatrol
	a.timers.warn = 0
	a.timers.suspicious = 0
	a.timers.lostSight = 0
	a.ClearRoute()
}

func (m *Manager) officerPatrol(a *Agent, dt float64) {
	pp := m.player.Pos()
	rep := m.player.Reputation()

	// Direct proximity contact always escalates, notorious players skip the
	// warning entirely.
	if distXZ(a.Pos, pp) <= m.tun.Police.ContactRadius {
		a.ClearRoute()
		a.faceToward(pp)
		if rep == RepNotorious {
			m.officerPursue(a, pp)
		} else {
			a.State = StateWarning
			a.timers.warn = 0
			a.Say(warnLines[m.rng.Intn(len(warnLines))], m.tun.Speech.LineSeconds)
			m.record(IncWarning, a, a.Pos, "")
			m.notifyKey("police.warning")
		}
		return
	}

	if m.officerStructureDuty(a) {
		return
	}

	// Perception applies to everyone; reputation only changes what being
	// seen costs the player.
	seen := m.seesPlayer(a)
	if seen && (rep != RepClean || a.alerted) {
		m.officerPursue(a, pp)
		return
	}
	if !seen && m.hearsPlayer(a) {
		a.State = StateSuspicious
		a.timers.suspicious = 0
		a.lastKnown = pp
		a.ClearRoute()
		a.Say(suspiciousLines[m.rng.Intn(len(suspiciousLines))], m.tun.Speech.LineSeconds)
		return
	}
	if seen {
		a.faceToward(pp)
	}
	m.tickWander(a, dt, m.tun.Police.WanderRadius)
}

// officerStructureDuty walks the officer to a tracked untaped structure and
// tapes it off. Reports true when the frame was spent on that.
func (m *Manager) officerStructureDuty(a *Agent) bool {
	if a.structIdx >= 0 {
		if a.structIdx < len(m.structures) {
			s := m.structures[a.structIdx]
			if !s.Empty() && !s.Taped {
				if distXZ(a.Pos, s.Centroid) <= m.tun.Police.TapeRange {
					m.tapeStructure(s)
					a.structIdx = -1
					a.ClearRoute()
				} else {
					m.setDestination(a, s.Centroid)
				}
				return true
			}
		}
		a.structIdx = -1
	}
	if idx := m.nearestUntapedStructure(a.Pos, m.tun.Police.WanderRadius); idx >= 0 {
		a.structIdx = idx
		return true
	}
	return false
}

func (m *Manager) officerPursue(a *Agent, lastKnown voxel.Vec3) {
	a.State = StateAggressive
	a.lastKnown = lastKnown
	a.timers.lostSight = 0
	a.ClearRoute()
	a.Say(pursuitLines[m.rng.Intn(len(pursuitLines))], m.tun.Speech.LineSeconds)
	m.record(IncPursuit, a, a.Pos, "")
	m.notifyKey("police.pursuit")
}

func (m *Manager) officerSuspicious(a *Agent, dt float64) {
	pp := m.player.Pos()
	a.timers.suspicious += dt

	seen := m.seesPlayer(a)
	if seen || distXZ(a.Pos, pp) <= m.tun.Police.ContactRadius {
		a.State = StateWarning
		a.timers.warn = 0
		a.ClearRoute()
		a.faceToward(pp)
		a.Say(warnLines[m.rng.Intn(len(warnLines))], m.tun.Speech.LineSeconds)
		m.record(IncWarning, a, a.Pos, "")
		return
	}
	// Timeout, or the noise died down with nothing in sight.
	if a.timers.suspicious >= m.tun.Police.SuspiciousTimeout ||
		m.player.Noise() < m.tun.Police.QuietNoise {
		m.officerToPatrol(a)
		a.Say("Must've been nothing.", m.tun.Speech.LineSeconds)
		return
	}
	m.setDestination(a, a.lastKnown)
}

func (m *Manager) officerWarning(a *Agent, dt float64) {
	pp := m.player.Pos()
	mult := 1.0
	if m.player.Disguised() {
		// A disguise buys time on both ends of the warning window.
		mult = m.tun.Police.DisguiseTimerMult
	}
	a.timers.warn += dt
	a.faceToward(pp)

	nearIdx := m.nearestStructure(pp, m.tun.Police.StructureNearRange, false)
	if nearIdx >= 0 && a.timers.warn >= m.tun.Police.WarnEscalate*mult {
		m.tapeStructure(m.structures[nearIdx])
		m.spawnBackup(pp)
		m.officerPursue(a, pp)
		return
	}
	if a.timers.warn >= m.tun.Police.WarnTimeout*mult {
		m.officerToPatrol(a)
		return
	}
	if distXZ(a.Pos, pp) > m.tun.Police.ContactRadius {
		m.setDestination(a, pp)
	} else {
		a.ClearRoute()
	}
}

func (m *Manager) officerAggressive(a *Agent, dt float64) {
	pp := m.player.Pos()
	if m.seesPlayer(a) {
		a.lastKnown = pp
		a.timers.lostSight = 0
	} else {
		a.timers.lostSight += dt
	}
	if a.timers.lostSight >= m.tun.Police.LostSightTimeout {
		m.officerToPatrol(a)
		a.Say("Lost him.", m.tun.Speech.LineSeconds)
		return
	}
	if distXZ(a.Pos, pp) <= m.tun.Police.ArrestRadius &&
		!m.arrestPending && m.arrestCooldown <= 0 {
		m.arrestPending = true
		m.record(IncArrest, a, a.Pos, "")
		m.notifyKey("police.arrest")
		m.officerToPatrol(a)
		return
	}
	m.setDestination(a, a.lastKnown)
}

// alertNearbyOfficers flags every officer within radius as crime-alerted, so
// merely being seen is grounds for pursuit.
func (m *Manager) alertNearbyOfficers(at voxel.Vec3, radius float64) {
	for _, o := range m.Agents() {
		if o.Archetype != Officer || !o.Alive {
			continue
		}
		if distXZ(o.Pos, at) <= radius {
			o.alerted = true
		}
	}
}

func (m *Manager) nearestUntapedStructure(p voxel.Vec3, maxDist float64) int {
	best := -1
	bestD := maxDist
	for i, s := range m.structures {
		if s.Empty() || s.Taped {
			continue
		}
		if d := distXZ(p, s.Centroid); d <= bestD {
			best = i
			bestD = d
		}
	}
	return best
}
