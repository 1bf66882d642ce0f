package npc

var (
	fleeLines = []string{
		"Stay away from me!",
		"I'm calling the police!",
		"Not again!",
	}
	stareLines = []string{
		"What on earth is that?",
		"That wasn't there yesterday.",
	}
	photoLines = []string{
		"The local paper will want to see this.",
		"One for the group chat.",
	}
	complainLines = []string{
		"You can't just build that there!",
		"Has the council seen this?",
		"There goes the neighbourhood.",
	}
	chatLines = [][2]string{
		{"Lovely weather for it.", "If you say so."},
		{"Have you seen what they've built?", "Disgraceful, isn't it."},
		{"Morning.", "Morning."},
	}
)

func (m *Manager) tickCivilian(a *Agent, dt float64) {
	m.tickRoutine(a)

	if a.timers.reactGrace > 0 {
		a.timers.reactGrace -= dt
	}
	if a.timers.chat > 0 {
		a.timers.chat -= dt
	}

	// A flagged player nearby trumps whatever the civilian was doing.
	if a.State != StateFlee && m.player.Reputation() != RepClean &&
		distXZ(a.Pos, m.player.Pos()) <= m.tun.Civilian.FleeRange {
		a.State = StateFlee
		a.ClearRoute()
		a.Say(fleeLines[m.rng.Intn(len(fleeLines))], m.tun.Speech.LineSeconds)
	}

	switch a.State {
	case StateWander:
		m.maybeReact(a, dt)
		if a.State != StateWander {
			return
		}
		m.maybeChat(a)
		m.tickWander(a, dt, m.tun.Civilian.WanderRadius)

	case StateFlee:
		if distXZ(a.Pos, m.player.Pos()) >= m.tun.Civilian.FleeSafeDist {
			a.State = StateWander
			a.ClearRoute()
			a.timers.idle = m.randRange(m.tun.Civilian.IdlePauseMin, m.tun.Civilian.IdlePauseMax)
			return
		}
		m.moveAwayFrom(a, m.player.Pos())

	case StateStare, StatePhotograph, StateComplain:
		a.timers.reactDwell -= dt
		if a.timers.reactDwell <= 0 {
			a.State = StateWander
			a.structIdx = -1
			a.ClearRoute()
			a.timers.reactGrace = m.tun.Civilian.ReactGrace
			return
		}
		if a.structIdx >= 0 && a.structIdx < len(m.structures) && !a.Moving() {
			a.faceToward(m.structures[a.structIdx].Centroid)
		}
	}
}

// tickRoutine latches the daily-routine band. Only idle wandering is
// interrupted on a transition; reaction and flee states are left alone so
// the clock never thrashes them.
func (m *Manager) tickRoutine(a *Agent) {
	band := m.routineBand()
	if band == a.band {
		return
	}
	a.band = band
	if a.State != StateWander {
		return
	}
	switch band {
	case bandEvening, bandNight:
		// Head home for the evening.
		m.setDestination(a, a.home)
	case bandMorning:
		a.timers.idle = 0
	}
}

// tickWander picks a random reachable point within the archetype envelope
// after an idle pause. The pause is flavor, but it also throttles pathfinder
// calls across the population.
func (m *Manager) tickWander(a *Agent, dt float64, radius float64) {
	if a.Moving() {
		return
	}
	a.timers.idle -= dt
	if a.timers.idle > 0 {
		return
	}
	a.timers.idle = m.randRange(m.tun.Civilian.IdlePauseMin, m.tun.Civilian.IdlePauseMax)
	center := a.home
	if m.routineBand() == bandDay {
		center = a.Pos
	}
	goal := m.randPointNear(center, m.tun.Civilian.WanderMinDist, radius)
	m.setDestination(a, goal)
}

// maybeReact runs the agent's staggered structure check and, on a hit,
// enters a random reaction state aimed at the structure.
func (m *Manager) maybeReact(a *Agent, dt float64) {
	a.timers.structCheck -= dt
	if a.timers.structCheck > 0 {
		return
	}
	a.timers.structCheck = m.tun.Civilian.StructCheckEvery
	if a.timers.reactGrace > 0 {
		return
	}
	idx := m.nearestStructure(a.Pos, float64(m.tun.Structures.ScanRadius), false)
	if idx < 0 {
		return
	}
	s := m.structures[idx]
	a.structIdx = idx
	switch m.rng.Intn(3) {
	case 0:
		a.State = StateStare
		a.Say(stareLines[m.rng.Intn(len(stareLines))], m.tun.Speech.LineSeconds)
	case 1:
		a.State = StatePhotograph
		a.Say(photoLines[m.rng.Intn(len(photoLines))], m.tun.Speech.LineSeconds)
	default:
		a.State = StateComplain
		a.Say(complainLines[m.rng.Intn(len(complainLines))], m.tun.Speech.LineSeconds)
	}
	a.timers.reactDwell = m.tun.Civilian.ReactDwell
	m.setDestination(a, s.Centroid)
}

// maybeChat pairs two idle civilians for a short exchange. The reply is
// delayed by the initiator's line duration so the second speaker actually
// answers rather than talking over them.
func (m *Manager) maybeChat(a *Agent) {
	if a.timers.chat > 0 || a.SpeechLeft > 0 {
		return
	}
	for _, b := range m.Agents() {
		if b == a || b.Archetype != Civilian || !b.Alive || b.State != StateWander {
			continue
		}
		if b.SpeechLeft > 0 || b.replyDelay > 0 || b.timers.chat > 0 {
			continue
		}
		if distXZ(a.Pos, b.Pos) > m.tun.Civilian.ChatRange {
			continue
		}
		line := chatLines[m.rng.Intn(len(chatLines))]
		a.Say(line[0], m.tun.Speech.LineSeconds)
		b.replyLine = line[1]
		b.replyDelay = m.tun.Speech.LineSeconds
		a.timers.chat = m.tun.Civilian.ChatCooldown
		b.timers.chat = m.tun.Civilian.ChatCooldown
		a.faceToward(b.Pos)
		b.faceToward(a.Pos)
		return
	}
}
