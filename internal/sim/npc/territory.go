package npc

import "brickton.sim/internal/sim/voxel"

// Territory is an immutable named circle fixed at world-build time.
type Territory struct {
	Name   string
	Center voxel.Vec3
	Radius float64
}

func (t Territory) Contains(p voxel.Vec3) bool {
	return distXZ(p, t.Center) <= t.Radius
}

type TerritoryLevel uint8

const (
	TerritoryClear TerritoryLevel = iota
	TerritoryWarned
	TerritoryHostile
)

func (l TerritoryLevel) String() string {
	switch l {
	case TerritoryWarned:
		return "WARNED"
	case TerritoryHostile:
		return "HOSTILE"
	}
	return "CLEAR"
}

// TerritoryLevel reports the current escalation toward the player.
func (m *Manager) TerritoryLevel() TerritoryLevel { return m.terrLevel }

func (m *Manager) territoryAt(p voxel.Vec3) (Territory, bool) {
	for _, t := range m.territories {
		if t.Contains(p) {
			return t, true
		}
	}
	return Territory{}, false
}

// tickTerritory runs the flat CLEAR → WARNED → HOSTILE progression keyed to
// the player's position. Leaving all territories resets to CLEAR.
func (m *Manager) tickTerritory(dt float64) {
	terr, inside := m.territoryAt(m.player.Pos())
	if !inside {
		m.terrLevel = TerritoryClear
		m.terrLinger = 0
		m.terrName = ""
		return
	}
	switch m.terrLevel {
	case TerritoryClear:
		m.terrLevel = TerritoryWarned
		m.terrLinger = 0
		m.terrName = terr.Name
		m.record(IncTerritoryWarned, nil, m.player.Pos(), terr.Name)
		m.notifyKey("territory.warned")
		if g := m.nearestGang(m.player.Pos(), m.tun.Gang.NotifyRadius); g != nil {
			g.Say("You lost, friend? Keep walking.", m.tun.Speech.LineSeconds)
			g.faceToward(m.player.Pos())
		}
	case TerritoryWarned:
		m.terrLinger += dt
		if m.terrLinger >= m.tun.Gang.TerritoryLinger {
			m.escalateTerritory(terr)
		}
	case TerritoryHostile:
		// Keep nearby members hostile while the player stays put.
		m.rallyGang(terr.Center)
	}
}

// escalateTerritory flips to HOSTILE: rally members in range and call in
// reinforcements.
func (m *Manager) escalateTerritory(terr Territory) {
	if m.terrLevel == TerritoryHostile {
		return
	}
	m.terrLevel = TerritoryHostile
	m.record(IncTerritoryHostile, nil, m.player.Pos(), terr.Name)
	m.notifyKey("territory.hostile")
	m.rallyGang(terr.Center)
	for i := 0; i < m.tun.Gang.ReinforceCount; i++ {
		m.spawnReinforcement(terr)
	}
}

// ForceTerritoryHostile escalates immediately, used when the player attacks
// a member inside territory before the linger threshold.
func (m *Manager) ForceTerritoryHostile() {
	if terr, inside := m.territoryAt(m.player.Pos()); inside {
		m.escalateTerritory(terr)
	}
}

func (m *Manager) rallyGang(center voxel.Vec3) {
	for _, a := range m.Agents() {
		if a.Archetype != Gang || !a.Alive {
			continue
		}
		if distXZ(a.Pos, center) > m.tun.Gang.NotifyRadius {
			continue
		}
		if a.State != StateGangAggro {
			a.State = StateGangAggro
			a.ClearRoute()
		}
		a.timers.aggro = m.tun.Gang.AggressiveFor
	}
}

func (m *Manager) nearestGang(p voxel.Vec3, maxDist float64) *Agent {
	var best *Agent
	bestD := maxDist
	for _, a := range m.Agents() {
		if a.Archetype != Gang || !a.Alive {
			continue
		}
		if d := distXZ(a.Pos, p); d <= bestD {
			best = a
			bestD = d
		}
	}
	return best
}
