package npc

import (
	"math"

	"github.com/google/uuid"

	"brickton.sim/internal/sim/voxel"
)

var civilianNames = []string{
	"Margaret", "Trevor", "Dawn", "Clive", "Sandra", "Nigel",
	"Pauline", "Keith", "Janet", "Barry", "Doreen", "Malcolm",
}

// Spawn creates an agent at pos. Returns nil when the population cap is
// reached; a full town silently rejects newcomers.
func (m *Manager) Spawn(arch Archetype, pos voxel.Vec3) *Agent {
	if len(m.agents) >= m.tun.MaxAgents {
		return nil
	}
	// IDs come from the seeded rng so runs with the same seed replay
	// identically; Agents() iterates in ID order.
	id, _ := uuid.NewRandomFromReader(m.rng)
	a := &Agent{
		ID:        id.String(),
		Archetype: arch,
		Pos:       pos,
		Half:      voxel.Vec3{X: 0.3, Y: 0.9, Z: 0.3},
		HP:        10,
		Alive:     true,
		home:      pos,
		structIdx: -1,
		band:      m.routineBand(),
	}
	switch arch {
	case Civilian:
		a.Name = civilianNames[m.rng.Intn(len(civilianNames))]
		a.State = StateWander
		a.timers.idle = m.randRange(m.tun.Civilian.IdlePauseMin, m.tun.Civilian.IdlePauseMax)
		// Stagger the first structure check so a crowd of civilians never
		// scans on the same frame.
		a.timers.structCheck = m.rng.Float64() * m.tun.Civilian.ScanStaggerMax
	case Officer:
		a.State = StatePatrol
		a.HP = 14
	case Gang:
		a.Name = civilianNames[m.rng.Intn(len(civilianNames))]
		a.State = StateWander
		a.timers.idle = m.randRange(m.tun.Civilian.IdlePauseMin, m.tun.Civilian.IdlePauseMax)
	case Demolition:
		a.State = StateCrewIdle
		a.HP = 12
	}
	m.agents[a.ID] = a
	return a
}

func (m *Manager) randRange(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + m.rng.Float64()*(hi-lo)
}

// randPointNear picks a point within [minDist,radius] of center on the
// horizontal plane.
func (m *Manager) randPointNear(center voxel.Vec3, minDist, radius float64) voxel.Vec3 {
	ang := m.rng.Float64() * 2 * math.Pi
	r := minDist + m.rng.Float64()*(radius-minDist)
	return voxel.Vec3{
		X: center.X + math.Cos(ang)*r,
		Y: center.Y,
		Z: center.Z + math.Sin(ang)*r,
	}
}

// spawnCrew dispatches the structure's required builder count.
func (m *Manager) spawnCrew(structIdx int) {
	s := m.structures[structIdx]
	if s.crewSpawned {
		return
	}
	s.crewSpawned = true
	for i := 0; i < s.Builders; i++ {
		at := m.randPointNear(s.Centroid, 4, 8)
		c := m.Spawn(Demolition, at)
		if c == nil {
			return
		}
		c.structIdx = structIdx
	}
}

// spawnBackup adds officers near a pursuit already in progress.
func (m *Manager) spawnBackup(near voxel.Vec3) {
	for i := 0; i < m.tun.Police.BackupCount; i++ {
		b := m.Spawn(Officer, m.randPointNear(near, 6, 12))
		if b == nil {
			return
		}
		b.alerted = true
	}
}

func (m *Manager) spawnReinforcement(terr Territory) {
	g := m.Spawn(Gang, m.randPointNear(terr.Center, 2, terr.Radius))
	if g == nil {
		return
	}
	g.State = StateGangAggro
	g.timers.aggro = m.tun.Gang.AggressiveFor
}
