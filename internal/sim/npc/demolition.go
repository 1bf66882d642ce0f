package npc

import (
	"sort"

	"brickton.sim/internal/sim/voxel"
)

func (m *Manager) tickCrew(a *Agent, dt float64) {
	if a.State == StateKnockedBack {
		a.timers.knockback -= dt
		if a.timers.knockback <= 0 {
			a.State = StateCrewIdle
		}
		return
	}

	s := m.crewStructure(a)
	if s == nil {
		if idx := m.nearestStructure(a.Pos, 1e9, true); idx >= 0 {
			a.structIdx = idx
			return
		}
		a.State = StateCrewIdle
		m.tickWander(a, dt, 6)
		return
	}

	// Horizontal-plane distance only: standing on top of the thing must not
	// stop the job.
	if distXZ(a.Pos, s.Centroid) > m.tun.Demolition.TriggerRangeXZ {
		a.State = StateCrewIdle
		m.setDestination(a, s.Centroid)
		return
	}
	if a.State != StateDemolish {
		a.State = StateDemolish
		a.timers.demo = m.tun.Demolition.BreakEvery
		a.ClearRoute()
	}
	a.faceToward(s.Centroid)
	a.timers.demo -= dt
	if a.timers.demo > 0 {
		return
	}
	a.timers.demo = m.tun.Demolition.BreakEvery
	m.demolishOne(a, s)
}

func (m *Manager) crewStructure(a *Agent) *Structure {
	if a.structIdx < 0 || a.structIdx >= len(m.structures) {
		return nil
	}
	s := m.structures[a.structIdx]
	if s.Empty() {
		a.structIdx = -1
		return nil
	}
	return s
}

// demolishOne removes one random block, clears any external hit counter for
// the cell, and strips tape and notices that hung on it. When the structure
// empties, every assigned crew member is marked dead and swept up on the
// next pass; removing them here would corrupt the update iteration.
func (m *Manager) demolishOne(a *Agent, s *Structure) {
	cells := make([]voxel.Vec3i, 0, len(s.Blocks))
	for c := range s.Blocks {
		cells = append(cells, c)
	}
	// Map order is random but not seeded; sort so the rng stays the only
	// source of nondeterminism.
	sort.Slice(cells, func(i, j int) bool {
		p, q := cells[i], cells[j]
		if p.X != q.X {
			return p.X < q.X
		}
		if p.Y != q.Y {
			return p.Y < q.Y
		}
		return p.Z < q.Z
	})
	c := cells[m.rng.Intn(len(cells))]

	m.world.RemoveBlock(c)
	m.world.ClearHitCount(c)
	m.world.RemovePoliceTape(c.Above())
	m.world.RemovePlanningNotice(c)
	s.RemoveBlock(c)
	m.record(IncDemolition, a, s.Centroid, "")

	if s.Empty() {
		m.world.RemovePlanningNotice(s.noticeCell)
		m.record(IncDemolitionDone, a, a.Pos, "")
		idx := a.structIdx
		for _, crew := range m.Agents() {
			if crew.Archetype == Demolition && crew.structIdx == idx && crew.Alive {
				crew.Alive = false
				crew.SpeechLeft = 0
				crew.timers.recover = 0
			}
		}
	}
}
