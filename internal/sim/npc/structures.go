package npc

import "brickton.sim/internal/sim/voxel"

// Structure is a connected cluster of notable blocks found by the world
// scan. Structures are never deleted; an emptied structure is skipped.
type Structure struct {
	Blocks   map[voxel.Vec3i]BlockKind
	Centroid voxel.Vec3
	// Builders is the demolition crew size this structure warrants.
	Builders  int
	HasNotice bool
	Taped     bool

	age float64
	// noticeCell remembers where the planning notice went up; the centroid
	// drifts as blocks come down.
	noticeCell voxel.Vec3i
	// crewSpawned keeps the notice from spawning a second crew.
	crewSpawned bool
}

func (s *Structure) Empty() bool { return len(s.Blocks) == 0 }

func (s *Structure) Contains(c voxel.Vec3i) bool {
	_, ok := s.Blocks[c]
	return ok
}

// RemoveBlock shrinks the structure. Removing an absent cell is a no-op.
func (s *Structure) RemoveBlock(c voxel.Vec3i) {
	if !s.Contains(c) {
		return
	}
	delete(s.Blocks, c)
	s.recompute()
}

func (s *Structure) recompute() {
	if len(s.Blocks) == 0 {
		return
	}
	var sum voxel.Vec3
	for c := range s.Blocks {
		sum = sum.Add(c.Center())
	}
	s.Centroid = sum.Scale(1 / float64(len(s.Blocks)))
}

// Structures exposes the current scan results (tests, callers).
func (m *Manager) Structures() []*Structure { return m.structures }

// ForceScan runs the world scan immediately. Test hook.
func (m *Manager) ForceScan() { m.scanStructures() }

// OnBlockRemoved tells the core a block left the world (mined, demolished
// externally). Structures shrink to match; idempotent.
func (m *Manager) OnBlockRemoved(c voxel.Vec3i) {
	for _, s := range m.structures {
		s.RemoveBlock(c)
	}
}

var scanNeighbors = [6]voxel.Vec3i{
	{X: 1}, {X: -1}, {Y: 1}, {Y: -1}, {Z: 1}, {Z: -1},
}

// scanStructures walks a cube around the player, flood-fills connected
// notable blocks, and records clusters above the minimum size. Cells already
// claimed by a live structure stay with it.
func (m *Manager) scanStructures() {
	r := m.tun.Structures.ScanRadius
	origin := m.player.Pos().Cell()

	claimed := map[voxel.Vec3i]bool{}
	for _, s := range m.structures {
		for c := range s.Blocks {
			claimed[c] = true
		}
	}

	visited := map[voxel.Vec3i]bool{}
	for x := origin.X - r; x <= origin.X+r; x++ {
		for y := origin.Y - r; y <= origin.Y+r; y++ {
			for z := origin.Z - r; z <= origin.Z+r; z++ {
				c := voxel.Vec3i{X: x, Y: y, Z: z}
				if visited[c] || claimed[c] {
					continue
				}
				if !m.world.KindAt(c).Notable() {
					continue
				}
				cluster := m.floodFill(c, visited, claimed)
				if len(cluster) < m.tun.Structures.MinCluster {
					continue
				}
				s := &Structure{Blocks: cluster}
				s.Builders = len(cluster) / m.tun.Structures.BlocksPerBuilder
				if s.Builders < 1 {
					s.Builders = 1
				}
				s.recompute()
				m.structures = append(m.structures, s)
				m.record(IncStructureFound, nil, s.Centroid, "")
				m.notifyKey("structure.noticed")
			}
		}
	}
}

func (m *Manager) floodFill(seed voxel.Vec3i, visited, claimed map[voxel.Vec3i]bool) map[voxel.Vec3i]BlockKind {
	cluster := map[voxel.Vec3i]BlockKind{}
	stack := []voxel.Vec3i{seed}
	visited[seed] = true
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		k := m.world.KindAt(c)
		if !k.Notable() {
			continue
		}
		cluster[c] = k
		for _, d := range scanNeighbors {
			n := voxel.Vec3i{X: c.X + d.X, Y: c.Y + d.Y, Z: c.Z + d.Z}
			if visited[n] || claimed[n] {
				continue
			}
			if m.world.KindAt(n).Notable() {
				visited[n] = true
				stack = append(stack, n)
			}
		}
	}
	return cluster
}

// tickStructureNotices ages detected structures; past the council's grace
// period a planning notice goes up and a demolition crew is dispatched.
func (m *Manager) tickStructureNotices(dt float64) {
	for i, s := range m.structures {
		if s.Empty() {
			continue
		}
		s.age += dt
		if s.HasNotice || s.age < m.tun.Structures.NoticeAfter {
			continue
		}
		m.applyNotice(i)
	}
}

func (m *Manager) applyNotice(idx int) {
	s := m.structures[idx]
	if s.Empty() || s.HasNotice {
		return
	}
	s.HasNotice = true
	s.noticeCell = s.Centroid.Cell()
	m.world.AddPlanningNotice(s.noticeCell)
	m.record(IncPlanningNotice, nil, s.Centroid, "")
	m.notifyKey("structure.notice")
	m.spawnCrew(idx)
}

// ForceNotice applies the planning notice to structure idx now. Test hook.
func (m *Manager) ForceNotice(idx int) {
	if idx >= 0 && idx < len(m.structures) {
		m.applyNotice(idx)
	}
}

// tapeStructure cordons the structure off: tape above every exposed block.
// Safe to call twice; tape mutations are idempotent on the world side.
func (m *Manager) tapeStructure(s *Structure) {
	if s.Empty() {
		return
	}
	for c := range s.Blocks {
		if top := c.Above(); !m.world.Solid(top) {
			m.world.AddPoliceTape(top)
		}
	}
	s.Taped = true
	m.record(IncStructureTaped, nil, s.Centroid, "")
	m.notifyKey("structure.taped")
}

// ForceTape tapes structure idx immediately. Test hook.
func (m *Manager) ForceTape(idx int) {
	if idx >= 0 && idx < len(m.structures) {
		m.tapeStructure(m.structures[idx])
	}
}

// nearestStructure returns the index of the closest live structure within
// maxDist of p in the horizontal plane, or -1.
func (m *Manager) nearestStructure(p voxel.Vec3, maxDist float64, needNotice bool) int {
	best := -1
	bestD := maxDist
	for i, s := range m.structures {
		if s.Empty() {
			continue
		}
		if needNotice && !s.HasNotice {
			continue
		}
		if d := distXZ(p, s.Centroid); d <= bestD {
			best = i
			bestD = d
		}
	}
	return best
}
