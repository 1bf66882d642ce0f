package npc

import "brickton.sim/internal/sim/voxel"

// Incident is a tick-stamped record of something the town noticed. The core
// never logs; callers drain incidents into whatever sink they run (journal,
// index, stdout).
type Incident struct {
	Tick   uint64     `json:"tick"`
	Kind   string     `json:"kind"`
	Agent  string     `json:"agent,omitempty"`
	Pos    voxel.Vec3 `json:"pos"`
	Detail string     `json:"detail,omitempty"`
}

const (
	IncStructureFound   = "STRUCTURE_FOUND"
	IncPlanningNotice   = "PLANNING_NOTICE"
	IncStructureTaped   = "STRUCTURE_TAPED"
	IncWarning          = "POLICE_WARNING"
	IncPursuit          = "POLICE_PURSUIT"
	IncArrest           = "ARREST_PENDING"
	IncTheft            = "THEFT"
	IncDemolition       = "DEMOLITION"
	IncDemolitionDone   = "DEMOLITION_DONE"
	IncKnockedOut       = "KNOCKED_OUT"
	IncTerritoryWarned  = "TERRITORY_WARNED"
	IncTerritoryHostile = "TERRITORY_HOSTILE"
)

func (m *Manager) record(kind string, a *Agent, pos voxel.Vec3, detail string) {
	inc := Incident{Tick: m.tick, Kind: kind, Pos: pos, Detail: detail}
	if a != nil {
		inc.Agent = a.ID
	}
	m.incidents = append(m.incidents, inc)
}

// DrainIncidents returns and clears the accumulated incidents.
func (m *Manager) DrainIncidents() []Incident {
	out := m.incidents
	m.incidents = nil
	return out
}
