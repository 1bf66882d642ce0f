package npc

import "brickton.sim/internal/sim/voxel"

type Archetype uint8

const (
	Civilian Archetype = iota
	Officer
	Gang
	Demolition
)

func (a Archetype) String() string {
	switch a {
	case Civilian:
		return "civilian"
	case Officer:
		return "officer"
	case Gang:
		return "gang"
	case Demolition:
		return "demolition"
	}
	return "unknown"
}

// State is the behavioral state. Each archetype family uses its own subset;
// dispatch is a single switch per archetype.
type State uint8

const (
	// Civilian family (gang members share the wander/flee base).
	StateWander State = iota
	StateFlee
	StateStare
	StatePhotograph
	StateComplain
	StateSteal
	StateGangAggro

	// Police.
	StatePatrol
	StateSuspicious
	StateWarning
	StateAggressive

	// Demolition crew.
	StateCrewIdle
	StateDemolish
	StateKnockedBack
)

func (s State) String() string {
	switch s {
	case StateWander:
		return "WANDERING"
	case StateFlee:
		return "FLEEING"
	case StateStare:
		return "STARING"
	case StatePhotograph:
		return "PHOTOGRAPHING"
	case StateComplain:
		return "COMPLAINING"
	case StateSteal:
		return "STEALING"
	case StateGangAggro:
		return "AGGRESSIVE"
	case StatePatrol:
		return "PATROLLING"
	case StateSuspicious:
		return "SUSPICIOUS"
	case StateWarning:
		return "WARNING"
	case StateAggressive:
		return "ARRESTING"
	case StateCrewIdle:
		return "IDLE"
	case StateDemolish:
		return "DEMOLISHING"
	case StateKnockedBack:
		return "KNOCKED_BACK"
	}
	return "UNKNOWN"
}

// routineBand partitions the day for civilian daily routines. Bands are
// latched: behavior re-evaluates only on a band transition so the clock
// never thrashes an active reaction state.
type routineBand uint8

const (
	bandMorning routineBand = iota
	bandDay
	bandEvening
	bandNight
)

// timers is the per-agent accumulator block. Everything that used to live in
// orchestrator side maps keyed by agent identity is a field here, so removal
// of the agent removes its timers with it.
type timers struct {
	repath      float64
	idle        float64
	structCheck float64
	steal       float64
	chat        float64

	warn       float64
	suspicious float64
	lostSight  float64

	demo      float64
	knockback float64
	recover   float64

	reactDwell float64
	reactGrace float64
	aggro      float64
}

type Agent struct {
	ID        string
	Name      string
	Archetype Archetype

	Pos  voxel.Vec3
	Vel  voxel.Vec3
	Yaw  float64
	Half voxel.Vec3

	HP    int
	Alive bool

	State State

	// Path takes precedence over Target when both are set.
	Path    []voxel.Vec3
	PathIdx int
	Target  *voxel.Vec3

	Speech     string
	SpeechLeft float64

	Knockback     voxel.Vec3
	KnockbackLeft float64

	// Satchel holds items stolen from the player, returned on defeat.
	Satchel []Item

	timers timers

	home      voxel.Vec3
	lastKnown voxel.Vec3
	// structIdx tracks a structure in Manager.structures, -1 for none.
	structIdx int
	// alerted marks an officer explicitly told about a crime event.
	alerted bool
	band    routineBand

	replyLine  string
	replyDelay float64
}

// Moving reports whether something is currently driving the agent.
func (a *Agent) Moving() bool {
	return len(a.Path) > 0 || a.Target != nil
}

// ClearRoute drops both movement drivers.
func (a *Agent) ClearRoute() {
	a.Path = nil
	a.PathIdx = 0
	a.Target = nil
}

// Say replaces the current speech line.
func (a *Agent) Say(line string, seconds float64) {
	a.Speech = line
	a.SpeechLeft = seconds
}
