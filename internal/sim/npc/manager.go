// Package npc is the behavioral core of the town simulation: it owns the
// agent collection and, once per frame, advances timers, perception,
// per-archetype state machines, pathfinding requests, and movement.
package npc

import (
	"errors"
	"math"
	"math/rand"
	"sort"

	"brickton.sim/internal/sim/path"
	"brickton.sim/internal/sim/sense"
	"brickton.sim/internal/sim/tuning"
	"brickton.sim/internal/sim/voxel"
)

type Config struct {
	Tuning tuning.Tuning

	World     World
	Player    Player
	Inventory Inventory
	// Notifier may be nil; notifications are fire-and-forget.
	Notifier Notifier

	Territories []Territory

	Seed int64
}

// Manager is the single per-frame entry point. All state is accessed from
// one call site per frame; there is no locking.
type Manager struct {
	tun    tuning.Tuning
	world  World
	player Player
	inv    Inventory
	notify Notifier

	rng      *rand.Rand
	model    sense.Model
	pathOpts path.Options

	clock float64
	tick  uint64

	agents map[string]*Agent

	structures  []*Structure
	scanTimer   float64
	territories []Territory
	terrLevel   TerritoryLevel
	terrLinger  float64
	terrName    string

	arrestPending  bool
	arrestCooldown float64

	incidents []Incident
}

func New(cfg Config) (*Manager, error) {
	if cfg.World == nil {
		return nil, errors.New("npc: world surface is required")
	}
	if cfg.Player == nil {
		return nil, errors.New("npc: player surface is required")
	}
	if cfg.Inventory == nil {
		return nil, errors.New("npc: inventory surface is required")
	}
	t := cfg.Tuning
	if t.MaxAgents == 0 {
		t = tuning.Default()
	}
	return &Manager{
		tun:    t,
		world:  cfg.World,
		player: cfg.Player,
		inv:    cfg.Inventory,
		notify: cfg.Notifier,
		rng:    rand.New(rand.NewSource(cfg.Seed)),
		model:  sense.NewModel(t.Vision, t.Hearing),
		pathOpts: path.Options{
			NodeCap:       t.Path.NodeCap,
			FastPathMaxXZ: t.Path.FastPathMaxXZ,
			FastPathMaxDY: t.Path.FastPathMaxDY,
		},
		agents:      map[string]*Agent{},
		territories: cfg.Territories,
	}, nil
}

// Tick returns the frame counter.
func (m *Manager) Tick() uint64 { return m.tick }

// TimeOfDay is the day fraction in [0,1).
func (m *Manager) TimeOfDay() float64 {
	day := m.tun.DaySeconds
	if day <= 0 {
		return 0.5
	}
	return math.Mod(m.clock, day) / day
}

// Night covers the first and last quarter of the day cycle.
func (m *Manager) Night() bool {
	t := m.TimeOfDay()
	return t < 0.25 || t > 0.75
}

func (m *Manager) routineBand() routineBand {
	t := m.TimeOfDay()
	switch {
	case t < 0.25:
		return bandNight
	case t < 0.45:
		return bandMorning
	case t < 0.75:
		return bandDay
	default:
		return bandEvening
	}
}

// Get returns the agent with the given id, or nil.
func (m *Manager) Get(id string) *Agent { return m.agents[id] }

// Agents returns all agents in deterministic order.
func (m *Manager) Agents() []*Agent {
	ids := make([]string, 0, len(m.agents))
	for id := range m.agents {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]*Agent, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.agents[id])
	}
	return out
}

// Remove deletes the agent. Removing an unknown id is a no-op.
func (m *Manager) Remove(id string) {
	delete(m.agents, id)
}

// Update advances the whole simulation by dt seconds.
func (m *Manager) Update(dt float64) {
	if dt <= 0 {
		return
	}
	m.clock += dt
	m.tick++
	m.tickCooldowns(dt)

	m.scanTimer -= dt
	if m.scanTimer <= 0 {
		m.scanTimer = m.tun.Structures.ScanEvery
		m.scanStructures()
	}
	m.tickStructureNotices(dt)
	m.tickTerritory(dt)

	var expired []string
	for _, a := range m.Agents() {
		m.tickSpeech(a, dt)
		if !a.Alive {
			// Timers only; removal happens after the pass so the
			// collection is never mutated mid-iteration.
			a.timers.recover -= dt
			if a.SpeechLeft <= 0 && a.timers.recover <= 0 {
				expired = append(expired, a.ID)
			}
			continue
		}
		if a.KnockbackLeft > 0 {
			m.advanceKnockback(a, dt)
			continue
		}
		switch a.Archetype {
		case Civilian:
			m.tickCivilian(a, dt)
		case Officer:
			m.tickOfficer(a, dt)
		case Gang:
			m.tickGang(a, dt)
		case Demolition:
			m.tickCrew(a, dt)
		}
		m.advance(a, dt)
	}
	for _, id := range expired {
		m.Remove(id)
	}
}

// TickPaused is the reduced-tick path used while the game is paused: speech,
// knockback release, arrest cooldown, and knocked-out recovery keep moving,
// while all decision-making and movement stay frozen. Pause must not be a
// way to stall an arrest.
func (m *Manager) TickPaused(dt float64) {
	if dt <= 0 {
		return
	}
	m.tickCooldowns(dt)
	var expired []string
	for _, a := range m.Agents() {
		m.tickSpeech(a, dt)
		if a.KnockbackLeft > 0 {
			a.KnockbackLeft -= dt
		}
		if !a.Alive {
			a.timers.recover -= dt
			if a.SpeechLeft <= 0 && a.timers.recover <= 0 {
				expired = append(expired, a.ID)
			}
		}
	}
	for _, id := range expired {
		m.Remove(id)
	}
}

func (m *Manager) tickCooldowns(dt float64) {
	if m.arrestCooldown > 0 {
		m.arrestCooldown -= dt
		if m.arrestCooldown < 0 {
			m.arrestCooldown = 0
		}
	}
}

func (m *Manager) tickSpeech(a *Agent, dt float64) {
	if a.SpeechLeft > 0 {
		a.SpeechLeft -= dt
		if a.SpeechLeft <= 0 {
			a.Speech = ""
			a.SpeechLeft = 0
		}
	}
	if a.replyDelay > 0 {
		a.replyDelay -= dt
		if a.replyDelay <= 0 {
			a.Say(a.replyLine, m.tun.Speech.LineSeconds)
			a.replyLine = ""
		}
	}
}

// ArrestPending reports whether an officer has closed to arrest range. The
// caller applies the game-level consequences and then clears the flag.
func (m *Manager) ArrestPending() bool { return m.arrestPending }

// ClearArrestPending consumes the pending arrest and opens the cooldown
// window during which no officer can re-trigger one.
func (m *Manager) ClearArrestPending() {
	m.arrestPending = false
	m.arrestCooldown = m.tun.Police.ArrestCooldown
}

func (m *Manager) playerTarget() sense.Target {
	return sense.Target{
		Pos:         m.player.Pos(),
		Noise:       m.player.Noise(),
		Disguised:   m.player.Disguised(),
		HiVisCrouch: m.player.HiVis() && m.player.Crouching(),
	}
}

func (m *Manager) seesPlayer(a *Agent) bool {
	return m.model.Seen(m.world,
		sense.Observer{Pos: a.Pos, Yaw: a.Yaw},
		m.playerTarget(),
		sense.Conditions{Night: m.Night()})
}

func (m *Manager) hearsPlayer(a *Agent) bool {
	return m.model.Heard(
		sense.Observer{Pos: a.Pos, Yaw: a.Yaw},
		m.playerTarget(),
		sense.Conditions{Night: m.Night()})
}

func (m *Manager) notifyKey(key string) {
	if m.notify != nil {
		m.notify.Notify(key)
	}
}

func distXZ(a, b voxel.Vec3) float64 {
	return a.Sub(b).LenXZ()
}
