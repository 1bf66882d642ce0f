package npc

import (
	"testing"

	"brickton.sim/internal/sim/tuning"
)

func TestNew_RequiresSurfaces(t *testing.T) {
	w := newTestWorld()
	p := &testPlayer{}
	inv := newTestInv()
	if _, err := New(Config{Player: p, Inventory: inv}); err == nil {
		t.Fatalf("missing world should be rejected")
	}
	if _, err := New(Config{World: w, Inventory: inv}); err == nil {
		t.Fatalf("missing player should be rejected")
	}
	if _, err := New(Config{World: w, Player: p}); err == nil {
		t.Fatalf("missing inventory should be rejected")
	}
}

func TestSpawn_PopulationCap(t *testing.T) {
	e := newEnv(t, nil)
	e.m.tun.MaxAgents = 3
	for i := 0; i < 3; i++ {
		if e.m.Spawn(Civilian, standingAt(float64(i), 0)) == nil {
			t.Fatalf("spawn %d rejected below the cap", i)
		}
	}
	if e.m.Spawn(Civilian, standingAt(9, 9)) != nil {
		t.Fatalf("spawn above the cap should be rejected")
	}
}

func TestSpawn_IDsDeterministicBySeed(t *testing.T) {
	spawnIDs := func() []string {
		e := newEnv(t, nil)
		var out []string
		for i := 0; i < 4; i++ {
			a := e.m.Spawn(Civilian, standingAt(float64(i*3), 0))
			if a == nil {
				t.Fatalf("spawn %d rejected", i)
			}
			out = append(out, a.ID)
		}
		return out
	}
	first, second := spawnIDs(), spawnIDs()
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("same seed produced different IDs at %d: %s vs %s", i, first[i], second[i])
		}
	}
}

func TestRemove_UnknownIDIsNoOp(t *testing.T) {
	e := newEnv(t, nil)
	e.m.Spawn(Civilian, standingAt(0, 0))
	e.m.Remove("not-an-agent")
	if len(e.m.Agents()) != 1 {
		t.Fatalf("removing an unknown id disturbed the population")
	}
}

func TestRemove_LeavesNoResidue(t *testing.T) {
	e := newEnv(t, nil)
	var ids []string
	for i := 0; i < 10; i++ {
		a := e.m.Spawn(Civilian, standingAt(float64(i*3), 0))
		ids = append(ids, a.ID)
	}
	for _, id := range ids {
		e.m.Remove(id)
	}
	if len(e.m.Agents()) != 0 {
		t.Fatalf("%d agents left after removing all", len(e.m.Agents()))
	}
	// The manager keeps working with an empty population.
	e.run(2)
}

func TestUpdate_ZeroDtIsNoOp(t *testing.T) {
	e := newEnv(t, nil)
	e.m.Update(0)
	e.m.Update(-1)
	if e.m.Tick() != 0 {
		t.Fatalf("non-positive dt advanced the clock")
	}
}

func TestTickPaused_FreezesDecisionsButNotRecovery(t *testing.T) {
	e := newEnv(t, nil)
	o := e.m.Spawn(Officer, standingAt(1.0, 0))
	e.player.pos = standingAt(0, 0)
	e.player.rep = RepNotorious

	pos := o.Pos
	e.m.TickPaused(0.5)
	if o.Pos != pos {
		t.Fatalf("paused agents must not move")
	}
	if o.State != StatePatrol {
		t.Fatalf("paused agents must not change state, got %v", o.State)
	}
	if e.m.ArrestPending() {
		t.Fatalf("no arrest can be raised while paused")
	}
}

func TestTickPaused_RunsArrestCooldown(t *testing.T) {
	e := newEnv(t, nil)
	e.m.arrestPending = true
	e.m.ClearArrestPending()

	steps := int(e.m.tun.Police.ArrestCooldown/0.5) + 2
	for i := 0; i < steps; i++ {
		e.m.TickPaused(0.5)
	}
	if e.m.arrestCooldown > 0 {
		t.Fatalf("pause must not preserve the arrest cooldown indefinitely")
	}
}

func TestTickPaused_SweepsDownedAgents(t *testing.T) {
	e := newEnv(t, nil)
	g := e.m.Spawn(Gang, standingAt(5, 0))
	e.m.Punch(g.ID, standingAt(1, 0), g.HP)
	if g.Alive {
		t.Fatalf("setup failed, agent survived")
	}
	e.m.TickPaused(e.m.tun.Speech.KnockedOutRecov + e.m.tun.Speech.LineSeconds + 1)
	if e.m.Get(g.ID) != nil {
		t.Fatalf("downed agent should be swept even while paused")
	}
}

func TestNightWindow(t *testing.T) {
	e := newEnv(t, nil)
	day := e.m.tun.DaySeconds

	e.m.clock = day * 0.1
	if !e.m.Night() {
		t.Fatalf("first quarter of the cycle is night")
	}
	e.m.clock = day * 0.5
	if e.m.Night() {
		t.Fatalf("midday is not night")
	}
	e.m.clock = day * 0.9
	if !e.m.Night() {
		t.Fatalf("last quarter of the cycle is night")
	}
}

func TestDefaultTuningAppliedWhenZero(t *testing.T) {
	w := newTestWorld()
	m, err := New(Config{World: w, Player: &testPlayer{}, Inventory: newTestInv()})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	if m.tun.MaxAgents != tuning.Default().MaxAgents {
		t.Fatalf("zero-value tuning should fall back to defaults")
	}
}

func TestPunch_KnockbackMovesAgent(t *testing.T) {
	e := newEnv(t, nil)
	c := e.m.Spawn(Civilian, standingAt(5, 5))
	e.player.pos = standingAt(300, 300)

	e.m.Punch(c.ID, standingAt(1, 0), 1)
	if c.KnockbackLeft <= 0 {
		t.Fatalf("punch should start the knockback window")
	}
	if c.State != StateFlee {
		t.Fatalf("surviving civilian should flee after the hit, got %v", c.State)
	}
	x := c.Pos.X
	e.run(e.m.tun.Move.KnockbackTime)
	if c.Pos.X <= x {
		t.Fatalf("knockback should carry the agent along the hit direction")
	}
}

func TestPunch_OfficerEscalatesAndAlertsNearby(t *testing.T) {
	e := newEnv(t, nil)
	o := e.m.Spawn(Officer, standingAt(5, 0))
	buddy := e.m.Spawn(Officer, standingAt(10, 0))
	e.player.pos = standingAt(4, 0)

	e.m.Punch(o.ID, standingAt(1, 0), 1)
	if o.State != StateAggressive {
		t.Fatalf("struck officer should pursue, got %v", o.State)
	}
	if !buddy.alerted {
		t.Fatalf("officers in radio range should be alerted")
	}
}

func TestPunch_UnknownIDIgnored(t *testing.T) {
	e := newEnv(t, nil)
	e.m.Punch("ghost", standingAt(1, 0), 5)
	// Nothing to assert beyond not panicking; the population is empty.
	if len(e.m.Agents()) != 0 {
		t.Fatalf("phantom punch created an agent somehow")
	}
}
