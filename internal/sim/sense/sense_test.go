package sense

import (
	"testing"

	"brickton.sim/internal/sim/tuning"
	"brickton.sim/internal/sim/voxel"
)

type openGrid struct {
	solid map[voxel.Vec3i]bool
	glass map[voxel.Vec3i]bool
}

func newOpenGrid() *openGrid {
	return &openGrid{solid: map[voxel.Vec3i]bool{}, glass: map[voxel.Vec3i]bool{}}
}

func (g *openGrid) Solid(c voxel.Vec3i) bool       { return g.solid[c] || c.Y < 0 }
func (g *openGrid) Transparent(c voxel.Vec3i) bool { return g.glass[c] }

func testModel() Model {
	t := tuning.Default()
	return NewModel(t.Vision, t.Hearing)
}

func facing(x, z float64) Observer {
	// Yaw 0 faces +X.
	return Observer{Pos: voxel.Vec3{X: x, Y: 0, Z: z}}
}

func TestSeen_InConeWithinRange(t *testing.T) {
	m := testModel()
	g := newOpenGrid()
	if !m.Seen(g, facing(0, 0), Target{Pos: voxel.Vec3{X: 10}}, Conditions{}) {
		t.Fatalf("target dead ahead at 10m should be seen")
	}
}

func TestSeen_BehindObserver_Missed(t *testing.T) {
	m := testModel()
	g := newOpenGrid()
	if m.Seen(g, facing(0, 0), Target{Pos: voxel.Vec3{X: -10}}, Conditions{}) {
		t.Fatalf("target directly behind must not be seen")
	}
}

func TestSeen_RangeShrinksAtNightAndWithDisguise(t *testing.T) {
	m := testModel()
	g := newOpenGrid()
	tun := tuning.Default()

	// Just inside day range, outside night range.
	d := tun.Vision.BaseRange * (tun.Vision.NightMult + 1) / 2
	tgt := Target{Pos: voxel.Vec3{X: d}}
	if !m.Seen(g, facing(0, 0), tgt, Conditions{}) {
		t.Fatalf("target inside day range should be seen")
	}
	if m.Seen(g, facing(0, 0), tgt, Conditions{Night: true}) {
		t.Fatalf("same target should be out of range at night")
	}

	// Disguise shrinks range the same way.
	d2 := tun.Vision.BaseRange * (tun.Vision.DisguiseMult + 1) / 2
	if m.Seen(g, facing(0, 0), Target{Pos: voxel.Vec3{X: d2}, Disguised: true}, Conditions{}) {
		t.Fatalf("disguised target at %0.1fm should be out of range", d2)
	}
}

func TestSeen_WallOccludes_GlassDoesNot(t *testing.T) {
	m := testModel()
	g := newOpenGrid()
	obs := facing(0.5, 0.5)
	tgt := Target{Pos: voxel.Vec3{X: 10.5, Z: 0.5}}

	for y := 0; y < 4; y++ {
		g.solid[voxel.Vec3i{X: 5, Y: y, Z: 0}] = true
	}
	if m.Seen(g, obs, tgt, Conditions{}) {
		t.Fatalf("solid wall should occlude the target")
	}

	for y := 0; y < 4; y++ {
		g.glass[voxel.Vec3i{X: 5, Y: y, Z: 0}] = true
	}
	if !m.Seen(g, obs, tgt, Conditions{}) {
		t.Fatalf("glass wall should not occlude the target")
	}
}

func TestSeen_HiVisCrouchNarrowsCone(t *testing.T) {
	m := testModel()
	g := newOpenGrid()
	// 45 degrees off axis: inside the normal 70-degree cone, outside the
	// halved one.
	tgt := Target{Pos: voxel.Vec3{X: 7, Z: 7}}
	if !m.Seen(g, facing(0, 0), tgt, Conditions{}) {
		t.Fatalf("45-degree offset should be inside the normal cone")
	}
	tgt.HiVisCrouch = true
	if m.Seen(g, facing(0, 0), tgt, Conditions{}) {
		t.Fatalf("45-degree offset should be outside the narrowed cone")
	}
}

func TestSeen_ZeroDistance(t *testing.T) {
	m := testModel()
	g := newOpenGrid()
	if !m.Seen(g, facing(3, 3), Target{Pos: voxel.Vec3{X: 3, Z: 3}}, Conditions{}) {
		t.Fatalf("coincident positions are trivially seen")
	}
}

func TestHeard_GrowsWithNoise(t *testing.T) {
	m := testModel()
	tun := tuning.Default()

	quiet := Target{Pos: voxel.Vec3{X: tun.Hearing.BaseRange + 2}}
	if m.Heard(facing(0, 0), quiet, Conditions{}) {
		t.Fatalf("silent target beyond base range should not be heard")
	}
	quiet.Noise = 1
	if !m.Heard(facing(0, 0), quiet, Conditions{}) {
		t.Fatalf("loud target at the same distance should be heard")
	}
}

func TestHearingRange_Monotonic(t *testing.T) {
	m := testModel()
	prev := -1.0
	for _, n := range []float64{0, 0.25, 0.5, 0.75, 1} {
		r := m.HearingRange(n, false)
		if r <= prev {
			t.Fatalf("hearing range not monotonic in noise at %0.2f", n)
		}
		prev = r
	}
	if m.HearingRange(0.5, true) <= m.HearingRange(0.5, false) {
		t.Fatalf("night should extend hearing range")
	}
}

func TestHeard_IgnoresFacing(t *testing.T) {
	m := testModel()
	tgt := Target{Pos: voxel.Vec3{X: -3}, Noise: 0.5}
	if !m.Heard(facing(0, 0), tgt, Conditions{}) {
		t.Fatalf("hearing must be omnidirectional")
	}
}
