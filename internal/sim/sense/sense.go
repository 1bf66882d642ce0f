// Package sense implements NPC perception: a directional, occludable vision
// cone and an omnidirectional hearing radius. Vision rewards staying out of
// view; hearing is the cheap fallback that keeps a noisy target detectable
// behind cover.
package sense

import (
	"math"

	"brickton.sim/internal/sim/tuning"
	"brickton.sim/internal/sim/voxel"
)

type Model struct {
	vision  tuning.Vision
	hearing tuning.Hearing
}

func NewModel(v tuning.Vision, h tuning.Hearing) Model {
	return Model{vision: v, hearing: h}
}

// Observer is the perceiving agent. Yaw is the facing angle in radians on
// the XZ plane (0 = +X).
type Observer struct {
	Pos voxel.Vec3
	Yaw float64
}

// Target carries the perceived party's stealth-relevant state.
type Target struct {
	Pos voxel.Vec3
	// Noise is the target's current noise output, 0 for silent.
	Noise float64
	// Disguised: face-concealing item worn, reduces vision range.
	Disguised bool
	// HiVisCrouch: counter-item worn while crouching, narrows the cone
	// that still catches the target.
	HiVisCrouch bool
}

type Conditions struct {
	Night bool
}

// Seen reports whether the observer has line of sight on the target within
// its vision cone. A zero-distance pair is trivially seen.
func (m Model) Seen(g voxel.Grid, obs Observer, t Target, c Conditions) bool {
	d := t.Pos.Sub(obs.Pos)
	dist := d.Len()
	if dist < 1e-6 {
		return true
	}

	r := m.vision.BaseRange
	if c.Night {
		r *= m.vision.NightMult
	}
	if t.Disguised {
		r *= m.vision.DisguiseMult
	}
	if dist > r {
		return false
	}

	bearing := math.Atan2(d.Z, d.X)
	half := m.vision.HalfAngleDeg * math.Pi / 180
	if t.HiVisCrouch {
		half *= m.vision.HiVisCrouchAngle
	}
	if math.Abs(angleDiff(bearing, obs.Yaw)) > half {
		return false
	}

	eye := voxel.Vec3{Y: m.vision.EyeHeight}
	return !voxel.RayBlocked(g, obs.Pos.Add(eye), t.Pos.Add(eye), m.vision.RayStep)
}

// Heard reports whether the target is within earshot. Hearing has no angular
// or occlusion component.
func (m Model) Heard(obs Observer, t Target, c Conditions) bool {
	return obs.Pos.Sub(t.Pos).Len() <= m.HearingRange(t.Noise, c.Night)
}

// HearingRange grows linearly with target noise and widens at night.
func (m Model) HearingRange(noise float64, night bool) float64 {
	r := m.hearing.BaseRange + noise*m.hearing.NoiseScale
	if night {
		r *= m.hearing.NightMult
	}
	return r
}

func angleDiff(a, b float64) float64 {
	d := math.Mod(a-b, 2*math.Pi)
	if d > math.Pi {
		d -= 2 * math.Pi
	}
	if d < -math.Pi {
		d += 2 * math.Pi
	}
	return d
}
