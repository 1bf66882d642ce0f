// Package tuning carries every gameplay constant the simulation core reads:
// perception ranges, escalation timers, throttle cooldowns, spawn caps.
// Values load from tuning.yaml; Default returns the shipped balance.
package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Tuning struct {
	TickRateHz int     `yaml:"tick_rate_hz"`
	DaySeconds float64 `yaml:"day_seconds"`

	MaxAgents int `yaml:"max_agents"`

	Move       Move       `yaml:"move"`
	Path       Path       `yaml:"path"`
	Vision     Vision     `yaml:"vision"`
	Hearing    Hearing    `yaml:"hearing"`
	Police     Police     `yaml:"police"`
	Civilian   Civilian   `yaml:"civilian"`
	Gang       Gang       `yaml:"gang"`
	Demolition Demolition `yaml:"demolition"`
	Structures Structures `yaml:"structures"`
	Speech     Speech     `yaml:"speech"`
}

type Move struct {
	WalkSpeed        float64 `yaml:"walk_speed"`
	FleeSpeedMult    float64 `yaml:"flee_speed_mult"`
	ChaseSpeedMult   float64 `yaml:"chase_speed_mult"`
	WaypointReach    float64 `yaml:"waypoint_reach"`
	KnockbackSpeed   float64 `yaml:"knockback_speed"`
	KnockbackTime    float64 `yaml:"knockback_time"`
	KnockbackDecay   float64 `yaml:"knockback_decay"`
	StuckEscapeTries int     `yaml:"stuck_escape_tries"`
	StuckShove       float64 `yaml:"stuck_shove"`
}

type Path struct {
	NodeCap        int     `yaml:"node_cap"`
	FastPathMaxXZ  int     `yaml:"fast_path_max_xz"`
	FastPathMaxDY  int     `yaml:"fast_path_max_dy"`
	RepathCooldown float64 `yaml:"repath_cooldown"`
	ApproachSteps  int     `yaml:"approach_steps"`
}

type Vision struct {
	BaseRange        float64 `yaml:"base_range"`
	NightMult        float64 `yaml:"night_mult"`
	DisguiseMult     float64 `yaml:"disguise_mult"`
	HalfAngleDeg     float64 `yaml:"half_angle_deg"`
	HiVisCrouchAngle float64 `yaml:"hivis_crouch_angle_mult"`
	RayStep          float64 `yaml:"ray_step"`
	EyeHeight        float64 `yaml:"eye_height"`
}

type Hearing struct {
	BaseRange  float64 `yaml:"base_range"`
	NoiseScale float64 `yaml:"noise_scale"`
	NightMult  float64 `yaml:"night_mult"`
}

type Police struct {
	ContactRadius      float64 `yaml:"contact_radius"`
	ArrestRadius       float64 `yaml:"arrest_radius"`
	ArrestCooldown     float64 `yaml:"arrest_cooldown"`
	WarnEscalate       float64 `yaml:"warn_escalate"`
	WarnTimeout        float64 `yaml:"warn_timeout"`
	DisguiseTimerMult  float64 `yaml:"disguise_timer_mult"`
	SuspiciousTimeout  float64 `yaml:"suspicious_timeout"`
	QuietNoise         float64 `yaml:"quiet_noise"`
	LostSightTimeout   float64 `yaml:"lost_sight_timeout"`
	AlertRadius        float64 `yaml:"alert_radius"`
	StructureNearRange float64 `yaml:"structure_near_range"`
	TapeRange          float64 `yaml:"tape_range"`
	BackupCount        int     `yaml:"backup_count"`
	WanderRadius       float64 `yaml:"wander_radius"`
}

type Civilian struct {
	WanderRadius     float64 `yaml:"wander_radius"`
	WanderMinDist    float64 `yaml:"wander_min_dist"`
	IdlePauseMin     float64 `yaml:"idle_pause_min"`
	IdlePauseMax     float64 `yaml:"idle_pause_max"`
	FleeRange        float64 `yaml:"flee_range"`
	FleeSafeDist     float64 `yaml:"flee_safe_dist"`
	ReactDwell       float64 `yaml:"react_dwell"`
	ReactGrace       float64 `yaml:"react_grace"`
	ChatRange        float64 `yaml:"chat_range"`
	ChatCooldown     float64 `yaml:"chat_cooldown"`
	ScanStaggerMax   float64 `yaml:"scan_stagger_max"`
	StructCheckEvery float64 `yaml:"struct_check_every"`
}

type Gang struct {
	StealRadius     float64 `yaml:"steal_radius"`
	StealCooldown   float64 `yaml:"steal_cooldown"`
	WanderRadius    float64 `yaml:"wander_radius"`
	TerritoryLinger float64 `yaml:"territory_linger"`
	ReinforceCount  int     `yaml:"reinforce_count"`
	NotifyRadius    float64 `yaml:"notify_radius"`
	AggressiveFor   float64 `yaml:"aggressive_for"`
}

type Demolition struct {
	TriggerRangeXZ float64 `yaml:"trigger_range_xz"`
	BreakEvery     float64 `yaml:"break_every"`
	KnockbackDelay float64 `yaml:"knockback_delay"`
}

type Structures struct {
	ScanEvery        float64 `yaml:"scan_every"`
	ScanRadius       int     `yaml:"scan_radius"`
	MinCluster       int     `yaml:"min_cluster"`
	BlocksPerBuilder int     `yaml:"blocks_per_builder"`
	NoticeAfter      float64 `yaml:"notice_after"`
}

type Speech struct {
	LineSeconds     float64 `yaml:"line_seconds"`
	KnockedOutRecov float64 `yaml:"knocked_out_recovery"`
}

func Default() Tuning {
	return Tuning{
		TickRateHz: 20,
		DaySeconds: 1200,
		MaxAgents:  100,
		Move: Move{
			WalkSpeed:        2.2,
			FleeSpeedMult:    1.6,
			ChaseSpeedMult:   1.45,
			WaypointReach:    0.35,
			KnockbackSpeed:   6.0,
			KnockbackTime:    0.6,
			KnockbackDecay:   6.0,
			StuckEscapeTries: 4,
			StuckShove:       3.5,
		},
		Path: Path{
			NodeCap:        1200,
			FastPathMaxXZ:  20,
			FastPathMaxDY:  1,
			RepathCooldown: 1.5,
			ApproachSteps:  4,
		},
		Vision: Vision{
			BaseRange:        24,
			NightMult:        0.5,
			DisguiseMult:     0.7,
			HalfAngleDeg:     70,
			HiVisCrouchAngle: 0.5,
			RayStep:          0.25,
			EyeHeight:        1.6,
		},
		Hearing: Hearing{
			BaseRange:  4,
			NoiseScale: 14,
			NightMult:  1.25,
		},
		Police: Police{
			ContactRadius:      2.0,
			ArrestRadius:       1.4,
			ArrestCooldown:     30,
			WarnEscalate:       5,
			WarnTimeout:        8,
			DisguiseTimerMult:  1.6,
			SuspiciousTimeout:  6,
			QuietNoise:         0.15,
			LostSightTimeout:   5,
			AlertRadius:        18,
			StructureNearRange: 6,
			TapeRange:          2.5,
			BackupCount:        1,
			WanderRadius:       18,
		},
		Civilian: Civilian{
			WanderRadius:     14,
			WanderMinDist:    3,
			IdlePauseMin:     2,
			IdlePauseMax:     6,
			FleeRange:        8,
			FleeSafeDist:     16,
			ReactDwell:       10,
			ReactGrace:       20,
			ChatRange:        2.5,
			ChatCooldown:     25,
			ScanStaggerMax:   5,
			StructCheckEvery: 8,
		},
		Gang: Gang{
			StealRadius:     1.5,
			StealCooldown:   20,
			WanderRadius:    10,
			TerritoryLinger: 12,
			ReinforceCount:  2,
			NotifyRadius:    22,
			AggressiveFor:   8,
		},
		Demolition: Demolition{
			TriggerRangeXZ: 3.0,
			BreakEvery:     1.2,
			KnockbackDelay: 2.5,
		},
		Structures: Structures{
			ScanEvery:        6,
			ScanRadius:       24,
			MinCluster:       8,
			BlocksPerBuilder: 20,
			NoticeAfter:      15,
		},
		Speech: Speech{
			LineSeconds:     3,
			KnockedOutRecov: 12,
		},
	}
}

// Load reads tuning.yaml over the defaults, so partial files only override
// the keys they name.
func Load(path string) (Tuning, error) {
	t := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	return t, nil
}
