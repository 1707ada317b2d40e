package henhouse

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// Config holds every tunable of the simulation. Distances are world units,
// speeds are units per tick, and timers are ticks unless a field says seconds.
type Config struct {
	Tick        TickConfig        `yaml:"tick"`
	World       WorldConfig       `yaml:"world"`
	Player      PlayerConfig      `yaml:"player"`
	Patrol      PatrolConfig      `yaml:"patrol"`
	Guardian    GuardianConfig    `yaml:"guardian"`
	Prey        PreyConfig        `yaml:"prey"`
	Interaction InteractionConfig `yaml:"interaction"`
	Economy     EconomyConfig     `yaml:"economy"`
	Spawn       SpawnConfig       `yaml:"spawn"`
	Camera      CameraConfig      `yaml:"camera"`
}

// TickConfig controls the fixed-step clock.
type TickConfig struct {
	// Step is the simulated seconds per tick.
	Step float64 `yaml:"step"`
	// MaxTicksPerFrame caps how many ticks one Advance call may run. Time
	// beyond the cap is dropped.
	MaxTicksPerFrame int `yaml:"max_ticks_per_frame"`
}

// WorldConfig describes the playfield.
type WorldConfig struct {
	GroundY    float32    `yaml:"ground_y"`
	Extent     float32    `yaml:"extent"`
	FloorY     float32    `yaml:"floor_y"`
	DomeCenter mgl32.Vec3 `yaml:"dome_center"`
	DomeRadius float32    `yaml:"dome_radius"`
}

// PlayerConfig tunes the player rig.
type PlayerConfig struct {
	Start      mgl32.Vec3 `yaml:"start"`
	MaxSpeed   float32    `yaml:"max_speed"`
	Drag       float32    `yaml:"drag"`
	Accelerate float32    `yaml:"accelerate"`
	Brake      float32    `yaml:"brake"`
	// TurnStep is the rotation applied per turn intent, in radians.
	TurnStep float32 `yaml:"turn_step"`
}

// PatrolConfig tunes drones.
type PatrolConfig struct {
	Speed        float32  `yaml:"speed"`
	ArriveRadius float32  `yaml:"arrive_radius"`
	Rest         IntRange `yaml:"rest"`
	// Lead scales the player's velocity when projecting its future position.
	Lead      float32 `yaml:"lead"`
	RamRadius float32 `yaml:"ram_radius"`
	RamStun   int     `yaml:"ram_stun"`
}

// GuardianConfig tunes hens.
type GuardianConfig struct {
	Speed        float32  `yaml:"speed"`
	ArriveRadius float32  `yaml:"arrive_radius"`
	Rest         IntRange `yaml:"rest"`
	HomeRadius   float32  `yaml:"home_radius"`
	// AlertDistance is the player distance below which a guardian switches
	// to its tight warning region.
	AlertDistance float32 `yaml:"alert_distance"`
	WarnRadius    float32 `yaml:"warn_radius"`
	WarnAhead     float32 `yaml:"warn_ahead"`
	SuckRadius    float32 `yaml:"suck_radius"`
	SuckStun      int     `yaml:"suck_stun"`
}

// PreyConfig tunes chickens.
type PreyConfig struct {
	Speed        float32  `yaml:"speed"`
	ArriveRadius float32  `yaml:"arrive_radius"`
	Rest         IntRange `yaml:"rest"`
	WanderRadius float32  `yaml:"wander_radius"`
	EscapeRadius float32  `yaml:"escape_radius"`
	FleeFactor   float32  `yaml:"flee_factor"`
	SuckRadius   float32  `yaml:"suck_radius"`
}

// InteractionConfig tunes the pairwise resolver.
type InteractionConfig struct {
	ConsumeRadius   float32 `yaml:"consume_radius"`
	ProbeDistance   float32 `yaml:"probe_distance"`
	HitPatrolRadius float32 `yaml:"hit_patrol_radius"`
	HitGuardRadius  float32 `yaml:"hit_guard_radius"`
	HitStun         int     `yaml:"hit_stun"`
}

// EconomyConfig tunes the game session's health and energy.
type EconomyConfig struct {
	StartHealth  float64 `yaml:"start_health"`
	StartEnergy  float64 `yaml:"start_energy"`
	HealthDecay  float64 `yaml:"health_decay"`
	EnergyRegen  float64 `yaml:"energy_regen"`
	MaxHealth    float64 `yaml:"max_health"`
	MaxEnergy    float64 `yaml:"max_energy"`
	FireCooldown float64 `yaml:"fire_cooldown"`
	FireCost     float64 `yaml:"fire_cost"`
	MeleeCost    float64 `yaml:"melee_cost"`
	MeleeReward  float64 `yaml:"melee_reward"`
	MeleeTicks   int     `yaml:"melee_ticks"`
	BlockedStun  int     `yaml:"blocked_stun"`
	TornadoCost  float64 `yaml:"tornado_cost"`
	TornadoTicks int     `yaml:"tornado_ticks"`
	AimRange     float32 `yaml:"aim_range"`
}

// SpawnConfig sets initial populations and respawn batches.
type SpawnConfig struct {
	Patrols   int          `yaml:"patrols"`
	Prey      int          `yaml:"prey"`
	Guardians int          `yaml:"guardians"`
	Lakes     int          `yaml:"lakes"`
	Batch     IntRange     `yaml:"batch"`
	Raise     int          `yaml:"raise"`
	Coops     []mgl32.Vec3 `yaml:"coops"`
	// Scatter is the maximum absolute horizontal coordinate of random spawns.
	Scatter int `yaml:"scatter"`
}

// CameraConfig tunes the camera rig.
type CameraConfig struct {
	FOV            float32    `yaml:"fov"`
	Near           float32    `yaml:"near"`
	Far            float32    `yaml:"far"`
	LookAhead      float32    `yaml:"look_ahead"`
	ThirdOffset    mgl32.Vec3 `yaml:"third_offset"`
	OverlookHeight float32    `yaml:"overlook_height"`
	// GlideSeconds is the duration of the overlook camera's move between aim
	// positions.
	GlideSeconds float32 `yaml:"glide_seconds"`
}

// DefaultConfig returns the standard tuning.
func DefaultConfig() Config {
	return Config{
		Tick: TickConfig{Step: 0.01, MaxTicksPerFrame: 4},
		World: WorldConfig{
			GroundY:    -25,
			Extent:     120,
			FloorY:     -23.5,
			DomeCenter: mgl32.Vec3{0, -25, 0},
			DomeRadius: 150,
		},
		Player: PlayerConfig{
			Start:      mgl32.Vec3{0, 0, 2},
			MaxSpeed:   1,
			Drag:       0.005,
			Accelerate: 0.1,
			Brake:      -0.025,
			TurnStep:   3.14159265 / 80,
		},
		Patrol: PatrolConfig{
			Speed:        0.06,
			ArriveRadius: 2,
			Rest:         IntRange{Min: 50, Max: 200},
			Lead:         30,
			RamRadius:    1.5,
			RamStun:      60,
		},
		Guardian: GuardianConfig{
			Speed:         0.04,
			ArriveRadius:  2,
			Rest:          IntRange{Min: 30, Max: 150},
			HomeRadius:    25,
			AlertDistance: 30,
			WarnRadius:    5,
			WarnAhead:     6,
			SuckRadius:    15,
			SuckStun:      100,
		},
		Prey: PreyConfig{
			Speed:        0.024,
			ArriveRadius: 2,
			Rest:         IntRange{Min: 30, Max: 250},
			WanderRadius: 12,
			EscapeRadius: 15,
			FleeFactor:   10,
			SuckRadius:   15,
		},
		Interaction: InteractionConfig{
			ConsumeRadius:   10,
			ProbeDistance:   1,
			HitPatrolRadius: 1.5,
			HitGuardRadius:  2.5,
			HitStun:         120,
		},
		Economy: EconomyConfig{
			StartHealth:  50,
			StartEnergy:  50,
			HealthDecay:  0.006,
			EnergyRegen:  0.007,
			MaxHealth:    100,
			MaxEnergy:    100,
			FireCooldown: 0.5,
			FireCost:     3,
			MeleeCost:    1,
			MeleeReward:  3,
			MeleeTicks:   96,
			BlockedStun:  90,
			TornadoCost:  30,
			TornadoTicks: 400,
			AimRange:     20,
		},
		Spawn: SpawnConfig{
			Patrols:   40,
			Prey:      25,
			Guardians: 3,
			Lakes:     7,
			Batch:     IntRange{Min: 4, Max: 8},
			Raise:     5,
			Coops: []mgl32.Vec3{
				{12, -22.3, 90},
				{-110, -22.3, 70},
				{-10, -22.3, -46},
				{66, -22.3, -100},
			},
			Scatter: 90,
		},
		Camera: CameraConfig{
			FOV:            20,
			Near:           0.01,
			Far:            1000,
			LookAhead:      800,
			ThirdOffset:    mgl32.Vec3{-8, 12, 32},
			OverlookHeight: 50,
			GlideSeconds:   0.15,
		},
	}
}

// LoadConfig reads a YAML file and overlays it on DefaultConfig.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig overlays a YAML document on DefaultConfig and validates the
// result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate rejects settings the engine cannot run with.
func (c *Config) Validate() error {
	if c.Tick.Step <= 0 {
		return fmt.Errorf("%w: tick.step must be positive, got %v", ErrInvalidConfig, c.Tick.Step)
	}
	if c.Tick.MaxTicksPerFrame < 1 {
		return fmt.Errorf("%w: tick.max_ticks_per_frame must be at least 1", ErrInvalidConfig)
	}
	rests := map[string]IntRange{
		"patrol.rest":   c.Patrol.Rest,
		"guardian.rest": c.Guardian.Rest,
		"prey.rest":     c.Prey.Rest,
		"spawn.batch":   c.Spawn.Batch,
	}
	for name, r := range rests {
		if r.Min < 0 || r.Max < r.Min {
			return fmt.Errorf("%w: %s range [%d, %d] is inverted or negative", ErrInvalidConfig, name, r.Min, r.Max)
		}
	}
	radii := map[string]float32{
		"patrol.arrive_radius":          c.Patrol.ArriveRadius,
		"patrol.ram_radius":             c.Patrol.RamRadius,
		"guardian.arrive_radius":        c.Guardian.ArriveRadius,
		"guardian.home_radius":          c.Guardian.HomeRadius,
		"guardian.warn_radius":          c.Guardian.WarnRadius,
		"guardian.suck_radius":          c.Guardian.SuckRadius,
		"prey.arrive_radius":            c.Prey.ArriveRadius,
		"prey.wander_radius":            c.Prey.WanderRadius,
		"prey.escape_radius":            c.Prey.EscapeRadius,
		"prey.suck_radius":              c.Prey.SuckRadius,
		"interaction.consume_radius":    c.Interaction.ConsumeRadius,
		"interaction.hit_patrol_radius": c.Interaction.HitPatrolRadius,
		"interaction.hit_guard_radius":  c.Interaction.HitGuardRadius,
		"world.dome_radius":             c.World.DomeRadius,
	}
	for name, r := range radii {
		if r < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %v", ErrInvalidConfig, name, r)
		}
	}
	if c.Player.MaxSpeed < 0 {
		return fmt.Errorf("%w: player.max_speed must not be negative", ErrInvalidConfig)
	}
	if len(c.Spawn.Coops) == 0 {
		return fmt.Errorf("%w: spawn.coops must list at least one coop", ErrInvalidConfig)
	}
	return nil
}
