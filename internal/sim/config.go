package sim

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds every tuning constant of the simulation. Values are plain
// defaults picked by playtesting; a YAML file may override any subset.
type Config struct {
	// Grid
	Cols     int `yaml:"cols"`
	Rows     int `yaml:"rows"`
	TileSize int `yaml:"tile_size"` // world pixels per tile

	// Population
	BaseCivilians     int     `yaml:"base_civilians"`
	SpawnJitter       float64 `yaml:"spawn_jitter"`        // ± pixels around a safe spawn
	SpawnSearchRadius int     `yaml:"spawn_search_radius"` // spiral rings, in tiles
	VignetteChance    float64 `yaml:"vignette_chance"`
	MinCrimeVignettes int     `yaml:"min_crime_vignettes"`
	CrimeWeight       int     `yaml:"crime_weight"`
	HerringWeight     int     `yaml:"herring_weight"`
	AmbianceWeight    int     `yaml:"ambiance_weight"`

	// Movement
	CivilianSpeed float64 `yaml:"civilian_speed"` // px/s
	KillerSpeed   float64 `yaml:"killer_speed"`
	ArrivalRadius float64 `yaml:"arrival_radius"`
	WaitMin       float64 `yaml:"wait_min"` // seconds
	WaitMax       float64 `yaml:"wait_max"`

	// Timers and meters
	LevelSeconds    int `yaml:"level_seconds"`
	MinLevelSeconds int `yaml:"min_level_seconds"`
	LevelTimeStep   int `yaml:"level_time_step"` // seconds lost per level after the first
	CrisisSeconds   int `yaml:"crisis_seconds"`
	PanicPerSecond  int `yaml:"panic_per_second"`
	HerringPanic    int `yaml:"herring_panic"`
	CrimeCredit     int `yaml:"crime_credit"`
	ArrestThreshold int `yaml:"arrest_threshold"`
	LedgerCapacity  int `yaml:"ledger_capacity"`

	// Scenarios
	ScenarioTargets int `yaml:"scenario_targets"`
	BombDebrisPiles int `yaml:"bomb_debris_piles"`
	RescueDecoys    int `yaml:"rescue_decoys"`

	// Dialogue
	HintChance float64 `yaml:"hint_chance"`

	// Messages kept in the HUD feed.
	FeedSize int `yaml:"feed_size"`
}

// DefaultConfig returns the tuning the game ships with.
func DefaultConfig() Config {
	return Config{
		Cols:     40,
		Rows:     24,
		TileSize: 32,

		BaseCivilians:     8,
		SpawnJitter:       6,
		SpawnSearchRadius: 6,
		VignetteChance:    0.40,
		MinCrimeVignettes: 2,
		CrimeWeight:       10,
		HerringWeight:     25,
		AmbianceWeight:    65,

		CivilianSpeed: 38,
		KillerSpeed:   44,
		ArrivalRadius: 5,
		WaitMin:       1,
		WaitMax:       4,

		LevelSeconds:    30,
		MinLevelSeconds: 15,
		LevelTimeStep:   2,
		CrisisSeconds:   20,
		PanicPerSecond:  1,
		HerringPanic:    10,
		CrimeCredit:     25,
		ArrestThreshold: 50,
		LedgerCapacity:  8,

		ScenarioTargets: 3,
		BombDebrisPiles: 6,
		RescueDecoys:    2,

		HintChance: 0.35,

		FeedSize: 12,
	}
}

// LoadConfig overlays a YAML file on DefaultConfig. A missing file is not an
// error: the defaults are returned.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read sim config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse sim config: %w", err)
	}
	cfg.Validate()
	return cfg, nil
}

// Validate clamps values that would break generation or the state machine.
func (c *Config) Validate() {
	def := DefaultConfig()
	if c.Cols < 12 {
		c.Cols = def.Cols
	}
	if c.Rows < 12 {
		c.Rows = def.Rows
	}
	if c.TileSize <= 0 {
		c.TileSize = def.TileSize
	}
	if c.BaseCivilians < 1 {
		c.BaseCivilians = 1
	}
	c.VignetteChance = clamp01(c.VignetteChance)
	c.HintChance = clamp01(c.HintChance)
	if c.CrimeWeight < 0 {
		c.CrimeWeight = 0
	}
	if c.HerringWeight < 0 {
		c.HerringWeight = 0
	}
	if c.AmbianceWeight < 0 {
		c.AmbianceWeight = 0
	}
	if c.CrimeWeight+c.HerringWeight+c.AmbianceWeight == 0 {
		c.CrimeWeight, c.HerringWeight, c.AmbianceWeight = def.CrimeWeight, def.HerringWeight, def.AmbianceWeight
	}
	if c.ArrivalRadius <= 0 {
		c.ArrivalRadius = def.ArrivalRadius
	}
	if c.WaitMax < c.WaitMin {
		c.WaitMax = c.WaitMin
	}
	if c.LevelSeconds < 1 {
		c.LevelSeconds = def.LevelSeconds
	}
	if c.MinLevelSeconds < 1 || c.MinLevelSeconds > c.LevelSeconds {
		c.MinLevelSeconds = c.LevelSeconds
	}
	if c.CrisisSeconds < 1 {
		c.CrisisSeconds = def.CrisisSeconds
	}
	if c.ScenarioTargets < 1 {
		c.ScenarioTargets = def.ScenarioTargets
	}
	if c.BombDebrisPiles < c.ScenarioTargets {
		c.BombDebrisPiles = c.ScenarioTargets
	}
	if c.LedgerCapacity < 1 {
		c.LedgerCapacity = def.LedgerCapacity
	}
	if c.FeedSize < 1 {
		c.FeedSize = def.FeedSize
	}
}

// LevelSecondsFor returns the level timer for a given level number.
func (c Config) LevelSecondsFor(level int) int {
	s := c.LevelSeconds - (level-1)*c.LevelTimeStep
	if s < c.MinLevelSeconds {
		s = c.MinLevelSeconds
	}
	return s
}

// WorldSize returns the playfield size in world pixels.
func (c Config) WorldSize() (w, h float64) {
	return float64(c.Cols * c.TileSize), float64(c.Rows * c.TileSize)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
