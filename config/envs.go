package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/beka-birhanu/decision-maze/agent"
	"github.com/beka-birhanu/decision-maze/game"
	"github.com/beka-birhanu/decision-maze/maze"
	"github.com/beka-birhanu/decision-maze/planner"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config holds the application's configuration values.
type Config struct {
	HostIP      string        `yaml:"host_ip"`      // Host IP for the server
	RESTPort    int           `yaml:"rest_port"`    // Port for the REST API
	GinMode     string        `yaml:"gin_mode"`     // Mode for the Gin framework (e.g., release, debug, test)
	APIKey      string        `yaml:"-"`            // Key for the protected routes; empty leaves them open
	SessionKey  string        `yaml:"-"`            // Signs session tokens; empty picks a random key per process
	SessionTTL  time.Duration `yaml:"session_ttl"`  // Lifetime of a session token
	LogLevel    string        `yaml:"log_level"`    // debug, info, warn or error
	Seed        int64         `yaml:"seed"`         // Zero seeds from the clock
	MaxSessions int           `yaml:"max_sessions"` // Zero means unlimited
	TickRate    int           `yaml:"tick_rate"`    // Host loop ticks per second

	Maze    MazeConfig    `yaml:"maze"`
	Planner PlannerConfig `yaml:"planner"`
	Agent   AgentConfig   `yaml:"agent"`
}

// MazeConfig is the grid section of a tuning profile.
type MazeConfig struct {
	Width       int       `yaml:"width"`
	Height      int       `yaml:"height"`
	CellSize    float64   `yaml:"cell_size"`
	WallHeight  float64   `yaml:"wall_height"`
	MaxAttempts int       `yaml:"max_attempts"`
	Bias        maze.Bias `yaml:"bias"`
}

// PlannerConfig is the search section of a tuning profile.
type PlannerConfig struct {
	StepJitter      float64 `yaml:"step_jitter"`
	VerticalWeight  float64 `yaml:"vertical_weight"`
	VerticalSpread  float64 `yaml:"vertical_spread"`
	HeuristicSpread float64 `yaml:"heuristic_spread"`
	MaxExpansions   int     `yaml:"max_expansions"`
}

// AgentConfig is the movement section of a tuning profile.
type AgentConfig struct {
	MoveSpeed           float64 `yaml:"move_speed"`
	RotationLerpFactor  float64 `yaml:"rotation_lerp_factor"`
	ArrivalDistance     float64 `yaml:"arrival_distance"`
	StuckCheckInterval  float64 `yaml:"stuck_check_interval"`
	StuckThreshold      float64 `yaml:"stuck_threshold"`
	MaxStuckTime        float64 `yaml:"max_stuck_time"`
	CollisionMargin     float64 `yaml:"collision_margin"`
	ExitCollisionMargin float64 `yaml:"exit_collision_margin"`
	OuterMargin         float64 `yaml:"outer_margin"`
	RecoveryStep        float64 `yaml:"recovery_step"`
	ExploreChance       float64 `yaml:"explore_chance"`
	NearestCellRadius   int     `yaml:"nearest_cell_radius"`
	GoalHorizontal      float64 `yaml:"goal_horizontal"`
	GoalVertical        float64 `yaml:"goal_vertical"`
	CelebrationDuration float64 `yaml:"celebration_duration"`
	CelebrationSpins    float64 `yaml:"celebration_spins"`
	ResultDelay         float64 `yaml:"result_delay"`
}

// Envs holds the application's configuration loaded from environment variables.
var Envs = initConfig()

// initConfig loads the configuration or stops the process.
func initConfig() Config {
	c, err := Load()
	if err != nil {
		log.Fatalf("[APP] [FATAL] %v", err)
	}
	return c
}

// Default returns the compiled-in configuration.
func Default() Config {
	m, p, a := maze.DefaultConfig(), planner.DefaultConfig(), agent.DefaultConfig()
	return Config{
		HostIP:      "0.0.0.0",
		RESTPort:    8080,
		GinMode:     "release",
		SessionTTL:  24 * time.Hour,
		LogLevel:    "info",
		TickRate:    game.DefaultConfig().TickRate,
		MaxSessions: 64,
		Maze: MazeConfig{
			Width:       m.Width,
			Height:      m.Height,
			CellSize:    m.CellSize,
			WallHeight:  m.WallHeight,
			MaxAttempts: m.MaxAttempts,
			Bias:        m.Bias,
		},
		Planner: PlannerConfig(p),
		Agent:   AgentConfig(a),
	}
}

// Load builds the configuration from the defaults, the YAML profile named by
// MAZE_PROFILE and the environment, each overriding the one before. A .env
// file is loaded into the environment first when present.
func Load() (Config, error) {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	c := Default()
	if path, ok := os.LookupEnv("MAZE_PROFILE"); ok && path != "" {
		if err := c.loadProfile(path); err != nil {
			return Config{}, err
		}
	}
	if err := c.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) loadProfile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading profile %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("%w: profile %s: %w", ErrInvalidConfig, path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	e := envReader{}

	c.HostIP = getEnvWithDefault("HOST_IP", c.HostIP)
	c.GinMode = getEnvWithDefault("GIN_MODE", c.GinMode)
	c.APIKey = getEnvWithDefault("API_KEY", c.APIKey)
	c.SessionKey = getEnvWithDefault("SESSION_KEY", c.SessionKey)
	e.durationVar("SESSION_TTL", &c.SessionTTL)
	c.LogLevel = getEnvWithDefault("LOG_LEVEL", c.LogLevel)
	e.intVar("REST_PORT", &c.RESTPort)
	e.int64Var("SEED", &c.Seed)
	e.intVar("MAX_SESSIONS", &c.MaxSessions)
	e.intVar("TICK_RATE", &c.TickRate)

	e.intVar("MAZE_WIDTH", &c.Maze.Width)
	e.intVar("MAZE_HEIGHT", &c.Maze.Height)
	e.floatVar("MAZE_CELL_SIZE", &c.Maze.CellSize)
	e.floatVar("MAZE_WALL_HEIGHT", &c.Maze.WallHeight)

	e.floatVar("AGENT_MOVE_SPEED", &c.Agent.MoveSpeed)
	e.floatVar("AGENT_ROTATION_LERP_FACTOR", &c.Agent.RotationLerpFactor)
	e.floatVar("AGENT_STUCK_CHECK_INTERVAL", &c.Agent.StuckCheckInterval)
	e.floatVar("AGENT_STUCK_THRESHOLD", &c.Agent.StuckThreshold)
	e.floatVar("AGENT_MAX_STUCK_TIME", &c.Agent.MaxStuckTime)
	e.floatVar("AGENT_COLLISION_MARGIN", &c.Agent.CollisionMargin)
	e.floatVar("AGENT_EXPLORE_CHANCE", &c.Agent.ExploreChance)
	e.floatVar("AGENT_CELEBRATION_DURATION", &c.Agent.CelebrationDuration)
	e.floatVar("AGENT_CELEBRATION_SPINS", &c.Agent.CelebrationSpins)
	e.floatVar("AGENT_RESULT_DELAY", &c.Agent.ResultDelay)

	return e.err
}

// Validate checks every section against the rules of the package it feeds.
func (c Config) Validate() error {
	if c.RESTPort <= 0 || c.RESTPort > 65535 {
		return fmt.Errorf("%w: rest port %d", ErrInvalidConfig, c.RESTPort)
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("%w: unknown gin mode %q", ErrInvalidConfig, c.GinMode)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("%w: session ttl must be positive", ErrInvalidConfig)
	}
	if c.TickRate <= 0 {
		return fmt.Errorf("%w: tick rate must be positive", ErrInvalidConfig)
	}
	if c.MaxSessions < 0 {
		return fmt.Errorf("%w: max sessions must not be negative", ErrInvalidConfig)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.LogLevel)
	}
	if err := c.MazeConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	p := c.Planner
	if p.StepJitter < 0 || p.VerticalWeight < 0 || p.VerticalSpread < 0 || p.HeuristicSpread < 0 || p.MaxExpansions < 0 {
		return fmt.Errorf("%w: planner ranges must be non-negative", ErrInvalidConfig)
	}
	if err := c.AgentConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func (c Config) MazeConfig() maze.Config {
	return maze.Config{
		Width:       c.Maze.Width,
		Height:      c.Maze.Height,
		CellSize:    c.Maze.CellSize,
		WallHeight:  c.Maze.WallHeight,
		Bias:        c.Maze.Bias,
		MaxAttempts: c.Maze.MaxAttempts,
	}
}

func (c Config) PlannerConfig() planner.Config {
	return planner.Config(c.Planner)
}

func (c Config) AgentConfig() agent.Config {
	return agent.Config(c.Agent)
}

// GameConfig assembles the per-session configuration.
func (c Config) GameConfig() game.Config {
	return game.Config{
		Maze:     c.MazeConfig(),
		Planner:  c.PlannerConfig(),
		Agent:    c.AgentConfig(),
		TickRate: c.TickRate,
	}
}

// envReader parses numeric variables, keeping the first failure.
type envReader struct {
	err error
}

func (e *envReader) intVar(key string, dst *int) {
	e.parse(key, func(s string) error {
		v, err := strconv.Atoi(s)
		*dst = v
		return err
	})
}

func (e *envReader) int64Var(key string, dst *int64) {
	e.parse(key, func(s string) error {
		v, err := strconv.ParseInt(s, 10, 64)
		*dst = v
		return err
	})
}

func (e *envReader) floatVar(key string, dst *float64) {
	e.parse(key, func(s string) error {
		v, err := strconv.ParseFloat(s, 64)
		*dst = v
		return err
	})
}

func (e *envReader) durationVar(key string, dst *time.Duration) {
	e.parse(key, func(s string) error {
		v, err := time.ParseDuration(s)
		*dst = v
		return err
	})
}

func (e *envReader) parse(key string, set func(string) error) {
	if e.err != nil {
		return
	}
	value, exists := os.LookupEnv(key)
	if !exists {
		return
	}
	if err := set(value); err != nil {
		e.err = fmt.Errorf("%w: environment variable %s: %w", ErrInvalidConfig, key, err)
	}
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
