package agent

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by New for out-of-range tuning values.
var ErrInvalidConfig = errors.New("agent: invalid configuration")

// Config holds the movement, recovery and goal tuning of an agent. Margins
// and goal thresholds are fractions of the maze cell size; everything else is
// in world units and seconds.
type Config struct {
	MoveSpeed           float64 // world units per second
	RotationLerpFactor  float64 // fraction of the heading error closed per tick
	ArrivalDistance     float64 // waypoint reached below this distance
	StuckCheckInterval  float64 // seconds between displacement samples
	StuckThreshold      float64 // minimum displacement per sample
	MaxStuckTime        float64 // accumulated stuck time that forces recovery
	CollisionMargin     float64
	ExitCollisionMargin float64 // margin for rows 0 and 1
	OuterMargin         float64 // world units beyond the interior bounds
	RecoveryStep        float64 // world offset tried by stuck recovery
	ExploreChance       float64 // chance of an exploration leg before the exit leg
	NearestCellRadius   int     // ring radius for current-cell resolution
	GoalHorizontal      float64
	GoalVertical        float64
	CelebrationDuration float64
	CelebrationSpins    float64
	ResultDelay         float64 // seconds between the goal and the result signal
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		MoveSpeed:           3.8,
		RotationLerpFactor:  0.08,
		ArrivalDistance:     0.2,
		StuckCheckInterval:  0.8,
		StuckThreshold:      0.15,
		MaxStuckTime:        1.5,
		CollisionMargin:     0.2,
		ExitCollisionMargin: 0.1,
		OuterMargin:         0.2,
		RecoveryStep:        0.3,
		ExploreChance:       0.7,
		NearestCellRadius:   3,
		GoalHorizontal:      0.75,
		GoalVertical:        0.5,
		CelebrationDuration: 2.0,
		CelebrationSpins:    2,
		ResultDelay:         1.0,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	switch {
	case c.MoveSpeed <= 0:
		return fmt.Errorf("%w: move speed must be positive", ErrInvalidConfig)
	case c.RotationLerpFactor <= 0 || c.RotationLerpFactor > 1:
		return fmt.Errorf("%w: rotation lerp factor must be within (0, 1]", ErrInvalidConfig)
	case c.StuckCheckInterval <= 0 || c.MaxStuckTime <= 0 || c.StuckThreshold < 0:
		return fmt.Errorf("%w: stuck detection needs positive timings", ErrInvalidConfig)
	case c.CollisionMargin < 0 || c.CollisionMargin >= 0.5 || c.ExitCollisionMargin < 0 || c.ExitCollisionMargin >= 0.5:
		return fmt.Errorf("%w: collision margins must be within [0, 0.5)", ErrInvalidConfig)
	case c.ExploreChance < 0 || c.ExploreChance > 1:
		return fmt.Errorf("%w: explore chance must be within [0, 1]", ErrInvalidConfig)
	case c.CelebrationDuration <= 0 || c.ResultDelay < 0:
		return fmt.Errorf("%w: celebration duration must be positive", ErrInvalidConfig)
	case c.ArrivalDistance <= 0 || c.RecoveryStep <= 0 || c.NearestCellRadius < 0:
		return fmt.Errorf("%w: arrival distance and recovery step must be positive", ErrInvalidConfig)
	}
	return nil
}
