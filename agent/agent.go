// Package agent drives the autonomous maze walker: route planning, fixed-step
// movement with wall collision, stuck detection and recovery, goal detection
// and the celebration that follows it.
//
// An Agent is single threaded. The host owns the loop and calls Update once
// per tick.
package agent

import (
	"errors"
	"fmt"
	"math"

	"github.com/beka-birhanu/decision-maze/geometry"
	"github.com/beka-birhanu/decision-maze/maze"
	"github.com/beka-birhanu/decision-maze/random"
)

var ErrMissingDependency = errors.New("agent: maze, planner and random source are required")

// canonicalHeading faces into the maze from the entry side.
const canonicalHeading = math.Pi

// Maze is the read-only maze view the agent navigates.
type Maze interface {
	IsValid(x, y int) bool
	CellAt(x, y int) (maze.Cell, error)
	Layout() maze.Layout
	Exits() [2]maze.Exit
}

// Planner finds cell routes through the maze.
type Planner interface {
	Search(start, goal maze.CellPosition) ([]maze.CellPosition, error)
}

// Logger receives agent events. Any of the service loggers satisfies it.
type Logger interface {
	Debug(string)
	Info(string)
}

// State is the agent's behavior state.
type State int

const (
	Idle State = iota
	Exploring
	Recovering
	Celebrating
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Exploring:
		return "exploring"
	case Recovering:
		return "recovering"
	case Celebrating:
		return "celebrating"
	}
	return "unknown"
}

// Option configures an Agent.
type Option func(*Agent)

// WithLogger routes agent events to l.
func WithLogger(l Logger) Option {
	return func(a *Agent) { a.logger = l }
}

// WithGoalHandler registers the callback that receives the label of the exit
// reached. It is called at most once per spawn, from Update.
func WithGoalHandler(fn func(label string)) Option {
	return func(a *Agent) { a.onGoal = fn }
}

// Snapshot is the agent pose and status for presentation layers.
type Snapshot struct {
	Position    geometry.Vec      `json:"position"`
	Heading     float64           `json:"heading"`
	State       string            `json:"state"`
	Ready       bool              `json:"ready"`
	Target      *geometry.Vec     `json:"target,omitempty"`
	Waypoints   []geometry.Vec    `json:"waypoints"`
	CurrentCell maze.CellPosition `json:"current_cell"`
	Recoveries  int               `json:"recoveries"`
}

// Agent is the navigation controller.
type Agent struct {
	cfg     Config
	maze    Maze
	planner Planner
	src     random.Source
	logger  Logger
	onGoal  func(string)

	readiness readiness

	position  geometry.Vec
	heading   float64
	state     State
	target    *geometry.Vec
	waypoints []geometry.Vec

	stuckTimer   float64
	stuckTime    float64
	lastPosition *geometry.Vec
	recoveries   int

	celebration celebration
	result      pendingResult
	goalReached bool
}

// New returns an agent that is not ready yet. Spawn requests made before
// MarkReady are deferred.
func New(m Maze, p Planner, src random.Source, cfg Config, opts ...Option) (*Agent, error) {
	if m == nil || p == nil || src == nil {
		return nil, ErrMissingDependency
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &Agent{
		cfg:     cfg,
		maze:    m,
		planner: p,
		src:     src,
		heading: canonicalHeading,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// MarkReady signals that the agent may act. A spawn requested earlier runs now,
// exactly once.
func (a *Agent) MarkReady() {
	if pos, ok := a.readiness.markReady(); ok {
		a.Spawn(pos)
	}
}

// Ready reports whether MarkReady has been called.
func (a *Agent) Ready() bool {
	return a.readiness.ready
}

// Spawn resets the agent at pos facing the maze and plans a route.
func (a *Agent) Spawn(pos geometry.Vec) {
	if !a.readiness.admit(pos) {
		a.debug("spawn deferred until ready")
		return
	}

	a.position = pos
	a.heading = canonicalHeading
	a.state = Idle
	a.target = nil
	a.waypoints = nil
	a.stuckTimer, a.stuckTime = 0, 0
	a.lastPosition = nil
	a.celebration = celebration{}
	a.result = pendingResult{}
	a.goalReached = false

	a.planRoute()
}

// Update advances the agent by dt seconds.
func (a *Agent) Update(dt float64) {
	if !a.readiness.ready || dt <= 0 {
		return
	}

	a.tickResult(dt)

	switch {
	case a.state == Celebrating:
		a.celebrate(dt)
	case a.target != nil:
		a.move(dt)
		a.detectStuck(dt)
	}
}

func (a *Agent) Position() geometry.Vec { return a.position }

// Heading returns the yaw in [-π, π].
func (a *Agent) Heading() float64 { return geometry.NormalizeAngle(a.heading) }

func (a *Agent) State() State { return a.state }

// Waypoints returns the remaining route, current target first.
func (a *Agent) Waypoints() []geometry.Vec {
	out := make([]geometry.Vec, 0, len(a.waypoints)+1)
	if a.target != nil {
		out = append(out, *a.target)
	}
	return append(out, a.waypoints...)
}

// Snapshot returns the current pose and status.
func (a *Agent) Snapshot() Snapshot {
	var target *geometry.Vec
	if a.target != nil {
		t := *a.target
		target = &t
	}
	waypoints := make([]geometry.Vec, len(a.waypoints))
	copy(waypoints, a.waypoints)

	return Snapshot{
		Position:    a.position,
		Heading:     a.Heading(),
		State:       a.state.String(),
		Ready:       a.readiness.ready,
		Target:      target,
		Waypoints:   waypoints,
		CurrentCell: a.CurrentCell(),
		Recoveries:  a.recoveries,
	}
}

func (a *Agent) debug(msg string) {
	if a.logger != nil {
		a.logger.Debug(msg)
	}
}

func (a *Agent) info(msg string) {
	if a.logger != nil {
		a.logger.Info(msg)
	}
}

func (a *Agent) debugf(format string, args ...any) {
	if a.logger != nil {
		a.logger.Debug(fmt.Sprintf(format, args...))
	}
}
