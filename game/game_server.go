// Package game hosts one maze session: it owns the maze, the planner and the
// agent, runs rounds and drives the fixed-step host loop.
package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/beka-birhanu/decision-maze/agent"
	"github.com/beka-birhanu/decision-maze/geometry"
	"github.com/beka-birhanu/decision-maze/maze"
	"github.com/beka-birhanu/decision-maze/planner"
	"github.com/beka-birhanu/decision-maze/random"
	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// Game-related errors.
var (
	ErrNoRound         = errors.New("game: no round has been started")
	ErrInvalidTickRate = errors.New("game: tick rate must be positive")
)

const (
	defaultTickRate = 60
	resultBuffer    = 4 // Results kept for slow readers before dropping.
)

// Logger receives session events.
type Logger interface {
	Debug(string)
	Info(string)
	Warn(string)
}

// Config bundles the tuning of every component of a session.
type Config struct {
	Maze     maze.Config
	Planner  planner.Config
	Agent    agent.Config
	TickRate int // Host loop ticks per second.
}

// DefaultConfig returns the stock configuration at 60 ticks per second.
func DefaultConfig() Config {
	return Config{
		Maze:     maze.DefaultConfig(),
		Planner:  planner.DefaultConfig(),
		Agent:    agent.DefaultConfig(),
		TickRate: defaultTickRate,
	}
}

// Result is the decision reached in a round.
type Result struct {
	RoundID uuid.UUID `json:"round_id"`
	Label   string    `json:"label"`
	Side    string    `json:"side"`
	Elapsed float64   `json:"elapsed"` // Simulated seconds since the round started.
}

// State is what presentation layers poll every frame.
type State struct {
	RoundID uuid.UUID      `json:"round_id"`
	Options [2]string      `json:"options"`
	Elapsed float64        `json:"elapsed"`
	Agent   agent.Snapshot `json:"agent"`
	Result  *Result        `json:"result,omitempty"`
}

// Game is a single maze session. Every access to the maze or the agent goes
// through the embedded lock, so the core stays single threaded.
type Game struct {
	cfg    Config
	maze   *maze.Maze
	agent  *agent.Agent
	logger Logger

	roundID uuid.UUID
	options [2]string
	elapsed float64
	result  *Result

	results  chan Result   // Decisions, one per round.
	stop     chan struct{} // Closed by Stop.
	stopOnce sync.Once
	sync.RWMutex
}

// New wires a maze, a planner and an agent sharing src. The agent is not
// ready until MarkReady or Run is called.
func New(cfg Config, src random.Source, logger Logger) (*Game, error) {
	if cfg.TickRate <= 0 {
		return nil, ErrInvalidTickRate
	}

	m, err := maze.New(cfg.Maze, src)
	if err != nil {
		return nil, fmt.Errorf("creating maze: %w", err)
	}

	p, err := planner.New(m, src, cfg.Planner)
	if err != nil {
		return nil, fmt.Errorf("creating planner: %w", err)
	}

	g := &Game{
		cfg:     cfg,
		maze:    m,
		logger:  logger,
		results: make(chan Result, resultBuffer),
		stop:    make(chan struct{}),
	}

	opts := []agent.Option{agent.WithGoalHandler(g.handleGoal)}
	if logger != nil {
		opts = append(opts, agent.WithLogger(logger))
	}
	a, err := agent.New(m, p, src, cfg.Agent, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating agent: %w", err)
	}
	g.agent = a

	return g, nil
}

// MarkReady lets the agent act. A round started earlier spawns the agent now.
func (g *Game) MarkReady() {
	g.Lock()
	defer g.Unlock()
	g.agent.MarkReady()
}

// StartRound generates a fresh maze labelled with the two options and places
// the agent at the entry.
func (g *Game) StartRound(optionA, optionB string) (uuid.UUID, error) {
	g.Lock()
	defer g.Unlock()

	snapshot := g.maze.Generate()
	if err := g.maze.AddExits(optionA, optionB); err != nil {
		return uuid.Nil, err
	}
	if !snapshot.Reachable {
		g.warn(fmt.Sprintf("maze exits unreachable after %d attempts", snapshot.Attempts))
	}

	g.roundID = uuid.New()
	g.options = [2]string{optionA, optionB}
	g.elapsed = 0
	g.result = nil
	g.agent.Spawn(g.maze.StartPosition())

	g.info(fmt.Sprintf("started round %s: %q vs %q", g.roundID, optionA, optionB))
	return g.roundID, nil
}

// Step advances the round by dt seconds of simulated time.
func (g *Game) Step(dt float64) error {
	g.Lock()
	defer g.Unlock()

	if g.roundID == uuid.Nil {
		return ErrNoRound
	}
	g.elapsed += dt
	g.agent.Update(dt)
	return nil
}

// Run marks the agent ready and ticks at the configured rate until ctx is
// done or Stop is called. Each tick advances the round by 1/TickRate seconds.
func (g *Game) Run(ctx context.Context) error {
	g.MarkReady()

	dt := 1 / float64(g.cfg.TickRate)
	ticker := time.NewTicker(time.Second / time.Duration(g.cfg.TickRate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-g.stop:
			return nil
		case <-ticker.C:
			if err := g.Step(dt); err != nil && !errors.Is(err, ErrNoRound) {
				return err
			}
		}
	}
}

// Stop ends Run. It is safe to call more than once.
func (g *Game) Stop() {
	g.stopOnce.Do(func() { close(g.stop) })
}

// Results delivers each round's decision. The channel is never closed.
func (g *Game) Results() <-chan Result {
	return g.results
}

// State returns the current round and agent status.
func (g *Game) State() (State, error) {
	g.RLock()
	defer g.RUnlock()

	if g.roundID == uuid.Nil {
		return State{}, ErrNoRound
	}

	s := State{
		RoundID: g.roundID,
		Options: g.options,
		Elapsed: g.elapsed,
		Agent:   g.agent.Snapshot(),
	}
	if g.result != nil {
		r := *g.result
		s.Result = &r
	}
	return s, nil
}

// Maze returns the current maze and its ASCII rendering.
func (g *Game) Maze() (maze.Snapshot, string, error) {
	g.RLock()
	defer g.RUnlock()

	if g.roundID == uuid.Nil {
		return maze.Snapshot{}, "", ErrNoRound
	}
	return g.maze.Snapshot(), g.maze.String(), nil
}

// SegmentsIn returns the wall segments intersecting b.
func (g *Game) SegmentsIn(b orb.Bound) ([]geometry.WallSegment, error) {
	g.RLock()
	defer g.RUnlock()

	if g.roundID == uuid.Nil {
		return nil, ErrNoRound
	}
	return g.maze.SegmentsIn(b), nil
}

// handleGoal runs inside agent.Update, with the lock already held.
func (g *Game) handleGoal(label string) {
	r := Result{RoundID: g.roundID, Label: label, Elapsed: g.elapsed}
	for _, e := range g.maze.Exits() {
		if e.Label == label {
			r.Side = e.Side.String()
			break
		}
	}
	g.result = &r

	select {
	case g.results <- r:
	default:
		g.warn(fmt.Sprintf("result for round %s dropped, no reader", r.RoundID))
	}
	g.info(fmt.Sprintf("round %s decided: %q", r.RoundID, label))
}

func (g *Game) info(msg string) {
	if g.logger != nil {
		g.logger.Info(msg)
	}
}

func (g *Game) warn(msg string) {
	if g.logger != nil {
		g.logger.Warn(msg)
	}
}
