// Package planner finds routes through the maze wall graph with a randomized
// A* search. Routes are deliberately varied rather than shortest: every edge
// cost carries a small jitter and the heuristic is inflated by a random
// factor on each evaluation.
package planner

import (
	"container/heap"
	"errors"
	"fmt"
	"math"

	"github.com/beka-birhanu/decision-maze/maze"
	"github.com/beka-birhanu/decision-maze/random"
)

// Planner errors.
var (
	ErrNotFound      = errors.New("planner: no route between cells")
	ErrInvalidConfig = errors.New("planner: invalid configuration")
)

// Graph is the read-only view of the maze the search walks.
type Graph interface {
	IsValid(x, y int) bool
	CanMove(p maze.CellPosition, d maze.Direction) bool
}

// Config holds the randomization ranges of the search.
type Config struct {
	StepJitter      float64 // edge cost is 1 + U(0, StepJitter)
	VerticalWeight  float64 // minimum weight of the row distance in the heuristic
	VerticalSpread  float64 // the row weight is VerticalWeight + U(0, VerticalSpread)
	HeuristicSpread float64 // the heuristic is scaled by 1 + U(0, HeuristicSpread)
	MaxExpansions   int     // 0 means bounded only by the reachable cells
}

// DefaultConfig returns the stock randomization ranges.
func DefaultConfig() Config {
	return Config{
		StepJitter:      0.2,
		VerticalWeight:  1.2,
		VerticalSpread:  0.8,
		HeuristicSpread: 0.4,
	}
}

// Planner runs searches over one graph with one random source.
type Planner struct {
	graph Graph
	src   random.Source
	cfg   Config
}

// New returns a Planner over g.
func New(g Graph, src random.Source, cfg Config) (*Planner, error) {
	if g == nil || src == nil {
		return nil, fmt.Errorf("%w: graph and random source are required", ErrInvalidConfig)
	}
	if cfg.StepJitter < 0 || cfg.VerticalWeight < 0 || cfg.VerticalSpread < 0 || cfg.HeuristicSpread < 0 || cfg.MaxExpansions < 0 {
		return nil, fmt.Errorf("%w: ranges must be non-negative", ErrInvalidConfig)
	}
	return &Planner{graph: g, src: src, cfg: cfg}, nil
}

// Search returns a cell sequence from start to goal, both included. Every
// consecutive pair is one open grid step apart.
func (p *Planner) Search(start, goal maze.CellPosition) ([]maze.CellPosition, error) {
	if !p.graph.IsValid(start.X, start.Y) {
		return nil, fmt.Errorf("start %v: %w", start, maze.ErrOutOfBounds)
	}
	if !p.graph.IsValid(goal.X, goal.Y) {
		return nil, fmt.Errorf("goal %v: %w", goal, maze.ErrOutOfBounds)
	}

	openSet := &priorityQueue{}
	heap.Init(openSet)

	h := p.heuristic(start, goal)
	startNode := &node{pos: start, h: h, f: h}
	heap.Push(openSet, startNode)

	openSetMap := map[maze.CellPosition]*node{start: startNode}
	closedSet := make(map[maze.CellPosition]bool)

	expanded := 0
	for openSet.Len() > 0 {
		current := heap.Pop(openSet).(*node)
		delete(openSetMap, current.pos)

		if current.pos == goal {
			return reconstruct(current), nil
		}

		closedSet[current.pos] = true
		expanded++
		if p.cfg.MaxExpansions > 0 && expanded >= p.cfg.MaxExpansions {
			return nil, fmt.Errorf("%w: expansion limit %d reached", ErrNotFound, p.cfg.MaxExpansions)
		}

		for _, next := range p.neighbors(current.pos) {
			if closedSet[next] {
				continue
			}

			tentativeG := current.g + 1 + random.Uniform(p.src, 0, p.cfg.StepJitter)
			neighbor, exists := openSetMap[next]
			if !exists {
				h := p.heuristic(next, goal)
				neighbor = &node{pos: next, g: tentativeG, h: h, f: tentativeG + h, parent: current}
				heap.Push(openSet, neighbor)
				openSetMap[next] = neighbor
			} else if tentativeG < neighbor.g {
				neighbor.g = tentativeG
				neighbor.f = neighbor.g + neighbor.h
				neighbor.parent = current
				heap.Fix(openSet, neighbor.index)
			}
		}
	}

	return nil, ErrNotFound
}

// neighbors returns the open neighbors of pos in random order.
func (p *Planner) neighbors(pos maze.CellPosition) []maze.CellPosition {
	result := make([]maze.CellPosition, 0, 4)
	for _, d := range maze.Directions {
		if p.graph.CanMove(pos, d) {
			result = append(result, pos.Step(d))
		}
	}
	random.Shuffle(p.src, result)
	return result
}

// heuristic weighs the row distance above the column distance and inflates
// the total; it is not admissible.
func (p *Planner) heuristic(a, b maze.CellPosition) float64 {
	dx := math.Abs(float64(a.X - b.X))
	dy := math.Abs(float64(a.Y - b.Y))
	w := p.cfg.VerticalWeight + random.Uniform(p.src, 0, p.cfg.VerticalSpread)
	r := random.Uniform(p.src, 0, p.cfg.HeuristicSpread)
	return (dx + dy*w) * (1 + r)
}

func reconstruct(n *node) []maze.CellPosition {
	var path []maze.CellPosition
	for ; n != nil; n = n.parent {
		path = append(path, n.pos)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
