package planner

import (
	"fmt"
	"testing"

	"github.com/beka-birhanu/decision-maze/maze"
	"github.com/beka-birhanu/decision-maze/random"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openGrid is a fully open graph with optional closed edges.
type openGrid struct {
	width, height int
	closed        map[[2]maze.CellPosition]bool
}

func newOpenGrid(w, h int) *openGrid {
	return &openGrid{width: w, height: h, closed: make(map[[2]maze.CellPosition]bool)}
}

func (g *openGrid) close(a, b maze.CellPosition) {
	g.closed[[2]maze.CellPosition{a, b}] = true
	g.closed[[2]maze.CellPosition{b, a}] = true
}

func (g *openGrid) IsValid(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

func (g *openGrid) CanMove(p maze.CellPosition, d maze.Direction) bool {
	q := p.Step(d)
	return g.IsValid(p.X, p.Y) && g.IsValid(q.X, q.Y) && !g.closed[[2]maze.CellPosition{p, q}]
}

func assertConnected(t *testing.T, g Graph, path []maze.CellPosition) {
	t.Helper()
	for i, p := range path {
		assert.True(t, g.IsValid(p.X, p.Y), "cell %v out of bounds", p)
		if i == 0 {
			continue
		}
		d, ok := path[i-1].DirectionTo(p)
		require.True(t, ok, "cells %v and %v are not adjacent", path[i-1], p)
		assert.True(t, g.CanMove(path[i-1], d), "edge %v -> %v is closed", path[i-1], p)
	}
}

func TestNew(t *testing.T) {
	_, err := New(nil, random.New(1), DefaultConfig())
	assert.ErrorIs(t, err, ErrInvalidConfig)

	cfg := DefaultConfig()
	cfg.StepJitter = -1
	_, err = New(newOpenGrid(3, 3), random.New(1), cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestSearch(t *testing.T) {
	t.Run("start equals goal", func(t *testing.T) {
		p, err := New(newOpenGrid(4, 4), random.New(1), DefaultConfig())
		require.NoError(t, err)

		path, err := p.Search(maze.CellPosition{X: 2, Y: 2}, maze.CellPosition{X: 2, Y: 2})
		require.NoError(t, err)
		assert.Equal(t, []maze.CellPosition{{X: 2, Y: 2}}, path)
	})

	t.Run("open grid", func(t *testing.T) {
		g := newOpenGrid(8, 8)
		p, err := New(g, random.New(2), DefaultConfig())
		require.NoError(t, err)

		start, goal := maze.CellPosition{X: 0, Y: 7}, maze.CellPosition{X: 7, Y: 0}
		path, err := p.Search(start, goal)
		require.NoError(t, err)
		assert.Equal(t, start, path[0])
		assert.Equal(t, goal, path[len(path)-1])
		assertConnected(t, g, path)
	})

	t.Run("routes around a wall", func(t *testing.T) {
		g := newOpenGrid(5, 5)
		for x := 0; x < 4; x++ {
			g.close(maze.CellPosition{X: x, Y: 2}, maze.CellPosition{X: x, Y: 1})
		}
		p, err := New(g, random.New(3), DefaultConfig())
		require.NoError(t, err)

		path, err := p.Search(maze.CellPosition{X: 0, Y: 4}, maze.CellPosition{X: 0, Y: 0})
		require.NoError(t, err)
		assertConnected(t, g, path)
		assert.Contains(t, path, maze.CellPosition{X: 4, Y: 2})
	})

	t.Run("enclosed goal", func(t *testing.T) {
		g := newOpenGrid(5, 5)
		goal := maze.CellPosition{X: 2, Y: 2}
		for _, d := range maze.Directions {
			g.close(goal, goal.Step(d))
		}
		p, err := New(g, random.New(4), DefaultConfig())
		require.NoError(t, err)

		_, err = p.Search(maze.CellPosition{X: 0, Y: 0}, goal)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("out of bounds", func(t *testing.T) {
		p, err := New(newOpenGrid(3, 3), random.New(5), DefaultConfig())
		require.NoError(t, err)

		_, err = p.Search(maze.CellPosition{X: -1, Y: 0}, maze.CellPosition{X: 1, Y: 1})
		assert.ErrorIs(t, err, maze.ErrOutOfBounds)
		_, err = p.Search(maze.CellPosition{X: 0, Y: 0}, maze.CellPosition{X: 3, Y: 1})
		assert.ErrorIs(t, err, maze.ErrOutOfBounds)
	})

	t.Run("expansion limit", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.MaxExpansions = 2
		p, err := New(newOpenGrid(10, 10), random.New(6), cfg)
		require.NoError(t, err)

		_, err = p.Search(maze.CellPosition{X: 0, Y: 9}, maze.CellPosition{X: 9, Y: 0})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("routes vary between calls", func(t *testing.T) {
		p, err := New(newOpenGrid(8, 8), random.New(7), DefaultConfig())
		require.NoError(t, err)

		seen := make(map[string]bool)
		for i := 0; i < 30; i++ {
			path, err := p.Search(maze.CellPosition{X: 0, Y: 7}, maze.CellPosition{X: 7, Y: 0})
			require.NoError(t, err)
			seen[fmt.Sprint(path)] = true
		}
		assert.Greater(t, len(seen), 1)
	})
}

func TestSearchGeneratedMaze(t *testing.T) {
	for _, seed := range []int64{1, 2, 3, 4, 5} {
		t.Run(fmt.Sprintf("seed %d", seed), func(t *testing.T) {
			m, err := maze.New(maze.DefaultConfig(), random.New(seed))
			require.NoError(t, err)
			snap := m.Generate()
			if !snap.Reachable {
				t.Skip("exits not reachable for this seed")
			}

			p, err := New(m, random.New(seed), DefaultConfig())
			require.NoError(t, err)

			goal := maze.CellPosition{X: 5, Y: 0}
			path, err := p.Search(maze.CellPosition{X: 10, Y: 18}, goal)
			require.NoError(t, err)
			require.NotEmpty(t, path)
			assert.Equal(t, goal, path[len(path)-1])
			assertConnected(t, m, path)
		})
	}
}
