package maze

import (
	"strings"
	"testing"

	"github.com/beka-birhanu/decision-maze/geometry"
	"github.com/beka-birhanu/decision-maze/random"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMaze(t *testing.T, seed int64) *Maze {
	t.Helper()
	m, err := New(DefaultConfig(), random.New(seed))
	require.NoError(t, err)
	return m
}

func assertWallSymmetry(t *testing.T, m *Maze) {
	t.Helper()
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			c, err := m.CellAt(x, y)
			require.NoError(t, err)
			if x < m.Width()-1 {
				r, _ := m.CellAt(x+1, y)
				assert.Equal(t, c.Walls[Right], r.Walls[Left], "edge (%d,%d)-(%d,%d)", x, y, x+1, y)
			}
			if y < m.Height()-1 {
				d, _ := m.CellAt(x, y+1)
				assert.Equal(t, c.Walls[Down], d.Walls[Up], "edge (%d,%d)-(%d,%d)", x, y, x, y+1)
			}
		}
	}
}

func assertExitsOpen(t *testing.T, m *Maze) {
	t.Helper()
	for _, e := range m.Exits() {
		c, err := m.CellAt(e.Cell.X, e.Cell.Y)
		require.NoError(t, err)
		assert.Equal(t, [4]bool{}, c.Walls, "exit %s", e.Side)

		below, err := m.CellAt(e.Cell.X, 1)
		require.NoError(t, err)
		assert.False(t, below.Walls[Up], "row-1 neighbor of exit %s", e.Side)
	}
}

func TestNew(t *testing.T) {
	t.Run("rejects small dimensions", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Width = 4
		_, err := New(cfg, random.New(1))
		assert.ErrorIs(t, err, ErrInvalidDimensions)
	})

	t.Run("rejects non-positive cell size", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.CellSize = 0
		_, err := New(cfg, random.New(1))
		assert.ErrorIs(t, err, ErrInvalidCellSize)
	})

	t.Run("rejects bad probabilities", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Bias.Backtrack = 1.5
		_, err := New(cfg, random.New(1))
		assert.ErrorIs(t, err, ErrInvalidProbability)
	})

	t.Run("starts fully walled", func(t *testing.T) {
		m := newTestMaze(t, 1)
		for y := 0; y < m.Height(); y++ {
			for x := 0; x < m.Width(); x++ {
				c, err := m.CellAt(x, y)
				require.NoError(t, err)
				assert.Equal(t, 4, c.WallCount())
				assert.False(t, c.Visited)
			}
		}
	})
}

func TestCellAt(t *testing.T) {
	m := newTestMaze(t, 1)

	tests := []struct {
		name string
		x, y int
		ok   bool
	}{
		{name: "origin", x: 0, y: 0, ok: true},
		{name: "far corner", x: 19, y: 19, ok: true},
		{name: "negative x", x: -1, y: 0},
		{name: "past width", x: 20, y: 0},
		{name: "past height", x: 0, y: 20},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := m.CellAt(tc.x, tc.y)
			assert.Equal(t, tc.ok, m.IsValid(tc.x, tc.y))
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrOutOfBounds)
			}
		})
	}
}

func TestGenerate(t *testing.T) {
	t.Run("wall symmetry and exit openness", func(t *testing.T) {
		for _, seed := range []int64{1, 2, 3, 42, 1234} {
			m := newTestMaze(t, seed)
			m.Generate()
			assertWallSymmetry(t, m)
			assertExitsOpen(t, m)
		}
	})

	t.Run("regeneration stays consistent", func(t *testing.T) {
		m := newTestMaze(t, 7)
		first := m.Generate()
		assertWallSymmetry(t, m)
		assertExitsOpen(t, m)

		second := m.Generate()
		assertWallSymmetry(t, m)
		assertExitsOpen(t, m)
		assert.Len(t, second.Cells, len(first.Cells))
	})

	t.Run("exit cells for a 20x20 grid", func(t *testing.T) {
		m := newTestMaze(t, 5)
		m.Generate()
		require.NoError(t, m.AddExits("A", "B"))

		exits := m.Exits()
		assert.Equal(t, CellPosition{X: 5, Y: 0}, exits[LeftExit].Cell)
		assert.Equal(t, CellPosition{X: 15, Y: 0}, exits[RightExit].Cell)
		assert.Equal(t, "A", exits[LeftExit].Label)
		assert.Equal(t, "B", exits[RightExit].Label)
		assertExitsOpen(t, m)
	})

	t.Run("start pocket is open", func(t *testing.T) {
		m := newTestMaze(t, 11)
		m.Generate()
		entry := m.Width() / 2
		for x := entry - 1; x <= entry+1; x++ {
			for y := m.Height() - 3; y < m.Height(); y++ {
				c, err := m.CellAt(x, y)
				require.NoError(t, err)
				assert.True(t, c.IsPath)
				if x < entry+1 {
					assert.True(t, m.CanMove(CellPosition{X: x, Y: y}, Right))
				}
				if y > m.Height()-3 {
					assert.True(t, m.CanMove(CellPosition{X: x, Y: y}, Up))
				}
			}
		}
	})

	t.Run("scratch state is cleared", func(t *testing.T) {
		m := newTestMaze(t, 3)
		snap := m.Generate()
		for _, row := range snap.Cells {
			for _, c := range row {
				assert.False(t, c.Visited)
			}
		}
	})

	t.Run("exits reachable from spawn", func(t *testing.T) {
		m := newTestMaze(t, 99)
		snap := m.Generate()
		if !snap.Reachable {
			t.Skip("no reachable build within the attempt budget for this seed")
		}
		seen := m.ReachableFrom(m.Layout().SpawnCell())
		for _, e := range snap.Exits {
			assert.True(t, seen[e.Cell])
		}
		assert.GreaterOrEqual(t, snap.Attempts, 1)
	})
}

func TestAddExits(t *testing.T) {
	t.Run("before generate", func(t *testing.T) {
		m := newTestMaze(t, 1)
		assert.ErrorIs(t, m.AddExits("A", "B"), ErrNotGenerated)
	})

	t.Run("empty label", func(t *testing.T) {
		m := newTestMaze(t, 1)
		m.Generate()
		assert.ErrorIs(t, m.AddExits("A", "  "), ErrEmptyLabel)
	})

	t.Run("exit lookup by column", func(t *testing.T) {
		m := newTestMaze(t, 1)
		m.Generate()
		require.NoError(t, m.AddExits("yes", "no"))

		e, ok := m.ExitAt(CellPosition{X: 4, Y: 1})
		require.True(t, ok)
		assert.Equal(t, "yes", e.Label)

		e, ok = m.ExitAt(CellPosition{X: 16, Y: 0})
		require.True(t, ok)
		assert.Equal(t, "no", e.Label)

		_, ok = m.ExitAt(CellPosition{X: 10, Y: 0})
		assert.False(t, ok)
	})
}

func TestCanMove(t *testing.T) {
	m := newTestMaze(t, 1)
	p := CellPosition{X: 0, Y: 0}
	assert.False(t, m.CanMove(p, Up), "off grid")
	assert.False(t, m.CanMove(p, Right), "walled")

	m.setEdge(p, Right, false)
	assert.True(t, m.CanMove(p, Right))
	assert.True(t, m.CanMove(CellPosition{X: 1, Y: 0}, Left))

	// One-sided openings do not count as passable.
	m.grid[0][1].Walls[Left] = true
	assert.False(t, m.CanMove(p, Right))
}

func TestRepairWalls(t *testing.T) {
	m := newTestMaze(t, 1)
	m.grid[2][2].Walls[Right] = false
	m.grid[3][3].Walls[Up] = false

	assert.Equal(t, 2, m.repairWalls())
	assert.True(t, m.grid[2][2].Walls[Right])
	assert.True(t, m.grid[3][3].Walls[Up])
	assert.Equal(t, 0, m.repairWalls())
}

func TestPromote(t *testing.T) {
	dirs := []Direction{Up, Right, Left, Down}
	assert.Equal(t, []Direction{Left, Up, Right, Down}, promote(dirs, Left, 0))
	assert.Equal(t, []Direction{Up, Left, Right, Down}, promote(dirs, Left, 1))
	assert.Equal(t, []Direction{Up, Right, Left, Down}, dirs)
}

func TestLayout(t *testing.T) {
	l := Layout{Width: 20, Height: 20, CellSize: 2.4}

	t.Run("half extents", func(t *testing.T) {
		hw, hh := l.HalfExtents()
		assert.InDelta(t, 21.6, hw, 1e-9)
		assert.InDelta(t, 21.6, hh, 1e-9)
	})

	t.Run("cell center round trip", func(t *testing.T) {
		for _, p := range []CellPosition{{0, 0}, {5, 0}, {10, 18}, {19, 19}} {
			assert.Equal(t, p, l.CellOf(l.CellCenter(p)))
		}
	})

	t.Run("exit columns", func(t *testing.T) {
		left, right := l.ExitColumns()
		assert.Equal(t, 5, left)
		assert.Equal(t, 15, right)
		assert.InDelta(t, -10.8, l.CellCenter(CellPosition{X: 5, Y: 0}).X, 1e-9)
	})

	t.Run("start position sits outside the entry", func(t *testing.T) {
		start := l.StartPosition()
		assert.Equal(t, 0.0, start.X)
		assert.InDelta(t, 24.0, start.Z, 1e-9)
	})

	t.Run("local offset", func(t *testing.T) {
		p := CellPosition{X: 3, Y: 4}
		lx, lz := l.Local(l.CellCenter(p), p)
		assert.InDelta(t, 0.5, lx, 1e-9)
		assert.InDelta(t, 0.5, lz, 1e-9)
	})
}

func TestSegments(t *testing.T) {
	m := newTestMaze(t, 21)
	snap := m.Generate()
	require.NotEmpty(t, snap.Segments)

	hw, hh := m.Layout().HalfExtents()
	outer := orb.Bound{Min: orb.Point{-hw, -hh}, Max: orb.Point{hw, hh}}.Pad(0.2)
	for _, s := range snap.Segments {
		assert.True(t, outer.Contains(s.Center.Point()), "segment %+v", s)
		assert.Greater(t, s.Length, 0.0)
		assert.Equal(t, 2.0, s.Height)
	}

	t.Run("perimeter walls first", func(t *testing.T) {
		assert.Equal(t, geometry.AlongZ, snap.Segments[0].Orientation)
		assert.InDelta(t, -hw, snap.Segments[0].Center.X, 1e-9)
		assert.InDelta(t, hw, snap.Segments[1].Center.X, 1e-9)
	})

	t.Run("entry gap stays open", func(t *testing.T) {
		gap := orb.Bound{Min: orb.Point{-1, hh - 0.05}, Max: orb.Point{1, hh + 0.05}}
		for _, s := range m.SegmentsIn(gap) {
			assert.NotEqual(t, geometry.AlongX, s.Orientation, "horizontal wall across the entry: %+v", s)
		}
	})

	t.Run("region query matches full scan", func(t *testing.T) {
		region := orb.Bound{Min: orb.Point{-5, -5}, Max: orb.Point{5, 5}}
		want := 0
		for _, s := range snap.Segments {
			if s.Bound().Intersects(region) {
				want++
			}
		}
		assert.Len(t, m.SegmentsIn(region), want)
	})
}

func TestString(t *testing.T) {
	m := newTestMaze(t, 8)
	m.Generate()
	out := m.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 2*m.Height()+1)
	assert.Equal(t, 2, strings.Count(out, " E "))
}
