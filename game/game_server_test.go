package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/beka-birhanu/decision-maze/maze"
	"github.com/beka-birhanu/decision-maze/random"
	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	infos []string
	warns []string
}

func (l *recordingLogger) Debug(string)    {}
func (l *recordingLogger) Info(msg string) { l.infos = append(l.infos, msg) }
func (l *recordingLogger) Warn(msg string) { l.warns = append(l.warns, msg) }

func newTestGame(t *testing.T, seed int64) (*Game, *recordingLogger) {
	t.Helper()
	l := &recordingLogger{}
	g, err := New(DefaultConfig(), random.New(seed), l)
	require.NoError(t, err)
	return g, l
}

func TestNew(t *testing.T) {
	t.Run("default config", func(t *testing.T) {
		g, err := New(DefaultConfig(), random.New(1), nil)
		require.NoError(t, err)
		assert.NotNil(t, g.Results())
	})

	t.Run("invalid maze", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Maze.Width = 3
		_, err := New(cfg, random.New(1), nil)
		assert.ErrorIs(t, err, maze.ErrInvalidDimensions)
	})

	t.Run("invalid tick rate", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.TickRate = 0
		_, err := New(cfg, random.New(1), nil)
		assert.ErrorIs(t, err, ErrInvalidTickRate)
	})
}

func TestNoRound(t *testing.T) {
	g, _ := newTestGame(t, 2)

	assert.ErrorIs(t, g.Step(0.1), ErrNoRound)

	_, err := g.State()
	assert.ErrorIs(t, err, ErrNoRound)

	_, _, err = g.Maze()
	assert.ErrorIs(t, err, ErrNoRound)

	_, err = g.SegmentsIn(orb.Bound{Min: orb.Point{-5, -5}, Max: orb.Point{5, 5}})
	assert.ErrorIs(t, err, ErrNoRound)
}

func TestStartRound(t *testing.T) {
	t.Run("empty label", func(t *testing.T) {
		g, _ := newTestGame(t, 3)
		_, err := g.StartRound("", "Coffee")
		assert.ErrorIs(t, err, maze.ErrEmptyLabel)
	})

	t.Run("labels and spawn", func(t *testing.T) {
		g, l := newTestGame(t, 4)
		g.MarkReady()

		id, err := g.StartRound("Tea", "Coffee")
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)
		assert.NotEmpty(t, l.infos)

		s, err := g.State()
		require.NoError(t, err)
		assert.Equal(t, id, s.RoundID)
		assert.Equal(t, [2]string{"Tea", "Coffee"}, s.Options)
		assert.True(t, s.Agent.Ready)
		assert.NotEmpty(t, s.Agent.Waypoints)
		assert.Nil(t, s.Result)

		snap, ascii, err := g.Maze()
		require.NoError(t, err)
		assert.Equal(t, "Tea", snap.Exits[maze.LeftExit].Label)
		assert.Equal(t, "Coffee", snap.Exits[maze.RightExit].Label)
		assert.NotEmpty(t, snap.Segments)
		assert.Contains(t, ascii, " E ")
	})

	t.Run("each round gets a new id", func(t *testing.T) {
		g, _ := newTestGame(t, 5)
		first, err := g.StartRound("A", "B")
		require.NoError(t, err)
		second, err := g.StartRound("C", "D")
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})
}

func TestSegmentsIn(t *testing.T) {
	g, _ := newTestGame(t, 6)
	_, err := g.StartRound("A", "B")
	require.NoError(t, err)

	snap, _, err := g.Maze()
	require.NoError(t, err)

	all, err := g.SegmentsIn(orb.Bound{Min: orb.Point{-100, -100}, Max: orb.Point{100, 100}})
	require.NoError(t, err)
	assert.Len(t, all, len(snap.Segments))

	none, err := g.SegmentsIn(orb.Bound{Min: orb.Point{500, 500}, Max: orb.Point{501, 501}})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRound(t *testing.T) {
	g, _ := newTestGame(t, 7)
	g.MarkReady()

	id, err := g.StartRound("Tea", "Coffee")
	require.NoError(t, err)

	snap, _, err := g.Maze()
	require.NoError(t, err)
	if !snap.Reachable {
		t.Skip("generated maze has an unreachable exit")
	}

	dt := 1.0 / float64(DefaultConfig().TickRate)
	var result Result
	decided := false
	for i := 0; i < 600*DefaultConfig().TickRate && !decided; i++ {
		require.NoError(t, g.Step(dt))
		select {
		case result = <-g.Results():
			decided = true
		default:
		}
	}

	require.True(t, decided, "agent never reached an exit")
	assert.Equal(t, id, result.RoundID)
	assert.Contains(t, []string{"Tea", "Coffee"}, result.Label)
	assert.Contains(t, []string{"left", "right"}, result.Side)
	assert.Positive(t, result.Elapsed)

	s, err := g.State()
	require.NoError(t, err)
	require.NotNil(t, s.Result)
	assert.Equal(t, result, *s.Result)

	for i := 0; i < 5*DefaultConfig().TickRate; i++ {
		require.NoError(t, g.Step(dt))
	}
	select {
	case r := <-g.Results():
		t.Fatalf("second result emitted: %+v", r)
	default:
	}
}

func TestRun(t *testing.T) {
	t.Run("stops on cancel", func(t *testing.T) {
		g, _ := newTestGame(t, 8)
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- g.Run(ctx) }()

		cancel()
		select {
		case err := <-done:
			assert.True(t, errors.Is(err, context.Canceled))
		case <-time.After(2 * time.Second):
			t.Fatal("Run did not return")
		}
	})

	t.Run("stops on Stop", func(t *testing.T) {
		g, _ := newTestGame(t, 9)
		_, err := g.StartRound("A", "B")
		require.NoError(t, err)

		done := make(chan error, 1)
		go func() { done <- g.Run(context.Background()) }()

		require.Eventually(t, func() bool {
			s, err := g.State()
			return err == nil && s.Agent.Ready && s.Elapsed > 0
		}, 2*time.Second, 10*time.Millisecond)

		g.Stop()
		g.Stop()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Fatal("Run did not return")
		}
	})
}
