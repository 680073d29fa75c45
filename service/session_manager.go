// Package service runs maze sessions, each on its own host loop.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/beka-birhanu/decision-maze/game"
	"github.com/beka-birhanu/decision-maze/geometry"
	"github.com/beka-birhanu/decision-maze/maze"
	"github.com/beka-birhanu/decision-maze/random"
	"github.com/beka-birhanu/decision-maze/service/i"
	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

var (
	ErrSessionNotFound = errors.New("service: session not found")
	ErrTooManySessions = errors.New("service: too many sessions")
)

type session struct {
	game   *game.Game
	cancel context.CancelFunc
	done   chan struct{} // Closed when the host loop returns.
}

// SessionManager keeps every running session and its host loop.
type SessionManager struct {
	sessions    map[uuid.UUID]*session
	gameConfig  game.Config
	seed        int64
	streams     uint64 // Sessions created so far; picks each session's random stream.
	maxSessions int
	logger      i.Logger
	sync.RWMutex
}

// Config holds the settings for a SessionManager.
type Config struct {
	Game        game.Config
	Seed        int64 // Zero seeds every session from the clock.
	MaxSessions int   // Zero means unlimited.
	Logger      i.Logger
}

func NewSessionManager(c *Config) (*SessionManager, error) {
	if c.Logger == nil {
		return nil, errors.New("service: logger is required")
	}

	return &SessionManager{
		sessions:    make(map[uuid.UUID]*session),
		gameConfig:  c.Game,
		seed:        c.Seed,
		maxSessions: c.MaxSessions,
		logger:      c.Logger,
	}, nil
}

func (s *SessionManager) NewSession() (uuid.UUID, error) {
	s.Lock()
	defer s.Unlock()

	if s.maxSessions > 0 && len(s.sessions) >= s.maxSessions {
		s.logger.Warn(fmt.Sprintf("rejected session, %d running", len(s.sessions)))
		return uuid.Nil, ErrTooManySessions
	}

	g, err := game.New(s.gameConfig, s.source(), s.logger)
	if err != nil {
		s.logger.Error(fmt.Sprintf("creating game for a new session: %s", err))
		return uuid.Nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	sess := &session{game: g, cancel: cancel, done: make(chan struct{})}
	id := s.saveSession(sess)

	go s.run(ctx, id, sess)
	go s.listenResults(ctx, id, g)
	s.logger.Info(fmt.Sprintf("started session %s", id))
	return id, nil
}

func (s *SessionManager) StartRound(id uuid.UUID, optionA, optionB string) (uuid.UUID, error) {
	g, err := s.game(id)
	if err != nil {
		return uuid.Nil, err
	}
	return g.StartRound(optionA, optionB)
}

func (s *SessionManager) State(id uuid.UUID) (game.State, error) {
	g, err := s.game(id)
	if err != nil {
		return game.State{}, err
	}
	return g.State()
}

func (s *SessionManager) Maze(id uuid.UUID) (maze.Snapshot, string, error) {
	g, err := s.game(id)
	if err != nil {
		return maze.Snapshot{}, "", err
	}
	return g.Maze()
}

func (s *SessionManager) Segments(id uuid.UUID, b orb.Bound) ([]geometry.WallSegment, error) {
	g, err := s.game(id)
	if err != nil {
		return nil, err
	}
	return g.SegmentsIn(b)
}

// Close stops the session's host loop and waits for it to return.
func (s *SessionManager) Close(id uuid.UUID) error {
	s.Lock()
	sess, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	s.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	sess.cancel()
	<-sess.done
	s.logger.Info(fmt.Sprintf("closed session %s", id))
	return nil
}

// Len returns the number of running sessions.
func (s *SessionManager) Len() int {
	s.RLock()
	defer s.RUnlock()
	return len(s.sessions)
}

// StopAll stops every session and waits for their loops.
func (s *SessionManager) StopAll() {
	s.Lock()
	sessions := s.sessions
	s.sessions = make(map[uuid.UUID]*session)
	s.Unlock()

	for _, sess := range sessions {
		sess.cancel()
	}
	for _, sess := range sessions {
		<-sess.done
	}
	s.logger.Info(fmt.Sprintf("stopped %d sessions", len(sessions)))
}

func (s *SessionManager) game(id uuid.UUID) (*game.Game, error) {
	s.RLock()
	defer s.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess.game, nil
}

// source must be called with the lock held.
func (s *SessionManager) source() random.Source {
	s.streams++
	if s.seed == 0 {
		return random.New(0)
	}
	return random.Derive(s.seed, s.streams)
}

// saveSession must be called with the lock held.
func (s *SessionManager) saveSession(sess *session) uuid.UUID {
	id := uuid.New()
	for {
		if _, ok := s.sessions[id]; !ok {
			break
		}
		id = uuid.New()
	}
	s.sessions[id] = sess
	return id
}

func (s *SessionManager) run(ctx context.Context, id uuid.UUID, sess *session) {
	defer close(sess.done)
	if err := sess.game.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Error(fmt.Sprintf("session %s loop: %s", id, err))
	}
}

func (s *SessionManager) listenResults(ctx context.Context, id uuid.UUID, g *game.Game) {
	for {
		select {
		case <-ctx.Done():
			return
		case r := <-g.Results():
			s.logger.Info(fmt.Sprintf("session %s round %s decided %q after %.1fs", id, r.RoundID, r.Label, r.Elapsed))
		}
	}
}
