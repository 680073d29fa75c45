package i

import (
	"github.com/beka-birhanu/decision-maze/game"
	"github.com/beka-birhanu/decision-maze/geometry"
	"github.com/beka-birhanu/decision-maze/maze"
	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// SessionManager owns running maze sessions keyed by ID.
type SessionManager interface {
	// NewSession creates a session and starts its host loop.
	NewSession() (uuid.UUID, error)

	// StartRound generates a new maze with the two options as exit labels.
	// It returns the round ID.
	StartRound(id uuid.UUID, optionA, optionB string) (uuid.UUID, error)

	// State returns the round and agent status of a session.
	State(id uuid.UUID) (game.State, error)

	// Maze returns the current maze and its ASCII rendering.
	Maze(id uuid.UUID) (maze.Snapshot, string, error)

	// Segments returns the wall segments of a session's maze that intersect b.
	Segments(id uuid.UUID, b orb.Bound) ([]geometry.WallSegment, error)

	// Close stops a session and forgets it.
	Close(id uuid.UUID) error
}
