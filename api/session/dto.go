// Package sessionapi exposes maze sessions over HTTP.
package sessionapi

import (
	"github.com/beka-birhanu/decision-maze/geometry"
	"github.com/beka-birhanu/decision-maze/maze"
	"github.com/google/uuid"
)

// RoundRequest starts a round with the two options as exit labels.
type RoundRequest struct {
	OptionA string `json:"option_a" binding:"required"`
	OptionB string `json:"option_b" binding:"required"`
}

// SegmentsQuery is the world-space region of a segment query.
type SegmentsQuery struct {
	MinX *float64 `form:"min_x" binding:"required"`
	MinZ *float64 `form:"min_z" binding:"required"`
	MaxX *float64 `form:"max_x" binding:"required"`
	MaxZ *float64 `form:"max_z" binding:"required"`
}

// SessionResponse identifies a newly created session. Token must be sent in
// the X-Session-Token header to start rounds or close the session.
type SessionResponse struct {
	ID    uuid.UUID `json:"id"`
	Token string    `json:"token"`
}

// RoundResponse identifies a newly started round.
type RoundResponse struct {
	SessionID uuid.UUID `json:"session_id"`
	RoundID   uuid.UUID `json:"round_id"`
}

// MazeResponse carries everything needed to render a maze.
type MazeResponse struct {
	Maze  maze.Snapshot `json:"maze"`
	ASCII string        `json:"ascii"`
}

// SegmentsResponse lists the wall segments inside a queried region.
type SegmentsResponse struct {
	Count    int                    `json:"count"`
	Segments []geometry.WallSegment `json:"segments"`
}
