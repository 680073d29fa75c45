package sessionapi

import (
	"errors"
	"net/http"

	"github.com/beka-birhanu/decision-maze/api/identity"
	"github.com/beka-birhanu/decision-maze/game"
	"github.com/beka-birhanu/decision-maze/maze"
	"github.com/beka-birhanu/decision-maze/service"
	"github.com/beka-birhanu/decision-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// SessionController manages maze sessions and their rounds.
type SessionController struct {
	sessionManager i.SessionManager
	tokenizer      i.Tokenizer
}

// NewSessionController initializes a SessionController.
func NewSessionController(sm i.SessionManager, ts i.Tokenizer) (*SessionController, error) {
	if sm == nil || ts == nil {
		return nil, errors.New("session manager and tokenizer are required")
	}
	return &SessionController{sessionManager: sm, tokenizer: ts}, nil
}

// RegisterPublic registers the read-only routes.
func (sc *SessionController) RegisterPublic(route *gin.RouterGroup) {
	sessions := route.Group("/sessions")
	{
		sessions.GET("/:ID", sc.state)
		sessions.GET("/:ID/maze", sc.maze)
		sessions.GET("/:ID/maze/segments", sc.segments)
	}
}

// RegisterProtected registers the routes that create or change sessions.
// Changing a session also needs the token returned when it was created.
func (sc *SessionController) RegisterProtected(route *gin.RouterGroup) {
	owner := identity.SessionOwner(sc.tokenizer)
	sessions := route.Group("/sessions")
	{
		sessions.POST("", sc.create)
		sessions.POST("/:ID/rounds", owner, sc.startRound)
		sessions.DELETE("/:ID", owner, sc.close)
	}
}

// create starts a new session and hands out its control token.
func (sc *SessionController) create(ctx *gin.Context) {
	id, err := sc.sessionManager.NewSession()
	if err != nil {
		respondError(ctx, err)
		return
	}

	token, err := sc.tokenizer.Generate(id)
	if err != nil {
		_ = sc.sessionManager.Close(id)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while issuing session token"})
		return
	}
	ctx.JSON(http.StatusCreated, SessionResponse{ID: id, Token: token})
}

// startRound generates a new maze labelled with the requested options.
func (sc *SessionController) startRound(ctx *gin.Context) {
	ID, ok := sessionID(ctx)
	if !ok {
		return
	}

	var request RoundRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	roundID, err := sc.sessionManager.StartRound(ID, request.OptionA, request.OptionB)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, RoundResponse{SessionID: ID, RoundID: roundID})
}

// state returns the agent pose and the round result, if any.
func (sc *SessionController) state(ctx *gin.Context) {
	ID, ok := sessionID(ctx)
	if !ok {
		return
	}

	s, err := sc.sessionManager.State(ID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, s)
}

func (sc *SessionController) maze(ctx *gin.Context) {
	ID, ok := sessionID(ctx)
	if !ok {
		return
	}

	snapshot, ascii, err := sc.sessionManager.Maze(ID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, MazeResponse{Maze: snapshot, ASCII: ascii})
}

// segments answers a region query against the wall index.
func (sc *SessionController) segments(ctx *gin.Context) {
	ID, ok := sessionID(ctx)
	if !ok {
		return
	}

	var query SegmentsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if *query.MinX > *query.MaxX || *query.MinZ > *query.MaxZ {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "min must not exceed max"})
		return
	}

	bound := orb.Bound{
		Min: orb.Point{*query.MinX, *query.MinZ},
		Max: orb.Point{*query.MaxX, *query.MaxZ},
	}
	segs, err := sc.sessionManager.Segments(ID, bound)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, SegmentsResponse{Count: len(segs), Segments: segs})
}

func (sc *SessionController) close(ctx *gin.Context) {
	ID, ok := sessionID(ctx)
	if !ok {
		return
	}

	if err := sc.sessionManager.Close(ID); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func sessionID(ctx *gin.Context) (uuid.UUID, bool) {
	ID, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return uuid.Nil, false
	}
	return ID, true
}

func respondError(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, game.ErrNoRound):
		status = http.StatusConflict
	case errors.Is(err, maze.ErrEmptyLabel):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrTooManySessions):
		status = http.StatusServiceUnavailable
	}
	ctx.JSON(status, gin.H{"error": err.Error()})
}
