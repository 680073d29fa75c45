package sessionapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/beka-birhanu/decision-maze/api"
	api_i "github.com/beka-birhanu/decision-maze/api/i"
	"github.com/beka-birhanu/decision-maze/api/identity"
	"github.com/beka-birhanu/decision-maze/game"
	"github.com/beka-birhanu/decision-maze/infrastruture/token"
	"github.com/beka-birhanu/decision-maze/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const apiKey = "test-key"

type nopLogger struct{}

func (nopLogger) Debug(string) {}
func (nopLogger) Info(string)  {}
func (nopLogger) Warn(string)  {}
func (nopLogger) Error(string) {}

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sm, err := service.NewSessionManager(&service.Config{
		Game:        game.DefaultConfig(),
		Seed:        11,
		MaxSessions: 2,
		Logger:      nopLogger{},
	})
	require.NoError(t, err)
	t.Cleanup(sm.StopAll)

	c, err := NewSessionController(sm, token.NewJwtService("test-secret", "decision-maze", time.Minute))
	require.NoError(t, err)

	return api.NewRouter(api.Config{
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{c},
		AuthorizationMiddleware: identity.Authoriz(apiKey),
	}).Handler()
}

func do(t *testing.T, h http.Handler, method, path, sessionToken string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(identity.APIKeyHeader, apiKey)
	if sessionToken != "" {
		req.Header.Set(identity.SessionTokenHeader, sessionToken)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func createSession(t *testing.T, h http.Handler) SessionResponse {
	t.Helper()
	w := do(t, h, http.MethodPost, "/api/v1/sessions", "", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp
}

func TestNewSessionController(t *testing.T) {
	_, err := NewSessionController(nil, nil)
	assert.Error(t, err)
}

func TestCreateSession(t *testing.T) {
	h := newTestServer(t)

	t.Run("requires key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("created", func(t *testing.T) {
		assert.NotEqual(t, uuid.Nil, createSession(t, h).ID)
	})

	t.Run("limit reached", func(t *testing.T) {
		createSession(t, h)
		w := do(t, h, http.MethodPost, "/api/v1/sessions", "", nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestRounds(t *testing.T) {
	h := newTestServer(t)
	sess := createSession(t, h)
	id := sess.ID
	base := "/api/v1/sessions/" + id.String()

	t.Run("state before round", func(t *testing.T) {
		w := do(t, h, http.MethodGet, base, "", nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("missing option", func(t *testing.T) {
		w := do(t, h, http.MethodPost, base+"/rounds", sess.Token, gin.H{"option_a": "Tea"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("needs session token", func(t *testing.T) {
		w := do(t, h, http.MethodPost, base+"/rounds", "", RoundRequest{OptionA: "Tea", OptionB: "Coffee"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		other := createSession(t, h)
		w = do(t, h, http.MethodPost, base+"/rounds", other.Token, RoundRequest{OptionA: "Tea", OptionB: "Coffee"})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("start round", func(t *testing.T) {
		w := do(t, h, http.MethodPost, base+"/rounds", sess.Token, RoundRequest{OptionA: "Tea", OptionB: "Coffee"})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var resp RoundResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, id, resp.SessionID)
		assert.NotEqual(t, uuid.Nil, resp.RoundID)

		require.Eventually(t, func() bool {
			w := do(t, h, http.MethodGet, base, "", nil)
			if w.Code != http.StatusOK {
				return false
			}
			var s game.State
			return json.Unmarshal(w.Body.Bytes(), &s) == nil && s.RoundID == resp.RoundID && s.Elapsed > 0
		}, 2*time.Second, 10*time.Millisecond)
	})

	t.Run("maze", func(t *testing.T) {
		w := do(t, h, http.MethodGet, base+"/maze", "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp MazeResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 20, resp.Maze.Width)
		assert.Equal(t, "Tea", resp.Maze.Exits[0].Label)
		assert.Equal(t, "Coffee", resp.Maze.Exits[1].Label)
		assert.NotEmpty(t, resp.Maze.Segments)
		assert.NotEmpty(t, resp.ASCII)
	})

	t.Run("segments", func(t *testing.T) {
		w := do(t, h, http.MethodGet, base+"/maze/segments?min_x=-3&min_z=-3&max_x=3&max_z=3", "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp SegmentsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, resp.Count, len(resp.Segments))
		assert.Positive(t, resp.Count)
	})

	t.Run("segments bad query", func(t *testing.T) {
		w := do(t, h, http.MethodGet, base+"/maze/segments?min_x=-3&min_z=-3&max_x=3", "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = do(t, h, http.MethodGet, base+"/maze/segments?min_x=3&min_z=-3&max_x=-3&max_z=3", "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUnknownSession(t *testing.T) {
	h := newTestServer(t)

	w := do(t, h, http.MethodGet, "/api/v1/sessions/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodGet, "/api/v1/sessions/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCloseSession(t *testing.T) {
	h := newTestServer(t)
	sess := createSession(t, h)
	path := "/api/v1/sessions/" + sess.ID.String()

	w := do(t, h, http.MethodDelete, path, sess.Token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, h, http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// The token still names the session, which no longer exists.
	w = do(t, h, http.MethodDelete, path, sess.Token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
