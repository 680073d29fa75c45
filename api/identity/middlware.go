// Package identity guards the routes that create or change sessions.
package identity

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/beka-birhanu/decision-maze/service/i"
	"github.com/gin-gonic/gin"
)

const (
	// APIKeyHeader carries the key when no Authorization header is sent.
	APIKeyHeader = "X-API-Key"
)

// Authoriz accepts requests that present key either as a bearer token or in
// the X-API-Key header.
func Authoriz(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(APIKeyHeader)

		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			// Split the "Bearer" prefix from the token.
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				c.Status(http.StatusUnauthorized) // Malformed Authorization header.
				c.Abort()
				return
			}
			token = parts[1]
		}

		if token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(key)) != 1 {
			c.Status(http.StatusUnauthorized)
			c.Abort()
			return
		}

		c.Next()
	}
}

const (
	// SessionTokenHeader carries the token returned when a session is created.
	SessionTokenHeader = "X-Session-Token"

	// ContextSessionID is the key used to store the token's session in the Gin context.
	ContextSessionID = "sessionID"
)

// SessionOwner accepts requests whose session token is bound to the session
// named by the ID path parameter.
func SessionOwner(ts i.Tokenizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(SessionTokenHeader)
		if token == "" {
			c.Status(http.StatusUnauthorized) // No token found in the header.
			c.Abort()
			return
		}

		sessionID, err := ts.Decode(token)
		if err != nil {
			c.Status(http.StatusUnauthorized)
			c.Abort()
			return
		}

		if sessionID.String() != strings.ToLower(c.Param("ID")) {
			c.Status(http.StatusForbidden)
			c.Abort()
			return
		}

		c.Set(ContextSessionID, sessionID)
		c.Next()
	}
}
