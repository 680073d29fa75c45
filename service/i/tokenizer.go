package i

import "github.com/google/uuid"

// Tokenizer issues and checks session control tokens.
type Tokenizer interface {
	// Generate creates a token bound to a session.
	Generate(sessionID uuid.UUID) (string, error)

	// Decode validates a token and returns the session it is bound to.
	Decode(token string) (uuid.UUID, error)
}
