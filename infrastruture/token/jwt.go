package token

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken   = errors.New("token: invalid token")
	ErrMissingSession = errors.New("token: session claim missing")
)

const sessionClaim = "sid"

// JwtService issues and checks the tokens that grant control of a session.
// Implements i.Tokenizer.
type JwtService struct {
	secretKey []byte
	issuer    string
	ttl       time.Duration
}

// NewJwtService creates a JwtService signing with secretKey. Tokens expire
// ttl after they are issued.
func NewJwtService(secretKey, issuer string, ttl time.Duration) *JwtService {
	return &JwtService{
		secretKey: []byte(secretKey),
		issuer:    issuer,
		ttl:       ttl,
	}
}

// Generate creates a token bound to sessionID.
func (s *JwtService) Generate(sessionID uuid.UUID) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		sessionClaim: sessionID.String(),
		"iss":        s.issuer,
		"iat":        now.Unix(),
		"exp":        now.Add(s.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// Decode validates a token and returns the session it is bound to.
func (s *JwtService) Decode(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, s.getSigningKey)
	if err != nil {
		return uuid.Nil, errors.Join(ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid || !claims.VerifyIssuer(s.issuer, true) {
		return uuid.Nil, ErrInvalidToken
	}

	raw, ok := claims[sessionClaim].(string)
	if !ok {
		return uuid.Nil, ErrMissingSession
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.Join(ErrMissingSession, err)
	}
	return id, nil
}

// getSigningKey returns the signing key for token validation.
func (s *JwtService) getSigningKey(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.New("unexpected signing method")
	}
	return s.secretKey, nil
}
