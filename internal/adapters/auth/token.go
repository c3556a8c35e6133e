package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"invitationgallery/internal/domain"
)

const sessionTokenIssuer = "invitation-gallery"

type jwtSessionSigner struct {
	secret []byte
}

// NewJWTSessionSigner returns a SessionTokenSigner that wraps the opaque session id
// in an HS256 JWT so a tampered or foreign cookie is rejected before any store lookup.
// The JWT carries no admin data; the server-side session stays authoritative.
func NewJWTSessionSigner(secret string) domain.SessionTokenSigner {
	return &jwtSessionSigner{secret: []byte(secret)}
}

func (s *jwtSessionSigner) Sign(sessionID string, expiresAt time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:        sessionID,
		Issuer:    sessionTokenIssuer,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

func (s *jwtSessionSigner) Parse(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionTokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	if claims.ID == "" {
		return "", fmt.Errorf("%w: %v", domain.ErrUnauthorized, errors.New("token has no session id"))
	}
	return claims.ID, nil
}
