// Package auth issues and verifies JWT session tokens, checks credentials
// against the local users table, and guards mutation routes via gin
// middleware. Every workflow receives the authenticated identity as an
// explicit Actor value rather than reading ambient session state.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenTTL = time.Hour * 24

// Actor is the authenticated identity performing an operation.
type Actor struct {
	ID    uuid.UUID
	Email string
}

// GenerateToken signs a session token for the given actor.
func GenerateToken(actor Actor, secret string) (string, error) {
	claims := jwt.MapClaims{
		"sub":   actor.ID.String(),
		"email": actor.Email,
		"exp":   time.Now().Add(tokenTTL).Unix(),
		"iat":   time.Now().Unix(),
		"iss":   "jobboard",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyToken checks the token signature and expiry and returns the actor
// it was issued for.
func VerifyToken(tokenString, secret string) (Actor, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Actor{}, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Actor{}, fmt.Errorf("invalid token claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return Actor{}, fmt.Errorf("missing subject claim")
	}
	id, err := uuid.Parse(sub)
	if err != nil {
		return Actor{}, fmt.Errorf("invalid subject claim: %w", err)
	}

	email, _ := claims["email"].(string)
	return Actor{ID: id, Email: email}, nil
}
