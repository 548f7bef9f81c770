// internal/auth/token.go
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrMissingOrganization = errors.New("token carries no organization")

// TokenManager validates the bearer tokens issued by the identity provider
// and can mint tokens for tooling and tests.
type TokenManager struct {
	secret       []byte
	expiryPeriod time.Duration
}

func NewTokenManager(secret string, expiryPeriod time.Duration) *TokenManager {
	return &TokenManager{
		secret:       []byte(secret),
		expiryPeriod: expiryPeriod,
	}
}

type Claims struct {
	UserID         string `json:"user_id"`
	Email          string `json:"email"`
	OrganizationID string `json:"organization_id"`
	jwt.RegisteredClaims
}

// Organization parses the tenant the token is scoped to.
func (c *Claims) Organization() (uuid.UUID, error) {
	if c.OrganizationID == "" {
		return uuid.Nil, ErrMissingOrganization
	}
	id, err := uuid.Parse(c.OrganizationID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid organization id: %w", err)
	}
	if id == uuid.Nil {
		return uuid.Nil, ErrMissingOrganization
	}
	return id, nil
}

func (tm *TokenManager) Generate(userID, email string, orgID uuid.UUID) (string, error) {
	claims := Claims{
		UserID:         userID,
		Email:          email,
		OrganizationID: orgID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tm.expiryPeriod)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

func (tm *TokenManager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return tm.secret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}
