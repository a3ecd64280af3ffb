// Package token issues and validates the signed bearer tokens that bind a
// request to a user id. Tokens are stateless: validity is a function of
// signature and expiry only.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the fixed token lifetime.
const DefaultTTL = 7 * 24 * time.Hour

var ErrInvalid = errors.New("invalid or expired token")

type Claims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// Manager signs and parses tokens with a process-wide secret. It is passed
// explicitly to the components that need it instead of living in a global.
type Manager struct {
	secret []byte
	TTL    time.Duration
}

func NewManager(secret string) *Manager {
	return &Manager{secret: []byte(secret), TTL: DefaultTTL}
}

// Sign returns a signed token bound to userID, expiring after the TTL.
func (m *Manager) Sign(userID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.TTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(m.secret)
}

// Parse validates signature and expiry and returns the bound user id.
func (m *Manager) Parse(tokenStr string) (string, error) {
	tok, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalid
		}
		return m.secret, nil
	})
	if err != nil || !tok.Valid {
		return "", ErrInvalid
	}
	claims, ok := tok.Claims.(*Claims)
	if !ok || claims.UserID == "" {
		return "", ErrInvalid
	}
	return claims.UserID, nil
}
