package session

import (
	"errors"
	"time"

	"backoffice/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

var ErrBadToken = errors.New("session: invalid token")

// Claims is what the browser carries. Credentials never leave the server.
type Claims struct {
	SessionID string      `json:"sid"`
	Role      domain.Role `json:"role"`
	jwt.RegisteredClaims
}

type Tokens struct {
	secret []byte
	now    func() time.Time
}

func NewTokens(secret string) (*Tokens, error) {
	if len(secret) < 16 {
		return nil, errors.New("session: jwt secret must be at least 16 bytes")
	}
	return &Tokens{secret: []byte(secret), now: time.Now}, nil
}

func (t *Tokens) Issue(s *Session) (string, error) {
	if !s.Authenticated() {
		return "", ErrInvalidTransition
	}
	claims := Claims{
		SessionID: s.ID,
		Role:      s.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(t.now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

func (t *Tokens) Parse(raw string) (Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(tok *jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrExpired
		}
		return Claims{}, ErrBadToken
	}
	if claims.SessionID == "" {
		return Claims{}, ErrBadToken
	}
	return claims, nil
}
