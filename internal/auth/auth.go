package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultTokenTTL = 7 * 24 * time.Hour

var ErrMissingSecret = errors.New("JWT_SECRET not set")

// issues and validates HS256 tokens with one shared secret
type Authenticator struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func New(secret string) *Authenticator {
	return &Authenticator{
		secret: []byte(secret),
		ttl:    defaultTokenTTL,
		now:    time.Now,
	}
}

// reports whether tokens can be issued and checked
func (a *Authenticator) Enabled() bool {
	return len(a.secret) > 0
}

// creates a JWT token for the user
func (a *Authenticator) GenerateJWT(id Identity) (string, error) {
	if !a.Enabled() {
		return "", ErrMissingSecret
	}

	now := a.now()
	claims := Claims{
		UserID: id.UserID,
		Email:  id.Email,
		Name:   id.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID,
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// validates a JWT token and returns the claims
func (a *Authenticator) ValidateJWT(tokenString string) (*Claims, error) {
	if !a.Enabled() {
		return nil, ErrMissingSecret
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return a.secret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
