package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type SessionClaims struct {
	jwt.RegisteredClaims
}

// TokenIssuer mints and verifies stateless session tokens. A token stays
// valid for the whole signature window, revoked accounts are caught by the
// live status check in the auth middleware.
type TokenIssuer struct {
	secret []byte
	maxAge time.Duration
}

// Issue creates a signed token bound to the given user id.
func (t *TokenIssuer) Issue(userID uint) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.maxAge)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Validate verifies signature and expiry and returns the embedded user id.
// Any tampering, malformed structure or expiry fails closed with
// ErrTokenInvalid.
func (t *TokenIssuer) Validate(tokenStr string) (uint, error) {
	var claims SessionClaims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrTokenInvalid
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, ErrTokenInvalid
	}
	return uint(userID), nil
}

func NewTokenIssuer(secret string, maxAge time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		maxAge: maxAge,
	}
}
