package postgres

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/gophblog/internal/client/gateway"
	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims are the session token claims: the identity id travels as the
// subject, the email alongside it.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// GenerateToken signs a session token for ident valid until now+validity.
func GenerateToken(ident gateway.Identity, secretKey []byte, validity time.Duration, now time.Time) (string, time.Time, error) {
	expires := now.Add(validity)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   ident.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
		Email: ident.Email,
	})

	signed, err := token.SignedString(secretKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

// ParseToken verifies tokenString and turns it back into a session.
// Expired or tampered tokens fail.
func ParseToken(tokenString string, secretKey []byte) (*gateway.Session, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return &gateway.Session{
		User:      gateway.Identity{ID: claims.Subject, Email: claims.Email},
		Token:     tokenString,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
