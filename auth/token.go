// Package auth implements session authentication: verifying username and
// password pairs against stored digests, minting and verifying signed bearer
// tokens, and the request guard that gates protected operations.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/user/credstore-go/config"
	"github.com/user/credstore-go/users"
)

// ErrInvalidToken is returned by Verify for any token that is malformed,
// carries a bad signature, or has expired.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the token payload: a minimal identity claim (user id and
// username) plus issued-at and expiry. The password digest never travels
// inside the token.
type Claims struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenIssuer mints and verifies HS256-signed bearer tokens with a
// server-wide secret.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer creates a TokenIssuer from the auth configuration.
func NewTokenIssuer(cfg *config.AuthConfig) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(cfg.TokenSecret),
		ttl:    cfg.TokenTTL,
	}
}

// Issue signs a token for the given user.
func (t *TokenIssuer) Issue(u *users.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   u.ID,
		Username: u.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
			Subject:   fmt.Sprintf("%d", u.ID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// tokenParser restricts tokens to HS256 and rejects non-canonical base64url
// segments. Lenient decoding ignores the unused trailing bits of the signature
// segment, so a token string altered in those bits would still decode to the
// original signature bytes and verify.
var tokenParser = jwt.NewParser(
	jwt.WithValidMethods([]string{"HS256"}),
	jwt.WithStrictDecoding(),
)

// Verify validates the signature and expiry of a token string and returns its
// decoded claims. Every failure mode collapses to ErrInvalidToken; the
// underlying parse error is wrapped for diagnostics.
func (t *TokenIssuer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := tokenParser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == 0 {
		return nil, fmt.Errorf("%w: missing user_id claim", ErrInvalidToken)
	}
	return claims, nil
}
