// Package jwt issues and verifies the bearer tokens the admin dashboard
// holds between requests.
package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

const issuer = "estate-core"

// fallbackSecret keeps a fresh checkout bootable; real deployments must
// set jwt_secret / JWT_SECRET.
const fallbackSecret = "estate-core-secret-change-me"

// Claims is the token payload: the admin's id plus the registered set.
type Claims struct {
	UserID string `json:"uid"`
	jwtlib.RegisteredClaims
}

// Signer issues and verifies tokens with a single HMAC secret. The secret
// is injected at construction, so there is no package-level key state.
type Signer struct {
	secret []byte
}

func New(secret string) *Signer {
	if secret == "" {
		secret = fallbackSecret
	}
	return &Signer{secret: []byte(secret)}
}

// Sign issues an HS256 token for the given admin id.
func (s *Signer) Sign(userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwtlib.NewNumericDate(now),
		},
	}
	return jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(s.secret)
}

var errInvalidToken = errors.New("invalid token")

// Parse verifies signature, expiry, and issuer, and returns the claims.
func (s *Signer) Parse(tokenStr string) (*Claims, error) {
	token, err := jwtlib.ParseWithClaims(tokenStr, &Claims{},
		func(*jwtlib.Token) (interface{}, error) { return s.secret, nil },
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithIssuer(issuer),
	)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, errInvalidToken
	}
	return claims, nil
}
