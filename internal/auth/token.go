// Package auth issues and validates the signed bearer tokens that
// identify principals on protected requests.
package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// minSecretLen is the smallest secret accepted for HS512; anything
// shorter than the digest size weakens the MAC.
const minSecretLen = 64

// TokenStatus classifies the outcome of token inspection. Callers of
// Validate only see a boolean; the status exists so rejections can be
// logged with their actual cause.
type TokenStatus int

const (
	TokenValid TokenStatus = iota
	TokenExpired
	TokenMalformed
	TokenBadSignature
	TokenUnsupported
	TokenEmpty
)

func (s TokenStatus) String() string {
	switch s {
	case TokenValid:
		return "valid"
	case TokenExpired:
		return "expired"
	case TokenMalformed:
		return "malformed"
	case TokenBadSignature:
		return "bad signature"
	case TokenUnsupported:
		return "unsupported algorithm"
	case TokenEmpty:
		return "empty"
	}
	return "unknown"
}

// Claims carried by an issued token.
type Claims struct {
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies stateless bearer tokens. The signing
// key is fixed at construction; validity is proven by signature and
// expiry alone, so there is no revocation and logout stays client-side.
type TokenService struct {
	key []byte
	ttl time.Duration
}

// NewTokenService derives the signing key from secret. If the secret is
// missing or shorter than 64 bytes, a random key is generated for this
// process only: tokens then become unverifiable by other instances and
// across restarts.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	key := []byte(secret)
	if len(key) < minSecretLen {
		key = make([]byte, minSecretLen)
		if _, err := rand.Read(key); err != nil {
			log.Fatalf("Failed to generate signing key: %v", err)
		}
		log.Println("WARNING: JWT_SECRET is unset or shorter than 64 characters; using a random per-process signing key. This is insecure for production.")
	}
	return &TokenService{key: key, ttl: ttl}
}

// Issue produces a signed token for the given subject and roles,
// valid from now until now plus the configured TTL.
func (s *TokenService) Issue(username string, roles []string) (string, error) {
	now := time.Now()
	claims := Claims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return token.SignedString(s.key)
}

// Username extracts the subject from a token, verifying the signature.
func (s *TokenService) Username(tokenString string) (string, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// Validate reports whether a token is acceptable. It never returns an
// error: every failure class collapses to false, with the cause logged.
func (s *TokenService) Validate(tokenString string) bool {
	status := s.Inspect(tokenString)
	if status != TokenValid {
		log.Printf("Rejected token: %s", status)
	}
	return status == TokenValid
}

// Inspect returns the tagged validation result for a token.
func (s *TokenService) Inspect(tokenString string) TokenStatus {
	if tokenString == "" {
		return TokenEmpty
	}
	_, err := s.parse(tokenString)
	switch {
	case err == nil:
		return TokenValid
	case errors.Is(err, jwt.ErrTokenExpired):
		return TokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return TokenBadSignature
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return TokenUnsupported
	default:
		return TokenMalformed
	}
}

func (s *TokenService) parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", token.Method.Alg())
		}
		return s.key, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
