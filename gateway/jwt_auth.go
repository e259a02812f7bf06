// Package gateway implements the credential engine and the request-level
// middleware shared by all evalia gateway services.
package gateway

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Imran-2020331101/evalia/apperr"
)

// TokenKind selects the expiry policy of an issued credential.
type TokenKind string

const (
	// TokenSession is the standard long-lived credential granted on login.
	TokenSession TokenKind = "session"
	// TokenTemporary is the short-lived onboarding credential granted on
	// registration, before the email is verified.
	TokenTemporary TokenKind = "temporary"
)

const (
	defaultSessionTTL   = 24 * time.Hour
	defaultTemporaryTTL = 10 * time.Minute

	tokenIssuer = "evalia"
)

// JWTAuth issues and validates stateless HMAC-signed bearer tokens. The
// payload carries only the subject (the user's email) and timestamps; every
// protected operation re-resolves authorization from the identity store.
// There is no revocation list: a token stays valid until its expiry.
type JWTAuth struct {
	Key          []byte
	SessionTTL   time.Duration
	TemporaryTTL time.Duration
}

// TokenClaims is the evalia standard claim set.
type TokenClaims struct {
	jwt.RegisteredClaims
}

// Issue signs a token for subject with the expiry policy selected by kind.
func (j *JWTAuth) Issue(subject string, kind TokenKind) (string, error) {
	if len(j.Key) == 0 {
		return "", errors.New("empty jwt key")
	}
	ttl := j.SessionTTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	if kind == TokenTemporary {
		ttl = j.TemporaryTTL
		if ttl <= 0 {
			ttl = defaultTemporaryTTL
		}
	}

	now := time.Now()
	claims := TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Key)
}

// Validate verifies signature and expiry and returns the token's subject.
// Failures are reported as typed apperr values: token_expired,
// token_malformed, or token_unsupported.
func (j *JWTAuth) Validate(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.Key, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", apperr.Wrap(err, apperr.ErrTokenExpired, "")
		case errors.Is(err, jwt.ErrTokenMalformed), errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", apperr.Wrap(err, apperr.ErrTokenMalformed, "")
		default:
			return "", apperr.Wrap(err, apperr.ErrTokenUnsupported, "")
		}
	}
	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return "", apperr.ErrTokenMalformed
	}
	return claims.Subject, nil
}

// SubjectFromHeader extracts the subject email from an Authorization header,
// stripping an optional bearer prefix before validation.
func (j *JWTAuth) SubjectFromHeader(header string) (string, error) {
	if header == "" {
		return "", apperr.ErrMissingAuthHeader
	}
	token := header
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		token = header[7:]
	}
	return j.Validate(token)
}

// GenerateSecretKey generates a secret key for jwt signing.
func GenerateSecretKey(n int) ([]byte, error) {
	key := make([]byte, n)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	return key, nil
}
