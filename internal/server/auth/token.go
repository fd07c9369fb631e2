package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload of an access token.
type Claims struct {
	jwt.RegisteredClaims
	UserID   int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Reason says why a token was rejected.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonMalformed
	ReasonBadSignature
	ReasonExpired
)

func (r Reason) String() string {
	switch r {
	case ReasonMalformed:
		return "malformed"
	case ReasonBadSignature:
		return "bad_signature"
	case ReasonExpired:
		return "expired"
	default:
		return "none"
	}
}

// VerifyResult is the outcome of TokenService.Verify. Claims is set only
// when OK is true.
type VerifyResult struct {
	Claims *Claims
	OK     bool
	Reason Reason
}

// TokenService issues and verifies HS256 access tokens signed with a single
// secret. Changing the secret invalidates every token issued before.
type TokenService struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

func NewTokenService(secret []byte, lifetime time.Duration) *TokenService {
	return &TokenService{secret: secret, lifetime: lifetime, now: time.Now}
}

// WithClock returns a copy of s that reads the time from now.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	c := *s
	c.now = now
	return &c
}

// Issue signs a token for the identity in c, valid for the configured
// lifetime from now.
func (s *TokenService) Issue(c Claims) (string, error) {
	now := s.now()
	c.RegisteredClaims = jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
}

// Verify checks the signature and expiry of token.
func (s *TokenService) Verify(token string) VerifyResult {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)

	switch {
	case err == nil && parsed.Valid:
		return VerifyResult{Claims: claims, OK: true}
	case errors.Is(err, jwt.ErrTokenExpired):
		return VerifyResult{Reason: ReasonExpired}
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return VerifyResult{Reason: ReasonBadSignature}
	default:
		return VerifyResult{Reason: ReasonMalformed}
	}
}
