package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("auth: invalid token")

// TokenService issues and checks HS256 bearer tokens for editors allowed to
// change components and localizations.
type TokenService struct {
	Secret   []byte
	Issuer   string
	Duration time.Duration
	now      func() time.Time
}

type Claims struct {
	jwt.RegisteredClaims
}

func NewTokenService(secret, issuer string, ttl time.Duration) TokenService {
	return TokenService{Secret: []byte(secret), Issuer: issuer, Duration: ttl}
}

// Enabled reports whether a secret is configured.
func (ts TokenService) Enabled() bool {
	return len(ts.Secret) > 0
}

func (ts TokenService) clock() time.Time {
	if ts.now != nil {
		return ts.now()
	}
	return time.Now()
}

func (ts TokenService) Sign(subject string) (string, time.Time, error) {
	if !ts.Enabled() {
		return "", time.Time{}, fmt.Errorf("sign token: no secret configured")
	}
	now := ts.clock()
	exp := now.Add(ts.Duration)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ts.Issuer,
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ts.Secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return s, exp, nil
}

func (ts TokenService) Parse(raw string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(ts.clock),
	}
	if ts.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(ts.Issuer))
	}

	tok, err := jwt.ParseWithClaims(raw, &Claims{}, func(*jwt.Token) (any, error) {
		return ts.Secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
