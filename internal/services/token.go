package services

import (
	"fmt"
	"strconv"
	"time"

	"postlike/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the authenticated caller, decoded from a bearer token and
// passed explicitly into every operation that acts on behalf of a user.
type Identity struct {
	UserID    uint
	IssuedAt  time.Time
	NotBefore time.Time
	ExpiresAt time.Time
}

type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// WithClock replaces the time source used for issuing and validating.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	return s
}

// Issue signs an HS256 access token for userID. nbf doubles as the login
// time reported by the activity endpoint.
func (s *TokenService) Issue(userID uint) (string, error) {
	now := s.now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse validates signature and time claims. Every failure is reported as
// ErrUnauthorized.
func (s *TokenService) Parse(raw string) (Identity, error) {
	if raw == "" {
		return Identity{}, fmt.Errorf("%w: missing token", models.ErrUnauthorized)
	}

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", models.ErrUnauthorized, err)
	}
	if !parsed.Valid {
		return Identity{}, fmt.Errorf("%w: invalid token", models.ErrUnauthorized)
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return Identity{}, fmt.Errorf("%w: invalid subject", models.ErrUnauthorized)
	}

	identity := Identity{UserID: uint(id)}
	if claims.IssuedAt != nil {
		identity.IssuedAt = claims.IssuedAt.Time.UTC()
	}
	if claims.NotBefore != nil {
		identity.NotBefore = claims.NotBefore.Time.UTC()
	} else {
		identity.NotBefore = identity.IssuedAt
	}
	if claims.ExpiresAt != nil {
		identity.ExpiresAt = claims.ExpiresAt.Time.UTC()
	}
	return identity, nil
}
