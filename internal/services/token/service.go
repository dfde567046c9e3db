package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mcoot/ponto/internal/dependencies/clock"
	"github.com/mcoot/ponto/internal/dependencies/random"
)

const (
	issuer         = "pontod"
	secretAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	secretLength   = 48
)

// ErrInvalidToken is returned for missing, malformed, tampered or expired tokens
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims identifies the employee a token was issued to
type Claims struct {
	Admin bool `json:"adm"`
	jwt.RegisteredClaims
}

// EmployeeID returns the employee id carried in the subject
func (c *Claims) EmployeeID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}

// Config holds configuration for the token service
type Config struct {
	// Secret signs tokens. If empty, a random secret is generated, so tokens
	// do not survive a restart.
	Secret string
	TTL    time.Duration
}

// DefaultConfig returns default token configuration
func DefaultConfig() Config {
	return Config{TTL: 8 * time.Hour}
}

// Service issues and validates HS256 session tokens
type Service struct {
	secret []byte
	ttl    time.Duration
	clock  clock.Clock
}

// New creates a token service
func New(cfg Config, clk clock.Clock, rnd random.Random) *Service {
	if cfg.TTL == 0 {
		cfg.TTL = DefaultConfig().TTL
	}
	secret := cfg.Secret
	if secret == "" {
		secret = rnd.String(secretLength, secretAlphabet)
	}
	return &Service{
		secret: []byte(secret),
		ttl:    cfg.TTL,
		clock:  clk,
	}
}

// Issue signs a token for the employee
func (s *Service) Issue(employeeID int64, admin bool) (string, error) {
	now := s.clock.Now()
	claims := Claims{
		Admin: admin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   strconv.FormatInt(employeeID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Validate parses and verifies a token
func (s *Service) Validate(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if _, err := claims.EmployeeID(); err != nil {
		return nil, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}
	return claims, nil
}
