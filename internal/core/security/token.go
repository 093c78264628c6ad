package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/todosapp/todo-service/internal/core/domain"
)

// DefaultTokenTTL applies when no lifetime is configured.
const DefaultTokenTTL = 30 * time.Minute

// TokenConfig configures the HMAC token service.
type TokenConfig struct {
	Secret    string
	Algorithm string // HS256, HS384 or HS512
	TTL       time.Duration
}

// Identity is what a verified token asserts.
type Identity struct {
	Subject string
	UserID  int64
}

// Claims is the JWT payload: sub = username, id = user id, exp = expiry.
type Claims struct {
	UserID int64 `json:"id"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies stateless bearer tokens.
type TokenService struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService validates cfg. An empty secret or a non-HMAC algorithm is
// a configuration error.
func NewTokenService(cfg TokenConfig) (*TokenService, error) {
	if cfg.Secret == "" {
		return nil, errors.New("token service: secret is required")
	}
	if cfg.Algorithm == "" {
		return nil, errors.New("token service: algorithm is required")
	}
	method, err := hmacMethod(cfg.Algorithm)
	if err != nil {
		return nil, err
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(cfg.Secret), method: method, ttl: ttl, now: time.Now}, nil
}

func hmacMethod(alg string) (jwt.SigningMethod, error) {
	switch alg {
	case jwt.SigningMethodHS256.Alg():
		return jwt.SigningMethodHS256, nil
	case jwt.SigningMethodHS384.Alg():
		return jwt.SigningMethodHS384, nil
	case jwt.SigningMethodHS512.Alg():
		return jwt.SigningMethodHS512, nil
	default:
		return nil, fmt.Errorf("token service: unsupported algorithm %q (use HS256, HS384 or HS512)", alg)
	}
}

// TTL returns the configured token lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token for subject that expires ttl from now. A non-positive
// ttl uses the configured lifetime.
func (s *TokenService) Issue(subject string, userID int64, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = s.ttl
	}
	now := s.now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm and expiry. Every failure, forged or
// expired alike, is reported as domain.ErrInvalidToken.
func (s *TokenService) Verify(token string) (Identity, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return Identity{}, domain.ErrInvalidToken
	}
	if claims.Subject == "" || claims.UserID == 0 {
		return Identity{}, domain.ErrInvalidToken
	}
	return Identity{Subject: claims.Subject, UserID: claims.UserID}, nil
}
