package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/todosapp/todo-service/internal/core/domain"
	"github.com/todosapp/todo-service/internal/core/ports"
	"github.com/todosapp/todo-service/internal/core/security"
)

// TokenService issues and verifies bearer tokens.
type TokenService interface {
	Issue(subject string, userID int64, ttl time.Duration) (string, error)
	Verify(token string) (security.Identity, error)
}

// AuthConfig holds the tunables of the authentication flow.
type AuthConfig struct {
	TokenTTL time.Duration
	// AllowRoleSelfAssign lets registrants request the admin role.
	AllowRoleSelfAssign bool
}

// AuthService implements registration, login and token resolution.
type AuthService struct {
	repo   ports.UserRepository
	hasher security.Hasher
	tokens TokenService
	cfg    AuthConfig
	logger zerolog.Logger

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(repo ports.UserRepository, hasher security.Hasher, tokens TokenService, cfg AuthConfig, logger zerolog.Logger) *AuthService {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = security.DefaultTokenTTL
	}
	return &AuthService{repo: repo, hasher: hasher, tokens: tokens, cfg: cfg, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if err := security.ValidatePassword(in.Password); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByUsernameOrEmail(ctx, in.Username, in.Email)
	switch {
	case err == nil && existing != nil:
		return nil, domain.ErrUserExists
	case err != nil && !errors.Is(err, domain.ErrUserNotFound):
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: hash,
		Role:         s.resolveRole(in.Role),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", created.ID).Str("username", created.Username).Str("role", created.Role).Msg("user registered")
	return created, nil
}

func (s *AuthService) resolveRole(requested string) string {
	if strings.EqualFold(strings.TrimSpace(requested), domain.RoleAdmin) && s.cfg.AllowRoleSelfAssign {
		return domain.RoleAdmin
	}
	return domain.RoleUser
}

// Login returns a signed token. Unknown usernames and wrong passwords yield
// the same domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			return "", err
		}
		// Burn a comparison so unknown users cost as much as known ones.
		s.hasher.Verify(password, s.dummy())
		return "", domain.ErrInvalidCredentials
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", domain.ErrInvalidCredentials
	}

	return s.tokens.Issue(user.Username, user.ID, s.cfg.TokenTTL)
}

func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash("dummy-Passw0rd!")
		if err != nil {
			s.logger.Warn().Err(err).Msg("failed to prepare dummy hash")
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}

// Authenticate verifies token and resolves the user it names with a single
// directory lookup. Unknown users are reported like bad tokens.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	id, err := s.tokens.Verify(token)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	user, err := s.repo.FindByIDAndUsername(ctx, id.UserID, id.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}
