package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/gamerhub/marketplace/internal/auth"
	"github.com/gamerhub/marketplace/internal/domain"
	"github.com/gamerhub/marketplace/internal/repository"
	apperrors "github.com/gamerhub/marketplace/pkg/util"
)

// LoginLimiter throttles repeated login failures.
type LoginLimiter interface {
	Allowed(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// Session is an issued session token and the identity it carries.
type Session struct {
	Identity  domain.Identity
	Token     string
	ExpiresAt time.Time
}

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	codec      *auth.Codec
	limiter    LoginLimiter
	bcryptCost int
	logger     *zap.Logger

	dummyOnce sync.Once
	dummyHash string
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Codec      *auth.Codec
	Limiter    LoginLimiter
	BcryptCost int
	Logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:      deps.UserRepo,
		codec:      deps.Codec,
		limiter:    deps.Limiter,
		bcryptCost: deps.BcryptCost,
		logger:     logger,
	}
}

// Register creates an account and signs the first session for it.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (_ *Session, err error) {
	ctx, span := startSpan(ctx, "AuthService.Register")
	defer func() { endSpan(span, err) }()

	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" {
		return nil, apperrors.NewValidationError("username required", map[string]any{"field": "usuario"})
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperrors.NewValidationError("invalid email", map[string]any{"field": "email"})
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrPasswordTooShort):
			return nil, apperrors.NewValidationError("password too short", map[string]any{"min_length": auth.MinPasswordLength})
		case errors.Is(err, auth.ErrPasswordTooLong):
			return nil, apperrors.NewValidationError("password too long", map[string]any{"max_bytes": auth.MaxPasswordBytes})
		}
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Status:       domain.UserStatusActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("email or username already registered", nil)
		}
		return nil, apperrors.NewInternalError(err)
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID))
	return s.issue(user.Identity())
}

// Login authenticates by email and password. Unknown emails and wrong
// passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (_ *Session, err error) {
	ctx, span := startSpan(ctx, "AuthService.Login")
	defer func() { endSpan(span, err) }()

	email = strings.ToLower(strings.TrimSpace(email))
	if s.limiter != nil {
		allowed, limitErr := s.limiter.Allowed(ctx, email)
		if limitErr != nil {
			s.logger.Warn("login throttle unavailable", zap.Error(limitErr))
		}
		if !allowed {
			return nil, apperrors.NewRateLimited("too many login attempts")
		}
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil && !apperrors.IsNotFound(err) {
		return nil, apperrors.NewInternalError(err)
	}
	if user == nil || user.Status != domain.UserStatusActive {
		s.compareDummy(password)
		s.recordFailure(ctx, email)
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}
	if auth.ComparePassword(user.PasswordHash, password) != nil {
		s.recordFailure(ctx, email)
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}

	if s.limiter != nil {
		if resetErr := s.limiter.Reset(ctx, email); resetErr != nil {
			s.logger.Warn("login throttle reset failed", zap.Error(resetErr))
		}
	}
	return s.issue(user.Identity())
}

// Logout is a no-op server side; sessions are stateless and end when the cookie is cleared.
func (s *AuthService) Logout(_ context.Context, identity *domain.Identity) {
	if identity != nil {
		s.logger.Debug("user logged out", zap.String("user_id", identity.ID))
	}
}

// Codec exposes the token codec for middleware usage.
func (s *AuthService) Codec() *auth.Codec {
	return s.codec
}

func (s *AuthService) issue(identity domain.Identity) (*Session, error) {
	token, exp, err := s.codec.Encode(identity)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &Session{Identity: identity, Token: token, ExpiresAt: exp}, nil
}

// compareDummy spends one bcrypt comparison so unknown accounts take as long
// as wrong passwords.
func (s *AuthService) compareDummy(password string) {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = auth.HashPassword("marketplace-dummy-password", s.bcryptCost)
	})
	if s.dummyHash != "" {
		_ = auth.ComparePassword(s.dummyHash, password)
	}
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if s.limiter == nil {
		return
	}
	if err := s.limiter.RecordFailure(ctx, email); err != nil {
		s.logger.Warn("login throttle record failed", zap.Error(err))
	}
}
