package service

import (
	"context"
	"regexp"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/carmarket-service/internal/auth"
	"github.com/spec-kit/carmarket-service/internal/config"
	"github.com/spec-kit/carmarket-service/internal/domain"
	"github.com/spec-kit/carmarket-service/internal/repository"
	apperrors "github.com/spec-kit/carmarket-service/pkg/util"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// TokenPair bundles the tokens issued on register, login and refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// AuthService coordinates registration, login and refresh flows.
type AuthService struct {
	users      repository.UserRepository
	tokens     repository.RefreshTokenRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	UserRepo         repository.UserRepository
	RefreshTokenRepo repository.RefreshTokenRepository
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:  deps.UserRepo,
		tokens: deps.RefreshTokenRepo,
		tokenMgr: auth.NewTokenManager(
			cfg.Auth.JWTAccessSecret,
			cfg.Auth.JWTRefreshSecret,
			cfg.Auth.AccessTokenTTLMinutes,
			cfg.Auth.RefreshTokenTTLHours,
		),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Register creates a new customer account and issues a token pair.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, *TokenPair, error) {
	if !emailPattern.MatchString(email) {
		return nil, nil, apperrors.NewBadRequest("Please enter a valid email address")
	}
	if len(password) < 6 {
		return nil, nil, apperrors.NewBadRequest("Password must be at least 6 characters long")
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, nil, apperrors.NewBadRequest("Email already registered")
	} else if err != pgx.ErrNoRows {
		return nil, nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		UserType:     domain.UserTypeCustomer,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	pair, err := s.issueTokens(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Login authenticates an account by email and password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, *TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil, apperrors.NewUnauthorized("Invalid credentials")
		}
		return nil, nil, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, nil, apperrors.NewUnauthorized("Invalid credentials")
	}

	pair, err := s.issueTokens(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh rotates a refresh token: the presented token must parse and still
// be stored, and is replaced by a fresh pair in the same call.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.tokenMgr.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.NewUnauthorized("Invalid refresh token")
	}
	stored, err := s.tokens.Get(ctx, refreshToken)
	if err != nil {
		if err == repository.ErrTokenNotFound {
			return nil, apperrors.NewUnauthorized("Invalid refresh token")
		}
		return nil, err
	}
	if stored.UserID != claims.UserID {
		return nil, apperrors.NewUnauthorized("Invalid refresh token")
	}

	if err := s.tokens.Delete(ctx, refreshToken); err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, claims.UserID)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) issueTokens(ctx context.Context, userID string) (*TokenPair, error) {
	access, accessExp, err := s.tokenMgr.GenerateAccessToken(userID)
	if err != nil {
		return nil, err
	}
	refresh, refreshExp, err := s.tokenMgr.GenerateRefreshToken(userID)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Save(ctx, &domain.RefreshToken{
		Token:     refresh,
		UserID:    userID,
		ExpiresAt: refreshExp,
	}); err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    accessExp,
	}, nil
}
