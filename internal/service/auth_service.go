package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"smartattend/internal/auth"
	apperrors "smartattend/internal/errors"
	"smartattend/internal/model"
	"smartattend/internal/repository"
)

// SignupInput carries a validated signup request.
type SignupInput struct {
	Name     string
	Email    string
	Password string
	ClassID  *uint
}

// AuthService handles authentication operations.
type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (*model.User, error)
	Login(ctx context.Context, email, password string) (accessToken string, err error)
	ResolveUser(ctx context.Context, claims *auth.Claims) (*model.User, error)
	Logout(ctx context.Context, claims *auth.Claims) error
}

type authService struct {
	userRepo      repository.UserRepository
	classroomRepo repository.ClassroomRepository
	jwtService    *auth.JWTService
	tokenStore    auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	userRepo repository.UserRepository,
	classroomRepo repository.ClassroomRepository,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
) AuthService {
	return &authService{
		userRepo:      userRepo,
		classroomRepo: classroomRepo,
		jwtService:    jwtService,
		tokenStore:    tokenStore,
	}
}

// Signup creates a new user with a hashed password.
func (s *authService) Signup(ctx context.Context, input SignupInput) (*model.User, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("check user existence: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyRegistered
	}

	if input.ClassID != nil {
		found, err := s.classroomRepo.Exists(ctx, *input.ClassID)
		if err != nil {
			return nil, fmt.Errorf("check classroom: %w", err)
		}
		if !found {
			return nil, apperrors.ErrClassroomNotFound
		}
	}

	hashedPassword, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		ClassID:      input.ClassID,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// a concurrent signup won the unique index
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrEmailAlreadyRegistered
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login authenticates a user and returns a signed access token.
func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrInvalidCredentials
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return "", apperrors.ErrInvalidCredentials
	}

	accessToken, _, err := s.jwtService.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}

	return accessToken, nil
}

// ResolveUser maps validated token claims to the user they were issued for.
// The user must still exist under the same id and the token must not be revoked.
func (s *authService) ResolveUser(ctx context.Context, claims *auth.Claims) (*model.User, error) {
	if claims == nil || claims.Subject == "" {
		return nil, apperrors.ErrUnauthorized
	}

	if claims.ID != "" {
		revoked, err := s.tokenStore.IsAccessTokenRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("check token revocation: %w", err)
		}
		if revoked {
			return nil, apperrors.ErrUnauthorized
		}
	}

	user, err := s.userRepo.FindByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if claims.UserID != 0 && claims.UserID != user.ID {
		return nil, apperrors.ErrUnauthorized
	}

	return user, nil
}

// Logout revokes the presented access token for the rest of its lifetime.
func (s *authService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ID == "" {
		return apperrors.ErrUnauthorized
	}
	ttl := s.jwtService.Remaining(claims)
	if claims.ExpiresAt == nil {
		// no exp claim: keep the revocation for a full token lifetime
		ttl = s.jwtService.TTL()
	}
	return s.tokenStore.RevokeAccessToken(ctx, claims.ID, ttl)
}
