package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"smartattend/internal/auth"
	apperrors "smartattend/internal/errors"
	"smartattend/internal/model"
)

func uintPtr(v uint) *uint { return &v }

func TestAuthService_Signup(t *testing.T) {
	tests := []struct {
		name          string
		input         SignupInput
		setupMock     func(*MockUserRepository, *MockClassroomRepository)
		expectedError error
	}{
		{
			name:  "successful signup",
			input: SignupInput{Name: "A", Email: "a@x.com", Password: "p1", ClassID: uintPtr(1)},
			setupMock: func(u *MockUserRepository, c *MockClassroomRepository) {
				u.On("ExistsByEmail", mock.Anything, "a@x.com").Return(false, nil)
				c.On("Exists", mock.Anything, uint(1)).Return(true, nil)
				u.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name:  "signup without class",
			input: SignupInput{Name: "A", Email: "a@x.com", Password: "p1"},
			setupMock: func(u *MockUserRepository, c *MockClassroomRepository) {
				u.On("ExistsByEmail", mock.Anything, "a@x.com").Return(false, nil)
				u.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name:  "email already registered",
			input: SignupInput{Name: "B", Email: "a@x.com", Password: "p2"},
			setupMock: func(u *MockUserRepository, c *MockClassroomRepository) {
				u.On("ExistsByEmail", mock.Anything, "a@x.com").Return(true, nil)
			},
			expectedError: apperrors.ErrEmailAlreadyRegistered,
		},
		{
			name:  "unknown classroom",
			input: SignupInput{Name: "A", Email: "a@x.com", Password: "p1", ClassID: uintPtr(9)},
			setupMock: func(u *MockUserRepository, c *MockClassroomRepository) {
				u.On("ExistsByEmail", mock.Anything, "a@x.com").Return(false, nil)
				c.On("Exists", mock.Anything, uint(9)).Return(false, nil)
			},
			expectedError: apperrors.ErrClassroomNotFound,
		},
		{
			name:  "concurrent signup loses the unique index",
			input: SignupInput{Name: "A", Email: "a@x.com", Password: "p1"},
			setupMock: func(u *MockUserRepository, c *MockClassroomRepository) {
				u.On("ExistsByEmail", mock.Anything, "a@x.com").Return(false, nil)
				u.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: apperrors.ErrEmailAlreadyRegistered,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(MockUserRepository)
			classroomRepo := new(MockClassroomRepository)
			tt.setupMock(userRepo, classroomRepo)

			svc := NewAuthService(userRepo, classroomRepo, auth.NewJWTService("test-secret", time.Minute), new(MockTokenStore))
			user, err := svc.Signup(context.Background(), tt.input)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, uint(1), user.ID)
				assert.Equal(t, tt.input.Email, user.Email)
				assert.Equal(t, tt.input.ClassID, user.ClassID)
				assert.NotEqual(t, tt.input.Password, user.PasswordHash)
				assert.True(t, auth.VerifyPassword(tt.input.Password, user.PasswordHash))
			}

			userRepo.AssertExpectations(t)
			classroomRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashed, err := auth.HashPassword("p1")
	require.NoError(t, err)
	rehashed, err := auth.HashPassword("p2")
	require.NoError(t, err)

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "a@x.com",
			password: "p1",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "a@x.com").Return(&model.User{ID: 1, Email: "a@x.com", PasswordHash: hashed}, nil)
			},
		},
		{
			name:     "unknown email",
			email:    "nobody@x.com",
			password: "p1",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "nobody@x.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "a@x.com",
			password: "nope",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "a@x.com").Return(&model.User{ID: 1, Email: "a@x.com", PasswordHash: hashed}, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "old password after hash changed",
			email:    "a@x.com",
			password: "p1",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "a@x.com").Return(&model.User{ID: 1, Email: "a@x.com", PasswordHash: rehashed}, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(MockUserRepository)
			tt.setupMock(userRepo)

			jwtService := auth.NewJWTService("test-secret", time.Minute)
			svc := NewAuthService(userRepo, new(MockClassroomRepository), jwtService, new(MockTokenStore))

			token, err := svc.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Empty(t, token)
			} else {
				require.NoError(t, err)
				claims, err := jwtService.ValidateToken(token)
				require.NoError(t, err)
				assert.Equal(t, tt.email, claims.Subject)
				assert.Equal(t, uint(1), claims.UserID)
			}

			userRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login_UnknownEmailAndWrongPasswordAreIndistinguishable(t *testing.T) {
	hashed, err := auth.HashPassword("p1")
	require.NoError(t, err)

	userRepo := new(MockUserRepository)
	userRepo.On("FindByEmail", mock.Anything, "a@x.com").Return(&model.User{ID: 1, Email: "a@x.com", PasswordHash: hashed}, nil)
	userRepo.On("FindByEmail", mock.Anything, "b@x.com").Return(nil, gorm.ErrRecordNotFound)

	svc := NewAuthService(userRepo, new(MockClassroomRepository), auth.NewJWTService("test-secret", time.Minute), new(MockTokenStore))

	_, wrongPassword := svc.Login(context.Background(), "a@x.com", "bad")
	_, unknownEmail := svc.Login(context.Background(), "b@x.com", "bad")
	assert.Equal(t, wrongPassword, unknownEmail)
}

func TestAuthService_Login_DatabaseErrorIsNotCredentialsError(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("FindByEmail", mock.Anything, "a@x.com").Return(nil, errors.New("connection refused"))

	svc := NewAuthService(userRepo, new(MockClassroomRepository), auth.NewJWTService("test-secret", time.Minute), new(MockTokenStore))
	_, err := svc.Login(context.Background(), "a@x.com", "p1")

	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAuthService_ResolveUser(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", time.Minute)
	_, claims, err := jwtService.GenerateAccessToken(1, "a@x.com")
	require.NoError(t, err)

	tests := []struct {
		name          string
		setupMock     func(*MockUserRepository, *MockTokenStore)
		expectedError error
	}{
		{
			name: "resolves the token subject",
			setupMock: func(u *MockUserRepository, s *MockTokenStore) {
				s.On("IsAccessTokenRevoked", mock.Anything, claims.ID).Return(false, nil)
				u.On("FindByEmail", mock.Anything, "a@x.com").Return(&model.User{ID: 1, Email: "a@x.com"}, nil)
			},
		},
		{
			name: "revoked token",
			setupMock: func(u *MockUserRepository, s *MockTokenStore) {
				s.On("IsAccessTokenRevoked", mock.Anything, claims.ID).Return(true, nil)
			},
			expectedError: apperrors.ErrUnauthorized,
		},
		{
			name: "subject no longer exists",
			setupMock: func(u *MockUserRepository, s *MockTokenStore) {
				s.On("IsAccessTokenRevoked", mock.Anything, claims.ID).Return(false, nil)
				u.On("FindByEmail", mock.Anything, "a@x.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrUnauthorized,
		},
		{
			name: "email re-registered under another id",
			setupMock: func(u *MockUserRepository, s *MockTokenStore) {
				s.On("IsAccessTokenRevoked", mock.Anything, claims.ID).Return(false, nil)
				u.On("FindByEmail", mock.Anything, "a@x.com").Return(&model.User{ID: 2, Email: "a@x.com"}, nil)
			},
			expectedError: apperrors.ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(MockUserRepository)
			tokenStore := new(MockTokenStore)
			tt.setupMock(userRepo, tokenStore)

			svc := NewAuthService(userRepo, new(MockClassroomRepository), jwtService, tokenStore)
			user, err := svc.ResolveUser(context.Background(), claims)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, uint(1), user.ID)
			}

			userRepo.AssertExpectations(t)
			tokenStore.AssertExpectations(t)
		})
	}
}

func TestAuthService_ResolveUser_NilClaims(t *testing.T) {
	svc := NewAuthService(new(MockUserRepository), new(MockClassroomRepository), auth.NewJWTService("s", time.Minute), new(MockTokenStore))
	_, err := svc.ResolveUser(context.Background(), nil)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestAuthService_Logout(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", time.Minute)
	_, claims, err := jwtService.GenerateAccessToken(1, "a@x.com")
	require.NoError(t, err)

	tokenStore := new(MockTokenStore)
	tokenStore.On("RevokeAccessToken", mock.Anything, claims.ID, mock.MatchedBy(func(ttl time.Duration) bool {
		return ttl > 0 && ttl <= time.Minute
	})).Return(nil)

	svc := NewAuthService(new(MockUserRepository), new(MockClassroomRepository), jwtService, tokenStore)
	require.NoError(t, svc.Logout(context.Background(), claims))

	tokenStore.AssertExpectations(t)
}

func TestAuthService_Logout_WithoutExpiryUsesTokenLifetime(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", 10*time.Minute)
	claims := &auth.Claims{UserID: 1, Email: "a@x.com"}
	claims.ID = "token-without-exp"
	claims.Subject = "a@x.com"

	tokenStore := new(MockTokenStore)
	tokenStore.On("RevokeAccessToken", mock.Anything, "token-without-exp", 10*time.Minute).Return(nil)

	svc := NewAuthService(new(MockUserRepository), new(MockClassroomRepository), jwtService, tokenStore)
	require.NoError(t, svc.Logout(context.Background(), claims))

	tokenStore.AssertExpectations(t)
}
