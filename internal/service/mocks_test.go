package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"smartattend/internal/model"
	"smartattend/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil && user.ID == 0 {
		user.ID = 1
	}
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// MockClassroomRepository is a mock implementation of ClassroomRepository.
type MockClassroomRepository struct {
	mock.Mock
}

func (m *MockClassroomRepository) List(ctx context.Context) ([]model.Classroom, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Classroom), args.Error(1)
}

func (m *MockClassroomRepository) FindByID(ctx context.Context, id uint) (*model.Classroom, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Classroom), args.Error(1)
}

func (m *MockClassroomRepository) Exists(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockClassroomRepository) Upsert(ctx context.Context, classroom *model.Classroom) error {
	args := m.Called(ctx, classroom)
	return args.Error(0)
}

// MockAttendanceRepository is a mock implementation of AttendanceRepository.
type MockAttendanceRepository struct {
	mock.Mock
}

func (m *MockAttendanceRepository) Create(ctx context.Context, attendance *model.Attendance) error {
	args := m.Called(ctx, attendance)
	if args.Error(0) == nil && attendance.ID == 0 {
		attendance.ID = 1
	}
	return args.Error(0)
}

func (m *MockAttendanceRepository) ListByStudent(ctx context.Context, studentID uint) ([]model.Attendance, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Attendance), args.Error(1)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) RevokeAccessToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) IsAccessTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

var _ repository.UserRepository = (*MockUserRepository)(nil)
var _ repository.ClassroomRepository = (*MockClassroomRepository)(nil)
var _ repository.AttendanceRepository = (*MockAttendanceRepository)(nil)
