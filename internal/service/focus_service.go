package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	apperrors "smartattend/internal/errors"
	"smartattend/internal/model"
	"smartattend/internal/repository"
)

// FocusStatus describes whether a student has an open focus session.
type FocusStatus struct {
	Active    bool
	StartTime *time.Time
}

// FocusService manages per-student focus sessions. A student has at most one
// open session: starting while one is open fails with ErrFocusAlreadyActive.
type FocusService interface {
	StartFocus(ctx context.Context, studentID uint) (*model.FocusMode, error)
	StopFocus(ctx context.Context, studentID uint) (*model.FocusMode, error)
	FocusStatus(ctx context.Context, studentID uint) (*FocusStatus, error)
}

type focusService struct {
	repo repository.FocusRepository
	now  func() time.Time
	// Per-student locks serialise check-then-insert within this process.
	studentMutexes sync.Map
}

// NewFocusService creates a new focus service.
func NewFocusService(repo repository.FocusRepository) FocusService {
	return &focusService{
		repo: repo,
		now:  utcNow,
	}
}

func (s *focusService) getMutex(studentID uint) *sync.Mutex {
	value, _ := s.studentMutexes.LoadOrStore(studentID, &sync.Mutex{})
	return value.(*sync.Mutex)
}

// StartFocus opens a new session for the student.
func (s *focusService) StartFocus(ctx context.Context, studentID uint) (*model.FocusMode, error) {
	mutex := s.getMutex(studentID)
	mutex.Lock()
	defer mutex.Unlock()

	var session *model.FocusMode
	err := s.repo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.FocusRepository) error {
		_, err := txRepo.FindActiveByStudent(ctx, studentID)
		if err == nil {
			return apperrors.ErrFocusAlreadyActive
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("find active focus: %w", err)
		}

		session = &model.FocusMode{
			StudentID:    studentID,
			StartTime:    s.now(),
			ActiveStatus: true,
		}
		if err := txRepo.Create(ctx, session); err != nil {
			return fmt.Errorf("create focus: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// StopFocus closes the student's oldest open session.
func (s *focusService) StopFocus(ctx context.Context, studentID uint) (*model.FocusMode, error) {
	mutex := s.getMutex(studentID)
	mutex.Lock()
	defer mutex.Unlock()

	var session *model.FocusMode
	err := s.repo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.FocusRepository) error {
		active, err := txRepo.FindActiveByStudent(ctx, studentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNoActiveFocus
			}
			return fmt.Errorf("find active focus: %w", err)
		}

		end := s.now()
		active.EndTime = &end
		active.ActiveStatus = false
		if err := txRepo.Update(ctx, active); err != nil {
			return fmt.Errorf("update focus: %w", err)
		}
		session = active
		return nil
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (s *focusService) FocusStatus(ctx context.Context, studentID uint) (*FocusStatus, error) {
	active, err := s.repo.FindActiveByStudent(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &FocusStatus{Active: false}, nil
		}
		return nil, fmt.Errorf("find active focus: %w", err)
	}
	start := active.StartTime
	return &FocusStatus{Active: true, StartTime: &start}, nil
}
