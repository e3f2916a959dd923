package service

import (
	"context"
	"fmt"
	"time"

	apperrors "smartattend/internal/errors"
	"smartattend/internal/model"
	"smartattend/internal/repository"
)

// MarkAttendanceInput carries a check-in. The verification flags are taken as
// reported by the client and are not re-checked here.
type MarkAttendanceInput struct {
	StudentID        uint
	ClassroomID      uint
	VerifiedLocation bool
	VerifiedFace     bool
}

// AttendanceService records and lists check-ins.
type AttendanceService interface {
	MarkAttendance(ctx context.Context, input MarkAttendanceInput) (*model.Attendance, error)
	AttendanceHistory(ctx context.Context, studentID uint) ([]model.Attendance, error)
}

type attendanceService struct {
	attendanceRepo repository.AttendanceRepository
	classroomRepo  repository.ClassroomRepository
	now            func() time.Time
}

// NewAttendanceService creates a new attendance service.
func NewAttendanceService(
	attendanceRepo repository.AttendanceRepository,
	classroomRepo repository.ClassroomRepository,
) AttendanceService {
	return &attendanceService{
		attendanceRepo: attendanceRepo,
		classroomRepo:  classroomRepo,
		now:            utcNow,
	}
}

// MarkAttendance inserts a check-in stamped with the server clock.
func (s *attendanceService) MarkAttendance(ctx context.Context, input MarkAttendanceInput) (*model.Attendance, error) {
	exists, err := s.classroomRepo.Exists(ctx, input.ClassroomID)
	if err != nil {
		return nil, fmt.Errorf("check classroom: %w", err)
	}
	if !exists {
		return nil, apperrors.ErrClassroomNotFound
	}

	attendance := &model.Attendance{
		StudentID:        input.StudentID,
		ClassroomID:      input.ClassroomID,
		Timestamp:        s.now(),
		VerifiedLocation: input.VerifiedLocation,
		VerifiedFace:     input.VerifiedFace,
	}
	if err := s.attendanceRepo.Create(ctx, attendance); err != nil {
		return nil, fmt.Errorf("create attendance: %w", err)
	}
	return attendance, nil
}

func (s *attendanceService) AttendanceHistory(ctx context.Context, studentID uint) ([]model.Attendance, error) {
	records, err := s.attendanceRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return records, nil
}

func utcNow() time.Time {
	return time.Now().UTC()
}
