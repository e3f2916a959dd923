package repository

import (
	"context"

	"gorm.io/gorm"

	"smartattend/internal/model"
)

// AttendanceRepository defines attendance persistence operations.
// Attendance rows are append-only, so there is no update.
type AttendanceRepository interface {
	Create(ctx context.Context, attendance *model.Attendance) error
	ListByStudent(ctx context.Context, studentID uint) ([]model.Attendance, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository creates a new attendance repository.
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

// Create creates a new attendance record.
func (r *attendanceRepository) Create(ctx context.Context, attendance *model.Attendance) error {
	return r.db.WithContext(ctx).Create(attendance).Error
}

// ListByStudent returns a student's attendance in insertion order.
func (r *attendanceRepository) ListByStudent(ctx context.Context, studentID uint) ([]model.Attendance, error) {
	records := make([]model.Attendance, 0)
	if err := r.db.WithContext(ctx).Where("student_id = ?", studentID).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
