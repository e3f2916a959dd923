package repository

import (
	"context"

	"gorm.io/gorm"

	"smartattend/internal/model"
)

// FocusRepository defines focus mode persistence operations.
type FocusRepository interface {
	Create(ctx context.Context, focus *model.FocusMode) error
	Update(ctx context.Context, focus *model.FocusMode) error
	FindActiveByStudent(ctx context.Context, studentID uint) (*model.FocusMode, error)
	CountActiveByStudent(ctx context.Context, studentID uint) (int64, error)
	// Transaction methods
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo FocusRepository) error) error
}

type focusRepository struct {
	db *gorm.DB
}

// NewFocusRepository creates a new focus mode repository.
func NewFocusRepository(db *gorm.DB) FocusRepository {
	return &focusRepository{db: db}
}

// Create creates a new focus session.
func (r *focusRepository) Create(ctx context.Context, focus *model.FocusMode) error {
	return r.db.WithContext(ctx).Create(focus).Error
}

// Update saves every column of an existing focus session.
func (r *focusRepository) Update(ctx context.Context, focus *model.FocusMode) error {
	return r.db.WithContext(ctx).Save(focus).Error
}

// FindActiveByStudent returns the oldest open session of a student.
func (r *focusRepository) FindActiveByStudent(ctx context.Context, studentID uint) (*model.FocusMode, error) {
	var focus model.FocusMode
	if err := r.db.WithContext(ctx).
		Where("student_id = ? AND active_status = ?", studentID, true).
		Order("id").
		First(&focus).Error; err != nil {
		return nil, err
	}
	return &focus, nil
}

// CountActiveByStudent counts the open sessions of a student.
func (r *focusRepository) CountActiveByStudent(ctx context.Context, studentID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.FocusMode{}).
		Where("student_id = ? AND active_status = ?", studentID, true).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// WithTransaction executes a function within a database transaction.
func (r *focusRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo FocusRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &focusRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
