package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"smartattend/internal/model"
)

// ClassroomRepository defines classroom persistence operations.
type ClassroomRepository interface {
	List(ctx context.Context) ([]model.Classroom, error)
	FindByID(ctx context.Context, id uint) (*model.Classroom, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Upsert(ctx context.Context, classroom *model.Classroom) error
}

type classroomRepository struct {
	db *gorm.DB
}

// NewClassroomRepository creates a new classroom repository.
func NewClassroomRepository(db *gorm.DB) ClassroomRepository {
	return &classroomRepository{db: db}
}

// List returns every classroom ordered by id.
func (r *classroomRepository) List(ctx context.Context) ([]model.Classroom, error) {
	classrooms := make([]model.Classroom, 0)
	if err := r.db.WithContext(ctx).Order("id").Find(&classrooms).Error; err != nil {
		return nil, err
	}
	return classrooms, nil
}

// FindByID finds a classroom by ID.
func (r *classroomRepository) FindByID(ctx context.Context, id uint) (*model.Classroom, error) {
	var classroom model.Classroom
	if err := r.db.WithContext(ctx).First(&classroom, id).Error; err != nil {
		return nil, err
	}
	return &classroom, nil
}

// Exists reports whether a classroom with the given id is present.
func (r *classroomRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Classroom{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Upsert inserts a classroom or updates name and location of the one sharing
// its static QR code.
func (r *classroomRepository) Upsert(ctx context.Context, classroom *model.Classroom) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "static_qr_code"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "location"}),
	}).Create(classroom).Error
}
