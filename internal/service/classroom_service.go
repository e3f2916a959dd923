package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"smartattend/internal/cache"
	apperrors "smartattend/internal/errors"
	"smartattend/internal/model"
	"smartattend/internal/repository"
)

const (
	classroomListCacheKey = "classrooms:all"
	classroomCacheTTL     = time.Minute
)

// ClassroomService exposes read access to classrooms plus seeding.
type ClassroomService interface {
	ListClassrooms(ctx context.Context) ([]model.Classroom, error)
	GetClassroom(ctx context.Context, id uint) (*model.Classroom, error)
	SeedClassrooms(ctx context.Context, classrooms []model.Classroom) (int, error)
}

type classroomService struct {
	repo  repository.ClassroomRepository
	cache *cache.Client
}

// NewClassroomService builds a ClassroomService with repository and cache.
func NewClassroomService(repo repository.ClassroomRepository, cache *cache.Client) ClassroomService {
	return &classroomService{repo: repo, cache: cache}
}

// ListClassrooms returns every classroom, served from cache when possible.
func (s *classroomService) ListClassrooms(ctx context.Context) ([]model.Classroom, error) {
	var cached []model.Classroom
	if s.cache.GetJSON(ctx, classroomListCacheKey, &cached) {
		return cached, nil
	}

	classrooms, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list classrooms: %w", err)
	}

	s.cache.SetJSON(ctx, classroomListCacheKey, classrooms, classroomCacheTTL)
	return classrooms, nil
}

func (s *classroomService) GetClassroom(ctx context.Context, id uint) (*model.Classroom, error) {
	classroom, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrClassroomNotFound
		}
		return nil, fmt.Errorf("get classroom: %w", err)
	}
	return classroom, nil
}

// SeedClassrooms creates classrooms or updates the ones sharing a QR code.
func (s *classroomService) SeedClassrooms(ctx context.Context, classrooms []model.Classroom) (int, error) {
	count := 0
	for i := range classrooms {
		if err := s.repo.Upsert(ctx, &classrooms[i]); err != nil {
			return count, fmt.Errorf("seed classroom %s: %w", classrooms[i].StaticQRCode, err)
		}
		count++
	}
	_ = s.cache.Delete(ctx, classroomListCacheKey)
	return count, nil
}
