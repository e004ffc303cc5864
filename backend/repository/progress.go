package repository

import (
	"context"

	"englishhub/backend/models"

	"gorm.io/gorm"
)

type ProgressRepo interface {
	// GetForUpdate locks the (user, lesson) row until tx ends.
	GetForUpdate(ctx context.Context, tx *gorm.DB, userID, lessonID uint) (*models.Progress, error)
	Get(ctx context.Context, tx *gorm.DB, userID, lessonID uint) (*models.Progress, error)
	Create(ctx context.Context, tx *gorm.DB, progress *models.Progress) error
	Save(ctx context.Context, tx *gorm.DB, progress *models.Progress) error
	// ListByUser returns rows most recently updated first, with course and lesson
	// summaries. A nil courseID lists every course.
	ListByUser(ctx context.Context, tx *gorm.DB, userID uint, courseID *uint) ([]models.Progress, error)
}

type progressRepo struct {
	db *gorm.DB
}

func NewProgressRepo(db *gorm.DB) ProgressRepo {
	return &progressRepo{db: db}
}

func (r *progressRepo) GetForUpdate(ctx context.Context, tx *gorm.DB, userID, lessonID uint) (*models.Progress, error) {
	var progress models.Progress
	if err := conn(ctx, r.db, tx).
		Clauses(forUpdate).
		Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		First(&progress).Error; err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *progressRepo) Get(ctx context.Context, tx *gorm.DB, userID, lessonID uint) (*models.Progress, error) {
	var progress models.Progress
	if err := conn(ctx, r.db, tx).
		Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		First(&progress).Error; err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *progressRepo) Create(ctx context.Context, tx *gorm.DB, progress *models.Progress) error {
	return conn(ctx, r.db, tx).Omit("Course", "Lesson").Create(progress).Error
}

func (r *progressRepo) Save(ctx context.Context, tx *gorm.DB, progress *models.Progress) error {
	return conn(ctx, r.db, tx).Omit("Course", "Lesson").Save(progress).Error
}

func (r *progressRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uint, courseID *uint) ([]models.Progress, error) {
	q := conn(ctx, r.db, tx).
		Preload("Course", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "title")
		}).
		Preload("Lesson", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "title", "order")
		}).
		Where("user_id = ?", userID)
	if courseID != nil {
		q = q.Where("course_id = ?", *courseID)
	}

	var rows []models.Progress
	if err := q.Order("updated_at DESC").Order("id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
