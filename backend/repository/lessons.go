package repository

import (
	"context"

	"englishhub/backend/models"

	"gorm.io/gorm"
)

type LessonRepo interface {
	Create(ctx context.Context, tx *gorm.DB, lesson *models.Lesson) error
	Save(ctx context.Context, tx *gorm.DB, lesson *models.Lesson) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Lesson, error)
	// GetWithCourse preloads the owning course.
	GetWithCourse(ctx context.Context, tx *gorm.DB, id uint) (*models.Lesson, error)
	ListByCourse(ctx context.Context, tx *gorm.DB, courseID uint) ([]models.Lesson, error)
}

type lessonRepo struct {
	db *gorm.DB
}

func NewLessonRepo(db *gorm.DB) LessonRepo {
	return &lessonRepo{db: db}
}

func (r *lessonRepo) Create(ctx context.Context, tx *gorm.DB, lesson *models.Lesson) error {
	return conn(ctx, r.db, tx).Omit("Course", "Progresses").Create(lesson).Error
}

func (r *lessonRepo) Save(ctx context.Context, tx *gorm.DB, lesson *models.Lesson) error {
	return conn(ctx, r.db, tx).Omit("Course", "Progresses").Save(lesson).Error
}

func (r *lessonRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	return conn(ctx, r.db, tx).Delete(&models.Lesson{}, id).Error
}

func (r *lessonRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Lesson, error) {
	var lesson models.Lesson
	if err := conn(ctx, r.db, tx).First(&lesson, id).Error; err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *lessonRepo) GetWithCourse(ctx context.Context, tx *gorm.DB, id uint) (*models.Lesson, error) {
	var lesson models.Lesson
	if err := conn(ctx, r.db, tx).Preload("Course").First(&lesson, id).Error; err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *lessonRepo) ListByCourse(ctx context.Context, tx *gorm.DB, courseID uint) ([]models.Lesson, error) {
	var lessons []models.Lesson
	if err := lessonSequence(conn(ctx, r.db, tx)).
		Preload("Course").
		Where("course_id = ?", courseID).
		Find(&lessons).Error; err != nil {
		return nil, err
	}
	return lessons, nil
}
