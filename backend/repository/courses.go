package repository

import (
	"context"

	"englishhub/backend/models"

	"gorm.io/gorm"
)

type CourseRepo interface {
	Create(ctx context.Context, tx *gorm.DB, course *models.Course) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Course, error)
	// GetWithLessons preloads the course's lessons in sequence order.
	GetWithLessons(ctx context.Context, tx *gorm.DB, id uint) (*models.Course, error)
	ListNewestFirst(ctx context.Context, tx *gorm.DB) ([]models.Course, error)
	LessonCounts(ctx context.Context, tx *gorm.DB) (map[uint]int, error)
}

type courseRepo struct {
	db *gorm.DB
}

func NewCourseRepo(db *gorm.DB) CourseRepo {
	return &courseRepo{db: db}
}

func (r *courseRepo) Create(ctx context.Context, tx *gorm.DB, course *models.Course) error {
	return conn(ctx, r.db, tx).Create(course).Error
}

func (r *courseRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Course, error) {
	var course models.Course
	if err := conn(ctx, r.db, tx).First(&course, id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) GetWithLessons(ctx context.Context, tx *gorm.DB, id uint) (*models.Course, error) {
	var course models.Course
	if err := conn(ctx, r.db, tx).
		Preload("Lessons", lessonSequence).
		First(&course, id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) ListNewestFirst(ctx context.Context, tx *gorm.DB) ([]models.Course, error) {
	var courses []models.Course
	if err := conn(ctx, r.db, tx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepo) LessonCounts(ctx context.Context, tx *gorm.DB) (map[uint]int, error) {
	var rows []struct {
		CourseID uint
		Total    int
	}
	if err := conn(ctx, r.db, tx).
		Model(&models.Lesson{}).
		Select("course_id, COUNT(*) AS total").
		Group("course_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[uint]int, len(rows))
	for _, row := range rows {
		counts[row.CourseID] = row.Total
	}
	return counts, nil
}
