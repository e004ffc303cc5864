package repository

import (
	"context"

	"englishhub/backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EnrollmentRepo interface {
	Get(ctx context.Context, tx *gorm.DB, userID, courseID uint) (*models.Enrollment, error)
	// CreateIfAbsent inserts the enrollment unless (user, course) already exists.
	// created is false when an existing row won.
	CreateIfAbsent(ctx context.Context, tx *gorm.DB, enrollment *models.Enrollment) (created bool, err error)
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	// GetWithCourse preloads the course and its lessons in sequence order.
	GetWithCourse(ctx context.Context, tx *gorm.DB, id uint) (*models.Enrollment, error)
	// ListLearning returns the user's enrollments, newest first, with course,
	// lessons and the user's own progress rows per lesson.
	ListLearning(ctx context.Context, tx *gorm.DB, userID uint) ([]models.Enrollment, error)
}

type enrollmentRepo struct {
	db *gorm.DB
}

func NewEnrollmentRepo(db *gorm.DB) EnrollmentRepo {
	return &enrollmentRepo{db: db}
}

func (r *enrollmentRepo) Get(ctx context.Context, tx *gorm.DB, userID, courseID uint) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	if err := conn(ctx, r.db, tx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&enrollment).Error; err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *enrollmentRepo) CreateIfAbsent(ctx context.Context, tx *gorm.DB, enrollment *models.Enrollment) (bool, error) {
	res := conn(ctx, r.db, tx).
		Omit("Course").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
			DoNothing: true,
		}).
		Create(enrollment)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *enrollmentRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	return conn(ctx, r.db, tx).Delete(&models.Enrollment{}, id).Error
}

func (r *enrollmentRepo) GetWithCourse(ctx context.Context, tx *gorm.DB, id uint) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	if err := conn(ctx, r.db, tx).
		Preload("Course").
		Preload("Course.Lessons", lessonSequence).
		First(&enrollment, id).Error; err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *enrollmentRepo) ListLearning(ctx context.Context, tx *gorm.DB, userID uint) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	if err := conn(ctx, r.db, tx).
		Preload("Course").
		Preload("Course.Lessons", lessonSequence).
		Preload("Course.Lessons.Progresses", "user_id = ?", userID).
		Where("user_id = ?", userID).
		Order("enrolled_at DESC").
		Order("id DESC").
		Find(&enrollments).Error; err != nil {
		return nil, err
	}
	return enrollments, nil
}
