package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"englishhub/backend/apperr"
	"englishhub/backend/models"
	"englishhub/backend/repository"
	"englishhub/backend/utils"

	"gorm.io/gorm"
)

const (
	msgAlreadyEnrolled = "already enrolled in this course"
	msgNotEnrolled     = "not enrolled in this course"
)

type EnrollmentStatus struct {
	IsEnrolled bool               `json:"isEnrolled"`
	Enrollment *models.Enrollment `json:"enrollment"`
}

type EnrollmentService struct {
	store  *repository.Store
	logger *utils.Logger
}

func NewEnrollmentService(store *repository.Store, logger *utils.Logger) *EnrollmentService {
	return &EnrollmentService{store: store, logger: logger}
}

// Enroll returns the new enrollment with its course and lessons. An existing
// enrollment, including one inserted by a concurrent request, is a conflict
// carrying that enrollment.
func (s *EnrollmentService) Enroll(ctx context.Context, userID, courseID uint) (*models.Enrollment, error) {
	if _, err := s.store.Courses.GetByID(ctx, nil, courseID); err != nil {
		return nil, notFoundOr(err, msgCourseNotFound, "load course")
	}

	existing, err := s.store.Enrollments.Get(ctx, nil, userID, courseID)
	if err == nil {
		return nil, apperr.Conflict(msgAlreadyEnrolled).With("enrollment", existing)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("load enrollment: %w", err)
	}

	enrollment := newEnrollment(userID, courseID)
	created, err := s.store.Enrollments.CreateIfAbsent(ctx, nil, enrollment)
	if err != nil {
		return nil, fmt.Errorf("create enrollment: %w", err)
	}
	if !created {
		existing, err := s.store.Enrollments.Get(ctx, nil, userID, courseID)
		if err != nil {
			return nil, fmt.Errorf("load enrollment: %w", err)
		}
		return nil, apperr.Conflict(msgAlreadyEnrolled).With("enrollment", existing)
	}

	s.logger.Info("user enrolled", "user_id", userID, "course_id", courseID)

	full, err := s.store.Enrollments.GetWithCourse(ctx, nil, enrollment.ID)
	if err != nil {
		return nil, fmt.Errorf("load enrollment: %w", err)
	}
	return full, nil
}

// Unenroll removes the enrollment only. Lesson progress is kept so a later
// enrollment resumes where the user left off.
func (s *EnrollmentService) Unenroll(ctx context.Context, userID, courseID uint) error {
	enrollment, err := s.store.Enrollments.Get(ctx, nil, userID, courseID)
	if err != nil {
		return notFoundOr(err, msgNotEnrolled, "load enrollment")
	}
	if err := s.store.Enrollments.Delete(ctx, nil, enrollment.ID); err != nil {
		return fmt.Errorf("delete enrollment: %w", err)
	}
	s.logger.Info("user unenrolled", "user_id", userID, "course_id", courseID)
	return nil
}

func (s *EnrollmentService) Status(ctx context.Context, userID, courseID uint) (*EnrollmentStatus, error) {
	enrollment, err := s.store.Enrollments.Get(ctx, nil, userID, courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &EnrollmentStatus{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load enrollment: %w", err)
	}
	return &EnrollmentStatus{IsEnrolled: true, Enrollment: enrollment}, nil
}

// AutoEnroll makes sure the enrollment exists inside tx. It never conflicts.
func (s *EnrollmentService) AutoEnroll(ctx context.Context, tx *gorm.DB, userID, courseID uint) (bool, error) {
	created, err := s.store.Enrollments.CreateIfAbsent(ctx, tx, newEnrollment(userID, courseID))
	if err != nil {
		return false, fmt.Errorf("auto-enroll: %w", err)
	}
	if created {
		s.logger.Info("user auto-enrolled", "user_id", userID, "course_id", courseID)
	}
	return created, nil
}

func newEnrollment(userID, courseID uint) *models.Enrollment {
	return &models.Enrollment{
		UserID:     userID,
		CourseID:   courseID,
		Status:     models.EnrollmentActive,
		EnrolledAt: time.Now().UTC(),
	}
}
