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

// ProgressInput is a partial update. Nil fields keep their stored value.
type ProgressInput struct {
	LessonID  *uint `json:"lessonId"`
	Progress  *int  `json:"progress"`
	Completed *bool `json:"completed"`
	TimeSpent *int  `json:"timeSpent"`
}

type ProgressResult struct {
	Progress     *models.Progress `json:"progress"`
	XPAdded      int              `json:"xpAdded"`
	CurrentLevel int              `json:"currentLevel"`
	LevelUp      bool             `json:"levelUp"`
	AutoEnrolled bool             `json:"autoEnrolled"`
}

type ProgressService struct {
	store        *repository.Store
	enrollment   *EnrollmentService
	gamification *GamificationService
	logger       *utils.Logger
}

func NewProgressService(store *repository.Store, enrollment *EnrollmentService, gamification *GamificationService, logger *utils.Logger) *ProgressService {
	return &ProgressService{
		store:        store,
		enrollment:   enrollment,
		gamification: gamification,
		logger:       logger,
	}
}

// RecordProgress upserts the user's progress on a lesson, enrolling the user
// in the lesson's course if needed. XP is granted on the first completion only.
// All writes of one call share a transaction that holds the user's stats lock.
func (s *ProgressService) RecordProgress(ctx context.Context, userID uint, in ProgressInput) (*ProgressResult, error) {
	if in.LessonID == nil || *in.LessonID == 0 {
		return nil, apperr.Validation("lessonId is required")
	}
	lessonID := *in.LessonID

	result := &ProgressResult{CurrentLevel: 1}
	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		lesson, err := s.store.Lessons.GetByID(ctx, tx, lessonID)
		if err != nil {
			return notFoundOr(err, msgLessonNotFound, "load lesson")
		}

		if _, err := s.store.Stats.EnsureForUpdate(ctx, tx, userID); err != nil {
			return fmt.Errorf("lock stats: %w", err)
		}
		enrolled, err := s.enrollment.AutoEnroll(ctx, tx, userID, lesson.CourseID)
		if err != nil {
			return err
		}
		result.AutoEnrolled = enrolled

		existing, err := s.store.Progress.GetForUpdate(ctx, tx, userID, lessonID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("load progress: %w", err)
		}

		row, firstCompletion := mergeProgress(existing, userID, lesson, in, time.Now().UTC())
		if existing == nil {
			err = s.store.Progress.Create(ctx, tx, row)
		} else {
			err = s.store.Progress.Save(ctx, tx, row)
		}
		if err != nil {
			return fmt.Errorf("save progress: %w", err)
		}
		result.Progress = row

		switch {
		case firstCompletion:
			reward, err := s.gamification.OnLessonFirstCompletion(ctx, tx, userID, LessonXP, intOrZero(in.TimeSpent))
			if err != nil {
				return err
			}
			result.XPAdded = reward.XPAdded
			result.CurrentLevel = reward.NewLevel
			result.LevelUp = reward.LevelUp
			s.logger.Info("lesson completed",
				"user_id", userID,
				"course_id", lesson.CourseID,
				"lesson_id", lessonID,
				"xp", reward.XPAdded,
			)
		case in.Completed != nil && *in.Completed:
			level, err := s.gamification.AddTimeSpent(ctx, tx, userID, intOrZero(in.TimeSpent))
			if err != nil {
				return err
			}
			result.CurrentLevel = level
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListProgress returns the user's progress rows, optionally for one course.
func (s *ProgressService) ListProgress(ctx context.Context, userID uint, courseID *uint) ([]models.Progress, error) {
	rows, err := s.store.Progress.ListByUser(ctx, nil, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	return rows, nil
}

// mergeProgress applies in to existing, or to a fresh row when existing is nil.
// Progress is clamped to 0..100, time spent never decreases, and the
// completion timestamp is kept from the first completion.
func mergeProgress(existing *models.Progress, userID uint, lesson *models.Lesson, in ProgressInput, now time.Time) (*models.Progress, bool) {
	row := existing
	if row == nil {
		row = &models.Progress{
			UserID:   userID,
			CourseID: lesson.CourseID,
			LessonID: lesson.ID,
		}
	}
	wasCompleted := row.Completed

	if in.Progress != nil {
		row.Progress = clamp(*in.Progress, 0, 100)
	}
	if in.TimeSpent != nil && *in.TimeSpent > row.TimeSpent {
		row.TimeSpent = *in.TimeSpent
	}
	if in.Completed != nil {
		row.Completed = *in.Completed
		if row.Completed && row.CompletedAt == nil {
			completedAt := now
			row.CompletedAt = &completedAt
		}
	}

	return row, row.Completed && !wasCompleted
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func intOrZero(v *int) int {
	if v == nil || *v < 0 {
		return 0
	}
	return *v
}
