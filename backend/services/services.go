package services

import (
	"errors"
	"fmt"

	"englishhub/backend/apperr"
	"englishhub/backend/config"
	"englishhub/backend/repository"
	"englishhub/backend/utils"

	"gorm.io/gorm"
)

// Services groups the domain services the controllers depend on.
type Services struct {
	Auth         *AuthService
	Catalog      *CatalogService
	Lessons      *LessonService
	Enrollment   *EnrollmentService
	Progress     *ProgressService
	Gamification *GamificationService
	Games        *GameService
}

func New(store *repository.Store, cfg *config.Config, logger *utils.Logger) *Services {
	gamification := NewGamificationService(store, logger)
	enrollment := NewEnrollmentService(store, logger)

	return &Services{
		Auth:         NewAuthService(store, cfg, logger),
		Catalog:      NewCatalogService(store),
		Lessons:      NewLessonService(store),
		Enrollment:   enrollment,
		Progress:     NewProgressService(store, enrollment, gamification, logger),
		Gamification: gamification,
		Games:        NewGameService(store, gamification, logger),
	}
}

// notFoundOr turns a missing row into a NotFound error and wraps anything else.
func notFoundOr(err error, msg, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(msg)
	}
	return fmt.Errorf("%s: %w", op, err)
}
