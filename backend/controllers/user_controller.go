package controllers

import (
	"englishhub/backend/services"
	"englishhub/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// UserController serves the caller's own account and learning data.
type UserController struct {
	Auth     *services.AuthService
	Progress *services.ProgressService
}

func NewUserController(auth *services.AuthService, progress *services.ProgressService) *UserController {
	return &UserController{Auth: auth, Progress: progress}
}

// GetProfile godoc
// @Summary Get user profile
// @Description Returns authenticated user's profile data
// @Tags users
// @Produce json
// @Success 200 {object} utils.Envelope
// @Failure 401 {object} utils.Envelope
// @Failure 404 {object} utils.Envelope
// @Security ApiKeyAuth
// @Router /auth/profile [get]
func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	user, err := uc.Auth.GetProfile(c.UserContext(), id.ID)
	if err != nil {
		return err
	}
	return utils.Success(c, user)
}

// GetMyLearning godoc
// @Summary My Learning
// @Description Enrolled courses with completion percentage and the lesson to continue
// @Tags courses
// @Produce json
// @Success 200 {object} utils.Envelope
// @Failure 401 {object} utils.Envelope
// @Security ApiKeyAuth
// @Router /courses/my-learning [get]
func (uc *UserController) GetMyLearning(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	entries, err := uc.Progress.GetMyLearning(c.UserContext(), id.ID)
	if err != nil {
		return err
	}
	return utils.Success(c, entries)
}

func (uc *UserController) GetMyCourses(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	courses, err := uc.Progress.GetMyCourses(c.UserContext(), id.ID)
	if err != nil {
		return err
	}
	return utils.Success(c, courses)
}
