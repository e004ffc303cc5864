package controllers

import (
	"englishhub/backend/services"
	"englishhub/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type ProgressController struct {
	Progress     *services.ProgressService
	Gamification *services.GamificationService
}

func NewProgressController(progress *services.ProgressService, gamification *services.GamificationService) *ProgressController {
	return &ProgressController{Progress: progress, Gamification: gamification}
}

// UpdateProgress godoc
// @Summary Record lesson progress
// @Description Partial update of the caller's progress on a lesson. Auto-enrolls in the course and grants 50 XP on first completion.
// @Tags progress
// @Accept json
// @Produce json
// @Param request body services.ProgressInput true "Progress update"
// @Success 200 {object} utils.Envelope
// @Failure 400 {object} utils.Envelope
// @Failure 401 {object} utils.Envelope
// @Failure 404 {object} utils.Envelope
// @Security ApiKeyAuth
// @Router /progress [post]
func (pc *ProgressController) UpdateProgress(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	var input services.ProgressInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	result, err := pc.Progress.RecordProgress(c.UserContext(), id.ID, input)
	if err != nil {
		return err
	}
	return utils.Success(c, result)
}

// GetProgress godoc
// @Summary Get user progress
// @Description Returns the caller's lesson progress rows, most recently updated first
// @Tags progress
// @Produce json
// @Success 200 {object} utils.Envelope
// @Failure 401 {object} utils.Envelope
// @Security ApiKeyAuth
// @Router /progress [get]
func (pc *ProgressController) GetProgress(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	rows, err := pc.Progress.ListProgress(c.UserContext(), id.ID, nil)
	if err != nil {
		return err
	}
	return utils.Success(c, rows)
}

func (pc *ProgressController) GetCourseProgress(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	courseID, err := paramID(c, "courseId")
	if err != nil {
		return err
	}

	rows, err := pc.Progress.ListProgress(c.UserContext(), id.ID, &courseID)
	if err != nil {
		return err
	}
	return utils.Success(c, rows)
}

// GetStats godoc
// @Summary Get learning stats
// @Description Lessons completed, study time, points and level of the caller
// @Tags progress
// @Produce json
// @Success 200 {object} utils.Envelope
// @Failure 401 {object} utils.Envelope
// @Security ApiKeyAuth
// @Router /progress/stats [get]
func (pc *ProgressController) GetStats(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	stats, err := pc.Gamification.GetStats(c.UserContext(), id.ID)
	if err != nil {
		return err
	}
	return utils.Success(c, stats)
}
