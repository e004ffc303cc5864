package controllers

import (
	"englishhub/backend/middleware"
	"englishhub/backend/services"
	"englishhub/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type LessonsController struct {
	Lessons *services.LessonService
}

func NewLessonsController(lessons *services.LessonService) *LessonsController {
	return &LessonsController{Lessons: lessons}
}

func (lc *LessonsController) GetLessonsByCourse(c *fiber.Ctx) error {
	courseID, err := paramID(c, "courseId")
	if err != nil {
		return err
	}

	lessons, err := lc.Lessons.ListByCourse(c.UserContext(), courseID)
	if err != nil {
		return err
	}
	return utils.Success(c, lessons)
}

// GetLesson godoc
// @Summary Lesson details
// @Description Lesson content, transcript, vocabulary and quiz. Includes the caller's progress when authenticated.
// @Tags lessons
// @Produce json
// @Param id path int true "Lesson ID"
// @Success 200 {object} utils.Envelope
// @Failure 404 {object} utils.Envelope
// @Router /lessons/{id} [get]
func (lc *LessonsController) GetLesson(c *fiber.Ctx) error {
	lessonID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	lesson, err := lc.Lessons.GetLesson(c.UserContext(), lessonID, middleware.CurrentIdentity(c))
	if err != nil {
		return err
	}
	return utils.Success(c, lesson)
}

func (lc *LessonsController) CreateLesson(c *fiber.Ctx) error {
	var input services.LessonInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	lesson, err := lc.Lessons.CreateLesson(c.UserContext(), input)
	if err != nil {
		return err
	}
	return utils.Created(c, lesson)
}

func (lc *LessonsController) UpdateLesson(c *fiber.Ctx) error {
	lessonID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var input services.LessonInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	lesson, err := lc.Lessons.UpdateLesson(c.UserContext(), lessonID, input)
	if err != nil {
		return err
	}
	return utils.Success(c, lesson)
}

func (lc *LessonsController) DeleteLesson(c *fiber.Ctx) error {
	lessonID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := lc.Lessons.DeleteLesson(c.UserContext(), lessonID); err != nil {
		return err
	}
	return utils.Success(c, fiber.Map{"message": "lesson deleted"})
}
