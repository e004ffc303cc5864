package controllers

import (
	"englishhub/backend/services"
	"englishhub/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type CoursesController struct {
	Catalog    *services.CatalogService
	Enrollment *services.EnrollmentService
}

func NewCoursesController(catalog *services.CatalogService, enrollment *services.EnrollmentService) *CoursesController {
	return &CoursesController{Catalog: catalog, Enrollment: enrollment}
}

// GetCourses godoc
// @Summary List courses
// @Description Returns every course, newest first, with lesson counts
// @Tags courses
// @Produce json
// @Success 200 {object} utils.Envelope
// @Router /courses [get]
func (cc *CoursesController) GetCourses(c *fiber.Ctx) error {
	courses, err := cc.Catalog.ListCourses(c.UserContext())
	if err != nil {
		return err
	}
	return utils.Success(c, courses)
}

// GetCourse godoc
// @Summary Course details
// @Description Returns a course with its lessons in order
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} utils.Envelope
// @Failure 404 {object} utils.Envelope
// @Router /courses/{id} [get]
func (cc *CoursesController) GetCourse(c *fiber.Ctx) error {
	courseID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	course, err := cc.Catalog.GetCourse(c.UserContext(), courseID)
	if err != nil {
		return err
	}
	return utils.Success(c, course)
}

func (cc *CoursesController) CreateCourse(c *fiber.Ctx) error {
	var input services.CourseInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	course, err := cc.Catalog.CreateCourse(c.UserContext(), input)
	if err != nil {
		return err
	}
	return utils.Created(c, course)
}

// Enroll godoc
// @Summary Enroll in a course
// @Tags enrollment
// @Produce json
// @Param courseId path int true "Course ID"
// @Success 201 {object} utils.Envelope
// @Failure 400 {object} utils.Envelope "already enrolled"
// @Failure 404 {object} utils.Envelope
// @Security ApiKeyAuth
// @Router /courses/{courseId}/enroll [post]
func (cc *CoursesController) Enroll(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	courseID, err := paramID(c, "courseId")
	if err != nil {
		return err
	}

	enrollment, err := cc.Enrollment.Enroll(c.UserContext(), id.ID, courseID)
	if err != nil {
		return err
	}
	return utils.Created(c, fiber.Map{
		"message":    "enrolled successfully",
		"enrollment": enrollment,
	})
}

func (cc *CoursesController) Unenroll(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	courseID, err := paramID(c, "courseId")
	if err != nil {
		return err
	}

	if err := cc.Enrollment.Unenroll(c.UserContext(), id.ID, courseID); err != nil {
		return err
	}
	return utils.Success(c, fiber.Map{"message": "unenrolled successfully"})
}

func (cc *CoursesController) EnrollmentStatus(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	courseID, err := paramID(c, "courseId")
	if err != nil {
		return err
	}

	status, err := cc.Enrollment.Status(c.UserContext(), id.ID, courseID)
	if err != nil {
		return err
	}
	return utils.Success(c, status)
}
