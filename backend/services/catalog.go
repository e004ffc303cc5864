package services

import (
	"context"
	"fmt"
	"math"
	"math/big"
	"strings"

	"englishhub/backend/apperr"
	"englishhub/backend/models"
	"englishhub/backend/repository"
)

const msgCourseNotFound = "course not found"

// CourseView is a course annotated for listing pages.
type CourseView struct {
	models.Course
	LessonCount int     `json:"lessons"`
	Students    int     `json:"students"`
	Rating      float64 `json:"rating"`
}

type CourseInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Level       string  `json:"level"`
	Duration    string  `json:"duration"`
	Image       *string `json:"image"`
	Category    *string `json:"category"`
}

type CatalogService struct {
	store *repository.Store
}

func NewCatalogService(store *repository.Store) *CatalogService {
	return &CatalogService{store: store}
}

func (s *CatalogService) ListCourses(ctx context.Context) ([]CourseView, error) {
	courses, err := s.store.Courses.ListNewestFirst(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	counts, err := s.store.Courses.LessonCounts(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("count lessons: %w", err)
	}

	views := make([]CourseView, 0, len(courses))
	for _, course := range courses {
		views = append(views, annotate(course, counts[course.ID]))
	}
	return views, nil
}

// GetCourse returns the course with its lessons in sequence order.
func (s *CatalogService) GetCourse(ctx context.Context, id uint) (*CourseView, error) {
	course, err := s.store.Courses.GetWithLessons(ctx, nil, id)
	if err != nil {
		return nil, notFoundOr(err, msgCourseNotFound, "load course")
	}
	view := annotate(*course, len(course.Lessons))
	return &view, nil
}

func (s *CatalogService) CreateCourse(ctx context.Context, in CourseInput) (*models.Course, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Description) == "" ||
		in.Level == "" || strings.TrimSpace(in.Duration) == "" {
		return nil, apperr.Validation("title, description, level and duration are required")
	}
	if !models.ValidCourseLevel(in.Level) {
		return nil, apperr.Validation("level must be one of Beginner, Intermediate, Advanced")
	}

	course := models.Course{
		Title:       in.Title,
		Description: in.Description,
		Level:       in.Level,
		Duration:    in.Duration,
		Category:    models.DefaultCategory,
	}
	if in.Image != nil && *in.Image != "" {
		course.Image = in.Image
	}
	if in.Category != nil && strings.TrimSpace(*in.Category) != "" {
		course.Category = *in.Category
	}

	if err := s.store.Courses.Create(ctx, nil, &course); err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}
	return &course, nil
}

func annotate(course models.Course, lessons int) CourseView {
	if course.Category == "" {
		course.Category = models.DefaultCategory
	}
	return CourseView{
		Course:      course,
		LessonCount: lessons,
		Students:    syntheticStudents(course.ID),
		Rating:      syntheticRating(course.ID),
	}
}

// syntheticStudents and syntheticRating are cosmetic placeholders derived
// from the course id. They are not real enrollment or review data.
func syntheticStudents(id uint) int {
	return 500 + int(id*137%2000)
}

func syntheticRating(id uint) float64 {
	return round1(4.5 + math.Mod(float64(id)*0.07, 0.5))
}

// round1 rounds a non-negative v to one decimal from its exact binary value,
// with halves going up.
func round1(v float64) float64 {
	x := new(big.Float).SetPrec(256).SetFloat64(v)
	x.Mul(x, big.NewFloat(10))
	x.Add(x, big.NewFloat(0.5))
	tenths, _ := x.Int(nil)
	f, _ := new(big.Float).SetInt(tenths).Float64()
	return f / 10
}
