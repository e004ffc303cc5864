package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"englishhub/backend/apperr"
	"englishhub/backend/models"
	"englishhub/backend/repository"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	msgLessonNotFound     = "lesson not found"
	defaultLessonDuration = "0 min"
)

// CourseRef is the slice of a course embedded in lesson responses.
type CourseRef struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
	Level string `json:"level,omitempty"`
}

type LessonSummary struct {
	ID        uint       `json:"id"`
	CourseID  uint       `json:"courseId"`
	Title     string     `json:"title"`
	Duration  string     `json:"duration"`
	Order     int        `json:"order"`
	VideoURL  *string    `json:"videoUrl"`
	Thumbnail *string    `json:"thumbnail"`
	Course    *CourseRef `json:"Course"`
}

type LessonProgress struct {
	Completed bool `json:"completed"`
	Progress  int  `json:"progress"`
	TimeSpent int  `json:"timeSpent"`
}

// LessonDetail is the lesson page: content plus vocabulary and quiz lifted out of data.
type LessonDetail struct {
	ID           uint                       `json:"id"`
	CourseID     uint                       `json:"courseId"`
	Title        string                     `json:"title"`
	Duration     string                     `json:"duration"`
	Order        int                        `json:"order"`
	VideoURL     *string                    `json:"videoUrl"`
	Thumbnail    *string                    `json:"thumbnail"`
	Content      string                     `json:"content"`
	Transcript   []models.TranscriptSegment `json:"transcript"`
	Vocabulary   []models.VocabularyItem    `json:"vocabulary"`
	Quiz         json.RawMessage            `json:"quiz"`
	Course       *CourseRef                 `json:"Course"`
	UserProgress *LessonProgress            `json:"userProgress"`
	CreatedAt    time.Time                  `json:"createdAt"`
	UpdatedAt    time.Time                  `json:"updatedAt"`
}

// LessonInput carries create and partial update fields. Nil means not supplied.
type LessonInput struct {
	CourseID   *uint                       `json:"courseId"`
	Title      *string                     `json:"title"`
	Content    *string                     `json:"content"`
	Order      *int                        `json:"order"`
	Duration   *string                     `json:"duration"`
	VideoURL   *string                     `json:"videoUrl"`
	Thumbnail  *string                     `json:"thumbnail"`
	Transcript *[]models.TranscriptSegment `json:"transcript"`
	Data       *models.LessonData          `json:"data"`
}

type LessonService struct {
	store *repository.Store
}

func NewLessonService(store *repository.Store) *LessonService {
	return &LessonService{store: store}
}

func (s *LessonService) ListByCourse(ctx context.Context, courseID uint) ([]LessonSummary, error) {
	lessons, err := s.store.Lessons.ListByCourse(ctx, nil, courseID)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}

	out := make([]LessonSummary, 0, len(lessons))
	for _, l := range lessons {
		summary := LessonSummary{
			ID:        l.ID,
			CourseID:  l.CourseID,
			Title:     l.Title,
			Duration:  l.Duration,
			Order:     l.Order,
			VideoURL:  l.VideoURL,
			Thumbnail: l.Thumbnail,
		}
		if l.Course != nil {
			summary.Course = &CourseRef{ID: l.Course.ID, Title: l.Course.Title}
		}
		out = append(out, summary)
	}
	return out, nil
}

// GetLesson includes the caller's progress on the lesson when identity is set.
func (s *LessonService) GetLesson(ctx context.Context, id uint, identity *Identity) (*LessonDetail, error) {
	lesson, err := s.store.Lessons.GetWithCourse(ctx, nil, id)
	if err != nil {
		return nil, notFoundOr(err, msgLessonNotFound, "load lesson")
	}

	data := lesson.Data.Data()
	detail := &LessonDetail{
		ID:         lesson.ID,
		CourseID:   lesson.CourseID,
		Title:      lesson.Title,
		Duration:   lesson.Duration,
		Order:      lesson.Order,
		VideoURL:   lesson.VideoURL,
		Thumbnail:  lesson.Thumbnail,
		Content:    lesson.Content,
		Transcript: []models.TranscriptSegment(lesson.Transcript),
		Vocabulary: data.Vocabulary,
		Quiz:       data.Quiz,
		CreatedAt:  lesson.CreatedAt,
		UpdatedAt:  lesson.UpdatedAt,
	}
	if detail.Transcript == nil {
		detail.Transcript = []models.TranscriptSegment{}
	}
	if detail.Vocabulary == nil {
		detail.Vocabulary = []models.VocabularyItem{}
	}
	if len(detail.Quiz) == 0 {
		detail.Quiz = json.RawMessage("null")
	}
	if lesson.Course != nil {
		detail.Course = &CourseRef{ID: lesson.Course.ID, Title: lesson.Course.Title, Level: lesson.Course.Level}
	}

	if identity != nil {
		progress, err := s.store.Progress.Get(ctx, nil, identity.ID, lesson.ID)
		switch {
		case err == nil:
			detail.UserProgress = &LessonProgress{
				Completed: progress.Completed,
				Progress:  progress.Progress,
				TimeSpent: progress.TimeSpent,
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, fmt.Errorf("load lesson progress: %w", err)
		}
	}
	return detail, nil
}

func (s *LessonService) CreateLesson(ctx context.Context, in LessonInput) (*models.Lesson, error) {
	if in.CourseID == nil || *in.CourseID == 0 || in.Title == nil || *in.Title == "" || in.Order == nil {
		return nil, apperr.Validation("courseId, title and order are required")
	}
	if _, err := s.store.Courses.GetByID(ctx, nil, *in.CourseID); err != nil {
		return nil, notFoundOr(err, msgCourseNotFound, "load course")
	}

	lesson := models.Lesson{
		CourseID:   *in.CourseID,
		Duration:   defaultLessonDuration,
		Transcript: datatypes.JSONSlice[models.TranscriptSegment]{},
		Data:       datatypes.NewJSONType(models.LessonData{}),
	}
	applyLessonInput(&lesson, in)

	if err := s.store.Lessons.Create(ctx, nil, &lesson); err != nil {
		return nil, fmt.Errorf("create lesson: %w", err)
	}
	return &lesson, nil
}

// UpdateLesson changes only the supplied fields. The owning course is fixed.
func (s *LessonService) UpdateLesson(ctx context.Context, id uint, in LessonInput) (*models.Lesson, error) {
	lesson, err := s.store.Lessons.GetByID(ctx, nil, id)
	if err != nil {
		return nil, notFoundOr(err, msgLessonNotFound, "load lesson")
	}

	in.CourseID = nil
	applyLessonInput(lesson, in)

	if err := s.store.Lessons.Save(ctx, nil, lesson); err != nil {
		return nil, fmt.Errorf("update lesson: %w", err)
	}
	return lesson, nil
}

func (s *LessonService) DeleteLesson(ctx context.Context, id uint) error {
	if _, err := s.store.Lessons.GetByID(ctx, nil, id); err != nil {
		return notFoundOr(err, msgLessonNotFound, "load lesson")
	}
	if err := s.store.Lessons.Delete(ctx, nil, id); err != nil {
		return fmt.Errorf("delete lesson: %w", err)
	}
	return nil
}

func applyLessonInput(lesson *models.Lesson, in LessonInput) {
	if in.Title != nil {
		lesson.Title = *in.Title
	}
	if in.Content != nil {
		lesson.Content = *in.Content
	}
	if in.Order != nil {
		lesson.Order = *in.Order
	}
	if in.Duration != nil && *in.Duration != "" {
		lesson.Duration = *in.Duration
	}
	if in.VideoURL != nil {
		lesson.VideoURL = emptyToNil(in.VideoURL)
	}
	if in.Thumbnail != nil {
		lesson.Thumbnail = emptyToNil(in.Thumbnail)
	}
	if in.Transcript != nil {
		lesson.Transcript = datatypes.JSONSlice[models.TranscriptSegment](*in.Transcript)
	}
	if in.Data != nil {
		lesson.Data = datatypes.NewJSONType(*in.Data)
	}
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
