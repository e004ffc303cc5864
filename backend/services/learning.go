package services

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"slices"
	"time"

	"englishhub/backend/models"

	"github.com/samber/lo"
)

// LearningCourse is the course block of a My Learning entry.
type LearningCourse struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Level       string  `json:"level"`
	Duration    string  `json:"duration"`
	Category    string  `json:"category"`
	Image       *string `json:"image"`
	Students    int     `json:"students"`
	Rating      float64 `json:"rating"`
}

// LearningEntry is one enrolled course with the user's completion state.
type LearningEntry struct {
	EnrollmentID     uint           `json:"enrollmentId"`
	EnrolledAt       time.Time      `json:"enrolledAt"`
	Status           string         `json:"status"`
	CompletedAt      *time.Time     `json:"completedAt"`
	Course           LearningCourse `json:"course"`
	ProgressPercent  int            `json:"progressPercent"`
	CompletedLessons int            `json:"completedLessons"`
	TotalLessons     int            `json:"totalLessons"`
	LastLesson       *string        `json:"lastLesson"`
	NextLessonID     *uint          `json:"nextLessonId"`
}

// CourseProgressView is a catalog course with the user's completion summary.
type CourseProgressView struct {
	CourseView
	Progress         int     `json:"progress"`
	CompletedLessons int     `json:"completedLessons"`
	LastLesson       *string `json:"lastLesson"`
}

// GetMyLearning lists the user's enrolled courses, most recent enrollment first.
func (s *ProgressService) GetMyLearning(ctx context.Context, userID uint) ([]LearningEntry, error) {
	enrollments, err := s.store.Enrollments.ListLearning(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}

	entries := make([]LearningEntry, 0, len(enrollments))
	for _, enrollment := range enrollments {
		entry, ok := summarizeEnrollment(enrollment)
		if !ok {
			s.logger.Warn("enrollment without course", "user_id", userID, "enrollment_id", enrollment.ID)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// GetMyCourses lists every course with the user's completion summary.
func (s *ProgressService) GetMyCourses(ctx context.Context, userID uint) ([]CourseProgressView, error) {
	courses, err := s.store.Courses.ListNewestFirst(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	counts, err := s.store.Courses.LessonCounts(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("count lessons: %w", err)
	}
	rows, err := s.store.Progress.ListByUser(ctx, nil, userID, nil)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}

	byCourse := lo.GroupBy(rows, func(p models.Progress) uint { return p.CourseID })
	return lo.Map(courses, func(course models.Course, _ int) CourseProgressView {
		return courseProgress(annotate(course, counts[course.ID]), byCourse[course.ID])
	}), nil
}

// summarizeEnrollment derives completion state from the enrollment's course,
// lessons and the user's progress rows. ok is false for an orphan enrollment.
func summarizeEnrollment(enrollment models.Enrollment) (LearningEntry, bool) {
	course := enrollment.Course
	if course == nil {
		return LearningEntry{}, false
	}

	lessons := slices.Clone(course.Lessons)
	slices.SortStableFunc(lessons, func(a, b models.Lesson) int {
		if c := cmp.Compare(a.Order, b.Order); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	done := lo.Filter(lessons, func(l models.Lesson, _ int) bool {
		return lo.ContainsBy(l.Progresses, func(p models.Progress) bool { return p.Completed })
	})
	completed := lo.Associate(done, func(l models.Lesson) (uint, struct{}) {
		return l.ID, struct{}{}
	})

	entry := LearningEntry{
		EnrollmentID:     enrollment.ID,
		EnrolledAt:       enrollment.EnrolledAt,
		Status:           enrollment.Status,
		CompletedAt:      enrollment.CompletedAt,
		ProgressPercent:  percent(len(done), len(lessons)),
		CompletedLessons: len(done),
		TotalLessons:     len(lessons),
		LastLesson:       lastAccessedLesson(lessons),
		Course: LearningCourse{
			ID:          course.ID,
			Title:       course.Title,
			Description: course.Description,
			Level:       course.Level,
			Duration:    course.Duration,
			Category:    lo.Ternary(course.Category == "", models.DefaultCategory, course.Category),
			Image:       course.Image,
			Students:    syntheticStudents(course.ID),
			Rating:      syntheticRating(course.ID),
		},
	}

	if len(lessons) > 0 {
		next, found := lo.Find(lessons, func(l models.Lesson) bool {
			_, ok := completed[l.ID]
			return !ok
		})
		if !found {
			next = lessons[len(lessons)-1]
		}
		entry.NextLessonID = &next.ID
	}

	// Display only; the stored status is left alone.
	if entry.ProgressPercent == 100 {
		entry.Status = models.EnrollmentCompleted
	}
	return entry, true
}

// lastAccessedLesson picks, among lessons with progress, the one completed
// most recently. Rows without completedAt count as oldest; ties keep the
// earlier lesson. lessons must be in sequence order.
func lastAccessedLesson(lessons []models.Lesson) *string {
	var (
		title  *string
		latest time.Time
	)
	for i := range lessons {
		if len(lessons[i].Progresses) == 0 {
			continue
		}
		at := lo.Reduce(lessons[i].Progresses, func(acc time.Time, p models.Progress, _ int) time.Time {
			if p.CompletedAt != nil && p.CompletedAt.After(acc) {
				return *p.CompletedAt
			}
			return acc
		}, time.Time{})
		if title == nil || at.After(latest) {
			title = &lessons[i].Title
			latest = at
		}
	}
	return title
}

// courseProgress summarizes rows, ordered most recently updated first, for one course.
func courseProgress(view CourseView, rows []models.Progress) CourseProgressView {
	completed := lo.Uniq(lo.FilterMap(rows, func(p models.Progress, _ int) (uint, bool) {
		return p.LessonID, p.Completed
	}))

	out := CourseProgressView{
		CourseView:       view,
		Progress:         percent(len(completed), view.LessonCount),
		CompletedLessons: len(completed),
	}
	if len(rows) > 0 && rows[0].Lesson != nil {
		title := rows[0].Lesson.Title
		out.LastLesson = &title
	}
	return out
}

func percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(total)))
}
