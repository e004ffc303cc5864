package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"englishhub/backend/apperr"
	"englishhub/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeProgress(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	lesson := &models.Lesson{ID: 5, CourseID: 2}

	t.Run("create defaults", func(t *testing.T) {
		row, first := mergeProgress(nil, 1, lesson, ProgressInput{LessonID: ptr(uint(5))}, now)
		assert.False(t, first)
		assert.Equal(t, uint(2), row.CourseID)
		assert.Zero(t, row.Progress)
		assert.Zero(t, row.TimeSpent)
		assert.False(t, row.Completed)
		assert.Nil(t, row.CompletedAt)
	})

	t.Run("clamps and keeps the longest time", func(t *testing.T) {
		existing := &models.Progress{Progress: 40, TimeSpent: 300}
		row, _ := mergeProgress(existing, 1, lesson, ProgressInput{Progress: ptr(150), TimeSpent: ptr(120)}, now)
		assert.Equal(t, 100, row.Progress)
		assert.Equal(t, 300, row.TimeSpent)

		row, _ = mergeProgress(existing, 1, lesson, ProgressInput{Progress: ptr(-3)}, now)
		assert.Zero(t, row.Progress)
	})

	t.Run("completed follows input, timestamp is kept", func(t *testing.T) {
		earlier := now.Add(-time.Hour)
		row, first := mergeProgress(&models.Progress{Completed: true, CompletedAt: &earlier}, 1, lesson, ProgressInput{Completed: ptr(false)}, now)
		assert.False(t, first)
		assert.False(t, row.Completed)
		assert.Equal(t, earlier, *row.CompletedAt)

		row, first = mergeProgress(&models.Progress{Completed: true, CompletedAt: &earlier}, 1, lesson, ProgressInput{Completed: ptr(true)}, now)
		assert.False(t, first)
		assert.Equal(t, earlier, *row.CompletedAt)

		row, _ = mergeProgress(&models.Progress{Completed: true, CompletedAt: &earlier}, 1, lesson, ProgressInput{Progress: ptr(10)}, now)
		assert.True(t, row.Completed)
	})

	t.Run("first completion stamps time", func(t *testing.T) {
		row, first := mergeProgress(&models.Progress{Progress: 90}, 1, lesson, ProgressInput{Completed: ptr(true)}, now)
		assert.True(t, first)
		assert.Equal(t, now, *row.CompletedAt)
		assert.Equal(t, 90, row.Progress)
	})
}

func TestRecordProgress_AutoEnrollsAndAwardsXP(t *testing.T) {
	svc, store := newTestServices(t)
	ctx := context.Background()
	user := seedUser(t, store, "b@example.com")
	course, lessons := seedCourse(t, store, "Basics", 1, 2)

	result, err := svc.Progress.RecordProgress(ctx, user.ID, ProgressInput{
		LessonID:  &lessons[0].ID,
		Completed: ptr(true),
		TimeSpent: ptr(120),
	})
	require.NoError(t, err)

	assert.Equal(t, 50, result.XPAdded)
	assert.Equal(t, 1, result.CurrentLevel)
	assert.False(t, result.LevelUp)
	assert.True(t, result.Progress.Completed)
	assert.True(t, result.AutoEnrolled)
	assert.Equal(t, course.ID, result.Progress.CourseID)

	status, err := svc.Enrollment.Status(ctx, user.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, status.IsEnrolled)

	learning, err := svc.Progress.GetMyLearning(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, learning, 1)
	assert.Equal(t, 1, learning[0].CompletedLessons)
	assert.Equal(t, 2, learning[0].TotalLessons)
	assert.Equal(t, 50, learning[0].ProgressPercent)
	assert.Equal(t, lessons[1].ID, *learning[0].NextLessonID)

	stats, err := svc.Gamification.GetStats(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.LessonsCompleted)
	assert.Equal(t, 50, stats.Points)
	assert.Equal(t, 120, stats.TotalTimeSpentSeconds)
}

func TestRecordProgress_SecondCompletionGrantsNothing(t *testing.T) {
	svc, store := newTestServices(t)
	ctx := context.Background()
	user := seedUser(t, store, "twice@example.com")
	_, lessons := seedCourse(t, store, "Twice", 1)

	in := ProgressInput{LessonID: &lessons[0].ID, Completed: ptr(true), TimeSpent: ptr(60)}
	_, err := svc.Progress.RecordProgress(ctx, user.ID, in)
	require.NoError(t, err)

	in.TimeSpent = ptr(30)
	second, err := svc.Progress.RecordProgress(ctx, user.ID, in)
	require.NoError(t, err)
	assert.False(t, second.AutoEnrolled)
	assert.Zero(t, second.XPAdded)
	assert.False(t, second.LevelUp)
	assert.Equal(t, 1, second.CurrentLevel)
	assert.Equal(t, 60, second.Progress.TimeSpent, "row time never decreases")

	stats, err := svc.Gamification.GetStats(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.LessonsCompleted)
	assert.Equal(t, 50, stats.Points)
	assert.Equal(t, 90, stats.TotalTimeSpentSeconds, "re-completion still accrues study time")
}

func TestRecordProgress_UncompleteKeepsTimestamp(t *testing.T) {
	svc, store := newTestServices(t)
	ctx := context.Background()
	user := seedUser(t, store, "undo@example.com")
	_, lessons := seedCourse(t, store, "Undo", 1)

	first, err := svc.Progress.RecordProgress(ctx, user.ID, ProgressInput{LessonID: &lessons[0].ID, Completed: ptr(true)})
	require.NoError(t, err)
	require.NotNil(t, first.Progress.CompletedAt)
	completedAt := *first.Progress.CompletedAt

	undone, err := svc.Progress.RecordProgress(ctx, user.ID, ProgressInput{LessonID: &lessons[0].ID, Completed: ptr(false)})
	require.NoError(t, err)
	assert.False(t, undone.Progress.Completed)
	require.NotNil(t, undone.Progress.CompletedAt)
	assert.True(t, completedAt.Equal(*undone.Progress.CompletedAt))
	assert.Zero(t, undone.XPAdded)

	rows, err := svc.Progress.ListProgress(ctx, user.ID, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.False(t, rows[0].Completed)
}

func TestRecordProgress_PartialUpdateWithoutCompletion(t *testing.T) {
	svc, store := newTestServices(t)
	ctx := context.Background()
	user := seedUser(t, store, "partial@example.com")
	_, lessons := seedCourse(t, store, "Partial", 1)

	result, err := svc.Progress.RecordProgress(ctx, user.ID, ProgressInput{LessonID: &lessons[0].ID, Progress: ptr(40)})
	require.NoError(t, err)
	assert.Equal(t, 40, result.Progress.Progress)
	assert.Equal(t, 1, result.CurrentLevel)
	assert.Zero(t, result.XPAdded)

	result, err = svc.Progress.RecordProgress(ctx, user.ID, ProgressInput{LessonID: &lessons[0].ID, TimeSpent: ptr(200)})
	require.NoError(t, err)
	assert.Equal(t, 40, result.Progress.Progress)
	assert.Equal(t, 200, result.Progress.TimeSpent)

	rows, err := svc.Progress.ListProgress(ctx, user.ID, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].Lesson)
	assert.Equal(t, lessons[0].Title, rows[0].Lesson.Title)
}

func TestRecordProgress_Validation(t *testing.T) {
	svc, store := newTestServices(t)
	user := seedUser(t, store, "v@example.com")

	_, err := svc.Progress.RecordProgress(context.Background(), user.ID, ProgressInput{})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.Progress.RecordProgress(context.Background(), user.ID, ProgressInput{LessonID: ptr(uint(999))})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestRecordProgress_LevelIsMonotonic(t *testing.T) {
	svc, store := newTestServices(t)
	ctx := context.Background()
	user := seedUser(t, store, "grind@example.com")

	orders := make([]int, 21)
	for i := range orders {
		orders[i] = i + 1
	}
	_, lessons := seedCourse(t, store, "Long", orders...)

	level := 1
	for i, lesson := range lessons {
		result, err := svc.Progress.RecordProgress(ctx, user.ID, ProgressInput{LessonID: &lesson.ID, Completed: ptr(true)})
		require.NoError(t, err)

		points := (i + 1) * LessonXP
		assert.Equal(t, points/LessonLevelThreshold+1, result.CurrentLevel)
		assert.GreaterOrEqual(t, result.CurrentLevel, level)
		assert.Equal(t, result.CurrentLevel > level, result.LevelUp)
		level = result.CurrentLevel
	}
	assert.Equal(t, 2, level)
}

func TestRecordProgress_ConcurrentCompletionsCountOnce(t *testing.T) {
	svc, store := newTestServices(t)
	ctx := context.Background()
	user := seedUser(t, store, "race@example.com")
	_, lessons := seedCourse(t, store, "Race", 1)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Progress.RecordProgress(ctx, user.ID, ProgressInput{LessonID: &lessons[0].ID, Completed: ptr(true)})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	stats, err := svc.Gamification.GetStats(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.LessonsCompleted)
	assert.Equal(t, LessonXP, stats.Points)
}

func TestGetMyLearning_Idempotent(t *testing.T) {
	svc, store := newTestServices(t)
	ctx := context.Background()
	user := seedUser(t, store, "idem@example.com")
	_, lessons := seedCourse(t, store, "Idem", 1, 2, 3)
	_, err := svc.Progress.RecordProgress(ctx, user.ID, ProgressInput{LessonID: &lessons[1].ID, Completed: ptr(true)})
	require.NoError(t, err)

	first, err := svc.Progress.GetMyLearning(ctx, user.ID)
	require.NoError(t, err)
	second, err := svc.Progress.GetMyLearning(ctx, user.ID)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	require.Len(t, first, 1)
	assert.Equal(t, lessons[0].ID, *first[0].NextLessonID)
	assert.Equal(t, 33, first[0].ProgressPercent)
}

func TestGetMyLearning_ZeroLessonCourse(t *testing.T) {
	svc, store := newTestServices(t)
	ctx := context.Background()
	user := seedUser(t, store, "empty@example.com")
	course, _ := seedCourse(t, store, "Empty")

	_, err := svc.Enrollment.Enroll(ctx, user.ID, course.ID)
	require.NoError(t, err)

	learning, err := svc.Progress.GetMyLearning(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, learning, 1)
	assert.Zero(t, learning[0].ProgressPercent)
	assert.Nil(t, learning[0].NextLessonID)
	assert.Nil(t, learning[0].LastLesson)
}

func TestUnenroll_KeepsProgress(t *testing.T) {
	svc, store := newTestServices(t)
	ctx := context.Background()
	user := seedUser(t, store, "resume@example.com")
	course, lessons := seedCourse(t, store, "Resume", 1, 2)

	_, err := svc.Progress.RecordProgress(ctx, user.ID, ProgressInput{LessonID: &lessons[0].ID, Completed: ptr(true)})
	require.NoError(t, err)
	require.NoError(t, svc.Enrollment.Unenroll(ctx, user.ID, course.ID))

	learning, err := svc.Progress.GetMyLearning(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, learning)

	_, err = svc.Enrollment.Enroll(ctx, user.ID, course.ID)
	require.NoError(t, err)
	learning, err = svc.Progress.GetMyLearning(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, learning, 1)
	assert.Equal(t, 1, learning[0].CompletedLessons)
	assert.Equal(t, lessons[1].ID, *learning[0].NextLessonID)
}

func TestGetMyCourses(t *testing.T) {
	svc, store := newTestServices(t)
	ctx := context.Background()
	user := seedUser(t, store, "legacy@example.com")
	course, lessons := seedCourse(t, store, "Legacy", 1, 2, 3, 4)
	seedCourse(t, store, "Untouched", 1)

	_, err := svc.Progress.RecordProgress(ctx, user.ID, ProgressInput{LessonID: &lessons[0].ID, Completed: ptr(true)})
	require.NoError(t, err)

	courses, err := svc.Progress.GetMyCourses(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, courses, 2)

	var legacy CourseProgressView
	for _, c := range courses {
		if c.ID == course.ID {
			legacy = c
		}
	}
	assert.Equal(t, 4, legacy.LessonCount)
	assert.Equal(t, 25, legacy.Progress)
	assert.Equal(t, 1, legacy.CompletedLessons)
	require.NotNil(t, legacy.LastLesson)
	assert.Equal(t, lessons[0].Title, *legacy.LastLesson)
}
