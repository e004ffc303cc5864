package services

import (
	"context"
	"encoding/json"
	"testing"

	"englishhub/backend/apperr"
	"englishhub/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLessonLifecycle(t *testing.T) {
	svc, store := newTestServices(t)
	ctx := context.Background()
	course, _ := seedCourse(t, store, "Vocabulary")

	_, err := svc.Lessons.CreateLesson(ctx, LessonInput{CourseID: &course.ID, Title: ptr("No order")})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.Lessons.CreateLesson(ctx, LessonInput{CourseID: ptr(uint(999)), Title: ptr("Lost"), Order: ptr(1)})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	lesson, err := svc.Lessons.CreateLesson(ctx, LessonInput{
		CourseID: &course.ID,
		Title:    ptr("Food"),
		Order:    ptr(1),
		Transcript: &[]models.TranscriptSegment{
			{ID: 1, StartTime: 0, EndTime: 2.5, Text: "Hello", Speaker: "Teacher"},
		},
		Data: &models.LessonData{
			Vocabulary: []models.VocabularyItem{{Word: "apple", Meaning: "a fruit"}},
			Quiz:       json.RawMessage(`{"questions":[]}`),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, defaultLessonDuration, lesson.Duration)
	assert.Empty(t, lesson.Content)

	updated, err := svc.Lessons.UpdateLesson(ctx, lesson.ID, LessonInput{Title: ptr("Food and drink")})
	require.NoError(t, err)
	assert.Equal(t, "Food and drink", updated.Title)
	assert.Equal(t, 1, updated.Order)

	detail, err := svc.Lessons.GetLesson(ctx, lesson.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "Food and drink", detail.Title)
	require.Len(t, detail.Transcript, 1)
	assert.Equal(t, "Hello", detail.Transcript[0].Text)
	require.Len(t, detail.Vocabulary, 1)
	assert.Equal(t, "apple", detail.Vocabulary[0].Word)
	assert.JSONEq(t, `{"questions":[]}`, string(detail.Quiz))
	require.NotNil(t, detail.Course)
	assert.Equal(t, course.Title, detail.Course.Title)
	assert.Nil(t, detail.UserProgress)

	summaries, err := svc.Lessons.ListByCourse(ctx, course.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, course.ID, summaries[0].Course.ID)

	require.NoError(t, svc.Lessons.DeleteLesson(ctx, lesson.ID))
	_, err = svc.Lessons.GetLesson(ctx, lesson.ID, nil)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(svc.Lessons.DeleteLesson(ctx, lesson.ID)))
}

func TestGetLesson_WithCallerProgress(t *testing.T) {
	svc, store := newTestServices(t)
	ctx := context.Background()
	user := seedUser(t, store, "reader@example.com")
	_, lessons := seedCourse(t, store, "Reading", 1)

	_, err := svc.Progress.RecordProgress(ctx, user.ID, ProgressInput{LessonID: &lessons[0].ID, Progress: ptr(70), TimeSpent: ptr(45)})
	require.NoError(t, err)

	detail, err := svc.Lessons.GetLesson(ctx, lessons[0].ID, &Identity{ID: user.ID})
	require.NoError(t, err)
	require.NotNil(t, detail.UserProgress)
	assert.Equal(t, LessonProgress{Completed: false, Progress: 70, TimeSpent: 45}, *detail.UserProgress)
	assert.Empty(t, detail.Transcript)
	assert.Equal(t, "null", string(detail.Quiz))

	other := seedUser(t, store, "other@example.com")
	detail, err = svc.Lessons.GetLesson(ctx, lessons[0].ID, &Identity{ID: other.ID})
	require.NoError(t, err)
	assert.Nil(t, detail.UserProgress)
}

func TestDeleteLesson_RemovesProgress(t *testing.T) {
	svc, store := newTestServices(t)
	ctx := context.Background()
	user := seedUser(t, store, "cascade@example.com")
	_, lessons := seedCourse(t, store, "Cascade", 1)

	_, err := svc.Progress.RecordProgress(ctx, user.ID, ProgressInput{LessonID: &lessons[0].ID, Completed: ptr(true)})
	require.NoError(t, err)
	require.NoError(t, svc.Lessons.DeleteLesson(ctx, lessons[0].ID))

	rows, err := svc.Progress.ListProgress(ctx, user.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
