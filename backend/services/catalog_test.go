package services

import (
	"context"
	"testing"

	"englishhub/backend/apperr"
	"englishhub/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyntheticCourseStats(t *testing.T) {
	assert.Equal(t, 637, syntheticStudents(1))
	assert.Equal(t, 500+(15*137)%2000, syntheticStudents(15))
	assert.Equal(t, 4.6, syntheticRating(1))
	assert.Equal(t, 5.0, syntheticRating(7))
	assert.Equal(t, 4.6, syntheticRating(8))
	assert.Equal(t, 4.8, syntheticRating(5))
	assert.Equal(t, 4.5, syntheticRating(15))
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 0.3, round1(0.25))
	assert.Equal(t, 1.3, round1(1.25))
	assert.Equal(t, 0.0, round1(0))
	assert.Equal(t, 2.0, round1(1.96))
}

func TestListAndGetCourses(t *testing.T) {
	svc, store := newTestServices(t)
	ctx := context.Background()
	older, _ := seedCourse(t, store, "Older", 3, 1, 2)
	newer, _ := seedCourse(t, store, "Newer")

	courses, err := svc.Catalog.ListCourses(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, newer.ID, courses[0].ID)
	assert.Equal(t, 0, courses[0].LessonCount)
	assert.Equal(t, 3, courses[1].LessonCount)
	assert.Equal(t, models.DefaultCategory, courses[1].Category)
	assert.Empty(t, courses[1].Lessons, "listing does not embed lessons")

	course, err := svc.Catalog.GetCourse(ctx, older.ID)
	require.NoError(t, err)
	require.Len(t, course.Lessons, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{course.Lessons[0].Order, course.Lessons[1].Order, course.Lessons[2].Order})
	assert.Equal(t, syntheticStudents(older.ID), course.Students)

	_, err = svc.Catalog.GetCourse(ctx, 999)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestCreateCourse(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	_, err := svc.Catalog.CreateCourse(ctx, CourseInput{Title: "T", Description: "D", Level: "Expert", Duration: "1h"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.Catalog.CreateCourse(ctx, CourseInput{Title: "T", Level: models.LevelBeginner, Duration: "1h"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	course, err := svc.Catalog.CreateCourse(ctx, CourseInput{
		Title:       "Phrasal verbs",
		Description: "Everyday phrasal verbs",
		Level:       models.LevelIntermediate,
		Duration:    "3 weeks",
	})
	require.NoError(t, err)
	assert.NotZero(t, course.ID)
	assert.Equal(t, models.DefaultCategory, course.Category)
	assert.Nil(t, course.Image)
}
