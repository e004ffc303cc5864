package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"englishhub/backend/config"
	"englishhub/backend/models"
	"englishhub/backend/repository"
	"englishhub/backend/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:            "test",
		DBDriver:       "sqlite",
		DBPath:         fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		DBMaxOpenConns: 1,
		DBMaxIdleConns: 1,
		DBAutoMigrate:  true,
		JWTSecret:      "test-secret",
		JWTTTL:         time.Hour,
	}
}

func newTestServices(t *testing.T) (*Services, *repository.Store) {
	t.Helper()

	cfg := testConfig()
	db, err := utils.InitDB(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	store := repository.NewStore(db)
	return New(store, cfg, utils.NewNopLogger()), store
}

func seedUser(t *testing.T, store *repository.Store, email string) *models.User {
	t.Helper()
	user := &models.User{Name: "Test " + email, Email: email, Password: "not-a-hash"}
	require.NoError(t, store.Users.Create(context.Background(), nil, user))
	return user
}

// seedCourse creates a course with one lesson per order value, in the given order.
func seedCourse(t *testing.T, store *repository.Store, title string, orders ...int) (*models.Course, []models.Lesson) {
	t.Helper()
	ctx := context.Background()

	course := &models.Course{
		Title:       title,
		Description: title + " description",
		Level:       models.LevelBeginner,
		Duration:    "2 weeks",
	}
	require.NoError(t, store.Courses.Create(ctx, nil, course))

	lessons := make([]models.Lesson, 0, len(orders))
	for i, order := range orders {
		lesson := models.Lesson{
			CourseID: course.ID,
			Title:    fmt.Sprintf("%s lesson %d", title, i+1),
			Order:    order,
			Duration: "10 min",
		}
		require.NoError(t, store.Lessons.Create(ctx, nil, &lesson))
		lessons = append(lessons, lesson)
	}
	return course, lessons
}

func ptr[T any](v T) *T {
	return &v
}
