package routes

import (
	"strings"

	"englishhub/backend/config"
	"englishhub/backend/controllers"
	"englishhub/backend/middleware"
	"englishhub/backend/repository"
	"englishhub/backend/services"
	"englishhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NewApp builds the Fiber application with every route mounted.
func NewApp(cfg *config.Config, db *gorm.DB, logger *utils.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "english-platform",
		ErrorHandler: utils.ErrorHandler(logger, cfg.IsDevelopment()),
	})

	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: strings.Join([]string{
			fiber.MethodGet, fiber.MethodPost, fiber.MethodPut,
			fiber.MethodDelete, fiber.MethodPatch, fiber.MethodOptions,
		}, ","),
	}))
	app.Use(middleware.LoggingMiddleware(logger))
	// Inside the logger so a recovered panic is still logged as a 500.
	app.Use(recover.New())

	svc := services.New(repository.NewStore(db), cfg, logger)
	SetupRoutes(app, svc, db)
	return app
}

func SetupRoutes(app *fiber.App, svc *services.Services, db *gorm.DB) {
	authMiddleware := middleware.AuthMiddleware(svc.Auth)
	optionalAuth := middleware.OptionalAuthMiddleware(svc.Auth)

	healthController := controllers.NewHealthController(db)
	app.Get("/", healthController.Home)
	app.Get("/api/health", healthController.Health)

	// Auth routes
	authController := controllers.NewAuthController(svc.Auth)
	userController := controllers.NewUserController(svc.Auth, svc.Progress)
	auth := app.Group("/api/auth")
	auth.Post("/register", authController.Register)
	auth.Post("/login", authController.Login)
	auth.Get("/profile", authMiddleware, userController.GetProfile)

	// Courses routes. Fixed paths come before /:id.
	coursesController := controllers.NewCoursesController(svc.Catalog, svc.Enrollment)
	courses := app.Group("/api/courses")
	courses.Get("/", coursesController.GetCourses)
	courses.Get("/my-learning", authMiddleware, userController.GetMyLearning)
	courses.Get("/user/my-courses", authMiddleware, userController.GetMyCourses)
	courses.Post("/:courseId/enroll", authMiddleware, coursesController.Enroll)
	courses.Delete("/:courseId/enroll", authMiddleware, coursesController.Unenroll)
	courses.Get("/:courseId/enrollment-status", authMiddleware, coursesController.EnrollmentStatus)
	courses.Get("/:id", coursesController.GetCourse)
	courses.Post("/", authMiddleware, coursesController.CreateCourse)

	// Lessons routes
	lessonsController := controllers.NewLessonsController(svc.Lessons)
	lessons := app.Group("/api/lessons")
	lessons.Get("/course/:courseId", lessonsController.GetLessonsByCourse)
	lessons.Get("/:id", optionalAuth, lessonsController.GetLesson)
	lessons.Post("/", authMiddleware, lessonsController.CreateLesson)
	lessons.Put("/:id", authMiddleware, lessonsController.UpdateLesson)
	lessons.Delete("/:id", authMiddleware, lessonsController.DeleteLesson)

	// Progress routes
	progressController := controllers.NewProgressController(svc.Progress, svc.Gamification)
	progress := app.Group("/api/progress", authMiddleware)
	progress.Post("/", progressController.UpdateProgress)
	progress.Get("/stats", progressController.GetStats)
	progress.Get("/course/:courseId", progressController.GetCourseProgress)
	progress.Get("/", progressController.GetProgress)

	// Games routes
	gamesController := controllers.NewGamesController(svc.Games)
	games := app.Group("/api/games")
	games.Get("/leaderboard", optionalAuth, gamesController.GetLeaderboard)
	games.Post("/score", authMiddleware, gamesController.SubmitScore)
	games.Get("/scores", authMiddleware, gamesController.GetScores)
	games.Get("/:gameType/question", gamesController.GetQuestion)
	games.Get("/:gameType/questions", gamesController.GetQuestions)

	app.Use(func(c *fiber.Ctx) error {
		return utils.NotFound(c, "endpoint not found")
	})
}
