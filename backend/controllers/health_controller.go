package controllers

import (
	"time"

	"englishhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type HealthController struct {
	DB *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{DB: db}
}

func (hc *HealthController) Home(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "English platform backend is running"})
}

// Health reports liveness. The database check does not change the status code.
func (hc *HealthController) Health(c *fiber.Ctx) error {
	database := "up"
	if sqlDB, err := hc.DB.DB(); err != nil || sqlDB.PingContext(c.UserContext()) != nil {
		database = "down"
	}
	return utils.Success(c, fiber.Map{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"database":  database,
	})
}
