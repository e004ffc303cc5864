package controllers

import (
	"englishhub/backend/apperr"
	"englishhub/backend/middleware"
	"englishhub/backend/services"

	"github.com/gofiber/fiber/v2"
)

func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("invalid " + name)
	}
	return uint(id), nil
}

func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return apperr.Validation("cannot parse JSON")
	}
	return nil
}

// identity is only called behind AuthMiddleware.
func identity(c *fiber.Ctx) (*services.Identity, error) {
	id := middleware.CurrentIdentity(c)
	if id == nil {
		return nil, apperr.Auth("unauthorized")
	}
	return id, nil
}
