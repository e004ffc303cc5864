package utils

import (
	"errors"

	"englishhub/backend/apperr"

	"github.com/gofiber/fiber/v2"
)

// Envelope wraps every response body.
type Envelope struct {
	Status  int         `json:"status"`
	Payload interface{} `json:"payload"`
}

// Respond writes payload inside the envelope with the given status.
func Respond(c *fiber.Ctx, status int, payload interface{}) error {
	if payload == nil {
		payload = []interface{}{}
	}
	return c.Status(status).JSON(Envelope{Status: status, Payload: payload})
}

// Success sends 200 OK.
func Success(c *fiber.Ctx, payload interface{}) error {
	return Respond(c, fiber.StatusOK, payload)
}

// Created sends 201 Created.
func Created(c *fiber.Ctx, payload interface{}) error {
	return Respond(c, fiber.StatusCreated, payload)
}

// Error sends {status, payload: {error: message, ...extra}}.
func Error(c *fiber.Ctx, status int, message string, extra map[string]interface{}) error {
	payload := fiber.Map{"error": message}
	for k, v := range extra {
		if k == "error" {
			continue
		}
		payload[k] = v
	}
	return Respond(c, status, payload)
}

// NotFound sends 404 Not Found.
func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message, nil)
}

// BadRequest sends 400 Bad Request.
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message, nil)
}

// Unauthorized sends 401 Unauthorized.
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, message, nil)
}

// ErrorHandler renders any error returned by a handler as an envelope.
// Unknown errors become a generic 500; detail is attached only when exposeDetail is set.
func ErrorHandler(logger *Logger, exposeDetail bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if ae, ok := apperr.As(err); ok {
			if ae.Kind != apperr.KindInternal {
				return Error(c, ae.Kind.Status(), ae.Message, ae.Extra)
			}
		}

		var fe *fiber.Error
		if errors.As(err, &fe) && fe.Code != fiber.StatusInternalServerError {
			return Error(c, fe.Code, fe.Message, nil)
		}

		logger.Error("request failed",
			"method", c.Method(),
			"path", c.Path(),
			"error", err,
		)

		var extra map[string]interface{}
		if exposeDetail {
			extra = map[string]interface{}{"detail": err.Error()}
		}
		return Error(c, fiber.StatusInternalServerError, "server error", extra)
	}
}
