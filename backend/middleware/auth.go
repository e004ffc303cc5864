package middleware

import (
	"englishhub/backend/services"

	"github.com/gofiber/fiber/v2"
)

const identityKey = "identity"

// AuthMiddleware rejects requests without a valid bearer token for a live user.
func AuthMiddleware(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := auth.VerifyToken(c.UserContext(), c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return err
		}
		c.Locals(identityKey, identity)
		return c.Next()
	}
}

// OptionalAuthMiddleware attaches the identity when the token checks out and
// otherwise continues anonymously.
func OptionalAuthMiddleware(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Get(fiber.HeaderAuthorization) != "" {
			if identity, err := auth.VerifyToken(c.UserContext(), c.Get(fiber.HeaderAuthorization)); err == nil {
				c.Locals(identityKey, identity)
			}
		}
		return c.Next()
	}
}

// CurrentIdentity returns the caller set by the auth middlewares, or nil.
func CurrentIdentity(c *fiber.Ctx) *services.Identity {
	identity, _ := c.Locals(identityKey).(*services.Identity)
	return identity
}
