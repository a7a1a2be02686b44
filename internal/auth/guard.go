package auth

import "github.com/gofiber/fiber/v2"

// Guard is one authorization step. A nil return lets the request continue;
// any error ends it and is rendered by the error middleware.
type Guard func(c *fiber.Ctx) error

// Chain runs guards in order and calls handler only when every guard passed.
func Chain(handler fiber.Handler, guards ...Guard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		for _, guard := range guards {
			if err := guard(c); err != nil {
				return err
			}
		}
		return handler(c)
	}
}

// Middleware adapts a guard for use with app.Use or route groups.
func Middleware(guard Guard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := guard(c); err != nil {
			return err
		}
		return c.Next()
	}
}
