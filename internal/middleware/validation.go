package middleware

import (
	"quizforge/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateResourceParam validates a ULID path parameter before the
// handler runs. The validated value is stored in locals under
// "validated_<field>".
func (vm *ValidationMiddleware) ValidateResourceParam(param, field string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params(param)

		if errors := vm.validator.ValidateResourceID(field, id); len(errors) > 0 {
			return errors // This will be handled by ErrorHandler middleware
		}

		c.Locals("validated_"+field, id)
		return c.Next()
	}
}
