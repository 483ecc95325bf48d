package middleware_test

import (
	"net/http/httptest"
	"testing"

	"quizforge/internal/domain"
	"quizforge/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestRequestLogger_PassesThroughSuccess(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(),
	})
	app.Use(middleware.RequestLogger())
	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/ok", nil), -1)

	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequestLogger_RunsErrorHandlerBeforeLogging(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(),
	})
	app.Use(middleware.RequestLogger())
	app.Get("/missing", func(c *fiber.Ctx) error {
		return domain.NewBatchNotFoundError("01HZXAAAAAAAAAAAAAAAAAAAAA")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/missing", nil), -1)

	assert.NoError(t, err)
	// the client still sees the mapped domain error status
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	response := decodeErrorResponse(t, resp.Body)
	assert.Equal(t, "NOT_FOUND", response.Code)
}
