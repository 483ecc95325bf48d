package handler

import (
	"quizforge/internal/domain"
	"quizforge/internal/dto"
	"quizforge/internal/export"
	"quizforge/internal/logger"
	"quizforge/internal/middleware"
	"quizforge/internal/quality"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// GenerationHandler handles item generation, job tracking and batch
// retrieval requests.
type GenerationHandler struct {
	generationService domain.GenerationService
	auditor           *quality.Auditor
	exporter          export.Exporter
}

func NewGenerationHandler(generationService domain.GenerationService, auditor *quality.Auditor, exporter export.Exporter) *GenerationHandler {
	return &GenerationHandler{
		generationService: generationService,
		auditor:           auditor,
		exporter:          exporter,
	}
}

// Generate runs the generation pipeline synchronously.
// @Summary Generate assessment items
// @Description Generates a batch of assessment items from the submitted source text and returns it immediately.
// @Tags generation
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.GenerateRequest true "Generation request"
// @Success 200 {object} dto.BatchResponse
// @Failure 400 {object} middleware.ValidationErrorResponse "Validation failed"
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /v1/generate [post]
func (h *GenerationHandler) Generate(c *fiber.Ctx) error {
	userID, ok := requestUserID(c)
	if !ok {
		return unauthorizedUserContext(c)
	}

	var req dto.GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidRequestError("Malformed request body")
	}

	batch, err := h.generationService.Generate(c.Context(), userID, req.ToDomain())
	if err != nil {
		return err
	}

	return c.JSON(dto.NewBatchResponse(batch))
}

// EnqueueGeneration queues the generation pipeline as a background job.
// @Summary Enqueue a generation job
// @Description Validates the request, queues it for a background worker and returns the job ID for polling.
// @Tags generation
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.GenerateRequest true "Generation request"
// @Success 202 {object} dto.EnqueueResponse
// @Failure 400 {object} middleware.ValidationErrorResponse "Validation failed"
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /v1/generate/async [post]
func (h *GenerationHandler) EnqueueGeneration(c *fiber.Ctx) error {
	userID, ok := requestUserID(c)
	if !ok {
		return unauthorizedUserContext(c)
	}

	var req dto.GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidRequestError("Malformed request body")
	}

	job, err := h.generationService.EnqueueGeneration(c.Context(), userID, req.ToDomain())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusAccepted).JSON(dto.EnqueueResponse{
		JobID:  job.ID,
		Status: string(job.Status),
	})
}

// GetJob reports the status of a generation job.
// @Summary Get a generation job
// @Description Returns the status and progress of a generation job owned by the caller.
// @Tags generation
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} dto.JobResponse
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 404 {object} middleware.ErrorResponse "Job not found"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /v1/jobs/{id} [get]
func (h *GenerationHandler) GetJob(c *fiber.Ctx) error {
	userID, ok := requestUserID(c)
	if !ok {
		return unauthorizedUserContext(c)
	}

	jobID := validatedParam(c, "job_id")
	job, err := h.generationService.GetJob(c.Context(), jobID)
	if err != nil {
		return err
	}
	// Foreign jobs look absent rather than forbidden.
	if job.UserID != userID {
		return domain.NewJobNotFoundError(jobID)
	}

	return c.JSON(dto.NewJobResponse(job))
}

// GetBatch returns a generated item batch.
// @Summary Get an item batch
// @Description Returns a previously generated batch with all its items.
// @Tags generation
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Batch ID"
// @Success 200 {object} dto.BatchResponse
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 404 {object} middleware.ErrorResponse "Batch not found"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /v1/batches/{id} [get]
func (h *GenerationHandler) GetBatch(c *fiber.Ctx) error {
	if _, ok := requestUserID(c); !ok {
		return unauthorizedUserContext(c)
	}

	batch, err := h.generationService.GetBatch(c.Context(), validatedParam(c, "batch_id"))
	if err != nil {
		return err
	}

	return c.JSON(dto.NewBatchResponse(batch))
}

// GetBatchQuality audits a generated batch.
// @Summary Audit an item batch
// @Description Scores every item in the batch and returns the issues found together with a readiness verdict.
// @Tags quality
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Batch ID"
// @Success 200 {object} quality.Report
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 404 {object} middleware.ErrorResponse "Batch not found"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /v1/batches/{id}/quality [get]
func (h *GenerationHandler) GetBatchQuality(c *fiber.Ctx) error {
	if _, ok := requestUserID(c); !ok {
		return unauthorizedUserContext(c)
	}

	batch, err := h.generationService.GetBatch(c.Context(), validatedParam(c, "batch_id"))
	if err != nil {
		return err
	}

	return c.JSON(h.auditor.AuditBatch(batch))
}

// GetBatchExportPreview runs the export preflight for a batch.
// @Summary Preview a batch export
// @Description Checks every item in the batch against the export format and reports which items would be skipped.
// @Tags export
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Batch ID"
// @Success 200 {object} export.Report
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 404 {object} middleware.ErrorResponse "Batch not found"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /v1/batches/{id}/export/pronote [get]
func (h *GenerationHandler) GetBatchExportPreview(c *fiber.Ctx) error {
	if _, ok := requestUserID(c); !ok {
		return unauthorizedUserContext(c)
	}

	batch, err := h.generationService.GetBatch(c.Context(), validatedParam(c, "batch_id"))
	if err != nil {
		return err
	}

	return c.JSON(h.exporter.Validate(batch))
}

// requestUserID reads the authenticated user ID set by the auth middleware.
func requestUserID(c *fiber.Ctx) (string, bool) {
	userID, ok := c.Locals(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

func unauthorizedUserContext(c *fiber.Ctx) error {
	logger.Get().Warn("User ID not found in context", zap.String("path", c.Path()))
	return c.Status(fiber.StatusUnauthorized).JSON(middleware.ErrorResponse{
		Code: "INVALID_USER_CONTEXT", Message: "User ID not found in context", Status: fiber.StatusUnauthorized,
	})
}

// validatedParam prefers the ULID checked by the validation middleware
// and falls back to the raw path parameter.
func validatedParam(c *fiber.Ctx, field string) string {
	if id, ok := c.Locals("validated_" + field).(string); ok && id != "" {
		return id
	}
	return c.Params("id")
}
