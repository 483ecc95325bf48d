package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"quizforge/internal/domain"
	"quizforge/internal/dto"
	"quizforge/internal/export"
	"quizforge/internal/handler"
	"quizforge/internal/middleware"
	"quizforge/internal/quality"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockGenerationService
type MockGenerationService struct {
	GenerateFunc          func(ctx context.Context, userID string, req domain.GenerateRequest) (*domain.ItemBatch, error)
	EnqueueGenerationFunc func(ctx context.Context, userID string, req domain.GenerateRequest) (*domain.GenerationJob, error)
	GetJobFunc            func(ctx context.Context, jobID string) (*domain.GenerationJob, error)
	GetBatchFunc          func(ctx context.Context, batchID string) (*domain.ItemBatch, error)
}

func (m *MockGenerationService) Generate(ctx context.Context, userID string, req domain.GenerateRequest) (*domain.ItemBatch, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, userID, req)
	}
	panic("MockGenerationService.GenerateFunc not implemented")
}

func (m *MockGenerationService) EnqueueGeneration(ctx context.Context, userID string, req domain.GenerateRequest) (*domain.GenerationJob, error) {
	if m.EnqueueGenerationFunc != nil {
		return m.EnqueueGenerationFunc(ctx, userID, req)
	}
	panic("MockGenerationService.EnqueueGenerationFunc not implemented")
}

func (m *MockGenerationService) GetJob(ctx context.Context, jobID string) (*domain.GenerationJob, error) {
	if m.GetJobFunc != nil {
		return m.GetJobFunc(ctx, jobID)
	}
	panic("MockGenerationService.GetJobFunc not implemented")
}

func (m *MockGenerationService) GetBatch(ctx context.Context, batchID string) (*domain.ItemBatch, error) {
	if m.GetBatchFunc != nil {
		return m.GetBatchFunc(ctx, batchID)
	}
	panic("MockGenerationService.GetBatchFunc not implemented")
}

var _ domain.GenerationService = (*MockGenerationService)(nil)

const (
	testUserID  = "user123"
	testBatchID = "01HGZ8VNRYXS8QKNJV5GRWPWDQ"
	testJobID   = "01HGZ8VNRYXS8QKNJV5GRWPWD0"
)

// newGenerationTestApp registers the generation routes. A non-empty
// userID is injected into locals the way the auth middleware would.
func newGenerationTestApp(svc domain.GenerationService, userID string) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(),
	})
	if userID != "" {
		app.Use(func(c *fiber.Ctx) error {
			c.Locals(middleware.UserIDKey, userID)
			return c.Next()
		})
	}

	genHandler := handler.NewGenerationHandler(svc, quality.NewAuditor(), export.NewPronoteSafetyNet())
	app.Post("/v1/generate", genHandler.Generate)
	app.Post("/v1/generate/async", genHandler.EnqueueGeneration)
	app.Get("/v1/jobs/:id", genHandler.GetJob)
	app.Get("/v1/batches/:id", genHandler.GetBatch)
	app.Get("/v1/batches/:id/quality", genHandler.GetBatchQuality)
	app.Get("/v1/batches/:id/export/pronote", genHandler.GetBatchExportPreview)
	return app
}

func testGenerationBatch() *domain.ItemBatch {
	req := domain.GenerateRequest{
		SourceText:   "La photosynthese transforme l'energie lumineuse en energie chimique dans les chloroplastes.",
		ContentTypes: []domain.ContentType{domain.ContentTypeMCQ, domain.ContentTypeFlashcards},
		MaxItems:     2,
	}
	req.ApplyDefaults()

	items := []domain.GeneratedItem{
		{
			ItemType:        domain.ItemTypeMCQ,
			Prompt:          "Quel processus transforme l'energie lumineuse en energie chimique ?",
			CorrectAnswer:   "La photosynthese",
			Distractors:     []string{"La respiration", "La fermentation", "L'osmose"},
			Difficulty:      "medium",
			SourceReference: "section:1",
		},
		{
			ItemType:        domain.ItemTypeFlashcard,
			Prompt:          "Definir la photosynthese",
			CorrectAnswer:   "Conversion de l'energie lumineuse en energie chimique",
			Difficulty:      "medium",
			SourceReference: "section:1",
		},
	}
	return domain.NewItemBatch(testBatchID, "sourcehash", req, items)
}

func TestGenerationHandler_Generate(t *testing.T) {
	requestBody := dto.GenerateRequest{
		SourceText:   "La photosynthese transforme l'energie lumineuse en energie chimique dans les chloroplastes.",
		ContentTypes: []string{"mcq", "flashcards"},
		MaxItems:     2,
	}

	t.Run("Success", func(t *testing.T) {
		batch := testGenerationBatch()
		mockSvc := &MockGenerationService{
			GenerateFunc: func(ctx context.Context, userID string, req domain.GenerateRequest) (*domain.ItemBatch, error) {
				assert.Equal(t, testUserID, userID)
				assert.Equal(t, requestBody.SourceText, req.SourceText)
				assert.Equal(t, []domain.ContentType{domain.ContentTypeMCQ, domain.ContentTypeFlashcards}, req.ContentTypes)
				assert.Equal(t, 2, req.MaxItems)
				return batch, nil
			},
		}
		app := newGenerationTestApp(mockSvc, testUserID)

		resp := postJSON(t, app, "/v1/generate", requestBody)

		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		var body dto.BatchResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, testBatchID, body.ID)
		assert.Equal(t, "fr", body.Language)
		require.Len(t, body.Items, 2)
		assert.Equal(t, "mcq", body.Items[0].ItemType)
		assert.Equal(t, "La photosynthese", body.Items[0].CorrectAnswer)
	})

	t.Run("Missing User Context", func(t *testing.T) {
		app := newGenerationTestApp(&MockGenerationService{}, "")

		resp := postJSON(t, app, "/v1/generate", requestBody)

		require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		var body middleware.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "INVALID_USER_CONTEXT", body.Code)
	})

	t.Run("Malformed Body", func(t *testing.T) {
		app := newGenerationTestApp(&MockGenerationService{}, testUserID)

		req := httptest.NewRequest("POST", "/v1/generate", bytes.NewReader([]byte("{not json")))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)

		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		var body middleware.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, string(domain.ErrInvalidRequest), body.Code)
	})

	t.Run("Validation Failure", func(t *testing.T) {
		mockSvc := &MockGenerationService{
			GenerateFunc: func(ctx context.Context, userID string, req domain.GenerateRequest) (*domain.ItemBatch, error) {
				return nil, domain.ValidationErrors{domain.NewMissingFieldError("source_text")}
			},
		}
		app := newGenerationTestApp(mockSvc, testUserID)

		resp := postJSON(t, app, "/v1/generate", dto.GenerateRequest{ContentTypes: []string{"mcq"}})

		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		var body middleware.ValidationErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, string(domain.CodeValidation), body.Code)
		require.Len(t, body.Errors, 1)
		assert.Equal(t, "source_text", body.Errors[0].Field)
	})
}

func TestGenerationHandler_EnqueueGeneration(t *testing.T) {
	requestBody := dto.GenerateRequest{
		SourceText:   "Les equations du premier degre se resolvent en isolant l'inconnue.",
		ContentTypes: []string{"mcq"},
		MaxItems:     5,
	}

	t.Run("Accepted", func(t *testing.T) {
		mockSvc := &MockGenerationService{
			EnqueueGenerationFunc: func(ctx context.Context, userID string, req domain.GenerateRequest) (*domain.GenerationJob, error) {
				assert.Equal(t, testUserID, userID)
				assert.Equal(t, 5, req.MaxItems)
				return domain.NewGenerationJob(testJobID, userID, "{}"), nil
			},
		}
		app := newGenerationTestApp(mockSvc, testUserID)

		resp := postJSON(t, app, "/v1/generate/async", requestBody)

		require.Equal(t, fiber.StatusAccepted, resp.StatusCode)
		var body dto.EnqueueResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, testJobID, body.JobID)
		assert.Equal(t, string(domain.JobStatusQueued), body.Status)
	})

	t.Run("Missing User Context", func(t *testing.T) {
		app := newGenerationTestApp(&MockGenerationService{}, "")

		resp := postJSON(t, app, "/v1/generate/async", requestBody)

		require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestGenerationHandler_GetJob(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockSvc := &MockGenerationService{
			GetJobFunc: func(ctx context.Context, jobID string) (*domain.GenerationJob, error) {
				assert.Equal(t, testJobID, jobID)
				return domain.NewGenerationJob(jobID, testUserID, "{}"), nil
			},
		}
		app := newGenerationTestApp(mockSvc, testUserID)

		req := httptest.NewRequest("GET", "/v1/jobs/"+testJobID, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)

		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		var body dto.JobResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, testJobID, body.ID)
		assert.Equal(t, string(domain.JobStatusQueued), body.Status)
		assert.Equal(t, 0, body.Progress)
	})

	t.Run("Foreign Job Looks Absent", func(t *testing.T) {
		mockSvc := &MockGenerationService{
			GetJobFunc: func(ctx context.Context, jobID string) (*domain.GenerationJob, error) {
				return domain.NewGenerationJob(jobID, "someone-else", "{}"), nil
			},
		}
		app := newGenerationTestApp(mockSvc, testUserID)

		req := httptest.NewRequest("GET", "/v1/jobs/"+testJobID, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)

		require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		var body middleware.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, string(domain.ErrNotFound), body.Code)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockSvc := &MockGenerationService{
			GetJobFunc: func(ctx context.Context, jobID string) (*domain.GenerationJob, error) {
				return nil, domain.NewJobNotFoundError(jobID)
			},
		}
		app := newGenerationTestApp(mockSvc, testUserID)

		req := httptest.NewRequest("GET", "/v1/jobs/"+testJobID, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)

		require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestGenerationHandler_GetBatch(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		batch := testGenerationBatch()
		mockSvc := &MockGenerationService{
			GetBatchFunc: func(ctx context.Context, batchID string) (*domain.ItemBatch, error) {
				assert.Equal(t, testBatchID, batchID)
				return batch, nil
			},
		}
		app := newGenerationTestApp(mockSvc, testUserID)

		req := httptest.NewRequest("GET", "/v1/batches/"+testBatchID, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)

		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		var body dto.BatchResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, testBatchID, body.ID)
		assert.Equal(t, 2, body.RequestedMax)
		require.Len(t, body.Items, 2)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockSvc := &MockGenerationService{
			GetBatchFunc: func(ctx context.Context, batchID string) (*domain.ItemBatch, error) {
				return nil, domain.NewBatchNotFoundError(batchID)
			},
		}
		app := newGenerationTestApp(mockSvc, testUserID)

		req := httptest.NewRequest("GET", "/v1/batches/"+testBatchID, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)

		require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestGenerationHandler_GetBatchQuality(t *testing.T) {
	batch := testGenerationBatch()
	mockSvc := &MockGenerationService{
		GetBatchFunc: func(ctx context.Context, batchID string) (*domain.ItemBatch, error) {
			return batch, nil
		},
	}
	app := newGenerationTestApp(mockSvc, testUserID)

	req := httptest.NewRequest("GET", "/v1/batches/"+testBatchID+"/quality", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var report quality.Report
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.Equal(t, testBatchID, report.BatchID)
	assert.Equal(t, 2, report.Metrics.ItemsTotal)
	assert.Equal(t, 100, report.OverallScore)
	assert.Equal(t, quality.ReadinessReady, report.Readiness)
	assert.Empty(t, report.Issues)
}

func TestGenerationHandler_GetBatchExportPreview(t *testing.T) {
	batch := testGenerationBatch()
	mockSvc := &MockGenerationService{
		GetBatchFunc: func(ctx context.Context, batchID string) (*domain.ItemBatch, error) {
			return batch, nil
		},
	}
	app := newGenerationTestApp(mockSvc, testUserID)

	req := httptest.NewRequest("GET", "/v1/batches/"+testBatchID+"/export/pronote", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var report export.Report
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.Equal(t, "pronote", report.Format)
	assert.Equal(t, testBatchID, report.BatchID)
	assert.Equal(t, 1, report.ExportableCount)
	assert.Equal(t, 1, report.SkippedCount)
	require.Len(t, report.Items, 2)
	assert.True(t, report.Items[0].PronoteReady)
	assert.Contains(t, report.Items[1].Reasons, export.ReasonUnsupportedItemType)
}
