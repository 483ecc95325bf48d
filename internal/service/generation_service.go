package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"quizforge/internal/cache"
	"quizforge/internal/config"
	"quizforge/internal/domain"
	"quizforge/internal/generation"
	"quizforge/internal/logger"
	"quizforge/internal/util"
	"quizforge/internal/validation"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const defaultGenerationResponseTTL = 10 * time.Minute

type generationService struct {
	generator *generation.Generator
	jobRepo   domain.JobRepository
	batchRepo domain.BatchRepository
	txManager domain.TransactionManager
	cache     domain.Cache
	validator *validation.Validator
	contract  *validation.ItemContract
	cfg       *config.Config
	sfGroup   singleflight.Group
}

// NewGenerationService wires the generation pipeline to persistence,
// the response cache and the job queue.
func NewGenerationService(
	generator *generation.Generator,
	jobRepo domain.JobRepository,
	batchRepo domain.BatchRepository,
	txManager domain.TransactionManager,
	cacheClient domain.Cache,
	contract *validation.ItemContract,
	cfg *config.Config,
) domain.GenerationService {
	return &generationService{
		generator: generator,
		jobRepo:   jobRepo,
		batchRepo: batchRepo,
		txManager: txManager,
		cache:     cacheClient,
		validator: validation.NewValidator(),
		contract:  contract,
		cfg:       cfg,
	}
}

// Generate runs the pipeline synchronously, persists the batch and
// caches the response keyed by the request digest. Identical requests
// arriving concurrently share one pipeline run via singleflight.
func (s *generationService) Generate(ctx context.Context, userID string, req domain.GenerateRequest) (*domain.ItemBatch, error) {
	appLogger := logger.Get()

	if errs := s.validator.ValidateGenerateRequest(req); len(errs) > 0 {
		return nil, errs
	}
	req.ApplyDefaults()

	cacheKey := cache.GenerateCacheKey("generation", "batch", s.requestDigest(req))

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey)
		if err == nil {
			var batch domain.ItemBatch
			if errDecode := json.Unmarshal([]byte(cached), &batch); errDecode == nil && batch.ID != "" {
				appLogger.Debug("Generation response cache hit",
					zap.String("cacheKey", cacheKey),
					zap.String("batchID", batch.ID))
				return &batch, nil
			}
			appLogger.Warn("Failed to decode cached generation response",
				zap.String("cacheKey", cacheKey))
		} else if err != domain.ErrCacheMiss {
			appLogger.Warn("Failed to read generation response cache",
				zap.Error(err),
				zap.String("cacheKey", cacheKey))
		}
	}

	res, err, _ := s.sfGroup.Do(cacheKey, func() (interface{}, error) {
		batch, buildErr := s.buildAndPersistBatch(ctx, userID, req)
		if buildErr != nil {
			return nil, buildErr
		}

		if s.cache != nil {
			if payload, errEncode := json.Marshal(batch); errEncode == nil {
				ttl := s.cfg.ParseTTLStringOrDefault(s.cfg.CacheTTLs.GenerationResponse, defaultGenerationResponseTTL)
				if errSet := s.cache.Set(ctx, cacheKey, string(payload), ttl); errSet != nil {
					appLogger.Warn("Failed to cache generation response",
						zap.Error(errSet),
						zap.String("cacheKey", cacheKey))
				}
			}
		}
		return batch, nil
	})
	if err != nil {
		return nil, err
	}

	batch, ok := res.(*domain.ItemBatch)
	if !ok {
		return nil, domain.NewInternalError(fmt.Sprintf("unexpected type from generation singleflight: %T", res), nil)
	}
	return batch, nil
}

// EnqueueGeneration registers a queued job row and pushes the payload
// onto the Redis work queue for a worker to claim.
func (s *generationService) EnqueueGeneration(ctx context.Context, userID string, req domain.GenerateRequest) (*domain.GenerationJob, error) {
	appLogger := logger.Get()

	if errs := s.validator.ValidateGenerateRequest(req); len(errs) > 0 {
		return nil, errs
	}
	req.ApplyDefaults()

	requestJSON, err := json.Marshal(req)
	if err != nil {
		return nil, domain.NewInternalError("failed to encode generation request", err)
	}

	job := domain.NewGenerationJob(util.NewULID(), userID, string(requestJSON))
	if err := s.jobRepo.CreateJob(ctx, job); err != nil {
		return nil, domain.NewDatabaseError("failed to create generation job", err)
	}

	payload, err := json.Marshal(domain.QueuedGeneration{JobID: job.ID, Request: req})
	if err != nil {
		return nil, domain.NewInternalError("failed to encode queue payload", err)
	}
	if err := s.cache.LPush(ctx, s.cfg.Worker.QueueKey, string(payload)); err != nil {
		// The job row exists but no worker will ever see it.
		if updateErr := s.jobRepo.UpdateJobStatus(ctx, job.ID, domain.JobStatusFailed, 0, "failed to enqueue job"); updateErr != nil {
			appLogger.Error("Failed to mark unqueued job as failed",
				zap.Error(updateErr),
				zap.String("jobID", job.ID))
		}
		return nil, domain.NewCacheOperationError("failed to enqueue generation job", err)
	}

	appLogger.Info("Enqueued generation job",
		zap.String("jobID", job.ID),
		zap.String("userID", userID))
	return job, nil
}

// GetJob returns the current state of a generation job.
func (s *generationService) GetJob(ctx context.Context, jobID string) (*domain.GenerationJob, error) {
	job, err := s.jobRepo.GetJobByID(ctx, jobID)
	if err != nil {
		return nil, domain.NewDatabaseError("failed to load job", err)
	}
	if job == nil {
		return nil, domain.NewJobNotFoundError(jobID)
	}
	return job, nil
}

// GetBatch returns a stored batch with its items.
func (s *generationService) GetBatch(ctx context.Context, batchID string) (*domain.ItemBatch, error) {
	batch, err := s.batchRepo.GetBatchByID(ctx, batchID)
	if err != nil {
		return nil, domain.NewDatabaseError("failed to load batch", err)
	}
	if batch == nil {
		return nil, domain.NewBatchNotFoundError(batchID)
	}
	return batch, nil
}

func (s *generationService) buildAndPersistBatch(ctx context.Context, userID string, req domain.GenerateRequest) (*domain.ItemBatch, error) {
	appLogger := logger.Get()

	items := s.generator.GenerateItems(ctx, req)
	items = generation.EnforceItemContract(s.contract, req, items)

	batch := domain.NewItemBatch(util.NewULID(), util.HashSHA256(req.SourceText), req, items)
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		return s.batchRepo.SaveBatch(txCtx, batch)
	})
	if err != nil {
		return nil, domain.NewDatabaseError("failed to persist batch", err)
	}

	appLogger.Info("Generated item batch",
		zap.String("batchID", batch.ID),
		zap.String("userID", userID),
		zap.Int("itemCount", len(batch.Items)))
	return batch, nil
}

// requestDigest builds the canonical request hash for the response cache.
func (s *generationService) requestDigest(req domain.GenerateRequest) string {
	parts := []string{
		req.SourceText,
		fmt.Sprintf("%v", req.ContentTypes),
		fmt.Sprintf("%d", req.MaxItems),
		req.Language,
		req.Level,
		req.Subject,
		req.ClassLevel,
		req.Difficulty,
		req.Instructions,
	}
	return util.HashParts(parts...)
}
