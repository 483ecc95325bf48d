// Package worker consumes queued generation jobs from Redis and runs
// them through the same pipeline the synchronous API uses, reporting
// progress on the job row as each stage completes.
package worker

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
	"golang.org/x/sync/errgroup"
)

const (
	defaultWorkerCount = 4
	defaultPollTimeout = 5 * time.Second

	progressRunning   = 10
	progressGenerated = 70
	progressPersisted = 100
)

// heartbeatKey is the Redis hash holding one timestamp per worker.
var heartbeatKey = cache.GenerateCacheKey("worker", "heartbeat", "pool")

// Pool claims generation jobs from the Redis queue and runs them to
// completion on a fixed set of goroutines.
type Pool struct {
	queue       domain.Cache
	generator   *generation.Generator
	jobRepo     domain.JobRepository
	batchRepo   domain.BatchRepository
	txManager   domain.TransactionManager
	contract    *validation.ItemContract
	count       int
	queueKey    string
	pollTimeout time.Duration
}

// NewPool wires a worker pool. Non-positive counts and an empty queue
// key fall back to the documented defaults.
func NewPool(
	queue domain.Cache,
	generator *generation.Generator,
	jobRepo domain.JobRepository,
	batchRepo domain.BatchRepository,
	txManager domain.TransactionManager,
	contract *validation.ItemContract,
	cfg *config.Config,
) *Pool {
	count := cfg.Worker.Count
	if count <= 0 {
		count = defaultWorkerCount
	}
	queueKey := cfg.Worker.QueueKey
	if queueKey == "" {
		queueKey = cache.GenerateCacheKey("worker", "queue", "generation")
	}
	return &Pool{
		queue:       queue,
		generator:   generator,
		jobRepo:     jobRepo,
		batchRepo:   batchRepo,
		txManager:   txManager,
		contract:    contract,
		count:       count,
		queueKey:    queueKey,
		pollTimeout: defaultPollTimeout,
	}
}

// Run blocks until ctx is canceled. Each worker finishes its in-flight
// job before returning, so a shutdown never abandons a running job.
func (p *Pool) Run(ctx context.Context) error {
	appLogger := logger.Get()
	appLogger.Info("Starting worker pool",
		zap.Int("workerCount", p.count),
		zap.String("queueKey", p.queueKey))

	group, groupCtx := errgroup.WithContext(ctx)
	for i := 0; i < p.count; i++ {
		workerID := fmt.Sprintf("worker-%d", i+1)
		group.Go(func() error {
			return p.runWorker(groupCtx, workerID)
		})
	}
	return group.Wait()
}

func (p *Pool) runWorker(ctx context.Context, workerID string) error {
	appLogger := logger.Get()
	appLogger.Info("Worker started", zap.String("workerID", workerID))

	for {
		select {
		case <-ctx.Done():
			appLogger.Info("Worker stopping", zap.String("workerID", workerID))
			return nil
		default:
		}

		p.heartbeat(ctx, workerID)

		payload, err := p.queue.BRPop(ctx, p.pollTimeout, p.queueKey)
		if err != nil {
			if err == domain.ErrCacheMiss {
				continue
			}
			if ctx.Err() != nil {
				appLogger.Info("Worker stopping", zap.String("workerID", workerID))
				return nil
			}
			appLogger.Warn("Failed to pop from job queue",
				zap.Error(err),
				zap.String("workerID", workerID))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(p.pollTimeout):
			}
			continue
		}

		var queued domain.QueuedGeneration
		if err := json.Unmarshal([]byte(payload), &queued); err != nil {
			appLogger.Error("Discarding malformed queue payload",
				zap.Error(err),
				zap.String("workerID", workerID))
			continue
		}

		p.processJob(ctx, workerID, queued)
	}
}

// processJob runs one claimed job through generation and persistence.
// The job context survives pool shutdown so in-flight work completes.
func (p *Pool) processJob(ctx context.Context, workerID string, queued domain.QueuedGeneration) {
	appLogger := logger.Get()
	jobCtx := context.WithoutCancel(ctx)

	jobID := queued.JobID
	if jobID == "" {
		appLogger.Error("Queue payload without job id", zap.String("workerID", workerID))
		return
	}

	if err := p.jobRepo.UpdateJobStatus(jobCtx, jobID, domain.JobStatusRunning, progressRunning, ""); err != nil {
		appLogger.Error("Failed to mark job running",
			zap.Error(err),
			zap.String("jobID", jobID))
		return
	}

	req := queued.Request
	req.ApplyDefaults()

	items := p.generator.GenerateItems(jobCtx, req)
	items = generation.EnforceItemContract(p.contract, req, items)

	if err := p.jobRepo.UpdateJobStatus(jobCtx, jobID, domain.JobStatusRunning, progressGenerated, ""); err != nil {
		appLogger.Warn("Failed to report generation progress",
			zap.Error(err),
			zap.String("jobID", jobID))
	}

	batch := domain.NewItemBatch(util.NewULID(), util.HashSHA256(req.SourceText), req, items)
	err := p.txManager.WithTransaction(jobCtx, func(txCtx context.Context) error {
		if err := p.batchRepo.SaveBatch(txCtx, batch); err != nil {
			return err
		}
		return p.jobRepo.AttachResult(txCtx, jobID, batch.ID)
	})
	if err != nil {
		appLogger.Error("Failed to persist job result",
			zap.Error(err),
			zap.String("jobID", jobID))
		p.failJob(jobCtx, jobID, "failed to persist batch: "+err.Error())
		return
	}

	if err := p.jobRepo.UpdateJobStatus(jobCtx, jobID, domain.JobStatusSucceeded, progressPersisted, ""); err != nil {
		appLogger.Error("Failed to mark job succeeded",
			zap.Error(err),
			zap.String("jobID", jobID))
		return
	}

	appLogger.Info("Job completed",
		zap.String("jobID", jobID),
		zap.String("batchID", batch.ID),
		zap.String("workerID", workerID),
		zap.Int("itemCount", len(items)))
}

func (p *Pool) failJob(ctx context.Context, jobID, message string) {
	if err := p.jobRepo.UpdateJobStatus(ctx, jobID, domain.JobStatusFailed, progressGenerated, message); err != nil {
		logger.Get().Error("Failed to mark job failed",
			zap.Error(err),
			zap.String("jobID", jobID))
	}
}

func (p *Pool) heartbeat(ctx context.Context, workerID string) {
	if err := p.queue.HSet(ctx, heartbeatKey, workerID, time.Now().UTC().Format(time.RFC3339)); err != nil {
		logger.Get().Debug("Failed to record worker heartbeat",
			zap.Error(err),
			zap.String("workerID", workerID))
	}
}
