package worker

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"quizforge/internal/config"
	"quizforge/internal/domain"
	"quizforge/internal/generation"
	"quizforge/internal/logger"
	"quizforge/internal/validation"

	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{}); err != nil {
		panic(err)
	}
	exitVal := m.Run()
	_ = logger.Sync()
	os.Exit(exitVal)
}

type stubProvider struct{}

func (stubProvider) Generate(ctx context.Context, prompt string) (string, error) {
	return "{}", nil
}

func (stubProvider) Name() string { return "stub" }

type statusUpdate struct {
	jobID    string
	status   domain.JobStatus
	progress int
	message  string
}

type stubJobRepo struct {
	mu            sync.Mutex
	updates       []statusUpdate
	attachedJobID string
	attachedBatch string
	updateErrFunc func(update statusUpdate) error
	onUpdate      func(update statusUpdate)
}

func (r *stubJobRepo) CreateJob(ctx context.Context, job *domain.GenerationJob) error {
	panic("unexpected CreateJob call")
}

func (r *stubJobRepo) GetJobByID(ctx context.Context, id string) (*domain.GenerationJob, error) {
	panic("unexpected GetJobByID call")
}

func (r *stubJobRepo) UpdateJobStatus(ctx context.Context, id string, status domain.JobStatus, progress int, errorMessage string) error {
	update := statusUpdate{jobID: id, status: status, progress: progress, message: errorMessage}
	r.mu.Lock()
	r.updates = append(r.updates, update)
	errFunc := r.updateErrFunc
	onUpdate := r.onUpdate
	r.mu.Unlock()
	if errFunc != nil {
		if err := errFunc(update); err != nil {
			return err
		}
	}
	if onUpdate != nil {
		onUpdate(update)
	}
	return nil
}

func (r *stubJobRepo) AttachResult(ctx context.Context, id string, batchID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attachedJobID = id
	r.attachedBatch = batchID
	return nil
}

func (r *stubJobRepo) recordedUpdates() []statusUpdate {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]statusUpdate, len(r.updates))
	copy(out, r.updates)
	return out
}

type stubBatchRepo struct {
	mu      sync.Mutex
	saved   *domain.ItemBatch
	saveErr error
}

func (r *stubBatchRepo) SaveBatch(ctx context.Context, batch *domain.ItemBatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saved = batch
	return nil
}

func (r *stubBatchRepo) GetBatchByID(ctx context.Context, id string) (*domain.ItemBatch, error) {
	panic("unexpected GetBatchByID call")
}

func (r *stubBatchRepo) savedBatch() *domain.ItemBatch {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saved
}

type passthroughTxManager struct{}

func (passthroughTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubQueue struct {
	mu         sync.Mutex
	brPopFunc  func(ctx context.Context, timeout time.Duration, key string) (string, error)
	hsetFields []string
}

func (s *stubQueue) Get(ctx context.Context, key string) (string, error) {
	panic("unexpected Get call")
}

func (s *stubQueue) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	panic("unexpected Set call")
}

func (s *stubQueue) Delete(ctx context.Context, key string) error {
	panic("unexpected Delete call")
}

func (s *stubQueue) Ping(ctx context.Context) error { return nil }

func (s *stubQueue) Incr(ctx context.Context, key string) (int64, error) {
	panic("unexpected Incr call")
}

func (s *stubQueue) Expire(ctx context.Context, key string, expiration time.Duration) error {
	panic("unexpected Expire call")
}

func (s *stubQueue) HSet(ctx context.Context, key string, field string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hsetFields = append(s.hsetFields, key+"/"+field)
	return nil
}

func (s *stubQueue) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	panic("unexpected HGetAll call")
}

func (s *stubQueue) LPush(ctx context.Context, key string, value string) error {
	panic("unexpected LPush call")
}

func (s *stubQueue) BRPop(ctx context.Context, timeout time.Duration, key string) (string, error) {
	if s.brPopFunc != nil {
		return s.brPopFunc(ctx, timeout, key)
	}
	return "", domain.ErrCacheMiss
}

func (s *stubQueue) recordedHeartbeats() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.hsetFields))
	copy(out, s.hsetFields)
	return out
}

const workerTestSource = "La photosynthese transforme la lumiere en energie chimique stockee. " +
	"Les plantes vertes captent le dioxyde de carbone et rejettent l'oxygene."

func newTestPool(t *testing.T, queue domain.Cache, jobRepo domain.JobRepository, batchRepo domain.BatchRepository, count int) *Pool {
	t.Helper()
	contract, err := validation.NewItemContract()
	assert.NoError(t, err)

	cfg := &config.Config{
		Worker: config.WorkerConfig{Count: count, QueueKey: "quizforge:jobs:generation"},
	}
	pool := NewPool(queue, generation.NewGenerator(stubProvider{}, 0, 0), jobRepo, batchRepo, passthroughTxManager{}, contract, cfg)
	pool.pollTimeout = 20 * time.Millisecond
	return pool
}

func queuedTestJob(jobID string) domain.QueuedGeneration {
	return domain.QueuedGeneration{
		JobID: jobID,
		Request: domain.GenerateRequest{
			SourceText:   workerTestSource,
			ContentTypes: []domain.ContentType{domain.ContentTypeMCQ},
			MaxItems:     2,
		},
	}
}

func TestProcessJobHappyPath(t *testing.T) {
	jobRepo := &stubJobRepo{}
	batchRepo := &stubBatchRepo{}
	pool := newTestPool(t, &stubQueue{}, jobRepo, batchRepo, 1)

	pool.processJob(context.Background(), "worker-1", queuedTestJob("01HZJOBAAAAAAAAAAAAAAAAAAA"))

	updates := jobRepo.recordedUpdates()
	if assert.Len(t, updates, 3) {
		assert.Equal(t, statusUpdate{"01HZJOBAAAAAAAAAAAAAAAAAAA", domain.JobStatusRunning, 10, ""}, updates[0])
		assert.Equal(t, statusUpdate{"01HZJOBAAAAAAAAAAAAAAAAAAA", domain.JobStatusRunning, 70, ""}, updates[1])
		assert.Equal(t, statusUpdate{"01HZJOBAAAAAAAAAAAAAAAAAAA", domain.JobStatusSucceeded, 100, ""}, updates[2])
	}

	saved := batchRepo.savedBatch()
	if assert.NotNil(t, saved) {
		assert.Len(t, saved.Items, 2)
		assert.Equal(t, "01HZJOBAAAAAAAAAAAAAAAAAAA", jobRepo.attachedJobID)
		assert.Equal(t, saved.ID, jobRepo.attachedBatch)
	}
}

func TestProcessJobPersistFailureMarksJobFailed(t *testing.T) {
	jobRepo := &stubJobRepo{}
	batchRepo := &stubBatchRepo{saveErr: errors.New("ORA-12170: connect timeout")}
	pool := newTestPool(t, &stubQueue{}, jobRepo, batchRepo, 1)

	pool.processJob(context.Background(), "worker-1", queuedTestJob("01HZJOBAAAAAAAAAAAAAAAAAAA"))

	updates := jobRepo.recordedUpdates()
	if assert.Len(t, updates, 3) {
		final := updates[2]
		assert.Equal(t, domain.JobStatusFailed, final.status)
		assert.Equal(t, 70, final.progress)
		assert.Contains(t, final.message, "failed to persist batch")
	}
}

func TestProcessJobMarkRunningFailureAborts(t *testing.T) {
	jobRepo := &stubJobRepo{
		updateErrFunc: func(update statusUpdate) error {
			if update.progress == 10 {
				return errors.New("ORA-12170: connect timeout")
			}
			return nil
		},
	}
	batchRepo := &stubBatchRepo{}
	pool := newTestPool(t, &stubQueue{}, jobRepo, batchRepo, 1)

	pool.processJob(context.Background(), "worker-1", queuedTestJob("01HZJOBAAAAAAAAAAAAAAAAAAA"))

	assert.Len(t, jobRepo.recordedUpdates(), 1)
	assert.Nil(t, batchRepo.savedBatch())
}

func TestProcessJobWithoutJobID(t *testing.T) {
	jobRepo := &stubJobRepo{}
	pool := newTestPool(t, &stubQueue{}, jobRepo, &stubBatchRepo{}, 1)

	pool.processJob(context.Background(), "worker-1", queuedTestJob(""))

	assert.Empty(t, jobRepo.recordedUpdates())
}

func TestRunProcessesQueuedJobAndStops(t *testing.T) {
	payload, err := json.Marshal(queuedTestJob("01HZJOBAAAAAAAAAAAAAAAAAAA"))
	assert.NoError(t, err)

	var deliverOnce sync.Once
	queue := &stubQueue{}
	queue.brPopFunc = func(ctx context.Context, timeout time.Duration, key string) (string, error) {
		assert.Equal(t, "quizforge:jobs:generation", key)
		delivered := false
		deliverOnce.Do(func() { delivered = true })
		if delivered {
			return string(payload), nil
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(timeout):
			return "", domain.ErrCacheMiss
		}
	}

	jobDone := make(chan struct{})
	jobRepo := &stubJobRepo{
		onUpdate: func(update statusUpdate) {
			if update.status == domain.JobStatusSucceeded {
				close(jobDone)
			}
		},
	}
	batchRepo := &stubBatchRepo{}
	pool := newTestPool(t, queue, jobRepo, batchRepo, 1)

	ctx, cancel := context.WithCancel(context.Background())
	runErr := make(chan error, 1)
	go func() { runErr <- pool.Run(ctx) }()

	select {
	case <-jobDone:
	case <-time.After(5 * time.Second):
		t.Fatal("job was not processed in time")
	}
	cancel()

	select {
	case err := <-runErr:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("pool did not stop after cancel")
	}

	assert.NotNil(t, batchRepo.savedBatch())
	assert.NotEmpty(t, queue.recordedHeartbeats())
	assert.Contains(t, queue.recordedHeartbeats()[0], "worker-1")
}

func TestRunStopsWhileIdle(t *testing.T) {
	pool := newTestPool(t, &stubQueue{}, &stubJobRepo{}, &stubBatchRepo{}, 2)

	ctx, cancel := context.WithCancel(context.Background())
	runErr := make(chan error, 1)
	go func() { runErr <- pool.Run(ctx) }()

	time.Sleep(60 * time.Millisecond)
	cancel()

	select {
	case err := <-runErr:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("pool did not stop after cancel")
	}
}

func TestRunDiscardsMalformedPayload(t *testing.T) {
	var deliverOnce sync.Once
	queue := &stubQueue{}
	queue.brPopFunc = func(ctx context.Context, timeout time.Duration, key string) (string, error) {
		delivered := false
		deliverOnce.Do(func() { delivered = true })
		if delivered {
			return "{not json", nil
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(timeout):
			return "", domain.ErrCacheMiss
		}
	}

	jobRepo := &stubJobRepo{}
	pool := newTestPool(t, queue, jobRepo, &stubBatchRepo{}, 1)

	ctx, cancel := context.WithCancel(context.Background())
	runErr := make(chan error, 1)
	go func() { runErr <- pool.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-runErr:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("pool did not stop after cancel")
	}

	assert.Empty(t, jobRepo.recordedUpdates())
}
