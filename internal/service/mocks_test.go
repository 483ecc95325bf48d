package service

import (
	"context"
	"time"

	"quizforge/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockJobRepository ---
type MockJobRepository struct {
	mock.Mock
}

func (m *MockJobRepository) CreateJob(ctx context.Context, job *domain.GenerationJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockJobRepository) GetJobByID(ctx context.Context, id string) (*domain.GenerationJob, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GenerationJob), args.Error(1)
}

func (m *MockJobRepository) UpdateJobStatus(ctx context.Context, id string, status domain.JobStatus, progress int, errorMessage string) error {
	args := m.Called(ctx, id, status, progress, errorMessage)
	return args.Error(0)
}

func (m *MockJobRepository) AttachResult(ctx context.Context, id string, batchID string) error {
	args := m.Called(ctx, id, batchID)
	return args.Error(0)
}

// --- MockBatchRepository ---
type MockBatchRepository struct {
	mock.Mock
}

func (m *MockBatchRepository) SaveBatch(ctx context.Context, batch *domain.ItemBatch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockBatchRepository) GetBatchByID(ctx context.Context, id string) (*domain.ItemBatch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ItemBatch), args.Error(1)
}

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCache) Incr(ctx context.Context, key string) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCache) Expire(ctx context.Context, key string, expiration time.Duration) error {
	args := m.Called(ctx, key, expiration)
	return args.Error(0)
}

func (m *MockCache) HSet(ctx context.Context, key string, field string, value string) error {
	args := m.Called(ctx, key, field, value)
	return args.Error(0)
}

func (m *MockCache) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockCache) LPush(ctx context.Context, key string, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockCache) BRPop(ctx context.Context, timeout time.Duration, key string) (string, error) {
	args := m.Called(ctx, timeout, key)
	return args.String(0), args.Error(1)
}

// --- MockTransactionManager ---
// Runs the callback directly; the repositories under test are mocks, so
// there is no real transaction to join.
type MockTransactionManager struct{}

func (m *MockTransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// --- scriptedProvider ---
// Replays canned completions in order, then empty JSON objects once the
// script runs out.
type scriptedProvider struct {
	replies []string
	err     error
	calls   int
}

func (s *scriptedProvider) Generate(ctx context.Context, prompt string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	if len(s.replies) == 0 {
		return "{}", nil
	}
	reply := s.replies[0]
	s.replies = s.replies[1:]
	return reply, nil
}

func (s *scriptedProvider) Name() string { return "scripted" }

// Ensure all required methods for interfaces are present in the mocks
var _ domain.JobRepository = (*MockJobRepository)(nil)
var _ domain.BatchRepository = (*MockBatchRepository)(nil)
var _ domain.Cache = (*MockCache)(nil)
var _ domain.TransactionManager = (*MockTransactionManager)(nil)
var _ domain.UserRepository = (*MockUserRepository)(nil)
var _ domain.TextProvider = (*scriptedProvider)(nil)
