package domain

import "context"

// GenerationService defines the core business operations for item generation
type GenerationService interface {
	// Generate runs the pipeline synchronously and persists the batch
	Generate(ctx context.Context, userID string, req GenerateRequest) (*ItemBatch, error)

	// EnqueueGeneration registers a job and pushes it onto the work queue
	EnqueueGeneration(ctx context.Context, userID string, req GenerateRequest) (*GenerationJob, error)

	// GetJob returns the current state of a generation job
	GetJob(ctx context.Context, jobID string) (*GenerationJob, error)

	// GetBatch returns a stored batch with its items
	GetBatch(ctx context.Context, batchID string) (*ItemBatch, error)
}

// AuthService issues and verifies access tokens
type AuthService interface {
	// IssueToken authenticates the credentials and returns a signed JWT.
	// An unknown email is registered on the fly.
	IssueToken(ctx context.Context, email, password string) (string, error)

	// VerifyToken parses a JWT and returns the user id it names
	VerifyToken(tokenString string) (string, error)
}

// JobRepository defines the interface for generation job persistence
type JobRepository interface {
	// CreateJob persists a new queued job
	CreateJob(ctx context.Context, job *GenerationJob) error

	// GetJobByID retrieves a job by its ID
	GetJobByID(ctx context.Context, id string) (*GenerationJob, error)

	// UpdateJobStatus records status, progress and the optional error message
	UpdateJobStatus(ctx context.Context, id string, status JobStatus, progress int, errorMessage string) error

	// AttachResult links a finished job to its result batch
	AttachResult(ctx context.Context, id string, batchID string) error
}

// BatchRepository defines the interface for item batch persistence
type BatchRepository interface {
	// SaveBatch persists a batch together with its items
	SaveBatch(ctx context.Context, batch *ItemBatch) error

	// GetBatchByID retrieves a batch and its items, ordered by position
	GetBatchByID(ctx context.Context, id string) (*ItemBatch, error)
}

// UserRepository defines the interface for user data persistence.
type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, userID string) (*User, error)
}

// TransactionManager runs a function inside a database transaction.
// Repositories called with the returned context join that transaction.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
