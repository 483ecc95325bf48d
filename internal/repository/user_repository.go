package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"quizforge/internal/domain"
	"quizforge/internal/repository/models"
	"quizforge/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxUserRepository implements domain.UserRepository using sqlx.
type sqlxUserRepository struct {
	db *sqlx.DB
}

// NewSQLXUserRepository creates a new instance of sqlxUserRepository.
func NewSQLXUserRepository(db *sqlx.DB) domain.UserRepository {
	return &sqlxUserRepository{db: db}
}

// CreateUser inserts a new user. The ID is assigned here when absent.
func (r *sqlxUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	model := fromDomainUser(user)
	if model == nil {
		return fmt.Errorf("cannot create nil user")
	}
	if model.ID == "" {
		model.ID = util.NewULID()
	}
	model.CreatedAt = time.Now()
	model.UpdatedAt = time.Now()

	query := `INSERT INTO users (
		id, email, password_hash, created_at, updated_at
	) VALUES (
		:1, :2, :3, :4, :5
	)`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		model.ID,
		model.Email,
		model.PasswordHash,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	user.ID = model.ID
	user.CreatedAt = model.CreatedAt
	user.UpdatedAt = model.UpdatedAt
	return nil
}

// GetUserByEmail retrieves a user by email. Returns (nil, nil) when no
// user exists, so the auth service can register on the fly.
func (r *sqlxUserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var model models.User
	query := `SELECT
		id "id",
		email "email",
		password_hash "password_hash",
		created_at "created_at",
		updated_at "updated_at",
		deleted_at "deleted_at"
	FROM users
	WHERE email = :1
	AND deleted_at IS NULL`

	executor := GetExecutor(ctx, r.db)
	err := executor.GetContext(ctx, &model, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return toDomainUser(&model), nil
}

// GetUserByID retrieves a user by its internal ID.
func (r *sqlxUserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	var model models.User
	query := `SELECT
		id "id",
		email "email",
		password_hash "password_hash",
		created_at "created_at",
		updated_at "updated_at",
		deleted_at "deleted_at"
	FROM users
	WHERE id = :1
	AND deleted_at IS NULL`

	executor := GetExecutor(ctx, r.db)
	err := executor.GetContext(ctx, &model, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return toDomainUser(&model), nil
}

// Helper functions for model conversion
func toDomainUser(m *models.User) *domain.User {
	if m == nil {
		return nil
	}
	return &domain.User{
		ID:           m.ID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func fromDomainUser(d *domain.User) *models.User {
	if d == nil {
		return nil
	}
	return &models.User{
		ID:           d.ID,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}
