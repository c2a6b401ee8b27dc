package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/user-directory/internal/logger"
	"github.com/sbilibin2017/user-directory/internal/models"
)

// ErrDuplicateEmail is returned when a write violates the email uniqueness
// constraint. The constraint covers all records, soft-deleted included.
var ErrDuplicateEmail = errors.New("email already registered")

const userColumns = "user_id, first_name, last_name, email, password, newsletter, subscription_id, created_at, deleted"

// Migrate creates the users table. Called once at startup, before any
// repository is used.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	const query = `
		CREATE TABLE IF NOT EXISTS users (
			user_id BIGSERIAL PRIMARY KEY,
			first_name VARCHAR(255) NOT NULL,
			last_name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL UNIQUE,
			password VARCHAR(255) NOT NULL,
			newsletter BOOLEAN NOT NULL DEFAULT FALSE,
			subscription_id BIGINT NOT NULL DEFAULT 1,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted BOOLEAN NOT NULL DEFAULT FALSE
		)
	`
	_, err := db.ExecContext(ctx, query)
	logger.Log.Infow("migrate users table", "error", err)
	return err
}

// isUniqueViolation reports whether err is a postgres unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

// GetByID returns the record with the given id, deleted or not.
// Returns (nil, nil) when no record exists.
func (r *UserReadRepository) GetByID(ctx context.Context, userID int64) (*models.UserDB, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE user_id = $1
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, userID)

	logger.Log.Infow("user query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// GetByEmail returns the record holding the given email, deleted or not.
// Returns (nil, nil) when no record holds it.
func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*models.UserDB, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, email)

	logger.Log.Infow("user query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{email},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// List returns records in insertion order. With includeDeleted false,
// soft-deleted records are filtered out.
func (r *UserReadRepository) List(ctx context.Context, includeDeleted bool) ([]models.UserDB, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY user_id
	`
	if !includeDeleted {
		query = `
			SELECT ` + userColumns + `
			FROM users
			WHERE NOT deleted
			ORDER BY user_id
		`
	}

	var users []models.UserDB
	err := r.db.SelectContext(ctx, &users, query)

	logger.Log.Infow("user query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{includeDeleted},
		"rows", len(users),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return users, nil
}

type UserWriteRepository struct {
	db *sqlx.DB
}

func NewUserWriteRepository(db *sqlx.DB) *UserWriteRepository {
	return &UserWriteRepository{db: db}
}

// Insert stores a new record and returns it with the generated id and
// creation timestamp. The unique constraint on email is the single
// authority for duplicates, so check-then-write is one atomic step.
func (r *UserWriteRepository) Insert(ctx context.Context, payload models.UserPayload) (*models.UserDB, error) {
	const query = `
		INSERT INTO users (first_name, last_name, email, password)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns

	args := []any{payload.FirstName, payload.LastName, payload.Email, payload.Password}

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, args...)

	logger.Log.Infow("user insert",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{payload.FirstName, payload.LastName, payload.Email},
		"error", err,
	)

	if isUniqueViolation(err) {
		return nil, ErrDuplicateEmail
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// Update rewrites the mutable fields of a record in a single statement, so
// the row and the email index never disagree. Returns (nil, nil) when the
// id does not exist and ErrDuplicateEmail when the new email is taken.
func (r *UserWriteRepository) Update(ctx context.Context, userID int64, payload models.UserPayload) (*models.UserDB, error) {
	const query = `
		UPDATE users
		SET first_name = $2, last_name = $3, email = $4, password = $5
		WHERE user_id = $1
		RETURNING ` + userColumns

	args := []any{userID, payload.FirstName, payload.LastName, payload.Email, payload.Password}

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, args...)

	logger.Log.Infow("user update",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID, payload.FirstName, payload.LastName, payload.Email},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if isUniqueViolation(err) {
		return nil, ErrDuplicateEmail
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// MarkDeleted soft-deletes a record. Re-deleting an already-deleted record
// succeeds and leaves it unchanged. Returns (nil, nil) when the id does
// not exist.
func (r *UserWriteRepository) MarkDeleted(ctx context.Context, userID int64) (*models.UserDB, error) {
	const query = `
		UPDATE users
		SET deleted = TRUE
		WHERE user_id = $1
		RETURNING ` + userColumns

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, userID)

	logger.Log.Infow("user mark deleted",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}
