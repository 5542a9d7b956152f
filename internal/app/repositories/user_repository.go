package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dariolp/escuela/internal/app/models"
	"github.com/dariolp/escuela/internal/pkg/apperrors"
	"github.com/dariolp/escuela/internal/pkg/dberrors"
)

const userColumns = `id, email, password, first_name, last_name, dni, role, is_active,
	must_change_password, failed_attempts, locked_until, last_login_at, last_login_ip,
	created_at, updated_at`

// UserRepository handles database operations for user accounts
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func scanUser(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName, &user.LastName,
		&user.DNI, &user.Role, &user.IsActive, &user.MustChangePassword,
		&user.FailedAttempts, &user.LockedUntil, &user.LastLoginAt, &user.LastLoginIP,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error scanning user row: %w", err)
	}
	return user, nil
}

// Create creates a new user and sets its generated ID
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, password, first_name, last_name, dni, role, is_active, must_change_password)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		user.Email, user.Password, user.FirstName, user.LastName,
		user.DNI, user.Role, user.IsActive, user.MustChangePassword,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		if dberrors.IsDuplicateConstraintError(err, "users_dni_key") {
			return apperrors.ErrDNIAlreadyExists
		}
		return fmt.Errorf("error creating user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRow(ctx, query, email))
}

// EmailExists checks if an email already exists
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`,
		email).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking email: %w", err)
	}

	return exists, nil
}

// UpdatePassword replaces the stored hash and clears the forced-change flag
func (r *UserRepository) UpdatePassword(ctx context.Context, userID int64, hashedPassword string) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE users
		SET password = $1, must_change_password = FALSE, updated_at = NOW()
		WHERE id = $2`,
		hashedPassword, userID)

	if err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// RecordFailedLogin increments the attempt counter and, at the threshold,
// sets the lockout deadline.
func (r *UserRepository) RecordFailedLogin(ctx context.Context, userID int64, maxAttempts int, lockoutDuration time.Duration) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users
		SET failed_attempts = failed_attempts + 1,
		    locked_until = CASE WHEN failed_attempts + 1 >= $2 THEN NOW() + $3::interval ELSE locked_until END,
		    updated_at = NOW()
		WHERE id = $1`,
		userID, maxAttempts, fmt.Sprintf("%d seconds", int(lockoutDuration.Seconds())))

	if err != nil {
		return fmt.Errorf("error recording failed login: %w", err)
	}
	return nil
}

// RecordSuccessfulLogin clears attempt counters and stores the login source
func (r *UserRepository) RecordSuccessfulLogin(ctx context.Context, userID int64, ip string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users
		SET failed_attempts = 0,
		    locked_until = NULL,
		    last_login_at = NOW(),
		    last_login_ip = $2,
		    updated_at = NOW()
		WHERE id = $1`,
		userID, ip)

	if err != nil {
		return fmt.Errorf("error recording successful login: %w", err)
	}
	return nil
}

// Update updates a user's profile fields
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE users
		SET email = $1, first_name = $2, last_name = $3, dni = $4, role = $5,
		    is_active = $6, updated_at = NOW()
		WHERE id = $7`,
		user.Email, user.FirstName, user.LastName, user.DNI, user.Role,
		user.IsActive, user.ID)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		if dberrors.IsDuplicateConstraintError(err, "users_dni_key") {
			return apperrors.ErrDNIAlreadyExists
		}
		return fmt.Errorf("error updating user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// Delete deletes a user by ID
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}
