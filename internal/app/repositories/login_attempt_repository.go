package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LoginAttemptRepository persists failed login attempts so per-IP throttling
// survives restarts. Expired rows are ignored by the counting query and
// purged opportunistically.
type LoginAttemptRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewLoginAttemptRepository creates a new LoginAttemptRepository
func NewLoginAttemptRepository(db *pgxpool.Pool) *LoginAttemptRepository {
	return &LoginAttemptRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Record stores a failed attempt for the given source IP and target email.
func (r *LoginAttemptRepository) Record(ctx context.Context, ip, email string) error {
	sql, args, err := r.sb.Insert("login_attempts").
		Columns("ip", "email", "attempted_at").
		Values(ip, email, time.Now()).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build record attempt query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error recording login attempt: %w", err)
	}
	return nil
}

// CountByIP counts failed attempts from an IP within the window.
func (r *LoginAttemptRepository) CountByIP(ctx context.Context, ip string, window time.Duration) (int, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("login_attempts").
		Where(squirrel.Eq{"ip": ip}).
		Where(squirrel.GtOrEq{"attempted_at": time.Now().Add(-window)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count by IP query: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting login attempts by IP: %w", err)
	}
	return count, nil
}

// ClearForIP removes attempt rows for an IP, called after a successful login.
func (r *LoginAttemptRepository) ClearForIP(ctx context.Context, ip string) error {
	sql, args, err := r.sb.Delete("login_attempts").
		Where(squirrel.Eq{"ip": ip}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build clear attempts query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error clearing login attempts: %w", err)
	}
	return nil
}

// DeleteOlderThan purges attempt rows outside the throttling window.
func (r *LoginAttemptRepository) DeleteOlderThan(ctx context.Context, window time.Duration) (int64, error) {
	sql, args, err := r.sb.Delete("login_attempts").
		Where(squirrel.Lt{"attempted_at": time.Now().Add(-window)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build purge attempts query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("error purging login attempts: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
