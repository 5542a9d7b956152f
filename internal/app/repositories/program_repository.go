package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dariolp/escuela/internal/app/models"
	"github.com/dariolp/escuela/internal/pkg/apperrors"
	"github.com/dariolp/escuela/internal/pkg/dberrors"
)

// ProgramRepository handles database operations for academic programs
type ProgramRepository struct {
	db *pgxpool.Pool
}

// NewProgramRepository creates a new program repository
func NewProgramRepository(db *pgxpool.Pool) *ProgramRepository {
	return &ProgramRepository{
		db: db,
	}
}

// Create creates a new program and sets its generated ID
func (r *ProgramRepository) Create(ctx context.Context, program *models.Program) error {
	query := `
		INSERT INTO programs (name, code, duration_years, active, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		program.Name, program.Code, program.DurationYears, program.Active, program.Description,
	).Scan(&program.ID, &program.CreatedAt, &program.UpdatedAt)

	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrProgramAlreadyExists
		}
		return fmt.Errorf("error creating program: %w", err)
	}

	return nil
}

// GetByID retrieves a program by ID, including its dependent row counts
func (r *ProgramRepository) GetByID(ctx context.Context, id int64) (*models.Program, error) {
	query := `
		SELECT p.id, p.name, p.code, p.duration_years, p.active, p.description,
		       p.created_at, p.updated_at,
		       (SELECT COUNT(*) FROM courses c WHERE c.program_id = p.id),
		       (SELECT COUNT(*) FROM students s WHERE s.program_id = p.id)
		FROM programs p
		WHERE p.id = $1
	`

	var program models.Program
	err := r.db.QueryRow(ctx, query, id).Scan(
		&program.ID, &program.Name, &program.Code, &program.DurationYears,
		&program.Active, &program.Description, &program.CreatedAt, &program.UpdatedAt,
		&program.CourseCount, &program.StudentCount,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProgramNotFound
		}
		return nil, fmt.Errorf("error retrieving program: %w", err)
	}

	return &program, nil
}

// GetByCode retrieves a program by its unique code
func (r *ProgramRepository) GetByCode(ctx context.Context, code string) (*models.Program, error) {
	query := `
		SELECT id, name, code, duration_years, active, description, created_at, updated_at
		FROM programs
		WHERE code = $1
	`

	var program models.Program
	err := r.db.QueryRow(ctx, query, code).Scan(
		&program.ID, &program.Name, &program.Code, &program.DurationYears,
		&program.Active, &program.Description, &program.CreatedAt, &program.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProgramNotFound
		}
		return nil, fmt.Errorf("error retrieving program by code: %w", err)
	}

	return &program, nil
}

// GetAll retrieves programs, optionally filtered by active flag and a name/code search term
func (r *ProgramRepository) GetAll(ctx context.Context, active *bool, search string) ([]*models.Program, error) {
	query := `
		SELECT p.id, p.name, p.code, p.duration_years, p.active, p.description,
		       p.created_at, p.updated_at,
		       (SELECT COUNT(*) FROM courses c WHERE c.program_id = p.id),
		       (SELECT COUNT(*) FROM students s WHERE s.program_id = p.id)
		FROM programs p
		WHERE ($1::boolean IS NULL OR p.active = $1)
		  AND ($2 = '' OR p.name ILIKE '%' || $2 || '%' OR p.code ILIKE '%' || $2 || '%')
		ORDER BY p.name
	`

	rows, err := r.db.Query(ctx, query, active, search)
	if err != nil {
		return nil, fmt.Errorf("error listing programs: %w", err)
	}
	defer rows.Close()

	var programs []*models.Program
	for rows.Next() {
		var program models.Program
		if err := rows.Scan(
			&program.ID, &program.Name, &program.Code, &program.DurationYears,
			&program.Active, &program.Description, &program.CreatedAt, &program.UpdatedAt,
			&program.CourseCount, &program.StudentCount,
		); err != nil {
			return nil, err
		}
		programs = append(programs, &program)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return programs, nil
}

// ExistsByNameOrCode checks if another program already uses the name or code
func (r *ProgramRepository) ExistsByNameOrCode(ctx context.Context, name, code string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM programs WHERE (name = $1 OR code = $2) AND id != $3)`,
		name, code, excludeID).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking program existence: %w", err)
	}

	return exists, nil
}

// MaxCourseYear returns the highest course year in the program's plan,
// or zero when the program has no courses.
func (r *ProgramRepository) MaxCourseYear(ctx context.Context, programID int64) (int, error) {
	var maxYear int
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(MAX(year), 0) FROM courses WHERE program_id = $1`,
		programID).Scan(&maxYear)
	if err != nil {
		return 0, fmt.Errorf("error retrieving max course year: %w", err)
	}
	return maxYear, nil
}

// Update updates an existing program
func (r *ProgramRepository) Update(ctx context.Context, program *models.Program) error {
	query := `
		UPDATE programs
		SET name = $1, code = $2, duration_years = $3, active = $4, description = $5, updated_at = NOW()
		WHERE id = $6
	`

	cmdTag, err := r.db.Exec(ctx, query,
		program.Name, program.Code, program.DurationYears, program.Active,
		program.Description, program.ID)

	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrProgramAlreadyExists
		}
		return fmt.Errorf("error updating program: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProgramNotFound
	}

	return nil
}

// Delete deletes a program by ID. Deletion is blocked while the program
// still owns courses or students; the RESTRICT foreign keys are the backstop
// for anything that slips past the explicit check.
func (r *ProgramRepository) Delete(ctx context.Context, id int64) error {
	var hasRelations bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM courses WHERE program_id = $1)
		    OR EXISTS(SELECT 1 FROM students WHERE program_id = $1)`,
		id).Scan(&hasRelations)

	if err != nil {
		return fmt.Errorf("error checking program relations: %w", err)
	}

	if hasRelations {
		return apperrors.ErrProgramHasRelations
	}

	cmdTag, err := r.db.Exec(ctx, `DELETE FROM programs WHERE id = $1`, id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrProgramHasRelations
		}
		return fmt.Errorf("error deleting program: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProgramNotFound
	}

	return nil
}
