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

// courseColumns selects a course row together with its current seat usage.
// Only ENROLLED rows take a seat; REGULAR, PASSED and FAILED do not.
const courseColumns = `
	c.id, c.program_id, c.name, c.code, c.year, c.semester, c.max_capacity,
	c.weekly_hours, c.active, c.description, c.created_at, c.updated_at,
	(SELECT COUNT(*) FROM enrollments e WHERE e.course_id = c.id AND e.status = 'ENROLLED')
`

// CourseRepository handles database operations for courses
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
	}
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	var course models.Course
	err := row.Scan(
		&course.ID, &course.ProgramID, &course.Name, &course.Code, &course.Year,
		&course.Semester, &course.MaxCapacity, &course.WeeklyHours, &course.Active,
		&course.Description, &course.CreatedAt, &course.UpdatedAt,
		&course.EnrolledCount,
	)
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// Create creates a new course and sets its generated ID
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (program_id, name, code, year, semester, max_capacity, weekly_hours, active, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		course.ProgramID, course.Name, course.Code, course.Year, course.Semester,
		course.MaxCapacity, course.WeeklyHours, course.Active, course.Description,
	).Scan(&course.ID, &course.CreatedAt, &course.UpdatedAt)

	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrCourseAlreadyExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrProgramNotFound
		}
		return fmt.Errorf("error creating course: %w", err)
	}

	return nil
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses c WHERE c.id = $1`

	course, err := scanCourse(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return course, nil
}

// GetAll retrieves courses, optionally filtered by program, year, active flag
// and a name/code search term
func (r *CourseRepository) GetAll(ctx context.Context, programID *int64, year *int, active *bool, search string) ([]*models.Course, error) {
	query := `
		SELECT ` + courseColumns + `
		FROM courses c
		WHERE ($1::bigint IS NULL OR c.program_id = $1)
		  AND ($2::int IS NULL OR c.year = $2)
		  AND ($3::boolean IS NULL OR c.active = $3)
		  AND ($4 = '' OR c.name ILIKE '%' || $4 || '%' OR c.code ILIKE '%' || $4 || '%')
		ORDER BY c.year, c.semester, c.name
	`

	rows, err := r.db.Query(ctx, query, programID, year, active, search)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}

// ExistsInProgram checks if another course in the same program already uses the name or code
func (r *CourseRepository) ExistsInProgram(ctx context.Context, programID int64, name, code string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM courses
			WHERE program_id = $1 AND (name = $2 OR code = $3) AND id != $4
		)`,
		programID, name, code, excludeID).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking course existence: %w", err)
	}

	return exists, nil
}

// GetCodesByProgram returns the codes already used within a program,
// for suggesting the next free one.
func (r *CourseRepository) GetCodesByProgram(ctx context.Context, programID int64) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT code FROM courses WHERE program_id = $1 ORDER BY code`,
		programID)
	if err != nil {
		return nil, fmt.Errorf("error listing course codes: %w", err)
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return codes, nil
}

// Update updates an existing course
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	query := `
		UPDATE courses
		SET program_id = $1, name = $2, code = $3, year = $4, semester = $5,
		    max_capacity = $6, weekly_hours = $7, active = $8, description = $9, updated_at = NOW()
		WHERE id = $10
	`

	cmdTag, err := r.db.Exec(ctx, query,
		course.ProgramID, course.Name, course.Code, course.Year, course.Semester,
		course.MaxCapacity, course.WeeklyHours, course.Active, course.Description, course.ID)

	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrCourseAlreadyExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrProgramNotFound
		}
		return fmt.Errorf("error updating course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// CountEnrollments returns the number of enrollment rows referencing the course,
// regardless of status.
func (r *CourseRepository) CountEnrollments(ctx context.Context, courseID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM enrollments WHERE course_id = $1`, courseID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting enrollments: %w", err)
	}
	return count, nil
}

// Delete deletes a course by ID. Courses with enrollment history cannot be deleted.
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	count, err := r.CountEnrollments(ctx, id)
	if err != nil {
		return err
	}

	if count > 0 {
		return apperrors.ErrCourseHasRelations
	}

	cmdTag, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrCourseHasRelations
		}
		return fmt.Errorf("error deleting course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}
