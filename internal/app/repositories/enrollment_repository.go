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

// EnrollmentRepository handles database operations for enrollments
type EnrollmentRepository struct {
	db *pgxpool.Pool
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: db,
	}
}

func scanEnrollment(row pgx.Row) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	err := row.Scan(
		&enrollment.ID, &enrollment.StudentID, &enrollment.CourseID,
		&enrollment.Status, &enrollment.EnrollmentDate, &enrollment.Notes,
		&enrollment.CreatedAt, &enrollment.UpdatedAt,
		&enrollment.StudentName, &enrollment.StudentNumber, &enrollment.CourseName,
	)
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// Create inserts a new enrollment. The UNIQUE(student_id, course_id) constraint
// is the final arbiter: concurrent inserts for the same pair lose here and
// surface as ErrAlreadyEnrolled no matter what the service saw beforehand.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	query := `
		INSERT INTO enrollments (student_id, course_id, status, enrollment_date, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		enrollment.StudentID, enrollment.CourseID, enrollment.Status,
		enrollment.EnrollmentDate, enrollment.Notes,
	).Scan(&enrollment.ID, &enrollment.CreatedAt, &enrollment.UpdatedAt)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "enrollments_student_id_course_id_key") {
			return apperrors.ErrAlreadyEnrolled
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrResourceNotFound
		}
		return fmt.Errorf("error creating enrollment: %w", err)
	}

	return nil
}

// GetByID retrieves an enrollment by ID together with denormalized
// student and course display fields.
func (r *EnrollmentRepository) GetByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	query := `
		SELECT e.id, e.student_id, e.course_id, e.status, e.enrollment_date, e.notes,
		       e.created_at, e.updated_at,
		       s.first_name || ' ' || s.last_name, s.student_number, c.name
		FROM enrollments e
		JOIN students s ON s.id = e.student_id
		JOIN courses c ON c.id = e.course_id
		WHERE e.id = $1
	`

	enrollment, err := scanEnrollment(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}

	return enrollment, nil
}

// GetAll retrieves enrollments filtered by student, course and status
func (r *EnrollmentRepository) GetAll(ctx context.Context, studentID, courseID *int64, status *models.EnrollmentStatus) ([]*models.Enrollment, error) {
	query := `
		SELECT e.id, e.student_id, e.course_id, e.status, e.enrollment_date, e.notes,
		       e.created_at, e.updated_at,
		       s.first_name || ' ' || s.last_name, s.student_number, c.name
		FROM enrollments e
		JOIN students s ON s.id = e.student_id
		JOIN courses c ON c.id = e.course_id
		WHERE ($1::bigint IS NULL OR e.student_id = $1)
		  AND ($2::bigint IS NULL OR e.course_id = $2)
		  AND ($3::text IS NULL OR e.status = $3)
		ORDER BY e.enrollment_date DESC, e.id DESC
	`

	rows, err := r.db.Query(ctx, query, studentID, courseID, status)
	if err != nil {
		return nil, fmt.Errorf("error listing enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []*models.Enrollment
	for rows.Next() {
		enrollment, err := scanEnrollment(rows)
		if err != nil {
			return nil, err
		}
		enrollments = append(enrollments, enrollment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return enrollments, nil
}

// Exists checks whether the student already has an enrollment in the course
func (r *EnrollmentRepository) Exists(ctx context.Context, studentID, courseID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM enrollments WHERE student_id = $1 AND course_id = $2)`,
		studentID, courseID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking enrollment existence: %w", err)
	}
	return exists, nil
}

// CountActiveByCourse returns how many seats a course currently has taken
func (r *EnrollmentRepository) CountActiveByCourse(ctx context.Context, courseID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM enrollments WHERE course_id = $1 AND status = 'ENROLLED'`,
		courseID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting active enrollments: %w", err)
	}
	return count, nil
}

// UpdateStatus updates the status and notes of an enrollment
func (r *EnrollmentRepository) UpdateStatus(ctx context.Context, id int64, status models.EnrollmentStatus, notes string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE enrollments SET status = $1, notes = $2, updated_at = NOW() WHERE id = $3`,
		status, notes, id)
	if err != nil {
		return fmt.Errorf("error updating enrollment: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}

	return nil
}

// Delete deletes an enrollment by ID
func (r *EnrollmentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM enrollments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting enrollment: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}

	return nil
}
