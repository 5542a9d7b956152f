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

const studentColumns = `
	id, first_name, last_name, dni, email, phone, student_number, program_id,
	user_id, entry_date, active, notes, created_at, updated_at
`

// StudentRepository handles database operations for students
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	var student models.Student
	err := row.Scan(
		&student.ID, &student.FirstName, &student.LastName, &student.DNI,
		&student.Email, &student.Phone, &student.StudentNumber, &student.ProgramID,
		&student.UserID, &student.EntryDate, &student.Active, &student.Notes,
		&student.CreatedAt, &student.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// Create creates a new student and sets its generated ID
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (first_name, last_name, dni, email, phone, student_number,
		                      program_id, user_id, entry_date, active, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		student.FirstName, student.LastName, student.DNI, student.Email,
		student.Phone, student.StudentNumber, student.ProgramID, student.UserID,
		student.EntryDate, student.Active, student.Notes,
	).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)

	if err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, "students_dni_key"):
			return apperrors.ErrDNIAlreadyExists
		case dberrors.IsDuplicateConstraintError(err, "students_email_key"):
			return apperrors.ErrEmailAlreadyExists
		case dberrors.IsDuplicateConstraintError(err, "students_student_number_key"):
			return apperrors.ErrStudentNumberAlreadyExists
		case dberrors.IsForeignKeyViolation(err):
			return apperrors.ErrProgramNotFound
		}
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1`

	student, err := scanStudent(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// GetByUserID retrieves the student linked to a user account
func (r *StudentRepository) GetByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE user_id = $1`

	student, err := scanStudent(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student by user: %w", err)
	}

	return student, nil
}

// GetAll retrieves students, optionally filtered by program and active flag,
// paginated and ordered by last name.
func (r *StudentRepository) GetAll(ctx context.Context, programID *int64, active *bool, offset, limit int) ([]*models.Student, int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM students
		WHERE ($1::bigint IS NULL OR program_id = $1)
		  AND ($2::boolean IS NULL OR active = $2)`,
		programID, active).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting students: %w", err)
	}

	query := `
		SELECT ` + studentColumns + `
		FROM students
		WHERE ($1::bigint IS NULL OR program_id = $1)
		  AND ($2::boolean IS NULL OR active = $2)
		ORDER BY last_name, first_name
		OFFSET $3 LIMIT $4
	`

	rows, err := r.db.Query(ctx, query, programID, active, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, 0, err
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return students, total, nil
}

// Search finds active students whose name, DNI or student number matches the term
func (r *StudentRepository) Search(ctx context.Context, term string, limit int) ([]*models.Student, error) {
	query := `
		SELECT ` + studentColumns + `
		FROM students
		WHERE active = TRUE
		  AND (first_name ILIKE '%' || $1 || '%'
		       OR last_name ILIKE '%' || $1 || '%'
		       OR dni LIKE $1 || '%'
		       OR student_number ILIKE $1 || '%')
		ORDER BY last_name, first_name
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, term, limit)
	if err != nil {
		return nil, fmt.Errorf("error searching students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// DNIExists checks if a DNI is already registered, excluding one student ID
func (r *StudentRepository) DNIExists(ctx context.Context, dni string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM students WHERE dni = $1 AND id != $2)`,
		dni, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking DNI: %w", err)
	}
	return exists, nil
}

// EmailExists checks if an email is already registered, excluding one student ID
func (r *StudentRepository) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM students WHERE email = $1 AND id != $2)`,
		email, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking email: %w", err)
	}
	return exists, nil
}

// GetLastStudentNumberByPrefix returns the highest student number starting with
// the prefix, or an empty string when none exists. Used when generating the
// next number in a {year}{programCode} sequence.
func (r *StudentRepository) GetLastStudentNumberByPrefix(ctx context.Context, prefix string) (string, error) {
	var number string
	err := r.db.QueryRow(ctx, `
		SELECT student_number FROM students
		WHERE student_number LIKE $1 || '%'
		ORDER BY student_number DESC
		LIMIT 1`,
		prefix).Scan(&number)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("error retrieving last student number: %w", err)
	}

	return number, nil
}

// Update updates an existing student
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	query := `
		UPDATE students
		SET first_name = $1, last_name = $2, dni = $3, email = $4, phone = $5,
		    program_id = $6, user_id = $7, entry_date = $8, active = $9, notes = $10,
		    updated_at = NOW()
		WHERE id = $11
	`

	cmdTag, err := r.db.Exec(ctx, query,
		student.FirstName, student.LastName, student.DNI, student.Email,
		student.Phone, student.ProgramID, student.UserID, student.EntryDate,
		student.Active, student.Notes, student.ID)

	if err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, "students_dni_key"):
			return apperrors.ErrDNIAlreadyExists
		case dberrors.IsDuplicateConstraintError(err, "students_email_key"):
			return apperrors.ErrEmailAlreadyExists
		case dberrors.IsForeignKeyViolation(err):
			return apperrors.ErrProgramNotFound
		}
		return fmt.Errorf("error updating student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// Delete deletes a student by ID. Enrollment rows are removed with the student.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}
