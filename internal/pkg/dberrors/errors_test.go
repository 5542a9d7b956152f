package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func pgError(code, constraint string) error {
	return &pgconn.PgError{Code: code, ConstraintName: constraint}
}

func TestIsDuplicateConstraintError(t *testing.T) {
	dup := pgError("23505", "enrollments_student_id_course_id_key")

	if !IsDuplicateConstraintError(dup, "enrollments_student_id_course_id_key") {
		t.Error("expected match for the violated constraint")
	}
	if IsDuplicateConstraintError(dup, "students_dni_key") {
		t.Error("matched a different constraint name")
	}
	if IsDuplicateConstraintError(pgError("23503", "enrollments_student_id_course_id_key"), "enrollments_student_id_course_id_key") {
		t.Error("matched a non-unique-violation code")
	}
	if IsDuplicateConstraintError(errors.New("broken pipe"), "students_dni_key") {
		t.Error("matched a non-postgres error")
	}
}

func TestIsUniqueViolation(t *testing.T) {
	if !IsUniqueViolation(pgError("23505", "students_student_number_key")) {
		t.Error("expected unique violation to match")
	}
	if IsUniqueViolation(pgError("23503", "")) {
		t.Error("foreign key violation matched as unique")
	}
	if IsUniqueViolation(nil) {
		t.Error("nil matched as unique violation")
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	if !IsForeignKeyViolation(pgError("23503", "courses_program_id_fkey")) {
		t.Error("expected foreign key violation to match")
	}
	if IsForeignKeyViolation(pgError("23505", "")) {
		t.Error("unique violation matched as foreign key")
	}
}

func TestWrappedErrorsStillMatch(t *testing.T) {
	wrapped := fmt.Errorf("error creating enrollment: %w", pgError("23505", "enrollments_student_id_course_id_key"))
	if !IsUniqueViolation(wrapped) {
		t.Error("wrapped unique violation did not match")
	}
	if !IsDuplicateConstraintError(wrapped, "enrollments_student_id_course_id_key") {
		t.Error("wrapped constraint violation did not match")
	}
}
