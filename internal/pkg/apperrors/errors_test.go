package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestCustomErrorUnwrap(t *testing.T) {
	err := NewValidationError("DNI must have 7 or 8 digits")

	if !errors.Is(err, ErrValidationFailed) {
		t.Error("validation error does not unwrap to ErrValidationFailed")
	}
	if got := err.Error(); got != "DNI must have 7 or 8 digits" {
		t.Errorf("Error() = %q, want the custom message", got)
	}

	var customErr *CustomError
	if !errors.As(err, &customErr) {
		t.Fatal("errors.As failed to extract CustomError")
	}
	if customErr.Message != "DNI must have 7 or 8 digits" {
		t.Errorf("Message = %q", customErr.Message)
	}
}

func TestCustomErrorThroughWrapping(t *testing.T) {
	inner := NewConflictError("course is already at capacity")
	wrapped := fmt.Errorf("enrolling student: %w", inner)

	if !errors.Is(wrapped, ErrConflict) {
		t.Error("wrapped error does not match ErrConflict")
	}

	var customErr *CustomError
	if !errors.As(wrapped, &customErr) {
		t.Fatal("errors.As failed through wrapping")
	}
	if customErr.Message != "course is already at capacity" {
		t.Errorf("Message = %q", customErr.Message)
	}
}

func TestCustomErrorFallbackMessage(t *testing.T) {
	err := &CustomError{Err: ErrCourseNotFound}
	if got := err.Error(); got != ErrCourseNotFound.Error() {
		t.Errorf("Error() = %q, want the sentinel message", got)
	}
}

func TestCustomErrorWithDetails(t *testing.T) {
	err := NewCustomError(ErrCourseFull, "No seats available in this course").
		WithDetails(map[string]interface{}{"courseId": int64(3)})

	if !errors.Is(err, ErrCourseFull) {
		t.Error("does not unwrap to ErrCourseFull")
	}
	if err.Details["courseId"] != int64(3) {
		t.Errorf("Details = %v", err.Details)
	}
}
