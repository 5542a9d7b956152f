package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrTokenExpired         = errors.New("token expired")
	ErrTokenInvalid         = errors.New("invalid token")
	ErrTokenNotFound        = errors.New("token not found")
	ErrTokenRevoked         = errors.New("token revoked")
	ErrAccountDisabled      = errors.New("account is disabled")
	ErrAccountLocked        = errors.New("account temporarily locked after too many failed attempts")
	ErrPasswordChangeNeeded = errors.New("password change required before continuing")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrDNIAlreadyExists   = errors.New("DNI already exists")
)

// Program errors
var (
	ErrProgramNotFound      = errors.New("program not found")
	ErrProgramAlreadyExists = errors.New("program with this name or code already exists")
	ErrProgramHasRelations  = errors.New("program has courses or students and cannot be deleted")
	ErrProgramInactive      = errors.New("program is not active")
)

// Course errors
var (
	ErrCourseNotFound            = errors.New("course not found")
	ErrCourseAlreadyExists       = errors.New("course with this name or code already exists in the program")
	ErrCourseHasRelations        = errors.New("course has enrollments and cannot be deleted")
	ErrCourseInactive            = errors.New("course is not active and does not accept enrollments")
	ErrCourseFull                = errors.New("course has no available seats")
	ErrCourseYearExceedsDuration = errors.New("course year exceeds the program duration")
)

// Student errors
var (
	ErrStudentNotFound            = errors.New("student not found")
	ErrStudentNumberAlreadyExists = errors.New("student number already exists")
	ErrStudentInactive            = errors.New("student is not active")
)

// Enrollment errors
var (
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrAlreadyEnrolled    = errors.New("student is already enrolled in this course")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// NewValidationError creates a new custom error for validation failures with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}
