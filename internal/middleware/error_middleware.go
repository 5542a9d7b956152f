package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dariolp/escuela/internal/app/models/dto"
	"github.com/dariolp/escuela/internal/pkg/apperrors"
	"github.com/dariolp/escuela/internal/pkg/logger"
)

// HandleAPIError maps application errors to HTTP responses. Controllers call
// it with whatever the service layer returned; everything unknown becomes a
// 500 without leaking internals.
func HandleAPIError(c *gin.Context, err error) {
	var customErr *apperrors.CustomError
	message := ""
	if errors.As(err, &customErr) {
		message = customErr.Message
	}

	respond := func(status int, code dto.ErrorCode, defaultMessage string) {
		if message == "" {
			message = defaultMessage
		}
		detail := dto.NewErrorDetail(code, message)
		if customErr != nil && customErr.Details != nil {
			detail = detail.WithDetails(customErr.Details)
		}
		c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
	}

	switch {
	// Authentication
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials")
	case errors.Is(err, apperrors.ErrAccountLocked):
		respond(http.StatusLocked, dto.ErrorCodeAccountLocked, "Account temporarily locked, try again later")
	case errors.Is(err, apperrors.ErrAccountDisabled):
		respond(http.StatusForbidden, dto.ErrorCodeForbidden, "Account is disabled")
	case errors.Is(err, apperrors.ErrPasswordChangeNeeded):
		respond(http.StatusForbidden, dto.ErrorCodePasswordChange, "Password change required")
	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenRevoked):
		respond(http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Token revoked")
	case errors.Is(err, apperrors.ErrTokenInvalid), errors.Is(err, apperrors.ErrTokenNotFound):
		respond(http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respond(http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied")

	// Not found
	case errors.Is(err, apperrors.ErrProgramNotFound):
		respond(http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Program not found")
	case errors.Is(err, apperrors.ErrCourseNotFound):
		respond(http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Course not found")
	case errors.Is(err, apperrors.ErrStudentNotFound):
		respond(http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Student not found")
	case errors.Is(err, apperrors.ErrEnrollmentNotFound):
		respond(http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Enrollment not found")
	case errors.Is(err, apperrors.ErrUserNotFound):
		respond(http.StatusNotFound, dto.ErrorCodeResourceNotFound, "User not found")
	case errors.Is(err, apperrors.ErrResourceNotFound):
		respond(http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found")

	// Duplicates
	case errors.Is(err, apperrors.ErrProgramAlreadyExists):
		respond(http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "A program with this name or code already exists")
	case errors.Is(err, apperrors.ErrCourseAlreadyExists):
		respond(http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "A course with this name or code already exists in the program")
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respond(http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already registered")
	case errors.Is(err, apperrors.ErrDNIAlreadyExists):
		respond(http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "DNI already registered")
	case errors.Is(err, apperrors.ErrStudentNumberAlreadyExists):
		respond(http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Student number already exists")
	case errors.Is(err, apperrors.ErrAlreadyEnrolled):
		respond(http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Student is already enrolled in this course")

	// Domain rules
	case errors.Is(err, apperrors.ErrCourseFull):
		respond(http.StatusConflict, dto.ErrorCodeCapacityExceeded, "No seats available in this course")
	case errors.Is(err, apperrors.ErrProgramHasRelations):
		respond(http.StatusConflict, dto.ErrorCodeProtectedRelation, "Program has courses or students and cannot be deleted")
	case errors.Is(err, apperrors.ErrCourseHasRelations):
		respond(http.StatusConflict, dto.ErrorCodeProtectedRelation, "Course has enrollments and cannot be deleted")
	case errors.Is(err, apperrors.ErrProgramInactive):
		respond(http.StatusConflict, dto.ErrorCodeResourceInvalid, "Program is not active")
	case errors.Is(err, apperrors.ErrCourseInactive):
		respond(http.StatusConflict, dto.ErrorCodeResourceInvalid, "Course is not active and does not accept enrollments")
	case errors.Is(err, apperrors.ErrStudentInactive):
		respond(http.StatusConflict, dto.ErrorCodeResourceInvalid, "Student is not active")
	case errors.Is(err, apperrors.ErrCourseYearExceedsDuration):
		respond(http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Course year exceeds the program duration")

	// Generic
	case errors.Is(err, apperrors.ErrValidationFailed):
		respond(http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed")
	case errors.Is(err, apperrors.ErrBadRequest):
		respond(http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Bad request")
	case errors.Is(err, apperrors.ErrConflict):
		respond(http.StatusConflict, dto.ErrorCodeConflict, "Conflict")
	case errors.Is(err, apperrors.ErrResourceAlreadyExists):
		respond(http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Resource already exists")

	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled error")
		detail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(detail))
	}
}
