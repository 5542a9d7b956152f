package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dariolp/escuela/internal/app/models/dto"
	"github.com/dariolp/escuela/internal/pkg/apperrors"
)

func TestHandleAPIError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{name: "invalid credentials", err: apperrors.ErrInvalidCredentials, wantStatus: http.StatusUnauthorized, wantCode: dto.ErrorCodeInvalidCredentials},
		{name: "account locked", err: apperrors.ErrAccountLocked, wantStatus: http.StatusLocked, wantCode: dto.ErrorCodeAccountLocked},
		{name: "account disabled", err: apperrors.ErrAccountDisabled, wantStatus: http.StatusForbidden, wantCode: dto.ErrorCodeForbidden},
		{name: "expired token", err: apperrors.ErrTokenExpired, wantStatus: http.StatusUnauthorized, wantCode: dto.ErrorCodeExpiredToken},
		{name: "permission denied", err: apperrors.ErrPermissionDenied, wantStatus: http.StatusForbidden, wantCode: dto.ErrorCodeForbidden},
		{name: "program not found", err: apperrors.ErrProgramNotFound, wantStatus: http.StatusNotFound, wantCode: dto.ErrorCodeResourceNotFound},
		{name: "student not found", err: apperrors.ErrStudentNotFound, wantStatus: http.StatusNotFound, wantCode: dto.ErrorCodeResourceNotFound},
		{name: "duplicate enrollment", err: apperrors.ErrAlreadyEnrolled, wantStatus: http.StatusConflict, wantCode: dto.ErrorCodeResourceAlreadyExists},
		{name: "duplicate dni", err: apperrors.ErrDNIAlreadyExists, wantStatus: http.StatusConflict, wantCode: dto.ErrorCodeResourceAlreadyExists},
		{name: "course full", err: apperrors.ErrCourseFull, wantStatus: http.StatusConflict, wantCode: dto.ErrorCodeCapacityExceeded},
		{name: "program has relations", err: apperrors.ErrProgramHasRelations, wantStatus: http.StatusConflict, wantCode: dto.ErrorCodeProtectedRelation},
		{name: "course has relations", err: apperrors.ErrCourseHasRelations, wantStatus: http.StatusConflict, wantCode: dto.ErrorCodeProtectedRelation},
		{name: "inactive program", err: apperrors.ErrProgramInactive, wantStatus: http.StatusConflict, wantCode: dto.ErrorCodeResourceInvalid},
		{name: "course year exceeds duration", err: apperrors.ErrCourseYearExceedsDuration, wantStatus: http.StatusBadRequest, wantCode: dto.ErrorCodeValidationFailed},
		{name: "validation error", err: apperrors.NewValidationError("DNI cannot start with 0"), wantStatus: http.StatusBadRequest, wantCode: dto.ErrorCodeValidationFailed},
		{name: "wrapped sentinel", err: fmt.Errorf("fetching course: %w", apperrors.ErrCourseNotFound), wantStatus: http.StatusNotFound, wantCode: dto.ErrorCodeResourceNotFound},
		{name: "unknown error", err: fmt.Errorf("connection reset"), wantStatus: http.StatusInternalServerError, wantCode: dto.ErrorCodeInternalServer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

			HandleAPIError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.True(t, c.IsAborted())

			var body dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			require.NotNil(t, body.Error)
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantCode, body.Error.Code)
			assert.NotEmpty(t, body.Error.Message)
		})
	}
}

func TestHandleAPIErrorCustomMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/test", nil)

	HandleAPIError(c, apperrors.NewValidationError("notes cannot exceed 500 characters"))

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	assert.Equal(t, "notes cannot exceed 500 characters", body.Error.Message)
}
