package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dariolp/escuela/internal/app/models"
	"github.com/dariolp/escuela/internal/app/models/dto"
	"github.com/dariolp/escuela/internal/app/services"
	"github.com/dariolp/escuela/internal/middleware"
	"github.com/dariolp/escuela/internal/pkg/apperrors"
)

// EnrollmentController handles enrollment-related operations
type EnrollmentController struct {
	enrollmentService *services.EnrollmentService
	studentService    *services.StudentService
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService *services.EnrollmentService, studentService *services.StudentService) *EnrollmentController {
	return &EnrollmentController{
		enrollmentService: enrollmentService,
		studentService:    studentService,
	}
}

func toEnrollmentResponse(enrollment *models.Enrollment) dto.EnrollmentResponse {
	return dto.EnrollmentResponse{
		ID:             enrollment.ID,
		StudentID:      enrollment.StudentID,
		CourseID:       enrollment.CourseID,
		Status:         string(enrollment.Status),
		EnrollmentDate: enrollment.EnrollmentDate,
		Notes:          enrollment.Notes,
		StudentName:    enrollment.StudentName,
		StudentNumber:  enrollment.StudentNumber,
		CourseName:     enrollment.CourseName,
	}
}

// CreateEnrollment enrolls a student in a course
// @Summary Enroll a student
// @Description Enrolls a student in a course, enforcing capacity and uniqueness
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateEnrollmentRequest true "Enrollment information"
// @Success 201 {object} dto.APIResponse{data=dto.EnrollmentResponse} "Enrollment created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Student or course not found"
// @Failure 409 {object} dto.ErrorResponse "Already enrolled or course full"
// @Router /enrollments [post]
func (c *EnrollmentController) CreateEnrollment(ctx *gin.Context) {
	var req dto.CreateEnrollmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	// Non-admins may only enroll themselves, always as ENROLLED
	if !middleware.IsAdmin(ctx) {
		student, err := c.studentService.GetStudentByUserID(ctx, middleware.GetUserID(ctx))
		if err != nil || student.ID != req.StudentID {
			middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
			return
		}
		req.Status = string(models.StatusEnrolled)
	}

	enrollment := &models.Enrollment{
		StudentID: req.StudentID,
		CourseID:  req.CourseID,
		Status:    models.EnrollmentStatus(req.Status),
		Notes:     req.Notes,
	}

	enrollment, err := c.enrollmentService.Enroll(ctx, enrollment)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      toEnrollmentResponse(enrollment),
		Timestamp: time.Now(),
	})
}

// GetEnrollments lists enrollments
// @Summary List enrollments
// @Description Lists enrollments with optional student, course and status filters
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param studentId query int false "Filter by student"
// @Param courseId query int false "Filter by course"
// @Param status query string false "Filter by status" Enums(ENROLLED, REGULAR, PASSED, FAILED)
// @Success 200 {object} dto.APIResponse{data=[]dto.EnrollmentResponse} "Enrollments retrieved"
// @Router /enrollments [get]
func (c *EnrollmentController) GetEnrollments(ctx *gin.Context) {
	var status *models.EnrollmentStatus
	if raw, ok := ctx.GetQuery("status"); ok {
		s := models.EnrollmentStatus(raw)
		status = &s
	}

	studentID := parseInt64Query(ctx, "studentId")

	// Non-admins only see their own enrollments
	if !middleware.IsAdmin(ctx) {
		student, err := c.studentService.GetStudentByUserID(ctx, middleware.GetUserID(ctx))
		if err != nil {
			middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
			return
		}
		studentID = &student.ID
	}

	enrollments, err := c.enrollmentService.GetEnrollments(ctx, studentID, parseInt64Query(ctx, "courseId"), status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.EnrollmentResponse, 0, len(enrollments))
	for _, enrollment := range enrollments {
		responses = append(responses, toEnrollmentResponse(enrollment))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      responses,
		Timestamp: time.Now(),
	})
}

// GetEnrollmentByID retrieves an enrollment by ID
// @Summary Get enrollment by ID
// @Description Retrieves a specific enrollment
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enrollment ID"
// @Success 200 {object} dto.APIResponse{data=dto.EnrollmentResponse} "Enrollment retrieved"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Router /enrollments/{id} [get]
func (c *EnrollmentController) GetEnrollmentByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if !c.authorizeEnrollmentAccess(ctx, id) {
		return
	}

	enrollment, err := c.enrollmentService.GetEnrollmentByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      toEnrollmentResponse(enrollment),
		Timestamp: time.Now(),
	})
}

// UpdateEnrollment changes the status of an enrollment
// @Summary Update enrollment status
// @Description Moves an enrollment to a new status; returning to ENROLLED re-checks capacity
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enrollment ID"
// @Param request body dto.UpdateEnrollmentRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=dto.EnrollmentResponse} "Enrollment updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Failure 409 {object} dto.ErrorResponse "Course full"
// @Router /enrollments/{id} [put]
func (c *EnrollmentController) UpdateEnrollment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.UpdateEnrollmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	enrollment, err := c.enrollmentService.UpdateStatus(ctx, id, models.EnrollmentStatus(req.Status), req.Notes)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      toEnrollmentResponse(enrollment),
		Timestamp: time.Now(),
	})
}

// DeleteEnrollment withdraws an enrollment
// @Summary Withdraw enrollment
// @Description Deletes an enrollment, freeing its seat if one was taken
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enrollment ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Enrollment withdrawn"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Router /enrollments/{id} [delete]
func (c *EnrollmentController) DeleteEnrollment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if !c.authorizeEnrollmentAccess(ctx, id) {
		return
	}

	if err := c.enrollmentService.Withdraw(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Enrollment withdrawn successfully"},
		Timestamp: time.Now(),
	})
}

// authorizeEnrollmentAccess lets admins through and students only to their
// own enrollments. It writes the error response on failure.
func (c *EnrollmentController) authorizeEnrollmentAccess(ctx *gin.Context, enrollmentID int64) bool {
	if middleware.IsAdmin(ctx) {
		return true
	}

	owns, err := c.enrollmentService.BelongsToUser(ctx, enrollmentID, middleware.GetUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return false
	}
	if !owns {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return false
	}
	return true
}
