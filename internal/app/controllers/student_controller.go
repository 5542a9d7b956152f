package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dariolp/escuela/internal/app/models"
	"github.com/dariolp/escuela/internal/app/models/dto"
	"github.com/dariolp/escuela/internal/app/services"
	"github.com/dariolp/escuela/internal/middleware"
	"github.com/dariolp/escuela/internal/pkg/apperrors"
	"github.com/dariolp/escuela/internal/pkg/helpers"
)

// StudentController handles student-related operations
type StudentController struct {
	studentService *services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService) *StudentController {
	return &StudentController{
		studentService: studentService,
	}
}

func toStudentResponse(student *models.Student) dto.StudentResponse {
	return dto.StudentResponse{
		ID:            student.ID,
		FirstName:     student.FirstName,
		LastName:      student.LastName,
		DNI:           student.DNI,
		Email:         student.Email,
		Phone:         student.Phone,
		StudentNumber: student.StudentNumber,
		ProgramID:     student.ProgramID,
		EntryDate:     student.EntryDate,
		Active:        student.Active,
		Notes:         student.Notes,
	}
}

// CreateStudent handles student creation
// @Summary Create a new student
// @Description Creates a new student; a blank student number is auto-generated
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStudentRequest true "Student information"
// @Success 201 {object} dto.APIResponse{data=dto.StudentResponse} "Student created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "DNI or email already registered"
// @Router /students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	student := &models.Student{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		DNI:           req.DNI,
		Email:         req.Email,
		Phone:         req.Phone,
		StudentNumber: req.StudentNumber,
		ProgramID:     req.ProgramID,
		Active:        true,
		Notes:         req.Notes,
	}

	if req.EntryDate != "" {
		entryDate, err := time.Parse("2006-01-02", req.EntryDate)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid entry date").
				WithField("entryDate").
				WithDetails("Entry date must be in YYYY-MM-DD format")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		student.EntryDate = entryDate
	}

	student, err := c.studentService.CreateStudent(ctx, student)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      toStudentResponse(student),
		Timestamp: time.Now(),
	})
}

// GetStudents lists students
// @Summary List students
// @Description Lists students with program and active filters, paginated
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param programId query int false "Filter by program"
// @Param active query bool false "Filter by active flag"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Students retrieved"
// @Router /students [get]
func (c *StudentController) GetStudents(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	students, total, err := c.studentService.GetStudents(ctx,
		parseInt64Query(ctx, "programId"),
		parseBoolQuery(ctx, "active"),
		int(offset), limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.StudentResponse, 0, len(students))
	for _, student := range students {
		responses = append(responses, toStudentResponse(student))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.PaginatedResponse{
			Items:      responses,
			Pagination: helpers.NewPaginationInfo(total, page, limit),
		},
		Timestamp: time.Now(),
	})
}

// SearchStudents finds students for autocomplete
// @Summary Search students
// @Description Finds active students by name, DNI or student number
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param q query string true "Search term (min 2 characters)"
// @Success 200 {object} dto.APIResponse{data=dto.StudentSearchResponse} "Search results"
// @Router /students/search [get]
func (c *StudentController) SearchStudents(ctx *gin.Context) {
	students, err := c.studentService.SearchStudents(ctx, ctx.Query("q"), 10)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	results := make([]dto.StudentSearchResult, 0, len(students))
	for _, student := range students {
		results = append(results, dto.StudentSearchResult{
			ID:            student.ID,
			StudentNumber: student.StudentNumber,
			FullName:      student.FullName(),
			DisplayName:   student.DisplayName(),
		})
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.StudentSearchResponse{Results: results},
		Timestamp: time.Now(),
	})
}

// CheckDNI reports whether a DNI is still available
// @Summary Check DNI availability
// @Description Validates a DNI and reports whether it is still free
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param dni query string true "DNI to check"
// @Success 200 {object} dto.APIResponse{data=dto.AvailabilityResponse} "Availability reported"
// @Failure 400 {object} dto.ErrorResponse "Invalid DNI format"
// @Router /students/check-dni [get]
func (c *StudentController) CheckDNI(ctx *gin.Context) {
	available, err := c.studentService.IsDNIAvailable(ctx, ctx.Query("dni"), 0)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	response := dto.AvailabilityResponse{Available: available}
	if !available {
		response.Message = "DNI is already registered"
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      response,
		Timestamp: time.Now(),
	})
}

// CheckEmail reports whether an email is still available
// @Summary Check email availability
// @Description Reports whether an email is still free to register
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param email query string true "Email to check"
// @Success 200 {object} dto.APIResponse{data=dto.AvailabilityResponse} "Availability reported"
// @Router /students/check-email [get]
func (c *StudentController) CheckEmail(ctx *gin.Context) {
	available, err := c.studentService.IsEmailAvailable(ctx, ctx.Query("email"), 0)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	response := dto.AvailabilityResponse{Available: available}
	if !available {
		response.Message = "Email is already registered"
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      response,
		Timestamp: time.Now(),
	})
}

// GetStudentByID retrieves a student by ID. Admins can read any record;
// students only their own.
// @Summary Get student by ID
// @Description Retrieves a specific student
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse} "Student retrieved"
// @Failure 403 {object} dto.ErrorResponse "Not your record"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [get]
func (c *StudentController) GetStudentByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	student, err := c.studentService.GetStudentByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if !middleware.IsAdmin(ctx) {
		userID := middleware.GetUserID(ctx)
		if student.UserID == nil || *student.UserID != userID {
			middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
			return
		}
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      toStudentResponse(student),
		Timestamp: time.Now(),
	})
}

// UpdateStudent updates an existing student
// @Summary Update student
// @Description Updates an existing student's personal data
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body dto.UpdateStudentRequest true "Student information"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse} "Student updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 409 {object} dto.ErrorResponse "DNI or email already registered"
// @Router /students/{id} [put]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.UpdateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	student := &models.Student{
		ID:        id,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		DNI:       req.DNI,
		Email:     strings.ToLower(req.Email),
		Phone:     req.Phone,
		ProgramID: req.ProgramID,
		Active:    *req.Active,
		Notes:     req.Notes,
	}

	student, err := c.studentService.UpdateStudent(ctx, student)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      toStudentResponse(student),
		Timestamp: time.Now(),
	})
}

// DeleteStudent deletes a student
// @Summary Delete student
// @Description Deletes a student together with their enrollments
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Student deleted"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.studentService.DeleteStudent(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Student deleted successfully"},
		Timestamp: time.Now(),
	})
}
