package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dariolp/escuela/internal/app/models"
	"github.com/dariolp/escuela/internal/app/models/dto"
	"github.com/dariolp/escuela/internal/app/services"
	"github.com/dariolp/escuela/internal/middleware"
)

// CourseController handles course-related operations
type CourseController struct {
	courseService *services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService *services.CourseService) *CourseController {
	return &CourseController{
		courseService: courseService,
	}
}

func parseInt64Query(ctx *gin.Context, name string) *int64 {
	raw, ok := ctx.GetQuery(name)
	if !ok {
		return nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return nil
	}
	return &value
}

func parseIntQuery(ctx *gin.Context, name string) *int {
	raw, ok := ctx.GetQuery(name)
	if !ok {
		return nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &value
}

func toCourseResponse(course *models.Course) dto.CourseResponse {
	return dto.CourseResponse{
		ID:             course.ID,
		ProgramID:      course.ProgramID,
		Name:           course.Name,
		Code:           course.Code,
		MaxCapacity:    course.MaxCapacity,
		Year:           course.Year,
		Semester:       course.Semester,
		WeeklyHours:    course.WeeklyHours,
		Active:         course.Active,
		Description:    course.Description,
		EnrolledCount:  course.EnrolledCount,
		AvailableSeats: course.AvailableSeats(),
	}
}

// CreateCourse handles course creation
// @Summary Create a new course
// @Description Creates a new course within a program
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCourseRequest true "Course information"
// @Success 201 {object} dto.APIResponse{data=dto.CourseResponse} "Course created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Failure 409 {object} dto.ErrorResponse "Course already exists in the program"
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	course := &models.Course{
		ProgramID:   req.ProgramID,
		Name:        req.Name,
		Code:        req.Code,
		MaxCapacity: req.MaxCapacity,
		Year:        req.Year,
		Semester:    req.Semester,
		WeeklyHours: req.WeeklyHours,
		Active:      true,
		Description: req.Description,
	}
	if req.Active != nil {
		course.Active = *req.Active
	}

	course, err := c.courseService.CreateCourse(ctx, course)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      toCourseResponse(course),
		Timestamp: time.Now(),
	})
}

// GetCourses lists courses
// @Summary List courses
// @Description Lists courses with optional program, year, active and availability filters
// @Tags courses
// @Produce json
// @Param programId query int false "Filter by program"
// @Param year query int false "Filter by plan year"
// @Param active query bool false "Filter by active flag"
// @Param availableOnly query bool false "Only courses with free seats"
// @Param q query string false "Search in name and code"
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseResponse} "Courses retrieved"
// @Router /courses [get]
func (c *CourseController) GetCourses(ctx *gin.Context) {
	availableOnly, _ := strconv.ParseBool(ctx.DefaultQuery("availableOnly", "false"))

	courses, err := c.courseService.GetCourses(ctx,
		parseInt64Query(ctx, "programId"),
		parseIntQuery(ctx, "year"),
		parseBoolQuery(ctx, "active"),
		availableOnly,
		ctx.Query("q"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.CourseResponse, 0, len(courses))
	for _, course := range courses {
		responses = append(responses, toCourseResponse(course))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      responses,
		Timestamp: time.Now(),
	})
}

// GetCourseByID retrieves a course by ID
// @Summary Get course by ID
// @Description Retrieves a course with its current seat usage
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse} "Course retrieved"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id} [get]
func (c *CourseController) GetCourseByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	course, err := c.courseService.GetCourseByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      toCourseResponse(course),
		Timestamp: time.Now(),
	})
}

// GetAvailability reports the seat availability of a course
// @Summary Check course availability
// @Description Returns capacity, occupied and free seats of a course
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.CourseAvailabilityResponse} "Availability retrieved"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id}/availability [get]
func (c *CourseController) GetAvailability(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	course, err := c.courseService.GetAvailability(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.CourseAvailabilityResponse{
			CourseID:          course.ID,
			MaxCapacity:       course.MaxCapacity,
			EnrolledCount:     course.EnrolledCount,
			AvailableSeats:    course.AvailableSeats(),
			HasAvailableSeats: course.HasAvailableSeats(),
		},
		Timestamp: time.Now(),
	})
}

// SuggestCode suggests a free course code
// @Summary Suggest course code
// @Description Derives a course code from the name, unique within the program
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param programId query int true "Program ID"
// @Param name query string true "Course name"
// @Success 200 {object} dto.APIResponse{data=dto.SuggestCodeResponse} "Code suggested"
// @Failure 400 {object} dto.ErrorResponse "Missing parameters"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Router /courses/suggest-code [get]
func (c *CourseController) SuggestCode(ctx *gin.Context) {
	programID := parseInt64Query(ctx, "programId")
	name := strings.TrimSpace(ctx.Query("name"))
	if programID == nil || name == "" {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "programId and name are required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	code, err := c.courseService.SuggestCode(ctx, *programID, name)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.SuggestCodeResponse{
			ProgramID: *programID,
			Code:      code,
		},
		Timestamp: time.Now(),
	})
}

// UpdateCourse updates an existing course
// @Summary Update course
// @Description Updates an existing course; capacity cannot drop below occupied seats
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.UpdateCourseRequest true "Course information"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse} "Course updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Course already exists in the program"
// @Router /courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.UpdateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	course := &models.Course{
		ID:          id,
		Name:        req.Name,
		Code:        req.Code,
		MaxCapacity: req.MaxCapacity,
		Year:        req.Year,
		Semester:    req.Semester,
		WeeklyHours: req.WeeklyHours,
		Active:      *req.Active,
		Description: req.Description,
	}

	course, err := c.courseService.UpdateCourse(ctx, course)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      toCourseResponse(course),
		Timestamp: time.Now(),
	})
}

// DeleteCourse deletes a course
// @Summary Delete course
// @Description Deletes a course without enrollment history
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Course deleted"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Course has enrollments"
// @Router /courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.courseService.DeleteCourse(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Course deleted successfully"},
		Timestamp: time.Now(),
	})
}
