package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dariolp/escuela/internal/app/models"
	"github.com/dariolp/escuela/internal/app/models/dto"
	"github.com/dariolp/escuela/internal/app/services"
	"github.com/dariolp/escuela/internal/middleware"
)

// ProgramController handles program-related operations
type ProgramController struct {
	programService *services.ProgramService
}

// NewProgramController creates a new ProgramController
func NewProgramController(programService *services.ProgramService) *ProgramController {
	return &ProgramController{
		programService: programService,
	}
}

func parseIDParam(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid ID")
		errorDetail = errorDetail.WithDetails("ID must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// parseBoolQuery reads an optional boolean query parameter
func parseBoolQuery(ctx *gin.Context, name string) *bool {
	raw, ok := ctx.GetQuery(name)
	if !ok {
		return nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &value
}

func toProgramResponse(program *models.Program) dto.ProgramResponse {
	return dto.ProgramResponse{
		ID:            program.ID,
		Name:          program.Name,
		Code:          program.Code,
		DurationYears: program.DurationYears,
		Active:        program.Active,
		Description:   program.Description,
		CourseCount:   program.CourseCount,
		StudentCount:  program.StudentCount,
	}
}

// CreateProgram handles program creation
// @Summary Create a new program
// @Description Creates a new academic program
// @Tags programs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateProgramRequest true "Program information"
// @Success 201 {object} dto.APIResponse{data=dto.ProgramResponse} "Program created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Program already exists"
// @Router /programs [post]
func (c *ProgramController) CreateProgram(ctx *gin.Context) {
	var req dto.CreateProgramRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	program := &models.Program{
		Name:          req.Name,
		Code:          req.Code,
		DurationYears: req.DurationYears,
		Active:        true,
		Description:   req.Description,
	}
	if req.Active != nil {
		program.Active = *req.Active
	}

	program, err := c.programService.CreateProgram(ctx, program)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      toProgramResponse(program),
		Timestamp: time.Now(),
	})
}

// GetPrograms lists programs
// @Summary List programs
// @Description Lists programs, optionally filtered by active flag and a search term
// @Tags programs
// @Produce json
// @Param active query bool false "Filter by active flag"
// @Param q query string false "Search in name and code"
// @Success 200 {object} dto.APIResponse{data=[]dto.ProgramResponse} "Programs retrieved"
// @Router /programs [get]
func (c *ProgramController) GetPrograms(ctx *gin.Context) {
	programs, err := c.programService.GetPrograms(ctx, parseBoolQuery(ctx, "active"), ctx.Query("q"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.ProgramResponse, 0, len(programs))
	for _, program := range programs {
		responses = append(responses, toProgramResponse(program))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      responses,
		Timestamp: time.Now(),
	})
}

// GetProgramByID retrieves a program by ID
// @Summary Get program by ID
// @Description Retrieves a specific program with its course and student counts
// @Tags programs
// @Produce json
// @Param id path int true "Program ID"
// @Success 200 {object} dto.APIResponse{data=dto.ProgramResponse} "Program retrieved"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Router /programs/{id} [get]
func (c *ProgramController) GetProgramByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	program, err := c.programService.GetProgramByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      toProgramResponse(program),
		Timestamp: time.Now(),
	})
}

// UpdateProgram updates an existing program
// @Summary Update program
// @Description Updates an existing academic program
// @Tags programs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program ID"
// @Param request body dto.UpdateProgramRequest true "Program information"
// @Success 200 {object} dto.APIResponse{data=dto.ProgramResponse} "Program updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Failure 409 {object} dto.ErrorResponse "Program already exists"
// @Router /programs/{id} [put]
func (c *ProgramController) UpdateProgram(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.UpdateProgramRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	program := &models.Program{
		ID:            id,
		Name:          req.Name,
		Code:          req.Code,
		DurationYears: req.DurationYears,
		Active:        *req.Active,
		Description:   req.Description,
	}

	program, err := c.programService.UpdateProgram(ctx, program)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      toProgramResponse(program),
		Timestamp: time.Now(),
	})
}

// DeleteProgram deletes a program
// @Summary Delete program
// @Description Deletes a program without courses or students
// @Tags programs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Program deleted"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Failure 409 {object} dto.ErrorResponse "Program has courses or students"
// @Router /programs/{id} [delete]
func (c *ProgramController) DeleteProgram(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.programService.DeleteProgram(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Program deleted successfully"},
		Timestamp: time.Now(),
	})
}
