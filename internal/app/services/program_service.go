package services

import (
	"context"
	"strings"

	"github.com/dariolp/escuela/internal/app/models"
	"github.com/dariolp/escuela/internal/app/repositories"
	"github.com/dariolp/escuela/internal/pkg/apperrors"
	"github.com/dariolp/escuela/internal/pkg/logger"
)

// ProgramService handles business logic for academic programs
type ProgramService struct {
	programRepo *repositories.ProgramRepository
}

// NewProgramService creates a new program service
func NewProgramService(programRepo *repositories.ProgramRepository) *ProgramService {
	return &ProgramService{
		programRepo: programRepo,
	}
}

// normalizeProgram cleans user input before persisting. Codes are stored
// uppercase so 2024ING-style student numbers stay consistent.
func normalizeProgram(program *models.Program) {
	program.Name = strings.TrimSpace(program.Name)
	program.Code = strings.ToUpper(strings.TrimSpace(program.Code))
	program.Description = strings.TrimSpace(program.Description)
}

// CreateProgram validates and creates a new program
func (s *ProgramService) CreateProgram(ctx context.Context, program *models.Program) (*models.Program, error) {
	normalizeProgram(program)

	if program.DurationYears <= 0 {
		program.DurationYears = 1
	}

	exists, err := s.programRepo.ExistsByNameOrCode(ctx, program.Name, program.Code, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrProgramAlreadyExists
	}

	if err := s.programRepo.Create(ctx, program); err != nil {
		return nil, err
	}

	logger.Info().Int64("programId", program.ID).Str("code", program.Code).Msg("Program created")
	return program, nil
}

// GetProgramByID retrieves a program by ID
func (s *ProgramService) GetProgramByID(ctx context.Context, id int64) (*models.Program, error) {
	return s.programRepo.GetByID(ctx, id)
}

// GetPrograms lists programs with optional filters
func (s *ProgramService) GetPrograms(ctx context.Context, active *bool, search string) ([]*models.Program, error) {
	return s.programRepo.GetAll(ctx, active, strings.TrimSpace(search))
}

// UpdateProgram validates and updates an existing program. Shrinking the
// duration below the highest course year in the plan is rejected.
func (s *ProgramService) UpdateProgram(ctx context.Context, program *models.Program) (*models.Program, error) {
	normalizeProgram(program)

	existing, err := s.programRepo.GetByID(ctx, program.ID)
	if err != nil {
		return nil, err
	}

	taken, err := s.programRepo.ExistsByNameOrCode(ctx, program.Name, program.Code, program.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.ErrProgramAlreadyExists
	}

	if program.DurationYears < existing.DurationYears && existing.CourseCount > 0 {
		maxYear, err := s.programRepo.MaxCourseYear(ctx, program.ID)
		if err != nil {
			return nil, err
		}
		if program.DurationYears < maxYear {
			return nil, apperrors.ErrCourseYearExceedsDuration
		}
	}

	if err := s.programRepo.Update(ctx, program); err != nil {
		return nil, err
	}

	return s.programRepo.GetByID(ctx, program.ID)
}

// DeleteProgram deletes a program. Programs with courses or students are protected.
func (s *ProgramService) DeleteProgram(ctx context.Context, id int64) error {
	if err := s.programRepo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info().Int64("programId", id).Msg("Program deleted")
	return nil
}
