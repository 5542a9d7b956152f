package services

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/dariolp/escuela/internal/app/models"
	"github.com/dariolp/escuela/internal/app/repositories"
	"github.com/dariolp/escuela/internal/pkg/apperrors"
	"github.com/dariolp/escuela/internal/pkg/logger"
)

// CourseService handles business logic for courses
type CourseService struct {
	courseRepo  *repositories.CourseRepository
	programRepo *repositories.ProgramRepository
}

// NewCourseService creates a new course service
func NewCourseService(courseRepo *repositories.CourseRepository, programRepo *repositories.ProgramRepository) *CourseService {
	return &CourseService{
		courseRepo:  courseRepo,
		programRepo: programRepo,
	}
}

func normalizeCourse(course *models.Course) {
	course.Name = strings.TrimSpace(course.Name)
	course.Code = strings.ToUpper(strings.TrimSpace(course.Code))
	course.Description = strings.TrimSpace(course.Description)
}

func (s *CourseService) validateCourse(ctx context.Context, course *models.Course) error {
	program, err := s.programRepo.GetByID(ctx, course.ProgramID)
	if err != nil {
		return err
	}

	if course.Year > program.DurationYears {
		return apperrors.ErrCourseYearExceedsDuration
	}

	if !models.IsValidSemester(course.Semester) {
		return apperrors.NewValidationError("semester must be 0 (annual), 1 or 2")
	}

	taken, err := s.courseRepo.ExistsInProgram(ctx, course.ProgramID, course.Name, course.Code, course.ID)
	if err != nil {
		return err
	}
	if taken {
		return apperrors.ErrCourseAlreadyExists
	}

	return nil
}

// CreateCourse validates and creates a new course. A blank code is filled in
// with a suggestion derived from the name.
func (s *CourseService) CreateCourse(ctx context.Context, course *models.Course) (*models.Course, error) {
	normalizeCourse(course)

	if course.Code == "" {
		code, err := s.SuggestCode(ctx, course.ProgramID, course.Name)
		if err != nil {
			return nil, err
		}
		course.Code = code
	}

	if course.WeeklyHours <= 0 {
		course.WeeklyHours = 4
	}

	if err := s.validateCourse(ctx, course); err != nil {
		return nil, err
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}

	logger.Info().Int64("courseId", course.ID).Str("code", course.Code).Msg("Course created")
	return course, nil
}

// GetCourseByID retrieves a course by ID
func (s *CourseService) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	return s.courseRepo.GetByID(ctx, id)
}

// GetCourses lists courses with optional filters. When availableOnly is set,
// full courses are filtered out.
func (s *CourseService) GetCourses(ctx context.Context, programID *int64, year *int, active *bool, availableOnly bool, search string) ([]*models.Course, error) {
	courses, err := s.courseRepo.GetAll(ctx, programID, year, active, strings.TrimSpace(search))
	if err != nil {
		return nil, err
	}

	if !availableOnly {
		return courses, nil
	}

	available := courses[:0]
	for _, course := range courses {
		if course.HasAvailableSeats() {
			available = append(available, course)
		}
	}
	return available, nil
}

// UpdateCourse validates and updates an existing course. Capacity may not be
// reduced below the current number of occupied seats.
func (s *CourseService) UpdateCourse(ctx context.Context, course *models.Course) (*models.Course, error) {
	normalizeCourse(course)

	existing, err := s.courseRepo.GetByID(ctx, course.ID)
	if err != nil {
		return nil, err
	}

	if course.ProgramID == 0 {
		course.ProgramID = existing.ProgramID
	}

	if course.MaxCapacity < existing.EnrolledCount {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("capacity cannot be below the %d currently enrolled students", existing.EnrolledCount))
	}

	if err := s.validateCourse(ctx, course); err != nil {
		return nil, err
	}

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}

	return s.courseRepo.GetByID(ctx, course.ID)
}

// DeleteCourse deletes a course. Courses with enrollment history are protected.
func (s *CourseService) DeleteCourse(ctx context.Context, id int64) error {
	if err := s.courseRepo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info().Int64("courseId", id).Msg("Course deleted")
	return nil
}

// GetAvailability reports the current seat availability of a course
func (s *CourseService) GetAvailability(ctx context.Context, id int64) (*models.Course, error) {
	return s.courseRepo.GetByID(ctx, id)
}

// SuggestCode derives a course code from the course name: the initials of the
// significant words (a single-word name contributes its first three letters,
// a trailing roman numeral becomes a digit), then a numeric suffix until the
// code is free within the program. "Análisis Matemático I" yields AM1.
func (s *CourseService) SuggestCode(ctx context.Context, programID int64, name string) (string, error) {
	if _, err := s.programRepo.GetByID(ctx, programID); err != nil {
		return "", err
	}

	base := codeBaseFromName(name)

	used, err := s.courseRepo.GetCodesByProgram(ctx, programID)
	if err != nil {
		return "", err
	}

	usedSet := make(map[string]struct{}, len(used))
	for _, code := range used {
		usedSet[code] = struct{}{}
	}

	if _, taken := usedSet[base]; !taken {
		return base, nil
	}

	for i := 1; i <= 99; i++ {
		candidate := fmt.Sprintf("%s%d", base, i)
		if _, taken := usedSet[candidate]; !taken {
			return candidate, nil
		}
	}

	return "", apperrors.NewConflictError("no free course code could be derived from the name")
}

// stopwords skipped when deriving a code from a course name
var codeStopwords = map[string]struct{}{
	"DE": {}, "DEL": {}, "LA": {}, "LAS": {}, "EL": {}, "LOS": {},
	"Y": {}, "A": {}, "AL": {}, "EN": {},
}

func codeBaseFromName(name string) string {
	var initials []rune
	var words []string
	for _, word := range strings.Fields(strings.ToUpper(name)) {
		word = stripNonLetters(word)
		if word == "" {
			continue
		}
		if _, skip := codeStopwords[word]; skip {
			continue
		}
		// Roman numerals at the end of course names become digits
		if n, ok := romanValue(word); ok {
			return string(initials) + fmt.Sprintf("%d", n)
		}
		initials = append(initials, []rune(word)[0])
		words = append(words, word)
	}

	if len(initials) == 0 {
		return "MAT"
	}

	// Single-word names take the first three letters instead of one initial
	if len(initials) == 1 {
		runes := []rune(words[0])
		if len(runes) > 3 {
			runes = runes[:3]
		}
		return string(runes)
	}

	return string(initials)
}

func stripNonLetters(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) {
			return r
		}
		return -1
	}, s)
}

var romanNumerals = map[string]int{
	"I": 1, "II": 2, "III": 3, "IV": 4, "V": 5,
	"VI": 6, "VII": 7, "VIII": 8, "IX": 9, "X": 10,
}

func romanValue(word string) (int, bool) {
	n, ok := romanNumerals[word]
	return n, ok
}
