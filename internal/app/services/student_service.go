package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/dariolp/escuela/internal/app/models"
	"github.com/dariolp/escuela/internal/app/repositories"
	"github.com/dariolp/escuela/internal/pkg/apperrors"
	"github.com/dariolp/escuela/internal/pkg/logger"
)

// fallbackNumberPrefix is used when the student has no program to derive
// a code prefix from.
const fallbackNumberPrefix = "GEN"

// StudentService handles business logic for students
type StudentService struct {
	studentRepo *repositories.StudentRepository
	programRepo *repositories.ProgramRepository
}

// NewStudentService creates a new student service
func NewStudentService(studentRepo *repositories.StudentRepository, programRepo *repositories.ProgramRepository) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		programRepo: programRepo,
	}
}

// ValidateDNI checks an Argentine national ID number: 7 or 8 digits, no
// leading zero.
func ValidateDNI(dni string) error {
	if len(dni) < 7 || len(dni) > 8 {
		return apperrors.NewValidationError("DNI must have 7 or 8 digits")
	}
	for _, r := range dni {
		if r < '0' || r > '9' {
			return apperrors.NewValidationError("DNI must contain only digits")
		}
	}
	if dni[0] == '0' {
		return apperrors.NewValidationError("DNI cannot start with 0")
	}
	return nil
}

// TitleCase normalizes a person name: trimmed, single-spaced, capitalized
// after each space, apostrophe and hyphen. Accented letters are preserved,
// so "o'brien" becomes "O'Brien" and "ana-maría" becomes "Ana-María".
func TitleCase(name string) string {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(name)))
	for i, word := range words {
		runes := []rune(word)
		capitalize := true
		for j, r := range runes {
			if capitalize {
				runes[j] = unicode.ToUpper(r)
			}
			capitalize = r == '\'' || r == '-'
		}
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

func validateName(name, field string) error {
	if len([]rune(name)) < 2 {
		return apperrors.NewValidationError(field + " must have at least 2 characters")
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsSpace(r) && r != '\'' && r != '-' {
			return apperrors.NewValidationError(field + " may contain only letters, spaces, apostrophes and hyphens")
		}
	}
	return nil
}

func (s *StudentService) normalizeAndValidate(ctx context.Context, student *models.Student, excludeID int64) error {
	student.FirstName = TitleCase(student.FirstName)
	student.LastName = TitleCase(student.LastName)
	student.DNI = strings.TrimSpace(student.DNI)
	student.Email = strings.ToLower(strings.TrimSpace(student.Email))
	student.Phone = strings.TrimSpace(student.Phone)
	student.Notes = strings.TrimSpace(student.Notes)

	if err := validateName(student.FirstName, "first name"); err != nil {
		return err
	}
	if err := validateName(student.LastName, "last name"); err != nil {
		return err
	}
	if err := ValidateDNI(student.DNI); err != nil {
		return err
	}
	if len([]rune(student.Notes)) > 500 {
		return apperrors.NewValidationError("notes cannot exceed 500 characters")
	}
	if student.EntryDate.After(time.Now()) {
		return apperrors.NewValidationError("entry date cannot be in the future")
	}

	taken, err := s.studentRepo.DNIExists(ctx, student.DNI, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return apperrors.ErrDNIAlreadyExists
	}

	taken, err = s.studentRepo.EmailExists(ctx, student.Email, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return apperrors.ErrEmailAlreadyExists
	}

	if student.ProgramID != nil {
		program, err := s.programRepo.GetByID(ctx, *student.ProgramID)
		if err != nil {
			return err
		}
		if !program.Active {
			return apperrors.ErrProgramInactive
		}
	}

	return nil
}

// NumberPrefix builds the student number prefix for an entry year and
// program code: the year followed by the first three letters of the code,
// or GEN when there is no program.
func NumberPrefix(entryYear int, programCode string) string {
	code := strings.ToUpper(strings.TrimSpace(programCode))
	if code == "" {
		code = fallbackNumberPrefix
	}
	runes := []rune(code)
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return fmt.Sprintf("%d%s", entryYear, string(runes))
}

// NextStudentNumber computes the next number in a prefix sequence given the
// highest number already assigned. An unparsable suffix restarts at the end.
func NextStudentNumber(prefix, last string) string {
	seq := 1
	if strings.HasPrefix(last, prefix) {
		if n, err := strconv.Atoi(last[len(prefix):]); err == nil {
			seq = n + 1
		}
	}
	return fmt.Sprintf("%s%03d", prefix, seq)
}

func (s *StudentService) generateStudentNumber(ctx context.Context, student *models.Student) (string, error) {
	programCode := ""
	if student.ProgramID != nil {
		program, err := s.programRepo.GetByID(ctx, *student.ProgramID)
		if err != nil {
			return "", err
		}
		programCode = program.Code
	}

	prefix := NumberPrefix(student.EntryDate.Year(), programCode)
	last, err := s.studentRepo.GetLastStudentNumberByPrefix(ctx, prefix)
	if err != nil {
		return "", err
	}

	return NextStudentNumber(prefix, last), nil
}

// CreateStudent validates and creates a new student. A blank student number
// is generated from the entry year and the program code; the unique index on
// student_number settles concurrent generations, retried once.
func (s *StudentService) CreateStudent(ctx context.Context, student *models.Student) (*models.Student, error) {
	if student.EntryDate.IsZero() {
		student.EntryDate = time.Now()
	}

	if err := s.normalizeAndValidate(ctx, student, 0); err != nil {
		return nil, err
	}

	autoNumber := student.StudentNumber == ""
	if autoNumber {
		number, err := s.generateStudentNumber(ctx, student)
		if err != nil {
			return nil, err
		}
		student.StudentNumber = number
	} else {
		student.StudentNumber = strings.ToUpper(strings.TrimSpace(student.StudentNumber))
	}

	err := s.studentRepo.Create(ctx, student)
	if errors.Is(err, apperrors.ErrStudentNumberAlreadyExists) && autoNumber {
		// Another insert won the sequence; take the next slot
		number, genErr := s.generateStudentNumber(ctx, student)
		if genErr != nil {
			return nil, genErr
		}
		student.StudentNumber = number
		err = s.studentRepo.Create(ctx, student)
	}
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("studentId", student.ID).Str("studentNumber", student.StudentNumber).Msg("Student created")
	return student, nil
}

// GetStudentByID retrieves a student by ID
func (s *StudentService) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	return s.studentRepo.GetByID(ctx, id)
}

// GetStudentByUserID retrieves the student record linked to a user account
func (s *StudentService) GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	return s.studentRepo.GetByUserID(ctx, userID)
}

// GetStudents lists students with filters and pagination
func (s *StudentService) GetStudents(ctx context.Context, programID *int64, active *bool, offset, limit int) ([]*models.Student, int64, error) {
	return s.studentRepo.GetAll(ctx, programID, active, offset, limit)
}

// SearchStudents finds active students for autocomplete; short terms return nothing
func (s *StudentService) SearchStudents(ctx context.Context, term string, limit int) ([]*models.Student, error) {
	term = strings.TrimSpace(term)
	if len([]rune(term)) < 2 {
		return nil, nil
	}
	if limit <= 0 || limit > 20 {
		limit = 10
	}
	return s.studentRepo.Search(ctx, term, limit)
}

// IsDNIAvailable reports whether a DNI can still be registered
func (s *StudentService) IsDNIAvailable(ctx context.Context, dni string, excludeID int64) (bool, error) {
	dni = strings.TrimSpace(dni)
	if err := ValidateDNI(dni); err != nil {
		return false, err
	}
	taken, err := s.studentRepo.DNIExists(ctx, dni, excludeID)
	if err != nil {
		return false, err
	}
	return !taken, nil
}

// IsEmailAvailable reports whether an email can still be registered
func (s *StudentService) IsEmailAvailable(ctx context.Context, email string, excludeID int64) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false, apperrors.NewValidationError("email is required")
	}
	taken, err := s.studentRepo.EmailExists(ctx, email, excludeID)
	if err != nil {
		return false, err
	}
	return !taken, nil
}

// UpdateStudent validates and updates an existing student. The student number
// never changes after creation.
func (s *StudentService) UpdateStudent(ctx context.Context, student *models.Student) (*models.Student, error) {
	existing, err := s.studentRepo.GetByID(ctx, student.ID)
	if err != nil {
		return nil, err
	}

	student.StudentNumber = existing.StudentNumber
	student.UserID = existing.UserID
	if student.EntryDate.IsZero() {
		student.EntryDate = existing.EntryDate
	}

	if err := s.normalizeAndValidate(ctx, student, student.ID); err != nil {
		return nil, err
	}

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}

	return s.studentRepo.GetByID(ctx, student.ID)
}

// DeleteStudent deletes a student together with their enrollments
func (s *StudentService) DeleteStudent(ctx context.Context, id int64) error {
	if err := s.studentRepo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info().Int64("studentId", id).Msg("Student deleted")
	return nil
}
