package services

import (
	"context"
	"strings"
	"time"

	"github.com/dariolp/escuela/internal/app/models"
	"github.com/dariolp/escuela/internal/app/repositories"
	"github.com/dariolp/escuela/internal/pkg/apperrors"
	"github.com/dariolp/escuela/internal/pkg/logger"
)

// EnrollmentService handles business logic for enrollments
type EnrollmentService struct {
	enrollmentRepo *repositories.EnrollmentRepository
	studentRepo    *repositories.StudentRepository
	courseRepo     *repositories.CourseRepository
}

// NewEnrollmentService creates a new enrollment service
func NewEnrollmentService(
	enrollmentRepo *repositories.EnrollmentRepository,
	studentRepo *repositories.StudentRepository,
	courseRepo *repositories.CourseRepository,
) *EnrollmentService {
	return &EnrollmentService{
		enrollmentRepo: enrollmentRepo,
		studentRepo:    studentRepo,
		courseRepo:     courseRepo,
	}
}

// Enroll validates and creates a new enrollment. The pre-insert checks give
// friendly errors for the common cases; the unique constraint on
// (student_id, course_id) settles concurrent races with ErrAlreadyEnrolled.
func (s *EnrollmentService) Enroll(ctx context.Context, enrollment *models.Enrollment) (*models.Enrollment, error) {
	if enrollment.Status == "" {
		enrollment.Status = models.StatusEnrolled
	}
	if !enrollment.Status.IsValid() {
		return nil, apperrors.NewValidationError("invalid enrollment status")
	}
	if enrollment.EnrollmentDate.IsZero() {
		enrollment.EnrollmentDate = time.Now()
	}
	enrollment.Notes = strings.TrimSpace(enrollment.Notes)

	student, err := s.studentRepo.GetByID(ctx, enrollment.StudentID)
	if err != nil {
		return nil, err
	}

	course, err := s.courseRepo.GetByID(ctx, enrollment.CourseID)
	if err != nil {
		return nil, err
	}

	exists, err := s.enrollmentRepo.Exists(ctx, enrollment.StudentID, enrollment.CourseID)
	if err != nil {
		return nil, err
	}

	if err := canEnroll(student, course, exists, enrollment); err != nil {
		return nil, err
	}

	if err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
		return nil, err
	}

	logger.Info().
		Int64("enrollmentId", enrollment.ID).
		Int64("studentId", enrollment.StudentID).
		Int64("courseId", enrollment.CourseID).
		Str("status", string(enrollment.Status)).
		Msg("Student enrolled")

	return s.enrollmentRepo.GetByID(ctx, enrollment.ID)
}

// canEnroll applies the admission rules in order: active student, active
// course, no existing (student, course) row, and a free seat when the new
// row takes one. Only an ENROLLED row needs a seat.
func canEnroll(student *models.Student, course *models.Course, alreadyEnrolled bool, enrollment *models.Enrollment) error {
	if !student.Active {
		return apperrors.ErrStudentInactive
	}
	if !course.Active {
		return apperrors.ErrCourseInactive
	}
	if alreadyEnrolled {
		return apperrors.ErrAlreadyEnrolled
	}
	if enrollment.TakesSeat() && !course.HasAvailableSeats() {
		return apperrors.ErrCourseFull
	}
	return nil
}

// GetEnrollmentByID retrieves an enrollment by ID
func (s *EnrollmentService) GetEnrollmentByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	return s.enrollmentRepo.GetByID(ctx, id)
}

// GetEnrollments lists enrollments with optional filters
func (s *EnrollmentService) GetEnrollments(ctx context.Context, studentID, courseID *int64, status *models.EnrollmentStatus) ([]*models.Enrollment, error) {
	if status != nil && !status.IsValid() {
		return nil, apperrors.NewValidationError("invalid enrollment status")
	}
	return s.enrollmentRepo.GetAll(ctx, studentID, courseID, status)
}

// UpdateStatus moves an enrollment to a new status. Moving back to ENROLLED
// re-claims a seat and is rejected when the course is full.
func (s *EnrollmentService) UpdateStatus(ctx context.Context, id int64, status models.EnrollmentStatus, notes string) (*models.Enrollment, error) {
	if !status.IsValid() {
		return nil, apperrors.NewValidationError("invalid enrollment status")
	}

	enrollment, err := s.enrollmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if status == models.StatusEnrolled && enrollment.Status != models.StatusEnrolled {
		course, err := s.courseRepo.GetByID(ctx, enrollment.CourseID)
		if err != nil {
			return nil, err
		}
		if !course.HasAvailableSeats() {
			return nil, apperrors.ErrCourseFull
		}
	}

	if err := s.enrollmentRepo.UpdateStatus(ctx, id, status, strings.TrimSpace(notes)); err != nil {
		return nil, err
	}

	return s.enrollmentRepo.GetByID(ctx, id)
}

// Withdraw deletes an enrollment, freeing the seat if one was taken
func (s *EnrollmentService) Withdraw(ctx context.Context, id int64) error {
	if err := s.enrollmentRepo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info().Int64("enrollmentId", id).Msg("Enrollment withdrawn")
	return nil
}

// BelongsToUser reports whether the enrollment's student record is linked to
// the given user account. Used to let students manage their own enrollments.
func (s *EnrollmentService) BelongsToUser(ctx context.Context, enrollmentID, userID int64) (bool, error) {
	enrollment, err := s.enrollmentRepo.GetByID(ctx, enrollmentID)
	if err != nil {
		return false, err
	}

	student, err := s.studentRepo.GetByID(ctx, enrollment.StudentID)
	if err != nil {
		return false, err
	}

	return student.UserID != nil && *student.UserID == userID, nil
}
