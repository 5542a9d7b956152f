package services

import (
	"errors"
	"testing"

	"github.com/dariolp/escuela/internal/app/models"
	"github.com/dariolp/escuela/internal/pkg/apperrors"
)

func TestCanEnroll(t *testing.T) {
	activeStudent := &models.Student{ID: 1, Active: true}
	inactiveStudent := &models.Student{ID: 2, Active: false}
	openCourse := &models.Course{ID: 1, Active: true, MaxCapacity: 30, EnrolledCount: 10}
	inactiveCourse := &models.Course{ID: 2, Active: false, MaxCapacity: 30}
	fullCourse := &models.Course{ID: 3, Active: true, MaxCapacity: 30, EnrolledCount: 30}
	overbookedCourse := &models.Course{ID: 4, Active: true, MaxCapacity: 30, EnrolledCount: 31}
	lastSeatCourse := &models.Course{ID: 5, Active: true, MaxCapacity: 30, EnrolledCount: 29}

	tests := []struct {
		name            string
		student         *models.Student
		course          *models.Course
		alreadyEnrolled bool
		status          models.EnrollmentStatus
		wantErr         error
	}{
		{name: "open seat", student: activeStudent, course: openCourse, status: models.StatusEnrolled},
		{name: "last seat", student: activeStudent, course: lastSeatCourse, status: models.StatusEnrolled},
		{name: "inactive student", student: inactiveStudent, course: openCourse, status: models.StatusEnrolled, wantErr: apperrors.ErrStudentInactive},
		{name: "inactive course", student: activeStudent, course: inactiveCourse, status: models.StatusEnrolled, wantErr: apperrors.ErrCourseInactive},
		{name: "already enrolled", student: activeStudent, course: openCourse, alreadyEnrolled: true, status: models.StatusEnrolled, wantErr: apperrors.ErrAlreadyEnrolled},
		{name: "full course", student: activeStudent, course: fullCourse, status: models.StatusEnrolled, wantErr: apperrors.ErrCourseFull},
		{name: "overbooked course", student: activeStudent, course: overbookedCourse, status: models.StatusEnrolled, wantErr: apperrors.ErrCourseFull},
		{name: "regular needs no seat", student: activeStudent, course: fullCourse, status: models.StatusRegular},
		{name: "passed needs no seat", student: activeStudent, course: fullCourse, status: models.StatusPassed},
		// Inactive student wins over a full course: the checks run in order
		{name: "inactive student on full course", student: inactiveStudent, course: fullCourse, status: models.StatusEnrolled, wantErr: apperrors.ErrStudentInactive},
		{name: "duplicate wins over full course", student: activeStudent, course: fullCourse, alreadyEnrolled: true, status: models.StatusEnrolled, wantErr: apperrors.ErrAlreadyEnrolled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := canEnroll(tt.student, tt.course, tt.alreadyEnrolled, &models.Enrollment{Status: tt.status})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("canEnroll() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
