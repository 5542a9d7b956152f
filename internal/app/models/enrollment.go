package models

import "time"

// Enrollment links one student to one course. At most one row may exist per
// (student, course) pair; the database constraint is the final arbiter.
type Enrollment struct {
	ID             int64            `json:"id" db:"id"`
	StudentID      int64            `json:"studentId" db:"student_id"`
	CourseID       int64            `json:"courseId" db:"course_id"`
	Status         EnrollmentStatus `json:"status" db:"status"`
	EnrollmentDate time.Time        `json:"enrollmentDate" db:"enrollment_date"`
	Notes          string           `json:"notes,omitempty" db:"notes"`
	CreatedAt      time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time        `json:"updatedAt" db:"updated_at"`

	// Denormalized display fields joined in by queries
	StudentName   string `json:"studentName,omitempty" db:"-"`
	StudentNumber string `json:"studentNumber,omitempty" db:"-"`
	CourseName    string `json:"courseName,omitempty" db:"-"`
}

// TakesSeat reports whether the enrollment counts against the course capacity.
// Only ENROLLED rows occupy a seat.
func (e *Enrollment) TakesSeat() bool {
	return e.Status == StatusEnrolled
}
