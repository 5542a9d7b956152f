package models

// RoleType defines the user role type
type RoleType string

const (
	RoleAdmin   RoleType = "ADMIN"
	RoleStudent RoleType = "STUDENT"
	RoleGuest   RoleType = "GUEST"
)

// EnrollmentStatus represents the academic state of an enrollment
type EnrollmentStatus string

const (
	StatusEnrolled EnrollmentStatus = "ENROLLED"
	StatusRegular  EnrollmentStatus = "REGULAR"
	StatusPassed   EnrollmentStatus = "PASSED"
	StatusFailed   EnrollmentStatus = "FAILED"
)

// IsValid reports whether the status is one of the known enrollment states.
func (s EnrollmentStatus) IsValid() bool {
	switch s {
	case StatusEnrolled, StatusRegular, StatusPassed, StatusFailed:
		return true
	}
	return false
}

// Semester values: 1 and 2 are the half-year terms, 0 is a year-long course.
const (
	SemesterAnnual = 0
	SemesterFirst  = 1
	SemesterSecond = 2
)

// IsValidSemester reports whether the semester value is one of the known terms.
func IsValidSemester(semester int) bool {
	return semester == SemesterAnnual || semester == SemesterFirst || semester == SemesterSecond
}
