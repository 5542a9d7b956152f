package dto

import "time"

// EnrollmentResponse represents enrollment information
type EnrollmentResponse struct {
	ID             int64     `json:"id"`
	StudentID      int64     `json:"studentId"`
	CourseID       int64     `json:"courseId"`
	Status         string    `json:"status"`
	EnrollmentDate time.Time `json:"enrollmentDate"`
	Notes          string    `json:"notes,omitempty"`
	StudentName    string    `json:"studentName,omitempty"`
	StudentNumber  string    `json:"studentNumber,omitempty"`
	CourseName     string    `json:"courseName,omitempty"`
}

// CreateEnrollmentRequest represents enrollment creation data
type CreateEnrollmentRequest struct {
	StudentID int64  `json:"studentId" binding:"required,gt=0"`
	CourseID  int64  `json:"courseId" binding:"required,gt=0"`
	Status    string `json:"status" binding:"omitempty,oneof=ENROLLED REGULAR PASSED FAILED"`
	Notes     string `json:"notes"`
}

// UpdateEnrollmentRequest changes the status (and notes) of an enrollment
type UpdateEnrollmentRequest struct {
	Status string `json:"status" binding:"required,oneof=ENROLLED REGULAR PASSED FAILED"`
	Notes  string `json:"notes"`
}
