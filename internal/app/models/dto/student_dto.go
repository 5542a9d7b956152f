package dto

import "time"

// StudentResponse represents student information
type StudentResponse struct {
	ID            int64     `json:"id"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	DNI           string    `json:"dni"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone,omitempty"`
	StudentNumber string    `json:"studentNumber"`
	ProgramID     *int64    `json:"programId,omitempty"`
	EntryDate     time.Time `json:"entryDate"`
	Active        bool      `json:"active"`
	Notes         string    `json:"notes,omitempty"`
}

// CreateStudentRequest represents student creation data. StudentNumber may
// be left blank to have one generated from the entry year and program code.
type CreateStudentRequest struct {
	FirstName     string `json:"firstName" binding:"required,min=2,max=50"`
	LastName      string `json:"lastName" binding:"required,min=2,max=50"`
	DNI           string `json:"dni" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Phone         string `json:"phone" binding:"max=30"`
	StudentNumber string `json:"studentNumber"`
	ProgramID     *int64 `json:"programId" binding:"omitempty,gt=0"`
	EntryDate     string `json:"entryDate"` // YYYY-MM-DD; defaults to today
	Notes         string `json:"notes" binding:"max=500"`
}

// UpdateStudentRequest represents student update data
type UpdateStudentRequest struct {
	FirstName string `json:"firstName" binding:"required,min=2,max=50"`
	LastName  string `json:"lastName" binding:"required,min=2,max=50"`
	DNI       string `json:"dni" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"max=30"`
	ProgramID *int64 `json:"programId" binding:"omitempty,gt=0"`
	Active    *bool  `json:"active" binding:"required"`
	Notes     string `json:"notes" binding:"max=500"`
}

// StudentSearchResult is a single autocomplete entry
type StudentSearchResult struct {
	ID            int64  `json:"id"`
	StudentNumber string `json:"studentNumber"`
	FullName      string `json:"fullName"`
	DisplayName   string `json:"displayName"`
}

// StudentSearchResponse is the autocomplete payload
type StudentSearchResponse struct {
	Results []StudentSearchResult `json:"results"`
}

// AvailabilityResponse answers the DNI/email availability checks
type AvailabilityResponse struct {
	Available bool   `json:"available"`
	Message   string `json:"message,omitempty"`
}
