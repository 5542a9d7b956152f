package models

import "time"

// Student represents an enrolled person ("alumno"). DNI, email and the
// student number are all globally unique.
type Student struct {
	ID            int64     `json:"id" db:"id"`
	FirstName     string    `json:"firstName" db:"first_name"`
	LastName      string    `json:"lastName" db:"last_name"`
	DNI           string    `json:"dni" db:"dni"`
	Email         string    `json:"email" db:"email"`
	Phone         string    `json:"phone,omitempty" db:"phone"`
	StudentNumber string    `json:"studentNumber" db:"student_number"`
	ProgramID     *int64    `json:"programId,omitempty" db:"program_id"`
	UserID        *int64    `json:"userId,omitempty" db:"user_id"`
	EntryDate     time.Time `json:"entryDate" db:"entry_date"`
	Active        bool      `json:"active" db:"active"`
	Notes         string    `json:"notes,omitempty" db:"notes"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Program *Program `json:"program,omitempty"`
}

// FullName returns "First Last".
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

// DisplayName returns "Last, First (studentNumber)" for listings and search results.
func (s *Student) DisplayName() string {
	return s.LastName + ", " + s.FirstName + " (" + s.StudentNumber + ")"
}
