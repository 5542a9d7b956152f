package models

import "time"

// Course represents a subject ("materia") offered within a program.
// Name and code are unique per program, not globally.
type Course struct {
	ID          int64     `json:"id" db:"id"`
	ProgramID   int64     `json:"programId" db:"program_id"`
	Name        string    `json:"name" db:"name"`
	Code        string    `json:"code" db:"code"`
	MaxCapacity int       `json:"maxCapacity" db:"max_capacity"`
	Year        int       `json:"year" db:"year"`
	Semester    int       `json:"semester" db:"semester"`
	WeeklyHours int       `json:"weeklyHours" db:"weekly_hours"`
	Active      bool      `json:"active" db:"active"`
	Description string    `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	// EnrolledCount is the number of ENROLLED rows, computed per query.
	EnrolledCount int `json:"enrolledCount" db:"-"`

	// Relations (populated when needed)
	Program *Program `json:"program,omitempty"`
}

// AvailableSeats returns the remaining capacity. Never negative: the unique
// and capacity checks can momentarily lose a race, and the count is clamped
// rather than surfaced as a negative number.
func (c *Course) AvailableSeats() int {
	seats := c.MaxCapacity - c.EnrolledCount
	if seats < 0 {
		return 0
	}
	return seats
}

// HasAvailableSeats reports whether at least one seat remains.
func (c *Course) HasAvailableSeats() bool {
	return c.AvailableSeats() > 0
}
