package models

import "time"

// Program represents an academic program ("carrera"). Its name and code are
// unique across the whole system.
type Program struct {
	ID            int64     `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Code          string    `json:"code" db:"code"`
	DurationYears int       `json:"durationYears" db:"duration_years"`
	Active        bool      `json:"active" db:"active"`
	Description   string    `json:"description,omitempty" db:"description"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`

	// Computed from dependent rows (populated when needed)
	CourseCount  int `json:"courseCount" db:"-"`
	StudentCount int `json:"studentCount" db:"-"`
}

// HasRelations reports whether the program still owns courses or students,
// which blocks its deletion.
func (p *Program) HasRelations() bool {
	return p.CourseCount > 0 || p.StudentCount > 0
}
