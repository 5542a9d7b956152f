package dto

// ProgramResponse represents basic program information
type ProgramResponse struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Code          string `json:"code"`
	DurationYears int    `json:"durationYears"`
	Active        bool   `json:"active"`
	Description   string `json:"description,omitempty"`
	CourseCount   int    `json:"courseCount"`
	StudentCount  int    `json:"studentCount"`
}

// CreateProgramRequest represents program creation data
type CreateProgramRequest struct {
	Name          string `json:"name" binding:"required"`
	Code          string `json:"code" binding:"required"`
	DurationYears int    `json:"durationYears" binding:"omitempty,min=1,max=10"`
	Active        *bool  `json:"active"`
	Description   string `json:"description"`
}

// UpdateProgramRequest represents program update data
type UpdateProgramRequest struct {
	Name          string `json:"name" binding:"required"`
	Code          string `json:"code" binding:"required"`
	DurationYears int    `json:"durationYears" binding:"required,min=1,max=10"`
	Active        *bool  `json:"active" binding:"required"`
	Description   string `json:"description"`
}
