package dto

// CourseResponse represents course information with computed seat counts
type CourseResponse struct {
	ID             int64  `json:"id"`
	ProgramID      int64  `json:"programId"`
	Name           string `json:"name"`
	Code           string `json:"code"`
	MaxCapacity    int    `json:"maxCapacity"`
	Year           int    `json:"year"`
	Semester       int    `json:"semester"`
	WeeklyHours    int    `json:"weeklyHours"`
	Active         bool   `json:"active"`
	Description    string `json:"description,omitempty"`
	EnrolledCount  int    `json:"enrolledCount"`
	AvailableSeats int    `json:"availableSeats"`
}

// CreateCourseRequest represents course creation data. Code may be left
// blank to have one generated from the course name.
type CreateCourseRequest struct {
	ProgramID   int64  `json:"programId" binding:"required,gt=0"`
	Name        string `json:"name" binding:"required"`
	Code        string `json:"code"`
	MaxCapacity int    `json:"maxCapacity" binding:"required,gt=0"`
	Year        int    `json:"year" binding:"required,min=1"`
	Semester    int    `json:"semester" binding:"min=0,max=2"`
	WeeklyHours int    `json:"weeklyHours" binding:"omitempty,min=1"`
	Active      *bool  `json:"active"`
	Description string `json:"description"`
}

// UpdateCourseRequest represents course update data
type UpdateCourseRequest struct {
	Name        string `json:"name" binding:"required"`
	Code        string `json:"code" binding:"required"`
	MaxCapacity int    `json:"maxCapacity" binding:"required,gt=0"`
	Year        int    `json:"year" binding:"required,min=1"`
	Semester    int    `json:"semester" binding:"min=0,max=2"`
	WeeklyHours int    `json:"weeklyHours" binding:"required,min=1"`
	Active      *bool  `json:"active" binding:"required"`
	Description string `json:"description"`
}

// CourseAvailabilityResponse is the payload of the seat availability check
type CourseAvailabilityResponse struct {
	CourseID          int64 `json:"courseId"`
	MaxCapacity       int   `json:"maxCapacity"`
	EnrolledCount     int   `json:"enrolledCount"`
	AvailableSeats    int   `json:"availableSeats"`
	HasAvailableSeats bool  `json:"hasAvailableSeats"`
}

// SuggestCodeResponse is the payload of the course code suggestion endpoint
type SuggestCodeResponse struct {
	ProgramID int64  `json:"programId"`
	Code      string `json:"code"`
}
