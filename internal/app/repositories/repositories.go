package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	TokenRepository        *TokenRepository
	LoginAttemptRepository *LoginAttemptRepository
	ProgramRepository      *ProgramRepository
	CourseRepository       *CourseRepository
	StudentRepository      *StudentRepository
	EnrollmentRepository   *EnrollmentRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db),
		TokenRepository:        NewTokenRepository(db),
		LoginAttemptRepository: NewLoginAttemptRepository(db),
		ProgramRepository:      NewProgramRepository(db),
		CourseRepository:       NewCourseRepository(db),
		StudentRepository:      NewStudentRepository(db),
		EnrollmentRepository:   NewEnrollmentRepository(db),
	}
}
