package services

import (
	"github.com/dariolp/escuela/internal/app/repositories"
	"github.com/dariolp/escuela/internal/pkg/auth"
)

// Services holds every service instance
type Services struct {
	Auth       *AuthService
	Program    *ProgramService
	Course     *CourseService
	Student    *StudentService
	Enrollment *EnrollmentService
}

// NewServices wires the service layer on top of the repositories
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService, policy LockoutPolicy) *Services {
	return &Services{
		Auth:       NewAuthService(repos.UserRepository, repos.TokenRepository, repos.LoginAttemptRepository, jwtService, policy),
		Program:    NewProgramService(repos.ProgramRepository),
		Course:     NewCourseService(repos.CourseRepository, repos.ProgramRepository),
		Student:    NewStudentService(repos.StudentRepository, repos.ProgramRepository),
		Enrollment: NewEnrollmentService(repos.EnrollmentRepository, repos.StudentRepository, repos.CourseRepository),
	}
}
