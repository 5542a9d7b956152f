package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/dariolp/escuela/internal/app/controllers"
	"github.com/dariolp/escuela/internal/middleware"
)

// SetupRouter configures all application routes.
// Reads on programs and courses are public; everything touching students or
// enrollments needs a token, and writes to the catalog are admin-only.
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	programController *controllers.ProgramController,
	courseController *controllers.CourseController,
	studentController *controllers.StudentController,
	enrollmentController *controllers.EnrollmentController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	// --- Public catalog reads ---
	programs := v1.Group("/programs")
	{
		programs.GET("", programController.GetPrograms)
		programs.GET("/:id", programController.GetProgramByID)
	}

	courses := v1.Group("/courses")
	{
		courses.GET("", courseController.GetCourses)
		courses.GET("/suggest-code", courseController.SuggestCode)
		courses.GET("/:id", courseController.GetCourseByID)
		courses.GET("/:id/availability", courseController.GetAvailability)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authRoutes := authenticated.Group("/auth")
		{
			authRoutes.POST("/logout", authController.Logout)
			authRoutes.POST("/change-password", authController.ChangePassword)
			authRoutes.GET("/profile", authController.GetProfile)
		}

		gated := authenticated.Group("")
		gated.Use(authMiddleware.PasswordChangeGate())

		// Catalog writes (admin only)
		programsAdmin := gated.Group("/programs")
		programsAdmin.Use(authMiddleware.RequireAdmin())
		{
			programsAdmin.POST("", programController.CreateProgram)
			programsAdmin.PUT("/:id", programController.UpdateProgram)
			programsAdmin.DELETE("/:id", programController.DeleteProgram)
		}

		coursesAdmin := gated.Group("/courses")
		coursesAdmin.Use(authMiddleware.RequireAdmin())
		{
			coursesAdmin.POST("", courseController.CreateCourse)
			coursesAdmin.PUT("/:id", courseController.UpdateCourse)
			coursesAdmin.DELETE("/:id", courseController.DeleteCourse)
		}

		// Students: reads for any authenticated user (self-scoped for
		// non-admins inside the controller), writes admin-only
		students := gated.Group("/students")
		{
			students.GET("/:id", studentController.GetStudentByID)

			studentsAdmin := students.Group("")
			studentsAdmin.Use(authMiddleware.RequireAdmin())
			{
				studentsAdmin.GET("", studentController.GetStudents)
				studentsAdmin.GET("/search", studentController.SearchStudents)
				studentsAdmin.GET("/check-dni", studentController.CheckDNI)
				studentsAdmin.GET("/check-email", studentController.CheckEmail)
				studentsAdmin.POST("", studentController.CreateStudent)
				studentsAdmin.PUT("/:id", studentController.UpdateStudent)
				studentsAdmin.DELETE("/:id", studentController.DeleteStudent)
			}
		}

		// Enrollments: students may enroll themselves and manage their own
		// rows; status changes are admin-only
		enrollments := gated.Group("/enrollments")
		{
			enrollments.GET("", enrollmentController.GetEnrollments)
			enrollments.GET("/:id", enrollmentController.GetEnrollmentByID)
			enrollments.POST("", enrollmentController.CreateEnrollment)
			enrollments.DELETE("/:id", enrollmentController.DeleteEnrollment)

			enrollmentsAdmin := enrollments.Group("")
			enrollmentsAdmin.Use(authMiddleware.RequireAdmin())
			{
				enrollmentsAdmin.PUT("/:id", enrollmentController.UpdateEnrollment)
			}
		}
	}
}
