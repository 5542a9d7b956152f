package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	appControllers "github.com/dariolp/escuela/internal/app/controllers"
	appMigrations "github.com/dariolp/escuela/internal/app/migrations"
	appRepos "github.com/dariolp/escuela/internal/app/repositories"
	appRoutes "github.com/dariolp/escuela/internal/app/routes"
	appServices "github.com/dariolp/escuela/internal/app/services"
	"github.com/dariolp/escuela/internal/config"
	"github.com/dariolp/escuela/internal/db"
	appMiddleware "github.com/dariolp/escuela/internal/middleware"
	pkgAuth "github.com/dariolp/escuela/internal/pkg/auth"
	"github.com/dariolp/escuela/internal/pkg/helpers"
	"github.com/dariolp/escuela/internal/pkg/logger"
	"github.com/dariolp/escuela/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos                *appRepos.Repositories
	Services             *appServices.Services
	JWTService           *pkgAuth.JWTService
	AuthMiddleware       *appMiddleware.AuthMiddleware
	AuthController       *appControllers.AuthController
	ProgramController    *appControllers.ProgramController
	CourseController     *appControllers.CourseController
	StudentController    *appControllers.StudentController
	EnrollmentController *appControllers.EnrollmentController
	Logger               zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds the default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes repositories, services, controllers and
// middleware.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	policy := appServices.LockoutPolicy{
		MaxFailedAttempts: cfg.Auth.MaxFailedAttempts,
		LockoutDuration:   helpers.ParseDuration(cfg.Auth.LockoutDuration, 30*time.Minute),
		IPMaxAttempts:     cfg.Auth.IPMaxAttempts,
		IPWindow:          helpers.ParseDuration(cfg.Auth.IPWindow, 30*time.Minute),
	}

	deps.Services = appServices.NewServices(deps.Repos, deps.JWTService, policy)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Repos.UserRepository)

	deps.AuthController = appControllers.NewAuthController(deps.Services.Auth)
	deps.ProgramController = appControllers.NewProgramController(deps.Services.Program)
	deps.CourseController = appControllers.NewCourseController(deps.Services.Course)
	deps.StudentController = appControllers.NewStudentController(deps.Services.Student)
	deps.EnrollmentController = appControllers.NewEnrollmentController(deps.Services.Enrollment, deps.Services.Student)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(), gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.ProgramController,
		deps.CourseController,
		deps.StudentController,
		deps.EnrollmentController,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
