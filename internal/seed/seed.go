package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/dariolp/escuela/internal/app/models"
	appRepos "github.com/dariolp/escuela/internal/app/repositories"
	"github.com/dariolp/escuela/internal/pkg/apperrors"
	"github.com/dariolp/escuela/internal/pkg/auth"
)

// defaultAdminPassword is only used for the very first boot; the account is
// flagged must_change_password so it cannot be kept.
const defaultAdminPassword = "cambiar.123"

// CreateDefaultData creates the default admin account and a couple of
// starter programs on an empty database. Every step is idempotent.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	programRepo := appRepos.NewProgramRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	// --- Default admin account --- //
	exists, err := userRepo.EmailExists(ctx, "admin@escuela.local")
	if err != nil {
		finalErr = errors.Join(finalErr, err)
	} else if !exists {
		hashed, err := auth.HashPassword(defaultAdminPassword)
		if err != nil {
			finalErr = errors.Join(finalErr, err)
		} else {
			admin := &appModels.User{
				Email:              "admin@escuela.local",
				Password:           hashed,
				FirstName:          "Admin",
				LastName:           "Escuela",
				DNI:                "99999999",
				Role:               appModels.RoleAdmin,
				IsActive:           true,
				MustChangePassword: true,
			}
			if err := userRepo.Create(ctx, admin); err != nil {
				lgr.Error().Err(err).Msg("Error creating default admin user")
				finalErr = errors.Join(finalErr, err)
			} else {
				lgr.Info().Str("email", admin.Email).Msg("Default admin user created, password change required on first login")
			}
		}
	}

	// --- Starter programs --- //
	defaultPrograms := []*appModels.Program{
		{Name: "Ingeniería en Sistemas", Code: "ING", DurationYears: 5, Active: true},
		{Name: "Profesorado de Matemática", Code: "MAT", DurationYears: 4, Active: true},
	}

	for _, program := range defaultPrograms {
		if _, err := programRepo.GetByCode(ctx, program.Code); err == nil {
			continue
		} else if !errors.Is(err, apperrors.ErrProgramNotFound) {
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if err := programRepo.Create(ctx, program); err != nil && !errors.Is(err, apperrors.ErrProgramAlreadyExists) {
			lgr.Error().Err(err).Str("code", program.Code).Msg("Error creating default program")
			finalErr = errors.Join(finalErr, err)
		}
	}

	lgr.Info().Msg("Default data check complete")
	return finalErr
}
