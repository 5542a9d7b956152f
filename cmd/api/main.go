package main

import (
	"os"

	_ "github.com/dariolp/escuela/docs" // generated swagger docs
	"github.com/dariolp/escuela/internal/pkg/logger"
	"github.com/dariolp/escuela/internal/server"
)

// @title Escuela API
// @version 1.0
// @description Backend for school administration: programs, courses, students and enrollments

// @contact.name API Support
// @contact.email soporte@escuela.local

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
