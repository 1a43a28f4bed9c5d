package main

import (
	"os"

	"github.com/yatube/yatube/internal/pkg/logger"
	"github.com/yatube/yatube/internal/server"
)

// @title Yatube API
// @version 1.0
// @description Blog platform where users publish posts, join groups, comment and follow authors
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@yatube.app

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

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
		logger.Error().Err(err).Msg("Server exited with error")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
