package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "laboratorio_dental/docs"
	"laboratorio_dental/internal/adapter/http/routes"
	"laboratorio_dental/internal/infrastructure/config"
	"laboratorio_dental/internal/infrastructure/logging"
)

// @title           Laboratorio Dental API
// @version         1.0
// @description     Dental laboratory work orders, payment ledger and doctor directory backed by DynamoDB.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.IsProduction)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := routes.Run(ctx, cfg, logger); err != nil {
		logger.Error("failed to startup the application", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
