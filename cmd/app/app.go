package app

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/eventhive/ticketing-api/internal/api"
	"github.com/eventhive/ticketing-api/internal/config"
	"github.com/eventhive/ticketing-api/internal/db"
	"github.com/eventhive/ticketing-api/internal/logger"
	"github.com/eventhive/ticketing-api/internal/pkg/payment"
	"github.com/eventhive/ticketing-api/internal/repository"
	"github.com/eventhive/ticketing-api/internal/repository/dao"
	"github.com/eventhive/ticketing-api/internal/service"
)

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.Gin.Mode); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	dbURL := os.Getenv("DATABASE_URL")
	var postgresDB *gorm.DB
	if dbURL != "" {
		postgresDB, err = db.OpenPostgresWithDSN(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	if err = dao.InitTables(postgresDB); err != nil {
		return fmt.Errorf("failed to initialize tables -> %w", err)
	}

	if err = seedEvents(postgresDB); err != nil {
		return fmt.Errorf("failed to seed events -> %w", err)
	}

	verifier, err := payment.NewVerifier(conf.Payment.Provider, conf.Payment.StripeSecretKey)
	if err != nil {
		return fmt.Errorf("failed to initialize payment verifier -> %w", err)
	}

	s := api.NewServer(conf, postgresDB, verifier)

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}

func seedEvents(postgresDB *gorm.DB) error {
	repo := repository.NewEventRepository(dao.NewEventDAO(postgresDB))
	svc := service.NewEventService(repo)

	events, err := svc.SeedDemoEvents(context.Background())
	if err != nil {
		return err
	}

	zap.L().Info("event catalogue ready", zap.Int("events", len(events)))

	return nil
}
