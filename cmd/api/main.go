package main

import (
	"context"

	"github.com/habitus/forecast-api/infrastructure/database/postgres"
	"github.com/habitus/forecast-api/infrastructure/repository"
	"github.com/habitus/forecast-api/infrastructure/spreadsheet"
	"github.com/habitus/forecast-api/internal/api"
	"github.com/habitus/forecast-api/internal/config"
	"github.com/habitus/forecast-api/internal/scheduler"
	"github.com/habitus/forecast-api/internal/usecases/authenticating"
	"github.com/habitus/forecast-api/internal/usecases/extracting"
	"github.com/habitus/forecast-api/internal/usecases/forecasting"
	"github.com/habitus/forecast-api/pkg/log"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Setup(cfg.App.LogLevel)
	log.L.Infof("main: nível de log configurado para %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	userRepo := repository.NewUserRepository(pgConn)
	financialDataRepo := repository.NewFinancialDataRepository(pgConn)
	scenarioRepo := repository.NewScenarioRepository(pgConn)

	reader := spreadsheet.NewReader()
	writer := spreadsheet.NewWriter()

	authenticator := authenticating.NewService(userRepo, cfg)
	if err := authenticator.EnsureAdmin(); err != nil {
		log.L.WithError(err).Error("main: erro ao criar administrador inicial")
	}

	extractingService := extracting.NewService(
		extracting.NewExtractor(extracting.NewClassifier()),
		reader,
		writer,
		financialDataRepo,
		cfg,
	)

	forecastingService := forecasting.NewService(
		forecasting.NewGenerator(cfg),
		scenarioRepo,
		financialDataRepo,
		writer,
	)

	retentionService := scheduler.NewScenarioRetentionService(scenarioRepo, cfg)
	if err := retentionService.Start(ctx); err != nil {
		log.L.WithError(err).Error("main: erro ao iniciar a limpeza agendada de cenários")
	}

	server, err := api.New(cfg, authenticator, extractingService, forecastingService, retentionService)
	if err != nil {
		log.L.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		log.L.Error(err)
	}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		log.L.WithError(err).Fatal("main: erro ao conectar ao PostgreSQL")
	}

	log.L.Info("main: conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
