package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/habitus/forecast-api/internal/api/handler"
	"github.com/habitus/forecast-api/internal/api/handler/router"
	"github.com/habitus/forecast-api/internal/config"
	"github.com/habitus/forecast-api/internal/scheduler"
	"github.com/habitus/forecast-api/internal/usecases/authenticating"
	"github.com/habitus/forecast-api/internal/usecases/extracting"
	"github.com/habitus/forecast-api/internal/usecases/forecasting"
	"github.com/habitus/forecast-api/pkg/log"
	"github.com/habitus/forecast-api/pkg/middleware"
	"github.com/justinas/alice"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	httpServer *http.Server
}

func New(
	cfg *config.Config,
	authenticator authenticating.Authenticator,
	extractingService extracting.Extracting,
	forecastingService forecasting.Forecasting,
	retentionService *scheduler.ScenarioRetentionService,
) (*Server, error) {
	cronServices := handler.CronJobServices{
		ScenarioRetentionService: retentionService,
	}

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
			Handler:           NewHandler(cfg, authenticator, extractingService, forecastingService, cronServices),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

// NewHandler monta o roteador com a cadeia de middlewares global
func NewHandler(
	cfg *config.Config,
	authenticator authenticating.Authenticator,
	extractingService extracting.Extracting,
	forecastingService forecasting.Forecasting,
	cronServices handler.CronJobServices,
) http.Handler {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Authentication(authenticator)...),
		router.WithRoutes(handler.FinancialData(extractingService, cfg.Upload.MaxSizeBytes)...),
		router.WithRoutes(handler.Scenarios(forecastingService)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(cfg.Server.AllowedOrigins),
		middleware.AuthMiddleware(authenticator),
	}

	return alice.New(middlewares...).Then(rt)
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		log.L.WithFields(log.Fields{
			"address": s.httpServer.Addr,
		}).Info("api: servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.L.WithError(err).Error("api: erro durante a execução do servidor")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		log.L.Info("api: sinal de interrupção recebido")
	case <-ctx.Done():
		log.L.Info("api: contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.L.WithFields(log.Fields{
		"timeout": shutdownTimeout.String(),
	}).Info("api: iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		log.L.WithError(err).Error("api: erro durante o desligamento do servidor")
		return err
	}

	log.L.Info("api: servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
