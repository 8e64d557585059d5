// Package scheduler contém as rotinas agendadas de manutenção da base
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/habitus/forecast-api/infrastructure/repository"
	"github.com/habitus/forecast-api/internal/config"
	"github.com/habitus/forecast-api/pkg/log"
)

// ErrInvalidRetentionDays impede a limpeza com corte igual ou posterior ao momento atual
var ErrInvalidRetentionDays = errors.New("período de retenção deve ser maior que zero")

type ScenarioRetentionConfig struct {
	CronSchedule  string
	RetentionDays int
	SyncEnabled   bool
}

// ScenarioRetentionService remove periodicamente os cenários salvos há mais de RetentionDays dias
type ScenarioRetentionService struct {
	scheduler           *gocron.Scheduler
	scenarioRepo        repository.ScenarioRepository
	config              ScenarioRetentionConfig
	now                 func() time.Time
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastDeleted         int64
}

func NewScenarioRetentionService(scenarioRepo repository.ScenarioRepository, cfg *config.Config) *ScenarioRetentionService {
	retentionConfig := ScenarioRetentionConfig{
		CronSchedule:  cfg.Retention.CronSchedule,
		RetentionDays: cfg.Retention.Days,
		SyncEnabled:   cfg.Retention.Enabled,
	}

	log.L.WithFields(log.Fields{
		"cron_schedule":  retentionConfig.CronSchedule,
		"retention_days": retentionConfig.RetentionDays,
	}).Info("scheduler: configuração da limpeza de cenários carregada")

	return &ScenarioRetentionService{
		scheduler:    gocron.NewScheduler(time.Local),
		scenarioRepo: scenarioRepo,
		config:       retentionConfig,
		now:          time.Now,
	}
}

func (s *ScenarioRetentionService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		log.L.Info("scheduler: limpeza de cenários desabilitada por configuração")
		return nil
	}

	if err := s.validate(); err != nil {
		return err
	}

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if _, err := s.RunRetention(ctx); err != nil {
			log.L.WithError(err).Error("scheduler: erro na limpeza de cenários")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar limpeza de cenários: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		log.L.Info("scheduler: parando limpeza de cenários")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *ScenarioRetentionService) validate() error {
	if s.config.RetentionDays <= 0 {
		return fmt.Errorf("%w: %d dias", ErrInvalidRetentionDays, s.config.RetentionDays)
	}
	return nil
}

// RunRetention apaga os cenários anteriores ao corte. Uma execução concorrente é ignorada.
func (s *ScenarioRetentionService) RunRetention(ctx context.Context) (int64, error) {
	if err := s.validate(); err != nil {
		return 0, err
	}

	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		log.L.Warn("scheduler: limpeza de cenários já está em execução")
		return 0, nil
	}
	s.syncRunning = true
	s.lastSyncStartedAt = s.now()
	s.syncMutex.Unlock()

	var deleted int64
	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = s.now()
		s.lastDeleted = deleted
		s.syncMutex.Unlock()
	}()

	cutoff := s.now().AddDate(0, 0, -s.config.RetentionDays)

	deleted, err := s.scenarioRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"cutoff":  cutoff.Format(time.DateOnly),
		"deleted": deleted,
	}).Info("scheduler: limpeza de cenários concluída")

	return deleted, nil
}

// TriggerManualSync dispara a limpeza fora do agendamento. Retorna false quando
// outra execução já está em andamento.
func (s *ScenarioRetentionService) TriggerManualSync() (bool, error) {
	if err := s.validate(); err != nil {
		return false, err
	}

	s.syncMutex.Lock()
	running := s.syncRunning
	s.syncMutex.Unlock()

	if running {
		log.L.Info("scheduler: limpeza de cenários já em andamento, ignorando solicitação manual")
		return false, nil
	}

	go func() {
		if _, err := s.RunRetention(context.Background()); err != nil {
			log.L.WithError(err).Error("scheduler: erro na limpeza manual de cenários")
		}
	}()

	return true, nil
}

func (s *ScenarioRetentionService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"retention_days":         s.config.RetentionDays,
		"running":                s.syncRunning,
		"last_deleted":           s.lastDeleted,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
