package forecasting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/habitus/forecast-api/infrastructure/repository"
	"github.com/habitus/forecast-api/infrastructure/spreadsheet"
	"github.com/habitus/forecast-api/internal/domain"
	"github.com/habitus/forecast-api/internal/usecases/extracting"
	"github.com/habitus/forecast-api/pkg/log"
	"github.com/habitus/forecast-api/pkg/utils"
)

//go:generate mockgen -source=service.go -destination=mocks/service_mock.go -package=mocks

type Forecasting interface {
	Create(ctx context.Context, claims *domain.Claims, req domain.CreateScenarioRequest) (*domain.Scenario, error)
	List(ctx context.Context, claims *domain.Claims, filter domain.ScenarioFilter) ([]*domain.Scenario, error)
	Get(ctx context.Context, claims *domain.Claims, id string) (*domain.Scenario, error)
	Delete(ctx context.Context, claims *domain.Claims, id string) error
	Export(ctx context.Context, claims *domain.Claims, id string) ([]byte, string, error)
	Summary(ctx context.Context, claims *domain.Claims, financialDataID string) (*domain.ScenarioSummary, error)
	Types() []domain.ScenarioTypeInfo
}

type Service struct {
	generator    *Generator
	scenarioRepo repository.ScenarioRepository
	dataRepo     repository.FinancialDataRepository
	writer       spreadsheet.Writer
	now          func() time.Time
}

func NewService(
	generator *Generator,
	scenarioRepo repository.ScenarioRepository,
	dataRepo repository.FinancialDataRepository,
	writer spreadsheet.Writer,
) Forecasting {
	return &Service{
		generator:    generator,
		scenarioRepo: scenarioRepo,
		dataRepo:     dataRepo,
		writer:       writer,
		now:          time.Now,
	}
}

// Create gera o cenário sobre os dados financeiros informados e o persiste
func (s *Service) Create(ctx context.Context, claims *domain.Claims, req domain.CreateScenarioRequest) (*domain.Scenario, error) {
	logger := log.ForContext(ctx)

	if strings.TrimSpace(req.FinancialDataID) == "" {
		return nil, ErrMissingFinancialID
	}

	// tipo e parâmetros são validados antes de buscar os dados
	scenario, err := s.generator.ScenarioFor(req.Type, req.Parameters)
	if err != nil {
		logger.WithFields(log.Fields{
			"scenario_type": req.Type,
		}).WithError(err).Warn("forecasting: parâmetros de cenário inválidos")
		return nil, err
	}

	data, err := s.financialData(ctx, claims, req.FinancialDataID)
	if err != nil {
		return nil, err
	}

	result := s.generator.Apply(data.Dataset, scenario)

	id, err := utils.GenerateID()
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = fmt.Sprintf("Cenário %s - %s", req.Type, data.Title)
	}

	record := &domain.Scenario{
		ID:              id,
		UserID:          claims.UserID,
		FinancialDataID: data.ID,
		Name:            name,
		Description:     req.Description,
		Type:            req.Type,
		Result:          result,
		CreatedAt:       s.now(),
	}

	if err := s.scenarioRepo.Create(ctx, record); err != nil {
		logger.WithError(err).Error("forecasting: erro ao salvar cenário")
		return nil, err
	}

	logger.WithFields(log.Fields{
		"scenario_id":       record.ID,
		"scenario_type":     record.Type,
		"financial_data_id": data.ID,
		"final_balance":     result.Metrics.FinalBalance,
	}).Info("forecasting: cenário gerado")

	return record, nil
}

func (s *Service) List(ctx context.Context, claims *domain.Claims, filter domain.ScenarioFilter) ([]*domain.Scenario, error) {
	if filter.Type != "" && !filter.Type.IsValid() {
		return nil, newUnknownTypeError(string(filter.Type))
	}

	filter.UserID = 0
	if !claims.IsAdmin() {
		filter.UserID = claims.UserID
	}

	return s.scenarioRepo.List(ctx, filter)
}

func (s *Service) Get(ctx context.Context, claims *domain.Claims, id string) (*domain.Scenario, error) {
	scenario, err := s.scenarioRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if scenario == nil {
		return nil, ErrScenarioNotFound
	}

	if !claims.CanAccess(scenario.UserID) {
		log.ForContext(ctx).WithFields(log.Fields{
			"user_id":     claims.UserID,
			"scenario_id": id,
		}).Warn("forecasting: acesso negado ao cenário")
		return nil, ErrScenarioAccess
	}

	return scenario, nil
}

func (s *Service) Delete(ctx context.Context, claims *domain.Claims, id string) error {
	if _, err := s.Get(ctx, claims, id); err != nil {
		return err
	}

	return s.scenarioRepo.Delete(ctx, id)
}

// Export gera o arquivo .xlsx do cenário e o nome sugerido para download
func (s *Service) Export(ctx context.Context, claims *domain.Claims, id string) ([]byte, string, error) {
	scenario, err := s.Get(ctx, claims, id)
	if err != nil {
		return nil, "", err
	}

	content, err := s.writer.WriteScenario(scenario)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("forecasting: erro ao exportar cenário")
		return nil, "", err
	}

	return content, fmt.Sprintf("cenario_%s_%s.xlsx", scenario.Type, scenario.ID), nil
}

// Summary gera os quatro cenários padrão sobre os dados financeiros e os compara,
// sem persistir nenhum deles
func (s *Service) Summary(ctx context.Context, claims *domain.Claims, financialDataID string) (*domain.ScenarioSummary, error) {
	data, err := s.financialData(ctx, claims, financialDataID)
	if err != nil {
		return nil, err
	}

	results, err := s.generator.GenerateAll(data.Dataset)
	if err != nil {
		return nil, err
	}

	summary := Compare(results)
	return &summary, nil
}

func (s *Service) Types() []domain.ScenarioTypeInfo {
	return ScenarioTypeInfos()
}

func (s *Service) financialData(ctx context.Context, claims *domain.Claims, id string) (*domain.FinancialData, error) {
	data, err := s.dataRepo.GetByID(ctx, id)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("forecasting: erro ao buscar dados financeiros")
		return nil, err
	}

	if data == nil {
		return nil, extracting.ErrFinancialDataNotFound
	}

	if !claims.CanAccess(data.UserID) {
		return nil, extracting.ErrAccessDenied
	}

	return data, nil
}
