package extracting

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/habitus/forecast-api/infrastructure/repository"
	"github.com/habitus/forecast-api/infrastructure/spreadsheet"
	"github.com/habitus/forecast-api/internal/config"
	"github.com/habitus/forecast-api/internal/domain"
	"github.com/habitus/forecast-api/pkg/apiErrors"
	"github.com/habitus/forecast-api/pkg/log"
	"github.com/habitus/forecast-api/pkg/utils"
)

// UploadRequest é o arquivo enviado pelo usuário com título e descrição
type UploadRequest struct {
	FileName    string
	Title       string
	Description string
	Content     []byte
}

//go:generate mockgen -source=service.go -destination=mocks/service_mock.go -package=mocks

type Extracting interface {
	Upload(ctx context.Context, claims *domain.Claims, req UploadRequest) (*domain.FinancialData, error)
	List(ctx context.Context, claims *domain.Claims, limit, offset uint64) ([]*domain.FinancialData, error)
	Get(ctx context.Context, claims *domain.Claims, id string) (*domain.FinancialData, error)
	Delete(ctx context.Context, claims *domain.Claims, id string) error
	Trends(ctx context.Context, claims *domain.Claims, id string) (domain.TrendReport, error)
	Export(ctx context.Context, claims *domain.Claims, id string) ([]byte, string, error)
	Categories() []domain.CategoryInfo
}

type Service struct {
	extractor *Extractor
	reader    spreadsheet.Reader
	writer    spreadsheet.Writer
	repo      repository.FinancialDataRepository
	maxSize   int64
	now       func() time.Time
}

func NewService(
	extractor *Extractor,
	reader spreadsheet.Reader,
	writer spreadsheet.Writer,
	repo repository.FinancialDataRepository,
	cfg *config.Config,
) Extracting {
	return &Service{
		extractor: extractor,
		reader:    reader,
		writer:    writer,
		repo:      repo,
		maxSize:   cfg.Upload.MaxSizeBytes,
		now:       time.Now,
	}
}

func (s *Service) Upload(ctx context.Context, claims *domain.Claims, req UploadRequest) (*domain.FinancialData, error) {
	logger := log.ForContext(ctx)

	if len(req.Content) == 0 {
		return nil, newValidationError(ErrNoSheetData, "arquivo vazio")
	}

	if ext := strings.ToLower(filepath.Ext(req.FileName)); ext != ".xlsx" {
		return nil, &ValidationError{Err: ErrInvalidFileType, Code: apiErrors.ErrSpreadsheetFormat, Details: req.FileName}
	}

	if s.maxSize > 0 && int64(len(req.Content)) > s.maxSize {
		return nil, &ValidationError{
			Err:     ErrFileTooLarge,
			Code:    apiErrors.ErrSpreadsheetTooLarge,
			Details: fmt.Sprintf("limite de %d bytes", s.maxSize),
		}
	}

	sheets, err := s.reader.Read(ctx, req.Content)
	if err != nil {
		logger.WithError(err).Error("extracting: erro ao ler arquivo Excel")
		return nil, newValidationError(ErrUnreadableWorkbook, err.Error())
	}

	dataset, infos, err := s.extractor.Extract(ctx, sheets)
	if err != nil {
		return nil, err
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(req.FileName), filepath.Ext(req.FileName))
	}

	now := s.now()
	data := &domain.FinancialData{
		ID:          id,
		UserID:      claims.UserID,
		Title:       title,
		Description: req.Description,
		FileName:    req.FileName,
		Dataset:     dataset,
		Categories:  infos,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, data); err != nil {
		logger.WithError(err).Error("extracting: erro ao salvar dados financeiros")
		return nil, err
	}

	logger.WithFields(log.Fields{
		"financial_data_id": data.ID,
		"user_id":           claims.UserID,
		"categories":        len(infos),
	}).Info("extracting: planilha processada")

	return data, nil
}

func (s *Service) List(ctx context.Context, claims *domain.Claims, limit, offset uint64) ([]*domain.FinancialData, error) {
	filter := domain.FinancialDataFilter{Limit: limit, Offset: offset}
	if !claims.IsAdmin() {
		filter.UserID = claims.UserID
	}

	return s.repo.List(ctx, filter)
}

func (s *Service) Get(ctx context.Context, claims *domain.Claims, id string) (*domain.FinancialData, error) {
	data, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data == nil {
		return nil, ErrFinancialDataNotFound
	}

	if !claims.CanAccess(data.UserID) {
		log.ForContext(ctx).WithFields(log.Fields{
			"user_id":           claims.UserID,
			"financial_data_id": id,
		}).Warn("extracting: acesso negado aos dados financeiros")
		return nil, ErrAccessDenied
	}

	return data, nil
}

func (s *Service) Delete(ctx context.Context, claims *domain.Claims, id string) error {
	if _, err := s.Get(ctx, claims, id); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}

func (s *Service) Trends(ctx context.Context, claims *domain.Claims, id string) (domain.TrendReport, error) {
	data, err := s.Get(ctx, claims, id)
	if err != nil {
		return nil, err
	}

	return AnalyzeTrends(data.Dataset), nil
}

// Export gera o arquivo .xlsx dos dados processados e o nome sugerido para download
func (s *Service) Export(ctx context.Context, claims *domain.Claims, id string) ([]byte, string, error) {
	data, err := s.Get(ctx, claims, id)
	if err != nil {
		return nil, "", err
	}

	content, err := s.writer.WriteDataset(data)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("extracting: erro ao exportar dados financeiros")
		return nil, "", err
	}

	return content, fmt.Sprintf("dados_processados_%s.xlsx", data.ID), nil
}

// Categories lista todas as categorias conhecidas, base e calculadas
func (s *Service) Categories() []domain.CategoryInfo {
	return CategoryInfos(domain.AllCategories())
}
