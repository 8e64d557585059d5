package extracting

import (
	"errors"
	"fmt"

	"github.com/habitus/forecast-api/internal/domain"
	"github.com/habitus/forecast-api/pkg/apiErrors"
)

// Erros estruturais da planilha
var (
	ErrUnreadableWorkbook = errors.New("erro ao ler arquivo Excel")
	ErrNoSheets           = errors.New("O arquivo Excel não contém planilhas.")
	ErrNoSheetData        = errors.New("O arquivo Excel não contém dados válidos em nenhuma planilha.")
	ErrNoCategories       = errors.New("Não foi possível extrair dados financeiros. Verifique se o arquivo contém categorias reconhecíveis.")
	ErrNoNumericColumns   = errors.New("categoria sem colunas numéricas")

	ErrFinancialDataNotFound = errors.New("dados financeiros não encontrados")
	ErrAccessDenied          = errors.New("acesso negado aos dados financeiros")
	ErrFileTooLarge          = errors.New("arquivo excede o tamanho máximo permitido")
	ErrInvalidFileType       = errors.New("formato de arquivo inválido, envie um arquivo .xlsx")
)

// ValidationError descreve um problema estrutural da planilha enviada
type ValidationError struct {
	Err      error
	Code     string
	Category domain.FinancialCategory
	Details  string
}

func (e *ValidationError) Error() string {
	if e.Category != "" {
		return fmt.Sprintf("A categoria '%s' não contém colunas numéricas para análise.", e.Category)
	}
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func newValidationError(err error, details string) *ValidationError {
	return &ValidationError{
		Err:     err,
		Code:    apiErrors.ErrSpreadsheetInvalid,
		Details: details,
	}
}

func newCategoryValidationError(category domain.FinancialCategory) *ValidationError {
	return &ValidationError{
		Err:      ErrNoNumericColumns,
		Code:     apiErrors.ErrSpreadsheetInvalid,
		Category: category,
	}
}
