package forecasting

import (
	"errors"
	"fmt"

	"github.com/habitus/forecast-api/pkg/apiErrors"
)

// Erros específicos para o contexto de cenários
var (
	ErrUnknownScenarioType = errors.New("Tipo de cenário desconhecido")
	ErrInvalidParameter    = errors.New("parâmetro de cenário inválido")
	ErrScenarioNotFound    = errors.New("cenário não encontrado")
	ErrScenarioAccess      = errors.New("acesso negado ao cenário")
	ErrMissingFinancialID  = errors.New("financial_data_id é obrigatório")
)

// InvalidInputError é retornado antes de qualquer cálculo quando o tipo ou
// um parâmetro do cenário não é aceito
type InvalidInputError struct {
	Err       error  // Erro base
	Code      string // Código de erro para API
	Parameter string // Parâmetro envolvido (quando aplicável)
	Value     string // Valor recebido
}

func (e *InvalidInputError) Error() string {
	if e.Parameter != "" {
		return fmt.Sprintf("%s: %s=%s", e.Err.Error(), e.Parameter, e.Value)
	}
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Value)
}

func (e *InvalidInputError) Unwrap() error {
	return e.Err
}

func newUnknownTypeError(value string) *InvalidInputError {
	return &InvalidInputError{
		Err:   ErrUnknownScenarioType,
		Code:  apiErrors.ErrScenarioInvalidInput,
		Value: value,
	}
}

func newParameterError(parameter string, value float64) *InvalidInputError {
	return &InvalidInputError{
		Err:       ErrInvalidParameter,
		Code:      apiErrors.ErrScenarioInvalidInput,
		Parameter: parameter,
		Value:     fmt.Sprintf("%g", value),
	}
}
