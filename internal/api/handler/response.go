package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/habitus/forecast-api/internal/domain"
	"github.com/habitus/forecast-api/internal/usecases/authenticating"
	"github.com/habitus/forecast-api/internal/usecases/extracting"
	"github.com/habitus/forecast-api/internal/usecases/forecasting"
	"github.com/habitus/forecast-api/pkg/apiErrors"
	"github.com/habitus/forecast-api/pkg/log"
	"github.com/habitus/forecast-api/pkg/middleware"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	defaultPageSize = 50
	maxPageSize     = 200
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.L.WithError(err).Error("handler: erro ao enviar resposta")
	}
}

func writeFile(w http.ResponseWriter, fileName string, content []byte) {
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(content)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(content); err != nil {
		log.L.WithError(err).Error("handler: erro ao enviar arquivo")
	}
}

// currentUser devolve as claims da requisição, respondendo 401 quando ausentes
func currentUser(w http.ResponseWriter, r *http.Request) (*domain.Claims, bool) {
	claims, ok := middleware.UserFromContext(r.Context())
	if !ok {
		apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
	}
	return claims, ok
}

// pagination lê limit e offset da query string
func pagination(r *http.Request) (uint64, uint64, error) {
	limit := uint64(defaultPageSize)
	var offset uint64

	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || v == 0 {
			return 0, 0, fmt.Errorf("limit inválido: %s", raw)
		}
		limit = min(v, maxPageSize)
	}

	if raw := r.URL.Query().Get("offset"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("offset inválido: %s", raw)
		}
		offset = v
	}

	return limit, offset, nil
}

// writeServiceError traduz os erros dos casos de uso para o formato da API
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var (
		authErr       *authenticating.AuthError
		validationErr *extracting.ValidationError
		inputErr      *forecasting.InvalidInputError
	)

	switch {
	case errors.As(err, &authErr):
		apiErrors.WriteError(w, authErr.Code, authErr.Error(), nil)

	case errors.As(err, &validationErr):
		var details any
		if validationErr.Category != "" {
			details = map[string]any{"category": validationErr.Category}
		}
		apiErrors.WriteError(w, validationErr.Code, validationErr.Error(), details)

	case errors.As(err, &inputErr):
		details := map[string]any{"value": inputErr.Value}
		if inputErr.Parameter != "" {
			details["parameter"] = inputErr.Parameter
		}
		apiErrors.WriteError(w, inputErr.Code, inputErr.Error(), details)

	case errors.Is(err, extracting.ErrFinancialDataNotFound):
		apiErrors.WriteError(w, apiErrors.ErrFinancialDataNotFound, "Dados financeiros não encontrados", nil)

	case errors.Is(err, forecasting.ErrScenarioNotFound):
		apiErrors.WriteError(w, apiErrors.ErrScenarioNotFound, "Cenário não encontrado", nil)

	case errors.Is(err, extracting.ErrAccessDenied), errors.Is(err, forecasting.ErrScenarioAccess):
		apiErrors.WriteError(w, apiErrors.ErrAccessDenied, "Acesso negado a este recurso", nil)

	case errors.Is(err, forecasting.ErrMissingFinancialID):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)

	default:
		log.ForContext(r.Context()).WithError(err).Error("handler: " + fallback)
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, fallback, nil)
	}
}
