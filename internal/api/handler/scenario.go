package handler

import (
	"net/http"

	"github.com/habitus/forecast-api/internal/domain"
	"github.com/habitus/forecast-api/internal/usecases/forecasting"
	"github.com/habitus/forecast-api/pkg/apiErrors"
	"github.com/habitus/forecast-api/pkg/log"
	"github.com/julienschmidt/httprouter"
)

func CreateScenario(service forecasting.Forecasting) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentUser(w, r)
		if !ok {
			return
		}

		var req domain.CreateScenarioRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		scenario, err := service.Create(r.Context(), claims, req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao gerar cenário")
			return
		}

		log.ForContext(r.Context()).WithFields(log.Fields{
			"scenario_id":   scenario.ID,
			"scenario_type": scenario.Type,
			"user_id":       claims.UserID,
		}).Info("handler: cenário gerado")

		writeJSON(w, http.StatusCreated, scenario)
	}
}

// ListScenarios aceita os filtros financial_data_id e scenario_type na query string
func ListScenarios(service forecasting.Forecasting) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentUser(w, r)
		if !ok {
			return
		}

		limit, offset, err := pagination(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		query := r.URL.Query()
		scenarios, err := service.List(r.Context(), claims, domain.ScenarioFilter{
			FinancialDataID: query.Get("financial_data_id"),
			Type:            domain.ScenarioType(query.Get("scenario_type")),
			Limit:           limit,
			Offset:          offset,
		})
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar cenários")
			return
		}

		for _, scenario := range scenarios {
			scenario.Result = nil
		}

		writeJSON(w, http.StatusOK, scenarios)
	}
}

func GetScenario(service forecasting.Forecasting) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentUser(w, r)
		if !ok {
			return
		}

		scenario, err := service.Get(r.Context(), claims, httprouter.ParamsFromContext(r.Context()).ByName("id"))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar cenário")
			return
		}

		writeJSON(w, http.StatusOK, scenario)
	}
}

func DeleteScenario(service forecasting.Forecasting) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentUser(w, r)
		if !ok {
			return
		}

		if err := service.Delete(r.Context(), claims, httprouter.ParamsFromContext(r.Context()).ByName("id")); err != nil {
			writeServiceError(w, r, err, "Erro ao remover cenário")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func ExportScenario(service forecasting.Forecasting) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentUser(w, r)
		if !ok {
			return
		}

		content, fileName, err := service.Export(r.Context(), claims, httprouter.ParamsFromContext(r.Context()).ByName("id"))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao exportar cenário")
			return
		}

		writeFile(w, fileName, content)
	}
}

// GetScenarioSummary gera os quatro cenários da planilha e devolve o comparativo
func GetScenarioSummary(service forecasting.Forecasting) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentUser(w, r)
		if !ok {
			return
		}

		summary, err := service.Summary(r.Context(), claims, httprouter.ParamsFromContext(r.Context()).ByName("id"))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao gerar comparativo de cenários")
			return
		}

		writeJSON(w, http.StatusOK, summary)
	}
}

func ListScenarioTypes(service forecasting.Forecasting) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, service.Types())
	}
}
