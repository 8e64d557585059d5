package handler

import (
	"net/http"

	"github.com/habitus/forecast-api/internal/scheduler"
	"github.com/habitus/forecast-api/pkg/apiErrors"
	"github.com/habitus/forecast-api/pkg/log"
	"github.com/julienschmidt/httprouter"
)

const (
	CronJobTypeScenarioRetention = "scenario-retention"
	CronJobTypeAll               = "all"
)

// CronJobServices contém os serviços agendados que podem ser disparados manualmente
type CronJobServices struct {
	ScenarioRetentionService *scheduler.ScenarioRetentionService
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		var started bool
		switch cronType {
		case CronJobTypeScenarioRetention, CronJobTypeAll:
			if services.ScenarioRetentionService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de limpeza de cenários não disponível", nil)
				return
			}
			var err error
			started, err = services.ScenarioRetentionService.TriggerManualSync()
			if err != nil {
				log.ForContext(r.Context()).WithError(err).Warn("handler: limpeza de cenários recusada")
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Período de retenção de cenários inválido", map[string]any{
					"scenario_retention_days": services.ScenarioRetentionService.GetStatus()["retention_days"],
				})
				return
			}
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: scenario-retention, all", nil)
			return
		}

		message := "Cron job iniciada com sucesso"
		if !started {
			message = "Cron job já está em execução"
		}

		log.ForContext(r.Context()).WithField("cron_type", cronType).Info("handler: " + message)

		writeJSON(w, http.StatusAccepted, map[string]any{
			"message": message,
			"type":    cronType,
			"started": started,
		})
	}
}

func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}
		if services.ScenarioRetentionService != nil {
			status[CronJobTypeScenarioRetention] = services.ScenarioRetentionService.GetStatus()
		}

		writeJSON(w, http.StatusOK, status)
	}
}
