package handler

import (
	"net/http"

	"github.com/habitus/forecast-api/internal/api/handler/router"
	"github.com/habitus/forecast-api/internal/usecases/authenticating"
	"github.com/habitus/forecast-api/internal/usecases/extracting"
	"github.com/habitus/forecast-api/internal/usecases/forecasting"
	"github.com/habitus/forecast-api/pkg/middleware"
)

var (
	allRoles  = []func(http.Handler) http.Handler{middleware.AllRoles()}
	adminOnly = []func(http.Handler) http.Handler{middleware.AdminOnly()}
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/register",
			Method:  http.MethodPost,
			Handler: Register(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: allRoles,
		},
	}
}

func FinancialData(service extracting.Extracting, maxUploadSize int64) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/spreadsheets/upload",
			Method:      http.MethodPost,
			Handler:     UploadSpreadsheet(service, maxUploadSize),
			Middlewares: allRoles,
		},
		{
			Path:        "/v1/financial-data",
			Method:      http.MethodGet,
			Handler:     ListFinancialData(service),
			Middlewares: allRoles,
		},
		{
			Path:        "/v1/financial-data/:id",
			Method:      http.MethodGet,
			Handler:     GetFinancialData(service),
			Middlewares: allRoles,
		},
		{
			Path:        "/v1/financial-data/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteFinancialData(service),
			Middlewares: allRoles,
		},
		{
			Path:        "/v1/financial-data/:id/trends",
			Method:      http.MethodGet,
			Handler:     GetTrends(service),
			Middlewares: allRoles,
		},
		{
			Path:        "/v1/financial-data/:id/export",
			Method:      http.MethodGet,
			Handler:     ExportFinancialData(service),
			Middlewares: allRoles,
		},
		{
			Path:        "/v1/categories",
			Method:      http.MethodGet,
			Handler:     ListCategories(service),
			Middlewares: allRoles,
		},
	}
}

func Scenarios(service forecasting.Forecasting) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/financial-data/:id/scenarios/summary",
			Method:      http.MethodGet,
			Handler:     GetScenarioSummary(service),
			Middlewares: allRoles,
		},
		{
			Path:        "/v1/scenario-types",
			Method:      http.MethodGet,
			Handler:     ListScenarioTypes(service),
			Middlewares: allRoles,
		},
		{
			Path:        "/v1/scenarios",
			Method:      http.MethodPost,
			Handler:     CreateScenario(service),
			Middlewares: allRoles,
		},
		{
			Path:        "/v1/scenarios",
			Method:      http.MethodGet,
			Handler:     ListScenarios(service),
			Middlewares: allRoles,
		},
		{
			Path:        "/v1/scenarios/:id",
			Method:      http.MethodGet,
			Handler:     GetScenario(service),
			Middlewares: allRoles,
		},
		{
			Path:        "/v1/scenarios/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteScenario(service),
			Middlewares: allRoles,
		},
		{
			Path:        "/v1/scenarios/:id/export",
			Method:      http.MethodGet,
			Handler:     ExportScenario(service),
			Middlewares: allRoles,
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/run/:type",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: adminOnly,
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: adminOnly,
		},
	}
}
