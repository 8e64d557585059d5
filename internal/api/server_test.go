package api

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	repomocks "github.com/habitus/forecast-api/infrastructure/repository/mocks"
	"github.com/habitus/forecast-api/internal/api/handler"
	"github.com/habitus/forecast-api/internal/config"
	"github.com/habitus/forecast-api/internal/domain"
	"github.com/habitus/forecast-api/internal/scheduler"
	"github.com/habitus/forecast-api/internal/usecases/authenticating"
	authmocks "github.com/habitus/forecast-api/internal/usecases/authenticating/mocks"
	"github.com/habitus/forecast-api/internal/usecases/extracting"
	extractingmocks "github.com/habitus/forecast-api/internal/usecases/extracting/mocks"
	"github.com/habitus/forecast-api/internal/usecases/forecasting"
	forecastingmocks "github.com/habitus/forecast-api/internal/usecases/forecasting/mocks"
	"github.com/habitus/forecast-api/pkg/apiErrors"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	userToken  = "token-usuario"
	adminToken = "token-admin"
)

type apiMocks struct {
	auth        *authmocks.MockAuthenticator
	extracting  *extractingmocks.MockExtracting
	forecasting *forecastingmocks.MockForecasting
}

var (
	userClaims  = &domain.Claims{UserID: 7, UserActive: true, UserRoleID: domain.RoleUser}
	adminClaims = &domain.Claims{UserID: 1, UserActive: true, UserRoleID: domain.RoleAdmin}
)

func newTestHandler(t *testing.T) (http.Handler, apiMocks) {
	ctrl := gomock.NewController(t)

	m := apiMocks{
		auth:        authmocks.NewMockAuthenticator(ctrl),
		extracting:  extractingmocks.NewMockExtracting(ctrl),
		forecasting: forecastingmocks.NewMockForecasting(ctrl),
	}

	m.auth.EXPECT().ValidateToken(userToken).Return(userClaims, nil).AnyTimes()
	m.auth.EXPECT().ValidateToken(adminToken).Return(adminClaims, nil).AnyTimes()

	cfg := &config.Config{
		Server: config.Server{AllowedOrigins: []string{"http://localhost:3000"}},
		Upload: config.Upload{MaxSizeBytes: 1 << 20},
	}

	return NewHandler(cfg, m.auth, m.extracting, m.forecasting, handler.CronJobServices{}), m
}

func request(method, path, token string, body []byte) *http.Request {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	var apiErr apiErrors.APIError
	require.NoError(t, jsoniter.Unmarshal(rec.Body.Bytes(), &apiErr))
	return apiErr
}

func TestHandler_PublicRoutes(t *testing.T) {
	h, m := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, request(http.MethodGet, "/healthcheck", "", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)

	m.auth.EXPECT().LoginUser("ana@empresa.com", "Senha123").Return("jwt", nil)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, request(http.MethodPost, "/v1/login", "", []byte(`{"email":"ana@empresa.com","password":"Senha123"}`)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"access_token":"jwt","token_type":"bearer"}`, rec.Body.String())
}

func TestHandler_Register(t *testing.T) {
	h, m := newTestHandler(t)

	m.auth.EXPECT().CreateUser(gomock.Any()).DoAndReturn(func(u *domain.User) (*domain.User, error) {
		assert.Equal(t, domain.RoleUser, u.RoleID)
		assert.Equal(t, "Senha123", u.PasswordHash)
		u.ID = 12
		u.PasswordHash = ""
		return u, nil
	})

	body := []byte(`{"name":"Ana","lastname":"Souza","email":"ana@empresa.com","password":"Senha123","role_id":1}`)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, request(http.MethodPost, "/v1/register", "", body))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")

	m.auth.EXPECT().CreateUser(gomock.Any()).Return(nil,
		authenticating.NewAuthError(authenticating.ErrUserAlreadyExists, apiErrors.ErrUserAlreadyExists, "Email já cadastrado"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, request(http.MethodPost, "/v1/register", "", body))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, apiErrors.ErrUserAlreadyExists, decodeError(t, rec).Code)
}

func TestHandler_Authentication(t *testing.T) {
	h, m := newTestHandler(t)

	m.auth.EXPECT().ValidateToken("expirado").Return(nil,
		authenticating.NewAuthError(authenticating.ErrExpiredToken, apiErrors.ErrExpiredToken, ""))

	tests := []struct {
		name     string
		header   string
		wantCode string
	}{
		{name: "Sem cabeçalho", header: "", wantCode: apiErrors.ErrInvalidToken},
		{name: "Sem Bearer", header: userToken, wantCode: apiErrors.ErrInvalidToken},
		{name: "Token expirado", header: "Bearer expirado", wantCode: apiErrors.ErrExpiredToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := request(http.MethodGet, "/v1/financial-data", "", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, tt.wantCode, decodeError(t, rec).Code)
		})
	}
}

func TestHandler_UploadSpreadsheet(t *testing.T) {
	h, m := newTestHandler(t)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "orcamento.xlsx")
	require.NoError(t, err)
	_, err = part.Write([]byte("conteudo"))
	require.NoError(t, err)
	require.NoError(t, writer.WriteField("title", "Orçamento 2024"))
	require.NoError(t, writer.Close())

	m.extracting.EXPECT().
		Upload(gomock.Any(), userClaims, extracting.UploadRequest{
			FileName: "orcamento.xlsx",
			Title:    "Orçamento 2024",
			Content:  []byte("conteudo"),
		}).
		Return(&domain.FinancialData{ID: "abc123", UserID: 7, Title: "Orçamento 2024"}, nil)

	req := request(http.MethodPost, "/v1/spreadsheets/upload", userToken, body.Bytes())
	req.Header.Set("Content-Type", writer.FormDataContentType())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"abc123"`)
}

func TestHandler_UploadWithoutFile(t *testing.T) {
	h, _ := newTestHandler(t)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("title", "Sem arquivo"))
	require.NoError(t, writer.Close())

	req := request(http.MethodPost, "/v1/spreadsheets/upload", userToken, body.Bytes())
	req.Header.Set("Content-Type", writer.FormDataContentType())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apiErrors.ErrMissingRequiredData, decodeError(t, rec).Code)
}

func TestHandler_ServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		setup      func(m apiMocks)
		wantStatus int
		wantCode   string
	}{
		{
			name:   "Planilha de outro usuário",
			method: http.MethodGet,
			path:   "/v1/financial-data/abc123",
			setup: func(m apiMocks) {
				m.extracting.EXPECT().Get(gomock.Any(), userClaims, "abc123").Return(nil, extracting.ErrAccessDenied)
			},
			wantStatus: http.StatusForbidden,
			wantCode:   apiErrors.ErrAccessDenied,
		},
		{
			name:   "Planilha inexistente",
			method: http.MethodDelete,
			path:   "/v1/financial-data/nada",
			setup: func(m apiMocks) {
				m.extracting.EXPECT().Delete(gomock.Any(), userClaims, "nada").Return(extracting.ErrFinancialDataNotFound)
			},
			wantStatus: http.StatusNotFound,
			wantCode:   apiErrors.ErrFinancialDataNotFound,
		},
		{
			name:   "Planilha sem colunas numéricas",
			method: http.MethodGet,
			path:   "/v1/financial-data/abc123/trends",
			setup: func(m apiMocks) {
				m.extracting.EXPECT().Trends(gomock.Any(), userClaims, "abc123").Return(nil, &extracting.ValidationError{
					Err:      extracting.ErrNoNumericColumns,
					Code:     apiErrors.ErrSpreadsheetInvalid,
					Category: domain.CategoryRevenue,
				})
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrSpreadsheetInvalid,
		},
		{
			name:   "Tipo de cenário desconhecido",
			method: http.MethodPost,
			path:   "/v1/scenarios",
			body:   `{"financial_data_id":"abc123","scenario_type":"catastrofico"}`,
			setup: func(m apiMocks) {
				m.forecasting.EXPECT().Create(gomock.Any(), userClaims, gomock.Any()).Return(nil, &forecasting.InvalidInputError{
					Err:   forecasting.ErrUnknownScenarioType,
					Code:  apiErrors.ErrScenarioInvalidInput,
					Value: "catastrofico",
				})
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrScenarioInvalidInput,
		},
		{
			name:   "Cenário inexistente",
			method: http.MethodGet,
			path:   "/v1/scenarios/xyz789",
			setup: func(m apiMocks) {
				m.forecasting.EXPECT().Get(gomock.Any(), userClaims, "xyz789").Return(nil, forecasting.ErrScenarioNotFound)
			},
			wantStatus: http.StatusNotFound,
			wantCode:   apiErrors.ErrScenarioNotFound,
		},
		{
			name:   "Cenário de outro usuário",
			method: http.MethodDelete,
			path:   "/v1/scenarios/xyz789",
			setup: func(m apiMocks) {
				m.forecasting.EXPECT().Delete(gomock.Any(), userClaims, "xyz789").Return(forecasting.ErrScenarioAccess)
			},
			wantStatus: http.StatusForbidden,
			wantCode:   apiErrors.ErrAccessDenied,
		},
		{
			name:       "Corpo inválido",
			method:     http.MethodPost,
			path:       "/v1/scenarios",
			body:       `{`,
			setup:      func(m apiMocks) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrInvalidRequest,
		},
		{
			name:       "Paginação inválida",
			method:     http.MethodGet,
			path:       "/v1/scenarios?limit=abc",
			setup:      func(m apiMocks) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrInvalidFormat,
		},
		{
			name:       "Rota inexistente",
			method:     http.MethodGet,
			path:       "/v1/inexistente",
			setup:      func(m apiMocks) {},
			wantStatus: http.StatusNotFound,
			wantCode:   apiErrors.ErrRouteNotFound,
		},
		{
			name:       "Cron restrita a administradores",
			method:     http.MethodPost,
			path:       "/v1/cron/run/scenario-retention",
			setup:      func(m apiMocks) {},
			wantStatus: http.StatusForbidden,
			wantCode:   apiErrors.ErrInsufficientPrivilege,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler(t)
			tt.setup(m)

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, request(tt.method, tt.path, userToken, []byte(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, decodeError(t, rec).Code)
		})
	}
}

func TestHandler_Scenarios(t *testing.T) {
	h, m := newTestHandler(t)

	m.forecasting.EXPECT().
		List(gomock.Any(), userClaims, domain.ScenarioFilter{FinancialDataID: "abc123", Type: domain.ScenarioOptimistic, Limit: 10, Offset: 0}).
		Return([]*domain.Scenario{{ID: "s1", Type: domain.ScenarioOptimistic, Result: &domain.ScenarioResult{}}}, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, request(http.MethodGet, "/v1/scenarios?financial_data_id=abc123&scenario_type=otimista&limit=10", userToken, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"s1"`)
	assert.NotContains(t, rec.Body.String(), `"result"`)

	m.forecasting.EXPECT().Types().Return(forecasting.ScenarioTypeInfos())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, request(http.MethodGet, "/v1/scenario-types", userToken, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"agressivo"`)

	m.forecasting.EXPECT().Summary(gomock.Any(), userClaims, "abc123").Return(&domain.ScenarioSummary{
		Columns: []string{"realista_Jan"},
		Rows:    []domain.ScenarioSummaryRow{{Label: "Saldo Final", Values: []float64{10}}},
	}, nil)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, request(http.MethodGet, "/v1/financial-data/abc123/scenarios/summary", userToken, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"realista_Jan"`)
}

func TestHandler_Export(t *testing.T) {
	h, m := newTestHandler(t)

	m.forecasting.EXPECT().Export(gomock.Any(), userClaims, "s1").Return([]byte("xlsx"), "cenario_otimista_s1.xlsx", nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, request(http.MethodGet, "/v1/scenarios/s1/export", userToken, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "application/vnd.openxmlformats"))
	assert.Equal(t, `attachment; filename="cenario_otimista_s1.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "xlsx", rec.Body.String())
}

func TestHandler_CronStatusForAdmin(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, request(http.MethodGet, "/v1/cron/status", adminToken, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{}`, rec.Body.String())
}

func TestHandler_CronRunRejectsInvalidRetention(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := apiMocks{
		auth:        authmocks.NewMockAuthenticator(ctrl),
		extracting:  extractingmocks.NewMockExtracting(ctrl),
		forecasting: forecastingmocks.NewMockForecasting(ctrl),
	}
	m.auth.EXPECT().ValidateToken(adminToken).Return(adminClaims, nil).AnyTimes()

	// nenhuma chamada ao repositório é esperada
	scenarioRepo := repomocks.NewMockScenarioRepository(ctrl)
	cfg := &config.Config{Retention: config.Retention{CronSchedule: "0 2 * * *", Days: 0}}
	retention := scheduler.NewScenarioRetentionService(scenarioRepo, cfg)

	h := NewHandler(cfg, m.auth, m.extracting, m.forecasting, handler.CronJobServices{ScenarioRetentionService: retention})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, request(http.MethodPost, "/v1/cron/run/scenario-retention", adminToken, nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apiErrors.ErrInvalidRequest, decodeError(t, rec).Code)
}

func TestHandler_Cors(t *testing.T) {
	h, _ := newTestHandler(t)

	req := request(http.MethodOptions, "/v1/scenarios", "", nil)
	req.Header.Set("Origin", "http://localhost:3000")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
