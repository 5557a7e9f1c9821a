package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/billing-dashboard/internal/domain"
	"github.com/vfg2006/billing-dashboard/internal/usecases/reporting/mocks"
	"github.com/vfg2006/billing-dashboard/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func TestGetReport(t *testing.T) {
	stale := snapshotWithRows(2)
	stale.Stale = true
	stale.LastError = "fonte de dados indisponível: http 500"

	tests := []struct {
		name       string
		snapshot   domain.ReportSnapshot
		wantStatus int
		validate   func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:       "Relatório publicado",
			snapshot:   snapshotWithRows(2),
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var body ReportResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, "03-2024", body.Period)
				assert.Equal(t, 2, body.Total)
				assert.False(t, body.Stale)
				assert.Equal(t, "Cliente 001", body.Rows[0].Client)
				assert.Equal(t, "07/03/2024", body.Rows[1].PaymentDateDisplay)
			},
		},
		{
			name:       "Relatório desatualizado após falha",
			snapshot:   stale,
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var body ReportResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.True(t, body.Stale)
				assert.Equal(t, stale.LastError, body.LastError)
				assert.Len(t, body.Rows, 2)
			},
		},
		{
			name:       "Nenhum ciclo executado ainda",
			snapshot:   domain.ReportSnapshot{},
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Contains(t, rec.Body.String(), `"rows":[]`)
			},
		},
		{
			name:       "Falha sem relatório anterior",
			snapshot:   domain.ReportSnapshot{LastError: "fonte de dados indisponível: timeout"},
			wantStatus: http.StatusServiceUnavailable,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var body apiErrors.APIError
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, apiErrors.ErrSourceUnavailable, body.Code)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			reporter := mocks.NewMockReporter(ctrl)
			reporter.EXPECT().Latest().Return(tt.snapshot)

			rec := httptest.NewRecorder()
			GetReport(reporter).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/report", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			tt.validate(t, rec)
		})
	}
}

func TestHealthcheckHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	reporter := mocks.NewMockReporter(ctrl)
	reporter.EXPECT().Latest().Return(domain.ReportSnapshot{LastError: "timeout"})

	rec := httptest.NewRecorder()
	HealthcheckHandler(reporter).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, false, body["loaded"])
	assert.Equal(t, true, body["has_error"])
}
