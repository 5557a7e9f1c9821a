package handler

import (
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/billing-dashboard/internal/domain"
	"github.com/vfg2006/billing-dashboard/internal/usecases/reporting"
	"github.com/vfg2006/billing-dashboard/pkg/apiErrors"
	"github.com/vfg2006/billing-dashboard/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ReportResponse é a representação JSON do último relatório publicado
type ReportResponse struct {
	Period        string             `json:"period"`
	GeneratedAt   *time.Time         `json:"generated_at,omitempty"`
	Rows          []domain.ReportRow `json:"rows"`
	Total         int                `json:"total"`
	Warnings      int                `json:"warnings"`
	Stale         bool               `json:"stale"`
	LastError     string             `json:"last_error,omitempty"`
	LastSuccessAt *time.Time         `json:"last_success_at,omitempty"`
	RunID         string             `json:"run_id,omitempty"`
}

// GetReport retorna o último snapshot em JSON
func GetReport(reporter reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		snapshot := reporter.Latest()

		if snapshot.Report == nil && snapshot.LastError != "" {
			logger.WithField("error", snapshot.LastError).Warn("report: nenhum relatório válido disponível")
			apiErrors.WriteError(w, apiErrors.ErrSourceUnavailable, snapshot.LastError, nil)
			return
		}

		response := ReportResponse{
			Rows:      snapshot.Rows(),
			Stale:     snapshot.Stale,
			LastError: snapshot.LastError,
			RunID:     snapshot.RunID,
		}
		response.Total = len(response.Rows)

		if snapshot.Report != nil {
			response.Period = snapshot.Report.Period
			response.Warnings = snapshot.Report.Warnings
			response.GeneratedAt = &snapshot.Report.GeneratedAt
			response.LastSuccessAt = &snapshot.LastSuccessAt
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.WithError(err).Error("report: erro ao serializar o relatório")
		}
	})
}
