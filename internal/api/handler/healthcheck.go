package handler

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/billing-dashboard/internal/usecases/reporting"
	"github.com/vfg2006/billing-dashboard/pkg/apiErrors"
)

// HealthcheckHandler responde à liveness. O estado do último ciclo é informativo e não altera o status HTTP.
func HealthcheckHandler(reporter reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		snapshot := reporter.Latest()

		body := map[string]any{
			"status":    "ok",
			"time":      time.Now().Format(time.RFC3339),
			"loaded":    snapshot.Report != nil,
			"stale":     snapshot.Stale,
			"run_id":    snapshot.RunID,
			"has_error": snapshot.LastError != "",
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(body); err != nil {
			logrus.WithError(err).Warn("error responding to healthcheck")
		}
	})
}

// NotFound responde caminhos desconhecidos no formato de erro da API
func NotFound() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiErrors.WriteError(w, apiErrors.ErrRouteNotFound, "Rota não encontrada", map[string]string{"path": r.URL.Path})
	})
}
