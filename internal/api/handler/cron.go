package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/billing-dashboard/internal/scheduler"
	"github.com/vfg2006/billing-dashboard/pkg/apiErrors"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeRefresh = "refresh"
	CronJobTypeAll     = "all"
)

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	ReportRefreshService *scheduler.ReportRefreshService
}

// CronJobTypes lista os tipos que podem ser executados manualmente
var CronJobTypes = []string{CronJobTypeRefresh, CronJobTypeAll}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices, cronType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.WithField("type", cronType).Info("INIT - RunCronJob")

		switch cronType {
		case CronJobTypeRefresh, CronJobTypeAll:
			if services.ReportRefreshService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de atualização do relatório não disponível", nil)
				return
			}
			services.ReportRefreshService.TriggerManualSync()
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: refresh, all", nil)
			return
		}

		response := map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(response)
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		status := map[string]any{}
		if services.ReportRefreshService != nil {
			status[CronJobTypeRefresh] = services.ReportRefreshService.GetStatus()
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(status)
	}
}
