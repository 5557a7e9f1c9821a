package handler

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/vfg2006/billing-dashboard/internal/api/handler/router"
	"github.com/vfg2006/billing-dashboard/internal/usecases/reporting"
)

func Healthcheck(reporter reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(reporter),
		},
	}
}

func Dashboard(reporter reporting.Reporter, templates *template.Template, opts DashboardOptions) []router.Route {
	return []router.Route{
		{
			Path:    "/",
			Method:  http.MethodGet,
			Handler: DashboardHandler(reporter, templates, opts),
		},
	}
}

func Report(reporter reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/report",
			Method:  http.MethodGet,
			Handler: GetReport(reporter),
		},
	}
}

// CronJobs registra uma rota estática por tipo, já que o httprouter não aceita
// um parâmetro no mesmo segmento de /v1/cron/status
func CronJobs(services CronJobServices) []router.Route {
	routes := []router.Route{
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}

	for _, cronType := range CronJobTypes {
		routes = append(routes, router.Route{
			Path:    fmt.Sprintf("/v1/cron/%s/run", cronType),
			Method:  http.MethodPost,
			Handler: RunCronJob(services, cronType),
		})
	}

	return routes
}
