package handler

import (
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/vfg2006/billing-dashboard/internal/domain"
	"github.com/vfg2006/billing-dashboard/internal/usecases/reporting"
	"github.com/vfg2006/billing-dashboard/pkg/log"
	"github.com/vfg2006/billing-dashboard/web"
)

const (
	LeftTableID     = "tabela-esquerda"
	RightTableID    = "tabela-direita"
	LeftPageParam   = "esquerda"
	RightPageParam  = "direita"
	RowClassPaid    = "pago"
	RowClassPending = "pendente"
)

// DashboardOptions controla a apresentação da página
type DashboardOptions struct {
	Title           string
	PageSize        int
	RefreshInterval time.Duration
	Location        *time.Location
}

type dashboardRow struct {
	domain.ReportRow
	Class string
}

type dashboardTable struct {
	ID      string
	Rows    []dashboardRow
	Page    int
	Pages   int
	PrevURL string
	NextURL string
}

type dashboardPage struct {
	Title          string
	RefreshSeconds int
	Period         string
	GeneratedAt    string
	Stale          bool
	LastError      string
	Left           dashboardTable
	Right          dashboardTable
}

// ParseTemplates carrega os templates embutidos no binário
func ParseTemplates() (*template.Template, error) {
	return template.ParseFS(web.TemplatesFS, "templates/*.html")
}

// DashboardHandler renderiza as duas tabelas do relatório a partir do último snapshot
func DashboardHandler(reporter reporting.Reporter, templates *template.Template, opts DashboardOptions) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		snapshot := reporter.Latest()
		rows := classifyRows(snapshot.Rows())
		query := r.URL.Query()

		page := dashboardPage{
			Title:          opts.Title,
			RefreshSeconds: refreshSeconds(opts.RefreshInterval),
			Stale:          snapshot.Stale,
			LastError:      snapshot.LastError,
			Left:           paginate(LeftTableID, LeftPageParam, rows, query, opts.PageSize),
			Right:          paginate(RightTableID, RightPageParam, rows, query, opts.PageSize),
		}

		if snapshot.Report != nil {
			page.Period = snapshot.Report.Period
			generatedAt := snapshot.Report.GeneratedAt
			if opts.Location != nil {
				generatedAt = generatedAt.In(opts.Location)
			}
			page.GeneratedAt = generatedAt.Format("02/01/2006 15:04:05")
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := templates.ExecuteTemplate(w, "dashboard_page", page); err != nil {
			logger.WithError(err).Error("dashboard: erro ao renderizar a página")
			http.Error(w, "Erro ao renderizar o painel", http.StatusInternalServerError)
		}
	})
}

// RowClass decide a cor da linha a partir do texto da data de pagamento
func RowClass(row domain.ReportRow) string {
	if row.Paid() {
		return RowClassPaid
	}
	if row.PaymentDateDisplay == "" {
		return RowClassPending
	}
	return ""
}

func classifyRows(rows []domain.ReportRow) []dashboardRow {
	out := make([]dashboardRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, dashboardRow{ReportRow: row, Class: RowClass(row)})
	}
	return out
}

// paginate recorta a página pedida em ?param=N. Valores inválidos ou fora do intervalo são ajustados.
func paginate(id, param string, rows []dashboardRow, query url.Values, pageSize int) dashboardTable {
	if pageSize < 1 {
		pageSize = len(rows)
		if pageSize == 0 {
			pageSize = 1
		}
	}

	pages := (len(rows) + pageSize - 1) / pageSize
	if pages < 1 {
		pages = 1
	}

	page, err := strconv.Atoi(query.Get(param))
	if err != nil || page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}

	start := (page - 1) * pageSize
	end := min(start+pageSize, len(rows))

	table := dashboardTable{
		ID:    id,
		Rows:  rows[start:end],
		Page:  page,
		Pages: pages,
	}

	if page > 1 {
		table.PrevURL = pageURL(query, param, page-1)
	}
	if page < pages {
		table.NextURL = pageURL(query, param, page+1)
	}

	return table
}

func pageURL(query url.Values, param string, page int) string {
	values := url.Values{}
	for k, v := range query {
		values[k] = v
	}
	values.Set(param, strconv.Itoa(page))

	return "?" + values.Encode()
}

func refreshSeconds(interval time.Duration) int {
	seconds := int(interval.Seconds())
	if seconds < 1 {
		return 60
	}
	return seconds
}
