package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/billing-dashboard/internal/domain"
	"github.com/vfg2006/billing-dashboard/internal/usecases/reporting/mocks"
	"go.uber.org/mock/gomock"
)

func snapshotWithRows(n int) domain.ReportSnapshot {
	rows := make([]domain.ReportRow, 0, n)
	for i := 1; i <= n; i++ {
		row := domain.ReportRow{
			Client:             fmt.Sprintf("Cliente %03d", i),
			Plan:               "Unimed",
			InvoiceDateDisplay: "05/03/2024",
		}
		if i%2 == 0 {
			row.PaymentDateDisplay = "07/03/2024"
		}
		rows = append(rows, row)
	}

	return domain.ReportSnapshot{
		Report: &domain.Report{
			Period:      "03-2024",
			GeneratedAt: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
			Rows:        rows,
		},
		RunID: "abc12345",
	}
}

func renderDashboard(t *testing.T, snapshot domain.ReportSnapshot, target string) *httptest.ResponseRecorder {
	t.Helper()

	ctrl := gomock.NewController(t)
	reporter := mocks.NewMockReporter(ctrl)
	reporter.EXPECT().Latest().Return(snapshot)

	templates, err := ParseTemplates()
	require.NoError(t, err)

	opts := DashboardOptions{
		Title:           "Relatório - Clientes",
		PageSize:        25,
		RefreshInterval: time.Minute,
		Location:        time.UTC,
	}

	rec := httptest.NewRecorder()
	DashboardHandler(reporter, templates, opts).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	return rec
}

func TestDashboardHandler_RendersBothTables(t *testing.T) {
	rec := renderDashboard(t, snapshotWithRows(3), "/")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	body := rec.Body.String()
	assert.Contains(t, body, "<title>Relatório - Clientes</title>")
	assert.Contains(t, body, `id="tabela-esquerda"`)
	assert.Contains(t, body, `id="tabela-direita"`)
	assert.Contains(t, body, "Plano de Saúde")
	assert.Contains(t, body, `content="60"`)
	assert.Contains(t, body, "Período 03-2024")
	assert.Contains(t, body, "15/03/2024 10:00:00")

	// Mesmo conteúdo nas duas tabelas
	assert.Equal(t, 2, strings.Count(body, "Cliente 001"))
	assert.Equal(t, 2, strings.Count(body, `class="pago"`))
	assert.Equal(t, 4, strings.Count(body, `class="pendente"`))
	assert.NotContains(t, body, `role="alert"`)
}

func TestDashboardHandler_IndependentPagination(t *testing.T) {
	rec := renderDashboard(t, snapshotWithRows(30), "/?esquerda=2")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	// Página 2 à esquerda tem 5 linhas; a direita continua na página 1 com 25
	assert.Equal(t, 1, strings.Count(body, "Cliente 026"))
	assert.Equal(t, 1, strings.Count(body, "Cliente 001"))
	assert.Contains(t, body, "Página 2 de 2")
	assert.Contains(t, body, "Página 1 de 2")
	assert.Contains(t, body, `href="?direita=2&amp;esquerda=2"`)
	assert.Contains(t, body, `href="?esquerda=1"`)
}

func TestDashboardHandler_ErrorBannerKeepsLastReport(t *testing.T) {
	snapshot := snapshotWithRows(1)
	snapshot.Stale = true
	snapshot.LastError = "fonte de dados indisponível: timeout"

	rec := renderDashboard(t, snapshot, "/")

	body := rec.Body.String()
	assert.Contains(t, body, `role="alert"`)
	assert.Contains(t, body, "exibindo o último relatório válido")
	assert.Contains(t, body, "fonte de dados indisponível: timeout")
	assert.Contains(t, body, "Cliente 001")
}

func TestDashboardHandler_EmptyBeforeFirstSuccess(t *testing.T) {
	rec := renderDashboard(t, domain.ReportSnapshot{LastError: "connection refused"}, "/")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Equal(t, 2, strings.Count(body, "Nenhum registro"))
	assert.Contains(t, body, "connection refused")
	assert.NotContains(t, body, "exibindo o último relatório válido")
}

func TestRowClass(t *testing.T) {
	tests := []struct {
		name    string
		payment string
		want    string
	}{
		{name: "pagamento com barra", payment: "07/03/2024", want: RowClassPaid},
		{name: "pagamento vazio", payment: "", want: RowClassPending},
		{name: "qualquer texto com barra conta como pago", payment: "n/d", want: RowClassPaid},
		{name: "outro texto", payment: "-", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RowClass(domain.ReportRow{PaymentDateDisplay: tt.payment}))
		})
	}
}

func TestPaginate(t *testing.T) {
	rows := classifyRows(snapshotWithRows(7).Rows())

	tests := []struct {
		name     string
		query    string
		wantPage int
		wantLen  int
	}{
		{name: "sem parâmetro", query: "", wantPage: 1, wantLen: 3},
		{name: "última página", query: "esquerda=3", wantPage: 3, wantLen: 1},
		{name: "além do fim", query: "esquerda=9", wantPage: 3, wantLen: 1},
		{name: "inválido", query: "esquerda=abc", wantPage: 1, wantLen: 3},
		{name: "negativo", query: "esquerda=-1", wantPage: 1, wantLen: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
			table := paginate(LeftTableID, LeftPageParam, rows, req.URL.Query(), 3)

			assert.Equal(t, tt.wantPage, table.Page)
			assert.Equal(t, 3, table.Pages)
			assert.Len(t, table.Rows, tt.wantLen)
		})
	}

	empty := paginate(LeftTableID, LeftPageParam, nil, nil, 25)
	assert.Equal(t, 1, empty.Pages)
	assert.Empty(t, empty.Rows)
}
