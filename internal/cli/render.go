package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/vfg2006/billing-dashboard/internal/domain"
	"github.com/vfg2006/billing-dashboard/pkg/utils"
)

// Mesmas cores do painel web
var (
	ColorPaid    = lipgloss.Color("#d4edda")
	ColorPending = lipgloss.Color("#ffe6f0")
	ColorHeader  = lipgloss.Color("#f0f0f0")
	ColorText    = lipgloss.Color("#212529")
	ColorBorder  = lipgloss.Color("#6c757d")
	ColorAlert   = lipgloss.Color("#d14d41")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Align(lipgloss.Center).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Background(ColorHeader).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Padding(0, 1)

	mutedStyle = lipgloss.NewStyle().Faint(true)

	alertStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAlert)
)

// Headers são as colunas exibidas, na ordem do painel
var Headers = []string{"Cliente", "Plano de Saúde", "Data Nota", "Data Pagamento"}

// RenderTitle renderiza o título centralizado em uma caixa
func RenderTitle(title string) string {
	return titleStyle.Render(title)
}

// RenderReport renderiza o snapshot como tabela colorida (verde pago, rosa pendente)
func RenderReport(title string, snapshot domain.ReportSnapshot) string {
	var b strings.Builder

	b.WriteString(RenderTitle(title))
	b.WriteString("\n")

	if snapshot.Report != nil {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("Período %s · %d cliente(s)", snapshot.Report.Period, len(snapshot.Report.Rows))))
		b.WriteString("\n")
	}

	if snapshot.LastError != "" {
		b.WriteString(alertStyle.Render("Falha na última atualização: " + snapshot.LastError))
		b.WriteString("\n")
	}

	rows := snapshot.Rows()
	data := make([][]string, 0, len(rows))
	for _, row := range rows {
		data = append(data, []string{row.Client, row.Plan, row.InvoiceDateDisplay, row.PaymentDateDisplay})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ColorBorder)).
		Headers(Headers...).
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if row < 0 || row >= len(rows) {
				return cellStyle
			}
			return cellStyle.Background(RowColor(rows[row]))
		})

	b.WriteString(t.Render())
	b.WriteString("\n")

	return b.String()
}

// RowColor aplica a mesma regra do painel sobre o texto da data de pagamento
func RowColor(row domain.ReportRow) lipgloss.TerminalColor {
	if row.Paid() {
		return ColorPaid
	}
	if row.PaymentDateDisplay == "" {
		return ColorPending
	}
	return lipgloss.NoColor{}
}

// RenderJSON renderiza o snapshot como JSON indentado
func RenderJSON(snapshot domain.ReportSnapshot) (string, error) {
	payload := map[string]any{
		"period":     "",
		"rows":       snapshot.Rows(),
		"stale":      snapshot.Stale,
		"last_error": snapshot.LastError,
		"run_id":     snapshot.RunID,
	}
	if snapshot.Report != nil {
		payload["period"] = snapshot.Report.Period
		payload["generated_at"] = snapshot.Report.GeneratedAt
		payload["warnings"] = snapshot.Report.Warnings
	}

	return utils.PrettyJson(payload)
}
