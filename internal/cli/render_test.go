package cli

import (
	"encoding/json"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/billing-dashboard/internal/domain"
)

func sampleSnapshot() domain.ReportSnapshot {
	return domain.ReportSnapshot{
		Report: &domain.Report{
			Period: "03-2024",
			Rows: []domain.ReportRow{
				{Client: "Ana", Plan: "Unimed", InvoiceDateDisplay: "05/03/2024", PaymentDateDisplay: "07/03/2024"},
				{Client: "Bruno", Plan: "Amil", InvoiceDateDisplay: "10/03/2024"},
			},
			Warnings: 1,
		},
		RunID: "abc12345",
	}
}

func TestRenderReport(t *testing.T) {
	out := RenderReport("Relatório - Clientes", sampleSnapshot())

	assert.Contains(t, out, "Relatório - Clientes")
	assert.Contains(t, out, "Período 03-2024")
	for _, header := range Headers {
		assert.Contains(t, out, header)
	}
	assert.Contains(t, out, "Ana")
	assert.Contains(t, out, "07/03/2024")
	assert.Contains(t, out, "Bruno")
	assert.NotContains(t, out, "Falha na última atualização")
}

func TestRenderReport_WithError(t *testing.T) {
	out := RenderReport("Relatório", domain.ReportSnapshot{LastError: "timeout"})

	assert.Contains(t, out, "Falha na última atualização: timeout")
	assert.Contains(t, out, "Cliente")
}

func TestRowColor(t *testing.T) {
	assert.Equal(t, lipgloss.TerminalColor(ColorPaid), RowColor(domain.ReportRow{PaymentDateDisplay: "07/03/2024"}))
	assert.Equal(t, lipgloss.TerminalColor(ColorPending), RowColor(domain.ReportRow{}))
	assert.Equal(t, lipgloss.TerminalColor(lipgloss.NoColor{}), RowColor(domain.ReportRow{PaymentDateDisplay: "-"}))
}

func TestRenderJSON(t *testing.T) {
	out, err := RenderJSON(sampleSnapshot())
	require.NoError(t, err)

	var body struct {
		Period string             `json:"period"`
		Rows   []domain.ReportRow `json:"rows"`
		RunID  string             `json:"run_id"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.Equal(t, "03-2024", body.Period)
	assert.Len(t, body.Rows, 2)
	assert.Equal(t, "Ana", body.Rows[0].Client)
	assert.Equal(t, "abc12345", body.RunID)
}
