package reconciling

import (
	"sort"
	"time"

	"github.com/vfg2006/billing-dashboard/internal/domain"
	"github.com/vfg2006/billing-dashboard/pkg/utils"
)

// ParsedTransaction é uma transação com as datas já interpretadas (nil = ausente)
type ParsedTransaction struct {
	domain.Transaction
	Invoice *time.Time
	Payment *time.Time
}

// DateSelector escolhe qual data da transação é usada por um passo
type DateSelector func(ParsedTransaction) *time.Time

func InvoiceDate(t ParsedTransaction) *time.Time { return t.Invoice }

func PaymentDate(t ParsedTransaction) *time.Time { return t.Payment }

// ParseRecords interpreta as datas de cada transação. Datas inválidas viram ausentes
// e geram um aviso; datas vazias são ausentes sem aviso.
func ParseRecords(records []domain.Transaction) ([]ParsedTransaction, []ParseWarning) {
	parsed := make([]ParsedTransaction, 0, len(records))
	var warnings []ParseWarning

	for _, record := range records {
		invoice, err := utils.ParseDate(record.InvoiceDate)
		if err != nil {
			warnings = append(warnings, newWarning(record, FieldInvoiceDate, record.InvoiceDate))
		}

		payment, err := utils.ParseDate(record.PaymentDate)
		if err != nil {
			warnings = append(warnings, newWarning(record, FieldPaymentDate, record.PaymentDate))
		}

		parsed = append(parsed, ParsedTransaction{
			Transaction: record,
			Invoice:     invoice,
			Payment:     payment,
		})
	}

	return parsed, warnings
}

func newWarning(record domain.Transaction, field, value string) ParseWarning {
	return ParseWarning{
		Row:    record.Row,
		Client: record.Client,
		Field:  field,
		Value:  value,
	}
}

// FilterByMonth mantém as transações cuja data selecionada existe e cai no mês/ano de referência
func FilterByMonth(records []ParsedTransaction, date DateSelector, reference time.Time) []ParsedTransaction {
	filtered := make([]ParsedTransaction, 0, len(records))
	for _, record := range records {
		if utils.SameMonth(date(record), reference) {
			filtered = append(filtered, record)
		}
	}
	return filtered
}

// LatestByClient ordena pela data selecionada (empate pela linha de origem) e mantém
// a última ocorrência de cada cliente, na ordem resultante da ordenação.
// Registros sem a data selecionada devem ter sido removidos antes.
func LatestByClient(records []ParsedTransaction, date DateSelector) []ParsedTransaction {
	sorted := make([]ParsedTransaction, len(records))
	copy(sorted, records)

	sort.SliceStable(sorted, func(i, j int) bool {
		di, dj := date(sorted[i]), date(sorted[j])
		if !di.Equal(*dj) {
			return di.Before(*dj)
		}
		return sorted[i].Row < sorted[j].Row
	})

	last := make(map[string]int, len(sorted))
	for i, record := range sorted {
		last[record.Client] = i
	}

	latest := make([]ParsedTransaction, 0, len(last))
	for i, record := range sorted {
		if last[record.Client] == i {
			latest = append(latest, record)
		}
	}

	return latest
}

// LeftJoinPayments combina a última nota de cada cliente com o último pagamento do mesmo cliente.
// Todo cliente com nota aparece uma vez; clientes só com pagamento ficam de fora.
func LeftJoinPayments(invoices, payments []ParsedTransaction) []domain.ReportRow {
	paymentByClient := make(map[string]*time.Time, len(payments))
	for _, payment := range payments {
		paymentByClient[payment.Client] = payment.Payment
	}

	rows := make([]domain.ReportRow, 0, len(invoices))
	for _, invoice := range invoices {
		rows = append(rows, domain.ReportRow{
			Client:      invoice.Client,
			Plan:        invoice.Plan,
			InvoiceDate: invoice.Invoice,
			PaymentDate: paymentByClient[invoice.Client],
			Status:      invoice.Status,
		})
	}

	return rows
}

// FormatRows preenche as datas de exibição (DD/MM/YYYY, vazio quando ausente)
func FormatRows(rows []domain.ReportRow) []domain.ReportRow {
	for i := range rows {
		rows[i].InvoiceDateDisplay = utils.FormatDate(rows[i].InvoiceDate)
		rows[i].PaymentDateDisplay = utils.FormatDate(rows[i].PaymentDate)
	}
	return rows
}
