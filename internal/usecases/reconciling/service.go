package reconciling

import (
	"time"

	"github.com/vfg2006/billing-dashboard/internal/domain"
	"github.com/vfg2006/billing-dashboard/pkg/utils"
)

// Result é o relatório do mês junto com os avisos de datas não interpretadas
type Result struct {
	Report   domain.Report
	Warnings []ParseWarning
}

// Reconcile monta o relatório do mês de referência: última nota de cada cliente no mês,
// acompanhada do último pagamento do cliente no mesmo mês, se houver.
// Não depende de estado externo: a mesma entrada gera sempre a mesma saída.
func Reconcile(records []domain.Transaction, reference time.Time) Result {
	parsed, warnings := ParseRecords(records)

	invoices := LatestByClient(FilterByMonth(parsed, InvoiceDate, reference), InvoiceDate)
	payments := LatestByClient(FilterByMonth(parsed, PaymentDate, reference), PaymentDate)

	rows := FormatRows(LeftJoinPayments(invoices, payments))

	return Result{
		Report: domain.Report{
			Period:        utils.Period(reference),
			ReferenceDate: reference,
			Rows:          rows,
			Warnings:      len(warnings),
		},
		Warnings: warnings,
	}
}
