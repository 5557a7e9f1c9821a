package sheets

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"strings"

	"github.com/pkg/errors"
	sheetsdomain "github.com/vfg2006/billing-dashboard/infrastructure/integrator/sheets/domain"
	"github.com/vfg2006/billing-dashboard/infrastructure/integrator/sheets/sheetsclient"
	"github.com/vfg2006/billing-dashboard/internal/config"
	"github.com/vfg2006/billing-dashboard/internal/domain"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_sheets.go -package=mocks

type SheetsIntegrator interface {
	FetchTransactions(ctx context.Context) ([]domain.Transaction, error)
}

type SheetsService struct {
	cfg    *config.Config
	Client sheetsclient.Client
}

func New(cfg *config.Config, client sheetsclient.Client) SheetsIntegrator {
	return &SheetsService{
		cfg:    cfg,
		Client: client,
	}
}

// FetchTransactions baixa o demonstrativo e converte as linhas para o modelo canônico
func (s *SheetsService) FetchTransactions(ctx context.Context) ([]domain.Transaction, error) {
	body, err := s.Client.GetCSV(ctx, sheetsclient.CSVExportParams{URL: s.cfg.Sheets.CSVURL})
	if err != nil {
		return nil, err
	}

	return DecodeTransactions(bytes.NewReader(body))
}

const utf8BOM = "\ufeff"

// DecodeTransactions lê o CSV aplicando o mapeamento fixo de cabeçalhos
func DecodeTransactions(r io.Reader) ([]domain.Transaction, error) {
	reader := csv.NewReader(skipBOM(r))
	reader.FieldsPerRecord = -1 // Linhas com quantidade variável de colunas são toleradas
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err == io.EOF {
		return nil, sheetsdomain.ErrEmptySheet
	}
	if err != nil {
		return nil, errors.Wrapf(sheetsdomain.ErrMalformedCSV, "cabeçalho: %v", err)
	}

	columns := sheetsdomain.NewColumnIndex(headers)
	if missing := columns.Missing(); len(missing) > 0 {
		return nil, errors.Wrapf(sheetsdomain.ErrMissingColumns, "%s", strings.Join(missing, ", "))
	}

	transactions := []domain.Transaction{}
	row := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(sheetsdomain.ErrMalformedCSV, "linha %d: %v", row+1, err)
		}

		row++
		if isBlank(record) {
			continue
		}

		transactions = append(transactions, domain.Transaction{
			Client:      columns.Value(record, sheetsdomain.FieldClient),
			Plan:        columns.Value(record, sheetsdomain.FieldPlan),
			InvoiceDate: columns.Value(record, sheetsdomain.FieldInvoiceDate),
			PaymentDate: columns.Value(record, sheetsdomain.FieldPaymentDate),
			Status:      columns.Value(record, sheetsdomain.FieldStatus),
			Row:         row,
		})
	}

	return transactions, nil
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// skipBOM descarta o BOM UTF-8 no início do stream, antes do parser de CSV
// enxergar a primeira aspa do cabeçalho
func skipBOM(r io.Reader) io.Reader {
	buffered := bufio.NewReader(r)

	prefix, err := buffered.Peek(len(utf8BOM))
	if err == nil && string(prefix) == utf8BOM {
		_, _ = buffered.Discard(len(utf8BOM))
	}

	return buffered
}
