package sheetsdomain

import (
	"errors"
	"strings"
)

// Nomes canônicos dos campos do demonstrativo
const (
	FieldClient      = "client"
	FieldInvoiceDate = "invoice_date"
	FieldPaymentDate = "payment_date"
	FieldPlan        = "plan"
	FieldStatus      = "status"
)

var (
	ErrMissingColumns = errors.New("colunas obrigatórias ausentes na planilha")
	ErrMalformedCSV   = errors.New("CSV da planilha malformado")
	ErrEmptySheet     = errors.New("planilha sem cabeçalho")
)

// headerAliases mapeia os cabeçalhos da planilha (e os nomes exibidos no painel) para os campos canônicos
var headerAliases = map[string]string{
	"nome do cliente": FieldClient,
	"cliente":         FieldClient,
	"data nf":         FieldInvoiceDate,
	"data nota":       FieldInvoiceDate,
	"data pgto":       FieldPaymentDate,
	"data pagamento":  FieldPaymentDate,
	"plano":           FieldPlan,
	"plano de saúde":  FieldPlan,
	"situação":        FieldStatus,
	"situacao":        FieldStatus,
}

// RequiredFields são os campos sem os quais o relatório não pode ser montado
var RequiredFields = []string{FieldClient, FieldPlan, FieldInvoiceDate, FieldPaymentDate}

// CanonicalField normaliza um cabeçalho da planilha. Retorna false para colunas desconhecidas.
func CanonicalField(header string) (string, bool) {
	header = strings.ToLower(strings.Join(strings.Fields(header), " "))

	field, ok := headerAliases[header]
	return field, ok
}

// ColumnIndex guarda a posição de cada campo canônico no CSV
type ColumnIndex map[string]int

// NewColumnIndex monta o índice a partir da linha de cabeçalho.
// Se um campo aparece mais de uma vez, vale a primeira ocorrência.
func NewColumnIndex(headers []string) ColumnIndex {
	index := make(ColumnIndex)
	for i, h := range headers {
		field, ok := CanonicalField(h)
		if !ok {
			continue
		}
		if _, exists := index[field]; !exists {
			index[field] = i
		}
	}
	return index
}

// Missing retorna os campos obrigatórios ausentes
func (c ColumnIndex) Missing() []string {
	var missing []string
	for _, field := range RequiredFields {
		if _, ok := c[field]; !ok {
			missing = append(missing, field)
		}
	}
	return missing
}

// Value retorna o valor do campo na linha, vazio se a coluna não existe ou a linha é curta
func (c ColumnIndex) Value(row []string, field string) string {
	i, ok := c[field]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
