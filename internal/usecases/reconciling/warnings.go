package reconciling

import "fmt"

// Campos de data que podem gerar aviso de interpretação
const (
	FieldInvoiceDate = "data_nota"
	FieldPaymentDate = "data_pagamento"
)

// ParseWarning registra uma data que não pôde ser interpretada. Não é fatal:
// o campo passa a ser tratado como ausente.
type ParseWarning struct {
	Row    int
	Client string
	Field  string
	Value  string
}

func (w ParseWarning) Error() string {
	return fmt.Sprintf("linha %d (%s): %s inválida %q", w.Row, w.Client, w.Field, w.Value)
}
