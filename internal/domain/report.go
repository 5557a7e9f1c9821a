package domain

import (
	"strings"
	"time"
)

// DisplayDateLayout é o formato de exibição das datas no painel (DD/MM/YYYY)
const DisplayDateLayout = "02/01/2006"

// ReportRow representa a última nota do mês de um cliente com o respectivo pagamento
type ReportRow struct {
	Client             string     `json:"cliente"`
	Plan               string     `json:"plano"`
	InvoiceDate        *time.Time `json:"-"`
	PaymentDate        *time.Time `json:"-"`
	InvoiceDateDisplay string     `json:"data_nota"`
	PaymentDateDisplay string     `json:"data_pagamento"`
	Status             string     `json:"situacao,omitempty"`
}

// Paid indica se a linha tem pagamento no mês. Opera sobre o texto já formatado.
func (r ReportRow) Paid() bool {
	return strings.Contains(r.PaymentDateDisplay, "/")
}

// Report é o relatório mensal calculado em um ciclo de atualização
type Report struct {
	Period        string      `json:"period"` // Período no formato mm-yyyy
	ReferenceDate time.Time   `json:"reference_date"`
	GeneratedAt   time.Time   `json:"generated_at"`
	Rows          []ReportRow `json:"rows"`
	Warnings      int         `json:"warnings"`
}

// ReportSnapshot é o último relatório publicado junto com o estado do ciclo
type ReportSnapshot struct {
	Report        *Report   `json:"report,omitempty"`
	RunID         string    `json:"run_id,omitempty"`
	LastError     string    `json:"last_error,omitempty"`
	LastAttemptAt time.Time `json:"last_attempt_at"`
	LastSuccessAt time.Time `json:"last_success_at"`
	Stale         bool      `json:"stale"`
}

// Rows retorna as linhas publicadas, ou uma lista vazia se ainda não houve sucesso
func (s ReportSnapshot) Rows() []ReportRow {
	if s.Report == nil {
		return []ReportRow{}
	}
	return s.Report.Rows
}
