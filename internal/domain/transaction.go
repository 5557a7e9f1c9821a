package domain

// Transaction representa uma linha do demonstrativo publicado na planilha.
// As datas chegam como texto e só são interpretadas pela reconciliação.
type Transaction struct {
	Client      string `json:"cliente"`
	Plan        string `json:"plano"`
	InvoiceDate string `json:"data_nota"`
	PaymentDate string `json:"data_pagamento"`
	Status      string `json:"situacao,omitempty"`
	Row         int    `json:"linha"` // Posição da linha de dados na origem (1-based)
}
