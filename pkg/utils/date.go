package utils

import (
	"errors"
	"strings"
	"time"
)

// ErrInvalidDate indica um texto que não pôde ser interpretado como data
var ErrInvalidDate = errors.New("data inválida")

// Formatos aceitos, sempre com o dia antes do mês. "2" e "1" aceitam um ou dois dígitos.
var dayFirstLayouts = []string{
	"2/1/2006",
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"2/1/06",
	"2-1-2006",
	"2.1.2006",
	time.DateOnly,
	time.DateTime,
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// ParseDate interpreta uma data no padrão brasileiro (dia primeiro) ou ISO.
// Texto vazio retorna nil sem erro.
func ParseDate(dateStr string) (*time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return nil, nil
	}

	for _, layout := range dayFirstLayouts {
		date, err := time.Parse(layout, dateStr)
		if err == nil {
			return &date, nil
		}
	}

	return nil, ErrInvalidDate
}

// FormatDate formata a data como DD/MM/YYYY; data ausente vira texto vazio
func FormatDate(date *time.Time) string {
	if date == nil {
		return ""
	}
	return date.Format("02/01/2006")
}

// SameMonth verifica se a data cai no mesmo mês e ano da referência
func SameMonth(date *time.Time, reference time.Time) bool {
	if date == nil {
		return false
	}
	return date.Year() == reference.Year() && date.Month() == reference.Month()
}

// Period formata o mês de referência como mm-yyyy
func Period(reference time.Time) string {
	return reference.Format("01-2006")
}
