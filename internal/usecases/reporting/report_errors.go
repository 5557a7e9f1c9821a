package reporting

import (
	"errors"
	"fmt"
)

// ErrSourceUnavailable indica que o ciclo não conseguiu obter o demonstrativo
var ErrSourceUnavailable = errors.New("fonte de dados indisponível")

// SourceUnavailableError é fatal apenas para o ciclo em que ocorreu
type SourceUnavailableError struct {
	Err   error  // Erro de transporte ou de estrutura do CSV
	RunID string // Ciclo de atualização que falhou
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("%s: %v", ErrSourceUnavailable.Error(), e.Err)
}

// Unwrap expõe tanto o sentinel quanto a causa para errors.Is/As
func (e *SourceUnavailableError) Unwrap() []error {
	return []error{ErrSourceUnavailable, e.Err}
}

func NewSourceUnavailableError(err error, runID string) *SourceUnavailableError {
	return &SourceUnavailableError{
		Err:   err,
		RunID: runID,
	}
}
