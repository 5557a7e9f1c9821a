package reporting

import (
	"context"

	"github.com/vfg2006/billing-dashboard/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_reporting.go -package=mocks

// Reporter executa o ciclo buscar → reconciliar → publicar e expõe o último resultado
type Reporter interface {
	// Refresh executa um ciclo completo. Em caso de falha o último relatório válido é mantido.
	Refresh(ctx context.Context) (domain.ReportSnapshot, error)

	// Latest retorna o último snapshot publicado
	Latest() domain.ReportSnapshot
}
