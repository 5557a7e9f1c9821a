package reporting

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/vfg2006/billing-dashboard/infrastructure/integrator/sheets"
	"github.com/vfg2006/billing-dashboard/internal/config"
	"github.com/vfg2006/billing-dashboard/internal/domain"
	"github.com/vfg2006/billing-dashboard/internal/usecases/reconciling"
	"github.com/vfg2006/billing-dashboard/pkg/log"
	"github.com/vfg2006/billing-dashboard/pkg/utils"
	"golang.org/x/sync/singleflight"
)

const refreshKey = "refresh"

// Service mantém em memória o último relatório publicado
type Service struct {
	source   sheets.SheetsIntegrator
	location *time.Location
	now      func() time.Time
	newID    func() (string, error)

	group    singleflight.Group
	mu       sync.RWMutex
	snapshot domain.ReportSnapshot
}

var _ Reporter = (*Service)(nil)

// NewService cria o serviço de relatórios
func NewService(cfg *config.Config, source sheets.SheetsIntegrator) *Service {
	return &Service{
		source:   source,
		location: cfg.Location(),
		now:      time.Now,
		newID:    utils.GenerateID,
	}
}

// WithClock substitui o relógio usado como data de referência
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Refresh executa um ciclo. Chamadas concorrentes compartilham o mesmo ciclo em andamento.
func (s *Service) Refresh(ctx context.Context) (domain.ReportSnapshot, error) {
	v, err, shared := s.group.Do(refreshKey, func() (any, error) {
		return s.refresh(ctx)
	})
	if shared {
		log.ForContext(ctx).Debug("reporting: ciclo compartilhado com chamada concorrente")
	}

	return v.(domain.ReportSnapshot), err
}

// runID nunca retorna vazio: sem gerador usa o ID de correlação ou o horário do ciclo
func (s *Service) runID(ctx context.Context) string {
	id, err := s.newID()
	if err == nil && id != "" {
		return id
	}

	fallback := log.GetCorrelationID(ctx)
	if fallback == "" {
		fallback = fmt.Sprintf("run-%d", time.Now().UnixNano())
	}
	log.ForContext(ctx).WithError(err).Warnf("reporting: falha ao gerar run_id, usando %s", fallback)

	return fallback
}

func (s *Service) refresh(ctx context.Context) (domain.ReportSnapshot, error) {
	runID := s.runID(ctx)

	logger := log.ForContext(ctx).WithField(log.RunIDField, runID)
	reference := s.now().In(s.location)
	startTime := time.Now()

	records, err := s.source.FetchTransactions(ctx)
	if err != nil {
		srcErr := NewSourceUnavailableError(err, runID)
		logger.WithError(err).Error("reporting: erro ao buscar o demonstrativo, mantendo último relatório")

		return s.publishFailure(runID, reference, srcErr), srcErr
	}

	result := reconciling.Reconcile(records, reference)
	for _, warning := range result.Warnings {
		logger.WithFields(log.Fields{
			"report_row":    warning.Row,
			"report_field":  warning.Field,
			"report_value":  warning.Value,
			"report_client": warning.Client,
		}).Warn("reporting: data não interpretada, tratada como ausente")
	}

	report := result.Report
	report.GeneratedAt = s.now().In(s.location)

	snapshot := s.publish(domain.ReportSnapshot{
		Report:        &report,
		RunID:         runID,
		LastAttemptAt: reference,
		LastSuccessAt: reference,
	})

	logger.WithFields(log.Fields{
		"report_period":       report.Period,
		"report_transactions": len(records),
		"report_rows":         len(report.Rows),
		"report_warnings":     report.Warnings,
		"duration_ms":         time.Since(startTime).Milliseconds(),
	}).Info("reporting: relatório publicado com sucesso")

	return snapshot, nil
}

func (s *Service) publish(snapshot domain.ReportSnapshot) domain.ReportSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot = snapshot
	return s.snapshot
}

func (s *Service) publishFailure(runID string, attemptAt time.Time, err error) domain.ReportSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.RunID = runID
	s.snapshot.LastAttemptAt = attemptAt
	s.snapshot.LastError = err.Error()
	s.snapshot.Stale = s.snapshot.Report != nil

	return s.snapshot
}

// Latest retorna o último snapshot publicado
func (s *Service) Latest() domain.ReportSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshot
}
