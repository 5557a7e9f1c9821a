package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/billing-dashboard/internal/config"
	"github.com/vfg2006/billing-dashboard/internal/domain"
)

// Refresher executa um ciclo de atualização do relatório
type Refresher interface {
	Refresh(ctx context.Context) (domain.ReportSnapshot, error)
}

// ReportRefreshConfig representa a configuração do agendador de atualização do relatório
type ReportRefreshConfig struct {
	Interval    time.Duration
	SyncEnabled bool
}

// ReportRefreshService agenda os ciclos de atualização do relatório
type ReportRefreshService struct {
	scheduler           *gocron.Scheduler
	config              ReportRefreshConfig
	reporter            Refresher
	ctx                 context.Context
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastError           string
	runs                int
	failures            int
}

// NewReportRefreshService cria uma nova instância do agendador de atualização do relatório
func NewReportRefreshService(reporter Refresher, appConfig *config.Config) *ReportRefreshService {
	refreshConfig := ReportRefreshConfig{
		Interval:    appConfig.Refresh.Interval,
		SyncEnabled: appConfig.Refresh.Enabled,
	}

	scheduler := gocron.NewScheduler(appConfig.Location())

	logrus.WithFields(logrus.Fields{
		"interval":     refreshConfig.Interval.String(),
		"sync_enabled": refreshConfig.SyncEnabled,
	}).Info("Configuração do agendador de atualização do relatório carregada")

	return &ReportRefreshService{
		scheduler:   scheduler,
		config:      refreshConfig,
		reporter:    reporter,
		ctx:         context.Background(),
		syncRunning: false,
	}
}

// Start inicia o agendador. O primeiro ciclo roda imediatamente, mesmo com a
// atualização periódica desabilitada.
func (s *ReportRefreshService) Start(ctx context.Context) error {
	s.syncMutex.Lock()
	s.ctx = ctx
	s.syncMutex.Unlock()

	if !s.config.SyncEnabled {
		logrus.Info("Atualização periódica do relatório desabilitada por configuração, executando apenas a carga inicial")
		go s.refreshReport(ctx)
		return nil
	}

	logrus.WithField("interval", s.config.Interval.String()).Info("Iniciando agendador de atualização do relatório")

	_, err := s.scheduler.Every(s.config.Interval).StartImmediately().SingletonMode().Do(func() {
		_ = s.refreshReport(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar atualização do relatório: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de atualização do relatório")
		s.scheduler.Stop()
	}()

	return nil
}

// refreshReport executa um ciclo. Ciclos não se sobrepõem.
func (s *ReportRefreshService) refreshReport(ctx context.Context) error {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Atualização do relatório já em andamento, ignorando")
		return nil
	}
	s.syncRunning = true
	startTime := time.Now()
	s.lastSyncStartedAt = startTime
	s.syncMutex.Unlock()

	snapshot, err := s.reporter.Refresh(ctx)

	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	s.syncRunning = false
	s.runs++

	if err != nil {
		s.failures++
		s.lastError = err.Error()
		logrus.WithError(err).WithField("run_id", snapshot.RunID).Error("Ciclo de atualização do relatório falhou")
		return err
	}

	s.lastError = ""
	s.lastSyncCompletedAt = time.Now()

	logrus.WithFields(logrus.Fields{
		"run_id":   snapshot.RunID,
		"rows":     len(snapshot.Rows()),
		"duration": time.Since(startTime).String(),
	}).Info("Atualização do relatório concluída")

	return nil
}

// TriggerManualSync inicia manualmente um ciclo de atualização
func (s *ReportRefreshService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Atualização do relatório já em andamento, ignorando solicitação manual")
		return
	}
	ctx := s.ctx
	s.syncMutex.Unlock()

	logrus.Info("Iniciando atualização manual do relatório")
	go s.refreshReport(ctx)
}

// GetStatus retorna o status atual do agendador
func (s *ReportRefreshService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_running":           s.syncRunning,
		"sync_interval":          s.config.Interval.String(),
		"sync_enabled":           s.config.SyncEnabled,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_error":             s.lastError,
		"runs":                   s.runs,
		"failures":               s.failures,
	}
}
