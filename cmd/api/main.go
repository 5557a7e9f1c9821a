package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/billing-dashboard/infrastructure/integrator/sheets"
	"github.com/vfg2006/billing-dashboard/infrastructure/integrator/sheets/sheetsclient"
	"github.com/vfg2006/billing-dashboard/internal/api"
	"github.com/vfg2006/billing-dashboard/internal/config"
	"github.com/vfg2006/billing-dashboard/internal/scheduler"
	"github.com/vfg2006/billing-dashboard/internal/usecases/reporting"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sheetsClient := sheetsclient.NewClient(cfg)
	sheetsIntegrator := sheets.New(cfg, sheetsClient)

	reportService := reporting.NewService(cfg, sheetsIntegrator)

	// O primeiro ciclo roda imediatamente ao iniciar o agendador
	reportRefreshService := scheduler.NewReportRefreshService(reportService, cfg)

	if err := reportRefreshService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de atualização do relatório")
	} else {
		logrus.Info("Agendador de atualização do relatório iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		reportService,
		reportRefreshService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}
