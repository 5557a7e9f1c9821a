package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/billing-dashboard/infrastructure/integrator/sheets"
	"github.com/vfg2006/billing-dashboard/infrastructure/integrator/sheets/sheetsclient"
	"github.com/vfg2006/billing-dashboard/internal/cli"
	"github.com/vfg2006/billing-dashboard/internal/config"
	"github.com/vfg2006/billing-dashboard/internal/usecases/reporting"
)

// Executa um único ciclo buscar → reconciliar e imprime o relatório no terminal
func main() {
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Sheets.RequestTimeout+5*time.Second)
	defer cancel()

	reportService := reporting.NewService(cfg, sheets.New(cfg, sheetsclient.NewClient(cfg)))

	snapshot, err := reportService.Refresh(ctx)
	if err != nil {
		logrus.WithError(err).Error("Erro ao gerar o relatório")
		os.Exit(1)
	}

	switch cfg.App.Output {
	case config.OutputJSON:
		out, err := cli.RenderJSON(snapshot)
		if err != nil {
			logrus.WithError(err).Fatal("Erro ao serializar o relatório")
		}
		fmt.Println(out)
	default:
		fmt.Print(cli.RenderReport(cfg.Dashboard.Title, snapshot))
	}
}
