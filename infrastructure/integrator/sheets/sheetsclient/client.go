package sheetsclient

import (
	"context"
	"net/http"
	"time"

	"github.com/vfg2006/billing-dashboard/internal/config"
)

//go:generate mockgen -source=client.go -destination=mocks/mock_client.go -package=mocks

type Client interface {
	GetCSV(ctx context.Context, params CSVExportParams) ([]byte, error)
}

type SheetsClient struct {
	httpClient *http.Client
	config     *config.Config
}

// NewClient cria o cliente HTTP da exportação CSV da planilha publicada
func NewClient(cfg *config.Config) Client {
	timeout := cfg.Sheets.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &SheetsClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		config: cfg,
	}
}
