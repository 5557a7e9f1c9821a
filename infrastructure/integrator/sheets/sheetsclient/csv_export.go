package sheetsclient

import (
	"context"

	"github.com/pkg/errors"
	"github.com/vfg2006/billing-dashboard/pkg/utils"
)

type CSVExportParams struct {
	URL string
}

func (c *SheetsClient) GetCSV(ctx context.Context, params CSVExportParams) ([]byte, error) {
	url := params.URL
	if url == "" {
		url = c.config.Sheets.CSVURL
	}

	body, err := utils.MakeRequest(ctx, c.httpClient, url, map[string]string{
		"Accept": "text/csv",
	})
	if err != nil {
		return nil, errors.Wrap(err, "erro ao baixar o CSV da planilha")
	}

	return body, nil
}
