package sheets

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sheetsdomain "github.com/vfg2006/billing-dashboard/infrastructure/integrator/sheets/domain"
	"github.com/vfg2006/billing-dashboard/infrastructure/integrator/sheets/sheetsclient"
	"github.com/vfg2006/billing-dashboard/infrastructure/integrator/sheets/sheetsclient/mocks"
	"github.com/vfg2006/billing-dashboard/internal/config"
	"github.com/vfg2006/billing-dashboard/internal/domain"
	"go.uber.org/mock/gomock"
)

const demonstrativo = `"NOME DO CLIENTE","PLANO","DATA NF","DATA PGTO","SITUAÇÃO","OBS"
"Ana Souza","Unimed","05/03/2024","","ABERTO","x"
"Bruno Lima","Amil","20/03/2024","22/03/2024","PAGO",""
"","","","","",""
"Carla Dias","Bradesco","31/02/2024","","ABERTO",""
`

func TestSheetsService_FetchTransactions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := &config.Config{Sheets: config.Sheets{CSVURL: "https://example.com/export.csv"}}
	mockClient := mocks.NewMockClient(ctrl)
	mockClient.EXPECT().
		GetCSV(gomock.Any(), sheetsclient.CSVExportParams{URL: "https://example.com/export.csv"}).
		Return([]byte(demonstrativo), nil)

	service := New(cfg, mockClient)

	transactions, err := service.FetchTransactions(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []domain.Transaction{
		{Client: "Ana Souza", Plan: "Unimed", InvoiceDate: "05/03/2024", PaymentDate: "", Status: "ABERTO", Row: 1},
		{Client: "Bruno Lima", Plan: "Amil", InvoiceDate: "20/03/2024", PaymentDate: "22/03/2024", Status: "PAGO", Row: 2},
		{Client: "Carla Dias", Plan: "Bradesco", InvoiceDate: "31/02/2024", PaymentDate: "", Status: "ABERTO", Row: 4},
	}, transactions)
}

func TestSheetsService_FetchTransactions_TransportError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	transportErr := errors.New("connection refused")
	mockClient := mocks.NewMockClient(ctrl)
	mockClient.EXPECT().GetCSV(gomock.Any(), gomock.Any()).Return(nil, transportErr)

	service := New(&config.Config{}, mockClient)

	_, err := service.FetchTransactions(context.Background())
	assert.ErrorIs(t, err, transportErr)
}

func TestDecodeTransactions(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []domain.Transaction
		wantErr error
	}{
		{
			name:  "nomes de exibição e BOM no cabeçalho",
			input: "\ufeffCliente,Plano de Saúde,Data Nota,Data Pagamento\nAna,Unimed,05/03/2024,06/03/2024\n",
			want: []domain.Transaction{
				{Client: "Ana", Plan: "Unimed", InvoiceDate: "05/03/2024", PaymentDate: "06/03/2024", Row: 1},
			},
		},
		{
			name:  "BOM antes de cabeçalho entre aspas",
			input: "\ufeff\"NOME DO CLIENTE\",\"PLANO\",\"DATA NF\",\"DATA PGTO\"\n\"Ana\",\"Unimed\",\"05/03/2024\",\"\"\n",
			want: []domain.Transaction{
				{Client: "Ana", Plan: "Unimed", InvoiceDate: "05/03/2024", Row: 1},
			},
		},
		{
			name:    "somente BOM",
			input:   "\ufeff",
			wantErr: sheetsdomain.ErrEmptySheet,
		},
		{
			name:  "cabeçalhos com caixa e espaços variados",
			input: "  nome  do cliente ,plano,Data nf,DATA PGTO\n Ana ,Unimed, 05/03/2024 ,\n",
			want: []domain.Transaction{
				{Client: "Ana", Plan: "Unimed", InvoiceDate: "05/03/2024", Row: 1},
			},
		},
		{
			name:  "linha curta completa com vazio",
			input: "NOME DO CLIENTE,PLANO,DATA NF,DATA PGTO,SITUAÇÃO\nAna,Unimed\n",
			want: []domain.Transaction{
				{Client: "Ana", Plan: "Unimed", Row: 1},
			},
		},
		{
			name:  "somente cabeçalho",
			input: "NOME DO CLIENTE,PLANO,DATA NF,DATA PGTO\n",
			want:  []domain.Transaction{},
		},
		{
			name:    "coluna obrigatória ausente",
			input:   "NOME DO CLIENTE,PLANO,DATA NF\nAna,Unimed,05/03/2024\n",
			wantErr: sheetsdomain.ErrMissingColumns,
		},
		{
			name:    "conteúdo não tabular",
			input:   "<html><body>Sign in</body></html>\n",
			wantErr: sheetsdomain.ErrMissingColumns,
		},
		{
			name:    "planilha vazia",
			input:   "",
			wantErr: sheetsdomain.ErrEmptySheet,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeTransactions(strings.NewReader(tt.input))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeTransactions_MissingColumnsNamesFields(t *testing.T) {
	_, err := DecodeTransactions(strings.NewReader("NOME DO CLIENTE,DATA NF\nAna,05/03/2024\n"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "plan")
	assert.Contains(t, err.Error(), "payment_date")
}
