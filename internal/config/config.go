package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	OutputTable = "table"
	OutputJSON  = "json"
)

type Config struct {
	App       App       `mapstructure:",squash"`
	Server    Server    `mapstructure:",squash"`
	Sheets    Sheets    `mapstructure:",squash"`
	Refresh   Refresh   `mapstructure:",squash"`
	Dashboard Dashboard `mapstructure:",squash"`
	Cors      Cors      `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
	// Timezone usado para determinar o mês corrente do relatório
	Timezone string `mapstructure:"report_timezone"`
	Output   string `mapstructure:"report_output"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Sheets struct {
	BaseURL        string        `mapstructure:"sheets_base_url"`
	SpreadsheetID  string        `mapstructure:"sheets_spreadsheet_id"`
	SheetName      string        `mapstructure:"sheets_sheet_name"`
	CSVURL         string        `mapstructure:"sheets_csv_url"`
	RequestTimeout time.Duration `mapstructure:"sheets_request_timeout"`
}

type Refresh struct {
	Interval time.Duration `mapstructure:"report_refresh_interval"`
	Enabled  bool          `mapstructure:"report_refresh_enabled"`
}

type Dashboard struct {
	Title    string `mapstructure:"dashboard_title"`
	PageSize int    `mapstructure:"dashboard_page_size"`
}

type Cors struct {
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "0.0.0.0")
	viper.SetDefault("PORT", 8050)

	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("REPORT_TIMEZONE", "")   // Vazio usa o fuso local do processo
	viper.SetDefault("REPORT_OUTPUT", "table") // Formato do cmd/report

	// Planilha publicada (exportação CSV do Google Sheets)
	viper.SetDefault("SHEETS_BASE_URL", "https://docs.google.com/spreadsheets/d")
	viper.SetDefault("SHEETS_SPREADSHEET_ID", "13Yqhezy8VIknbs0083sCwsIgqw5VIJrqCTM8_Ry_de0")
	viper.SetDefault("SHEETS_SHEET_NAME", "DEMONSTRATIVO")
	viper.SetDefault("SHEETS_CSV_URL", "")
	viper.SetDefault("SHEETS_REQUEST_TIMEOUT", "30s")

	viper.SetDefault("REPORT_REFRESH_INTERVAL", "60s") // Atualiza a cada 60 segundos
	viper.SetDefault("REPORT_REFRESH_ENABLED", true)

	viper.SetDefault("DASHBOARD_TITLE", "Relatório - Clientes")
	viper.SetDefault("DASHBOARD_PAGE_SIZE", 25)

	viper.SetDefault("CORS_ALLOWED_ORIGINS", "")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("Usando variáveis de ambiente (viper não conseguiu ler .env): ", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Cors.AllowedOrigins = compact(config.Cors.AllowedOrigins)

	if config.Sheets.CSVURL == "" {
		config.Sheets.CSVURL = BuildCSVURL(config.Sheets.BaseURL, config.Sheets.SpreadsheetID, config.Sheets.SheetName)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// BuildCSVURL monta a URL de exportação CSV (gviz) de uma aba da planilha
func BuildCSVURL(baseURL, spreadsheetID, sheetName string) string {
	query := url.Values{}
	query.Set("tqx", "out:csv")
	query.Set("sheet", sheetName)

	return fmt.Sprintf("%s/%s/gviz/tq?%s", strings.TrimRight(baseURL, "/"), spreadsheetID, query.Encode())
}

// Location retorna o fuso usado como referência do mês corrente
func (c *Config) Location() *time.Location {
	if c.App.Timezone == "" {
		return time.Local
	}

	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.Local
	}

	return loc
}

// Validate valida a configuração carregada
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Server.Port); err != nil {
		problems = append(problems, fmt.Sprintf("porta inválida '%s': deve ser numérica", c.Server.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("porta inválida %d: deve estar entre 1 e 65535", port))
	}

	if c.Sheets.CSVURL == "" {
		problems = append(problems, "URL do CSV da planilha não configurada")
	} else if parsed, err := url.Parse(c.Sheets.CSVURL); err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		problems = append(problems, fmt.Sprintf("URL do CSV inválida '%s'", c.Sheets.CSVURL))
	}

	if c.Sheets.RequestTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("timeout de requisição inválido %v", c.Sheets.RequestTimeout))
	}

	if c.Refresh.Interval < time.Second {
		problems = append(problems, fmt.Sprintf("intervalo de atualização inválido %v: mínimo de 1 segundo", c.Refresh.Interval))
	}

	if c.Dashboard.PageSize < 1 {
		problems = append(problems, fmt.Sprintf("tamanho de página inválido %d", c.Dashboard.PageSize))
	}

	if c.App.Timezone != "" {
		if _, err := time.LoadLocation(c.App.Timezone); err != nil {
			problems = append(problems, fmt.Sprintf("fuso horário desconhecido '%s'", c.App.Timezone))
		}
	}

	if c.App.Output != OutputTable && c.App.Output != OutputJSON {
		problems = append(problems, fmt.Sprintf("formato de saída inválido '%s': use table ou json", c.App.Output))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuração inválida:\n- %s", strings.Join(problems, "\n- "))
	}

	return nil
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
