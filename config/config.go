package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config es la configuración completa de SkyForge.
type Config struct {
	Forge   ForgeConfig   `yaml:"forge"`
	Sales   SalesConfig   `yaml:"sales"`
	API     APIConfig     `yaml:"api"`
	Storage StorageConfig `yaml:"storage"`
	Export  ExportConfig  `yaml:"export"`
	Log     LogConfig     `yaml:"log"`
}

// ForgeConfig controla el ciclo de precios/profits.
type ForgeConfig struct {
	RefreshSeconds int          `yaml:"refresh_seconds"`
	TableLength    int          `yaml:"table_length"` // filas mostradas en consola
	Budget         float64      `yaml:"budget"`       // coste máximo por item; 0 = sin límite
	Unlock         UnlockConfig `yaml:"unlock"`
}

// UnlockConfig filtra items por los requisitos del jugador (tier de Heart of
// the Mountain, collections). Deshabilitado no filtra nada.
type UnlockConfig struct {
	Enabled bool           `yaml:"enabled"`
	Levels  map[string]int `yaml:"levels"` // requisito → nivel del jugador
}

// SalesConfig controla el loop de atribución de ventas del AH.
type SalesConfig struct {
	PollSeconds int `yaml:"poll_seconds"`
	// TTLMultiplier define la edad máxima del correlation cache como
	// múltiplo del refresh interval de precios.
	TTLMultiplier int `yaml:"ttl_multiplier"`
}

// APIConfig contiene el base URL de la API de Hypixel.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	Key     string `yaml:"key"` // opcional; normalmente via HYPIXEL_API_KEY
}

// StorageConfig controla dónde se persisten recetas y ventas.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // ruta al archivo SQLite, o ":memory:"
}

// ExportConfig controla el export JSON por ciclo.
type ExportConfig struct {
	Path string `yaml:"path"` // vacío = deshabilitado
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el archivo .env si existe.
// Las variables de entorno sobreescriben el YAML para las keys que correspondan.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	return &cfg, nil
}

// RefreshInterval devuelve el intervalo del ciclo de precios como time.Duration.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.Forge.RefreshSeconds) * time.Second
}

// SalesPollInterval devuelve el intervalo del loop de ventas como time.Duration.
func (c *Config) SalesPollInterval() time.Duration {
	return time.Duration(c.Sales.PollSeconds) * time.Second
}

// CacheTTL devuelve la edad máxima de las entradas del correlation cache:
// varias veces el refresh interval, para cubrir ventas que tardan en aparecer
// en el feed de ended listings.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Sales.TTLMultiplier) * c.RefreshInterval()
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están presentes.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("HYPIXEL_API_KEY"); v != "" {
		cfg.API.Key = v
	}
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
func setDefaults(cfg *Config) {
	if cfg.Forge.RefreshSeconds <= 0 {
		cfg.Forge.RefreshSeconds = 120
	}
	if cfg.Forge.TableLength <= 0 {
		cfg.Forge.TableLength = 15
	}
	if cfg.Sales.PollSeconds <= 0 {
		cfg.Sales.PollSeconds = 60
	}
	if cfg.Sales.TTLMultiplier <= 0 {
		cfg.Sales.TTLMultiplier = 10
	}
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "https://api.hypixel.net/v2/skyblock"
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "skyforge.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
