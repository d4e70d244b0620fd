package config

import (
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "agricli/internal/errors"
)

// Config represents the complete application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Security SecurityConfig `yaml:"security" envconfig:"SECURITY"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Pipeline PipelineConfig `yaml:"pipeline" envconfig:"PIPELINE"`
	Store    StoreConfig    `yaml:"store" envconfig:"STORE"`
}

// ServerConfig contains HTTP server configuration for the dashboard.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" validate:"gt=0,lte=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
}

// SecurityConfig contains security-related configuration. The boolean knobs
// are phrased as Disable* so the zero value keeps the protections on.
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS"`
	DisableCORS    bool            `yaml:"disable_cors" envconfig:"DISABLE_CORS"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration.
type RateLimitConfig struct {
	Disabled bool    `yaml:"disabled" envconfig:"DISABLED"`
	RPS      float64 `yaml:"rps" envconfig:"RPS" validate:"gte=0"`
	Burst    int     `yaml:"burst" envconfig:"BURST" validate:"gte=0"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PipelineConfig controls the cleaning pipeline behavior.
type PipelineConfig struct {
	// Sentinel is the out-of-band numeric value the source dataset uses for
	// "no data". Cells equal to it are treated as missing before any fill
	// rule runs. A zero sentinel is treated as unset.
	Sentinel float64 `yaml:"sentinel" envconfig:"SENTINEL"`

	// NonCropAreaColumns are canonical keys of area columns that are not
	// derived from a crop header and must exist in the cleaned table. Missing
	// entries are resolved by the fallback chain in the sentinel resolver.
	NonCropAreaColumns []string `yaml:"non_crop_area_columns" envconfig:"NON_CROP_AREA_COLUMNS"`
}

// StoreConfig contains query store configuration.
type StoreConfig struct {
	TableName string `yaml:"table_name" envconfig:"TABLE_NAME" validate:"required"`
}

// DefaultNonCropAreaColumns is the set of non-crop area columns the source
// dataset is expected to carry. Overridable via configuration.
var DefaultNonCropAreaColumns = []string{
	"fruits_area_area_1000ha",
	"vegetables_area_area_1000ha",
	"fruits_and_vegetables_area_area_1000ha",
	"potatoes_area_area_1000ha",
	"onion_area_area_1000ha",
	"fodder_area_area_1000ha",
}

// Load loads configuration in three layers: the optional YAML file next to
// the executable is the base, environment variables override it, and built-in
// defaults fill whatever is still unset.
func Load() (*Config, error) {
	var cfg Config

	configFile := getConfigFilePath()
	if _, err := os.Stat(configFile); err == nil {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, apperrors.NewConfigError("failed to load config from file", err)
		}
		cfg = *fileCfg
	}

	if err := envconfig.Process("AGRI", &cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, apperrors.NewConfigError("config validation failed", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyDefaults fills unset values.
func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15 * time.Second
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 30 * time.Second
	}
	if len(c.Security.AllowedOrigins) == 0 {
		c.Security.AllowedOrigins = []string{"http://localhost:8080"}
	}
	if c.Security.RateLimit.RPS == 0 {
		c.Security.RateLimit.RPS = 100
	}
	if c.Security.RateLimit.Burst == 0 {
		c.Security.RateLimit.Burst = 50
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "console"
	}
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/agricli.log"
	}
	if c.Pipeline.Sentinel == 0 {
		c.Pipeline.Sentinel = -1
	}
	if len(c.Pipeline.NonCropAreaColumns) == 0 {
		c.Pipeline.NonCropAreaColumns = append([]string(nil), DefaultNonCropAreaColumns...)
	}
	if c.Store.TableName == "" {
		c.Store.TableName = "district_crop_data"
	}
}

// validate checks the loaded configuration for invalid values.
func (c *Config) validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return err
	}
	return nil
}

func getConfigFilePath() string {
	if p := os.Getenv("AGRI_CONFIG_FILE"); p != "" {
		return p
	}
	exeDir, err := executableDir()
	if err != nil {
		return "agricli.yaml"
	}
	return exeDir + string(os.PathSeparator) + "agricli.yaml"
}

// FileExists reports whether the given path exists and is not a directory.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
