package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "github.com/juancuellarsol/ogilvy/internal/errors"
	"github.com/juancuellarsol/ogilvy/internal/validation"
)

// EnvPrefix namespaces environment variables.
const EnvPrefix = "NORMALIZER"

// Config represents the complete application configuration
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Import    ImportConfig    `yaml:"import" envconfig:"IMPORT"`
	Export    ExportConfig    `yaml:"export" envconfig:"EXPORT"`
	Preview   PreviewConfig   `yaml:"preview" envconfig:"PREVIEW"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=text json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_unless=Output console"`
}

// ImportConfig contains input reading defaults
type ImportConfig struct {
	Sheet string `yaml:"sheet" envconfig:"SHEET"`
}

// ExportConfig contains output defaults
type ExportConfig struct {
	Suffix    string `yaml:"suffix" envconfig:"SUFFIX" validate:"required"`
	Format    string `yaml:"format" envconfig:"FORMAT" validate:"oneof=xlsx csv"`
	SheetName string `yaml:"sheet_name" envconfig:"SHEET_NAME" validate:"required,max=31"`
	CSVBOM    bool   `yaml:"csv_bom" envconfig:"CSV_BOM"`
}

// PreviewConfig contains dry-run preview settings
type PreviewConfig struct {
	Rows int `yaml:"rows" envconfig:"ROWS" validate:"gte=0"`
}

// TelemetryConfig contains tracing and metrics configuration
type TelemetryConfig struct {
	TracingEnabled bool   `yaml:"tracing_enabled" envconfig:"TRACING_ENABLED"`
	TraceExporter  string `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" validate:"oneof=stdout none"`
	TraceFile      string `yaml:"trace_file" envconfig:"TRACE_FILE"`
	MetricsFile    string `yaml:"metrics_file" envconfig:"METRICS_FILE"`
}

// Load builds the configuration from defaults, the YAML file at path (or a
// discovered normalizer.yaml when path is empty) and NORMALIZER_* variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = getConfigFilePath()
	} else if _, err := os.Stat(path); err != nil {
		return nil, apperrors.NewConfigError(fmt.Sprintf("config file %s", path), err)
	}

	if path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, apperrors.NewConfigError("failed to load config from file", err).
				WithContext("path", path)
		}
	}

	// Only variables that are set override; unset ones keep the file value
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// validate validates the configuration
func (c *Config) validate() error {
	if err := validation.NewStructValidator().Validate(c); err != nil {
		return apperrors.NewConfigError("config validation failed", err)
	}
	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	locations := []string{
		"normalizer.yaml",
		"configs/normalizer.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "text",
			Output:   "console",
			FilePath: "logs/normalizer.log",
		},
		Export: ExportConfig{
			Suffix:    "_limpio",
			Format:    "xlsx",
			SheetName: "Sheet1",
			CSVBOM:    true,
		},
		Preview: PreviewConfig{
			Rows: 5,
		},
		Telemetry: TelemetryConfig{
			TraceExporter: "stdout",
		},
	}
}
