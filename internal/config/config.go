// Package config provides configuration management for the accident report.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"roadsafety/internal/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrMissingAccidentsPath = errors.New("input.accidents is required")
	ErrMissingVehiclesPath  = errors.New("input.vehicles is required")
	ErrMissingOutputDir     = errors.New("output.dir is required")
	ErrMissingOutputFile    = errors.New("output file names cannot be empty")
	ErrDuplicateOutputFile  = errors.New("output file names must be distinct")
	ErrInvalidPreviewRows   = errors.New("output.preview_rows must be non-negative")
	ErrInvalidPrecision     = errors.New("aggregation.coordinate_precision must be -1 or between 0 and 12")
	ErrInvalidChartSize     = errors.New("charts.width must be >= 20 and charts.height >= 3")
	ErrInvalidLogLevel      = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidLogFormat     = errors.New("logging.format must be 'text' or 'json'")
	ErrInvalidEnvValue      = errors.New("invalid environment override")
)

// DefaultPath is read when no -config flag is given and the file exists.
const DefaultPath = "configs/report.yaml"

// Environment overrides.
const (
	EnvAccidentsPath       = "ROADSAFETY_ACCIDENTS_PATH"
	EnvVehiclesPath        = "ROADSAFETY_VEHICLES_PATH"
	EnvOutputDir           = "ROADSAFETY_OUTPUT_DIR"
	EnvSQLitePath          = "ROADSAFETY_SQLITE_PATH"
	EnvLogLevel            = "ROADSAFETY_LOG_LEVEL"
	EnvCoordinatePrecision = "ROADSAFETY_COORDINATE_PRECISION"
	EnvCharts              = "ROADSAFETY_CHARTS"
)

// ExactCoordinates disables coordinate rounding in the location aggregate.
const ExactCoordinates = -1

// Config represents the complete report configuration.
type Config struct {
	Input       InputConfig       `yaml:"input"`
	Output      OutputConfig      `yaml:"output"`
	Aggregation AggregationConfig `yaml:"aggregation"`
	Charts      ChartsConfig      `yaml:"charts"`
	Metrics     MetricsConfig     `yaml:"metrics"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// InputConfig names the two source tables.
type InputConfig struct {
	Accidents   string   `yaml:"accidents"`
	Vehicles    string   `yaml:"vehicles"`
	DateLayouts []string `yaml:"date_layouts"`
}

// OutputConfig defines where the BI tables go.
type OutputConfig struct {
	Dir          string `yaml:"dir"`
	LocationFile string `yaml:"location_file"`
	TimeFile     string `yaml:"time_file"`
	VehicleFile  string `yaml:"vehicle_file"`
	SQLitePath   string `yaml:"sqlite_path"`
	PreviewRows  int    `yaml:"preview_rows"`
}

// AggregationConfig tunes the grouped tables.
type AggregationConfig struct {
	CoordinatePrecision int `yaml:"coordinate_precision"`
}

// ChartsConfig controls the console charts.
type ChartsConfig struct {
	Enabled bool `yaml:"enabled"`
	Width   int  `yaml:"width"`
	Height  int  `yaml:"height"`
}

// MetricsConfig controls the Prometheus textfile export.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Accidents: "data/accidents.csv",
			Vehicles:  "data/vehicles.csv",
		},
		Output: OutputConfig{
			Dir:          ".",
			LocationFile: "bi_location_agg.csv",
			TimeFile:     "bi_time_agg.csv",
			VehicleFile:  "bi_vehicle_agg.csv",
			PreviewRows:  10,
		},
		Aggregation: AggregationConfig{
			CoordinatePrecision: ExactCoordinates,
		},
		Charts: ChartsConfig{
			Enabled: true,
			Width:   60,
			Height:  10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig loads configuration from a YAML file on top of the defaults.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Load resolves the effective configuration: an explicit path must exist,
// otherwise DefaultPath is used when present. The first .env found in dir
// is loaded and the environment overrides are applied last.
func Load(path, dir string) (*Config, error) {
	cfg := Default()

	switch {
	case path != "":
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}

		cfg = loaded
	default:
		fallback := filepath.Join(dir, DefaultPath)
		if _, err := os.Stat(fallback); err == nil {
			loaded, err := LoadConfig(fallback)
			if err != nil {
				return nil, err
			}

			cfg = loaded
		}
	}

	loadDotEnv(dir)

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadDotEnv loads the first env file present. Variables already set win.
func loadDotEnv(dir string) {
	for _, name := range []string{".env.local", ".env"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}
}

// ApplyEnv overrides fields from the environment using lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := map[string]*string{
		EnvAccidentsPath: &c.Input.Accidents,
		EnvVehiclesPath:  &c.Input.Vehicles,
		EnvOutputDir:     &c.Output.Dir,
		EnvSQLitePath:    &c.Output.SQLitePath,
		EnvLogLevel:      &c.Logging.Level,
	}

	for key, dst := range str {
		if v, ok := lookup(key); ok {
			*dst = strings.TrimSpace(v)
		}
	}

	if v, ok := lookup(EnvCoordinatePrecision); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidEnvValue, EnvCoordinatePrecision, v)
		}

		c.Aggregation.CoordinatePrecision = n
	}

	if v, ok := lookup(EnvCharts); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidEnvValue, EnvCharts, v)
		}

		c.Charts.Enabled = b
	}

	return nil
}

// SaveConfig saves configuration to YAML file.
func (c *Config) SaveConfig(filepath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Input.Accidents == "" {
		return ErrMissingAccidentsPath
	}

	if c.Input.Vehicles == "" {
		return ErrMissingVehiclesPath
	}

	if c.Output.Dir == "" {
		return ErrMissingOutputDir
	}

	files := []string{c.Output.LocationFile, c.Output.TimeFile, c.Output.VehicleFile}
	seen := make(map[string]bool, len(files))

	for _, f := range files {
		if f == "" {
			return ErrMissingOutputFile
		}

		if seen[f] {
			return fmt.Errorf("%w: %s", ErrDuplicateOutputFile, f)
		}

		seen[f] = true
	}

	if c.Output.PreviewRows < 0 {
		return ErrInvalidPreviewRows
	}

	if p := c.Aggregation.CoordinatePrecision; p < ExactCoordinates || p > 12 {
		return fmt.Errorf("%w: got %d", ErrInvalidPrecision, p)
	}

	if c.Charts.Enabled && (c.Charts.Width < 20 || c.Charts.Height < 3) {
		return ErrInvalidChartSize
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return ErrInvalidLogFormat
	}

	return nil
}

// OutputFiles maps each BI table name to its file path.
func (c *Config) OutputFiles() map[string]string {
	return map[string]string{
		models.TableLocation: filepath.Join(c.Output.Dir, c.Output.LocationFile),
		models.TableTime:     filepath.Join(c.Output.Dir, c.Output.TimeFile),
		models.TableVehicle:  filepath.Join(c.Output.Dir, c.Output.VehicleFile),
	}
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Accidents: %s, Vehicles: %s, Output: %s, Precision: %d}",
		c.Input.Accidents,
		c.Input.Vehicles,
		c.Output.Dir,
		c.Aggregation.CoordinatePrecision,
	)
}
