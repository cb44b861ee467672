package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"healthlab/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Data       DataConfig
	Charts     ChartConfig
	Simulation SimulationConfig
	Report     ReportConfig
	LogLevel   string
}

// DataConfig locates the input dataset
type DataConfig struct {
	File  string `validate:"required"`
	Sheet string
}

// ChartConfig holds chart output settings
type ChartConfig struct {
	OutputDir string
	Format    string
	WidthCm   float64
	HeightCm  float64
}

// SimulationConfig holds the disease simulation parameters
type SimulationConfig struct {
	Samples int
	Seed    int64
}

// ReportConfig controls the Markdown/HTML report
type ReportConfig struct {
	Enabled   bool
	OutputDir string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{}

	dataConfig, err := loadDataConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load data configuration")
	}
	config.Data = *dataConfig

	outputDir := getEnvOrDefault("OUTPUT_DIR", "./output")
	chartConfig, err := loadChartConfig(outputDir)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load chart configuration")
	}
	config.Charts = *chartConfig

	simulationConfig, err := loadSimulationConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load simulation configuration")
	}
	config.Simulation = *simulationConfig

	reportEnabled, err := getEnvBoolOrDefault("REPORT_ENABLED", true)
	if err != nil {
		return nil, err
	}
	config.Report = ReportConfig{
		Enabled:   reportEnabled,
		OutputDir: outputDir,
	}
	config.LogLevel = getEnvOrDefault("LOG_LEVEL", "INFO")

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadDataConfig() (*DataConfig, error) {
	file := os.Getenv("HEALTH_DATA_FILE")
	if file == "" {
		return nil, errors.ConfigInvalid("HEALTH_DATA_FILE is required")
	}

	return &DataConfig{
		File:  file,
		Sheet: getEnvOrDefault("HEALTH_SHEET", "Sheet1"),
	}, nil
}

func loadChartConfig(outputDir string) (*ChartConfig, error) {
	width, err := getEnvFloatOrDefault("CHART_WIDTH_CM", 16)
	if err != nil {
		return nil, err
	}
	height, err := getEnvFloatOrDefault("CHART_HEIGHT_CM", 12)
	if err != nil {
		return nil, err
	}

	return &ChartConfig{
		OutputDir: filepath.Join(outputDir, "charts"),
		Format:    strings.ToLower(getEnvOrDefault("CHART_FORMAT", "png")),
		WidthCm:   width,
		HeightCm:  height,
	}, nil
}

func loadSimulationConfig() (*SimulationConfig, error) {
	samples, err := getEnvIntOrDefault("SIM_SAMPLES", 1000)
	if err != nil {
		return nil, err
	}
	seed, err := getEnvInt64OrDefault("SIM_SEED", 42)
	if err != nil {
		return nil, err
	}

	return &SimulationConfig{Samples: samples, Seed: seed}, nil
}

func validateConfig(config *Config) error {
	switch config.Charts.Format {
	case "png", "svg", "pdf":
	default:
		return errors.ConfigInvalid(fmt.Sprintf("CHART_FORMAT must be png, svg or pdf, got %q", config.Charts.Format))
	}
	if config.Charts.WidthCm <= 0 || config.Charts.HeightCm <= 0 {
		return errors.ConfigInvalid("chart width and height must be positive")
	}
	if config.Simulation.Samples <= 0 {
		return errors.ConfigInvalid(fmt.Sprintf("SIM_SAMPLES must be positive, got %d", config.Simulation.Samples))
	}
	return nil
}

// Helper functions for environment variable parsing.
// An unset or empty variable yields the default; a set value that does not
// parse is a configuration error.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return 0, invalidValue(key, "an integer", value)
	}
	return intValue, nil
}

func getEnvInt64OrDefault(key string, defaultValue int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	intValue, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, invalidValue(key, "an integer", value)
	}
	return intValue, nil
}

func getEnvFloatOrDefault(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, invalidValue(key, "a number", value)
	}
	return floatValue, nil
}

func getEnvBoolOrDefault(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return false, invalidValue(key, "a boolean", value)
	}
	return boolValue, nil
}

func invalidValue(key, want, got string) error {
	return errors.ConfigInvalid(fmt.Sprintf("%s must be %s, got %q", key, want, got))
}
