package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// envVars maps environment variable names to config field names.
var envVars = []struct {
	name  string
	field string
}{
	{"FAMILYTREE_FAMILY", "family"},
	{"FAMILYTREE_BACKEND", "backend"},
	{"FAMILYTREE_DATA_FILE", "data_file"},
	{"FAMILYTREE_DATABASE", "database"},
	{"FAMILYTREE_DSN", "dsn"},
	{"FAMILYTREE_FIELD_DELIMITER", "field_delimiter"},
	{"FAMILYTREE_RECORD_DELIMITER", "record_delimiter"},
	{"FAMILYTREE_DATE_FORMAT", "date_format"},
	{"FAMILYTREE_JOURNAL", "journal"},
	{"FAMILYTREE_LOG_DIR", "log_dir"},
	{"FAMILYTREE_LOG_LEVEL", "log_level"},
	{"FAMILYTREE_LOG_FORMAT", "log_format"},
	{"FAMILYTREE_LOG_TIMESTAMPS", "log_timestamps"},
	{"FAMILYTREE_LOG_CALLER", "log_caller"},
}

// readEnvFile reads the .env file without touching the process environment.
// A missing file yields an empty map.
func readEnvFile() (map[string]string, error) {
	path := findEnvFile()
	if path == "" {
		return map[string]string{}, nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("reading env file %s: %w", path, err)
	}
	return values, nil
}

// loadFromEnv overrides config from environment variables.
func loadFromEnv(cfg *Config) {
	loadFromEnvWithSources(cfg, nil, nil)
}

// loadFromEnvWithSources overrides config from the real environment and,
// for variables the environment leaves unset, from dotenv.
// If sources is non-nil, it tracks the source of each value.
func loadFromEnvWithSources(cfg *Config, sources map[string]ConfigSource, dotenv map[string]string) {
	for _, ev := range envVars {
		value, source, ok := lookupEnv(ev.name, dotenv)
		if !ok {
			continue
		}
		applyEnv(cfg, ev.field, value)
		if sources != nil {
			sources[ev.field] = source
		}
	}
}

func lookupEnv(name string, dotenv map[string]string) (string, ConfigSource, bool) {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		return v, SourceEnv, true
	}
	if v, ok := dotenv[name]; ok && v != "" {
		return v, SourceDotEnv, true
	}
	return "", "", false
}

func applyEnv(cfg *Config, field, value string) {
	switch field {
	case "family":
		cfg.Family = value
	case "backend":
		cfg.Backend = value
	case "data_file":
		cfg.DataFile = value
	case "database":
		cfg.Database = value
	case "dsn":
		cfg.DSN = value
	case "field_delimiter":
		cfg.FieldDelimiter = value
	case "record_delimiter":
		cfg.RecordDelimiter = value
	case "date_format":
		cfg.DateFormat = value
	case "journal":
		cfg.Journal = boolFromString(value)
	case "log_dir":
		cfg.LogDir = value
	case "log_level":
		cfg.LogLevel = value
	case "log_format":
		cfg.LogFormat = value
	case "log_timestamps":
		cfg.LogTimestamps = boolFromString(value)
	case "log_caller":
		cfg.LogCaller = boolFromString(value)
	}
}
