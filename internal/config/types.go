package config

import (
	"github.com/nibzard/familytree-go/internal/utils"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceDotEnv   ConfigSource = "env file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
}

// Default values.
const (
	DefaultBackend         = utils.BackendCSV
	DefaultDatabase        = "families.db"
	DefaultFieldDelimiter  = ","
	DefaultRecordDelimiter = "\n"
	DefaultLogDir          = "~/.familytree/journal"
	DefaultLogLevel        = "warn"
	DefaultLogFormat       = "text"
	DefaultDateFormat      = "european"
	DefaultJournal         = true
	DefaultEnvFile         = ".env"
)

// Config holds the full configuration for familytree.
type Config struct {
	// Family selects the record set: the table name for SQL backends and
	// the base name of the data file for file backends.
	Family string `toml:"family"`

	// Storage
	Backend         string `toml:"backend"`
	DataFile        string `toml:"data_file"` // csv/json backends, default "<family>.csv" or "<family>.json"
	Database        string `toml:"database"`  // sqlite file
	DSN             string `toml:"dsn"`       // postgres connection string
	FieldDelimiter  string `toml:"field_delimiter"`
	RecordDelimiter string `toml:"record_delimiter"`

	// Display
	DateFormat string `toml:"date_format"`

	// Journal
	Journal bool   `toml:"journal"`
	LogDir  string `toml:"log_dir"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Project root (computed)
	ProjectRoot string `toml:"-"`
}
