package config

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/nibzard/familytree-go/internal/utils"
)

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.familytree/familytree.toml or OS-specific config dir)
// 3. Project config file (familytree.toml or .familytree.toml in current directory)
// 4. .env file
// 5. Environment variables
// 6. CLI flags
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cws, err := LoadWithSources(fs, args)
	if err != nil {
		return nil, err
	}
	return cws.Config, nil
}

// LoadWithSources loads configuration and tracks the source of each value.
// Returns ConfigWithSources containing the config and a map of field names to their sources.
func LoadWithSources(fs *flag.FlagSet, args []string) (*ConfigWithSources, error) {
	sources := make(map[string]ConfigSource)
	cfg := &Config{}

	// 1. Set defaults (all fields start with default source)
	setDefaults(cfg)
	for _, field := range configFields() {
		sources[field] = SourceDefault
	}

	// 2. Try to load from user config file
	if userConfigFile := findUserConfigFile(); userConfigFile != "" {
		if err := loadConfigFileWithSources(cfg, userConfigFile, sources, SourceUserFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", userConfigFile, err)
		}
	}

	// 3. Try to load from project config file (overrides user config)
	if projectConfigFile := findProjectConfigFile(); projectConfigFile != "" {
		if err := loadConfigFileWithSources(cfg, projectConfigFile, sources, SourceProjFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", projectConfigFile, err)
		}
	}

	// 4 + 5. Override from the .env file and the environment
	dotenv, err := readEnvFile()
	if err != nil {
		return nil, err
	}
	loadFromEnvWithSources(cfg, sources, dotenv)

	// 6. Parse CLI flags (they override everything)
	if err := parseFlagsWithSources(cfg, fs, args, sources); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	// 7. Compute derived values
	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}

	return &ConfigWithSources{
		Config:  cfg,
		Sources: sources,
	}, nil
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		"family",
		"backend",
		"data_file",
		"database",
		"dsn",
		"field_delimiter",
		"record_delimiter",
		"date_format",
		"journal",
		"log_dir",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
	}
}

// loadConfigFile loads TOML config from the given file.
func loadConfigFile(cfg *Config, path string) error {
	return loadConfigFileWithSources(cfg, path, nil, "")
}

// loadConfigFileWithSources loads TOML config over cfg and records the
// source of every key the file defines. Unknown keys are an error.
func loadConfigFileWithSources(cfg *Config, path string, sources map[string]ConfigSource, source ConfigSource) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	if sources == nil {
		return nil
	}
	for _, field := range configFields() {
		if md.IsDefined(field) {
			sources[field] = source
		}
	}
	return nil
}

// finalizeConfig computes derived values and validates the result.
func finalizeConfig(cfg *Config) error {
	cfg.Family = strings.TrimSpace(cfg.Family)

	backend, ok := utils.NormalizeBackend(cfg.Backend)
	if !ok {
		return fmt.Errorf("unknown backend %q (want one of %s)", cfg.Backend, strings.Join(utils.Backends(), ", "))
	}
	cfg.Backend = backend
	if cfg.Backend == utils.BackendPostgres && cfg.DSN == "" {
		return fmt.Errorf("backend %s requires a dsn", cfg.Backend)
	}

	if _, ok := dateStyles[strings.ToLower(cfg.DateFormat)]; !ok {
		return fmt.Errorf("unknown date_format %q", cfg.DateFormat)
	}

	cfg.FieldDelimiter = utils.UnescapeDelimiter(cfg.FieldDelimiter)
	cfg.RecordDelimiter = utils.UnescapeDelimiter(cfg.RecordDelimiter)
	if cfg.FieldDelimiter == "" || cfg.RecordDelimiter == "" {
		return fmt.Errorf("delimiters must not be empty")
	}

	// Determine project root
	if cfg.ProjectRoot == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		cfg.ProjectRoot = wd
	}

	// Data files live under the project root; the journal keeps its own base.
	cfg.LogDir = resolvePath(cfg.LogDir, "")
	cfg.DataFile = resolvePath(cfg.DataFile, cfg.ProjectRoot)
	cfg.Database = resolvePath(cfg.Database, cfg.ProjectRoot)

	return nil
}
