package config

import (
	"flag"
	"strings"
)

// parseFlags defines and parses CLI flags.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	return parseFlagsWithSources(cfg, fs, args, nil)
}

// parseFlagsWithSources parses CLI flags and updates source tracking.
// Flags bind to scratch variables so that only flags present on the command
// line override earlier layers.
func parseFlagsWithSources(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("familytree", flag.ContinueOnError)
	}

	type flagBinding struct {
		name  string
		field string
		apply func()
	}
	var bindings []flagBinding

	str := func(name, field string, target *string, usage string) {
		v := fs.String(name, *target, usage)
		bindings = append(bindings, flagBinding{name: name, field: field, apply: func() { *target = *v }})
	}
	boolean := func(name, field string, target *bool, usage string) {
		v := fs.Bool(name, *target, usage)
		bindings = append(bindings, flagBinding{name: name, field: field, apply: func() { *target = *v }})
	}

	// Storage
	str("family", "family", &cfg.Family, "Family name (table or file base name)")
	str("backend", "backend", &cfg.Backend, "Storage backend (csv, sqlite, postgres, json)")
	str("data-file", "data_file", &cfg.DataFile, "Data file for the csv and json backends")
	str("database", "database", &cfg.Database, "SQLite database file")
	str("dsn", "dsn", &cfg.DSN, "PostgreSQL connection string")
	str("field-delimiter", "field_delimiter", &cfg.FieldDelimiter, `Field delimiter for the csv backend (e.g. ",", "\t", pipe)`)
	str("record-delimiter", "record_delimiter", &cfg.RecordDelimiter, `Record delimiter for the csv backend (e.g. "\n", crlf)`)

	// Display
	str("date-format", "date_format", &cfg.DateFormat, "Date format (european, international, long)")

	// Journal
	boolean("journal", "journal", &cfg.Journal, "Record changes in the session journal")
	str("log-dir", "log_dir", &cfg.LogDir, "Journal directory")

	// Logging
	str("log-level", "log_level", &cfg.LogLevel, "Log level (debug, info, warn, error)")
	str("log-format", "log_format", &cfg.LogFormat, "Log format (text, json, logfmt)")
	boolean("log-timestamps", "log_timestamps", &cfg.LogTimestamps, "Show timestamps in logs")
	boolean("log-caller", "log_caller", &cfg.LogCaller, "Show caller location in logs")

	if err := fs.Parse(args); err != nil {
		return err
	}

	flagSet := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		flagSet[f.Name] = true
	})

	for _, b := range bindings {
		if !flagSet[b.name] {
			continue
		}
		b.apply()
		if sources != nil {
			sources[b.field] = SourceFlag
		}
	}

	return nil
}

// boolFromString parses a boolean from a string.
func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
