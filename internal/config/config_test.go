// Package config tests configuration loading.
package config

import (
	"flag"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/nibzard/familytree-go/internal/calendar"
)

// isolate points every config location at a fresh temp directory and clears
// FAMILYTREE_* variables so tests do not see the developer's setup.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", filepath.Join(dir, "home"))
	t.Setenv("USERPROFILE", filepath.Join(dir, "home"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("APPDATA", filepath.Join(dir, "appdata"))
	t.Setenv("FAMILYTREE_ENV_FILE", "")
	for _, ev := range envVars {
		t.Setenv(ev.name, "")
	}
	t.Chdir(dir)
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)

	if cfg.Backend != DefaultBackend {
		t.Errorf("Backend: got %q, want %q", cfg.Backend, DefaultBackend)
	}
	if cfg.FieldDelimiter != "," || cfg.RecordDelimiter != "\n" {
		t.Errorf("delimiters: got %q/%q, want ,/\\n", cfg.FieldDelimiter, cfg.RecordDelimiter)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel: got %q, want warn", cfg.LogLevel)
	}
	if !cfg.Journal {
		t.Errorf("Journal: got false, want true")
	}
}

func TestLoadFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv("FAMILYTREE_FAMILY", "Smith")
	t.Setenv("FAMILYTREE_BACKEND", "pg")
	t.Setenv("FAMILYTREE_JOURNAL", "off")
	t.Setenv("FAMILYTREE_LOG_CALLER", "yes")

	cfg := &Config{}
	setDefaults(cfg)
	loadFromEnv(cfg)

	if cfg.Family != "Smith" {
		t.Errorf("Family: got %q, want Smith", cfg.Family)
	}
	if cfg.Backend != "pg" {
		t.Errorf("Backend: got %q, want pg (normalized later)", cfg.Backend)
	}
	if cfg.Journal {
		t.Errorf("Journal: got true, want false")
	}
	if !cfg.LogCaller {
		t.Errorf("LogCaller: got false, want true")
	}
}

func TestLoadConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "familytree.toml")
	writeFile(t, configFile, `family = "Jones"
backend = "sqlite"
field_delimiter = "|"
`)

	cfg := &Config{}
	setDefaults(cfg)
	if err := loadConfigFile(cfg, configFile); err != nil {
		t.Fatalf("loadConfigFile: %v", err)
	}

	if cfg.Family != "Jones" {
		t.Errorf("Family: got %q, want Jones", cfg.Family)
	}
	if cfg.Backend != "sqlite" {
		t.Errorf("Backend: got %q, want sqlite", cfg.Backend)
	}
	if cfg.FieldDelimiter != "|" {
		t.Errorf("FieldDelimiter: got %q, want |", cfg.FieldDelimiter)
	}
	if cfg.RecordDelimiter != DefaultRecordDelimiter {
		t.Errorf("RecordDelimiter: got %q, want default", cfg.RecordDelimiter)
	}
}

func TestLoadConfigFileUnknownKey(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "familytree.toml")
	writeFile(t, configFile, "todo_file = \"x\"\n")

	cfg := &Config{}
	err := loadConfigFile(cfg, configFile)
	if err == nil || !strings.Contains(err.Error(), "todo_file") {
		t.Fatalf("loadConfigFile: got %v, want unknown key error", err)
	}
}

func TestResolvePath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}
	t.Setenv("FAMILYTREE_TEST_DIR", "/srv/trees")
	root := filepath.FromSlash("/project")

	tests := []struct {
		input string
		root  string
		want  string
	}{
		{"~/smith.csv", root, filepath.Join(home, "smith.csv")},
		{"~", "", home},
		{"$FAMILYTREE_TEST_DIR/smith.csv", "", "/srv/trees/smith.csv"},
		{"/absolute/tree.db", root, "/absolute/tree.db"},
		{"tree.db", root, filepath.Join(root, "tree.db")},
		{"journal", "", "journal"},
		{"~jones/tree.db", "", "~jones/tree.db"},
		{"", root, ""},
	}
	if runtime.GOOS != "windows" {
		tests = append(tests, struct {
			input string
			root  string
			want  string
		}{`~\test`, "", `~\test`})
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := resolvePath(tt.input, tt.root)
			if got != tt.want {
				t.Errorf("resolvePath(%q, %q): got %q, want %q", tt.input, tt.root, got, tt.want)
			}
		})
	}
}

func TestParseFlags(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	cfg.Family = "FromFile"

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	args := []string{
		"--backend", "json",
		"--field-delimiter", `\t`,
		"--journal=false",
		"ls",
	}

	if err := parseFlags(cfg, fs, args); err != nil {
		t.Fatalf("parseFlags: %v", err)
	}

	if cfg.Family != "FromFile" {
		t.Errorf("Family: got %q, want FromFile (unset flags keep earlier values)", cfg.Family)
	}
	if cfg.Backend != "json" {
		t.Errorf("Backend: got %q, want json", cfg.Backend)
	}
	if cfg.FieldDelimiter != `\t` {
		t.Errorf("FieldDelimiter: got %q, want raw \\t before finalize", cfg.FieldDelimiter)
	}
	if cfg.Journal {
		t.Errorf("Journal: got true, want false")
	}
	if got := fs.Args(); len(got) != 1 || got[0] != "ls" {
		t.Errorf("remaining args: got %v, want [ls]", got)
	}
}

func TestLoadWithSources(t *testing.T) {
	dir := isolate(t)

	writeFile(t, filepath.Join(dir, "home", ".familytree", "familytree.toml"), `family = "User"
date_format = "long"
log_level = "info"
`)
	writeFile(t, filepath.Join(dir, "familytree.toml"), `family = "Project"
backend = "sqlite3"
database = "tree.db"
`)
	writeFile(t, filepath.Join(dir, ".env"), "FAMILYTREE_LOG_LEVEL=debug\nFAMILYTREE_FAMILY=Dotenv\n")
	t.Setenv("FAMILYTREE_FAMILY", "Env")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cws, err := LoadWithSources(fs, []string{"--record-delimiter", "crlf"})
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}
	cfg := cws.Config

	if cfg.Family != "Env" {
		t.Errorf("Family: got %q, want Env", cfg.Family)
	}
	if cfg.Backend != "sqlite" {
		t.Errorf("Backend: got %q, want sqlite", cfg.Backend)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: got %q, want debug", cfg.LogLevel)
	}
	if cfg.RecordDelimiter != "\r\n" {
		t.Errorf("RecordDelimiter: got %q, want \\r\\n", cfg.RecordDelimiter)
	}
	if cfg.DateStyle() != calendar.StyleLong {
		t.Errorf("DateStyle: got %q, want long", cfg.DateStyle())
	}
	if !filepath.IsAbs(cfg.Database) || filepath.Base(cfg.Database) != "tree.db" {
		t.Errorf("Database: got %q, want absolute tree.db", cfg.Database)
	}

	wantSources := map[string]ConfigSource{
		"family":           SourceEnv,
		"backend":          SourceProjFile,
		"database":         SourceProjFile,
		"date_format":      SourceUserFile,
		"log_level":        SourceDotEnv,
		"record_delimiter": SourceFlag,
		"dsn":              SourceDefault,
	}
	for field, want := range wantSources {
		if got := cws.Sources[field]; got != want {
			t.Errorf("Sources[%s]: got %q, want %q", field, got, want)
		}
	}
	if got := cws.GetConfigFile(); got != "familytree.toml" {
		t.Errorf("GetConfigFile: got %q, want familytree.toml", got)
	}
}

func TestFinalizeConfigErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"unknown backend", func(c *Config) { c.Backend = "mysql" }, "unknown backend"},
		{"postgres without dsn", func(c *Config) { c.Backend = "postgres" }, "requires a dsn"},
		{"bad date format", func(c *Config) { c.DateFormat = "american" }, "date_format"},
		{"empty delimiter", func(c *Config) { c.FieldDelimiter = "" }, "delimiters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{ProjectRoot: t.TempDir()}
			setDefaults(cfg)
			tt.mutate(cfg)
			err := finalizeConfig(cfg)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("finalizeConfig: got %v, want error containing %q", err, tt.want)
			}
		})
	}
}

func TestDataPath(t *testing.T) {
	root := t.TempDir()
	cfg := &Config{ProjectRoot: root, Backend: "csv"}
	if got, want := cfg.DataPath("The Smiths"), filepath.Join(root, "the_smiths.csv"); got != want {
		t.Errorf("DataPath csv: got %q, want %q", got, want)
	}
	cfg.Backend = "json"
	if got, want := cfg.DataPath("Smith"), filepath.Join(root, "smith.json"); got != want {
		t.Errorf("DataPath json: got %q, want %q", got, want)
	}
	cfg.DataFile = "/data/tree.csv"
	if got := cfg.DataPath("Smith"); got != "/data/tree.csv" {
		t.Errorf("DataPath explicit: got %q", got)
	}
	if cfg.IsSQL() {
		t.Errorf("IsSQL: json backend reported as SQL")
	}
}

func TestBoolFromString(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"1", true},
		{"true", true},
		{"TRUE", true},
		{"yes", true},
		{"on", true},
		{"0", false},
		{"false", false},
		{"no", false},
		{"off", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := boolFromString(tt.input)
			if got != tt.want {
				t.Errorf("boolFromString(%q): got %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestExampleConfigParses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "familytree.toml")
	writeFile(t, path, ExampleConfig())

	cfg := &Config{}
	if err := loadConfigFile(cfg, path); err != nil {
		t.Fatalf("example config does not load: %v", err)
	}
	if cfg.Backend != "csv" || cfg.RecordDelimiter != "\n" {
		t.Errorf("example config: got backend %q record delimiter %q", cfg.Backend, cfg.RecordDelimiter)
	}
}
