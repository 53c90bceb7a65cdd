package config

import (
	"path/filepath"
	"strings"

	"github.com/nibzard/familytree-go/internal/calendar"
	"github.com/nibzard/familytree-go/internal/logging"
	"github.com/nibzard/familytree-go/internal/utils"
)

var dateStyles = map[string]calendar.Style{
	"european":      calendar.StyleEuropean,
	"international": calendar.StyleInternational,
	"iso":           calendar.StyleInternational,
	"long":          calendar.StyleLong,
}

// DateStyle returns the configured date display style.
func (c *Config) DateStyle() calendar.Style {
	if style, ok := dateStyles[strings.ToLower(c.DateFormat)]; ok {
		return style
	}
	return calendar.StyleEuropean
}

// DataPath returns the data file for the given family on file backends.
// An explicit data_file wins; otherwise the file is named after the
// family slug inside the project root.
func (c *Config) DataPath(family string) string {
	if c.DataFile != "" {
		return c.DataFile
	}
	ext := ".csv"
	if c.Backend == utils.BackendJSON {
		ext = ".json"
	}
	return filepath.Join(c.ProjectRoot, logging.Slugify(family)+ext)
}

// IsSQL reports whether the backend stores families as database tables.
func (c *Config) IsSQL() bool {
	return c.Backend == utils.BackendSQLite || c.Backend == utils.BackendPostgres
}
