package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// ConsoleOptions configures console diagnostics.
type ConsoleOptions struct {
	Level           log.Level
	Formatter       log.Formatter
	ReportTimestamp bool
	ReportCaller    bool
	Prefix          string
}

// DefaultConsoleOptions returns the defaults used when nothing is configured.
func DefaultConsoleOptions() ConsoleOptions {
	return ConsoleOptions{
		Level:     log.WarnLevel,
		Formatter: log.TextFormatter,
		Prefix:    "familytree",
	}
}

// NewLogger builds a charmbracelet logger writing to w.
func NewLogger(w io.Writer, opts ConsoleOptions) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           opts.Level,
		Formatter:       opts.Formatter,
		ReportTimestamp: opts.ReportTimestamp,
		ReportCaller:    opts.ReportCaller,
		Prefix:          opts.Prefix,
	})
}

// NewLoggerFromConfig builds a logger from string configuration values.
func NewLoggerFromConfig(w io.Writer, level, format string, timestamps, caller bool) *log.Logger {
	opts := DefaultConsoleOptions()
	opts.Level = ParseLogLevel(level)
	opts.Formatter = ParseLogFormatter(format)
	opts.ReportTimestamp = timestamps
	opts.ReportCaller = caller
	return NewLogger(w, opts)
}

// ParseLogLevel parses a level name. Unknown names give WarnLevel.
func ParseLogLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.WarnLevel
	}
}

// ParseLogFormatter parses a formatter name. Unknown names give text.
func ParseLogFormatter(format string) log.Formatter {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

// Console mirrors journal events to a charmbracelet logger.
type Console struct {
	logger *log.Logger
}

// NewConsole returns a Console writing through logger.
func NewConsole(logger *log.Logger) *Console {
	return &Console{logger: logger}
}

// Write logs the event. Mutations go to debug, saves to info, errors to
// error.
func (c *Console) Write(event Event) error {
	fields := []any{"family", event.Family}
	if event.PersonID != 0 {
		fields = append(fields, "id", event.PersonID)
	}
	if event.Count != 0 {
		fields = append(fields, "count", event.Count)
	}

	switch event.Type {
	case EventError:
		c.logger.Error(event.Message, fields...)
	case EventSave:
		if event.Message != "" {
			fields = append(fields, "backend", event.Message)
		}
		c.logger.Info("Saved family", fields...)
	default:
		c.logger.Debug(formatMessage(event), fields...)
	}
	return nil
}

func formatMessage(event Event) string {
	switch event.Type {
	case EventAdd:
		return "Added person"
	case EventEdit:
		return "Edited person"
	case EventLink:
		return "Linked parents"
	case EventRemove:
		return "Removed person"
	default:
		return fmt.Sprintf("Journal event %s", event.Type)
	}
}
