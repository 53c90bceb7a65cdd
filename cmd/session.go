package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/familytree-go/internal/config"
	"github.com/nibzard/familytree-go/internal/family"
	"github.com/nibzard/familytree-go/internal/logging"
	"github.com/nibzard/familytree-go/internal/store"
	"github.com/nibzard/familytree-go/internal/store/csvstore"
	"github.com/nibzard/familytree-go/internal/store/jsonstore"
	"github.com/nibzard/familytree-go/internal/store/sqlstore"
	"github.com/nibzard/familytree-go/internal/utils"
)

// session is one loaded family with its store, journal and console logger.
type session struct {
	cfg     *config.Config
	family  *family.Family
	store   store.Store
	logger  *log.Logger
	journal *logging.Journal
	events  logging.Writer
}

// openStore returns the configured backend for the named family.
func openStore(ctx context.Context, cfg *config.Config, name string) (store.Store, error) {
	switch cfg.Backend {
	case utils.BackendCSV:
		return csvstore.New(cfg.DataPath(name), csvstore.WithDelimiters(cfg.FieldDelimiter, cfg.RecordDelimiter))
	case utils.BackendJSON:
		return jsonstore.New(cfg.DataPath(name), name), nil
	case utils.BackendSQLite:
		return sqlstore.Open(ctx, sqlstore.SQLite, cfg.Database, name)
	case utils.BackendPostgres:
		return sqlstore.Open(ctx, sqlstore.Postgres, cfg.DSN, name)
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

// openSession loads the named family and wires its change events to the
// journal (when enabled) and the console logger.
func openSession(ctx context.Context, cfg *config.Config, name string) (*session, error) {
	if name == "" {
		return nil, fmt.Errorf("no family selected: use --family or set family in familytree.toml")
	}
	logger := logging.NewLoggerFromConfig(stderr, cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)

	s, err := openStore(ctx, cfg, name)
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", cfg.Backend, err)
	}
	f, err := store.Load(ctx, s, name)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("loading family %q: %w", name, err)
	}
	logger.Debug("family loaded", "family", name, "backend", cfg.Backend, "people", f.Len())

	sess := &session{cfg: cfg, family: f, store: s, logger: logger}
	writers := []logging.Writer{logging.NewConsole(logger)}
	if cfg.Journal {
		writers = append(writers, sess)
	}
	sess.events = logging.NewMultiWriter(writers...)

	f.Observe(func(c family.Change) {
		if err := sess.events.Write(logging.ChangeEvent(name, c)); err != nil {
			logger.Warn("journal write failed", "err", err)
		}
	})
	return sess, nil
}

// Write appends event to the session journal, creating the journal file on
// the first event so read-only commands leave no empty sessions behind.
func (s *session) Write(event logging.Event) error {
	if s.journal == nil {
		j, err := logging.NewJournal(s.cfg.LogDir, s.cfg.ProjectRoot, s.family.Name())
		if err != nil {
			return err
		}
		s.journal = j
		s.logger.Debug("journal opened", "path", j.Path)
	}
	return s.journal.Write(event)
}

// save rewrites the store and records a save event.
func (s *session) save(ctx context.Context) error {
	if err := store.Save(ctx, s.store, s.family); err != nil {
		return err
	}
	return s.events.Write(logging.Event{
		Type:      logging.EventSave,
		Timestamp: time.Now().UTC(),
		Family:    s.family.Name(),
		Message:   s.cfg.Backend,
		Count:     s.family.Len(),
	})
}

// Close releases the store and the journal file.
func (s *session) Close() error {
	jerr := s.journal.Close()
	if err := s.store.Close(); err != nil {
		return err
	}
	return jerr
}
