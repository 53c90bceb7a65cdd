package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/nibzard/familytree-go/internal/codec"
	"github.com/nibzard/familytree-go/internal/config"
	"github.com/nibzard/familytree-go/internal/display"
	"github.com/nibzard/familytree-go/internal/family"
	"github.com/nibzard/familytree-go/internal/logging"
	"github.com/nibzard/familytree-go/internal/menu"
	"github.com/nibzard/familytree-go/internal/person"
	"github.com/nibzard/familytree-go/internal/prompt"
	"github.com/nibzard/familytree-go/internal/store"
	"github.com/nibzard/familytree-go/internal/store/jsonstore"
	"github.com/nibzard/familytree-go/internal/store/sqlstore"
	"github.com/nibzard/familytree-go/internal/ui"
	"github.com/nibzard/familytree-go/internal/utils"
)

// parseArgs parses fs allowing flags after positional arguments and
// returns the positional arguments.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	fs.SetOutput(stderr)
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}

func expectArgs(args []string, names ...string) error {
	if len(args) < len(names) {
		return fmt.Errorf("missing argument: %s", strings.Join(names[len(args):], " "))
	}
	if len(args) > len(names) {
		return fmt.Errorf("unexpected arguments: %v", args[len(names):])
	}
	return nil
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// withSession opens the configured family, runs fn and closes it again.
func withSession(ctx context.Context, cfg *config.Config, fn func(*session) error) error {
	sess, err := openSession(ctx, cfg, cfg.Family)
	if err != nil {
		return err
	}
	defer sess.Close()
	return fn(sess)
}

// menuCommand runs the interactive menu, asking for the family name first
// when none is configured.
func menuCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("familytree menu", flag.ContinueOnError)
	rest, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if err := expectArgs(rest); err != nil {
		return err
	}

	p := prompt.New(stdin, stdout)
	name := cfg.Family
	if name == "" {
		if cfg.IsSQL() {
			if names, err := listFamilies(ctx, cfg); err == nil && len(names) > 0 {
				fmt.Fprintf(stdout, "Stored families: %s\n", strings.Join(names, ", "))
			}
		}
		for name == "" {
			name, err = p.Line("Family name")
			if err != nil {
				if errors.Is(err, io.EOF) {
					return nil
				}
				return err
			}
		}
	}

	sess, err := openSession(ctx, cfg, name)
	if err != nil {
		return err
	}
	defer sess.Close()

	m := menu.New(p, sess.store, sess.family,
		menu.WithDateStyle(cfg.DateStyle()),
		menu.WithEvents(sess.events, cfg.Backend),
	)
	return m.Run(ctx)
}

// lsCommand lists every member.
func lsCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("familytree ls", flag.ContinueOnError)
	living := fs.Bool("living", false, "Only show living members")
	rest, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if err := expectArgs(rest); err != nil {
		return err
	}

	return withSession(ctx, cfg, func(s *session) error {
		rows := display.PeopleRows(s.family, cfg.DateStyle(), time.Now())
		if *living {
			rows = livingRows(s.family.All(), rows)
		}
		if len(rows) == 0 {
			fmt.Fprintln(stdout, display.EmptyMessage)
			return nil
		}
		display.Table(stdout, display.PeopleHeader, rows)
		if p, n, ok := s.family.MostDescendants(); ok && n > 0 {
			fmt.Fprintf(stdout, "Most descendants: %s (%d)\n", p.ShortName(), n)
		}
		return nil
	})
}

// livingRows keeps the rows of living people. rows[i] describes people[i].
func livingRows(people []person.Person, rows [][]string) [][]string {
	var out [][]string
	for i := range people {
		if people[i].IsAlive() {
			out = append(out, rows[i])
		}
	}
	return out
}

// birthdaysCommand lists living members by days until their next birthday.
func birthdaysCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("familytree birthdays", flag.ContinueOnError)
	limit := fs.Int("n", 0, "Only show the next n birthdays (0 = all)")
	rest, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if err := expectArgs(rest); err != nil {
		return err
	}

	return withSession(ctx, cfg, func(s *session) error {
		list := s.family.Birthdays(time.Now())
		if len(list) == 0 {
			fmt.Fprintln(stdout, display.EmptyMessage)
			return nil
		}
		if *limit > 0 && len(list) > *limit {
			list = list[:*limit]
		}
		display.Table(stdout, display.BirthdayHeader, display.BirthdayRows(list))
		return nil
	})
}

// showCommand prints one member's detail card.
func showCommand(ctx context.Context, cfg *config.Config, args []string) error {
	return personCommand(ctx, cfg, "show", args, false)
}

// relativesCommand prints the detail card plus the descendant count.
func relativesCommand(ctx context.Context, cfg *config.Config, args []string) error {
	return personCommand(ctx, cfg, "relatives", args, true)
}

func personCommand(ctx context.Context, cfg *config.Config, name string, args []string, descendants bool) error {
	fs := flag.NewFlagSet("familytree "+name, flag.ContinueOnError)
	rest, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if err := expectArgs(rest, "<id>"); err != nil {
		return err
	}
	id, err := parseID(rest[0])
	if err != nil {
		return err
	}

	return withSession(ctx, cfg, func(s *session) error {
		p, err := s.family.Get(id)
		if err != nil {
			return err
		}
		display.Person(stdout, s.family, p, cfg.DateStyle(), time.Now())
		if descendants {
			n, err := s.family.Descendants(id)
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "Descendants: %d\n", n)
		}
		return nil
	})
}

// linkCommand sets the parents of a member. Unset flags keep the current
// parent; 0 clears it.
func linkCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("familytree link", flag.ContinueOnError)
	mother := fs.Int("mother", 0, "Mother ID (0 = unknown)")
	father := fs.Int("father", 0, "Father ID (0 = unknown)")
	rest, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if err := expectArgs(rest, "<child>"); err != nil {
		return err
	}
	child, err := parseID(rest[0])
	if err != nil {
		return err
	}
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if len(set) == 0 {
		return fmt.Errorf("link needs -mother, -father or both")
	}

	return withSession(ctx, cfg, func(s *session) error {
		p, err := s.family.Get(child)
		if err != nil {
			return err
		}
		m, fa := p.MotherID, p.FatherID
		if set["mother"] {
			m = *mother
		}
		if set["father"] {
			fa = *father
		}
		if err := s.family.SetParents(child, m, fa); err != nil {
			return err
		}
		if err := s.save(ctx); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Linked %s\n", p.FullName())
		return nil
	})
}

// removeCommand removes one or more comma-separated ids.
func removeCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("familytree remove", flag.ContinueOnError)
	rest, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(rest) == 0 {
		return fmt.Errorf("missing argument: <id>")
	}
	ids, err := utils.ParseIDs(rest...)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return fmt.Errorf("missing argument: <id>")
	}

	return withSession(ctx, cfg, func(s *session) error {
		// Check every id first so a bad id removes nothing.
		for _, id := range ids {
			if !s.family.Has(id) {
				_, err := s.family.Get(id)
				return err
			}
		}
		for _, id := range ids {
			p, _ := s.family.Get(id)
			if err := s.family.Remove(id); err != nil {
				return err
			}
			fmt.Fprintf(stdout, "Removed %s\n", p.FullName())
		}
		return s.save(ctx)
	})
}

// exportCommand writes the family to a JSON document.
func exportCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("familytree export", flag.ContinueOnError)
	rest, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if err := expectArgs(rest, "<file>"); err != nil {
		return err
	}

	return withSession(ctx, cfg, func(s *session) error {
		doc, err := jsonstore.FromTable(s.family.Name(), store.Table{Header: codec.Header(), Rows: s.family.Rows()})
		if err != nil {
			return err
		}
		if err := doc.Save(rest[0]); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Exported %d members to %s\n", s.family.Len(), rest[0])
		return nil
	})
}

// importCommand replaces the family with the members of a JSON document.
func importCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("familytree import", flag.ContinueOnError)
	replace := fs.Bool("replace", false, "Overwrite a family that already has members")
	rest, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if err := expectArgs(rest, "<file>"); err != nil {
		return err
	}

	doc, err := jsonstore.Load(rest[0])
	if err != nil {
		return err
	}

	return withSession(ctx, cfg, func(s *session) error {
		if s.family.Len() > 0 && !*replace {
			return fmt.Errorf("family %q already has %d members: use -replace to overwrite", s.family.Name(), s.family.Len())
		}
		f, err := family.Load(s.family.Name(), doc.Table().Rows)
		if err != nil {
			return fmt.Errorf("importing %s: %w", rest[0], err)
		}
		s.family = f
		if err := s.save(ctx); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Imported %d members into %s\n", f.Len(), f.Name())
		return nil
	})
}

// familiesCommand lists the families in the configured database.
func familiesCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("familytree families", flag.ContinueOnError)
	rest, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if err := expectArgs(rest); err != nil {
		return err
	}
	if !cfg.IsSQL() {
		return fmt.Errorf("families needs a sql backend (got %s)", cfg.Backend)
	}
	names, err := listFamilies(ctx, cfg)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Fprintln(stdout, "No families stored.")
		return nil
	}
	for _, name := range names {
		fmt.Fprintln(stdout, name)
	}
	return nil
}

func listFamilies(ctx context.Context, cfg *config.Config) ([]string, error) {
	if cfg.Backend == utils.BackendPostgres {
		return sqlstore.ListFamilies(ctx, sqlstore.Postgres, cfg.DSN)
	}
	return sqlstore.ListFamilies(ctx, sqlstore.SQLite, cfg.Database)
}

// tuiCommand launches the read-only viewer.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("familytree tui", flag.ContinueOnError)
	rest, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if err := expectArgs(rest); err != nil {
		return err
	}
	return withSession(ctx, cfg, func(s *session) error {
		return ui.RunTUI(ctx, s.family, cfg.DateStyle())
	})
}

// journalCommand prints the latest change journal of the family.
func journalCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("familytree journal", flag.ContinueOnError)
	n := fs.Int("n", 0, "Number of lines to show (0 = all)")
	rest, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if err := expectArgs(rest); err != nil {
		return err
	}
	if cfg.Family == "" {
		return fmt.Errorf("no family selected: use --family or set family in familytree.toml")
	}

	dir, err := logging.JournalDir(cfg.LogDir, cfg.ProjectRoot, cfg.Family)
	if err != nil {
		return fmt.Errorf("finding journal directory: %w", err)
	}
	path, err := logging.FindLatest(dir)
	if err != nil {
		return fmt.Errorf("finding latest journal: %w", err)
	}
	if path == "" {
		fmt.Fprintln(stdout, "No journal files found.")
		return nil
	}

	fmt.Fprintf(stdout, "Journal: %s\n\n", path)
	return logging.Tail(stdout, path, *n)
}

// configCommand prints the effective configuration with the source of
// each value, or an example file for "config init".
func configCommand(cws *config.ConfigWithSources, args []string) error {
	if len(args) > 0 {
		if args[0] != "init" || len(args) > 1 {
			return fmt.Errorf("unexpected arguments: %v", args)
		}
		fmt.Fprint(stdout, config.ExampleConfig())
		return nil
	}

	if file := cws.GetConfigFile(); file != "" {
		fmt.Fprintf(stdout, "# config file: %s\n", file)
	}
	if err := toml.NewEncoder(stdout).Encode(cws.Config); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "# sources")
	keys := make([]string, 0, len(cws.Sources))
	for k := range cws.Sources {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(stdout, "# %-18s %s\n", k, cws.Sources[k])
	}
	return nil
}
