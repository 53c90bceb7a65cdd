// Package cmd implements the CLI command structure for familytree.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nibzard/familytree-go/internal/config"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Standard streams, replaced in tests.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Run executes the familytree CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("familytree", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := cws.Config
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	// Determine the subcommand
	// If no args or first arg is a flag, use "menu" as default
	subcommand := "menu"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 {
		if !strings.HasPrefix(remainingArgs[0], "-") {
			subcommand = remainingArgs[0]
			remainingArgs = remainingArgs[1:]
		}
	}

	switch subcommand {
	case "menu":
		return menuCommand(ctx, cfg, remainingArgs)
	case "ls":
		return lsCommand(ctx, cfg, remainingArgs)
	case "birthdays":
		return birthdaysCommand(ctx, cfg, remainingArgs)
	case "show":
		return showCommand(ctx, cfg, remainingArgs)
	case "relatives":
		return relativesCommand(ctx, cfg, remainingArgs)
	case "link":
		return linkCommand(ctx, cfg, remainingArgs)
	case "remove":
		return removeCommand(ctx, cfg, remainingArgs)
	case "export":
		return exportCommand(ctx, cfg, remainingArgs)
	case "import":
		return importCommand(ctx, cfg, remainingArgs)
	case "families":
		return familiesCommand(ctx, cfg, remainingArgs)
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs)
	case "journal":
		return journalCommand(cfg, remainingArgs)
	case "config":
		return configCommand(cws, remainingArgs)
	case "version", "--version", "-v":
		return versionCommand()
	case "help", "--help", "-h":
		printUsage(fs, stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Fprintf(stdout, "familytree version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Familytree - Keep family records and browse birthdays and relatives")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  familytree [options] [command] [command options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  menu              Interactive menu (default command)")
	fmt.Fprintln(w, "  ls                List family members")
	fmt.Fprintln(w, "  birthdays         List upcoming birthdays of living members")
	fmt.Fprintln(w, "  show <id>         Show one member with parents and children")
	fmt.Fprintln(w, "  relatives <id>    Show relatives and descendant count")
	fmt.Fprintln(w, "  link <child>      Set parents (-mother N, -father N, 0 = unknown)")
	fmt.Fprintln(w, "  remove <id>[,id]  Remove members")
	fmt.Fprintln(w, "  export <file>     Write the family to a JSON document")
	fmt.Fprintln(w, "  import <file>     Replace the family with a JSON document")
	fmt.Fprintln(w, "  families          List families stored in the database (sql backends)")
	fmt.Fprintln(w, "  tui               Launch terminal viewer")
	fmt.Fprintln(w, "  journal           Show the latest change journal")
	fmt.Fprintln(w, "  config [init]     Show effective config, or print an example file")
	fmt.Fprintln(w, "  version           Show version information")
	fmt.Fprintln(w, "  help              Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Journal Options (use with 'journal' command):")
	fmt.Fprintln(w, "  -n int")
	fmt.Fprintln(w, "        Number of lines to show (0 = all)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Ls Options (use with 'ls' command):")
	fmt.Fprintln(w, "  -living    Only show living members")
}
