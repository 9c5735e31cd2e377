package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"loctab/internal/config"
	"loctab/internal/manager"
	"loctab/internal/report"
	"loctab/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Handle --version flag
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Printf("loctab %s\ncommit: %s\nbuilt: %s\n", version, commit, date)
		os.Exit(0)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath = flag.String("config", "", "project configuration file (default "+config.DefaultFile+" when present)")
		tablePath  = flag.String("table", "", "translation table path (.xlsx or .csv)")
		localesDir = flag.String("locales-dir", "", "directory holding the generated nested documents")
		jsonDir    = flag.String("json-dir", "", "directory holding the flat per-locale JSON files")
		action     = flag.String("action", "tui", "update | add | generate | scan | merge-js | merge-json | sync-json | tui")
		class      = flag.String("class", "", "class (group) name for update/add")
		key        = flag.String("key", "", "key name for update/add")
		loc        = flag.String("locale", "", "locale code for update/add")
		value      = flag.String("value", "", "translation value for update/add")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *tablePath != "" {
		cfg.TablePath = *tablePath
	}
	if *localesDir != "" {
		cfg.LocalesDir = *localesDir
	}
	if *jsonDir != "" {
		cfg.JSONDir = *jsonDir
	}

	rep := report.NewSlog(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	m := manager.New(cfg.TablePath, cfg.LocalesDir, rep)

	switch *action {
	case "tui":
		p := tea.NewProgram(ui.InitialModel(), tea.WithAltScreen(), tea.WithMouseCellMotion())
		_, err := p.Run()
		return err

	case "update":
		if *class == "" || *key == "" || *loc == "" || *value == "" {
			return fmt.Errorf("update requires --class, --key, --locale and --value")
		}
		if err := m.Load(); err != nil {
			return err
		}
		m.Update(*class, *key, *loc, *value)
		return m.SaveTable()

	case "add":
		if *class == "" || *key == "" || *loc == "" || *value == "" {
			return fmt.Errorf("add requires --class, --key, --locale and --value")
		}
		if err := m.Load(); err != nil {
			return err
		}
		m.Add(*class, *key, map[string]string{*loc: *value})
		return m.SaveTable()

	case "generate":
		if err := m.Load(); err != nil {
			return err
		}
		return m.Generate(nil)

	case "scan":
		if err := m.Load(); err != nil {
			return err
		}
		applied, err := m.Scan()
		if err != nil {
			return err
		}
		fmt.Printf("Applied %d pending update(s)\n", applied)
		return nil

	case "merge-js":
		return m.MergeNested(cfg.Locales)

	case "merge-json":
		t, err := manager.MergeJSON(cfg.JSONDir, cfg.Locales, cfg.Baseline, cfg.TablePath, rep)
		if err != nil {
			return err
		}
		fmt.Printf("Merged %d translation key(s) into %s\n", t.Len(), cfg.TablePath)
		return nil

	case "sync-json":
		changed, err := manager.SyncJSON(cfg.TablePath, cfg.JSONDir, rep)
		if err != nil {
			return err
		}
		fmt.Printf("Total updated entries: %d\n", changed)
		return nil

	default:
		return fmt.Errorf("unknown action %q", *action)
	}
}
