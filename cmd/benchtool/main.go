package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gomeasure/gomeasure/instruments"
	"github.com/gomeasure/gomeasure/instruments/registry"
	"github.com/gomeasure/gomeasure/internal/config"
	"github.com/gomeasure/gomeasure/internal/errors"
	"github.com/gomeasure/gomeasure/internal/ui"
)

var version = "0.1.0"

func printHelp() {
	fmt.Printf(`benchtool - measurement bench driver host

USAGE:
    benchtool [OPTIONS] [COMMAND]

OPTIONS:
    --help          Show this help information
    --version       Print version information
    --config        Path to bench config YAML (default: bench.yaml)
    --verbose       Log error details

COMMANDS:
    (no command)    Prompt for an output filename interactively
    list            List the registered instrument drivers
    search <query>  Search drivers by vendor, model or description
    check           Open every instrument in the bench config

EXAMPLES:
    benchtool --config lab.yaml          # Filename prompt with lab placeholders
    benchtool list                       # Show all known drivers
    benchtool search "field probe"       # Find a driver
    benchtool --config lab.yaml check    # Verify every configured connection
`)
}

func main() {
	var showVersion bool
	var showHelp bool
	var configPath string
	var verbose bool

	flag.BoolVar(&showVersion, "version", false, "Print version information")
	flag.BoolVar(&showHelp, "help", false, "Show help information")
	flag.StringVar(&configPath, "config", "bench.yaml", "Path to bench config YAML")
	flag.BoolVar(&verbose, "verbose", false, "Log error details")
	flag.Parse()

	if showHelp {
		printHelp()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("benchtool version %s\n", version)
		os.Exit(0)
	}

	handler := errors.NewCLIErrorHandler(verbose)
	reg := registry.Default()
	args := flag.Args()
	if len(args) > 0 {
		switch args[0] {
		case "list":
			for _, e := range reg.Entries() {
				fmt.Printf("%-24s %s\n", e.ID(), e.Description)
			}
		case "search":
			if len(args) < 2 {
				fmt.Fprintln(os.Stderr, "Error: search requires a query")
				os.Exit(1)
			}
			for _, e := range reg.Search(args[1]) {
				fmt.Printf("%-24s %s\n", e.ID(), e.Description)
			}
		case "check":
			if err := checkBench(reg, configPath); err != nil {
				fmt.Fprintln(os.Stderr, handler.FormatError(err))
				os.Exit(1)
			}
		default:
			fmt.Fprintf(os.Stderr, "Error: unknown command %q\n", args[0])
			os.Exit(1)
		}
		return
	}

	// No command - prompt for an output filename with the bench's
	// placeholders, if a config is present.
	var placeholders []string
	if bench, err := config.Load(configPath); err == nil {
		placeholders = bench.Placeholders
	}

	model := ui.NewFilenameInput(placeholders)
	p := tea.NewProgram(wrapper{model})
	if _, err := p.Run(); err != nil {
		fmt.Println(err)
		return
	}
	if model.Submitted() {
		fmt.Println(model.Value())
	}
}

// checkBench opens every instrument in the bench config and reports the
// resolved driver for each.
func checkBench(reg *registry.Registry, path string) error {
	bench, err := config.Load(path)
	if err != nil {
		return err
	}
	recovery := errors.NewErrorRecovery(2, 500*time.Millisecond)
	for name, inst := range bench.Instruments {
		entry, err := reg.Lookup(inst.Driver)
		if err != nil {
			return fmt.Errorf("instrument %q: %w", name, err)
		}
		var adapter instruments.Adapter
		err = recovery.Retry(func() error {
			var openErr error
			adapter, openErr = inst.Open()
			return openErr
		})
		if err != nil {
			return fmt.Errorf("instrument %q: %w", name, err)
		}
		drv := entry.New(adapter)
		fmt.Printf("%-16s %s on %s: ok\n", name, drv.Name(), inst.Port)
	}
	return nil
}

// wrapper adapts FilenameInput's pointer-receiver methods to the tea.Model
// interface and quits the program once a filename is committed.
type wrapper struct {
	m *ui.FilenameInput
}

func (w wrapper) Init() tea.Cmd {
	return w.m.Init()
}

func (w wrapper) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyCtrlC {
		return w, tea.Quit
	}
	cmd := w.m.Update(msg)
	if w.m.Submitted() {
		return w, tea.Quit
	}
	return w, cmd
}

func (w wrapper) View() string {
	return w.m.View()
}
