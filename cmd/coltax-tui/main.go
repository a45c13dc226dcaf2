package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/coltax/internal/calculation"
	"github.com/rgehrsitz/coltax/internal/compare"
	"github.com/rgehrsitz/coltax/internal/config"
	"github.com/rgehrsitz/coltax/internal/tui"
	"github.com/rgehrsitz/coltax/pkg/logger"
)

func main() {
	settings, err := config.LoadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		os.Exit(1)
	}

	ty, source, err := settings.TaxYear()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading tax year: %v\n", err)
		os.Exit(1)
	}

	// the alternate screen owns the terminal, so logs only go to a file
	log := logger.Nop()
	if path := os.Getenv("COLTAX_TUI_LOG"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log = logger.New(logger.Config{Env: "production", Level: settings.LogLevel, Out: f})
	}

	engine := calculation.NewEngine(ty)
	engine.SetLogger(log.Zerolog())

	model := tui.NewModel(compare.NewCompareEngine(engine), ty.SimpleGroups(), settings.ActivityGroup, source)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
