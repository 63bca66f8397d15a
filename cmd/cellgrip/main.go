// Package main provides the CLI entry point for cellgrip.
package main

import (
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"cellgrip/internal/clipboard"
	"cellgrip/internal/config"
	"cellgrip/internal/domain"
	"cellgrip/internal/eventbus"
	"cellgrip/internal/format"
	"cellgrip/internal/selection"
	"cellgrip/internal/source"
	"cellgrip/internal/ui"
)

var (
	configPath    string
	clipboardMode string
	locale        string
	exportOnly    bool
	saveConfig    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cellgrip [file]",
		Short: "Select cells in a table and copy them as TSV",
		Long: `cellgrip shows a CSV, JSON or XLSX table in the terminal. Drag with the
mouse to select a rectangle of cells and press ctrl+c to copy it in a form
spreadsheets paste as cells.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         run,
	}

	rootCmd.Flags().StringVar(&configPath, "config", "", "Config file path (default: user config dir)")
	rootCmd.Flags().StringVar(&clipboardMode, "clipboard", "", "Clipboard backend: auto, system, osc52, memory")
	rootCmd.Flags().StringVar(&locale, "locale", "", "Message locale: en, es")
	rootCmd.Flags().BoolVar(&exportOnly, "export", false, "Print the whole table as TSV and exit")
	rootCmd.Flags().BoolVar(&saveConfig, "save-config", false, "Write the effective settings back to the config file")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	// Set up logging
	logFile, err := os.OpenFile("cellgrip.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Create event bus
	bus := eventbus.New()

	configSvc := config.NewConfigServiceWithBus(bus)
	cfg, err := loadConfig(configSvc)
	if err != nil {
		return err
	}
	if clipboardMode != "" {
		cfg.Clipboard.Backend = clipboardMode
	}
	if locale != "" {
		cfg.Locale = locale
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if saveConfig {
		if err := persistConfig(configSvc, cfg); err != nil {
			return err
		}
	}

	table, err := source.Load(args[0])
	if err != nil {
		return err
	}
	table.Columns = format.Apply(cfg.ApplyColumns(table.Columns))
	log.Printf("Loaded %s: %d columns, %d rows", args[0], len(table.Columns), len(table.Rows))

	if exportOnly {
		return exportAll(cmd, table, cfg)
	}

	clip, err := clipboard.New(cfg.Clipboard.Backend, os.Stderr)
	if err != nil {
		return err
	}

	// Create UI model
	uiModel := ui.NewModel(bus, cfg, table, ui.Options{Clipboard: clip, SourcePath: args[0]})
	defer uiModel.Close()

	// Create Bubble Tea program
	p := tea.NewProgram(uiModel, tea.WithAltScreen(), tea.WithMouseCellMotion())
	uiModel.SetProgram(p)

	// Set up event forwarding to UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			// Channel full, drop event
			log.Println("Event channel full, dropping event")
		}
	}
	for _, t := range []eventbus.EventType{
		eventbus.EventSelectionChanged,
		eventbus.EventCopyCompleted,
		eventbus.EventCopyFailed,
	} {
		defer bus.Subscribe(t, forward)()
	}

	// Start forwarding events to UI in background
	done := make(chan struct{})
	go func() {
		for {
			select {
			case event := <-eventChan:
				p.Send(ui.EventMsg{Event: event})
			case <-done:
				return
			}
		}
	}()
	defer close(done)

	// Run the UI
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

func loadConfig(configSvc config.ConfigService) (*config.Config, error) {
	if configPath == "" {
		cfg, err := configSvc.Load()
		if err != nil {
			log.Printf("Error loading config: %v", err)
			// Use default config
			return config.DefaultConfig(), nil
		}
		return cfg, nil
	}

	cfg, err := configSvc.LoadFromPath(configPath)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// persistConfig saves cfg where it was loaded from
func persistConfig(configSvc config.ConfigService, cfg *config.Config) error {
	if configPath != "" {
		return configSvc.SaveToPath(cfg, configPath)
	}
	if err := configSvc.Save(cfg); err != nil {
		return err
	}
	log.Printf("Saved config to %s", config.DefaultPath())
	return nil
}

// exportAll selects every cell and prints the clipboard payload
func exportAll(cmd *cobra.Command, table *domain.Table, cfg *config.Config) error {
	data := source.TableSource{Table: table}
	engine := selection.NewEngine(data, nil, selection.NewSummarizer(cfg.Locale), selection.Options{})
	engine.SelectAll(len(table.Rows), table.Columns)

	res, ok := engine.PrepareCopy()
	if !ok {
		return nil
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), res.Text)
	return err
}
