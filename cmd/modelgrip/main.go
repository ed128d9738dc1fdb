package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"modelgrip/internal/catalog"
	"modelgrip/internal/config"
	"modelgrip/internal/domain"
	"modelgrip/internal/eventbus"
	"modelgrip/internal/ui"
)

var (
	configPath  string
	catalogPath string
)

func main() {
	root := &cobra.Command{
		Use:          "modelgrip",
		Short:        "Keyboard-driven provider/model switcher",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI()
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: user config dir)")
	root.PersistentFlags().StringVar(&catalogPath, "catalog", "", "catalog file (default: next to the config file)")

	root.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print the available models and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd)
		},
	})

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newConfigService() config.Service {
	if configPath != "" {
		return config.NewServiceAt(configPath)
	}
	return config.NewService()
}

func loadConfig(svc config.Service) *config.Config {
	cfg, err := svc.Load()
	if err != nil {
		log.Printf("Error loading config: %v", err)
		cfg = config.DefaultConfig()
	}
	return cfg
}

func loadCatalog(svc config.Service, cfg *config.Config) (catalog.Catalog, error) {
	path := catalogPath
	if path == "" {
		path = filepath.Join(filepath.Dir(svc.Path()), "catalog.yaml")
	}
	allow, err := catalog.NewAllowList(cfg.AllowedModels)
	if err != nil {
		return nil, fmt.Errorf("invalid allowed_models pattern: %w", err)
	}
	return catalog.Load(path, allow)
}

func runList(cmd *cobra.Command) error {
	svc := newConfigService()
	cfg := loadConfig(svc)

	cat, err := loadCatalog(svc, cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, m := range cat.ListAvailable() {
		marker := " "
		if m.Provider == cfg.Model.Provider && m.ID == cfg.Model.Model {
			marker = "*"
		}
		line := fmt.Sprintf("%s %-40s %s", marker, m.Ref(), m.Name)
		if m.Reasoning {
			line += "  (reasoning)"
		}
		fmt.Fprintln(out, line)
	}
	return nil
}

func runTUI() error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("modelgrip needs a terminal; try 'modelgrip list'")
	}

	// Set up logging
	logFile, err := os.OpenFile("modelgrip.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	svc := newConfigService()
	cfg := loadConfig(svc)

	cat, err := loadCatalog(svc, cfg)
	if err != nil {
		return err
	}

	bus := eventbus.New()

	initial := domain.Selection{
		Provider: cfg.Model.Provider,
		Model:    cfg.Model.Model,
	}
	if lvl, ok := domain.ParseThinkingLevel(cfg.Model.Thinking); ok {
		initial.Thinking = lvl
	}
	switcher := catalog.NewSwitcher(initial, catalog.EnvCredentialCheck(cat))

	uiModel := ui.NewModel(bus, svc, cfg, cat, switcher)

	p := tea.NewProgram(uiModel, tea.WithAltScreen())
	uiModel.SetProgram(p)

	bus.Publish(domain.ConfigLoadedEvent{Favourites: cfg.ValidFavourites()})

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
