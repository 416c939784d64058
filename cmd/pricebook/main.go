package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/jask/pricebook/internal/config"
	"github.com/jask/pricebook/internal/database"
	"github.com/jask/pricebook/internal/database/repository"
	"github.com/jask/pricebook/internal/photocache"
	"github.com/jask/pricebook/internal/service"
	"github.com/jask/pricebook/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "pricebook:", err)
		os.Exit(1)
	}
}

func run() error {
	// optional .env for local overrides; a missing file is not an error
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	if err := database.RunMigrations(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	photos, err := photocache.Open(cfg.Contacts.PhotoCachePath)
	if err != nil {
		return fmt.Errorf("open photo cache: %w", err)
	}
	defer photos.Flush()

	catalog := &service.CatalogService{
		Lists: repository.NewPriceListRepo(db),
	}
	contactSvc := &service.ContactService{
		Contacts:   repository.NewContactRepo(db),
		Categories: repository.NewContactCategoryRepo(db),
		Threshold:  cfg.Contacts.DuplicateThreshold,
	}

	m := tui.New(cfg, catalog, contactSvc, photos)
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
