package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/yooku98/sales-dashboard/internal/config"
	"github.com/yooku98/sales-dashboard/internal/handler"
	"github.com/yooku98/sales-dashboard/internal/repository"
	"github.com/yooku98/sales-dashboard/internal/server"
	"github.com/yooku98/sales-dashboard/internal/service"
)

func main() {
	// Load configuration
	log.Println("Loading configuration...")
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize snapshot repository
	log.Printf("Initializing %s snapshot repository...", cfg.SnapshotBackend)
	repo, err := newSnapshotRepository(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize repository: %v", err)
	}

	// Create dataset service
	datasetService := service.NewDatasetService(repo, cfg.DataDir, cfg.TopProductLimit)

	// Seed the store on first-ever run
	if err := datasetService.SeedIfEmpty(context.Background()); err != nil {
		log.Fatalf("Failed to seed dataset: %v", err)
	}

	// Create handler
	datasetHandler := handler.NewDatasetHandler(datasetService, cfg.Palette)

	// Create and configure server
	log.Println("Configuring server...")
	appServer := server.NewServer(cfg)
	appServer.RegisterDatasetRoutes(datasetHandler)

	// Start server (blocking call)
	log.Printf("Starting server on port %d...", cfg.Port)
	if err := appServer.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}

	fmt.Println("Server shutdown complete")
}

// newSnapshotRepository picks the snapshot backend from configuration
func newSnapshotRepository(cfg *config.Config) (repository.SnapshotRepository, error) {
	if cfg.SnapshotBackend == config.BackendSQLite {
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		dbPath := filepath.Join(cfg.DataDir, cfg.SnapshotKey+".db")
		return repository.NewSQLiteSnapshotRepository(dbPath, cfg.SnapshotKey)
	}
	return repository.NewFileSnapshotRepository(cfg.DataDir, cfg.SnapshotKey)
}
