package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/vaibhav-bhosale1/AskMyPDF/internal/config"
	"github.com/vaibhav-bhosale1/AskMyPDF/internal/database"
	"github.com/vaibhav-bhosale1/AskMyPDF/internal/embedding"
	"github.com/vaibhav-bhosale1/AskMyPDF/internal/extractor"
	"github.com/vaibhav-bhosale1/AskMyPDF/internal/handler"
	"github.com/vaibhav-bhosale1/AskMyPDF/internal/llm"
)

func main() {
	// Load .env file if exists
	godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Collaborator clients are constructed once and injected explicitly.
	collab := handler.Collaborators{
		Extractor: extractor.NewPDFExtractor(),
		Embedder:  embedding.NewClient(cfg.EmbeddingAPIKey, cfg.EmbeddingBaseURL, cfg.EmbeddingModel, cfg.EmbeddingDimensions),
		Generator: llm.NewClient(cfg.GenerationAPIKey, cfg.GenerationBaseURL, cfg.GenerationModel),
	}

	// Setup router
	r := handler.SetupRouter(cfg, db, collab)

	// Start server
	addr := cfg.Host + ":" + cfg.Port
	log.Printf("AskMyPDF service starting on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
