package main

import (
	"fmt"
	"log"

	"nfscan/internal/config"
	"nfscan/internal/extract"
	"nfscan/internal/handler"
	"nfscan/internal/parser"
	_ "nfscan/internal/parser/claude"
	"nfscan/internal/port"
	"nfscan/internal/repository/postgres"
	"nfscan/internal/router"
	"nfscan/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	repo := postgres.NewExtractionRepo(db)
	extractor := extract.NewExtractor()

	invoiceParser, err := buildParser(&cfg.Parser)
	if err != nil {
		return fmt.Errorf("failed to build parser: %w", err)
	}

	invoiceSvc := service.NewInvoiceService(extractor, invoiceParser, repo, cfg.Parser.Strategy, cfg.Upload.MaxFileSizeMB)

	invoiceH := handler.NewInvoiceHandler(invoiceSvc)
	healthH := handler.NewHealthHandler(db)

	r := router.Setup(cfg, invoiceH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

// buildParser wires the configured strategy. The LLM strategy falls back to
// the deterministic parser when the API is rate limited or down.
func buildParser(cfg *config.ParserConfig) (port.InvoiceParser, error) {
	primary, err := parser.NewParser(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Strategy == "text" {
		return primary, nil
	}
	return parser.NewFallbackParser(
		[]port.InvoiceParser{primary, parser.NewTextParser()},
		[]string{cfg.Strategy, "text"},
	), nil
}
