package main

import (
	"context"
	"fmt"
	"os"

	"codeberg.org/papermind/server/internal/config"
	"codeberg.org/papermind/server/internal/logger"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: ingester <command> [options]")
		fmt.Println("Commands:")
		fmt.Println("  document <document-id>  - download, chunk and embed a stored document")
		fmt.Println("  status <document-id>    - show a document's embedding status")
		fmt.Println("  inspect <pdf-path>      - extract and chunk a local PDF without storing anything")
		fmt.Println("\nOptions for inspect:")
		fmt.Println("  --chunk-size <n>    - maximum chunk length in characters")
		fmt.Println("  --chunk-overlap <n> - characters carried between adjacent chunks")
		os.Exit(1)
	}

	command := os.Args[1]

	// inspect works offline, no config or database needed
	if command == "inspect" {
		if err := InspectFile(os.Args[2:]); err != nil {
			logger.Fatal("inspect failed", "error", err)
		}

		return
	}

	if len(os.Args) < 3 {
		fmt.Printf("Usage: ingester %s <document-id>\n", command)
		os.Exit(1)
	}

	documentID := os.Args[2]

	// load environment variables
	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		logger.Fatal("failed to load configuration", "error", err)
	}

	// connect to database
	ctx := context.Background()

	db, err := pgxpool.New(ctx, cfg.SupabaseConnString)
	if err != nil {
		logger.Fatal("failed to create database pool", "error", err)
	}

	defer db.Close()

	if err := db.Ping(ctx); err != nil {
		logger.Fatal("failed to ping database", "error", err)
	}

	logger.Info("connected to database")

	switch command {
	case "document":
		if err := IngestDocument(ctx, cfg, db, documentID); err != nil {
			logger.Fatal("failed to ingest document", "document_id", documentID, "error", err)
		}

	case "status":
		if err := ShowStatus(ctx, cfg, db, documentID); err != nil {
			logger.Fatal("failed to fetch status", "document_id", documentID, "error", err)
		}

	default:
		fmt.Printf("Unknown command: %s\n", command)
		os.Exit(1)
	}
}
