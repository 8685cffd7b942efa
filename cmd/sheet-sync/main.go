package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fwpboutique/crystalshop/internal/config"
	"github.com/fwpboutique/crystalshop/internal/repository/postgres"
	"github.com/fwpboutique/crystalshop/internal/sheets"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/sheet-sync/main.go ping")
		fmt.Println("       go run cmd/sheet-sync/main.go <record-id>")
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	client := sheets.NewClient(cfg.Sheets, logger)
	if !client.Enabled() {
		fmt.Fprintln(os.Stderr, "SHEETS_WEBHOOK_URL is not set")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if os.Args[1] == "ping" {
		if err := client.Ping(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Ping failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("✅ Test row sent. Check the sheet for a \"Ping OK\" entry.\n")
		return
	}

	recordID, err := uuid.Parse(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid record ID: %v\n", err)
		os.Exit(1)
	}

	// Connect to database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	repos := postgres.NewRepositories(db, logger)
	record, err := repos.Records.GetByID(ctx, recordID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load record: %v\n", err)
		os.Exit(1)
	}
	if !record.HasOrder() {
		fmt.Fprintf(os.Stderr, "❌ Record %s has no order to sync.\n", recordID)
		os.Exit(1)
	}

	if err := client.Sync(ctx, record); err != nil {
		fmt.Fprintf(os.Stderr, "Sync failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Order %s re-sent to the sheet.\n", record.ShortID())
	fmt.Printf("Name: %s\n", record.ShippingDetails.RealName)
	fmt.Printf("Total: %d\n", record.ShippingDetails.TotalPrice)
}
