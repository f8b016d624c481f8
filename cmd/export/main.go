package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"carpool/internal/config"
	"carpool/internal/database"
	"carpool/internal/repository"
	"carpool/internal/service"
)

func main() {
	output := flag.String("output", "", "Output file path (default: carpool_export_YYYYMMDD_HHMMSS.json)")
	month := flag.String("month", "", "Restrict export to one month (YYYY-MM); default exports everything")
	flag.Usage = printUsage
	flag.Parse()

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations to ensure schema is up to date
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	exportService := service.NewExportService(
		repository.NewMemberRepository(db),
		repository.NewEntryRepository(db),
	)

	outputPath := *output
	if outputPath == "" {
		timestamp := time.Now().Format("20060102_150405")
		outputPath = fmt.Sprintf("carpool_export_%s.json", timestamp)
	}

	// Ensure directory exists
	dir := filepath.Dir(outputPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create output directory: %v", err)
		}
	}

	f, err := os.Create(outputPath)
	if err != nil {
		log.Fatalf("Failed to create output file: %v", err)
	}
	defer f.Close()

	log.Printf("Exporting ledger to: %s", outputPath)
	if err := exportService.Export(f, *month); err != nil {
		log.Fatalf("Export failed: %v", err)
	}

	fileInfo, _ := os.Stat(outputPath)
	log.Printf("Export complete! File size: %.2f KB", float64(fileInfo.Size())/1024)
}

func printUsage() {
	fmt.Println("Carpool Ledger Export Tool")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  export [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -output <file>    Output file path (default: carpool_export_YYYYMMDD_HHMMSS.json)")
	fmt.Println("  -month <YYYY-MM>  Restrict the export to one month")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  # Export everything")
	fmt.Println("  export")
	fmt.Println()
	fmt.Println("  # Export one month to a named file")
	fmt.Println("  export -month 2026-03 -output march.json")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  DB_TYPE    Database type: sqlite, postgres, or mysql (default: sqlite)")
	fmt.Println("  DB_PATH    SQLite database path (default: ./carpool.db)")
	fmt.Println("  DB_URL     PostgreSQL or MySQL connection URL")
}
