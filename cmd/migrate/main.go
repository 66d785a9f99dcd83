package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"courier/config"
	"courier/internal/services"
	"courier/pkg/database"
)

const usage = `
Courier - Database CLI Tool

Usage:
  migrate [command] [flags]

Commands:
  up          Run all migrations (SQL + GORM)
  status      Show database connection status
  seed-dev    Seed with development/test data and print dev tokens
  reset       Drop all tables and re-run migrations (DANGEROUS)

Flags:
  -migrations string   Path to migrations directory (default "migrations")

Examples:
  go run cmd/migrate/main.go up
  go run cmd/migrate/main.go seed-dev
  go run cmd/migrate/main.go reset
`

func main() {
	migrationsDir := flag.String("migrations", "migrations", "Path to migrations directory")

	flag.Usage = func() {
		fmt.Print(usage)
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	command := flag.Arg(0)

	cfg := config.LoadConfig()
	database.Connect(cfg)
	defer database.Close()

	switch command {
	case "up":
		runMigrationsUp(*migrationsDir)
	case "status":
		showStatus()
	case "seed-dev":
		runSeedDevelopment(cfg)
	case "reset":
		runReset(*migrationsDir)
	default:
		fmt.Printf("Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}
}

func runMigrationsUp(migrationsDir string) {
	log.Println("Running migrations...")

	if err := database.RunFullMigration(migrationsDir); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migrations completed successfully")
}

func showStatus() {
	log.Println("Checking database status...")

	if err := database.Ping(); err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Database connection: OK")

	for _, table := range []string{"users", "conversations", "messages"} {
		exists, err := database.TableExists(table)
		if err != nil {
			log.Printf("Error checking table %s: %v", table, err)
			continue
		}
		if exists {
			count, _ := database.GetTableCount(table)
			log.Printf("Table %-15s exists (%d rows)", table, count)
		} else {
			log.Printf("Table %-15s does not exist", table)
		}
	}
}

func runSeedDevelopment(cfg *config.Config) {
	log.Println("Seeding database (development mode)...")

	result, err := database.SeedDevelopment()
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	tokens := services.NewTokenService(cfg.JWTSecret, cfg.JWTExpiryMin)

	log.Println("Seed summary:")
	for _, u := range result.Users {
		token, err := tokens.IssueAccessToken(u.ID)
		if err != nil {
			log.Printf("   - %s (%s): failed to mint token: %v", u.Username, u.ID, err)
			continue
		}
		log.Printf("   - %s (%s)", u.Username, u.ID)
		log.Printf("     token: %s", token)
	}
	log.Printf("   - Messages seeded: %d", len(result.Messages))
	log.Println("Development seeding completed")
}

func runReset(migrationsDir string) {
	log.Println("WARNING: dropping all tables and re-running migrations")

	if err := database.DropAllTables(); err != nil {
		log.Fatalf("Failed to drop tables: %v", err)
	}

	if err := database.RunFullMigration(migrationsDir); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Database reset completed")
}
