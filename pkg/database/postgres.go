package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"courier/config"
	"courier/internal/domain/conversation"
	"courier/internal/domain/message"
	"courier/internal/domain/user"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Connect(cfg *config.Config) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		log.Fatalf("Failed to get generic database object: %v", err)
	}

	// Connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("Database connection established")
}

func Close() {
	if DB == nil {
		return
	}
	if sqlDB, err := DB.DB(); err == nil {
		sqlDB.Close()
	}
}

func Ping() error {
	if DB == nil {
		return fmt.Errorf("database not connected")
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func HealthCheck() error {
	return Ping()
}

// ApplyRawMigrations reads .sql files from the migrations directory and
// executes them in lexical order.
func ApplyRawMigrations(migrationsDir string) error {
	files, err := os.ReadDir(migrationsDir)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var names []string
	for _, file := range files {
		if filepath.Ext(file.Name()) == ".sql" {
			names = append(names, file.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(migrationsDir, name)
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", name, err)
		}

		log.Printf("Applying migration: %s", name)
		if err := DB.Exec(string(content)).Error; err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", name, err)
		}
	}
	return nil
}

// RunFullMigration migrates the users table first (the raw SQL references
// it), applies the raw SQL migrations, then lets GORM pick up anything the
// SQL files do not cover.
func RunFullMigration(migrationsDir string) error {
	if err := DB.AutoMigrate(&user.User{}); err != nil {
		return err
	}
	if err := ApplyRawMigrations(migrationsDir); err != nil {
		return err
	}
	return DB.AutoMigrate(
		&conversation.Conversation{},
		&message.Message{},
	)
}

func TableExists(table string) (bool, error) {
	if DB == nil {
		return false, fmt.Errorf("database not connected")
	}
	return DB.Migrator().HasTable(table), nil
}

func GetTableCount(table string) (int64, error) {
	var count int64
	err := DB.Table(table).Count(&count).Error
	return count, err
}

func DropAllTables() error {
	return DB.Migrator().DropTable(
		&message.Message{},
		&conversation.Conversation{},
		&user.User{},
	)
}
