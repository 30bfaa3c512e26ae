package main

import (
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/shoumique/employee-reporter/adapters/bijoy"
	"github.com/shoumique/employee-reporter/adapters/postgres"
	"github.com/shoumique/employee-reporter/internal/config"
	"github.com/shoumique/employee-reporter/internal/errors"
	"github.com/shoumique/employee-reporter/ui"
)

// initDatabase connects to PostgreSQL and verifies the connection.
func initDatabase(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}
	return db, nil
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := initDatabase(cfg)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	repo, err := postgres.NewUploadRepository(db)
	if err != nil {
		log.Fatalf("Failed to initialize upload repository: %v", err)
	}

	server := ui.NewServer(cfg, repo, bijoy.New())
	log.Printf("Starting employee-reporter on port %s", cfg.Server.Port)
	log.Fatal(server.Run())
}
