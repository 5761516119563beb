package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/leasematch/internal/config"
)

// Connection holds the database connection
type Connection struct {
	DB *sql.DB
}

// NewConnection opens the extracted-document database. An empty URL is
// assembled from the standard PG* environment variables.
func NewConnection(cfg config.DatabaseConfig) (*Connection, error) {
	dsn := cfg.URL
	if dsn == "" {
		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			config.GetEnv("PGHOST", "localhost"),
			config.GetEnv("PGPORT", "5432"),
			config.GetEnv("PGUSER", "leasematch"),
			config.GetEnv("PGPASSWORD", ""),
			config.GetEnv("PGDATABASE", "leasematch"),
			config.GetEnv("PGSSLMODE", "disable"))
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	maxConns := cfg.MaxConnections
	if maxConns <= 0 {
		maxConns = 10
	}
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns / 2)

	return &Connection{DB: db}, nil
}

// Close closes the database connection
func (c *Connection) Close() error {
	return c.DB.Close()
}
