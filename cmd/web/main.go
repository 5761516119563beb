package main

import (
	"context"
	"fmt"
	"log"

	"github.com/leasematch/internal/audit"
	"github.com/leasematch/internal/config"
	"github.com/leasematch/internal/db"
	"github.com/leasematch/internal/engine"
	"github.com/leasematch/internal/postal"
	"github.com/leasematch/internal/source"
	"github.com/leasematch/internal/web"
	"github.com/leasematch/internal/web/handlers"
)

func main() {
	cfg, err := config.LoadOrEnv(config.GetEnv("LEASEMATCH_CONFIG", "leasematch.yaml"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	fmt.Println("=== leasematch Web API ===")
	fmt.Printf("Server: http://%s:%d\n", cfg.Server.Host, cfg.Server.Port)
	fmt.Printf("Similarity: %s (threshold %.2f), buckets: %s\n",
		cfg.Matching.SimilarityMethod, cfg.Matching.Threshold, cfg.Matching.BucketStrategy)

	eng, err := engine.New(cfg, postal.NewTagger(cfg.Debug))
	if err != nil {
		log.Fatalf("Failed to build engine: %v", err)
	}

	// Stored deals are only served when a database is configured
	var src source.Source
	var runs handlers.RunStore
	if cfg.Database.URL != "" {
		dbConn, err := db.NewConnection(cfg.Database)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer dbConn.Close()

		pg := source.NewPostgres(dbConn)
		pg.Debug = cfg.Debug
		src = pg

		tracker := audit.NewTracker(dbConn.DB)
		tracker.Debug = cfg.Debug
		if err := tracker.EnsureSchema(context.Background()); err != nil {
			log.Fatalf("Failed to prepare run history: %v", err)
		}
		runs = tracker
		fmt.Println("Database connected successfully")
	} else {
		fmt.Println("No database configured, /api/deals/{id}/match disabled")
	}

	if cfg.Server.APIKey == "" {
		fmt.Println("Warning: API_KEY not set, /api is unauthenticated")
	}

	server := web.NewServer(eng, src, runs)
	if err := server.Start(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
