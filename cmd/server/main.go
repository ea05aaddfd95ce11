package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/soundbridge/opportunity-engine/internal/api"
	"github.com/soundbridge/opportunity-engine/internal/db"
	"github.com/soundbridge/opportunity-engine/internal/scan"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := db.ApplyMigrations(ctx, pool); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	registry, err := scan.LoadRegistry()
	if err != nil {
		log.Fatalf("Failed to load source registry: %v", err)
	}
	log.Printf("Source registry loaded: %d sources", registry.Size())

	cfg := scan.DefaultConfig()
	if d := durationEnv("SCAN_QUICK_INTERVAL"); d > 0 {
		cfg.QuickInterval = d
	}
	if d := durationEnv("SCAN_FULL_INTERVAL"); d > 0 {
		cfg.FullInterval = d
	}

	scanner := scan.NewScanner(db.NewStore(pool), registry, cfg)
	scanner.ScheduleAutomaticScans(ctx)

	srv := api.NewServer(pool, scanner, registry)

	go func() {
		<-ctx.Done()
		log.Print("Shutting down...")
		if err := srv.Echo.Shutdown(context.Background()); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	log.Printf("Server starting on port %s...", port)
	if err := srv.Start(port); err != nil {
		log.Print(err)
	}
}

func durationEnv(name string) time.Duration {
	raw := os.Getenv(name)
	if raw == "" {
		return 0
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Ignoring invalid %s=%q: %v", name, raw, err)
		return 0
	}
	return d
}
