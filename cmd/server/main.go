package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/campus-pulse/backend/internal/config"
	"github.com/campus-pulse/backend/internal/database"
	"github.com/campus-pulse/backend/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Printf("Loaded %s", cfg)

	db, err := database.New(cfg.DatabaseURL, cfg.DBMaxOpenConns)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	srv := server.New(cfg, db)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	// Stop accepting new connections and drain in-flight requests before
	// releasing the pool.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	if err := db.Close(); err != nil {
		log.Printf("Error closing database pool: %v", err)
	}

	log.Println("Server exiting")
}
