package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/nickdiaz444/pickleball-open-play2/config"
	"github.com/nickdiaz444/pickleball-open-play2/db"
	"github.com/nickdiaz444/pickleball-open-play2/handlers"
	"github.com/nickdiaz444/pickleball-open-play2/hub"
	"github.com/nickdiaz444/pickleball-open-play2/rotation"
	"github.com/nickdiaz444/pickleball-open-play2/store"
)

func main() {
	cfg := config.Load()

	st, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}

	engine, err := rotation.NewEngine(st)
	if err != nil {
		log.Fatalf("Failed to load session: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	liveHub := hub.NewHub()
	go liveHub.Run(ctx)

	h := handlers.New(ctx, engine, liveHub)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Basic CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"}, // For dev
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/state", h.GetState)
	r.Get("/players", h.GetPlayers)
	r.Post("/players", h.AddPlayer)
	r.Post("/queue/shuffle", h.ShuffleQueue)
	r.Post("/courts/assign", h.AssignCourts)
	r.Post("/courts/{index}/result", h.SubmitResult)
	r.Post("/reset", h.ResetAll)
	r.Get("/history", h.GetHistory)
	r.Get("/settings", h.GetSettings)
	r.Put("/settings", h.UpdateSettings)
	r.Get("/health", h.HandleHealth)
	r.Get("/ws", h.HandleWebSocket)

	server := &http.Server{Addr: cfg.Addr, Handler: r}

	go func() {
		fmt.Printf("Pickleball Open Play Backend Service Started on %s\n", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	fmt.Println("Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}

// openStore picks the persistence backend named by the configuration.
func openStore(cfg config.Config) (store.Store, error) {
	switch cfg.StorageDriver {
	case "file":
		return store.NewFileStore(cfg.DataDir), nil
	case "sqlite":
		return db.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
