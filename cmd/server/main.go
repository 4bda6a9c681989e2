package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/go-chi/chi/v5"

	"github.com/levelup-life/levelup-service/internal/challenge"
	"github.com/levelup-life/levelup-service/internal/config"
	"github.com/levelup-life/levelup-service/internal/game"
	"github.com/levelup-life/levelup-service/internal/httpapi"
	"github.com/levelup-life/levelup-service/internal/logging"
	"github.com/levelup-life/levelup-service/internal/server"
	"github.com/levelup-life/levelup-service/internal/store"
)

func main() {
	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Errorf("config error: %w", err))
	}

	logger := logging.NewLogger("levelup-service")

	var st store.Store
	switch cfg.Datastore {
	case "memory":
		st = store.NewMemoryStore()
	case "sqlite":
		st, err = store.NewSQLiteStore(ctx, cfg.SQLitePath)
		if err != nil {
			panic(fmt.Errorf("sqlite store: %w", err))
		}
	case "firestore":
		client, err := firestore.NewClient(ctx, cfg.GCPProjectID)
		if err != nil {
			panic(fmt.Errorf("firestore client: %w", err))
		}
		st = store.NewFirestoreStore(client)
	}
	logger.Info("datastore initialized", "datastore", cfg.Datastore)

	var gen challenge.Generator
	if cfg.GeminiAPIKey != "" {
		gen, err = challenge.NewGeminiGenerator(ctx, challenge.GeneratorConfig{
			APIKey:          cfg.GeminiAPIKey,
			Model:           cfg.GeminiModel,
			MaxOutputTokens: cfg.GeminiMaxOutputTokens,
		})
		if err != nil {
			panic(fmt.Errorf("gemini generator: %w", err))
		}
	} else {
		logger.Warn("GEMINI_API_KEY not set, using template challenge generation")
		gen = challenge.NewTemplateGenerator()
	}

	svc, err := game.New(ctx, st, gen, logger)
	if err != nil {
		panic(fmt.Errorf("game service: %w", err))
	}
	defer svc.Close()

	router := server.NewRouter("levelup-service", func(r chi.Router) {
		httpapi.RegisterRoutes(r, svc, logger)
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	if err := server.Run(ctx, srv, logger); err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic(err)
	}
}
