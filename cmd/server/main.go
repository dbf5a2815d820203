package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gridironai/api/internal/auth"
	"github.com/gridironai/api/internal/config"
	"github.com/gridironai/api/internal/handler"
	"github.com/gridironai/api/internal/logger"
	"github.com/gridironai/api/internal/middleware"
	"github.com/gridironai/api/internal/predict"
	"github.com/gridironai/api/internal/repository"
	"github.com/gridironai/api/internal/repository/postgres"
	redisrepo "github.com/gridironai/api/internal/repository/redis"
	"github.com/gridironai/api/internal/service"
)

func main() {
	logger.Init()
	cfg := config.Load()
	log.Info().Str("databaseURL", cfg.DatabaseURL).Msg("Config loaded")

	// Database
	db, err := postgres.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Database connection failed")
	}
	defer db.Close()

	// Redis (optional; tensors are rebuilt on every request without it)
	var cache repository.TensorCache
	redisClient, err := redisrepo.NewClient(cfg.RedisURL)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, tensor caching disabled")
	} else {
		defer redisClient.Close()
		cache = redisClient
	}

	// Repos
	playerRepo := postgres.NewPlayerRepo(db)
	teamRepo := postgres.NewTeamRepo(db)
	seasonRepo := postgres.NewSeasonRepo(db)
	gameRepo := postgres.NewGameRepo(db)
	playRepo := postgres.NewPlayRepo(db)

	// Auth
	jwtMgr := auth.NewJWTManager(cfg.JWTSecret)

	// Model
	mdl := predict.New(cfg.ModelPath)
	log.Info().Str("model", mdl.Name()).Msg("Prediction model loaded")

	// Services
	tensorSvc := service.NewTensorService(playerRepo, teamRepo, seasonRepo, gameRepo, cache)
	predictionSvc := service.NewPredictionService(tensorSvc, mdl, gameRepo, playerRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(jwtMgr, cfg.APIKey)
	statusHandler := handler.NewStatusHandler(mdl.Name())
	playerHandler := handler.NewPlayerHandler(playerRepo, tensorSvc)
	gameHandler := handler.NewGameHandler(gameRepo, playRepo, tensorSvc)
	predictHandler := handler.NewPredictHandler(predictionSvc)
	ingestHandler := handler.NewIngestHandler(playerRepo, teamRepo, seasonRepo, gameRepo, playRepo, cache)

	// Router
	mux := http.NewServeMux()
	authMw := auth.Middleware(jwtMgr)

	// Health
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Auth (public)
	mux.HandleFunc("POST /auth/token", authHandler.IssueToken)
	mux.HandleFunc("POST /auth/refresh", authHandler.RefreshToken)

	// Protected API routes
	api := http.NewServeMux()
	api.HandleFunc("GET /status", statusHandler.Status)
	api.HandleFunc("GET /players/{id}", playerHandler.GetPlayer)
	api.HandleFunc("GET /players/{id}/seasons", playerHandler.GetPlayerSeasons)
	api.HandleFunc("GET /players/{id}/tensor", playerHandler.GetPlayerTensor)
	api.HandleFunc("GET /games/{id}", gameHandler.GetGame)
	api.HandleFunc("GET /games/{id}/plays", gameHandler.ListPlays)
	api.HandleFunc("GET /games/{id}/tensor", gameHandler.GetGameTensor)
	api.HandleFunc("GET /seasons/{year}/weeks/{week}/games", gameHandler.ListWeekGames)
	api.HandleFunc("GET /predict/games/{id}", predictHandler.PredictGame)
	api.HandleFunc("GET /predict/seasons/{year}/weeks/{week}", predictHandler.PredictWeek)
	api.HandleFunc("GET /predict/players/{id}", predictHandler.PredictPlayer)
	api.HandleFunc("GET /predict/leaders/{position}", predictHandler.PredictLeaders)
	api.HandleFunc("POST /teams", ingestHandler.UpsertTeam)
	api.HandleFunc("PUT /teams/{id}/seasons/{year}/record", ingestHandler.UpsertTeamRecord)
	api.HandleFunc("POST /players", ingestHandler.UpsertPlayer)
	api.HandleFunc("POST /players/{id}/seasons", ingestHandler.UpsertPlayerSeason)
	api.HandleFunc("POST /games", ingestHandler.UpsertGame)
	api.HandleFunc("POST /games/{id}/plays", ingestHandler.IngestPlays)

	mux.Handle("/api/v1/", http.StripPrefix("/api/v1", authMw(api)))

	// Apply global middleware
	root := middleware.Chain(mux, middleware.Logger, middleware.CORS(cfg.AllowedOrigins), middleware.JSON)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server shutdown error")
	}
	log.Info().Msg("Server stopped")
}
