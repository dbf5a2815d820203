// Command predict runs the prediction model over stored data and prints
// the results as JSON.
//
// Usage:
//
//	go run ./cmd/predict/ --game 123 --db postgres://...
//	go run ./cmd/predict/ --season 2024 --week 5 --db postgres://...
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	_ "github.com/lib/pq"

	"github.com/gridironai/api/internal/predict"
	"github.com/gridironai/api/internal/repository/postgres"
	"github.com/gridironai/api/internal/service"
)

func main() {
	gameID := flag.Int64("game", 0, "Predict one game by ID")
	seasonYear := flag.Int("season", 0, "Season year for --week")
	week := flag.Int("week", 0, "Predict every game in one week")
	dbURL := flag.String("db", os.Getenv("DATABASE_URL"), "Postgres connection URL")
	modelPath := flag.String("model", os.Getenv("MODEL_PATH"), "ONNX model path (stub if empty)")
	flag.Parse()

	if *gameID == 0 && (*seasonYear == 0 || *week == 0) {
		log.Fatal("--game or both --season and --week are required")
	}
	if *dbURL == "" {
		log.Fatal("--db or DATABASE_URL is required")
	}

	db, err := postgres.Connect(*dbURL)
	if err != nil {
		log.Fatalf("connect to postgres: %v", err)
	}
	defer db.Close()

	playerRepo := postgres.NewPlayerRepo(db)
	teamRepo := postgres.NewTeamRepo(db)
	seasonRepo := postgres.NewSeasonRepo(db)
	gameRepo := postgres.NewGameRepo(db)

	tensorSvc := service.NewTensorService(playerRepo, teamRepo, seasonRepo, gameRepo, nil)
	predictionSvc := service.NewPredictionService(tensorSvc, predict.New(*modelPath), gameRepo, playerRepo)

	ctx := context.Background()
	var out any
	if *gameID != 0 {
		out, err = predictionSvc.PredictGame(ctx, *gameID)
	} else {
		out, err = predictionSvc.PredictWeek(ctx, *seasonYear, *week)
	}
	if err != nil {
		log.Fatalf("predict: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatalf("encode output: %v", err)
	}
}
