// Package predict runs trained models over encoded feature vectors.
package predict

// GameOutcome is a model's score prediction for one game.
type GameOutcome struct {
	HomeScore  float64
	AwayScore  float64
	Confidence float64
}

// Model scores encoded game and player vectors. Implementations must be
// safe for concurrent use.
type Model interface {
	Name() string
	PredictGame(gameVec []float32) (GameOutcome, error)
	PredictPlayerStats(playerVec []float32, position string) (map[string]float64, error)
}
