package predict

// StubModel returns fixed baseline predictions. It stands in when no
// trained model file is available so the rest of the pipeline stays
// exercisable end to end.
type StubModel struct{}

func (StubModel) Name() string { return "stub" }

// PredictGame returns a flat home-favorite baseline.
func (StubModel) PredictGame(gameVec []float32) (GameOutcome, error) {
	return GameOutcome{HomeScore: 24, AwayScore: 21, Confidence: 0.72}, nil
}

// PredictPlayerStats returns league-average placeholder lines per
// position group.
func (StubModel) PredictPlayerStats(playerVec []float32, position string) (map[string]float64, error) {
	switch position {
	case "QB":
		return map[string]float64{
			"passing_yards": 245, "passing_tds": 1.8, "interceptions": 0.8, "rushing_yards": 12,
		}, nil
	case "RB":
		return map[string]float64{
			"rushing_yards": 65, "rushing_tds": 0.5, "receptions": 2.1, "receiving_yards": 16,
		}, nil
	case "WR", "TE":
		return map[string]float64{
			"receptions": 4.2, "receiving_yards": 55, "receiving_tds": 0.4,
		}, nil
	case "K":
		return map[string]float64{
			"field_goals": 1.6, "extra_points": 2.4,
		}, nil
	default:
		return map[string]float64{
			"tackles": 4.5, "sacks": 0.2, "interceptions": 0.05,
		}, nil
	}
}
