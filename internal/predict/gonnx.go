package predict

import (
	"fmt"
	"sync"

	gonnx "github.com/advancedclimatesystems/gonnx"
	"github.com/rs/zerolog/log"
	"gorgonia.org/tensor"

	"github.com/gridironai/api/internal/encoding"
)

// New loads the ONNX model at path. If loading fails the stub model is
// returned instead, so a missing model file degrades to baseline
// predictions rather than a startup failure.
func New(path string) Model {
	m, err := newGonnxModel(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("model load failed, using stub predictions")
		return StubModel{}
	}
	return m
}

// GonnxModel runs inference through gonnx, a pure Go ONNX runtime.
// gonnx model runs are not reentrant, so calls serialize on a mutex.
type GonnxModel struct {
	game *gonnx.Model
	mu   sync.Mutex
}

func newGonnxModel(path string) (*GonnxModel, error) {
	if path == "" {
		return nil, fmt.Errorf("no model path configured")
	}
	game, err := gonnx.NewModelFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("load game model: %w", err)
	}
	return &GonnxModel{game: game}, nil
}

func (m *GonnxModel) Name() string { return "gonnx" }

// PredictGame runs the game model over an encoded game vector. The model
// outputs [home_score, away_score, confidence].
func (m *GonnxModel) PredictGame(gameVec []float32) (GameOutcome, error) {
	if len(gameVec) != encoding.GameFeatures {
		return GameOutcome{}, fmt.Errorf("game vector length %d, want %d", len(gameVec), encoding.GameFeatures)
	}

	in := tensor.New(
		tensor.WithShape(1, encoding.GameFeatures),
		tensor.Of(tensor.Float32),
		tensor.WithBacking(gameVec),
	)

	m.mu.Lock()
	outputs, err := m.game.Run(gonnx.Tensors{"game": in})
	m.mu.Unlock()
	if err != nil {
		return GameOutcome{}, fmt.Errorf("game model run: %w", err)
	}

	preds, err := outputData(outputs, "game_preds")
	if err != nil {
		return GameOutcome{}, err
	}
	if len(preds) < 3 {
		return GameOutcome{}, fmt.Errorf("game model returned %d values, want 3", len(preds))
	}
	return GameOutcome{
		HomeScore:  float64(preds[0]),
		AwayScore:  float64(preds[1]),
		Confidence: float64(preds[2]),
	}, nil
}

// playerStatNames is the fixed output order of the player head.
var playerStatNames = []string{
	"passing_yards", "passing_tds", "interceptions",
	"rushing_yards", "rushing_tds",
	"receptions", "receiving_yards", "receiving_tds",
}

// PredictPlayerStats runs the player head over an encoded player vector.
func (m *GonnxModel) PredictPlayerStats(playerVec []float32, position string) (map[string]float64, error) {
	if len(playerVec) != encoding.PlayerFeatures {
		return nil, fmt.Errorf("player vector length %d, want %d", len(playerVec), encoding.PlayerFeatures)
	}

	in := tensor.New(
		tensor.WithShape(1, encoding.PlayerFeatures),
		tensor.Of(tensor.Float32),
		tensor.WithBacking(playerVec),
	)

	m.mu.Lock()
	outputs, err := m.game.Run(gonnx.Tensors{"player": in})
	m.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("player model run: %w", err)
	}

	preds, err := outputData(outputs, "player_preds")
	if err != nil {
		return nil, err
	}
	stats := make(map[string]float64, len(playerStatNames))
	for i, name := range playerStatNames {
		if i < len(preds) {
			stats[name] = float64(preds[i])
		}
	}
	return stats, nil
}

// outputData extracts a named output as float32, falling back to the
// first output if the name doesn't match.
func outputData(outputs gonnx.Tensors, name string) ([]float32, error) {
	out, ok := outputs[name]
	if !ok {
		for _, v := range outputs {
			out = v
			break
		}
	}
	if out == nil {
		return nil, fmt.Errorf("model produced no outputs")
	}
	switch d := out.Data().(type) {
	case []float32:
		return d, nil
	case []float64:
		f32 := make([]float32, len(d))
		for i, v := range d {
			f32[i] = float32(v)
		}
		return f32, nil
	default:
		return nil, fmt.Errorf("unexpected output type %T", d)
	}
}
