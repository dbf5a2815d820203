package encoding

import (
	"errors"
	"fmt"
)

// ErrVectorLength reports a compositor input whose length does not match
// its declared width. Unlike missing record data, this indicates a caller
// defect, so composition fails instead of degrading.
var ErrVectorLength = errors.New("encoding: unexpected vector length")

// ComposeGame concatenates home roster, away roster, and context vectors
// into a GameFeatures-wide game vector, in that exact order. Constituents
// are copied unchanged; nothing is interleaved, truncated, or reordered.
func ComposeGame(home, away, ctx []float32) ([]float32, error) {
	if len(home) != RosterFeatures {
		return nil, fmt.Errorf("%w: home roster is %d, want %d", ErrVectorLength, len(home), RosterFeatures)
	}
	if len(away) != RosterFeatures {
		return nil, fmt.Errorf("%w: away roster is %d, want %d", ErrVectorLength, len(away), RosterFeatures)
	}
	if len(ctx) != ContextFeatures {
		return nil, fmt.Errorf("%w: context is %d, want %d", ErrVectorLength, len(ctx), ContextFeatures)
	}

	vec := make([]float32, 0, GameFeatures)
	vec = append(vec, home...)
	vec = append(vec, away...)
	vec = append(vec, ctx...)
	return vec, nil
}

// ComposePlay concatenates a game vector and a play state vector into a
// PlayFeatures-wide play vector.
func ComposePlay(game, state []float32) ([]float32, error) {
	if len(game) != GameFeatures {
		return nil, fmt.Errorf("%w: game is %d, want %d", ErrVectorLength, len(game), GameFeatures)
	}
	if len(state) != PlayStateFeatures {
		return nil, fmt.Errorf("%w: play state is %d, want %d", ErrVectorLength, len(state), PlayStateFeatures)
	}

	vec := make([]float32, 0, PlayFeatures)
	vec = append(vec, game...)
	vec = append(vec, state...)
	return vec, nil
}
