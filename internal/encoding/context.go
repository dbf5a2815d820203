package encoding

import (
	"strings"

	"github.com/rs/zerolog/log"
)

// weatherKeywords are matched case-insensitively as substrings of the
// free-text weather description, one flag slot each starting at index 10.
// The flags are neither exclusive nor exhaustive: several can be set at
// once, or none at all.
var weatherKeywords = []string{"clear", "cloudy", "rain", "snow", "fog"}

// surfaceKeywords follow the same substring policy, at indices 15 and 16.
var surfaceKeywords = []string{"grass", "turf"}

// EncodeContext converts game metadata into a ContextFeatures-wide vector.
//
// Layout: [0] temperature, [1] dome flag, [2] wind, [3] week, [4] season,
// [5-6] home wins/losses, [7-8] away wins/losses, [9] playoff flag,
// [10-14] weather keyword flags, [15-16] surface keyword flags,
// [17] kickoff hour. The remaining slots are reserved for extension.
func EncodeContext(rec Record) ([]float32, error) {
	vec := make([]float32, ContextFeatures)
	if rec == nil {
		log.Warn().Msg("Game context missing, encoding zero context")
		return vec, ErrNilRecord
	}

	vec[0] = float32(rec.Float("temperature", 70))
	if rec.Bool("dome") {
		vec[1] = 1
	}
	vec[2] = float32(rec.Float("wind", 0))
	vec[3] = float32(rec.Float("week", 0))
	vec[4] = float32(rec.Float("season", 2024))

	vec[5] = float32(rec.Float("home_wins", 0))
	vec[6] = float32(rec.Float("home_losses", 0))
	vec[7] = float32(rec.Float("away_wins", 0))
	vec[8] = float32(rec.Float("away_losses", 0))

	if rec.Bool("playoff") {
		vec[9] = 1
	}

	weather := strings.ToLower(rec.Str("weather", ""))
	for i, kw := range weatherKeywords {
		if strings.Contains(weather, kw) {
			vec[10+i] = 1
		}
	}

	surface := strings.ToLower(rec.Str("surface", ""))
	for i, kw := range surfaceKeywords {
		if strings.Contains(surface, kw) {
			vec[15+i] = 1
		}
	}

	vec[17] = float32(rec.Float("kickoff_hour", 13))

	return vec, nil
}
