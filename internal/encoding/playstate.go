package encoding

import "github.com/rs/zerolog/log"

// EncodePlayState converts an in-game situational snapshot into a
// PlayStateFeatures-wide vector.
//
// The yard line is absolute on a 0-100 scale measured from the goal line
// the home team attacks: 0 means home is at the opposing goal line, 100
// means play is at home's own goal line. The signed yard line converts it
// to the possessing team's distance from scoring (yard line as-is when
// home has the ball, 100 minus yard line otherwise).
//
// Layout: [0] quarter, [1] clock, [2] down, [3] distance, [4] yard line,
// [5] home score, [6] away score, [7] possession (0=away, 1=home),
// [8] red zone flag (yard line <=20 or >=80), [9] goal-to-go flag
// (distance >= signed yard line), [10] score differential (home-away),
// [11] two-minute-warning flag, [12-13] timeouts home/away. The remaining
// slots are reserved for extension.
func EncodePlayState(rec Record) ([]float32, error) {
	vec := make([]float32, PlayStateFeatures)
	if rec == nil {
		log.Warn().Msg("Play state missing, encoding zero state")
		return vec, ErrNilRecord
	}

	vec[0] = float32(rec.Float("quarter", 1))
	vec[1] = float32(rec.Float("clock", 900))
	vec[2] = float32(rec.Float("down", 1))

	distance := rec.Float("distance", 10)
	vec[3] = float32(distance)

	yardLine := rec.Float("yard_line", 50)
	vec[4] = float32(yardLine)

	homeScore := rec.Float("home_score", 0)
	awayScore := rec.Float("away_score", 0)
	vec[5] = float32(homeScore)
	vec[6] = float32(awayScore)

	possession := rec.Float("possession", 0)
	vec[7] = float32(possession)

	if yardLine <= 20 || yardLine >= 80 {
		vec[8] = 1
	}

	signedYardLine := yardLine
	if possession != 1 {
		signedYardLine = 100 - yardLine
	}
	if distance >= signedYardLine {
		vec[9] = 1
	}

	vec[10] = float32(homeScore - awayScore)

	if rec.Bool("two_minute_warning") {
		vec[11] = 1
	}

	vec[12] = float32(rec.Float("timeouts_home", 3))
	vec[13] = float32(rec.Float("timeouts_away", 3))

	return vec, nil
}
