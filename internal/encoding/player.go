package encoding

import (
	"errors"

	"github.com/rs/zerolog/log"
)

// ErrNilRecord reports a structural failure: the record to encode was
// absent altogether. The accompanying vector is still full-width (all
// zeros), so consumers can use it as a null entity.
var ErrNilRecord = errors.New("encoding: nil record")

// Stat keys in vector order for each sub-block. These tables define the
// layout; reordering any of them changes the meaning of stored vectors.
var (
	collegeBasicKeys = []string{
		"seasons", "first_season_school", "last_season_school",
		"first_school_seasons", "last_school_seasons",
	}
	collegePassingKeys   = []string{"completions", "attempts", "yards", "touchdowns", "interceptions"}
	collegeRushingKeys   = []string{"attempts", "yards", "touchdowns"}
	collegeReceivingKeys = []string{"receptions", "yards", "touchdowns"}
	collegeDefenseKeys   = []string{
		"tackles", "sacks", "interceptions", "int_yards", "int_td",
		"pd", "fr", "fr_yards", "ff", "tfl", "qb_hits",
	}
	collegeKickingKeys = []string{"fgm", "fga", "xpm", "xpa", "punts", "punt_yards"}
	teamStatKeys       = []string{
		"pass_completions", "pass_attempts", "pass_yards", "pass_td",
		"rush_attempts", "rush_yards", "rush_td", "total_plays",
		"pass_1d", "rush_1d", "pen_1d", "penalties", "pen_yards",
		"fumbles", "interceptions",
	}

	nflBasicKeys   = []string{"seasons_played", "games_played", "games_started"}
	nflPassingKeys = []string{
		"record", "completions", "attempts", "yards", "touchdowns",
		"interceptions", "first_downs", "longest", "sacked", "4qc", "gwd",
	}
	nflRushingKeys   = []string{"attempts", "yards", "touchdowns", "first_downs", "longest"}
	nflReceivingKeys = []string{"targets", "receptions", "yards", "touchdowns", "first_downs", "longest"}
	nflDefenseKeys   = []string{
		"interceptions", "int_yards", "int_td", "int_longest", "pd",
		"ff", "fumbles", "fr", "fr_yards", "fr_td",
		"sacks", "solo_tackles", "assisted_tackles", "tfl", "qb_hits",
	}
	nflKickingKeys = []string{
		"fga_0_19", "fgm_0_19", "fga_20_29", "fgm_20_29",
		"fga_30_39", "fgm_30_39", "fga_40_49", "fgm_40_49",
		"fga_50_plus", "fgm_50_plus", "longest", "xpa", "xpm",
		"punts", "punt_yards",
	}
	teamPerformanceKeys = []string{
		"off_points", "off_yards", "off_plays", "off_turnovers", "off_fumbles",
		"off_1d", "pass_cmp", "pass_att", "pass_yds", "pass_td",
		"rush_att", "rush_yds", "rush_td", "penalties", "pen_yards",
		"def_points", "def_yards", "def_plays", "def_turnovers", "def_fumbles",
		"def_1d", "def_pass_cmp", "def_pass_att", "def_pass_yds", "def_pass_td",
		"def_rush_att", "def_rush_yds", "def_rush_td", "opp_penalties", "opp_pen_yards",
	}
)

// EncodePlayer converts a player record into a PlayerFeatures-wide vector.
// Partially populated records encode with per-field defaults; a nil record
// is a structural failure and yields the all-zero null-player vector along
// with ErrNilRecord.
func EncodePlayer(rec Record) ([]float32, error) {
	vec := make([]float32, PlayerFeatures)
	if rec == nil {
		log.Warn().Msg("Player record missing, encoding null player")
		return vec, ErrNilRecord
	}

	encodeRosterInfo(vec[SecRosterInfo:SecCombine], rec)
	encodeCombine(vec[SecCombine:SecCollege], rec.Sub("combine"))
	encodeCollege(vec[SecCollege:SecNFLCareer], rec.Sub("college"))
	encodeNFLCareer(vec[SecNFLCareer:SecLastSeason], rec.Sub("nfl_career"))

	seasonal := rec.Sub("seasonal")
	encodeSeason(vec[SecLastSeason:SecWorstSeason], seasonal.Sub("last"), false)
	encodeSeason(vec[SecWorstSeason:SecBestSeason], seasonal.Sub("worst"), false)
	encodeSeason(vec[SecBestSeason:SecAverageSeason], seasonal.Sub("best"), false)
	encodeSeason(vec[SecAverageSeason:sectionsEnd], seasonal.Sub("average"), true)

	return vec, nil
}

// encodeRosterInfo fills identity, position, draft, and roster fields.
func encodeRosterInfo(dst []float32, rec Record) {
	dst[0] = float32(CategoricalCode(rec.Str("identity", "unknown"), IdentityModulus))
	dst[1] = float32(PositionCode(rec.Str("position", "")))
	dst[2] = float32(rec.Float("roster_tier", 1))

	draft := rec.Sub("draft_info")
	dst[3] = float32(CategoricalCode(draft.Str("team", ""), TeamModulus))
	dst[4] = float32(draft.Float("year", 0))
	dst[5] = float32(draft.Float("pick", 0))

	dst[6] = float32(rec.Float("roster_season", 2024))
	dst[7] = float32(CategoricalCode(rec.Str("current_team", ""), TeamModulus))
	dst[8] = float32(rec.Float("age", 25))
}

// encodeCombine fills measurable athletic testing numbers. The final three
// slots are reserved and stay zero.
func encodeCombine(dst []float32, combine Record) {
	dst[0] = float32(combine.Float("year", 0))
	dst[1] = float32(PositionCode(combine.Str("position", "")))
	i := 2
	i += fillStats(dst[i:], combine, []string{
		"height", "weight", "forty", "bench",
		"broad_jump", "shuttle", "three_cone", "vertical",
	})
	_ = i // slots [10:13] reserved
}

// encodeCollege fills college career aggregates: tenure, then passing,
// rushing, receiving, defense, kicking, team, and opponent blocks.
func encodeCollege(dst []float32, college Record) {
	i := fillStats(dst, college, collegeBasicKeys)
	i += fillStats(dst[i:], college.Sub("passing"), collegePassingKeys)
	i += fillStats(dst[i:], college.Sub("rushing"), collegeRushingKeys)
	i += fillStats(dst[i:], college.Sub("receiving"), collegeReceivingKeys)
	i += fillStats(dst[i:], college.Sub("defense"), collegeDefenseKeys)
	i += fillStats(dst[i:], college.Sub("kicking"), collegeKickingKeys)
	i += fillStats(dst[i:], college.Sub("team"), teamStatKeys)
	fillStats(dst[i:], college.Sub("opp"), teamStatKeys)
}

// encodeNFLCareer fills professional career aggregates. The stat blocks
// sum to 85; the remainder of the section stays zero.
func encodeNFLCareer(dst []float32, nfl Record) {
	i := fillStats(dst, nfl, nflBasicKeys)
	i += fillStats(dst[i:], nfl.Sub("passing"), nflPassingKeys)
	i += fillStats(dst[i:], nfl.Sub("rushing"), nflRushingKeys)
	i += fillStats(dst[i:], nfl.Sub("receiving"), nflReceivingKeys)
	i += fillStats(dst[i:], nfl.Sub("defense"), nflDefenseKeys)
	i += fillStats(dst[i:], nfl.Sub("kicking"), nflKickingKeys)
	fillStats(dst[i:], nfl.Sub("team_performance"), teamPerformanceKeys)
}

// encodeSeason fills one seasonal split. The average split omits the team
// code. Per-season stat detail beyond games played/started is an extension
// point; those slots stay zero until the full per-season breakdown lands.
func encodeSeason(dst []float32, season Record, excludeTeam bool) {
	i := 0
	if !excludeTeam {
		dst[0] = float32(CategoricalCode(season.Str("team", ""), TeamModulus))
		i = 1
	}
	dst[i] = float32(season.Float("games_played", 0))
	dst[i+1] = float32(season.Float("games_started", 0))
}

// fillStats writes the stats named by keys into dst in order, defaulting
// missing values to 0, and returns how many slots it wrote.
func fillStats(dst []float32, stats Record, keys []string) int {
	for i, k := range keys {
		dst[i] = float32(stats.Float(k, 0))
	}
	return len(keys)
}
