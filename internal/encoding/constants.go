package encoding

import "strings"

// RosterSize is the number of slots in a roster grid. Rosters shorter than
// this are padded with null players; longer inputs are truncated.
const RosterSize = 64

// PlayerFeatures is the declared width of a player vector. The fixed
// sections below sum to 669; index 669 is a reserved trailing slot that is
// never written. Stored vectors depend on this exact layout, so the slot
// stays zero rather than being reclaimed.
const PlayerFeatures = 670

// ContextFeatures is the width of a game context vector.
const ContextFeatures = 50

// PlayStateFeatures is the width of a play state vector.
const PlayStateFeatures = 20

// Composite vector widths.
const (
	RosterFeatures = RosterSize * PlayerFeatures              // 42880
	GameFeatures   = 2*RosterFeatures + ContextFeatures       // 85810
	PlayFeatures   = GameFeatures + PlayStateFeatures         // 85830
)

// Section widths within a player vector.
const (
	rosterInfoWidth = 9
	combineWidth    = 13
	collegeWidth    = 64
	nflCareerWidth  = 116
	seasonWidth     = 117 // team code + games played/started + per-season detail
	avgSeasonWidth  = 116 // same layout, team code omitted
)

// Section offsets within a player vector, in fixed order.
const (
	SecRosterInfo    = 0
	SecCombine       = SecRosterInfo + rosterInfoWidth    // 9
	SecCollege       = SecCombine + combineWidth          // 22
	SecNFLCareer     = SecCollege + collegeWidth          // 86
	SecLastSeason    = SecNFLCareer + nflCareerWidth      // 202
	SecWorstSeason   = SecLastSeason + seasonWidth        // 319
	SecBestSeason    = SecWorstSeason + seasonWidth       // 436
	SecAverageSeason = SecBestSeason + seasonWidth        // 553
	sectionsEnd      = SecAverageSeason + avgSeasonWidth  // 669
)

// Categorical moduli shared with any consumer that decodes codes back to
// labels through a side lookup table.
const (
	IdentityModulus = 1000000
	TeamModulus     = 100
)

// positionCodes is the fixed position enumeration. Unknown positions map
// to 0.
var positionCodes = map[string]float64{
	"QB": 1, "RB": 2, "WR": 3, "TE": 4,
	"OL": 5, "DL": 6, "LB": 7, "DB": 8,
	"K": 9, "P": 10,
}

// PositionCode returns the numeric code for a position string, or 0 for an
// unknown position.
func PositionCode(position string) float64 {
	return positionCodes[strings.ToUpper(strings.TrimSpace(position))]
}
