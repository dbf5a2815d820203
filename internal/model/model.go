package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StatMap is a loosely-typed JSON stat blob stored in a JSONB column.
// Scraped stat tables vary by position and era, so the shape is kept open
// and coerced at encoding time.
type StatMap map[string]any

// Value implements driver.Valuer, marshaling the map as JSON.
func (m StatMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner for JSON/JSONB columns.
func (m *StatMap) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*m = nil
		return nil
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("statmap: cannot scan %T", src)
	}
}

// Tensor is a feature vector persisted as a JSON array of numbers.
type Tensor []float32

// Value implements driver.Valuer.
func (t Tensor) Value() (driver.Value, error) {
	if t == nil {
		return nil, nil
	}
	return json.Marshal(t)
}

// Scan implements sql.Scanner.
func (t *Tensor) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*t = nil
		return nil
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	default:
		return fmt.Errorf("tensor: cannot scan %T", src)
	}
}

// Team represents an NFL franchise.
type Team struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Abbreviation string    `json:"abbreviation"`
	ExternalID   string    `json:"external_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// Player represents a player with scraped career data. Combine, college,
// and career stats are open JSON blobs shaped like the encoder's input
// records.
type Player struct {
	ID           int64      `json:"id"`
	ExternalID   string     `json:"external_id"`
	Name         string     `json:"name"`
	Position     string     `json:"position"`
	DraftTeam    string     `json:"draft_team,omitempty"`
	DraftYear    int        `json:"draft_year,omitempty"`
	DraftPick    int        `json:"draft_pick,omitempty"`
	BirthDate    *time.Time `json:"birth_date,omitempty"`
	College      string     `json:"college,omitempty"`
	CurrentTeam  string     `json:"current_team,omitempty"`
	CombineStats StatMap    `json:"combine_stats,omitempty"`
	CollegeStats StatMap    `json:"college_stats,omitempty"`
	CareerStats  StatMap    `json:"career_stats,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Season represents one league year.
type Season struct {
	ID         int64 `json:"id"`
	Year       int   `json:"year"`
	IsComplete bool  `json:"is_complete"`
}

// TeamSeason holds a team's record for one season.
type TeamSeason struct {
	ID       int64 `json:"id"`
	TeamID   int64 `json:"team_id"`
	SeasonID int64 `json:"season_id"`
	Wins     int   `json:"wins"`
	Losses   int   `json:"losses"`
	Ties     int   `json:"ties"`
}

// PlayerSeason holds a player's membership and stats for one team-season.
type PlayerSeason struct {
	ID              int64   `json:"id"`
	PlayerID        int64   `json:"player_id"`
	SeasonID        int64   `json:"season_id"`
	TeamID          int64   `json:"team_id"`
	Team            string  `json:"team,omitempty"`
	Year            int     `json:"year,omitempty"`
	GamesPlayed     int     `json:"games_played"`
	GamesStarted    int     `json:"games_started"`
	IndividualStats StatMap `json:"individual_stats,omitempty"`
	TeamStats       StatMap `json:"team_stats,omitempty"`
	OpponentStats   StatMap `json:"opponent_stats,omitempty"`
}

// Game represents one scheduled or completed game.
type Game struct {
	ID         int64      `json:"id"`
	SeasonID   int64      `json:"season_id"`
	SeasonYear int        `json:"season_year,omitempty"`
	Week       int        `json:"week"`
	GameDate   *time.Time `json:"game_date,omitempty"`
	HomeTeamID int64      `json:"home_team_id"`
	AwayTeamID int64      `json:"away_team_id"`
	HomeTeam   string     `json:"home_team,omitempty"`
	AwayTeam   string     `json:"away_team,omitempty"`
	HomeScore  int        `json:"home_score"`
	AwayScore  int        `json:"away_score"`
	IsComplete bool       `json:"is_complete"`
	ExternalID string     `json:"external_id"`
	GameInfo   StatMap    `json:"game_info,omitempty"` // weather, surface, kickoff
}

// Play represents one play within a game, along with its encoded
// situational tensor.
type Play struct {
	ID          int64  `json:"id"`
	GameID      int64  `json:"game_id"`
	PlayNumber  int    `json:"play_number"`
	Quarter     int    `json:"quarter"`
	Clock       int    `json:"clock"`
	Down        int    `json:"down"`
	Distance    int    `json:"distance"`
	YardLine    int    `json:"yard_line"`
	PlayType    string `json:"play_type"`
	YardsGained int    `json:"yards_gained"`
	Touchdown   bool   `json:"touchdown"`
	FieldGoal   bool   `json:"field_goal"`
	Safety      bool   `json:"safety"`
	StateTensor Tensor `json:"state_tensor,omitempty"`
}

// GamePrediction is the model output for a single game.
type GamePrediction struct {
	GameID     int64   `json:"game_id"`
	HomeTeam   string  `json:"home_team"`
	AwayTeam   string  `json:"away_team"`
	HomeScore  float64 `json:"home_score"`
	AwayScore  float64 `json:"away_score"`
	Winner     string  `json:"winner"`
	Confidence float64 `json:"confidence"`
}

// PlayerPrediction is the model output for one player in one game.
type PlayerPrediction struct {
	PlayerID int64              `json:"player_id"`
	Name     string             `json:"name"`
	Position string             `json:"position"`
	GameID   int64              `json:"game_id"`
	Stats    map[string]float64 `json:"predicted_stats"`
}
