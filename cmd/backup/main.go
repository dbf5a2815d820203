// Command backup exports the database to a JSONL file and restores from
// one. Rows are keyed by external IDs and season years so a restore into
// a fresh database remaps primary keys cleanly.
//
// Usage:
//
//	go run ./cmd/backup/ --export backup.jsonl --db postgres://...
//	go run ./cmd/backup/ --restore backup.jsonl --db postgres://...
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/gridironai/api/internal/model"
	"github.com/gridironai/api/internal/repository/postgres"
)

// backupLine is one JSONL record. Exactly one payload field is set,
// selected by Kind.
type backupLine struct {
	Kind   string          `json:"kind"`
	Season *model.Season   `json:"season,omitempty"`
	Team   *model.Team     `json:"team,omitempty"`
	Record *recordLine     `json:"record,omitempty"`
	Player *playerLine     `json:"player,omitempty"`
	Game   *gameLine       `json:"game,omitempty"`
	Plays  *gamePlaysLine  `json:"plays,omitempty"`
}

type recordLine struct {
	Team   string `json:"team"`
	Year   int    `json:"year"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
	Ties   int    `json:"ties"`
}

type playerLine struct {
	model.Player
	Seasons []playerSeasonLine `json:"seasons,omitempty"`
}

type playerSeasonLine struct {
	Year            int           `json:"year"`
	Team            string        `json:"team"`
	GamesPlayed     int           `json:"games_played"`
	GamesStarted    int           `json:"games_started"`
	IndividualStats model.StatMap `json:"individual_stats,omitempty"`
	TeamStats       model.StatMap `json:"team_stats,omitempty"`
	OpponentStats   model.StatMap `json:"opponent_stats,omitempty"`
}

type gameLine struct {
	ExternalID string        `json:"external_id"`
	Year       int           `json:"year"`
	Week       int           `json:"week"`
	GameDate   *time.Time    `json:"game_date,omitempty"`
	HomeTeam   string        `json:"home_team"`
	AwayTeam   string        `json:"away_team"`
	HomeScore  int           `json:"home_score"`
	AwayScore  int           `json:"away_score"`
	IsComplete bool          `json:"is_complete"`
	GameInfo   model.StatMap `json:"game_info,omitempty"`
}

type gamePlaysLine struct {
	Game  string       `json:"game"`
	Plays []model.Play `json:"plays"`
}

type repos struct {
	players *postgres.PlayerRepo
	teams   *postgres.TeamRepo
	seasons *postgres.SeasonRepo
	games   *postgres.GameRepo
	plays   *postgres.PlayRepo
}

func main() {
	exportFile := flag.String("export", "", "Write a JSONL backup to this path")
	restoreFile := flag.String("restore", "", "Restore from a JSONL backup at this path")
	dbURL := flag.String("db", os.Getenv("DATABASE_URL"), "Postgres connection URL")
	flag.Parse()

	if (*exportFile == "") == (*restoreFile == "") {
		log.Fatal("exactly one of --export or --restore is required")
	}
	if *dbURL == "" {
		log.Fatal("--db or DATABASE_URL is required")
	}

	db, err := postgres.Connect(*dbURL)
	if err != nil {
		log.Fatalf("connect to postgres: %v", err)
	}
	defer db.Close()

	r := repos{
		players: postgres.NewPlayerRepo(db),
		teams:   postgres.NewTeamRepo(db),
		seasons: postgres.NewSeasonRepo(db),
		games:   postgres.NewGameRepo(db),
		plays:   postgres.NewPlayRepo(db),
	}

	ctx := context.Background()
	if *exportFile != "" {
		if err := exportAll(ctx, r, *exportFile); err != nil {
			log.Fatalf("export: %v", err)
		}
		return
	}
	if err := restoreAll(ctx, r, *restoreFile); err != nil {
		log.Fatalf("restore: %v", err)
	}
}

// exportAll writes every table to one JSONL file in dependency order so
// a line-by-line restore never references a row it has not seen yet.
func exportAll(ctx context.Context, r repos, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	defer w.Flush()
	enc := json.NewEncoder(w)

	seasons, err := r.seasons.List(ctx)
	if err != nil {
		return err
	}
	seasonYear := make(map[int64]int, len(seasons))
	for i := range seasons {
		seasonYear[seasons[i].ID] = seasons[i].Year
		if err := enc.Encode(backupLine{Kind: "season", Season: &seasons[i]}); err != nil {
			return err
		}
	}

	teams, err := r.teams.List(ctx)
	if err != nil {
		return err
	}
	teamExternal := make(map[int64]string, len(teams))
	for i := range teams {
		teamExternal[teams[i].ID] = teams[i].ExternalID
		if err := enc.Encode(backupLine{Kind: "team", Team: &teams[i]}); err != nil {
			return err
		}
	}

	records, err := r.teams.ListRecords(ctx)
	if err != nil {
		return err
	}
	for _, ts := range records {
		line := recordLine{
			Team: teamExternal[ts.TeamID], Year: seasonYear[ts.SeasonID],
			Wins: ts.Wins, Losses: ts.Losses, Ties: ts.Ties,
		}
		if err := enc.Encode(backupLine{Kind: "record", Record: &line}); err != nil {
			return err
		}
	}

	players, err := r.players.List(ctx)
	if err != nil {
		return err
	}
	for _, p := range players {
		seasons, err := r.players.ListSeasons(ctx, p.ID)
		if err != nil {
			return err
		}
		line := playerLine{Player: p}
		for _, ps := range seasons {
			line.Seasons = append(line.Seasons, playerSeasonLine{
				Year: ps.Year, Team: teamExternal[ps.TeamID],
				GamesPlayed: ps.GamesPlayed, GamesStarted: ps.GamesStarted,
				IndividualStats: ps.IndividualStats, TeamStats: ps.TeamStats, OpponentStats: ps.OpponentStats,
			})
		}
		if err := enc.Encode(backupLine{Kind: "player", Player: &line}); err != nil {
			return err
		}
	}

	games, err := r.games.List(ctx)
	if err != nil {
		return err
	}
	exported := 0
	for _, g := range games {
		line := gameLine{
			ExternalID: g.ExternalID, Year: g.SeasonYear, Week: g.Week, GameDate: g.GameDate,
			HomeTeam: teamExternal[g.HomeTeamID], AwayTeam: teamExternal[g.AwayTeamID],
			HomeScore: g.HomeScore, AwayScore: g.AwayScore,
			IsComplete: g.IsComplete, GameInfo: g.GameInfo,
		}
		if err := enc.Encode(backupLine{Kind: "game", Game: &line}); err != nil {
			return err
		}

		plays, err := r.plays.ListByGame(ctx, g.ID)
		if err != nil {
			return err
		}
		if len(plays) > 0 {
			if err := enc.Encode(backupLine{Kind: "plays", Plays: &gamePlaysLine{Game: g.ExternalID, Plays: plays}}); err != nil {
				return err
			}
		}
		exported++
	}

	log.Printf("exported %d seasons, %d teams, %d players, %d games to %s",
		len(seasons), len(teams), len(players), exported, path)
	return nil
}

// restoreAll replays a JSONL backup through the upsert paths, remapping
// natural keys to the target database's primary keys.
func restoreAll(ctx context.Context, r repos, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	// Play lines carry full per-play tensors and can be large.
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)

	teamID := make(map[string]int64)
	seasonID := make(map[int]int64)
	gameID := make(map[string]int64)

	restored := 0
	for scanner.Scan() {
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		var line backupLine
		if err := json.Unmarshal([]byte(text), &line); err != nil {
			log.Printf("WARN: skip line (bad JSON): %v", err)
			continue
		}

		switch line.Kind {
		case "season":
			s, err := r.seasons.Ensure(ctx, line.Season.Year)
			if err != nil {
				return err
			}
			if line.Season.IsComplete {
				if err := r.seasons.SetComplete(ctx, s.Year, true); err != nil {
					return err
				}
			}
			seasonID[s.Year] = s.ID

		case "team":
			t, err := r.teams.Upsert(ctx, line.Team)
			if err != nil {
				return err
			}
			teamID[t.ExternalID] = t.ID

		case "record":
			rec := line.Record
			if err := r.teams.UpsertRecord(ctx, &model.TeamSeason{
				TeamID: teamID[rec.Team], SeasonID: seasonID[rec.Year],
				Wins: rec.Wins, Losses: rec.Losses, Ties: rec.Ties,
			}); err != nil {
				return err
			}

		case "player":
			p, err := r.players.Upsert(ctx, &line.Player.Player)
			if err != nil {
				return err
			}
			for _, ps := range line.Player.Seasons {
				if err := r.players.UpsertSeason(ctx, &model.PlayerSeason{
					PlayerID: p.ID, SeasonID: seasonID[ps.Year], TeamID: teamID[ps.Team],
					GamesPlayed: ps.GamesPlayed, GamesStarted: ps.GamesStarted,
					IndividualStats: ps.IndividualStats, TeamStats: ps.TeamStats, OpponentStats: ps.OpponentStats,
				}); err != nil {
					return err
				}
			}

		case "game":
			gl := line.Game
			g, err := r.games.Upsert(ctx, &model.Game{
				ExternalID: gl.ExternalID, SeasonID: seasonID[gl.Year], Week: gl.Week, GameDate: gl.GameDate,
				HomeTeamID: teamID[gl.HomeTeam], AwayTeamID: teamID[gl.AwayTeam],
				HomeScore: gl.HomeScore, AwayScore: gl.AwayScore,
				IsComplete: gl.IsComplete, GameInfo: gl.GameInfo,
			})
			if err != nil {
				return err
			}
			gameID[g.ExternalID] = g.ID

		case "plays":
			plays := line.Plays.Plays
			for i := range plays {
				plays[i].ID = 0
				plays[i].GameID = gameID[line.Plays.Game]
			}
			if err := r.plays.BulkCreate(ctx, plays); err != nil {
				return err
			}

		default:
			log.Printf("WARN: skip line (unknown kind %q)", line.Kind)
			continue
		}
		restored++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	log.Printf("restored %d records from %s", restored, path)
	return nil
}
