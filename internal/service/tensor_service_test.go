package service

import (
	"context"
	"testing"
	"time"

	"github.com/gridironai/api/internal/encoding"
	"github.com/gridironai/api/internal/model"
)

// fixture wires a tensor service over fresh mocks with one season, two
// teams, and a game between them.
type fixture struct {
	players *mockPlayerRepo
	teams   *mockTeamRepo
	seasons *mockSeasonRepo
	games   *mockGameRepo
	cache   *mockCache
	tensors *TensorService

	season *model.Season
	home   *model.Team
	away   *model.Team
	game   *model.Game
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		players: newMockPlayerRepo(),
		teams:   newMockTeamRepo(),
		seasons: newMockSeasonRepo(),
		games:   newMockGameRepo(),
		cache:   newMockCache(),
	}
	f.tensors = NewTensorService(f.players, f.teams, f.seasons, f.games, f.cache)

	ctx := context.Background()
	f.season, _ = f.seasons.Ensure(ctx, 2024)
	f.home, _ = f.teams.Upsert(ctx, &model.Team{Name: "Home", Abbreviation: "HOM", ExternalID: "hom"})
	f.away, _ = f.teams.Upsert(ctx, &model.Team{Name: "Away", Abbreviation: "AWY", ExternalID: "awy"})
	f.game, _ = f.games.Upsert(ctx, &model.Game{
		SeasonID: f.season.ID, SeasonYear: 2024, Week: 1,
		HomeTeamID: f.home.ID, AwayTeamID: f.away.ID,
		HomeTeam: "HOM", AwayTeam: "AWY", ExternalID: "hom-awy-w1",
		GameInfo: model.StatMap{"temperature": 55.0, "weather": "rain"},
	})
	return f
}

func (f *fixture) addPlayer(t *testing.T, team *model.Team, name, position string) *model.Player {
	t.Helper()
	ctx := context.Background()
	p, err := f.players.Upsert(ctx, &model.Player{
		ExternalID: "ext-" + name, Name: name, Position: position, CurrentTeam: team.Abbreviation,
	})
	if err != nil {
		t.Fatalf("add player %s: %v", name, err)
	}
	f.players.UpsertSeason(ctx, &model.PlayerSeason{
		PlayerID: p.ID, SeasonID: f.season.ID, TeamID: team.ID,
		Team: team.Abbreviation, Year: 2024, GamesPlayed: 17, GamesStarted: 17,
	})
	f.players.addToRoster(team.ID, f.season.ID, p.ID)
	return p
}

func TestPlayerRecordAssembly(t *testing.T) {
	birth := time.Date(1998, 7, 4, 0, 0, 0, 0, time.UTC)
	p := &model.Player{
		ExternalID: "MahoPa00", Name: "Patrick Mahomes", Position: "QB",
		DraftTeam: "KC", DraftYear: 2017, DraftPick: 10,
		BirthDate: &birth, CurrentTeam: "KC",
		CombineStats: model.StatMap{"height": 74.1},
		CareerStats:  model.StatMap{"passing": map[string]any{"yards": 28424.0}},
	}
	seasons := []model.PlayerSeason{
		{Team: "KC", Year: 2022, GamesPlayed: 17, GamesStarted: 17},
		{Team: "KC", Year: 2023, GamesPlayed: 16, GamesStarted: 16},
		{Team: "KC", Year: 2021, GamesPlayed: 17, GamesStarted: 15},
	}

	svc := NewTensorService(nil, nil, nil, nil, nil)
	rec := svc.PlayerRecord(p, seasons, 2024)

	if rec.Str("identity", "") != "MahoPa00" {
		t.Errorf("identity = %q, want MahoPa00", rec.Str("identity", ""))
	}
	if rec.Float("age", 0) != 26 {
		t.Errorf("age = %v, want 26", rec.Float("age", 0))
	}
	draft := rec.Sub("draft_info")
	if draft.Float("pick", 0) != 10 {
		t.Errorf("draft pick = %v, want 10", draft.Float("pick", 0))
	}
	if rec.Sub("combine").Float("height", 0) != 74.1 {
		t.Errorf("combine height = %v, want 74.1", rec.Sub("combine").Float("height", 0))
	}

	seasonal := rec.Sub("seasonal")
	if got := seasonal.Sub("last").Float("games_played", 0); got != 16 {
		t.Errorf("last season games played = %v, want 16 (2023)", got)
	}
	if got := seasonal.Sub("best").Float("games_started", 0); got != 17 {
		t.Errorf("best season games started = %v, want 17", got)
	}
	if got := seasonal.Sub("worst").Float("games_started", 0); got != 15 {
		t.Errorf("worst season games started = %v, want 15", got)
	}
	avg := seasonal.Sub("average")
	if got := avg.Float("games_started", 0); got != 16 {
		t.Errorf("average games started = %v, want 16", got)
	}
}

func TestPlayerRecordNoSeasons(t *testing.T) {
	svc := NewTensorService(nil, nil, nil, nil, nil)
	rec := svc.PlayerRecord(&model.Player{ExternalID: "x", Name: "Rookie"}, nil, 2024)
	if rec.Sub("seasonal") != nil {
		t.Error("expected no seasonal block for empty history")
	}
	// Still encodes cleanly.
	vec, err := encoding.EncodePlayer(rec)
	if err != nil {
		t.Fatalf("EncodePlayer: %v", err)
	}
	if len(vec) != encoding.PlayerFeatures {
		t.Errorf("length = %d, want %d", len(vec), encoding.PlayerFeatures)
	}
}

func TestPlayerTensorNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.tensors.PlayerTensor(context.Background(), 999)
	if err != ErrPlayerNotFound {
		t.Errorf("err = %v, want ErrPlayerNotFound", err)
	}
}

func TestRosterTensorShapeAndCache(t *testing.T) {
	f := newFixture(t)
	f.addPlayer(t, f.home, "QB One", "QB")
	f.addPlayer(t, f.home, "RB One", "RB")

	ctx := context.Background()
	vec, err := f.tensors.RosterTensor(ctx, f.home.ID, f.season.ID)
	if err != nil {
		t.Fatalf("RosterTensor: %v", err)
	}
	if len(vec) != encoding.RosterFeatures {
		t.Errorf("length = %d, want %d", len(vec), encoding.RosterFeatures)
	}
	// QB in slot 0, RB in slot 1, position codes at offset 1.
	if vec[1] != 1 {
		t.Errorf("slot 0 position code = %v, want 1 (QB)", vec[1])
	}
	if vec[encoding.PlayerFeatures+1] != 2 {
		t.Errorf("slot 1 position code = %v, want 2 (RB)", vec[encoding.PlayerFeatures+1])
	}

	// Second call serves from cache.
	vec2, err := f.tensors.RosterTensor(ctx, f.home.ID, f.season.ID)
	if err != nil {
		t.Fatalf("second RosterTensor: %v", err)
	}
	if f.cache.rosterHits != 1 {
		t.Errorf("cache hits = %d, want 1", f.cache.rosterHits)
	}
	for i := range vec {
		if vec[i] != vec2[i] {
			t.Fatalf("cached vector differs at %d", i)
		}
	}
}

func TestGameTensorComposition(t *testing.T) {
	f := newFixture(t)
	f.addPlayer(t, f.home, "Home QB", "QB")
	f.addPlayer(t, f.away, "Away QB", "QB")
	f.teams.UpsertRecord(context.Background(), &model.TeamSeason{
		TeamID: f.home.ID, SeasonID: f.season.ID, Wins: 3, Losses: 1,
	})

	vec, err := f.tensors.GameTensor(context.Background(), f.game.ID)
	if err != nil {
		t.Fatalf("GameTensor: %v", err)
	}
	if len(vec) != encoding.GameFeatures {
		t.Errorf("length = %d, want %d", len(vec), encoding.GameFeatures)
	}

	ctxStart := 2 * encoding.RosterFeatures
	if vec[ctxStart] != 55 {
		t.Errorf("context temperature = %v, want 55", vec[ctxStart])
	}
	// Rain keyword flag from stored game info.
	if vec[ctxStart+12] != 1 {
		t.Errorf("rain flag = %v, want 1", vec[ctxStart+12])
	}
	if vec[ctxStart+5] != 3 || vec[ctxStart+6] != 1 {
		t.Errorf("home record = %v-%v, want 3-1", vec[ctxStart+5], vec[ctxStart+6])
	}
	// No away record row: defaults to zero.
	if vec[ctxStart+7] != 0 {
		t.Errorf("away wins = %v, want 0", vec[ctxStart+7])
	}
}

func TestGameTensorNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.tensors.GameTensor(context.Background(), 999)
	if err != ErrGameNotFound {
		t.Errorf("err = %v, want ErrGameNotFound", err)
	}
}

func TestPlayTensor(t *testing.T) {
	f := newFixture(t)
	f.addPlayer(t, f.home, "Home QB", "QB")

	state := PlayStateRecord(model.Play{Quarter: 4, Clock: 119, Down: 3, Distance: 8, YardLine: 42})
	vec, err := f.tensors.PlayTensor(context.Background(), f.game.ID, state)
	if err != nil {
		t.Fatalf("PlayTensor: %v", err)
	}
	if len(vec) != encoding.PlayFeatures {
		t.Errorf("length = %d, want %d", len(vec), encoding.PlayFeatures)
	}
	stateStart := encoding.GameFeatures
	if vec[stateStart] != 4 {
		t.Errorf("quarter = %v, want 4", vec[stateStart])
	}
	if vec[stateStart+2] != 3 {
		t.Errorf("down = %v, want 3", vec[stateStart+2])
	}
}

func TestTensorServiceWithoutCache(t *testing.T) {
	f := newFixture(t)
	noCache := NewTensorService(f.players, f.teams, f.seasons, f.games, nil)
	f.addPlayer(t, f.home, "QB One", "QB")

	vec, err := noCache.RosterTensor(context.Background(), f.home.ID, f.season.ID)
	if err != nil {
		t.Fatalf("RosterTensor without cache: %v", err)
	}
	if len(vec) != encoding.RosterFeatures {
		t.Errorf("length = %d, want %d", len(vec), encoding.RosterFeatures)
	}
}
