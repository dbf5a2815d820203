package service

import (
	"context"
	"fmt"

	"github.com/gridironai/api/internal/model"
)

type mockPlayerRepo struct {
	players map[int64]*model.Player
	seasons map[int64][]model.PlayerSeason
	rosters map[string][]int64 // "teamID:seasonID" -> ordered player IDs
}

func newMockPlayerRepo() *mockPlayerRepo {
	return &mockPlayerRepo{
		players: make(map[int64]*model.Player),
		seasons: make(map[int64][]model.PlayerSeason),
		rosters: make(map[string][]int64),
	}
}

func rosterMapKey(teamID, seasonID int64) string {
	return fmt.Sprintf("%d:%d", teamID, seasonID)
}

func (m *mockPlayerRepo) Upsert(_ context.Context, p *model.Player) (*model.Player, error) {
	if p.ID == 0 {
		p.ID = int64(len(m.players) + 1)
	}
	m.players[p.ID] = p
	return p, nil
}

func (m *mockPlayerRepo) FindByID(_ context.Context, id int64) (*model.Player, error) {
	return m.players[id], nil
}

func (m *mockPlayerRepo) FindByExternalID(_ context.Context, externalID string) (*model.Player, error) {
	for _, p := range m.players {
		if p.ExternalID == externalID {
			return p, nil
		}
	}
	return nil, nil
}

func (m *mockPlayerRepo) ListByTeamSeason(_ context.Context, teamID, seasonID int64) ([]model.Player, error) {
	var out []model.Player
	for _, id := range m.rosters[rosterMapKey(teamID, seasonID)] {
		if p, ok := m.players[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockPlayerRepo) ListByPosition(_ context.Context, position string, limit int) ([]model.Player, error) {
	var out []model.Player
	for id := int64(1); id <= int64(len(m.players)); id++ {
		p, ok := m.players[id]
		if !ok || p.Position != position {
			continue
		}
		out = append(out, *p)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *mockPlayerRepo) ListSeasons(_ context.Context, playerID int64) ([]model.PlayerSeason, error) {
	return m.seasons[playerID], nil
}

func (m *mockPlayerRepo) UpsertSeason(_ context.Context, ps *model.PlayerSeason) error {
	m.seasons[ps.PlayerID] = append(m.seasons[ps.PlayerID], *ps)
	return nil
}

func (m *mockPlayerRepo) addToRoster(teamID, seasonID, playerID int64) {
	key := rosterMapKey(teamID, seasonID)
	m.rosters[key] = append(m.rosters[key], playerID)
}

type mockTeamRepo struct {
	teams   map[int64]*model.Team
	records map[string]*model.TeamSeason
}

func newMockTeamRepo() *mockTeamRepo {
	return &mockTeamRepo{
		teams:   make(map[int64]*model.Team),
		records: make(map[string]*model.TeamSeason),
	}
}

func (m *mockTeamRepo) Upsert(_ context.Context, t *model.Team) (*model.Team, error) {
	if t.ID == 0 {
		t.ID = int64(len(m.teams) + 1)
	}
	m.teams[t.ID] = t
	return t, nil
}

func (m *mockTeamRepo) FindByID(_ context.Context, id int64) (*model.Team, error) {
	return m.teams[id], nil
}

func (m *mockTeamRepo) FindByExternalID(_ context.Context, externalID string) (*model.Team, error) {
	for _, t := range m.teams {
		if t.ExternalID == externalID {
			return t, nil
		}
	}
	return nil, nil
}

func (m *mockTeamRepo) Record(_ context.Context, teamID, seasonID int64) (*model.TeamSeason, error) {
	return m.records[rosterMapKey(teamID, seasonID)], nil
}

func (m *mockTeamRepo) UpsertRecord(_ context.Context, ts *model.TeamSeason) error {
	m.records[rosterMapKey(ts.TeamID, ts.SeasonID)] = ts
	return nil
}

type mockSeasonRepo struct {
	byYear map[int]*model.Season
}

func newMockSeasonRepo() *mockSeasonRepo {
	return &mockSeasonRepo{byYear: make(map[int]*model.Season)}
}

func (m *mockSeasonRepo) Ensure(_ context.Context, year int) (*model.Season, error) {
	if s, ok := m.byYear[year]; ok {
		return s, nil
	}
	s := &model.Season{ID: int64(len(m.byYear) + 1), Year: year}
	m.byYear[year] = s
	return s, nil
}

func (m *mockSeasonRepo) FindByYear(_ context.Context, year int) (*model.Season, error) {
	return m.byYear[year], nil
}

type mockGameRepo struct {
	games map[int64]*model.Game
}

func newMockGameRepo() *mockGameRepo {
	return &mockGameRepo{games: make(map[int64]*model.Game)}
}

func (m *mockGameRepo) Upsert(_ context.Context, g *model.Game) (*model.Game, error) {
	if g.ID == 0 {
		g.ID = int64(len(m.games) + 1)
	}
	m.games[g.ID] = g
	return g, nil
}

func (m *mockGameRepo) FindByID(_ context.Context, id int64) (*model.Game, error) {
	return m.games[id], nil
}

func (m *mockGameRepo) ListByWeek(_ context.Context, seasonYear, week int) ([]model.Game, error) {
	var out []model.Game
	for id := int64(1); id <= int64(len(m.games)); id++ {
		g, ok := m.games[id]
		if ok && g.SeasonYear == seasonYear && g.Week == week {
			out = append(out, *g)
		}
	}
	return out, nil
}

type mockCache struct {
	rosters map[string][]float32
	games   map[int64][]float32

	rosterHits, rosterMisses int
	gameHits, gameMisses     int
}

func newMockCache() *mockCache {
	return &mockCache{
		rosters: make(map[string][]float32),
		games:   make(map[int64][]float32),
	}
}

func (m *mockCache) GetRosterTensor(_ context.Context, teamID, seasonID int64) ([]float32, error) {
	vec := m.rosters[rosterMapKey(teamID, seasonID)]
	if vec == nil {
		m.rosterMisses++
	} else {
		m.rosterHits++
	}
	return vec, nil
}

func (m *mockCache) SetRosterTensor(_ context.Context, teamID, seasonID int64, vec []float32) error {
	m.rosters[rosterMapKey(teamID, seasonID)] = vec
	return nil
}

func (m *mockCache) GetGameTensor(_ context.Context, gameID int64) ([]float32, error) {
	vec := m.games[gameID]
	if vec == nil {
		m.gameMisses++
	} else {
		m.gameHits++
	}
	return vec, nil
}

func (m *mockCache) SetGameTensor(_ context.Context, gameID int64, vec []float32) error {
	m.games[gameID] = vec
	return nil
}

func (m *mockCache) InvalidateRoster(_ context.Context, teamID, seasonID int64) error {
	delete(m.rosters, rosterMapKey(teamID, seasonID))
	return nil
}

func (m *mockCache) InvalidateGame(_ context.Context, gameID int64) error {
	delete(m.games, gameID)
	return nil
}
