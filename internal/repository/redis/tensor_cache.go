package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Encoded tensors are deterministic for fixed inputs, so cached entries
// only go stale when the underlying roster or game data changes. The TTL
// bounds staleness between explicit invalidations.
const tensorTTL = 6 * time.Hour

// Key patterns for cached tensors.
func rosterKey(teamID, seasonID int64) string {
	return "tensor:roster:" + strconv.FormatInt(teamID, 10) + ":" + strconv.FormatInt(seasonID, 10)
}

func gameKey(gameID int64) string {
	return "tensor:game:" + strconv.FormatInt(gameID, 10)
}

// SetRosterTensor caches an encoded roster vector.
func (c *Client) SetRosterTensor(ctx context.Context, teamID, seasonID int64, vec []float32) error {
	data, err := json.Marshal(vec)
	if err != nil {
		return fmt.Errorf("marshal roster tensor: %w", err)
	}
	return c.rdb.Set(ctx, rosterKey(teamID, seasonID), data, tensorTTL).Err()
}

// GetRosterTensor retrieves a cached roster vector, or nil on a miss.
func (c *Client) GetRosterTensor(ctx context.Context, teamID, seasonID int64) ([]float32, error) {
	return c.getTensor(ctx, rosterKey(teamID, seasonID))
}

// SetGameTensor caches an encoded game vector.
func (c *Client) SetGameTensor(ctx context.Context, gameID int64, vec []float32) error {
	data, err := json.Marshal(vec)
	if err != nil {
		return fmt.Errorf("marshal game tensor: %w", err)
	}
	return c.rdb.Set(ctx, gameKey(gameID), data, tensorTTL).Err()
}

// GetGameTensor retrieves a cached game vector, or nil on a miss.
func (c *Client) GetGameTensor(ctx context.Context, gameID int64) ([]float32, error) {
	return c.getTensor(ctx, gameKey(gameID))
}

// InvalidateRoster drops a cached roster vector after roster data changes.
func (c *Client) InvalidateRoster(ctx context.Context, teamID, seasonID int64) error {
	return c.rdb.Del(ctx, rosterKey(teamID, seasonID)).Err()
}

// InvalidateGame drops a cached game vector.
func (c *Client) InvalidateGame(ctx context.Context, gameID int64) error {
	return c.rdb.Del(ctx, gameKey(gameID)).Err()
}

func (c *Client) getTensor(ctx context.Context, key string) ([]float32, error) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get tensor: %w", err)
	}
	var vec []float32
	if err := json.Unmarshal(data, &vec); err != nil {
		return nil, fmt.Errorf("unmarshal tensor: %w", err)
	}
	return vec, nil
}
