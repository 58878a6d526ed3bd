package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/tvqhuy/linhthu-arena/internal/game"
	"github.com/tvqhuy/linhthu-arena/internal/logging"
)

const leaderboardTTL = 30 * time.Second

// LeaderboardCache is a small read-through cache for the top-trainer list
// backed by redis. The backend runs fine without it; every method tolerates
// redis being unreachable and falls back to the database path.
type LeaderboardCache struct {
	rdb *redis.Client
}

// NewLeaderboardCache connects to redis at addr. Returns nil (cache
// disabled) when addr is empty or the server cannot be reached.
func NewLeaderboardCache(addr string) *LeaderboardCache {
	if addr == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logging.Error("redis unreachable; leaderboard cache disabled", err, logging.Fields{"addr": addr})
		return nil
	}
	logging.Info("leaderboard cache enabled", logging.Fields{"addr": addr})
	return &LeaderboardCache{rdb: rdb}
}

func leaderboardKey(limit int) string {
	return fmt.Sprintf("linhthu:leaderboard:%d", limit)
}

func (c *LeaderboardCache) Get(limit int) ([]game.Trainer, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	raw, err := c.rdb.Get(ctx, leaderboardKey(limit)).Bytes()
	if err != nil {
		return nil, false
	}
	var trainers []game.Trainer
	if err := json.Unmarshal(raw, &trainers); err != nil {
		return nil, false
	}
	return trainers, true
}

func (c *LeaderboardCache) Set(limit int, trainers []game.Trainer) {
	raw, err := json.Marshal(trainers)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := c.rdb.Set(ctx, leaderboardKey(limit), raw, leaderboardTTL).Err(); err != nil {
		logging.Error("failed to cache leaderboard", err, nil)
	}
}

// Invalidate drops every cached leaderboard entry after a stat write.
func (c *LeaderboardCache) Invalidate() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	iter := c.rdb.Scan(ctx, 0, "linhthu:leaderboard:*", 0).Iterator()
	for iter.Next(ctx) {
		c.rdb.Del(ctx, iter.Val())
	}
}
