package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/morris-backend/internal/entity"
)

const statsKey = "stats:results"

const (
	fieldPlayed = "played"
	fieldDraws  = "draws"
	fieldTurns  = "turns"
)

// StatsRepository keeps running tallies of finished games in one redis hash.
type StatsRepository interface {
	RecordResult(ctx context.Context, game *entity.Game) error
	Get(ctx context.Context) (map[string]int64, error)
}

type dbStats struct {
	client *redis.Client
}

func NewStatsRepository(client *redis.Client) StatsRepository {
	return &dbStats{
		client: client,
	}
}

func winsField(kind string) string {
	return "wins:" + kind
}

func seatField(id int) string {
	return "wins:seat:" + strconv.Itoa(id)
}

func (that *dbStats) RecordResult(ctx context.Context, game *entity.Game) error {
	_, err := that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HIncrBy(ctx, statsKey, fieldPlayed, 1)
		pipe.HIncrBy(ctx, statsKey, fieldTurns, int64(game.Turns))

		if game.IsDraw() || game.Winner == entity.NoWinner {
			pipe.HIncrBy(ctx, statsKey, fieldDraws, 1)
			return nil
		}

		pipe.HIncrBy(ctx, statsKey, winsField(game.WinnerKind()), 1)
		pipe.HIncrBy(ctx, statsKey, seatField(game.Winner), 1)

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to record result: %w", err)
	}

	return nil
}

func (that *dbStats) Get(ctx context.Context) (map[string]int64, error) {
	response, err := that.client.HGetAll(ctx, statsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	stats := make(map[string]int64, len(response))
	for field, value := range response {
		count, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse stats field %s: %w", field, err)
		}

		stats[field] = count
	}

	return stats, nil
}
