package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-rest-backend/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rest-backend/internal/entity"
)

const gamesIndexKey = "games:index"

// storedRecord is the wire shape of a game in redis. CreatedAt is kept inside
// the value so updates can preserve it.
type storedRecord struct {
	Game      *entity.Game `json:"game"`
	CreatedAt int64        `json:"created_at"` // unix milliseconds
}

// redisGame is a GameRepository backed by redis. Records live under
// "game:<id>" with a native key TTL; a sorted set scored by creation time
// keeps the list ordering, with the member id breaking score ties.
type redisGame struct {
	client *redis.Client
	ttl    time.Duration // zero means records never expire
}

func NewRedisGameRepository(client *redis.Client, ttl time.Duration) GameRepository {
	return &redisGame{
		client: client,
		ttl:    ttl,
	}
}

func (that *redisGame) Create(ctx context.Context, game *entity.Game) (*entity.Game, error) {
	if game.ID == "" {
		return nil, apperror.ErrMissingGameID
	}

	record := storedRecord{Game: game, CreatedAt: time.Now().UnixMilli()}

	recordJSON, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("could not marshal game: %w", err)
	}

	ok, err := that.client.SetNX(ctx, gameKey(game.ID), recordJSON, that.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to set game: %w", err)
	}

	if !ok {
		return nil, fmt.Errorf("%w: id %s", apperror.ErrGameAlreadyExists, game.ID)
	}

	err = that.client.ZAdd(ctx, gamesIndexKey, redis.Z{
		Score:  float64(record.CreatedAt),
		Member: game.ID,
	}).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to index game: %w", err)
	}

	return game.Clone(), nil
}

func (that *redisGame) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	record, err := that.getRecord(ctx, id)
	if err != nil {
		return nil, err
	}

	return record.Game, nil
}

func (that *redisGame) Update(ctx context.Context, game *entity.Game) (*entity.Game, error) {
	if game.ID == "" {
		return nil, apperror.ErrMissingGameID
	}

	existing, err := that.getRecord(ctx, game.ID)
	if err != nil {
		return nil, err
	}

	record := storedRecord{Game: game, CreatedAt: existing.CreatedAt}

	recordJSON, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("could not marshal game: %w", err)
	}

	// keep the remaining TTL so expiration still counts from creation
	expiration := time.Duration(0)
	if that.ttl > 0 {
		expiration = redis.KeepTTL
	}

	if err = that.client.Set(ctx, gameKey(game.ID), recordJSON, expiration).Err(); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return game.Clone(), nil
}

func (that *redisGame) List(ctx context.Context, offset, limit int) ([]*entity.Game, error) {
	ids, err := that.client.ZRange(ctx, gamesIndexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read game index: %w", err)
	}

	live := make([]*entity.Game, 0, len(ids))
	for _, id := range ids {
		record, err := that.getRecord(ctx, id)
		if errors.Is(err, apperror.ErrGameNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}

		live = append(live, record.Game)
	}

	if offset >= len(live) {
		return []*entity.Game{}, nil
	}

	end := offset + limit
	if end > len(live) {
		end = len(live)
	}

	return live[offset:end], nil
}

// getRecord fetches a live record, pruning the index entry when the key has
// expired.
func (that *redisGame) getRecord(ctx context.Context, id string) (*storedRecord, error) {
	response, err := that.client.Get(ctx, gameKey(id)).Result()

	if errors.Is(err, redis.Nil) {
		if remErr := that.client.ZRem(ctx, gamesIndexKey, id).Err(); remErr != nil {
			return nil, fmt.Errorf("failed to prune game index: %w", remErr)
		}
		return nil, fmt.Errorf("%w: id %s", apperror.ErrGameNotFound, id)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	var record storedRecord
	if err = json.Unmarshal([]byte(response), &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &record, nil
}

func gameKey(id string) string {
	return "game:" + id
}
