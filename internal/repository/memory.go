package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-rest-backend/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rest-backend/internal/entity"
)

type storedGame struct {
	game      *entity.Game
	createdAt time.Time
}

// memoryGame is an in-memory GameRepository guarded by a single mutex.
// One critical section per operation keeps conflict semantics simple; games
// are small and short-lived, so the coarse lock is not a bottleneck.
type memoryGame struct {
	mu    sync.Mutex
	games map[string]storedGame
	ttl   time.Duration // zero means records never expire
	now   func() time.Time
}

// NewMemoryGameRepository creates an in-memory repository. A positive ttl
// makes records expire that long after creation; they are evicted lazily on
// the next read that observes them.
func NewMemoryGameRepository(ttl time.Duration) GameRepository {
	return &memoryGame{
		games: make(map[string]storedGame),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (that *memoryGame) Create(_ context.Context, game *entity.Game) (*entity.Game, error) {
	if game.ID == "" {
		return nil, apperror.ErrMissingGameID
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.games[game.ID]; ok {
		return nil, fmt.Errorf("%w: id %s", apperror.ErrGameAlreadyExists, game.ID)
	}

	that.games[game.ID] = storedGame{game: game.Clone(), createdAt: that.now()}

	return game.Clone(), nil
}

func (that *memoryGame) GetByID(_ context.Context, id string) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	stored, ok := that.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %s", apperror.ErrGameNotFound, id)
	}

	if that.isExpired(stored) {
		delete(that.games, id)
		return nil, fmt.Errorf("%w: id %s", apperror.ErrGameNotFound, id)
	}

	return stored.game.Clone(), nil
}

func (that *memoryGame) Update(_ context.Context, game *entity.Game) (*entity.Game, error) {
	if game.ID == "" {
		return nil, apperror.ErrMissingGameID
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	stored, ok := that.games[game.ID]
	if !ok || that.isExpired(stored) {
		return nil, fmt.Errorf("%w: id %s", apperror.ErrGameNotFound, game.ID)
	}

	// replace the game wholesale, keeping the original creation time
	that.games[game.ID] = storedGame{game: game.Clone(), createdAt: stored.createdAt}

	return game.Clone(), nil
}

func (that *memoryGame) List(_ context.Context, offset, limit int) ([]*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	for id, stored := range that.games {
		if that.isExpired(stored) {
			delete(that.games, id)
		}
	}

	all := make([]storedGame, 0, len(that.games))
	for _, stored := range that.games {
		all = append(all, stored)
	}

	// stable ordering by creation time, game id breaks ties
	sort.Slice(all, func(i, j int) bool {
		if !all[i].createdAt.Equal(all[j].createdAt) {
			return all[i].createdAt.Before(all[j].createdAt)
		}
		return all[i].game.ID < all[j].game.ID
	})

	if offset >= len(all) {
		return []*entity.Game{}, nil
	}

	end := offset + limit
	if end > len(all) {
		end = len(all)
	}

	page := make([]*entity.Game, 0, end-offset)
	for _, stored := range all[offset:end] {
		page = append(page, stored.game.Clone())
	}

	return page, nil
}

func (that *memoryGame) isExpired(stored storedGame) bool {
	if that.ttl <= 0 {
		return false
	}
	return that.now().Sub(stored.createdAt) > that.ttl
}
