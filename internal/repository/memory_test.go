package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-rest-backend/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rest-backend/internal/entity"
)

func newTestGame(id string) *entity.Game {
	return &entity.Game{
		ID:          id,
		NextPlayer:  entity.PlayerX,
		Status:      entity.StatusInProgress,
		Mode:        entity.ModePvP,
		FirstPlayer: entity.PlayerX,
	}
}

// fakeClock drives TTL expiry without sleeping.
type fakeClock struct {
	current time.Time
}

func (that *fakeClock) now() time.Time {
	return that.current
}

func (that *fakeClock) advance(d time.Duration) {
	that.current = that.current.Add(d)
}

func newClockedRepository(ttl time.Duration) (*memoryGame, *fakeClock) {
	clock := &fakeClock{current: time.Unix(1_700_000_000, 0)}
	repo := &memoryGame{
		games: make(map[string]storedGame),
		ttl:   ttl,
		now:   clock.now,
	}

	return repo, clock
}

func TestMemoryGame_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores a game and returns it", func(t *testing.T) {
		repo := NewMemoryGameRepository(0)

		// Given: a fresh game
		game := newTestGame("game-1")

		// When: creating it
		stored, err := repo.Create(ctx, game)

		// Then: the stored state round-trips through get
		require.NoError(t, err)
		assert.Equal(t, game, stored)

		fetched, err := repo.GetByID(ctx, "game-1")
		require.NoError(t, err)
		assert.Equal(t, game, fetched)
	})

	t.Run("Fails with ErrMissingGameID for a game without an id", func(t *testing.T) {
		repo := NewMemoryGameRepository(0)

		_, err := repo.Create(ctx, newTestGame(""))

		assert.ErrorIs(t, err, apperror.ErrMissingGameID)
	})

	t.Run("Fails with ErrGameAlreadyExists on a duplicate id", func(t *testing.T) {
		repo := NewMemoryGameRepository(0)

		_, err := repo.Create(ctx, newTestGame("game-1"))
		require.NoError(t, err)

		_, err = repo.Create(ctx, newTestGame("game-1"))

		assert.ErrorIs(t, err, apperror.ErrGameAlreadyExists)
	})

	t.Run("Stores an independent copy", func(t *testing.T) {
		repo := NewMemoryGameRepository(0)

		game := newTestGame("game-1")
		_, err := repo.Create(ctx, game)
		require.NoError(t, err)

		// When: the caller keeps mutating its copy
		game.Board[0][0] = entity.PlayerX
		game.Moves = 1

		// Then: the stored record is unaffected
		fetched, err := repo.GetByID(ctx, "game-1")
		require.NoError(t, err)
		assert.Equal(t, entity.EmptyCell, fetched.Board[0][0])
		assert.Equal(t, 0, fetched.Moves)
	})
}

func TestMemoryGame_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Fails with ErrGameNotFound for an unknown id", func(t *testing.T) {
		repo := NewMemoryGameRepository(0)

		_, err := repo.GetByID(ctx, "missing")

		assert.ErrorIs(t, err, apperror.ErrGameNotFound)
	})

	t.Run("Evicts and hides an expired game", func(t *testing.T) {
		repo, clock := newClockedRepository(time.Minute)

		_, err := repo.Create(ctx, newTestGame("game-1"))
		require.NoError(t, err)

		// When: more than the TTL elapses
		clock.advance(time.Minute + time.Second)

		// Then: the game is gone
		_, err = repo.GetByID(ctx, "game-1")
		assert.ErrorIs(t, err, apperror.ErrGameNotFound)

		// and the record was deleted, not just hidden
		assert.Empty(t, repo.games)
	})

	t.Run("Keeps a game alive forever without a TTL", func(t *testing.T) {
		repo, clock := newClockedRepository(0)

		_, err := repo.Create(ctx, newTestGame("game-1"))
		require.NoError(t, err)

		clock.advance(1000 * time.Hour)

		_, err = repo.GetByID(ctx, "game-1")
		assert.NoError(t, err)
	})
}

func TestMemoryGame_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Replaces the stored state", func(t *testing.T) {
		repo := NewMemoryGameRepository(0)

		game := newTestGame("game-1")
		_, err := repo.Create(ctx, game)
		require.NoError(t, err)

		// When: updating with a progressed state
		updated := game.Clone()
		updated.Board[0][0] = entity.PlayerX
		updated.NextPlayer = entity.PlayerO
		updated.Moves = 1

		saved, err := repo.Update(ctx, updated)

		// Then: get observes the new state
		require.NoError(t, err)
		assert.Equal(t, updated, saved)

		fetched, err := repo.GetByID(ctx, "game-1")
		require.NoError(t, err)
		assert.Equal(t, updated, fetched)
	})

	t.Run("Fails with ErrGameNotFound for an unknown id", func(t *testing.T) {
		repo := NewMemoryGameRepository(0)

		_, err := repo.Update(ctx, newTestGame("missing"))

		assert.ErrorIs(t, err, apperror.ErrGameNotFound)
	})

	t.Run("Fails with ErrMissingGameID for a game without an id", func(t *testing.T) {
		repo := NewMemoryGameRepository(0)

		_, err := repo.Update(ctx, newTestGame(""))

		assert.ErrorIs(t, err, apperror.ErrMissingGameID)
	})

	t.Run("Preserves the creation time for list ordering", func(t *testing.T) {
		repo, clock := newClockedRepository(0)

		_, err := repo.Create(ctx, newTestGame("game-1"))
		require.NoError(t, err)

		clock.advance(time.Second)
		_, err = repo.Create(ctx, newTestGame("game-2"))
		require.NoError(t, err)

		// When: the first game is updated after the second was created
		clock.advance(time.Second)
		_, err = repo.Update(ctx, newTestGame("game-1"))
		require.NoError(t, err)

		// Then: it still lists first
		games, err := repo.List(ctx, 0, 10)
		require.NoError(t, err)
		require.Len(t, games, 2)
		assert.Equal(t, "game-1", games[0].ID)
		assert.Equal(t, "game-2", games[1].ID)
	})

	t.Run("Fails with ErrGameNotFound for an expired game", func(t *testing.T) {
		repo, clock := newClockedRepository(time.Minute)

		_, err := repo.Create(ctx, newTestGame("game-1"))
		require.NoError(t, err)

		clock.advance(2 * time.Minute)

		_, err = repo.Update(ctx, newTestGame("game-1"))
		assert.ErrorIs(t, err, apperror.ErrGameNotFound)
	})
}

func TestMemoryGame_List(t *testing.T) {
	ctx := context.Background()

	t.Run("Orders by creation time then id", func(t *testing.T) {
		repo, clock := newClockedRepository(0)

		// Given: two games created in the same instant and one later
		_, err := repo.Create(ctx, newTestGame("game-b"))
		require.NoError(t, err)
		_, err = repo.Create(ctx, newTestGame("game-a"))
		require.NoError(t, err)

		clock.advance(time.Second)
		_, err = repo.Create(ctx, newTestGame("game-c"))
		require.NoError(t, err)

		// When: listing everything
		games, err := repo.List(ctx, 0, 10)

		// Then: ties break on id
		require.NoError(t, err)
		require.Len(t, games, 3)
		assert.Equal(t, "game-a", games[0].ID)
		assert.Equal(t, "game-b", games[1].ID)
		assert.Equal(t, "game-c", games[2].ID)
	})

	t.Run("Pages without overlap or loss", func(t *testing.T) {
		repo, clock := newClockedRepository(0)

		ids := []string{"game-1", "game-2", "game-3", "game-4", "game-5"}
		for _, id := range ids {
			_, err := repo.Create(ctx, newTestGame(id))
			require.NoError(t, err)
			clock.advance(time.Millisecond)
		}

		firstPage, err := repo.List(ctx, 0, 2)
		require.NoError(t, err)
		secondPage, err := repo.List(ctx, 2, 3)
		require.NoError(t, err)

		var combined []string
		for _, game := range append(firstPage, secondPage...) {
			combined = append(combined, game.ID)
		}

		assert.Equal(t, ids, combined)
	})

	t.Run("Never returns more than limit items", func(t *testing.T) {
		repo := NewMemoryGameRepository(0)

		for _, id := range []string{"game-1", "game-2", "game-3"} {
			_, err := repo.Create(ctx, newTestGame(id))
			require.NoError(t, err)
		}

		games, err := repo.List(ctx, 0, 2)

		require.NoError(t, err)
		assert.Len(t, games, 2)
	})

	t.Run("Returns an empty page past the end", func(t *testing.T) {
		repo := NewMemoryGameRepository(0)

		_, err := repo.Create(ctx, newTestGame("game-1"))
		require.NoError(t, err)

		games, err := repo.List(ctx, 10, 5)

		require.NoError(t, err)
		assert.Empty(t, games)
	})

	t.Run("Sweeps expired games before paging", func(t *testing.T) {
		repo, clock := newClockedRepository(time.Minute)

		_, err := repo.Create(ctx, newTestGame("game-old"))
		require.NoError(t, err)

		clock.advance(2 * time.Minute)
		_, err = repo.Create(ctx, newTestGame("game-new"))
		require.NoError(t, err)

		games, err := repo.List(ctx, 0, 10)

		require.NoError(t, err)
		require.Len(t, games, 1)
		assert.Equal(t, "game-new", games[0].ID)

		// the sweep removed the expired record entirely
		assert.Len(t, repo.games, 1)
	})
}
