package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-rest-backend/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rest-backend/internal/tictactoe"
)

type gameRepo interface {
	Create(ctx context.Context, game *entity.Game) (*entity.Game, error)
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	Update(ctx context.Context, game *entity.Game) (*entity.Game, error)
	List(ctx context.Context, offset, limit int) ([]*entity.Game, error)
}

type movePicker interface {
	PickMove(game *entity.Game) *entity.Move
}

// GameManager composes the rules engine, the move picker and the repository
// into the user-facing operations. It adds no rules of its own.
type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo
	picker   movePicker
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, picker movePicker) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		gameRepo: gameRepo,
		picker:   picker,
	}
}

// StartGame creates a new game and persists it.
func (that *GameManager) StartGame(ctx context.Context, mode, aiDifficulty, firstPlayer string) (*entity.Game, error) {
	game := tictactoe.NewGame(uuid.NewString(), firstPlayer, mode, aiDifficulty)

	stored, err := that.gameRepo.Create(ctx, game)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game started", "id", stored.ID, "mode", stored.Mode)

	return stored, nil
}

// GetGame fetches a game's current state by id.
func (that *GameManager) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	return game, nil
}

// MakeMove applies a player move and persists the updated state.
func (that *GameManager) MakeMove(ctx context.Context, id string, row, col int) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	updated, err := tictactoe.ApplyMove(game, row, col)
	if err != nil {
		return nil, fmt.Errorf("failed to make move: %w", err)
	}

	saved, err := that.gameRepo.Update(ctx, updated)
	if err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return saved, nil
}

// AIMove lets the computer pick and apply a move when applicable. When the
// game is not played against the computer, or no move is available, it
// returns a nil move and the state unchanged.
func (that *GameManager) AIMove(ctx context.Context, id string) (*entity.Move, *entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	if !game.IsWithAI() {
		return nil, game, nil
	}

	move := that.picker.PickMove(game)
	if move == nil {
		return nil, game, nil
	}

	updated, err := tictactoe.ApplyMove(game, move.Row, move.Col)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to make ai move: %w", err)
	}

	saved, err := that.gameRepo.Update(ctx, updated)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to update game: %w", err)
	}

	that.logger.Debug("ai move applied", "id", saved.ID, "row", move.Row, "col", move.Col)

	return move, saved, nil
}

// ListGames returns a page of games ordered by creation time.
func (that *GameManager) ListGames(ctx context.Context, offset, limit int) ([]*entity.Game, error) {
	games, err := that.gameRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	return games, nil
}
