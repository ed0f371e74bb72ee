package repository

import (
	"context"

	"github.com/rocketscienceinc/tictactoe-rest-backend/internal/entity"
)

// GameRepository is the storage contract for game records. All
// implementations report absent or expired games as apperror.ErrGameNotFound.
type GameRepository interface {
	Create(ctx context.Context, game *entity.Game) (*entity.Game, error)
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	Update(ctx context.Context, game *entity.Game) (*entity.Game, error)
	List(ctx context.Context, offset, limit int) ([]*entity.Game, error)
}
