package bot

import (
	"math/rand"

	"github.com/rocketscienceinc/tictactoe-rest-backend/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rest-backend/internal/tictactoe"
)

// MovePicker nominates a move for the computer player. It never mutates the
// game; the caller commits the move through the rules engine.
type MovePicker interface {
	PickMove(game *entity.Game) *entity.Move
}

type movePicker struct{}

func New() MovePicker {
	return &movePicker{}
}

// PickMove returns a legal move for the current player, or nil when the game
// is over, not played against the computer, or has no free cell left.
func (that *movePicker) PickMove(game *entity.Game) *entity.Move {
	if game.IsFinished() || !game.IsWithAI() {
		return nil
	}

	moves := tictactoe.AvailableMoves(game.Board)
	if len(moves) == 0 {
		return nil
	}

	if game.AIDifficulty == entity.DifficultyHard {
		return that.pickHard(moves)
	}

	return pickRandom(moves)
}

// pickHard is where a minimax strategy would live. There is no look-ahead
// yet, so it plays the same random policy as easy.
func (that *movePicker) pickHard(moves []entity.Move) *entity.Move {
	return pickRandom(moves)
}

func pickRandom(moves []entity.Move) *entity.Move {
	chosen := moves[rand.Intn(len(moves))] //nolint: gosec // it's ok
	return &chosen
}
