package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-rest-backend/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rest-backend/internal/entity"
)

const (
	// WinnerNone means the game is still undecided.
	WinnerNone = ""
	// WinnerDraw means the board is full with no three-in-a-row.
	WinnerDraw = "draw"
)

// winLines are the 8 winning triples (3 rows, 3 cols, 2 diagonals) as
// (row, col) coordinates, checked in this fixed order.
var winLines = [8][3][2]int{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// NewGame builds a fresh game with an empty board. The difficulty is only
// retained when the game is played against the computer.
func NewGame(id, firstPlayer, mode, aiDifficulty string) *entity.Game {
	if mode != entity.ModeAI {
		aiDifficulty = ""
	}

	return &entity.Game{
		ID:           id,
		Board:        entity.Board{},
		NextPlayer:   firstPlayer,
		Status:       entity.StatusInProgress,
		Mode:         mode,
		AIDifficulty: aiDifficulty,
		FirstPlayer:  firstPlayer,
		Moves:        0,
	}
}

// AvailableMoves returns all empty cells in row-major order.
func AvailableMoves(board entity.Board) []entity.Move {
	moves := make([]entity.Move, 0, entity.BoardSize*entity.BoardSize)
	for row := 0; row < entity.BoardSize; row++ {
		for col := 0; col < entity.BoardSize; col++ {
			if board[row][col] == entity.EmptyCell {
				moves = append(moves, entity.Move{Row: row, Col: col})
			}
		}
	}

	return moves
}

// CheckWinner reports the outcome of the board: PlayerX or PlayerO if a side
// occupies a full line, WinnerDraw if the board is full without one, and
// WinnerNone while the game is still open.
func CheckWinner(board entity.Board) string {
	for _, line := range winLines {
		a := board[line[0][0]][line[0][1]]
		b := board[line[1][0]][line[1][1]]
		c := board[line[2][0]][line[2][1]]
		if a != entity.EmptyCell && a == b && b == c {
			return a
		}
	}

	if len(AvailableMoves(board)) == 0 {
		return WinnerDraw
	}

	return WinnerNone
}

// ApplyMove places the next player's mark at (row, col) and returns a new
// game state. The input state is never mutated.
func ApplyMove(state *entity.Game, row, col int) (*entity.Game, error) {
	if state.IsFinished() {
		return nil, apperror.ErrGameNotInProgress
	}

	if row < 0 || row >= entity.BoardSize || col < 0 || col >= entity.BoardSize {
		return nil, fmt.Errorf("%w: row %d, col %d", apperror.ErrOutOfBounds, row, col)
	}

	if state.NextPlayer == entity.EmptyCell {
		return nil, apperror.ErrNoNextPlayer
	}

	if state.Board[row][col] != entity.EmptyCell {
		return nil, fmt.Errorf("%w: row %d, col %d", apperror.ErrCellOccupied, row, col)
	}

	next := state.Clone()
	next.Board[row][col] = state.NextPlayer
	next.Status = statusForWinner(CheckWinner(next.Board))
	next.Moves++

	if next.Status == entity.StatusInProgress {
		next.NextPlayer = entity.ToggleMark(state.NextPlayer)
	} else {
		next.NextPlayer = entity.EmptyCell
	}

	return next, nil
}

func statusForWinner(winner string) string {
	switch winner {
	case entity.PlayerX:
		return entity.StatusXWon
	case entity.PlayerO:
		return entity.StatusOWon
	case WinnerDraw:
		return entity.StatusDraw
	default:
		return entity.StatusInProgress
	}
}
