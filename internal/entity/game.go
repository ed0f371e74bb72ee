package entity

const (
	StatusInProgress = "in_progress"
	StatusXWon       = "x_won"
	StatusOWon       = "o_won"
	StatusDraw       = "draw"

	PlayerX = "X"
	PlayerO = "O"

	ModePvP = "pvp"
	ModeAI  = "ai"

	DifficultyEasy = "easy"
	DifficultyHard = "hard"

	EmptyCell = ""

	BoardSize = 3
)

// Board is a 3x3 grid of cells holding PlayerX, PlayerO or EmptyCell.
type Board [BoardSize][BoardSize]string

// Move is a 0-based (row, col) coordinate on the board.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Game represents the full state of a single game. Transitions never mutate
// a Game in place: the rules engine returns a fresh value and the repository
// replaces the stored one wholesale.
type Game struct {
	ID           string `json:"id"`
	Board        Board  `json:"board"`
	NextPlayer   string `json:"next_player"` // empty once the game has ended
	Status       string `json:"status"`
	Mode         string `json:"mode"`
	AIDifficulty string `json:"ai_difficulty"` // empty unless Mode is ModeAI
	FirstPlayer  string `json:"first_player"`
	Moves        int    `json:"moves"`
}

func (that *Game) IsInProgress() bool {
	return that.Status == StatusInProgress
}

func (that *Game) IsFinished() bool {
	return that.Status != StatusInProgress
}

func (that *Game) IsWithAI() bool {
	return that.Mode == ModeAI
}

// Clone returns an independent copy of the game. Board is an array, so the
// value copy is a deep copy.
func (that *Game) Clone() *Game {
	clone := *that
	return &clone
}

// ToggleMark returns the mark of the opposite side.
func ToggleMark(currentMark string) string {
	if currentMark == PlayerX {
		return PlayerO
	}
	return PlayerX
}

func IsValidMode(mode string) bool {
	return mode == ModePvP || mode == ModeAI
}

func IsValidDifficulty(difficulty string) bool {
	return difficulty == DifficultyEasy || difficulty == DifficultyHard
}

func IsValidPlayer(player string) bool {
	return player == PlayerX || player == PlayerO
}
