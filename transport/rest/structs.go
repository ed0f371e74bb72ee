package rest

import "github.com/rocketscienceinc/tictactoe-rest-backend/internal/entity"

type createGameRequest struct {
	Mode         string `json:"mode"`
	AIDifficulty string `json:"ai_difficulty"`
	FirstPlayer  string `json:"first_player"`
}

type moveRequest struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

// gameStateResponse is the wire projection of a game: empty board cells,
// a finished game's next player and a pvp game's difficulty all serialize
// as null.
type gameStateResponse struct {
	ID           string                                      `json:"id"`
	Board        [entity.BoardSize][entity.BoardSize]*string `json:"board"`
	NextPlayer   *string                                     `json:"next_player"`
	Status       string                                      `json:"status"`
	Mode         string                                      `json:"mode"`
	AIDifficulty *string                                     `json:"ai_difficulty"`
	FirstPlayer  string                                      `json:"first_player"`
	Moves        int                                         `json:"moves"`
}

type listGamesResponse struct {
	Items  []gameStateResponse `json:"items"`
	Offset int                 `json:"offset"`
	Limit  int                 `json:"limit"`
	Count  int                 `json:"count"`
}

type aiMoveResponse struct {
	Move  *[2]int           `json:"move"`
	State gameStateResponse `json:"state"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func newGameStateResponse(game *entity.Game) gameStateResponse {
	resp := gameStateResponse{
		ID:           game.ID,
		NextPlayer:   optional(game.NextPlayer),
		Status:       game.Status,
		Mode:         game.Mode,
		AIDifficulty: optional(game.AIDifficulty),
		FirstPlayer:  game.FirstPlayer,
		Moves:        game.Moves,
	}

	for row := 0; row < entity.BoardSize; row++ {
		for col := 0; col < entity.BoardSize; col++ {
			resp.Board[row][col] = optional(game.Board[row][col])
		}
	}

	return resp
}

func newListGamesResponse(games []*entity.Game, offset, limit int) listGamesResponse {
	items := make([]gameStateResponse, 0, len(games))
	for _, game := range games {
		items = append(items, newGameStateResponse(game))
	}

	return listGamesResponse{
		Items:  items,
		Offset: offset,
		Limit:  limit,
		Count:  len(items),
	}
}

func newAIMoveResponse(move *entity.Move, game *entity.Game) aiMoveResponse {
	resp := aiMoveResponse{State: newGameStateResponse(game)}
	if move != nil {
		resp.Move = &[2]int{move.Row, move.Col}
	}

	return resp
}

// optional maps the internal empty-string sentinel to null on the wire.
func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
