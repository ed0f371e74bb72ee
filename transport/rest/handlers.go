package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-rest-backend/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rest-backend/internal/entity"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

type gameManager interface {
	StartGame(ctx context.Context, mode, aiDifficulty, firstPlayer string) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	MakeMove(ctx context.Context, id string, row, col int) (*entity.Game, error)
	AIMove(ctx context.Context, id string) (*entity.Move, *entity.Game, error)
	ListGames(ctx context.Context, offset, limit int) ([]*entity.Game, error)
}

type Handler struct {
	logger  *slog.Logger
	manager gameManager
}

func NewHandler(logger *slog.Logger, manager gameManager) *Handler {
	return &Handler{
		logger:  logger.With("component", "rest"),
		manager: manager,
	}
}

func (that *Handler) Ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

// CreateGame handles POST /games.
func (that *Handler) CreateGame(w http.ResponseWriter, r *http.Request) {
	var payload createGameRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		that.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if payload.AIDifficulty == "" {
		payload.AIDifficulty = entity.DifficultyEasy
	}
	if payload.FirstPlayer == "" {
		payload.FirstPlayer = entity.PlayerX
	}

	if !entity.IsValidMode(payload.Mode) {
		that.writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported mode: %q", payload.Mode))
		return
	}
	if !entity.IsValidDifficulty(payload.AIDifficulty) {
		that.writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported ai difficulty: %q", payload.AIDifficulty))
		return
	}
	if !entity.IsValidPlayer(payload.FirstPlayer) {
		that.writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported first player: %q", payload.FirstPlayer))
		return
	}

	game, err := that.manager.StartGame(r.Context(), payload.Mode, payload.AIDifficulty, payload.FirstPlayer)
	if err != nil {
		that.writeDomainError(w, err)
		return
	}

	that.writeJSON(w, http.StatusCreated, newGameStateResponse(game))
}

// ListGames handles GET /games.
func (that *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	offset, err := queryInt(r, "offset", 0)
	if err != nil || offset < 0 {
		that.writeError(w, http.StatusBadRequest, "offset must be a non-negative integer")
		return
	}

	limit, err := queryInt(r, "limit", defaultListLimit)
	if err != nil || limit < 1 || limit > maxListLimit {
		that.writeError(w, http.StatusBadRequest, fmt.Sprintf("limit must be an integer in [1, %d]", maxListLimit))
		return
	}

	games, err := that.manager.ListGames(r.Context(), offset, limit)
	if err != nil {
		that.writeDomainError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, newListGamesResponse(games, offset, limit))
}

// GetGame handles GET /games/{gameID}.
func (that *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")

	game, err := that.manager.GetGame(r.Context(), gameID)
	if err != nil {
		that.writeDomainError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, newGameStateResponse(game))
}

// MakeMove handles POST /games/{gameID}/moves.
func (that *Handler) MakeMove(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")

	var payload moveRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		that.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if payload.Row == nil || payload.Col == nil {
		that.writeError(w, http.StatusBadRequest, "row and col are required")
		return
	}

	game, err := that.manager.MakeMove(r.Context(), gameID, *payload.Row, *payload.Col)
	if err != nil {
		that.writeDomainError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, newGameStateResponse(game))
}

// AIMove handles POST /games/{gameID}/ai-move.
func (that *Handler) AIMove(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")

	move, game, err := that.manager.AIMove(r.Context(), gameID)
	if err != nil {
		that.writeDomainError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, newAIMoveResponse(move, game))
}

// writeDomainError translates domain error kinds to HTTP status codes.
func (that *Handler) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		that.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, apperror.ErrGameNotInProgress),
		errors.Is(err, apperror.ErrOutOfBounds),
		errors.Is(err, apperror.ErrNoNextPlayer),
		errors.Is(err, apperror.ErrCellOccupied):
		that.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperror.ErrGameAlreadyExists):
		that.writeError(w, http.StatusConflict, err.Error())
	default:
		that.logger.Error("request failed", "error", err)
		that.writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func (that *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}

func (that *Handler) writeError(w http.ResponseWriter, status int, detail string) {
	that.writeJSON(w, status, errorResponse{Detail: detail})
}

func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}

	return strconv.Atoi(raw)
}
