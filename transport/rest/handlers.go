package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

type uGame interface {
	State(ctx context.Context) *entity.GameView
	Play(ctx context.Context, cell int) (*entity.GameView, error)
	JumpTo(ctx context.Context, move int) (*entity.GameView, error)
	Save(ctx context.Context) (*entity.GameView, error)
	Load(ctx context.Context) (*entity.GameView, error)
}

type Handlers interface {
	State(w http.ResponseWriter, r *http.Request)
	Play(w http.ResponseWriter, r *http.Request)
	JumpTo(w http.ResponseWriter, r *http.Request)
	Save(w http.ResponseWriter, r *http.Request)
	Load(w http.ResponseWriter, r *http.Request)
}

type handlers struct {
	logger *slog.Logger
	uGame  uGame
}

type playRequest struct {
	Cell *int `json:"cell"`
}

type jumpRequest struct {
	Move *int `json:"move"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewHandlers(logger *slog.Logger, uGame uGame) Handlers {
	return &handlers{
		logger: logger.With("component", "rest"),
		uGame:  uGame,
	}
}

func (that *handlers) State(w http.ResponseWriter, r *http.Request) {
	that.writeJSON(w, http.StatusOK, that.uGame.State(r.Context()))
}

func (that *handlers) Play(w http.ResponseWriter, r *http.Request) {
	var req playRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Cell == nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "body must be {\"cell\": <0-8>}"})
		return
	}

	view, err := that.uGame.Play(r.Context(), *req.Cell)
	that.respond(w, view, err)
}

func (that *handlers) JumpTo(w http.ResponseWriter, r *http.Request) {
	var req jumpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Move == nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "body must be {\"move\": <n>}"})
		return
	}

	view, err := that.uGame.JumpTo(r.Context(), *req.Move)
	that.respond(w, view, err)
}

func (that *handlers) Save(w http.ResponseWriter, r *http.Request) {
	view, err := that.uGame.Save(r.Context())
	that.respond(w, view, err)
}

func (that *handlers) Load(w http.ResponseWriter, r *http.Request) {
	view, err := that.uGame.Load(r.Context())
	that.respond(w, view, err)
}

func (that *handlers) respond(w http.ResponseWriter, view *entity.GameView, err error) {
	if err == nil {
		that.writeJSON(w, http.StatusOK, view)
		return
	}

	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, apperror.ErrMoveOutOfRange):
		status = http.StatusBadRequest
	case errors.Is(err, apperror.ErrSaveInProgress):
		status = http.StatusConflict
	case errors.Is(err, apperror.ErrInvalidSnapshot):
		status = http.StatusUnprocessableEntity
	default:
		that.logger.Error("request failed", "error", err)
	}

	that.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("could not write response", "error", err)
	}
}
