package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Dosada05/chess-league/middleware"
	"github.com/Dosada05/chess-league/services"
)

type GameHandler struct {
	gameService services.GameService
}

func NewGameHandler(gs services.GameService) *GameHandler {
	return &GameHandler{gameService: gs}
}

type resultInput struct {
	Result string `json:"result"`
}

// ResultHandler handles PATCH /games/{gameID}/result
func (h *GameHandler) ResultHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "gameID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input resultInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	game, err := h.gameService.SetResult(r.Context(), id, input.Result)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	logActor(r, "result submitted", id)

	if err := writeJSON(w, http.StatusOK, jsonResponse{"game": game}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type dateInput struct {
	Date *string `json:"date"`
}

// DateHandler handles PATCH /games/{gameID}/date
func (h *GameHandler) DateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "gameID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input dateInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	date, err := parseDate("date", input.Date)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	game, err := h.gameService.Reschedule(r.Context(), id, date)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	logActor(r, "game rescheduled", id)

	if err := writeJSON(w, http.StatusOK, jsonResponse{"game": game}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// logActor records which organizer changed a game; anonymous requests log user_id 0.
func logActor(r *http.Request, msg string, gameID int) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	slog.InfoContext(r.Context(), msg, slog.Int("game_id", gameID), slog.Int("user_id", userID))
}
