package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/puzzleworks/daily-riddle/internal/game"
	httperrors "github.com/puzzleworks/daily-riddle/pkg/http/errors"
)

// Handlers serves the game API for browser clients. All game logic lives in
// the engine; handlers only translate HTTP to engine calls.
type Handlers struct {
	manager *game.Manager
	logger  zerolog.Logger
}

// NewHandlers builds the API handlers.
func NewHandlers(manager *game.Manager, logger zerolog.Logger) *Handlers {
	return &Handlers{manager: manager, logger: logger}
}

func (h *Handlers) engine(w http.ResponseWriter, r *http.Request) (*game.Engine, bool) {
	e, err := h.manager.EngineFor(r.Context(), deviceID(w, r))
	if err != nil {
		h.logger.Error().Err(err).Msg("engine lookup failed")
		httperrors.RespondError(w, http.StatusInternalServerError, httperrors.ErrCodeSessionError, "could not load today's session")
		return nil, false
	}
	return e, true
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// Today returns the day's puzzles and the resumed session view. Answers and
// digests never leave the server; hints only once revealed.
func (h *Handlers) Today(w http.ResponseWriter, r *http.Request) {
	e, ok := h.engine(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, e.View())
}

type guessRequest struct {
	Guess string `json:"guess"`
}

type guessResponse struct {
	game.SubmitResult
	View game.View `json:"session"`
}

// Guess runs a submission through the scoring state machine.
func (h *Handlers) Guess(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "POST required")
		return
	}
	var req guessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "invalid JSON body")
		return
	}

	e, ok := h.engine(w, r)
	if !ok {
		return
	}

	res := e.Submit(r.Context(), req.Guess)
	if !res.Accepted {
		guessesTotal.WithLabelValues(outcomeRejected).Inc()
		switch {
		case strings.TrimSpace(req.Guess) == "":
			httperrors.RespondBadRequest(w, httperrors.ErrCodeEmptyGuess, "guess is empty")
		case e.View().Done:
			httperrors.RespondConflict(w, httperrors.ErrCodeDayComplete, "all puzzles solved today")
		default:
			httperrors.RespondConflict(w, httperrors.ErrCodeNotIdle, "previous guess still settling")
		}
		return
	}

	if res.Correct {
		guessesTotal.WithLabelValues(outcomeCorrect).Inc()
	} else {
		guessesTotal.WithLabelValues(outcomeWrong).Inc()
	}

	view := e.View()
	if res.Correct && (view.Done || view.Completed == len(view.Puzzles)-1) {
		daysCompletedTotal.Inc()
	}
	respondJSON(w, http.StatusOK, guessResponse{SubmitResult: res, View: view})
}

// Hint reveals the active puzzle's hint, zeroing its eventual award.
func (h *Handlers) Hint(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "POST required")
		return
	}
	e, ok := h.engine(w, r)
	if !ok {
		return
	}
	hint, revealed := e.RevealHint()
	if !revealed {
		httperrors.RespondConflict(w, httperrors.ErrCodeDayComplete, "all puzzles solved today")
		return
	}
	hintsTotal.Inc()
	respondJSON(w, http.StatusOK, map[string]string{"hint": hint})
}

// Share renders the completed day's summary string.
func (h *Handlers) Share(w http.ResponseWriter, r *http.Request) {
	e, ok := h.engine(w, r)
	if !ok {
		return
	}
	text, done := e.Share()
	if !done {
		httperrors.RespondConflict(w, httperrors.ErrCodeDayIncomplete, "finish today's puzzles first")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"share": text})
}
