package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/levelup-life/levelup-service/internal/apierrors"
	"github.com/levelup-life/levelup-service/internal/game"
	"github.com/levelup-life/levelup-service/internal/shop"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, code, message string) {
	writeJSON(w, apierrors.ToStatusCode(code), apierrors.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// respondServiceError translates domain errors into the error envelope and
// logs anything unexpected.
func respondServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, logMsg string, err error) {
	code := errorCode(err)
	if code == "internal" {
		logger.Error(logMsg, "error", err, "request_id", middleware.GetReqID(r.Context()))
		writeJSON(w, http.StatusInternalServerError, apierrors.ErrorResponse{
			Code:      code,
			Message:   "internal server error",
			RequestID: middleware.GetReqID(r.Context()),
		})
		return
	}
	writeJSON(w, apierrors.ToStatusCode(code), apierrors.ErrorResponse{
		Code:      code,
		Message:   err.Error(),
		RequestID: middleware.GetReqID(r.Context()),
	})
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, shop.ErrUnknownItem), errors.Is(err, game.ErrUnknownGoal):
		return "not_found"
	case errors.Is(err, shop.ErrInsufficientGems),
		errors.Is(err, shop.ErrAlreadyOwned),
		errors.Is(err, game.ErrSyncInFlight):
		return "conflict"
	case errors.Is(err, shop.ErrNotOwned):
		return "forbidden"
	case errors.Is(err, game.ErrEmptyName),
		errors.Is(err, game.ErrEmptyGoalLabel),
		errors.Is(err, game.ErrInvalidCategory):
		return "bad_request"
	default:
		return "internal"
	}
}
