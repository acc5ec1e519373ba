package handlers

import (
	"GiftHunt/internal/service"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON читает тело запроса; при ошибке сам отвечает 400.
func decodeJSON(w http.ResponseWriter, r *http.Request, logger *zap.SugaredLogger, op string, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		logger.Warnw(op+": invalid request body", "error", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request"})
		return false
	}
	return true
}

// statusFor — единственное место, где ошибки сервисов превращаются в HTTP-статусы.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrExpired):
		return http.StatusGone
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrInvalidOrExpired):
		return http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrAlreadyExists),
		errors.Is(err, service.ErrAlreadyPending),
		errors.Is(err, service.ErrAlreadyAccepted),
		errors.Is(err, service.ErrAlreadyClaimed),
		errors.Is(err, service.ErrAlreadyTaken),
		errors.Is(err, service.ErrEditingRestricted),
		errors.Is(err, service.ErrLoginTaken):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, logger *zap.SugaredLogger, op string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Errorw(op+": service error", "error", err)
		writeJSON(w, status, errorResponse{Error: "internal error"})
		return
	}
	logger.Debugw(op+": rejected", "status", status, "error", err)
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
