package handlers

import (
	"GiftHunt/internal/middleware"
	"GiftHunt/internal/service"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ShareHandler — ссылки для гостей и бронирование по ним.
type ShareHandler struct {
	ShareLinks *service.ShareLinkService
	Claims     *service.ClaimService
	Logger     *zap.SugaredLogger
}

func NewShareHandler(shareLinks *service.ShareLinkService, claims *service.ClaimService, logger *zap.SugaredLogger) *ShareHandler {
	return &ShareHandler{ShareLinks: shareLinks, Claims: claims, Logger: logger}
}

type claimRequest struct {
	ClaimerName string `json:"claimer_name"`
}

// GetOrCreate отдаёт действующую ссылку или создаёт новую (201)
func (h *ShareHandler) GetOrCreate(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	link, created, err := h.ShareLinks.GetOrCreate(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.Logger, "GetOrCreateShareLink", err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, link)
}

func (h *ShareHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	if err := h.ShareLinks.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeError(w, h.Logger, "DeleteShareLink", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Resolve — вишлист для гостя, без входа
func (h *ShareHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	view, err := h.ShareLinks.Resolve(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		writeError(w, h.Logger, "ResolveShareLink", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Claim бронирует подарок от имени гостя
func (h *ShareHandler) Claim(w http.ResponseWriter, r *http.Request) {
	var req claimRequest
	if !decodeJSON(w, r, h.Logger, "ClaimItem", &req) {
		return
	}
	res, err := h.Claims.ClaimItem(r.Context(), chi.URLParam(r, "token"), chi.URLParam(r, "itemID"), req.ClaimerName)
	if err != nil {
		writeError(w, h.Logger, "ClaimItem", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
