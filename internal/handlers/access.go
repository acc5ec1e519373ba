package handlers

import (
	"GiftHunt/internal/middleware"
	"GiftHunt/internal/service"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AccessHandler — приглашения и администратор вишлиста.
type AccessHandler struct {
	Invitations *service.InvitationService
	Admins      *service.AdminService
	Logger      *zap.SugaredLogger
}

func NewAccessHandler(invitations *service.InvitationService, admins *service.AdminService, logger *zap.SugaredLogger) *AccessHandler {
	return &AccessHandler{Invitations: invitations, Admins: admins, Logger: logger}
}

type invitationRequest struct {
	Email string `json:"email"`
}

type revokeResponse struct {
	Revoked           bool `json:"revoked"`
	ShareLinksRemoved bool `json:"share_links_removed"`
}

func (h *AccessHandler) ListInvitations(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	list, err := h.Invitations.List(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.Logger, "ListInvitations", err)
		return
	}
	if list == nil {
		list = []service.InvitationView{}
	}
	writeJSON(w, http.StatusOK, list)
}

// CreateInvitation приглашает администратора по email
func (h *AccessHandler) CreateInvitation(w http.ResponseWriter, r *http.Request) {
	var req invitationRequest
	if !decodeJSON(w, r, h.Logger, "CreateInvitation", &req) {
		return
	}
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	inv, err := h.Invitations.Create(r.Context(), userID, chi.URLParam(r, "id"), req.Email)
	if err != nil {
		writeError(w, h.Logger, "CreateInvitation", err)
		return
	}
	writeJSON(w, http.StatusCreated, inv)
}

func (h *AccessHandler) RemoveInvitation(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	if err := h.Invitations.Remove(r.Context(), userID, chi.URLParam(r, "invitationID")); err != nil {
		writeError(w, h.Logger, "RemoveInvitation", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Preview доступен и без входа: приглашённый видит, куда его зовут
func (h *AccessHandler) Preview(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	p, err := h.Invitations.Preview(r.Context(), chi.URLParam(r, "token"), userID)
	if err != nil {
		writeError(w, h.Logger, "PreviewInvitation", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *AccessHandler) Accept(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	admin, err := h.Invitations.Accept(r.Context(), chi.URLParam(r, "token"), userID)
	if err != nil {
		writeError(w, h.Logger, "AcceptInvitation", err)
		return
	}
	writeJSON(w, http.StatusOK, admin)
}

func (h *AccessHandler) GetAdmin(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	admin, err := h.Admins.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.Logger, "GetAdmin", err)
		return
	}
	writeJSON(w, http.StatusOK, admin)
}

// RevokeAdmin отзывает доступ администратора
func (h *AccessHandler) RevokeAdmin(w http.ResponseWriter, r *http.Request) {
	adminID, err := strconv.ParseInt(chi.URLParam(r, "adminID"), 10, 64)
	if err != nil || adminID <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid admin id"})
		return
	}
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	hadLinks, err := h.Admins.Revoke(r.Context(), userID, chi.URLParam(r, "id"), adminID)
	if err != nil {
		writeError(w, h.Logger, "RevokeAdmin", err)
		return
	}
	writeJSON(w, http.StatusOK, revokeResponse{Revoked: true, ShareLinksRemoved: hadLinks})
}
