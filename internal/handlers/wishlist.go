package handlers

import (
	"GiftHunt/internal/middleware"
	"GiftHunt/internal/service"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// WishlistHandler — вишлисты и подарки владельца и администратора.
type WishlistHandler struct {
	Wishlists *service.WishlistService
	Claims    *service.ClaimService
	Logger    *zap.SugaredLogger
}

func NewWishlistHandler(wishlists *service.WishlistService, claims *service.ClaimService, logger *zap.SugaredLogger) *WishlistHandler {
	return &WishlistHandler{Wishlists: wishlists, Claims: claims, Logger: logger}
}

func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	list, err := h.Wishlists.List(r.Context(), userID)
	if err != nil {
		writeError(w, h.Logger, "ListWishlists", err)
		return
	}
	if list == nil {
		list = []service.WishlistSummary{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *WishlistHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.WishlistInput
	if !decodeJSON(w, r, h.Logger, "CreateWishlist", &in) {
		return
	}
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	view, err := h.Wishlists.Create(r.Context(), userID, in)
	if err != nil {
		writeError(w, h.Logger, "CreateWishlist", err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func (h *WishlistHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	view, err := h.Wishlists.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.Logger, "GetWishlist", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *WishlistHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in service.WishlistInput
	if !decodeJSON(w, r, h.Logger, "UpdateWishlist", &in) {
		return
	}
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	view, err := h.Wishlists.Update(r.Context(), userID, chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, h.Logger, "UpdateWishlist", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *WishlistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	if err := h.Wishlists.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeError(w, h.Logger, "DeleteWishlist", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *WishlistHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var in service.ItemInput
	if !decodeJSON(w, r, h.Logger, "AddItem", &in) {
		return
	}
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	item, err := h.Wishlists.AddItem(r.Context(), userID, chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, h.Logger, "AddItem", err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *WishlistHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var in service.ItemInput
	if !decodeJSON(w, r, h.Logger, "UpdateItem", &in) {
		return
	}
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	item, err := h.Wishlists.UpdateItem(r.Context(), userID, chi.URLParam(r, "id"), chi.URLParam(r, "itemID"), in)
	if err != nil {
		writeError(w, h.Logger, "UpdateItem", err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *WishlistHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	if err := h.Wishlists.DeleteItem(r.Context(), userID, chi.URLParam(r, "id"), chi.URLParam(r, "itemID")); err != nil {
		writeError(w, h.Logger, "DeleteItem", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Untake снимает бронь обычного подарка (администратор)
func (h *WishlistHandler) Untake(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	if err := h.Claims.Untake(r.Context(), userID, chi.URLParam(r, "id"), chi.URLParam(r, "itemID")); err != nil {
		writeError(w, h.Logger, "Untake", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RemoveClaim удаляет бронь сертификата (администратор)
func (h *WishlistHandler) RemoveClaim(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	err := h.Claims.RemoveClaim(r.Context(), userID, chi.URLParam(r, "id"), chi.URLParam(r, "itemID"), chi.URLParam(r, "claimID"))
	if err != nil {
		writeError(w, h.Logger, "RemoveClaim", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
