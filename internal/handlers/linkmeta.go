package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// LinkMetaHandler отдаёт картинку и заголовок страницы для формы подарка.
type LinkMetaHandler struct {
	Fetcher LinkFetcher
	Logger  *zap.SugaredLogger
}

func NewLinkMetaHandler(fetcher LinkFetcher, logger *zap.SugaredLogger) *LinkMetaHandler {
	return &LinkMetaHandler{Fetcher: fetcher, Logger: logger}
}

type linkMetaRequest struct {
	URL string `json:"url"`
}

// Fetch никогда не отвечает ошибкой: любой сбой превращается в null
func (h *LinkMetaHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	var req linkMetaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Debugw("LinkMetadata: invalid request body", "error", err)
		writeJSON(w, http.StatusOK, nil)
		return
	}
	meta, err := h.Fetcher.Fetch(r.Context(), req.URL)
	if err != nil {
		h.Logger.Debugw("LinkMetadata: fetch failed", "url", req.URL, "error", err)
		writeJSON(w, http.StatusOK, nil)
		return
	}
	writeJSON(w, http.StatusOK, meta)
}
