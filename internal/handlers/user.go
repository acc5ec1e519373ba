package handlers

import (
	"GiftHunt/internal/config"
	"GiftHunt/internal/middleware"
	"GiftHunt/internal/service"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// UserHandler обрабатывает регистрацию, вход и профиль.
type UserHandler struct {
	UserService *service.UserService
	Logger      *zap.SugaredLogger
	Config      *config.Config
}

// NewUserHandler создаёт хендлер пользователей
func NewUserHandler(userService *service.UserService, logger *zap.SugaredLogger, cfg *config.Config) *UserHandler {
	return &UserHandler{UserService: userService, Logger: logger, Config: cfg}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
}

type profileRequest struct {
	FullName string `json:"full_name"`
}

// Register регистрация пользователя, сразу выдаёт cookie
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeJSON(w, r, h.Logger, "Register", &req) {
		return
	}

	user, err := h.UserService.Register(r.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		writeError(w, h.Logger, "Register", err)
		return
	}
	if err := middleware.SetLoginCookie(w, user.ID, h.Config.AuthSecret); err != nil {
		h.Logger.Errorw("Register: failed to set cookie", "user_id", user.ID, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}
	h.Logger.Infow("user registered", "user_id", user.ID)
	writeJSON(w, http.StatusOK, service.Profile{ID: user.ID, Email: user.Email, FullName: user.FullName, CreatedAt: user.CreatedAt})
}

// Login вход по email и паролю
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeJSON(w, r, h.Logger, "Login", &req) {
		return
	}

	user, err := h.UserService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, h.Logger, "Login", err)
		return
	}
	if err := middleware.SetLoginCookie(w, user.ID, h.Config.AuthSecret); err != nil {
		h.Logger.Errorw("Login: failed to set cookie", "user_id", user.ID, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, service.Profile{ID: user.ID, Email: user.Email, FullName: user.FullName, CreatedAt: user.CreatedAt})
}

// Status показывает, кем сервер считает клиента
func (h *UserHandler) Status(w http.ResponseWriter, r *http.Request) {
	result := "anonymous"
	if userID, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		result = fmt.Sprintf("User ID = %d", userID)
	}
	writeJSON(w, http.StatusOK, map[string]string{"result": result})
}

func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	p, err := h.UserService.Profile(r.Context(), userID)
	if err != nil {
		writeError(w, h.Logger, "Profile", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// UpdateProfile меняет отображаемое имя
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if !decodeJSON(w, r, h.Logger, "UpdateProfile", &req) {
		return
	}
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	p, err := h.UserService.UpdateProfile(r.Context(), userID, req.FullName)
	if err != nil {
		writeError(w, h.Logger, "UpdateProfile", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
