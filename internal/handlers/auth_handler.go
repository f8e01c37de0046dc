package handlers

import (
	"encoding/json"
	"net/http"

	"carwash-backend/internal/middleware"
	"carwash-backend/internal/models"
	"carwash-backend/internal/services"
	"carwash-backend/pkg/utils"
)

type AuthHandler struct {
	Service    *services.AuthService
	CookieName string
}

func NewAuthHandler(s *services.AuthService, cookieName string) *AuthHandler {
	return &AuthHandler{Service: s, CookieName: cookieName}
}

// Login authenticates and sets the session cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	json.NewDecoder(r.Body).Decode(&req) // a malformed body falls through to validation

	user, token, err := h.Service.Login(r.Context(), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.Service.Sessions.TTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	utils.JSON(w, http.StatusOK, user)
}

// Me returns the session's employee, or null for anonymous callers.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	user, err := h.Service.Me(r.Context(), sess)
	if err != nil {
		utils.Error(w, err)
		return
	}
	if user == nil {
		utils.JSON(w, http.StatusOK, nil)
		return
	}
	utils.JSON(w, http.StatusOK, user)
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	utils.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}
