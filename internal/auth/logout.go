package auth

import (
	"net/http"

	"github.com/saulo-duarte/odontomind-api/internal/config"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Logout drops the session cookie set by the front-end. Tokens themselves are
// revoked by the auth backend.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "jwt",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})

	config.JSON(w, http.StatusOK, map[string]string{
		"message": "logout successful",
	})
}
