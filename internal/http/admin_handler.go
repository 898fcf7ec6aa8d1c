package http

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"
)

type Wiper interface {
	Wipe(ctx context.Context) error
}

// AdminHandler exposes maintenance operations gated by a static bearer
// token, not by usuario roles.
type AdminHandler struct {
	wiper     Wiper
	wipeToken string
}

func NewAdminHandler(wiper Wiper, wipeToken string) *AdminHandler {
	return &AdminHandler{wiper: wiper, wipeToken: wipeToken}
}

func (h *AdminHandler) Wipe(w http.ResponseWriter, r *http.Request) {
	if h.wipeToken == "" {
		JSONError(w, http.StatusForbidden, "forbidden", "wipe disabled")
		return
	}
	authHeader := r.Header.Get("Authorization")
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if subtle.ConstantTimeCompare([]byte(token), []byte(h.wipeToken)) != 1 {
		JSONError(w, http.StatusForbidden, "forbidden", "")
		return
	}
	if err := h.wiper.Wipe(r.Context()); err != nil {
		writeServiceError(w, r, err)
		return
	}
	JSON(w, http.StatusOK, map[string]bool{"wiped": true})
}
