package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Shags001/Biblioteca-Comunitaria/internal/usecase"
)

type AuthService interface {
	Login(ctx context.Context, username, password, ip string) (usecase.LoginResult, error)
	Logout(ctx context.Context, actor usecase.Actor) error
}

type AuthHandler struct {
	svc AuthService
}

func NewAuthHandler(svc AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type loginReq struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if errs := ValidateStruct(req); len(errs) > 0 {
		JSONError(w, http.StatusBadRequest, "validation_error", validationDetail(errs))
		return
	}

	ip := r.RemoteAddr
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		ip = strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}

	res, err := h.svc.Login(r.Context(), req.Username, req.Password, ip)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	JSON(w, http.StatusOK, res)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Logout(r.Context(), actorFrom(r)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	JSON(w, http.StatusOK, map[string]bool{"logged_out": true})
}
