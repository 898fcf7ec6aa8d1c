package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Shags001/Biblioteca-Comunitaria/internal/entity"
	"github.com/Shags001/Biblioteca-Comunitaria/internal/usecase"
)

type LoggeoService interface {
	Create(ctx context.Context, in usecase.CreateLoggeoInput) (entity.Loggeo, error)
	List(ctx context.Context, idUsuario *int64) ([]entity.Loggeo, error)
}

type LoggeoHandler struct {
	svc LoggeoService
}

func NewLoggeoHandler(svc LoggeoService) *LoggeoHandler {
	return &LoggeoHandler{svc: svc}
}

func (h *LoggeoHandler) List(w http.ResponseWriter, r *http.Request) {
	var idUsuario *int64
	if raw := r.URL.Query().Get("id_usuario"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			JSONError(w, http.StatusBadRequest, "invalid_id", "id_usuario must be an integer")
			return
		}
		idUsuario = &id
	}

	entries, err := h.svc.List(r.Context(), idUsuario)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if entries == nil {
		entries = []entity.Loggeo{}
	}
	JSON(w, http.StatusOK, entries)
}

func (h *LoggeoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in usecase.CreateLoggeoInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		JSONError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}
	if errs := ValidateStruct(in); len(errs) > 0 {
		JSONError(w, http.StatusBadRequest, "validation_error", validationDetail(errs))
		return
	}

	l, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	JSON(w, http.StatusCreated, l)
}
