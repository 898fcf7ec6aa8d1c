package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Shags001/Biblioteca-Comunitaria/internal/entity"
	"github.com/Shags001/Biblioteca-Comunitaria/internal/usecase"
)

type DevolucionService interface {
	Create(ctx context.Context, in usecase.CreateDevolucionInput) (entity.Devolucion, bool, error)
	Update(ctx context.Context, id int64, in usecase.UpdateDevolucionInput) (entity.Devolucion, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (entity.Devolucion, error)
	List(ctx context.Context) ([]entity.Devolucion, error)
}

type DevolucionHandler struct {
	svc DevolucionService
}

func NewDevolucionHandler(svc DevolucionService) *DevolucionHandler {
	return &DevolucionHandler{svc: svc}
}

func (h *DevolucionHandler) List(w http.ResponseWriter, r *http.Request) {
	devoluciones, err := h.svc.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if devoluciones == nil {
		devoluciones = []entity.Devolucion{}
	}
	JSON(w, http.StatusOK, devoluciones)
}

func (h *DevolucionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		JSONError(w, http.StatusBadRequest, "invalid_id", "")
		return
	}
	d, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	JSON(w, http.StatusOK, d)
}

// Create registers a return. Re-returning an already resolved loan
// answers 200 with the existing record instead of failing.
func (h *DevolucionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in usecase.CreateDevolucionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		JSONError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}
	if errs := ValidateStruct(in); len(errs) > 0 {
		JSONError(w, http.StatusBadRequest, "validation_error", validationDetail(errs))
		return
	}

	d, reused, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if reused {
		JSON(w, http.StatusOK, d)
		return
	}
	JSON(w, http.StatusCreated, d)
}

func (h *DevolucionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		JSONError(w, http.StatusBadRequest, "invalid_id", "")
		return
	}
	var in usecase.UpdateDevolucionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		JSONError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}
	d, err := h.svc.Update(r.Context(), id, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	JSON(w, http.StatusOK, d)
}

func (h *DevolucionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		JSONError(w, http.StatusBadRequest, "invalid_id", "")
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	JSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
