package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Shags001/Biblioteca-Comunitaria/internal/entity"
	"github.com/Shags001/Biblioteca-Comunitaria/internal/usecase"
)

type RolService interface {
	Create(ctx context.Context, in usecase.CreateRolInput) (entity.Rol, bool, error)
	Update(ctx context.Context, id int64, in usecase.UpdateRolInput) (entity.Rol, error)
	List(ctx context.Context) ([]entity.Rol, error)
}

type RolHandler struct {
	svc RolService
}

func NewRolHandler(svc RolService) *RolHandler {
	return &RolHandler{svc: svc}
}

func (h *RolHandler) List(w http.ResponseWriter, r *http.Request) {
	roles, err := h.svc.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if roles == nil {
		roles = []entity.Rol{}
	}
	JSON(w, http.StatusOK, roles)
}

func (h *RolHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in usecase.CreateRolInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		JSONError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}
	if errs := ValidateStruct(in); len(errs) > 0 {
		JSONError(w, http.StatusBadRequest, "validation_error", validationDetail(errs))
		return
	}

	rol, reused, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if reused {
		JSON(w, http.StatusOK, rol)
		return
	}
	JSON(w, http.StatusCreated, rol)
}

func (h *RolHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		JSONError(w, http.StatusBadRequest, "invalid_id", "")
		return
	}
	var in usecase.UpdateRolInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		JSONError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}
	rol, err := h.svc.Update(r.Context(), id, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	JSON(w, http.StatusOK, rol)
}
