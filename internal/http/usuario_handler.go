package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Shags001/Biblioteca-Comunitaria/internal/entity"
	"github.com/Shags001/Biblioteca-Comunitaria/internal/usecase"
)

type UsuarioService interface {
	Create(ctx context.Context, in usecase.CreateUsuarioInput) (entity.Usuario, error)
	Update(ctx context.Context, actor usecase.Actor, id int64, in usecase.UpdateUsuarioInput) (entity.Usuario, error)
	Delete(ctx context.Context, actor usecase.Actor, id int64) error
	Get(ctx context.Context, id int64) (entity.Usuario, error)
	List(ctx context.Context) ([]entity.Usuario, error)
}

type UsuarioHandler struct {
	svc UsuarioService
}

func NewUsuarioHandler(svc UsuarioService) *UsuarioHandler {
	return &UsuarioHandler{svc: svc}
}

func (h *UsuarioHandler) List(w http.ResponseWriter, r *http.Request) {
	usuarios, err := h.svc.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if usuarios == nil {
		usuarios = []entity.Usuario{}
	}
	JSON(w, http.StatusOK, usuarios)
}

func (h *UsuarioHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		JSONError(w, http.StatusBadRequest, "invalid_id", "")
		return
	}
	u, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	JSON(w, http.StatusOK, u)
}

// Create is open so the first Administrador account can bootstrap itself.
func (h *UsuarioHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in usecase.CreateUsuarioInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		JSONError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}
	if errs := ValidateStruct(in); len(errs) > 0 {
		JSONError(w, http.StatusBadRequest, "validation_error", validationDetail(errs))
		return
	}

	u, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	JSON(w, http.StatusCreated, u)
}

func (h *UsuarioHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		JSONError(w, http.StatusBadRequest, "invalid_id", "")
		return
	}
	var in usecase.UpdateUsuarioInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		JSONError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}
	u, err := h.svc.Update(r.Context(), actorFrom(r), id, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	JSON(w, http.StatusOK, u)
}

func (h *UsuarioHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		JSONError(w, http.StatusBadRequest, "invalid_id", "")
		return
	}
	if err := h.svc.Delete(r.Context(), actorFrom(r), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	JSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
