package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Shags001/Biblioteca-Comunitaria/internal/entity"
	"github.com/Shags001/Biblioteca-Comunitaria/internal/usecase"
)

// LibroService is the slice of the catalog service this handler needs.
type LibroService interface {
	Create(ctx context.Context, actor usecase.Actor, in usecase.CreateLibroInput) (entity.Libro, bool, error)
	Update(ctx context.Context, actor usecase.Actor, id int64, in usecase.UpdateLibroInput) (entity.Libro, error)
	Delete(ctx context.Context, actor usecase.Actor, id int64) error
	Get(ctx context.Context, id int64) (entity.Libro, error)
	List(ctx context.Context) ([]entity.Libro, error)
}

type LibroHandler struct {
	svc LibroService
}

func NewLibroHandler(svc LibroService) *LibroHandler {
	return &LibroHandler{svc: svc}
}

func (h *LibroHandler) List(w http.ResponseWriter, r *http.Request) {
	libros, err := h.svc.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if libros == nil {
		libros = []entity.Libro{}
	}
	JSON(w, http.StatusOK, libros)
}

func (h *LibroHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		JSONError(w, http.StatusBadRequest, "invalid_id", "")
		return
	}
	l, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	JSON(w, http.StatusOK, l)
}

func (h *LibroHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in usecase.CreateLibroInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		JSONError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}
	if in.Autor == "" && len(in.Autores) == 0 {
		JSONError(w, http.StatusBadRequest, "validation_error", "autor or autores is required")
		return
	}
	if errs := ValidateStruct(in); len(errs) > 0 {
		JSONError(w, http.StatusBadRequest, "validation_error", validationDetail(errs))
		return
	}

	l, reused, err := h.svc.Create(r.Context(), actorFrom(r), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if reused {
		JSON(w, http.StatusOK, l)
		return
	}
	JSON(w, http.StatusCreated, l)
}

func (h *LibroHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		JSONError(w, http.StatusBadRequest, "invalid_id", "")
		return
	}
	var in usecase.UpdateLibroInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		JSONError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}
	l, err := h.svc.Update(r.Context(), actorFrom(r), id, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	JSON(w, http.StatusOK, l)
}

func (h *LibroHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
