package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Shags001/Biblioteca-Comunitaria/internal/entity"
	"github.com/Shags001/Biblioteca-Comunitaria/internal/usecase"
)

type PrestamoService interface {
	Create(ctx context.Context, actor usecase.Actor, in usecase.CreatePrestamoInput) (entity.Prestamo, error)
	Update(ctx context.Context, actor usecase.Actor, id int64, in usecase.UpdatePrestamoInput) (entity.Prestamo, error)
	Delete(ctx context.Context, actor usecase.Actor, id int64) error
	Get(ctx context.Context, id int64) (entity.Prestamo, error)
	List(ctx context.Context) ([]entity.Prestamo, error)
	Search(ctx context.Context, idPrestamo *int64, solicitante string) ([]entity.Prestamo, error)
}

type PrestamoHandler struct {
	svc PrestamoService
}

func NewPrestamoHandler(svc PrestamoService) *PrestamoHandler {
	return &PrestamoHandler{svc: svc}
}

func (h *PrestamoHandler) List(w http.ResponseWriter, r *http.Request) {
	prestamos, err := h.svc.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if prestamos == nil {
		prestamos = []entity.Prestamo{}
	}
	JSON(w, http.StatusOK, prestamos)
}

// Search handles GET /api/prestamos/buscar?id_prestamo=&solicitante=.
func (h *PrestamoHandler) Search(w http.ResponseWriter, r *http.Request) {
	var idPrestamo *int64
	if raw := r.URL.Query().Get("id_prestamo"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			JSONError(w, http.StatusBadRequest, "invalid_id", "id_prestamo must be an integer")
			return
		}
		idPrestamo = &id
	}
	solicitante := r.URL.Query().Get("solicitante")

	prestamos, err := h.svc.Search(r.Context(), idPrestamo, solicitante)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if prestamos == nil {
		prestamos = []entity.Prestamo{}
	}
	JSON(w, http.StatusOK, prestamos)
}

func (h *PrestamoHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		JSONError(w, http.StatusBadRequest, "invalid_id", "")
		return
	}
	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	JSON(w, http.StatusOK, p)
}

func (h *PrestamoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in usecase.CreatePrestamoInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		JSONError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}
	if errs := ValidateStruct(in); len(errs) > 0 {
		JSONError(w, http.StatusBadRequest, "validation_error", validationDetail(errs))
		return
	}

	p, err := h.svc.Create(r.Context(), actorFrom(r), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	JSON(w, http.StatusCreated, p)
}

func (h *PrestamoHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		JSONError(w, http.StatusBadRequest, "invalid_id", "")
		return
	}
	var in usecase.UpdatePrestamoInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		JSONError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}
	p, err := h.svc.Update(r.Context(), actorFrom(r), id, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	JSON(w, http.StatusOK, p)
}

func (h *PrestamoHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
