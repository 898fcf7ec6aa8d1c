package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shags001/Biblioteca-Comunitaria/internal/entity"
	"github.com/Shags001/Biblioteca-Comunitaria/internal/testutil"
	"github.com/Shags001/Biblioteca-Comunitaria/internal/usecase"
)

type stubPrestamoService struct {
	createFn func(ctx context.Context, actor usecase.Actor, in usecase.CreatePrestamoInput) (entity.Prestamo, error)
	updateFn func(ctx context.Context, actor usecase.Actor, id int64, in usecase.UpdatePrestamoInput) (entity.Prestamo, error)
	deleteFn func(ctx context.Context, actor usecase.Actor, id int64) error
	getFn    func(ctx context.Context, id int64) (entity.Prestamo, error)
	listFn   func(ctx context.Context) ([]entity.Prestamo, error)
	searchFn func(ctx context.Context, idPrestamo *int64, solicitante string) ([]entity.Prestamo, error)
}

func (s *stubPrestamoService) Create(ctx context.Context, actor usecase.Actor, in usecase.CreatePrestamoInput) (entity.Prestamo, error) {
	return s.createFn(ctx, actor, in)
}

func (s *stubPrestamoService) Update(ctx context.Context, actor usecase.Actor, id int64, in usecase.UpdatePrestamoInput) (entity.Prestamo, error) {
	return s.updateFn(ctx, actor, id, in)
}

func (s *stubPrestamoService) Delete(ctx context.Context, actor usecase.Actor, id int64) error {
	return s.deleteFn(ctx, actor, id)
}

func (s *stubPrestamoService) Get(ctx context.Context, id int64) (entity.Prestamo, error) {
	return s.getFn(ctx, id)
}

func (s *stubPrestamoService) List(ctx context.Context) ([]entity.Prestamo, error) {
	return s.listFn(ctx)
}

func (s *stubPrestamoService) Search(ctx context.Context, idPrestamo *int64, solicitante string) ([]entity.Prestamo, error) {
	return s.searchFn(ctx, idPrestamo, solicitante)
}

func TestPrestamoHandlerCreate(t *testing.T) {
	validBody := map[string]any{
		"id_usuario":        1,
		"solicitante":       "Ana Torres",
		"elemento_prestado": "Rayuela",
		"tipo":              "libro",
	}

	t.Run("created with the resolved actor", func(t *testing.T) {
		svc := &stubPrestamoService{
			createFn: func(ctx context.Context, actor usecase.Actor, in usecase.CreatePrestamoInput) (entity.Prestamo, error) {
				assert.True(t, actor.Authenticated)
				assert.EqualValues(t, 2, actor.UserID)
				assert.Equal(t, "Recepcionista", actor.Role)
				return entity.Prestamo{ID: 1, Solicitante: in.Solicitante}, nil
			},
		}
		h := NewPrestamoHandler(svc)

		r := testutil.WithIdentity(testutil.NewRequest(http.MethodPost, "/api/prestamos", validBody), 2, "Recepcionista")
		w := httptest.NewRecorder()
		h.Create(w, r)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("forbidden role", func(t *testing.T) {
		svc := &stubPrestamoService{
			createFn: func(ctx context.Context, actor usecase.Actor, in usecase.CreatePrestamoInput) (entity.Prestamo, error) {
				return entity.Prestamo{}, usecase.ErrForbidden
			},
		}
		h := NewPrestamoHandler(svc)

		r := testutil.WithIdentity(testutil.NewRequest(http.MethodPost, "/api/prestamos", validBody), 3, "Lector")
		w := httptest.NewRecorder()
		h.Create(w, r)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("no copies available", func(t *testing.T) {
		svc := &stubPrestamoService{
			createFn: func(ctx context.Context, actor usecase.Actor, in usecase.CreatePrestamoInput) (entity.Prestamo, error) {
				return entity.Prestamo{}, usecase.ErrNoCopiesAvailable
			},
		}
		h := NewPrestamoHandler(svc)

		r := testutil.WithIdentity(testutil.NewRequest(http.MethodPost, "/api/prestamos", validBody), 1, "Administrador")
		w := httptest.NewRecorder()
		h.Create(w, r)

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusBadRequest, resp.Code)
		assert.Equal(t, "no_copies_available", resp.Body["error"])
	})

	t.Run("missing required fields", func(t *testing.T) {
		h := NewPrestamoHandler(&stubPrestamoService{})

		r := testutil.NewRequest(http.MethodPost, "/api/prestamos", map[string]any{"id_usuario": 1})
		w := httptest.NewRecorder()
		h.Create(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPrestamoHandlerSearch(t *testing.T) {
	t.Run("passes both criteria", func(t *testing.T) {
		svc := &stubPrestamoService{
			searchFn: func(ctx context.Context, idPrestamo *int64, solicitante string) ([]entity.Prestamo, error) {
				require.NotNil(t, idPrestamo)
				assert.EqualValues(t, 7, *idPrestamo)
				assert.Equal(t, "ana", solicitante)
				return []entity.Prestamo{{ID: 7}}, nil
			},
		}
		h := NewPrestamoHandler(svc)

		r := testutil.NewRequest(http.MethodGet, "/api/prestamos/buscar?id_prestamo=7&solicitante=ana", nil)
		w := httptest.NewRecorder()
		h.Search(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("empty result is a JSON array", func(t *testing.T) {
		svc := &stubPrestamoService{
			searchFn: func(ctx context.Context, idPrestamo *int64, solicitante string) ([]entity.Prestamo, error) {
				return nil, nil
			},
		}
		h := NewPrestamoHandler(svc)

		r := testutil.NewRequest(http.MethodGet, "/api/prestamos/buscar", nil)
		w := httptest.NewRecorder()
		h.Search(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})

	t.Run("bad id", func(t *testing.T) {
		h := NewPrestamoHandler(&stubPrestamoService{})

		r := testutil.NewRequest(http.MethodGet, "/api/prestamos/buscar?id_prestamo=abc", nil)
		w := httptest.NewRecorder()
		h.Search(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPrestamoHandlerUpdate(t *testing.T) {
	t.Run("devuelto loan answers 403", func(t *testing.T) {
		svc := &stubPrestamoService{
			updateFn: func(ctx context.Context, actor usecase.Actor, id int64, in usecase.UpdatePrestamoInput) (entity.Prestamo, error) {
				return entity.Prestamo{}, usecase.ErrPrestamoDevuelto
			},
		}
		h := NewPrestamoHandler(svc)

		r := testutil.NewRequest(http.MethodPut, "/api/prestamos/3", map[string]any{"cantidad": 2})
		r.SetPathValue("id", "3")
		w := httptest.NewRecorder()
		h.Update(w, r)

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusForbidden, resp.Code)
		assert.Equal(t, "prestamo_devuelto", resp.Body["error"])
	})

	t.Run("three-state body reaches the service intact", func(t *testing.T) {
		svc := &stubPrestamoService{
			updateFn: func(ctx context.Context, actor usecase.Actor, id int64, in usecase.UpdatePrestamoInput) (entity.Prestamo, error) {
				assert.True(t, in.IDLibro.Set)
				assert.False(t, in.IDLibro.Valid)
				assert.False(t, in.Cantidad.Set)
				return entity.Prestamo{ID: id}, nil
			},
		}
		h := NewPrestamoHandler(svc)

		r := testutil.NewRequest(http.MethodPut, "/api/prestamos/3", map[string]any{"id_libro": nil})
		r.SetPathValue("id", "3")
		w := httptest.NewRecorder()
		h.Update(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
