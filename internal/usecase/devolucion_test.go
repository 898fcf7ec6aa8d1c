package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shags001/Biblioteca-Comunitaria/internal/entity"
)

func TestDevolucionCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves the loan and restores copies", func(t *testing.T) {
		store := newFakeStore()
		libro := store.addLibro(entity.Libro{ISBN: "x", CantidadDisponible: 0, CantidadPrestada: 2, Estado: entity.EstadoPrestado})
		p := store.addPrestamo(entity.Prestamo{IDLibro: i64(libro.ID), Cantidad: 2,
			FechaPrestamo: entity.NewFecha(entity.Hoy().AddDate(0, 0, -7)), Estado: entity.PrestamoActivo})
		svc := NewDevolucionService(store.repos(), store.uow())

		d, reused, err := svc.Create(ctx, CreateDevolucionInput{IDPrestamo: i64(p.ID)})
		require.NoError(t, err)
		assert.False(t, reused)
		assert.Equal(t, libro.ID, d.IDLibro, "id_libro defaults from the loan")
		assert.Equal(t, p.FechaPrestamo, d.FechaPrestamo, "fecha_prestamo defaults from the loan")
		assert.Equal(t, entity.Hoy(), d.FechaDevolucion, "fecha_devolucion defaults to today")
		assert.Equal(t, entity.PrestamoDevuelto, d.EstadoPrestamo)

		gotLoan := store.prestamos[p.ID]
		assert.Equal(t, entity.PrestamoDevuelto, gotLoan.Estado)

		gotLibro := store.libros[libro.ID]
		assert.Equal(t, 2, gotLibro.CantidadDisponible)
		assert.Equal(t, 0, gotLibro.CantidadPrestada)
		assert.Equal(t, entity.EstadoDisponible, gotLibro.Estado)
	})

	t.Run("second return reuses the record and restores nothing", func(t *testing.T) {
		store := newFakeStore()
		libro := store.addLibro(entity.Libro{ISBN: "x", CantidadDisponible: 0, CantidadPrestada: 1, Estado: entity.EstadoPrestado})
		p := store.addPrestamo(entity.Prestamo{IDLibro: i64(libro.ID), Cantidad: 1, Estado: entity.PrestamoActivo})
		svc := NewDevolucionService(store.repos(), store.uow())

		first, reused, err := svc.Create(ctx, CreateDevolucionInput{IDPrestamo: i64(p.ID)})
		require.NoError(t, err)
		require.False(t, reused)

		second, reused, err := svc.Create(ctx, CreateDevolucionInput{IDPrestamo: i64(p.ID)})
		require.NoError(t, err)
		assert.True(t, reused)
		assert.Equal(t, first.ID, second.ID)

		gotLibro := store.libros[libro.ID]
		assert.Equal(t, 1, gotLibro.CantidadDisponible, "copies must not be restored twice")
		assert.Len(t, store.devoluciones, 1)
	})

	t.Run("devuelto loan without a record cannot be re-returned", func(t *testing.T) {
		store := newFakeStore()
		p := store.addPrestamo(entity.Prestamo{Estado: entity.PrestamoDevuelto})
		svc := NewDevolucionService(store.repos(), store.uow())

		_, _, err := svc.Create(ctx, CreateDevolucionInput{IDPrestamo: i64(p.ID)})
		assert.ErrorIs(t, err, ErrPrestamoDevuelto)
	})

	t.Run("legacy english estado counts as returned", func(t *testing.T) {
		store := newFakeStore()
		p := store.addPrestamo(entity.Prestamo{Estado: "Returned"})
		svc := NewDevolucionService(store.repos(), store.uow())

		_, _, err := svc.Create(ctx, CreateDevolucionInput{IDPrestamo: i64(p.ID)})
		assert.ErrorIs(t, err, ErrPrestamoDevuelto)
	})

	t.Run("standalone record without a loan link", func(t *testing.T) {
		store := newFakeStore()
		svc := NewDevolucionService(store.repos(), store.uow())

		d, reused, err := svc.Create(ctx, CreateDevolucionInput{
			IDLibro:        i64(9),
			FechaPrestamo:  entity.Hoy(),
			EstadoPrestamo: "Devuelto",
		})
		require.NoError(t, err)
		assert.False(t, reused)
		assert.Nil(t, d.IDPrestamo)
		assert.EqualValues(t, 9, d.IDLibro)
	})

	t.Run("missing loan id still records the return", func(t *testing.T) {
		store := newFakeStore()
		svc := NewDevolucionService(store.repos(), store.uow())

		d, _, err := svc.Create(ctx, CreateDevolucionInput{IDPrestamo: i64(404), IDLibro: i64(3)})
		require.NoError(t, err)
		require.NotNil(t, d.IDPrestamo)
		assert.EqualValues(t, 404, *d.IDPrestamo)
	})

	t.Run("legacy estado alias is honored", func(t *testing.T) {
		store := newFakeStore()
		p := store.addPrestamo(entity.Prestamo{Estado: entity.PrestamoActivo})
		svc := NewDevolucionService(store.repos(), store.uow())

		d, _, err := svc.Create(ctx, CreateDevolucionInput{IDPrestamo: i64(p.ID), Estado: "Entregado"})
		require.NoError(t, err)
		assert.Equal(t, "Entregado", d.EstadoPrestamo)
	})

	t.Run("insert failure falls back to the raw path", func(t *testing.T) {
		store := newFakeStore()
		libro := store.addLibro(entity.Libro{ISBN: "x", CantidadDisponible: 0, CantidadPrestada: 1, Estado: entity.EstadoPrestado})
		p := store.addPrestamo(entity.Prestamo{IDLibro: i64(libro.ID), Cantidad: 1, Estado: entity.PrestamoActivo})
		store.devolucionInsertErr = errors.New("driver choked on RETURNING")
		svc := NewDevolucionService(store.repos(), store.uow())

		d, reused, err := svc.Create(ctx, CreateDevolucionInput{IDPrestamo: i64(p.ID)})
		require.NoError(t, err)
		assert.False(t, reused)
		assert.NotZero(t, d.ID, "identity recovered through the natural key")

		assert.Equal(t, entity.PrestamoDevuelto, store.prestamos[p.ID].Estado)
		assert.Equal(t, 1, store.libros[libro.ID].CantidadDisponible)
	})
}

func TestDevolucionUpdateDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("update never re-adjusts counters", func(t *testing.T) {
		store := newFakeStore()
		libro := store.addLibro(entity.Libro{ISBN: "x", CantidadDisponible: 2, Estado: entity.EstadoDisponible})
		store.devoluciones[1] = entity.Devolucion{ID: 1, IDLibro: libro.ID, EstadoPrestamo: "Devuelto"}
		store.nextID = 5
		svc := NewDevolucionService(store.repos(), store.uow())

		d, err := svc.Update(ctx, 1, UpdateDevolucionInput{
			EstadoPrestamo: OptionalString{Set: true, Valid: true, Value: "Extraviado"},
		})
		require.NoError(t, err)
		assert.Equal(t, "Extraviado", d.EstadoPrestamo)
		assert.Equal(t, 2, store.libros[libro.ID].CantidadDisponible)
	})

	t.Run("update clearing the loan link", func(t *testing.T) {
		store := newFakeStore()
		store.devoluciones[1] = entity.Devolucion{ID: 1, IDPrestamo: i64(4)}
		store.nextID = 5
		svc := NewDevolucionService(store.repos(), store.uow())

		d, err := svc.Update(ctx, 1, UpdateDevolucionInput{
			IDPrestamo: OptionalInt64{Set: true, Valid: false},
		})
		require.NoError(t, err)
		assert.Nil(t, d.IDPrestamo)
	})

	t.Run("delete", func(t *testing.T) {
		store := newFakeStore()
		store.devoluciones[1] = entity.Devolucion{ID: 1}
		svc := NewDevolucionService(store.repos(), store.uow())

		require.NoError(t, svc.Delete(ctx, 1))
		assert.ErrorIs(t, svc.Delete(ctx, 1), ErrNotFound)
	})
}
