package usecase

import (
	"context"
	"errors"

	"github.com/Shags001/Biblioteca-Comunitaria/internal/entity"
)

// PrestamoService owns the loan lifecycle. Every mutation adjusts the
// linked libro's counters through the inventory ledger and commits loan
// and libro rows in one unit of work.
type PrestamoService struct {
	repos Repos
	uow   UnitOfWork
}

func NewPrestamoService(repos Repos, uow UnitOfWork) *PrestamoService {
	return &PrestamoService{repos: repos, uow: uow}
}

type CreatePrestamoInput struct {
	IDUsuario        int64        `json:"id_usuario" validate:"required"`
	IDLibro          *int64       `json:"id_libro"`
	IDLibroCamel     *int64       `json:"idLibro"` // legacy alias some clients send
	Cantidad         OptionalInt  `json:"cantidad"`
	Solicitante      string       `json:"solicitante" validate:"required,max=100"`
	ElementoPrestado string       `json:"elemento_prestado" validate:"required,max=150"`
	Tipo             string       `json:"tipo" validate:"required,max=20"`
	FechaPrestamo    entity.Fecha `json:"fecha_prestamo"`
	FechaDevolucion  entity.Fecha `json:"fecha_devolucion"`
	Estado           string       `json:"estado"`
}

func (in CreatePrestamoInput) libroRef() *int64 {
	if in.IDLibro != nil {
		return in.IDLibro
	}
	return in.IDLibroCamel
}

type UpdatePrestamoInput struct {
	IDUsuario        OptionalInt64  `json:"id_usuario"`
	IDLibro          OptionalInt64  `json:"id_libro"`
	IDLibroCamel     OptionalInt64  `json:"idLibro"`
	Cantidad         OptionalInt    `json:"cantidad"`
	Solicitante      OptionalString `json:"solicitante"`
	ElementoPrestado OptionalString `json:"elemento_prestado"`
	Tipo             OptionalString `json:"tipo"`
	FechaPrestamo    OptionalFecha  `json:"fecha_prestamo"`
	FechaDevolucion  OptionalFecha  `json:"fecha_devolucion"`
	Estado           OptionalString `json:"estado"`
}

func (in UpdatePrestamoInput) libroRef() OptionalInt64 {
	if in.IDLibro.Set {
		return in.IDLibro
	}
	return in.IDLibroCamel
}

// apply copies the plain field updates onto the loan. Libro link and
// cantidad are handled by the reconciliation branches, estado by design:
// the original API lets callers set it directly.
func (in UpdatePrestamoInput) apply(p *entity.Prestamo) {
	if in.IDUsuario.Set && in.IDUsuario.Valid {
		p.IDUsuario = in.IDUsuario.Value
	}
	if in.Solicitante.Set && in.Solicitante.Valid {
		p.Solicitante = in.Solicitante.Value
	}
	if in.ElementoPrestado.Set && in.ElementoPrestado.Valid {
		p.ElementoPrestado = in.ElementoPrestado.Value
	}
	if in.Tipo.Set && in.Tipo.Valid {
		p.Tipo = in.Tipo.Value
	}
	if in.FechaPrestamo.Set && in.FechaPrestamo.Valid {
		p.FechaPrestamo = in.FechaPrestamo.Value
	}
	if in.FechaDevolucion.Set && in.FechaDevolucion.Valid {
		p.FechaDevolucion = in.FechaDevolucion.Value
	}
	if in.Estado.Set && in.Estado.Valid {
		p.Estado = in.Estado.Value
	}
}

// Create registers a loan. When a libro is linked, the requested cantidad
// is deducted from its available copies in the same transaction.
func (s *PrestamoService) Create(ctx context.Context, actor Actor, in CreatePrestamoInput) (entity.Prestamo, error) {
	if !actor.Allowed(RolAdministrador, RolRecepcionista) {
		return entity.Prestamo{}, ErrForbidden
	}

	cantidad := 1
	if in.Cantidad.Set && in.Cantidad.Valid && in.Cantidad.Value >= 1 {
		cantidad = in.Cantidad.Value
	}
	estado := in.Estado
	if estado == "" {
		estado = entity.PrestamoActivo
	}

	p := entity.Prestamo{
		IDUsuario:        in.IDUsuario,
		IDLibro:          in.libroRef(),
		Cantidad:         cantidad,
		Solicitante:      in.Solicitante,
		ElementoPrestado: in.ElementoPrestado,
		Tipo:             in.Tipo,
		FechaPrestamo:    in.FechaPrestamo,
		FechaDevolucion:  in.FechaDevolucion,
		Estado:           estado,
	}

	err := s.uow.Do(ctx, func(r Repos) error {
		if p.IDLibro != nil {
			libro, err := r.Libros.GetByID(ctx, *p.IDLibro)
			if err != nil {
				return err
			}
			if err := deductCopies(&libro, cantidad); err != nil {
				return err
			}
			if err := r.Libros.Update(ctx, &libro); err != nil {
				return err
			}
		}
		return r.Prestamos.Insert(ctx, &p)
	})
	if err != nil {
		return entity.Prestamo{}, err
	}
	return p, nil
}

// Update edits a loan that has not been returned yet. Counter moves:
// same libro link, changed cantidad -> apply the delta; changed libro
// link -> restore the previous cantidad to the old libro, deduct the new
// cantidad from the new one. Loan and affected libros commit together.
func (s *PrestamoService) Update(ctx context.Context, actor Actor, id int64, in UpdatePrestamoInput) (entity.Prestamo, error) {
	var updated entity.Prestamo
	err := s.uow.Do(ctx, func(r Repos) error {
		p, err := r.Prestamos.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p.Devuelto() {
			return ErrPrestamoDevuelto
		}

		prevLibro := p.IDLibro
		prevCantidad := p.Cantidad
		if prevCantidad < 1 {
			prevCantidad = 1
		}

		newLibro := prevLibro
		if ref := in.libroRef(); ref.Set {
			if ref.Valid {
				v := ref.Value
				newLibro = &v
			} else {
				newLibro = nil
			}
		}
		newCantidad := prevCantidad
		if in.Cantidad.Set && in.Cantidad.Valid {
			newCantidad = in.Cantidad.Value
			if newCantidad < 1 {
				newCantidad = 1
			}
		}

		if sameLibroRef(prevLibro, newLibro) {
			if newLibro != nil && newCantidad != prevCantidad {
				libro, err := r.Libros.GetByID(ctx, *newLibro)
				if err != nil {
					return err
				}
				if err := applyCopyDelta(&libro, newCantidad-prevCantidad); err != nil {
					return err
				}
				if err := r.Libros.Update(ctx, &libro); err != nil {
					return err
				}
			}
		} else {
			if prevLibro != nil {
				libro, err := r.Libros.GetByID(ctx, *prevLibro)
				switch {
				case err == nil:
					restoreCopies(&libro, prevCantidad)
					if err := r.Libros.Update(ctx, &libro); err != nil {
						return err
					}
				case !errors.Is(err, ErrNotFound):
					return err
				}
			}
			if newLibro != nil {
				libro, err := r.Libros.GetByID(ctx, *newLibro)
				if err != nil {
					return err
				}
				if err := deductCopies(&libro, newCantidad); err != nil {
					return err
				}
				if err := r.Libros.Update(ctx, &libro); err != nil {
					return err
				}
			}
		}

		p.IDLibro = newLibro
		p.Cantidad = newCantidad
		in.apply(&p)
		if err := r.Prestamos.Update(ctx, &p); err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return entity.Prestamo{}, err
	}
	return updated, nil
}

// Delete removes a loan. An Activo loan gives its cantidad back to the
// linked libro inside the delete transaction; a Devuelto loan never
// touches the counters.
func (s *PrestamoService) Delete(ctx context.Context, actor Actor, id int64) error {
	return s.uow.Do(ctx, func(r Repos) error {
		p, err := r.Prestamos.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p.IDLibro != nil && p.Activo() {
			libro, err := r.Libros.GetByID(ctx, *p.IDLibro)
			switch {
			case err == nil:
				cantidad := p.Cantidad
				if cantidad < 1 {
					cantidad = 1
				}
				restoreCopies(&libro, cantidad)
				if err := r.Libros.Update(ctx, &libro); err != nil {
					return err
				}
			case !errors.Is(err, ErrNotFound):
				return err
			}
		}
		return r.Prestamos.Delete(ctx, id)
	})
}

func (s *PrestamoService) Get(ctx context.Context, id int64) (entity.Prestamo, error) {
	return s.repos.Prestamos.GetByID(ctx, id)
}

func (s *PrestamoService) List(ctx context.Context) ([]entity.Prestamo, error) {
	return s.repos.Prestamos.List(ctx)
}

func (s *PrestamoService) Search(ctx context.Context, idPrestamo *int64, solicitante string) ([]entity.Prestamo, error) {
	return s.repos.Prestamos.Search(ctx, idPrestamo, solicitante)
}

func sameLibroRef(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
