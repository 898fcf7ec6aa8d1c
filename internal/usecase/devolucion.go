package usecase

import (
	"context"
	"errors"

	"github.com/Shags001/Biblioteca-Comunitaria/internal/entity"
)

// DevolucionService resolves loans. Creating a devolucion flips the loan
// to Devuelto and restores its cantidad to the linked libro; all three
// rows commit together. Creation is idempotent per prestamo.
type DevolucionService struct {
	repos Repos
	uow   UnitOfWork
}

func NewDevolucionService(repos Repos, uow UnitOfWork) *DevolucionService {
	return &DevolucionService{repos: repos, uow: uow}
}

type CreateDevolucionInput struct {
	IDLibro         *int64       `json:"id_libro"`
	IDPrestamo      *int64       `json:"id_prestamo"`
	FechaPrestamo   entity.Fecha `json:"fecha_prestamo"`
	FechaDevolucion entity.Fecha `json:"fecha_devolucion"`
	EstadoPrestamo  string       `json:"estado_prestamo"`
	Estado          string       `json:"estado"` // legacy alias for estado_prestamo
}

type UpdateDevolucionInput struct {
	IDLibro         OptionalInt64 `json:"id_libro"`
	IDPrestamo      OptionalInt64 `json:"id_prestamo"`
	FechaPrestamo   OptionalFecha `json:"fecha_prestamo"`
	FechaDevolucion OptionalFecha `json:"fecha_devolucion"`
	EstadoPrestamo  OptionalString `json:"estado_prestamo"`
}

// Create records a return. If a devolucion already exists for the given
// prestamo it is returned as-is (reused=true) and nothing is restored
// twice. A loan that is already Devuelto without a devolucion row cannot
// be re-returned.
func (s *DevolucionService) Create(ctx context.Context, in CreateDevolucionInput) (entity.Devolucion, bool, error) {
	var existing entity.Devolucion
	find := func(ctx context.Context) (bool, error) {
		if in.IDPrestamo == nil {
			return false, nil
		}
		d, err := s.repos.Devoluciones.GetByPrestamo(ctx, *in.IDPrestamo)
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		existing = d
		return true, nil
	}

	if found, err := find(ctx); err != nil {
		return entity.Devolucion{}, false, err
	} else if found {
		return existing, true, nil
	}

	var prestamo *entity.Prestamo
	if in.IDPrestamo != nil {
		p, err := s.repos.Prestamos.GetByID(ctx, *in.IDPrestamo)
		switch {
		case err == nil:
			prestamo = &p
		case !errors.Is(err, ErrNotFound):
			return entity.Devolucion{}, false, err
		}
	}
	if prestamo != nil && prestamo.Devuelto() {
		return entity.Devolucion{}, false, ErrPrestamoDevuelto
	}

	estado := in.EstadoPrestamo
	if estado == "" {
		estado = in.Estado
	}
	if estado == "" {
		estado = entity.PrestamoDevuelto
	}

	d := entity.Devolucion{
		IDPrestamo:      in.IDPrestamo,
		FechaPrestamo:   in.FechaPrestamo,
		FechaDevolucion: in.FechaDevolucion,
		EstadoPrestamo:  estado,
	}
	if in.IDLibro != nil {
		d.IDLibro = *in.IDLibro
	}
	if prestamo != nil {
		if d.IDLibro == 0 && prestamo.IDLibro != nil {
			d.IDLibro = *prestamo.IDLibro
		}
		if d.FechaPrestamo.IsZero() {
			d.FechaPrestamo = prestamo.FechaPrestamo
		}
	}
	if d.FechaDevolucion.IsZero() {
		d.FechaDevolucion = entity.Hoy()
	}

	// resolveLoan re-reads the loan inside the transaction so the flip
	// and the restoration work on current row state.
	resolveLoan := func(r Repos) error {
		if prestamo == nil {
			return nil
		}
		p, err := r.Prestamos.GetByID(ctx, prestamo.ID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil
			}
			return err
		}
		cantidad := p.Cantidad
		if cantidad < 1 {
			cantidad = 1
		}
		if p.Devuelto() {
			return nil
		}
		p.Estado = entity.PrestamoDevuelto
		if err := r.Prestamos.Update(ctx, &p); err != nil {
			return err
		}
		if p.IDLibro == nil {
			return nil
		}
		libro, err := r.Libros.GetByID(ctx, *p.IDLibro)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil
			}
			return err
		}
		restoreCopies(&libro, cantidad)
		return r.Libros.Update(ctx, &libro)
	}

	policy := idempotentInsert{
		findExisting: find,
		insert: func(ctx context.Context) error {
			return s.uow.Do(ctx, func(r Repos) error {
				if err := r.Devoluciones.Insert(ctx, &d); err != nil {
					return err
				}
				return resolveLoan(r)
			})
		},
		rawInsert: func(ctx context.Context) error {
			return s.uow.Do(ctx, func(r Repos) error {
				if err := r.Devoluciones.InsertRaw(ctx, &d); err != nil {
					return err
				}
				if err := resolveLoan(r); err != nil {
					return err
				}
				if in.IDPrestamo != nil {
					reloaded, err := r.Devoluciones.GetByPrestamo(ctx, *in.IDPrestamo)
					if err != nil {
						return err
					}
					d = reloaded
				}
				return nil
			})
		},
	}

	reused, err := policy.run(ctx)
	if err != nil {
		return entity.Devolucion{}, false, err
	}
	if reused {
		return existing, true, nil
	}
	return d, false, nil
}

func (s *DevolucionService) Get(ctx context.Context, id int64) (entity.Devolucion, error) {
	return s.repos.Devoluciones.GetByID(ctx, id)
}

func (s *DevolucionService) List(ctx context.Context) ([]entity.Devolucion, error) {
	return s.repos.Devoluciones.List(ctx)
}

// Update edits the devolucion record itself; counters are never
// re-adjusted here.
func (s *DevolucionService) Update(ctx context.Context, id int64, in UpdateDevolucionInput) (entity.Devolucion, error) {
	d, err := s.repos.Devoluciones.GetByID(ctx, id)
	if err != nil {
		return entity.Devolucion{}, err
	}
	if in.IDLibro.Set && in.IDLibro.Valid {
		d.IDLibro = in.IDLibro.Value
	}
	if in.IDPrestamo.Set {
		if in.IDPrestamo.Valid {
			v := in.IDPrestamo.Value
			d.IDPrestamo = &v
		} else {
			d.IDPrestamo = nil
		}
	}
	if in.FechaPrestamo.Set && in.FechaPrestamo.Valid {
		d.FechaPrestamo = in.FechaPrestamo.Value
	}
	if in.FechaDevolucion.Set && in.FechaDevolucion.Valid {
		d.FechaDevolucion = in.FechaDevolucion.Value
	}
	if in.EstadoPrestamo.Set && in.EstadoPrestamo.Valid {
		d.EstadoPrestamo = in.EstadoPrestamo.Value
	}
	if err := s.repos.Devoluciones.Update(ctx, &d); err != nil {
		return entity.Devolucion{}, err
	}
	return d, nil
}

func (s *DevolucionService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repos.Devoluciones.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repos.Devoluciones.Delete(ctx, id)
}
