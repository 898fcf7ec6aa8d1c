package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Shags001/Biblioteca-Comunitaria/internal/entity"
)

// LibroService owns the book catalog. All writes require the
// Administrador role; creation is idempotent by ISBN through the
// duplicate-safe policy.
type LibroService struct {
	repos Repos
	uow   UnitOfWork
}

func NewLibroService(repos Repos, uow UnitOfWork) *LibroService {
	return &LibroService{repos: repos, uow: uow}
}

type CreateLibroInput struct {
	Titulo             string      `json:"titulo" validate:"required,max=255"`
	Autor              string      `json:"autor" validate:"max=255"`
	Autores            []string    `json:"autores"`
	ISBN               string      `json:"ISBN" validate:"required,isbn,max=20"`
	Editorial          string      `json:"editorial" validate:"max=150"`
	AnioPublicacion    OptionalInt `json:"anioPublicacion"`
	Categoria          string      `json:"categoria" validate:"max=100"`
	NumeroLibros       OptionalInt `json:"numeroLibros"`
	Idioma             string      `json:"idioma" validate:"max=50"`
	Descripcion        string      `json:"descripcion"`
	Estado             string      `json:"estado" validate:"max=50"`
	CantidadDisponible OptionalInt `json:"cantidadDisponible"`
	CantidadPrestada   OptionalInt `json:"cantidadPrestada"`
}

// autor returns the delimited author column, preferring the explicit
// autor string over the autores list.
func (in CreateLibroInput) autor() string {
	if in.Autor != "" {
		return in.Autor
	}
	return strings.Join(in.Autores, ", ")
}

type UpdateLibroInput struct {
	Titulo             OptionalString `json:"titulo"`
	Autor              OptionalString `json:"autor"`
	Autores            []string       `json:"autores"`
	ISBN               OptionalString `json:"ISBN"`
	Editorial          OptionalString `json:"editorial"`
	AnioPublicacion    OptionalInt    `json:"anioPublicacion"`
	Categoria          OptionalString `json:"categoria"`
	NumeroLibros       OptionalInt    `json:"numeroLibros"`
	Idioma             OptionalString `json:"idioma"`
	Descripcion        OptionalString `json:"descripcion"`
	Estado             OptionalString `json:"estado"`
	CantidadDisponible OptionalInt    `json:"cantidadDisponible"`
	CantidadPrestada   OptionalInt    `json:"cantidadPrestada"`
}

// Create inserts a libro or, when the ISBN already exists, returns the
// existing row (reused=true) instead of failing.
func (s *LibroService) Create(ctx context.Context, actor Actor, in CreateLibroInput) (entity.Libro, bool, error) {
	if !actor.Allowed(RolAdministrador) {
		return entity.Libro{}, false, ErrForbidden
	}

	numeroLibros := 1
	if in.NumeroLibros.Set && in.NumeroLibros.Valid {
		numeroLibros = in.NumeroLibros.Value
	}
	disponible := numeroLibros
	if in.CantidadDisponible.Set && in.CantidadDisponible.Valid {
		disponible = in.CantidadDisponible.Value
	}
	prestada := 0
	if in.CantidadPrestada.Set && in.CantidadPrestada.Valid {
		prestada = in.CantidadPrestada.Value
	}
	idioma := in.Idioma
	if idioma == "" {
		idioma = "Español"
	}
	estado := in.Estado
	if estado == "" {
		estado = entity.EstadoDisponible
	}

	l := entity.Libro{
		Titulo:             in.Titulo,
		Autor:              in.autor(),
		ISBN:               in.ISBN,
		Editorial:          in.Editorial,
		Categoria:          in.Categoria,
		NumeroLibros:       numeroLibros,
		Idioma:             idioma,
		Descripcion:        in.Descripcion,
		Estado:             estado,
		CantidadDisponible: disponible,
		CantidadPrestada:   prestada,
	}
	if in.AnioPublicacion.Set && in.AnioPublicacion.Valid {
		l.AnioPublicacion = in.AnioPublicacion.Value
	}

	find := func(ctx context.Context) (bool, error) {
		existing, err := s.repos.Libros.GetByISBN(ctx, in.ISBN)
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		l = existing
		return true, nil
	}

	policy := idempotentInsert{
		findExisting: find,
		insert: func(ctx context.Context) error {
			return s.uow.Do(ctx, func(r Repos) error {
				return r.Libros.Insert(ctx, &l)
			})
		},
		rawInsert: func(ctx context.Context) error {
			return s.uow.Do(ctx, func(r Repos) error {
				if err := r.Libros.InsertRaw(ctx, &l); err != nil {
					return err
				}
				reloaded, err := r.Libros.GetByISBN(ctx, in.ISBN)
				if err != nil {
					return err
				}
				l = reloaded
				return nil
			})
		},
	}

	reused, err := policy.run(ctx)
	if err != nil {
		return entity.Libro{}, false, err
	}
	return l, reused, nil
}

// Update applies a partial edit. When numeroLibros changes without an
// explicit cantidadDisponible, availability is recomputed as
// max(0, total - prestada) so the stored counters stay consistent.
func (s *LibroService) Update(ctx context.Context, actor Actor, id int64, in UpdateLibroInput) (entity.Libro, error) {
	if !actor.Allowed(RolAdministrador) {
		return entity.Libro{}, ErrForbidden
	}

	var updated entity.Libro
	err := s.uow.Do(ctx, func(r Repos) error {
		l, err := r.Libros.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if in.NumeroLibros.Set && in.NumeroLibros.Valid && !in.CantidadDisponible.Set {
			prestada := l.CantidadPrestada
			if in.CantidadPrestada.Set && in.CantidadPrestada.Valid {
				prestada = in.CantidadPrestada.Value
			}
			disponible := in.NumeroLibros.Value - prestada
			if disponible < 0 {
				disponible = 0
			}
			l.CantidadDisponible = disponible
		}

		if in.Titulo.Set && in.Titulo.Valid {
			l.Titulo = in.Titulo.Value
		}
		if len(in.Autores) > 0 {
			l.Autor = strings.Join(in.Autores, ", ")
		} else if in.Autor.Set && in.Autor.Valid {
			l.Autor = in.Autor.Value
		}
		if in.ISBN.Set && in.ISBN.Valid {
			l.ISBN = in.ISBN.Value
		}
		if in.Editorial.Set && in.Editorial.Valid {
			l.Editorial = in.Editorial.Value
		}
		if in.AnioPublicacion.Set && in.AnioPublicacion.Valid {
			l.AnioPublicacion = in.AnioPublicacion.Value
		}
		if in.Categoria.Set && in.Categoria.Valid {
			l.Categoria = in.Categoria.Value
		}
		if in.NumeroLibros.Set && in.NumeroLibros.Valid {
			l.NumeroLibros = in.NumeroLibros.Value
		}
		if in.Idioma.Set && in.Idioma.Valid {
			l.Idioma = in.Idioma.Value
		}
		if in.Descripcion.Set && in.Descripcion.Valid {
			l.Descripcion = in.Descripcion.Value
		}
		if in.Estado.Set && in.Estado.Valid {
			l.Estado = in.Estado.Value
		}
		if in.CantidadDisponible.Set && in.CantidadDisponible.Valid {
			l.CantidadDisponible = in.CantidadDisponible.Value
		}
		if in.CantidadPrestada.Set && in.CantidadPrestada.Valid {
			l.CantidadPrestada = in.CantidadPrestada.Value
		}

		if err := r.Libros.Update(ctx, &l); err != nil {
			return err
		}
		updated = l
		return nil
	})
	if err != nil {
		return entity.Libro{}, err
	}
	return updated, nil
}

// Delete removes a libro. Deletion is blocked while Activo loans still
// reference it.
func (s *LibroService) Delete(ctx context.Context, actor Actor, id int64) error {
	if !actor.Allowed(RolAdministrador) {
		return ErrForbidden
	}
	return s.uow.Do(ctx, func(r Repos) error {
		if _, err := r.Libros.GetByID(ctx, id); err != nil {
			return err
		}
		activos, err := r.Prestamos.CountActivosPorLibro(ctx, id)
		if err != nil {
			return err
		}
		if activos > 0 {
			return fmt.Errorf("%w: %d prestamos activos reference libro %d", ErrIntegrityConflict, activos, id)
		}
		return r.Libros.Delete(ctx, id)
	})
}

func (s *LibroService) Get(ctx context.Context, id int64) (entity.Libro, error) {
	return s.repos.Libros.GetByID(ctx, id)
}

func (s *LibroService) List(ctx context.Context) ([]entity.Libro, error) {
	return s.repos.Libros.List(ctx)
}
