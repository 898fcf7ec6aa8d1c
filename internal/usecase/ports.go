package usecase

import (
	"context"

	"github.com/Shags001/Biblioteca-Comunitaria/internal/entity"
)

type LibroRepository interface {
	List(ctx context.Context) ([]entity.Libro, error)
	GetByID(ctx context.Context, id int64) (entity.Libro, error)
	GetByISBN(ctx context.Context, isbn string) (entity.Libro, error)
	Insert(ctx context.Context, l *entity.Libro) error
	// InsertRaw inserts without reading back the generated identity; the
	// caller recovers it through GetByISBN.
	InsertRaw(ctx context.Context, l *entity.Libro) error
	Update(ctx context.Context, l *entity.Libro) error
	Delete(ctx context.Context, id int64) error
}

type PrestamoRepository interface {
	List(ctx context.Context) ([]entity.Prestamo, error)
	GetByID(ctx context.Context, id int64) (entity.Prestamo, error)
	Search(ctx context.Context, idPrestamo *int64, solicitante string) ([]entity.Prestamo, error)
	CountActivosPorLibro(ctx context.Context, idLibro int64) (int, error)
	Insert(ctx context.Context, p *entity.Prestamo) error
	Update(ctx context.Context, p *entity.Prestamo) error
	Delete(ctx context.Context, id int64) error
}

type DevolucionRepository interface {
	List(ctx context.Context) ([]entity.Devolucion, error)
	GetByID(ctx context.Context, id int64) (entity.Devolucion, error)
	GetByPrestamo(ctx context.Context, idPrestamo int64) (entity.Devolucion, error)
	Insert(ctx context.Context, d *entity.Devolucion) error
	InsertRaw(ctx context.Context, d *entity.Devolucion) error
	Update(ctx context.Context, d *entity.Devolucion) error
	Delete(ctx context.Context, id int64) error
}

type UsuarioRepository interface {
	List(ctx context.Context) ([]entity.Usuario, error)
	GetByID(ctx context.Context, id int64) (entity.Usuario, error)
	GetByUsername(ctx context.Context, username string) (entity.Usuario, error)
	Insert(ctx context.Context, u *entity.Usuario) error
	Update(ctx context.Context, u *entity.Usuario) error
	Delete(ctx context.Context, id int64) error
}

type RolRepository interface {
	List(ctx context.Context) ([]entity.Rol, error)
	GetByID(ctx context.Context, id int64) (entity.Rol, error)
	GetByNombre(ctx context.Context, nombre string) (entity.Rol, error)
	Insert(ctx context.Context, r *entity.Rol) error
	Update(ctx context.Context, r *entity.Rol) error
}

type LoggeoRepository interface {
	List(ctx context.Context, idUsuario *int64) ([]entity.Loggeo, error)
	LatestByUsuario(ctx context.Context, idUsuario int64) (entity.Loggeo, error)
	Insert(ctx context.Context, l *entity.Loggeo) error
	Update(ctx context.Context, l *entity.Loggeo) error
}

// Repos bundles every repository over one querier, either the shared pool
// or a single transaction.
type Repos struct {
	Libros       LibroRepository
	Prestamos    PrestamoRepository
	Devoluciones DevolucionRepository
	Usuarios     UsuarioRepository
	Roles        RolRepository
	Loggeos      LoggeoRepository
}

// UnitOfWork runs fn against transaction-bound repositories. Either every
// change made through them commits, or none does.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(Repos) error) error
}
