package store

// Repository implementation (Postgres)

import (
	"context"

	"github.com/Shags001/Biblioteca-Comunitaria/internal/entity"
	"github.com/Shags001/Biblioteca-Comunitaria/internal/usecase"
)

type LibroPG struct {
	db Querier
}

func NewLibroPG(db Querier) *LibroPG {
	return &LibroPG{db: db}
}

const libroColumns = `id, titulo, autor, isbn, editorial, anio_publicacion, categoria,
	numero_libros, idioma, descripcion, estado, cantidad_disponible, cantidad_prestada,
	fecha_registro, ultima_actualizacion`

func scanLibro(row interface{ Scan(...any) error }) (entity.Libro, error) {
	var l entity.Libro
	err := row.Scan(&l.ID, &l.Titulo, &l.Autor, &l.ISBN, &l.Editorial, &l.AnioPublicacion,
		&l.Categoria, &l.NumeroLibros, &l.Idioma, &l.Descripcion, &l.Estado,
		&l.CantidadDisponible, &l.CantidadPrestada, &l.FechaRegistro, &l.UltimaActualizacion)
	return l, err
}

func (r *LibroPG) List(ctx context.Context) ([]entity.Libro, error) {
	const query = `
	SELECT ` + libroColumns + `
	FROM libros
	ORDER BY titulo
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var libros []entity.Libro
	for rows.Next() {
		l, err := scanLibro(rows)
		if err != nil {
			return nil, err
		}
		libros = append(libros, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return libros, nil
}

func (r *LibroPG) GetByID(ctx context.Context, id int64) (entity.Libro, error) {
	const query = `
	SELECT ` + libroColumns + `
	FROM libros
	WHERE id = $1
	LIMIT 1
	`
	l, err := scanLibro(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return entity.Libro{}, translateErr(err)
	}
	return l, nil
}

func (r *LibroPG) GetByISBN(ctx context.Context, isbn string) (entity.Libro, error) {
	const query = `
	SELECT ` + libroColumns + `
	FROM libros
	WHERE isbn = $1
	LIMIT 1
	`
	l, err := scanLibro(r.db.QueryRow(ctx, query, isbn))
	if err != nil {
		return entity.Libro{}, translateErr(err)
	}
	return l, nil
}

func (r *LibroPG) Insert(ctx context.Context, l *entity.Libro) error {
	const query = `
	INSERT INTO libros (titulo, autor, isbn, editorial, anio_publicacion, categoria,
		numero_libros, idioma, descripcion, estado, cantidad_disponible, cantidad_prestada)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	RETURNING id, fecha_registro, ultima_actualizacion
	`
	err := r.db.QueryRow(ctx, query, l.Titulo, l.Autor, l.ISBN, l.Editorial,
		l.AnioPublicacion, l.Categoria, l.NumeroLibros, l.Idioma, l.Descripcion,
		l.Estado, l.CantidadDisponible, l.CantidadPrestada).
		Scan(&l.ID, &l.FechaRegistro, &l.UltimaActualizacion)
	return translateErr(err)
}

// InsertRaw is the last-resort write used by the duplicate-safe creation
// policy. It skips RETURNING so the caller re-selects the row afterwards.
func (r *LibroPG) InsertRaw(ctx context.Context, l *entity.Libro) error {
	const query = `
	INSERT INTO libros (titulo, autor, isbn, editorial, anio_publicacion, categoria,
		numero_libros, idioma, descripcion, estado, cantidad_disponible, cantidad_prestada)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.Exec(ctx, query, l.Titulo, l.Autor, l.ISBN, l.Editorial,
		l.AnioPublicacion, l.Categoria, l.NumeroLibros, l.Idioma, l.Descripcion,
		l.Estado, l.CantidadDisponible, l.CantidadPrestada)
	return translateErr(err)
}

func (r *LibroPG) Update(ctx context.Context, l *entity.Libro) error {
	const query = `
	UPDATE libros
	SET titulo = $2, autor = $3, isbn = $4, editorial = $5, anio_publicacion = $6,
		categoria = $7, numero_libros = $8, idioma = $9, descripcion = $10, estado = $11,
		cantidad_disponible = $12, cantidad_prestada = $13, ultima_actualizacion = now()
	WHERE id = $1
	RETURNING ultima_actualizacion
	`
	err := r.db.QueryRow(ctx, query, l.ID, l.Titulo, l.Autor, l.ISBN, l.Editorial,
		l.AnioPublicacion, l.Categoria, l.NumeroLibros, l.Idioma, l.Descripcion,
		l.Estado, l.CantidadDisponible, l.CantidadPrestada).
		Scan(&l.UltimaActualizacion)
	return translateErr(err)
}

func (r *LibroPG) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM libros WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return usecase.ErrNotFound
	}
	return nil
}
