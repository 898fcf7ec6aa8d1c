package store

import (
	"context"
	"time"

	"github.com/Shags001/Biblioteca-Comunitaria/internal/entity"
	"github.com/Shags001/Biblioteca-Comunitaria/internal/usecase"
)

type PrestamoPG struct {
	db Querier
}

func NewPrestamoPG(db Querier) *PrestamoPG {
	return &PrestamoPG{db: db}
}

const prestamoColumns = `id, id_usuario, id_libro, cantidad, solicitante,
	elemento_prestado, tipo, fecha_prestamo, fecha_devolucion, estado`

func scanPrestamo(row interface{ Scan(...any) error }) (entity.Prestamo, error) {
	var (
		p      entity.Prestamo
		fp, fd *time.Time
	)
	err := row.Scan(&p.ID, &p.IDUsuario, &p.IDLibro, &p.Cantidad, &p.Solicitante,
		&p.ElementoPrestado, &p.Tipo, &fp, &fd, &p.Estado)
	if err != nil {
		return entity.Prestamo{}, err
	}
	p.FechaPrestamo = fechaVal(fp)
	p.FechaDevolucion = fechaVal(fd)
	return p, nil
}

func (r *PrestamoPG) List(ctx context.Context) ([]entity.Prestamo, error) {
	const query = `
	SELECT ` + prestamoColumns + `
	FROM prestamos
	ORDER BY id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var prestamos []entity.Prestamo
	for rows.Next() {
		p, err := scanPrestamo(rows)
		if err != nil {
			return nil, err
		}
		prestamos = append(prestamos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return prestamos, nil
}

func (r *PrestamoPG) GetByID(ctx context.Context, id int64) (entity.Prestamo, error) {
	const query = `
	SELECT ` + prestamoColumns + `
	FROM prestamos
	WHERE id = $1
	LIMIT 1
	`
	p, err := scanPrestamo(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return entity.Prestamo{}, translateErr(err)
	}
	return p, nil
}

// Search filters loans by exact id and/or a case-insensitive substring of
// the solicitante name. Nil/empty criteria match everything.
func (r *PrestamoPG) Search(ctx context.Context, idPrestamo *int64, solicitante string) ([]entity.Prestamo, error) {
	const query = `
	SELECT ` + prestamoColumns + `
	FROM prestamos
	WHERE ($1::bigint IS NULL OR id = $1)
	AND ($2 = '' OR solicitante ILIKE '%' || $2 || '%')
	ORDER BY id
	`
	rows, err := r.db.Query(ctx, query, idPrestamo, solicitante)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var prestamos []entity.Prestamo
	for rows.Next() {
		p, err := scanPrestamo(rows)
		if err != nil {
			return nil, err
		}
		prestamos = append(prestamos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return prestamos, nil
}

func (r *PrestamoPG) CountActivosPorLibro(ctx context.Context, idLibro int64) (int, error) {
	const query = `
	SELECT count(*)
	FROM prestamos
	WHERE id_libro = $1
	AND lower(estado) IN ('activo', 'active')
	`
	var n int
	if err := r.db.QueryRow(ctx, query, idLibro).Scan(&n); err != nil {
		return 0, translateErr(err)
	}
	return n, nil
}

func (r *PrestamoPG) Insert(ctx context.Context, p *entity.Prestamo) error {
	const query = `
	INSERT INTO prestamos (id_usuario, id_libro, cantidad, solicitante,
		elemento_prestado, tipo, fecha_prestamo, fecha_devolucion, estado)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING id
	`
	err := r.db.QueryRow(ctx, query, p.IDUsuario, p.IDLibro, p.Cantidad, p.Solicitante,
		p.ElementoPrestado, p.Tipo, fechaArg(p.FechaPrestamo), fechaArg(p.FechaDevolucion),
		p.Estado).Scan(&p.ID)
	return translateErr(err)
}

func (r *PrestamoPG) Update(ctx context.Context, p *entity.Prestamo) error {
	const query = `
	UPDATE prestamos
	SET id_usuario = $2, id_libro = $3, cantidad = $4, solicitante = $5,
		elemento_prestado = $6, tipo = $7, fecha_prestamo = $8,
		fecha_devolucion = $9, estado = $10
	WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query, p.ID, p.IDUsuario, p.IDLibro, p.Cantidad,
		p.Solicitante, p.ElementoPrestado, p.Tipo, fechaArg(p.FechaPrestamo),
		fechaArg(p.FechaDevolucion), p.Estado)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return usecase.ErrNotFound
	}
	return nil
}

func (r *PrestamoPG) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM prestamos WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return usecase.ErrNotFound
	}
	return nil
}
