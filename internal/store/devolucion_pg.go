package store

import (
	"context"
	"time"

	"github.com/Shags001/Biblioteca-Comunitaria/internal/entity"
	"github.com/Shags001/Biblioteca-Comunitaria/internal/usecase"
)

type DevolucionPG struct {
	db Querier
}

func NewDevolucionPG(db Querier) *DevolucionPG {
	return &DevolucionPG{db: db}
}

const devolucionColumns = `id, id_libro, id_prestamo, fecha_prestamo, fecha_devolucion, estado_prestamo`

func scanDevolucion(row interface{ Scan(...any) error }) (entity.Devolucion, error) {
	var (
		d      entity.Devolucion
		fp, fd *time.Time
	)
	err := row.Scan(&d.ID, &d.IDLibro, &d.IDPrestamo, &fp, &fd, &d.EstadoPrestamo)
	if err != nil {
		return entity.Devolucion{}, err
	}
	d.FechaPrestamo = fechaVal(fp)
	d.FechaDevolucion = fechaVal(fd)
	return d, nil
}

func (r *DevolucionPG) List(ctx context.Context) ([]entity.Devolucion, error) {
	const query = `
	SELECT ` + devolucionColumns + `
	FROM devoluciones
	ORDER BY id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var devoluciones []entity.Devolucion
	for rows.Next() {
		d, err := scanDevolucion(rows)
		if err != nil {
			return nil, err
		}
		devoluciones = append(devoluciones, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return devoluciones, nil
}

func (r *DevolucionPG) GetByID(ctx context.Context, id int64) (entity.Devolucion, error) {
	const query = `
	SELECT ` + devolucionColumns + `
	FROM devoluciones
	WHERE id = $1
	LIMIT 1
	`
	d, err := scanDevolucion(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return entity.Devolucion{}, translateErr(err)
	}
	return d, nil
}

// GetByPrestamo finds the return linked to a loan. The partial unique
// index on id_prestamo guarantees at most one row.
func (r *DevolucionPG) GetByPrestamo(ctx context.Context, idPrestamo int64) (entity.Devolucion, error) {
	const query = `
	SELECT ` + devolucionColumns + `
	FROM devoluciones
	WHERE id_prestamo = $1
	LIMIT 1
	`
	d, err := scanDevolucion(r.db.QueryRow(ctx, query, idPrestamo))
	if err != nil {
		return entity.Devolucion{}, translateErr(err)
	}
	return d, nil
}

func (r *DevolucionPG) Insert(ctx context.Context, d *entity.Devolucion) error {
	const query = `
	INSERT INTO devoluciones (id_libro, id_prestamo, fecha_prestamo, fecha_devolucion, estado_prestamo)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id
	`
	err := r.db.QueryRow(ctx, query, d.IDLibro, d.IDPrestamo,
		fechaArg(d.FechaPrestamo), fechaArg(d.FechaDevolucion), d.EstadoPrestamo).
		Scan(&d.ID)
	return translateErr(err)
}

// InsertRaw is the duplicate-safe policy's last resort; no RETURNING, the
// caller re-selects by id_prestamo afterwards.
func (r *DevolucionPG) InsertRaw(ctx context.Context, d *entity.Devolucion) error {
	const query = `
	INSERT INTO devoluciones (id_libro, id_prestamo, fecha_prestamo, fecha_devolucion, estado_prestamo)
	VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query, d.IDLibro, d.IDPrestamo,
		fechaArg(d.FechaPrestamo), fechaArg(d.FechaDevolucion), d.EstadoPrestamo)
	return translateErr(err)
}

func (r *DevolucionPG) Update(ctx context.Context, d *entity.Devolucion) error {
	const query = `
	UPDATE devoluciones
	SET id_libro = $2, id_prestamo = $3, fecha_prestamo = $4,
		fecha_devolucion = $5, estado_prestamo = $6
	WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query, d.ID, d.IDLibro, d.IDPrestamo,
		fechaArg(d.FechaPrestamo), fechaArg(d.FechaDevolucion), d.EstadoPrestamo)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return usecase.ErrNotFound
	}
	return nil
}

func (r *DevolucionPG) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM devoluciones WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return usecase.ErrNotFound
	}
	return nil
}
