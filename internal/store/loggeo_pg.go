package store

import (
	"context"

	"github.com/Shags001/Biblioteca-Comunitaria/internal/entity"
	"github.com/Shags001/Biblioteca-Comunitaria/internal/usecase"
)

type LoggeoPG struct {
	db Querier
}

func NewLoggeoPG(db Querier) *LoggeoPG {
	return &LoggeoPG{db: db}
}

const loggeoColumns = `id, id_usuario, fecha_login, fecha_logout, ip_address, estado_sesion`

func (r *LoggeoPG) List(ctx context.Context, idUsuario *int64) ([]entity.Loggeo, error) {
	const query = `
	SELECT ` + loggeoColumns + `
	FROM loggeo
	WHERE ($1::bigint IS NULL OR id_usuario = $1)
	ORDER BY fecha_login DESC
	`
	rows, err := r.db.Query(ctx, query, idUsuario)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var entries []entity.Loggeo
	for rows.Next() {
		var l entity.Loggeo
		if err := rows.Scan(&l.ID, &l.IDUsuario, &l.FechaLogin, &l.FechaLogout, &l.IPAddress, &l.EstadoSesion); err != nil {
			return nil, err
		}
		entries = append(entries, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *LoggeoPG) LatestByUsuario(ctx context.Context, idUsuario int64) (entity.Loggeo, error) {
	const query = `
	SELECT ` + loggeoColumns + `
	FROM loggeo
	WHERE id_usuario = $1
	ORDER BY fecha_login DESC
	LIMIT 1
	`
	var l entity.Loggeo
	err := r.db.QueryRow(ctx, query, idUsuario).
		Scan(&l.ID, &l.IDUsuario, &l.FechaLogin, &l.FechaLogout, &l.IPAddress, &l.EstadoSesion)
	if err != nil {
		return entity.Loggeo{}, translateErr(err)
	}
	return l, nil
}

func (r *LoggeoPG) Insert(ctx context.Context, l *entity.Loggeo) error {
	const query = `
	INSERT INTO loggeo (id_usuario, fecha_login, fecha_logout, ip_address, estado_sesion)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id
	`
	err := r.db.QueryRow(ctx, query, l.IDUsuario, l.FechaLogin, l.FechaLogout,
		l.IPAddress, l.EstadoSesion).Scan(&l.ID)
	return translateErr(err)
}

func (r *LoggeoPG) Update(ctx context.Context, l *entity.Loggeo) error {
	const query = `
	UPDATE loggeo
	SET fecha_logout = $2, estado_sesion = $3
	WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query, l.ID, l.FechaLogout, l.EstadoSesion)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return usecase.ErrNotFound
	}
	return nil
}
