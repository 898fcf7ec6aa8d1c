package store

import (
	"context"

	"github.com/Shags001/Biblioteca-Comunitaria/internal/entity"
	"github.com/Shags001/Biblioteca-Comunitaria/internal/usecase"
)

type RolPG struct {
	db Querier
}

func NewRolPG(db Querier) *RolPG {
	return &RolPG{db: db}
}

func (r *RolPG) List(ctx context.Context) ([]entity.Rol, error) {
	const query = `
	SELECT id, nombre_rol, descripcion, fecha_creacion
	FROM roles
	ORDER BY id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var roles []entity.Rol
	for rows.Next() {
		var rol entity.Rol
		if err := rows.Scan(&rol.ID, &rol.NombreRol, &rol.Descripcion, &rol.FechaCreacion); err != nil {
			return nil, err
		}
		roles = append(roles, rol)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return roles, nil
}

func (r *RolPG) GetByID(ctx context.Context, id int64) (entity.Rol, error) {
	const query = `
	SELECT id, nombre_rol, descripcion, fecha_creacion
	FROM roles
	WHERE id = $1
	LIMIT 1
	`
	var rol entity.Rol
	err := r.db.QueryRow(ctx, query, id).Scan(&rol.ID, &rol.NombreRol, &rol.Descripcion, &rol.FechaCreacion)
	if err != nil {
		return entity.Rol{}, translateErr(err)
	}
	return rol, nil
}

func (r *RolPG) GetByNombre(ctx context.Context, nombre string) (entity.Rol, error) {
	const query = `
	SELECT id, nombre_rol, descripcion, fecha_creacion
	FROM roles
	WHERE nombre_rol = $1
	LIMIT 1
	`
	var rol entity.Rol
	err := r.db.QueryRow(ctx, query, nombre).Scan(&rol.ID, &rol.NombreRol, &rol.Descripcion, &rol.FechaCreacion)
	if err != nil {
		return entity.Rol{}, translateErr(err)
	}
	return rol, nil
}

func (r *RolPG) Insert(ctx context.Context, rol *entity.Rol) error {
	const query = `
	INSERT INTO roles (nombre_rol, descripcion)
	VALUES ($1, $2)
	RETURNING id, fecha_creacion
	`
	err := r.db.QueryRow(ctx, query, rol.NombreRol, rol.Descripcion).Scan(&rol.ID, &rol.FechaCreacion)
	return translateErr(err)
}

func (r *RolPG) Update(ctx context.Context, rol *entity.Rol) error {
	const query = `
	UPDATE roles
	SET nombre_rol = $2, descripcion = $3
	WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query, rol.ID, rol.NombreRol, rol.Descripcion)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return usecase.ErrNotFound
	}
	return nil
}
