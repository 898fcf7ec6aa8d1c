package store

import (
	"context"

	"github.com/Shags001/Biblioteca-Comunitaria/internal/entity"
	"github.com/Shags001/Biblioteca-Comunitaria/internal/usecase"
)

type UsuarioPG struct {
	db Querier
}

func NewUsuarioPG(db Querier) *UsuarioPG {
	return &UsuarioPG{db: db}
}

const usuarioColumns = `id, nombre, email, telefono, direccion, username, password, fecha_registro, id_rol`

func scanUsuario(row interface{ Scan(...any) error }) (entity.Usuario, error) {
	var u entity.Usuario
	err := row.Scan(&u.ID, &u.Nombre, &u.Email, &u.Telefono, &u.Direccion,
		&u.Username, &u.Password, &u.FechaRegistro, &u.IDRol)
	return u, err
}

func (r *UsuarioPG) List(ctx context.Context) ([]entity.Usuario, error) {
	const query = `
	SELECT ` + usuarioColumns + `
	FROM usuarios
	ORDER BY id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var usuarios []entity.Usuario
	for rows.Next() {
		u, err := scanUsuario(rows)
		if err != nil {
			return nil, err
		}
		usuarios = append(usuarios, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return usuarios, nil
}

func (r *UsuarioPG) GetByID(ctx context.Context, id int64) (entity.Usuario, error) {
	const query = `
	SELECT ` + usuarioColumns + `
	FROM usuarios
	WHERE id = $1
	LIMIT 1
	`
	u, err := scanUsuario(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return entity.Usuario{}, translateErr(err)
	}
	return u, nil
}

func (r *UsuarioPG) GetByUsername(ctx context.Context, username string) (entity.Usuario, error) {
	const query = `
	SELECT ` + usuarioColumns + `
	FROM usuarios
	WHERE username = $1
	LIMIT 1
	`
	u, err := scanUsuario(r.db.QueryRow(ctx, query, username))
	if err != nil {
		return entity.Usuario{}, translateErr(err)
	}
	return u, nil
}

func (r *UsuarioPG) Insert(ctx context.Context, u *entity.Usuario) error {
	const query = `
	INSERT INTO usuarios (nombre, email, telefono, direccion, username, password, id_rol)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING id, fecha_registro
	`
	err := r.db.QueryRow(ctx, query, u.Nombre, u.Email, u.Telefono, u.Direccion,
		u.Username, u.Password, u.IDRol).Scan(&u.ID, &u.FechaRegistro)
	return translateErr(err)
}

func (r *UsuarioPG) Update(ctx context.Context, u *entity.Usuario) error {
	const query = `
	UPDATE usuarios
	SET nombre = $2, email = $3, telefono = $4, direccion = $5,
		username = $6, password = $7, id_rol = $8
	WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query, u.ID, u.Nombre, u.Email, u.Telefono,
		u.Direccion, u.Username, u.Password, u.IDRol)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return usecase.ErrNotFound
	}
	return nil
}

func (r *UsuarioPG) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM usuarios WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return usecase.ErrNotFound
	}
	return nil
}
