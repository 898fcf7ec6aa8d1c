package usecase

import (
	"context"

	"github.com/Shags001/Biblioteca-Comunitaria/internal/auth"
	"github.com/Shags001/Biblioteca-Comunitaria/internal/entity"
)

type UsuarioService struct {
	repos Repos
}

func NewUsuarioService(repos Repos) *UsuarioService {
	return &UsuarioService{repos: repos}
}

type CreateUsuarioInput struct {
	Nombre    string `json:"nombre" validate:"required,max=255"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Telefono  string `json:"telefono" validate:"required,max=20"`
	Direccion string `json:"direccion"`
	Username  string `json:"username" validate:"required,max=100"`
	Password  string `json:"password" validate:"required,min=8"`
	IDRol     int64  `json:"id_rol" validate:"required"`
}

type UpdateUsuarioInput struct {
	Nombre    OptionalString `json:"nombre"`
	Email     OptionalString `json:"email"`
	Telefono  OptionalString `json:"telefono"`
	Direccion OptionalString `json:"direccion"`
	Username  OptionalString `json:"username"`
	Password  OptionalString `json:"password"`
	IDRol     OptionalInt64  `json:"id_rol"`
}

// Create registers a usuario. The password is stored as a bcrypt hash.
func (s *UsuarioService) Create(ctx context.Context, in CreateUsuarioInput) (entity.Usuario, error) {
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return entity.Usuario{}, err
	}
	u := entity.Usuario{
		Nombre:    in.Nombre,
		Email:     in.Email,
		Telefono:  in.Telefono,
		Direccion: in.Direccion,
		Username:  in.Username,
		Password:  hash,
		IDRol:     in.IDRol,
	}
	if err := s.repos.Usuarios.Insert(ctx, &u); err != nil {
		return entity.Usuario{}, err
	}
	return u, nil
}

func (s *UsuarioService) Update(ctx context.Context, actor Actor, id int64, in UpdateUsuarioInput) (entity.Usuario, error) {
	if !actor.Allowed(RolAdministrador) {
		return entity.Usuario{}, ErrForbidden
	}
	u, err := s.repos.Usuarios.GetByID(ctx, id)
	if err != nil {
		return entity.Usuario{}, err
	}
	if in.Nombre.Set && in.Nombre.Valid {
		u.Nombre = in.Nombre.Value
	}
	if in.Email.Set && in.Email.Valid {
		u.Email = in.Email.Value
	}
	if in.Telefono.Set && in.Telefono.Valid {
		u.Telefono = in.Telefono.Value
	}
	if in.Direccion.Set && in.Direccion.Valid {
		u.Direccion = in.Direccion.Value
	}
	if in.Username.Set && in.Username.Valid {
		u.Username = in.Username.Value
	}
	if in.Password.Set && in.Password.Valid {
		hash, err := auth.HashPassword(in.Password.Value)
		if err != nil {
			return entity.Usuario{}, err
		}
		u.Password = hash
	}
	if in.IDRol.Set && in.IDRol.Valid {
		u.IDRol = in.IDRol.Value
	}
	if err := s.repos.Usuarios.Update(ctx, &u); err != nil {
		return entity.Usuario{}, err
	}
	return u, nil
}

func (s *UsuarioService) Delete(ctx context.Context, actor Actor, id int64) error {
	if !actor.Allowed(RolAdministrador) {
		return ErrForbidden
	}
	if _, err := s.repos.Usuarios.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repos.Usuarios.Delete(ctx, id)
}

func (s *UsuarioService) Get(ctx context.Context, id int64) (entity.Usuario, error) {
	return s.repos.Usuarios.GetByID(ctx, id)
}

func (s *UsuarioService) List(ctx context.Context) ([]entity.Usuario, error) {
	return s.repos.Usuarios.List(ctx)
}
