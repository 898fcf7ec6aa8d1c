package usecase

import (
	"context"
	"errors"

	"github.com/Shags001/Biblioteca-Comunitaria/internal/entity"
)

type RolService struct {
	repos Repos
}

func NewRolService(repos Repos) *RolService {
	return &RolService{repos: repos}
}

type CreateRolInput struct {
	NombreRol   string `json:"nombre_rol" validate:"required,max=50"`
	Descripcion string `json:"descripcion"`
}

type UpdateRolInput struct {
	NombreRol   OptionalString `json:"nombre_rol"`
	Descripcion OptionalString `json:"descripcion"`
}

// Create inserts a rol, returning the existing one (reused=true) when the
// name is already taken.
func (s *RolService) Create(ctx context.Context, in CreateRolInput) (entity.Rol, bool, error) {
	existing, err := s.repos.Roles.GetByNombre(ctx, in.NombreRol)
	switch {
	case err == nil:
		return existing, true, nil
	case !errors.Is(err, ErrNotFound):
		return entity.Rol{}, false, err
	}
	r := entity.Rol{NombreRol: in.NombreRol, Descripcion: in.Descripcion}
	if err := s.repos.Roles.Insert(ctx, &r); err != nil {
		return entity.Rol{}, false, err
	}
	return r, false, nil
}

func (s *RolService) Update(ctx context.Context, id int64, in UpdateRolInput) (entity.Rol, error) {
	r, err := s.repos.Roles.GetByID(ctx, id)
	if err != nil {
		return entity.Rol{}, err
	}
	if in.NombreRol.Set && in.NombreRol.Valid {
		r.NombreRol = in.NombreRol.Value
	}
	if in.Descripcion.Set && in.Descripcion.Valid {
		r.Descripcion = in.Descripcion.Value
	}
	if err := s.repos.Roles.Update(ctx, &r); err != nil {
		return entity.Rol{}, err
	}
	return r, nil
}

func (s *RolService) List(ctx context.Context) ([]entity.Rol, error) {
	return s.repos.Roles.List(ctx)
}
