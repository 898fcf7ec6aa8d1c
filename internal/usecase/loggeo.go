package usecase

import (
	"context"
	"time"

	"github.com/Shags001/Biblioteca-Comunitaria/internal/entity"
)

type LoggeoService struct {
	repos Repos
}

func NewLoggeoService(repos Repos) *LoggeoService {
	return &LoggeoService{repos: repos}
}

type CreateLoggeoInput struct {
	IDUsuario    int64      `json:"id_usuario" validate:"required"`
	FechaLogin   *time.Time `json:"fecha_login"`
	FechaLogout  *time.Time `json:"fecha_logout"`
	IPAddress    string     `json:"ip_address" validate:"max=45"`
	EstadoSesion string     `json:"estado_sesion" validate:"max=20"`
}

func (s *LoggeoService) Create(ctx context.Context, in CreateLoggeoInput) (entity.Loggeo, error) {
	l := entity.Loggeo{
		IDUsuario:    in.IDUsuario,
		FechaLogout:  in.FechaLogout,
		IPAddress:    in.IPAddress,
		EstadoSesion: in.EstadoSesion,
	}
	if in.FechaLogin != nil {
		l.FechaLogin = *in.FechaLogin
	} else {
		l.FechaLogin = time.Now().UTC()
	}
	if l.EstadoSesion == "" {
		l.EstadoSesion = entity.SesionActiva
	}
	if err := s.repos.Loggeos.Insert(ctx, &l); err != nil {
		return entity.Loggeo{}, err
	}
	return l, nil
}

// List returns audit entries newest-first, optionally filtered by usuario.
func (s *LoggeoService) List(ctx context.Context, idUsuario *int64) ([]entity.Loggeo, error) {
	return s.repos.Loggeos.List(ctx, idUsuario)
}
