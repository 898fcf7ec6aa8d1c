package usecase

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/Shags001/Biblioteca-Comunitaria/internal/auth"
	"github.com/Shags001/Biblioteca-Comunitaria/internal/entity"
)

// AuthService issues bearer tokens and keeps the loggeo audit trail. The
// reconciliation core never sees any of this; it only consumes the Actor
// the boundary resolves from the token.
type AuthService struct {
	repos  Repos
	secret string
	ttl    time.Duration
}

func NewAuthService(repos Repos, secret string, ttl time.Duration) *AuthService {
	return &AuthService{repos: repos, secret: secret, ttl: ttl}
}

type LoginResult struct {
	Token   string         `json:"token"`
	Usuario entity.Usuario `json:"usuario"`
	Rol     string         `json:"rol"`
}

// Login verifies credentials, refuses accounts whose latest session
// record is flagged inactive, appends a loggeo entry and returns a signed
// token carrying the usuario's rol.
func (s *AuthService) Login(ctx context.Context, username, password, ip string) (LoginResult, error) {
	u, err := s.repos.Usuarios.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, err
	}
	if !auth.VerifyPassword(u.Password, password) {
		return LoginResult{}, ErrInvalidCredentials
	}

	latest, err := s.repos.Loggeos.LatestByUsuario(ctx, u.ID)
	switch {
	case err == nil:
		if latest.EstadoSesion == entity.SesionInactiva {
			return LoginResult{}, ErrCuentaInactiva
		}
	case !errors.Is(err, ErrNotFound):
		return LoginResult{}, err
	}

	rol, err := s.repos.Roles.GetByID(ctx, u.IDRol)
	if err != nil {
		return LoginResult{}, err
	}

	entry := entity.Loggeo{
		IDUsuario:    u.ID,
		FechaLogin:   time.Now().UTC(),
		IPAddress:    ip,
		EstadoSesion: entity.SesionActiva,
	}
	if err := s.repos.Loggeos.Insert(ctx, &entry); err != nil {
		return LoginResult{}, err
	}

	token, _, err := auth.GenerateToken(s.secret, strconv.FormatInt(u.ID, 10), rol.NombreRol, s.ttl)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Token: token, Usuario: u, Rol: rol.NombreRol}, nil
}

// Logout closes the actor's latest open session record. Missing records
// are not an error; the token simply expires on its own.
func (s *AuthService) Logout(ctx context.Context, actor Actor) error {
	if !actor.Authenticated {
		return ErrForbidden
	}
	latest, err := s.repos.Loggeos.LatestByUsuario(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}
	if latest.EstadoSesion != entity.SesionActiva {
		return nil
	}
	now := time.Now().UTC()
	latest.FechaLogout = &now
	latest.EstadoSesion = entity.SesionCerrada
	return s.repos.Loggeos.Update(ctx, &latest)
}
