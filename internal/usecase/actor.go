package usecase

// Role names as stored in the roles table.
const (
	RolAdministrador = "Administrador"
	RolRecepcionista = "Recepcionista"
	RolLector        = "Lector"
)

// Actor is the resolved identity of the caller. The web boundary builds
// it from whatever session mechanism it uses; the services only ever see
// this value.
type Actor struct {
	UserID        int64
	Role          string
	Authenticated bool
}

// Allowed reports whether the actor is authenticated and holds one of the
// given roles.
func (a Actor) Allowed(roles ...string) bool {
	if !a.Authenticated {
		return false
	}
	for _, r := range roles {
		if a.Role == r {
			return true
		}
	}
	return false
}
