package entity

import "time"

// Session states recorded in the loggeo audit trail. An account whose
// latest entry is flagged inactive cannot log in again.
const (
	SesionActiva   = "activa"
	SesionCerrada  = "cerrada"
	SesionInactiva = "inactiva"
)

// Loggeo is an append-only login/logout audit record.
type Loggeo struct {
	ID           int64      `json:"id"`
	IDUsuario    int64      `json:"id_usuario"`
	FechaLogin   time.Time  `json:"fecha_login"`
	FechaLogout  *time.Time `json:"fecha_logout"`
	IPAddress    string     `json:"ip_address"`
	EstadoSesion string     `json:"estado_sesion"`
}
