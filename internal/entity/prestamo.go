package entity

import "strings"

// Estado labels for a Prestamo. Devuelto is terminal: a returned loan can
// never be edited again, only deleted.
const (
	PrestamoActivo   = "Activo"
	PrestamoDevuelto = "Devuelto"
)

type Prestamo struct {
	ID               int64  `json:"id"`
	IDUsuario        int64  `json:"id_usuario"`
	IDLibro          *int64 `json:"id_libro"` // nil for non-book items
	Cantidad         int    `json:"cantidad"`
	Solicitante      string `json:"solicitante"`
	ElementoPrestado string `json:"elemento_prestado"`
	Tipo             string `json:"tipo"`
	FechaPrestamo    Fecha  `json:"fecha_prestamo"`
	FechaDevolucion  Fecha  `json:"fecha_devolucion"`
	Estado           string `json:"estado"`
}

// Devuelto reports whether the loan was already resolved. Legacy rows may
// carry the english label.
func (p Prestamo) Devuelto() bool {
	switch strings.ToLower(p.Estado) {
	case "devuelto", "returned":
		return true
	}
	return false
}

// Activo reports whether the loan still holds copies of its linked book.
func (p Prestamo) Activo() bool {
	switch strings.ToLower(p.Estado) {
	case "activo", "active":
		return true
	}
	return false
}
