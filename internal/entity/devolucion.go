package entity

type Devolucion struct {
	ID              int64  `json:"id"`
	IDLibro         int64  `json:"id_libro"`
	IDPrestamo      *int64 `json:"id_prestamo"`
	FechaPrestamo   Fecha  `json:"fecha_prestamo"`
	FechaDevolucion Fecha  `json:"fecha_devolucion"`
	EstadoPrestamo  string `json:"estado_prestamo"`
}
