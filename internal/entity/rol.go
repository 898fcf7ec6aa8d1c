package entity

import "time"

type Rol struct {
	ID            int64     `json:"id"`
	NombreRol     string    `json:"nombre_rol"`
	Descripcion   string    `json:"descripcion"`
	FechaCreacion time.Time `json:"fecha_creacion"`
}
