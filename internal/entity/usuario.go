package entity

import "time"

type Usuario struct {
	ID            int64     `json:"id"`
	Nombre        string    `json:"nombre"`
	Email         string    `json:"email"`
	Telefono      string    `json:"telefono"`
	Direccion     string    `json:"direccion"`
	Username      string    `json:"username"`
	Password      string    `json:"-"` // bcrypt hash, never serialized
	FechaRegistro time.Time `json:"fecha_registro"`
	IDRol         int64     `json:"id_rol"`
}
