package entity

import (
	"encoding/json"
	"strings"
	"time"
)

// Estado labels for a Libro. The label is stored alongside the counters
// and must only be derived through the inventory ledger operations.
const (
	EstadoDisponible = "Disponible"
	EstadoPrestado   = "Prestado"
)

type Libro struct {
	ID                  int64     `json:"id"`
	Titulo              string    `json:"titulo"`
	Autor               string    `json:"autor"` // comma-delimited author list
	ISBN                string    `json:"ISBN"`
	Editorial           string    `json:"editorial"`
	AnioPublicacion     int       `json:"anioPublicacion"`
	Categoria           string    `json:"categoria"`
	NumeroLibros        int       `json:"numeroLibros"`
	Idioma              string    `json:"idioma"`
	Descripcion         string    `json:"descripcion"`
	Estado              string    `json:"estado"`
	CantidadDisponible  int       `json:"cantidadDisponible"`
	CantidadPrestada    int       `json:"cantidadPrestada"`
	FechaRegistro       time.Time `json:"fechaRegistro"`
	UltimaActualizacion time.Time `json:"ultimaActualizacion"`
}

// Autores splits the delimited autor column into the list form clients
// consume.
func (l Libro) Autores() []string {
	if l.Autor == "" {
		return []string{}
	}
	parts := strings.Split(l.Autor, ",")
	autores := make([]string, 0, len(parts))
	for _, p := range parts {
		if a := strings.TrimSpace(p); a != "" {
			autores = append(autores, a)
		}
	}
	return autores
}

func (l Libro) MarshalJSON() ([]byte, error) {
	type alias Libro
	return json.Marshal(struct {
		alias
		Autores []string `json:"autores"`
	}{alias(l), l.Autores()})
}
