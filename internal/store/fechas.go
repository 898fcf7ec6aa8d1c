package store

import (
	"time"

	"github.com/Shags001/Biblioteca-Comunitaria/internal/entity"
)

// fechaVal converts a nullable date column into the entity form; NULL
// becomes the zero Fecha.
func fechaVal(t *time.Time) entity.Fecha {
	if t == nil {
		return entity.Fecha{}
	}
	return entity.NewFecha(*t)
}

// fechaArg converts a Fecha into a bind parameter; the zero value binds
// as NULL.
func fechaArg(f entity.Fecha) any {
	if f.IsZero() {
		return nil
	}
	return f.Time
}
