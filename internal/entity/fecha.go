package entity

import (
	"fmt"
	"strings"
	"time"
)

const fechaLayout = "2006-01-02"

// Fecha is a date-only value. Clients send either a plain date or a full
// ISO timestamp; responses always carry the plain date form.
type Fecha struct {
	time.Time
}

func NewFecha(t time.Time) Fecha {
	year, month, day := t.Date()
	return Fecha{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func Hoy() Fecha {
	return NewFecha(time.Now().UTC())
}

func (f Fecha) MarshalJSON() ([]byte, error) {
	if f.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + f.Format(fechaLayout) + `"`), nil
}

func (f *Fecha) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
		f.Time = time.Time{}
		return nil
	}
	if t, err := time.Parse(fechaLayout, s); err == nil {
		f.Time = t
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		*f = NewFecha(t)
		return nil
	}
	return fmt.Errorf("invalid date %q: want YYYY-MM-DD or RFC 3339", s)
}
