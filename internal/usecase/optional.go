package usecase

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/Shags001/Biblioteca-Comunitaria/internal/entity"
)

// Optional JSON fields distinguish the three states a partial update can
// carry: key absent (keep previous value), explicit null (clear), and a
// concrete value. Numeric fields additionally tolerate quoted numbers,
// which the browser clients send.

type OptionalInt64 struct {
	Set   bool
	Valid bool
	Value int64
}

func (o *OptionalInt64) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	v, err := strconv.ParseInt(strings.Trim(string(b), `"`), 10, 64)
	if err != nil {
		return nil // unparsable input falls back to the previous value
	}
	o.Valid = true
	o.Value = v
	return nil
}

type OptionalInt struct {
	Set   bool
	Valid bool
	Value int
}

func (o *OptionalInt) UnmarshalJSON(b []byte) error {
	var v OptionalInt64
	if err := v.UnmarshalJSON(b); err != nil {
		return err
	}
	o.Set, o.Valid, o.Value = v.Set, v.Valid, int(v.Value)
	return nil
}

type OptionalString struct {
	Set   bool
	Valid bool
	Value string
}

func (o *OptionalString) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(b, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

type OptionalFecha struct {
	Set   bool
	Valid bool
	Value entity.Fecha
}

func (o *OptionalFecha) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if err := o.Value.UnmarshalJSON(b); err != nil {
		return err
	}
	o.Valid = !o.Value.IsZero()
	return nil
}
