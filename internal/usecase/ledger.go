package usecase

import (
	"strings"

	"github.com/Shags001/Biblioteca-Comunitaria/internal/entity"
)

// Inventory ledger: the only place that moves a libro's copy counters or
// derives its estado label. Changes are applied in memory against a
// loaded row and committed by the caller's unit of work.

// deductCopies moves cantidad copies from disponible to prestada.
func deductCopies(l *entity.Libro, cantidad int) error {
	if cantidad > l.CantidadDisponible {
		return ErrNoCopiesAvailable
	}
	l.CantidadDisponible -= cantidad
	l.CantidadPrestada += cantidad
	if l.CantidadDisponible == 0 {
		l.Estado = entity.EstadoPrestado
	}
	return nil
}

// restoreCopies gives cantidad copies back. The caller must not restore
// more than was deducted; prestada is clamped at zero regardless.
func restoreCopies(l *entity.Libro, cantidad int) {
	l.CantidadDisponible += cantidad
	l.CantidadPrestada -= cantidad
	if l.CantidadPrestada < 0 {
		l.CantidadPrestada = 0
	}
	if l.CantidadDisponible > 0 {
		if l.Estado == "" || strings.EqualFold(l.Estado, entity.EstadoPrestado) {
			l.Estado = entity.EstadoDisponible
		}
	}
}

// applyCopyDelta adjusts the counters when a loan's cantidad changes on
// the same libro.
func applyCopyDelta(l *entity.Libro, delta int) error {
	switch {
	case delta > 0:
		return deductCopies(l, delta)
	case delta < 0:
		restoreCopies(l, -delta)
	}
	return nil
}
