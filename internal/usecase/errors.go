package usecase

import "errors"

var (
	// ErrNotFound signals that a referenced libro/prestamo/usuario/rol is absent.
	ErrNotFound = errors.New("record not found")

	// ErrForbidden signals that the actor's role does not allow the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrNoCopiesAvailable signals a deduction larger than cantidadDisponible.
	ErrNoCopiesAvailable = errors.New("no copies available")

	// ErrPrestamoDevuelto signals an edit or re-return of an already
	// resolved loan. No role can override it.
	ErrPrestamoDevuelto = errors.New("prestamo already returned")

	// ErrIntegrityConflict signals a unique or foreign-key violation that
	// the duplicate-safe creation policy could not absorb.
	ErrIntegrityConflict = errors.New("integrity conflict")

	// ErrInvalidCredentials signals a failed username/password check.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrCuentaInactiva signals a login attempt on an account whose latest
	// session record is flagged inactive.
	ErrCuentaInactiva = errors.New("account flagged inactive")
)
