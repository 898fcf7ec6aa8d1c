package usecase

import (
	"context"
	"errors"
	"fmt"
)

// idempotentInsert is the duplicate-safe creation policy used for libros
// (unique ISBN) and devoluciones (one per prestamo). The operations are
// injected so the policy is testable without a store.
//
// findExisting looks up the row by its natural unique key and captures it
// in caller state; it reports found=false, err=nil when absent. insert is
// the normal create inside a unit of work. rawInsert creates the row
// without reading back the generated identity and recovers it by the
// natural key; it covers backends that cannot report the identity when
// side-effecting triggers are present.
type idempotentInsert struct {
	findExisting func(ctx context.Context) (bool, error)
	insert       func(ctx context.Context) error
	rawInsert    func(ctx context.Context) error
}

// run returns reused=true when an existing row satisfied the request
// instead of a new insert. Each failure triggers exactly one re-check for
// a concurrently created duplicate before the error surfaces.
func (p idempotentInsert) run(ctx context.Context) (reused bool, err error) {
	found, err := p.findExisting(ctx)
	if err != nil {
		return false, err
	}
	if found {
		return true, nil
	}

	insErr := p.insert(ctx)
	if insErr == nil {
		return false, nil
	}

	// The unit of work already rolled back; a concurrent request may have
	// created the row in the meantime.
	if found, err = p.findExisting(ctx); err == nil && found {
		return true, nil
	}
	if errors.Is(insErr, ErrIntegrityConflict) || isBusinessRuleErr(insErr) || p.rawInsert == nil {
		return false, insErr
	}

	if rawErr := p.rawInsert(ctx); rawErr != nil {
		if found, err = p.findExisting(ctx); err == nil && found {
			return true, nil
		}
		return false, fmt.Errorf("creation fallback failed: %w (after %v)", rawErr, insErr)
	}
	if found, err = p.findExisting(ctx); err != nil {
		return false, err
	} else if !found {
		return false, fmt.Errorf("creation fallback could not locate the inserted row: %w", insErr)
	}
	return false, nil
}

// isBusinessRuleErr guards the fallback against retrying failures that a
// second insert attempt can never fix.
func isBusinessRuleErr(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrNoCopiesAvailable) ||
		errors.Is(err, ErrPrestamoDevuelto)
}
