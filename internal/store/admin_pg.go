package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AdminPG holds maintenance operations that bypass the repositories.
type AdminPG struct {
	pool *pgxpool.Pool
}

func NewAdminPG(pool *pgxpool.Pool) *AdminPG {
	return &AdminPG{pool: pool}
}

// Wipe empties every table and resets the id sequences. Only the
// token-gated maintenance endpoint calls this.
func (a *AdminPG) Wipe(ctx context.Context) error {
	const query = `
	TRUNCATE devoluciones, prestamos, loggeo, usuarios, libros, roles
	RESTART IDENTITY CASCADE
	`
	_, err := a.pool.Exec(ctx, query)
	return err
}
