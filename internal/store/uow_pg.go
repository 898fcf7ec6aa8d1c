package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shags001/Biblioteca-Comunitaria/internal/usecase"
)

// UnitOfWorkPG runs a callback against repositories bound to a single
// transaction. Counter updates and their owning row change commit or roll
// back together.
type UnitOfWorkPG struct {
	pool *pgxpool.Pool
}

func NewUnitOfWorkPG(pool *pgxpool.Pool) *UnitOfWorkPG {
	return &UnitOfWorkPG{pool: pool}
}

func (u *UnitOfWorkPG) Do(ctx context.Context, fn func(usecase.Repos) error) error {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
