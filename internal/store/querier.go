package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Shags001/Biblioteca-Comunitaria/internal/usecase"
)

// Querier is the subset of pgx shared by *pgxpool.Pool and pgx.Tx, so the
// same repository code runs inside and outside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func NewRepos(q Querier) usecase.Repos {
	return usecase.Repos{
		Libros:       NewLibroPG(q),
		Prestamos:    NewPrestamoPG(q),
		Devoluciones: NewDevolucionPG(q),
		Usuarios:     NewUsuarioPG(q),
		Roles:        NewRolPG(q),
		Loggeos:      NewLoggeoPG(q),
	}
}
