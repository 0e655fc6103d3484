package db

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/technopolitica/company-employees/internal/domain"
)

var (
	ErrNotFound = domain.ErrNotFound
	ErrConflict = domain.ErrConflict
)

// DBConnection is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBConnection interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, optionsAndArgs ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, optionsAndArgs ...any) pgx.Row
}

type Repository struct {
	DBConnection
}

var (
	_ domain.CompanyRepository  = Repository{}
	_ domain.EmployeeRepository = Repository{}
)

func NewRepository(conn DBConnection) Repository {
	return Repository{conn}
}

func (repo Repository) WithinTransaction(ctx context.Context, op func(pgx.Tx) error) (err error) {
	tx, err := repo.DBConnection.Begin(ctx)
	if err != nil {
		return
	}
	defer tx.Rollback(ctx)
	err = op(tx)
	if err != nil {
		return
	}
	err = tx.Commit(ctx)
	return
}

// classify maps constraint violations onto the domain sentinels.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if err == nil || !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return ErrConflict
	case pgerrcode.ForeignKeyViolation:
		return ErrNotFound
	}
	return err
}
