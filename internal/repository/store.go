package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"daycare-dispatch/internal/ports/dispatchtx"
)

// Store is the Postgres implementation of the dispatch repository.
type Store struct {
	db *pgxpool.Pool
}

// NewStore creates a new Store.
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// WithTx runs fn in a read-committed transaction. The transaction is rolled
// back when fn returns an error or panics.
func (r *Store) WithTx(ctx context.Context, fn func(tx dispatchtx.Repository) error) error {
	err := pgx.BeginTxFunc(ctx, r.db, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, func(tx pgx.Tx) error {
		return fn(&TxRepo{tx: tx})
	})
	if err != nil {
		return fmt.Errorf("dispatch tx: %w", err)
	}
	return nil
}

// TxRepo runs repository queries inside one transaction.
type TxRepo struct {
	tx pgx.Tx
}

var _ dispatchtx.Repository = (*TxRepo)(nil)
