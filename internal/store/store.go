// Package store persists simulation events to Postgres. It implements
// domain.Mirror as a pure write-through observer: the simulation never
// reads anything back through it, so a lost write degrades the archive
// but can never change a trajectory.
package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"github.com/agorasim/agora/internal/domain"
)

type Store struct {
	db *pgxpool.Pool
}

func New(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Connect opens a pool against databaseURL and verifies it with a ping.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// beliefVector converts a belief vector into a pgvector column value,
// or nil for an absent vector.
func beliefVector(b domain.BeliefVector) *pgvector.Vector {
	if len(b) == 0 {
		return nil
	}
	values := make([]float32, len(b))
	for i, x := range b {
		values[i] = float32(x)
	}
	v := pgvector.NewVector(values)
	return &v
}

// Verify interface compliance at compile time
var _ domain.Mirror = (*Store)(nil)
