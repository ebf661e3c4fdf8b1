package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/agorasim/agora/internal/domain"
)

func (s *Store) CreateCritique(ctx context.Context, c *domain.Critique) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO critiques (id, critic_id, target_id, stance, tick, body, persuasiveness_score, belief_context)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		c.ID, c.CriticID, c.TargetID, int(c.Stance), c.Tick, c.Text,
		c.Persuasiveness, beliefVector(c.BeliefContext),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrConflict
		}
		return err
	}
	return nil
}
