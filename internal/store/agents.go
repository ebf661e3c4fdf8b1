package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/agorasim/agora/internal/domain"
)

func (s *Store) CreateAgent(ctx context.Context, p *domain.Philosopher) error {
	schoolID := nullableText(p.SchoolID)
	_, err := s.db.Exec(ctx,
		`INSERT INTO agents (id, persona, beliefs, influence, school_id, birth_tick, last_activity_tick, citation_count)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.Persona, beliefVector(p.Beliefs), p.Influence, schoolID,
		p.BirthTick, p.LastActivityTick, p.CitationCount,
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

func (s *Store) UpdateAgentInfluence(ctx context.Context, agentID uuid.UUID, influence float64) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE agents SET influence = $1, updated_at = NOW() WHERE id = $2`,
		influence, agentID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func nullableText(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
