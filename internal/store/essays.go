package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/agorasim/agora/internal/domain"
)

func (s *Store) CreateEssay(ctx context.Context, e *domain.Essay) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO essays (id, author_id, tick, topic, body, quality_score, novelty_score, citation_count, author_influence, belief_context)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		e.ID, e.AuthorID, e.Tick, e.Topic, e.Text,
		e.QualityScore, e.NoveltyScore, e.CitationCount, e.AuthorInfluence,
		beliefVector(e.BeliefContext),
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

func (s *Store) CreateCitation(ctx context.Context, citingID, citedID uuid.UUID) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO citations (citing_id, cited_id) VALUES ($1, $2)`,
		citingID, citedID,
	)
	return err
}

func (s *Store) UpdateEssayCitationCount(ctx context.Context, essayID uuid.UUID, count int) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE essays SET citation_count = $1 WHERE id = $2`,
		count, essayID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
