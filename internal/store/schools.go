package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/agorasim/agora/internal/domain"
)

// CreateSchool upserts: school labels are reused when a school dissolves
// and later re-forms, and the archived row should follow the latest founding.
func (s *Store) CreateSchool(ctx context.Context, school *domain.School) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO schools (id, manifesto, doctrine, fitness, founding_tick)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE SET
			manifesto = EXCLUDED.manifesto,
			doctrine = EXCLUDED.doctrine,
			fitness = EXCLUDED.fitness,
			founding_tick = EXCLUDED.founding_tick,
			updated_at = NOW()`,
		school.ID, school.Manifesto, beliefVector(school.Doctrine),
		school.Fitness, school.FoundingTick,
	)
	return err
}

func (s *Store) AddAgentToSchool(ctx context.Context, agentID uuid.UUID, schoolID string) error {
	if _, err := s.db.Exec(ctx,
		`INSERT INTO school_members (school_id, agent_id) VALUES ($1, $2)
		 ON CONFLICT (school_id, agent_id) DO NOTHING`,
		schoolID, agentID,
	); err != nil {
		return err
	}

	tag, err := s.db.Exec(ctx,
		`UPDATE agents SET school_id = $1, updated_at = NOW() WHERE id = $2`,
		schoolID, agentID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
