package store

import (
	"context"
	"fmt"
)

// EnsureSchema creates the pgvector extension and all mirror tables if they
// do not exist. beliefDim fixes the width of the vector columns, so runs
// against the same database must share a belief dimension.
func (s *Store) EnsureSchema(ctx context.Context, beliefDim int) error {
	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS agents (
			id UUID PRIMARY KEY,
			persona TEXT NOT NULL,
			beliefs vector(%d),
			influence DOUBLE PRECISION NOT NULL,
			school_id TEXT,
			birth_tick INTEGER NOT NULL,
			last_activity_tick INTEGER NOT NULL,
			citation_count INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`, beliefDim),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS essays (
			id UUID PRIMARY KEY,
			author_id UUID NOT NULL,
			tick INTEGER NOT NULL,
			topic TEXT NOT NULL,
			body TEXT NOT NULL,
			quality_score DOUBLE PRECISION NOT NULL,
			novelty_score DOUBLE PRECISION NOT NULL,
			citation_count INTEGER NOT NULL DEFAULT 0,
			author_influence DOUBLE PRECISION NOT NULL,
			belief_context vector(%d),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`, beliefDim),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS critiques (
			id UUID PRIMARY KEY,
			critic_id UUID NOT NULL,
			target_id UUID NOT NULL,
			stance INTEGER NOT NULL,
			tick INTEGER NOT NULL,
			body TEXT NOT NULL,
			persuasiveness_score DOUBLE PRECISION NOT NULL,
			belief_context vector(%d),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`, beliefDim),

		// Duplicate edges are meaningful: citing the same essay twice in
		// one bibliography counts twice, so no uniqueness across the pair.
		`CREATE TABLE IF NOT EXISTS citations (
			id BIGSERIAL PRIMARY KEY,
			citing_id UUID NOT NULL,
			cited_id UUID NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS schools (
			id TEXT PRIMARY KEY,
			manifesto TEXT NOT NULL,
			doctrine vector(%d),
			fitness DOUBLE PRECISION NOT NULL,
			founding_tick INTEGER NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`, beliefDim),

		`CREATE TABLE IF NOT EXISTS school_members (
			school_id TEXT NOT NULL,
			agent_id UUID NOT NULL,
			joined_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (school_id, agent_id)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_essays_author ON essays (author_id)`,
		`CREATE INDEX IF NOT EXISTS idx_essays_topic ON essays (topic)`,
		`CREATE INDEX IF NOT EXISTS idx_critiques_target ON critiques (target_id)`,
		`CREATE INDEX IF NOT EXISTS idx_citations_citing ON citations (citing_id)`,
		`CREATE INDEX IF NOT EXISTS idx_citations_cited ON citations (cited_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
