// Package store provides PostgreSQL persistence for similarity scores and
// match results.
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/seedtech/candidate-matcher/internal/similarity"
)

// Store wraps a PostgreSQL connection pool
type Store struct {
	pool       *pgxpool.Pool
	maxEntries int
	log        *zap.Logger
}

// Connect establishes a connection pool to the database. maxEntries bounds
// each similarity table; when a table reaches it, the oldest tenth of its
// rows is evicted on the next write.
func Connect(ctx context.Context, databaseURL string, maxEntries int, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{pool: pool, maxEntries: maxEntries, log: log}, nil
}

// Close closes the connection pool
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS name_similarity (
		id SERIAL PRIMARY KEY,
		text1 TEXT NOT NULL,
		text2 TEXT NOT NULL,
		score REAL NOT NULL,
		timestamp BIGINT NOT NULL,
		UNIQUE(text1, text2)
	)`,
	`CREATE TABLE IF NOT EXISTS hard_skills_similarity (
		id SERIAL PRIMARY KEY,
		text1 TEXT NOT NULL,
		text2 TEXT NOT NULL,
		score REAL NOT NULL,
		timestamp BIGINT NOT NULL,
		UNIQUE(text1, text2)
	)`,
	`CREATE TABLE IF NOT EXISTS soft_skills_similarity (
		id SERIAL PRIMARY KEY,
		text1 TEXT NOT NULL,
		text2 TEXT NOT NULL,
		score REAL NOT NULL,
		timestamp BIGINT NOT NULL,
		UNIQUE(text1, text2)
	)`,
	`CREATE TABLE IF NOT EXISTS degree_domain_similarity (
		id SERIAL PRIMARY KEY,
		text1 TEXT NOT NULL,
		text2 TEXT NOT NULL,
		score REAL NOT NULL,
		timestamp BIGINT NOT NULL,
		UNIQUE(text1, text2)
	)`,
	`CREATE TABLE IF NOT EXISTS match_results (
		id SERIAL PRIMARY KEY,
		job_id TEXT NOT NULL,
		candidate_id TEXT NOT NULL,
		total_score REAL NOT NULL,
		details JSONB,
		timestamp BIGINT NOT NULL,
		UNIQUE(job_id, candidate_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_match_results_job ON match_results (job_id, total_score DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_match_results_candidate ON match_results (candidate_id)`,
}

// InitSchema creates the similarity and match tables if they do not exist.
func (s *Store) InitSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}
	return nil
}

// tableFor maps a similarity kind to its table. The switch doubles as a
// whitelist so a kind never reaches SQL as raw text.
func tableFor(kind similarity.Kind) (string, error) {
	switch kind {
	case similarity.KindName:
		return "name_similarity", nil
	case similarity.KindHardSkill:
		return "hard_skills_similarity", nil
	case similarity.KindSoftSkill:
		return "soft_skills_similarity", nil
	case similarity.KindDegree:
		return "degree_domain_similarity", nil
	default:
		return "", fmt.Errorf("unknown similarity kind: %s", kind)
	}
}
