package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/seedtech/candidate-matcher/internal/types"
)

// UpsertMatch stores a computed match result, replacing any previous result
// for the same job and candidate.
func (s *Store) UpsertMatch(ctx context.Context, result *types.MatchResult) error {
	details, err := json.Marshal(result.Details)
	if err != nil {
		return fmt.Errorf("failed to marshal match details: %w", err)
	}

	ts := result.Timestamp
	if ts == 0 {
		ts = time.Now().Unix()
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO match_results (job_id, candidate_id, total_score, details, timestamp)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (job_id, candidate_id) DO UPDATE SET total_score = $3, details = $4, timestamp = $5`,
		result.JobID, result.CandidateID, result.TotalScore, details, ts,
	)
	if err != nil {
		return fmt.Errorf("failed to save match result: %w", err)
	}
	return nil
}

// GetMatch retrieves the stored result for a job and candidate pair, or nil
// when none exists.
func (s *Store) GetMatch(ctx context.Context, jobID, candidateID string) (*types.MatchResult, error) {
	var (
		result  types.MatchResult
		details []byte
	)
	err := s.pool.QueryRow(ctx,
		`SELECT job_id, candidate_id, total_score, details, timestamp
		 FROM match_results WHERE job_id = $1 AND candidate_id = $2`,
		jobID, candidateID,
	).Scan(&result.JobID, &result.CandidateID, &result.TotalScore, &details, &result.Timestamp)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get match result: %w", err)
	}

	if len(details) > 0 {
		if err := json.Unmarshal(details, &result.Details); err != nil {
			return nil, fmt.Errorf("failed to unmarshal match details: %w", err)
		}
	}
	return &result, nil
}

// TopMatches retrieves the highest scoring stored results for a job.
func (s *Store) TopMatches(ctx context.Context, jobID string, limit int) ([]types.MatchResult, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.pool.Query(ctx,
		`SELECT job_id, candidate_id, total_score, details, timestamp
		 FROM match_results WHERE job_id = $1
		 ORDER BY total_score DESC LIMIT $2`,
		jobID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list match results: %w", err)
	}
	defer rows.Close()

	var results []types.MatchResult
	for rows.Next() {
		var (
			result  types.MatchResult
			details []byte
		)
		if err := rows.Scan(&result.JobID, &result.CandidateID, &result.TotalScore, &details, &result.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan match result: %w", err)
		}
		if len(details) > 0 {
			if err := json.Unmarshal(details, &result.Details); err != nil {
				return nil, fmt.Errorf("failed to unmarshal match details: %w", err)
			}
		}
		results = append(results, result)
	}
	return results, rows.Err()
}
