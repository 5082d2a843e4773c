package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/seedtech/candidate-matcher/internal/similarity"
)

// GetScore looks up a durable similarity score. A hit refreshes the row
// timestamp so frequently consulted pairs survive eviction.
func (s *Store) GetScore(ctx context.Context, kind similarity.Kind, text1, text2 string) (float64, bool, error) {
	table, err := tableFor(kind)
	if err != nil {
		return 0, false, err
	}

	var score float64
	err = s.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT score FROM %s WHERE text1 = $1 AND text2 = $2`, table),
		text1, text2,
	).Scan(&score)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get similarity score: %w", err)
	}

	// A failed refresh must not turn the hit into a miss; the score is
	// already in hand and a re-resolve would cost an oracle call.
	_, err = s.pool.Exec(ctx,
		fmt.Sprintf(`UPDATE %s SET timestamp = $1 WHERE text1 = $2 AND text2 = $3`, table),
		time.Now().Unix(), text1, text2,
	)
	if err != nil {
		s.log.Warn("failed to refresh similarity timestamp",
			zap.String("table", table), zap.Error(err))
	}

	return score, true, nil
}

// SaveScore upserts a similarity score. When the table has reached its entry
// cap, the oldest tenth of its rows is evicted in the same transaction.
func (s *Store) SaveScore(ctx context.Context, kind similarity.Kind, text1, text2 string, score float64) error {
	table, err := tableFor(kind)
	if err != nil {
		return err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if s.maxEntries > 0 {
		var count int
		if err := tx.QueryRow(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, table)).Scan(&count); err != nil {
			return fmt.Errorf("failed to count similarity entries: %w", err)
		}
		if count >= s.maxEntries {
			evict := count / 10
			if evict < 1 {
				evict = 1
			}
			_, err := tx.Exec(ctx,
				fmt.Sprintf(`DELETE FROM %s WHERE id IN (
					SELECT id FROM %s ORDER BY timestamp ASC LIMIT $1
				)`, table, table),
				evict,
			)
			if err != nil {
				return fmt.Errorf("failed to evict similarity entries: %w", err)
			}
		}
	}

	_, err = tx.Exec(ctx,
		fmt.Sprintf(`INSERT INTO %s (text1, text2, score, timestamp)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (text1, text2) DO UPDATE SET score = $3, timestamp = $4`, table),
		text1, text2, score, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to save similarity score: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit similarity score: %w", err)
	}
	return nil
}

// CacheStats reports the row count of each similarity table.
func (s *Store) CacheStats(ctx context.Context) (map[string]int64, error) {
	stats := make(map[string]int64, 4)
	for _, kind := range []similarity.Kind{
		similarity.KindName,
		similarity.KindHardSkill,
		similarity.KindSoftSkill,
		similarity.KindDegree,
	} {
		table, err := tableFor(kind)
		if err != nil {
			return nil, err
		}
		var count int64
		if err := s.pool.QueryRow(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, table)).Scan(&count); err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", table, err)
		}
		stats[table] = count
	}
	return stats, nil
}

// CachedPair is one durable similarity entry, exposed for inspection.
type CachedPair struct {
	Text1     string  `json:"text1"`
	Text2     string  `json:"text2"`
	Score     float64 `json:"score"`
	Timestamp int64   `json:"timestamp"`
}

// ListScores returns the most recently touched entries of a similarity table.
func (s *Store) ListScores(ctx context.Context, kind similarity.Kind, limit int) ([]CachedPair, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.pool.Query(ctx,
		fmt.Sprintf(`SELECT text1, text2, score, timestamp FROM %s
		 ORDER BY timestamp DESC LIMIT $1`, table),
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list similarity entries: %w", err)
	}
	defer rows.Close()

	var pairs []CachedPair
	for rows.Next() {
		var p CachedPair
		if err := rows.Scan(&p.Text1, &p.Text2, &p.Score, &p.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan similarity entry: %w", err)
		}
		pairs = append(pairs, p)
	}
	return pairs, rows.Err()
}
