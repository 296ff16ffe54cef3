package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/teammatch/internal/types"
	pgvector "github.com/pgvector/pgvector-go"
)

// GetTarget retrieves a project. It returns nil, nil when it does not exist.
func (db *DB) GetTarget(ctx context.Context, projectID uuid.UUID) (*types.Target, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+targetColumns+` FROM projects WHERE id = $1`,
		projectID,
	)
	t, err := scanTarget(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get project %s: %w", projectID, err)
	}
	return t, nil
}

// ListEligibleTargets returns the projects a user may be matched with:
// projects they do not own and have not already matched or passed on.
func (db *DB) ListEligibleTargets(ctx context.Context, userID uuid.UUID) ([]*types.Target, error) {
	return db.queryTargets(ctx,
		`SELECT `+targetColumns+` FROM projects p
		 WHERE p.owner_id <> $1
		   AND NOT EXISTS (
		       SELECT 1 FROM match_decisions d
		       WHERE d.user_id = $1 AND d.project_id = p.id)
		 ORDER BY p.created_at DESC`,
		userID,
	)
}

// ListCorpusTargets returns the most recent projects, used to seed the
// featurizer vocabulary at startup. limit <= 0 returns none.
func (db *DB) ListCorpusTargets(ctx context.Context, limit int) ([]*types.Target, error) {
	if limit <= 0 {
		return []*types.Target{}, nil
	}
	return db.queryTargets(ctx,
		`SELECT `+targetColumns+` FROM projects ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
}

func (db *DB) queryTargets(ctx context.Context, query string, args ...any) ([]*types.Target, error) {
	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	targets := make([]*types.Target, 0)
	for rows.Next() {
		t, err := scanTarget(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		targets = append(targets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return targets, nil
}

// SaveTargetEmbedding stores a computed embedding for a project.
func (db *DB) SaveTargetEmbedding(ctx context.Context, projectID uuid.UUID, embedding []float32) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE projects SET embedding = $1, updated_at = NOW() WHERE id = $2`,
		pgvector.NewVector(embedding), projectID,
	)
	if err != nil {
		return fmt.Errorf("failed to save project embedding %s: %w", projectID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to save project embedding: project %s not found", projectID)
	}
	return nil
}
