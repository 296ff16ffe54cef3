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

// GetProfile retrieves a user's matching profile. It returns nil, nil when
// the user does not exist.
func (db *DB) GetProfile(ctx context.Context, userID uuid.UUID) (*types.Profile, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM users WHERE id = $1`,
		userID,
	)
	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile %s: %w", userID, err)
	}
	return p, nil
}

// ListCandidateProfiles returns every profile that could join a project,
// which is everyone except its owner.
func (db *DB) ListCandidateProfiles(ctx context.Context, projectID uuid.UUID) ([]*types.Profile, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+profileColumns+` FROM users
		 WHERE id <> (SELECT owner_id FROM projects WHERE id = $1)
		 ORDER BY created_at`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates for project %s: %w", projectID, err)
	}
	defer rows.Close()

	profiles := make([]*types.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list candidates for project %s: %w", projectID, err)
	}
	return profiles, nil
}

// SaveProfileEmbedding stores a computed embedding for a user.
func (db *DB) SaveProfileEmbedding(ctx context.Context, userID uuid.UUID, embedding []float32) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE users SET embedding = $1, updated_at = NOW() WHERE id = $2`,
		pgvector.NewVector(embedding), userID,
	)
	if err != nil {
		return fmt.Errorf("failed to save profile embedding %s: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to save profile embedding: user %s not found", userID)
	}
	return nil
}
