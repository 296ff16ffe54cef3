package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/teammatch/internal/types"
)

// RecordDecision stores a user's match or pass on a project. A later
// decision on the same project replaces the earlier one.
func (db *DB) RecordDecision(ctx context.Context, d types.Decision) error {
	if err := d.Validate(); err != nil {
		return err
	}
	userID, err := uuid.Parse(d.UserID)
	if err != nil {
		return fmt.Errorf("invalid user id %q: %w", d.UserID, err)
	}
	projectID, err := uuid.Parse(d.ProjectID)
	if err != nil {
		return fmt.Errorf("invalid project id %q: %w", d.ProjectID, err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO match_decisions (user_id, project_id, action)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, project_id) DO UPDATE SET action = $3, decided_at = NOW()`,
		userID, projectID, d.Action,
	)
	if err != nil {
		return fmt.Errorf("failed to record decision for project %s: %w", projectID, err)
	}
	return nil
}
