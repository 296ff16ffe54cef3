package db

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/teammatch/internal/types"
	pgvector "github.com/pgvector/pgvector-go"
)

// rowScanner is satisfied by pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

const profileColumns = `id, bio, timezone, roles, skills, interests, project_types,
	experience_years, hackathons, embedding`

const targetColumns = `id, owner_id, title, description, required_skills, required_roles,
	min_experience, max_experience, timezone, project_type, embedding`

func scanProfile(row rowScanner) (*types.Profile, error) {
	var (
		id         uuid.UUID
		years      *string
		hackathons []byte
		emb        *pgvector.Vector
	)
	p := &types.Profile{}
	err := row.Scan(&id, &p.Bio, &p.Timezone, &p.Roles, &p.Skills, &p.Interests,
		&p.ProjectTypes, &years, &hackathons, &emb)
	if err != nil {
		return nil, err
	}

	p.ID = id.String()
	if years != nil {
		p.ExperienceYears = types.ParseYears(*years)
	}
	if len(hackathons) > 0 {
		var h types.HackathonSummary
		if err := json.Unmarshal(hackathons, &h); err != nil {
			return nil, fmt.Errorf("failed to decode hackathons for %s: %w", p.ID, err)
		}
		p.Hackathons = &h
	}
	p.Embedding = vectorSlice(emb)
	return p, nil
}

func scanTarget(row rowScanner) (*types.Target, error) {
	var (
		id, owner uuid.UUID
		emb       *pgvector.Vector
	)
	t := &types.Target{}
	err := row.Scan(&id, &owner, &t.Title, &t.Description, &t.RequiredSkills, &t.RequiredRoles,
		&t.MinExperience, &t.MaxExperience, &t.Timezone, &t.ProjectType, &emb)
	if err != nil {
		return nil, err
	}

	t.ID = id.String()
	t.OwnerID = owner.String()
	t.Embedding = vectorSlice(emb)
	return t, nil
}

// vectorSlice converts a nullable pgvector column to a slice; NULL is nil.
func vectorSlice(v *pgvector.Vector) []float32 {
	if v == nil {
		return nil
	}
	s := v.Slice()
	if len(s) == 0 {
		return nil
	}
	out := make([]float32, len(s))
	copy(out, s)
	return out
}
