// Package matching scores one candidate profile against one target.
package matching

import (
	"fmt"

	"github.com/jonathan/teammatch/internal/types"
)

// Breakdown condition keys
const (
	componentSkills       = "skill_overlap"
	componentEmbedding    = "embedding_similarity"
	componentRoles        = "role_match"
	componentAvailability = "availability"
	componentHackathon    = "hackathon_bonus"
)

// Engine computes weighted match scores. It holds no mutable state and is
// safe for concurrent use.
type Engine struct {
	weights Weights
}

// NewEngine returns an engine using the given weights.
func NewEngine(w Weights) (*Engine, error) {
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("invalid weights: %w", err)
	}
	return &Engine{weights: w}, nil
}

// Match scores profile p against target t. A nil record is a contract
// violation and returns ErrNilRecord. A profile whose experience could not
// be parsed returns a *ScoreError; everything else degrades to neutral
// sub-scores.
func (e *Engine) Match(p *types.Profile, t *types.Target) (*types.Match, error) {
	if p == nil || t == nil {
		return nil, ErrNilRecord
	}
	if !p.ExperienceYears.Valid() {
		return nil, &ScoreError{
			Kind:        KindMalformedExperience,
			CandidateID: p.ID,
			TargetID:    t.ID,
			Message:     fmt.Sprintf("experience_years %q is not a non-negative number", p.ExperienceYears.String()),
		}
	}

	conditions := make(map[string]string)
	note := func(component string, c Condition) {
		if c != ConditionScored {
			conditions[component] = string(c)
		}
	}

	skills := SkillOverlap(p.Skills, t.RequiredSkills)
	note(componentSkills, skills.Condition)

	embeddingScore, embCond := EmbeddingSimilarity(p.Embedding, t.Embedding)
	note(componentEmbedding, embCond)

	roleScore, matchedRoles, roleCond := RoleMatch(p.Roles, t.RequiredRoles)
	note(componentRoles, roleCond)

	minYears, maxYears := t.Bounds()
	expScore := ExperienceFit(p.ExperienceYears.Value, minYears, maxYears)

	availScore, availCond := Availability(p.Timezone, t.Timezone)
	note(componentAvailability, availCond)

	hackScore, hackCond := HackathonBonus(p.Hackathons)
	note(componentHackathon, hackCond)

	w := e.weights
	final := skills.Score*w.SkillOverlap +
		embeddingScore*w.EmbeddingSimilarity +
		roleScore*w.RoleMatch +
		expScore*w.ExperienceFit +
		hackScore*w.HackathonBonus +
		availScore*w.Availability

	boost := TieBreakBoost(len(skills.Shared))
	final = clamp(final+boost, 0, 1)

	if len(conditions) == 0 {
		conditions = nil
	}

	return &types.Match{
		TargetID:            t.ID,
		CandidateID:         p.ID,
		Score:               final,
		Reasons:             Reasons(len(skills.Shared), skills.RequiredCount, matchedRoles, len(skills.Complementary), embeddingScore),
		SharedSkills:        skills.Shared,
		ComplementarySkills: skills.Complementary,
		Breakdown: &types.Breakdown{
			SkillOverlap:        skills.Score,
			EmbeddingSimilarity: embeddingScore,
			RoleMatch:           roleScore,
			ExperienceFit:       expScore,
			Availability:        availScore,
			HackathonBonus:      hackScore,
			TieBreakBoost:       boost,
			MatchedRoles:        matchedRoles,
			Conditions:          conditions,
		},
	}, nil
}
