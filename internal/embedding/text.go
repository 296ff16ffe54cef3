package embedding

import (
	"fmt"
	"strings"

	"github.com/jonathan/teammatch/internal/parsing"
	"github.com/jonathan/teammatch/internal/types"
)

const (
	segmentDelimiter = " | "

	maxProfileSkills   = 20
	maxInterests       = 5
	bioLimit           = 200
	descriptionLimit   = 300
	projectIdeaLimit   = 200
	neutralMinYears    = types.DefaultMinExperience
	neutralMaxYears    = types.DefaultMaxExperience
	activeHackathonMin = 3
)

// BuildText returns the descriptive text for any embeddable record.
func BuildText(rec types.Embeddable) (string, error) {
	switch r := rec.(type) {
	case *types.Profile:
		return BuildProfileText(r), nil
	case *types.Target:
		return BuildTargetText(r), nil
	case *types.TeammateRequest:
		return BuildTeammateRequestText(r), nil
	default:
		return "", fmt.Errorf("%w: %T", ErrUnsupportedRecord, rec)
	}
}

// BuildProfileText concatenates the profile segments in a fixed order:
// roles, skills, experience level, hackathons, bio, interests, project types.
func BuildProfileText(p *types.Profile) string {
	var parts []string

	if roles := parsing.Dedupe(p.Roles); len(roles) > 0 {
		joined := strings.Join(roles, ", ")
		parts = append(parts, "Roles: "+joined, "Position: "+joined)
	}

	if skills := parsing.Dedupe(p.Skills); len(skills) > 0 {
		joined := strings.Join(head(skills, maxProfileSkills), ", ")
		parts = append(parts,
			"Technical Skills: "+joined,
			"Expertise: "+joined,
			"Proficient in: "+joined,
		)
	}

	if p.ExperienceYears.Valid() {
		years := p.ExperienceYears.Value
		parts = append(parts, fmt.Sprintf("Experience: %d years, %s level", years, ExperienceLevel(years)))
	}

	if clause := hackathonClause(p.Hackathons); clause != "" {
		parts = append(parts, clause)
	}

	if bio := strings.TrimSpace(p.Bio); bio != "" {
		parts = append(parts, "About: "+truncateRunes(bio, bioLimit))
	}

	if interests := parsing.Dedupe(p.Interests); len(interests) > 0 {
		parts = append(parts, "Interests: "+strings.Join(head(interests, maxInterests), ", "))
	}

	if kinds := parsing.Dedupe(p.ProjectTypes); len(kinds) > 0 {
		parts = append(parts, "Looking to build: "+strings.Join(kinds, ", "))
	}

	return strings.Join(parts, segmentDelimiter)
}

// BuildTargetText concatenates the project segments: title, description,
// roles, skills, experience range and category.
func BuildTargetText(t *types.Target) string {
	var parts []string

	if title := strings.TrimSpace(t.Title); title != "" {
		parts = append(parts, "Project: "+title)
	}

	if desc := strings.TrimSpace(t.Description); desc != "" {
		parts = append(parts, "Description: "+truncateRunes(desc, descriptionLimit))
	}

	if roles := parsing.Dedupe(t.RequiredRoles); len(roles) > 0 {
		joined := strings.Join(roles, ", ")
		parts = append(parts, "Looking for: "+joined, "Need: "+joined)
	}

	if skills := parsing.Dedupe(t.RequiredSkills); len(skills) > 0 {
		joined := strings.Join(skills, ", ")
		parts = append(parts,
			"Required skills: "+joined,
			"Tech stack: "+joined,
			"Technologies: "+joined,
		)
	}

	if minYears, maxYears := t.Bounds(); minYears > neutralMinYears || maxYears < neutralMaxYears {
		parts = append(parts, fmt.Sprintf("Experience needed: %d-%d years", minYears, maxYears))
	}

	if category := strings.TrimSpace(t.ProjectType); category != "" {
		parts = append(parts, "Category: "+category)
	}

	return strings.Join(parts, segmentDelimiter)
}

// BuildTeammateRequestText concatenates the idea, wanted roles and wanted skills.
func BuildTeammateRequestText(r *types.TeammateRequest) string {
	var parts []string

	if idea := strings.TrimSpace(r.ProjectIdea); idea != "" {
		parts = append(parts, "Building: "+truncateRunes(idea, projectIdeaLimit))
	}

	if roles := parsing.Dedupe(r.LookingForRoles); len(roles) > 0 {
		joined := strings.Join(roles, ", ")
		parts = append(parts, "Looking for: "+joined, "Need teammates with roles: "+joined)
	}

	if skills := parsing.Dedupe(r.LookingForSkills); len(skills) > 0 {
		joined := strings.Join(skills, ", ")
		parts = append(parts,
			"Need skills: "+joined,
			"Required expertise: "+joined,
			"Tech stack: "+joined,
		)
	}

	return strings.Join(parts, segmentDelimiter)
}

// ExperienceLevel buckets years of experience into a label.
func ExperienceLevel(years int) string {
	switch {
	case years <= 1:
		return "Junior"
	case years <= 3:
		return "Mid-level"
	case years <= 7:
		return "Senior"
	default:
		return "Expert"
	}
}

// hackathonClause picks the strongest achievement: first-place wins, then
// any second place, then sustained participation.
func hackathonClause(h *types.HackathonSummary) string {
	if !h.HasExperience() {
		return ""
	}
	switch {
	case h.Wins.First > 0:
		return fmt.Sprintf("Hackathon winner with %d wins", h.Wins.First)
	case h.Wins.Second > 0:
		return "Hackathon finalist and top performer"
	case h.TotalHackathons >= activeHackathonMin:
		return "Active hackathon participant"
	default:
		return ""
	}
}

func head(values []string, n int) []string {
	if len(values) <= n {
		return values
	}
	return values[:n]
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
