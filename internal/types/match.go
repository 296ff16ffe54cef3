package types

// Match is the scored result of one candidate/target pair. It is built and
// consumed within a single ranking call and never persisted by the matcher.
type Match struct {
	TargetID            string     `json:"target_id"`
	CandidateID         string     `json:"candidate_id,omitempty"`
	Score               float64    `json:"score"`
	Reasons             []string   `json:"reasons"`
	SharedSkills        []string   `json:"shared_skills"`
	ComplementarySkills []string   `json:"complementary_skills"`
	Breakdown           *Breakdown `json:"breakdown,omitempty"`
}

// Breakdown records every sub-score that went into a Match.
type Breakdown struct {
	SkillOverlap        float64  `json:"skill_overlap"`
	EmbeddingSimilarity float64  `json:"embedding_similarity"`
	RoleMatch           float64  `json:"role_match"`
	ExperienceFit       float64  `json:"experience_fit"`
	Availability        float64  `json:"availability"`
	HackathonBonus      float64  `json:"hackathon_bonus"`
	TieBreakBoost       float64  `json:"tie_break_boost"`
	MatchedRoles        []string `json:"matched_roles,omitempty"`
	// Conditions lists the neutral branches taken, keyed by sub-score name.
	Conditions map[string]string `json:"conditions,omitempty"`
}

// RankedMatches is the serialized form of a ranking call.
type RankedMatches struct {
	Matches []Match `json:"matches"`
	Skipped int     `json:"skipped"`
}
