package matching

import (
	"fmt"
	"math"
)

const weightSumTolerance = 1e-6

// Weights are the coefficients of the sub-scores in the final score.
type Weights struct {
	SkillOverlap        float64 `json:"skill_overlap" mapstructure:"skill_overlap"`
	EmbeddingSimilarity float64 `json:"embedding_similarity" mapstructure:"embedding_similarity"`
	RoleMatch           float64 `json:"role_match" mapstructure:"role_match"`
	ExperienceFit       float64 `json:"experience_fit" mapstructure:"experience_fit"`
	HackathonBonus      float64 `json:"hackathon_bonus" mapstructure:"hackathon_bonus"`
	Availability        float64 `json:"availability" mapstructure:"availability"`
}

// DefaultWeights returns the canonical weight table.
func DefaultWeights() Weights {
	return Weights{
		SkillOverlap:        0.45,
		EmbeddingSimilarity: 0.25,
		RoleMatch:           0.15,
		ExperienceFit:       0.06,
		HackathonBonus:      0.05,
		Availability:        0.04,
	}
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.SkillOverlap + w.EmbeddingSimilarity + w.RoleMatch +
		w.ExperienceFit + w.HackathonBonus + w.Availability
}

// Validate checks that weights are non-negative and sum to 1.0.
func (w Weights) Validate() error {
	named := map[string]float64{
		"skill_overlap":        w.SkillOverlap,
		"embedding_similarity": w.EmbeddingSimilarity,
		"role_match":           w.RoleMatch,
		"experience_fit":       w.ExperienceFit,
		"hackathon_bonus":      w.HackathonBonus,
		"availability":         w.Availability,
	}
	for name, v := range named {
		if v < 0 || math.IsNaN(v) {
			return fmt.Errorf("weight %s must be non-negative, got %v", name, v)
		}
	}
	if sum := w.Sum(); math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("weights must sum to 1.0, got %.4f", sum)
	}
	return nil
}
