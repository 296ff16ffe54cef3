package matching

import (
	"errors"
	"math"
	"sort"

	"github.com/jonathan/teammatch/internal/embedding"
	"github.com/jonathan/teammatch/internal/parsing"
	"github.com/jonathan/teammatch/internal/types"
)

// Scoring constants
const (
	neutralSkillScore     = 0.5
	extraSkillBonusEach   = 0.05
	extraSkillBonusCap    = 0.2
	underExperienceStep   = 0.15
	underExperienceFloor  = 0.5
	overExperienceStep    = 0.05
	overExperienceFloor   = 0.7
	timezoneMismatchScore = 0.8
	hackathonScoreCeiling = 20.0
	tieBreakPerShared     = 0.02
	tieBreakCap           = 0.12
)

// Condition names the neutral branch a sub-score took, if any.
type Condition string

const (
	ConditionScored            Condition = ""
	ConditionNoRequirement     Condition = "no_requirement"
	ConditionMissingEmbedding  Condition = "missing_embedding"
	ConditionDegenerateVectors Condition = "degenerate_embedding"
	ConditionNoTimezone        Condition = "no_timezone"
	ConditionNoHackathonData   Condition = "no_hackathon_data"
)

// SkillResult is the outcome of the skill overlap sub-score.
type SkillResult struct {
	Score         float64
	Shared        []string
	Complementary []string
	// RequiredCount is the number of distinct normalized required skills.
	RequiredCount int
	Condition     Condition
}

// SkillOverlap compares candidate skills with required skills by normalized
// key. Shared and complementary skills are reported in the target's
// original spelling, sorted by normalized key. Complementary skills are the
// ones the target needs but the candidate lacks.
func SkillOverlap(userSkills, requiredSkills []string) SkillResult {
	required := parsing.NormalizeSkills(requiredSkills)
	if len(required) == 0 {
		return SkillResult{
			Score:         neutralSkillScore,
			Shared:        []string{},
			Complementary: []string{},
			Condition:     ConditionNoRequirement,
		}
	}
	user := parsing.NormalizeSkills(userSkills)

	keys := make([]string, 0, len(required))
	for k := range required {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	shared := make([]string, 0)
	complementary := make([]string, 0)
	for _, k := range keys {
		if _, ok := user[k]; ok {
			shared = append(shared, required[k])
		} else {
			complementary = append(complementary, required[k])
		}
	}

	userOnly := 0
	for k := range user {
		if _, ok := required[k]; !ok {
			userOnly++
		}
	}

	overlap := float64(len(shared)) / float64(len(required))
	bonus := math.Min(float64(userOnly)*extraSkillBonusEach, extraSkillBonusCap)

	return SkillResult{
		Score:         math.Min(overlap+bonus, 1.0),
		Shared:        shared,
		Complementary: complementary,
		RequiredCount: len(required),
		Condition:     ConditionScored,
	}
}

// EmbeddingSimilarity is the cosine of the two embeddings, or 0.0 with a
// condition when either is absent or the vectors are degenerate.
func EmbeddingSimilarity(candidate, target []float32) (float64, Condition) {
	sim, err := embedding.Cosine(candidate, target)
	switch {
	case err == nil:
		return sim, ConditionScored
	case errors.Is(err, embedding.ErrMissingVector):
		return 0.0, ConditionMissingEmbedding
	default:
		return 0.0, ConditionDegenerateVectors
	}
}

// RoleMatch returns the fraction of required roles the candidate holds
// (case-insensitive) and the matched roles in required order. No required
// roles is fully permissive.
func RoleMatch(userRoles, requiredRoles []string) (float64, []string, Condition) {
	required := parsing.NormalizeRoles(requiredRoles)
	if len(required) == 0 {
		return 1.0, []string{}, ConditionNoRequirement
	}

	held := make(map[string]bool, len(userRoles))
	for _, r := range parsing.NormalizeRoles(userRoles) {
		held[r] = true
	}

	matched := make([]string, 0)
	for _, r := range required {
		if held[r] {
			matched = append(matched, r)
		}
	}
	return float64(len(matched)) / float64(len(required)), matched, ConditionScored
}

// ExperienceFit is 1.0 inside [minYears, maxYears]. Below the minimum it
// drops 0.15 per missing year down to 0.5; above the maximum it drops 0.05
// per extra year down to 0.7.
func ExperienceFit(years, minYears, maxYears int) float64 {
	switch {
	case years < minYears:
		gap := float64(minYears) - float64(years)
		return clamp(1.0-gap*underExperienceStep, underExperienceFloor, 1.0)
	case years > maxYears:
		gap := float64(years) - float64(maxYears)
		return clamp(1.0-gap*overExperienceStep, overExperienceFloor, 1.0)
	default:
		return 1.0
	}
}

// Availability is 1.0 when either timezone is unset or they are equal, 0.8 otherwise.
func Availability(userTZ, targetTZ string) (float64, Condition) {
	if userTZ == "" || targetTZ == "" {
		return 1.0, ConditionNoTimezone
	}
	if userTZ == targetTZ {
		return 1.0, ConditionScored
	}
	return timezoneMismatchScore, ConditionScored
}

// HackathonBonus scales the weighted hackathon score into [0,1]; a score of
// 20 (two first places) saturates it.
func HackathonBonus(h *types.HackathonSummary) (float64, Condition) {
	if !h.HasExperience() {
		return 0.0, ConditionNoHackathonData
	}
	score := h.Score
	if score == 0 {
		score = h.Wins.WeightedScore()
	}
	return clamp(float64(score)/hackathonScoreCeiling, 0, 1), ConditionScored
}

// TieBreakBoost rewards more shared skills so close scores separate.
func TieBreakBoost(sharedCount int) float64 {
	return math.Min(float64(sharedCount)*tieBreakPerShared, tieBreakCap)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
