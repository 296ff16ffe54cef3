package matching

import (
	"fmt"
	"strings"
)

const (
	strongMatchRatio     = 0.8
	bonusSkillsThreshold = 3
	similarityThreshold  = 0.7
)

// Reasons builds the human-readable explanation lines for a match, in a
// fixed order. Each line appears only when its condition holds.
func Reasons(sharedCount, requiredCount int, matchedRoles []string, complementaryCount int, embeddingScore float64) []string {
	reasons := make([]string, 0, 5)

	if sharedCount > 0 {
		reasons = append(reasons, fmt.Sprintf("%d/%d required skills matched", sharedCount, requiredCount))
	}
	if requiredCount > 0 && sharedCount >= strongMatchFloor(requiredCount) {
		reasons = append(reasons, "Strong skill match!")
	}
	if len(matchedRoles) > 0 {
		reasons = append(reasons, "Role fit: "+strings.Join(matchedRoles, ", "))
	}
	if complementaryCount >= bonusSkillsThreshold {
		reasons = append(reasons, fmt.Sprintf("+%d bonus skills", complementaryCount))
	}
	if embeddingScore > similarityThreshold {
		reasons = append(reasons, fmt.Sprintf("Profile similarity: %.0f%%", embeddingScore*100))
	}
	return reasons
}

// strongMatchFloor is max(1, floor(required*0.8)).
func strongMatchFloor(requiredCount int) int {
	n := int(float64(requiredCount) * strongMatchRatio)
	if n < 1 {
		return 1
	}
	return n
}
