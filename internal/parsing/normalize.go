package parsing

import (
	"strings"
)

// skillSeparators are removed from skill tokens before comparison.
var skillSeparators = strings.NewReplacer(".", "", " ", "", "-", "", "_", "")

// textSeparators additionally drop commas so list-formatted text collapses
// into one comparable run.
var textSeparators = strings.NewReplacer(".", "", " ", "", "-", "", "_", "", ",", "")

// NormalizeSkill returns the comparison key for a skill token: lowercased
// with periods, spaces, hyphens and underscores removed. It is only used for
// comparison; display values keep their original spelling.
func NormalizeSkill(skill string) string {
	return skillSeparators.Replace(strings.ToLower(skill))
}

// normalizeText is the free-text form of NormalizeSkill used by skill extraction.
func normalizeText(text string) string {
	return textSeparators.Replace(strings.ToLower(text))
}

// NormalizeSkills maps each normalized key to the first original spelling seen.
// Tokens that normalize to the empty string are dropped.
func NormalizeSkills(skills []string) map[string]string {
	out := make(map[string]string, len(skills))
	for _, skill := range skills {
		key := NormalizeSkill(skill)
		if key == "" {
			continue
		}
		if _, exists := out[key]; !exists {
			out[key] = skill
		}
	}
	return out
}

// NormalizeRoles lowercases and trims role tags, dropping empties and duplicates.
// Input order is preserved.
func NormalizeRoles(roles []string) []string {
	out := make([]string, 0, len(roles))
	seen := make(map[string]bool, len(roles))
	for _, role := range roles {
		r := strings.ToLower(strings.TrimSpace(role))
		if r == "" || seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}

// Dedupe returns values in input order with exact duplicates and blanks removed.
func Dedupe(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
