// Package parsing normalizes skill tokens and maps free text onto the skill taxonomy.
package parsing

import (
	"sort"
	"strings"
)

// Canonical is the taxonomy entry a synonym resolves to.
type Canonical struct {
	Skill    string
	Category string
}

// skillTaxonomy maps category -> canonical skill -> known spellings.
var skillTaxonomy = map[string]map[string][]string{
	"frontend": {
		"react":      {"react", "reactjs", "react.js", "react js"},
		"javascript": {"javascript", "js"},
		"html":       {"html", "html5"},
		"css":        {"css", "scss", "sass"},
		"tailwind":   {"tailwind", "tailwindcss", "tailwind css"},
		"vue":        {"vue", "vuejs", "vue.js"},
		"angular":    {"angular", "angularjs"},
		"typescript": {"typescript", "ts"},
	},
	"backend": {
		"python":  {"python", "python3"},
		"fastapi": {"fastapi", "fast api"},
		"flask":   {"flask"},
		"django":  {"django"},
		"nodejs":  {"node", "nodejs", "node.js", "node js"},
		"express": {"express", "expressjs", "express.js"},
		"java":    {"java"},
		"csharp":  {"c#", "csharp", ".net", "dotnet"},
		"go":      {"golang", "go"},
		"rust":    {"rust"},
	},
	"ml_ai": {
		"pytorch":      {"pytorch", "torch"},
		"tensorflow":   {"tensorflow", "tf", "keras"},
		"sklearn":      {"scikit-learn", "sklearn", "scikit learn"},
		"nlp":          {"nlp", "natural language processing"},
		"cv":           {"computer vision", "opencv", "cv"},
		"transformers": {"transformers", "bert", "gpt", "llm", "huggingface"},
		"pandas":       {"pandas"},
		"numpy":        {"numpy"},
	},
	"data": {
		"sql":           {"sql", "mysql", "postgres", "postgresql"},
		"mongodb":       {"mongo", "mongodb"},
		"elasticsearch": {"elasticsearch", "elastic"},
		"redis":         {"redis"},
	},
	"devops": {
		"docker":     {"docker", "dockerfile"},
		"kubernetes": {"kubernetes", "k8s"},
		"aws":        {"aws", "amazon web services", "ec2", "s3"},
		"gcp":        {"gcp", "google cloud", "gcloud"},
		"azure":      {"azure", "microsoft azure"},
		"cicd":       {"ci/cd", "jenkins", "github actions"},
	},
}

// rolePatterns maps a role tag to phrases that indicate it.
var rolePatterns = map[string][]string{
	"frontend":    {"frontend", "front end", "front-end", "ui developer", "ui engineer"},
	"backend":     {"backend", "backend engineer", "api developer", "back end", "back-end"},
	"fullstack":   {"fullstack", "full-stack", "full stack"},
	"ml_engineer": {"machine learning", "ml engineer", "data scientist", "ai engineer"},
	"devops":      {"devops", "sre", "site reliability", "infrastructure"},
	"mobile":      {"mobile developer", "android", "ios", "react native", "flutter"},
}

// synonymIndex is the reverse index: normalized synonym -> canonical entry.
var synonymIndex = buildSynonymIndex(skillTaxonomy)

// synonymKeys holds the index keys in sorted order so extraction is deterministic.
var synonymKeys = sortedKeys(synonymIndex)

func buildSynonymIndex(taxonomy map[string]map[string][]string) map[string]Canonical {
	index := make(map[string]Canonical)
	categories := make([]string, 0, len(taxonomy))
	for category := range taxonomy {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for _, category := range categories {
		for canonical, synonyms := range taxonomy[category] {
			for _, synonym := range synonyms {
				key := normalizeText(synonym)
				if key == "" {
					continue
				}
				index[key] = Canonical{Skill: canonical, Category: category}
			}
		}
	}
	return index
}

func sortedKeys(index map[string]Canonical) []string {
	keys := make([]string, 0, len(index))
	for k := range index {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Lookup resolves a raw skill spelling to its canonical taxonomy entry.
func Lookup(raw string) (Canonical, bool) {
	c, ok := synonymIndex[normalizeText(raw)]
	return c, ok
}

// ExtractSkills scans free text for every known synonym and returns the
// canonical skills found, grouped by category and sorted.
//
// Matching is a substring test against the normalized text, so short
// synonyms such as "go" or "ts" can match inside longer words.
func ExtractSkills(text string) map[string][]string {
	normalized := normalizeText(text)
	found := make(map[string]map[string]bool)

	for _, key := range synonymKeys {
		if !strings.Contains(normalized, key) {
			continue
		}
		c, _ := Lookup(key)
		if found[c.Category] == nil {
			found[c.Category] = make(map[string]bool)
		}
		found[c.Category][c.Skill] = true
	}

	result := make(map[string][]string, len(found))
	for category, skills := range found {
		list := make([]string, 0, len(skills))
		for s := range skills {
			list = append(list, s)
		}
		sort.Strings(list)
		result[category] = list
	}
	return result
}

// FlattenSkills returns the sorted union of all categories.
func FlattenSkills(byCategory map[string][]string) []string {
	set := make(map[string]bool)
	for _, skills := range byCategory {
		for _, s := range skills {
			set[s] = true
		}
	}
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// ExtractRoles returns the sorted role tags whose phrases appear in the text.
func ExtractRoles(text string) []string {
	lower := strings.ToLower(text)
	roles := make([]string, 0)
	for role, patterns := range rolePatterns {
		for _, pattern := range patterns {
			if strings.Contains(lower, pattern) {
				roles = append(roles, role)
				break
			}
		}
	}
	sort.Strings(roles)
	return roles
}
