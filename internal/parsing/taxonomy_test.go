package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		raw      string
		skill    string
		category string
	}{
		{"React.js", "react", "frontend"},
		{"react js", "react", "frontend"},
		{"Golang", "go", "backend"},
		{"K8s", "kubernetes", "devops"},
		{"Scikit-Learn", "sklearn", "ml_ai"},
		{"PostgreSQL", "sql", "data"},
		{"C#", "csharp", "backend"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			c, ok := Lookup(tt.raw)
			require.True(t, ok)
			assert.Equal(t, tt.skill, c.Skill)
			assert.Equal(t, tt.category, c.Category)
		})
	}

	_, ok := Lookup("cobol")
	assert.False(t, ok)
}

func TestExtractSkills(t *testing.T) {
	text := `Technical Skills:
React.js, TypeScript, Tailwind CSS, Python, FastAPI, Docker, Kubernetes, PyTorch, Postgres`

	got := ExtractSkills(text)

	assert.Contains(t, got["frontend"], "react")
	assert.Contains(t, got["frontend"], "typescript")
	assert.Contains(t, got["frontend"], "tailwind")
	assert.Contains(t, got["backend"], "python")
	assert.Contains(t, got["backend"], "fastapi")
	assert.Contains(t, got["devops"], "docker")
	assert.Contains(t, got["devops"], "kubernetes")
	assert.Contains(t, got["ml_ai"], "pytorch")
	assert.Contains(t, got["data"], "sql")

	for _, skills := range got {
		assert.IsNonDecreasing(t, skills)
	}
}

func TestExtractSkills_Empty(t *testing.T) {
	assert.Empty(t, ExtractSkills(""))
}

func TestFlattenSkills(t *testing.T) {
	got := FlattenSkills(map[string][]string{
		"backend":  {"python", "go"},
		"frontend": {"react"},
		"other":    {"go"},
	})
	assert.Equal(t, []string{"go", "python", "react"}, got)
}

func TestExtractRoles(t *testing.T) {
	got := ExtractRoles("Senior Full-Stack Developer, previously an ML Engineer and SRE")
	assert.Equal(t, []string{"devops", "fullstack", "ml_engineer"}, got)

	assert.Empty(t, ExtractRoles("accountant"))
}
