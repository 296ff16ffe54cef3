package schemas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ScoreRequest(t *testing.T) {
	doc := `{
		"profile": {"id": "u1", "skills": ["python"], "experience_years": 3},
		"target": {"id": "p1", "required_skills": ["python", "go"]}
	}`
	assert.NoError(t, Validate(ScoreRequest, []byte(doc)))
}

func TestValidate_MalformedExperienceAccepted(t *testing.T) {
	doc := `{"id": "u1", "experience_years": "ten-ish"}`
	assert.NoError(t, Validate(Profile, []byte(doc)))
}

func TestValidate_MissingRequiredField(t *testing.T) {
	doc := `{"profile": {"id": "u1"}}`

	err := Validate(ScoreRequest, []byte(doc))
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, ScoreRequest, ve.Schema)
	require.NotEmpty(t, ve.Errors)
	assert.Equal(t, "(root)", ve.Errors[0].Field)
}

func TestValidate_NestedWrongType(t *testing.T) {
	doc := `{
		"target": {"id": "p1"},
		"candidates": [{"id": "u1", "skills": "python"}]
	}`

	err := Validate(RankCandidatesRequest, []byte(doc))

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "candidates.0.skills", ve.Errors[0].Field)
}

func TestValidate_TopKBounds(t *testing.T) {
	doc := `{"profile": {"id": "u1"}, "targets": [], "top_k": 500}`

	var ve *ValidationError
	require.ErrorAs(t, Validate(RankTargetsRequest, []byte(doc)), &ve)
	assert.Equal(t, "top_k", ve.Errors[0].Field)
}

func TestValidate_Matches(t *testing.T) {
	doc := `{"matches": [{"target_id": "p1", "score": 0.7, "reasons": [], "shared_skills": ["python"], "complementary_skills": []}], "skipped": 1}`
	assert.NoError(t, Validate(Matches, []byte(doc)))

	bad := `{"matches": [{"target_id": "p1", "score": 1.5, "reasons": [], "shared_skills": [], "complementary_skills": []}], "skipped": 0}`
	assert.Error(t, Validate(Matches, []byte(bad)))
}

func TestValidate_TeammateRequest(t *testing.T) {
	good := `{"id": "r1", "project_idea": "Study planner", "looking_for_roles": ["frontend"], "looking_for_skills": ["react"]}`
	assert.NoError(t, Validate(TeammateRequest, []byte(good)))

	var ve *ValidationError
	require.ErrorAs(t, Validate(TeammateRequest, []byte(`{"id": "r1", "looking_for_skills": "react"}`)), &ve)
	assert.Equal(t, "looking_for_skills", ve.Errors[0].Field)
}

func TestValidate_TargetNullBounds(t *testing.T) {
	doc := `{"id": "p1", "min_experience": null, "max_experience": null}`
	assert.NoError(t, Validate(Target, []byte(doc)))
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("nope.schema.json", []byte(`{}`))

	var le *SchemaLoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "nope.schema.json", le.Path)
}

func TestValidate_MalformedDocument(t *testing.T) {
	assert.Error(t, Validate(Profile, []byte(`{"id": `)))
}

func TestValidateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "target.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"id": "p1", "min_experience": 1}`), 0644))

	assert.NoError(t, ValidateFile(Target, path))
	assert.Error(t, ValidateFile(Target, filepath.Join(t.TempDir(), "missing.json")))
}

func TestValidate_ReportsFieldPath(t *testing.T) {
	var ve *ValidationError
	require.ErrorAs(t, Validate(Target, []byte(`{"id": 1}`)), &ve)
	assert.Equal(t, Target, ve.Schema)
	require.NotEmpty(t, ve.Errors)
	assert.Equal(t, "id", ve.Errors[0].Field)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Schema: Profile,
		Errors: []FieldError{{Field: "id", Message: "id is required"}},
	}
	assert.Contains(t, err.Error(), "profile.schema.json validation failed")
	assert.Contains(t, err.Error(), "1. id: id is required")
}
