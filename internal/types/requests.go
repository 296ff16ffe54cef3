package types

import (
	"github.com/go-playground/validator/v10"
)

// Decision actions a user can take on a ranked project.
const (
	ActionMatch = "match"
	ActionPass  = "pass"
)

// Decision is a user's match/pass action on a project.
type Decision struct {
	UserID    string `json:"user_id" validate:"required"`
	ProjectID string `json:"project_id" validate:"required"`
	Action    string `json:"action" validate:"required,oneof=match pass"`
}

// ScoreRequest scores one profile against one project.
type ScoreRequest struct {
	Profile *Profile `json:"profile" validate:"required"`
	Target  *Target  `json:"target" validate:"required"`
}

// RankTargetsRequest ranks projects for one profile.
type RankTargetsRequest struct {
	Profile *Profile  `json:"profile" validate:"required"`
	Targets []*Target `json:"targets" validate:"required,dive,required"`
	TopK    int       `json:"top_k,omitempty" validate:"gte=0,lte=200"`
}

// RankCandidatesRequest ranks profiles for one project.
type RankCandidatesRequest struct {
	Target     *Target    `json:"target" validate:"required"`
	Candidates []*Profile `json:"candidates" validate:"required,dive,required"`
	TopK       int        `json:"top_k,omitempty" validate:"gte=0,lte=200"`
}

// ExtractSkillsRequest asks for taxonomy skills found in free text.
type ExtractSkillsRequest struct {
	Text string `json:"text" validate:"required,min=1"`
}

// ExtractSkillsResponse lists taxonomy hits for a text.
type ExtractSkillsResponse struct {
	SkillsByCategory map[string][]string `json:"skills_by_category"`
	AllSkills        []string            `json:"all_skills"`
	Roles            []string            `json:"roles"`
}

// DecisionRequest is the body of a decision call; user and project come from the route.
type DecisionRequest struct {
	Action string `json:"action" validate:"required,oneof=match pass"`
}

// Validate validates the Decision using the validator.
func (d *Decision) Validate() error {
	validate := validator.New()
	return validate.Struct(d)
}

// Validate validates the ScoreRequest using the validator.
func (r *ScoreRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the RankTargetsRequest using the validator.
func (r *RankTargetsRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the RankCandidatesRequest using the validator.
func (r *RankCandidatesRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ExtractSkillsRequest using the validator.
func (r *ExtractSkillsRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the DecisionRequest using the validator.
func (r *DecisionRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
