package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecision_Validate(t *testing.T) {
	tests := []struct {
		name    string
		input   Decision
		wantErr bool
	}{
		{"match", Decision{UserID: "u", ProjectID: "p", Action: ActionMatch}, false},
		{"pass", Decision{UserID: "u", ProjectID: "p", Action: ActionPass}, false},
		{"unknown action", Decision{UserID: "u", ProjectID: "p", Action: "maybe"}, true},
		{"missing user", Decision{ProjectID: "p", Action: ActionMatch}, true},
		{"missing project", Decision{UserID: "u", Action: ActionPass}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRankTargetsRequest_Validate(t *testing.T) {
	valid := &RankTargetsRequest{
		Profile: &Profile{ID: "u1"},
		Targets: []*Target{&Target{ID: "p1"}},
		TopK:    5,
	}
	assert.NoError(t, valid.Validate())

	missingProfile := &RankTargetsRequest{Targets: []*Target{&Target{ID: "p1"}}}
	assert.Error(t, missingProfile.Validate())

	nilTarget := &RankTargetsRequest{Profile: &Profile{}, Targets: []*Target{nil}}
	assert.Error(t, nilTarget.Validate())

	targetWithoutID := &RankTargetsRequest{Profile: &Profile{}, Targets: []*Target{{}}}
	assert.Error(t, targetWithoutID.Validate())

	negativeTopK := &RankTargetsRequest{Profile: &Profile{}, Targets: []*Target{&Target{ID: "p1"}}, TopK: -1}
	assert.Error(t, negativeTopK.Validate())
}

func TestRankCandidatesRequest_Validate(t *testing.T) {
	valid := &RankCandidatesRequest{
		Target:     &Target{ID: "p1"},
		Candidates: []*Profile{{ID: "u1"}, {ID: "u2"}},
	}
	assert.NoError(t, valid.Validate())

	missingTarget := &RankCandidatesRequest{Candidates: []*Profile{{ID: "u1"}}}
	assert.Error(t, missingTarget.Validate())
}

func TestExtractSkillsRequest_Validate(t *testing.T) {
	assert.NoError(t, (&ExtractSkillsRequest{Text: "React and Go"}).Validate())
	assert.Error(t, (&ExtractSkillsRequest{}).Validate())
}

func TestDecisionRequest_Validate(t *testing.T) {
	assert.NoError(t, (&DecisionRequest{Action: ActionMatch}).Validate())
	assert.Error(t, (&DecisionRequest{Action: "like"}).Validate())
}
