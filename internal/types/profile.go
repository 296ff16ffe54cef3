// Package types provides type definitions for structured data used throughout the teammatch system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// RecordKind identifies which text builder an embeddable record uses.
type RecordKind string

const (
	KindProfile         RecordKind = "profile"
	KindTarget          RecordKind = "target"
	KindTeammateRequest RecordKind = "teammate_request"
)

// Embeddable is implemented by every record that can carry an embedding.
type Embeddable interface {
	Kind() RecordKind
	RecordID() string
	CurrentEmbedding() []float32
	SetEmbedding(vec []float32)
}

// Profile represents the candidate side of a match: a user or a parsed resume.
type Profile struct {
	ID              string            `json:"id"`
	Roles           []string          `json:"roles"`
	Skills          []string          `json:"skills"`
	ExperienceYears Years             `json:"experience_years"`
	Timezone        string            `json:"timezone,omitempty"`
	Bio             string            `json:"bio,omitempty"`
	Interests       []string          `json:"interests,omitempty"`
	ProjectTypes    []string          `json:"project_types,omitempty"`
	Hackathons      *HackathonSummary `json:"hackathons,omitempty"`
	Embedding       []float32         `json:"embedding,omitempty"`
}

// Kind implements Embeddable.
func (p *Profile) Kind() RecordKind { return KindProfile }

// RecordID implements Embeddable.
func (p *Profile) RecordID() string { return p.ID }

// CurrentEmbedding implements Embeddable.
func (p *Profile) CurrentEmbedding() []float32 { return p.Embedding }

// SetEmbedding implements Embeddable.
func (p *Profile) SetEmbedding(vec []float32) { p.Embedding = vec }

// HackathonSummary holds hackathon history derived from a resume.
type HackathonSummary struct {
	TotalHackathons int           `json:"total_hackathons"`
	Wins            HackathonWins `json:"wins_breakdown"`
	// Score is first*10 + second*7 + third*5 + finalist*3 + participant.
	Score int `json:"hackathon_score"`
}

// HackathonWins counts hackathon placements.
type HackathonWins struct {
	First       int `json:"first"`
	Second      int `json:"second"`
	Third       int `json:"third"`
	Finalist    int `json:"finalist"`
	Participant int `json:"participant"`
}

// HasExperience reports whether any hackathon was recorded.
func (h *HackathonSummary) HasExperience() bool {
	return h != nil && h.TotalHackathons > 0
}

// WeightedScore recomputes Score from the placement breakdown.
func (w HackathonWins) WeightedScore() int {
	return w.First*10 + w.Second*7 + w.Third*5 + w.Finalist*3 + w.Participant
}
