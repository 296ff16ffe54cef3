package types

// Default experience bounds applied when a project leaves them unset.
const (
	DefaultMinExperience = 0
	DefaultMaxExperience = 10
)

// Target represents the project side of a match. Nil experience bounds mean
// the project did not constrain that side; use Bounds to read them.
type Target struct {
	ID             string    `json:"id" validate:"required"`
	OwnerID        string    `json:"owner_id,omitempty"`
	Title          string    `json:"title,omitempty"`
	Description    string    `json:"description,omitempty"`
	RequiredSkills []string  `json:"required_skills"`
	RequiredRoles  []string  `json:"required_roles"`
	MinExperience  *int      `json:"min_experience,omitempty"`
	MaxExperience  *int      `json:"max_experience,omitempty"`
	Timezone       string    `json:"timezone,omitempty"`
	ProjectType    string    `json:"project_type,omitempty"`
	Embedding      []float32 `json:"embedding,omitempty"`
}

// Bounds returns the accepted experience range, substituting the defaults
// for bounds the project left unset.
func (t *Target) Bounds() (minYears, maxYears int) {
	minYears, maxYears = DefaultMinExperience, DefaultMaxExperience
	if t.MinExperience != nil {
		minYears = *t.MinExperience
	}
	if t.MaxExperience != nil {
		maxYears = *t.MaxExperience
	}
	return minYears, maxYears
}

// Kind implements Embeddable.
func (t *Target) Kind() RecordKind { return KindTarget }

// RecordID implements Embeddable.
func (t *Target) RecordID() string { return t.ID }

// CurrentEmbedding implements Embeddable.
func (t *Target) CurrentEmbedding() []float32 { return t.Embedding }

// SetEmbedding implements Embeddable.
func (t *Target) SetEmbedding(vec []float32) { t.Embedding = vec }

// TeammateRequest describes a user looking for collaborators on an idea.
type TeammateRequest struct {
	ID               string    `json:"id"`
	ProjectIdea      string    `json:"project_idea,omitempty"`
	LookingForRoles  []string  `json:"looking_for_roles,omitempty"`
	LookingForSkills []string  `json:"looking_for_skills,omitempty"`
	Embedding        []float32 `json:"embedding,omitempty"`
}

// Kind implements Embeddable.
func (r *TeammateRequest) Kind() RecordKind { return KindTeammateRequest }

// RecordID implements Embeddable.
func (r *TeammateRequest) RecordID() string { return r.ID }

// CurrentEmbedding implements Embeddable.
func (r *TeammateRequest) CurrentEmbedding() []float32 { return r.Embedding }

// SetEmbedding implements Embeddable.
func (r *TeammateRequest) SetEmbedding(vec []float32) { r.Embedding = vec }
