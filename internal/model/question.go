package model

// Tier identifies a phase of the assessment
type Tier string

const (
	TierGeneral      Tier = "general"      // Broad screening across all domains
	TierPersonalized Tier = "personalized" // Adaptive, domain-focused
	TierSubject      Tier = "subject"      // Subject-focused
)

// Option is one answer choice with its weight map. Weights are
// non-negative signal strengths keyed by raw domain or subject name.
type Option struct {
	Text    string             `json:"text" bson:"text"`
	Weights map[string]float64 `json:"weights" bson:"weights"`
}

// Question is an immutable bank entry supplied by the question source.
// The engine only requires Options[].Weights numerically and tolerates
// extra fields.
type Question struct {
	ID        string   `json:"id" bson:"_id,omitempty"`
	Text      string   `json:"text" bson:"text"`
	Options   []Option `json:"options" bson:"options"`
	Tier      Tier     `json:"tier" bson:"tier"`
	Domain    string   `json:"domain,omitempty" bson:"domain,omitempty"`   // personalized-tier bank key
	Subject   string   `json:"subject,omitempty" bson:"subject,omitempty"` // subject-tier bank key
	ImagePath string   `json:"imagePath,omitempty" bson:"imagePath,omitempty"`
}
