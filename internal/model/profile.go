package model

import "time"

// GeneralInference is the persisted outcome of the general tier
type GeneralInference struct {
	Scores          DomainScoreSet `json:"scores" bson:"scores"`
	RankedDomains   []string       `json:"rankedDomains" bson:"rankedDomains"`
	SelectedDomains []string       `json:"selectedDomains" bson:"selectedDomains"`
	CompletedAt     time.Time      `json:"completedAt" bson:"completedAt"`
}

// SubjectInference is the persisted outcome of the subject tier
type SubjectInference struct {
	Scores      map[string]float64 `json:"scores" bson:"scores"`
	CompletedAt time.Time          `json:"completedAt" bson:"completedAt"`
}

// PersonalizedInference is the persisted outcome of the adaptive tier
type PersonalizedInference struct {
	Competencies map[string]DomainCompetency `json:"competencies" bson:"competencies"`
	CompletedAt  time.Time                   `json:"completedAt" bson:"completedAt"`
}

// CareerSuggestions is the persisted recommendation run
type CareerSuggestions struct {
	Recommendations []CareerRecommendation `json:"recommendations" bson:"recommendations"`
	ReasonCode      string                 `json:"reasonCode,omitempty" bson:"reasonCode,omitempty"`
	GeneratedAt     time.Time              `json:"generatedAt" bson:"generatedAt"`
}

// Profile is the per-user document in the profile store. Sections are
// merged in independently as tiers complete; any subset may be present.
type Profile struct {
	UserID       string                 `json:"userId" bson:"_id"`
	General      *GeneralInference      `json:"generalQuizInferences,omitempty" bson:"general_quiz_inferences,omitempty"`
	Subject      *SubjectInference      `json:"subjectQuizInferences,omitempty" bson:"subject_quiz_inferences,omitempty"`
	Personalized *PersonalizedInference `json:"personalizedQuizInferences,omitempty" bson:"personalized_quiz_inferences,omitempty"`
	Career       *CareerSuggestions     `json:"careerSuggestions,omitempty" bson:"career_suggestions,omitempty"`
}

// PresentSections reports which of the four inference keys the profile
// holds, for resuming progress.
func (p *Profile) PresentSections() []string {
	var keys []string
	if p.General != nil {
		keys = append(keys, "general_quiz_inferences")
	}
	if p.Subject != nil {
		keys = append(keys, "subject_quiz_inferences")
	}
	if p.Personalized != nil {
		keys = append(keys, "personalized_quiz_inferences")
	}
	if p.Career != nil {
		keys = append(keys, "career_suggestions")
	}
	return keys
}
