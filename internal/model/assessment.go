package model

import "time"

// Trend describes the direction of a domain's recent performance
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
	TrendUnknown   Trend = "unknown"
)

// RecentWindowSize is the number of most recent outcomes tracked per domain
const RecentWindowSize = 5

// DomainState is the per-domain slice of an adaptive session. The pool
// is pre-shuffled at session start; Cursor is the index of the next
// question to serve, so exhaustion is a single comparison.
type DomainState struct {
	Domain         string     `json:"domain"`
	Attempts       int        `json:"attempts"`
	Correct        int        `json:"correct"`
	Accuracy       float64    `json:"accuracy"`
	Confidence     float64    `json:"confidence"`
	Trend          Trend      `json:"trend"`
	ShouldContinue bool       `json:"shouldContinue"`
	RawScore       float64    `json:"rawScore"`
	Recent         []int      `json:"recent"` // last 5 outcomes, 1 = correct
	Pool           []Question `json:"pool"`
	Cursor         int        `json:"cursor"`
}

// Exhausted reports whether the pool has no questions left to serve
func (d *DomainState) Exhausted() bool {
	return d.Cursor >= len(d.Pool)
}

// AdaptiveState is the whole mutable state of one personalized-tier
// session. Exactly one in-flight session owns it; it is serialized
// between requests and destroyed when the session ends.
type AdaptiveState struct {
	SessionID     string                  `json:"sessionId"`
	DomainOrder   []string                `json:"domainOrder"` // supplied order, used for tie-breaks
	Domains       map[string]*DomainState `json:"domains"`
	PendingDomain string                  `json:"pendingDomain"` // domain of the question awaiting an answer
}

// Active reports whether any domain can still receive questions
func (s *AdaptiveState) Active() bool {
	for _, d := range s.Domains {
		if d.ShouldContinue {
			return true
		}
	}
	return false
}

// DomainCompetency is the per-domain output of the adaptive tier
type DomainCompetency struct {
	Domain          string  `json:"domain" bson:"domain"`
	Accuracy        float64 `json:"accuracy" bson:"accuracy"`
	Attempts        int     `json:"attempts" bson:"attempts"`
	SkillCompetency float64 `json:"skillCompetency" bson:"skillCompetency"`
}

// SessionStage tracks how far a session has progressed
type SessionStage string

const (
	StageGeneral      SessionStage = "general"
	StagePersonalized SessionStage = "personalized"
	StageSubject      SessionStage = "subject"
	StageComplete     SessionStage = "complete"
)

// AssessmentSession is the per-user in-flight assessment, held in the
// session cache between requests.
type AssessmentSession struct {
	ID              string         `json:"id"`
	UserID          string         `json:"userId"`
	Stage           SessionStage   `json:"stage"`
	GeneralAnswers  []Answer       `json:"generalAnswers"`
	SelectedDomains []string       `json:"selectedDomains,omitempty"`
	ChosenSubjects  []string       `json:"chosenSubjects,omitempty"`
	SubjectAnswers  []Answer       `json:"subjectAnswers,omitempty"`
	Adaptive        *AdaptiveState `json:"adaptive,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}
