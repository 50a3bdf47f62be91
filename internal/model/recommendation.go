package model

// RecommendationTier buckets a recommendation by fit and confidence
type RecommendationTier string

const (
	TierPerfectMatch      RecommendationTier = "perfect_match"
	TierStrongCandidate   RecommendationTier = "strong_candidate"
	TierGrowthOpportunity RecommendationTier = "growth_opportunity"
	TierAlternativePath   RecommendationTier = "alternative_path"
	TierBackupOption      RecommendationTier = "backup_option"
)

// Explanation is the textual fit breakdown shown with a recommendation
type Explanation struct {
	Strengths   []string `json:"strengths" bson:"strengths"`
	GrowthAreas []string `json:"growthAreas" bson:"growthAreas"`
}

// CareerRecommendation is one scored course. Created fresh per run and
// never mutated after creation except for RankingPosition, which is
// assigned after sorting.
type CareerRecommendation struct {
	Course            Course             `json:"course" bson:"course"`
	OverallFitScore   int                `json:"overallFitScore" bson:"overallFitScore"` // 0-100
	InterestAlignment float64            `json:"interestAlignment" bson:"interestAlignment"`
	AptitudeMatch     float64            `json:"aptitudeMatch" bson:"aptitudeMatch"`
	SubjectRelevance  float64            `json:"subjectRelevance" bson:"subjectRelevance"`
	ConfidenceLevel   float64            `json:"confidenceLevel" bson:"confidenceLevel"`
	Tier              RecommendationTier `json:"recommendationTier" bson:"recommendationTier"`
	Explanation       Explanation        `json:"explanation" bson:"explanation"`
	RankingPosition   int                `json:"rankingPosition" bson:"rankingPosition"` // dense 1..N
}

// Reason codes for an empty recommendation list
const (
	ReasonNoCatalog           = "no_catalog"
	ReasonNoCoursesAboveFloor = "no_courses_above_threshold"
)
