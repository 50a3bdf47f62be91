package service

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"disha/internal/config"
	"disha/internal/model"
)

// Literal fallback lines used when no skill qualifies for an
// explanation bucket.
const (
	fallbackStrength   = "Strong motivation to explore this field"
	fallbackGrowthArea = "Develop foundational skills through the course curriculum"
)

// FitInput carries everything known about the user at recommendation
// time. Subjects and the score maps are optional; the analyzer
// degrades to neutral scores for what is missing.
type FitInput struct {
	Interests     []string
	Skills        []string
	Subjects      []string
	SubjectScores map[string]float64
	DomainScores  model.DomainScoreSet
	Competencies  map[string]model.DomainCompetency
}

// CareerService scores courses against a user profile on three
// independent axes and ranks the results.
type CareerService struct {
	cfg *config.EngineConfig
}

// NewCareerService creates a new career service
func NewCareerService(cfg *config.EngineConfig) *CareerService {
	return &CareerService{cfg: cfg}
}

// Analyze scores a single course. The overall fit is the fixed
// weighted blend of the three axes; every sub-score is clamped to
// 0-100 before blending.
func (s *CareerService) Analyze(course model.Course, input FitInput) model.CareerRecommendation {
	interest := s.interestAlignment(course, input)
	aptitude := s.aptitudeMatch(course, input)
	subject := s.subjectRelevance(course, input)
	confidence := s.confidenceLevel(course, input)

	overall := int(math.Round(0.35*interest + 0.40*aptitude + 0.25*subject))

	return model.CareerRecommendation{
		Course:            course,
		OverallFitScore:   overall,
		InterestAlignment: interest,
		AptitudeMatch:     aptitude,
		SubjectRelevance:  subject,
		ConfidenceLevel:   confidence,
		Tier:              s.classify(overall, confidence),
		Explanation:       s.explain(course, input),
	}
}

// Rank analyzes every course, keeps those at or above the fit floor,
// sorts descending, and assigns dense 1-based ranking positions. An
// empty result carries a reason code instead of being an error.
func (s *CareerService) Rank(courses []model.Course, input FitInput) ([]model.CareerRecommendation, string) {
	if len(courses) == 0 {
		return nil, model.ReasonNoCatalog
	}

	var recs []model.CareerRecommendation
	for _, course := range courses {
		rec := s.Analyze(course, input)
		if rec.OverallFitScore >= s.cfg.FitFloor {
			recs = append(recs, rec)
		}
	}
	if len(recs) == 0 {
		return nil, model.ReasonNoCoursesAboveFloor
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].OverallFitScore > recs[j].OverallFitScore
	})
	for i := range recs {
		recs[i].RankingPosition = i + 1
	}
	return recs, ""
}

// interestAlignment rewards overlap between the course's skill labels
// and the user's interest list, weighting earlier interests more.
func (s *CareerService) interestAlignment(course model.Course, input FitInput) float64 {
	if len(course.SkillLabels) == 0 || len(input.Interests) == 0 {
		return 0
	}
	total := 0.0
	for _, label := range course.SkillLabels {
		if idx := indexOfLabel(input.Interests, label); idx >= 0 {
			total += float64(len(input.Interests) - idx)
		}
	}
	if total == 0 {
		return 0
	}
	score := total / float64(len(course.SkillLabels)*len(input.Interests)) * 100
	score *= 2 // boost factor
	return math.Min(score, 100)
}

// aptitudeMatch scores the fraction of course skills the user brings,
// with a step bonus for multiple matches. A declared interest counts
// as bringing the skill; the assessment tiers refine it later.
func (s *CareerService) aptitudeMatch(course model.Course, input FitInput) float64 {
	if len(course.SkillLabels) == 0 {
		return 0
	}
	matched := 0
	for _, label := range course.SkillLabels {
		if indexOfLabel(input.Skills, label) >= 0 || indexOfLabel(input.Interests, label) >= 0 {
			matched++
		}
	}
	score := float64(matched) / float64(len(course.SkillLabels)) * 80
	switch {
	case matched >= 3:
		score += 20
	case matched >= 2:
		score += 10
	case matched >= 1:
		score += 5
	}
	return math.Min(score, 100)
}

// subjectRelevance is neutral (50) without declared subjects, low (20)
// on a mismatch, and 80 plus up to 20 performance-scaled points on a
// match.
func (s *CareerService) subjectRelevance(course model.Course, input FitInput) float64 {
	if course.SubjectInterest == "" || len(input.Subjects) == 0 {
		return 50
	}
	courseSubject := NormalizeSubject(course.SubjectInterest)
	match := false
	for _, sub := range input.Subjects {
		if NormalizeSubject(sub) == courseSubject {
			match = true
			break
		}
	}
	if !match {
		return 20
	}
	if len(input.SubjectScores) == 0 {
		return 80
	}
	maxScore := 1.0
	for _, v := range input.SubjectScores {
		if v > maxScore {
			maxScore = v
		}
	}
	return math.Min(80+20*(input.SubjectScores[courseSubject]/maxScore), 100)
}

// confidenceLevel reflects how much was known about the user when the
// recommendation was produced, not how good the fit is.
func (s *CareerService) confidenceLevel(course model.Course, input FitInput) float64 {
	confidence := 40.0
	if len(input.Interests) >= 3 {
		confidence += 20
	}
	if len(input.Skills) >= 2 {
		confidence += 20
	}
	if len(input.Subjects) >= 1 {
		confidence += 15
	}
	if len(course.SkillLabels) >= 3 {
		confidence += 5
	}
	return math.Min(confidence, 100)
}

// classify buckets a recommendation. The backup_option branch cannot
// be reached through Rank because of the 75-point floor; it is kept
// because Analyze is also callable on its own.
func (s *CareerService) classify(fit int, confidence float64) model.RecommendationTier {
	if confidence >= 70 {
		switch {
		case fit >= 90:
			return model.TierPerfectMatch
		case fit >= 85:
			return model.TierStrongCandidate
		case fit >= 80:
			return model.TierGrowthOpportunity
		case fit >= 75:
			return model.TierAlternativePath
		default:
			return model.TierBackupOption
		}
	}
	switch {
	case fit >= 85:
		return model.TierStrongCandidate
	case fit >= 80:
		return model.TierGrowthOpportunity
	case fit >= 75:
		return model.TierAlternativePath
	default:
		return model.TierBackupOption
	}
}

// explain classifies each course skill into a strength or growth area
// from the user's interests, skills, and measured competency.
func (s *CareerService) explain(course model.Course, input FitInput) model.Explanation {
	var exp model.Explanation
	for _, label := range course.SkillLabels {
		hasInterest := indexOfLabel(input.Interests, label) >= 0
		hasSkill := indexOfLabel(input.Skills, label) >= 0
		competency, measured := s.competencyFor(input, label)

		switch {
		case hasInterest && hasSkill && measured && competency >= 0.6:
			exp.Strengths = append(exp.Strengths,
				fmt.Sprintf("Proven ability in %s backed by your assessment results", label))
		case hasInterest:
			exp.GrowthAreas = append(exp.GrowthAreas,
				fmt.Sprintf("Build on your interest in %s with structured practice", label))
		case hasSkill:
			exp.Strengths = append(exp.Strengths,
				fmt.Sprintf("Your %s skills are a foundation to build on", label))
		}
	}

	if note := s.subjectGrowthNote(course, input); note != "" {
		exp.GrowthAreas = append(exp.GrowthAreas, note)
	}

	if len(exp.Strengths) == 0 {
		exp.Strengths = []string{fallbackStrength}
	}
	if len(exp.GrowthAreas) == 0 {
		exp.GrowthAreas = []string{fallbackGrowthArea}
	}
	return exp
}

// subjectGrowthNote fires when the course's subject shows real
// interest signal but no matching skill backs it up.
func (s *CareerService) subjectGrowthNote(course model.Course, input FitInput) string {
	if course.SubjectInterest == "" || len(input.SubjectScores) == 0 {
		return ""
	}
	subject := NormalizeSubject(course.SubjectInterest)
	maxScore := 1.0
	for _, v := range input.SubjectScores {
		if v > maxScore {
			maxScore = v
		}
	}
	if input.SubjectScores[subject]/maxScore <= 0.3 {
		return ""
	}
	if indexOfLabel(input.Skills, subject) >= 0 {
		return ""
	}
	return fmt.Sprintf("Deepen your %s knowledge to unlock this path", subject)
}

// competencyFor resolves a skill label to its measured skill
// competency, if the adaptive tier covered that domain.
func (s *CareerService) competencyFor(input FitInput, label string) (float64, bool) {
	if len(input.Competencies) == 0 {
		return 0, false
	}
	if c, ok := input.Competencies[NormalizeDomain(label)]; ok {
		return c.SkillCompetency, true
	}
	return 0, false
}

// indexOfLabel finds a label in a list, comparing canonicalized domain
// names case-insensitively. Returns -1 when absent.
func indexOfLabel(list []string, label string) int {
	want := NormalizeDomain(label)
	for i, item := range list {
		if strings.EqualFold(NormalizeDomain(item), want) {
			return i
		}
	}
	return -1
}
