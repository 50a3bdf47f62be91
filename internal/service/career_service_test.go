package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"disha/internal/config"
	"disha/internal/model"
)

func newCareer() *CareerService {
	return NewCareerService(config.DefaultEngineConfig())
}

func TestAnalyze_FullOverlap(t *testing.T) {
	svc := newCareer()
	course := model.Course{
		Name:        "B.Sc Mathematics",
		SkillLabels: []string{model.DomainMath, model.DomainAnalytical},
	}
	input := FitInput{
		Interests: []string{model.DomainMath, model.DomainAnalytical},
		Skills:    []string{model.DomainMath},
	}

	rec := svc.Analyze(course, input)

	assert.Greater(t, rec.InterestAlignment, 0.0)
	assert.GreaterOrEqual(t, rec.AptitudeMatch, 80.0)
	assert.Equal(t, 50.0, rec.SubjectRelevance) // no subject declared, neutral
	// round(0.35*100 + 0.40*90 + 0.25*50)
	assert.Equal(t, 84, rec.OverallFitScore)
}

func TestAnalyze_NoOverlap(t *testing.T) {
	svc := newCareer()
	course := model.Course{SkillLabels: []string{model.DomainSocial}}
	input := FitInput{Interests: []string{model.DomainMath}, Skills: []string{model.DomainMath}}

	rec := svc.Analyze(course, input)
	assert.Equal(t, 0.0, rec.InterestAlignment)
	assert.Equal(t, 0.0, rec.AptitudeMatch)
}

func TestAptitudeMatch_StepBonus(t *testing.T) {
	svc := newCareer()
	all := []string{model.DomainMath, model.DomainAnalytical, model.DomainProblem}

	tests := []struct {
		name   string
		skills []string
		want   float64
	}{
		{"three matches", all, 100}, // 3/3*80 + 20
		{"two matches", all[:2], 80*2.0/3 + 10},
		{"one match", all[:1], 80*1.0/3 + 5},
		{"no match", nil, 0},
	}

	course := model.Course{SkillLabels: all}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.aptitudeMatch(course, FitInput{Skills: tt.skills})
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestSubjectRelevance(t *testing.T) {
	svc := newCareer()

	tests := []struct {
		name   string
		course model.Course
		input  FitInput
		want   float64
	}{
		{
			name:   "no declared subjects is neutral",
			course: model.Course{SubjectInterest: model.SubjectPhysics},
			input:  FitInput{},
			want:   50,
		},
		{
			name:   "mismatch",
			course: model.Course{SubjectInterest: model.SubjectPhysics},
			input:  FitInput{Subjects: []string{model.SubjectArts}},
			want:   20,
		},
		{
			name:   "match without scores",
			course: model.Course{SubjectInterest: model.SubjectPhysics},
			input:  FitInput{Subjects: []string{"physics"}},
			want:   80,
		},
		{
			name:   "match scaled by relative performance",
			course: model.Course{SubjectInterest: model.SubjectPhysics},
			input: FitInput{
				Subjects:      []string{model.SubjectPhysics, model.SubjectChemistry},
				SubjectScores: map[string]float64{model.SubjectPhysics: 5, model.SubjectChemistry: 10},
			},
			want: 90, // 80 + 20*(5/10)
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, svc.subjectRelevance(tt.course, tt.input), 1e-9)
		})
	}
}

func TestClassify(t *testing.T) {
	svc := newCareer()

	tests := []struct {
		fit        int
		confidence float64
		want       model.RecommendationTier
	}{
		{92, 80, model.TierPerfectMatch},
		{87, 80, model.TierStrongCandidate},
		{82, 80, model.TierGrowthOpportunity},
		{76, 80, model.TierAlternativePath},
		{70, 80, model.TierBackupOption},
		{92, 50, model.TierStrongCandidate}, // low confidence caps the tier
		{82, 50, model.TierGrowthOpportunity},
		{76, 50, model.TierAlternativePath},
		{70, 50, model.TierBackupOption},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, svc.classify(tt.fit, tt.confidence),
			"fit=%d confidence=%.0f", tt.fit, tt.confidence)
	}
}

func TestRank_FiltersAndOrders(t *testing.T) {
	svc := newCareer()
	input := FitInput{
		Interests: []string{model.DomainMath, model.DomainAnalytical, model.DomainVisual},
		Skills:    []string{model.DomainMath, model.DomainAnalytical},
	}

	courses := []model.Course{
		{Name: "weak fit", SkillLabels: []string{model.DomainSocial}},
		{Name: "strong fit", SkillLabels: []string{model.DomainMath, model.DomainAnalytical}},
		{Name: "partial fit", SkillLabels: []string{model.DomainMath, model.DomainSocial}},
	}

	recs, reason := svc.Rank(courses, input)
	require.Empty(t, reason)
	require.NotEmpty(t, recs)

	for i, rec := range recs {
		assert.GreaterOrEqual(t, rec.OverallFitScore, 75)
		assert.Equal(t, i+1, rec.RankingPosition)
		if i > 0 {
			assert.LessOrEqual(t, rec.OverallFitScore, recs[i-1].OverallFitScore)
		}
	}
	assert.Equal(t, "strong fit", recs[0].Course.Name)
}

func TestRank_EmptyCatalog(t *testing.T) {
	svc := newCareer()
	recs, reason := svc.Rank(nil, FitInput{})
	assert.Nil(t, recs)
	assert.Equal(t, model.ReasonNoCatalog, reason)
}

func TestRank_NothingAboveFloor(t *testing.T) {
	svc := newCareer()
	courses := []model.Course{{Name: "unrelated", SkillLabels: []string{model.DomainSocial}}}
	input := FitInput{Interests: []string{model.DomainMath}}

	recs, reason := svc.Rank(courses, input)
	assert.Nil(t, recs)
	assert.Equal(t, model.ReasonNoCoursesAboveFloor, reason)
}

func TestConfidenceLevel(t *testing.T) {
	svc := newCareer()
	course := model.Course{SkillLabels: []string{"a", "b", "c"}}

	full := FitInput{
		Interests: []string{"a", "b", "c"},
		Skills:    []string{"a", "b"},
		Subjects:  []string{model.SubjectPhysics},
	}
	assert.Equal(t, 100.0, svc.confidenceLevel(course, full))

	assert.Equal(t, 40.0, svc.confidenceLevel(model.Course{}, FitInput{}))
}

func TestExplain(t *testing.T) {
	svc := newCareer()
	course := model.Course{
		SkillLabels: []string{model.DomainMath, model.DomainVisual},
	}
	input := FitInput{
		Interests: []string{model.DomainMath},
		Skills:    []string{model.DomainMath},
		Competencies: map[string]model.DomainCompetency{
			model.DomainMath: {Domain: model.DomainMath, SkillCompetency: 0.8},
		},
	}

	exp := svc.explain(course, input)
	require.Len(t, exp.Strengths, 1)
	assert.Contains(t, exp.Strengths[0], model.DomainMath)
	// the unmatched visual label produces no growth entry, so the
	// fallback fills in
	assert.Equal(t, []string{fallbackGrowthArea}, exp.GrowthAreas)
}

func TestExplain_Fallbacks(t *testing.T) {
	svc := newCareer()
	exp := svc.explain(model.Course{SkillLabels: []string{model.DomainSocial}}, FitInput{})
	assert.Equal(t, []string{fallbackStrength}, exp.Strengths)
	assert.Equal(t, []string{fallbackGrowthArea}, exp.GrowthAreas)
}
