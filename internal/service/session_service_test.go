package service

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"disha/internal/config"
	"disha/internal/model"
)

type memSessionCache struct {
	sessions map[string]*model.AssessmentSession
}

func (c *memSessionCache) Set(ctx context.Context, s *model.AssessmentSession) error {
	c.sessions[s.ID] = s
	return nil
}

func (c *memSessionCache) Get(ctx context.Context, id string) (*model.AssessmentSession, error) {
	return c.sessions[id], nil
}

func (c *memSessionCache) Delete(ctx context.Context, id string) error {
	delete(c.sessions, id)
	return nil
}

type memCatalogCache struct {
	courses []*model.Course
}

func (c *memCatalogCache) SetCourses(ctx context.Context, courses []*model.Course) error {
	c.courses = courses
	return nil
}

func (c *memCatalogCache) GetCourses(ctx context.Context) ([]*model.Course, error) {
	return c.courses, nil
}

func (c *memCatalogCache) Invalidate(ctx context.Context) error {
	c.courses = nil
	return nil
}

type memProfileRepo struct {
	profiles map[string]*model.Profile
}

func (r *memProfileRepo) get(userID string) *model.Profile {
	if r.profiles[userID] == nil {
		r.profiles[userID] = &model.Profile{UserID: userID}
	}
	return r.profiles[userID]
}

func (r *memProfileRepo) SetGeneral(ctx context.Context, userID string, inf *model.GeneralInference) error {
	r.get(userID).General = inf
	return nil
}

func (r *memProfileRepo) SetSubject(ctx context.Context, userID string, inf *model.SubjectInference) error {
	r.get(userID).Subject = inf
	return nil
}

func (r *memProfileRepo) SetPersonalized(ctx context.Context, userID string, inf *model.PersonalizedInference) error {
	r.get(userID).Personalized = inf
	return nil
}

func (r *memProfileRepo) SetCareer(ctx context.Context, userID string, sug *model.CareerSuggestions) error {
	r.get(userID).Career = sug
	return nil
}

func (r *memProfileRepo) Get(ctx context.Context, userID string) (*model.Profile, error) {
	return r.profiles[userID], nil
}

type memCourseRepo struct {
	courses []*model.Course
}

func (r *memCourseRepo) Create(ctx context.Context, c *model.Course) error {
	r.courses = append(r.courses, c)
	return nil
}

func (r *memCourseRepo) GetByID(ctx context.Context, id string) (*model.Course, error) {
	for _, c := range r.courses {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (r *memCourseRepo) GetAll(ctx context.Context) ([]*model.Course, error) {
	return r.courses, nil
}

func (r *memCourseRepo) GetByStream(ctx context.Context, stream string) ([]*model.Course, error) {
	var out []*model.Course
	for _, c := range r.courses {
		if c.Stream == stream {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memCourseRepo) Delete(ctx context.Context, id string) error { return nil }

// generalBank builds one single-option general question per raw key
func generalBank(rawKeys map[string]float64) []*model.Question {
	var questions []*model.Question
	for raw, weight := range rawKeys {
		questions = append(questions, &model.Question{
			ID:   "g-" + raw,
			Tier: model.TierGeneral,
			Options: []model.Option{
				{Text: "pick", Weights: map[string]float64{raw: weight}},
			},
		})
	}
	return questions
}

func newTestSessionService(questions *stubQuestionRepo, courses []*model.Course) (*SessionService, *memProfileRepo) {
	cfg := config.DefaultEngineConfig()
	adaptive := NewAdaptiveService(cfg, questions)
	adaptive.SetRand(rand.New(rand.NewSource(7)))

	profiles := &memProfileRepo{profiles: make(map[string]*model.Profile)}
	svc := NewSessionService(
		questions,
		&memCourseRepo{courses: courses},
		profiles,
		&memSessionCache{sessions: make(map[string]*model.AssessmentSession)},
		&memCatalogCache{},
		NewScorerService(cfg),
		adaptive,
		NewCareerService(cfg),
		NewAuthService("test-secret"),
	)
	return svc, profiles
}

// poolsWithGeneral merges a general bank into the per-domain pools so
// GetByID can resolve both tiers.
type fullBankRepo struct {
	stubQuestionRepo
	general []*model.Question
}

func (r *fullBankRepo) GetByTier(ctx context.Context, tier model.Tier) ([]*model.Question, error) {
	if tier == model.TierGeneral {
		return r.general, nil
	}
	return nil, nil
}

func (r *fullBankRepo) GetByID(ctx context.Context, id string) (*model.Question, error) {
	for _, q := range r.general {
		if q.ID == id {
			return q, nil
		}
	}
	return r.stubQuestionRepo.GetByID(ctx, id)
}

func TestSessionFlow(t *testing.T) {
	ctx := context.Background()

	general := generalBank(map[string]float64{
		"math":       10,
		"analytical": 7,
		"visual":     4,
		"social":     1,
	})
	repo := &fullBankRepo{
		stubQuestionRepo: stubQuestionRepo{pools: map[string][]*model.Question{
			model.DomainMath:       bank(model.DomainMath, "math", 50),
			model.DomainAnalytical: bank(model.DomainAnalytical, "analytical", 50),
			model.DomainVisual:     bank(model.DomainVisual, "visual", 50),
		}},
		general: general,
	}
	courses := []*model.Course{
		{ID: "c1", Name: "B.Sc Mathematics", SkillLabels: []string{model.DomainMath, model.DomainAnalytical}},
		{ID: "c2", Name: "BA Sociology", SkillLabels: []string{model.DomainSocial}},
	}

	cfg := config.DefaultEngineConfig()
	adaptive := NewAdaptiveService(cfg, repo)
	adaptive.SetRand(rand.New(rand.NewSource(7)))
	profiles := &memProfileRepo{profiles: make(map[string]*model.Profile)}
	svc := NewSessionService(
		repo,
		&memCourseRepo{courses: courses},
		profiles,
		&memSessionCache{sessions: make(map[string]*model.AssessmentSession)},
		&memCatalogCache{},
		NewScorerService(cfg),
		adaptive,
		NewCareerService(cfg),
		NewAuthService("test-secret"),
	)

	start, err := svc.Start(ctx, "user-1")
	require.NoError(t, err)
	require.NotEmpty(t, start.SessionID)
	require.NotEmpty(t, start.Token)

	// general tier: answer every bank question
	var reqs []model.SubmitAnswerRequest
	for _, q := range general {
		reqs = append(reqs, model.SubmitAnswerRequest{QuestionID: q.ID, OptionIndex: 0})
	}
	inference, err := svc.SubmitGeneral(ctx, start.SessionID, reqs)
	require.NoError(t, err)
	assert.Equal(t, []string{model.DomainMath, model.DomainAnalytical, model.DomainVisual, model.DomainSocial}, inference.RankedDomains)
	// gaps 3 and 3 are even, so the third domain joins the tier
	assert.Equal(t, []string{model.DomainMath, model.DomainAnalytical, model.DomainVisual}, inference.SelectedDomains)

	// personalized tier: always answer correctly until the tier ends
	done := false
	for i := 0; !done; i++ {
		require.Less(t, i, 200, "personalized tier never finished")
		q, finished, err := svc.NextQuestion(ctx, start.SessionID)
		require.NoError(t, err)
		if finished {
			done = true
			break
		}
		require.NotNil(t, q)
		done, err = svc.SubmitAnswer(ctx, start.SessionID, 0)
		require.NoError(t, err)
	}

	profile := profiles.profiles["user-1"]
	require.NotNil(t, profile.Personalized)
	assert.Len(t, profile.Personalized.Competencies, 3)
	for _, c := range profile.Personalized.Competencies {
		assert.Equal(t, 1.0, c.Accuracy)
		assert.Greater(t, c.SkillCompetency, 0.5)
	}

	// subject tier
	subjectInf, err := svc.SubmitSubjects(ctx, start.SessionID, []string{"physics"}, nil)
	require.NoError(t, err)
	require.NotNil(t, subjectInf)

	// recommendations
	suggestions, err := svc.Recommend(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, suggestions.ReasonCode)
	require.NotEmpty(t, suggestions.Recommendations)
	assert.Equal(t, "B.Sc Mathematics", suggestions.Recommendations[0].Course.Name)
	assert.Equal(t, 1, suggestions.Recommendations[0].RankingPosition)

	// progress now shows every section
	sections, err := svc.Progress(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"general_quiz_inferences",
		"subject_quiz_inferences",
		"personalized_quiz_inferences",
		"career_suggestions",
	}, sections)
}

func TestSubmitGeneral_WrongStage(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestSessionService(&stubQuestionRepo{pools: map[string][]*model.Question{}}, nil)

	start, err := svc.Start(ctx, "user-1")
	require.NoError(t, err)

	// force the session past the general stage
	_, err = svc.SubmitSubjects(ctx, start.SessionID, nil, nil)
	assert.ErrorIs(t, err, ErrWrongStage)
}

func TestSubmitGeneral_InsufficientData(t *testing.T) {
	ctx := context.Background()
	general := generalBank(map[string]float64{"math": 5})
	repo := &fullBankRepo{
		stubQuestionRepo: stubQuestionRepo{pools: map[string][]*model.Question{}},
		general:          general,
	}
	cfg := config.DefaultEngineConfig()
	svc := NewSessionService(
		repo,
		&memCourseRepo{},
		&memProfileRepo{profiles: make(map[string]*model.Profile)},
		&memSessionCache{sessions: make(map[string]*model.AssessmentSession)},
		&memCatalogCache{},
		NewScorerService(cfg),
		NewAdaptiveService(cfg, repo),
		NewCareerService(cfg),
		NewAuthService("test-secret"),
	)

	start, err := svc.Start(ctx, "user-1")
	require.NoError(t, err)

	_, err = svc.SubmitGeneral(ctx, start.SessionID, []model.SubmitAnswerRequest{
		{QuestionID: "g-math", OptionIndex: 0},
	})
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestSessionNotFound(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestSessionService(&stubQuestionRepo{pools: map[string][]*model.Question{}}, nil)

	_, err := svc.SubmitGeneral(ctx, "missing", nil)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, _, err = svc.NextQuestion(ctx, "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRecommend_EmptyCatalogReason(t *testing.T) {
	ctx := context.Background()
	svc, profiles := newTestSessionService(&stubQuestionRepo{pools: map[string][]*model.Question{}}, nil)

	profiles.profiles["user-1"] = &model.Profile{
		UserID: "user-1",
		General: &model.GeneralInference{
			RankedDomains: []string{model.DomainMath, model.DomainAnalytical},
		},
	}

	suggestions, err := svc.Recommend(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, model.ReasonNoCatalog, suggestions.ReasonCode)
	assert.Empty(t, suggestions.Recommendations)
}
