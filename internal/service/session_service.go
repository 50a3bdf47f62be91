package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"disha/internal/cache"
	"disha/internal/model"
	"disha/internal/repository"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrWrongStage      = errors.New("operation does not match the session's stage")
)

// SessionService orchestrates a full assessment: general tier,
// adaptive tier, subject tier, then recommendations. It owns no
// engine state itself; everything in flight lives in the session
// cache, everything final in the profile store.
type SessionService struct {
	questionRepo repository.QuestionRepo
	courseRepo   repository.CourseRepo
	profileRepo  repository.ProfileRepo
	sessions     cache.SessionCache
	catalog      cache.CatalogCache
	scorer       *ScorerService
	adaptive     *AdaptiveService
	career       *CareerService
	authSvc      *AuthService
}

// NewSessionService creates a new session service
func NewSessionService(
	questionRepo repository.QuestionRepo,
	courseRepo repository.CourseRepo,
	profileRepo repository.ProfileRepo,
	sessions cache.SessionCache,
	catalog cache.CatalogCache,
	scorer *ScorerService,
	adaptive *AdaptiveService,
	career *CareerService,
	authSvc *AuthService,
) *SessionService {
	return &SessionService{
		questionRepo: questionRepo,
		courseRepo:   courseRepo,
		profileRepo:  profileRepo,
		sessions:     sessions,
		catalog:      catalog,
		scorer:       scorer,
		adaptive:     adaptive,
		career:       career,
		authSvc:      authSvc,
	}
}

// Start creates a session at the general stage and issues its token
func (s *SessionService) Start(ctx context.Context, userID string) (*model.StartSessionResponse, error) {
	session := &model.AssessmentSession{
		ID:        "s_" + uuid.New().String()[:8],
		UserID:    userID,
		Stage:     model.StageGeneral,
		CreatedAt: time.Now(),
	}
	if err := s.sessions.Set(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	token, err := s.authSvc.GenerateSessionToken(session.ID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &model.StartSessionResponse{SessionID: session.ID, Token: token}, nil
}

// GeneralQuestions returns the general-tier bank
func (s *SessionService) GeneralQuestions(ctx context.Context) ([]*model.Question, error) {
	return s.questionRepo.GetByTier(ctx, model.TierGeneral)
}

// SubjectQuestions returns the bank for one chosen subject. A fetch
// failure degrades to an empty list rather than failing the tier.
func (s *SessionService) SubjectQuestions(ctx context.Context, subject string) []*model.Question {
	questions, err := s.questionRepo.GetBySubject(ctx, NormalizeSubject(subject))
	if err != nil {
		log.Printf("subject bank fetch failed for %q, degrading to empty: %v", subject, err)
		return nil
	}
	return questions
}

// SubmitGeneral scores the general tier, selects the domains for the
// personalized tier, persists the inference, and arms the adaptive
// state.
func (s *SessionService) SubmitGeneral(ctx context.Context, sessionID string, reqs []model.SubmitAnswerRequest) (*model.GeneralInference, error) {
	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Stage != model.StageGeneral {
		return nil, ErrWrongStage
	}

	answers, err := s.resolveAnswers(ctx, reqs)
	if err != nil {
		return nil, err
	}
	session.GeneralAnswers = answers

	scores, ranked := s.scorer.ScoreGeneral(answers)
	selected, err := s.scorer.SelectDomains(ranked, scores)
	if err != nil {
		return nil, err
	}

	inference := &model.GeneralInference{
		Scores:          scores,
		RankedDomains:   ranked,
		SelectedDomains: selected,
		CompletedAt:     time.Now(),
	}
	if err := s.profileRepo.SetGeneral(ctx, session.UserID, inference); err != nil {
		log.Printf("profile write failed for %s: %v", session.UserID, err)
	}

	session.SelectedDomains = selected
	session.Adaptive = s.adaptive.StartSession(ctx, session.ID, selected)
	session.Stage = model.StagePersonalized
	if err := s.sessions.Set(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return inference, nil
}

// NextQuestion serves the next adaptive question, or nil when the
// personalized tier is over. Ending the tier persists the competency
// inference and moves the session to the subject stage.
func (s *SessionService) NextQuestion(ctx context.Context, sessionID string) (*model.Question, bool, error) {
	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return nil, false, err
	}
	if session.Stage != model.StagePersonalized || session.Adaptive == nil {
		return nil, false, ErrWrongStage
	}

	q, _ := s.adaptive.NextQuestion(session.Adaptive)
	if q == nil {
		if err := s.finishPersonalized(ctx, session); err != nil {
			return nil, false, err
		}
		return nil, true, nil
	}
	if err := s.sessions.Set(ctx, session); err != nil {
		return nil, false, fmt.Errorf("failed to save session: %w", err)
	}
	return q, false, nil
}

// SubmitAnswer records one adaptive answer. The caller must have
// received the question first; answers without a served question are
// rejected.
func (s *SessionService) SubmitAnswer(ctx context.Context, sessionID string, optionIndex int) (bool, error) {
	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return false, err
	}
	if session.Stage != model.StagePersonalized || session.Adaptive == nil {
		return false, ErrWrongStage
	}

	if _, err := s.adaptive.RecordAnswer(session.Adaptive, optionIndex); err != nil {
		return false, err
	}

	if !session.Adaptive.Active() {
		if err := s.finishPersonalized(ctx, session); err != nil {
			return false, err
		}
		return true, nil
	}
	if err := s.sessions.Set(ctx, session); err != nil {
		return false, fmt.Errorf("failed to save session: %w", err)
	}
	return false, nil
}

func (s *SessionService) finishPersonalized(ctx context.Context, session *model.AssessmentSession) error {
	competencies := s.adaptive.Results(session.Adaptive)
	inference := &model.PersonalizedInference{
		Competencies: competencies,
		CompletedAt:  time.Now(),
	}
	if err := s.profileRepo.SetPersonalized(ctx, session.UserID, inference); err != nil {
		log.Printf("profile write failed for %s: %v", session.UserID, err)
	}

	session.Adaptive = nil
	session.Stage = model.StageSubject
	if err := s.sessions.Set(ctx, session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// SubmitSubjects scores the subject tier for the user's chosen
// subjects and moves the session to completion.
func (s *SessionService) SubmitSubjects(ctx context.Context, sessionID string, subjects []string, reqs []model.SubmitAnswerRequest) (*model.SubjectInference, error) {
	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Stage != model.StageSubject {
		return nil, ErrWrongStage
	}

	answers, err := s.resolveAnswers(ctx, reqs)
	if err != nil {
		return nil, err
	}
	session.SubjectAnswers = answers

	chosen := make([]string, 0, len(subjects))
	for _, sub := range subjects {
		chosen = append(chosen, NormalizeSubject(sub))
	}
	session.ChosenSubjects = chosen

	inference := &model.SubjectInference{
		Scores:      s.scorer.ScoreSubjects(answers),
		CompletedAt: time.Now(),
	}
	if err := s.profileRepo.SetSubject(ctx, session.UserID, inference); err != nil {
		log.Printf("profile write failed for %s: %v", session.UserID, err)
	}

	session.Stage = model.StageComplete
	if err := s.sessions.Set(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return inference, nil
}

// Recommend builds the user's fit input from whatever inferences exist
// and runs the ranking. An empty list carries a reason code, never an
// error.
func (s *SessionService) Recommend(ctx context.Context, userID string) (*model.CareerSuggestions, error) {
	profile, err := s.profileRepo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	input := FitInput{}
	if profile != nil {
		if profile.General != nil {
			input.Interests = profile.General.RankedDomains
			input.DomainScores = profile.General.Scores
		}
		if profile.Personalized != nil {
			input.Competencies = profile.Personalized.Competencies
			for _, domain := range model.AllDomains {
				if c, ok := profile.Personalized.Competencies[domain]; ok && c.SkillCompetency >= 0.5 {
					input.Skills = append(input.Skills, domain)
				}
			}
		}
		if profile.Subject != nil {
			input.SubjectScores = profile.Subject.Scores
			for subject := range profile.Subject.Scores {
				input.Subjects = append(input.Subjects, subject)
			}
		}
	}

	courses := s.loadCatalog(ctx)
	deref := make([]model.Course, len(courses))
	for i, c := range courses {
		deref[i] = *c
	}

	recs, reason := s.career.Rank(deref, input)
	suggestions := &model.CareerSuggestions{
		Recommendations: recs,
		ReasonCode:      reason,
		GeneratedAt:     time.Now(),
	}
	if err := s.profileRepo.SetCareer(ctx, userID, suggestions); err != nil {
		log.Printf("profile write failed for %s: %v", userID, err)
	}
	return suggestions, nil
}

// Progress reports which inference sections the user's profile holds,
// so a returning user resumes at the right tier.
func (s *SessionService) Progress(ctx context.Context, userID string) ([]string, error) {
	profile, err := s.profileRepo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	if profile == nil {
		return []string{}, nil
	}
	return profile.PresentSections(), nil
}

// loadCatalog is cache-aside over the course collection. Cache errors
// degrade to a direct read; a failed read degrades to an empty catalog.
func (s *SessionService) loadCatalog(ctx context.Context) []*model.Course {
	courses, err := s.catalog.GetCourses(ctx)
	if err != nil {
		log.Printf("catalog cache read failed: %v", err)
	}
	if courses != nil {
		return courses
	}

	courses, err = s.courseRepo.GetAll(ctx)
	if err != nil {
		log.Printf("catalog read failed, recommending from empty catalog: %v", err)
		return nil
	}
	if err := s.catalog.SetCourses(ctx, courses); err != nil {
		log.Printf("catalog cache write failed: %v", err)
	}
	return courses
}

// resolveAnswers turns submitted option picks into weight-carrying
// answers by looking the questions up in the bank. Unknown question
// ids or out-of-range options are dropped, not fatal.
func (s *SessionService) resolveAnswers(ctx context.Context, reqs []model.SubmitAnswerRequest) ([]model.Answer, error) {
	var answers []model.Answer
	for _, req := range reqs {
		q, err := s.questionRepo.GetByID(ctx, req.QuestionID)
		if err != nil {
			return nil, fmt.Errorf("failed to load question %s: %w", req.QuestionID, err)
		}
		if q == nil || req.OptionIndex < 0 || req.OptionIndex >= len(q.Options) {
			log.Printf("dropping answer for unknown question/option %s/%d", req.QuestionID, req.OptionIndex)
			continue
		}
		answers = append(answers, model.Answer{
			QuestionID:  q.ID,
			OptionIndex: req.OptionIndex,
			Weights:     q.Options[req.OptionIndex].Weights,
			Domain:      q.Domain,
			Subject:     q.Subject,
			AnsweredAt:  time.Now(),
		})
	}
	return answers, nil
}

func (s *SessionService) getSession(ctx context.Context, sessionID string) (*model.AssessmentSession, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}
