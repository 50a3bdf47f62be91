package service

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"time"

	"disha/internal/config"
	"disha/internal/model"
	"disha/internal/repository"
)

var (
	// ErrNoPendingQuestion means an answer arrived without a question
	// having been served first. The tier is a strict request-then-answer
	// protocol, one question at a time.
	ErrNoPendingQuestion = errors.New("no question is pending an answer")
)

// AdaptiveService runs the personalized tier. It owns no state of its
// own: every method takes the session's AdaptiveState explicitly, so
// exactly one in-flight session owns each state value.
type AdaptiveService struct {
	cfg          *config.EngineConfig
	questionRepo repository.QuestionRepo
	randFloat    func() float64
	rng          *rand.Rand
}

// NewAdaptiveService creates a new adaptive service
func NewAdaptiveService(cfg *config.EngineConfig, questionRepo repository.QuestionRepo) *AdaptiveService {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &AdaptiveService{
		cfg:          cfg,
		questionRepo: questionRepo,
		randFloat:    rng.Float64,
		rng:          rng,
	}
}

// SetRand overrides the random source (used by tests for determinism)
func (s *AdaptiveService) SetRand(rng *rand.Rand) {
	s.rng = rng
	s.randFloat = rng.Float64
}

// StartSession builds the adaptive state for the given domains. Each
// domain's question pool is fetched, shuffled once, and consumed via a
// cursor. A domain whose fetch fails or returns nothing is exhausted
// from the start; the session degrades rather than aborts.
func (s *AdaptiveService) StartSession(ctx context.Context, sessionID string, domains []string) *model.AdaptiveState {
	state := &model.AdaptiveState{
		SessionID:   sessionID,
		DomainOrder: domains,
		Domains:     make(map[string]*model.DomainState, len(domains)),
	}

	for _, domain := range domains {
		questions, err := s.questionRepo.GetByDomain(ctx, domain)
		if err != nil {
			log.Printf("adaptive: pool fetch failed for %q, treating as empty: %v", domain, err)
			questions = nil
		}
		pool := make([]model.Question, len(questions))
		for i, q := range questions {
			pool[i] = *q
		}
		s.rng.Shuffle(len(pool), func(i, j int) {
			pool[i], pool[j] = pool[j], pool[i]
		})

		state.Domains[domain] = &model.DomainState{
			Domain:         domain,
			Trend:          model.TrendUnknown,
			ShouldContinue: len(pool) > 0,
			Pool:           pool,
		}
	}
	return state
}

// NextQuestion selects the next question by domain priority. It
// returns nil when every domain has converged or run dry, which ends
// the session. Serving the same question twice before an answer is
// recorded is legal and returns the identical question.
func (s *AdaptiveService) NextQuestion(state *model.AdaptiveState) (*model.Question, string) {
	for {
		domain := s.pickDomain(state)
		if domain == "" {
			state.PendingDomain = ""
			return nil, ""
		}
		ds := state.Domains[domain]
		if ds.Exhausted() {
			ds.ShouldContinue = false
			continue
		}
		state.PendingDomain = domain
		q := ds.Pool[ds.Cursor]
		return &q, domain
	}
}

// pickDomain scores every still-active domain and returns the highest
// priority one. Ties resolve to the first domain in the supplied order.
func (s *AdaptiveService) pickDomain(state *model.AdaptiveState) string {
	best := ""
	bestPriority := -1
	for _, domain := range state.DomainOrder {
		ds := state.Domains[domain]
		if !ds.ShouldContinue {
			continue
		}
		if ds.Exhausted() {
			ds.ShouldContinue = false
			continue
		}
		p := s.priority(ds)
		if p > bestPriority {
			best = domain
			bestPriority = p
		}
	}
	return best
}

func (s *AdaptiveService) priority(ds *model.DomainState) int {
	p := 0
	if ds.Accuracy < s.cfg.ModerateAccuracy {
		p += 10
	}
	if ds.Trend == model.TrendImproving {
		p += 8
	}
	if ds.Trend == model.TrendDeclining {
		p += 6
	}
	if ds.Confidence < 0.6 {
		p += 5
	}
	if ds.Attempts < 5 {
		p += 7 // exploration floor
	}
	if ds.Accuracy >= 0.60 && ds.Accuracy < s.cfg.HighAccuracy && ds.Attempts < 20 {
		p += 4
	}
	if ds.Accuracy >= s.cfg.HighAccuracy && ds.Attempts < 15 && s.randFloat() < 0.3 {
		p += 2
	}
	return p
}

// RecordAnswer applies the answer to the pending domain, updates its
// running metrics, and re-evaluates the stopping criteria. The answer
// is correct when the selected option's weight for the pending domain
// is the unique maximum across its weight map and positive; a tied
// maximum counts as not correct.
func (s *AdaptiveService) RecordAnswer(state *model.AdaptiveState, optionIndex int) (*model.Answer, error) {
	if state.PendingDomain == "" {
		return nil, ErrNoPendingQuestion
	}
	ds := state.Domains[state.PendingDomain]
	q := ds.Pool[ds.Cursor]
	ds.Cursor++

	if optionIndex < 0 || optionIndex >= len(q.Options) {
		optionIndex = 0
	}
	opt := q.Options[optionIndex]

	// Weight keys arrive in the question file's raw vocabulary, so
	// both lookups go through the normalizer.
	var domainWeight, maxWeight float64
	maxCount := 0
	for raw, w := range opt.Weights {
		if NormalizeDomain(raw) == ds.Domain && w > domainWeight {
			domainWeight = w
		}
		if w > maxWeight {
			maxWeight = w
			maxCount = 1
		} else if w == maxWeight && w > 0 {
			maxCount++
		}
	}
	isCorrect := domainWeight > 0 && domainWeight == maxWeight && maxCount == 1

	ds.Attempts++
	outcome := 0
	if isCorrect {
		ds.Correct++
		outcome = 1
	}
	ds.RawScore += domainWeight

	ds.Recent = append(ds.Recent, outcome)
	if len(ds.Recent) > model.RecentWindowSize {
		ds.Recent = ds.Recent[len(ds.Recent)-model.RecentWindowSize:]
	}

	ds.Accuracy = float64(ds.Correct) / float64(ds.Attempts)
	if ds.Attempts >= s.cfg.ConfidenceMinN {
		consistency := 1 - abs(ds.Accuracy-windowAverage(ds.Recent))
		ds.Confidence = min((ds.Accuracy+consistency)/2, 1.0)
	}
	if ds.Attempts >= s.cfg.TrendMinN {
		ds.Trend = s.computeTrend(ds.Recent)
	}

	if s.shouldStop(ds) {
		ds.ShouldContinue = false
	}
	if ds.Exhausted() {
		ds.ShouldContinue = false
	}

	ans := &model.Answer{
		QuestionID:  q.ID,
		OptionIndex: optionIndex,
		Weights:     opt.Weights,
		Domain:      ds.Domain,
		IsCorrect:   isCorrect,
		AnsweredAt:  time.Now(),
	}
	state.PendingDomain = ""
	return ans, nil
}

// computeTrend compares the mean of the older half of the rolling
// window against the newer half.
func (s *AdaptiveService) computeTrend(recent []int) model.Trend {
	half := len(recent) / 2
	older := windowAverage(recent[:half])
	newer := windowAverage(recent[half:])
	switch {
	case newer-older > s.cfg.TrendDelta:
		return model.TrendImproving
	case newer-older < -s.cfg.TrendDelta:
		return model.TrendDeclining
	default:
		return model.TrendStable
	}
}

// shouldStop evaluates the per-domain stopping criteria; any one is
// enough to converge.
func (s *AdaptiveService) shouldStop(ds *model.DomainState) bool {
	if ds.Attempts >= s.cfg.MaxAttempts {
		return true
	}
	if ds.Accuracy >= s.cfg.HighAccuracy && ds.Confidence >= s.cfg.HighConfidence && ds.Attempts >= 8 {
		return true
	}
	if ds.Accuracy >= s.cfg.ModerateAccuracy && ds.Trend == model.TrendStable && ds.Attempts >= 12 {
		return true
	}
	if ds.Accuracy < s.cfg.LowAccuracy &&
		(ds.Trend == model.TrendStable || ds.Trend == model.TrendDeclining) &&
		ds.Attempts >= 15 {
		return true
	}
	if ds.Confidence >= s.cfg.VeryHighConfidence && ds.Attempts >= 10 {
		return true
	}
	return false
}

// Results produces the final per-domain competency metrics. Domains
// that never received an answer are omitted, so a session that drained
// every pool without attempts ends with an empty result.
func (s *AdaptiveService) Results(state *model.AdaptiveState) map[string]model.DomainCompetency {
	out := make(map[string]model.DomainCompetency)
	for _, domain := range state.DomainOrder {
		ds := state.Domains[domain]
		if ds.Attempts == 0 {
			continue
		}
		normalizedRaw := min(ds.RawScore/(float64(ds.Attempts)*3), 1)
		attemptFactor := min(float64(ds.Attempts)/10, 1)
		out[domain] = model.DomainCompetency{
			Domain:          domain,
			Accuracy:        ds.Accuracy,
			Attempts:        ds.Attempts,
			SkillCompetency: 0.5*ds.Accuracy + 0.3*normalizedRaw + 0.2*attemptFactor,
		}
	}
	return out
}

func windowAverage(window []int) float64 {
	if len(window) == 0 {
		return 0
	}
	sum := 0
	for _, v := range window {
		sum += v
	}
	return float64(sum) / float64(len(window))
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
