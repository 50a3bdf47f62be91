package service

import (
	"errors"
	"sort"

	"disha/internal/config"
	"disha/internal/model"
)

// ErrInsufficientData means fewer than 2 domains have any score, so
// the personalized tier cannot be set up meaningfully.
var ErrInsufficientData = errors.New("insufficient data: need at least 2 scored domains")

// ScorerService reduces answered weight maps into per-domain and
// per-subject totals and picks the domains for the personalized tier.
// All methods are pure reductions over their inputs.
type ScorerService struct {
	cfg *config.EngineConfig
}

// NewScorerService creates a new scorer service
func NewScorerService(cfg *config.EngineConfig) *ScorerService {
	return &ScorerService{cfg: cfg}
}

// ScoreGeneral aggregates the general-tier answers into domain totals
// and returns the domains ranked by total, descending. Ties keep the
// order in which the domains were first seen.
func (s *ScorerService) ScoreGeneral(answers []model.Answer) (model.DomainScoreSet, []string) {
	scores := make(model.DomainScoreSet)
	var order []string
	for _, ans := range answers {
		for raw, weight := range ans.Weights {
			domain := NormalizeDomain(raw)
			if _, seen := scores[domain]; !seen {
				order = append(order, domain)
			}
			scores[domain] += weight
		}
	}

	ranked := make([]string, len(order))
	copy(ranked, order)
	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i]] > scores[ranked[j]]
	})
	return scores, ranked
}

// SelectDomains picks 2 or 3 domains for the personalized tier. The
// top two always qualify; the third is included only when the score
// staircase is roughly even, i.e. the gap between #1 and #2 is within
// tolerance of the gap between #2 and #3.
func (s *ScorerService) SelectDomains(ranked []string, scores model.DomainScoreSet) ([]string, error) {
	scored := 0
	for _, d := range ranked {
		if scores[d] > 0 {
			scored++
		}
	}
	if scored < 2 {
		return nil, ErrInsufficientData
	}

	selected := []string{ranked[0], ranked[1]}
	if len(ranked) < 3 {
		return selected, nil
	}

	gap12 := scores[ranked[0]] - scores[ranked[1]]
	gap23 := scores[ranked[1]] - scores[ranked[2]]
	maxGap := gap12
	if gap23 > maxGap {
		maxGap = gap23
	}
	diff := gap12 - gap23
	if diff < 0 {
		diff = -diff
	}
	if diff <= s.cfg.GapTolerance*maxGap {
		selected = append(selected, ranked[2])
	}
	return selected, nil
}

// ScoreSubjects aggregates subject-tier answers keyed by normalized
// subject name. Every chosen subject is scored; there is no selection
// step after this tier.
func (s *ScorerService) ScoreSubjects(answers []model.Answer) map[string]float64 {
	scores := make(map[string]float64)
	for _, ans := range answers {
		for raw, weight := range ans.Weights {
			scores[NormalizeSubject(raw)] += weight
		}
	}
	return scores
}
