package service

import (
	"strings"

	"disha/internal/model"
)

// domainAliases maps each canonical domain to the exact raw keys the
// question files use for it. Built once; lookups go through the
// inverted index below.
var domainAliases = map[string][]string{
	model.DomainAnalytical: {"analytical", "analytical_reasoning", "logical", "logical_reasoning", "reasoning"},
	model.DomainVisual:     {"visual", "spatial", "visual_spatial", "visualization"},
	model.DomainMath:       {"math", "maths", "mathematical", "quantitative", "numerical"},
	model.DomainProblem:    {"problem_solving", "problem", "creative", "creativity"},
	model.DomainSocial:     {"social", "interpersonal", "intrapersonal", "emotional"},
}

// domainKeywords is the substring fallback when no alias matches
var domainKeywords = map[string][]string{
	model.DomainAnalytical: {"analytic", "logical"},
	model.DomainVisual:     {"visual", "spatial"},
	model.DomainMath:       {"math", "quant"},
	model.DomainProblem:    {"problem", "creative"},
	model.DomainSocial:     {"social", "interpersonal", "intrapersonal"},
}

var aliasIndex = buildAliasIndex()

func buildAliasIndex() map[string]string {
	idx := make(map[string]string)
	for _, domain := range model.AllDomains {
		idx[strings.ToLower(domain)] = domain
		for _, alias := range domainAliases[domain] {
			idx[alias] = domain
		}
	}
	return idx
}

// NormalizeDomain maps a raw domain key to its canonical name. Lookup
// order: exact alias match, then keyword substring match. Unrecognized
// keys pass through unchanged rather than failing, so extra keys can
// survive in score maps.
func NormalizeDomain(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	if key == "" {
		return raw
	}
	if domain, ok := aliasIndex[key]; ok {
		return domain
	}
	for _, domain := range model.AllDomains {
		for _, kw := range domainKeywords[domain] {
			if strings.Contains(key, kw) {
				return domain
			}
		}
	}
	return raw
}

// subjectRules are substring rules applied in order; first hit wins.
// The bare "cs" rule comes last so "physics" and "economics" resolve
// to their own subjects first.
var subjectRules = []struct {
	substr  string
	subject string
}{
	{"art", model.SubjectArts},
	{"bio", model.SubjectBiology},
	{"chem", model.SubjectChemistry},
	{"comp", model.SubjectCS},
	{"econ", model.SubjectEconomics},
	{"phys", model.SubjectPhysics},
	{"cs", model.SubjectCS},
}

// NormalizeSubject canonicalizes a free-text subject label. Unmatched
// subjects pass through unchanged.
func NormalizeSubject(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	for _, rule := range subjectRules {
		if strings.Contains(key, rule.substr) {
			return rule.subject
		}
	}
	return raw
}
