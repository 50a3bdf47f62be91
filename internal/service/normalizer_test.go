package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"disha/internal/model"
)

func TestNormalizeDomain(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"exact alias", "analytical_reasoning", model.DomainAnalytical},
		{"alias case insensitive", "LOGICAL", model.DomainAnalytical},
		{"alias with whitespace", "  spatial ", model.DomainVisual},
		{"canonical passes through", model.DomainMath, model.DomainMath},
		{"canonical case insensitive", "math/quant", model.DomainMath},
		{"keyword substring", "quantitative_aptitude", model.DomainMath},
		{"creative keyword", "creative_thinking", model.DomainProblem},
		{"intrapersonal keyword", "intrapersonal_awareness", model.DomainSocial},
		{"visualization alias", "visualization", model.DomainVisual},
		{"unknown passes through", "basket_weaving", "basket_weaving"},
		{"empty passes through", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDomain(tt.raw))
		})
	}
}

func TestNormalizeSubject(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"fine arts", model.SubjectArts},
		{"Biology", model.SubjectBiology},
		{"organic chemistry", model.SubjectChemistry},
		{"computer science", model.SubjectCS},
		{"CS", model.SubjectCS},
		{"economics", model.SubjectEconomics},
		{"physics", model.SubjectPhysics},
		{"Physics (Hons)", model.SubjectPhysics},
		{"geography", "geography"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeSubject(tt.raw))
		})
	}
}

// "physics" and "economics" both contain "cs"; the subject rules must
// not shadow them with Computer Science.
func TestNormalizeSubject_CSDoesNotShadow(t *testing.T) {
	assert.Equal(t, model.SubjectPhysics, NormalizeSubject("physics"))
	assert.Equal(t, model.SubjectEconomics, NormalizeSubject("economics"))
	assert.Equal(t, model.SubjectCS, NormalizeSubject("cs fundamentals"))
}
