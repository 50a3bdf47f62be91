package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainState_Exhausted(t *testing.T) {
	ds := &DomainState{Pool: []Question{{ID: "q1"}, {ID: "q2"}}}
	assert.False(t, ds.Exhausted())

	ds.Cursor = 2
	assert.True(t, ds.Exhausted())

	empty := &DomainState{}
	assert.True(t, empty.Exhausted())
}

func TestAdaptiveState_Active(t *testing.T) {
	state := &AdaptiveState{Domains: map[string]*DomainState{
		DomainMath:   {ShouldContinue: false},
		DomainVisual: {ShouldContinue: true},
	}}
	assert.True(t, state.Active())

	state.Domains[DomainVisual].ShouldContinue = false
	assert.False(t, state.Active())
}

func TestProfile_PresentSections(t *testing.T) {
	p := &Profile{UserID: "u1"}
	assert.Empty(t, p.PresentSections())

	p.General = &GeneralInference{}
	p.Career = &CareerSuggestions{}
	assert.Equal(t, []string{"general_quiz_inferences", "career_suggestions"}, p.PresentSections())
}
