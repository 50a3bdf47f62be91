package model

// Canonical cognitive/interest domains. Every raw domain key found in
// question weight maps resolves to one of these five names.
const (
	DomainAnalytical = "Analytical/logical reasoning"
	DomainVisual     = "Visual/spatial skills"
	DomainMath       = "Math/quant"
	DomainProblem    = "Problem solving/creative"
	DomainSocial     = "Social (inter/intra-personal)"
)

// AllDomains lists the canonical domains in a fixed order, used for
// deterministic iteration over score maps.
var AllDomains = []string{
	DomainAnalytical,
	DomainVisual,
	DomainMath,
	DomainProblem,
	DomainSocial,
}

// Canonical subject names produced by subject normalization.
const (
	SubjectArts      = "Arts"
	SubjectBiology   = "Biology"
	SubjectChemistry = "Chemistry"
	SubjectCS        = "Computer Science"
	SubjectEconomics = "Economics"
	SubjectPhysics   = "Physics"
)

// DomainScoreSet accumulates weights per canonical domain. Read-only
// once the producing tier finishes.
type DomainScoreSet map[string]float64
