package config

// EngineConfig holds the heuristic thresholds of the assessment engine.
// These are product-tuned constants, not calibrated item parameters.
type EngineConfig struct {
	// Adaptive tier
	MaxAttempts        int     // hard cap per domain
	ConfidenceMinN     int     // attempts before confidence is computed
	TrendMinN          int     // attempts before trend is computed
	TrendDelta         float64 // half-window mean difference for improving/declining
	HighAccuracy       float64
	HighConfidence     float64
	ModerateAccuracy   float64
	LowAccuracy        float64
	VeryHighConfidence float64

	// Domain selection
	GapTolerance float64 // staircase-evenness factor for including a 3rd domain

	// Recommendations
	FitFloor int // minimum overall fit score to survive ranking
}

// DefaultEngineConfig returns the production thresholds
func DefaultEngineConfig() *EngineConfig {
	return &EngineConfig{
		MaxAttempts:        40,
		ConfidenceMinN:     3,
		TrendMinN:          6,
		TrendDelta:         0.2,
		HighAccuracy:       0.85,
		HighConfidence:     0.8,
		ModerateAccuracy:   0.75,
		LowAccuracy:        0.50,
		VeryHighConfidence: 0.9,
		GapTolerance:       0.2,
		FitFloor:           75,
	}
}
