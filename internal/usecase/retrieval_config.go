package usecase

import "fmt"

// RetrievalConfig holds the tunable thresholds of the knowledge retriever.
// The escalation floor and the confidence bands are independent knobs:
// the LOW band (0.3-0.5) sits above the 0.2 floor, so a result can be
// "low confidence but not escalated".
type RetrievalConfig struct {
	// TopArticles is the number of ranked articles returned per query.
	TopArticles int

	// HighBand, MediumBand and LowBand are the inclusive lower bounds of
	// the confidence buckets. Anything below LowBand is NONE.
	HighBand   float64
	MediumBand float64
	LowBand    float64

	// EscalationFloor forces escalation when the top article's confidence
	// falls below it, regardless of the band.
	EscalationFloor float64
}

// DefaultRetrievalConfig returns the production thresholds.
func DefaultRetrievalConfig() RetrievalConfig {
	return RetrievalConfig{
		TopArticles:     3,
		HighBand:        0.7,
		MediumBand:      0.5,
		LowBand:         0.3,
		EscalationFloor: 0.2,
	}
}

// Validate checks threshold ordering and ranges.
func (c RetrievalConfig) Validate() error {
	if c.TopArticles <= 0 {
		return fmt.Errorf("topArticles must be positive, got %d", c.TopArticles)
	}
	if c.HighBand <= c.MediumBand || c.MediumBand <= c.LowBand || c.LowBand <= 0 {
		return fmt.Errorf("confidence bands must be strictly ordered, got high=%.2f medium=%.2f low=%.2f",
			c.HighBand, c.MediumBand, c.LowBand)
	}
	if c.HighBand > 1.0 {
		return fmt.Errorf("highBand must not exceed 1.0, got %.2f", c.HighBand)
	}
	if c.EscalationFloor < 0 || c.EscalationFloor > c.LowBand {
		return fmt.Errorf("escalationFloor must be within [0, lowBand], got %.2f", c.EscalationFloor)
	}
	return nil
}
