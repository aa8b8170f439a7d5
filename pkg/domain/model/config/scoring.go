package config

import (
	"math"

	"github.com/m-mizutani/goerr/v2"
)

// Formula selects which inherent-score formula the calculator applies.
//
// The weighted formula is the one the stored scores were produced with.
// The max-impact formula matches a legacy spreadsheet narration, including
// its special-cased 3.99 result; it is kept as a named variant until
// product intent on the divergence is confirmed.
type Formula string

const (
	FormulaWeighted  Formula = "weighted"
	FormulaMaxImpact Formula = "max-impact"
)

// IsValid checks if the formula is valid
func (f Formula) IsValid() bool {
	switch f {
	case FormulaWeighted, FormulaMaxImpact:
		return true
	default:
		return false
	}
}

// String returns the string representation of the formula
func (f Formula) String() string {
	return string(f)
}

// Weights holds the per-dimension impact weights. Weights must be
// non-negative and sum to 1.0; Validate enforces this once at
// configuration-load time so the calculator can trust them at call time.
type Weights struct {
	People        float64 `toml:"people"`
	Legal         float64 `toml:"legal"`
	Environmental float64 `toml:"environmental"`
	Process       float64 `toml:"process"`
	Reputation    float64 `toml:"reputation"`
	Economic      float64 `toml:"economic"`
	Technological float64 `toml:"technological"`
}

// Values returns the weights in dimension order
func (w Weights) Values() [7]float64 {
	return [7]float64{
		w.People,
		w.Legal,
		w.Environmental,
		w.Process,
		w.Reputation,
		w.Economic,
		w.Technological,
	}
}

// Sum returns the total of all weights
func (w Weights) Sum() float64 {
	total := 0.0
	for _, v := range w.Values() {
		total += v
	}
	return total
}

const weightSumTolerance = 1e-6

// Validate checks that weights are non-negative and sum to 1.0
func (w Weights) Validate() error {
	for _, v := range w.Values() {
		if v < 0 {
			return goerr.New("impact weight must not be negative", goerr.V("weights", w))
		}
	}
	if math.Abs(w.Sum()-1.0) > weightSumTolerance {
		return goerr.New("impact weights must sum to 1.0", goerr.V("sum", w.Sum()))
	}
	return nil
}

// Thresholds maps an inherent score to a risk level. A score greater than
// or equal to a threshold maps to that level, evaluated high to low.
type Thresholds struct {
	Critical float64 `toml:"critical"`
	High     float64 `toml:"high"`
	Medium   float64 `toml:"medium"`
}

// Validate checks that thresholds are positive and strictly descending
func (t Thresholds) Validate() error {
	if t.Medium <= 0 {
		return goerr.New("medium threshold must be positive", goerr.V("medium", t.Medium))
	}
	if t.Critical <= t.High || t.High <= t.Medium {
		return goerr.New("thresholds must be strictly descending",
			goerr.V("critical", t.Critical),
			goerr.V("high", t.High),
			goerr.V("medium", t.Medium),
		)
	}
	return nil
}

// ScoringConfig holds all scoring-related configuration
type ScoringConfig struct {
	Formula    Formula    `toml:"formula"`
	Weights    Weights    `toml:"weights"`
	Thresholds Thresholds `toml:"thresholds"`
}

// Validate checks the whole scoring configuration
func (c *ScoringConfig) Validate() error {
	if !c.Formula.IsValid() {
		return goerr.New("invalid scoring formula", goerr.V("formula", c.Formula))
	}
	if err := c.Weights.Validate(); err != nil {
		return goerr.Wrap(err, "invalid weights")
	}
	if err := c.Thresholds.Validate(); err != nil {
		return goerr.Wrap(err, "invalid thresholds")
	}
	return nil
}

// DefaultScoringConfig returns the configuration used when no scoring
// file is supplied.
func DefaultScoringConfig() *ScoringConfig {
	return &ScoringConfig{
		Formula: FormulaWeighted,
		Weights: Weights{
			People:        0.14,
			Legal:         0.22,
			Environmental: 0.10,
			Process:       0.10,
			Reputation:    0.10,
			Economic:      0.22,
			Technological: 0.12,
		},
		Thresholds: Thresholds{
			Critical: 20,
			High:     15,
			Medium:   10,
		},
	}
}
