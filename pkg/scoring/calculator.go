// Package scoring implements the inherent-risk scoring calculator. The
// calculator is a pure function over per-dimension impact ratings and a
// probability rating; it is safe to invoke concurrently and on every
// change of a rating control.
package scoring

import (
	"math"

	"github.com/grc-lab/riskdesk/pkg/domain/model"
	"github.com/grc-lab/riskdesk/pkg/domain/model/config"
	"github.com/grc-lab/riskdesk/pkg/domain/types"
)

// Input is one scoring request. Ratings are expected to be in [1,5]
// (technological may be 0 when excluded by the evaluation variant). The
// calculator does not validate range: out-of-range input produces
// out-of-range scores, so callers clamp before invoking (ImpactSet.Clamp).
type Input struct {
	Impacts        model.ImpactSet
	Probability    int
	Classification types.Classification
}

// Result is the derived scoring output
type Result struct {
	WeightedImpact float64
	MaxImpact      float64
	InherentScore  float64
	RiskLevel      types.RiskLevel
}

// Calculator evaluates scoring inputs against one fixed configuration
type Calculator struct {
	cfg *config.ScoringConfig
}

// New creates a Calculator. The configuration is expected to be validated
// already (weights sum to 1.0); Validate runs at configuration-load time,
// not here.
func New(cfg *config.ScoringConfig) *Calculator {
	if cfg == nil {
		cfg = config.DefaultScoringConfig()
	}
	return &Calculator{cfg: cfg}
}

// Config returns the calculator's configuration
func (c *Calculator) Config() *config.ScoringConfig {
	return c.cfg
}

// legacyBothTwoScore is the spreadsheet-era result produced by the
// max-impact formula when both probability and the maximum impact are 2.
const legacyBothTwoScore = 3.99

// Evaluate computes the composite score and risk level for the input.
// Deterministic and side-effect free: equal inputs yield equal results.
func (c *Calculator) Evaluate(in Input) Result {
	impacts := in.Impacts.Values()
	weights := c.cfg.Weights.Values()

	weighted := 0.0
	for i, v := range impacts {
		weighted += float64(v) * weights[i]
	}
	weighted = round2(weighted)

	maxImpact := float64(in.Impacts.Max())

	var score float64
	switch c.cfg.Formula {
	case config.FormulaMaxImpact:
		if in.Probability == 2 && maxImpact == 2 {
			score = legacyBothTwoScore
		} else {
			score = round2(float64(in.Probability) * maxImpact)
		}
	default:
		score = round2(float64(in.Probability) * weighted)
	}

	return Result{
		WeightedImpact: weighted,
		MaxImpact:      maxImpact,
		InherentScore:  score,
		RiskLevel:      c.level(score),
	}
}

// level maps a score to a risk level, >= semantics evaluated high to low
func (c *Calculator) level(score float64) types.RiskLevel {
	t := c.cfg.Thresholds
	switch {
	case score >= t.Critical:
		return types.RiskLevelCritical
	case score >= t.High:
		return types.RiskLevelHigh
	case score >= t.Medium:
		return types.RiskLevelMedium
	default:
		return types.RiskLevelLow
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
