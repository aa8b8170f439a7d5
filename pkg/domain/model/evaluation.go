package model

import (
	"time"

	"github.com/grc-lab/riskdesk/pkg/domain/types"
)

// ImpactSet holds the per-dimension impact ratings of one evaluation.
// Each rating is expected to be in [1,5]; the technological dimension may
// be fixed at 0 depending on the evaluation variant.
type ImpactSet struct {
	People        int
	Legal         int
	Environmental int
	Process       int
	Reputation    int
	Economic      int
	Technological int
}

// Values returns the ratings in dimension order
func (s ImpactSet) Values() [7]int {
	return [7]int{
		s.People,
		s.Legal,
		s.Environmental,
		s.Process,
		s.Reputation,
		s.Economic,
		s.Technological,
	}
}

// Max returns the highest rating across all dimensions
func (s ImpactSet) Max() int {
	max := 0
	for _, v := range s.Values() {
		if v > max {
			max = v
		}
	}
	return max
}

// Clamp returns a copy with every rating forced into [lo, hi]. The scoring
// calculator does not validate range, so callers clamp before invoking it.
func (s ImpactSet) Clamp(lo, hi int) ImpactSet {
	clamp := func(v int) int {
		if v < lo {
			return lo
		}
		if v > hi {
			return hi
		}
		return v
	}
	return ImpactSet{
		People:        clamp(s.People),
		Legal:         clamp(s.Legal),
		Environmental: clamp(s.Environmental),
		Process:       clamp(s.Process),
		Reputation:    clamp(s.Reputation),
		Economic:      clamp(s.Economic),
		Technological: clamp(s.Technological),
	}
}

// RiskEvaluation is one scoring snapshot for a risk registered against a
// process. The derived fields are recomputable from the inputs at any
// time; they are stored so reviewers see the score the owner saw.
type RiskEvaluation struct {
	ID             string
	ProcessID      int64
	Impacts        ImpactSet
	Probability    int
	Classification types.Classification

	WeightedImpact float64
	MaxImpact      float64
	InherentScore  float64
	RiskLevel      types.RiskLevel

	CreatedAt time.Time
}
