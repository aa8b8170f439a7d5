package scoring_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/grc-lab/riskdesk/pkg/domain/model"
	"github.com/grc-lab/riskdesk/pkg/domain/model/config"
	"github.com/grc-lab/riskdesk/pkg/domain/types"
	"github.com/grc-lab/riskdesk/pkg/scoring"
)

func TestEvaluateWeighted(t *testing.T) {
	calc := scoring.New(nil)

	result := calc.Evaluate(scoring.Input{
		Impacts: model.ImpactSet{
			People:        4,
			Legal:         4,
			Environmental: 1,
			Process:       5,
			Reputation:    3,
			Economic:      4,
			Technological: 0,
		},
		Probability: 3,
	})

	gt.Number(t, result.WeightedImpact).Equal(3.22)
	gt.Number(t, result.MaxImpact).Equal(5)
	gt.Number(t, result.InherentScore).Equal(9.66)
	gt.Value(t, result.RiskLevel).Equal(types.RiskLevelLow)
}

func TestEvaluateDeterministic(t *testing.T) {
	calc := scoring.New(nil)
	in := scoring.Input{
		Impacts: model.ImpactSet{
			People:        2,
			Legal:         5,
			Environmental: 3,
			Process:       1,
			Reputation:    4,
			Economic:      2,
			Technological: 3,
		},
		Probability: 4,
	}

	first := calc.Evaluate(in)
	for i := 0; i < 10; i++ {
		gt.Value(t, calc.Evaluate(in)).Equal(first)
	}
}

func TestWeightClosure(t *testing.T) {
	// With weights summing to 1.0, uniform ratings collapse to the rating
	// itself and the score to probability * rating.
	calc := scoring.New(nil)

	for v := 1; v <= 5; v++ {
		uniform := model.ImpactSet{
			People:        v,
			Legal:         v,
			Environmental: v,
			Process:       v,
			Reputation:    v,
			Economic:      v,
			Technological: v,
		}
		for p := 1; p <= 5; p++ {
			result := calc.Evaluate(scoring.Input{Impacts: uniform, Probability: p})
			gt.Number(t, result.WeightedImpact).Equal(float64(v))
			gt.Number(t, result.InherentScore).Equal(float64(p * v))
		}
	}
}

func TestMonotonicity(t *testing.T) {
	calc := scoring.New(nil)

	base := scoring.Input{
		Impacts: model.ImpactSet{
			People:        2,
			Legal:         3,
			Environmental: 2,
			Process:       2,
			Reputation:    3,
			Economic:      2,
			Technological: 1,
		},
		Probability: 3,
	}
	baseScore := calc.Evaluate(base).InherentScore

	bump := []func(*model.ImpactSet){
		func(s *model.ImpactSet) { s.People++ },
		func(s *model.ImpactSet) { s.Legal++ },
		func(s *model.ImpactSet) { s.Environmental++ },
		func(s *model.ImpactSet) { s.Process++ },
		func(s *model.ImpactSet) { s.Reputation++ },
		func(s *model.ImpactSet) { s.Economic++ },
		func(s *model.ImpactSet) { s.Technological++ },
	}
	for i, f := range bump {
		in := base
		f(&in.Impacts)
		got := calc.Evaluate(in).InherentScore
		if got < baseScore {
			t.Errorf("raising dimension %d lowered score: %v -> %v", i, baseScore, got)
		}
	}

	higher := base
	higher.Probability++
	if got := calc.Evaluate(higher).InherentScore; got < baseScore {
		t.Errorf("raising probability lowered score: %v -> %v", baseScore, got)
	}
}

func TestThresholdBoundary(t *testing.T) {
	// Weights isolating a single dimension make the score an exact
	// probability * rating product, so the >= boundary can be hit precisely.
	cfg := config.DefaultScoringConfig()
	cfg.Weights = config.Weights{People: 1.0}
	calc := scoring.New(cfg)

	testCases := []struct {
		name        string
		people      int
		probability int
		score       float64
		level       types.RiskLevel
	}{
		{"exactly critical", 5, 4, 20, types.RiskLevelCritical},
		{"just below critical", 4, 4, 16, types.RiskLevelHigh},
		{"exactly high", 5, 3, 15, types.RiskLevelHigh},
		{"between high and medium", 4, 3, 12, types.RiskLevelMedium},
		{"exactly medium", 5, 2, 10, types.RiskLevelMedium},
		{"just below medium", 3, 3, 9, types.RiskLevelLow},
		{"minimum", 1, 1, 1, types.RiskLevelLow},
		{"maximum", 5, 5, 25, types.RiskLevelCritical},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := calc.Evaluate(scoring.Input{
				Impacts:     model.ImpactSet{People: tc.people},
				Probability: tc.probability,
			})
			gt.Number(t, result.InherentScore).Equal(tc.score)
			gt.Value(t, result.RiskLevel).Equal(tc.level)
		})
	}
}

func TestMaxImpactFormula(t *testing.T) {
	cfg := config.DefaultScoringConfig()
	cfg.Formula = config.FormulaMaxImpact
	calc := scoring.New(cfg)

	t.Run("score is probability times max impact", func(t *testing.T) {
		result := calc.Evaluate(scoring.Input{
			Impacts: model.ImpactSet{
				People:   1,
				Legal:    4,
				Economic: 2,
			},
			Probability: 3,
		})
		gt.Number(t, result.MaxImpact).Equal(4)
		gt.Number(t, result.InherentScore).Equal(12)
		gt.Value(t, result.RiskLevel).Equal(types.RiskLevelMedium)
	})

	t.Run("probability 2 with max impact 2 keeps the legacy 3.99", func(t *testing.T) {
		result := calc.Evaluate(scoring.Input{
			Impacts: model.ImpactSet{
				People: 2,
				Legal:  1,
			},
			Probability: 2,
		})
		gt.Number(t, result.InherentScore).Equal(3.99)
		gt.Value(t, result.RiskLevel).Equal(types.RiskLevelLow)
	})

	t.Run("probability 2 with max impact 3 is a plain product", func(t *testing.T) {
		result := calc.Evaluate(scoring.Input{
			Impacts:     model.ImpactSet{People: 3},
			Probability: 2,
		})
		gt.Number(t, result.InherentScore).Equal(6)
	})

	t.Run("weighted impact is still reported", func(t *testing.T) {
		result := calc.Evaluate(scoring.Input{
			Impacts:     model.ImpactSet{People: 5},
			Probability: 1,
		})
		gt.Number(t, result.WeightedImpact).Equal(0.7) // 5 * 0.14
	})
}

func TestClassificationDoesNotBranchScoring(t *testing.T) {
	calc := scoring.New(nil)
	in := scoring.Input{
		Impacts: model.ImpactSet{
			People:     3,
			Legal:      3,
			Reputation: 2,
			Economic:   4,
		},
		Probability: 4,
	}

	negative := in
	negative.Classification = types.ClassificationNegative
	positive := in
	positive.Classification = types.ClassificationPositive

	gt.Value(t, calc.Evaluate(negative)).Equal(calc.Evaluate(positive))
}

func TestNewWithNilConfigUsesDefaults(t *testing.T) {
	calc := scoring.New(nil)
	gt.Value(t, calc.Config().Formula).Equal(config.FormulaWeighted)
	gt.NoError(t, calc.Config().Validate())
}
