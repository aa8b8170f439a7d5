package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/grc-lab/riskdesk/pkg/cli/config"
	"github.com/grc-lab/riskdesk/pkg/domain/model"
	"github.com/grc-lab/riskdesk/pkg/domain/types"
	"github.com/grc-lab/riskdesk/pkg/scoring"
	"github.com/grc-lab/riskdesk/pkg/usecase"
)

func cmdScore() *cli.Command {
	var impacts model.ImpactSet
	var probability int
	var classification string
	var scoringCfg config.Scoring

	impactFlag := func(name, usage string, dst *int) cli.Flag {
		return &cli.IntFlag{
			Name:        name,
			Usage:       usage,
			Category:    "Impact",
			Value:       1,
			Destination: dst,
		}
	}

	flags := []cli.Flag{
		impactFlag("people", "People impact rating (1-5)", &impacts.People),
		impactFlag("legal", "Legal impact rating (1-5)", &impacts.Legal),
		impactFlag("environmental", "Environmental impact rating (1-5)", &impacts.Environmental),
		impactFlag("process", "Process impact rating (1-5)", &impacts.Process),
		impactFlag("reputation", "Reputation impact rating (1-5)", &impacts.Reputation),
		impactFlag("economic", "Economic impact rating (1-5)", &impacts.Economic),
		&cli.IntFlag{
			Name:        "technological",
			Usage:       "Technological impact rating (1-5, 0 when excluded)",
			Category:    "Impact",
			Value:       0,
			Destination: &impacts.Technological,
		},
		&cli.IntFlag{
			Name:        "probability",
			Aliases:     []string{"p"},
			Usage:       "Probability rating (1-5)",
			Value:       1,
			Destination: &probability,
		},
		&cli.StringFlag{
			Name:        "classification",
			Usage:       "Risk classification (negative or positive)",
			Value:       string(types.ClassificationNegative),
			Destination: &classification,
		},
	}
	flags = append(flags, scoringCfg.Flags()...)

	return &cli.Command{
		Name:  "score",
		Usage: "Compute an inherent risk score from the command line",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := scoringCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load scoring configuration")
			}

			cls := types.Classification(classification).Normalize()
			if !cls.IsValid() {
				return goerr.New("invalid classification", goerr.V("classification", classification))
			}

			uc := usecase.NewEvaluationUseCase(nil, scoring.New(cfg))
			result := uc.Score(scoring.Input{
				Impacts:        impacts,
				Probability:    probability,
				Classification: cls,
			})

			fmt.Printf("Formula:         %s\n", cfg.Formula)
			fmt.Printf("Weighted impact: %.2f\n", result.WeightedImpact)
			fmt.Printf("Max impact:      %.0f\n", result.MaxImpact)
			fmt.Printf("Inherent score:  %.2f\n", result.InherentScore)
			fmt.Printf("Risk level:      %s\n", levelColor(result.RiskLevel).Sprint(result.RiskLevel))
			return nil
		},
	}
}

func levelColor(level types.RiskLevel) *color.Color {
	switch level {
	case types.RiskLevelCritical:
		return color.New(color.FgRed, color.Bold)
	case types.RiskLevelHigh:
		return color.New(color.FgRed)
	case types.RiskLevelMedium:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgGreen)
	}
}
