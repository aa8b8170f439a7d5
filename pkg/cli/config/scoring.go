package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	domainConfig "github.com/grc-lab/riskdesk/pkg/domain/model/config"
)

// Scoring holds CLI flags for the scoring configuration file
type Scoring struct {
	path string
}

// Flags returns CLI flags for scoring configuration
func (s *Scoring) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "scoring-config",
			Usage:       "Path to TOML file with impact weights and level thresholds",
			Category:    "Scoring",
			Sources:     cli.EnvVars("RISKDESK_SCORING_CONFIG"),
			Destination: &s.path,
		},
	}
}

// Configure loads and validates the scoring configuration. Without a
// configured file the built-in defaults are used. Validation (weights
// summing to 1.0, descending thresholds) runs here, once, so the
// calculator can trust the configuration at call time.
func (s *Scoring) Configure() (*domainConfig.ScoringConfig, error) {
	if s.path == "" {
		return domainConfig.DefaultScoringConfig(), nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read scoring config", goerr.V("path", s.path))
	}

	cfg := domainConfig.DefaultScoringConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, goerr.Wrap(err, "failed to parse scoring config", goerr.V("path", s.path))
	}

	if cfg.Formula == "" {
		cfg.Formula = domainConfig.FormulaWeighted
	}
	if err := cfg.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid scoring config", goerr.V("path", s.path))
	}

	return cfg, nil
}
