package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/urfave/cli/v3"

	"github.com/grc-lab/riskdesk/pkg/cli/config"
	domainConfig "github.com/grc-lab/riskdesk/pkg/domain/model/config"
)

// configureScoring parses the given CLI arguments against the scoring
// flags and runs Configure, mirroring how the serve command loads it.
func configureScoring(t *testing.T, args ...string) (*domainConfig.ScoringConfig, error) {
	t.Helper()

	var scoringCfg config.Scoring
	var cfg *domainConfig.ScoringConfig
	var cfgErr error

	cmd := &cli.Command{
		Name:  "test",
		Flags: scoringCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, cfgErr = scoringCfg.Configure()
			return nil
		},
	}
	gt.NoError(t, cmd.Run(context.Background(), append([]string{"test"}, args...))).Required()

	return cfg, cfgErr
}

func writeTOML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scoring.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestScoringDefaults(t *testing.T) {
	cfg, err := configureScoring(t)
	gt.NoError(t, err).Required()
	gt.Value(t, cfg.Formula).Equal(domainConfig.FormulaWeighted)
	gt.NoError(t, cfg.Validate())
}

func TestScoringFromFile(t *testing.T) {
	path := writeTOML(t, `
formula = "max-impact"

[weights]
people = 0.30
legal = 0.30
environmental = 0.10
process = 0.10
reputation = 0.10
economic = 0.10
technological = 0.0

[thresholds]
critical = 18.0
high = 12.0
medium = 6.0
`)

	cfg, err := configureScoring(t, "--scoring-config", path)
	gt.NoError(t, err).Required()
	gt.Value(t, cfg.Formula).Equal(domainConfig.FormulaMaxImpact)
	gt.Number(t, cfg.Weights.People).Equal(0.30)
	gt.Number(t, cfg.Thresholds.Critical).Equal(18.0)
}

func TestScoringPartialFileKeepsDefaults(t *testing.T) {
	// Only thresholds overridden; weights stay at the defaults
	path := writeTOML(t, `
[thresholds]
critical = 22.0
high = 16.0
medium = 11.0
`)

	cfg, err := configureScoring(t, "--scoring-config", path)
	gt.NoError(t, err).Required()
	gt.Value(t, cfg.Formula).Equal(domainConfig.FormulaWeighted)
	gt.Number(t, cfg.Weights.People).Equal(0.14)
	gt.Number(t, cfg.Thresholds.Critical).Equal(22.0)
}

func TestScoringInvalidFile(t *testing.T) {
	t.Run("weights not summing to 1.0", func(t *testing.T) {
		path := writeTOML(t, `
[weights]
people = 0.5
legal = 0.4
environmental = 0.0
process = 0.0
reputation = 0.0
economic = 0.0
technological = 0.0
`)
		_, err := configureScoring(t, "--scoring-config", path)
		gt.Error(t, err)
	})

	t.Run("non-descending thresholds", func(t *testing.T) {
		path := writeTOML(t, `
[thresholds]
critical = 10.0
high = 15.0
medium = 20.0
`)
		_, err := configureScoring(t, "--scoring-config", path)
		gt.Error(t, err)
	})

	t.Run("unknown formula", func(t *testing.T) {
		path := writeTOML(t, `formula = "quadratic"`)
		_, err := configureScoring(t, "--scoring-config", path)
		gt.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := configureScoring(t, "--scoring-config", "/no/such/file.toml")
		gt.Error(t, err)
	})

	t.Run("malformed TOML", func(t *testing.T) {
		path := writeTOML(t, `formula = [unclosed`)
		_, err := configureScoring(t, "--scoring-config", path)
		gt.Error(t, err)
	})
}
