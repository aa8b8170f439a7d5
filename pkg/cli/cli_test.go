package cli_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/grc-lab/riskdesk/pkg/cli"
)

func TestRun_ScoreCommand(t *testing.T) {
	err := cli.Run(context.Background(), []string{
		"riskdesk", "score",
		"--people", "4",
		"--legal", "4",
		"--environmental", "1",
		"--process", "5",
		"--reputation", "3",
		"--economic", "4",
		"--probability", "3",
	}, "test")
	gt.NoError(t, err)
}

func TestRun_ScoreCommand_InvalidClassification(t *testing.T) {
	err := cli.Run(context.Background(), []string{
		"riskdesk", "score",
		"--classification", "sideways",
	}, "test")
	gt.Value(t, err).NotNil()
}

func TestRun_ScoreCommand_WithConfigFile(t *testing.T) {
	// An invalid scoring file must fail the command, not fall back silently
	err := cli.Run(context.Background(), []string{
		"riskdesk", "score",
		"--scoring-config", filepath.Join(t.TempDir(), "missing.toml"),
	}, "test")
	gt.Value(t, err).NotNil()
}

func TestRun_SideChannelCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sidechannel.db")

	err := cli.Run(context.Background(), []string{
		"riskdesk", "sidechannel", "--sidechannel-path", path,
	}, "test")
	gt.NoError(t, err)
}

func TestRun_InvalidLogLevel(t *testing.T) {
	err := cli.Run(context.Background(), []string{
		"riskdesk", "--log-level", "loud", "sidechannel",
	}, "test")
	gt.Value(t, err).NotNil()
}
