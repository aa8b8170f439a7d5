package config

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/grc-lab/riskdesk/pkg/domain/interfaces"
	"github.com/grc-lab/riskdesk/pkg/repository/fallback"
	"github.com/grc-lab/riskdesk/pkg/repository/firestore"
	"github.com/grc-lab/riskdesk/pkg/repository/memory"
	"github.com/grc-lab/riskdesk/pkg/repository/sidechannel"
	"github.com/grc-lab/riskdesk/pkg/utils/logging"
)

// Repository holds CLI flags for repository backend configuration
type Repository struct {
	backend         string
	projectID       string
	databaseID      string
	sideChannelPath string
}

// Flags returns CLI flags for repository configuration
func (r *Repository) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repository-backend",
			Usage:       "Repository backend type (firestore or memory)",
			Category:    "Repository",
			Value:       "firestore",
			Sources:     cli.EnvVars("RISKDESK_REPOSITORY_BACKEND"),
			Destination: &r.backend,
		},
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Usage:       "Firestore Project ID (required when using firestore backend)",
			Category:    "Repository",
			Sources:     cli.EnvVars("RISKDESK_FIRESTORE_PROJECT_ID"),
			Destination: &r.projectID,
		},
		&cli.StringFlag{
			Name:        "firestore-database-id",
			Usage:       "Firestore Database ID",
			Category:    "Repository",
			Sources:     cli.EnvVars("RISKDESK_FIRESTORE_DATABASE_ID"),
			Destination: &r.databaseID,
		},
		&cli.StringFlag{
			Name:        "sidechannel-path",
			Usage:       "Path of the durable local side-channel database",
			Category:    "Repository",
			Value:       "riskdesk-sidechannel.db",
			Sources:     cli.EnvVars("RISKDESK_SIDECHANNEL_PATH"),
			Destination: &r.sideChannelPath,
		},
	}
}

// SideChannelPath returns the configured side-channel database path
func (r *Repository) SideChannelPath() string {
	return r.sideChannelPath
}

// Configure initializes the primary repository for the configured backend
// and wraps it with the side-channel fallback decorator. The caller is
// responsible for calling Close() on both returned values.
func (r *Repository) Configure(ctx context.Context) (interfaces.Repository, interfaces.SideChannel, error) {
	side, err := sidechannel.New(r.sideChannelPath)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to open side-channel")
	}

	var primary interfaces.Repository
	switch r.backend {
	case "firestore":
		if r.projectID == "" {
			_ = side.Close()
			return nil, nil, goerr.New("firestore-project-id is required when using firestore backend")
		}
		primary, err = firestore.New(ctx, r.projectID, r.databaseID)
		if err != nil {
			_ = side.Close()
			return nil, nil, goerr.Wrap(err, "failed to initialize firestore repository")
		}
		logging.Default().Info("Using Firestore repository",
			"project_id", r.projectID,
			"database_id", r.databaseID,
		)

	case "memory":
		logging.Default().Info("Using in-memory repository (development mode)")
		primary = memory.New()

	default:
		_ = side.Close()
		return nil, nil, goerr.New("invalid repository backend", goerr.V("backend", r.backend))
	}

	return fallback.New(primary, side), side, nil
}
