// Package firestore provides the Firestore-backed primary record store.
package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"

	"github.com/grc-lab/riskdesk/pkg/domain/interfaces"
)

type Firestore struct {
	client       *firestore.Client
	process      *processRepository
	observation  *observationRepository
	history      *historyRepository
	notification *notificationRepository
	evaluation   *evaluationRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix namespaces all collections, used to isolate test runs
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.process.collectionPrefix = prefix
		f.observation.collectionPrefix = prefix
		f.history.collectionPrefix = prefix
		f.notification.collectionPrefix = prefix
		f.evaluation.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID == "" {
		client, err = firestore.NewClient(ctx, projectID)
	} else {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client", goerr.V("projectID", projectID))
	}

	f := &Firestore{
		client:       client,
		process:      newProcessRepository(client),
		observation:  newObservationRepository(client),
		history:      newHistoryRepository(client),
		notification: newNotificationRepository(client),
		evaluation:   newEvaluationRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Process() interfaces.ProcessRepository {
	return f.process
}

func (f *Firestore) Observation() interfaces.ObservationRepository {
	return f.observation
}

func (f *Firestore) History() interfaces.HistoryRepository {
	return f.history
}

func (f *Firestore) Notification() interfaces.NotificationRepository {
	return f.notification
}

func (f *Firestore) Evaluation() interfaces.EvaluationRepository {
	return f.evaluation
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
