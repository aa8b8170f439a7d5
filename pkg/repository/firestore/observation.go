package firestore

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/grc-lab/riskdesk/pkg/domain/model"
	"github.com/grc-lab/riskdesk/pkg/domain/types"
)

type observationDocument struct {
	ID         string     `firestore:"id"`
	ProcessID  int64      `firestore:"process_id"`
	AuthorID   string     `firestore:"author_id"`
	Text       string     `firestore:"text"`
	Resolved   bool       `firestore:"resolved"`
	CreatedAt  time.Time  `firestore:"created_at"`
	ResolvedAt *time.Time `firestore:"resolved_at"`
}

func toObservationDocument(o *model.Observation) *observationDocument {
	return &observationDocument{
		ID:         o.ID,
		ProcessID:  o.ProcessID,
		AuthorID:   o.AuthorID.String(),
		Text:       o.Text,
		Resolved:   o.Resolved,
		CreatedAt:  o.CreatedAt,
		ResolvedAt: o.ResolvedAt,
	}
}

func (d *observationDocument) toModel() *model.Observation {
	return &model.Observation{
		ID:         d.ID,
		ProcessID:  d.ProcessID,
		AuthorID:   types.UserID(d.AuthorID),
		Text:       d.Text,
		Resolved:   d.Resolved,
		CreatedAt:  d.CreatedAt,
		ResolvedAt: d.ResolvedAt,
	}
}

type observationRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newObservationRepository(client *firestore.Client) *observationRepository {
	return &observationRepository{client: client}
}

func (r *observationRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_observations"
	}
	return "observations"
}

func (r *observationRepository) Create(ctx context.Context, obs *model.Observation) (*model.Observation, error) {
	created := obs.Clone()
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	created.CreatedAt = time.Now().UTC()

	docRef := r.client.Collection(r.collection()).Doc(created.ID)
	if _, err := docRef.Set(ctx, toObservationDocument(created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create observation", goerr.V("id", created.ID))
	}

	return created, nil
}

func (r *observationRepository) Get(ctx context.Context, id string) (*model.Observation, error) {
	doc, err := r.client.Collection(r.collection()).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.New("observation not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get observation", goerr.V("id", id))
	}

	var d observationDocument
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to decode observation document", goerr.V("id", id))
	}

	return d.toModel(), nil
}

func (r *observationRepository) ListByProcess(ctx context.Context, processID int64) ([]*model.Observation, error) {
	return r.list(ctx, r.client.Collection(r.collection()).
		Where("process_id", "==", processID))
}

func (r *observationRepository) ListPending(ctx context.Context, processID int64) ([]*model.Observation, error) {
	return r.list(ctx, r.client.Collection(r.collection()).
		Where("process_id", "==", processID).
		Where("resolved", "==", false))
}

func (r *observationRepository) list(ctx context.Context, q firestore.Query) ([]*model.Observation, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	var result []*model.Observation
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate observations")
		}

		var d observationDocument
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to decode observation document")
		}
		result = append(result, d.toModel())
	}

	// Sort client-side to avoid requiring a composite index
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result, nil
}

func (r *observationRepository) Update(ctx context.Context, obs *model.Observation) (*model.Observation, error) {
	docRef := r.client.Collection(r.collection()).Doc(obs.ID)

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.New("observation not found", goerr.V("id", obs.ID))
		}
		return nil, goerr.Wrap(err, "failed to get observation", goerr.V("id", obs.ID))
	}

	var existing observationDocument
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to decode observation document", goerr.V("id", obs.ID))
	}

	updated := obs.Clone()
	updated.CreatedAt = existing.CreatedAt

	if _, err := docRef.Set(ctx, toObservationDocument(updated)); err != nil {
		return nil, goerr.Wrap(err, "failed to update observation", goerr.V("id", obs.ID))
	}

	return updated, nil
}
