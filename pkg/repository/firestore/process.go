package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/grc-lab/riskdesk/pkg/domain/model"
	"github.com/grc-lab/riskdesk/pkg/domain/types"
)

type processDocument struct {
	ID          int64      `firestore:"id"`
	Title       string     `firestore:"title"`
	Description string     `firestore:"description"`
	State       string     `firestore:"state"`
	OwnerID     string     `firestore:"owner_id"`
	ReviewerID  string     `firestore:"reviewer_id"`
	SubmittedAt *time.Time `firestore:"submitted_at"`
	ApprovedAt  *time.Time `firestore:"approved_at"`
	CreatedAt   time.Time  `firestore:"created_at"`
	UpdatedAt   time.Time  `firestore:"updated_at"`
}

func toProcessDocument(p *model.RiskProcess) *processDocument {
	return &processDocument{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		State:       p.State.String(),
		OwnerID:     p.OwnerID.String(),
		ReviewerID:  p.ReviewerID.String(),
		SubmittedAt: p.SubmittedAt,
		ApprovedAt:  p.ApprovedAt,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (d *processDocument) toModel() *model.RiskProcess {
	return &model.RiskProcess{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		State:       types.ProcessState(d.State).Normalize(),
		OwnerID:     types.UserID(d.OwnerID),
		ReviewerID:  types.UserID(d.ReviewerID),
		SubmittedAt: d.SubmittedAt,
		ApprovedAt:  d.ApprovedAt,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type processRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newProcessRepository(client *firestore.Client) *processRepository {
	return &processRepository{client: client}
}

func (r *processRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_processes"
	}
	return "processes"
}

func (r *processRepository) counterCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_counters"
	}
	return "counters"
}

func (r *processRepository) getNextID(ctx context.Context) (int64, error) {
	counterRef := r.client.Collection(r.counterCollection()).Doc("process_counter")

	var nextID int64
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(counterRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				nextID = 1
				return tx.Set(counterRef, map[string]interface{}{
					"value": nextID,
				})
			}
			return goerr.Wrap(err, "failed to get counter")
		}

		currentValue, err := doc.DataAt("value")
		if err != nil {
			return goerr.Wrap(err, "failed to get counter value")
		}

		nextID = currentValue.(int64) + 1
		return tx.Update(counterRef, []firestore.Update{
			{Path: "value", Value: nextID},
		})
	})

	if err != nil {
		return 0, goerr.Wrap(err, "failed to get next ID")
	}

	return nextID, nil
}

func (r *processRepository) Create(ctx context.Context, process *model.RiskProcess) (*model.RiskProcess, error) {
	id, err := r.getNextID(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created := process.Clone()
	created.ID = id
	created.State = process.State.Normalize()
	created.CreatedAt = now
	created.UpdatedAt = now

	docRef := r.client.Collection(r.collection()).Doc(fmt.Sprintf("%d", id))
	if _, err := docRef.Set(ctx, toProcessDocument(created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create process", goerr.V("id", id))
	}

	return created, nil
}

func (r *processRepository) Get(ctx context.Context, id int64) (*model.RiskProcess, error) {
	docRef := r.client.Collection(r.collection()).Doc(fmt.Sprintf("%d", id))
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.New("process not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get process", goerr.V("id", id))
	}

	var d processDocument
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to decode process document", goerr.V("id", id))
	}

	return d.toModel(), nil
}

func (r *processRepository) List(ctx context.Context) ([]*model.RiskProcess, error) {
	iter := r.client.Collection(r.collection()).Documents(ctx)
	defer iter.Stop()

	var processes []*model.RiskProcess
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate processes")
		}

		var d processDocument
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to decode process document")
		}
		processes = append(processes, d.toModel())
	}

	return processes, nil
}

func (r *processRepository) ListByState(ctx context.Context, state types.ProcessState) ([]*model.RiskProcess, error) {
	iter := r.client.Collection(r.collection()).
		Where("state", "==", state.String()).
		Documents(ctx)
	defer iter.Stop()

	var processes []*model.RiskProcess
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate processes", goerr.V("state", state))
		}

		var d processDocument
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to decode process document")
		}
		processes = append(processes, d.toModel())
	}

	return processes, nil
}

func (r *processRepository) Update(ctx context.Context, process *model.RiskProcess) (*model.RiskProcess, error) {
	docRef := r.client.Collection(r.collection()).Doc(fmt.Sprintf("%d", process.ID))

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.New("process not found", goerr.V("id", process.ID))
		}
		return nil, goerr.Wrap(err, "failed to get process", goerr.V("id", process.ID))
	}

	var existing processDocument
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to decode process document", goerr.V("id", process.ID))
	}

	updated := process.Clone()
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, toProcessDocument(updated)); err != nil {
		return nil, goerr.Wrap(err, "failed to update process", goerr.V("id", process.ID))
	}

	return updated, nil
}
