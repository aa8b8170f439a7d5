package firestore

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"

	"github.com/grc-lab/riskdesk/pkg/domain/model"
	"github.com/grc-lab/riskdesk/pkg/domain/types"
)

type fieldDiffDocument struct {
	Field  string `firestore:"field"`
	Before string `firestore:"before"`
	After  string `firestore:"after"`
}

type historyDocument struct {
	ID          string              `firestore:"id"`
	ProcessID   int64               `firestore:"process_id"`
	ActorID     string              `firestore:"actor_id"`
	ActorName   string              `firestore:"actor_name"`
	Action      string              `firestore:"action"`
	Description string              `firestore:"description"`
	FieldDiffs  []fieldDiffDocument `firestore:"field_diffs"`
	OccurredAt  time.Time           `firestore:"occurred_at"`
}

func toHistoryDocument(h *model.HistoryEntry) *historyDocument {
	doc := &historyDocument{
		ID:          h.ID,
		ProcessID:   h.ProcessID,
		ActorID:     h.ActorID.String(),
		ActorName:   h.ActorName,
		Action:      h.Action.String(),
		Description: h.Description,
		OccurredAt:  h.OccurredAt,
	}
	for field, diff := range h.FieldDiffs {
		doc.FieldDiffs = append(doc.FieldDiffs, fieldDiffDocument{
			Field:  field,
			Before: diff.Before,
			After:  diff.After,
		})
	}
	return doc
}

func (d *historyDocument) toModel() *model.HistoryEntry {
	entry := &model.HistoryEntry{
		ID:          d.ID,
		ProcessID:   d.ProcessID,
		ActorID:     types.UserID(d.ActorID),
		ActorName:   d.ActorName,
		Action:      types.HistoryAction(d.Action),
		Description: d.Description,
		OccurredAt:  d.OccurredAt,
	}
	if len(d.FieldDiffs) > 0 {
		entry.FieldDiffs = make(map[string]model.FieldDiff, len(d.FieldDiffs))
		for _, diff := range d.FieldDiffs {
			entry.FieldDiffs[diff.Field] = model.FieldDiff{
				Before: diff.Before,
				After:  diff.After,
			}
		}
	}
	return entry
}

type historyRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newHistoryRepository(client *firestore.Client) *historyRepository {
	return &historyRepository{client: client}
}

func (r *historyRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_history"
	}
	return "history"
}

func (r *historyRepository) Append(ctx context.Context, entry *model.HistoryEntry) (*model.HistoryEntry, error) {
	created := entry.Clone()
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	if created.OccurredAt.IsZero() {
		created.OccurredAt = time.Now().UTC()
	}

	docRef := r.client.Collection(r.collection()).Doc(created.ID)
	if _, err := docRef.Set(ctx, toHistoryDocument(created)); err != nil {
		return nil, goerr.Wrap(err, "failed to append history entry", goerr.V("id", created.ID))
	}

	return created, nil
}

func (r *historyRepository) ListByProcess(ctx context.Context, processID int64) ([]*model.HistoryEntry, error) {
	iter := r.client.Collection(r.collection()).
		Where("process_id", "==", processID).
		Documents(ctx)
	defer iter.Stop()

	var result []*model.HistoryEntry
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate history entries")
		}

		var d historyDocument
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to decode history document")
		}
		result = append(result, d.toModel())
	}

	// Newest first for display
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].OccurredAt.After(result[j].OccurredAt)
	})

	return result, nil
}
