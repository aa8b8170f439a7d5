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

type notificationDocument struct {
	ID            string    `firestore:"id"`
	TargetUserID  string    `firestore:"target_user_id"`
	Kind          string    `firestore:"kind"`
	Title         string    `firestore:"title"`
	Body          string    `firestore:"body"`
	ProcessID     int64     `firestore:"process_id"`
	ObservationID string    `firestore:"observation_id"`
	Read          bool      `firestore:"read"`
	CreatedAt     time.Time `firestore:"created_at"`
}

func toNotificationDocument(n *model.Notification) *notificationDocument {
	return &notificationDocument{
		ID:            n.ID,
		TargetUserID:  n.TargetUserID.String(),
		Kind:          n.Kind.String(),
		Title:         n.Title,
		Body:          n.Body,
		ProcessID:     n.ProcessID,
		ObservationID: n.ObservationID,
		Read:          n.Read,
		CreatedAt:     n.CreatedAt,
	}
}

func (d *notificationDocument) toModel() *model.Notification {
	return &model.Notification{
		ID:            d.ID,
		TargetUserID:  types.UserID(d.TargetUserID),
		Kind:          types.NotificationKind(d.Kind),
		Title:         d.Title,
		Body:          d.Body,
		ProcessID:     d.ProcessID,
		ObservationID: d.ObservationID,
		Read:          d.Read,
		CreatedAt:     d.CreatedAt,
	}
}

type notificationRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newNotificationRepository(client *firestore.Client) *notificationRepository {
	return &notificationRepository{client: client}
}

func (r *notificationRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_notifications"
	}
	return "notifications"
}

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	created := n.Clone()
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	created.CreatedAt = time.Now().UTC()

	docRef := r.client.Collection(r.collection()).Doc(created.ID)
	if _, err := docRef.Set(ctx, toNotificationDocument(created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create notification", goerr.V("id", created.ID))
	}

	return created, nil
}

func (r *notificationRepository) Get(ctx context.Context, id string) (*model.Notification, error) {
	doc, err := r.client.Collection(r.collection()).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.New("notification not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get notification", goerr.V("id", id))
	}

	var d notificationDocument
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to decode notification document", goerr.V("id", id))
	}

	return d.toModel(), nil
}

func (r *notificationRepository) ListByTarget(ctx context.Context, target types.UserID, unreadOnly bool) ([]*model.Notification, error) {
	q := r.client.Collection(r.collection()).
		Where("target_user_id", "==", target.String())
	if unreadOnly {
		q = q.Where("read", "==", false)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var result []*model.Notification
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate notifications")
		}

		var d notificationDocument
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to decode notification document")
		}
		result = append(result, d.toModel())
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id string) (*model.Notification, error) {
	docRef := r.client.Collection(r.collection()).Doc(id)

	if _, err := docRef.Update(ctx, []firestore.Update{
		{Path: "read", Value: true},
	}); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.New("notification not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to mark notification read", goerr.V("id", id))
	}

	return r.Get(ctx, id)
}
