package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/grc-lab/riskdesk/pkg/domain/model"
	"github.com/grc-lab/riskdesk/pkg/domain/types"
)

type notificationRepository struct {
	mu            sync.RWMutex
	notifications map[string]*model.Notification
}

func newNotificationRepository() *notificationRepository {
	return &notificationRepository{
		notifications: make(map[string]*model.Notification),
	}
}

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := n.Clone()
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	created.CreatedAt = time.Now().UTC()

	r.notifications[created.ID] = created
	return created.Clone(), nil
}

func (r *notificationRepository) Get(ctx context.Context, id string) (*model.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n, exists := r.notifications[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "notification not found", goerr.V("id", id))
	}

	return n.Clone(), nil
}

func (r *notificationRepository) ListByTarget(ctx context.Context, target types.UserID, unreadOnly bool) ([]*model.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*model.Notification
	for _, n := range r.notifications {
		if n.TargetUserID != target {
			continue
		}
		if unreadOnly && n.Read {
			continue
		}
		result = append(result, n.Clone())
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id string) (*model.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, exists := r.notifications[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "notification not found", goerr.V("id", id))
	}

	n.Read = true
	return n.Clone(), nil
}
