package model

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/grc-lab/riskdesk/pkg/domain/types"
)

// Actor is the user context attached to every workflow invocation. It is
// supplied by the calling surface; the workflow trusts it for audit
// attribution and the pre-flight legality check only.
type Actor struct {
	ID   types.UserID
	Name string
	Role types.Role
}

// Validate checks if the actor carries the minimum required fields
func (a *Actor) Validate() error {
	if err := a.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid actor")
	}
	if !a.Role.IsValid() {
		return goerr.New("invalid actor role", goerr.V("role", a.Role))
	}
	return nil
}

type actorCtxKey struct{}

// WithActor returns a context carrying the actor
func WithActor(ctx context.Context, actor *Actor) context.Context {
	return context.WithValue(ctx, actorCtxKey{}, actor)
}

// ActorFromContext extracts the actor from the context
func ActorFromContext(ctx context.Context) (*Actor, error) {
	actor, ok := ctx.Value(actorCtxKey{}).(*Actor)
	if !ok || actor == nil {
		return nil, goerr.New("no actor in context")
	}
	return actor, nil
}
