package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/grc-lab/riskdesk/pkg/domain/model"
	"github.com/grc-lab/riskdesk/pkg/domain/types"
	"github.com/grc-lab/riskdesk/pkg/utils/errutil"
	"github.com/grc-lab/riskdesk/pkg/utils/logging"
)

// Actor headers supplied by the authenticating front-end. Authentication
// itself is outside this service; the headers are trusted as given.
const (
	headerActorID   = "X-Actor-Id"
	headerActorName = "X-Actor-Name"
	headerActorRole = "X-Actor-Role"
)

// actorContext extracts the acting user from request headers and attaches
// it to the request context. Requests without a valid actor are rejected.
func actorContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := &model.Actor{
			ID:   types.UserID(r.Header.Get(headerActorID)),
			Name: r.Header.Get(headerActorName),
			Role: types.Role(r.Header.Get(headerActorRole)),
		}
		if actor.Name == "" {
			actor.Name = actor.ID.String()
		}
		if err := actor.Validate(); err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(model.WithActor(r.Context(), actor)))
	})
}

// accessLogger logs each request with its status and duration
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		logging.From(r.Context()).Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).String(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
