package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"

	"github.com/grc-lab/riskdesk/pkg/domain/model"
	"github.com/grc-lab/riskdesk/pkg/domain/types"
	"github.com/grc-lab/riskdesk/pkg/scoring"
	"github.com/grc-lab/riskdesk/pkg/usecase"
	"github.com/grc-lab/riskdesk/pkg/utils/errutil"
)

// statusOf maps use case errors to HTTP status codes
func statusOf(err error) int {
	switch {
	case errors.Is(err, usecase.ErrIllegalTransition):
		return http.StatusConflict
	case errors.Is(err, usecase.ErrProcessNotFound),
		errors.Is(err, usecase.ErrObservationNotFound),
		errors.Is(err, usecase.ErrNotificationNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrTitleRequired),
		errors.Is(err, usecase.ErrReviewerRequired),
		errors.Is(err, usecase.ErrEmptyObservationText),
		errors.Is(err, usecase.ErrNoObservationIDs),
		errors.Is(err, usecase.ErrObservationMismatch),
		errors.Is(err, usecase.ErrNotEditable):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func processIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "processID"), 10, 64)
	if err != nil {
		return 0, goerr.Wrap(err, "invalid process ID")
	}
	return id, nil
}

type processResponse struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	State       string     `json:"state"`
	OwnerID     string     `json:"owner_id"`
	ReviewerID  string     `json:"reviewer_id,omitempty"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func toProcessResponse(p *model.RiskProcess) *processResponse {
	return &processResponse{
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

func toProcessListResponse(processes []*model.RiskProcess) []*processResponse {
	result := make([]*processResponse, 0, len(processes))
	for _, p := range processes {
		result = append(result, toProcessResponse(p))
	}
	return result
}

func (s *Server) handleCreateProcess(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	created, err := s.uc.Process.CreateProcess(r.Context(), req.Title, req.Description)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, statusOf(err))
		return
	}

	respondJSON(w, http.StatusCreated, toProcessResponse(created))
}

func (s *Server) handleListProcesses(w http.ResponseWriter, r *http.Request) {
	var (
		processes []*model.RiskProcess
		err       error
	)
	if stateParam := r.URL.Query().Get("state"); stateParam != "" {
		state, parseErr := types.ParseProcessState(stateParam)
		if parseErr != nil {
			errutil.HandleHTTP(r.Context(), w, parseErr, http.StatusBadRequest)
			return
		}
		processes, err = s.uc.Process.ListProcessesByState(r.Context(), state)
	} else {
		processes, err = s.uc.Process.ListProcesses(r.Context())
	}
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, statusOf(err))
		return
	}

	respondJSON(w, http.StatusOK, toProcessListResponse(processes))
}

func (s *Server) handleGetProcess(w http.ResponseWriter, r *http.Request) {
	id, err := processIDParam(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	process, err := s.uc.Process.GetProcess(r.Context(), id)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, statusOf(err))
		return
	}

	respondJSON(w, http.StatusOK, toProcessResponse(process))
}

func (s *Server) handleUpdateProcess(w http.ResponseWriter, r *http.Request) {
	id, err := processIDParam(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	updated, err := s.uc.Process.UpdateProcess(r.Context(), id, req.Title, req.Description)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, statusOf(err))
		return
	}

	respondJSON(w, http.StatusOK, toProcessResponse(updated))
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	id, err := processIDParam(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	var req struct {
		ReviewerID string `json:"reviewer_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	updated, err := s.uc.Review.SubmitForReview(r.Context(), id, types.UserID(req.ReviewerID))
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, statusOf(err))
		return
	}

	respondJSON(w, http.StatusOK, toProcessResponse(updated))
}

func (s *Server) handleApprove(w http.ResponseWriter, r *http.Request) {
	id, err := processIDParam(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	updated, err := s.uc.Review.Approve(r.Context(), id)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, statusOf(err))
		return
	}

	respondJSON(w, http.StatusOK, toProcessResponse(updated))
}

func (s *Server) handleReturn(w http.ResponseWriter, r *http.Request) {
	id, err := processIDParam(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	updated, err := s.uc.Review.ReturnWithObservations(r.Context(), id, req.Text)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, statusOf(err))
		return
	}

	respondJSON(w, http.StatusOK, toProcessResponse(updated))
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	id, err := processIDParam(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	var req struct {
		ObservationIDs []string `json:"observation_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	updated, err := s.uc.Review.ResolveObservations(r.Context(), id, req.ObservationIDs)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, statusOf(err))
		return
	}

	respondJSON(w, http.StatusOK, toProcessResponse(updated))
}

func (s *Server) handleListHistory(w http.ResponseWriter, r *http.Request) {
	id, err := processIDParam(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	entries, err := s.uc.Process.ListHistory(r.Context(), id)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, statusOf(err))
		return
	}

	type diffResponse struct {
		Before string `json:"before"`
		After  string `json:"after"`
	}
	type entryResponse struct {
		ID          string                  `json:"id"`
		ActorID     string                  `json:"actor_id"`
		ActorName   string                  `json:"actor_name"`
		Action      string                  `json:"action"`
		Description string                  `json:"description"`
		FieldDiffs  map[string]diffResponse `json:"field_diffs,omitempty"`
		OccurredAt  time.Time               `json:"occurred_at"`
	}

	result := make([]*entryResponse, 0, len(entries))
	for _, e := range entries {
		resp := &entryResponse{
			ID:          e.ID,
			ActorID:     e.ActorID.String(),
			ActorName:   e.ActorName,
			Action:      e.Action.String(),
			Description: e.Description,
			OccurredAt:  e.OccurredAt,
		}
		if len(e.FieldDiffs) > 0 {
			resp.FieldDiffs = make(map[string]diffResponse, len(e.FieldDiffs))
			for field, diff := range e.FieldDiffs {
				resp.FieldDiffs[field] = diffResponse{Before: diff.Before, After: diff.After}
			}
		}
		result = append(result, resp)
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleListObservations(w http.ResponseWriter, r *http.Request) {
	id, err := processIDParam(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	pendingOnly := r.URL.Query().Get("pending") == "true"
	observations, err := s.uc.Process.ListObservations(r.Context(), id, pendingOnly)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, statusOf(err))
		return
	}

	type obsResponse struct {
		ID         string     `json:"id"`
		AuthorID   string     `json:"author_id"`
		Text       string     `json:"text"`
		Resolved   bool       `json:"resolved"`
		CreatedAt  time.Time  `json:"created_at"`
		ResolvedAt *time.Time `json:"resolved_at,omitempty"`
	}

	result := make([]*obsResponse, 0, len(observations))
	for _, o := range observations {
		result = append(result, &obsResponse{
			ID:         o.ID,
			AuthorID:   o.AuthorID.String(),
			Text:       o.Text,
			Resolved:   o.Resolved,
			CreatedAt:  o.CreatedAt,
			ResolvedAt: o.ResolvedAt,
		})
	}

	respondJSON(w, http.StatusOK, result)
}

type scoreRequest struct {
	Impacts struct {
		People        int `json:"people"`
		Legal         int `json:"legal"`
		Environmental int `json:"environmental"`
		Process       int `json:"process"`
		Reputation    int `json:"reputation"`
		Economic      int `json:"economic"`
		Technological int `json:"technological"`
	} `json:"impacts"`
	Probability    int    `json:"probability"`
	Classification string `json:"classification"`
}

func (req *scoreRequest) toInput() scoring.Input {
	return scoring.Input{
		Impacts: model.ImpactSet{
			People:        req.Impacts.People,
			Legal:         req.Impacts.Legal,
			Environmental: req.Impacts.Environmental,
			Process:       req.Impacts.Process,
			Reputation:    req.Impacts.Reputation,
			Economic:      req.Impacts.Economic,
			Technological: req.Impacts.Technological,
		},
		Probability:    req.Probability,
		Classification: types.Classification(req.Classification).Normalize(),
	}
}

type scoreResponse struct {
	WeightedImpact float64 `json:"weighted_impact"`
	MaxImpact      float64 `json:"max_impact"`
	InherentScore  float64 `json:"inherent_score"`
	RiskLevel      string  `json:"risk_level"`
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	result := s.uc.Evaluation.Score(req.toInput())

	respondJSON(w, http.StatusOK, &scoreResponse{
		WeightedImpact: result.WeightedImpact,
		MaxImpact:      result.MaxImpact,
		InherentScore:  result.InherentScore,
		RiskLevel:      result.RiskLevel.String(),
	})
}

type evaluationResponse struct {
	ID             string    `json:"id"`
	Probability    int       `json:"probability"`
	Classification string    `json:"classification"`
	WeightedImpact float64   `json:"weighted_impact"`
	MaxImpact      float64   `json:"max_impact"`
	InherentScore  float64   `json:"inherent_score"`
	RiskLevel      string    `json:"risk_level"`
	CreatedAt      time.Time `json:"created_at"`
}

func toEvaluationResponse(e *model.RiskEvaluation) *evaluationResponse {
	return &evaluationResponse{
		ID:             e.ID,
		Probability:    e.Probability,
		Classification: e.Classification.String(),
		WeightedImpact: e.WeightedImpact,
		MaxImpact:      e.MaxImpact,
		InherentScore:  e.InherentScore,
		RiskLevel:      e.RiskLevel.String(),
		CreatedAt:      e.CreatedAt,
	}
}

func (s *Server) handleRecordEvaluation(w http.ResponseWriter, r *http.Request) {
	id, err := processIDParam(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	eval, err := s.uc.Evaluation.RecordEvaluation(r.Context(), id, req.toInput())
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, statusOf(err))
		return
	}

	respondJSON(w, http.StatusCreated, toEvaluationResponse(eval))
}

func (s *Server) handleListEvaluations(w http.ResponseWriter, r *http.Request) {
	id, err := processIDParam(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	evals, err := s.uc.Evaluation.ListEvaluations(r.Context(), id)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, statusOf(err))
		return
	}

	result := make([]*evaluationResponse, 0, len(evals))
	for _, e := range evals {
		result = append(result, toEvaluationResponse(e))
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	actor, err := model.ActorFromContext(r.Context())
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusUnauthorized)
		return
	}

	unreadOnly := r.URL.Query().Get("unread") == "true"
	notifications, err := s.uc.Notification.ListNotifications(r.Context(), actor.ID, unreadOnly)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, statusOf(err))
		return
	}

	type notificationResponse struct {
		ID            string    `json:"id"`
		Kind          string    `json:"kind"`
		Title         string    `json:"title"`
		Body          string    `json:"body"`
		ProcessID     int64     `json:"process_id"`
		ObservationID string    `json:"observation_id,omitempty"`
		Read          bool      `json:"read"`
		CreatedAt     time.Time `json:"created_at"`
	}

	result := make([]*notificationResponse, 0, len(notifications))
	for _, n := range notifications {
		result = append(result, &notificationResponse{
			ID:            n.ID,
			Kind:          n.Kind.String(),
			Title:         n.Title,
			Body:          n.Body,
			ProcessID:     n.ProcessID,
			ObservationID: n.ObservationID,
			Read:          n.Read,
			CreatedAt:     n.CreatedAt,
		})
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "notificationID")

	n, err := s.uc.Notification.MarkRead(r.Context(), id)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, statusOf(err))
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"id":   n.ID,
		"read": n.Read,
	})
}
