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

type evaluationDocument struct {
	ID             string    `firestore:"id"`
	ProcessID      int64     `firestore:"process_id"`
	People         int       `firestore:"impact_people"`
	Legal          int       `firestore:"impact_legal"`
	Environmental  int       `firestore:"impact_environmental"`
	Process        int       `firestore:"impact_process"`
	Reputation     int       `firestore:"impact_reputation"`
	Economic       int       `firestore:"impact_economic"`
	Technological  int       `firestore:"impact_technological"`
	Probability    int       `firestore:"probability"`
	Classification string    `firestore:"classification"`
	WeightedImpact float64   `firestore:"weighted_impact"`
	MaxImpact      float64   `firestore:"max_impact"`
	InherentScore  float64   `firestore:"inherent_score"`
	RiskLevel      string    `firestore:"risk_level"`
	CreatedAt      time.Time `firestore:"created_at"`
}

func toEvaluationDocument(e *model.RiskEvaluation) *evaluationDocument {
	return &evaluationDocument{
		ID:             e.ID,
		ProcessID:      e.ProcessID,
		People:         e.Impacts.People,
		Legal:          e.Impacts.Legal,
		Environmental:  e.Impacts.Environmental,
		Process:        e.Impacts.Process,
		Reputation:     e.Impacts.Reputation,
		Economic:       e.Impacts.Economic,
		Technological:  e.Impacts.Technological,
		Probability:    e.Probability,
		Classification: e.Classification.String(),
		WeightedImpact: e.WeightedImpact,
		MaxImpact:      e.MaxImpact,
		InherentScore:  e.InherentScore,
		RiskLevel:      e.RiskLevel.String(),
		CreatedAt:      e.CreatedAt,
	}
}

func (d *evaluationDocument) toModel() *model.RiskEvaluation {
	return &model.RiskEvaluation{
		ID:        d.ID,
		ProcessID: d.ProcessID,
		Impacts: model.ImpactSet{
			People:        d.People,
			Legal:         d.Legal,
			Environmental: d.Environmental,
			Process:       d.Process,
			Reputation:    d.Reputation,
			Economic:      d.Economic,
			Technological: d.Technological,
		},
		Probability:    d.Probability,
		Classification: types.Classification(d.Classification),
		WeightedImpact: d.WeightedImpact,
		MaxImpact:      d.MaxImpact,
		InherentScore:  d.InherentScore,
		RiskLevel:      types.RiskLevel(d.RiskLevel),
		CreatedAt:      d.CreatedAt,
	}
}

type evaluationRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newEvaluationRepository(client *firestore.Client) *evaluationRepository {
	return &evaluationRepository{client: client}
}

func (r *evaluationRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_evaluations"
	}
	return "evaluations"
}

func (r *evaluationRepository) Create(ctx context.Context, eval *model.RiskEvaluation) (*model.RiskEvaluation, error) {
	created := *eval
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	created.CreatedAt = time.Now().UTC()

	docRef := r.client.Collection(r.collection()).Doc(created.ID)
	if _, err := docRef.Set(ctx, toEvaluationDocument(&created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create evaluation", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *evaluationRepository) ListByProcess(ctx context.Context, processID int64) ([]*model.RiskEvaluation, error) {
	iter := r.client.Collection(r.collection()).
		Where("process_id", "==", processID).
		Documents(ctx)
	defer iter.Stop()

	var result []*model.RiskEvaluation
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate evaluations")
		}

		var d evaluationDocument
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to decode evaluation document")
		}
		result = append(result, d.toModel())
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}
