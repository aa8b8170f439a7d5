package usecase

import (
	"github.com/grc-lab/riskdesk/pkg/domain/interfaces"
	"github.com/grc-lab/riskdesk/pkg/domain/model/config"
	"github.com/grc-lab/riskdesk/pkg/scoring"
	"github.com/grc-lab/riskdesk/pkg/service/slack"
)

type UseCases struct {
	repo       interfaces.Repository
	scoringCfg *config.ScoringConfig
	notifier   slack.Service

	Process      *ProcessUseCase
	Review       *ReviewUseCase
	Evaluation   *EvaluationUseCase
	Notification *NotificationUseCase
}

type Option func(*UseCases)

func WithScoringConfig(cfg *config.ScoringConfig) Option {
	return func(uc *UseCases) {
		uc.scoringCfg = cfg
	}
}

func WithNotifier(notifier slack.Service) Option {
	return func(uc *UseCases) {
		uc.notifier = notifier
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Process = NewProcessUseCase(repo)
	uc.Review = NewReviewUseCase(repo, uc.notifier)
	uc.Evaluation = NewEvaluationUseCase(repo, scoring.New(uc.scoringCfg))
	uc.Notification = NewNotificationUseCase(repo)

	return uc
}
