// Package memory provides an in-memory repository implementation used for
// development and tests.
package memory

import (
	"github.com/grc-lab/riskdesk/pkg/domain/interfaces"
)

type Memory struct {
	process      *processRepository
	observation  *observationRepository
	history      *historyRepository
	notification *notificationRepository
	evaluation   *evaluationRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		process:      newProcessRepository(),
		observation:  newObservationRepository(),
		history:      newHistoryRepository(),
		notification: newNotificationRepository(),
		evaluation:   newEvaluationRepository(),
	}
}

func (m *Memory) Process() interfaces.ProcessRepository {
	return m.process
}

func (m *Memory) Observation() interfaces.ObservationRepository {
	return m.observation
}

func (m *Memory) History() interfaces.HistoryRepository {
	return m.history
}

func (m *Memory) Notification() interfaces.NotificationRepository {
	return m.notification
}

func (m *Memory) Evaluation() interfaces.EvaluationRepository {
	return m.evaluation
}

func (m *Memory) Close() error {
	return nil
}
