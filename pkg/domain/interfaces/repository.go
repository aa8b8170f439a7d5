package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Process() ProcessRepository
	Observation() ObservationRepository
	History() HistoryRepository
	Notification() NotificationRepository
	Evaluation() EvaluationRepository

	Close() error
}
